package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SalangsangJohnPatrick/inventory-management/api/responses"
	"github.com/SalangsangJohnPatrick/inventory-management/internal/inventory"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/logger"
)

// InventoryValuation sums quantities and values for one type.
func InventoryValuation(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeServiceUnavailable(w, r, logg)
			return
		}
		report, err := svc.Valuation(r.Context(), chi.URLParam(r, "type"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func TopSellingProducts(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeServiceUnavailable(w, r, logg)
			return
		}
		top, err := svc.TopSelling(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, top)
	}
}

func LowStockItems(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeServiceUnavailable(w, r, logg)
			return
		}
		report, err := svc.LowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
