package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SalangsangJohnPatrick/inventory-management/api/responses"
	"github.com/SalangsangJohnPatrick/inventory-management/api/validators"
	"github.com/SalangsangJohnPatrick/inventory-management/internal/inventory"
	pkgerrors "github.com/SalangsangJohnPatrick/inventory-management/pkg/errors"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/logger"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/pagination"
)

const (
	maxSearchLength = 255
	filterFormParam = "filterForm"
)

// InventoryList returns one filtered, searched and sorted page.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeServiceUnavailable(w, r, logg)
			return
		}

		q, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), q)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePaged(w, result.Items, result.Pagination)
	}
}

func parseListQuery(r *http.Request) (inventory.ListQuery, error) {
	page, err := validators.ParseQueryInt(r, "currentPage", 1, 1, math.MaxInt32)
	if err != nil {
		return inventory.ListQuery{}, err
	}
	perPage, err := validators.ParseQueryInt(r, "itemsPerPage", pagination.DefaultPerPage, 1, math.MaxInt32)
	if err != nil {
		return inventory.ListQuery{}, err
	}
	filters, err := validators.ParseBracketMap(r, filterFormParam)
	if err != nil {
		return inventory.ListQuery{}, err
	}
	query := r.URL.Query()
	return inventory.ListQuery{
		SortField: query.Get("sortField"),
		SortOrder: query.Get("sortOrder"),
		Search:    validators.SanitizeString(query.Get("search"), maxSearchLength),
		Page:      page,
		PerPage:   perPage,
		Filters:   filters,
	}, nil
}

// InventoryShow returns a single live item.
func InventoryShow(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeServiceUnavailable(w, r, logg)
			return
		}
		id, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// InventoryCreate validates the payload and stores a new item.
func InventoryCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeServiceUnavailable(w, r, logg)
			return
		}
		var body inventory.ItemInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "item_id", item.ID), "inventory.item.created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// InventoryUpdate replaces the writable fields of an existing item.
func InventoryUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeServiceUnavailable(w, r, logg)
			return
		}
		id, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body inventory.ItemInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// InventoryDelete soft deletes an item.
func InventoryDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeServiceUnavailable(w, r, logg)
			return
		}
		id, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "item_id", id), "inventory.item.deleted")
		}
		responses.WriteSuccess(w, map[string]string{"message": inventory.DeletedSuccessfully})
	}
}

// InventorySort returns every live item ordered by the path column.
func InventorySort(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeServiceUnavailable(w, r, logg)
			return
		}
		items, err := svc.Sorted(r.Context(), chi.URLParam(r, "column"), chi.URLParam(r, "order"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// InventoryFilterOptions lists distinct brands and types.
func InventoryFilterOptions(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeServiceUnavailable(w, r, logg)
			return
		}
		opts, err := svc.FilterOptions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, opts)
	}
}

// itemIDParam parses the {id} path segment. Anything that is not a positive
// integer cannot name an item, so it is reported as not found.
func itemIDParam(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}
	return uint(id), nil
}

func writeServiceUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
}
