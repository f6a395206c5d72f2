package inventory

import (
	"time"

	"github.com/SalangsangJohnPatrick/inventory-management/pkg/db/models"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ItemDTO is the public representation of an inventory item. Money values
// are rendered as fixed two-decimal strings.
type ItemDTO struct {
	ID             uint      `json:"id"`
	BrandName      string    `json:"brand_name"`
	Type           string    `json:"type"`
	QuantityOnHand int       `json:"quantity_on_hand"`
	Price          string    `json:"price"`
	ProductsSold   int       `json:"products_sold"`
	InventoryValue string    `json:"inventory_value"`
	SalesValue     string    `json:"sales_value"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListResult is one page of items.
type ListResult struct {
	Items      []ItemDTO
	Pagination pagination.Meta
}

type ValuationReport struct {
	Type                string `json:"type"`
	TotalQuantity       int64  `json:"totalQuantity"`
	TotalInventoryValue string `json:"totalInventoryValue"`
	TotalProductsSold   int64  `json:"totalProductsSold"`
	TotalSalesValue     string `json:"totalSalesValue"`
}

type TopSellerDTO struct {
	BrandName    string `json:"brand_name"`
	ProductsSold int    `json:"products_sold"`
	SalesValue   string `json:"sales_value"`
}

type LowStockDTO struct {
	BrandName      string `json:"brand_name"`
	Type           string `json:"type"`
	QuantityOnHand int    `json:"quantity_on_hand"`
}

// LowStockReport carries the threshold used alongside the matching items.
type LowStockReport struct {
	Threshold int           `json:"threshold"`
	Data      []LowStockDTO `json:"data"`
}

// FilterOptions lists the distinct facet values for dropdowns.
type FilterOptions struct {
	Brands []string `json:"brands"`
	Types  []string `json:"types"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(PriceScale)
}

// NewItemDTO maps a model to its public form.
func NewItemDTO(item *models.InventoryItem) ItemDTO {
	return ItemDTO{
		ID:             item.ID,
		BrandName:      item.BrandName,
		Type:           item.Type,
		QuantityOnHand: item.QuantityOnHand,
		Price:          money(item.Price),
		ProductsSold:   item.ProductsSold,
		InventoryValue: money(item.InventoryValue),
		SalesValue:     money(item.SalesValue),
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

func newItemDTOs(items []models.InventoryItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, NewItemDTO(&items[i]))
	}
	return out
}
