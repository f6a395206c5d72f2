package inventory

import (
	"context"
	"fmt"

	"github.com/SalangsangJohnPatrick/inventory-management/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

const (
	// TopSellingLimit caps the top sellers report.
	TopSellingLimit = 10
	// LowStockThreshold is the exclusive quantity bound for low stock.
	LowStockThreshold = 100
	// LowStockLimit caps the low stock report.
	LowStockLimit = 10
)

// ValuationTotals are the per type sums computed by the database.
type ValuationTotals struct {
	Count               int64
	TotalQuantity       int64
	TotalInventoryValue decimal.Decimal
	TotalProductsSold   int64
	TotalSalesValue     decimal.Decimal
}

type valuationRow struct {
	Count               int64
	TotalQuantity       int64
	TotalInventoryValue decimal.NullDecimal
	TotalProductsSold   int64
	TotalSalesValue     decimal.NullDecimal
}

// Valuation sums the live items whose type equals itemType exactly.
func (r *Repository) Valuation(ctx context.Context, itemType string) (*ValuationTotals, error) {
	var row valuationRow
	err := r.DB(ctx).
		Model(&models.InventoryItem{}).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(quantity_on_hand), 0) AS total_quantity,
			SUM(inventory_value) AS total_inventory_value,
			COALESCE(SUM(products_sold), 0) AS total_products_sold,
			SUM(sales_value) AS total_sales_value`).
		Where(clause.Eq{Column: clause.Column{Name: "type"}, Value: itemType}).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &ValuationTotals{
		Count:               row.Count,
		TotalQuantity:       row.TotalQuantity,
		TotalInventoryValue: row.TotalInventoryValue.Decimal,
		TotalProductsSold:   row.TotalProductsSold,
		TotalSalesValue:     row.TotalSalesValue.Decimal,
	}, nil
}

// TopSelling returns the best sellers by products_sold.
func (r *Repository) TopSelling(ctx context.Context, limit int) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	err := r.DB(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "products_sold"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// LowStock returns items below threshold, scarcest first.
func (r *Repository) LowStock(ctx context.Context, threshold, limit int) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	err := r.DB(ctx).
		Where(clause.Lt{Column: clause.Column{Name: "quantity_on_hand"}, Value: threshold}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "quantity_on_hand"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DistinctValues lists the distinct values of an allow-listed text column.
func (r *Repository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if kind, ok := sortableColumns[column]; !ok || kind != kindText {
		return nil, errUnknownFacet(column)
	}
	out := []string{}
	err := r.DB(ctx).
		Model(&models.InventoryItem{}).
		Distinct(column).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}}).
		Pluck(column, &out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func errUnknownFacet(column string) error {
	return fmt.Errorf("column %q has no facet", column)
}
