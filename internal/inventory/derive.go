package inventory

import (
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/db/models"
	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places stored for price.
const PriceScale = 2

// Derive normalizes the price to storage scale and recomputes both derived
// values from it. Every write path calls it before touching the database.
func Derive(item *models.InventoryItem) {
	if item == nil {
		return
	}
	item.Price = item.Price.Round(PriceScale)
	item.InventoryValue = item.Price.Mul(decimal.NewFromInt(int64(item.QuantityOnHand)))
	item.SalesValue = item.Price.Mul(decimal.NewFromInt(int64(item.ProductsSold)))
}
