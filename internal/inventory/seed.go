package inventory

import (
	"context"
	"math/rand"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SalangsangJohnPatrick/inventory-management/pkg/db/models"
)

const DefaultSeedCount = 50

var (
	seedBrands = []string{
		"Logitech", "Razer", "SteelSeries", "Corsair", "HyperX",
		"Asus", "Microsoft", "Sony", "Turtle Beach", "Astro Gaming",
	}
	seedTypes = []string{
		"Laptop", "Monitor", "Keyboard", "Mouse", "Printer", "Gaming Headset", "Controller",
	}
)

// Seed price bounds in cents.
const (
	seedMinPriceCents = 500_00
	seedMaxPriceCents = 50_000_00
)

// SeedItems generates n random items from the demo catalogue. Quantities fall
// in [5,100], sales in [0,50] and prices in [500,50000].
func SeedItems(rng *rand.Rand, n int) []*models.InventoryItem {
	items := make([]*models.InventoryItem, 0, n)
	for i := 0; i < n; i++ {
		cents := seedMinPriceCents + rng.Int63n(seedMaxPriceCents-seedMinPriceCents+1)
		items = append(items, &models.InventoryItem{
			BrandName:      seedBrands[rng.Intn(len(seedBrands))],
			Type:           seedTypes[rng.Intn(len(seedTypes))],
			QuantityOnHand: 5 + rng.Intn(96),
			Price:          decimal.New(cents, -PriceScale),
			ProductsSold:   rng.Intn(51),
		})
	}
	return items
}

// Seed inserts the generated items in one transaction.
func (r *Repository) Seed(ctx context.Context, items []*models.InventoryItem) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := r.WithTx(tx)
		for _, item := range items {
			if err := txRepo.Create(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
}
