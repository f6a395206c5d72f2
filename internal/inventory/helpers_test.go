package inventory

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/SalangsangJohnPatrick/inventory-management/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, conn.AutoMigrate(&models.InventoryItem{}))
	return conn
}

func newItem(brand, itemType string, qty int, price string, sold int) *models.InventoryItem {
	return &models.InventoryItem{
		BrandName:      brand,
		Type:           itemType,
		QuantityOnHand: qty,
		Price:          decimal.RequireFromString(price),
		ProductsSold:   sold,
	}
}

func mustCreateItem(t *testing.T, repo *Repository, item *models.InventoryItem) *models.InventoryItem {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), item))
	return item
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func decimalFromInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }
