package inventory

import (
	"context"
	"testing"

	"github.com/SalangsangJohnPatrick/inventory-management/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryCreateDerivesValues(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	item := mustCreateItem(t, repo, newItem("Acme", "Laptop", 10, "100", 2))
	require.NotZero(t, item.ID)

	stored, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, stored.InventoryValue.Equal(decimalFromInt(1000)), stored.InventoryValue.String())
	assert.True(t, stored.SalesValue.Equal(decimalFromInt(200)), stored.SalesValue.String())
}

func TestRepositoryUpdateRecomputesBothValues(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	item := mustCreateItem(t, repo, newItem("Acme", "Laptop", 10, "100", 2))
	item.Price = decimalFromInt(50)
	require.NoError(t, repo.Update(ctx, item))

	stored, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(decimalFromInt(50)))
	assert.True(t, stored.InventoryValue.Equal(decimalFromInt(500)), stored.InventoryValue.String())
	assert.True(t, stored.SalesValue.Equal(decimalFromInt(100)), stored.SalesValue.String())
}

func TestRepositoryUpdateMissingItem(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	err := repo.Update(context.Background(), newItemWithID(99))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositorySoftDeleteKeepsRow(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	kept := mustCreateItem(t, repo, newItem("Acme", "Laptop", 10, "100", 2))
	gone := mustCreateItem(t, repo, newItem("Zenith", "Laptop", 1, "10", 90))
	require.NoError(t, repo.SoftDelete(ctx, gone.ID))

	_, err := repo.FindByID(ctx, gone.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	raw, err := repo.FindByIDUnscoped(ctx, gone.ID)
	require.NoError(t, err)
	assert.True(t, raw.DeletedAt.Valid)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, kept.ID, all[0].ID)

	sorted, err := repo.Sorted(ctx, "products_sold", "desc")
	require.NoError(t, err)
	require.Len(t, sorted, 1)

	totals, err := repo.Valuation(ctx, "Laptop")
	require.NoError(t, err)
	assert.EqualValues(t, 1, totals.Count)
	assert.EqualValues(t, 10, totals.TotalQuantity)

	top, err := repo.TopSelling(ctx, TopSellingLimit)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Acme", top[0].BrandName)

	low, err := repo.LowStock(ctx, LowStockThreshold, LowStockLimit)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, kept.ID, low[0].ID)

	brands, err := repo.DistinctValues(ctx, "brand_name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme"}, brands)

	assert.ErrorIs(t, repo.SoftDelete(ctx, gone.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, raw), ErrNotFound)
}

func TestRepositoryWithTxRollsBack(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	tx := conn.Begin()
	require.NoError(t, repo.WithTx(tx).Create(ctx, newItem("Acme", "Laptop", 1, "1", 1)))
	require.NoError(t, tx.Rollback().Error)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func newItemWithID(id uint) *models.InventoryItem {
	item := newItem("Ghost", "Laptop", 1, "1", 1)
	item.ID = id
	return item
}
