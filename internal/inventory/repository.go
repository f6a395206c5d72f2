package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/SalangsangJohnPatrick/inventory-management/internal/repo"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/db/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an id does not match a live item.
var ErrNotFound = errors.New("inventory item not found")

// writableColumns are the columns an update rewrites. Derived values are
// always included so they never drift from price.
var writableColumns = []string{
	"brand_name",
	"type",
	"quantity_on_hand",
	"price",
	"products_sold",
	"inventory_value",
	"sales_value",
	"updated_at",
}

// Repository persists inventory items.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

// Create derives values and inserts the item.
func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) error {
	if item == nil {
		return fmt.Errorf("inventory item required")
	}
	Derive(item)
	return r.DB(ctx).Create(item).Error
}

// FindByID loads a live item.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.DB(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDUnscoped loads an item even when it has been soft deleted.
func (r *Repository) FindByIDUnscoped(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.Unscoped(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Update recomputes derived values and writes every writable column.
func (r *Repository) Update(ctx context.Context, item *models.InventoryItem) error {
	if item == nil || item.ID == 0 {
		return fmt.Errorf("inventory item id required")
	}
	Derive(item)
	res := r.DB(ctx).Model(item).Select(writableColumns).Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks the item deleted. The row stays in the table.
func (r *Repository) SoftDelete(ctx context.Context, id uint) error {
	res := r.DB(ctx).Delete(&models.InventoryItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every live item ordered by id.
func (r *Repository) ListAll(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.DB(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
