package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/SalangsangJohnPatrick/inventory-management/pkg/db/models"
	pkgerrors "github.com/SalangsangJohnPatrick/inventory-management/pkg/errors"
)

const (
	msgNotFound         = "Product not found"
	msgInvalidData      = "The given data was invalid."
	msgNoValuation      = "No inventory found for this type."
	msgNoTopSelling     = "No top selling products found."
	msgNoLowStock       = "No low stock items found."
	DeletedSuccessfully = "Product deleted successfully"
)

// Service exposes inventory management and reporting.
type Service interface {
	List(ctx context.Context, q ListQuery) (*ListResult, error)
	Get(ctx context.Context, id uint) (*ItemDTO, error)
	Create(ctx context.Context, input ItemInput) (*ItemDTO, error)
	Update(ctx context.Context, id uint, input ItemInput) (*ItemDTO, error)
	Delete(ctx context.Context, id uint) error
	Sorted(ctx context.Context, field, order string) ([]ItemDTO, error)
	Valuation(ctx context.Context, itemType string) (*ValuationReport, error)
	TopSelling(ctx context.Context) ([]TopSellerDTO, error)
	LowStock(ctx context.Context) (*LowStockReport, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)
	Import(ctx context.Context, r io.Reader) (*ImportResult, error)
}

type service struct {
	repo     *Repository
	importer *Importer
}

// NewService wires the repository and importer into a Service.
func NewService(repo *Repository, importer *Importer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if importer == nil {
		return nil, fmt.Errorf("inventory importer required")
	}
	return &service{repo: repo, importer: importer}, nil
}

func (s *service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	items, meta, err := s.repo.Query(ctx, q)
	if err != nil {
		return nil, storageError(err, "list inventory")
	}
	return &ListResult{Items: newItemDTOs(items), Pagination: meta}, nil
}

func (s *service) Get(ctx context.Context, id uint) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "load inventory item")
	}
	dto := NewItemDTO(item)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input ItemInput) (*ItemDTO, error) {
	if errs := ValidateItemInput(input); !errs.Empty() {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, msgInvalidData).WithDetails(errs)
	}
	item := &models.InventoryItem{}
	input.Apply(item)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, storageError(err, "create inventory item")
	}
	dto := NewItemDTO(item)
	return &dto, nil
}

// Update checks existence before validating the payload so an unknown id
// is a 404 even when the body is invalid.
func (s *service) Update(ctx context.Context, id uint, input ItemInput) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "load inventory item")
	}
	if errs := ValidateItemInput(input); !errs.Empty() {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, msgInvalidData).WithDetails(errs)
	}
	input.Apply(item)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, storageError(err, "update inventory item")
	}
	dto := NewItemDTO(item)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return storageError(err, "delete inventory item")
	}
	return nil
}

func (s *service) Sorted(ctx context.Context, field, order string) ([]ItemDTO, error) {
	items, err := s.repo.Sorted(ctx, field, order)
	if err != nil {
		return nil, storageError(err, "sort inventory")
	}
	return newItemDTOs(items), nil
}

func (s *service) Valuation(ctx context.Context, itemType string) (*ValuationReport, error) {
	totals, err := s.repo.Valuation(ctx, itemType)
	if err != nil {
		return nil, storageError(err, "valuation report")
	}
	if totals.Count == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgNoValuation)
	}
	return &ValuationReport{
		Type:                itemType,
		TotalQuantity:       totals.TotalQuantity,
		TotalInventoryValue: money(totals.TotalInventoryValue),
		TotalProductsSold:   totals.TotalProductsSold,
		TotalSalesValue:     money(totals.TotalSalesValue),
	}, nil
}

func (s *service) TopSelling(ctx context.Context) ([]TopSellerDTO, error) {
	items, err := s.repo.TopSelling(ctx, TopSellingLimit)
	if err != nil {
		return nil, storageError(err, "top selling report")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgNoTopSelling)
	}
	out := make([]TopSellerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, TopSellerDTO{
			BrandName:    item.BrandName,
			ProductsSold: item.ProductsSold,
			SalesValue:   money(item.SalesValue),
		})
	}
	return out, nil
}

func (s *service) LowStock(ctx context.Context) (*LowStockReport, error) {
	items, err := s.repo.LowStock(ctx, LowStockThreshold, LowStockLimit)
	if err != nil {
		return nil, storageError(err, "low stock report")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, msgNoLowStock)
	}
	data := make([]LowStockDTO, 0, len(items))
	for _, item := range items {
		data = append(data, LowStockDTO{
			BrandName:      item.BrandName,
			Type:           item.Type,
			QuantityOnHand: item.QuantityOnHand,
		})
	}
	return &LowStockReport{Threshold: LowStockThreshold, Data: data}, nil
}

func (s *service) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	brands, err := s.repo.DistinctValues(ctx, "brand_name")
	if err != nil {
		return nil, storageError(err, "list brands")
	}
	types, err := s.repo.DistinctValues(ctx, "type")
	if err != nil {
		return nil, storageError(err, "list types")
	}
	return &FilterOptions{Brands: brands, Types: types}, nil
}

func (s *service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	return s.importer.Import(ctx, r)
}

// storageError passes typed errors through, maps ErrNotFound to a 404 and
// wraps anything else as internal.
func storageError(err error, op string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	if errors.Is(err, ErrNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, msgNotFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
}
