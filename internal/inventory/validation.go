package inventory

import (
	"fmt"
	"strings"

	"github.com/SalangsangJohnPatrick/inventory-management/pkg/db/models"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/validation"
	"github.com/shopspring/decimal"
)

var validate = validation.New()

// maxStoredValue is the largest NUMERIC(20,2) derived value. Counts and
// price are bounded by their INTEGER and NUMERIC(12,2) columns in the tags.
var maxStoredValue = decimal.RequireFromString("999999999999999999.99")

// ItemInput is the writable shape of an item on create and update. Derived
// values are absent so clients cannot set them, and unknown JSON keys are
// dropped by the decoder.
type ItemInput struct {
	BrandName      *string          `json:"brand_name" validate:"required,max=255"`
	Type           *string          `json:"type" validate:"required,max=255"`
	QuantityOnHand *int             `json:"quantity_on_hand" validate:"required,min=-2147483648,max=2147483647"`
	Price          *decimal.Decimal `json:"price" validate:"required,min=-9999999999.99,max=9999999999.99"`
	ProductsSold   *int             `json:"products_sold" validate:"required,min=-2147483648,max=2147483647"`
}

// ImportRow is one parsed CSV record. Import additionally rejects negatives.
type ImportRow struct {
	BrandName      *string          `json:"brand_name" validate:"required,max=255"`
	Type           *string          `json:"type" validate:"required,max=255"`
	QuantityOnHand *int             `json:"quantity_on_hand" validate:"required,min=0,max=2147483647"`
	Price          *decimal.Decimal `json:"price" validate:"required,min=0,max=9999999999.99"`
	ProductsSold   *int             `json:"products_sold" validate:"required,min=0,max=2147483647"`
}

// ValidateItemInput checks the create/update constraint table.
func ValidateItemInput(in ItemInput) validation.FieldErrors {
	in.BrandName = blankToNil(in.BrandName)
	in.Type = blankToNil(in.Type)
	errs := validation.Collect(validate.Struct(in))
	if errs.Empty() {
		errs.Merge(derivedBounds(*in.Price, *in.QuantityOnHand, *in.ProductsSold))
	}
	return errs
}

// ValidateImportRow checks the import constraint table.
func ValidateImportRow(row ImportRow) validation.FieldErrors {
	row.BrandName = blankToNil(row.BrandName)
	row.Type = blankToNil(row.Type)
	errs := validation.Collect(validate.Struct(row))
	if errs.Empty() {
		errs.Merge(derivedBounds(*row.Price, *row.QuantityOnHand, *row.ProductsSold))
	}
	return errs
}

// derivedBounds reports the count whose product with the stored price would
// overflow the derived value columns.
func derivedBounds(price decimal.Decimal, qty, sold int) validation.FieldErrors {
	errs := validation.FieldErrors{}
	price = price.Round(PriceScale)
	if price.Mul(decimal.NewFromInt(int64(qty))).Abs().GreaterThan(maxStoredValue) {
		errs.Add("quantity_on_hand", derivedMessage("quantity_on_hand", "inventory value"))
	}
	if price.Mul(decimal.NewFromInt(int64(sold))).Abs().GreaterThan(maxStoredValue) {
		errs.Add("products_sold", derivedMessage("products_sold", "sales value"))
	}
	return errs
}

func derivedMessage(field, value string) string {
	return fmt.Sprintf("The %s makes the %s greater than %s.",
		strings.ReplaceAll(field, "_", " "), value, maxStoredValue.StringFixed(PriceScale))
}

// Apply copies a validated input onto item.
func (in ItemInput) Apply(item *models.InventoryItem) {
	item.BrandName = strings.TrimSpace(*in.BrandName)
	item.Type = strings.TrimSpace(*in.Type)
	item.QuantityOnHand = *in.QuantityOnHand
	item.Price = *in.Price
	item.ProductsSold = *in.ProductsSold
}

// Model converts a validated import row into a new item.
func (row ImportRow) Model() *models.InventoryItem {
	return &models.InventoryItem{
		BrandName:      strings.TrimSpace(*row.BrandName),
		Type:           strings.TrimSpace(*row.Type),
		QuantityOnHand: *row.QuantityOnHand,
		Price:          *row.Price,
		ProductsSold:   *row.ProductsSold,
	}
}

// blankToNil treats whitespace-only text as missing.
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
