package inventory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/SalangsangJohnPatrick/inventory-management/pkg/db/models"
	pkgerrors "github.com/SalangsangJohnPatrick/inventory-management/pkg/errors"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/metrics"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/validation"
	"github.com/shopspring/decimal"
)

const (
	ImportSuccessMessage = "Inventory imported successfully"
	importFailedMessage  = "Unable to import inventory."
)

// Import columns, in file order. The header row is skipped, not read.
const (
	colBrandName = iota
	colType
	colQuantityOnHand
	colPrice
	colProductsSold
)

type itemCreator interface {
	Create(ctx context.Context, item *models.InventoryItem) error
}

// ImportResult is returned when every row was persisted.
type ImportResult struct {
	Success  string `json:"success"`
	Imported int    `json:"imported"`
}

// RowError identifies the record that stopped an import. Row counts data
// records from 1; Line is the line in the file where the record starts.
type RowError struct {
	Row    int                    `json:"row"`
	Line   int                    `json:"line"`
	Errors validation.FieldErrors `json:"errors"`
}

// Importer loads CSV rows into the inventory one at a time. Rows are not
// wrapped in a transaction: anything persisted before a failing row stays.
type Importer struct {
	store   itemCreator
	metrics *metrics.ImportMetrics
	now     func() time.Time
}

// NewImporter builds an importer writing through store.
func NewImporter(store itemCreator, m *metrics.ImportMetrics) *Importer {
	return &Importer{store: store, metrics: m, now: time.Now}
}

// Import reads r until EOF or the first row that fails to parse, validate
// or persist.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	started := i.now()
	imported, err := i.run(ctx, r)

	outcome := metrics.ImportOutcomeSuccess
	switch {
	case err == nil:
	case pkgerrors.Is(err, pkgerrors.CodeValidation):
		outcome = metrics.ImportOutcomeInvalid
	default:
		outcome = metrics.ImportOutcomeFailed
	}
	i.metrics.Record(outcome, imported, i.now().Sub(started))

	if err != nil {
		return nil, err
	}
	return &ImportResult{Success: ImportSuccessMessage, Imported: imported}, nil
}

func (i *Importer) run(ctx context.Context, r io.Reader) (int, error) {
	if i.store == nil {
		return 0, pkgerrors.New(pkgerrors.CodeInternal, "import store not configured")
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, readError(err, 0)
	}

	imported := 0
	for row := 1; ; row++ {
		if err := ctx.Err(); err != nil {
			return imported, pkgerrors.Wrap(pkgerrors.CodeInternal, err, importFailedMessage).Public()
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return imported, nil
		}
		if err != nil {
			return imported, readError(err, row)
		}
		line, _ := reader.FieldPos(0)

		parsed, fieldErrs := ParseImportRecord(record)
		fieldErrs.Merge(ValidateImportRow(parsed))
		if !fieldErrs.Empty() {
			return imported, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Import aborted at row %d.", row)).
				WithDetails(RowError{Row: row, Line: line, Errors: fieldErrs})
		}

		if err := i.store.Create(ctx, parsed.Model()); err != nil {
			return imported, pkgerrors.Wrap(pkgerrors.CodeInternal, err, importFailedMessage).Public()
		}
		imported++
	}
}

// readError maps csv syntax errors to a client error for the offending
// record and anything else to an internal failure.
func readError(err error, row int) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Malformed CSV at line %d.", parseErr.StartLine)).
			WithDetails(RowError{
				Row:    row,
				Line:   parseErr.StartLine,
				Errors: validation.FieldErrors{"_": parseErr.Err.Error()},
			})
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, importFailedMessage).Public()
}

// ParseImportRecord maps positional CSV cells onto an ImportRow. Blank or
// absent cells stay nil; numbers that do not parse are reported as field
// errors and left nil.
func ParseImportRecord(record []string) (ImportRow, validation.FieldErrors) {
	errs := validation.FieldErrors{}
	var row ImportRow

	row.BrandName = cell(record, colBrandName)
	row.Type = cell(record, colType)

	if raw := cell(record, colQuantityOnHand); raw != nil {
		if n, err := strconv.Atoi(*raw); err == nil {
			row.QuantityOnHand = &n
		} else {
			errs.Add("quantity_on_hand", validation.Message("quantity_on_hand", "integer", "", 0))
		}
	}
	if raw := cell(record, colPrice); raw != nil {
		if d, err := decimal.NewFromString(*raw); err == nil {
			row.Price = &d
		} else {
			errs.Add("price", validation.Message("price", "numeric", "", 0))
		}
	}
	if raw := cell(record, colProductsSold); raw != nil {
		if n, err := strconv.Atoi(*raw); err == nil {
			row.ProductsSold = &n
		} else {
			errs.Add("products_sold", validation.Message("products_sold", "integer", "", 0))
		}
	}
	return row, errs
}

func cell(record []string, idx int) *string {
	if idx >= len(record) {
		return nil
	}
	v := strings.TrimSpace(record[idx])
	if v == "" {
		return nil
	}
	return &v
}
