package inventory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/SalangsangJohnPatrick/inventory-management/pkg/db/models"
	pkgerrors "github.com/SalangsangJohnPatrick/inventory-management/pkg/errors"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultSortField = "id"
	SortAsc          = "asc"
	SortDesc         = "desc"

	msgInvalidColumn = "Invalid column name"
	msgInvalidOrder  = `Invalid order value. Must be "asc" or "desc"`
)

type columnKind int

const (
	kindText columnKind = iota
	kindInt
	kindDecimal
)

// sortableColumns is the allow-list shared by sorting and filtering.
var sortableColumns = map[string]columnKind{
	"id":               kindInt,
	"brand_name":       kindText,
	"type":             kindText,
	"quantity_on_hand": kindInt,
	"price":            kindDecimal,
	"inventory_value":  kindDecimal,
	"products_sold":    kindInt,
	"sales_value":      kindDecimal,
}

var (
	searchTextColumns    = []string{"brand_name", "type"}
	searchNumericColumns = []string{"quantity_on_hand", "price", "inventory_value", "products_sold", "sales_value"}
)

// ListQuery describes one page request against the inventory table.
type ListQuery struct {
	SortField string
	SortOrder string
	Search    string
	Page      int
	PerPage   int
	Filters   map[string]string
}

// SortableColumns returns the allow-listed column names in a stable order.
func SortableColumns() []string {
	out := make([]string, 0, len(sortableColumns))
	for col := range sortableColumns {
		out = append(out, col)
	}
	sort.Strings(out)
	return out
}

// NormalizeSort applies defaults and checks field and order against the
// allow-list. The returned order is lower case.
func NormalizeSort(field, order string) (string, string, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		field = DefaultSortField
	}
	if _, ok := sortableColumns[field]; !ok {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, msgInvalidColumn).
			WithDetails(map[string]any{"column": field, "allowed": SortableColumns()})
	}
	order = strings.ToLower(strings.TrimSpace(order))
	if order == "" {
		order = SortAsc
	}
	if order != SortAsc && order != SortDesc {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, msgInvalidOrder)
	}
	return field, order, nil
}

// buildFilters turns column/value pairs into equality expressions. Empty
// values are skipped and numeric columns must parse.
func buildFilters(filters map[string]string) ([]clause.Expression, error) {
	cols := make([]string, 0, len(filters))
	for col := range filters {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	exprs := make([]clause.Expression, 0, len(cols))
	for _, col := range cols {
		raw := strings.TrimSpace(filters[col])
		if raw == "" {
			continue
		}
		kind, ok := sortableColumns[col]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Invalid filter column: %s", col)).
				WithDetails(map[string]any{"column": col, "allowed": SortableColumns()})
		}
		var value any
		switch kind {
		case kindInt:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Invalid filter value for %s", col))
			}
			value = n
		case kindDecimal:
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Invalid filter value for %s", col))
			}
			value = d
		default:
			value = raw
		}
		exprs = append(exprs, clause.Eq{Column: clause.Column{Name: col}, Value: value})
	}
	return exprs, nil
}

// escapeLike escapes LIKE wildcards so search text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func searchScope(search string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		search = strings.TrimSpace(search)
		if search == "" {
			return tx
		}
		pattern := "%" + escapeLike(search) + "%"
		conds := make([]string, 0, len(searchTextColumns)+len(searchNumericColumns))
		args := make([]any, 0, cap(conds))
		for _, col := range searchTextColumns {
			conds = append(conds, fmt.Sprintf(`LOWER(%s) LIKE LOWER(?) ESCAPE '\'`, col))
			args = append(args, pattern)
		}
		sqlite := tx.Dialector != nil && tx.Dialector.Name() == "sqlite"
		for _, col := range searchNumericColumns {
			conds = append(conds, fmt.Sprintf(`%s LIKE ? ESCAPE '\'`, numericAsText(col, sqlite)))
			args = append(args, pattern)
		}
		return tx.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// numericAsText renders a numeric column the way it is serialized. Postgres
// keeps the NUMERIC(p,2) scale when casting; sqlite stores REAL and needs an
// explicit two decimal format.
func numericAsText(col string, sqlite bool) string {
	if sqlite && sortableColumns[col] == kindDecimal {
		return fmt.Sprintf(`printf('%%.2f', %s)`, col)
	}
	return fmt.Sprintf(`CAST(%s AS TEXT)`, col)
}

func orderScope(field, order string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: field}, Desc: order == SortDesc})
		if field != DefaultSortField {
			tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: DefaultSortField}})
		}
		return tx
	}
}

// Query returns one filtered, searched and sorted page plus its metadata.
func (r *Repository) Query(ctx context.Context, q ListQuery) ([]models.InventoryItem, pagination.Meta, error) {
	field, order, err := NormalizeSort(q.SortField, q.SortOrder)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	filters, err := buildFilters(q.Filters)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	params := pagination.Params{Page: q.Page, PerPage: q.PerPage}.Normalize()

	base := func() *gorm.DB {
		tx := r.DB(ctx).Model(&models.InventoryItem{}).Scopes(searchScope(q.Search))
		if len(filters) > 0 {
			tx = tx.Where(clause.And(filters...))
		}
		return tx
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, err
	}

	items := []models.InventoryItem{}
	if err := base().
		Scopes(orderScope(field, order)).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&items).Error; err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(params, total, len(items)), nil
}

// Sorted returns every live item ordered by an allow-listed column.
func (r *Repository) Sorted(ctx context.Context, field, order string) ([]models.InventoryItem, error) {
	field, order, err := NormalizeSort(field, order)
	if err != nil {
		return nil, err
	}
	items := []models.InventoryItem{}
	if err := r.DB(ctx).Scopes(orderScope(field, order)).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
