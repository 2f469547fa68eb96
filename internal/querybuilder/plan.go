package querybuilder

import (
	"math"
	"strings"
)

const (
	// DefaultPageSize applies when a caller does not ask for a page size at all.
	DefaultPageSize = 50
	// MaxPageSize bounds every page.
	MaxPageSize = 100
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Params carries raw, untrusted listing parameters.
type Params struct {
	SearchBy   string
	SearchTerm string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
	Scopes     []Scope
}

// Scope restricts a listing to rows whose column equals Value. Scopes are set by
// the server (route parameters), not by query strings.
type Scope struct {
	Column string
	Value  interface{}
}

// Order is the resolved ORDER BY.
type Order struct {
	Column     string
	Direction  Direction
	TieBreaker string
}

// Page is the resolved pagination window.
type Page struct {
	Number int
	Size   int
	Offset int
}

// Plan is a normalised listing request. It holds no SQL text; a Dialect renders it.
type Plan struct {
	Filter Group
	Order  Order
	Page   Page
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Plan normalises params against the table's allow-lists. It never fails:
// anything outside an allow-list falls back to the table defaults.
func (t *Table) Plan(params Params) Plan {
	return Plan{
		Filter: t.filter(params),
		Order:  t.order(params.SortBy, params.SortOrder),
		Page:   NormalizePage(params.Page, params.PageSize),
	}
}

// NormalizePage coerces page to >= 1 and size into [1, MaxPageSize]. Pages
// whose offset would overflow an int are capped at the last representable
// page, which is past any real table and so comes back empty.
func NormalizePage(page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if limit := math.MaxInt / size; page-1 > limit {
		page = limit + 1
	}
	return Page{Number: page, Size: size, Offset: (page - 1) * size}
}

func (t *Table) order(sortBy, sortOrder string) Order {
	column := strings.ToLower(strings.TrimSpace(sortBy))
	if _, ok := t.sortable[column]; !ok {
		column = t.defaultSort
	}

	direction := Asc
	if strings.EqualFold(strings.TrimSpace(sortOrder), string(Desc)) {
		direction = Desc
	}

	order := Order{Column: column, Direction: direction}
	if column != t.key {
		order.TieBreaker = t.key
	}
	return order
}

func (t *Table) filter(params Params) Group {
	root := Group{Logic: And}

	for _, scope := range params.Scopes {
		if _, ok := t.scopable[scope.Column]; !ok {
			continue
		}
		root.Conditions = append(root.Conditions, Condition{
			Column:     t.index[scope.Column],
			Comparator: Equal,
			Value:      scope.Value,
		})
	}

	if strings.TrimSpace(params.SearchTerm) == "" {
		return root
	}
	pattern := "%" + likeEscaper.Replace(params.SearchTerm) + "%"

	searchBy := strings.ToLower(strings.TrimSpace(params.SearchBy))
	if searchBy == "" {
		either := Group{Logic: Or}
		for _, col := range t.searchable {
			either.Conditions = append(either.Conditions, Condition{Column: col, Comparator: ContainsFold, Value: pattern})
		}
		root.Groups = append(root.Groups, either)
		return root
	}

	col, ok := t.searchColumn(searchBy)
	if !ok {
		col, _ = t.searchColumn(t.defaultSearch)
	}
	root.Conditions = append(root.Conditions, Condition{Column: col, Comparator: ContainsFold, Value: pattern})
	return root
}
