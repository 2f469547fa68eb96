package querybuilder

import (
	"fmt"
	"regexp"
)

// ColumnKind tells the renderer how a column is compared against a search term.
type ColumnKind int

const (
	// Text columns are matched as they are stored.
	Text ColumnKind = iota
	// Numeric columns are cast to text before matching.
	Numeric
)

// Column is a declared table column.
type Column struct {
	Name string
	Kind ColumnKind
}

// TableConfig declares the column allow-lists for one entity table.
type TableConfig struct {
	Name          string
	Key           string
	Columns       []Column
	Searchable    []string
	Sortable      []string
	DefaultSort   string
	DefaultSearch string
	Mutable       []string
	Scopable      []string
}

// Table is the validated, read-only form of a TableConfig. Every identifier
// that ends up in query text is taken from a Table, never from caller input.
type Table struct {
	name          string
	key           string
	columns       []Column
	index         map[string]Column
	searchable    []Column
	sortable      map[string]struct{}
	defaultSort   string
	defaultSearch string
	mutable       []string
	mutableSet    map[string]struct{}
	scopable      map[string]struct{}
}

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// NewTable validates cfg and returns an immutable Table.
func NewTable(cfg TableConfig) (*Table, error) {
	if !identifierPattern.MatchString(cfg.Name) {
		return nil, fmt.Errorf("table name %q is not a plain identifier", cfg.Name)
	}
	if len(cfg.Columns) == 0 {
		return nil, fmt.Errorf("table %s declares no columns", cfg.Name)
	}

	t := &Table{
		name:       cfg.Name,
		index:      make(map[string]Column, len(cfg.Columns)),
		sortable:   make(map[string]struct{}, len(cfg.Sortable)),
		mutableSet: make(map[string]struct{}, len(cfg.Mutable)),
		scopable:   make(map[string]struct{}, len(cfg.Scopable)),
	}
	for _, col := range cfg.Columns {
		if !identifierPattern.MatchString(col.Name) {
			return nil, fmt.Errorf("table %s: column %q is not a plain identifier", cfg.Name, col.Name)
		}
		if _, dup := t.index[col.Name]; dup {
			return nil, fmt.Errorf("table %s: column %s declared twice", cfg.Name, col.Name)
		}
		t.index[col.Name] = col
		t.columns = append(t.columns, col)
	}

	if _, ok := t.index[cfg.Key]; !ok {
		return nil, fmt.Errorf("table %s: key %q is not a declared column", cfg.Name, cfg.Key)
	}
	t.key = cfg.Key

	if len(cfg.Searchable) == 0 {
		return nil, fmt.Errorf("table %s declares no searchable columns", cfg.Name)
	}
	for _, name := range cfg.Searchable {
		col, ok := t.index[name]
		if !ok {
			return nil, fmt.Errorf("table %s: searchable column %q is not declared", cfg.Name, name)
		}
		t.searchable = append(t.searchable, col)
	}
	t.defaultSearch = t.searchable[0].Name
	if cfg.DefaultSearch != "" {
		if _, ok := t.searchColumn(cfg.DefaultSearch); !ok {
			return nil, fmt.Errorf("table %s: default search column %q is not searchable", cfg.Name, cfg.DefaultSearch)
		}
		t.defaultSearch = cfg.DefaultSearch
	}

	for _, name := range cfg.Sortable {
		if _, ok := t.index[name]; !ok {
			return nil, fmt.Errorf("table %s: sortable column %q is not declared", cfg.Name, name)
		}
		t.sortable[name] = struct{}{}
	}
	if _, ok := t.sortable[cfg.DefaultSort]; !ok {
		return nil, fmt.Errorf("table %s: default sort %q is not sortable", cfg.Name, cfg.DefaultSort)
	}
	t.defaultSort = cfg.DefaultSort

	for _, name := range cfg.Mutable {
		if _, ok := t.index[name]; !ok {
			return nil, fmt.Errorf("table %s: mutable column %q is not declared", cfg.Name, name)
		}
		if name == t.key {
			return nil, fmt.Errorf("table %s: key column %s cannot be mutable", cfg.Name, name)
		}
		t.mutableSet[name] = struct{}{}
	}
	// keep mutable columns in declaration order so SET clauses are deterministic
	for _, col := range t.columns {
		if _, ok := t.mutableSet[col.Name]; ok {
			t.mutable = append(t.mutable, col.Name)
		}
	}

	for _, name := range cfg.Scopable {
		if _, ok := t.index[name]; !ok {
			return nil, fmt.Errorf("table %s: scope column %q is not declared", cfg.Name, name)
		}
		t.scopable[name] = struct{}{}
	}

	return t, nil
}

// MustTable is NewTable for package-level declarations; it panics on an invalid config.
func MustTable(cfg TableConfig) *Table {
	t, err := NewTable(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Key returns the business key column.
func (t *Table) Key() string { return t.key }

// ColumnNames returns the declared columns in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Mutable returns the columns an update may touch, in declaration order.
func (t *Table) Mutable() []string {
	out := make([]string, len(t.mutable))
	copy(out, t.mutable)
	return out
}

// IsMutable reports whether name is in the mutable allow-list.
func (t *Table) IsMutable(name string) bool {
	_, ok := t.mutableSet[name]
	return ok
}

// DefaultSort returns the column used when sort_by is absent or not allowed.
func (t *Table) DefaultSort() string { return t.defaultSort }

// DefaultSearch returns the column used when search_by names a column outside the allow-list.
func (t *Table) DefaultSearch() string { return t.defaultSearch }

func (t *Table) searchColumn(name string) (Column, bool) {
	for _, col := range t.searchable {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}
