package querybuilder

import (
	"fmt"
	"sort"
	"strings"
)

// Clauses are the rendered fragments of a Plan. Where, OrderBy and Limit carry
// their leading keyword (or are empty) so they can be appended to a base query.
type Clauses struct {
	Where   string
	OrderBy string
	Limit   string
	Args    []interface{}
}

// Assignment is the allow-listed subset of an update payload.
type Assignment struct {
	Columns []string
	Values  []interface{}
}

// Empty reports whether nothing is left to update.
func (a Assignment) Empty() bool { return len(a.Columns) == 0 }

type renderer struct {
	dialect Dialect
	args    []interface{}
}

func (r *renderer) bind(v interface{}) string {
	r.args = append(r.args, v)
	return r.dialect.Placeholder(len(r.args))
}

func (r *renderer) condition(c Condition) string {
	expr := c.Column.Name
	switch c.Comparator {
	case ContainsFold:
		if c.Column.Kind == Numeric {
			expr = "CAST(" + expr + " AS TEXT)"
		}
		return r.dialect.ContainsFold(expr, r.bind(c.Value))
	default:
		return expr + " = " + r.bind(c.Value)
	}
}

func (r *renderer) group(g Group) string {
	parts := make([]string, 0, g.size())
	for _, c := range g.Conditions {
		parts = append(parts, r.condition(c))
	}
	for _, sub := range g.Groups {
		if sub.Empty() {
			continue
		}
		rendered := r.group(sub)
		if g.size() > 1 && sub.size() > 1 {
			rendered = "(" + rendered + ")"
		}
		parts = append(parts, rendered)
	}
	return strings.Join(parts, " "+string(g.Logic)+" ")
}

func (r *renderer) where(g Group) string {
	if g.Empty() {
		return ""
	}
	return " WHERE " + r.group(g)
}

// Clauses renders the list variant: filter, order and bound LIMIT/OFFSET.
func (p Plan) Clauses(d Dialect) Clauses {
	r := &renderer{dialect: d}
	out := Clauses{Where: r.where(p.Filter)}

	out.OrderBy = fmt.Sprintf(" ORDER BY %s %s", p.Order.Column, p.Order.Direction)
	if p.Order.TieBreaker != "" {
		out.OrderBy += fmt.Sprintf(", %s %s", p.Order.TieBreaker, Asc)
	}

	limit := r.bind(p.Page.Size)
	offset := r.bind(p.Page.Offset)
	out.Limit = " LIMIT " + limit + " OFFSET " + offset
	out.Args = r.args
	return out
}

// CountClauses renders the same filter as Clauses without order or pagination.
func (p Plan) CountClauses(d Dialect) Clauses {
	r := &renderer{dialect: d}
	where := r.where(p.Filter)
	return Clauses{Where: where, Args: r.args}
}

// SelectStatement renders the listing query for plan.
func (t *Table) SelectStatement(plan Plan, d Dialect) (string, []interface{}) {
	c := plan.Clauses(d)
	query := "SELECT " + strings.Join(t.ColumnNames(), ", ") + " FROM " + t.name + c.Where + c.OrderBy + c.Limit
	return query, c.Args
}

// CountStatement renders the total-count query sharing plan's filter.
func (t *Table) CountStatement(plan Plan, d Dialect) (string, []interface{}) {
	c := plan.CountClauses(d)
	return "SELECT COUNT(*) FROM " + t.name + c.Where, c.Args
}

// FindStatement selects one row by key.
func (t *Table) FindStatement(d Dialect) string {
	return "SELECT " + strings.Join(t.ColumnNames(), ", ") + " FROM " + t.name + " WHERE " + t.key + " = " + d.Placeholder(1)
}

// ExistsStatement probes for a key. With lock set the row is share-locked
// until the surrounding transaction ends, on dialects that support it.
func (t *Table) ExistsStatement(d Dialect, lock bool) string {
	query := "SELECT 1 FROM " + t.name + " WHERE " + t.key + " = " + d.Placeholder(1)
	if lock {
		query += d.ShareLock()
	}
	return query
}

// InsertStatement inserts every declared column; values bind in ColumnNames order.
func (t *Table) InsertStatement(d Dialect) string {
	names := t.ColumnNames()
	marks := make([]string, len(names))
	for i := range names {
		marks[i] = d.Placeholder(i + 1)
	}
	return "INSERT INTO " + t.name + " (" + strings.Join(names, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
}

// DeleteStatement removes one row by key.
func (t *Table) DeleteStatement(d Dialect) string {
	return "DELETE FROM " + t.name + " WHERE " + t.key + " = " + d.Placeholder(1)
}

// Assign intersects updates with the mutable allow-list. Keys outside the
// allow-list are returned in dropped and never reach query text.
func (t *Table) Assign(updates map[string]interface{}) (Assignment, []string) {
	var a Assignment
	for _, name := range t.mutable {
		if value, ok := updates[name]; ok {
			a.Columns = append(a.Columns, name)
			a.Values = append(a.Values, value)
		}
	}

	var dropped []string
	for name := range updates {
		if !t.IsMutable(name) {
			dropped = append(dropped, name)
		}
	}
	sort.Strings(dropped)
	return a, dropped
}

// UpdateStatement renders a single-row update for a non-empty assignment.
func (t *Table) UpdateStatement(key interface{}, a Assignment, d Dialect) (string, []interface{}) {
	r := &renderer{dialect: d}
	sets := make([]string, len(a.Columns))
	for i, name := range a.Columns {
		sets[i] = name + " = " + r.bind(a.Values[i])
	}
	where := t.key + " = " + r.bind(key)
	return "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") + " WHERE " + where, r.args
}
