package querybuilder

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const studentColumns = "id_number, first_name, last_name, year_level, gender, program_code"

func studentsTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(TableConfig{
		Name: "students",
		Key:  "id_number",
		Columns: []Column{
			{Name: "id_number"},
			{Name: "first_name"},
			{Name: "last_name"},
			{Name: "year_level", Kind: Numeric},
			{Name: "gender"},
			{Name: "program_code"},
		},
		Searchable:  []string{"id_number", "first_name", "last_name", "year_level", "gender", "program_code"},
		Sortable:    []string{"id_number", "first_name", "last_name", "year_level", "gender", "program_code"},
		DefaultSort: "id_number",
		Mutable:     []string{"first_name", "last_name", "year_level", "gender", "program_code"},
		Scopable:    []string{"program_code"},
	})
	require.NoError(t, err)
	return table
}

func TestSelectStatementSearchAcrossAllColumns(t *testing.T) {
	table := studentsTable(t)
	plan := table.Plan(Params{SearchTerm: "ali", Page: 1, PageSize: 10})

	query, args := table.SelectStatement(plan, Postgres)

	expected := "SELECT " + studentColumns + " FROM students WHERE " +
		`id_number ILIKE $1 ESCAPE '\' OR first_name ILIKE $2 ESCAPE '\' OR last_name ILIKE $3 ESCAPE '\' OR ` +
		`CAST(year_level AS TEXT) ILIKE $4 ESCAPE '\' OR gender ILIKE $5 ESCAPE '\' OR program_code ILIKE $6 ESCAPE '\' ` +
		"ORDER BY id_number ASC LIMIT $7 OFFSET $8"
	assert.Equal(t, expected, query)
	assert.Equal(t, []interface{}{"%ali%", "%ali%", "%ali%", "%ali%", "%ali%", "%ali%", 10, 0}, args)
}

func TestSelectStatementSingleColumnSearch(t *testing.T) {
	table := studentsTable(t)
	plan := table.Plan(Params{SearchBy: "last_name", SearchTerm: "Cruz", SortBy: "last_name", SortOrder: "desc", Page: 2, PageSize: 20})

	query, args := table.SelectStatement(plan, Postgres)

	assert.Equal(t, "SELECT "+studentColumns+` FROM students WHERE last_name ILIKE $1 ESCAPE '\' ORDER BY last_name DESC, id_number ASC LIMIT $2 OFFSET $3`, query)
	assert.Equal(t, []interface{}{"%Cruz%", 20, 20}, args)
}

func TestPlanNumericColumnIsCast(t *testing.T) {
	table := studentsTable(t)
	plan := table.Plan(Params{SearchBy: "year_level", SearchTerm: "3", Page: 1, PageSize: 50})

	query, _ := table.CountStatement(plan, Postgres)

	assert.Equal(t, `SELECT COUNT(*) FROM students WHERE CAST(year_level AS TEXT) ILIKE $1 ESCAPE '\'`, query)
}

func TestPlanFallbacks(t *testing.T) {
	table := studentsTable(t)

	cases := []struct {
		name      string
		params    Params
		sort      string
		direction Direction
		search    string
	}{
		{name: "unknown sort column", params: Params{SortBy: "password"}, sort: "id_number", direction: Asc},
		{name: "unknown direction", params: Params{SortBy: "gender", SortOrder: "sideways"}, sort: "gender", direction: Asc},
		{name: "lowercase desc", params: Params{SortBy: "GENDER", SortOrder: " desc "}, sort: "gender", direction: Desc},
		{name: "unknown search column", params: Params{SearchBy: "email", SearchTerm: "x"}, sort: "id_number", direction: Asc, search: "id_number"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan := table.Plan(tc.params)
			assert.Equal(t, tc.sort, plan.Order.Column)
			assert.Equal(t, tc.direction, plan.Order.Direction)
			if tc.search != "" {
				require.Len(t, plan.Filter.Conditions, 1)
				assert.Equal(t, tc.search, plan.Filter.Conditions[0].Column.Name)
			}
		})
	}
}

func TestPlanRejectsInjectionInIdentifiers(t *testing.T) {
	table := studentsTable(t)
	hostile := "last_name; DROP TABLE students; --"
	plan := table.Plan(Params{SortBy: hostile, SearchBy: hostile, SearchTerm: "'; DELETE FROM students; --", Page: 1, PageSize: 5})

	query, args := table.SelectStatement(plan, Postgres)

	assert.NotContains(t, query, "DROP")
	assert.NotContains(t, query, "DELETE")
	assert.Contains(t, query, "ORDER BY id_number ASC")
	assert.Equal(t, "%'; DELETE FROM students; --%", args[0])
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
		wantOffset         int
	}{
		{page: 0, size: 0, wantPage: 1, wantSize: 1, wantOffset: 0},
		{page: -4, size: 50, wantPage: 1, wantSize: 50, wantOffset: 0},
		{page: 3, size: 10, wantPage: 3, wantSize: 10, wantOffset: 20},
		{page: 2, size: 1000, wantPage: 2, wantSize: 100, wantOffset: 100},
		{page: 1, size: -1, wantPage: 1, wantSize: 1, wantOffset: 0},
		{page: math.MaxInt, size: 50, wantPage: math.MaxInt/50 + 1, wantSize: 50, wantOffset: math.MaxInt / 50 * 50},
		{page: math.MaxInt, size: 1, wantPage: math.MaxInt, wantSize: 1, wantOffset: math.MaxInt - 1},
	}

	for _, tc := range cases {
		got := NormalizePage(tc.page, tc.size)
		assert.Equal(t, Page{Number: tc.wantPage, Size: tc.wantSize, Offset: tc.wantOffset}, got)
	}
}

func TestSearchTermEscapesWildcards(t *testing.T) {
	table := studentsTable(t)
	plan := table.Plan(Params{SearchBy: "first_name", SearchTerm: `50%_off\`})

	_, args := table.CountStatement(plan, Postgres)

	assert.Equal(t, []interface{}{`%50\%\_off\\%`}, args)
}

func TestBlankSearchTermHasNoFilter(t *testing.T) {
	table := studentsTable(t)
	plan := table.Plan(Params{SearchBy: "first_name", SearchTerm: "   ", Page: 1, PageSize: 50})

	query, args := table.CountStatement(plan, Postgres)

	assert.Equal(t, "SELECT COUNT(*) FROM students", query)
	assert.Empty(t, args)
}

func TestSearchTermKeepsEdgeSpaces(t *testing.T) {
	table := studentsTable(t)
	plan := table.Plan(Params{SearchBy: "first_name", SearchTerm: "Ann ", Page: 1, PageSize: 50})

	_, args := table.CountStatement(plan, Postgres)

	assert.Equal(t, []interface{}{"%Ann %"}, args)
}

func TestHugePageOffsetNeverNegative(t *testing.T) {
	for _, size := range []int{1, 7, 50, MaxPageSize} {
		got := NormalizePage(math.MaxInt, size)
		assert.GreaterOrEqual(t, got.Offset, 0, "size %d", size)
		assert.Equal(t, (got.Number-1)*got.Size, got.Offset, "size %d", size)
	}
}

func TestScopeIsAndedWithSearchGroup(t *testing.T) {
	table := studentsTable(t)
	plan := table.Plan(Params{
		SearchTerm: "ana",
		Page:       1,
		PageSize:   5,
		Scopes:     []Scope{{Column: "program_code", Value: "BSCS"}, {Column: "gender", Value: "MALE"}},
	})

	c := plan.CountClauses(Postgres)

	require.True(t, strings.HasPrefix(c.Where, " WHERE program_code = $1 AND ("))
	assert.True(t, strings.HasSuffix(c.Where, "program_code ILIKE $7 ESCAPE '\\')"))
	assert.Len(t, c.Args, 7)
	assert.Equal(t, "BSCS", c.Args[0])
}

func TestCountSharesListFilter(t *testing.T) {
	table := studentsTable(t)
	plan := table.Plan(Params{SearchBy: "gender", SearchTerm: "fem", Page: 4, PageSize: 10})

	list := plan.Clauses(Postgres)
	count := plan.CountClauses(Postgres)

	assert.Equal(t, list.Where, count.Where)
	assert.Equal(t, list.Args[:len(count.Args)], count.Args)
	assert.Empty(t, count.OrderBy)
	assert.Empty(t, count.Limit)
}

func TestSQLiteDialect(t *testing.T) {
	table := studentsTable(t)
	plan := table.Plan(Params{SearchBy: "year_level", SearchTerm: "2", SortBy: "year_level", Page: 1, PageSize: 10})

	query, args := table.SelectStatement(plan, SQLite)

	assert.Equal(t, "SELECT "+studentColumns+` FROM students WHERE CAST(year_level AS TEXT) LIKE ? ESCAPE '\' ORDER BY year_level ASC, id_number ASC LIMIT ? OFFSET ?`, query)
	assert.Equal(t, []interface{}{"%2%", 10, 0}, args)
	assert.Equal(t, "SELECT 1 FROM students WHERE id_number = ?", table.ExistsStatement(SQLite, true))
}

func TestAssignKeepsOnlyMutableColumns(t *testing.T) {
	table := studentsTable(t)

	a, dropped := table.Assign(map[string]interface{}{
		"year_level":    3,
		"first_name":    "Ana",
		"id_number":     "2024-0001",
		"unknown_field": "x",
	})

	assert.Equal(t, []string{"first_name", "year_level"}, a.Columns)
	assert.Equal(t, []interface{}{"Ana", 3}, a.Values)
	assert.Equal(t, []string{"id_number", "unknown_field"}, dropped)

	query, args := table.UpdateStatement("2024-0001", a, Postgres)
	assert.Equal(t, "UPDATE students SET first_name = $1, year_level = $2 WHERE id_number = $3", query)
	assert.Equal(t, []interface{}{"Ana", 3, "2024-0001"}, args)
}

func TestAssignEmptyIntersection(t *testing.T) {
	table := studentsTable(t)
	a, dropped := table.Assign(map[string]interface{}{"unknown_field": "x"})
	assert.True(t, a.Empty())
	assert.Equal(t, []string{"unknown_field"}, dropped)
}

func TestStatementsForKeyedAccess(t *testing.T) {
	table := studentsTable(t)

	assert.Equal(t, "SELECT "+studentColumns+" FROM students WHERE id_number = $1", table.FindStatement(Postgres))
	assert.Equal(t, "SELECT 1 FROM students WHERE id_number = $1 FOR KEY SHARE", table.ExistsStatement(Postgres, true))
	assert.Equal(t, "SELECT 1 FROM students WHERE id_number = $1", table.ExistsStatement(Postgres, false))
	assert.Equal(t, "INSERT INTO students ("+studentColumns+") VALUES ($1, $2, $3, $4, $5, $6)", table.InsertStatement(Postgres))
	assert.Equal(t, "DELETE FROM students WHERE id_number = $1", table.DeleteStatement(Postgres))
}

func TestNewTableValidation(t *testing.T) {
	base := TableConfig{
		Name:        "colleges",
		Key:         "college_code",
		Columns:     []Column{{Name: "college_code"}, {Name: "college_name"}},
		Searchable:  []string{"college_code", "college_name"},
		Sortable:    []string{"college_code", "college_name"},
		DefaultSort: "college_code",
		Mutable:     []string{"college_name"},
	}

	_, err := NewTable(base)
	require.NoError(t, err)

	broken := base
	broken.Name = "colleges; drop"
	_, err = NewTable(broken)
	assert.Error(t, err)

	broken = base
	broken.DefaultSort = "created_at"
	_, err = NewTable(broken)
	assert.Error(t, err)

	broken = base
	broken.Mutable = []string{"college_code"}
	_, err = NewTable(broken)
	assert.Error(t, err)

	broken = base
	broken.Searchable = []string{"dean"}
	_, err = NewTable(broken)
	assert.Error(t, err)

	broken = base
	broken.DefaultSearch = "dean"
	_, err = NewTable(broken)
	assert.Error(t, err)
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("pgx")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = DialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}
