package repository

import "github.com/noah-isme/ssis-api/internal/querybuilder"

// CollegeTable declares the colleges allow-lists. college_code is immutable.
func CollegeTable() *querybuilder.Table {
	return querybuilder.MustTable(querybuilder.TableConfig{
		Name:        "colleges",
		Key:         "college_code",
		Columns:     []querybuilder.Column{{Name: "college_code"}, {Name: "college_name"}},
		Searchable:  []string{"college_code", "college_name"},
		Sortable:    []string{"college_code", "college_name"},
		DefaultSort: "college_code",
		Mutable:     []string{"college_name"},
	})
}

// ProgramTable declares the programs allow-lists.
func ProgramTable() *querybuilder.Table {
	return querybuilder.MustTable(querybuilder.TableConfig{
		Name: "programs",
		Key:  "program_code",
		Columns: []querybuilder.Column{
			{Name: "program_code"},
			{Name: "program_name"},
			{Name: "college_code"},
		},
		Searchable:  []string{"program_code", "program_name", "college_code"},
		Sortable:    []string{"program_code", "program_name", "college_code"},
		DefaultSort: "program_code",
		Mutable:     []string{"program_name", "college_code"},
		Scopable:    []string{"college_code"},
	})
}

// StudentTable declares the students allow-lists. year_level is numeric and
// is matched through a text cast.
func StudentTable() *querybuilder.Table {
	return querybuilder.MustTable(querybuilder.TableConfig{
		Name: "students",
		Key:  "id_number",
		Columns: []querybuilder.Column{
			{Name: "id_number"},
			{Name: "first_name"},
			{Name: "last_name"},
			{Name: "year_level", Kind: querybuilder.Numeric},
			{Name: "gender"},
			{Name: "program_code"},
		},
		Searchable:  []string{"id_number", "first_name", "last_name", "year_level", "gender", "program_code"},
		Sortable:    []string{"id_number", "first_name", "last_name", "year_level", "gender", "program_code"},
		DefaultSort: "id_number",
		Mutable:     []string{"first_name", "last_name", "year_level", "gender", "program_code"},
		Scopable:    []string{"program_code"},
	})
}
