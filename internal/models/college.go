package models

// College is an academic unit that owns programs.
type College struct {
	CollegeCode string `db:"college_code" json:"college_code" yaml:"college_code" toml:"college_code"`
	CollegeName string `db:"college_name" json:"college_name" yaml:"college_name" toml:"college_name"`
}
