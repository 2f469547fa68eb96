package models

// Program is a degree program offered by a college.
type Program struct {
	ProgramCode string `db:"program_code" json:"program_code" yaml:"program_code" toml:"program_code"`
	ProgramName string `db:"program_name" json:"program_name" yaml:"program_name" toml:"program_name"`
	CollegeCode string `db:"college_code" json:"college_code" yaml:"college_code" toml:"college_code"`
}
