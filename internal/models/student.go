package models

// Gender values accepted for a student.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// Student is an enrolled learner. IDNumber follows the YYYY-NNNN pattern.
type Student struct {
	IDNumber    string `db:"id_number" json:"id_number" yaml:"id_number" toml:"id_number"`
	FirstName   string `db:"first_name" json:"first_name" yaml:"first_name" toml:"first_name"`
	LastName    string `db:"last_name" json:"last_name" yaml:"last_name" toml:"last_name"`
	YearLevel   int    `db:"year_level" json:"year_level" yaml:"year_level" toml:"year_level"`
	Gender      string `db:"gender" json:"gender" yaml:"gender" toml:"gender"`
	ProgramCode string `db:"program_code" json:"program_code" yaml:"program_code" toml:"program_code"`
}
