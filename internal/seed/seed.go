// Package seed loads college, program and student fixtures and writes them
// through the service layer, so seeded rows pass the same validation and
// referential checks as API writes.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/service"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
)

// Fixture is the on-disk seed document.
type Fixture struct {
	Colleges []models.College `json:"colleges" yaml:"colleges" toml:"colleges"`
	Programs []models.Program `json:"programs" yaml:"programs" toml:"programs"`
	Students []models.Student `json:"students" yaml:"students" toml:"students"`
}

// Load reads a fixture file. The format follows the extension: .yaml, .yml,
// .toml or .json.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Decode(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."), data)
}

// Decode parses data in the named format.
func Decode(format string, data []byte) (*Fixture, error) {
	var f Fixture
	var err error
	switch format {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &f)
	case "toml":
		err = toml.Unmarshal(data, &f)
	case "json":
		err = json.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unsupported fixture format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s fixture: %w", format, err)
	}
	return &f, nil
}

type collegeCreator interface {
	Create(ctx context.Context, req service.CreateCollegeRequest) (*models.College, error)
}

type programCreator interface {
	Create(ctx context.Context, req service.CreateProgramRequest) (*models.Program, error)
}

type studentCreator interface {
	Create(ctx context.Context, req service.CreateStudentRequest) (*models.Student, error)
}

// Report counts the rows a run inserted and the ones already present.
type Report struct {
	Created int
	Skipped int
}

// Seeder applies fixtures in dependency order.
type Seeder struct {
	colleges collegeCreator
	programs programCreator
	students studentCreator
	logger   *zap.Logger
}

// NewSeeder constructs a Seeder.
func NewSeeder(colleges collegeCreator, programs programCreator, students studentCreator, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{colleges: colleges, programs: programs, students: students, logger: logger}
}

// Apply inserts colleges, then programs, then students. Rows that already
// exist are skipped so a fixture can be applied repeatedly. Any other failure
// stops the run and names the offending row.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (Report, error) {
	var report Report

	for _, c := range f.Colleges {
		_, err := s.colleges.Create(ctx, service.CreateCollegeRequest{CollegeCode: c.CollegeCode, CollegeName: c.CollegeName})
		if err := s.tally(&report, "college", c.CollegeCode, err); err != nil {
			return report, err
		}
	}

	for _, p := range f.Programs {
		_, err := s.programs.Create(ctx, service.CreateProgramRequest{
			ProgramCode: p.ProgramCode,
			ProgramName: p.ProgramName,
			CollegeCode: p.CollegeCode,
		})
		if err := s.tally(&report, "program", p.ProgramCode, err); err != nil {
			return report, err
		}
	}

	for _, st := range f.Students {
		yearLevel := st.YearLevel
		_, err := s.students.Create(ctx, service.CreateStudentRequest{
			IDNumber:    st.IDNumber,
			FirstName:   st.FirstName,
			LastName:    st.LastName,
			YearLevel:   &yearLevel,
			Gender:      st.Gender,
			ProgramCode: st.ProgramCode,
		})
		if err := s.tally(&report, "student", st.IDNumber, err); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (s *Seeder) tally(report *Report, entity, key string, err error) error {
	switch {
	case err == nil:
		report.Created++
		return nil
	case errors.Is(err, appErrors.ErrAlreadyExists):
		report.Skipped++
		s.logger.Debug("seed row exists", zap.String("entity", entity), zap.String("key", key))
		return nil
	default:
		return fmt.Errorf("seed %s %q: %w", entity, key, err)
	}
}
