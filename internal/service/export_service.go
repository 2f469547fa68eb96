package service

import (
	"fmt"
	"strings"
	"time"

	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
	"github.com/noah-isme/ssis-api/pkg/export"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type csvRenderer interface {
	ContentType() string
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	ContentType() string
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered export ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders listing datasets as downloadable files.
type ExportService struct {
	csv csvRenderer
	pdf pdfRenderer
	now func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the
// package defaults.
func NewExportService(csv csvRenderer, pdf pdfRenderer) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, now: time.Now}
}

// Render encodes data in format. An empty format means CSV.
func (s *ExportService) Render(entity, format string, data export.Dataset) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}

	var (
		body        []byte
		contentType string
		err         error
	)
	switch format {
	case FormatCSV:
		body, err = s.csv.Render(data)
		contentType = s.csv.ContentType()
	case FormatPDF:
		body, err = s.pdf.Render(data, strings.ToUpper(entity[:1])+entity[1:])
		contentType = s.pdf.ContentType()
	default:
		return nil, appErrors.Clone(appErrors.ErrInvalidFormat, "")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal, "failed to render export")
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", entity, s.now().UTC().Format("20060102-150405"), format),
		ContentType: contentType,
		Body:        body,
	}, nil
}
