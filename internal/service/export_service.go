package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/availability"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	"github.com/Diogo19832005/barber-bliss-55-sub000/pkg/export"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
)

// Agenda export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

const agendaPageSize = 200

var agendaHeaders = []string{"time", "end", "client", "phone", "service", "status", "notes"}

type agendaLister interface {
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title, subtitle string) ([]byte, error)
}

// ExportResult is a rendered agenda file.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders a barber's daily agenda.
type ExportService struct {
	appointments agendaLister
	csv          csvRenderer
	pdf          pdfRenderer
	logger       *zap.Logger
}

// NewExportService constructs an ExportService with default renderers when
// csv or pdf is nil.
func NewExportService(appointments agendaLister, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter(0)
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{appointments: appointments, csv: csv, pdf: pdf, logger: logger}
}

// Agenda renders every appointment of the barber on date, cancelled ones
// included so the barber sees the whole day.
func (s *ExportService) Agenda(ctx context.Context, barber *models.Barber, date, format string) (*ExportResult, error) {
	if _, err := availability.ParseDate(date); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	var rows []models.Appointment
	for page := 1; ; page++ {
		items, total, err := s.appointments.List(ctx, models.AppointmentFilter{BarberID: barber.ID, Date: date, Page: page, PageSize: agendaPageSize})
		if err != nil {
			return nil, appErrors.Persistence(err, "failed to load agenda")
		}
		rows = append(rows, items...)
		if len(items) == 0 || len(rows) >= total {
			break
		}
	}

	data := agendaDataset(rows)
	filename := fmt.Sprintf("agenda-%s-%s.%s", barber.Slug, date, format)

	var (
		body        []byte
		err         error
		contentType string
	)
	switch format {
	case FormatPDF:
		title := "Agenda " + barber.DisplayName
		if barber.ShopName != "" {
			title += " - " + barber.ShopName
		}
		body, err = s.pdf.Render(data, title, date)
		contentType = "application/pdf"
	default:
		body, err = s.csv.Render(data)
		contentType = "text/csv"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render agenda")
	}

	s.logger.Info("agenda exported",
		zap.String("barber_id", barber.ID),
		zap.String("date", date),
		zap.String("format", format),
		zap.Int("appointments", len(rows)))
	return &ExportResult{Filename: filename, ContentType: contentType, Body: body}, nil
}

func agendaDataset(appointments []models.Appointment) export.Dataset {
	data := export.Dataset{
		Headers: agendaHeaders,
		Widths:  []float64{1, 1, 3, 2, 3, 2, 3},
		Rows:    make([]map[string]string, 0, len(appointments)),
	}
	for _, a := range appointments {
		data.Rows = append(data.Rows, map[string]string{
			"time":    a.StartTime,
			"end":     a.EndTime,
			"client":  a.ClientName,
			"phone":   deref(a.ClientPhone),
			"service": a.ServiceName,
			"status":  string(a.Status),
			"notes":   deref(a.Notes),
		})
	}
	return data
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
