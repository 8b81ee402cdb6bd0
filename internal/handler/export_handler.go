package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/middleware"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/service"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
	"github.com/Diogo19832005/barber-bliss-55-sub000/pkg/response"
)

type agendaExporter interface {
	Agenda(ctx context.Context, barber *models.Barber, date, format string) (*service.ExportResult, error)
}

type barberLookup interface {
	Barber(ctx context.Context, id string) (*models.Barber, error)
}

// ExportHandler streams a barber's day as CSV or PDF.
type ExportHandler struct {
	exporter agendaExporter
	barbers  barberLookup
}

// NewExportHandler constructs handler.
func NewExportHandler(exporter agendaExporter, barbers barberLookup) *ExportHandler {
	return &ExportHandler{exporter: exporter, barbers: barbers}
}

// Agenda godoc
// @Summary Export agenda
// @Tags Appointments
// @Produce text/csv
// @Produce application/pdf
// @Param barberId path string true "Barber ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /barbers/{barberId}/agenda/export [get]
func (h *ExportHandler) Agenda(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}
	barber, err := h.barbers.Barber(c.Request.Context(), c.Param(middleware.BarberParam))
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.exporter.Agenda(c.Request.Context(), barber, date, c.DefaultQuery("format", service.FormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, res.ContentType, res.Body)
}
