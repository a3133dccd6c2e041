package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/grade-genius-api/internal/dto"
	"github.com/noah-isme/grade-genius-api/internal/middleware"
	"github.com/noah-isme/grade-genius-api/internal/models"
	"github.com/noah-isme/grade-genius-api/internal/service"
	appErrors "github.com/noah-isme/grade-genius-api/pkg/errors"
	"github.com/noah-isme/grade-genius-api/pkg/response"
)

type gradeCalculator interface {
	Calculate(ctx context.Context, req dto.CalculateRequest) (*models.GradeResult, bool, error)
	Target(ctx context.Context, req dto.CalculateRequest) (*models.TargetScoreReport, error)
	Lookup(grade float64) (*models.GPELookup, error)
	Scale() []models.GPEStep
}

type gradeExporter interface {
	Summary(sheet service.ExportSheet) string
	Render(format dto.ExportFormat, sheet service.ExportSheet) (*service.ExportFile, error)
}

type summaryNotifier interface {
	Notify(text string) error
}

// GradeHandler exposes grade calculator endpoints.
type GradeHandler struct {
	calculator gradeCalculator
	exporter   gradeExporter
	notifier   summaryNotifier
	logger     *zap.Logger
}

// NewGradeHandler constructs handler. notifier may be nil.
func NewGradeHandler(calculator gradeCalculator, exporter gradeExporter, notifier summaryNotifier, logger *zap.Logger) *GradeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeHandler{calculator: calculator, exporter: exporter, notifier: notifier, logger: logger}
}

// Calculate godoc
// @Summary Calculate period and final grades
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body dto.CalculateRequest true "Midterm and finals entries"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grades/calculate [post]
func (h *GradeHandler) Calculate(c *gin.Context) {
	req, ok := bindCalculateRequest(c)
	if !ok {
		return
	}
	result, hit, err := h.calculator.Calculate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// Target godoc
// @Summary Solve the scores needed to reach a target grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body dto.CalculateRequest true "Midterm and finals entries"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grades/target [post]
func (h *GradeHandler) Target(c *gin.Context) {
	req, ok := bindCalculateRequest(c)
	if !ok {
		return
	}
	report, err := h.calculator.Target(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// GPE godoc
// @Summary Look up the grade point equivalent of a final grade
// @Tags Grades
// @Produce json
// @Param grade query number true "Final grade"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /grades/gpe [get]
func (h *GradeHandler) GPE(c *gin.Context) {
	raw := c.Query("grade")
	if raw == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "grade is required"))
		return
	}
	grade, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "grade must be a number"))
		return
	}
	lookup, err := h.calculator.Lookup(grade)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lookup)
}

// Scale godoc
// @Summary List the grade point equivalent scale
// @Tags Grades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /grades/scale [get]
func (h *GradeHandler) Scale(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.calculator.Scale())
}

// Export godoc
// @Summary Export a grade summary
// @Tags Grades
// @Accept json
// @Produce plain
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "text, csv or pdf" Enums(text, csv, pdf)
// @Param payload body dto.CalculateRequest true "Midterm and finals entries"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /grades/export [post]
func (h *GradeHandler) Export(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	format := query.Format
	if format == "" {
		format = dto.ExportFormatText
	}
	switch format {
	case dto.ExportFormatText, dto.ExportFormatCSV, dto.ExportFormatPDF:
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrUnsupportedFormat, "format must be one of text, csv, pdf"))
		return
	}

	req, ok := bindCalculateRequest(c)
	if !ok {
		return
	}
	result, _, err := h.calculator.Calculate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	sheet := service.ExportSheet{Midterm: req.Midterm.ToInputs(), Finals: req.Finals.ToInputs(), Result: result}
	file, err := h.exporter.Render(format, sheet)
	if err != nil {
		response.Error(c, err)
		return
	}
	if format == dto.ExportFormatText {
		h.notify(c, string(file.Payload))
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

func (h *GradeHandler) notify(c *gin.Context, text string) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.Notify(text); err != nil && !errors.Is(err, appErrors.ErrNotificationsDisabled) {
		requestLogger(c, h.logger).Warn("summary notification not queued", zap.Error(err))
	}
}

func bindCalculateRequest(c *gin.Context) (dto.CalculateRequest, bool) {
	var req dto.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return req, false
	}
	return req, true
}
