package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/grade-genius-api/internal/dto"
	"github.com/noah-isme/grade-genius-api/internal/grading"
	"github.com/noah-isme/grade-genius-api/internal/models"
	appErrors "github.com/noah-isme/grade-genius-api/pkg/errors"
	"github.com/noah-isme/grade-genius-api/pkg/export"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeCSV  = "text/csv"
	contentTypePDF  = "application/pdf"
)

var exportHeaders = []string{"Period", "Component", "Score", "Max"}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	PDFTitle string
}

// ExportSheet is the input of a rendered export.
type ExportSheet struct {
	Midterm models.PeriodInputs
	Finals  models.PeriodInputs
	Result  *models.GradeResult
}

// ExportFile is a rendered download.
type ExportFile struct {
	Payload     []byte
	ContentType string
	Filename    string
}

// ExportService renders grade summaries as text, CSV or PDF.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	cfg    ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PDFTitle == "" {
		cfg.PDFTitle = "Grade Summary"
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, logger: logger, cfg: cfg}
}

// Summary renders the plain-text grade summary shared to the clipboard and the webhook.
func (s *ExportService) Summary(sheet ExportSheet) string {
	var b strings.Builder
	writePeriod(&b, "Midterm Grades:", "Midterm Grade", models.PeriodMidterm, sheet.Midterm, sheet.Result.Midterm)
	b.WriteString("\n\n")
	writePeriod(&b, "Final Grades:", "Finals Grade", models.PeriodFinals, sheet.Finals, sheet.Result.Finals)
	b.WriteString("\n\n\n")
	b.WriteString("Final Results:\n")
	fmt.Fprintf(&b, "Final Grade - %s\n", grading.FormatFinalGrade(sheet.Result.FinalGrade))
	fmt.Fprintf(&b, "GPE - %s", sheet.Result.GPE)
	return b.String()
}

// Render produces the download for the requested format. An empty format means text.
func (s *ExportService) Render(format dto.ExportFormat, sheet ExportSheet) (*ExportFile, error) {
	if sheet.Result == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nothing to export")
	}
	base := "grade-summary"
	if sheet.Result.ID != "" {
		base = fmt.Sprintf("grade-summary-%s", shortID(sheet.Result.ID))
	}

	switch format {
	case "", dto.ExportFormatText:
		return &ExportFile{Payload: []byte(s.Summary(sheet)), ContentType: contentTypeText, Filename: base + ".txt"}, nil
	case dto.ExportFormatCSV:
		payload, err := s.csv.Render(buildDataset(sheet))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{Payload: payload, ContentType: contentTypeCSV, Filename: base + ".csv"}, nil
	case dto.ExportFormatPDF:
		payload, err := s.pdf.Render(buildDataset(sheet), s.cfg.PDFTitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{Payload: payload, ContentType: contentTypePDF, Filename: base + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}
}

func writePeriod(b *strings.Builder, heading, gradeLabel string, kind models.PeriodKind, in models.PeriodInputs, grade float64) {
	b.WriteString(heading)
	b.WriteByte('\n')
	for i, quiz := range in.Quizzes {
		fmt.Fprintf(b, "%s - %s\n", grading.QuizLabel(kind, i), quiz.Score)
	}
	fmt.Fprintf(b, "%s - %s\n", grading.ExamLabel, in.Exam.Score)
	fmt.Fprintf(b, "Attendance - %s\n", in.Attendance)
	fmt.Fprintf(b, "Problem Set - %s\n", in.ProblemSet)
	fmt.Fprintf(b, "%s - %s", gradeLabel, grading.FormatFinalGrade(grade))
}

func buildDataset(sheet ExportSheet) export.Dataset {
	data := export.Dataset{Headers: exportHeaders}
	data.Rows = append(data.Rows, periodRows("Midterm", models.PeriodMidterm, sheet.Midterm, sheet.Result.Midterm)...)
	data.Rows = append(data.Rows, periodRows("Finals", models.PeriodFinals, sheet.Finals, sheet.Result.Finals)...)

	result := sheet.Result
	data.Notes = []string{
		fmt.Sprintf("Final Grade: %s", grading.FormatFinalGrade(result.FinalGrade)),
		fmt.Sprintf("GPE: %s", result.GPE),
	}
	if result.Target.Message != "" {
		data.Notes = append(data.Notes, fmt.Sprintf("Target %s: %s", formatFloat(result.Target.Target), result.Target.Message))
	}
	for _, label := range sortedLabels(result.Target.NeededScores) {
		data.Notes = append(data.Notes, fmt.Sprintf("%s: %s", label, result.Target.NeededScores[label]))
	}
	return data
}

func periodRows(period string, kind models.PeriodKind, in models.PeriodInputs, grade float64) []map[string]string {
	row := func(component string, score models.Score, maxScore string) map[string]string {
		return map[string]string{"Period": period, "Component": component, "Score": score.String(), "Max": maxScore}
	}
	rows := make([]map[string]string, 0, len(in.Quizzes)+5)
	for i, quiz := range in.Quizzes {
		rows = append(rows, row(grading.QuizLabel(kind, i), quiz.Score, formatFloat(quiz.Max)))
	}
	rows = append(rows,
		row(grading.ExamLabel, in.Exam.Score, formatFloat(in.Exam.Max)),
		row("Attendance", in.Attendance, formatFloat(grading.AttendanceMax)),
		row("Problem Set", in.ProblemSet, formatFloat(grading.ProblemSetMax)),
		map[string]string{"Period": period, "Component": "Period Grade", "Score": grading.FormatFinalGrade(grade)},
	)
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func sortedLabels(scores map[string]string) []string {
	labels := make([]string, 0, len(scores))
	for label := range scores {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
