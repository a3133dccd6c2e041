package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/grade-genius-api/internal/dto"
	"github.com/noah-isme/grade-genius-api/internal/grading"
	"github.com/noah-isme/grade-genius-api/internal/models"
	appErrors "github.com/noah-isme/grade-genius-api/pkg/errors"
)

const (
	calcCachePrefix = "grades:calc:"

	// maxLookupGrade bounds GPE lookups well above the 117.5 full-credit grade.
	maxLookupGrade = 1000.0
)

type resultCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
}

// CalculatorServiceConfig tunes calculator behaviour.
type CalculatorServiceConfig struct {
	DefaultTarget float64
	CacheTTL      time.Duration
}

// CalculatorService turns form payloads into grade results.
type CalculatorService struct {
	cache     resultCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       CalculatorServiceConfig
	newID     func() string
}

// NewCalculatorService constructs a CalculatorService. cache may be nil.
func NewCalculatorService(cache resultCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg CalculatorServiceConfig) *CalculatorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultTarget <= 0 || cfg.DefaultTarget > 100 {
		cfg.DefaultTarget = grading.DefaultTarget
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	return &CalculatorService{
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		newID:     uuid.NewString,
	}
}

// Calculate computes both period grades, the final grade and the target report. The bool
// reports whether the result came from cache.
func (s *CalculatorService) Calculate(ctx context.Context, req dto.CalculateRequest) (*models.GradeResult, bool, error) {
	if err := s.validate(req); err != nil {
		return nil, false, err
	}
	target := s.target(req)

	key, keyErr := cacheKey(req, target)
	if keyErr != nil {
		s.logger.Warn("skip result cache", zap.Error(keyErr))
	}
	if result, hit := s.tryCache(ctx, key); hit {
		result.ID = s.newID()
		s.metrics.RecordCalculation(true)
		return result, true, nil
	}

	midterm, finals := req.Midterm.ToInputs(), req.Finals.ToInputs()
	midtermGrade := grading.PeriodGrade(midterm)
	finalsGrade := grading.PeriodGrade(finals)
	final := grading.FinalGrade(midtermGrade, finalsGrade)
	lookup := grading.Lookup(final)

	result := &models.GradeResult{
		ID:         s.newID(),
		Midterm:    midtermGrade,
		Finals:     finalsGrade,
		FinalGrade: final,
		Rounded:    lookup.Rounded,
		Formatted:  lookup.Formatted,
		GPE:        lookup.GPE,
		Band:       lookup.Band,
		Target:     grading.Solve(midterm, finals, target),
	}

	s.metrics.RecordCalculation(false)
	s.metrics.RecordTargetSolution(result.Target.IsPossible)
	s.persistCache(ctx, key, result)
	s.logger.Debug("grade calculated",
		zap.String("id", result.ID),
		zap.Float64("final_grade", final),
		zap.String("gpe", result.GPE),
	)
	return result, false, nil
}

// Target runs only the target score solver.
func (s *CalculatorService) Target(ctx context.Context, req dto.CalculateRequest) (*models.TargetScoreReport, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	report := grading.Solve(req.Midterm.ToInputs(), req.Finals.ToInputs(), s.target(req))
	s.metrics.RecordTargetSolution(report.IsPossible)
	return &report, nil
}

// Lookup maps a single final grade onto the GPE scale.
func (s *CalculatorService) Lookup(grade float64) (*models.GPELookup, error) {
	if math.IsNaN(grade) || math.IsInf(grade, 0) || grade < 0 || grade > maxLookupGrade {
		return nil, appErrors.Clone(appErrors.ErrValidation, "grade must be a number between 0 and 1000")
	}
	lookup := grading.Lookup(grade)
	return &lookup, nil
}

// Scale returns the GPE table, highest step first.
func (s *CalculatorService) Scale() []models.GPEStep {
	return grading.Scale()
}

func (s *CalculatorService) validate(req dto.CalculateRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	over := append(req.Midterm.OverMax("midterm", 1), req.Finals.OverMax("finals", 1+models.QuizSlots)...)
	if len(over) > 0 {
		return appErrors.Clone(appErrors.ErrInvalidScore, "score exceeds its maximum: "+strings.Join(over, ", "))
	}
	return nil
}

func (s *CalculatorService) target(req dto.CalculateRequest) float64 {
	if req.Target != nil {
		return *req.Target
	}
	return s.cfg.DefaultTarget
}

func (s *CalculatorService) tryCache(ctx context.Context, key string) (*models.GradeResult, bool) {
	if s.cache == nil || key == "" {
		return nil, false
	}
	var cached models.GradeResult
	if !s.cache.Get(ctx, key, &cached) {
		return nil, false
	}
	return &cached, true
}

func (s *CalculatorService) persistCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil || key == "" {
		return
	}
	s.cache.Set(ctx, key, value, s.cfg.CacheTTL)
}

// cacheKey hashes the engine inputs so requests that differ only in omitted max scores share
// an entry.
func cacheKey(req dto.CalculateRequest, target float64) (string, error) {
	payload, err := json.Marshal(struct {
		Midterm models.PeriodInputs `json:"midterm"`
		Finals  models.PeriodInputs `json:"finals"`
		Target  float64             `json:"target"`
	}{req.Midterm.ToInputs(), req.Finals.ToInputs(), target})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return calcCachePrefix + hex.EncodeToString(sum[:]), nil
}
