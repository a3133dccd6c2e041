package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/grade-genius-api/internal/handler"
	"github.com/noah-isme/grade-genius-api/internal/service"
	"github.com/noah-isme/grade-genius-api/pkg/config"
)

func newTestRouter(t *testing.T, env string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: env, APIPrefix: "/api/v1"}
	metrics := service.NewMetricsService()
	calculator := service.NewCalculatorService(nil, metrics, nil, zap.NewNop(), service.CalculatorServiceConfig{})
	exporter := service.NewExportService(service.ExportConfig{}, zap.NewNop(), nil, nil)
	return newRouter(routerDeps{
		cfg:      cfg,
		logger:   zap.NewNop(),
		metrics:  metrics,
		grades:   handler.NewGradeHandler(calculator, exporter, nil, zap.NewNop()),
		observer: handler.NewMetricsHandler(metrics, nil),
	})
}

func TestRouterCalculateEndToEnd(t *testing.T) {
	r := newTestRouter(t, config.EnvDevelopment)
	body := []byte(`{
		"midterm": {"quiz_scores": [100, 100], "exam_score": 100, "attendance": 10, "problem_set": 10},
		"finals": {"quiz_scores": [80, null], "attendance": 10, "problem_set": 10}
	}`)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/grades/calculate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	var envelope struct {
		Data struct {
			Midterm float64 `json:"midterm"`
			Finals  float64 `json:"finals"`
			Target  struct {
				Period string `json:"period"`
			} `json:"target"`
		} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.InDelta(t, 117.5, envelope.Data.Midterm, 1e-9)
	assert.InDelta(t, 20.0, envelope.Data.Finals, 1e-9, "partial quiz data contributes nothing")
	assert.Equal(t, "FINALS", envelope.Data.Target.Period)
	assert.Equal(t, false, envelope.Meta["cache_hit"])
}

func TestRouterObservabilityRoutes(t *testing.T) {
	r := newTestRouter(t, config.EnvDevelopment)

	for _, path := range []string{"/health", "/ready", "/metrics", "/api/v1/grades/scale"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/grades/gpe?grade=83.4", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"gpe":"2.50"`)
}

func TestRouterHidesDocsInProduction(t *testing.T) {
	r := newTestRouter(t, config.EnvProduction)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterUnknownRouteReturnsNotFoundEnvelope(t *testing.T) {
	r := newTestRouter(t, config.EnvDevelopment)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/grades/unknown", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestRouterRejectsOutOfRangeGPE(t *testing.T) {
	r := newTestRouter(t, config.EnvDevelopment)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/grades/gpe?grade=1e19", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewCacheServiceDisabledWithoutRedis(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = true

	svc, repo := newCacheService(cfg, nil, service.NewMetricsService(), zap.NewNop())
	require.NotNil(t, repo)
	assert.False(t, svc.Enabled())
	assert.NoError(t, repo.Close())

	cfg.Cache.Enabled = false
	svc, _ = newCacheService(cfg, nil, nil, zap.NewNop())
	assert.False(t, svc.Enabled())
}
