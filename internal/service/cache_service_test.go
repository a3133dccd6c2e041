package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCacheServiceDisabled(t *testing.T) {
	repo := newMemoryCacheRepo()
	svc := NewCacheService(repo, nil, 0, nil, false)
	ctx := context.Background()

	svc.Set(ctx, "k", "v", time.Minute)
	var dest string
	assert.False(t, svc.Get(ctx, "k", &dest))
	assert.Zero(t, repo.size())
	assert.NoError(t, svc.Ping(ctx))

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newMemoryCacheRepo()
	svc := NewCacheService(repo, NewMetricsService(), 0, zap.NewNop(), true)
	ctx := context.Background()

	var dest map[string]float64
	assert.False(t, svc.Get(ctx, "grades:calc:x", &dest))

	svc.Set(ctx, "grades:calc:x", map[string]float64{"final": 83.4}, 0)
	require.True(t, svc.Get(ctx, "grades:calc:x", &dest))
	assert.Equal(t, 83.4, dest["final"])
	assert.Equal(t, 10*time.Minute, repo.ttls["grades:calc:x"], "zero ttl falls back to the default")
}

func TestCacheServiceDegradesOnBackendErrors(t *testing.T) {
	repo := newMemoryCacheRepo()
	repo.getErr = errors.New("dial tcp: refused")
	repo.setErr = errors.New("dial tcp: refused")
	repo.pingErr = errors.New("dial tcp: refused")
	svc := NewCacheService(repo, NewMetricsService(), time.Minute, zap.NewNop(), true)
	ctx := context.Background()

	var dest string
	assert.False(t, svc.Get(ctx, "k", &dest))
	assert.NotPanics(t, func() { svc.Set(ctx, "k", "v", time.Minute) })
	assert.Error(t, svc.Ping(ctx))
}
