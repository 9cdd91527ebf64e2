package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/immolens/internal/clock"
	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type recordingProvider struct {
	invalidated []int
	resolved    []int
	failYear    int
}

func (p *recordingProvider) GetConfig(_ context.Context, year int) (paramdomain.ResolvedConfiguration, error) {
	p.resolved = append(p.resolved, year)
	if year == p.failYear {
		return paramdomain.ResolvedConfiguration{}, paramdomain.ErrInvalidConfiguration
	}
	cfg := paramdomain.DefaultConfiguration()
	cfg.FiscalYear = year
	return cfg, nil
}

func (p *recordingProvider) Invalidate(year int) { p.invalidated = append(p.invalidated, year) }
func (p *recordingProvider) InvalidateAll()      {}

func newScheduler(t *testing.T, provider *recordingProvider, cfg Config) *Scheduler {
	t.Helper()
	s, err := New(Params{
		Log:      zaptest.NewLogger(t),
		Clock:    clock.NewFakeClock(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)),
		Provider: provider,
		Config:   cfg,
	})
	require.NoError(t, err)
	return s
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Params{Log: zap.NewNop()})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRefreshParametersJobCoversLookahead(t *testing.T) {
	provider := &recordingProvider{}
	s := newScheduler(t, provider, Config{LookaheadYears: 2})

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, []int{2026, 2027, 2028}, provider.invalidated)
	assert.Equal(t, []int{2026, 2027, 2028}, provider.resolved)
}

func TestRefreshParametersJobJoinsErrors(t *testing.T) {
	provider := &recordingProvider{failYear: 2026}
	s := newScheduler(t, provider, Config{LookaheadYears: 1})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, paramdomain.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), JobRefreshParameters)
	assert.Equal(t, []int{2026, 2027}, provider.resolved)
}

func TestRunJobTimeoutIsSoft(t *testing.T) {
	s := newScheduler(t, &recordingProvider{}, Config{})
	err := s.runJob(context.Background(), "timeout_job", 5*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.NoError(t, err)
}

func TestRunJobWrapsFailures(t *testing.T) {
	s := newScheduler(t, &recordingProvider{}, Config{})
	boom := errors.New("boom")
	err := s.runJob(context.Background(), "failing_job", time.Second, func(context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing_job")
}

func TestDisabledJobIsSkipped(t *testing.T) {
	provider := &recordingProvider{}
	s := newScheduler(t, provider, Config{EnabledJobs: []string{"other"}})

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Empty(t, provider.resolved)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{LookaheadYears: -3}.withDefaults()
	assert.Equal(t, 0, cfg.LookaheadYears)
	assert.Equal(t, DefaultConfig().RunInterval, cfg.RunInterval)
	assert.Equal(t, DefaultConfig().LockTTL, cfg.LockTTL)
}
