// Package scheduler runs the periodic background jobs of the engine.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smallbiznis/immolens/internal/clock"
	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const JobRefreshParameters = "refresh_parameters"

var ErrInvalidConfig = errors.New("invalid_scheduler_config")

type Params struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Provider paramdomain.Provider
	Locker   *ratelimit.Locker `optional:"true"`
	Config   Config            `optional:"true"`
}

// Scheduler re-resolves the fiscal configuration of upcoming years so store
// overrides reach every instance without waiting for cache expiry.
type Scheduler struct {
	log      *zap.Logger
	cfg      Config
	clock    clock.Clock
	provider paramdomain.Provider
	locker   *ratelimit.Locker
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.Provider == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:      p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:      p.Config.withDefaults(),
		clock:    p.Clock,
		provider: p.Provider,
		locker:   p.Locker,
	}, nil
}

func (s *Scheduler) runJob(
	parent context.Context,
	name string,
	timeout time.Duration,
	fn func(ctx context.Context) error,
) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	log := s.log.With(zap.String("job", name))
	log.Debug("job started")

	err := fn(ctx)
	duration := s.clock.Now().Sub(start)
	if err == nil {
		log.Debug("job finished", zap.Duration("duration", duration))
		return nil
	}

	// deadline is a soft timeout, the next tick retries
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Warn("job timed out",
			zap.Duration("timeout", timeout),
			zap.Error(err),
		)
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	var err error

	jobs := []struct {
		Name string
		Run  func(context.Context) error
	}{
		{JobRefreshParameters, s.RefreshParametersJob},
	}

	for _, job := range jobs {
		if s.isJobEnabled(job.Name) {
			err = errors.Join(err, s.runJob(parent, job.Name, s.cfg.JobTimeout, job.Run))
		}
	}
	return err
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) isJobEnabled(jobName string) bool {
	if len(s.cfg.EnabledJobs) == 0 {
		return true
	}
	for _, enabled := range s.cfg.EnabledJobs {
		if strings.EqualFold(enabled, jobName) {
			return true
		}
	}
	return false
}

// RefreshParametersJob invalidates and resolves the current fiscal year and the
// configured lookahead. A year locked by another instance is skipped.
func (s *Scheduler) RefreshParametersJob(ctx context.Context) error {
	current := s.clock.Now().Year()
	var err error
	for year := current; year <= current+s.cfg.LookaheadYears; year++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = errors.Join(err, s.refreshYear(ctx, year))
	}
	return err
}

func (s *Scheduler) refreshYear(ctx context.Context, year int) error {
	var cfg paramdomain.ResolvedConfiguration
	err := s.locker.WithLock(ctx, ratelimit.ParametersLockKey(year), s.cfg.LockTTL, func(ctx context.Context) error {
		s.provider.Invalidate(year)
		var err error
		cfg, err = s.provider.GetConfig(ctx, year)
		return err
	})
	switch {
	case errors.Is(err, ratelimit.ErrLockHeld):
		s.log.Debug("fiscal year refresh held by another instance", zap.Int("fiscal_year", year))
		return nil
	case err != nil:
		return fmt.Errorf("refresh fiscal year %d: %w", year, err)
	}

	s.log.Info("fiscal parameters refreshed",
		zap.Int("fiscal_year", year),
		zap.String("source", string(cfg.Source)),
	)
	return nil
}
