package scheduler

import (
	"context"
	"time"

	"github.com/smallbiznis/immolens/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("scheduler",
	fx.Provide(ProvideConfig),
	fx.Provide(New),
	fx.Invoke(NewScheduler),
)

func ProvideConfig(cfg config.Config) Config {
	c := DefaultConfig()
	if cfg.ParametersRefreshSeconds > 0 {
		c.RunInterval = time.Duration(cfg.ParametersRefreshSeconds) * time.Second
	}
	return c
}

// NewScheduler starts the refresh loop only when a parameter store is
// configured, since defaults and files are reloaded by the file watcher.
func NewScheduler(lc fx.Lifecycle, cfg config.Config, sched *Scheduler) {
	if !cfg.DatabaseEnabled() || cfg.ParametersRefreshSeconds <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go sched.RunForever(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
