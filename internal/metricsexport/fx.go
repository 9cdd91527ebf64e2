package metricsexport

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/immolens/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("metrics.export",
	fx.Provide(NewPusher),
	fx.Provide(func(cfg config.Config, pusher Pusher, log *zap.Logger) *Worker {
		interval := time.Duration(cfg.MetricsExport.IntervalSeconds) * time.Second
		return NewWorker(pusher, prometheus.DefaultGatherer, interval, log)
	}),
	fx.Invoke(func(lc fx.Lifecycle, w *Worker) {
		if w == nil {
			return
		}
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				w.log.Info("starting metrics export worker", zap.Duration("interval", w.interval))
				w.Start()
				return nil
			},
			OnStop: w.Stop,
		})
	}),
)
