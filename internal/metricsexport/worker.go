package metricsexport

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const defaultInterval = time.Minute

// Worker pushes a snapshot on start and then on every tick until stopped.
type Worker struct {
	pusher   Pusher
	gatherer prometheus.Gatherer
	interval time.Duration
	log      *zap.Logger

	stopCh    chan struct{}
	doneCh    chan struct{}
	errorOnce atomic.Bool
}

func NewWorker(pusher Pusher, gatherer prometheus.Gatherer, interval time.Duration, log *zap.Logger) *Worker {
	if pusher == nil {
		return nil
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{
		pusher:   pusher,
		gatherer: gatherer,
		interval: interval,
		log:      log.Named("metricsexport.worker"),
	}
}

func (w *Worker) Start() {
	if w == nil || w.stopCh != nil {
		return
	}
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go func() {
		defer close(w.doneCh)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.pushOnce()
		for {
			select {
			case <-ticker.C:
				w.pushOnce()
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop waits for the running push to finish or ctx to expire. A final push is
// attempted so short-lived processes still report.
func (w *Worker) Stop(ctx context.Context) error {
	if w == nil || w.stopCh == nil {
		return nil
	}
	close(w.stopCh)
	select {
	case <-w.doneCh:
	case <-ctx.Done():
		return ctx.Err()
	}
	w.pushOnce()
	return nil
}

func (w *Worker) pushOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultPushTimeout)
	defer cancel()

	if err := w.pusher.Push(ctx, w.gatherer); err != nil {
		// log the first failure of a streak only
		if w.errorOnce.CompareAndSwap(false, true) {
			w.log.Warn("metrics push failed", zap.Error(err))
		}
		return
	}
	if w.errorOnce.CompareAndSwap(true, false) {
		w.log.Info("metrics push recovered")
	}
}
