package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"sync"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/immolens/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const keySimulationClient = "immolens:ratelimit:simulation:%s"

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
	Client *redis.Client `optional:"true"`
}

// SimulationLimiter throttles simulation requests per client. It uses the shared
// Redis bucket when available and a per-process bucket otherwise.
type SimulationLimiter struct {
	perSecond float64
	burst     int
	bucket    *TokenBucket

	mu    sync.Mutex
	local map[string]*rate.Limiter
}

func NewSimulationLimiter(p Params) (*SimulationLimiter, error) {
	cfg := p.Config.RateLimit
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.Rate <= 0 || cfg.Burst <= 0 {
		return nil, fmt.Errorf("%w: rate=%v burst=%d", ErrInvalidRate, cfg.Rate, cfg.Burst)
	}

	l := &SimulationLimiter{
		perSecond: cfg.Rate,
		burst:     cfg.Burst,
		local:     make(map[string]*rate.Limiter),
	}
	if p.Client != nil {
		l.bucket = NewTokenBucket(p.Client)
	} else if p.Log != nil {
		p.Log.Named("ratelimit").Info("redis not configured, simulation rate limit is per instance")
	}
	return l, nil
}

func (l *SimulationLimiter) Enabled() bool {
	return l != nil
}

func (l *SimulationLimiter) Allow(ctx context.Context, client string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}
	client = strings.TrimSpace(client)
	if err := checkArgs(client, l.perSecond, l.burst); err != nil {
		return Result{}, err
	}
	if l.bucket != nil {
		return l.bucket.Allow(ctx, fmt.Sprintf(keySimulationClient, client), l.perSecond, l.burst)
	}
	return l.allowLocal(client), nil
}

func (l *SimulationLimiter) allowLocal(client string) Result {
	l.mu.Lock()
	lim, ok := l.local[client]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(l.perSecond), l.burst)
		l.local[client] = lim
	}
	l.mu.Unlock()

	allowed := lim.Allow()
	return decision(allowed, lim.Tokens(), l.perSecond, l.burst)
}
