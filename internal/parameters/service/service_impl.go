package service

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/immolens/internal/cache"
	"github.com/smallbiznis/immolens/internal/clock"
	"github.com/smallbiznis/immolens/internal/config"
	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	defaultCacheTTL    = 5 * time.Minute
	remoteCacheTimeout = 2 * time.Second
)

type Params struct {
	fx.In

	Log        *zap.Logger
	Clock      clock.Clock
	Config     config.Config
	Defaults   paramdomain.DefaultsSource `optional:"true"`
	Repository paramdomain.Repository     `optional:"true"`
	Remote     paramdomain.RemoteCache    `optional:"true"`
}

type provider struct {
	log         *zap.Logger
	clock       clock.Clock
	defaultYear int
	ttl         time.Duration

	defaults paramdomain.DefaultsSource
	repo     paramdomain.Repository
	remote   paramdomain.RemoteCache
	local    cache.Cache[int, paramdomain.ResolvedConfiguration]
}

func NewProvider(p Params) paramdomain.Provider {
	clk := p.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	ttl := time.Duration(p.Config.ParametersCacheTTL) * time.Second
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	defaultYear := p.Config.FiscalYear
	if defaultYear == 0 {
		defaultYear = paramdomain.DefaultFiscalYear
	}

	return &provider{
		log:         log.Named("parameters.service"),
		clock:       clk,
		defaultYear: defaultYear,
		ttl:         ttl,
		defaults:    p.Defaults,
		repo:        p.Repository,
		remote:      p.Remote,
		local:       cache.NewTTLCacheWithClock[int, paramdomain.ResolvedConfiguration](clk),
	}
}

func (p *provider) GetConfig(ctx context.Context, fiscalYear int) (paramdomain.ResolvedConfiguration, error) {
	if fiscalYear == 0 {
		fiscalYear = p.defaultYear
	}
	if !paramdomain.ValidFiscalYear(fiscalYear) {
		return paramdomain.ResolvedConfiguration{}, paramdomain.ErrInvalidFiscalYear
	}

	if cfg, ok := p.local.Get(fiscalYear); ok {
		return cfg.Clone(), nil
	}

	if p.remote != nil {
		cfg, err := p.getRemote(ctx, fiscalYear)
		if err == nil {
			p.local.Set(fiscalYear, cfg, p.ttl)
			return cfg.Clone(), nil
		}
		if !errors.Is(err, paramdomain.ErrCacheMiss) {
			p.log.Warn("parameters remote cache read failed", zap.Int("fiscal_year", fiscalYear), zap.Error(err))
		}
	}

	cfg, cacheable := p.resolve(ctx, fiscalYear)
	if cacheable {
		p.local.Set(fiscalYear, cfg, p.ttl)
		if p.remote != nil {
			if err := p.setRemote(ctx, cfg); err != nil {
				p.log.Warn("parameters remote cache write failed", zap.Int("fiscal_year", fiscalYear), zap.Error(err))
			}
		}
	}
	return cfg.Clone(), nil
}

func (p *provider) Invalidate(fiscalYear int) {
	p.local.Delete(fiscalYear)
	if p.remote == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), remoteCacheTimeout)
	defer cancel()
	if err := p.remote.Delete(ctx, fiscalYear); err != nil {
		p.log.Warn("parameters remote cache delete failed", zap.Int("fiscal_year", fiscalYear), zap.Error(err))
	}
}

// InvalidateAll drops the local cache. Remote entries expire on their own TTL.
func (p *provider) InvalidateAll() {
	p.local.Purge()
}

// resolve merges store overrides over the file/hard-coded defaults. The bool reports
// whether the result may be cached; store failures fall back without caching.
func (p *provider) resolve(ctx context.Context, fiscalYear int) (paramdomain.ResolvedConfiguration, bool) {
	base, source := p.baseline(fiscalYear)
	base.Source = source
	base.ResolvedAt = p.clock.Now()

	if p.repo == nil {
		return base, true
	}

	params, err := p.repo.ListByYear(ctx, fiscalYear)
	if err != nil {
		p.log.Error("parameters store unavailable, using built-in defaults",
			zap.Int("fiscal_year", fiscalYear),
			zap.String("error_kind", db.ClassifyError(err)),
			zap.Error(err),
		)
		fallback := paramdomain.DefaultConfiguration()
		fallback.FiscalYear = fiscalYear
		fallback.ResolvedAt = p.clock.Now()
		return fallback, false
	}
	if len(params) == 0 {
		return base, true
	}

	overrides := make(map[string]float64, len(params))
	for _, param := range params {
		overrides[param.Key] = param.Value
	}
	merged, unknown := base.WithOverrides(overrides)
	if len(unknown) > 0 {
		p.log.Warn("unknown parameter keys ignored",
			zap.Int("fiscal_year", fiscalYear),
			zap.Strings("keys", unknown),
		)
	}
	if err := merged.Validate(); err != nil {
		p.log.Error("stored parameters rejected", zap.Int("fiscal_year", fiscalYear), zap.Error(err))
		return base, true
	}
	merged.Source = paramdomain.SourceStore
	return merged, true
}

func (p *provider) baseline(fiscalYear int) (paramdomain.ResolvedConfiguration, paramdomain.Source) {
	if p.defaults != nil {
		return p.defaults.Defaults(fiscalYear)
	}
	cfg := paramdomain.DefaultConfiguration()
	cfg.FiscalYear = fiscalYear
	return cfg, paramdomain.SourceDefaults
}

func (p *provider) getRemote(ctx context.Context, fiscalYear int) (paramdomain.ResolvedConfiguration, error) {
	ctx, cancel := context.WithTimeout(ctx, remoteCacheTimeout)
	defer cancel()
	return p.remote.Get(ctx, fiscalYear)
}

func (p *provider) setRemote(ctx context.Context, cfg paramdomain.ResolvedConfiguration) error {
	ctx, cancel := context.WithTimeout(ctx, remoteCacheTimeout)
	defer cancel()
	return p.remote.Set(ctx, cfg)
}
