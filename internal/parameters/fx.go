package parameters

import (
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/immolens/internal/config"
	paramcache "github.com/smallbiznis/immolens/internal/parameters/cache"
	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/parameters/repository"
	"github.com/smallbiznis/immolens/internal/parameters/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type remoteParams struct {
	fx.In

	Config config.Config
	Client *redis.Client `optional:"true"`
}

var Module = fx.Module("parameters.service",
	fx.Provide(func(h *config.FiscalDefaultsHolder) paramdomain.DefaultsSource { return h }),
	fx.Provide(func(db *gorm.DB) paramdomain.Repository {
		if db == nil {
			return nil
		}
		return repository.NewRepository(db)
	}),
	fx.Provide(func(p remoteParams) paramdomain.RemoteCache {
		if p.Client == nil {
			return nil
		}
		return paramcache.NewRedisCache(p.Client, time.Duration(p.Config.ParametersCacheTTL)*time.Second)
	}),
	fx.Provide(service.NewProvider),
	fx.Invoke(func(h *config.FiscalDefaultsHolder, p paramdomain.Provider) {
		h.OnChange(p.InvalidateAll)
	}),
)
