package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/immolens/internal/cache"
	"github.com/smallbiznis/immolens/internal/clock"
	"github.com/smallbiznis/immolens/internal/config"
	"github.com/smallbiznis/immolens/internal/metricsexport"
	"github.com/smallbiznis/immolens/internal/migration"
	"github.com/smallbiznis/immolens/internal/observability"
	"github.com/smallbiznis/immolens/internal/parameters"
	"github.com/smallbiznis/immolens/internal/ratelimit"
	"github.com/smallbiznis/immolens/internal/scheduler"
	"github.com/smallbiznis/immolens/internal/server"
	"github.com/smallbiznis/immolens/internal/simulation"
	"github.com/smallbiznis/immolens/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		db.Module,
		migration.Module,
		cache.Module,

		// Engine
		parameters.Module,
		simulation.Module,
		scheduler.Module,

		// Transport
		ratelimit.Module,
		metricsexport.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.NodeID)
}
