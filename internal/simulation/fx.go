package simulation

import (
	"github.com/smallbiznis/immolens/internal/simulation/service"
	"github.com/smallbiznis/immolens/internal/validation"
	"go.uber.org/fx"
)

var Module = fx.Module("simulation.service",
	validation.Module,
	fx.Provide(service.NewService),
)
