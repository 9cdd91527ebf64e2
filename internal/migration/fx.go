package migration

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log  *zap.Logger
	Conn *gorm.DB `optional:"true"`
}

var Module = fx.Module("migrations",
	fx.Invoke(func(p Params) error {
		if p.Conn == nil {
			p.Log.Debug("no parameter store, skipping migrations")
			return nil
		}
		return Run(p.Conn)
	}),
)
