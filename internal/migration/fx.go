package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/flowbooks/flowbooks/internal/config"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB, cfg.DBType)
	}),
)
