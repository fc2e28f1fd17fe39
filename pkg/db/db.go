package db

import (
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskpalette/internal/config"
)

var Module = fx.Module("database",
	fx.Provide(
		Dialect,
		New,
	),
)

// Dialect maps the configured driver onto a gorm dialector. The config layer
// has already rejected anything other than sqlite or postgres.
func Dialect(cfg *config.Config) gorm.Dialector {
	switch cfg.Database.Driver {
	case "postgres":
		return postgres.Open(cfg.Database.DSN)
	default:
		return sqlite.Open(cfg.Database.DSN)
	}
}

func New(cfg *config.Config, dialector gorm.Dialector) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	var logLevel logger.LogLevel
	var showSQL bool

	if cfg.AppEnv == "production" {
		logLevel = logger.Warn
		showSQL = false
	} else {
		logLevel = logger.Info
		showSQL = true
	}

	gormLogger := newZapGormLogger(zap.L(), logLevel, showSQL)

	for i := 0; i < 5; i++ {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: gormLogger,
		})
		if err == nil {
			break
		}
		zap.L().Warn("[DB] Database not ready, retrying in 3 seconds...", zap.Int("retry", i+1), zap.Error(err))
		time.Sleep(3 * time.Second)
	}

	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	zap.L().Info("[DB] Database connection successfully configured.")

	return db, nil
}
