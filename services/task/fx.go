package task

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"taskpalette/internal/config"
)

var Module = fx.Module("task.module",
	fx.Provide(
		NewService,
	),
	fx.Invoke(
		Migrate,
		RegisterRoutes,
	),
)

// Migrate keeps the tasks table in step with the model and installs the
// sample set when seeding is enabled and the store is empty.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if err := db.AutoMigrate(&Task{}); err != nil {
		return err
	}

	if cfg.Seed.Enable {
		return Seed(db)
	}
	return nil
}
