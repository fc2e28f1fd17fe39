package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"taskpalette/internal/config"
	"taskpalette/internal/health"
	"taskpalette/internal/logger"
	"taskpalette/internal/server"
	"taskpalette/pkg/db"
	"taskpalette/pkg/latency"
	"taskpalette/services/appcatalog"
	"taskpalette/services/task"
)

func main() {
	app := fx.New(
		config.Module,
		fx.Provide(
			logger.Provide,
			provideNode,
			provideLatency,
		),
		db.Module,
		server.Module,
		health.Module,
		task.Module,
		appcatalog.Module,
	)

	app.Run()
}

func provideNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func provideLatency(cfg *config.Config) latency.Policy {
	if cfg.Latency.Enable {
		return latency.NewJitter()
	}
	return latency.None()
}
