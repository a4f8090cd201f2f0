package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/flowbooks/flowbooks/internal/analytics"
	"github.com/flowbooks/flowbooks/internal/client"
	"github.com/flowbooks/flowbooks/internal/clock"
	"github.com/flowbooks/flowbooks/internal/config"
	"github.com/flowbooks/flowbooks/internal/invoice"
	"github.com/flowbooks/flowbooks/internal/logger"
	"github.com/flowbooks/flowbooks/internal/migration"
	"github.com/flowbooks/flowbooks/internal/observability/metrics"
	"github.com/flowbooks/flowbooks/internal/pdf"
	"github.com/flowbooks/flowbooks/internal/profile"
	"github.com/flowbooks/flowbooks/internal/server"
	"github.com/flowbooks/flowbooks/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		metrics.Module,
		migration.Module,

		client.Module,
		profile.Module,
		invoice.Module,
		analytics.Module,
		pdf.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
