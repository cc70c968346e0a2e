package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/swiftprep/swiftprep/internal/clock"
	"github.com/swiftprep/swiftprep/internal/migration"
	"github.com/swiftprep/swiftprep/internal/observability"
	"github.com/swiftprep/swiftprep/internal/server"
	"github.com/swiftprep/swiftprep/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		server.Module,
		migration.Module,
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
