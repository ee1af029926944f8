package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/quickbill/quickbill/internal/clock"
	"github.com/quickbill/quickbill/internal/config"
	"github.com/quickbill/quickbill/internal/document"
	"github.com/quickbill/quickbill/internal/migration"
	"github.com/quickbill/quickbill/internal/providers"
	"github.com/quickbill/quickbill/internal/server"
	"github.com/quickbill/quickbill/pkg/db"
	"github.com/quickbill/quickbill/pkg/log"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional Domains
		document.Module,
		providers.Module,

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
