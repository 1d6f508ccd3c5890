package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/scribe/internal/clock"
	"github.com/smallbiznis/scribe/internal/config"
	"github.com/smallbiznis/scribe/internal/document"
	"github.com/smallbiznis/scribe/internal/nlu"
	"github.com/smallbiznis/scribe/internal/observability"
	"github.com/smallbiznis/scribe/internal/providers"
	"github.com/smallbiznis/scribe/internal/server"
	"github.com/smallbiznis/scribe/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),

		document.Module,
		providers.Module,
		nlu.Module,
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
