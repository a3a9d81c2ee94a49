package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/topiqhq/topiq/internal/activity"
	"github.com/topiqhq/topiq/internal/assistant"
	"github.com/topiqhq/topiq/internal/auth"
	"github.com/topiqhq/topiq/internal/auth/session"
	"github.com/topiqhq/topiq/internal/clock"
	"github.com/topiqhq/topiq/internal/config"
	"github.com/topiqhq/topiq/internal/migration"
	"github.com/topiqhq/topiq/internal/observability"
	"github.com/topiqhq/topiq/internal/post"
	"github.com/topiqhq/topiq/internal/profile"
	"github.com/topiqhq/topiq/internal/scheduler"
	"github.com/topiqhq/topiq/internal/server"
	"github.com/topiqhq/topiq/internal/topic"
	"github.com/topiqhq/topiq/internal/usage"
	"github.com/topiqhq/topiq/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		fx.Provide(newIDGenerator),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional domains
		auth.Module,
		session.Module,
		profile.Module,
		topic.Module,
		post.Module,
		usage.Module,
		activity.Module,
		assistant.Module,
		scheduler.Module,

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

func newIDGenerator(node *snowflake.Node) func() snowflake.ID {
	return node.Generate
}
