package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/muscleuplabs/muscleup/internal/clock"
	"github.com/muscleuplabs/muscleup/internal/commission"
	"github.com/muscleuplabs/muscleup/internal/config"
	"github.com/muscleuplabs/muscleup/internal/coupon"
	"github.com/muscleuplabs/muscleup/internal/customer"
	"github.com/muscleuplabs/muscleup/internal/db"
	"github.com/muscleuplabs/muscleup/internal/membership"
	"github.com/muscleuplabs/muscleup/internal/observability"
	"github.com/muscleuplabs/muscleup/internal/plan"
	"github.com/muscleuplabs/muscleup/internal/renewal"
	"github.com/muscleuplabs/muscleup/internal/sale"
	"github.com/muscleuplabs/muscleup/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		customer.Module,
		plan.Module,
		coupon.Module,
		commission.Module,
		membership.Module,
		renewal.Module,
		sale.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterAPIRoutes()
		}),
		fx.Invoke(server.RunHTTP),
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
