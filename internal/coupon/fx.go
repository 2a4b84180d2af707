package coupon

import (
	"github.com/muscleuplabs/muscleup/internal/coupon/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("coupon",
	fx.Provide(repository.NewRepository),
)
