package customer

import (
	"github.com/muscleuplabs/muscleup/internal/customer/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("customer",
	fx.Provide(repository.NewRepository),
)
