package commission

import (
	"github.com/muscleuplabs/muscleup/internal/commission/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("commission",
	fx.Provide(repository.NewRepository),
)
