package membership

import (
	"github.com/muscleuplabs/muscleup/internal/membership/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("membership",
	fx.Provide(repository.NewRepository),
)
