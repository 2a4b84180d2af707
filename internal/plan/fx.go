package plan

import (
	"github.com/muscleuplabs/muscleup/internal/plan/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("plan",
	fx.Provide(repository.NewRepository),
)
