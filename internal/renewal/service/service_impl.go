package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	membershipdomain "github.com/muscleuplabs/muscleup/internal/membership/domain"
	renewaldomain "github.com/muscleuplabs/muscleup/internal/renewal/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log  *zap.Logger
	repo membershipdomain.Repository
}

type ServiceParam struct {
	fx.In

	Log  *zap.Logger
	Repo membershipdomain.Repository
}

func NewService(p ServiceParam) renewaldomain.Service {
	return &Service{
		log:  p.Log.Named("renewal.service"),
		repo: p.Repo,
	}
}

// Resolve implements domain.Service.
func (s *Service) Resolve(ctx context.Context, customerID snowflake.ID, today time.Time) renewaldomain.Resolution {
	history, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		// Fail toward charging inscription rather than silently
		// waiving it.
		s.log.Warn("history read failed, treating sale as first membership",
			zap.Int64("customer_id", int64(customerID)),
			zap.Error(err),
		)
		return renewaldomain.Resolution{AnchorDate: today}
	}

	return renewaldomain.ResolveHistory(history, today)
}
