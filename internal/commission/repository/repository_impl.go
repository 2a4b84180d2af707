package repository

import (
	"context"

	commissiondomain "github.com/muscleuplabs/muscleup/internal/commission/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) commissiondomain.Repository {
	return &repository{db: db}
}

func (r *repository) ListActive(ctx context.Context) ([]commissiondomain.Rule, error) {
	var rules []commissiondomain.Rule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&rules).Error
	return rules, err
}
