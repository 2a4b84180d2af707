package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	plandomain "github.com/muscleuplabs/muscleup/internal/plan/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) plandomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*plandomain.Plan, error) {
	var p plandomain.Plan
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListActive(ctx context.Context) ([]plandomain.Plan, error) {
	var plans []plandomain.Plan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("monthly_price asc").
		Find(&plans).Error
	return plans, err
}
