package repository

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	coupondomain "github.com/muscleuplabs/muscleup/internal/coupon/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) coupondomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindByCode(ctx context.Context, code string) (*coupondomain.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}

	var c coupondomain.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) IncrementUsage(ctx context.Context, id snowflake.ID, actorID snowflake.ID, now time.Time) error {
	// Single-statement increment so concurrent redemptions never lose
	// an update.
	return r.db.WithContext(ctx).
		Model(&coupondomain.Coupon{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"current_uses": gorm.Expr("current_uses + 1"),
			"last_used_at": now,
			"updated_by":   actorID,
			"updated_at":   now,
		}).Error
}
