package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	membershipdomain "github.com/muscleuplabs/muscleup/internal/membership/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) membershipdomain.Repository {
	return &repository{db: db}
}

func (r *repository) ListByCustomer(ctx context.Context, customerID snowflake.ID) ([]membershipdomain.Membership, error) {
	var items []membershipdomain.Membership
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&items).Error
	return items, err
}

func (r *repository) Insert(ctx context.Context, m *membershipdomain.Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) ExpireActiveByCustomer(ctx context.Context, customerID snowflake.ID, note string, actorID snowflake.ID, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&membershipdomain.Membership{}).
		Where("customer_id = ? AND status = ?", customerID, membershipdomain.StatusActive).
		Updates(map[string]any{
			"status":     membershipdomain.StatusExpired,
			"notes":      note,
			"updated_by": actorID,
			"updated_at": now,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) InsertPaymentLines(ctx context.Context, lines []membershipdomain.PaymentLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *repository) FindByIdempotencyKey(ctx context.Context, key string) (*membershipdomain.Membership, error) {
	var m membershipdomain.Membership
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
