package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

var (
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponInactive   = errors.New("coupon is not active")
	ErrCouponNotStarted = errors.New("coupon is not valid yet")
	ErrCouponExpired    = errors.New("coupon has expired")
	ErrCouponExhausted  = errors.New("coupon has reached its usage limit")
	ErrCouponMinAmount  = errors.New("purchase is below the coupon minimum amount")
)

// Coupon is a discount code. Codes are stored uppercase and matched
// case-insensitively. The engine only ever mutates CurrentUses and
// LastUsedAt, after a committed sale.
type Coupon struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey"`
	Code          string          `json:"code" gorm:"type:varchar(40);not null;uniqueIndex"`
	Description   string          `json:"description" gorm:"type:text"`
	DiscountType  DiscountType    `json:"discount_type" gorm:"type:varchar(20);not null"`
	DiscountValue decimal.Decimal `json:"discount_value" gorm:"type:numeric(12,2);not null"`
	MinAmount     decimal.Decimal `json:"min_amount" gorm:"type:numeric(12,2)"`
	MaxUses       int             `json:"max_uses"`
	CurrentUses   int             `json:"current_uses"`
	StartDate     *time.Time      `json:"start_date" gorm:"type:date"`
	EndDate       *time.Time      `json:"end_date" gorm:"type:date"`
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	LastUsedAt    *time.Time      `json:"last_used_at"`
	UpdatedBy     snowflake.ID    `json:"updated_by"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"not null"`
}

func (Coupon) TableName() string { return "coupons" }

var hundred = decimal.NewFromInt(100)

// Evaluate validates c for a purchase of subtotal on today's date and
// returns the discount it grants. Checks short-circuit in a fixed
// order: active flag, activity window start, activity window end,
// usage cap, minimum amount. A zero MaxUses means no cap; nil window
// dates mean no window; a zero MinAmount means no minimum. The granted
// discount is clamped to [0, subtotal], so the remainder can never go
// negative no matter what the coupon row holds.
func Evaluate(c *Coupon, subtotal decimal.Decimal, today time.Time) (decimal.Decimal, error) {
	if c == nil {
		return decimal.Zero, ErrCouponNotFound
	}
	if !c.IsActive {
		return decimal.Zero, ErrCouponInactive
	}
	if c.StartDate != nil && today.Before(*c.StartDate) {
		return decimal.Zero, ErrCouponNotStarted
	}
	if c.EndDate != nil && today.After(*c.EndDate) {
		return decimal.Zero, ErrCouponExpired
	}
	if c.MaxUses > 0 && c.CurrentUses >= c.MaxUses {
		return decimal.Zero, ErrCouponExhausted
	}
	if c.MinAmount.Sign() > 0 && subtotal.LessThan(c.MinAmount) {
		return decimal.Zero, ErrCouponMinAmount
	}

	discount := c.DiscountValue
	if c.DiscountType == DiscountTypePercentage {
		discount = subtotal.Mul(c.DiscountValue).Div(hundred)
	}
	if discount.Sign() < 0 {
		return decimal.Zero, nil
	}
	if discount.GreaterThan(subtotal) {
		return subtotal, nil
	}
	return discount, nil
}

type Repository interface {
	// FindByCode matches case-insensitively and returns (nil, nil)
	// when no such code exists.
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	// IncrementUsage bumps current_uses atomically at the storage
	// layer; concurrent redemptions of the same code must not lose
	// updates.
	IncrementUsage(ctx context.Context, id snowflake.ID, actorID snowflake.ID, now time.Time) error
}
