package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/muscleuplabs/muscleup/internal/period"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusFrozen    Status = "frozen"
	StatusCancelled Status = "cancelled"
)

// Membership is one paid subscription period for a customer. EndDate
// is nil exactly when the cadence is visit.
type Membership struct {
	ID         snowflake.ID   `json:"id" gorm:"primaryKey"`
	CustomerID snowflake.ID   `json:"customer_id" gorm:"not null;index"`
	PlanID     snowflake.ID   `json:"plan_id" gorm:"not null"`
	Cadence    period.Cadence `json:"payment_type" gorm:"column:payment_type;type:varchar(20);not null"`
	Status     Status         `json:"status" gorm:"type:varchar(20);not null;index"`

	StartDate time.Time  `json:"start_date" gorm:"type:date;not null"`
	EndDate   *time.Time `json:"end_date" gorm:"type:date"`

	// Visit credit bookkeeping; nil for period cadences.
	TotalVisits     *int `json:"total_visits"`
	RemainingVisits *int `json:"remaining_visits"`

	Subtotal          decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2);not null"`
	InscriptionAmount decimal.Decimal `json:"inscription_amount" gorm:"type:numeric(12,2);not null"`
	DiscountAmount    decimal.Decimal `json:"discount_amount" gorm:"type:numeric(12,2);not null"`
	CommissionAmount  decimal.Decimal `json:"commission_amount" gorm:"type:numeric(12,2);not null"`
	AmountPaid        decimal.Decimal `json:"amount_paid" gorm:"type:numeric(12,2);not null"`

	PaymentMethod    string  `json:"payment_method" gorm:"type:varchar(30);not null"`
	PaymentReference *string `json:"payment_reference" gorm:"type:varchar(120)"`
	IsMixedPayment   bool    `json:"is_mixed_payment"`

	AmountTendered decimal.Decimal `json:"payment_received" gorm:"column:payment_received;type:numeric(12,2)"`
	ChangeGiven    decimal.Decimal `json:"payment_change" gorm:"column:payment_change;type:numeric(12,2)"`

	CouponCode *string `json:"coupon_code" gorm:"type:varchar(40)"`

	IsRenewal            bool             `json:"is_renewal"`
	SkipInscription      bool             `json:"skip_inscription"`
	CustomCommissionRate *decimal.Decimal `json:"custom_commission_rate" gorm:"type:numeric(8,4)"`

	Notes          *string `json:"notes" gorm:"type:text"`
	IdempotencyKey *string `json:"-" gorm:"type:varchar(80);uniqueIndex"`

	CreatedBy snowflake.ID `json:"created_by" gorm:"not null"`
	UpdatedBy snowflake.ID `json:"updated_by" gorm:"not null"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

func (Membership) TableName() string { return "user_memberships" }

// PaymentLine is one persisted entry of a split payment, attached to
// its membership.
type PaymentLine struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	MembershipID snowflake.ID `json:"membership_id" gorm:"not null;index"`

	Method           string          `json:"method" gorm:"type:varchar(30);not null"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	CommissionRate   decimal.Decimal `json:"commission_rate" gorm:"type:numeric(8,4);not null"`
	CommissionAmount decimal.Decimal `json:"commission_amount" gorm:"type:numeric(12,2);not null"`
	Reference        string          `json:"reference" gorm:"type:varchar(120)"`
	Sequence         int             `json:"sequence" gorm:"not null"`

	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

func (PaymentLine) TableName() string { return "membership_payments" }

type Repository interface {
	// ListByCustomer returns the customer's full subscription history,
	// most recently created first.
	ListByCustomer(ctx context.Context, customerID snowflake.ID) ([]Membership, error)
	Insert(ctx context.Context, m *Membership) error
	// ExpireActiveByCustomer flips every active membership of the
	// customer to expired with an audit note, returning how many rows
	// changed.
	ExpireActiveByCustomer(ctx context.Context, customerID snowflake.ID, note string, actorID snowflake.ID, now time.Time) (int64, error)
	InsertPaymentLines(ctx context.Context, lines []PaymentLine) error
	// FindByIdempotencyKey returns (nil, nil) when the key has not
	// been used.
	FindByIdempotencyKey(ctx context.Context, key string) (*Membership, error)
}
