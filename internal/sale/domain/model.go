package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	paymentdomain "github.com/muscleuplabs/muscleup/internal/payment/domain"
	"github.com/muscleuplabs/muscleup/internal/period"
	"github.com/shopspring/decimal"
)

// SaleRequest is one immutable snapshot of a proposed membership sale.
// A quote and its commit take the same request; nothing is carried
// between calls.
type SaleRequest struct {
	CustomerID snowflake.ID
	PlanID     snowflake.ID
	Cadence    period.Cadence

	CouponCode string

	// Payment is nil while the operator is still choosing; required
	// to commit.
	Payment paymentdomain.Spec

	// CustomCommissionRate lets a supervisor override the card
	// commission percentage for this sale.
	CustomCommissionRate *decimal.Decimal

	// ForceSkipInscription overrides the resolver's waiver decision
	// for first sales. A renewal waives inscription regardless.
	ForceSkipInscription *bool

	// RenewalToken, when set, must match the current history
	// fingerprint at commit time; a mismatch means another sale raced
	// this one and the commit fails instead of double-renewing.
	RenewalToken string

	// IdempotencyKey is a caller-supplied retry token. A commit that
	// finds the key already persisted returns the existing sale.
	IdempotencyKey string

	Notes string
}

// SaleResult is the outcome of a quote or a committed sale.
type SaleResult struct {
	// MembershipID is zero for quotes.
	MembershipID snowflake.ID `json:"membership_id,omitempty"`

	IsRenewal       bool `json:"is_renewal"`
	SkipInscription bool `json:"skip_inscription"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	Subtotal    decimal.Decimal `json:"subtotal"`
	Inscription decimal.Decimal `json:"inscription_amount"`
	Discount    decimal.Decimal `json:"discount_amount"`
	Commission  decimal.Decimal `json:"commission_amount"`
	Total       decimal.Decimal `json:"total"`
	Final       decimal.Decimal `json:"final_amount"`

	// Change due back on a cash payment.
	Change decimal.Decimal `json:"change"`

	// RenewalToken echoes the history fingerprint the quote was built
	// on, for the caller to send back with the commit.
	RenewalToken string `json:"renewal_token,omitempty"`
}

type Service interface {
	// Quote prices a sale without writing anything.
	Quote(ctx context.Context, req SaleRequest) (SaleResult, error)
	// Commit validates, prices and persists a sale. The subscription
	// insert is the durability boundary: failures before it leave no
	// trace, failures after it are logged and swallowed.
	Commit(ctx context.Context, req SaleRequest) (SaleResult, error)
}
