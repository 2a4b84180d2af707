package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	paymentdomain "github.com/muscleuplabs/muscleup/internal/payment/domain"
	"github.com/shopspring/decimal"
)

type RuleType string

const (
	RuleTypePercentage RuleType = "percentage"
	RuleTypeFixed      RuleType = "fixed"
)

// Rule configures the surcharge a payment method carries. Read-only
// input for the engine; the catalog screens own its lifecycle.
type Rule struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey"`
	PaymentMethod string          `json:"payment_method" gorm:"type:varchar(30);not null;index"`
	RuleType      RuleType        `json:"commission_type" gorm:"column:commission_type;type:varchar(20);not null"`
	Value         decimal.Decimal `json:"commission_value" gorm:"column:commission_value;type:numeric(12,4);not null"`
	MinAmount     decimal.Decimal `json:"min_amount" gorm:"type:numeric(12,2);not null"`
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"not null"`
}

func (Rule) TableName() string { return "payment_commissions" }

// Commission is a computed surcharge: the rate applied (as a percent,
// zero for fixed rules) and the resulting amount.
type Commission struct {
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

var hundred = decimal.NewFromInt(100)

// Calculate resolves the commission for paying amount with method.
// Only card methods are eligible; everything else is zero no matter
// what the rule table says. A manual override rate always wins for
// card methods. Otherwise the active rule for the method applies,
// gated by its minimum eligible amount.
func Calculate(method string, amount decimal.Decimal, rules []Rule, overrideRate *decimal.Decimal) Commission {
	if !paymentdomain.CardMethod(method) {
		return Commission{}
	}

	if overrideRate != nil {
		return Commission{
			Rate:   *overrideRate,
			Amount: amount.Mul(*overrideRate).Div(hundred),
		}
	}

	for _, rule := range rules {
		if !rule.IsActive || rule.PaymentMethod != method {
			continue
		}
		if amount.LessThan(rule.MinAmount) {
			return Commission{}
		}
		if rule.RuleType == RuleTypePercentage {
			return Commission{
				Rate:   rule.Value,
				Amount: amount.Mul(rule.Value).Div(hundred),
			}
		}
		// Fixed surcharge, independent of the amount.
		return Commission{Amount: rule.Value}
	}

	return Commission{}
}

type Repository interface {
	ListActive(ctx context.Context) ([]Rule, error)
}
