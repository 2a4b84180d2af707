// Package pricing combines plan price, inscription fee, coupon
// discount and payment commission into the figures a sale settles on.
// Everything here is pure; catalog lookups happen in the sale service.
package pricing

import (
	"time"

	commissiondomain "github.com/muscleuplabs/muscleup/internal/commission/domain"
	coupondomain "github.com/muscleuplabs/muscleup/internal/coupon/domain"
	paymentdomain "github.com/muscleuplabs/muscleup/internal/payment/domain"
	"github.com/shopspring/decimal"
)

// Inputs is one immutable snapshot of everything a quote depends on.
type Inputs struct {
	PlanPrice      decimal.Decimal
	InscriptionFee decimal.Decimal

	IsRenewal       bool
	SkipInscription bool

	Coupon *coupondomain.Coupon
	Today  time.Time

	// Payment may be nil while the operator is still filling in the
	// wizard; commission is then zero.
	Payment      paymentdomain.Spec
	Rules        []commissiondomain.Rule
	OverrideRate *decimal.Decimal
}

// Breakdown is the monetary result of a quote.
// Final = Subtotal + Inscription - Discount + Commission, never negative.
type Breakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Inscription decimal.Decimal `json:"inscription_amount"`
	Discount    decimal.Decimal `json:"discount_amount"`
	Commission  decimal.Decimal `json:"commission_amount"`
	// Total is the amount due before payment-method commission.
	Total decimal.Decimal `json:"total"`
	Final decimal.Decimal `json:"final_amount"`
}

// Compute derives the breakdown for one sale. The inscription fee is
// waived on renewals regardless of the skip flag: a renewing customer
// never pays inscription again. The coupon discounts the plan price
// only and never exceeds it. Commission is computed once on the
// post-discount total for a single payment, or summed over the
// individually computed line commissions for a split payment.
func Compute(in Inputs) (Breakdown, error) {
	b := Breakdown{
		Subtotal:    in.PlanPrice,
		Inscription: decimal.Zero,
		Discount:    decimal.Zero,
		Commission:  decimal.Zero,
	}

	if !in.IsRenewal && !in.SkipInscription {
		b.Inscription = in.InscriptionFee
	}

	if in.Coupon != nil {
		discount, err := coupondomain.Evaluate(in.Coupon, b.Subtotal, in.Today)
		if err != nil {
			return Breakdown{}, err
		}
		b.Discount = discount
	}

	b.Total = b.Subtotal.Add(b.Inscription).Sub(b.Discount)

	switch p := in.Payment.(type) {
	case paymentdomain.Single:
		c := commissiondomain.Calculate(p.Method, b.Total, in.Rules, in.OverrideRate)
		b.Commission = c.Amount
	case paymentdomain.Mixed:
		for _, line := range p.Lines {
			b.Commission = b.Commission.Add(line.CommissionAmount)
		}
	}

	b.Final = b.Total.Add(b.Commission)
	if b.Final.Sign() < 0 {
		b.Final = decimal.Zero
	}
	return b, nil
}

// NormalizeLines recomputes the commission on every split-payment line
// from the rule table, ignoring whatever the caller sent, and assigns
// sequence numbers. The returned slice is a copy.
func NormalizeLines(lines []paymentdomain.Line, rules []commissiondomain.Rule, overrideRate *decimal.Decimal) []paymentdomain.Line {
	out := make([]paymentdomain.Line, len(lines))
	for i, line := range lines {
		c := commissiondomain.Calculate(line.Method, line.Amount, rules, overrideRate)
		line.CommissionRate = c.Rate
		line.CommissionAmount = c.Amount
		line.Sequence = i + 1
		out[i] = line
	}
	return out
}
