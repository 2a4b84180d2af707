package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tolerance within which a split payment must match the final amount.
var tolerance = decimal.New(1, -2) // 0.01

// Reconciliation is the outcome of checking a payment against the
// amount due. It carries a human-readable message for the operator; it
// never mutates anything.
type Reconciliation struct {
	OK bool
	// Change due back on a cash payment.
	Change decimal.Decimal
	// Delta is the signed difference between what a split payment sums
	// to and the amount due: negative means shortfall.
	Delta   decimal.Decimal
	Message string
}

// Reconcile checks that spec covers final. Cash must tender at least
// the final amount; a split payment must sum principal plus commission
// to the final amount within the tolerance. A zero or negative final
// amount always reconciles (a coupon can cover the whole sale).
func Reconcile(final decimal.Decimal, spec Spec) Reconciliation {
	if final.Sign() <= 0 {
		return Reconciliation{OK: true}
	}

	switch p := spec.(type) {
	case Single:
		return reconcileSingle(final, p)
	case Mixed:
		return reconcileMixed(final, p)
	case nil:
		return Reconciliation{Message: "a payment is required"}
	default:
		return Reconciliation{Message: "unsupported payment"}
	}
}

func reconcileSingle(final decimal.Decimal, p Single) Reconciliation {
	if p.Method == "" {
		return Reconciliation{Message: "a payment method is required"}
	}
	if !KnownMethod(p.Method) {
		return Reconciliation{Message: fmt.Sprintf("unknown payment method %q", p.Method)}
	}
	if p.Method != MethodCash {
		// Non-cash single payments charge exactly the final amount.
		return Reconciliation{OK: true}
	}
	if p.AmountTendered.LessThan(final) {
		short := final.Sub(p.AmountTendered)
		return Reconciliation{
			Delta:   short.Neg(),
			Message: fmt.Sprintf("amount tendered %s is %s short of %s", p.AmountTendered, short, final),
		}
	}
	return Reconciliation{OK: true, Change: p.AmountTendered.Sub(final)}
}

func reconcileMixed(final decimal.Decimal, p Mixed) Reconciliation {
	if len(p.Lines) == 0 {
		return Reconciliation{Message: "a split payment needs at least one line"}
	}

	sum := decimal.Zero
	for _, line := range p.Lines {
		if line.Method == "" || !KnownMethod(line.Method) {
			return Reconciliation{Message: fmt.Sprintf("split line %d has no valid payment method", line.Sequence)}
		}
		if line.Amount.Sign() <= 0 {
			return Reconciliation{Message: fmt.Sprintf("split line %d must have a positive amount", line.Sequence)}
		}
		sum = sum.Add(line.Amount).Add(line.CommissionAmount)
	}

	delta := sum.Sub(final)
	if delta.Abs().GreaterThan(tolerance) {
		return Reconciliation{
			Delta:   delta,
			Message: fmt.Sprintf("split payments total %s but %s is due (difference %s)", sum, final, delta),
		}
	}
	return Reconciliation{OK: true}
}
