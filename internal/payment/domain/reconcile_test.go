package domain_test

import (
	"testing"

	domain "github.com/muscleuplabs/muscleup/internal/payment/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReconcileCash(t *testing.T) {
	final := dec("1100")

	rec := domain.Reconcile(final, domain.Single{Method: domain.MethodCash, AmountTendered: dec("1200")})
	assert.True(t, rec.OK)
	assert.True(t, rec.Change.Equal(dec("100")), "change was %s", rec.Change)

	rec = domain.Reconcile(final, domain.Single{Method: domain.MethodCash, AmountTendered: dec("1000")})
	assert.False(t, rec.OK)
	assert.True(t, rec.Delta.Equal(dec("-100")))
	assert.Contains(t, rec.Message, "short")
}

func TestReconcileNonCashSingle(t *testing.T) {
	final := dec("500")

	rec := domain.Reconcile(final, domain.Single{Method: domain.MethodCredit})
	assert.True(t, rec.OK)
	assert.True(t, rec.Change.IsZero())

	rec = domain.Reconcile(final, domain.Single{Method: "cheque"})
	assert.False(t, rec.OK)
	assert.Contains(t, rec.Message, "unknown payment method")

	rec = domain.Reconcile(final, domain.Single{})
	assert.False(t, rec.OK)
}

func TestReconcileMixed(t *testing.T) {
	final := dec("1200.00")

	ok := domain.Mixed{Lines: []domain.Line{
		{Method: domain.MethodCash, Amount: dec("1000"), Sequence: 1},
		{Method: domain.MethodTransfer, Amount: dec("200"), Sequence: 2},
	}}
	rec := domain.Reconcile(final, ok)
	assert.True(t, rec.OK)

	short := domain.Mixed{Lines: []domain.Line{
		{Method: domain.MethodCash, Amount: dec("1000"), Sequence: 1},
		{Method: domain.MethodTransfer, Amount: dec("199.50"), Sequence: 2},
	}}
	rec = domain.Reconcile(final, short)
	assert.False(t, rec.OK)
	assert.True(t, rec.Delta.Equal(dec("-0.50")), "delta was %s", rec.Delta)

	// Commission on a line counts toward the reconciled total.
	withCommission := domain.Mixed{Lines: []domain.Line{
		{Method: domain.MethodCredit, Amount: dec("1153.85"), CommissionAmount: dec("46.15"), Sequence: 1},
	}}
	rec = domain.Reconcile(final, withCommission)
	assert.True(t, rec.OK)
}

func TestReconcileMixedRejectsInvalidLines(t *testing.T) {
	final := dec("100")

	rec := domain.Reconcile(final, domain.Mixed{})
	assert.False(t, rec.OK)

	rec = domain.Reconcile(final, domain.Mixed{Lines: []domain.Line{{Method: "", Amount: dec("100"), Sequence: 1}}})
	assert.False(t, rec.OK)

	rec = domain.Reconcile(final, domain.Mixed{Lines: []domain.Line{{Method: domain.MethodCash, Amount: dec("0"), Sequence: 1}}})
	assert.False(t, rec.OK)
}

func TestReconcileWithinTolerance(t *testing.T) {
	rec := domain.Reconcile(dec("100.00"), domain.Mixed{Lines: []domain.Line{
		{Method: domain.MethodCash, Amount: dec("99.99"), Sequence: 1},
	}})
	assert.True(t, rec.OK)

	rec = domain.Reconcile(dec("100.00"), domain.Mixed{Lines: []domain.Line{
		{Method: domain.MethodCash, Amount: dec("99.98"), Sequence: 1},
	}})
	assert.False(t, rec.OK)
}

func TestReconcileZeroTotalAlwaysPasses(t *testing.T) {
	rec := domain.Reconcile(decimal.Zero, nil)
	assert.True(t, rec.OK)

	rec = domain.Reconcile(decimal.Zero, domain.Single{Method: domain.MethodCash})
	assert.True(t, rec.OK)
}

func TestReconcileNilSpec(t *testing.T) {
	rec := domain.Reconcile(dec("10"), nil)
	assert.False(t, rec.OK)
	assert.Contains(t, rec.Message, "required")
}
