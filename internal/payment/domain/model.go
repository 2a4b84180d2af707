package domain

import (
	"github.com/shopspring/decimal"
)

// Payment method identifiers as the front desk records them.
const (
	MethodCash     = "efectivo"
	MethodDebit    = "debito"
	MethodCredit   = "credito"
	MethodTransfer = "transferencia"
	MethodMixed    = "mixto"
)

// KnownMethod reports whether m is a method an operator can select for
// a single-method payment. MethodMixed is a persistence marker, not a
// selectable method.
func KnownMethod(m string) bool {
	switch m {
	case MethodCash, MethodDebit, MethodCredit, MethodTransfer:
		return true
	}
	return false
}

// CardMethod reports whether m is commission-eligible. Only card
// payments ever carry a commission; cash and transfers never do.
func CardMethod(m string) bool {
	return m == MethodDebit || m == MethodCredit
}

// Line is one entry of a split payment. Amount is the principal;
// CommissionRate and CommissionAmount are computed by the engine, not
// trusted from the caller.
type Line struct {
	Method           string          `json:"method"`
	Amount           decimal.Decimal `json:"amount"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	Reference        string          `json:"reference"`
	Sequence         int             `json:"sequence"`
}

// Spec is the closed set of ways a sale can be paid. Constructing
// anything other than the two variants is a compile error.
type Spec interface {
	isSpec()
}

// Single is a one-method payment. AmountTendered only matters for cash,
// where it is the bills handed over and determines the change due.
type Single struct {
	Method         string
	AmountTendered decimal.Decimal
	Reference      string
}

func (Single) isSpec() {}

// Mixed is an ordered list of split-payment lines.
type Mixed struct {
	Lines []Line
}

func (Mixed) isSpec() {}
