package domain

import (
	"errors"
	"fmt"
)

// Kind classifies sale errors for callers that need to map them to a
// user-facing message or an HTTP status.
type Kind string

const (
	// KindValidation covers missing or inconsistent request fields.
	// Always pre-commit; nothing was written.
	KindValidation Kind = "validation"
	// KindReconciliation means the payment does not cover the total.
	KindReconciliation Kind = "reconciliation"
	// KindNotFound means a referenced customer, plan or coupon does
	// not exist.
	KindNotFound Kind = "not_found"
	// KindStore is an I/O failure against a backing store. Fatal only
	// when raised while persisting the subscription itself.
	KindStore Kind = "store"
)

var (
	ErrMissingOperator   = errors.New("an operator identity is required to commit a sale")
	ErrMissingCustomer   = errors.New("a customer is required")
	ErrMissingPlan       = errors.New("a plan is required")
	ErrInvalidCadence    = errors.New("unknown billing cadence")
	ErrMissingPayment    = errors.New("a payment is required")
	ErrStaleRenewalState = errors.New("the customer's subscription history changed; refresh and retry")
)

// Error wraps a failure with its kind and, for store failures, the
// commit stage it happened in.
type Error struct {
	Kind  Kind
	Stage string
	Err   error
}

func (e *Error) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s (%s): %v", e.Kind, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func NewStoreError(stage string, err error) *Error {
	return &Error{Kind: KindStore, Stage: stage, Err: err}
}

// KindOf extracts the kind from err, defaulting to KindStore for
// errors the engine did not classify.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}
