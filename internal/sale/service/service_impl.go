package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/muscleuplabs/muscleup/internal/actorcontext"
	"github.com/muscleuplabs/muscleup/internal/clock"
	commissiondomain "github.com/muscleuplabs/muscleup/internal/commission/domain"
	coupondomain "github.com/muscleuplabs/muscleup/internal/coupon/domain"
	customerdomain "github.com/muscleuplabs/muscleup/internal/customer/domain"
	membershipdomain "github.com/muscleuplabs/muscleup/internal/membership/domain"
	paymentdomain "github.com/muscleuplabs/muscleup/internal/payment/domain"
	"github.com/muscleuplabs/muscleup/internal/period"
	plandomain "github.com/muscleuplabs/muscleup/internal/plan/domain"
	"github.com/muscleuplabs/muscleup/internal/pricing"
	renewaldomain "github.com/muscleuplabs/muscleup/internal/renewal/domain"
	saledomain "github.com/muscleuplabs/muscleup/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	loc   *time.Location

	customers   customerdomain.Repository
	plans       plandomain.Repository
	coupons     coupondomain.Repository
	commissions commissiondomain.Repository
	memberships membershipdomain.Repository
	renewals    renewaldomain.Service
}

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Location *time.Location

	Customers   customerdomain.Repository
	Plans       plandomain.Repository
	Coupons     coupondomain.Repository
	Commissions commissiondomain.Repository
	Memberships membershipdomain.Repository
	Renewals    renewaldomain.Service
}

func NewService(p ServiceParam) saledomain.Service {
	return &Service{
		log:   p.Log.Named("sale.service"),
		genID: p.GenID,
		clock: p.Clock,
		loc:   p.Location,

		customers:   p.Customers,
		plans:       p.Plans,
		coupons:     p.Coupons,
		commissions: p.Commissions,
		memberships: p.Memberships,
		renewals:    p.Renewals,
	}
}

// quoteState is everything a commit needs beyond the result itself.
type quoteState struct {
	result     saledomain.SaleResult
	resolution renewaldomain.Resolution
	plan       *plandomain.Plan
	coupon     *coupondomain.Coupon
	payment    paymentdomain.Spec
	today      time.Time
}

// Quote implements domain.Service. It prices the sale without writing
// anything; the reconciliation gate only applies at commit time so the
// console can show a live quote while the operator is still filling in
// payment lines.
func (s *Service) Quote(ctx context.Context, req saledomain.SaleRequest) (saledomain.SaleResult, error) {
	st, err := s.buildQuote(ctx, req)
	if err != nil {
		return saledomain.SaleResult{}, err
	}
	return st.result, nil
}

// Commit implements domain.Service.
//
// Stages: validating -> expiring_prior -> persisting_subscription ->
// persisting_payment_lines -> incrementing_coupon -> done. The
// subscription insert is the only required write; everything after it
// is best-effort and must not fail the sale, because the record is
// already durable and this engine runs no distributed transaction.
func (s *Service) Commit(ctx context.Context, req saledomain.SaleRequest) (saledomain.SaleResult, error) {
	// Stage: validating.
	operatorID, ok := actorcontext.OperatorID(ctx)
	if !ok {
		return saledomain.SaleResult{}, saledomain.NewError(saledomain.KindValidation, saledomain.ErrMissingOperator)
	}
	if req.Payment == nil {
		return saledomain.SaleResult{}, saledomain.NewError(saledomain.KindValidation, saledomain.ErrMissingPayment)
	}

	if req.IdempotencyKey != "" {
		existing, err := s.memberships.FindByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil {
			return saledomain.SaleResult{}, saledomain.NewStoreError("validating", err)
		}
		if existing != nil {
			s.log.Info("idempotent replay, returning persisted sale",
				zap.Int64("membership_id", int64(existing.ID)),
				zap.String("idempotency_key", req.IdempotencyKey),
			)
			return resultFromMembership(existing), nil
		}
	}

	st, err := s.buildQuote(ctx, req)
	if err != nil {
		return saledomain.SaleResult{}, err
	}

	rec := paymentdomain.Reconcile(st.result.Final, st.payment)
	if !rec.OK {
		return saledomain.SaleResult{}, saledomain.NewError(saledomain.KindReconciliation, errors.New(rec.Message))
	}
	st.result.Change = rec.Change

	// Another sale for this customer may have landed since the quote
	// was shown; a stale fingerprint fails the commit instead of
	// silently racing the renewal.
	if req.RenewalToken != "" && req.RenewalToken != st.resolution.Token {
		return saledomain.SaleResult{}, saledomain.NewError(saledomain.KindValidation, saledomain.ErrStaleRenewalState)
	}

	if err := ctx.Err(); err != nil {
		return saledomain.SaleResult{}, saledomain.NewStoreError("validating", err)
	}

	now := s.clock.Now(ctx)

	// Stage: expiring_prior. A stale active row is preferable to
	// blocking the sale, so failures only warn.
	if st.resolution.IsRenewal {
		note := fmt.Sprintf("expired by renewal on %s", st.today.Format("2006-01-02"))
		n, err := s.memberships.ExpireActiveByCustomer(ctx, req.CustomerID, note, operatorID, now)
		if err != nil {
			s.log.Warn("could not expire prior memberships, continuing",
				zap.Int64("customer_id", int64(req.CustomerID)),
				zap.Error(err),
			)
		} else if n > 0 {
			s.log.Info("expired prior memberships",
				zap.Int64("customer_id", int64(req.CustomerID)),
				zap.Int64("count", n),
			)
		}
	}

	// Stage: persisting_subscription. The only fatal write.
	m := s.buildMembership(req, st, rec, operatorID, now)
	if err := s.memberships.Insert(ctx, m); err != nil {
		return saledomain.SaleResult{}, saledomain.NewStoreError("persisting_subscription", err)
	}

	// The sale is durable. Later stages run to completion even if the
	// caller goes away.
	bg := context.WithoutCancel(ctx)

	// Stage: persisting_payment_lines.
	if mixed, ok := st.payment.(paymentdomain.Mixed); ok {
		lines := make([]membershipdomain.PaymentLine, len(mixed.Lines))
		for i, line := range mixed.Lines {
			lines[i] = membershipdomain.PaymentLine{
				ID:               s.genID.Generate(),
				MembershipID:     m.ID,
				Method:           line.Method,
				Amount:           line.Amount,
				CommissionRate:   line.CommissionRate,
				CommissionAmount: line.CommissionAmount,
				Reference:        line.Reference,
				Sequence:         line.Sequence,
				CreatedAt:        now,
			}
		}
		if err := s.memberships.InsertPaymentLines(bg, lines); err != nil {
			s.log.Warn("could not persist split payment lines",
				zap.Int64("membership_id", int64(m.ID)),
				zap.Error(err),
			)
		}
	}

	// Stage: incrementing_coupon.
	if st.coupon != nil {
		if err := s.coupons.IncrementUsage(bg, st.coupon.ID, operatorID, now); err != nil {
			s.log.Warn("could not increment coupon usage",
				zap.String("coupon_code", st.coupon.Code),
				zap.Error(err),
			)
		}
	}

	// Stage: done.
	st.result.MembershipID = m.ID
	s.log.Info("membership sale committed",
		zap.Int64("membership_id", int64(m.ID)),
		zap.Int64("customer_id", int64(req.CustomerID)),
		zap.String("cadence", string(req.Cadence)),
		zap.Bool("is_renewal", st.result.IsRenewal),
		zap.String("final_amount", st.result.Final.String()),
	)
	return st.result, nil
}

func (s *Service) buildQuote(ctx context.Context, req saledomain.SaleRequest) (quoteState, error) {
	if req.CustomerID == 0 {
		return quoteState{}, saledomain.NewError(saledomain.KindValidation, saledomain.ErrMissingCustomer)
	}
	if req.PlanID == 0 {
		return quoteState{}, saledomain.NewError(saledomain.KindValidation, saledomain.ErrMissingPlan)
	}
	if !req.Cadence.Valid() {
		return quoteState{}, saledomain.NewError(saledomain.KindValidation, saledomain.ErrInvalidCadence)
	}

	today := period.DateIn(s.clock.Now(ctx), s.loc)

	cust, err := s.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return quoteState{}, saledomain.NewStoreError("validating", err)
	}
	if cust == nil {
		return quoteState{}, saledomain.NewError(saledomain.KindNotFound, customerdomain.ErrCustomerNotFound)
	}

	plan, err := s.plans.FindByID(ctx, req.PlanID)
	if err != nil {
		return quoteState{}, saledomain.NewStoreError("validating", err)
	}
	if plan == nil {
		return quoteState{}, saledomain.NewError(saledomain.KindNotFound, plandomain.ErrPlanNotFound)
	}

	price, err := plan.PriceFor(req.Cadence)
	if err != nil {
		return quoteState{}, saledomain.NewError(saledomain.KindValidation, err)
	}

	var coupon *coupondomain.Coupon
	if req.CouponCode != "" {
		coupon, err = s.coupons.FindByCode(ctx, req.CouponCode)
		if err != nil {
			return quoteState{}, saledomain.NewStoreError("validating", err)
		}
		if coupon == nil {
			return quoteState{}, saledomain.NewError(saledomain.KindNotFound, coupondomain.ErrCouponNotFound)
		}
	}

	rules, err := s.commissions.ListActive(ctx)
	if err != nil {
		return quoteState{}, saledomain.NewStoreError("validating", err)
	}

	resolution := s.renewals.Resolve(ctx, req.CustomerID, today)

	skip := resolution.SkipInscription
	if req.ForceSkipInscription != nil {
		skip = *req.ForceSkipInscription
	}

	payment := req.Payment
	if mixed, ok := payment.(paymentdomain.Mixed); ok {
		payment = paymentdomain.Mixed{
			Lines: pricing.NormalizeLines(mixed.Lines, rules, req.CustomCommissionRate),
		}
	}

	breakdown, err := pricing.Compute(pricing.Inputs{
		PlanPrice:       price,
		InscriptionFee:  plan.InscriptionPrice,
		IsRenewal:       resolution.IsRenewal,
		SkipInscription: skip,
		Coupon:          coupon,
		Today:           today,
		Payment:         payment,
		Rules:           rules,
		OverrideRate:    req.CustomCommissionRate,
	})
	if err != nil {
		return quoteState{}, saledomain.NewError(saledomain.KindValidation, err)
	}

	start := resolution.AnchorDate
	var end *time.Time
	if req.Cadence.HasEndDate() {
		e := period.Advance(start, req.Cadence, plan.Overrides())
		if shortfall := period.ShortfallDays(start, e, req.Cadence); shortfall > 0 {
			s.log.Warn("computed period is shorter than expected",
				zap.String("cadence", string(req.Cadence)),
				zap.Time("start", start),
				zap.Time("end", e),
				zap.Int("shortfall_days", shortfall),
			)
		}
		end = &e
	}

	result := saledomain.SaleResult{
		IsRenewal:       resolution.IsRenewal,
		SkipInscription: skip || resolution.IsRenewal,
		StartDate:       start,
		EndDate:         end,
		Subtotal:        breakdown.Subtotal,
		Inscription:     breakdown.Inscription,
		Discount:        breakdown.Discount,
		Commission:      breakdown.Commission,
		Total:           breakdown.Total,
		Final:           breakdown.Final,
		RenewalToken:    resolution.Token,
	}

	return quoteState{
		result:     result,
		resolution: resolution,
		plan:       plan,
		coupon:     coupon,
		payment:    payment,
		today:      today,
	}, nil
}

func (s *Service) buildMembership(
	req saledomain.SaleRequest,
	st quoteState,
	rec paymentdomain.Reconciliation,
	operatorID snowflake.ID,
	now time.Time,
) *membershipdomain.Membership {
	m := &membershipdomain.Membership{
		ID:         s.genID.Generate(),
		CustomerID: req.CustomerID,
		PlanID:     req.PlanID,
		Cadence:    req.Cadence,
		Status:     membershipdomain.StatusActive,

		StartDate: st.result.StartDate,
		EndDate:   st.result.EndDate,

		Subtotal:          st.result.Subtotal,
		InscriptionAmount: st.result.Inscription,
		DiscountAmount:    st.result.Discount,
		CommissionAmount:  st.result.Commission,
		AmountPaid:        st.result.Final,

		AmountTendered: st.result.Final,
		ChangeGiven:    rec.Change,

		IsRenewal:            st.result.IsRenewal,
		SkipInscription:      st.result.SkipInscription,
		CustomCommissionRate: req.CustomCommissionRate,

		CreatedBy: operatorID,
		UpdatedBy: operatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.Cadence == period.CadenceVisit {
		one := 1
		m.TotalVisits = &one
		remaining := 1
		m.RemainingVisits = &remaining
	}

	switch p := st.payment.(type) {
	case paymentdomain.Single:
		m.PaymentMethod = p.Method
		if p.Reference != "" {
			ref := p.Reference
			m.PaymentReference = &ref
		}
		if p.Method == paymentdomain.MethodCash {
			m.AmountTendered = p.AmountTendered
		}
	case paymentdomain.Mixed:
		m.PaymentMethod = paymentdomain.MethodMixed
		m.IsMixedPayment = true
	}

	if st.coupon != nil {
		code := st.coupon.Code
		m.CouponCode = &code
	}
	if req.Notes != "" {
		notes := req.Notes
		m.Notes = &notes
	}
	if req.IdempotencyKey != "" {
		key := req.IdempotencyKey
		m.IdempotencyKey = &key
	}

	return m
}

func resultFromMembership(m *membershipdomain.Membership) saledomain.SaleResult {
	return saledomain.SaleResult{
		MembershipID:    m.ID,
		IsRenewal:       m.IsRenewal,
		SkipInscription: m.SkipInscription,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		Subtotal:        m.Subtotal,
		Inscription:     m.InscriptionAmount,
		Discount:        m.DiscountAmount,
		Commission:      m.CommissionAmount,
		Total:           m.Subtotal.Add(m.InscriptionAmount).Sub(m.DiscountAmount),
		Final:           m.AmountPaid,
		Change:          m.ChangeGiven,
	}
}
