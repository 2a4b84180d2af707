package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	paymentdomain "github.com/muscleuplabs/muscleup/internal/payment/domain"
	"github.com/muscleuplabs/muscleup/internal/period"
	saledomain "github.com/muscleuplabs/muscleup/internal/sale/domain"
	"github.com/shopspring/decimal"
)

type singlePaymentRequest struct {
	Method         string          `json:"method"`
	AmountTendered decimal.Decimal `json:"amount_tendered"`
	Reference      string          `json:"reference"`
}

type paymentLineRequest struct {
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

type saleRequest struct {
	CustomerID string `json:"customer_id"`
	PlanID     string `json:"plan_id"`
	Cadence    string `json:"cadence"`

	CouponCode string `json:"coupon_code"`
	Notes      string `json:"notes"`

	Payment      *singlePaymentRequest `json:"payment,omitempty"`
	PaymentLines []paymentLineRequest  `json:"payment_lines,omitempty"`

	CustomCommissionRate *decimal.Decimal `json:"custom_commission_rate,omitempty"`
	ForceSkipInscription *bool            `json:"force_skip_inscription,omitempty"`
	RenewalToken         string           `json:"renewal_token,omitempty"`
}

func (r saleRequest) toDomain(idempotencyKey string) (saledomain.SaleRequest, error) {
	customerID, err := parseID(r.CustomerID)
	if err != nil {
		return saledomain.SaleRequest{}, invalidRequestError(saledomain.ErrMissingCustomer)
	}
	planID, err := parseID(r.PlanID)
	if err != nil {
		return saledomain.SaleRequest{}, invalidRequestError(saledomain.ErrMissingPlan)
	}

	req := saledomain.SaleRequest{
		CustomerID:           customerID,
		PlanID:               planID,
		Cadence:              period.Cadence(strings.TrimSpace(r.Cadence)),
		CouponCode:           strings.TrimSpace(r.CouponCode),
		CustomCommissionRate: r.CustomCommissionRate,
		ForceSkipInscription: r.ForceSkipInscription,
		RenewalToken:         strings.TrimSpace(r.RenewalToken),
		IdempotencyKey:       idempotencyKey,
		Notes:                strings.TrimSpace(r.Notes),
	}

	switch {
	case len(r.PaymentLines) > 0:
		lines := make([]paymentdomain.Line, len(r.PaymentLines))
		for i, line := range r.PaymentLines {
			lines[i] = paymentdomain.Line{
				Method:    strings.TrimSpace(line.Method),
				Amount:    line.Amount,
				Reference: strings.TrimSpace(line.Reference),
				Sequence:  i + 1,
			}
		}
		req.Payment = paymentdomain.Mixed{Lines: lines}
	case r.Payment != nil:
		req.Payment = paymentdomain.Single{
			Method:         strings.TrimSpace(r.Payment.Method),
			AmountTendered: r.Payment.AmountTendered,
			Reference:      strings.TrimSpace(r.Payment.Reference),
		}
	}

	return req, nil
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

func idempotencyKeyFromHeader(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader("Idempotency-Key"))
}

// QuoteSale prices a sale without committing it, so the console can
// show live figures while the operator fills in the wizard.
func (s *Server) QuoteSale(c *gin.Context) {
	var body saleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError(err))
		return
	}

	req, err := body.toDomain("")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.saleSvc.Quote(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, result)
}

// CommitSale runs the full sale: quote, reconcile, persist.
func (s *Server) CommitSale(c *gin.Context) {
	var body saleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError(err))
		return
	}

	req, err := body.toDomain(idempotencyKeyFromHeader(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.saleSvc.Commit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, result)
}
