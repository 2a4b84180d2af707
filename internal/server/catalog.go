package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	coupondomain "github.com/muscleuplabs/muscleup/internal/coupon/domain"
	"github.com/muscleuplabs/muscleup/internal/period"
	saledomain "github.com/muscleuplabs/muscleup/internal/sale/domain"
	"github.com/shopspring/decimal"
)

// ListPlans returns the active plan catalog for the sale wizard.
func (s *Server) ListPlans(c *gin.Context) {
	plans, err := s.planRepo.ListActive(c.Request.Context())
	if err != nil {
		AbortWithError(c, saledomain.NewStoreError("listing_plans", err))
		return
	}
	respondData(c, plans)
}

type couponPreviewRequest struct {
	Code     string          `json:"code"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type couponPreviewResponse struct {
	Code         string          `json:"code"`
	Valid        bool            `json:"valid"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountType string          `json:"discount_type,omitempty"`
	Description  string          `json:"description,omitempty"`
	Message      string          `json:"message,omitempty"`
}

// PreviewCoupon evaluates a code against a subtotal without redeeming
// it. An invalid code is a normal answer here, not an error status.
func (s *Server) PreviewCoupon(c *gin.Context) {
	var body couponPreviewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError(err))
		return
	}

	code := strings.ToUpper(strings.TrimSpace(body.Code))
	resp := couponPreviewResponse{Code: code, Discount: decimal.Zero}

	coupon, err := s.couponRepo.FindByCode(c.Request.Context(), code)
	if err != nil {
		AbortWithError(c, saledomain.NewStoreError("finding_coupon", err))
		return
	}

	today := period.DateIn(s.clock.Now(c.Request.Context()), s.loc)
	discount, err := coupondomain.Evaluate(coupon, body.Subtotal, today)
	if err != nil {
		resp.Message = err.Error()
		respondData(c, resp)
		return
	}

	resp.Valid = true
	resp.Discount = discount
	resp.DiscountType = string(coupon.DiscountType)
	resp.Description = coupon.Description
	respondData(c, resp)
}
