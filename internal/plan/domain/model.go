package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/muscleuplabs/muscleup/internal/period"
	"github.com/shopspring/decimal"
)

var (
	ErrPlanNotFound   = errors.New("plan not found")
	ErrUnknownCadence = errors.New("plan has no price for that cadence")
)

// Plan is a membership plan with one price per cadence and a one-time
// inscription fee. Immutable for the duration of a sale; the catalog
// screens own its lifecycle.
type Plan struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"type:varchar(120);not null"`
	Description string       `json:"description" gorm:"type:text"`

	InscriptionPrice decimal.Decimal `json:"inscription_price" gorm:"type:numeric(12,2);not null"`

	VisitPrice     decimal.Decimal `json:"visit_price" gorm:"type:numeric(12,2);not null"`
	WeeklyPrice    decimal.Decimal `json:"weekly_price" gorm:"type:numeric(12,2);not null"`
	BiweeklyPrice  decimal.Decimal `json:"biweekly_price" gorm:"type:numeric(12,2);not null"`
	MonthlyPrice   decimal.Decimal `json:"monthly_price" gorm:"type:numeric(12,2);not null"`
	BimonthlyPrice decimal.Decimal `json:"bimonthly_price" gorm:"type:numeric(12,2);not null"`
	QuarterlyPrice decimal.Decimal `json:"quarterly_price" gorm:"type:numeric(12,2);not null"`
	SemesterPrice  decimal.Decimal `json:"semester_price" gorm:"type:numeric(12,2);not null"`
	AnnualPrice    decimal.Decimal `json:"annual_price" gorm:"type:numeric(12,2);not null"`

	// Day-count overrides for the day-based cadences. Zero means the
	// calendar default (7 / 14 days).
	WeeklyDuration   int `json:"weekly_duration"`
	BiweeklyDuration int `json:"biweekly_duration"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

func (Plan) TableName() string { return "membership_plans" }

// PriceFor returns the plan price for a cadence.
func (p *Plan) PriceFor(c period.Cadence) (decimal.Decimal, error) {
	switch c {
	case period.CadenceVisit:
		return p.VisitPrice, nil
	case period.CadenceWeekly:
		return p.WeeklyPrice, nil
	case period.CadenceBiweekly:
		return p.BiweeklyPrice, nil
	case period.CadenceMonthly:
		return p.MonthlyPrice, nil
	case period.CadenceBimonthly:
		return p.BimonthlyPrice, nil
	case period.CadenceQuarterly:
		return p.QuarterlyPrice, nil
	case period.CadenceSemester:
		return p.SemesterPrice, nil
	case period.CadenceAnnual:
		return p.AnnualPrice, nil
	}
	return decimal.Zero, ErrUnknownCadence
}

// Overrides exposes the plan duration overrides to the period advancer.
func (p *Plan) Overrides() period.Overrides {
	return period.Overrides{
		WeeklyDays:   p.WeeklyDuration,
		BiweeklyDays: p.BiweeklyDuration,
	}
}

type Repository interface {
	// FindByID returns (nil, nil) when no such plan exists.
	FindByID(ctx context.Context, id snowflake.ID) (*Plan, error)
	ListActive(ctx context.Context) ([]Plan, error)
}
