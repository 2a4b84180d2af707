package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	membershipdomain "github.com/muscleuplabs/muscleup/internal/membership/domain"
	"github.com/muscleuplabs/muscleup/internal/period"
)

// Resolution answers the three questions a new sale asks of a
// customer's history: is this a renewal, is the inscription fee waived,
// and from which date does the new period run.
type Resolution struct {
	IsRenewal       bool
	SkipInscription bool
	// AnchorDate is the start date for period advancement: the day
	// after the most recent still-running active period ends, or today.
	AnchorDate time.Time
	// PriorEndDate is the end date that produced the anchor, when one
	// exists.
	PriorEndDate *time.Time
	// Token fingerprints the prior state so a commit can detect that
	// another sale changed the history underneath it.
	Token string
}

// ResolveHistory derives a Resolution from a customer's subscription
// history. Any history at all makes the sale a renewal and waives
// inscription. The anchor comes from the most recent active entry
// whose end date is today or later; active entries without an end date
// (visit credit) count toward renewal but cannot anchor a period.
func ResolveHistory(entries []membershipdomain.Membership, today time.Time) Resolution {
	res := Resolution{AnchorDate: today}
	if len(entries) == 0 {
		return res
	}

	res.IsRenewal = true
	res.SkipInscription = true

	var latest *membershipdomain.Membership
	for i := range entries {
		e := &entries[i]
		if e.Status != membershipdomain.StatusActive || e.EndDate == nil {
			continue
		}
		if e.EndDate.Before(today) {
			continue
		}
		if latest == nil || e.EndDate.After(*latest.EndDate) {
			latest = e
		}
	}

	if latest != nil {
		end := *latest.EndDate
		res.PriorEndDate = &end
		res.AnchorDate = period.AddDays(end, 1)
		res.Token = Token(latest.ID, end)
	}

	return res
}

// Token builds the optimistic precondition fingerprint for a prior
// active membership.
func Token(id snowflake.ID, end time.Time) string {
	return fmt.Sprintf("%d:%s", id, end.Format("2006-01-02"))
}

type Service interface {
	// Resolve reads the customer's history and derives the renewal
	// resolution for a sale happening today. A failed history read
	// resolves defensively to a first-sale resolution (inscription
	// charged) instead of failing the quote.
	Resolve(ctx context.Context, customerID snowflake.ID, today time.Time) Resolution
}
