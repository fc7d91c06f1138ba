package sponsorship

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// RenewalOverrides are the caller-supplied replacements for terms carried
// over from the source sponsorship. Nil fields fall back to the source.
type RenewalOverrides struct {
	Title          *string
	TotalBudget    *int64
	DurationMonths *int
	StartDate      *time.Time
	EndDate        *time.Time
	CostBreakdown  []CostItem
}

// RenewalResult reports what the renewal produced. AlreadyRenewed is set
// when a prior renewal of the same source was found and returned instead of
// creating a duplicate.
type RenewalResult struct {
	Sponsorship    *Sponsorship
	StudentsMoved  int
	RenewalCost    int64
	AlreadyRenewed bool
}

// CalculateRenewalCost sums the cost breakdown, preferring the caller's
// override list over the source's. Pure; no side effects.
func CalculateRenewalCost(source *Sponsorship, overrides []CostItem) int64 {
	breakdown := overrides
	if len(breakdown) == 0 {
		breakdown = source.CostBreakdown
	}

	var total int64
	for _, item := range breakdown {
		total += item.Amount
	}

	return total
}

// Renew clones the source sponsorship into a draft successor, links the two
// and migrates the active student roster. All steps run in one database
// transaction under a row lock on the source: a failure at any step leaves
// nothing behind, and a retried request finds the existing renewal instead
// of creating another.
func (s *Service) Renew(ctx context.Context, sourceID uuid.UUID, overrides RenewalOverrides, userID uuid.UUID) (*RenewalResult, error) {
	rtx, err := s.repo.BeginRenewal(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("begin renewal: %w", err)
	}
	defer rtx.Rollback()

	source, err := rtx.Source(ctx)
	if err != nil {
		return nil, err
	}

	if !source.Status.renewable() {
		return nil, fmt.Errorf("%w: status is %s", ErrNotRenewable, source.Status)
	}

	if existing, err := rtx.FindRenewal(ctx); err != nil {
		return nil, fmt.Errorf("checking for existing renewal: %w", err)
	} else if existing != nil {
		return &RenewalResult{
			Sponsorship:    existing,
			RenewalCost:    CalculateRenewalCost(source, overrides.CostBreakdown),
			AlreadyRenewed: true,
		}, nil
	}

	renewal := buildRenewal(source, overrides, userID)
	if err := rtx.CreateRenewal(ctx, renewal); err != nil {
		return nil, fmt.Errorf("creating renewal sponsorship: %w", err)
	}

	if err := rtx.LinkRenewal(ctx, renewal.ID, renewal.StartDate); err != nil {
		return nil, fmt.Errorf("linking renewal to source: %w", err)
	}

	moved, err := rtx.TransferStudents(ctx, renewal.ID)
	if err != nil {
		return nil, fmt.Errorf("transferring students: %w", err)
	}

	if err := rtx.Commit(); err != nil {
		return nil, fmt.Errorf("committing renewal: %w", err)
	}

	s.audit.LogAction(ctx, userID, "sponsorship.renewed", "sponsorship", renewal.ID, map[string]string{
		"source_id":      source.ID.String(),
		"students_moved": strconv.Itoa(moved),
	})

	return &RenewalResult{
		Sponsorship:   renewal,
		StudentsMoved: moved,
		RenewalCost:   CalculateRenewalCost(source, overrides.CostBreakdown),
	}, nil
}

// buildRenewal derives the successor sponsorship. Budgets start zeroed with
// the full total available; the source record is never touched here.
func buildRenewal(source *Sponsorship, o RenewalOverrides, userID uuid.UUID) *Sponsorship {
	duration := source.DurationMonths
	if o.DurationMonths != nil {
		duration = *o.DurationMonths
	}

	if duration <= 0 {
		duration = 12
	}

	start := source.EndDate
	if o.StartDate != nil {
		start = *o.StartDate
	}

	if start.IsZero() {
		start = time.Now()
	}

	end := start.AddDate(0, duration, 0)
	if o.EndDate != nil {
		end = *o.EndDate
	}

	title := source.Title
	if o.Title != nil {
		title = *o.Title
	}

	totalBudget := source.TotalBudget
	if o.TotalBudget != nil {
		totalBudget = *o.TotalBudget
	}

	breakdown := source.CostBreakdown
	if len(o.CostBreakdown) > 0 {
		breakdown = o.CostBreakdown
	}

	return &Sponsorship{
		SponsorID:       source.SponsorID,
		SchoolName:      source.SchoolName,
		Title:           title,
		Status:          StatusDraft,
		TotalBudget:     totalBudget,
		CommittedFunds:  0,
		AllocatedFunds:  0,
		RemainingBudget: totalBudget,
		DurationMonths:  duration,
		StartDate:       start,
		EndDate:         end,
		CostBreakdown:   breakdown,
		RenewedFrom:     &source.ID,
		CreatedBy:       userID,
	}
}
