package sponsorship

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a sponsorship.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// transitions is the single source of truth for allowed status moves.
// Expired and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusDraft:  {StatusActive, StatusCancelled},
	StatusActive: {StatusPaused, StatusExpired, StatusCancelled},
	StatusPaused: {StatusActive, StatusExpired, StatusCancelled},
}

// CanTransition reports whether moving from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}

	return false
}

// renewable lists the states a sponsorship can be renewed from: end of term
// is reached while active or paused, or already flipped to expired.
func (s Status) renewable() bool {
	return s == StatusActive || s == StatusPaused || s == StatusExpired
}

// CostItem is one line of a sponsorship's cost breakdown. Amount is paise.
type CostItem struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Renewal is the renewal bookkeeping kept on the original sponsorship.
type Renewal struct {
	Count           int
	NextRenewalDate *time.Time
	LastRenewedAt   *time.Time
	History         []uuid.UUID
}

// Sponsorship is a budgeted commitment from a sponsor to a school over a
// time window. All money fields are int64 paise. Budget fields are mutated
// only by the ledger (allocations) and the renewal workflow (zeroed copies).
type Sponsorship struct {
	ID         uuid.UUID
	Reference  string // human-readable business id, SPONS- prefixed
	SponsorID  uuid.UUID
	SchoolName string
	Title      string
	Status     Status

	TotalBudget     int64
	CommittedFunds  int64
	AllocatedFunds  int64
	RemainingBudget int64

	DurationMonths int
	StartDate      time.Time
	EndDate        time.Time
	CostBreakdown  []CostItem

	Renewal     Renewal
	RenewedFrom *uuid.UUID

	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}
