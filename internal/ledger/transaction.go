package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Type represents the kind of money movement a transaction records.
// The type is fixed at creation and never changes.
type Type string

const (
	TypeDeposit    Type = "deposit"
	TypeAllocation Type = "allocation"
	TypeRefund     Type = "refund"
	TypeReversal   Type = "reversal"
)

// Status represents the lifecycle state of a fund transaction.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusReversed  Status = "reversed"
)

// transitions is the single source of truth for allowed status moves.
// Confirmed and rejected are terminal for the approval path; reversed is
// only reachable from confirmed.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected},
	StatusConfirmed: {StatusReversed},
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

// Terminal reports whether no further approval-path move is possible.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusReversed
}

// FundTransaction is the immutable-once-settled record of one money movement.
// Amount is int64 paise and always positive; the type tells the direction.
type FundTransaction struct {
	ID        uuid.UUID
	Reference string // human-readable business id, FTX- prefixed
	SponsorID uuid.UUID
	// SponsorshipID is set for allocations: the budget the money moved into.
	SponsorshipID *uuid.UUID
	Amount        int64
	Type          Type
	Status        Status

	PaymentMethod string
	BankReference string
	InitiatedBy   uuid.UUID
	ApprovedBy    *uuid.UUID
	Metadata      map[string]string

	CreatedAt  time.Time
	UpdatedAt  *time.Time
	ApprovedAt *time.Time
}
