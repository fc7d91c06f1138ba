package sponsor

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the approval state of a sponsor account.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// transitions lists the allowed status moves. Approval decisions are only
// taken on pending accounts.
var transitions = map[Status][]Status{
	StatusPending: {StatusApproved, StatusRejected},
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

// Account is a sponsor's wallet. All amounts are int64 paise.
// Balances are mutated exclusively by the ledger, never by this package.
type Account struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Email  string
	Status Status

	AvailableBalance int64
	TotalBudget      int64
	CommittedAmount  int64
	AllocatedFunds   int64

	AutoCreated   bool
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeactivatedAt *time.Time
}

// Active reports whether the account can take part in ledger operations.
func (a *Account) Active() bool {
	return a.DeactivatedAt == nil
}
