package ledger

import "errors"

var (
	// ErrNotFound covers absent transactions, sponsors and sponsorships;
	// callers get the specific entity in the wrapped message.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned for any status move not in the transition
	// table, and for approval calls on non-deposit transactions.
	ErrInvalidState = errors.New("invalid transaction state transition")

	// ErrInsufficientBalance is returned when an allocation or refund exceeds
	// the sponsor's available balance.
	ErrInsufficientBalance = errors.New("insufficient available balance")

	// ErrBudgetExceeded is returned when an allocation would push a
	// sponsorship's allocated funds past its total budget.
	ErrBudgetExceeded = errors.New("allocation exceeds sponsorship budget")

	// ErrSponsorNotApproved is returned when money would move through a
	// sponsor account that is still pending or was rejected.
	ErrSponsorNotApproved = errors.New("sponsor account not approved")

	// ErrConflict is returned when a concurrent balance mutation forced the
	// store to abort. The service retries these a bounded number of times.
	ErrConflict = errors.New("concurrent balance update conflict")

	// ErrValidation is returned for bad input before any mutation happens.
	ErrValidation = errors.New("invalid ledger input")
)
