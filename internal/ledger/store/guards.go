package store

import (
	"fmt"

	"github.com/mardavsj/csrfunds/internal/ledger"
)

// checkApprovable guards the approval path: only pending deposits may be
// confirmed or rejected.
func checkApprovable(tx *ledger.FundTransaction, next ledger.Status) error {
	if tx.Type != ledger.TypeDeposit {
		return fmt.Errorf("%w: %s transactions are not approvable", ledger.ErrInvalidState, tx.Type)
	}

	if !tx.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ledger.ErrInvalidState, tx.Status, next)
	}

	return nil
}

// checkSponsorUsable gates every balance movement on an approved account.
func checkSponsorUsable(status string) error {
	if status != "approved" {
		return fmt.Errorf("%w: account is %s", ledger.ErrSponsorNotApproved, status)
	}

	return nil
}

// checkFunds rejects debits that would push the available balance negative.
func checkFunds(available, amount int64) error {
	if available < amount {
		return fmt.Errorf("%w: have %d, need %d", ledger.ErrInsufficientBalance, available, amount)
	}

	return nil
}

// checkBudget rejects allocations that would push a sponsorship's allocated
// funds past its total budget.
func checkBudget(allocated, amount, totalBudget int64) error {
	if allocated+amount > totalBudget {
		return fmt.Errorf("%w: allocated %d + %d > budget %d",
			ledger.ErrBudgetExceeded, allocated, amount, totalBudget)
	}

	return nil
}

// newRemainingBudget keeps remaining_budget derived from the fields that
// define it. Callers hold the sponsorship row lock, so the inputs are
// authoritative.
func newRemainingBudget(totalBudget, allocated, amount int64) int64 {
	return totalBudget - (allocated + amount)
}
