package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mardavsj/csrfunds/internal/ledger"
)

func TestCheckSponsorUsable(t *testing.T) {
	type testCase struct {
		name    string
		status  string
		wantErr error
	}

	tests := []testCase{
		{
			name:   "Approved",
			status: "approved",
		},
		{
			name:    "Pending",
			status:  "pending",
			wantErr: ledger.ErrSponsorNotApproved,
		},
		{
			name:    "Rejected",
			status:  "rejected",
			wantErr: ledger.ErrSponsorNotApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSponsorUsable(tt.status)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckFunds(t *testing.T) {
	type testCase struct {
		name      string
		available int64
		amount    int64
		wantErr   error
	}

	tests := []testCase{
		{
			name:      "SufficientBalance",
			available: 200000,
			amount:    150000,
		},
		{
			name:      "ExactBalance",
			available: 150000,
			amount:    150000,
		},
		{
			name:      "InsufficientByOnePaisa",
			available: 149999,
			amount:    150000,
			wantErr:   ledger.ErrInsufficientBalance,
		},
		{
			name:    "EmptyAccount",
			amount:  1,
			wantErr: ledger.ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkFunds(tt.available, tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckBudget(t *testing.T) {
	type testCase struct {
		name        string
		allocated   int64
		amount      int64
		totalBudget int64
		wantErr     error
	}

	tests := []testCase{
		{
			name:        "WithinBudget",
			allocated:   9000000,
			amount:      1000000,
			totalBudget: 12000000,
		},
		{
			name:        "ExactlyAtCap",
			allocated:   9000000,
			amount:      3000000,
			totalBudget: 12000000,
		},
		{
			name:        "OverCapByOnePaisa",
			allocated:   9000000,
			amount:      3000001,
			totalBudget: 12000000,
			wantErr:     ledger.ErrBudgetExceeded,
		},
		{
			name:        "FreshSponsorshipOverBudget",
			amount:      12000001,
			totalBudget: 12000000,
			wantErr:     ledger.ErrBudgetExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkBudget(tt.allocated, tt.amount, tt.totalBudget)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewRemainingBudget(t *testing.T) {
	type testCase struct {
		name        string
		totalBudget int64
		allocated   int64
		amount      int64
		want        int64
	}

	tests := []testCase{
		{
			name:        "PartialAllocation",
			totalBudget: 12000000,
			allocated:   9000000,
			amount:      1000000,
			want:        2000000,
		},
		{
			name:        "AllocationToCapDrainsBudget",
			totalBudget: 12000000,
			allocated:   9000000,
			amount:      3000000,
			want:        0,
		},
		{
			name:        "FirstAllocation",
			totalBudget: 12000000,
			amount:      500000,
			want:        11500000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newRemainingBudget(tt.totalBudget, tt.allocated, tt.amount))
		})
	}
}

func TestCheckApprovable(t *testing.T) {
	type testCase struct {
		name    string
		txType  ledger.Type
		status  ledger.Status
		next    ledger.Status
		wantErr error
	}

	tests := []testCase{
		{
			name:   "PendingDepositConfirm",
			txType: ledger.TypeDeposit,
			status: ledger.StatusPending,
			next:   ledger.StatusConfirmed,
		},
		{
			name:   "PendingDepositReject",
			txType: ledger.TypeDeposit,
			status: ledger.StatusPending,
			next:   ledger.StatusRejected,
		},
		{
			name:    "ConfirmedDeposit",
			txType:  ledger.TypeDeposit,
			status:  ledger.StatusConfirmed,
			next:    ledger.StatusConfirmed,
			wantErr: ledger.ErrInvalidState,
		},
		{
			name:    "RejectedDeposit",
			txType:  ledger.TypeDeposit,
			status:  ledger.StatusRejected,
			next:    ledger.StatusConfirmed,
			wantErr: ledger.ErrInvalidState,
		},
		{
			name:    "AllocationNotApprovable",
			txType:  ledger.TypeAllocation,
			status:  ledger.StatusPending,
			next:    ledger.StatusConfirmed,
			wantErr: ledger.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &ledger.FundTransaction{Type: tt.txType, Status: tt.status}
			err := checkApprovable(tx, tt.next)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
