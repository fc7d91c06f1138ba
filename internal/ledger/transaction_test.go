package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mardavsj/csrfunds/internal/ledger"
)

func TestStatus_CanTransition(t *testing.T) {
	type testCase struct {
		name string
		from ledger.Status
		to   ledger.Status
		want bool
	}

	tests := []testCase{
		{name: "PendingToConfirmed", from: ledger.StatusPending, to: ledger.StatusConfirmed, want: true},
		{name: "PendingToRejected", from: ledger.StatusPending, to: ledger.StatusRejected, want: true},
		{name: "ConfirmedToReversed", from: ledger.StatusConfirmed, to: ledger.StatusReversed, want: true},
		{name: "ConfirmedToPending", from: ledger.StatusConfirmed, to: ledger.StatusPending, want: false},
		{name: "ConfirmedToRejected", from: ledger.StatusConfirmed, to: ledger.StatusRejected, want: false},
		{name: "RejectedToConfirmed", from: ledger.StatusRejected, to: ledger.StatusConfirmed, want: false},
		{name: "RejectedToPending", from: ledger.StatusRejected, to: ledger.StatusPending, want: false},
		{name: "ReversedToConfirmed", from: ledger.StatusReversed, to: ledger.StatusConfirmed, want: false},
		{name: "PendingToReversed", from: ledger.StatusPending, to: ledger.StatusReversed, want: false},
		{name: "PendingToItself", from: ledger.StatusPending, to: ledger.StatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, ledger.StatusPending.Terminal())
	assert.False(t, ledger.StatusConfirmed.Terminal())
	assert.True(t, ledger.StatusRejected.Terminal())
	assert.True(t, ledger.StatusReversed.Terminal())
}
