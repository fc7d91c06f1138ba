package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mardavsj/csrfunds/internal/money"
)

func TestParseRupees(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "WholeRupees", input: "1500", want: 150000},
		{name: "WithPaise", input: "99.50", want: 9950},
		{name: "SinglePaisa", input: "0.01", want: 1},
		{name: "Zero", input: "0", want: 0},
		{name: "Negative", input: "-250", want: -25000},
		{name: "LargeAmount", input: "10000000", want: 1000000000},
		{name: "Empty", input: "", wantErr: true},
		{name: "NotANumber", input: "five hundred", wantErr: true},
		{name: "CurrencySymbol", input: "₹500", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseRupees(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, money.ErrInvalidAmount)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "1500.00", money.FormatRupees(150000))
	assert.Equal(t, "99.50", money.FormatRupees(9950))
	assert.Equal(t, "0.01", money.FormatRupees(1))
	assert.Equal(t, "0.00", money.FormatRupees(0))
}

func TestParseFormatRoundTrip(t *testing.T) {
	paise, err := money.ParseRupees("1234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", money.FormatRupees(paise))
}

func TestValidatePositive(t *testing.T) {
	assert.NoError(t, money.ValidatePositive(1))
	assert.ErrorIs(t, money.ValidatePositive(0), money.ErrInvalidAmount)
	assert.ErrorIs(t, money.ValidatePositive(-100), money.ErrInvalidAmount)
}
