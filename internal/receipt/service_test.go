package receipt_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mardavsj/csrfunds/internal/receipt"
)

func TestFinancialYearAt(t *testing.T) {
	type testCase struct {
		name string
		date time.Time
		want string
	}

	tests := []testCase{
		{
			name: "AprilFirstStartsNewYear",
			date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			want: "2026-2027",
		},
		{
			name: "MarchBelongsToPreviousYear",
			date: time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC),
			want: "2025-2026",
		},
		{
			name: "January",
			date: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			want: "2025-2026",
		},
		{
			name: "December",
			date: time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC),
			want: "2026-2027",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, receipt.FinancialYearAt(tt.date))
		})
	}
}

func TestService_Generate80GReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	svc := receipt.NewService(repo)

	sponsorID := uuid.New()
	transactionID := uuid.New()

	repo.EXPECT().SponsorExists(gomock.Any(), sponsorID).Return(true, nil)
	repo.EXPECT().
		CreateReceipt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *receipt.TaxReceipt) error {
			r.ID = uuid.New()
			r.Reference = "RCPT-80G-ABCDEF123456"
			r.IssuedAt = time.Now()
			return nil
		})
	repo.EXPECT().
		StampTransaction(gomock.Any(), transactionID, gomock.Any(), "RCPT-80G-ABCDEF123456").
		Return(nil)

	got, err := svc.Generate80GReceipt(context.Background(), receipt.GenerateParams{
		SponsorID:     sponsorID,
		TransactionID: &transactionID,
		Amount:        150000,
		FinancialYear: "2026-2027",
	})
	require.NoError(t, err)
	assert.Equal(t, receipt.StatusIssued, got.Status)
	assert.Equal(t, "2026-2027", got.FinancialYear)
	assert.Equal(t, int64(150000), got.Amount)
}

func TestService_Generate80GReceipt_DefaultsFinancialYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	svc := receipt.NewService(repo)

	sponsorID := uuid.New()

	repo.EXPECT().SponsorExists(gomock.Any(), sponsorID).Return(true, nil)
	repo.EXPECT().CreateReceipt(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Generate80GReceipt(context.Background(), receipt.GenerateParams{
		SponsorID: sponsorID,
		Amount:    50000,
	})
	require.NoError(t, err)
	assert.Equal(t, receipt.FinancialYearAt(time.Now()), got.FinancialYear)
}

func TestService_Generate80GReceipt_SponsorMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	svc := receipt.NewService(repo)

	sponsorID := uuid.New()
	repo.EXPECT().SponsorExists(gomock.Any(), sponsorID).Return(false, nil)

	got, err := svc.Generate80GReceipt(context.Background(), receipt.GenerateParams{
		SponsorID: sponsorID,
		Amount:    50000,
	})
	assert.ErrorIs(t, err, receipt.ErrNotFound)
	assert.Nil(t, got)
}

func TestService_Generate80GReceipt_InvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	svc := receipt.NewService(repo)

	got, err := svc.Generate80GReceipt(context.Background(), receipt.GenerateParams{
		SponsorID: uuid.New(),
		Amount:    0,
	})
	assert.ErrorIs(t, err, receipt.ErrValidation)
	assert.Nil(t, got)
}

func TestService_Generate80GReceipt_AlreadyIssuedReturnsExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	svc := receipt.NewService(repo)

	sponsorID := uuid.New()
	transactionID := uuid.New()
	existing := &receipt.TaxReceipt{
		ID:            uuid.New(),
		SponsorID:     sponsorID,
		TransactionID: &transactionID,
		Amount:        150000,
		Status:        receipt.StatusIssued,
	}

	repo.EXPECT().SponsorExists(gomock.Any(), sponsorID).Return(true, nil)
	repo.EXPECT().CreateReceipt(gomock.Any(), gomock.Any()).Return(receipt.ErrAlreadyIssued)
	repo.EXPECT().GetByTransaction(gomock.Any(), transactionID).Return(existing, nil)

	got, err := svc.Generate80GReceipt(context.Background(), receipt.GenerateParams{
		SponsorID:     sponsorID,
		TransactionID: &transactionID,
		Amount:        150000,
	})
	require.NoError(t, err)
	assert.Equal(t, existing, got)
}

func TestService_IssueForDeposit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	svc := receipt.NewService(repo)

	sponsorID := uuid.New()
	transactionID := uuid.New()

	repo.EXPECT().SponsorExists(gomock.Any(), sponsorID).Return(true, nil)
	repo.EXPECT().
		CreateReceipt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *receipt.TaxReceipt) error {
			require.NotNil(t, r.TransactionID)
			assert.Equal(t, transactionID, *r.TransactionID)
			r.ID = uuid.New()
			return nil
		})
	repo.EXPECT().
		StampTransaction(gomock.Any(), transactionID, gomock.Any(), gomock.Any()).
		Return(nil)

	err := svc.IssueForDeposit(context.Background(), sponsorID, transactionID, 150000)
	assert.NoError(t, err)
}
