package sponsorship_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mardavsj/csrfunds/internal/sponsorship"
)

func activeSource() *sponsorship.Sponsorship {
	return &sponsorship.Sponsorship{
		ID:              uuid.New(),
		SponsorID:       uuid.New(),
		SchoolName:      "Govt Primary School Wagholi",
		Title:           "Primary Education 2025",
		Status:          sponsorship.StatusActive,
		TotalBudget:     12000000,
		CommittedFunds:  12000000,
		AllocatedFunds:  9000000,
		RemainingBudget: 3000000,
		DurationMonths:  12,
		StartDate:       time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		CostBreakdown: []sponsorship.CostItem{
			{Name: "tuition", Amount: 50000},
			{Name: "books", Amount: 30000},
		},
	}
}

func TestCalculateRenewalCost(t *testing.T) {
	source := activeSource()

	type testCase struct {
		name      string
		overrides []sponsorship.CostItem
		want      int64
	}

	tests := []testCase{
		{
			name: "SourceBreakdown",
			want: 80000,
		},
		{
			name: "OverrideBreakdown",
			overrides: []sponsorship.CostItem{
				{Name: "tuition", Amount: 60000},
				{Name: "books", Amount: 30000},
				{Name: "uniform", Amount: 10000},
			},
			want: 100000,
		},
		{
			name:      "EmptyOverrideFallsBackToSource",
			overrides: []sponsorship.CostItem{},
			want:      80000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sponsorship.CalculateRenewalCost(source, tt.overrides))
		})
	}
}

func TestService_Renew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := sponsorship.NewMockRepository(ctrl)
	rtx := sponsorship.NewMockRenewalTx(ctrl)
	auditor := sponsorship.NewMockAuditLogger(ctrl)
	svc := sponsorship.NewService(repo, auditor)

	source := activeSource()
	userID := uuid.New()

	repo.EXPECT().BeginRenewal(gomock.Any(), source.ID).Return(rtx, nil)
	rtx.EXPECT().Source(gomock.Any()).Return(source, nil)
	rtx.EXPECT().FindRenewal(gomock.Any()).Return(nil, nil)
	rtx.EXPECT().
		CreateRenewal(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sp *sponsorship.Sponsorship) error {
			sp.ID = uuid.New()
			return nil
		})
	rtx.EXPECT().
		LinkRenewal(gomock.Any(), gomock.Any(), source.EndDate).
		Return(nil)
	rtx.EXPECT().TransferStudents(gomock.Any(), gomock.Any()).Return(5, nil)
	rtx.EXPECT().Commit().Return(nil)
	rtx.EXPECT().Rollback().Return(nil)
	auditor.EXPECT().LogAction(gomock.Any(), userID, "sponsorship.renewed", "sponsorship", gomock.Any(), gomock.Any())

	result, err := svc.Renew(context.Background(), source.ID, sponsorship.RenewalOverrides{}, userID)
	require.NoError(t, err)
	assert.False(t, result.AlreadyRenewed)
	assert.Equal(t, 5, result.StudentsMoved)
	assert.Equal(t, int64(80000), result.RenewalCost)

	renewal := result.Sponsorship
	require.NotNil(t, renewal)
	assert.Equal(t, sponsorship.StatusDraft, renewal.Status)
	assert.Equal(t, source.EndDate, renewal.StartDate)
	assert.Equal(t, source.EndDate.AddDate(0, 12, 0), renewal.EndDate)
	assert.Equal(t, source.TotalBudget, renewal.TotalBudget)
	assert.Zero(t, renewal.CommittedFunds)
	assert.Zero(t, renewal.AllocatedFunds)
	assert.Equal(t, renewal.TotalBudget, renewal.RemainingBudget)
	require.NotNil(t, renewal.RenewedFrom)
	assert.Equal(t, source.ID, *renewal.RenewedFrom)
	assert.Equal(t, userID, renewal.CreatedBy)
}

func TestService_Renew_WithOverrides(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := sponsorship.NewMockRepository(ctrl)
	rtx := sponsorship.NewMockRenewalTx(ctrl)
	auditor := sponsorship.NewMockAuditLogger(ctrl)
	svc := sponsorship.NewService(repo, auditor)

	source := activeSource()
	newTitle := "Primary Education 2026"
	newBudget := int64(15000000)
	newStart := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	newDuration := 6
	overrides := sponsorship.RenewalOverrides{
		Title:          &newTitle,
		TotalBudget:    &newBudget,
		DurationMonths: &newDuration,
		StartDate:      &newStart,
		CostBreakdown: []sponsorship.CostItem{
			{Name: "tuition", Amount: 70000},
		},
	}

	repo.EXPECT().BeginRenewal(gomock.Any(), source.ID).Return(rtx, nil)
	rtx.EXPECT().Source(gomock.Any()).Return(source, nil)
	rtx.EXPECT().FindRenewal(gomock.Any()).Return(nil, nil)
	rtx.EXPECT().CreateRenewal(gomock.Any(), gomock.Any()).Return(nil)
	rtx.EXPECT().LinkRenewal(gomock.Any(), gomock.Any(), newStart).Return(nil)
	rtx.EXPECT().TransferStudents(gomock.Any(), gomock.Any()).Return(0, nil)
	rtx.EXPECT().Commit().Return(nil)
	rtx.EXPECT().Rollback().Return(nil)
	auditor.EXPECT().LogAction(gomock.Any(), gomock.Any(), "sponsorship.renewed", "sponsorship", gomock.Any(), gomock.Any())

	result, err := svc.Renew(context.Background(), source.ID, overrides, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(70000), result.RenewalCost)

	renewal := result.Sponsorship
	assert.Equal(t, newTitle, renewal.Title)
	assert.Equal(t, newBudget, renewal.TotalBudget)
	assert.Equal(t, newBudget, renewal.RemainingBudget)
	assert.Equal(t, newStart, renewal.StartDate)
	assert.Equal(t, newStart.AddDate(0, 6, 0), renewal.EndDate)
}

func TestService_Renew_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := sponsorship.NewMockRepository(ctrl)
	rtx := sponsorship.NewMockRenewalTx(ctrl)
	svc := sponsorship.NewService(repo, sponsorship.NewMockAuditLogger(ctrl))

	source := activeSource()
	existing := &sponsorship.Sponsorship{
		ID:          uuid.New(),
		Status:      sponsorship.StatusDraft,
		RenewedFrom: &source.ID,
	}

	repo.EXPECT().BeginRenewal(gomock.Any(), source.ID).Return(rtx, nil)
	rtx.EXPECT().Source(gomock.Any()).Return(source, nil)
	rtx.EXPECT().FindRenewal(gomock.Any()).Return(existing, nil)
	rtx.EXPECT().Rollback().Return(nil)

	result, err := svc.Renew(context.Background(), source.ID, sponsorship.RenewalOverrides{}, uuid.New())
	require.NoError(t, err)
	assert.True(t, result.AlreadyRenewed)
	assert.Equal(t, existing, result.Sponsorship)
	assert.Zero(t, result.StudentsMoved)
}

func TestService_Renew_NotRenewable(t *testing.T) {
	type testCase struct {
		name   string
		status sponsorship.Status
	}

	tests := []testCase{
		{name: "Draft", status: sponsorship.StatusDraft},
		{name: "Cancelled", status: sponsorship.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := sponsorship.NewMockRepository(ctrl)
			rtx := sponsorship.NewMockRenewalTx(ctrl)
			svc := sponsorship.NewService(repo, sponsorship.NewMockAuditLogger(ctrl))

			source := activeSource()
			source.Status = tt.status

			repo.EXPECT().BeginRenewal(gomock.Any(), source.ID).Return(rtx, nil)
			rtx.EXPECT().Source(gomock.Any()).Return(source, nil)
			rtx.EXPECT().Rollback().Return(nil)

			result, err := svc.Renew(context.Background(), source.ID, sponsorship.RenewalOverrides{}, uuid.New())
			assert.ErrorIs(t, err, sponsorship.ErrNotRenewable)
			assert.Nil(t, result)
		})
	}
}

func TestService_Renew_TransferFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := sponsorship.NewMockRepository(ctrl)
	rtx := sponsorship.NewMockRenewalTx(ctrl)
	svc := sponsorship.NewService(repo, sponsorship.NewMockAuditLogger(ctrl))

	source := activeSource()

	repo.EXPECT().BeginRenewal(gomock.Any(), source.ID).Return(rtx, nil)
	rtx.EXPECT().Source(gomock.Any()).Return(source, nil)
	rtx.EXPECT().FindRenewal(gomock.Any()).Return(nil, nil)
	rtx.EXPECT().CreateRenewal(gomock.Any(), gomock.Any()).Return(nil)
	rtx.EXPECT().LinkRenewal(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	rtx.EXPECT().
		TransferStudents(gomock.Any(), gomock.Any()).
		Return(0, errors.New("copy failed"))
	rtx.EXPECT().Rollback().Return(nil)

	result, err := svc.Renew(context.Background(), source.ID, sponsorship.RenewalOverrides{}, uuid.New())
	assert.Error(t, err)
	assert.Nil(t, result)
}
