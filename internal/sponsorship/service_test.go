package sponsorship_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mardavsj/csrfunds/internal/sponsorship"
)

func TestService_Create(t *testing.T) {
	sponsorID := uuid.New()
	userID := uuid.New()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    sponsorship.CreateParams
		setupMock func(m *sponsorship.MockRepository)
		wantErr   error
		check     func(t *testing.T, sp *sponsorship.Sponsorship)
	}

	tests := []testCase{
		{
			name: "Success",
			params: sponsorship.CreateParams{
				SponsorID:      sponsorID,
				SchoolName:     "Zilla Parishad School Hinjewadi",
				Title:          "Mid-day Meals 2026",
				TotalBudget:    6000000,
				DurationMonths: 12,
				StartDate:      start,
				CreatedBy:      userID,
			},
			setupMock: func(m *sponsorship.MockRepository) {
				m.EXPECT().
					CreateSponsorship(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, sp *sponsorship.Sponsorship) error {
						sp.ID = uuid.New()
						return nil
					})
			},
			check: func(t *testing.T, sp *sponsorship.Sponsorship) {
				assert.Equal(t, sponsorship.StatusDraft, sp.Status)
				assert.Equal(t, start.AddDate(0, 12, 0), sp.EndDate)
				assert.Equal(t, int64(6000000), sp.RemainingBudget)
				assert.Zero(t, sp.CommittedFunds)
				assert.Zero(t, sp.AllocatedFunds)
			},
		},
		{
			name: "DurationDefaultsToTwelveMonths",
			params: sponsorship.CreateParams{
				SponsorID:   sponsorID,
				SchoolName:  "Zilla Parishad School Hinjewadi",
				TotalBudget: 6000000,
				StartDate:   start,
				CreatedBy:   userID,
			},
			setupMock: func(m *sponsorship.MockRepository) {
				m.EXPECT().CreateSponsorship(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, sp *sponsorship.Sponsorship) {
				assert.Equal(t, 12, sp.DurationMonths)
				assert.Equal(t, start.AddDate(0, 12, 0), sp.EndDate)
			},
		},
		{
			name: "MissingSchoolName",
			params: sponsorship.CreateParams{
				SponsorID:   sponsorID,
				TotalBudget: 6000000,
				CreatedBy:   userID,
			},
			wantErr: sponsorship.ErrValidation,
		},
		{
			name: "NonPositiveBudget",
			params: sponsorship.CreateParams{
				SponsorID:  sponsorID,
				SchoolName: "Zilla Parishad School Hinjewadi",
				CreatedBy:  userID,
			},
			wantErr: sponsorship.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := sponsorship.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := sponsorship.NewService(repo, sponsorship.NewMockAuditLogger(ctrl))
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_StatusTransitions(t *testing.T) {
	type testCase struct {
		name string
		call func(svc *sponsorship.Service, ctx context.Context, id uuid.UUID) error
		want sponsorship.Status
	}

	tests := []testCase{
		{
			name: "Activate",
			call: func(svc *sponsorship.Service, ctx context.Context, id uuid.UUID) error {
				return svc.Activate(ctx, id)
			},
			want: sponsorship.StatusActive,
		},
		{
			name: "Pause",
			call: func(svc *sponsorship.Service, ctx context.Context, id uuid.UUID) error {
				return svc.Pause(ctx, id)
			},
			want: sponsorship.StatusPaused,
		},
		{
			name: "Expire",
			call: func(svc *sponsorship.Service, ctx context.Context, id uuid.UUID) error {
				return svc.Expire(ctx, id)
			},
			want: sponsorship.StatusExpired,
		},
		{
			name: "Cancel",
			call: func(svc *sponsorship.Service, ctx context.Context, id uuid.UUID) error {
				return svc.Cancel(ctx, id)
			},
			want: sponsorship.StatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			id := uuid.New()
			repo := sponsorship.NewMockRepository(ctrl)
			repo.EXPECT().TransitionStatus(gomock.Any(), id, tt.want).Return(nil)

			svc := sponsorship.NewService(repo, sponsorship.NewMockAuditLogger(ctrl))
			assert.NoError(t, tt.call(svc, context.Background(), id))
		})
	}
}

func TestStatus_CanTransition(t *testing.T) {
	type testCase struct {
		name string
		from sponsorship.Status
		to   sponsorship.Status
		want bool
	}

	tests := []testCase{
		{name: "DraftToActive", from: sponsorship.StatusDraft, to: sponsorship.StatusActive, want: true},
		{name: "DraftToCancelled", from: sponsorship.StatusDraft, to: sponsorship.StatusCancelled, want: true},
		{name: "DraftToPaused", from: sponsorship.StatusDraft, to: sponsorship.StatusPaused, want: false},
		{name: "ActiveToPaused", from: sponsorship.StatusActive, to: sponsorship.StatusPaused, want: true},
		{name: "PausedToActive", from: sponsorship.StatusPaused, to: sponsorship.StatusActive, want: true},
		{name: "ExpiredIsTerminal", from: sponsorship.StatusExpired, to: sponsorship.StatusActive, want: false},
		{name: "CancelledIsTerminal", from: sponsorship.StatusCancelled, to: sponsorship.StatusActive, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}
