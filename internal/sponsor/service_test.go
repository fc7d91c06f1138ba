package sponsor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mardavsj/csrfunds/internal/sponsor"
)

func TestService_GetOrCreateByUser(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name        string
		setupMock   func(m *sponsor.MockRepository)
		wantCreated bool
		wantErr     bool
	}

	tests := []testCase{
		{
			name: "ExistingAccount",
			setupMock: func(m *sponsor.MockRepository) {
				m.EXPECT().
					GetOrCreate(gomock.Any(), userID, "Tata Trust").
					Return(&sponsor.Account{ID: uuid.New(), UserID: userID, Status: sponsor.StatusApproved}, false, nil)
			},
		},
		{
			name: "AutoProvisioned",
			setupMock: func(m *sponsor.MockRepository) {
				m.EXPECT().
					GetOrCreate(gomock.Any(), userID, "Tata Trust").
					Return(&sponsor.Account{
						ID:          uuid.New(),
						UserID:      userID,
						Status:      sponsor.StatusApproved,
						AutoCreated: true,
					}, true, nil)
			},
			wantCreated: true,
		},
		{
			name: "RepoError",
			setupMock: func(m *sponsor.MockRepository) {
				m.EXPECT().
					GetOrCreate(gomock.Any(), userID, "Tata Trust").
					Return(nil, false, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := sponsor.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := sponsor.NewService(repo)
			got, created, err := svc.GetOrCreateByUser(context.Background(), userID, "Tata Trust")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCreated, created)
			assert.Equal(t, tt.wantCreated, got.AutoCreated)
		})
	}
}

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		params    sponsor.RegisterParams
		setupMock func(m *sponsor.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: sponsor.RegisterParams{
				UserID: uuid.New(),
				Name:   "Infosys Foundation",
				Email:  "csr@infosys.example",
			},
			setupMock: func(m *sponsor.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, acct *sponsor.Account) error {
						acct.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "MissingName",
			params: sponsor.RegisterParams{
				UserID: uuid.New(),
				Name:   "   ",
			},
			wantErr: sponsor.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := sponsor.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := sponsor.NewService(repo)
			got, err := svc.Register(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, sponsor.StatusPending, got.Status)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Approve(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *sponsor.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "PendingApproved",
			setupMock: func(m *sponsor.MockRepository) {
				m.EXPECT().
					GetAccount(gomock.Any(), id).
					Return(&sponsor.Account{ID: id, Status: sponsor.StatusPending}, nil)
				m.EXPECT().
					UpdateStatus(gomock.Any(), id, sponsor.StatusApproved).
					Return(nil)
			},
		},
		{
			name: "AlreadyApproved",
			setupMock: func(m *sponsor.MockRepository) {
				m.EXPECT().
					GetAccount(gomock.Any(), id).
					Return(&sponsor.Account{ID: id, Status: sponsor.StatusApproved}, nil)
			},
			wantErr: sponsor.ErrInvalidState,
		},
		{
			name: "RejectedStaysRejected",
			setupMock: func(m *sponsor.MockRepository) {
				m.EXPECT().
					GetAccount(gomock.Any(), id).
					Return(&sponsor.Account{ID: id, Status: sponsor.StatusRejected}, nil)
			},
			wantErr: sponsor.ErrInvalidState,
		},
		{
			name: "NotFound",
			setupMock: func(m *sponsor.MockRepository) {
				m.EXPECT().
					GetAccount(gomock.Any(), id).
					Return(nil, sponsor.ErrNotFound)
			},
			wantErr: sponsor.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := sponsor.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := sponsor.NewService(repo)
			err := svc.Approve(context.Background(), id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Deactivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := sponsor.NewMockRepository(ctrl)
	repo.EXPECT().
		GetAccount(gomock.Any(), id).
		Return(&sponsor.Account{ID: id, Status: sponsor.StatusApproved}, nil)
	repo.EXPECT().Deactivate(gomock.Any(), id).Return(nil)

	svc := sponsor.NewService(repo)
	assert.NoError(t, svc.Deactivate(context.Background(), id))
}

func TestService_Deactivate_AlreadyDeactivated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	now := time.Now()
	repo := sponsor.NewMockRepository(ctrl)
	repo.EXPECT().
		GetAccount(gomock.Any(), id).
		Return(&sponsor.Account{ID: id, Status: sponsor.StatusApproved, DeactivatedAt: &now}, nil)

	svc := sponsor.NewService(repo)
	assert.ErrorIs(t, svc.Deactivate(context.Background(), id), sponsor.ErrDeactivated)
}

func TestStatus_CanTransition(t *testing.T) {
	assert.True(t, sponsor.StatusPending.CanTransition(sponsor.StatusApproved))
	assert.True(t, sponsor.StatusPending.CanTransition(sponsor.StatusRejected))
	assert.False(t, sponsor.StatusApproved.CanTransition(sponsor.StatusPending))
	assert.False(t, sponsor.StatusRejected.CanTransition(sponsor.StatusApproved))
}
