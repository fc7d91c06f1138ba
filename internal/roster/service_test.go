package roster_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mardavsj/csrfunds/internal/roster"
)

func TestService_Assign(t *testing.T) {
	sponsorshipID := uuid.New()
	studentID := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *roster.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *roster.MockRepository) {
				m.EXPECT().
					Assign(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, row *roster.SponsoredStudent) error {
						row.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "AlreadyAssigned",
			setupMock: func(m *roster.MockRepository) {
				m.EXPECT().
					Assign(gomock.Any(), gomock.Any()).
					Return(roster.ErrAlreadyAssigned)
			},
			wantErr: roster.ErrAlreadyAssigned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := roster.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := roster.NewService(repo)
			row, err := svc.Assign(context.Background(), sponsorshipID, studentID, []string{"grade-5"})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, row)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, roster.StatusActive, row.Status)
			assert.Equal(t, sponsorshipID, row.SponsorshipID)
			assert.Equal(t, studentID, row.StudentID)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sponsorshipID := uuid.New()
	repo := roster.NewMockRepository(ctrl)
	repo.EXPECT().
		ListBySponsorship(gomock.Any(), sponsorshipID, true).
		Return([]*roster.SponsoredStudent{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	svc := roster.NewService(repo)
	rows, err := svc.List(context.Background(), sponsorshipID, true)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
