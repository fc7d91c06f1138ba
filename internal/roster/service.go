package roster

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=roster
type Repository interface {
	Assign(ctx context.Context, row *SponsoredStudent) error
	ListBySponsorship(ctx context.Context, sponsorshipID uuid.UUID, activeOnly bool) ([]*SponsoredStudent, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	AppendActivity(ctx context.Context, id uuid.UUID, entry ActivityLog) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Assign puts a student on a sponsorship's roster. Assigning the same
// student twice fails with ErrAlreadyAssigned.
func (s *Service) Assign(ctx context.Context, sponsorshipID, studentID uuid.UUID, tags []string) (*SponsoredStudent, error) {
	row := &SponsoredStudent{
		SponsorshipID: sponsorshipID,
		StudentID:     studentID,
		Status:        StatusActive,
		Tags:          tags,
	}
	if err := s.repo.Assign(ctx, row); err != nil {
		return nil, err
	}

	return row, nil
}

func (s *Service) List(ctx context.Context, sponsorshipID uuid.UUID, activeOnly bool) ([]*SponsoredStudent, error) {
	return s.repo.ListBySponsorship(ctx, sponsorshipID, activeOnly)
}

func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *Service) LogActivity(ctx context.Context, id uuid.UUID, entry ActivityLog) error {
	return s.repo.AppendActivity(ctx, id, entry)
}
