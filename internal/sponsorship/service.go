package sponsorship

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mardavsj/csrfunds/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sponsorship
type Repository interface {
	CreateSponsorship(ctx context.Context, sp *Sponsorship) error
	GetSponsorship(ctx context.Context, id uuid.UUID) (*Sponsorship, error)
	ListSponsorships(ctx context.Context, filter ListFilter) ([]*Sponsorship, error)

	// TransitionStatus moves the sponsorship to next, checking the transition
	// table under a row lock so concurrent moves cannot both win.
	TransitionStatus(ctx context.Context, id uuid.UUID, next Status) error

	// BeginRenewal opens the renewal transaction, taking a row lock on the
	// source sponsorship. All renewal steps commit or roll back together.
	BeginRenewal(ctx context.Context, sourceID uuid.UUID) (RenewalTx, error)
}

// RenewalTx is the transactional boundary of the renewal workflow. The
// source row stays locked until Commit or Rollback.
type RenewalTx interface {
	// Source returns the locked source sponsorship.
	Source(ctx context.Context) (*Sponsorship, error)

	// FindRenewal returns an existing non-cancelled renewal of the source,
	// or nil when none exists. This is the idempotence guard.
	FindRenewal(ctx context.Context) (*Sponsorship, error)

	CreateRenewal(ctx context.Context, sp *Sponsorship) error

	// LinkRenewal updates the source's renewal bookkeeping: next renewal
	// date, last renewed timestamp, incremented count, history entry. It
	// must not touch the source's status or budget fields.
	LinkRenewal(ctx context.Context, renewalID uuid.UUID, startDate time.Time) error

	// TransferStudents copies the source's active roster to the renewal and
	// returns the number of rows created.
	TransferStudents(ctx context.Context, renewalID uuid.UUID) (int, error)

	Commit() error
	Rollback() error
}

// AuditLogger records an action after the fact. Implementations must not
// return errors to the caller.
type AuditLogger interface {
	LogAction(ctx context.Context, userID uuid.UUID, action, resourceType string, resourceID uuid.UUID, metadata map[string]string)
}

type ListFilter struct {
	SponsorID *uuid.UUID
	Status    *Status
}

type Service struct {
	repo  Repository
	audit AuditLogger
}

func NewService(repo Repository, audit AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

type CreateParams struct {
	SponsorID      uuid.UUID
	SchoolName     string
	Title          string
	TotalBudget    int64
	DurationMonths int
	StartDate      time.Time
	CostBreakdown  []CostItem
	CreatedBy      uuid.UUID
}

// Create records a new sponsorship in draft. Budgets start untouched:
// nothing is committed or allocated until the ledger moves money in.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Sponsorship, error) {
	if strings.TrimSpace(params.SchoolName) == "" {
		return nil, fmt.Errorf("%w: school name is required", ErrValidation)
	}

	if err := money.ValidatePositive(params.TotalBudget); err != nil {
		return nil, fmt.Errorf("%w: total budget must be positive", ErrValidation)
	}

	if params.DurationMonths <= 0 {
		params.DurationMonths = 12
	}

	start := params.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	sp := &Sponsorship{
		SponsorID:       params.SponsorID,
		SchoolName:      params.SchoolName,
		Title:           params.Title,
		Status:          StatusDraft,
		TotalBudget:     params.TotalBudget,
		RemainingBudget: params.TotalBudget,
		DurationMonths:  params.DurationMonths,
		StartDate:       start,
		EndDate:         start.AddDate(0, params.DurationMonths, 0),
		CostBreakdown:   params.CostBreakdown,
		CreatedBy:       params.CreatedBy,
	}
	if err := s.repo.CreateSponsorship(ctx, sp); err != nil {
		return nil, err
	}

	return sp, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Sponsorship, error) {
	return s.repo.GetSponsorship(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Sponsorship, error) {
	return s.repo.ListSponsorships(ctx, filter)
}

func (s *Service) Activate(ctx context.Context, id uuid.UUID) error {
	return s.repo.TransitionStatus(ctx, id, StatusActive)
}

func (s *Service) Pause(ctx context.Context, id uuid.UUID) error {
	return s.repo.TransitionStatus(ctx, id, StatusPaused)
}

func (s *Service) Resume(ctx context.Context, id uuid.UUID) error {
	return s.repo.TransitionStatus(ctx, id, StatusActive)
}

func (s *Service) Expire(ctx context.Context, id uuid.UUID) error {
	return s.repo.TransitionStatus(ctx, id, StatusExpired)
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.repo.TransitionStatus(ctx, id, StatusCancelled)
}
