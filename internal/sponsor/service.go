package sponsor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=sponsor
type Repository interface {
	// GetOrCreate returns the account owned by userID, creating an
	// auto-provisioned one if none exists. The boolean reports whether a new
	// account was created. Creation is guarded by a unique constraint on
	// user_id so concurrent first access yields a single row.
	GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*Account, bool, error)

	CreateAccount(ctx context.Context, acct *Account) error
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	GetAccountByUser(ctx context.Context, userID uuid.UUID) (*Account, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	ListAccounts(ctx context.Context, filter ListFilter) ([]*Account, error)
}

type ListFilter struct {
	Status *Status
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RegisterParams struct {
	UserID uuid.UUID
	Name   string
	Email  string
}

// GetOrCreateByUser returns the sponsor account for an authenticated user,
// provisioning one on first access.
func (s *Service) GetOrCreateByUser(ctx context.Context, userID uuid.UUID, name string) (*Account, bool, error) {
	return s.repo.GetOrCreate(ctx, userID, name)
}

// Register creates a sponsor account explicitly. Registered accounts start
// pending and must be approved before use.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Account, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	acct := &Account{
		UserID: params.UserID,
		Name:   params.Name,
		Email:  params.Email,
		Status: StatusPending,
	}
	if err := s.repo.CreateAccount(ctx, acct); err != nil {
		return nil, err
	}

	return acct, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, filter)
}

func (s *Service) Approve(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, StatusApproved)
}

func (s *Service) Reject(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, StatusRejected)
}

// Deactivate retires an account. Accounts are never deleted; the row stays
// for transaction history.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	acct, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return err
	}

	if acct.DeactivatedAt != nil {
		return ErrDeactivated
	}

	return s.repo.Deactivate(ctx, id)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, next Status) error {
	acct, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return err
	}

	if !acct.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidState, acct.Status, next)
	}

	return s.repo.UpdateStatus(ctx, id, next)
}
