package receipt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mardavsj/csrfunds/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=receipt
type Repository interface {
	// CreateReceipt inserts the receipt. A unique index on transaction_id
	// surfaces double issuance as ErrAlreadyIssued.
	CreateReceipt(ctx context.Context, r *TaxReceipt) error

	GetReceipt(ctx context.Context, id uuid.UUID) (*TaxReceipt, error)
	GetByTransaction(ctx context.Context, transactionID uuid.UUID) (*TaxReceipt, error)
	ListBySponsor(ctx context.Context, sponsorID uuid.UUID) ([]*TaxReceipt, error)
	Revoke(ctx context.Context, id uuid.UUID) error

	// SponsorExists checks the sponsor without loading it.
	SponsorExists(ctx context.Context, sponsorID uuid.UUID) (bool, error)

	// StampTransaction writes the receipt reference into the transaction's
	// metadata so the two records cross-reference each other.
	StampTransaction(ctx context.Context, transactionID, receiptID uuid.UUID, reference string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type GenerateParams struct {
	SponsorID     uuid.UUID
	TransactionID *uuid.UUID
	Amount        int64
	FinancialYear string
	PDFURL        string
	Metadata      map[string]string
}

// Generate80GReceipt issues a receipt for a donation. The financial year is
// computed from today when not supplied. When the receipt documents a
// specific deposit, the receipt reference is stamped back onto that
// transaction's metadata.
func (s *Service) Generate80GReceipt(ctx context.Context, params GenerateParams) (*TaxReceipt, error) {
	if err := money.ValidatePositive(params.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	exists, err := s.repo.SponsorExists(ctx, params.SponsorID)
	if err != nil {
		return nil, fmt.Errorf("checking sponsor: %w", err)
	}

	if !exists {
		return nil, fmt.Errorf("sponsor %s: %w", params.SponsorID, ErrNotFound)
	}

	year := params.FinancialYear
	if year == "" {
		year = FinancialYearAt(time.Now())
	}

	r := &TaxReceipt{
		SponsorID:     params.SponsorID,
		TransactionID: params.TransactionID,
		Amount:        params.Amount,
		FinancialYear: year,
		Status:        StatusIssued,
		PDFURL:        params.PDFURL,
		Metadata:      params.Metadata,
	}

	if err := s.repo.CreateReceipt(ctx, r); err != nil {
		// A replayed confirmation finds the receipt that already exists.
		if errors.Is(err, ErrAlreadyIssued) && params.TransactionID != nil {
			return s.repo.GetByTransaction(ctx, *params.TransactionID)
		}

		return nil, err
	}

	if params.TransactionID != nil {
		if err := s.repo.StampTransaction(ctx, *params.TransactionID, r.ID, r.Reference); err != nil {
			return nil, fmt.Errorf("stamping receipt onto transaction: %w", err)
		}
	}

	return r, nil
}

// IssueForDeposit is the ledger-facing hook called after a deposit is
// confirmed.
func (s *Service) IssueForDeposit(ctx context.Context, sponsorID, transactionID uuid.UUID, amount int64) error {
	_, err := s.Generate80GReceipt(ctx, GenerateParams{
		SponsorID:     sponsorID,
		TransactionID: &transactionID,
		Amount:        amount,
	})

	return err
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*TaxReceipt, error) {
	return s.repo.GetReceipt(ctx, id)
}

func (s *Service) ListBySponsor(ctx context.Context, sponsorID uuid.UUID) ([]*TaxReceipt, error) {
	return s.repo.ListBySponsor(ctx, sponsorID)
}

func (s *Service) Revoke(ctx context.Context, id uuid.UUID) error {
	return s.repo.Revoke(ctx, id)
}
