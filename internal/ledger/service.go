package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mardavsj/csrfunds/internal/money"
)

// maxRetries bounds internal retries of conflicting balance mutations before
// the conflict surfaces to the caller.
const maxRetries = 3

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateDeposit(ctx context.Context, tx *FundTransaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*FundTransaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*FundTransaction, int, error)

	// ConfirmDeposit settles a pending deposit and credits the sponsor's
	// available balance and committed amount in the same database
	// transaction. Returns ErrInvalidState for non-deposit or non-pending
	// transactions, ErrSponsorNotApproved when the account never cleared
	// approval, ErrConflict when a concurrent writer forced an abort.
	ConfirmDeposit(ctx context.Context, id, approverID uuid.UUID) (*FundTransaction, error)

	// RejectDeposit settles a pending deposit as rejected. No balances move.
	RejectDeposit(ctx context.Context, id, approverID uuid.UUID, reason string) (*FundTransaction, error)

	// Allocate moves amount from the sponsor's available balance into the
	// sponsorship's budget, recording a confirmed allocation transaction.
	// All three writes happen in one database transaction.
	Allocate(ctx context.Context, params AllocateParams) (*FundTransaction, error)

	// Refund returns amount from the sponsor's available balance to the
	// sponsor, recorded as a confirmed refund transaction.
	Refund(ctx context.Context, params RefundParams) (*FundTransaction, error)
}

// ReceiptIssuer issues a tax receipt for a confirmed deposit. Issuance is
// best-effort: failures are logged and never fail the deposit.
type ReceiptIssuer interface {
	IssueForDeposit(ctx context.Context, sponsorID, transactionID uuid.UUID, amount int64) error
}

// AuditLogger records an action after the fact. Implementations must not
// return errors to the caller.
type AuditLogger interface {
	LogAction(ctx context.Context, userID uuid.UUID, action, resourceType string, resourceID uuid.UUID, metadata map[string]string)
}

type Service struct {
	repo     Repository
	receipts ReceiptIssuer
	audit    AuditLogger
}

func NewService(repo Repository, receipts ReceiptIssuer, audit AuditLogger) *Service {
	return &Service{repo: repo, receipts: receipts, audit: audit}
}

type DepositParams struct {
	SponsorID     uuid.UUID
	Amount        int64
	PaymentMethod string
	BankReference string
	InitiatedBy   uuid.UUID
	BankDetails   map[string]string
}

type AllocateParams struct {
	SponsorID     uuid.UUID
	SponsorshipID uuid.UUID
	Amount        int64
	AllocatedBy   uuid.UUID
	Note          string
}

type RefundParams struct {
	SponsorID   uuid.UUID
	Amount      int64
	InitiatedBy uuid.UUID
	Reason      string
}

type ListFilter struct {
	SponsorID uuid.UUID
	Status    *Status
	Type      *Type
	Page      int
	Limit     int
}

// RequestDeposit records a deposit awaiting approval. No balance moves until
// the deposit is confirmed.
func (s *Service) RequestDeposit(ctx context.Context, params DepositParams) (*FundTransaction, error) {
	if err := money.ValidatePositive(params.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if strings.TrimSpace(params.PaymentMethod) == "" {
		return nil, fmt.Errorf("%w: payment method is required", ErrValidation)
	}

	tx := &FundTransaction{
		SponsorID:     params.SponsorID,
		Amount:        params.Amount,
		Type:          TypeDeposit,
		Status:        StatusPending,
		PaymentMethod: params.PaymentMethod,
		BankReference: params.BankReference,
		InitiatedBy:   params.InitiatedBy,
		Metadata:      params.BankDetails,
	}
	if err := s.repo.CreateDeposit(ctx, tx); err != nil {
		return nil, err
	}

	s.audit.LogAction(ctx, params.InitiatedBy, "deposit.requested", "fund_transaction", tx.ID, map[string]string{
		"amount": money.FormatRupees(tx.Amount),
	})

	return tx, nil
}

// ConfirmDeposit settles a pending deposit, credits the sponsor's wallet and
// issues a tax receipt. The receipt is best-effort; the confirmed deposit
// stands even when issuance fails.
func (s *Service) ConfirmDeposit(ctx context.Context, id, approverID uuid.UUID) (*FundTransaction, error) {
	tx, err := withRetry(func() (*FundTransaction, error) {
		return s.repo.ConfirmDeposit(ctx, id, approverID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.receipts.IssueForDeposit(ctx, tx.SponsorID, tx.ID, tx.Amount); err != nil {
		slog.Error("issuing tax receipt for confirmed deposit", "transaction_id", tx.ID, "error", err)
	}

	s.audit.LogAction(ctx, approverID, "deposit.confirmed", "fund_transaction", tx.ID, map[string]string{
		"amount": money.FormatRupees(tx.Amount),
	})

	return tx, nil
}

// RejectDeposit settles a pending deposit as rejected. The reason is kept in
// the transaction metadata; balances stay untouched.
func (s *Service) RejectDeposit(ctx context.Context, id, approverID uuid.UUID, reason string) (*FundTransaction, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	tx, err := withRetry(func() (*FundTransaction, error) {
		return s.repo.RejectDeposit(ctx, id, approverID, reason)
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogAction(ctx, approverID, "deposit.rejected", "fund_transaction", tx.ID, map[string]string{
		"reason": reason,
	})

	return tx, nil
}

// AllocateFunds moves money from the sponsor's free balance into a
// sponsorship's committed budget.
func (s *Service) AllocateFunds(ctx context.Context, params AllocateParams) (*FundTransaction, error) {
	if err := money.ValidatePositive(params.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	tx, err := withRetry(func() (*FundTransaction, error) {
		return s.repo.Allocate(ctx, params)
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogAction(ctx, params.AllocatedBy, "funds.allocated", "fund_transaction", tx.ID, map[string]string{
		"amount":         money.FormatRupees(tx.Amount),
		"sponsorship_id": params.SponsorshipID.String(),
	})

	return tx, nil
}

// Refund returns free balance to the sponsor, recorded immediately as a
// confirmed refund. Refunds never touch committed sponsorship budgets.
func (s *Service) Refund(ctx context.Context, params RefundParams) (*FundTransaction, error) {
	if err := money.ValidatePositive(params.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	tx, err := withRetry(func() (*FundTransaction, error) {
		return s.repo.Refund(ctx, params)
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogAction(ctx, params.InitiatedBy, "funds.refunded", "fund_transaction", tx.ID, map[string]string{
		"amount": money.FormatRupees(tx.Amount),
	})

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*FundTransaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// GetTransactionHistory returns the sponsor's transactions newest first.
// Page defaults to 1, limit to 20 and is capped at 100. The second return
// value is the total row count for the filter.
func (s *Service) GetTransactionHistory(ctx context.Context, filter ListFilter) ([]*FundTransaction, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.Limit < 1 {
		filter.Limit = 20
	}

	if filter.Limit > 100 {
		filter.Limit = 100
	}

	return s.repo.ListTransactions(ctx, filter)
}

func withRetry(op func() (*FundTransaction, error)) (*FundTransaction, error) {
	var tx *FundTransaction

	var err error

	for attempt := 0; attempt < maxRetries; attempt++ {
		tx, err = op()
		if !errors.Is(err, ErrConflict) {
			return tx, err
		}
	}

	return nil, err
}
