package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mardavsj/csrfunds/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	id, reference, sponsor_id, sponsorship_id, amount, type, status,
	payment_method, bank_reference, initiated_by, approved_by, metadata,
	created_at, updated_at, approved_at
`

func scanTransaction(s scanner) (*ledger.FundTransaction, error) {
	var tx ledger.FundTransaction

	var typeStr, statusStr string

	var paymentMethod, bankReference sql.NullString

	var metadata []byte

	if err := s.Scan(
		&tx.ID, &tx.Reference, &tx.SponsorID, &tx.SponsorshipID, &tx.Amount, &typeStr, &statusStr,
		&paymentMethod, &bankReference, &tx.InitiatedBy, &tx.ApprovedBy, &metadata,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.ApprovedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = ledger.Type(typeStr)
	tx.Status = ledger.Status(statusStr)
	tx.PaymentMethod = paymentMethod.String
	tx.BankReference = bankReference.String

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &tx.Metadata); err != nil {
			return nil, fmt.Errorf("decoding transaction metadata: %w", err)
		}
	}

	return &tx, nil
}

// newReference builds a display-only business id like FTX-9F2C41A8B7D3.
// Uniqueness is enforced by an index; lookups stay on the UUID primary key.
func newReference(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:12]
	return prefix + "-" + suffix
}

// isConflict reports whether the database aborted the transaction because of
// a concurrent writer (serialization failure or deadlock).
func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}

	return false
}

func conflictOr(err error, wrap string) error {
	if isConflict(err) {
		return ledger.ErrConflict
	}

	return fmt.Errorf(wrap+": %w", err)
}

func (s *Store) CreateDeposit(ctx context.Context, tx *ledger.FundTransaction) error {
	var status string
	if err := s.db.QueryRowContext(ctx,
		`SELECT status FROM sponsor_accounts WHERE id = $1 AND deactivated_at IS NULL`,
		tx.SponsorID,
	).Scan(&status); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("sponsor %s: %w", tx.SponsorID, ledger.ErrNotFound)
		}

		return fmt.Errorf("checking sponsor account: %w", err)
	}

	if err := checkSponsorUsable(status); err != nil {
		return err
	}

	metadata, err := json.Marshal(tx.Metadata)
	if err != nil {
		return fmt.Errorf("encoding transaction metadata: %w", err)
	}

	query := `
		INSERT INTO fund_transactions
			(reference, sponsor_id, amount, type, status, payment_method, bank_reference, initiated_by, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	tx.Reference = newReference("FTX")

	err = s.db.QueryRowContext(ctx, query,
		tx.Reference,
		tx.SponsorID,
		tx.Amount,
		tx.Type,
		tx.Status,
		tx.PaymentMethod,
		tx.BankReference,
		tx.InitiatedBy,
		metadata,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating deposit transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.FundTransaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM fund_transactions WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.FundTransaction, int, error) {
	where := "WHERE sponsor_id = $1"
	args := []any{filter.SponsorID}
	argIdx := 2

	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Type != nil {
		where += fmt.Sprintf(" AND type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM fund_transactions "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting transactions: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM fund_transactions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		selectTransactionColumns, where, argIdx, argIdx+1,
	)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.FundTransaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, total, nil
}

// lockTransaction loads a transaction inside dbTx with a row lock.
func lockTransaction(ctx context.Context, dbTx *sql.Tx, id uuid.UUID) (*ledger.FundTransaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM fund_transactions WHERE id = $1 FOR UPDATE`

	tx, err := scanTransaction(dbTx.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
		}

		return nil, conflictOr(err, "locking transaction")
	}

	return tx, nil
}

// ConfirmDeposit settles the deposit and credits the sponsor's wallet as one
// database transaction. A failure at any point rolls everything back.
func (s *Store) ConfirmDeposit(ctx context.Context, id, approverID uuid.UUID) (*ledger.FundTransaction, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning confirm tx: %w", err)
	}
	defer dbTx.Rollback()

	tx, err := lockTransaction(ctx, dbTx, id)
	if err != nil {
		return nil, err
	}

	if err := checkApprovable(tx, ledger.StatusConfirmed); err != nil {
		return nil, err
	}

	settle := `
		UPDATE fund_transactions
		SET status = $1, approved_by = $2, approved_at = NOW(), updated_at = NOW()
		WHERE id = $3
		RETURNING status, approved_by, approved_at, updated_at
	`
	if err := dbTx.QueryRowContext(ctx, settle, ledger.StatusConfirmed, approverID, id).
		Scan(&tx.Status, &tx.ApprovedBy, &tx.ApprovedAt, &tx.UpdatedAt); err != nil {
		return nil, conflictOr(err, "settling deposit")
	}

	if _, err := lockSponsorBalance(ctx, dbTx, tx.SponsorID); err != nil {
		return nil, err
	}

	credit := `
		UPDATE sponsor_accounts
		SET available_balance = available_balance + $1,
		    committed_amount = committed_amount + $1,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $2
	`
	if _, err := dbTx.ExecContext(ctx, credit, tx.Amount, tx.SponsorID); err != nil {
		return nil, conflictOr(err, "crediting sponsor balance")
	}

	if err := dbTx.Commit(); err != nil {
		return nil, conflictOr(err, "committing deposit confirmation")
	}

	return tx, nil
}

// RejectDeposit settles the deposit as rejected, recording the reason in the
// transaction metadata. Balances stay untouched.
func (s *Store) RejectDeposit(ctx context.Context, id, approverID uuid.UUID, reason string) (*ledger.FundTransaction, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning reject tx: %w", err)
	}
	defer dbTx.Rollback()

	tx, err := lockTransaction(ctx, dbTx, id)
	if err != nil {
		return nil, err
	}

	if err := checkApprovable(tx, ledger.StatusRejected); err != nil {
		return nil, err
	}

	if tx.Metadata == nil {
		tx.Metadata = make(map[string]string)
	}

	tx.Metadata["rejection_reason"] = reason

	metadata, err := json.Marshal(tx.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encoding transaction metadata: %w", err)
	}

	settle := `
		UPDATE fund_transactions
		SET status = $1, approved_by = $2, metadata = $3, approved_at = NOW(), updated_at = NOW()
		WHERE id = $4
		RETURNING status, approved_by, approved_at, updated_at
	`
	if err := dbTx.QueryRowContext(ctx, settle, ledger.StatusRejected, approverID, metadata, id).
		Scan(&tx.Status, &tx.ApprovedBy, &tx.ApprovedAt, &tx.UpdatedAt); err != nil {
		return nil, conflictOr(err, "settling deposit rejection")
	}

	if err := dbTx.Commit(); err != nil {
		return nil, conflictOr(err, "committing deposit rejection")
	}

	return tx, nil
}

// Allocate debits the sponsor's free balance, credits the sponsorship budget
// and records a confirmed allocation transaction, all in one database
// transaction. The sponsor row is locked first, then the sponsorship row;
// every caller takes the locks in that order.
func (s *Store) Allocate(ctx context.Context, params ledger.AllocateParams) (*ledger.FundTransaction, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning allocate tx: %w", err)
	}
	defer dbTx.Rollback()

	available, err := lockSponsorBalance(ctx, dbTx, params.SponsorID)
	if err != nil {
		return nil, err
	}

	if err := checkFunds(available, params.Amount); err != nil {
		return nil, err
	}

	var totalBudget, allocated int64

	lockSponsorship := `
		SELECT total_budget, allocated_funds FROM sponsorships
		WHERE id = $1 FOR UPDATE
	`
	if err := dbTx.QueryRowContext(ctx, lockSponsorship, params.SponsorshipID).Scan(&totalBudget, &allocated); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sponsorship %s: %w", params.SponsorshipID, ledger.ErrNotFound)
		}

		return nil, conflictOr(err, "locking sponsorship")
	}

	if err := checkBudget(allocated, params.Amount, totalBudget); err != nil {
		return nil, err
	}

	debit := `
		UPDATE sponsor_accounts
		SET available_balance = available_balance - $1,
		    allocated_funds = allocated_funds + $1,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $2
	`
	if _, err := dbTx.ExecContext(ctx, debit, params.Amount, params.SponsorID); err != nil {
		return nil, conflictOr(err, "debiting sponsor balance")
	}

	creditBudget := `
		UPDATE sponsorships
		SET allocated_funds = allocated_funds + $1,
		    committed_funds = committed_funds + $1,
		    remaining_budget = $2,
		    updated_at = NOW()
		WHERE id = $3
	`

	remaining := newRemainingBudget(totalBudget, allocated, params.Amount)
	if _, err := dbTx.ExecContext(ctx, creditBudget, params.Amount, remaining, params.SponsorshipID); err != nil {
		return nil, conflictOr(err, "crediting sponsorship budget")
	}

	tx := &ledger.FundTransaction{
		Reference:     newReference("FTX"),
		SponsorID:     params.SponsorID,
		SponsorshipID: &params.SponsorshipID,
		Amount:        params.Amount,
		Type:          ledger.TypeAllocation,
		Status:        ledger.StatusConfirmed,
		InitiatedBy:   params.AllocatedBy,
		ApprovedBy:    &params.AllocatedBy,
	}
	if params.Note != "" {
		tx.Metadata = map[string]string{"note": params.Note}
	}

	if err := insertSettled(ctx, dbTx, tx); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, conflictOr(err, "committing allocation")
	}

	return tx, nil
}

// Refund debits the sponsor's free balance and records a confirmed refund
// transaction in one database transaction.
func (s *Store) Refund(ctx context.Context, params ledger.RefundParams) (*ledger.FundTransaction, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning refund tx: %w", err)
	}
	defer dbTx.Rollback()

	available, err := lockSponsorBalance(ctx, dbTx, params.SponsorID)
	if err != nil {
		return nil, err
	}

	if err := checkFunds(available, params.Amount); err != nil {
		return nil, err
	}

	debit := `
		UPDATE sponsor_accounts
		SET available_balance = available_balance - $1,
		    committed_amount = committed_amount - $1,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $2
	`
	if _, err := dbTx.ExecContext(ctx, debit, params.Amount, params.SponsorID); err != nil {
		return nil, conflictOr(err, "debiting sponsor balance")
	}

	tx := &ledger.FundTransaction{
		Reference:   newReference("FTX"),
		SponsorID:   params.SponsorID,
		Amount:      params.Amount,
		Type:        ledger.TypeRefund,
		Status:      ledger.StatusConfirmed,
		InitiatedBy: params.InitiatedBy,
		ApprovedBy:  &params.InitiatedBy,
	}
	if params.Reason != "" {
		tx.Metadata = map[string]string{"reason": params.Reason}
	}

	if err := insertSettled(ctx, dbTx, tx); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, conflictOr(err, "committing refund")
	}

	return tx, nil
}

// lockSponsorBalance locks the sponsor row and returns its available balance.
// Deactivated rows read as missing; unapproved rows fail the status guard.
func lockSponsorBalance(ctx context.Context, dbTx *sql.Tx, sponsorID uuid.UUID) (int64, error) {
	var (
		available int64
		status    string
	)

	query := `
		SELECT available_balance, status FROM sponsor_accounts
		WHERE id = $1 AND deactivated_at IS NULL
		FOR UPDATE
	`
	if err := dbTx.QueryRowContext(ctx, query, sponsorID).Scan(&available, &status); err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("sponsor %s: %w", sponsorID, ledger.ErrNotFound)
		}

		return 0, conflictOr(err, "locking sponsor account")
	}

	if err := checkSponsorUsable(status); err != nil {
		return 0, err
	}

	return available, nil
}

// insertSettled writes an already-confirmed transaction (allocation, refund)
// inside the caller's database transaction.
func insertSettled(ctx context.Context, dbTx *sql.Tx, tx *ledger.FundTransaction) error {
	metadata, err := json.Marshal(tx.Metadata)
	if err != nil {
		return fmt.Errorf("encoding transaction metadata: %w", err)
	}

	query := `
		INSERT INTO fund_transactions
			(reference, sponsor_id, sponsorship_id, amount, type, status, initiated_by, approved_by, metadata, created_at, updated_at, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW(), NOW())
		RETURNING id, created_at, updated_at, approved_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		tx.Reference,
		tx.SponsorID,
		tx.SponsorshipID,
		tx.Amount,
		tx.Type,
		tx.Status,
		tx.InitiatedBy,
		tx.ApprovedBy,
		metadata,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt, &tx.ApprovedAt)
	if err != nil {
		return conflictOr(err, "recording settled transaction")
	}

	return nil
}
