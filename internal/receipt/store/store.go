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

	"github.com/mardavsj/csrfunds/internal/receipt"
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

const selectReceiptColumns = `
	id, reference, sponsor_id, transaction_id, amount, financial_year,
	status, pdf_url, metadata, issued_at, revoked_at
`

func scanReceipt(s scanner) (*receipt.TaxReceipt, error) {
	var r receipt.TaxReceipt

	var statusStr string

	var pdfURL sql.NullString

	var metadata []byte

	if err := s.Scan(
		&r.ID, &r.Reference, &r.SponsorID, &r.TransactionID, &r.Amount, &r.FinancialYear,
		&statusStr, &pdfURL, &metadata, &r.IssuedAt, &r.RevokedAt,
	); err != nil {
		return nil, err
	}

	r.Status = receipt.Status(statusStr)
	r.PDFURL = pdfURL.String

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &r.Metadata); err != nil {
			return nil, fmt.Errorf("decoding receipt metadata: %w", err)
		}
	}

	return &r, nil
}

func newReference(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:12]
	return prefix + "-" + suffix
}

func (s *Store) CreateReceipt(ctx context.Context, r *receipt.TaxReceipt) error {
	metadata, err := json.Marshal(r.Metadata)
	if err != nil {
		return fmt.Errorf("encoding receipt metadata: %w", err)
	}

	query := `
		INSERT INTO tax_receipts
			(reference, sponsor_id, transaction_id, amount, financial_year, status, pdf_url, metadata, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, issued_at
	`

	r.Reference = newReference("RCPT-80G")

	err = s.db.QueryRowContext(ctx, query,
		r.Reference,
		r.SponsorID,
		r.TransactionID,
		r.Amount,
		r.FinancialYear,
		r.Status,
		r.PDFURL,
		metadata,
	).Scan(&r.ID, &r.IssuedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return receipt.ErrAlreadyIssued
		}

		return fmt.Errorf("creating tax receipt: %w", err)
	}

	return nil
}

func (s *Store) GetReceipt(ctx context.Context, id uuid.UUID) (*receipt.TaxReceipt, error) {
	query := `SELECT ` + selectReceiptColumns + ` FROM tax_receipts WHERE id = $1`

	r, err := scanReceipt(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, receipt.ErrNotFound
		}

		return nil, fmt.Errorf("getting tax receipt: %w", err)
	}

	return r, nil
}

func (s *Store) GetByTransaction(ctx context.Context, transactionID uuid.UUID) (*receipt.TaxReceipt, error) {
	query := `SELECT ` + selectReceiptColumns + ` FROM tax_receipts WHERE transaction_id = $1`

	r, err := scanReceipt(s.db.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, receipt.ErrNotFound
		}

		return nil, fmt.Errorf("getting receipt by transaction: %w", err)
	}

	return r, nil
}

func (s *Store) ListBySponsor(ctx context.Context, sponsorID uuid.UUID) ([]*receipt.TaxReceipt, error) {
	query := `SELECT ` + selectReceiptColumns + ` FROM tax_receipts WHERE sponsor_id = $1 ORDER BY issued_at DESC`

	rows, err := s.db.QueryContext(ctx, query, sponsorID)
	if err != nil {
		return nil, fmt.Errorf("listing tax receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*receipt.TaxReceipt

	for rows.Next() {
		r, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tax receipt: %w", err)
		}

		receipts = append(receipts, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tax receipts: %w", err)
	}

	return receipts, nil
}

func (s *Store) Revoke(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE tax_receipts
		SET status = $1, revoked_at = NOW()
		WHERE id = $2 AND status = $3
	`

	res, err := s.db.ExecContext(ctx, query, receipt.StatusRevoked, id, receipt.StatusIssued)
	if err != nil {
		return fmt.Errorf("revoking tax receipt: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return receipt.ErrNotFound
	}

	return nil
}

func (s *Store) SponsorExists(ctx context.Context, sponsorID uuid.UUID) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM sponsor_accounts WHERE id = $1)`, sponsorID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking sponsor existence: %w", err)
	}

	return exists, nil
}

// StampTransaction records the receipt reference in the transaction's
// metadata. Cross-reference only; the transaction row is otherwise
// untouched.
func (s *Store) StampTransaction(ctx context.Context, transactionID, receiptID uuid.UUID, reference string) error {
	query := `
		UPDATE fund_transactions
		SET metadata = COALESCE(metadata, '{}'::jsonb) || jsonb_build_object('receipt_id', $1::text, 'receipt_reference', $2::text),
		    updated_at = NOW()
		WHERE id = $3
	`

	if _, err := s.db.ExecContext(ctx, query, receiptID.String(), reference, transactionID); err != nil {
		return fmt.Errorf("stamping transaction metadata: %w", err)
	}

	return nil
}
