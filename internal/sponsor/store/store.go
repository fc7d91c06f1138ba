package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mardavsj/csrfunds/internal/sponsor"
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

const selectAccountColumns = `
	id, user_id, name, email, status,
	available_balance, total_budget, committed_amount, allocated_funds,
	auto_created, version, created_at, updated_at, deactivated_at
`

func scanAccount(s scanner) (*sponsor.Account, error) {
	var acct sponsor.Account

	var statusStr string

	var email sql.NullString

	if err := s.Scan(
		&acct.ID, &acct.UserID, &acct.Name, &email, &statusStr,
		&acct.AvailableBalance, &acct.TotalBudget, &acct.CommittedAmount, &acct.AllocatedFunds,
		&acct.AutoCreated, &acct.Version, &acct.CreatedAt, &acct.UpdatedAt, &acct.DeactivatedAt,
	); err != nil {
		return nil, err
	}

	acct.Status = sponsor.Status(statusStr)
	acct.Email = email.String

	return &acct, nil
}

// GetOrCreate inserts an auto-provisioned account for the user, falling back
// to the existing row when the unique index on user_id already holds one.
// Concurrent first access races resolve to a single account either way.
func (s *Store) GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*sponsor.Account, bool, error) {
	insert := `
		INSERT INTO sponsor_accounts (user_id, name, status, auto_created, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
		RETURNING ` + selectAccountColumns

	acct, err := scanAccount(s.db.QueryRowContext(ctx, insert, userID, name, sponsor.StatusApproved))
	if err == nil {
		return acct, true, nil
	}

	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("provisioning sponsor account: %w", err)
	}

	acct, err = s.GetAccountByUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	return acct, false, nil
}

func (s *Store) CreateAccount(ctx context.Context, acct *sponsor.Account) error {
	query := `
		INSERT INTO sponsor_accounts (user_id, name, email, status, auto_created, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW(), NOW())
		RETURNING id, version, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		acct.UserID,
		acct.Name,
		acct.Email,
		acct.Status,
	).Scan(&acct.ID, &acct.Version, &acct.CreatedAt, &acct.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating sponsor account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (*sponsor.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM sponsor_accounts WHERE id = $1`

	acct, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sponsor.ErrNotFound
		}

		return nil, fmt.Errorf("getting sponsor account: %w", err)
	}

	return acct, nil
}

func (s *Store) GetAccountByUser(ctx context.Context, userID uuid.UUID) (*sponsor.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM sponsor_accounts WHERE user_id = $1`

	acct, err := scanAccount(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sponsor.ErrNotFound
		}

		return nil, fmt.Errorf("getting sponsor account by user: %w", err)
	}

	return acct, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status sponsor.Status) error {
	query := `
		UPDATE sponsor_accounts
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating sponsor status: %w", err)
	}

	return nil
}

func (s *Store) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE sponsor_accounts
		SET deactivated_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deactivated_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivating sponsor account: %w", err)
	}

	return nil
}

func (s *Store) ListAccounts(ctx context.Context, filter sponsor.ListFilter) ([]*sponsor.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM sponsor_accounts WHERE deactivated_at IS NULL`

	var args []any

	if filter.Status != nil {
		query += " AND status = $1"

		args = append(args, *filter.Status)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sponsor accounts: %w", err)
	}
	defer rows.Close()

	var accts []*sponsor.Account

	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sponsor account: %w", err)
		}

		accts = append(accts, acct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sponsor accounts: %w", err)
	}

	return accts, nil
}
