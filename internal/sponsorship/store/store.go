package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mardavsj/csrfunds/internal/sponsorship"
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

const selectSponsorshipColumns = `
	id, reference, sponsor_id, school_name, title, status,
	total_budget, committed_funds, allocated_funds, remaining_budget,
	duration_months, start_date, end_date, cost_breakdown,
	renewal_count, next_renewal_date, last_renewed_at, renewal_history,
	renewed_from, created_by, created_at, updated_at
`

func scanSponsorship(s scanner) (*sponsorship.Sponsorship, error) {
	var sp sponsorship.Sponsorship

	var statusStr string

	var title sql.NullString

	var breakdown, history []byte

	if err := s.Scan(
		&sp.ID, &sp.Reference, &sp.SponsorID, &sp.SchoolName, &title, &statusStr,
		&sp.TotalBudget, &sp.CommittedFunds, &sp.AllocatedFunds, &sp.RemainingBudget,
		&sp.DurationMonths, &sp.StartDate, &sp.EndDate, &breakdown,
		&sp.Renewal.Count, &sp.Renewal.NextRenewalDate, &sp.Renewal.LastRenewedAt, &history,
		&sp.RenewedFrom, &sp.CreatedBy, &sp.CreatedAt, &sp.UpdatedAt,
	); err != nil {
		return nil, err
	}

	sp.Status = sponsorship.Status(statusStr)
	sp.Title = title.String

	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &sp.CostBreakdown); err != nil {
			return nil, fmt.Errorf("decoding cost breakdown: %w", err)
		}
	}

	if len(history) > 0 {
		if err := json.Unmarshal(history, &sp.Renewal.History); err != nil {
			return nil, fmt.Errorf("decoding renewal history: %w", err)
		}
	}

	return &sp, nil
}

// newReference builds a display-only business id like SPONS-4B7E21C90FA3.
func newReference(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:12]
	return prefix + "-" + suffix
}

func insertSponsorship(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, sp *sponsorship.Sponsorship,
) error {
	breakdown, err := json.Marshal(sp.CostBreakdown)
	if err != nil {
		return fmt.Errorf("encoding cost breakdown: %w", err)
	}

	query := `
		INSERT INTO sponsorships
			(reference, sponsor_id, school_name, title, status,
			 total_budget, committed_funds, allocated_funds, remaining_budget,
			 duration_months, start_date, end_date, cost_breakdown,
			 renewed_from, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	sp.Reference = newReference("SPONS")

	err = q.QueryRowContext(ctx, query,
		sp.Reference,
		sp.SponsorID,
		sp.SchoolName,
		sp.Title,
		sp.Status,
		sp.TotalBudget,
		sp.CommittedFunds,
		sp.AllocatedFunds,
		sp.RemainingBudget,
		sp.DurationMonths,
		sp.StartDate,
		sp.EndDate,
		breakdown,
		sp.RenewedFrom,
		sp.CreatedBy,
	).Scan(&sp.ID, &sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating sponsorship: %w", err)
	}

	return nil
}

func (s *Store) CreateSponsorship(ctx context.Context, sp *sponsorship.Sponsorship) error {
	return insertSponsorship(ctx, s.db, sp)
}

func (s *Store) GetSponsorship(ctx context.Context, id uuid.UUID) (*sponsorship.Sponsorship, error) {
	query := `SELECT ` + selectSponsorshipColumns + ` FROM sponsorships WHERE id = $1`

	sp, err := scanSponsorship(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sponsorship.ErrNotFound
		}

		return nil, fmt.Errorf("getting sponsorship: %w", err)
	}

	return sp, nil
}

func (s *Store) ListSponsorships(ctx context.Context, filter sponsorship.ListFilter) ([]*sponsorship.Sponsorship, error) {
	query := `SELECT ` + selectSponsorshipColumns + ` FROM sponsorships WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.SponsorID != nil {
		query += fmt.Sprintf(" AND sponsor_id = $%d", argIdx)

		args = append(args, *filter.SponsorID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sponsorships: %w", err)
	}
	defer rows.Close()

	var sps []*sponsorship.Sponsorship

	for rows.Next() {
		sp, err := scanSponsorship(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sponsorship: %w", err)
		}

		sps = append(sps, sp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sponsorships: %w", err)
	}

	return sps, nil
}

// TransitionStatus checks the transition table under a row lock so two
// concurrent moves cannot both win.
func (s *Store) TransitionStatus(ctx context.Context, id uuid.UUID, next sponsorship.Status) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning status tx: %w", err)
	}
	defer dbTx.Rollback()

	var currentStr string
	if err := dbTx.QueryRowContext(ctx,
		`SELECT status FROM sponsorships WHERE id = $1 FOR UPDATE`, id,
	).Scan(&currentStr); err != nil {
		if err == sql.ErrNoRows {
			return sponsorship.ErrNotFound
		}

		return fmt.Errorf("locking sponsorship: %w", err)
	}

	current := sponsorship.Status(currentStr)
	if !current.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", sponsorship.ErrInvalidState, current, next)
	}

	if _, err := dbTx.ExecContext(ctx,
		`UPDATE sponsorships SET status = $1, updated_at = NOW() WHERE id = $2`, next, id,
	); err != nil {
		return fmt.Errorf("updating sponsorship status: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing status transition: %w", err)
	}

	return nil
}

type renewalTx struct {
	tx     *sql.Tx
	source *sponsorship.Sponsorship
}

// BeginRenewal locks the source sponsorship row for the duration of the
// renewal. The lock serializes concurrent renewal requests for one source.
func (s *Store) BeginRenewal(ctx context.Context, sourceID uuid.UUID) (sponsorship.RenewalTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning renewal tx: %w", err)
	}

	query := `SELECT ` + selectSponsorshipColumns + ` FROM sponsorships WHERE id = $1 FOR UPDATE`

	source, err := scanSponsorship(dbTx.QueryRowContext(ctx, query, sourceID))
	if err != nil {
		dbTx.Rollback()

		if err == sql.ErrNoRows {
			return nil, sponsorship.ErrNotFound
		}

		return nil, fmt.Errorf("locking source sponsorship: %w", err)
	}

	return &renewalTx{tx: dbTx, source: source}, nil
}

func (rtx *renewalTx) Commit() error   { return rtx.tx.Commit() }
func (rtx *renewalTx) Rollback() error { return rtx.tx.Rollback() }

func (rtx *renewalTx) Source(ctx context.Context) (*sponsorship.Sponsorship, error) {
	return rtx.source, nil
}

func (rtx *renewalTx) FindRenewal(ctx context.Context) (*sponsorship.Sponsorship, error) {
	query := `SELECT ` + selectSponsorshipColumns + `
		FROM sponsorships
		WHERE renewed_from = $1 AND status <> $2
		ORDER BY created_at DESC
		LIMIT 1`

	sp, err := scanSponsorship(rtx.tx.QueryRowContext(ctx, query, rtx.source.ID, sponsorship.StatusCancelled))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding existing renewal: %w", err)
	}

	return sp, nil
}

func (rtx *renewalTx) CreateRenewal(ctx context.Context, sp *sponsorship.Sponsorship) error {
	return insertSponsorship(ctx, rtx.tx, sp)
}

func (rtx *renewalTx) LinkRenewal(ctx context.Context, renewalID uuid.UUID, startDate time.Time) error {
	query := `
		UPDATE sponsorships
		SET renewal_count = renewal_count + 1,
		    next_renewal_date = $1,
		    last_renewed_at = NOW(),
		    renewal_history = renewal_history || to_jsonb($2::text),
		    updated_at = NOW()
		WHERE id = $3
	`

	if _, err := rtx.tx.ExecContext(ctx, query, startDate, renewalID.String(), rtx.source.ID); err != nil {
		return fmt.Errorf("linking renewal: %w", err)
	}

	return nil
}

// TransferStudents copies every active roster row from the source to the
// renewal, carrying progress, activity logs and tags. The unique index on
// (sponsorship_id, student_id) makes a replayed copy a no-op.
func (rtx *renewalTx) TransferStudents(ctx context.Context, renewalID uuid.UUID) (int, error) {
	query := `
		INSERT INTO sponsored_students
			(sponsorship_id, student_id, status, progress, activity_logs, tags, joined_at, renewed_from, created_at)
		SELECT $1, student_id, status, progress, activity_logs, tags, NOW(), id, NOW()
		FROM sponsored_students
		WHERE sponsorship_id = $2 AND status = 'active'
		ON CONFLICT (sponsorship_id, student_id) DO NOTHING
	`

	res, err := rtx.tx.ExecContext(ctx, query, renewalID, rtx.source.ID)
	if err != nil {
		return 0, fmt.Errorf("copying roster rows: %w", err)
	}

	moved, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting moved roster rows: %w", err)
	}

	return int(moved), nil
}
