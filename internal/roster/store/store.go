package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mardavsj/csrfunds/internal/roster"
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

const selectStudentColumns = `
	id, sponsorship_id, student_id, status, progress, activity_logs, tags,
	joined_at, renewed_from, created_at
`

func scanStudent(s scanner) (*roster.SponsoredStudent, error) {
	var row roster.SponsoredStudent

	var statusStr string

	var progress, logs, tags []byte

	if err := s.Scan(
		&row.ID, &row.SponsorshipID, &row.StudentID, &statusStr, &progress, &logs, &tags,
		&row.JoinedAt, &row.RenewedFrom, &row.CreatedAt,
	); err != nil {
		return nil, err
	}

	row.Status = roster.Status(statusStr)

	if len(progress) > 0 {
		if err := json.Unmarshal(progress, &row.Progress); err != nil {
			return nil, fmt.Errorf("decoding student progress: %w", err)
		}
	}

	if len(logs) > 0 {
		if err := json.Unmarshal(logs, &row.ActivityLogs); err != nil {
			return nil, fmt.Errorf("decoding activity logs: %w", err)
		}
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &row.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags: %w", err)
		}
	}

	return &row, nil
}

func (s *Store) Assign(ctx context.Context, row *roster.SponsoredStudent) error {
	progress, err := json.Marshal(row.Progress)
	if err != nil {
		return fmt.Errorf("encoding student progress: %w", err)
	}

	logs, err := json.Marshal(row.ActivityLogs)
	if err != nil {
		return fmt.Errorf("encoding activity logs: %w", err)
	}

	tags, err := json.Marshal(row.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}

	query := `
		INSERT INTO sponsored_students
			(sponsorship_id, student_id, status, progress, activity_logs, tags, joined_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, joined_at, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		row.SponsorshipID,
		row.StudentID,
		row.Status,
		progress,
		logs,
		tags,
	).Scan(&row.ID, &row.JoinedAt, &row.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return roster.ErrAlreadyAssigned
		}

		return fmt.Errorf("assigning student: %w", err)
	}

	return nil
}

func (s *Store) ListBySponsorship(ctx context.Context, sponsorshipID uuid.UUID, activeOnly bool) ([]*roster.SponsoredStudent, error) {
	query := `SELECT ` + selectStudentColumns + ` FROM sponsored_students WHERE sponsorship_id = $1`
	if activeOnly {
		query += ` AND status = 'active'`
	}

	query += ` ORDER BY joined_at ASC`

	rows, err := s.db.QueryContext(ctx, query, sponsorshipID)
	if err != nil {
		return nil, fmt.Errorf("listing sponsored students: %w", err)
	}
	defer rows.Close()

	var students []*roster.SponsoredStudent

	for rows.Next() {
		row, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sponsored student: %w", err)
		}

		students = append(students, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sponsored students: %w", err)
	}

	return students, nil
}

func (s *Store) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE sponsored_students
		SET status = 'inactive'
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivating sponsored student: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return roster.ErrNotFound
	}

	return nil
}

func (s *Store) AppendActivity(ctx context.Context, id uuid.UUID, entry roster.ActivityLog) error {
	if entry.At.IsZero() {
		entry.At = time.Now()
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding activity entry: %w", err)
	}

	query := `
		UPDATE sponsored_students
		SET activity_logs = activity_logs || $1::jsonb
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, payload, id)
	if err != nil {
		return fmt.Errorf("appending activity entry: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return roster.ErrNotFound
	}

	return nil
}
