package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/recurring"
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

// scanDefinition reads a recurring definition row from the scanner.
// Expected column order: id, owner_id, kind, category, amount, description,
// frequency, start_date, next_occurrence_date, end_date, is_active,
// notify_enabled, notify_days_before, created_at, updated_at
func scanDefinition(s scanner) (*recurring.Definition, error) {
	var def recurring.Definition

	var kindStr, freqStr string

	var desc sql.NullString

	var endDate sql.NullTime

	if err := s.Scan(
		&def.ID, &def.OwnerID, &kindStr, &def.Category, &def.Amount, &desc,
		&freqStr, &def.StartDate, &def.NextOccurrence, &endDate,
		&def.IsActive, &def.NotifyEnabled, &def.NotifyDaysBefore,
		&def.CreatedAt, &def.UpdatedAt,
	); err != nil {
		return nil, err
	}

	def.Kind = ledger.Kind(kindStr)
	def.Frequency = recurring.Frequency(freqStr)
	def.Description = desc.String

	if endDate.Valid {
		def.EndDate = &endDate.Time
	}

	return &def, nil
}

const selectDefinitionColumns = `
	id, owner_id, kind, category, amount, description,
	frequency, start_date, next_occurrence_date, end_date,
	is_active, notify_enabled, notify_days_before, created_at, updated_at
`

func (s *Store) CreateDefinition(ctx context.Context, def *recurring.Definition) error {
	query := `
		INSERT INTO recurring_definitions
			(owner_id, kind, category, amount, description, frequency,
			 start_date, next_occurrence_date, end_date,
			 is_active, notify_enabled, notify_days_before, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		def.OwnerID,
		def.Kind,
		def.Category,
		def.Amount,
		def.Description,
		def.Frequency,
		def.StartDate,
		def.NextOccurrence,
		def.EndDate,
		def.IsActive,
		def.NotifyEnabled,
		def.NotifyDaysBefore,
	).Scan(&def.ID, &def.CreatedAt, &def.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating recurring definition: %w", err)
	}

	return nil
}

func (s *Store) GetDefinition(ctx context.Context, id uuid.UUID) (*recurring.Definition, error) {
	query := `SELECT ` + selectDefinitionColumns + `
		FROM recurring_definitions
		WHERE id = $1`

	def, err := scanDefinition(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, recurring.ErrNotFound
		}

		return nil, fmt.Errorf("getting recurring definition: %w", err)
	}

	return def, nil
}

func (s *Store) ListDefinitions(ctx context.Context, ownerID uuid.UUID) ([]*recurring.Definition, error) {
	query := `SELECT ` + selectDefinitionColumns + `
		FROM recurring_definitions
		WHERE owner_id = $1
		ORDER BY next_occurrence_date ASC, category ASC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing recurring definitions: %w", err)
	}
	defer rows.Close()

	return collectDefinitions(rows)
}

// ListDue returns every active definition, across owners, whose next
// occurrence is on or before asOf and not past its end date. Used by the
// scheduler worker.
func (s *Store) ListDue(ctx context.Context, asOf time.Time) ([]*recurring.Definition, error) {
	query := `SELECT ` + selectDefinitionColumns + `
		FROM recurring_definitions
		WHERE is_active = TRUE
		  AND next_occurrence_date <= $1
		  AND (end_date IS NULL OR next_occurrence_date <= end_date)
		ORDER BY next_occurrence_date ASC`

	rows, err := s.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("listing due definitions: %w", err)
	}
	defer rows.Close()

	return collectDefinitions(rows)
}

func collectDefinitions(rows *sql.Rows) ([]*recurring.Definition, error) {
	var defs []*recurring.Definition

	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning recurring definition: %w", err)
		}

		defs = append(defs, def)
	}

	return defs, rows.Err()
}

func (s *Store) UpdateDefinition(ctx context.Context, def *recurring.Definition) error {
	query := `
		UPDATE recurring_definitions
		SET kind = $1, category = $2, amount = $3, description = $4,
		    frequency = $5, start_date = $6, next_occurrence_date = $7,
		    end_date = $8, is_active = $9, notify_enabled = $10,
		    notify_days_before = $11, updated_at = NOW()
		WHERE id = $12
	`

	_, err := s.db.ExecContext(ctx, query,
		def.Kind,
		def.Category,
		def.Amount,
		def.Description,
		def.Frequency,
		def.StartDate,
		def.NextOccurrence,
		def.EndDate,
		def.IsActive,
		def.NotifyEnabled,
		def.NotifyDaysBefore,
		def.ID,
	)
	if err != nil {
		return fmt.Errorf("updating recurring definition: %w", err)
	}

	return nil
}

// AdvanceNextOccurrence moves the definition's next occurrence forward with an
// expected-value check on the previous date, so two concurrent approvals of
// the same due occurrence cannot both advance it.
func (s *Store) AdvanceNextOccurrence(ctx context.Context, id uuid.UUID, previous, next time.Time) error {
	query := `
		UPDATE recurring_definitions
		SET next_occurrence_date = $1, updated_at = NOW()
		WHERE id = $2 AND next_occurrence_date = $3
	`

	res, err := s.db.ExecContext(ctx, query, next, id, previous)
	if err != nil {
		return fmt.Errorf("advancing next occurrence: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("advancing next occurrence: %w", err)
	}

	if affected == 0 {
		return recurring.ErrConflict
	}

	return nil
}

func (s *Store) DeleteDefinition(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM recurring_definitions
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting recurring definition: %w", err)
	}

	return nil
}
