package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger"
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

// scanEntry reads a ledger entry row from the scanner.
// Expected column order: id, owner_id, kind, category, amount, description, date, created_at
func scanEntry(s scanner) (*ledger.Entry, error) {
	var e ledger.Entry

	var kindStr string

	var desc sql.NullString

	if err := s.Scan(
		&e.ID, &e.OwnerID, &kindStr, &e.Category, &e.Amount, &desc, &e.Date, &e.CreatedAt,
	); err != nil {
		return nil, err
	}

	e.Kind = ledger.Kind(kindStr)
	e.Description = desc.String

	return &e, nil
}

const selectEntryColumns = `
	id, owner_id, kind, category, amount, description, date, created_at
`

func (s *Store) CreateEntry(ctx context.Context, e *ledger.Entry) error {
	query := `
		INSERT INTO ledger_entries (owner_id, kind, category, amount, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.OwnerID,
		e.Kind,
		e.Category,
		e.Amount,
		e.Description,
		e.Date,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating ledger entry: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM ledger_entries
		WHERE id = $1`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting ledger entry: %w", err)
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, ownerID uuid.UUID, filter ledger.ListFilter) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM ledger_entries
		WHERE owner_id = $1`

	args := []any{ownerID}

	argIdx := 2

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argIdx)

		args = append(args, *filter.Category)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date < $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// QueryExpenses returns expense amounts and dates for one owner and category
// within [start, end). The window bound is half-open to match budget windows.
func (s *Store) QueryExpenses(ctx context.Context, ownerID uuid.UUID, category string, start, end time.Time) ([]ledger.Expense, error) {
	query := `
		SELECT amount, date
		FROM ledger_entries
		WHERE owner_id = $1 AND category = $2 AND kind = $3 AND date >= $4 AND date < $5
		ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, category, ledger.KindExpense, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying expenses: %w", err)
	}
	defer rows.Close()

	var expenses []ledger.Expense

	for rows.Next() {
		var ex ledger.Expense
		if err := rows.Scan(&ex.Amount, &ex.Date); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, ex)
	}

	return expenses, rows.Err()
}

func (s *Store) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM ledger_entries
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting ledger entry: %w", err)
	}

	return nil
}
