package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Entry, error)
	QueryExpenses(ctx context.Context, ownerID uuid.UUID, category string, start, end time.Time) ([]Expense, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

// ListFilter narrows ListEntries. StartDate is inclusive, EndDate exclusive.
type ListFilter struct {
	Kind      *Kind
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Append validates and persists a new ledger entry.
func (s *Service) Append(ctx context.Context, e *Entry) error {
	if !e.Kind.IsValid() {
		return ErrInvalidKind
	}

	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	return s.repo.CreateEntry(ctx, e)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, ownerID, filter)
}

// QueryExpenses returns the expense records for one owner and category whose
// date falls within [start, end). Budget aggregation consumes this directly.
func (s *Service) QueryExpenses(ctx context.Context, ownerID uuid.UUID, category string, start, end time.Time) ([]Expense, error) {
	return s.repo.QueryExpenses(ctx, ownerID, category, start, end)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEntry(ctx, id)
}
