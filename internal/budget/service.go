package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/clock"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/dateutil"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, ownerID uuid.UUID) ([]*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

// ExpenseSource supplies the expense records matching one owner, category and
// half-open date range. The ledger service implements it.
type ExpenseSource interface {
	QueryExpenses(ctx context.Context, ownerID uuid.UUID, category string, start, end time.Time) ([]ledger.Expense, error)
}

type Service struct {
	repo     Repository
	expenses ExpenseSource
	clock    clock.Clock
}

func NewService(repo Repository, expenses ExpenseSource, clk clock.Clock) *Service {
	return &Service{repo: repo, expenses: expenses, clock: clk}
}

type CreateParams struct {
	OwnerID     uuid.UUID
	Category    string
	LimitAmount decimal.Decimal
	Period      Period
	StartDate   time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	if !params.Period.IsValid() {
		return nil, fmt.Errorf("invalid period %q", params.Period)
	}

	if !params.LimitAmount.IsPositive() {
		return nil, fmt.Errorf("limit amount must be positive")
	}

	b := &Budget{
		OwnerID:     params.OwnerID,
		Category:    params.Category,
		LimitAmount: params.LimitAmount,
		Period:      params.Period,
		StartDate:   dateutil.Truncate(params.StartDate),
	}

	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, b *Budget) error {
	if !b.Period.IsValid() {
		return fmt.Errorf("invalid period %q", b.Period)
	}

	if !b.LimitAmount.IsPositive() {
		return fmt.Errorf("limit amount must be positive")
	}

	return s.repo.UpdateBudget(ctx, b)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, id)
}

// Report pairs the current window with its aggregated statistics.
type Report struct {
	Budget *Budget
	Window Window
	Stats  Stats
}

// Stats computes the budget's current window against a single injected
// "today", queries the matching expenses from the ledger, and aggregates
// them. All date math and the due query share the same instant, so a render
// spanning midnight cannot see two different windows.
func (s *Service) Stats(ctx context.Context, id uuid.UUID) (*Report, error) {
	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	window, err := ComputeWindow(b.Period, b.StartDate, s.clock.Today())
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenses.QueryExpenses(ctx, b.OwnerID, b.Category, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("querying expenses: %w", err)
	}

	return &Report{
		Budget: b,
		Window: window,
		Stats:  ComputeStats(b.LimitAmount, expenses),
	}, nil
}
