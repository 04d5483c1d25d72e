package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/clock"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/dateutil"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=recurring
type Repository interface {
	CreateDefinition(ctx context.Context, def *Definition) error
	GetDefinition(ctx context.Context, id uuid.UUID) (*Definition, error)
	ListDefinitions(ctx context.Context, ownerID uuid.UUID) ([]*Definition, error)
	ListDue(ctx context.Context, asOf time.Time) ([]*Definition, error)
	UpdateDefinition(ctx context.Context, def *Definition) error
	AdvanceNextOccurrence(ctx context.Context, id uuid.UUID, previous, next time.Time) error
	DeleteDefinition(ctx context.Context, id uuid.UUID) error
}

// Ledger is the collaborator that durably records materialized entries.
type Ledger interface {
	Append(ctx context.Context, e *ledger.Entry) error
}

type Service struct {
	repo   Repository
	ledger Ledger
	clock  clock.Clock
}

func NewService(repo Repository, lgr Ledger, clk clock.Clock) *Service {
	return &Service{repo: repo, ledger: lgr, clock: clk}
}

type CreateParams struct {
	OwnerID          uuid.UUID
	Kind             ledger.Kind
	Category         string
	Amount           decimal.Decimal
	Description      string
	Frequency        Frequency
	StartDate        time.Time
	EndDate          *time.Time
	NotifyEnabled    bool
	NotifyDaysBefore int
}

// Create validates and persists a new definition. The next occurrence starts
// at the anchor itself (zero frequency steps applied); past anchors simply
// begin overdue, which processing works off one occurrence at a time.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Definition, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	start := dateutil.Truncate(params.StartDate)

	var end *time.Time

	if params.EndDate != nil {
		truncated := dateutil.Truncate(*params.EndDate)
		end = &truncated
	}

	def := &Definition{
		OwnerID:          params.OwnerID,
		Kind:             params.Kind,
		Category:         params.Category,
		Amount:           params.Amount,
		Description:      params.Description,
		Frequency:        params.Frequency,
		StartDate:        start,
		NextOccurrence:   start,
		EndDate:          end,
		IsActive:         true,
		NotifyEnabled:    params.NotifyEnabled,
		NotifyDaysBefore: params.NotifyDaysBefore,
	}

	if err := s.repo.CreateDefinition(ctx, def); err != nil {
		return nil, err
	}

	return def, nil
}

func validateParams(params CreateParams) error {
	if !params.Kind.IsValid() {
		return fmt.Errorf("invalid kind %q", params.Kind)
	}

	if !params.Frequency.IsValid() {
		return fmt.Errorf("invalid frequency %q", params.Frequency)
	}

	if !params.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}

	if params.NotifyDaysBefore < 0 {
		return fmt.Errorf("notification days before must not be negative")
	}

	if params.EndDate != nil && dateutil.Truncate(*params.EndDate).Before(dateutil.Truncate(params.StartDate)) {
		return fmt.Errorf("end date precedes start date")
	}

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Definition, error) {
	return s.repo.GetDefinition(ctx, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Definition, error) {
	return s.repo.ListDefinitions(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, def *Definition) error {
	if !def.Frequency.IsValid() {
		return fmt.Errorf("invalid frequency %q", def.Frequency)
	}

	if !def.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}

	return s.repo.UpdateDefinition(ctx, def)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDefinition(ctx, id)
}

// Schedule returns the owner's proximity-ordered schedule as of today.
// The result is derived fresh from the store on every call.
func (s *Service) Schedule(ctx context.Context, ownerID uuid.UUID, filter ScheduleFilter) ([]ScheduleItem, error) {
	defs, err := s.repo.ListDefinitions(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return BuildSchedule(defs, s.clock.Today(), filter), nil
}

// Due returns the owner's definitions due today or overdue.
func (s *Service) Due(ctx context.Context, ownerID uuid.UUID) ([]*Definition, error) {
	defs, err := s.repo.ListDefinitions(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return Due(defs, s.clock.Today()), nil
}

// ProcessResult holds the ledger entry emitted for one occurrence and the
// definition as advanced past it.
type ProcessResult struct {
	Entry      *ledger.Entry
	Definition *Definition
}

// Process materializes exactly one occurrence of the definition: it appends a
// ledger entry dated at the occurrence (not today), then advances the next
// occurrence by a single frequency step. Missed occurrences are never
// collapsed; a caller invokes Process once per due occurrence. The ledger
// append must commit before the advance; if the append fails, the definition
// is left untouched. Concurrent processing of the same occurrence is rejected
// with ErrConflict by the store's expected-value check.
func (s *Service) Process(ctx context.Context, id uuid.UUID) (*ProcessResult, error) {
	def, err := s.repo.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}

	if !def.IsActive {
		return nil, ErrInactive
	}

	if Exhausted(def) {
		return nil, ErrExhausted
	}

	entry := &ledger.Entry{
		OwnerID:     def.OwnerID,
		Kind:        def.Kind,
		Category:    def.Category,
		Amount:      def.Amount,
		Description: def.Description,
		Date:        def.NextOccurrence,
	}

	if err := s.ledger.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("appending ledger entry: %w", err)
	}

	previous := def.NextOccurrence
	def.NextOccurrence = NextOccurrence(previous, def.Frequency)

	if err := s.repo.AdvanceNextOccurrence(ctx, def.ID, previous, def.NextOccurrence); err != nil {
		return nil, fmt.Errorf("advancing next occurrence: %w", err)
	}

	return &ProcessResult{Entry: entry, Definition: def}, nil
}

// ToggleStatus flips the active flag. The next occurrence is deliberately
// left where it was: reactivating a dormant definition surfaces its full
// overdue backlog instead of silently fast-forwarding past it.
func (s *Service) ToggleStatus(ctx context.Context, id uuid.UUID, active bool) (*Definition, error) {
	def, err := s.repo.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}

	if def.IsActive == active {
		return def, nil
	}

	def.IsActive = active
	if err := s.repo.UpdateDefinition(ctx, def); err != nil {
		return nil, err
	}

	return def, nil
}

// ProcessDue materializes one occurrence for every definition due as of
// today, across all owners. Failures on individual definitions are logged
// and skipped so one bad row cannot stall the whole run. Returns the number
// of occurrences processed.
func (s *Service) ProcessDue(ctx context.Context) (int, error) {
	due, err := s.repo.ListDue(ctx, s.clock.Today())
	if err != nil {
		return 0, fmt.Errorf("listing due definitions: %w", err)
	}

	processed := 0

	for _, def := range due {
		if _, err := s.Process(ctx, def.ID); err != nil {
			slog.ErrorContext(ctx, "failed to process recurring definition",
				"id", def.ID,
				"category", def.Category,
				"error", err)

			continue
		}

		processed++
	}

	return processed, nil
}
