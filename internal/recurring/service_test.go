package recurring_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/clock"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/recurring"
)

func storedDef(freq recurring.Frequency, next time.Time) *recurring.Definition {
	return &recurring.Definition{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		Kind:           ledger.KindExpense,
		Category:       "rent",
		Amount:         decimal.NewFromInt(1200),
		Description:    "monthly rent",
		Frequency:      freq,
		StartDate:      next,
		NextOccurrence: next,
		IsActive:       true,
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    recurring.CreateParams
		setupMock func(m *recurring.MockRepository)
		wantErr   bool
	}

	start := date(2025, time.January, 31)
	endBeforeStart := date(2025, time.January, 1)

	tests := []testCase{
		{
			name: "Success",
			params: recurring.CreateParams{
				OwnerID:   uuid.New(),
				Kind:      ledger.KindExpense,
				Category:  "rent",
				Amount:    decimal.NewFromInt(1200),
				Frequency: recurring.FrequencyMonthly,
				StartDate: start,
			},
			setupMock: func(m *recurring.MockRepository) {
				m.EXPECT().
					CreateDefinition(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, def *recurring.Definition) error {
						def.ID = uuid.New()
						def.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "InvalidFrequency",
			params: recurring.CreateParams{
				OwnerID:   uuid.New(),
				Kind:      ledger.KindExpense,
				Category:  "rent",
				Amount:    decimal.NewFromInt(1200),
				Frequency: recurring.Frequency("fortnightly"),
				StartDate: start,
			},
			wantErr: true,
		},
		{
			name: "NonPositiveAmount",
			params: recurring.CreateParams{
				OwnerID:   uuid.New(),
				Kind:      ledger.KindExpense,
				Category:  "rent",
				Amount:    decimal.Zero,
				Frequency: recurring.FrequencyMonthly,
				StartDate: start,
			},
			wantErr: true,
		},
		{
			name: "EndBeforeStart",
			params: recurring.CreateParams{
				OwnerID:   uuid.New(),
				Kind:      ledger.KindExpense,
				Category:  "rent",
				Amount:    decimal.NewFromInt(1200),
				Frequency: recurring.FrequencyMonthly,
				StartDate: start,
				EndDate:   &endBeforeStart,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := recurring.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := recurring.NewService(repo, recurring.NewMockLedger(ctrl), clock.Fixed(date(2025, time.June, 10)))
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, got.IsActive)
			// The next occurrence starts at the anchor itself.
			assert.Equal(t, tt.params.StartDate, got.NextOccurrence)
		})
	}
}

func TestService_Process_SingleStep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Ten days overdue: processing advances exactly one frequency step,
	// not to today.
	def := storedDef(recurring.FrequencyMonthly, date(2025, time.January, 31))
	today := date(2025, time.February, 10)

	repo := recurring.NewMockRepository(ctrl)
	lgr := recurring.NewMockLedger(ctrl)

	repo.EXPECT().GetDefinition(gomock.Any(), def.ID).Return(def, nil)
	lgr.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *ledger.Entry) error {
			e.ID = uuid.New()
			return nil
		})
	repo.EXPECT().
		AdvanceNextOccurrence(gomock.Any(), def.ID, date(2025, time.January, 31), date(2025, time.February, 28)).
		Return(nil)

	svc := recurring.NewService(repo, lgr, clock.Fixed(today))

	result, err := svc.Process(context.Background(), def.ID)
	require.NoError(t, err)
	require.NotNil(t, result)

	// The entry is dated at the occurrence, not at today.
	assert.Equal(t, date(2025, time.January, 31), result.Entry.Date)
	assert.Equal(t, def.OwnerID, result.Entry.OwnerID)
	assert.Equal(t, ledger.KindExpense, result.Entry.Kind)
	assert.True(t, result.Entry.Amount.Equal(decimal.NewFromInt(1200)))

	assert.Equal(t, date(2025, time.February, 28), result.Definition.NextOccurrence)
}

func TestService_Process_Inactive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	def := storedDef(recurring.FrequencyMonthly, date(2025, time.June, 1))
	def.IsActive = false

	repo := recurring.NewMockRepository(ctrl)
	repo.EXPECT().GetDefinition(gomock.Any(), def.ID).Return(def, nil)

	svc := recurring.NewService(repo, recurring.NewMockLedger(ctrl), clock.Fixed(date(2025, time.June, 10)))

	_, err := svc.Process(context.Background(), def.ID)
	assert.ErrorIs(t, err, recurring.ErrInactive)
}

func TestService_Process_Exhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	def := storedDef(recurring.FrequencyMonthly, date(2025, time.June, 12))
	end := date(2025, time.June, 11)
	def.EndDate = &end

	repo := recurring.NewMockRepository(ctrl)
	repo.EXPECT().GetDefinition(gomock.Any(), def.ID).Return(def, nil)

	svc := recurring.NewService(repo, recurring.NewMockLedger(ctrl), clock.Fixed(date(2025, time.June, 10)))

	_, err := svc.Process(context.Background(), def.ID)
	assert.ErrorIs(t, err, recurring.ErrExhausted)
}

func TestService_Process_LedgerFailureDoesNotAdvance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	def := storedDef(recurring.FrequencyMonthly, date(2025, time.June, 1))

	repo := recurring.NewMockRepository(ctrl)
	lgr := recurring.NewMockLedger(ctrl)

	repo.EXPECT().GetDefinition(gomock.Any(), def.ID).Return(def, nil)
	lgr.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	// No AdvanceNextOccurrence expectation: the definition must not move.

	svc := recurring.NewService(repo, lgr, clock.Fixed(date(2025, time.June, 10)))

	_, err := svc.Process(context.Background(), def.ID)
	assert.Error(t, err)
}

func TestService_Process_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	def := storedDef(recurring.FrequencyWeekly, date(2025, time.June, 1))

	repo := recurring.NewMockRepository(ctrl)
	lgr := recurring.NewMockLedger(ctrl)

	repo.EXPECT().GetDefinition(gomock.Any(), def.ID).Return(def, nil)
	lgr.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().
		AdvanceNextOccurrence(gomock.Any(), def.ID, gomock.Any(), gomock.Any()).
		Return(recurring.ErrConflict)

	svc := recurring.NewService(repo, lgr, clock.Fixed(date(2025, time.June, 10)))

	_, err := svc.Process(context.Background(), def.ID)
	assert.ErrorIs(t, err, recurring.ErrConflict)
}

func TestService_ToggleStatus_NoCatchUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Long dormant: next occurrence is months behind. Reactivating must
	// leave it where it was so the backlog surfaces as overdue.
	next := date(2025, time.January, 15)
	def := storedDef(recurring.FrequencyMonthly, next)
	def.IsActive = false

	repo := recurring.NewMockRepository(ctrl)
	repo.EXPECT().GetDefinition(gomock.Any(), def.ID).Return(def, nil)
	repo.EXPECT().
		UpdateDefinition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *recurring.Definition) error {
			assert.True(t, updated.IsActive)
			assert.Equal(t, next, updated.NextOccurrence)
			return nil
		})

	svc := recurring.NewService(repo, recurring.NewMockLedger(ctrl), clock.Fixed(date(2025, time.June, 10)))

	updated, err := svc.ToggleStatus(context.Background(), def.ID, true)
	require.NoError(t, err)
	assert.Equal(t, next, updated.NextOccurrence)

	c := recurring.Classify(updated, date(2025, time.June, 10))
	assert.Equal(t, recurring.StatusOverdue, c.Status)
}

func TestService_ToggleStatus_NoOpWhenUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	def := storedDef(recurring.FrequencyMonthly, date(2025, time.June, 1))

	repo := recurring.NewMockRepository(ctrl)
	repo.EXPECT().GetDefinition(gomock.Any(), def.ID).Return(def, nil)
	// No UpdateDefinition call expected.

	svc := recurring.NewService(repo, recurring.NewMockLedger(ctrl), clock.Fixed(date(2025, time.June, 10)))

	updated, err := svc.ToggleStatus(context.Background(), def.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
}

func TestService_Due(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	today := date(2025, time.June, 10)

	overdue := storedDef(recurring.FrequencyMonthly, date(2025, time.June, 7))
	future := storedDef(recurring.FrequencyMonthly, date(2025, time.June, 20))

	repo := recurring.NewMockRepository(ctrl)
	repo.EXPECT().
		ListDefinitions(gomock.Any(), ownerID).
		Return([]*recurring.Definition{overdue, future}, nil)

	svc := recurring.NewService(repo, recurring.NewMockLedger(ctrl), clock.Fixed(today))

	due, err := svc.Due(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, overdue.ID, due[0].ID)
	assert.Equal(t, -3, recurring.Classify(due[0], today).DaysUntil)
}

func TestService_ProcessDue_IsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	today := date(2025, time.June, 10)

	bad := storedDef(recurring.FrequencyDaily, date(2025, time.June, 9))
	good := storedDef(recurring.FrequencyDaily, date(2025, time.June, 10))

	repo := recurring.NewMockRepository(ctrl)
	lgr := recurring.NewMockLedger(ctrl)

	repo.EXPECT().ListDue(gomock.Any(), today).Return([]*recurring.Definition{bad, good}, nil)

	repo.EXPECT().GetDefinition(gomock.Any(), bad.ID).Return(nil, errors.New("row gone"))

	repo.EXPECT().GetDefinition(gomock.Any(), good.ID).Return(good, nil)
	lgr.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().
		AdvanceNextOccurrence(gomock.Any(), good.ID, date(2025, time.June, 10), date(2025, time.June, 11)).
		Return(nil)

	svc := recurring.NewService(repo, lgr, clock.Fixed(today))

	processed, err := svc.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
}
