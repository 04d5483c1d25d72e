package budget_test

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

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/budget"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/clock"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger"
)

func storedBudget(period budget.Period, start time.Time) *budget.Budget {
	return &budget.Budget{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Category:    "groceries",
		LimitAmount: decimal.NewFromInt(1000),
		Period:      period,
		StartDate:   start,
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    budget.CreateParams
		setupMock func(m *budget.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: budget.CreateParams{
				OwnerID:     uuid.New(),
				Category:    "groceries",
				LimitAmount: decimal.NewFromInt(500),
				Period:      budget.PeriodMonthly,
				StartDate:   date(2025, time.January, 15),
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().
					CreateBudget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *budget.Budget) error {
						b.ID = uuid.New()
						b.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "InvalidPeriod",
			params: budget.CreateParams{
				OwnerID:     uuid.New(),
				Category:    "groceries",
				LimitAmount: decimal.NewFromInt(500),
				Period:      budget.Period("daily"),
				StartDate:   date(2025, time.January, 15),
			},
			wantErr: true,
		},
		{
			name: "NonPositiveLimit",
			params: budget.CreateParams{
				OwnerID:     uuid.New(),
				Category:    "groceries",
				LimitAmount: decimal.Zero,
				Period:      budget.PeriodWeekly,
				StartDate:   date(2025, time.January, 15),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := budget.NewService(repo, budget.NewMockExpenseSource(ctrl), clock.Fixed(date(2025, time.June, 10)))
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b := storedBudget(budget.PeriodMonthly, date(2025, time.January, 15))
	today := date(2025, time.February, 10)

	repo := budget.NewMockRepository(ctrl)
	expenses := budget.NewMockExpenseSource(ctrl)

	repo.EXPECT().GetBudget(gomock.Any(), b.ID).Return(b, nil)

	// The query must use the window computed for today, not raw budget dates.
	expenses.EXPECT().
		QueryExpenses(gomock.Any(), b.OwnerID, "groceries", date(2025, time.January, 15), date(2025, time.February, 15)).
		Return([]ledger.Expense{
			{Amount: decimal.NewFromInt(500), Date: date(2025, time.January, 20)},
			{Amount: decimal.NewFromInt(450), Date: date(2025, time.February, 3)},
		}, nil)

	svc := budget.NewService(repo, expenses, clock.Fixed(today))

	report, err := svc.Stats(context.Background(), b.ID)
	require.NoError(t, err)

	assert.Equal(t, date(2025, time.January, 15), report.Window.Start)
	assert.Equal(t, date(2025, time.February, 15), report.Window.End)
	assert.True(t, report.Stats.Spent.Equal(decimal.NewFromInt(950)))
	assert.True(t, report.Stats.Remaining.Equal(decimal.NewFromInt(50)))
	assert.InDelta(t, 95.0, report.Stats.PercentUsed, 1e-9)
	assert.Equal(t, budget.ThresholdWarning, report.Stats.Threshold)
}

func TestService_Stats_FutureAnchor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b := storedBudget(budget.PeriodWeekly, date(2025, time.July, 1))

	repo := budget.NewMockRepository(ctrl)
	repo.EXPECT().GetBudget(gomock.Any(), b.ID).Return(b, nil)

	svc := budget.NewService(repo, budget.NewMockExpenseSource(ctrl), clock.Fixed(date(2025, time.June, 10)))

	_, err := svc.Stats(context.Background(), b.ID)
	assert.ErrorIs(t, err, budget.ErrInvalidAnchor)
}

func TestService_Stats_ExpenseQueryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b := storedBudget(budget.PeriodWeekly, date(2025, time.June, 2))

	repo := budget.NewMockRepository(ctrl)
	expenses := budget.NewMockExpenseSource(ctrl)

	repo.EXPECT().GetBudget(gomock.Any(), b.ID).Return(b, nil)
	expenses.EXPECT().
		QueryExpenses(gomock.Any(), b.OwnerID, "groceries", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	svc := budget.NewService(repo, expenses, clock.Fixed(date(2025, time.June, 10)))

	_, err := svc.Stats(context.Background(), b.ID)
	assert.Error(t, err)
}
