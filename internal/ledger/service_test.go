package ledger_test

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

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger"
)

func TestService_Append(t *testing.T) {
	type testCase struct {
		name      string
		entry     *ledger.Entry
		setupMock func(m *ledger.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			entry: &ledger.Entry{
				OwnerID:  uuid.New(),
				Kind:     ledger.KindExpense,
				Category: "groceries",
				Amount:   decimal.NewFromFloat(42.50),
				Date:     time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *ledger.Entry) error {
						e.ID = uuid.New()
						e.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "NonPositiveAmount",
			entry: &ledger.Entry{
				OwnerID:  uuid.New(),
				Kind:     ledger.KindExpense,
				Category: "groceries",
				Amount:   decimal.Zero,
			},
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name: "UnknownKind",
			entry: &ledger.Entry{
				OwnerID:  uuid.New(),
				Kind:     ledger.Kind("transfer"),
				Category: "groceries",
				Amount:   decimal.NewFromInt(10),
			},
			wantErr: ledger.ErrInvalidKind,
		},
		{
			name: "RepoError",
			entry: &ledger.Entry{
				OwnerID:  uuid.New(),
				Kind:     ledger.KindIncome,
				Category: "salary",
				Amount:   decimal.NewFromInt(3000),
			},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			err := svc.Append(context.Background(), tt.entry)

			if tt.wantErr != nil {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, tt.entry.ID)
		})
	}
}

func TestService_QueryExpenses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		QueryExpenses(gomock.Any(), ownerID, "groceries", start, end).
		Return([]ledger.Expense{
			{Amount: decimal.NewFromInt(25), Date: start},
		}, nil)

	svc := ledger.NewService(repo)

	got, err := svc.QueryExpenses(context.Background(), ownerID, "groceries", start, end)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Amount.Equal(decimal.NewFromInt(25)))
}
