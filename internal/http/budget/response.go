package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/budget"
)

type budgetResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	Period      budget.Period   `json:"period"`
	StartDate   string          `json:"start_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:          b.ID,
		Category:    b.Category,
		LimitAmount: b.LimitAmount,
		Period:      b.Period,
		StartDate:   b.StartDate.Format(time.DateOnly),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toResponseList(budgets []*budget.Budget) []budgetResponse {
	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toResponse(b)
	}

	return resp
}

type reportResponse struct {
	Budget      budgetResponse   `json:"budget"`
	WindowStart string           `json:"window_start"`
	WindowEnd   string           `json:"window_end"`
	Spent       decimal.Decimal  `json:"spent"`
	Remaining   decimal.Decimal  `json:"remaining"`
	PercentUsed float64          `json:"percent_used"`
	Threshold   budget.Threshold `json:"threshold"`
}

func toReportResponse(r *budget.Report) reportResponse {
	return reportResponse{
		Budget:      toResponse(r.Budget),
		WindowStart: r.Window.Start.Format(time.DateOnly),
		WindowEnd:   r.Window.End.Format(time.DateOnly),
		Spent:       r.Stats.Spent,
		Remaining:   r.Stats.Remaining,
		PercentUsed: r.Stats.PercentUsed,
		Threshold:   r.Stats.Threshold,
	}
}
