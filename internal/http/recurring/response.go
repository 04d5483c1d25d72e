package recurring

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/recurring"
)

type definitionResponse struct {
	ID               uuid.UUID           `json:"id"`
	Kind             ledger.Kind         `json:"kind"`
	Category         string              `json:"category"`
	Amount           decimal.Decimal     `json:"amount"`
	Description      string              `json:"description,omitempty"`
	Frequency        recurring.Frequency `json:"frequency"`
	StartDate        string              `json:"start_date"`
	NextOccurrence   string              `json:"next_occurrence_date"`
	EndDate          *string             `json:"end_date,omitempty"`
	IsActive         bool                `json:"is_active"`
	NotifyEnabled    bool                `json:"notify_enabled"`
	NotifyDaysBefore int                 `json:"notify_days_before"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        *time.Time          `json:"updated_at,omitempty"`
}

func toResponse(def *recurring.Definition) definitionResponse {
	resp := definitionResponse{
		ID:               def.ID,
		Kind:             def.Kind,
		Category:         def.Category,
		Amount:           def.Amount,
		Description:      def.Description,
		Frequency:        def.Frequency,
		StartDate:        def.StartDate.Format(time.DateOnly),
		NextOccurrence:   def.NextOccurrence.Format(time.DateOnly),
		IsActive:         def.IsActive,
		NotifyEnabled:    def.NotifyEnabled,
		NotifyDaysBefore: def.NotifyDaysBefore,
		CreatedAt:        def.CreatedAt,
		UpdatedAt:        def.UpdatedAt,
	}

	if def.EndDate != nil {
		end := def.EndDate.Format(time.DateOnly)
		resp.EndDate = &end
	}

	return resp
}

func toResponseList(defs []*recurring.Definition) []definitionResponse {
	resp := make([]definitionResponse, len(defs))
	for i, def := range defs {
		resp[i] = toResponse(def)
	}

	return resp
}

type scheduleItemResponse struct {
	Definition definitionResponse `json:"definition"`
	Status     recurring.Status   `json:"status"`
	DaysUntil  int                `json:"days_until"`
}

func toScheduleResponse(items []recurring.ScheduleItem) []scheduleItemResponse {
	resp := make([]scheduleItemResponse, len(items))
	for i, it := range items {
		resp[i] = scheduleItemResponse{
			Definition: toResponse(it.Definition),
			Status:     it.Status,
			DaysUntil:  it.DaysUntil,
		}
	}

	return resp
}

type entryResponse struct {
	ID       uuid.UUID       `json:"id"`
	Kind     ledger.Kind     `json:"kind"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
}

type processResponse struct {
	Entry      entryResponse      `json:"entry"`
	Definition definitionResponse `json:"definition"`
}

func toProcessResponse(result *recurring.ProcessResult) processResponse {
	return processResponse{
		Entry: entryResponse{
			ID:       result.Entry.ID,
			Kind:     result.Entry.Kind,
			Category: result.Entry.Category,
			Amount:   result.Entry.Amount,
			Date:     result.Entry.Date.Format(time.DateOnly),
		},
		Definition: toResponse(result.Definition),
	}
}
