package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/budget"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/dateutil"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/http/auth"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/stats", h.stats)
}

type createBudgetRequest struct {
	Category    string          `json:"category"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	Period      budget.Period   `json:"period"`
	StartDate   string          `json:"start_date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.Owner(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	startDate, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		http.Error(w, "invalid start_date (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Create(r.Context(), budget.CreateParams{
		OwnerID:     ownerID,
		Category:    req.Category,
		LimitAmount: req.LimitAmount,
		Period:      req.Period,
		StartDate:   startDate,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.Owner(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	budgets, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(budgets)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// ownedBudget loads the budget and verifies it belongs to the authenticated
// owner. A foreign budget reads as not found.
func (h *Handler) ownedBudget(w http.ResponseWriter, r *http.Request) (*budget.Budget, bool) {
	ownerID, ok := auth.Owner(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	if b.OwnerID != ownerID {
		http.Error(w, "budget not found", http.StatusNotFound)
		return nil, false
	}

	return b, true
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	b, ok := h.ownedBudget(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateBudgetRequest struct {
	Category    *string          `json:"category,omitempty"`
	LimitAmount *decimal.Decimal `json:"limit_amount,omitempty"`
	Period      *budget.Period   `json:"period,omitempty"`
	StartDate   *string          `json:"start_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	b, ok := h.ownedBudget(w, r)
	if !ok {
		return
	}

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Category != nil {
		b.Category = *req.Category
	}

	if req.LimitAmount != nil {
		b.LimitAmount = *req.LimitAmount
	}

	if req.Period != nil {
		b.Period = *req.Period
	}

	if req.StartDate != nil {
		t, err := time.Parse(time.DateOnly, *req.StartDate)
		if err != nil {
			http.Error(w, "invalid start_date (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}

		b.StartDate = dateutil.Truncate(t)
	}

	if err := h.svc.Update(r.Context(), b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	b, ok := h.ownedBudget(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), b.ID); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	b, ok := h.ownedBudget(w, r)
	if !ok {
		return
	}

	report, err := h.svc.Stats(r.Context(), b.ID)
	if err != nil {
		if errors.Is(err, budget.ErrInvalidAnchor) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toReportResponse(report)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
