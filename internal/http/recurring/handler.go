package recurring

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/dateutil"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/http/auth"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/recurring"
)

type Handler struct {
	svc *recurring.Service
}

func NewHandler(svc *recurring.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/schedule", h.schedule)
	r.Get("/due", h.due)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/status", h.updateStatus)
	r.Post("/{id}/process", h.process)
}

type createDefinitionRequest struct {
	Kind             ledger.Kind         `json:"kind"`
	Category         string              `json:"category"`
	Amount           decimal.Decimal     `json:"amount"`
	Description      string              `json:"description"`
	Frequency        recurring.Frequency `json:"frequency"`
	StartDate        string              `json:"start_date"`
	EndDate          *string             `json:"end_date,omitempty"`
	NotifyEnabled    bool                `json:"notify_enabled"`
	NotifyDaysBefore int                 `json:"notify_days_before"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.Owner(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createDefinitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	startDate, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		http.Error(w, "invalid start_date (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	var endDate *time.Time

	if req.EndDate != nil {
		t, err := time.Parse(time.DateOnly, *req.EndDate)
		if err != nil {
			http.Error(w, "invalid end_date (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}

		endDate = &t
	}

	def, err := h.svc.Create(r.Context(), recurring.CreateParams{
		OwnerID:          ownerID,
		Kind:             req.Kind,
		Category:         req.Category,
		Amount:           req.Amount,
		Description:      req.Description,
		Frequency:        req.Frequency,
		StartDate:        startDate,
		EndDate:          endDate,
		NotifyEnabled:    req.NotifyEnabled,
		NotifyDaysBefore: req.NotifyDaysBefore,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(def)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.Owner(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	defs, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(defs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) schedule(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.Owner(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter := recurring.FilterAll
	if s := r.URL.Query().Get("window"); s != "" {
		filter = recurring.ScheduleFilter(s)
	}

	items, err := h.svc.Schedule(r.Context(), ownerID, filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toScheduleResponse(items)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) due(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.Owner(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	defs, err := h.svc.Due(r.Context(), ownerID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(defs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// ownedDefinition loads the definition and verifies it belongs to the
// authenticated owner. A foreign definition reads as not found.
func (h *Handler) ownedDefinition(w http.ResponseWriter, r *http.Request) (*recurring.Definition, bool) {
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

	def, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, recurring.ErrNotFound) {
			http.Error(w, "definition not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	if def.OwnerID != ownerID {
		http.Error(w, "definition not found", http.StatusNotFound)
		return nil, false
	}

	return def, true
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	def, ok := h.ownedDefinition(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(def)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateDefinitionRequest struct {
	Category         *string              `json:"category,omitempty"`
	Amount           *decimal.Decimal     `json:"amount,omitempty"`
	Description      *string              `json:"description,omitempty"`
	Frequency        *recurring.Frequency `json:"frequency,omitempty"`
	EndDate          *string              `json:"end_date,omitempty"`
	NotifyEnabled    *bool                `json:"notify_enabled,omitempty"`
	NotifyDaysBefore *int                 `json:"notify_days_before,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	def, ok := h.ownedDefinition(w, r)
	if !ok {
		return
	}

	var req updateDefinitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Category != nil {
		def.Category = *req.Category
	}

	if req.Amount != nil {
		def.Amount = *req.Amount
	}

	if req.Description != nil {
		def.Description = *req.Description
	}

	if req.Frequency != nil {
		def.Frequency = *req.Frequency
	}

	if req.EndDate != nil {
		t, err := time.Parse(time.DateOnly, *req.EndDate)
		if err != nil {
			http.Error(w, "invalid end_date (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}

		truncated := dateutil.Truncate(t)
		def.EndDate = &truncated
	}

	if req.NotifyEnabled != nil {
		def.NotifyEnabled = *req.NotifyEnabled
	}

	if req.NotifyDaysBefore != nil {
		def.NotifyDaysBefore = *req.NotifyDaysBefore
	}

	if err := h.svc.Update(r.Context(), def); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(def)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	def, ok := h.ownedDefinition(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), def.ID); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateStatusRequest struct {
	IsActive bool `json:"is_active"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	def, ok := h.ownedDefinition(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.svc.ToggleStatus(r.Context(), def.ID, req.IsActive)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(updated)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request) {
	def, ok := h.ownedDefinition(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Process(r.Context(), def.ID)
	if err != nil {
		switch {
		case errors.Is(err, recurring.ErrExhausted), errors.Is(err, recurring.ErrInactive):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, recurring.ErrConflict):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toProcessResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
