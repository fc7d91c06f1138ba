package sponsors

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mardavsj/csrfunds/internal/http/auth"
	"github.com/mardavsj/csrfunds/internal/http/httperr"
	"github.com/mardavsj/csrfunds/internal/money"
	"github.com/mardavsj/csrfunds/internal/sponsor"
)

type Handler struct {
	svc *sponsor.Service
}

func NewHandler(svc *sponsor.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/me", h.me)
	r.Post("/", h.register)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	// Approval decisions and retirement are admin operations.
	r.With(auth.RequireRole("admin")).Post("/{id}/approve", h.approve)
	r.With(auth.RequireRole("admin")).Post("/{id}/reject", h.reject)
	r.With(auth.RequireRole("admin")).Delete("/{id}", h.deactivate)
}

type accountResponse struct {
	ID               uuid.UUID      `json:"id"`
	UserID           uuid.UUID      `json:"user_id"`
	Name             string         `json:"name"`
	Email            string         `json:"email,omitempty"`
	Status           sponsor.Status `json:"status"`
	AvailableBalance string         `json:"available_balance"`
	TotalBudget      string         `json:"total_budget"`
	CommittedAmount  string         `json:"committed_amount"`
	AllocatedFunds   string         `json:"allocated_funds"`
	AutoCreated      bool           `json:"auto_created"`
	CreatedAt        time.Time      `json:"created_at"`
	DeactivatedAt    *time.Time     `json:"deactivated_at,omitempty"`
}

func toResponse(acct *sponsor.Account) accountResponse {
	return accountResponse{
		ID:               acct.ID,
		UserID:           acct.UserID,
		Name:             acct.Name,
		Email:            acct.Email,
		Status:           acct.Status,
		AvailableBalance: money.FormatRupees(acct.AvailableBalance),
		TotalBudget:      money.FormatRupees(acct.TotalBudget),
		CommittedAmount:  money.FormatRupees(acct.CommittedAmount),
		AllocatedFunds:   money.FormatRupees(acct.AllocatedFunds),
		AutoCreated:      acct.AutoCreated,
		CreatedAt:        acct.CreatedAt,
		DeactivatedAt:    acct.DeactivatedAt,
	}
}

// me returns the caller's sponsor account, provisioning one on first access.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	acct, created, err := h.svc.GetOrCreateByUser(r.Context(), identity.UserID, identity.Name)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	writeJSON(w, status, toResponse(acct))
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acct, err := h.svc.Register(r.Context(), sponsor.RegisterParams{
		UserID: identity.UserID,
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(acct))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := sponsor.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := sponsor.Status(s)
		filter.Status = &status
	}

	accts, err := h.svc.List(r.Context(), filter)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp := make([]accountResponse, len(accts))
	for i, acct := range accts {
		resp[i] = toResponse(acct)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	acct, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(acct))
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Approve)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Reject)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		httperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := op(r.Context(), id); err != nil {
		httperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
