package sponsorships

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mardavsj/csrfunds/internal/http/auth"
	"github.com/mardavsj/csrfunds/internal/http/httperr"
	"github.com/mardavsj/csrfunds/internal/money"
	"github.com/mardavsj/csrfunds/internal/roster"
	"github.com/mardavsj/csrfunds/internal/sponsorship"
)

type Handler struct {
	svc       *sponsorship.Service
	rosterSvc *roster.Service
}

func NewHandler(svc *sponsorship.Service, rosterSvc *roster.Service) *Handler {
	return &Handler{svc: svc, rosterSvc: rosterSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Post("/{id}/renew", h.renew)
	r.Get("/{id}/students", h.listStudents)
	r.Post("/{id}/students", h.assignStudent)
	r.Delete("/{id}/students/{rowID}", h.removeStudent)
	r.Post("/{id}/students/{rowID}/activity", h.logActivity)
}

type costItemRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

func parseCostBreakdown(items []costItemRequest) ([]sponsorship.CostItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	breakdown := make([]sponsorship.CostItem, len(items))

	for i, item := range items {
		amount, err := money.ParseRupees(item.Amount)
		if err != nil {
			return nil, fmt.Errorf("cost item %q: %w", item.Name, err)
		}

		breakdown[i] = sponsorship.CostItem{Name: item.Name, Amount: amount}
	}

	return breakdown, nil
}

type createRequest struct {
	SponsorID      uuid.UUID         `json:"sponsor_id"`
	SchoolName     string            `json:"school_name"`
	Title          string            `json:"title"`
	TotalBudget    string            `json:"total_budget"`
	DurationMonths int               `json:"duration_months"`
	StartDate      *time.Time        `json:"start_date"`
	CostBreakdown  []costItemRequest `json:"cost_breakdown"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	totalBudget, err := money.ParseRupees(req.TotalBudget)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	breakdown, err := parseCostBreakdown(req.CostBreakdown)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	params := sponsorship.CreateParams{
		SponsorID:      req.SponsorID,
		SchoolName:     req.SchoolName,
		Title:          req.Title,
		TotalBudget:    totalBudget,
		DurationMonths: req.DurationMonths,
		CostBreakdown:  breakdown,
		CreatedBy:      identity.UserID,
	}
	if req.StartDate != nil {
		params.StartDate = *req.StartDate
	}

	sp, err := h.svc.Create(r.Context(), params)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(sp))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := sponsorship.ListFilter{}

	if s := r.URL.Query().Get("sponsor_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid sponsor_id", http.StatusBadRequest)
			return
		}

		filter.SponsorID = &id
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := sponsorship.Status(s)
		filter.Status = &status
	}

	sps, err := h.svc.List(r.Context(), filter)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(sps))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	sp, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(sp))
}

type updateStatusRequest struct {
	Status sponsorship.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var op func(r *http.Request) error

	switch req.Status {
	case sponsorship.StatusActive:
		op = func(r *http.Request) error { return h.svc.Activate(r.Context(), id) }
	case sponsorship.StatusPaused:
		op = func(r *http.Request) error { return h.svc.Pause(r.Context(), id) }
	case sponsorship.StatusExpired:
		op = func(r *http.Request) error { return h.svc.Expire(r.Context(), id) }
	case sponsorship.StatusCancelled:
		op = func(r *http.Request) error { return h.svc.Cancel(r.Context(), id) }
	default:
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	if err := op(r); err != nil {
		httperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type renewRequest struct {
	Title          *string           `json:"title"`
	TotalBudget    *string           `json:"total_budget"`
	DurationMonths *int              `json:"duration_months"`
	StartDate      *time.Time        `json:"start_date"`
	EndDate        *time.Time        `json:"end_date"`
	CostBreakdown  []costItemRequest `json:"cost_breakdown"`
}

func (h *Handler) renew(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req renewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	overrides := sponsorship.RenewalOverrides{
		Title:          req.Title,
		DurationMonths: req.DurationMonths,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	}

	if req.TotalBudget != nil {
		totalBudget, err := money.ParseRupees(*req.TotalBudget)
		if err != nil {
			httperr.Write(w, err)
			return
		}

		overrides.TotalBudget = &totalBudget
	}

	breakdown, err := parseCostBreakdown(req.CostBreakdown)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	overrides.CostBreakdown = breakdown

	result, err := h.svc.Renew(r.Context(), id, overrides, identity.UserID)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyRenewed {
		status = http.StatusOK
	}

	writeJSON(w, status, renewalResultResponse{
		Sponsorship:    toResponse(result.Sponsorship),
		StudentsMoved:  result.StudentsMoved,
		RenewalCost:    money.FormatRupees(result.RenewalCost),
		AlreadyRenewed: result.AlreadyRenewed,
	})
}

func (h *Handler) listStudents(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"

	rows, err := h.rosterSvc.List(r.Context(), id, activeOnly)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp := make([]studentResponse, len(rows))
	for i, row := range rows {
		resp[i] = toStudentResponse(row)
	}

	writeJSON(w, http.StatusOK, resp)
}

type assignStudentRequest struct {
	StudentID uuid.UUID `json:"student_id"`
	Tags      []string  `json:"tags"`
}

func (h *Handler) assignStudent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req assignStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The sponsorship must exist before a student can join its roster.
	if _, err := h.svc.Get(r.Context(), id); err != nil {
		httperr.Write(w, err)
		return
	}

	row, err := h.rosterSvc.Assign(r.Context(), id, req.StudentID, req.Tags)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toStudentResponse(row))
}

type activityRequest struct {
	Note string `json:"note"`
}

func (h *Handler) logActivity(w http.ResponseWriter, r *http.Request) {
	rowID, err := uuid.Parse(chi.URLParam(r, "rowID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.rosterSvc.LogActivity(r.Context(), rowID, roster.ActivityLog{Note: req.Note}); err != nil {
		httperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeStudent(w http.ResponseWriter, r *http.Request) {
	rowID, err := uuid.Parse(chi.URLParam(r, "rowID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.rosterSvc.Deactivate(r.Context(), rowID); err != nil {
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
