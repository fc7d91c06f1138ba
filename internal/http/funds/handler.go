package funds

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mardavsj/csrfunds/internal/http/auth"
	"github.com/mardavsj/csrfunds/internal/http/httperr"
	"github.com/mardavsj/csrfunds/internal/ledger"
	"github.com/mardavsj/csrfunds/internal/money"
	"github.com/mardavsj/csrfunds/internal/sponsor"
)

type Handler struct {
	ledgerSvc  *ledger.Service
	sponsorSvc *sponsor.Service
}

func NewHandler(ledgerSvc *ledger.Service, sponsorSvc *sponsor.Service) *Handler {
	return &Handler{ledgerSvc: ledgerSvc, sponsorSvc: sponsorSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/deposits", h.requestDeposit)

	// Settling a deposit is an admin decision; requesting one is not.
	r.With(auth.RequireRole("admin")).Post("/deposits/{id}/confirm", h.confirmDeposit)
	r.With(auth.RequireRole("admin")).Post("/deposits/{id}/reject", h.rejectDeposit)

	r.Post("/allocations", h.allocate)
	r.Post("/refunds", h.refund)
	r.Get("/transactions", h.history)
	r.Get("/transactions/{id}", h.get)
}

type depositRequest struct {
	Amount        string            `json:"amount"`
	PaymentMethod string            `json:"payment_method"`
	BankReference string            `json:"bank_reference"`
	BankDetails   map[string]string `json:"bank_details"`
}

func (h *Handler) requestDeposit(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := money.ParseRupees(req.Amount)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	acct, _, err := h.sponsorSvc.GetOrCreateByUser(r.Context(), identity.UserID, identity.Name)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	tx, err := h.ledgerSvc.RequestDeposit(r.Context(), ledger.DepositParams{
		SponsorID:     acct.ID,
		Amount:        amount,
		PaymentMethod: req.PaymentMethod,
		BankReference: req.BankReference,
		InitiatedBy:   identity.UserID,
		BankDetails:   req.BankDetails,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) confirmDeposit(w http.ResponseWriter, r *http.Request) {
	h.settleDeposit(w, r, true)
}

func (h *Handler) rejectDeposit(w http.ResponseWriter, r *http.Request) {
	h.settleDeposit(w, r, false)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) settleDeposit(w http.ResponseWriter, r *http.Request, confirm bool) {
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

	var tx *ledger.FundTransaction

	if confirm {
		tx, err = h.ledgerSvc.ConfirmDeposit(r.Context(), id, identity.UserID)
	} else {
		var req rejectRequest
		if decErr := json.NewDecoder(r.Body).Decode(&req); decErr != nil {
			http.Error(w, decErr.Error(), http.StatusBadRequest)
			return
		}

		tx, err = h.ledgerSvc.RejectDeposit(r.Context(), id, identity.UserID, req.Reason)
	}

	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

type allocateRequest struct {
	SponsorshipID uuid.UUID `json:"sponsorship_id"`
	Amount        string    `json:"amount"`
	Note          string    `json:"note"`
}

func (h *Handler) allocate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req allocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := money.ParseRupees(req.Amount)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	acct, _, err := h.sponsorSvc.GetOrCreateByUser(r.Context(), identity.UserID, identity.Name)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	tx, err := h.ledgerSvc.AllocateFunds(r.Context(), ledger.AllocateParams{
		SponsorID:     acct.ID,
		SponsorshipID: req.SponsorshipID,
		Amount:        amount,
		AllocatedBy:   identity.UserID,
		Note:          req.Note,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx))
}

type refundRequest struct {
	Amount string `json:"amount"`
	Reason string `json:"reason"`
}

func (h *Handler) refund(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := money.ParseRupees(req.Amount)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	acct, _, err := h.sponsorSvc.GetOrCreateByUser(r.Context(), identity.UserID, identity.Name)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	tx, err := h.ledgerSvc.Refund(r.Context(), ledger.RefundParams{
		SponsorID:   acct.ID,
		Amount:      amount,
		InitiatedBy: identity.UserID,
		Reason:      req.Reason,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	acct, _, err := h.sponsorSvc.GetOrCreateByUser(r.Context(), identity.UserID, identity.Name)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	filter := ledger.ListFilter{SponsorID: acct.ID}

	if s := r.URL.Query().Get("status"); s != "" {
		status := ledger.Status(s)
		filter.Status = &status
	}

	if s := r.URL.Query().Get("type"); s != "" {
		txType := ledger.Type(s)
		filter.Type = &txType
	}

	if s := r.URL.Query().Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Page = n
		}
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Limit = n
		}
	}

	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.Limit < 1 {
		filter.Limit = 20
	}

	txs, total, err := h.ledgerSvc.GetTransactionHistory(r.Context(), filter)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toHistoryResponse(txs, total, filter.Page, filter.Limit))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
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

	tx, err := h.ledgerSvc.Get(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	// Sponsors only see their own ledger entries. Another sponsor's
	// transaction id reads the same as a missing one.
	if identity.Role != "admin" {
		acct, _, err := h.sponsorSvc.GetOrCreateByUser(r.Context(), identity.UserID, identity.Name)
		if err != nil {
			httperr.Write(w, err)
			return
		}

		if tx.SponsorID != acct.ID {
			httperr.Write(w, fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound))
			return
		}
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
