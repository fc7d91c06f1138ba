package receipts

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mardavsj/csrfunds/internal/http/httperr"
	"github.com/mardavsj/csrfunds/internal/money"
	"github.com/mardavsj/csrfunds/internal/receipt"
)

type Handler struct {
	svc *receipt.Service
}

func NewHandler(svc *receipt.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.generate)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/revoke", h.revoke)
}

type receiptResponse struct {
	ID            uuid.UUID         `json:"id"`
	Reference     string            `json:"reference"`
	SponsorID     uuid.UUID         `json:"sponsor_id"`
	TransactionID *uuid.UUID        `json:"transaction_id,omitempty"`
	Amount        string            `json:"amount"`
	FinancialYear string            `json:"financial_year"`
	Status        receipt.Status    `json:"status"`
	PDFURL        string            `json:"pdf_url,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	IssuedAt      time.Time         `json:"issued_at"`
	RevokedAt     *time.Time        `json:"revoked_at,omitempty"`
}

func toResponse(r *receipt.TaxReceipt) receiptResponse {
	return receiptResponse{
		ID:            r.ID,
		Reference:     r.Reference,
		SponsorID:     r.SponsorID,
		TransactionID: r.TransactionID,
		Amount:        money.FormatRupees(r.Amount),
		FinancialYear: r.FinancialYear,
		Status:        r.Status,
		PDFURL:        r.PDFURL,
		Metadata:      r.Metadata,
		IssuedAt:      r.IssuedAt,
		RevokedAt:     r.RevokedAt,
	}
}

type generateRequest struct {
	SponsorID     uuid.UUID         `json:"sponsor_id"`
	TransactionID *uuid.UUID        `json:"transaction_id"`
	Amount        string            `json:"amount"`
	FinancialYear string            `json:"financial_year"`
	PDFURL        string            `json:"pdf_url"`
	Metadata      map[string]string `json:"metadata"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := money.ParseRupees(req.Amount)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	rcpt, err := h.svc.Generate80GReceipt(r.Context(), receipt.GenerateParams{
		SponsorID:     req.SponsorID,
		TransactionID: req.TransactionID,
		Amount:        amount,
		FinancialYear: req.FinancialYear,
		PDFURL:        req.PDFURL,
		Metadata:      req.Metadata,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(rcpt))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sponsorID, err := uuid.Parse(r.URL.Query().Get("sponsor_id"))
	if err != nil {
		http.Error(w, "sponsor_id query parameter is required", http.StatusBadRequest)
		return
	}

	rcpts, err := h.svc.ListBySponsor(r.Context(), sponsorID)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp := make([]receiptResponse, len(rcpts))
	for i, rcpt := range rcpts {
		resp[i] = toResponse(rcpt)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rcpt, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(rcpt))
}

func (h *Handler) revoke(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Revoke(r.Context(), id); err != nil {
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
