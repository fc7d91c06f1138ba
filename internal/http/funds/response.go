package funds

import (
	"time"

	"github.com/google/uuid"

	"github.com/mardavsj/csrfunds/internal/ledger"
	"github.com/mardavsj/csrfunds/internal/money"
)

type transactionResponse struct {
	ID            uuid.UUID         `json:"id"`
	Reference     string            `json:"reference"`
	SponsorID     uuid.UUID         `json:"sponsor_id"`
	SponsorshipID *uuid.UUID        `json:"sponsorship_id,omitempty"`
	AmountPaise   int64             `json:"amount_paise"`
	Amount        string            `json:"amount"`
	Type          ledger.Type       `json:"type"`
	Status        ledger.Status     `json:"status"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	BankReference string            `json:"bank_reference,omitempty"`
	InitiatedBy   uuid.UUID         `json:"initiated_by"`
	ApprovedBy    *uuid.UUID        `json:"approved_by,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	ApprovedAt    *time.Time        `json:"approved_at,omitempty"`
}

func toResponse(tx *ledger.FundTransaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		Reference:     tx.Reference,
		SponsorID:     tx.SponsorID,
		SponsorshipID: tx.SponsorshipID,
		AmountPaise:   tx.Amount,
		Amount:        money.FormatRupees(tx.Amount),
		Type:          tx.Type,
		Status:        tx.Status,
		PaymentMethod: tx.PaymentMethod,
		BankReference: tx.BankReference,
		InitiatedBy:   tx.InitiatedBy,
		ApprovedBy:    tx.ApprovedBy,
		Metadata:      tx.Metadata,
		CreatedAt:     tx.CreatedAt,
		ApprovedAt:    tx.ApprovedAt,
	}
}

type historyResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}

func toHistoryResponse(txs []*ledger.FundTransaction, total, page, limit int) historyResponse {
	resp := historyResponse{
		Transactions: make([]transactionResponse, len(txs)),
		Total:        total,
		Page:         page,
		Limit:        limit,
	}
	for i, tx := range txs {
		resp.Transactions[i] = toResponse(tx)
	}

	return resp
}
