package receipt

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("tax receipt not found")
	ErrAlreadyIssued = errors.New("receipt already issued for this transaction")
	ErrValidation    = errors.New("invalid receipt input")
)

// Status represents the lifecycle state of a tax receipt. Receipts are
// immutable after issuance except for revocation.
type Status string

const (
	StatusIssued  Status = "issued"
	StatusPending Status = "pending"
	StatusRevoked Status = "revoked"
)

// TaxReceipt is an 80G tax-deduction receipt issued against a confirmed
// deposit. At most one receipt exists per transaction.
type TaxReceipt struct {
	ID            uuid.UUID
	Reference     string // human-readable business id, RCPT-80G- prefixed
	SponsorID     uuid.UUID
	TransactionID *uuid.UUID
	Amount        int64
	FinancialYear string
	Status        Status
	PDFURL        string
	Metadata      map[string]string
	IssuedAt      time.Time
	RevokedAt     *time.Time
}

// FinancialYearAt computes the Indian financial year containing t.
// April onward belongs to "YYYY-YYYY+1", January through March to the year
// that started the previous April.
func FinancialYearAt(t time.Time) string {
	year := t.Year()
	if t.Month() >= time.April {
		return fmt.Sprintf("%d-%d", year, year+1)
	}

	return fmt.Sprintf("%d-%d", year-1, year)
}
