package httperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mardavsj/csrfunds/internal/ledger"
	"github.com/mardavsj/csrfunds/internal/money"
	"github.com/mardavsj/csrfunds/internal/receipt"
	"github.com/mardavsj/csrfunds/internal/roster"
	"github.com/mardavsj/csrfunds/internal/sponsor"
	"github.com/mardavsj/csrfunds/internal/sponsorship"
)

type response struct {
	Error string `json:"error"`
}

// Write translates domain errors to HTTP status codes. Unknown errors are
// logged and reported as a generic 500 so internals never leak.
func Write(w http.ResponseWriter, err error) {
	status := statusFor(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("unhandled error", "error", err)

		msg = "internal error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if encErr := json.NewEncoder(w).Encode(response{Error: msg}); encErr != nil {
		slog.Error("failed to encode error response", "error", encErr)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrValidation),
		errors.Is(err, sponsor.ErrValidation),
		errors.Is(err, sponsorship.ErrValidation),
		errors.Is(err, receipt.ErrValidation),
		errors.Is(err, money.ErrInvalidAmount):
		return http.StatusBadRequest

	case errors.Is(err, ledger.ErrNotFound),
		errors.Is(err, sponsor.ErrNotFound),
		errors.Is(err, sponsorship.ErrNotFound),
		errors.Is(err, roster.ErrNotFound),
		errors.Is(err, receipt.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, ledger.ErrInvalidState),
		errors.Is(err, ledger.ErrConflict),
		errors.Is(err, ledger.ErrSponsorNotApproved),
		errors.Is(err, sponsor.ErrInvalidState),
		errors.Is(err, sponsor.ErrDeactivated),
		errors.Is(err, sponsorship.ErrInvalidState),
		errors.Is(err, sponsorship.ErrNotRenewable),
		errors.Is(err, roster.ErrAlreadyAssigned),
		errors.Is(err, receipt.ErrAlreadyIssued):
		return http.StatusConflict

	case errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrBudgetExceeded):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}
