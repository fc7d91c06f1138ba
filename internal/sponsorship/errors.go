package sponsorship

import "errors"

var (
	ErrNotFound     = errors.New("sponsorship not found")
	ErrInvalidState = errors.New("invalid sponsorship status transition")
	ErrNotRenewable = errors.New("sponsorship is not in a renewable state")
	ErrValidation   = errors.New("invalid sponsorship input")
)
