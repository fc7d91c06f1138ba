package sponsor

import "errors"

var (
	ErrNotFound     = errors.New("sponsor not found")
	ErrInvalidState = errors.New("invalid sponsor status transition")
	ErrDeactivated  = errors.New("sponsor account is deactivated")
	ErrValidation   = errors.New("invalid sponsor input")
)
