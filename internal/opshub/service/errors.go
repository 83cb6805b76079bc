package service

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error a service returns to a caller wraps exactly one
// of these; transports map them to status codes with errors.Is.
var (
	ErrValidation   = errors.New("validation_error")
	ErrNotFound     = errors.New("not_found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid_state")
)

var (
	ErrTokenRequired = fmt.Errorf("%w: token is required", ErrValidation)
	ErrNameRequired  = fmt.Errorf("%w: name is required", ErrValidation)

	ErrInviteNotFound   = fmt.Errorf("%w: invalid invite token", ErrNotFound)
	ErrInviteUsed       = fmt.Errorf("%w: invite token already used", ErrInvalidState)
	ErrInviteSuperseded = fmt.Errorf("%w: invite token superseded", ErrInvalidState)
	ErrInviteExpired    = fmt.Errorf("%w: invite token expired", ErrInvalidState)

	ErrEmailRegistered = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrUserExists      = fmt.Errorf("%w: user already exists for this email", ErrConflict)

	ErrUserNotFound = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrRoleNotFound = fmt.Errorf("%w: role not found", ErrNotFound)
)

// DefaultRoleMissingError reports that the role granted on redemption has
// not been seeded.
type DefaultRoleMissingError struct {
	Code string
}

func (e *DefaultRoleMissingError) Error() string {
	return fmt.Sprintf("%s: default role %s not found, seed roles first", ErrNotFound, e.Code)
}

func (e *DefaultRoleMissingError) Unwrap() error { return ErrNotFound }

// Kind returns the kind sentinel err wraps, or nil for unexpected errors.
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrInvalidState} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Describe returns the human readable part of a service error, without the
// kind prefix.
func Describe(err error) string {
	msg := err.Error()
	if k := Kind(err); k != nil {
		msg = strings.TrimPrefix(msg, k.Error()+": ")
	}
	return msg
}
