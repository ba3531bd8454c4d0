package services

import (
	"errors"

	"github.com/shashiranjanraj/boutique/app/repositories"
)

var (
	// ErrInvalidInput marks a request the caller must fix. Errors built by
	// invalid carry the message shown to the client.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when an order update keeps losing the version
	// compare-and-swap.
	ErrConflict = errors.New("order was modified concurrently, please retry")

	// ErrUnauthorized is returned for bad credentials.
	ErrUnauthorized = errors.New("invalid email or password")

	// ErrNotFound is re-exported so callers need not import repositories.
	ErrNotFound = repositories.ErrNotFound
)

type inputError struct{ msg string }

func (e *inputError) Error() string        { return e.msg }
func (e *inputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(msg string) error { return &inputError{msg: msg} }
