package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no ticket matched the given ticket_number.
	ErrNotFound = errors.New("ticket not found")
	// ErrDuplicateTicket indicates a ticket_number uniqueness violation.
	ErrDuplicateTicket = errors.New("ticket number already exists")
	// ErrNoSearchFilter indicates a search request with no filter at all.
	ErrNoSearchFilter = errors.New("at least one search filter is required")
)

// ValidationError names the field that failed input validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
