package domain

import (
	"errors"
	"sort"
	"strings"
)

var ErrDuplicateEmail = errors.New("email already registered")
var ErrUnauthenticated = errors.New("authentication required")
var ErrBackendUnavailable = errors.New("intake backend unavailable")
var ErrActionInFlight = errors.New("action already in progress")

// RejectionError carries a human-readable rejection reason reported by the
// intake backend. The message is surfaced to the user verbatim.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

// FieldErrors maps a draft field name to a user-facing validation message.
// An empty map means the draft is valid and may be sent to the backend.
type FieldErrors map[string]string

// Valid reports whether every field passed validation.
func (fe FieldErrors) Valid() bool {
	return len(fe) == 0
}

// Error joins the messages in field order so FieldErrors can travel as an
// ordinary error through the service layer.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fe))
	for _, f := range fields {
		msgs = append(msgs, fe[f])
	}
	return strings.Join(msgs, "; ")
}
