package workflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTransition is returned when the requested status change is not
	// permitted from the current status, or the actor lacks the role to request it.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDuplicateApplication is returned when a talent already holds an
	// application for the same job post.
	ErrDuplicateApplication = errors.New("already applied to this job post")

	// ErrStaleReadConflict is returned when the stored status changed between
	// the read that validated the transition and the conditional update.
	// Callers must re-read before retrying.
	ErrStaleReadConflict = errors.New("application was updated by someone else, reload and retry")
)

// GatewayError wraps any failure returned by the data store. It is treated as
// opaque and surfaced to the user with a best-effort readable message.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *GatewayError) Unwrap() error { return e.Err }

// friendlyMessages remaps a small set of raw store error strings to text fit
// for a notification. Everything else passes through unchanged.
var friendlyMessages = map[string]string{
	"record not found":              "The requested record could not be found",
	"duplicate key value violates":  "That record already exists",
	"violates foreign key":          "A referenced record does not exist",
	"connection refused":            "The data service is unreachable, try again later",
	"context deadline exceeded":     "The data service took too long to respond",
	"SQLSTATE 23505":                "That record already exists",
}

// FriendlyMessage returns the user-facing text for err.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for fragment, friendly := range friendlyMessages {
		if strings.Contains(msg, fragment) {
			return friendly
		}
	}
	return msg
}
