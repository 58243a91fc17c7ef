package apperrors

import "errors"

// Sentinel errors shared across the draft pipeline. Call sites wrap these
// with context and callers match them with errors.Is.
var (
	// ErrClientNotFound means no running League client could be discovered.
	ErrClientNotFound = errors.New("league client not found")

	// ErrSubmissionFailed covers any failed action submission, regardless of
	// the underlying cause (timeout, rejection, connection drop).
	ErrSubmissionFailed = errors.New("action submission failed")

	// ErrNoLocalActor marks a champ-select snapshot that does not identify
	// the local player. The snapshot is skipped, not retried.
	ErrNoLocalActor = errors.New("local player cell id missing from session")

	// ErrEventStreamClosed is returned by the engine when the client's event
	// socket closes before the game starts.
	ErrEventStreamClosed = errors.New("event stream closed")
)
