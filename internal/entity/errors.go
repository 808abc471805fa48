package entity

import "errors"

// ErrProspectNotFound is surfaced by the query path as a 404.
var ErrProspectNotFound = errors.New("prospect not found")

// ErrConflict marks a concurrent-write collision inside the ingestion
// transaction. Retryable: the caller re-runs the whole unit of work.
var ErrConflict = errors.New("store conflict")
