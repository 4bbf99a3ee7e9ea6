package ports

import (
	"context"
	"errors"
	"time"
)

// ErrIdempotencyConflict indicates the same key was reused with a different payload.
var ErrIdempotencyConflict = errors.New("idempotency conflict")

// IdempotencyRecord ties a client-supplied key to the order it produced.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     string
	CreatedAt   time.Time
}

// IdempotencyStore persists idempotency keys so retried submissions replay the first order.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save persists the record. A key already bound to another request or
	// order returns ErrIdempotencyConflict with the stored record.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}
