package user

import (
	"context"
	"time"
)

// Store persists user records. Each call is atomic on its own; callers get no
// cross-call transaction.
//
// Implementations return a *NotFoundError for unknown ids and return records
// ordered by ascending id from the query methods.
type Store interface {
	// Create assigns a new id to r and stores it.
	Create(ctx context.Context, r Record) (*Record, error)
	Get(ctx context.Context, id int64) (*Record, error)
	// Save overwrites the record with r.ID.
	Save(ctx context.Context, r Record) (*Record, error)
	Delete(ctx context.Context, id int64) error
	// FindByBirthDateBetween returns records with from <= birth date <= to.
	FindByBirthDateBetween(ctx context.Context, from, to time.Time) ([]Record, error)
	// List returns up to limit records with id greater than afterID.
	List(ctx context.Context, afterID int64, limit int) ([]Record, error)
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
