package application

import (
	"context"
	"errors"
)

var ErrApplicationNotFound = errors.New("application not found")

// Repository is the append-only intake store. There is no update or delete.
type Repository interface {
	// Create assigns a fresh ID to rec and stores it. It never overwrites an existing record.
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	// List returns all records in insertion order.
	List(ctx context.Context) ([]*Record, error)
	// ListRecent returns the last limit records, oldest first.
	ListRecent(ctx context.Context, limit int) ([]*Record, error)
	Count(ctx context.Context) (int, error)
}
