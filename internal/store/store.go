// Package store defines the record store every backend implements.
package store

import (
	"context"

	"kharcha/internal/core"
)

// Store persists expense records. Update and Delete on an id that does not
// exist, or that the backend cannot even parse, succeed without effect.
type Store interface {
	// List returns the complete collection in insertion order, never nil.
	List(ctx context.Context) ([]core.Expense, error)
	// Create persists e and returns it with the store-assigned id.
	Create(ctx context.Context, e core.Expense) (core.Expense, error)
	// Update overwrites the four fields of the record with the given id.
	Update(ctx context.Context, id string, e core.Expense) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
