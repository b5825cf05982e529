package backend

import (
	"context"

	"kharcha/internal/services"
)

// CleanupFunc releases the resources a backend holds.
type CleanupFunc func(ctx context.Context) error

// BackendResult contains the wired expense service and its cleanup function.
type BackendResult struct {
	Service *services.ExpenseService
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// Mongo specific
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// SQLite specific
	SQLiteDBPath string

	// Change events, shared by every backend (empty URL disables them)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	MongoBackend  BackendType = "mongo"
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MongoBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
