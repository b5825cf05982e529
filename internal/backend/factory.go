package backend

import (
	"context"
	"fmt"

	"kharcha/internal/amqp"
	"kharcha/internal/log"
	"kharcha/internal/services"
	"kharcha/internal/store"
	"kharcha/internal/store/memory"
	"kharcha/internal/store/mongo"
	"kharcha/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.FromContext(context.Background())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend opens the configured store and wraps it in an ExpenseService,
// attaching an AMQP publisher when one is configured and reachable.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s, err := f.createStore(ctx, config)
	if err != nil {
		return nil, err
	}

	var publisher services.EventPublisher
	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without change events", log.FieldError, err)
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
			publisher = client
		}
	}

	service := services.NewExpenseService(s, publisher, f.logger)

	f.logger.Info("Initialized backend",
		"type", config.Type.String(),
		"events_enabled", publisher != nil)

	return &BackendResult{
		Service: service,
		Cleanup: service.Close,
	}, nil
}

func (f *DefaultFactory) createStore(ctx context.Context, config Config) (store.Store, error) {
	switch config.Type {
	case MongoBackend:
		s, err := mongo.New(ctx, mongo.Config{
			URI:        config.MongoURI,
			Database:   config.MongoDatabase,
			Collection: config.MongoCollection,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mongo store: %w", err)
		}
		f.logger.Info("Connected to MongoDB", "database", config.MongoDatabase, "collection", config.MongoCollection)
		return s, nil
	case SQLiteBackend:
		s, err := sqlite.New(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		f.logger.Info("Opened SQLite store", "db_path", config.SQLiteDBPath)
		return s, nil
	case MemoryBackend:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
