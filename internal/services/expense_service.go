package services

import (
	"context"
	"errors"
	"fmt"

	"kharcha/internal/amqp"
	"kharcha/internal/core"
	"kharcha/internal/log"
	"kharcha/internal/store"
)

// EventPublisher is the part of the AMQP client the service needs.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, evt *amqp.ExpenseEvent) error
}

// ExpenseService runs store operations and announces successful mutations.
// A failed publish is logged and never fails the operation.
type ExpenseService struct {
	store     store.Store
	publisher EventPublisher
	logger    *log.Logger
}

// NewExpenseService wires a store with an optional publisher (nil disables events).
func NewExpenseService(s store.Store, publisher EventPublisher, logger *log.Logger) *ExpenseService {
	if logger == nil {
		logger = log.FromContext(context.Background())
	}
	return &ExpenseService{
		store:     s,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentExpense),
	}
}

func (s *ExpenseService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	expenses, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (s *ExpenseService) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	created, err := s.store.Create(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense created",
		log.NewFields().
			WithExpense(created.ID, created.Username, float64(created.Amount), created.Category).
			WithOperation(log.OpCreate).
			ToSlice()...)

	s.publish(ctx, amqp.EventCreated, created.ID)
	return created, nil
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, id string, e core.Expense) error {
	if err := s.store.Update(ctx, id, e); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense updated",
		log.NewFields().
			WithExpense(id, e.Username, float64(e.Amount), e.Category).
			WithOperation(log.OpUpdate).
			ToSlice()...)

	s.publish(ctx, amqp.EventUpdated, id)
	return nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense deleted", log.FieldExpenseID, id, log.FieldOperation, log.OpDelete)

	s.publish(ctx, amqp.EventDeleted, id)
	return nil
}

// Ping reports whether the store is reachable.
func (s *ExpenseService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *ExpenseService) publish(ctx context.Context, t amqp.EventType, id string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, amqp.NewExpenseEvent(t, id)); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish expense event",
			log.FieldEventType, t,
			log.FieldExpenseID, id,
			log.FieldError, err)
	}
}

// Close closes the store and, when it has one, the publisher.
func (s *ExpenseService) Close(ctx context.Context) error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if closer, ok := s.publisher.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %w", errors.Join(errs...))
	}
	return nil
}
