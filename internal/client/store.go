package client

import (
	"context"
	"sync"

	"kharcha/internal/core"
	"kharcha/internal/log"
)

// API is the subset of APIClient the Store drives.
type API interface {
	List(ctx context.Context) ([]core.Expense, error)
	Create(ctx context.Context, f Form) error
	Update(ctx context.Context, id string, f Form) error
	Delete(ctx context.Context, id string) error
}

// Store owns one State and runs the fetch cycle against the API. Every
// mutation is followed by a full re-list; nothing is merged locally.
type Store struct {
	api    API
	logger *log.Logger

	// ops serialises fetch cycles; mu guards state.
	ops   sync.Mutex
	mu    sync.RWMutex
	state State
}

func NewStore(api API, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.FromContext(context.Background())
	}
	return &Store{
		api:    api,
		logger: logger.WithComponent(log.ComponentUI),
		state:  NewState(),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a through Reduce and returns the new state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return s.state
}

func (s *Store) fail(ctx context.Context, op string, err error) error {
	s.logger.WarnContext(ctx, "API request failed", log.FieldOperation, op, log.FieldError, err)
	s.Dispatch(RequestFailed{Err: err})
	return err
}

// Load fetches the full list and replaces the collection.
func (s *Store) Load(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) error {
	expenses, err := s.api.List(ctx)
	if err != nil {
		return s.fail(ctx, log.OpList, err)
	}
	s.Dispatch(Loaded{Expenses: expenses})
	return nil
}

// Submit sends the form as a create, or as an update when a record is being
// edited, then resets the form and re-lists.
func (s *Store) Submit(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	st := s.Dispatch(SubmitStarted{})

	var err error
	op := log.OpCreate
	if st.Editing() {
		op = log.OpUpdate
		err = s.api.Update(ctx, st.EditingID, st.Form)
	} else {
		err = s.api.Create(ctx, st.Form)
	}
	if err != nil {
		return s.fail(ctx, op, err)
	}

	s.Dispatch(SubmitSucceeded{})
	return s.load(ctx)
}

// Delete removes the record with id, then re-lists.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	s.Dispatch(DeleteStarted{ID: id})
	if err := s.api.Delete(ctx, id); err != nil {
		return s.fail(ctx, log.OpDelete, err)
	}
	return s.load(ctx)
}

// Edit pre-fills the form from the loaded record with id. It reports false
// when no such record is in the current list.
func (s *Store) Edit(id string) bool {
	for _, e := range s.State().Expenses {
		if e.ID == id {
			s.Dispatch(EditStarted{Expense: e})
			return true
		}
	}
	return false
}

func (s *Store) SetField(f Field, v string) { s.Dispatch(FieldChanged{Field: f, Value: v}) }

// SetForm sets all four inputs at once.
func (s *Store) SetForm(f Form) {
	s.SetField(FieldUsername, f.Username)
	s.SetField(FieldAmount, f.Amount)
	s.SetField(FieldCategory, f.Category)
	s.SetField(FieldDate, f.Date)
}

func (s *Store) CancelEdit() { s.Dispatch(EditCancelled{}) }

func (s *Store) SetFilter(category string) { s.Dispatch(FilterChanged{Category: category}) }
