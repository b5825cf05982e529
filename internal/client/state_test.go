package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"kharcha/internal/core"
)

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Equal(t, core.AllCategories, s.Filter)
	assert.Equal(t, Idle, s.Mode)
	assert.NotNil(t, s.Expenses)
	assert.False(t, s.Editing())
}

func TestReduceTransitions(t *testing.T) {
	rec := core.Expense{ID: "x1", Username: "A", Amount: 12.5, Category: "Khana", Date: core.NewDate(2024, 1, 1)}

	tests := []struct {
		name    string
		start   State
		actions []Action
		mode    Mode
		editing string
	}{
		{"create cycle", NewState(), []Action{SubmitStarted{}, SubmitSucceeded{}}, Idle, ""},
		{"delete cycle", NewState(), []Action{DeleteStarted{ID: "x1"}, Loaded{}}, Idle, ""},
		{"edit cycle", NewState(), []Action{EditStarted{Expense: rec}, SubmitStarted{}, SubmitSucceeded{}}, Idle, ""},
		{"edit cancelled", NewState(), []Action{EditStarted{Expense: rec}, EditCancelled{}}, Idle, ""},
		{"failed create returns to idle", NewState(), []Action{SubmitStarted{}, RequestFailed{Err: errors.New("boom")}}, Idle, ""},
		{"failed update returns to editing", NewState(), []Action{EditStarted{Expense: rec}, SubmitStarted{}, RequestFailed{}}, Editing, "x1"},
		{"failed delete while editing", NewState(), []Action{EditStarted{Expense: rec}, DeleteStarted{ID: "y"}, RequestFailed{}}, Editing, "x1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.start
			for _, a := range tt.actions {
				s = Reduce(s, a)
			}
			assert.Equal(t, tt.mode, s.Mode)
			assert.Equal(t, tt.editing, s.EditingID)
		})
	}
}

func TestReduceEditStartedPrefillsForm(t *testing.T) {
	rec := core.Expense{ID: "x1", Username: "A", Amount: 12.5, Category: "Khana", Date: core.NewDate(2024, 3, 9)}
	s := Reduce(NewState(), EditStarted{Expense: rec})

	assert.Equal(t, Form{Username: "A", Amount: "12.5", Category: "Khana", Date: "2024-03-09"}, s.Form)
	assert.Equal(t, "x1", s.EditingID)
	assert.Equal(t, Editing, s.Mode)
}

func TestReduceFailureLeavesListAndForm(t *testing.T) {
	s := NewState()
	s = Reduce(s, Loaded{Expenses: []core.Expense{{ID: "1"}}})
	s = Reduce(s, FieldChanged{Field: FieldUsername, Value: "A"})
	s = Reduce(s, FieldChanged{Field: FieldAmount, Value: "40"})
	before := s

	s = Reduce(s, SubmitStarted{})
	s = Reduce(s, RequestFailed{Err: errors.New("500")})

	assert.Equal(t, before.Expenses, s.Expenses)
	assert.Equal(t, before.Form, s.Form)
	assert.Equal(t, Idle, s.Mode)
}

func TestReduceFieldChanged(t *testing.T) {
	s := NewState()
	s = Reduce(s, FieldChanged{Field: FieldUsername, Value: "A"})
	s = Reduce(s, FieldChanged{Field: FieldAmount, Value: "40"})
	s = Reduce(s, FieldChanged{Field: FieldCategory, Value: "Khana"})
	s = Reduce(s, FieldChanged{Field: FieldDate, Value: "2024-01-01"})
	assert.Equal(t, Form{Username: "A", Amount: "40", Category: "Khana", Date: "2024-01-01"}, s.Form)
}

func TestReduceFilterChanged(t *testing.T) {
	s := Reduce(NewState(), FilterChanged{Category: "Petrol"})
	assert.Equal(t, "Petrol", s.Filter)

	s = Reduce(s, FilterChanged{Category: ""})
	assert.Equal(t, core.AllCategories, s.Filter)
}

func TestReduceLoadedNilBecomesEmpty(t *testing.T) {
	s := Reduce(NewState(), Loaded{Expenses: nil})
	assert.NotNil(t, s.Expenses)
	assert.Empty(t, s.Expenses)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	start := NewState()
	_ = Reduce(start, FieldChanged{Field: FieldUsername, Value: "A"})
	assert.Empty(t, start.Form.Username)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "unknown", Mode(42).String())
}
