// Package storetest holds the behaviour every store.Store implementation must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"kharcha/internal/core"
	"kharcha/internal/store"
)

// Suite runs the store contract against the store returned by NewStore.
// Use it with suite.Run(t, &storetest.Suite{NewStore: ...}).
type Suite struct {
	suite.Suite
	NewStore func(t *testing.T) store.Store
	// UnknownID is an id in the backend's native format that was never issued.
	UnknownID string

	Store store.Store
	ctx   context.Context
}

func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.Store = s.NewStore(s.T())
}

func (s *Suite) TearDownTest() {
	s.Require().NoError(s.Store.Close(s.ctx))
}

func (s *Suite) requireSameFields(want, got core.Expense) {
	s.Equal(want.Username, got.Username)
	s.Equal(want.Amount, got.Amount)
	s.Equal(want.Category, got.Category)
	s.True(want.Date.Equal(got.Date.Time), "date: want %v, got %v", want.Date, got.Date)
}

func (s *Suite) TestListEmptyIsNotNil() {
	list, err := s.Store.List(s.ctx)
	s.Require().NoError(err)
	s.NotNil(list)
	s.Empty(list)
}

func (s *Suite) TestCreateThenList() {
	in := core.Expense{Username: "A", Amount: 40, Category: "Khana", Date: core.NewDate(2024, 1, 1)}

	created, err := s.Store.Create(s.ctx, in)
	s.Require().NoError(err)
	s.NotEmpty(created.ID)

	list, err := s.Store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(created.ID, list[0].ID)
	s.requireSameFields(in, list[0])
}

func (s *Suite) TestCreateIgnoresClientID() {
	created, err := s.Store.Create(s.ctx, core.Expense{ID: "client-chosen", Username: "A", Amount: 1, Category: "Other", Date: core.NewDate(2024, 1, 1)})
	s.Require().NoError(err)
	s.NotEqual("client-chosen", created.ID)
}

func (s *Suite) TestListKeepsInsertionOrder() {
	var ids []string
	for i, cat := range []string{"Petrol", "Khana", "Petrol"} {
		e, err := s.Store.Create(s.ctx, core.Expense{Username: "A", Amount: core.Amount(i + 1), Category: cat, Date: core.NewDate(2024, 1, i+1)})
		s.Require().NoError(err)
		ids = append(ids, e.ID)
	}

	list, err := s.Store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	for i := range ids {
		s.Equal(ids[i], list[i].ID)
	}
}

func (s *Suite) TestUpdateOverwritesAllFields() {
	created, err := s.Store.Create(s.ctx, core.Expense{Username: "A", Amount: 40, Category: "Khana", Date: core.NewDate(2024, 1, 1)})
	s.Require().NoError(err)

	next := core.Expense{Username: "B", Amount: 12.5, Category: "Fuel", Date: core.NewDate(2024, 2, 29)}
	s.Require().NoError(s.Store.Update(s.ctx, created.ID, next))

	list, err := s.Store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(created.ID, list[0].ID)
	s.requireSameFields(next, list[0])
}

func (s *Suite) TestUpdateUnknownIDIsNoop() {
	_, err := s.Store.Create(s.ctx, core.Expense{Username: "A", Amount: 40, Category: "Khana", Date: core.NewDate(2024, 1, 1)})
	s.Require().NoError(err)

	for _, id := range []string{s.UnknownID, "not-an-id", ""} {
		s.NoError(s.Store.Update(s.ctx, id, core.Expense{Username: "X", Amount: 1, Category: "Other", Date: core.NewDate(2024, 1, 1)}), "id %q", id)
	}

	list, err := s.Store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("A", list[0].Username)
}

func (s *Suite) TestDeleteTwiceIsNotAnError() {
	keep, err := s.Store.Create(s.ctx, core.Expense{Username: "A", Amount: 1, Category: "Dawa", Date: core.NewDate(2024, 1, 1)})
	s.Require().NoError(err)
	gone, err := s.Store.Create(s.ctx, core.Expense{Username: "B", Amount: 2, Category: "Dawa", Date: core.NewDate(2024, 1, 2)})
	s.Require().NoError(err)

	s.Require().NoError(s.Store.Delete(s.ctx, gone.ID))
	s.Require().NoError(s.Store.Delete(s.ctx, gone.ID))
	s.NoError(s.Store.Delete(s.ctx, "not-an-id"))

	list, err := s.Store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(keep.ID, list[0].ID)
}

func (s *Suite) TestPing() {
	s.NoError(s.Store.Ping(s.ctx))
}
