package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"kharcha/internal/core"
	"kharcha/internal/store"
	"kharcha/internal/store/storetest"
)

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &storetest.Suite{
		NewStore: func(t *testing.T) store.Store {
			s, err := New(filepath.Join(t.TempDir(), "kharcha.db"))
			require.NoError(t, err)
			return s
		},
		UnknownID: "00000000-0000-0000-0000-000000000000",
	})
}

func TestReopenKeepsDataAndSkipsMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kharcha.db")
	ctx := context.Background()

	s, err := New(path)
	require.NoError(t, err)
	created, err := s.Create(ctx, core.Expense{Username: "A", Amount: 40, Category: "Khana", Date: core.NewDate(2024, 1, 1)})
	require.NoError(t, err)
	require.NoError(t, s.Close(ctx))

	s, err = New(path)
	require.NoError(t, err)
	defer s.Close(ctx)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "2024-01-01", list[0].Date.FormValue())
}
