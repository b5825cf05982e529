// Package memory is an in-process sheets.Mirror. kharchactl sync --dry-run
// renders through it, and tests use it to observe syncs.
package memory

import (
	"context"
	"sync"

	"kharcha/internal/core"
	"kharcha/internal/sheets"
)

type Mirror struct {
	mu    sync.Mutex
	rows  [][]any
	syncs int
	err   error
}

var _ sheets.Mirror = (*Mirror)(nil)

func New() *Mirror {
	return &Mirror{}
}

// ReplaceAll stores the laid-out rows, or returns the injected error and
// keeps the previous copy.
func (m *Mirror) ReplaceAll(_ context.Context, expenses []core.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows = sheets.Rows(expenses)
	m.syncs++
	return nil
}

// Rows returns a copy of the last mirrored rows.
func (m *Mirror) Rows() [][]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]any, len(m.rows))
	for i, r := range m.rows {
		out[i] = append([]any(nil), r...)
	}
	return out
}

// Syncs counts successful ReplaceAll calls.
func (m *Mirror) Syncs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncs
}

// FailWith makes subsequent ReplaceAll calls fail; nil restores them.
func (m *Mirror) FailWith(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}
