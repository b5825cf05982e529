package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kharcha/internal/client"
	"kharcha/internal/core"
	"kharcha/internal/log"
	"kharcha/internal/view"
)

type fakeAPI struct {
	calls     []string
	list      []core.Expense
	createErr error
	lastID    string
	lastForm  client.Form
}

func (f *fakeAPI) List(context.Context) ([]core.Expense, error) {
	f.calls = append(f.calls, "GET")
	return append([]core.Expense(nil), f.list...), nil
}

func (f *fakeAPI) Create(_ context.Context, form client.Form) error {
	f.calls = append(f.calls, "POST")
	f.lastForm = form
	return f.createErr
}

func (f *fakeAPI) Update(_ context.Context, id string, form client.Form) error {
	f.calls = append(f.calls, "PUT")
	f.lastID, f.lastForm = id, form
	return nil
}

func (f *fakeAPI) Delete(_ context.Context, id string) error {
	f.calls = append(f.calls, "DELETE")
	f.lastID = id
	return nil
}

func seeded() *fakeAPI {
	return &fakeAPI{list: []core.Expense{
		{ID: "1", Username: "A", Amount: 100, Category: "Petrol", Date: core.NewDate(2024, 1, 1)},
		{ID: "2", Username: "B", Amount: 50, Category: "Khana", Date: core.NewDate(2024, 1, 2)},
	}}
}

// drain runs cmd and feeds any fetch-cycle result back into the model.
func drain(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(m, c)
		}
	case opDoneMsg:
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func typeText(m Model, s string) Model {
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func loaded(t *testing.T, api *fakeAPI) (Model, *client.Store) {
	t.Helper()
	store := client.NewStore(api, log.Discard())
	m := New(store, time.Second)
	m = drain(m, m.Init())
	require.Equal(t, []string{"GET"}, api.calls)
	return m, store
}

func focusTable(m Model) Model {
	for m.focus != tableFocus {
		m, _ = press(m, tab)
	}
	return m
}

func TestInitLoadsAndRenders(t *testing.T) {
	m, _ := loaded(t, seeded())

	out := m.View()
	assert.Contains(t, out, view.Title)
	assert.Contains(t, out, "₹100")
	assert.Contains(t, out, "Total Expense: ₹150")
	assert.Contains(t, out, view.ChartTitle)
	assert.Contains(t, out, "2 Jan 2024")
	assert.Contains(t, out, view.AddLabel)
}

func TestEmptyList(t *testing.T) {
	m, _ := loaded(t, &fakeAPI{})
	assert.Contains(t, m.View(), view.EmptyText)
}

func TestTypeAndSubmit(t *testing.T) {
	api := &fakeAPI{}
	m, store := loaded(t, api)

	m = typeText(m, "A")
	m, _ = press(m, tab)
	m = typeText(m, "40")
	m, _ = press(m, tab)
	m = typeText(m, "Khana")
	m, _ = press(m, tab)
	m = typeText(m, "2024-01-01")

	assert.Equal(t, client.Form{Username: "A", Amount: "40", Category: "Khana", Date: "2024-01-01"}, store.State().Form)

	m, cmd := press(m, enter)
	m = drain(m, cmd)

	assert.Equal(t, []string{"GET", "POST", "GET"}, api.calls)
	assert.Equal(t, "40", api.lastForm.Amount)
	assert.Equal(t, client.Form{}, store.State().Form)
	for _, in := range m.inputs {
		assert.Empty(t, in.Value())
	}
	assert.Contains(t, m.View(), "Saved")
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("server down")}
	m, store := loaded(t, api)

	m = typeText(m, "A")
	m, cmd := press(m, enter)
	m = drain(m, cmd)

	assert.Equal(t, "A", store.State().Form.Username)
	assert.Equal(t, "A", m.inputs[client.FieldUsername].Value())
	assert.Contains(t, m.View(), "server down")
}

func TestEditFromTable(t *testing.T) {
	m, store := loaded(t, seeded())

	m = focusTable(m)
	m, _ = press(m, runes("e"))

	assert.Equal(t, "1", store.State().EditingID)
	assert.Equal(t, 0, m.focus)
	assert.Equal(t, "A", m.inputs[client.FieldUsername].Value())
	assert.Equal(t, "2024-01-01", m.inputs[client.FieldDate].Value())
	assert.Contains(t, m.View(), view.UpdateLabel)

	m, _ = press(m, esc)
	assert.Empty(t, store.State().EditingID)
	assert.Empty(t, m.inputs[client.FieldUsername].Value())
	assert.Contains(t, m.View(), view.AddLabel)
}

func TestEditThenSubmitUpdates(t *testing.T) {
	api := seeded()
	m, _ := loaded(t, api)

	m = focusTable(m)
	m, _ = press(m, runes("e"))
	m, _ = press(m, tab)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = typeText(m, "120")

	m, cmd := press(m, enter)
	drain(m, cmd)

	assert.Equal(t, []string{"GET", "PUT", "GET"}, api.calls)
	assert.Equal(t, "1", api.lastID)
	assert.Equal(t, "120", api.lastForm.Amount)
}

func TestDeleteFromTable(t *testing.T) {
	api := seeded()
	m, _ := loaded(t, api)

	m = focusTable(m)
	m, _ = press(m, runes("j"))
	assert.Equal(t, 1, m.cursor)

	m, cmd := press(m, runes("d"))
	api.list = api.list[:1]
	m = drain(m, cmd)

	assert.Equal(t, []string{"GET", "DELETE", "GET"}, api.calls)
	assert.Equal(t, "2", api.lastID)
	assert.Equal(t, 0, m.cursor)
	assert.Contains(t, m.View(), "Deleted")
}

func TestFilterCycles(t *testing.T) {
	m, store := loaded(t, seeded())

	m = focusTable(m)
	m, _ = press(m, runes("f"))
	assert.Equal(t, "Petrol", store.State().Filter)

	out := m.View()
	assert.Contains(t, out, "Total Expense: ₹100")
	assert.False(t, strings.Contains(out, "₹50 "), "Khana row is filtered out of the table")
}

func TestQuitKeys(t *testing.T) {
	m, _ := loaded(t, &fakeAPI{})

	// q is text while a form field has focus.
	m, _ = press(m, runes("q"))
	assert.Equal(t, "q", m.inputs[client.FieldUsername].Value())

	_, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	m = focusTable(m)
	_, cmd = press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestNextFilter(t *testing.T) {
	assert.Equal(t, "Petrol", nextFilter(core.AllCategories))
	assert.Equal(t, core.AllCategories, nextFilter("Other"))
	assert.Equal(t, core.AllCategories, nextFilter("Fuel"))
}
