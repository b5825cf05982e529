// Package tui is the terminal frontend. It drives the same client.Store as
// the web frontend and renders from view.Build.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kharcha/internal/client"
	"kharcha/internal/core"
	"kharcha/internal/log"
	"kharcha/internal/view"
)

// Store is the client state the terminal frontend drives.
type Store interface {
	State() client.State
	Load(ctx context.Context) error
	Submit(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Edit(id string) bool
	SetField(f client.Field, v string)
	CancelEdit()
	SetFilter(category string)
}

// tableFocus is the focus index past the last form input.
const tableFocus = 4

// Model holds the TUI state that is not part of client.State.
type Model struct {
	store   Store
	keymap  KeyMap
	help    help.Model
	inputs  []textinput.Model
	timeout time.Duration

	focus   int
	cursor  int
	lastErr error
	status  string
	width   int
}

// New builds the model. Requests started from the TUI give up after timeout.
func New(store Store, timeout time.Duration) Model {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	placeholders := []string{"Username", "Amount", "Category", "YYYY-MM-DD"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		in := textinput.New()
		in.Placeholder = p
		in.Prompt = ""
		in.Width = 14
		inputs[i] = in
	}
	inputs[client.FieldCategory].ShowSuggestions = true
	inputs[client.FieldCategory].SetSuggestions(core.CategoryNames())
	// tab moves between fields, so suggestions are taken with the right arrow.
	inputs[client.FieldCategory].KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("right"))
	inputs[client.FieldUsername].Focus()

	return Model{
		store:   store,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		inputs:  inputs,
		timeout: timeout,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.run(log.OpList, m.store.Load))
}

// run executes fn off the update loop and reports back with opDoneMsg.
func (m Model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case opDoneMsg:
		m.lastErr = msg.err
		m.status = ""
		if msg.err == nil && msg.op != log.OpList {
			m.status = statusText(msg.op)
		}
		m.syncInputs()
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Next):
		return m.setFocus((m.focus + 1) % (tableFocus + 1)), nil
	case key.Matches(msg, m.keymap.Prev):
		return m.setFocus((m.focus + tableFocus) % (tableFocus + 1)), nil
	case key.Matches(msg, m.keymap.Cancel):
		m.store.CancelEdit()
		m.syncInputs()
		return m, nil
	}

	if m.focus == tableFocus {
		return m.handleTableKey(msg)
	}

	if key.Matches(msg, m.keymap.Submit) {
		return m, m.run(log.OpCreate, m.store.Submit)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.store.SetField(client.Field(m.focus), m.inputs[m.focus].Value())
	return m, cmd
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := view.Build(m.store.State()).Rows

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Edit):
		if m.cursor < len(rows) && m.store.Edit(rows[m.cursor].ID) {
			m.syncInputs()
			return m.setFocus(0), nil
		}
	case key.Matches(msg, m.keymap.Delete):
		if m.cursor < len(rows) {
			id := rows[m.cursor].ID
			return m, m.run(log.OpDelete, func(ctx context.Context) error {
				return m.store.Delete(ctx, id)
			})
		}
	case key.Matches(msg, m.keymap.Filter):
		m.store.SetFilter(nextFilter(m.store.State().Filter))
		m.cursor = 0
	case key.Matches(msg, m.keymap.Reload):
		return m, m.run(log.OpList, m.store.Load)
	}
	return m, nil
}

func (m Model) setFocus(i int) Model {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m
}

// syncInputs copies the store's form into the text inputs, which is how a
// cleared or pre-filled form shows up.
func (m *Model) syncInputs() {
	f := m.store.State().Form
	for i, v := range []string{f.Username, f.Amount, f.Category, f.Date} {
		if m.inputs[i].Value() != v {
			m.inputs[i].SetValue(v)
		}
	}
}

func (m *Model) clampCursor() {
	n := len(view.Build(m.store.State()).Rows)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// nextFilter cycles All, then each category, then back to All.
func nextFilter(current string) string {
	options := append([]string{core.AllCategories}, core.CategoryNames()...)
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return core.AllCategories
}

func statusText(op string) string {
	switch op {
	case log.OpCreate:
		return "Saved"
	case log.OpDelete:
		return "Deleted"
	default:
		return ""
	}
}
