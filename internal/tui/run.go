package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Options tunes Run. Zero values give an alt-screen program on the real terminal.
type Options struct {
	Timeout time.Duration
	Input   io.Reader
	Output  io.Writer
}

// Run starts the terminal frontend and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, store Store, opts Options) error {
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	} else {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(New(store, opts.Timeout), programOpts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
