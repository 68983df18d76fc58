package ui

// spinner.go provides a blocking spinner for long-running fetches.

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// actionDoneMsg signals the action completed
type actionDoneMsg struct {
	err error
}

// blockingSpinnerModel runs a spinner while an action executes
type blockingSpinnerModel struct {
	spinner   spinner.Model
	title     string
	action    func() error
	cancel    context.CancelFunc
	finished  chan struct{}
	done      bool
	cancelled bool
	err       error
}

// ErrCancelled is returned when the user interrupts the spinner with ctrl+c
var ErrCancelled = errors.New("cancelled")

// RunWithSpinner executes an action while displaying a spinner and returns the action's error.
// On ctrl+c, cancel is called (it may be nil) and RunWithSpinner waits for the
// action to return before reporting ErrCancelled.
//
// Example:
//
//	ctx, cancel := context.WithCancel(ctx)
//	defer cancel()
//	var table models.Table
//	err := RunWithSpinner("Fetching 2024-02-16...", func() error {
//	    var err error
//	    table, err = a.FetchRange(ctx, dates, 5)
//	    return err
//	}, cancel)
func RunWithSpinner(title string, action func() error, cancel context.CancelFunc) error {
	m := blockingSpinnerModel{
		spinner:  NewAppSpinner(),
		title:    title,
		action:   action,
		cancel:   cancel,
		finished: make(chan struct{}),
	}

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("spinner program error: %w", err)
	}

	final := finalModel.(blockingSpinnerModel)
	if final.cancelled {
		<-m.finished
		return ErrCancelled
	}
	return final.err
}

func (m blockingSpinnerModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.runAction(),
	)
}

func (m blockingSpinnerModel) runAction() tea.Cmd {
	return func() tea.Msg {
		defer close(m.finished)
		return actionDoneMsg{err: m.action()}
	}
}

func (m blockingSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m blockingSpinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), RenderNormal(m.title))
}
