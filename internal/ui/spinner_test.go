package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSpinnerCtrlCCancelsAction(t *testing.T) {
	called := false
	m := blockingSpinnerModel{
		spinner: NewAppSpinner(),
		title:   "Fetching...",
		cancel:  func() { called = true },
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	final := next.(blockingSpinnerModel)

	if !called {
		t.Error("ctrl+c did not call cancel")
	}
	if !final.cancelled {
		t.Error("model not marked cancelled")
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit the program")
	}
}

func TestSpinnerCtrlCWithoutCancel(t *testing.T) {
	m := blockingSpinnerModel{spinner: NewAppSpinner()}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(blockingSpinnerModel).cancelled {
		t.Error("model not marked cancelled")
	}
}

func TestSpinnerActionDone(t *testing.T) {
	boom := errors.New("boom")
	finished := make(chan struct{})
	m := blockingSpinnerModel{
		spinner:  NewAppSpinner(),
		action:   func() error { return boom },
		finished: finished,
	}

	msg := m.runAction()()
	select {
	case <-finished:
	default:
		t.Error("runAction did not signal completion")
	}

	next, _ := m.Update(msg)
	final := next.(blockingSpinnerModel)
	if !final.done || !errors.Is(final.err, boom) {
		t.Errorf("final model = done %v err %v", final.done, final.err)
	}
	if final.View() != "" {
		t.Errorf("View() after completion = %q", final.View())
	}
}
