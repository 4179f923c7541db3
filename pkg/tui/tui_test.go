package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/james-see/sysexgen/pkg/fixtures"
)

func press(t *testing.T, m Model, key tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return model, cmd
}

func TestMenuNavigation(t *testing.T) {
	m := New()

	m, _ = press(t, m, tea.KeyUp)
	if m.menuIndex != 0 {
		t.Errorf("menuIndex = %d, want 0 at top", m.menuIndex)
	}

	for i := 0; i < len(menuItems)+2; i++ {
		m, _ = press(t, m, tea.KeyDown)
	}
	if m.menuIndex != len(menuItems)-1 {
		t.Errorf("menuIndex = %d, want %d at bottom", m.menuIndex, len(menuItems)-1)
	}
}

func TestMenuExitQuits(t *testing.T) {
	m := New()
	m.menuIndex = len(menuItems) - 1

	_, cmd := press(t, m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("enter on Exit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter on Exit should quit")
	}
}

func TestMenuOpensPicker(t *testing.T) {
	m, _ := press(t, New(), tea.KeyEnter)
	if m.state != StateDirPicker {
		t.Errorf("state = %d, want StateDirPicker", m.state)
	}
	if m.action.Action != ActionGenerate {
		t.Errorf("action = %d, want ActionGenerate", m.action.Action)
	}

	m, _ = press(t, m, tea.KeyEsc)
	if m.state != StateMenu {
		t.Errorf("state after esc = %d, want StateMenu", m.state)
	}
}

func TestRunGenerateThenVerify(t *testing.T) {
	dir := t.TempDir()

	msg := run(ActionGenerate, dir)
	if msg.err != nil {
		t.Fatalf("generate error = %v", msg.err)
	}
	if msg.written != len(fixtures.DefaultCounts) {
		t.Errorf("written = %d, want %d", msg.written, len(fixtures.DefaultCounts))
	}

	msg = run(ActionVerify, dir)
	if msg.err != nil {
		t.Fatalf("verify error = %v", msg.err)
	}
	if len(msg.reports) != len(fixtures.DefaultCounts) {
		t.Errorf("reports = %d, want %d", len(msg.reports), len(fixtures.DefaultCounts))
	}
	if failed := fixtures.Failed(msg.reports); len(failed) != 0 {
		t.Errorf("failed = %v", failed)
	}
}

func TestWorkDoneShowsResult(t *testing.T) {
	m := New()
	m.state = StateWorking
	m.action = menuItems[0]
	m.selectedDir = "/tmp/fixtures"

	next, _ := m.Update(workDoneMsg{written: 18})
	m = next.(Model)
	if m.state != StateResult {
		t.Fatalf("state = %d, want StateResult", m.state)
	}
	if view := m.View(); !strings.Contains(view, "Wrote 18 fixtures") {
		t.Errorf("View() missing success line:\n%s", view)
	}

	m.err = errors.New("disk full")
	if view := m.View(); !strings.Contains(view, "disk full") {
		t.Errorf("View() missing error:\n%s", view)
	}

	m, _ = press(t, m, tea.KeyEnter)
	if m.state != StateMenu || m.err != nil {
		t.Errorf("enter on result should reset to menu, got state %d err %v", m.state, m.err)
	}
}
