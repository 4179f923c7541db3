// Package tui provides a terminal user interface for sysexgen
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/sysexgen/pkg/fixtures"
)

// MIDI-inspired color scheme
var (
	signalGreen = lipgloss.Color("#39FF14")
	amber       = lipgloss.Color("#FFB000")
	silverGray  = lipgloss.Color("#C0C0C0")
	darkGray    = lipgloss.Color("#333333")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(signalGreen).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(signalGreen).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(amber).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(signalGreen).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(signalGreen).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateDirPicker
	StateWorking
	StateResult
)

// Action is what a menu entry does once a directory is picked
type Action int

const (
	ActionNone Action = iota
	ActionGenerate
	ActionVerify
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
	Action      Action
}

var menuItems = []MenuItem{
	{Title: "Generate fixtures", Description: "Write the default SysEx fixture set and manifest into a directory", Action: ActionGenerate},
	{Title: "Verify fixtures", Description: "Check every SysEx fixture in a directory", Action: ActionVerify},
	{Title: "Exit", Description: "Exit the application", Action: ActionNone},
}

// Model represents the TUI model
type Model struct {
	state       State
	menuIndex   int
	dirPicker   filepicker.Model
	spinner     spinner.Model
	selectedDir string
	action      MenuItem
	written     int
	reports     []fixtures.Report
	err         error
	width       int
	height      int
}

// workDoneMsg signals that generation or verification finished
type workDoneMsg struct {
	written int
	reports []fixtures.Report
	err     error
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// New creates a new TUI model
func New() Model {
	// Directory picker
	fp := filepicker.New()
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(signalGreen)

	return Model{
		state:     StateMenu,
		menuIndex: 0,
		dirPicker: fp,
		spinner:   s,
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The picker needs to see every message while it is open
	if m.state == StateDirPicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.dirPicker, cmd = m.dirPicker.Update(msg)

		if didSelect, path := m.dirPicker.DidSelectFile(msg); didSelect {
			m.selectedDir = path
			m.state = StateWorking
			return m, tea.Batch(m.spinner.Tick, m.perform())
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dirPicker.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case workDoneMsg:
		m.state = StateResult
		m.written = msg.written
		m.reports = msg.reports
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		if menuItems[m.menuIndex].Action == ActionNone {
			return m, tea.Quit
		}
		m.action = menuItems[m.menuIndex]
		m.state = StateDirPicker
		return m, m.dirPicker.Init()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.err = nil
		m.selectedDir = ""
		m.written = 0
		m.reports = nil
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) perform() tea.Cmd {
	dir := m.selectedDir
	action := m.action.Action
	return func() tea.Msg {
		return run(action, dir)
	}
}

func run(action Action, dir string) workDoneMsg {
	switch action {
	case ActionGenerate:
		written, err := fixtures.NewGenerator(dir, fixtures.DefaultCounts).Generate(context.Background())
		if err != nil {
			return workDoneMsg{written: len(written), err: err}
		}
		manifest, err := fixtures.BuildManifest(written)
		if err == nil {
			err = fixtures.WriteManifest(dir, manifest)
		}
		return workDoneMsg{written: len(written), err: err}
	case ActionVerify:
		reports, err := fixtures.Verify(dir)
		return workDoneMsg{reports: reports, err: err}
	}
	return workDoneMsg{err: fmt.Errorf("unknown action %d", action)}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateDirPicker:
		s.WriteString(m.viewDirPicker())
	case StateWorking:
		s.WriteString(m.viewWorking())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	// Footer help
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SYSEX FIXTURES "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(amber).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewDirPicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT DIRECTORY "))
	s.WriteString("\n\n")
	s.WriteString(m.dirPicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewWorking() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" WORKING "))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s %s...\n", m.spinner.View(), m.action.Title))
	s.WriteString(statusStyle.Render(fmt.Sprintf("  in %s", m.selectedDir)))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	failed := fixtures.Failed(m.reports)
	switch {
	case m.err != nil:
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s failed: %s", m.action.Title, m.err.Error())))
	case len(failed) > 0:
		s.WriteString(titleStyle.Render(" VERIFY FAILED "))
		s.WriteString("\n\n")
		for _, r := range failed {
			s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %s", r.Name, r.Err.Error())))
			s.WriteString("\n")
		}
	default:
		s.WriteString(titleStyle.Render(" SUCCESS "))
		s.WriteString("\n\n")
		if m.action.Action == ActionGenerate {
			s.WriteString(successStyle.Render(fmt.Sprintf("✓ Wrote %d fixtures", m.written)))
		} else {
			s.WriteString(successStyle.Render(fmt.Sprintf("✓ %d fixtures verified", len(m.reports))))
		}
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Directory: %s", filepath.Clean(m.selectedDir)))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
  ___ _   _ ___ _____  __   ___ ___ _  _
 / __| | | / __| __\ \/ /  / __| __| \| |
 \__ \ |_| \__ \ _| >  <  | (_ | _|| .' |
 |___/\__, |___/___/_/\_\  \___|___|_|\_|
      |___/
`
	return lipgloss.NewStyle().Foreground(signalGreen).Render(logo)
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
