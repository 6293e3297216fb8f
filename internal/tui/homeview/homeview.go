// ABOUTME: Home menu for the TUI: entry point to every other view
// ABOUTME: Cursor list over destinations with auth-aware labels

package homeview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AzlNach/NutriChef/internal/tui/icons"
	"github.com/AzlNach/NutriChef/internal/tui/styles"
)

// Choice is a destination selected from the home menu
type Choice int

const (
	ChoiceAnalyze Choice = iota
	ChoiceHistory
	ChoiceDashboard
	ChoiceProfile
	ChoiceAuth
	ChoiceLogout
	ChoiceQuit
)

// ChoiceMsg is sent when the user picks a destination
type ChoiceMsg struct {
	Choice Choice
}

type item struct {
	icon      icons.Icon
	label     string
	choice    Choice
	protected bool
}

// Menu is the home screen model
type Menu struct {
	items         []item
	cursor        int
	authenticated bool
	username      string
}

// New creates the home menu
func New(authenticated bool, username string) *Menu {
	m := &Menu{}
	m.SetSession(authenticated, username)
	return m
}

// SetSession updates the menu's view of the session, rebuilding the
// auth-dependent entries.
func (m *Menu) SetSession(authenticated bool, username string) {
	m.authenticated = authenticated
	m.username = username

	m.items = []item{
		{icons.Camera, "Analyze a food photo", ChoiceAnalyze, true},
		{icons.History, "Nutrition history", ChoiceHistory, true},
		{icons.Dashboard, "Dashboard", ChoiceDashboard, true},
		{icons.User, "Profile", ChoiceProfile, true},
	}
	if authenticated {
		m.items = append(m.items, item{icons.Quit, "Log out", ChoiceLogout, false})
	} else {
		m.items = append(m.items, item{icons.Lock, "Login / Register", ChoiceAuth, false})
	}
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
}

// Update handles key input for the menu
func (m *Menu) Update(msg tea.KeyMsg) (*Menu, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		choice := m.items[m.cursor].choice
		return m, func() tea.Msg { return ChoiceMsg{Choice: choice} }
	case "q":
		return m, func() tea.Msg { return ChoiceMsg{Choice: ChoiceQuit} }
	}
	return m, nil
}

// View renders the menu
func (m *Menu) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.App.String() + " NutriChef"))
	sb.WriteString("\n")
	if m.authenticated {
		sb.WriteString(styles.Subtitle.Render("Hello, " + m.username))
	} else {
		sb.WriteString(styles.Subtitle.Render("Snap a meal, know your macros"))
	}
	sb.WriteString("\n\n")

	for i, it := range m.items {
		label := fmt.Sprintf("%s %s", it.icon.String(), it.label)
		if it.protected && !m.authenticated {
			label += " " + styles.Help.Render(icons.Lock.String())
		}
		if i == m.cursor {
			sb.WriteString(styles.SelectedStyle.Render("> " + label))
		} else {
			sb.WriteString("  " + label)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
