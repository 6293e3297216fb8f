// ABOUTME: Login and registration forms as a bubbletea model
// ABOUTME: Uses huh forms; emits typed submit messages for the app to act on

package authview

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/AzlNach/NutriChef/internal/api"
	"github.com/AzlNach/NutriChef/internal/tui/icons"
	"github.com/AzlNach/NutriChef/internal/tui/styles"
)

// Mode selects which form is shown
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// LoginSubmitMsg is sent when the login form completes
type LoginSubmitMsg struct {
	Creds api.Credentials
}

// RegisterSubmitMsg is sent when the registration form completes
type RegisterSubmitMsg struct {
	Reg api.Registration
}

// CancelledMsg is sent when the user backs out of the auth screen
type CancelledMsg struct{}

// Auth is the login/register screen model
type Auth struct {
	mode   Mode
	form   *huh.Form
	width  int
	notice string

	// Form field values
	username string
	email    string
	password string
	fullName string
}

// Theme returns a huh theme matching the client palette. Shared with the
// profile editor so all forms look alike.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	emerald := lipgloss.Color("#10B981")
	emeraldLight := lipgloss.Color("#34D399")
	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")
	slate := lipgloss.Color("#334155")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(emerald).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(emerald)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(emeraldLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(emerald).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(grayLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(emerald).
		Bold(true)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(emerald)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(emerald)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(emerald).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// New creates an auth screen in the given mode. The notice, when set, is
// shown above the form ("Please login to access this feature").
func New(mode Mode, notice string) *Auth {
	a := &Auth{mode: mode, notice: notice}
	a.buildForm()
	return a
}

func (a *Auth) buildForm() {
	a.password = ""

	required := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("required")
		}
		return nil
	}

	if a.mode == ModeLogin {
		a.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username or email").
					Value(&a.username).
					Validate(required),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&a.password).
					Validate(required),
			).Title("Login"),
		).WithTheme(Theme())
	} else {
		a.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username").
					Value(&a.username).
					Validate(required),
				huh.NewInput().
					Title("Email").
					Value(&a.email).
					Validate(func(s string) error {
						if !strings.Contains(s, "@") {
							return errors.New("not a valid email")
						}
						return nil
					}),
				huh.NewInput().
					Title("Full name").
					Value(&a.fullName),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&a.password).
					Validate(func(s string) error {
						if len(s) < 8 {
							return errors.New("at least 8 characters")
						}
						return nil
					}),
			).Title("Create account"),
		).WithTheme(Theme())
	}
}

// Init implements tea.Model-style initialization for the embedded form
func (a *Auth) Init() tea.Cmd {
	return a.form.Init()
}

// Update routes messages to the form and emits submit messages when it
// completes. Tab toggles between login and register.
func (a *Auth) Update(msg tea.Msg) (*Auth, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return a, func() tea.Msg { return CancelledMsg{} }
		case "ctrl+t":
			if a.mode == ModeLogin {
				a.mode = ModeRegister
			} else {
				a.mode = ModeLogin
			}
			a.buildForm()
			return a, a.form.Init()
		}
	}

	model, cmd := a.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		if a.mode == ModeLogin {
			creds := api.Credentials{
				Username: strings.TrimSpace(a.username),
				Password: a.password,
			}
			return a, func() tea.Msg { return LoginSubmitMsg{Creds: creds} }
		}
		reg := api.Registration{
			Username: strings.TrimSpace(a.username),
			Email:    strings.TrimSpace(a.email),
			FullName: strings.TrimSpace(a.fullName),
			Password: a.password,
		}
		return a, func() tea.Msg { return RegisterSubmitMsg{Reg: reg} }
	}
	if a.form.State == huh.StateAborted {
		return a, func() tea.Msg { return CancelledMsg{} }
	}

	return a, cmd
}

// View renders the auth screen
func (a *Auth) View() string {
	var sb strings.Builder

	if a.notice != "" {
		sb.WriteString(styles.StatusWarning.Render(icons.Lock.String() + " " + a.notice))
		sb.WriteString("\n\n")
	}

	sb.WriteString(a.form.View())
	sb.WriteString("\n")
	if a.mode == ModeLogin {
		sb.WriteString(styles.Help.Render("ctrl+t Register instead  ·  esc Back"))
	} else {
		sb.WriteString(styles.Help.Render("ctrl+t Login instead  ·  esc Back"))
	}

	return sb.String()
}
