// ABOUTME: Profile screen: account details, body metrics, calorie goal
// ABOUTME: Inline huh forms for profile edits and password changes

package profileview

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/AzlNach/NutriChef/internal/api"
	"github.com/AzlNach/NutriChef/internal/tui/authview"
	"github.com/AzlNach/NutriChef/internal/tui/icons"
	"github.com/AzlNach/NutriChef/internal/tui/styles"
)

// UpdateMsg asks the app to save profile changes
type UpdateMsg struct {
	Update api.ProfileUpdate
}

// PasswordMsg asks the app to change the account password
type PasswordMsg struct {
	Change api.PasswordChange
}

// BackMsg returns to the home screen
type BackMsg struct{}

type mode int

const (
	modeShow mode = iota
	modeEdit
	modePassword
)

// Profile is the profile screen model
type Profile struct {
	user *api.UserSummary
	mode mode
	form *huh.Form
	busy bool

	// Edit form values
	fullName string
	gender   string
	heightS  string
	weightS  string
	activity string
	goalS    string

	// Password form values
	currentPass string
	newPass     string
	confirmPass string
}

// New creates an empty profile screen; content arrives via SetUser
func New() *Profile {
	return &Profile{}
}

// HasData reports whether a profile is loaded
func (p *Profile) HasData() bool {
	return p.user != nil
}

// SetUser replaces the displayed profile
func (p *Profile) SetUser(user *api.UserSummary) {
	p.user = user
	p.mode = modeShow
	p.form = nil
	p.busy = false
}

// SetBusy marks a save in flight
func (p *Profile) SetBusy(busy bool) {
	p.busy = busy
}

// Editing reports whether a form is open, so the app knows to route all
// keys here instead of treating them as shortcuts.
func (p *Profile) Editing() bool {
	return p.mode != modeShow
}

// Clear drops the loaded profile, used on logout
func (p *Profile) Clear() {
	p.user = nil
	p.mode = modeShow
	p.form = nil
	p.busy = false
}

// Update handles key input for the profile screen
func (p *Profile) Update(msg tea.Msg) (*Profile, tea.Cmd) {
	if p.mode != modeShow {
		return p.updateForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok || p.busy {
		return p, nil
	}

	switch key.String() {
	case "e":
		if p.user == nil {
			return p, nil
		}
		p.startEdit()
		return p, p.form.Init()
	case "p":
		if p.user == nil {
			return p, nil
		}
		p.startPassword()
		return p, p.form.Init()
	case "esc", "q":
		return p, func() tea.Msg { return BackMsg{} }
	}

	return p, nil
}

func (p *Profile) startEdit() {
	u := p.user
	p.fullName = u.FullName
	p.gender = u.Gender
	p.heightS = formatOptional(u.Height)
	p.weightS = formatOptional(u.Weight)
	p.activity = u.ActivityLevel
	p.goalS = formatOptional(u.DailyCalorieGoal)
	p.mode = modeEdit

	optionalNumber := func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return errors.New("must be a positive number")
		}
		return nil
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Value(&p.fullName),
			huh.NewSelect[string]().
				Title("Gender").
				Options(
					huh.NewOption("Unspecified", ""),
					huh.NewOption("Female", "female"),
					huh.NewOption("Male", "male"),
					huh.NewOption("Other", "other"),
				).
				Value(&p.gender),
			huh.NewInput().
				Title("Height (cm)").
				Value(&p.heightS).
				Validate(optionalNumber),
			huh.NewInput().
				Title("Weight (kg)").
				Value(&p.weightS).
				Validate(optionalNumber),
			huh.NewSelect[string]().
				Title("Activity level").
				Options(
					huh.NewOption("Unspecified", ""),
					huh.NewOption("Sedentary", "sedentary"),
					huh.NewOption("Light", "light"),
					huh.NewOption("Moderate", "moderate"),
					huh.NewOption("Active", "active"),
					huh.NewOption("Very active", "very_active"),
				).
				Value(&p.activity),
			huh.NewInput().
				Title("Daily calorie goal").
				Value(&p.goalS).
				Validate(optionalNumber),
		).Title("Edit profile"),
	).WithTheme(authview.Theme())
}

func (p *Profile) startPassword() {
	p.currentPass = ""
	p.newPass = ""
	p.confirmPass = ""
	p.mode = modePassword

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Value(&p.currentPass).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("required")
					}
					return nil
				}),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&p.newPass).
				Validate(func(s string) error {
					if len(s) < 8 {
						return errors.New("at least 8 characters")
					}
					return nil
				}),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&p.confirmPass).
				Validate(func(s string) error {
					if s != p.newPass {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		).Title("Change password"),
	).WithTheme(authview.Theme())
}

func (p *Profile) updateForm(msg tea.Msg) (*Profile, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		p.mode = modeShow
		p.form = nil
		return p, nil
	}

	model, cmd := p.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		p.form = f
	}

	switch p.form.State {
	case huh.StateCompleted:
		wasEdit := p.mode == modeEdit
		p.mode = modeShow
		p.form = nil
		p.busy = true
		if wasEdit {
			update := api.ProfileUpdate{
				FullName:         strings.TrimSpace(p.fullName),
				Gender:           p.gender,
				ActivityLevel:    p.activity,
				Height:           parseOptional(p.heightS),
				Weight:           parseOptional(p.weightS),
				DailyCalorieGoal: parseOptional(p.goalS),
			}
			return p, func() tea.Msg { return UpdateMsg{Update: update} }
		}
		change := api.PasswordChange{
			CurrentPassword: p.currentPass,
			NewPassword:     p.newPass,
		}
		return p, func() tea.Msg { return PasswordMsg{Change: change} }
	case huh.StateAborted:
		p.mode = modeShow
		p.form = nil
	}

	return p, cmd
}

// View renders the profile screen
func (p *Profile) View() string {
	if p.mode != modeShow && p.form != nil {
		return p.form.View()
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.User.String() + " Profile"))
	sb.WriteString("\n\n")

	if p.user == nil {
		sb.WriteString(styles.Subtitle.Render("No profile loaded."))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("r Refresh  ·  esc Back"))
		return sb.String()
	}

	u := p.user
	sb.WriteString(field("Username", u.Username))
	sb.WriteString(field("Email", u.Email))
	sb.WriteString(field("Full name", u.FullName))
	if u.Gender != "" {
		sb.WriteString(field("Gender", u.Gender))
	}
	if u.Height > 0 {
		sb.WriteString(field("Height", fmt.Sprintf("%.0f cm", u.Height)))
	}
	if u.Weight > 0 {
		sb.WriteString(field("Weight", fmt.Sprintf("%.1f kg", u.Weight)))
	}
	if u.ActivityLevel != "" {
		sb.WriteString(field("Activity", u.ActivityLevel))
	}
	if u.DailyCalorieGoal > 0 {
		sb.WriteString(field("Calorie goal", fmt.Sprintf("%.0f kcal/day", u.DailyCalorieGoal)))
	}
	if u.CreatedAt != "" {
		sb.WriteString(field("Member since", u.CreatedAt))
	}

	sb.WriteString("\n")
	if p.busy {
		sb.WriteString(styles.StatusInfo.Render(icons.Refresh.String() + " Saving..."))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Help.Render("e Edit  ·  p Change password  ·  r Refresh  ·  esc Back"))

	return sb.String()
}

func field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("  %-14s %s\n", label, styles.ValueStyle.Render(value))
}

func formatOptional(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseOptional(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
