// ABOUTME: Analysis result screen: detected foods, totals, edit and confirm
// ABOUTME: Cursor list over foods with inline edit form for corrections

package resultview

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/AzlNach/NutriChef/internal/api"
	"github.com/AzlNach/NutriChef/internal/tui/icons"
	"github.com/AzlNach/NutriChef/internal/tui/styles"
	"github.com/AzlNach/NutriChef/internal/tui/widgets"
)

// EditMsg asks the app to update a detected food and re-fetch the session
type EditMsg struct {
	SessionID string
	FoodID    string
	Update    api.FoodUpdate
}

// RemoveMsg asks the app to delete a detected food
type RemoveMsg struct {
	SessionID string
	FoodID    string
}

// ConfirmMsg asks the app to confirm the analysis and log the meal
type ConfirmMsg struct {
	SessionID string
}

// NewAnalysisMsg asks the app to go back to the upload screen
type NewAnalysisMsg struct{}

// BackMsg returns to the home screen
type BackMsg struct{}

// Result is the analysis result screen model
type Result struct {
	analysis *api.AnalysisResult
	cursor   int
	busy     bool

	editing   bool
	form      *huh.Form
	editFood  api.DetectedFood
	nameVal   string
	portVal   string
	unitVal   string
	notesVal  string
	confirmed bool
}

// New creates an empty result screen; content arrives via SetAnalysis
func New() *Result {
	return &Result{}
}

// SetAnalysis replaces the displayed analysis. Used both for a fresh
// analysis and for the re-fetched session after an edit.
func (r *Result) SetAnalysis(a *api.AnalysisResult) {
	r.analysis = a
	r.busy = false
	r.editing = false
	r.form = nil
	r.confirmed = a != nil && a.Status == "confirmed"
	if a == nil || r.cursor >= len(a.DetectedFoods) {
		r.cursor = 0
	}
}

// Analysis returns the currently displayed analysis, nil when empty
func (r *Result) Analysis() *api.AnalysisResult {
	return r.analysis
}

// SetBusy marks a mutation in flight so key handling pauses
func (r *Result) SetBusy(busy bool) {
	r.busy = busy
}

// MarkConfirmed flips the screen into its confirmed state
func (r *Result) MarkConfirmed() {
	r.busy = false
	r.confirmed = true
	if r.analysis != nil {
		r.analysis.Status = "confirmed"
	}
}

// Update handles key input for the result screen
func (r *Result) Update(msg tea.Msg) (*Result, tea.Cmd) {
	if r.editing {
		return r.updateEdit(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok || r.busy {
		return r, nil
	}

	if r.analysis == nil {
		switch key.String() {
		case "esc", "q":
			return r, func() tea.Msg { return BackMsg{} }
		case "n":
			return r, func() tea.Msg { return NewAnalysisMsg{} }
		}
		return r, nil
	}

	foods := r.analysis.DetectedFoods

	switch key.String() {
	case "up", "k":
		if r.cursor > 0 {
			r.cursor--
		}
	case "down", "j":
		if r.cursor < len(foods)-1 {
			r.cursor++
		}
	case "e":
		if r.confirmed || r.cursor >= len(foods) {
			return r, nil
		}
		r.startEdit(foods[r.cursor])
		return r, r.form.Init()
	case "d":
		if r.confirmed || r.cursor >= len(foods) {
			return r, nil
		}
		sessionID := r.analysis.SessionID
		foodID := foods[r.cursor].ID
		r.busy = true
		return r, func() tea.Msg { return RemoveMsg{SessionID: sessionID, FoodID: foodID} }
	case "c":
		if r.confirmed {
			return r, nil
		}
		sessionID := r.analysis.SessionID
		r.busy = true
		return r, func() tea.Msg { return ConfirmMsg{SessionID: sessionID} }
	case "n":
		return r, func() tea.Msg { return NewAnalysisMsg{} }
	case "esc", "q":
		return r, func() tea.Msg { return BackMsg{} }
	}

	return r, nil
}

func (r *Result) startEdit(food api.DetectedFood) {
	r.editing = true
	r.editFood = food
	r.nameVal = food.Name
	r.portVal = strconv.FormatFloat(food.EstimatedPortion, 'f', -1, 64)
	r.unitVal = food.PortionUnit
	r.notesVal = food.Notes

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&r.nameVal).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Portion").
				Value(&r.portVal).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v <= 0 {
						return errors.New("must be a positive number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Unit").
				Value(&r.unitVal),
			huh.NewInput().
				Title("Notes").
				Value(&r.notesVal),
		).Title("Correct this food"),
	).WithTheme(huh.ThemeBase())
}

func (r *Result) updateEdit(msg tea.Msg) (*Result, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		r.editing = false
		r.form = nil
		return r, nil
	}

	model, cmd := r.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		r.form = f
	}

	switch r.form.State {
	case huh.StateCompleted:
		portion, _ := strconv.ParseFloat(strings.TrimSpace(r.portVal), 64)
		update := api.FoodUpdate{
			Name:             strings.TrimSpace(r.nameVal),
			EstimatedPortion: &portion,
			PortionUnit:      strings.TrimSpace(r.unitVal),
			Notes:            strings.TrimSpace(r.notesVal),
		}
		sessionID := r.analysis.SessionID
		foodID := r.editFood.ID
		r.editing = false
		r.form = nil
		r.busy = true
		return r, func() tea.Msg {
			return EditMsg{SessionID: sessionID, FoodID: foodID, Update: update}
		}
	case huh.StateAborted:
		r.editing = false
		r.form = nil
	}

	return r, cmd
}

// View renders the result screen
func (r *Result) View() string {
	if r.analysis == nil {
		return styles.Subtitle.Render("No analysis yet.") + "\n" +
			styles.Help.Render("n New analysis  ·  esc Back")
	}

	if r.editing {
		return styles.Title.Render(icons.Edit.String()+" Edit "+r.editFood.Name) + "\n" + r.form.View()
	}

	var sb strings.Builder
	a := r.analysis

	title := icons.Food.String() + " Analysis result"
	if a.MainFood != nil && a.MainFood.Name != "" {
		title = icons.Food.String() + " " + a.MainFood.Name
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("  ")
	sb.WriteString(widgets.ConfidenceBadge(a.ConfidenceOverall))
	if r.confirmed {
		sb.WriteString("  ")
		sb.WriteString(widgets.Badge("logged", widgets.StatusOK))
	}
	sb.WriteString("\n\n")

	if len(a.DetectedFoods) == 0 {
		sb.WriteString(styles.Subtitle.Render("No foods detected in this photo."))
		sb.WriteString("\n")
	}

	for i, f := range a.DetectedFoods {
		row := fmt.Sprintf("%s  %.0f %s  %s %.0f kcal  %s",
			styles.ValueStyle.Render(f.Name),
			f.EstimatedPortion, f.PortionUnit,
			icons.Calories.String(), f.Nutrition.Calories,
			widgets.ConfidenceBadge(f.Confidence))
		if i == r.cursor {
			sb.WriteString(styles.SelectedStyle.Render("> ") + row)
		} else {
			sb.WriteString("  " + row)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(renderTotals(a.TotalNutrition))
	sb.WriteString("\n")

	if r.busy {
		sb.WriteString(styles.StatusInfo.Render(icons.Refresh.String() + " Saving..."))
		sb.WriteString("\n")
	}

	if r.confirmed {
		sb.WriteString(styles.Help.Render("n New analysis  ·  esc Back"))
	} else {
		sb.WriteString(styles.Help.Render("e Edit  ·  d Delete  ·  c Confirm & log  ·  n New analysis  ·  esc Back"))
	}

	return sb.String()
}

func renderTotals(t api.NutritionTotals) string {
	cal := lipgloss.NewStyle().Foreground(styles.Primary).Render(
		fmt.Sprintf("%s %.0f kcal", icons.Calories.String(), t.Calories))
	pro := lipgloss.NewStyle().Foreground(styles.ProteinColor).Render(
		fmt.Sprintf("%s %.1fg protein", icons.Protein.String(), t.Protein))
	carb := lipgloss.NewStyle().Foreground(styles.CarbsColor).Render(
		fmt.Sprintf("%s %.1fg carbs", icons.Carbs.String(), t.Carbs))
	fat := lipgloss.NewStyle().Foreground(styles.FatColor).Render(
		fmt.Sprintf("%s %.1fg fat", icons.Fat.String(), t.Fat))
	return cal + "   " + pro + "   " + carb + "   " + fat
}
