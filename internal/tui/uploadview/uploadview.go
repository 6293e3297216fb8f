// ABOUTME: Food photo upload screen: pick an image, add meal details, analyze
// ABOUTME: Runs a staged progress display decoupled from the real request

package uploadview

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/AzlNach/NutriChef/internal/api"
	"github.com/AzlNach/NutriChef/internal/tui/icons"
	"github.com/AzlNach/NutriChef/internal/tui/recentimages"
	"github.com/AzlNach/NutriChef/internal/tui/styles"
	"github.com/AzlNach/NutriChef/internal/tui/widgets"
)

// MaxImageBytes is the largest image the backend accepts
const MaxImageBytes = 5 * 1024 * 1024

// StageInterval is how long each cosmetic progress stage is shown before
// advancing. The real request runs independently and joins at the end.
const StageInterval = 1200 * time.Millisecond

// Stage is one step of the analysis progress display
type Stage struct {
	Label   string
	Percent float64
}

// Stages in display order. Percentages are cosmetic checkpoints, not
// actual request progress.
var Stages = []Stage{
	{"Uploading", 15},
	{"Analyzing", 35},
	{"Processing", 60},
	{"Calculating", 80},
	{"Finalizing", 95},
	{"Complete", 100},
}

type state int

const (
	statePick state = iota
	stateDetails
	stateProgress
)

// SubmitMsg asks the app to run the analysis request. RunID ties the
// cosmetic stage ticks to this particular run.
type SubmitMsg struct {
	Req   api.AnalyzeRequest
	RunID int
}

// StageTickMsg advances the cosmetic progress display
type StageTickMsg struct {
	RunID int
}

// CancelledMsg is sent when the user backs out of the upload screen
type CancelledMsg struct{}

type preview struct {
	size   int64
	width  int
	height int
}

// Upload is the photo analysis screen model
type Upload struct {
	state     state
	pathInput textinput.Model
	recent    *recentimages.RecentImages
	recentSel int

	errMsg   string
	imgPath  string
	prev     preview
	mealType string
	notes    string
	form     *huh.Form

	runID     int
	stage     int
	waitingAt int // stage index where the display parks until the response lands
}

// New creates the upload screen
func New(recent *recentimages.RecentImages) *Upload {
	ti := textinput.New()
	ti.Placeholder = "/path/to/meal.jpg"
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Primary)
	ti.Focus()

	return &Upload{
		pathInput: ti,
		recent:    recent,
		recentSel: -1,
		waitingAt: len(Stages) - 2, // park on "Finalizing"
	}
}

// Init focuses the path input
func (u *Upload) Init() tea.Cmd {
	return textinput.Blink
}

// Recent exposes the recent-images store so the app can record a
// submitted path.
func (u *Upload) Recent() *recentimages.RecentImages {
	return u.recent
}

// Busy reports whether an analysis run is in flight
func (u *Upload) Busy() bool {
	return u.state == stateProgress
}

// Reset returns the screen to the path picker, keeping recent images
func (u *Upload) Reset() {
	u.state = statePick
	u.errMsg = ""
	u.imgPath = ""
	u.prev = preview{}
	u.mealType = ""
	u.notes = ""
	u.form = nil
	u.stage = 0
	u.pathInput.SetValue("")
	u.pathInput.Focus()
	u.recentSel = -1
}

// Update handles input for the current state
func (u *Upload) Update(msg tea.Msg) (*Upload, tea.Cmd) {
	switch u.state {
	case statePick:
		return u.updatePick(msg)
	case stateDetails:
		return u.updateDetails(msg)
	case stateProgress:
		// Input is ignored while the request is in flight except esc,
		// which abandons the run: stale ticks and a stale result are
		// dropped by run ID.
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			u.runID++
			u.Reset()
			return u, func() tea.Msg { return CancelledMsg{} }
		}
		return u, nil
	}
	return u, nil
}

func (u *Upload) updatePick(msg tea.Msg) (*Upload, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return u, func() tea.Msg { return CancelledMsg{} }
		case "up":
			list := u.recent.List()
			if len(list) > 0 {
				if u.recentSel <= 0 {
					u.recentSel = len(list) - 1
				} else {
					u.recentSel--
				}
				u.pathInput.SetValue(list[u.recentSel])
				u.pathInput.CursorEnd()
			}
			return u, nil
		case "down":
			list := u.recent.List()
			if len(list) > 0 {
				u.recentSel = (u.recentSel + 1) % len(list)
				u.pathInput.SetValue(list[u.recentSel])
				u.pathInput.CursorEnd()
			}
			return u, nil
		case "enter":
			path := strings.TrimSpace(u.pathInput.Value())
			if err := u.inspectImage(path); err != nil {
				u.errMsg = err.Error()
				return u, nil
			}
			u.errMsg = ""
			u.imgPath = path
			u.state = stateDetails
			u.buildDetailsForm()
			return u, u.form.Init()
		}
	}

	var cmd tea.Cmd
	u.pathInput, cmd = u.pathInput.Update(msg)
	return u, cmd
}

func (u *Upload) updateDetails(msg tea.Msg) (*Upload, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		u.state = statePick
		u.form = nil
		u.pathInput.Focus()
		return u, nil
	}

	model, cmd := u.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		u.form = f
	}

	switch u.form.State {
	case huh.StateCompleted:
		u.runID++
		u.state = stateProgress
		u.stage = 0
		req := api.AnalyzeRequest{
			ImagePath: u.imgPath,
			MealType:  u.mealType,
			Notes:     strings.TrimSpace(u.notes),
		}
		runID := u.runID
		return u, tea.Batch(
			func() tea.Msg { return SubmitMsg{Req: req, RunID: runID} },
			u.stageTick(runID),
		)
	case huh.StateAborted:
		u.state = statePick
		u.form = nil
		u.pathInput.Focus()
		return u, nil
	}

	return u, cmd
}

// Advance moves the cosmetic progress display one stage forward, parking
// before the last stage until the real response arrives. Ticks from a
// superseded run are dropped.
func (u *Upload) Advance(msg StageTickMsg) tea.Cmd {
	if u.state != stateProgress || msg.RunID != u.runID {
		return nil
	}
	if u.stage >= u.waitingAt {
		return nil
	}
	u.stage++
	if u.stage >= u.waitingAt {
		return nil
	}
	return u.stageTick(msg.RunID)
}

// CompleteProgress finishes the run and returns the screen to the picker,
// ready for the next photo. The caller switches to the result view.
func (u *Upload) CompleteProgress(runID int) bool {
	if runID != u.runID {
		return false
	}
	u.Reset()
	return true
}

// Fail aborts the run and returns to the picker with an error message
func (u *Upload) Fail(runID int, message string) bool {
	if runID != u.runID {
		return false
	}
	path := u.imgPath
	u.Reset()
	u.pathInput.SetValue(path)
	u.pathInput.CursorEnd()
	u.errMsg = message
	return true
}

func (u *Upload) stageTick(runID int) tea.Cmd {
	return tea.Tick(StageInterval, func(time.Time) tea.Msg {
		return StageTickMsg{RunID: runID}
	})
}

func (u *Upload) buildDetailsForm() {
	u.mealType = ""
	u.notes = ""
	u.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Meal type").
				Options(
					huh.NewOption("Breakfast", "breakfast"),
					huh.NewOption("Lunch", "lunch"),
					huh.NewOption("Dinner", "dinner"),
					huh.NewOption("Snack", "snack"),
				).
				Value(&u.mealType),
			huh.NewText().
				Title("Notes").
				Description("Optional, e.g. portion size or preparation").
				Lines(2).
				Value(&u.notes),
		).Title("Meal details"),
	).WithTheme(formTheme())
}

// inspectImage validates the path and records a preview. Only formats the
// backend analyzer accepts are allowed.
func (u *Upload) inspectImage(path string) error {
	if path == "" {
		return errors.New("enter an image path")
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return fmt.Errorf("unsupported format %q, use jpeg, png or webp", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxImageBytes {
		return fmt.Errorf("image is %.1f MB, limit is 5 MB", float64(info.Size())/1024/1024)
	}

	u.prev = preview{size: info.Size()}

	// Dimensions are best effort: webp has no stdlib decoder and a
	// corrupt header should surface from the backend, not here.
	if f, err := os.Open(path); err == nil {
		if cfg, _, err := image.DecodeConfig(f); err == nil {
			u.prev.width = cfg.Width
			u.prev.height = cfg.Height
		}
		f.Close()
	}

	return nil
}

// View renders the upload screen for the current state
func (u *Upload) View() string {
	switch u.state {
	case stateDetails:
		return u.viewDetails()
	case stateProgress:
		return u.viewProgress()
	default:
		return u.viewPick()
	}
}

func (u *Upload) viewPick() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Camera.String() + " Analyze a food photo"))
	sb.WriteString("\n\n")
	sb.WriteString("Image path:\n")
	sb.WriteString(u.pathInput.View())
	sb.WriteString("\n")

	if u.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusCritical.Render(icons.Warning.String() + " " + u.errMsg))
		sb.WriteString("\n")
	}

	if list := u.recent.List(); len(list) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Recent photos"))
		sb.WriteString("\n")
		for i, p := range list {
			if i == u.recentSel {
				sb.WriteString(styles.SelectedStyle.Render("> " + p))
			} else {
				sb.WriteString("  " + p)
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString(styles.Help.Render("enter Continue  ·  ↑/↓ Recent  ·  esc Back"))
	return sb.String()
}

func (u *Upload) viewDetails() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Meal.String() + " Meal details"))
	sb.WriteString("\n")

	line := filepath.Base(u.imgPath) + "  " + formatSize(u.prev.size)
	if u.prev.width > 0 {
		line += fmt.Sprintf("  %dx%d", u.prev.width, u.prev.height)
	}
	sb.WriteString(styles.Subtitle.Render(line))
	sb.WriteString("\n")
	sb.WriteString(u.form.View())

	return sb.String()
}

func (u *Upload) viewProgress() string {
	var sb strings.Builder

	stage := Stages[u.stage]

	sb.WriteString(styles.Title.Render(icons.Upload.String() + " Analyzing " + filepath.Base(u.imgPath)))
	sb.WriteString("\n\n")

	labels := make([]string, len(Stages))
	for i, s := range Stages {
		labels[i] = s.Label
	}
	sb.WriteString(widgets.StageBar(labels, u.stage, styles.Primary, styles.Accent, styles.Muted))
	sb.WriteString("\n\n")

	cfg := widgets.DefaultProgressBarConfig()
	cfg.Width = 40
	cfg.ShowZones = false
	cfg.WarnThreshold = 101
	cfg.CritThreshold = 101
	sb.WriteString(widgets.ProgressBar(stage.Percent, cfg))
	sb.WriteString(fmt.Sprintf(" %3.0f%%  %s", stage.Percent, stage.Label))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Help.Render("esc Cancel"))

	return sb.String()
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/1024/1024)
	case bytes >= 1024:
		return fmt.Sprintf("%.0f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func formTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(styles.Muted)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(styles.Primary).SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(styles.Primary)
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(styles.Muted).
		Background(styles.Surface).
		Padding(0, 2).
		MarginRight(1)
	return t
}
