// ABOUTME: Top-level bubbletea model: screen routing, caches, session policy
// ABOUTME: Owns auth gating, lazy loads, logout cascade, periodic verify

package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AzlNach/NutriChef/internal/api"
	"github.com/AzlNach/NutriChef/internal/config"
	"github.com/AzlNach/NutriChef/internal/session"
	"github.com/AzlNach/NutriChef/internal/tui/authview"
	"github.com/AzlNach/NutriChef/internal/tui/dashview"
	"github.com/AzlNach/NutriChef/internal/tui/debuglog"
	"github.com/AzlNach/NutriChef/internal/tui/historyview"
	"github.com/AzlNach/NutriChef/internal/tui/homeview"
	"github.com/AzlNach/NutriChef/internal/tui/icons"
	"github.com/AzlNach/NutriChef/internal/tui/profileview"
	"github.com/AzlNach/NutriChef/internal/tui/recentimages"
	"github.com/AzlNach/NutriChef/internal/tui/resultview"
	"github.com/AzlNach/NutriChef/internal/tui/styles"
	"github.com/AzlNach/NutriChef/internal/tui/uploadview"
)

// Screen identifies the active view
type Screen int

const (
	ScreenHome Screen = iota
	ScreenLogin
	ScreenRegister
	ScreenAnalyze
	ScreenResult
	ScreenHistory
	ScreenDashboard
	ScreenProfile
)

// protectedScreens require an authenticated session. Navigation to any of
// them while logged out redirects to login with a notice instead.
var protectedScreens = map[Screen]bool{
	ScreenAnalyze:   true,
	ScreenResult:    true,
	ScreenHistory:   true,
	ScreenDashboard: true,
	ScreenProfile:   true,
}

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeError
)

type notice struct {
	text  string
	level noticeLevel
	seq   int
}

// App is the root TUI model
type App struct {
	cfg    *config.Config
	client *api.Client
	store  *session.Store

	screen Screen
	width  int
	height int

	home    *homeview.Menu
	auth    *authview.Auth
	upload  *uploadview.Upload
	result  *resultview.Result
	history *historyview.History
	dash    *dashview.Dashboard
	profile *profileview.Profile

	notice notice
}

// NewApp wires the root model from its dependencies. The session is
// restored before this is called; the store already knows the answer.
func NewApp(cfg *config.Config, client *api.Client, store *session.Store) *App {
	username := ""
	if u := store.User(); u != nil {
		username = u.Username
	}

	return &App{
		cfg:     cfg,
		client:  client,
		store:   store,
		screen:  ScreenHome,
		home:    homeview.New(store.IsAuthenticated(), username),
		upload:  uploadview.New(recentimages.New(cfg.ConfigDir)),
		result:  resultview.New(),
		history: historyview.New(),
		dash:    dashview.New(),
		profile: profileview.New(),
	}
}

// Init starts the periodic session verification. A restored session is
// only optimistically authenticated, so it is checked immediately rather
// than waiting a full interval.
func (a *App) Init() tea.Cmd {
	if a.store.IsAuthenticated() {
		return tea.Batch(a.verifyCmd(), a.verifyTick())
	}
	return a.verifyTick()
}

func (a *App) verifyTick() tea.Cmd {
	return tea.Tick(a.cfg.VerifyInterval, func(time.Time) tea.Msg {
		return verifyTickMsg{}
	})
}

// Update is the single message dispatch point for the whole TUI
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	// Navigation
	case homeview.ChoiceMsg:
		return a.handleChoice(msg.Choice)

	// Auth
	case authview.LoginSubmitMsg:
		return a, a.loginCmd(msg.Creds)
	case authview.RegisterSubmitMsg:
		return a, a.registerCmd(msg.Reg)
	case authview.CancelledMsg:
		a.screen = ScreenHome
		return a, nil
	case loginDoneMsg:
		return a.handleAuthDone(msg.resp, msg.err, "Welcome back")
	case registerDoneMsg:
		return a.handleAuthDone(msg.resp, msg.err, "Account created, welcome")
	case logoutDoneMsg:
		return a, nil
	case sessionExpiredMsg:
		return a.forceLogout("Session expired, please login again")

	// Verify loop
	case verifyTickMsg:
		if a.store.IsAuthenticated() {
			return a, tea.Batch(a.verifyCmd(), a.verifyTick())
		}
		return a, a.verifyTick()
	case verifyResultMsg:
		return a.handleVerifyResult(msg)

	// Upload / analyze
	case uploadview.SubmitMsg:
		a.upload.Recent().Add(msg.Req.ImagePath)
		return a, a.analyzeCmd(msg.RunID, msg.Req)
	case uploadview.StageTickMsg:
		return a, a.upload.Advance(msg)
	case uploadview.CancelledMsg:
		a.screen = ScreenHome
		return a, nil
	case analysisDoneMsg:
		return a.handleAnalysisDone(msg)

	// Result screen actions
	case resultview.EditMsg:
		return a, a.editFoodCmd(msg.SessionID, msg.FoodID, msg.Update)
	case resultview.RemoveMsg:
		return a, a.removeFoodCmd(msg.SessionID, msg.FoodID)
	case resultview.ConfirmMsg:
		return a, a.confirmCmd(msg.SessionID)
	case resultview.NewAnalysisMsg:
		a.upload.Reset()
		return a.navigate(ScreenAnalyze)
	case resultview.BackMsg:
		a.screen = ScreenHome
		return a, nil
	case foodMutatedMsg:
		if msg.err != nil {
			a.result.SetBusy(false)
			return a, a.setNotice(apiErrorText(msg.err), noticeError)
		}
		return a, a.fetchSessionCmd(msg.sessionID, false)
	case confirmDoneMsg:
		if msg.err != nil {
			a.result.SetBusy(false)
			return a, a.setNotice(apiErrorText(msg.err), noticeError)
		}
		a.result.MarkConfirmed()
		a.invalidateNutritionCaches()
		return a, a.setNotice("Meal logged", noticeSuccess)
	case sessionFetchedMsg:
		return a.handleSessionFetched(msg)

	// Data loads
	case dashboardLoadedMsg:
		if msg.err != nil {
			a.dash.SetLoading(false)
			return a, a.setNotice(apiErrorText(msg.err), noticeError)
		}
		a.dash.SetData(msg.data)
		return a, nil
	case nutritionLoadedMsg:
		if msg.err != nil {
			a.history.SetLoading(false)
			return a, a.setNotice(apiErrorText(msg.err), noticeError)
		}
		a.history.SetData(msg.data, nil)
		a.history.SetDailySummary(msg.daily)
		return a, a.loadIngredientCounts(msg.data.RecentAnalyses)
	case ingredientCountsMsg:
		a.history.SetCounts(msg.counts)
		return a, nil
	case profileLoadedMsg:
		if msg.err != nil {
			a.profile.SetBusy(false)
			return a, a.setNotice(apiErrorText(msg.err), noticeError)
		}
		a.profile.SetUser(msg.user)
		return a, nil

	// History actions
	case historyview.ReloadMsg:
		return a, a.loadNutrition(msg.Days)
	case historyview.OpenSessionMsg:
		return a, a.fetchSessionCmd(msg.SessionID, true)
	case historyview.BackMsg:
		a.screen = ScreenHome
		return a, nil
	case dashview.BackMsg:
		a.screen = ScreenHome
		return a, nil

	// Profile actions
	case profileview.UpdateMsg:
		return a, a.saveProfileCmd(msg.Update)
	case profileview.PasswordMsg:
		return a, a.changePasswordCmd(msg.Change)
	case profileview.BackMsg:
		a.screen = ScreenHome
		return a, nil
	case profileSavedMsg:
		if msg.err != nil {
			a.profile.SetBusy(false)
			return a, a.setNotice(apiErrorText(msg.err), noticeError)
		}
		// Re-fetch so the screen and the cached user reflect server truth
		return a, tea.Batch(a.loadProfile(), a.setNotice("Profile saved", noticeSuccess))
	case passwordChangedMsg:
		a.profile.SetBusy(false)
		if msg.err != nil {
			return a, a.setNotice(apiErrorText(msg.err), noticeError)
		}
		return a, a.setNotice("Password changed", noticeSuccess)

	case noticeExpireMsg:
		if msg.seq == a.notice.seq {
			a.notice.text = ""
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// Refresh shortcut on the data screens, unless a form owns the keys
	if msg.String() == "r" {
		switch a.screen {
		case ScreenDashboard:
			a.dash.SetLoading(true)
			return a, a.loadDashboard()
		case ScreenHistory:
			a.history.SetLoading(true)
			return a, a.loadNutrition(a.history.Days())
		case ScreenProfile:
			if !a.profile.Editing() {
				a.profile.SetBusy(true)
				return a, a.loadProfile()
			}
		}
	}

	var cmd tea.Cmd
	switch a.screen {
	case ScreenHome:
		a.home, cmd = a.home.Update(msg)
	case ScreenLogin, ScreenRegister:
		a.auth, cmd = a.auth.Update(msg)
	case ScreenAnalyze:
		a.upload, cmd = a.upload.Update(msg)
	case ScreenResult:
		a.result, cmd = a.result.Update(msg)
	case ScreenHistory:
		a.history, cmd = a.history.Update(msg)
	case ScreenDashboard:
		a.dash, cmd = a.dash.Update(msg)
	case ScreenProfile:
		a.profile, cmd = a.profile.Update(msg)
	}
	return a, cmd
}

func (a *App) handleChoice(choice homeview.Choice) (tea.Model, tea.Cmd) {
	switch choice {
	case homeview.ChoiceAnalyze:
		return a.navigate(ScreenAnalyze)
	case homeview.ChoiceHistory:
		return a.navigate(ScreenHistory)
	case homeview.ChoiceDashboard:
		return a.navigate(ScreenDashboard)
	case homeview.ChoiceProfile:
		return a.navigate(ScreenProfile)
	case homeview.ChoiceAuth:
		return a.navigate(ScreenLogin)
	case homeview.ChoiceLogout:
		return a.logout("Logged out")
	case homeview.ChoiceQuit:
		return a, tea.Quit
	}
	return a, nil
}

// navigate switches screens, redirecting protected destinations to login
// when no session is active and kicking off lazy loads on first entry.
func (a *App) navigate(screen Screen) (tea.Model, tea.Cmd) {
	if protectedScreens[screen] && !a.store.IsAuthenticated() {
		a.auth = authview.New(authview.ModeLogin, "Please login to access this feature")
		a.screen = ScreenLogin
		return a, a.auth.Init()
	}

	a.screen = screen
	switch screen {
	case ScreenLogin:
		a.auth = authview.New(authview.ModeLogin, "")
		return a, a.auth.Init()
	case ScreenRegister:
		a.auth = authview.New(authview.ModeRegister, "")
		return a, a.auth.Init()
	case ScreenAnalyze:
		return a, a.upload.Init()
	case ScreenDashboard:
		if !a.dash.HasData() {
			a.dash.SetLoading(true)
			return a, a.loadDashboard()
		}
	case ScreenHistory:
		if !a.history.HasData() {
			a.history.SetLoading(true)
			return a, a.loadNutrition(a.history.Days())
		}
	case ScreenProfile:
		if !a.profile.HasData() {
			return a, a.loadProfile()
		}
	}
	return a, nil
}

func (a *App) handleAuthDone(resp *api.AuthResponse, err error, greeting string) (tea.Model, tea.Cmd) {
	if err != nil {
		debuglog.Error("auth", err)
		// Rebuild the form so the user can retry
		mode := authview.ModeLogin
		if a.screen == ScreenRegister {
			mode = authview.ModeRegister
		}
		a.auth = authview.New(mode, "")
		return a, tea.Batch(a.auth.Init(), a.setNotice(apiErrorText(err), noticeError))
	}

	if err := a.store.Login(resp.AccessToken, resp.User); err != nil {
		debuglog.Error("persist session", err)
	}
	a.home.SetSession(true, resp.User.Username)
	a.screen = ScreenHome
	return a, a.setNotice(fmt.Sprintf("%s, %s", greeting, resp.User.Username), noticeSuccess)
}

// logout clears the session and cascades through every view cache that
// held per-user data. The server call happens in the background; local
// state never waits on it.
func (a *App) logout(noticeText string) (tea.Model, tea.Cmd) {
	cmd := a.logoutCmd()

	if err := a.store.Logout(); err != nil {
		debuglog.Error("clear session", err)
	}
	a.clearUserState()
	a.screen = ScreenHome
	return a, tea.Batch(cmd, a.setNotice(noticeText, noticeInfo))
}

// forceLogout is the expired-session path: same cascade, no server call
// (the token is already dead), and the user lands on the login form.
func (a *App) forceLogout(noticeText string) (tea.Model, tea.Cmd) {
	a.store.Logout()
	a.clearUserState()
	a.auth = authview.New(authview.ModeLogin, noticeText)
	a.screen = ScreenLogin
	return a, a.auth.Init()
}

func (a *App) clearUserState() {
	a.dash.Clear()
	a.history.Clear()
	a.profile.Clear()
	a.result.SetAnalysis(nil)
	a.upload.Reset()
	a.home.SetSession(false, "")
}

func (a *App) handleVerifyResult(msg verifyResultMsg) (tea.Model, tea.Cmd) {
	if !a.store.IsAuthenticated() {
		return a, nil
	}
	if msg.err != nil {
		// Could not confirm either way. Default policy keeps the session;
		// the strict policy treats any failed check as invalid.
		debuglog.Error("session verify", msg.err)
		if a.cfg.KeepSessionOnNetworkError {
			return a, nil
		}
		return a.forceLogout("Session could not be verified, please login again")
	}
	if !msg.valid {
		return a.forceLogout("Session expired, please login again")
	}
	return a, nil
}

func (a *App) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.upload.Fail(msg.runID, apiErrorText(msg.err)) {
			a.screen = ScreenAnalyze
		}
		return a, nil
	}
	if !a.upload.CompleteProgress(msg.runID) {
		return a, nil // superseded run
	}
	a.result.SetAnalysis(msg.result)
	a.invalidateNutritionCaches()
	a.screen = ScreenResult
	return a, nil
}

func (a *App) handleSessionFetched(msg sessionFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.result.SetBusy(false)
		return a, a.setNotice(apiErrorText(msg.err), noticeError)
	}
	a.result.SetAnalysis(msg.result)
	if msg.toResult {
		a.screen = ScreenResult
	}
	return a, nil
}

// invalidateNutritionCaches drops derived data that a new or confirmed
// analysis makes stale. The next visit to each screen reloads it.
func (a *App) invalidateNutritionCaches() {
	a.dash.Clear()
	a.history.Clear()
}

func (a *App) setNotice(text string, level noticeLevel) tea.Cmd {
	a.notice.seq++
	a.notice.text = text
	a.notice.level = level
	seq := a.notice.seq
	return tea.Tick(a.cfg.NoticeTTL, func(time.Time) tea.Msg {
		return noticeExpireMsg{seq: seq}
	})
}

// View renders the frame: header, active screen, notice line
func (a *App) View() string {
	var sb strings.Builder

	sb.WriteString(a.header())
	sb.WriteString("\n")

	switch a.screen {
	case ScreenHome:
		sb.WriteString(a.home.View())
	case ScreenLogin, ScreenRegister:
		sb.WriteString(a.auth.View())
	case ScreenAnalyze:
		sb.WriteString(a.upload.View())
	case ScreenResult:
		sb.WriteString(a.result.View())
	case ScreenHistory:
		sb.WriteString(a.history.View())
	case ScreenDashboard:
		sb.WriteString(a.dash.View())
	case ScreenProfile:
		sb.WriteString(a.profile.View())
	}

	if a.notice.text != "" {
		sb.WriteString("\n\n")
		sb.WriteString(a.renderNotice())
	}

	return sb.String()
}

func (a *App) header() string {
	left := styles.Title.Render(icons.App.String() + " NutriChef")

	right := styles.Help.Render("not logged in")
	if u := a.store.User(); u != nil {
		right = styles.Subtitle.Render(icons.User.String() + " " + u.Username)
	}

	gap := 2
	if a.width > 0 {
		gap = a.width - lipgloss.Width(left) - lipgloss.Width(right)
		if gap < 2 {
			gap = 2
		}
	}
	return left + strings.Repeat(" ", gap) + right
}

func (a *App) renderNotice() string {
	switch a.notice.level {
	case noticeSuccess:
		return styles.StatusOK.Render(icons.CheckOK.String() + " " + a.notice.text)
	case noticeError:
		return styles.StatusCritical.Render(icons.Warning.String() + " " + a.notice.text)
	default:
		return styles.StatusInfo.Render(icons.Info.String() + " " + a.notice.text)
	}
}

// apiErrorText flattens an API error into its user-facing message
func apiErrorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// Run starts the TUI. It wires the client's session-expiry callback into
// the program's message loop so a mid-request 401 lands as a message.
func Run(cfg *config.Config, client *api.Client, store *session.Store) error {
	app := NewApp(cfg, client, store)
	p := tea.NewProgram(app, tea.WithAltScreen())

	client.SetOnSessionExpired(func() {
		p.Send(sessionExpiredMsg{})
	})

	_, err := p.Run()
	return err
}
