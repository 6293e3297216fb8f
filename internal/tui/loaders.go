// ABOUTME: Async data loaders for the TUI, each returning a typed message
// ABOUTME: Bridges the API client into the bubbletea message loop

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/AzlNach/NutriChef/internal/api"
	"github.com/AzlNach/NutriChef/internal/tui/debuglog"
)

// maxCountLookups bounds the concurrent per-session requests in the
// ingredient count batch.
const maxCountLookups = 4

type dashboardLoadedMsg struct {
	data *api.DashboardData
	err  error
}

type nutritionLoadedMsg struct {
	data  *api.NutritionHistoryData
	daily *api.DailySummary
	days  int
	err   error
}

type ingredientCountsMsg struct {
	counts map[string]int
}

type profileLoadedMsg struct {
	user *api.UserSummary
	err  error
}

type analysisDoneMsg struct {
	runID  int
	result *api.AnalysisResult
	err    error
}

type sessionFetchedMsg struct {
	result   *api.AnalysisResult
	toResult bool // switch to the result screen on success
	err      error
}

type foodMutatedMsg struct {
	sessionID string
	err       error
}

type confirmDoneMsg struct {
	err error
}

type loginDoneMsg struct {
	resp *api.AuthResponse
	err  error
}

type registerDoneMsg struct {
	resp *api.AuthResponse
	err  error
}

type logoutDoneMsg struct{}

type verifyResultMsg struct {
	valid bool
	err   error
}

type profileSavedMsg struct {
	err error
}

type passwordChangedMsg struct {
	err error
}

// sessionExpiredMsg is posted from outside the loop when the client's
// force-logout predicate fires on a 401.
type sessionExpiredMsg struct{}

type verifyTickMsg struct{}

type noticeExpireMsg struct {
	seq int
}

// loadDashboard fetches both dashboard aggregates in parallel. Either
// failing fails the whole load; the dashboard is refreshed wholesale.
func (a *App) loadDashboard() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx := context.Background()
		data := &api.DashboardData{}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			ov, err := client.DashboardOverview(ctx)
			if err != nil {
				return err
			}
			data.Overview = ov
			return nil
		})
		g.Go(func() error {
			st, err := client.DashboardStats(ctx)
			if err != nil {
				return err
			}
			data.Stats = st
			return nil
		})
		if err := g.Wait(); err != nil {
			debuglog.Error("load dashboard", err)
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{data: data}
	}
}

// loadNutrition assembles the history screen from three endpoints. The
// history call is authoritative; overview and daily summary only enrich
// the recent-analyses reconciliation, so their failures are tolerated.
func (a *App) loadNutrition(days int) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx := context.Background()

		var (
			history  *api.HistoryResponse
			overview *api.DashboardOverview
			daily    *api.DailySummary
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			h, err := client.NutritionHistory(gctx, days)
			if err != nil {
				return err
			}
			history = h
			return nil
		})
		g.Go(func() error {
			ov, err := client.DashboardOverview(gctx)
			if err != nil {
				debuglog.Error("load overview for history", err)
				return nil
			}
			overview = ov
			return nil
		})
		g.Go(func() error {
			d, _, err := client.GetDailySummary(gctx, "")
			if err != nil {
				debuglog.Error("load daily summary", err)
				return nil
			}
			daily = d
			return nil
		})
		if err := g.Wait(); err != nil {
			debuglog.Error("load nutrition history", err)
			return nutritionLoadedMsg{days: days, err: err}
		}

		data := api.BuildNutritionHistory(overview, daily, history)
		return nutritionLoadedMsg{data: data, daily: daily, days: days}
	}
}

// loadIngredientCounts resolves the detected-food count per analysis by
// fetching each session. A failed or empty lookup counts as one
// ingredient so the list never shows a zero for a logged meal.
func (a *App) loadIngredientCounts(entries []api.AnalysisEntry) tea.Cmd {
	client := a.client
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.SessionID != "" {
			ids = append(ids, e.SessionID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	return func() tea.Msg {
		ctx := context.Background()
		counts := make([]int, len(ids))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxCountLookups)
		for i, id := range ids {
			i, id := i, id
			g.Go(func() error {
				result, err := client.GetAnalysisSession(gctx, id)
				if err != nil {
					debuglog.Error("ingredient count "+id, err)
					counts[i] = 1
					return nil
				}
				n := len(result.DetectedFoods)
				if n == 0 {
					n = 1
				}
				counts[i] = n
				return nil
			})
		}
		g.Wait()

		out := make(map[string]int, len(ids))
		for i, id := range ids {
			out[id] = counts[i]
		}
		return ingredientCountsMsg{counts: out}
	}
}

func (a *App) loadProfile() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		user, err := client.GetProfile(context.Background())
		if err != nil {
			debuglog.Error("load profile", err)
		}
		return profileLoadedMsg{user: user, err: err}
	}
}

// analyzeCmd runs the real upload while the cosmetic stage ticker plays.
// runID lets the app drop a result that belongs to an abandoned run.
func (a *App) analyzeCmd(runID int, req api.AnalyzeRequest) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		result, err := client.AnalyzeFood(context.Background(), req)
		if err != nil {
			debuglog.Error("analyze food", err)
		}
		return analysisDoneMsg{runID: runID, result: result, err: err}
	}
}

// fetchSessionCmd re-fetches the authoritative analysis for a session
func (a *App) fetchSessionCmd(sessionID string, toResult bool) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		result, err := client.GetAnalysisSession(context.Background(), sessionID)
		if err != nil {
			debuglog.Error("fetch session "+sessionID, err)
		}
		return sessionFetchedMsg{result: result, toResult: toResult, err: err}
	}
}

func (a *App) editFoodCmd(sessionID, foodID string, update api.FoodUpdate) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		err := client.UpdateDetectedFood(context.Background(), sessionID, foodID, update)
		return foodMutatedMsg{sessionID: sessionID, err: err}
	}
}

func (a *App) removeFoodCmd(sessionID, foodID string) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		err := client.RemoveDetectedFood(context.Background(), sessionID, foodID)
		return foodMutatedMsg{sessionID: sessionID, err: err}
	}
}

func (a *App) confirmCmd(sessionID string) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		return confirmDoneMsg{err: client.ConfirmAnalysis(context.Background(), sessionID)}
	}
}

func (a *App) loginCmd(creds api.Credentials) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		resp, err := client.Login(context.Background(), creds)
		return loginDoneMsg{resp: resp, err: err}
	}
}

func (a *App) registerCmd(reg api.Registration) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		resp, err := client.Register(context.Background(), reg)
		return registerDoneMsg{resp: resp, err: err}
	}
}

// logoutCmd tells the server, then reports done regardless: local state is
// cleared either way so a dead backend cannot trap the user in a session.
func (a *App) logoutCmd() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		if err := client.Logout(context.Background()); err != nil {
			debuglog.Error("server logout", err)
		}
		return logoutDoneMsg{}
	}
}

func (a *App) verifyCmd() tea.Cmd {
	client := a.client
	store := a.store
	return func() tea.Msg {
		valid, err := store.Verify(context.Background(), client)
		return verifyResultMsg{valid: valid, err: err}
	}
}

func (a *App) saveProfileCmd(update api.ProfileUpdate) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		return profileSavedMsg{err: client.UpdateProfile(context.Background(), update)}
	}
}

func (a *App) changePasswordCmd(change api.PasswordChange) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		return passwordChangedMsg{err: client.ChangePassword(context.Background(), change)}
	}
}
