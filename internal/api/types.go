// ABOUTME: Domain types shared by the NutriChef API client
// ABOUTME: Canonical client-side shapes after response normalization

package api

import "encoding/json"

// UserSummary is the client-side cache of the server's user record.
// The authoritative copy lives server-side; this is refreshed explicitly.
type UserSummary struct {
	ID               int                        `json:"id"`
	Username         string                     `json:"username"`
	Email            string                     `json:"email"`
	FullName         string                     `json:"full_name"`
	CreatedAt        string                     `json:"created_at,omitempty"`
	UpdatedAt        string                     `json:"updated_at,omitempty"`
	DateOfBirth      string                     `json:"date_of_birth,omitempty"`
	Gender           string                     `json:"gender,omitempty"`
	Height           float64                    `json:"height,omitempty"`
	Weight           float64                    `json:"weight,omitempty"`
	ActivityLevel    string                     `json:"activity_level,omitempty"`
	DailyCalorieGoal float64                    `json:"daily_calorie_goal,omitempty"`
	Stats            map[string]json.RawMessage `json:"stats,omitempty"`
	Preferences      map[string]json.RawMessage `json:"preferences,omitempty"`
}

// NutritionTotals holds non-negative nutrient quantities. Pure value type.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber,omitempty"`
	Sugar    float64 `json:"sugar,omitempty"`
	Sodium   float64 `json:"sodium,omitempty"`
}

// DetectedFood is a single item recognized in an analyzed photo.
// It belongs to exactly one AnalysisResult.
type DetectedFood struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category,omitempty"`
	EstimatedPortion float64         `json:"estimated_portion"`
	PortionUnit      string          `json:"portion_unit"`
	Confidence       float64         `json:"confidence"`
	Nutrition        NutritionTotals `json:"nutrition"`
	Notes            string          `json:"notes,omitempty"`
}

// MainFood describes the primary dish the analyzer identified.
type MainFood struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// AnalysisResult is the canonical output of a food photo analysis.
// Mutations (edit/remove food) always re-fetch the authoritative result by
// SessionID rather than patching locally, so client and server never drift.
type AnalysisResult struct {
	SessionID         string          `json:"session_id"`
	Status            string          `json:"status"`
	MainFood          *MainFood       `json:"main_food,omitempty"`
	DetectedFoods     []DetectedFood  `json:"detected_foods"`
	TotalNutrition    NutritionTotals `json:"total_nutrition"`
	ConfidenceOverall float64         `json:"confidence_overall"`
	AdditionalNotes   string          `json:"additional_notes,omitempty"`
}

// AnalysisEntry is one row of recent-analysis history. Backends disagree on
// field names for this record, so everything decodes leniently.
type AnalysisEntry struct {
	SessionID      string          `json:"session_id,omitempty"`
	MealType       string          `json:"meal_type,omitempty"`
	FoodName       string          `json:"food_name,omitempty"`
	TotalNutrition NutritionTotals `json:"total_nutrition,omitempty"`
	Calories       float64         `json:"calories,omitempty"`
	AnalyzedAt     string          `json:"analyzed_at,omitempty"`
	Date           string          `json:"date,omitempty"`
}

// DailyNutrition is one day of aggregated intake in the history series.
type DailyNutrition struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// NutritionSummary aggregates the requested history window.
type NutritionSummary struct {
	AvgCalories   float64 `json:"avg_calories,omitempty"`
	TotalAnalyses int     `json:"total_analyses,omitempty"`
	DaysTracked   int     `json:"days_tracked,omitempty"`
	GoalAdherence float64 `json:"goal_adherence,omitempty"`
}

// UserGoals carries the user's nutrition targets.
type UserGoals struct {
	DailyCalorieGoal float64 `json:"daily_calorie_goal,omitempty"`
	ProteinGoal      float64 `json:"protein_goal,omitempty"`
	CarbsGoal        float64 `json:"carbs_goal,omitempty"`
	FatGoal          float64 `json:"fat_goal,omitempty"`
}

// NutritionHistoryData is the reconciled per-view shape for the history
// screen, assembled from up to three endpoints (see ReconcileRecentAnalyses).
type NutritionHistoryData struct {
	RecentAnalyses   []AnalysisEntry  `json:"recent_analyses"`
	NutritionHistory []DailyNutrition `json:"nutrition_history"`
	Summary          NutritionSummary `json:"summary"`
	UserGoals        UserGoals        `json:"user_goals"`
}

// DashboardOverview is the server's landing aggregate.
type DashboardOverview struct {
	TodayCalories    float64         `json:"today_calories,omitempty"`
	DailyCalorieGoal float64         `json:"daily_calorie_goal,omitempty"`
	TodayNutrition   NutritionTotals `json:"today_nutrition,omitempty"`
	RecentAnalyses   []AnalysisEntry `json:"recent_analyses,omitempty"`
	StreakDays       int             `json:"streak_days,omitempty"`
}

// DashboardStats is the server's long-window aggregate.
type DashboardStats struct {
	TotalAnalyses   int              `json:"total_analyses,omitempty"`
	AvgDailyCals    float64          `json:"avg_daily_calories,omitempty"`
	WeeklyCalories  []DailyNutrition `json:"weekly_calories,omitempty"`
	TopFoods        []string         `json:"top_foods,omitempty"`
	GoalAchievement float64          `json:"goal_achievement,omitempty"`
}

// DashboardData pairs both dashboard aggregates; invalidated wholesale on
// refresh rather than patched.
type DashboardData struct {
	Overview *DashboardOverview `json:"overview"`
	Stats    *DashboardStats    `json:"stats"`
}

// DailySummary is the per-date intake summary endpoint response.
type DailySummary struct {
	Date          string          `json:"date,omitempty"`
	Totals        NutritionTotals `json:"totals,omitempty"`
	FoodAnalyses  []AnalysisEntry `json:"food_analyses,omitempty"`
	MealBreakdown json.RawMessage `json:"meal_breakdown,omitempty"`
}

// Credentials is the login request payload. Username doubles as email;
// the backend accepts either in the same field.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the register request payload.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// AuthResponse is the shared login/register response.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserSummary `json:"user"`
}

// FoodUpdate is the payload for editing a detected food in place.
type FoodUpdate struct {
	Name             string   `json:"name,omitempty"`
	EstimatedPortion *float64 `json:"estimated_portion,omitempty"`
	PortionUnit      string   `json:"portion_unit,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

// ProfileUpdate is the payload for editing the user profile.
type ProfileUpdate struct {
	FullName         string   `json:"full_name,omitempty"`
	DateOfBirth      string   `json:"date_of_birth,omitempty"`
	Gender           string   `json:"gender,omitempty"`
	Height           *float64 `json:"height,omitempty"`
	Weight           *float64 `json:"weight,omitempty"`
	ActivityLevel    string   `json:"activity_level,omitempty"`
	DailyCalorieGoal *float64 `json:"daily_calorie_goal,omitempty"`
}

// PasswordChange is the payload for the change-password endpoint.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
