// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Colored inline badges for confidence levels and goal status

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/AzlNach/NutriChef/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case StatusWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case StatusInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	switch level {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(BadgeOKBg).Render(icons.CheckOK.String())
	case StatusWarning:
		return lipgloss.NewStyle().Foreground(BadgeWarnBg).Render(icons.Warning.String())
	case StatusCritical:
		return lipgloss.NewStyle().Foreground(BadgeCritBg).Render(icons.Critical.String())
	case StatusInfo:
		return lipgloss.NewStyle().Foreground(BadgeInfoBg).Render(icons.Info.String())
	default:
		return lipgloss.NewStyle().Foreground(BadgeNeutralBg).Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	icon := StatusIcon(level)

	var color lipgloss.Color
	switch level {
	case StatusOK:
		color = BadgeOKBg
	case StatusWarning:
		color = BadgeWarnBg
	case StatusCritical:
		color = BadgeCritBg
	case StatusInfo:
		color = BadgeInfoBg
	default:
		color = BadgeNeutralBg
	}

	textStyle := lipgloss.NewStyle().Foreground(color)
	return fmt.Sprintf("%s %s", icon, textStyle.Render(text))
}

// ConfidenceBadge renders the analyzer's confidence as a percentage badge:
// 80%+ is solid, 50-80% is uncertain, below 50% needs a manual check.
func ConfidenceBadge(confidence float64) string {
	pct := confidence * 100
	text := fmt.Sprintf("%.0f%%", pct)

	switch {
	case pct >= 80:
		return Badge(text, StatusOK)
	case pct >= 50:
		return Badge(text, StatusWarning)
	default:
		return Badge(text, StatusCritical)
	}
}

// ConfidenceLevel returns the description for a confidence value
func ConfidenceLevel(confidence float64) (string, StatusLevel) {
	switch {
	case confidence >= 0.8:
		return "High", StatusOK
	case confidence >= 0.5:
		return "Medium", StatusWarning
	default:
		return "Low", StatusCritical
	}
}

// GoalBadge renders calories-vs-goal status
func GoalBadge(calories, goal float64) string {
	if goal <= 0 {
		return Badge("no goal", StatusNeutral)
	}
	pct := calories / goal * 100
	text := fmt.Sprintf("%.0f%% of goal", pct)
	switch {
	case pct >= 100:
		return Badge(text, StatusCritical)
	case pct >= 80:
		return Badge(text, StatusWarning)
	default:
		return Badge(text, StatusOK)
	}
}

// TrendIndicator returns an arrow icon for trend direction. For intake
// metrics a rising trend reads as a warning, falling as good.
func TrendIndicator(current, previous float64) string {
	if current > previous {
		return lipgloss.NewStyle().Foreground(BadgeWarnBg).Render(icons.TrendUp.String())
	} else if current < previous {
		return lipgloss.NewStyle().Foreground(BadgeOKBg).Render(icons.TrendDown.String())
	}
	return lipgloss.NewStyle().Foreground(BadgeNeutralBg).Render("→")
}
