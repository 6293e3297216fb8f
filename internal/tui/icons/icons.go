// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("NUTRICHEF_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// iTerm2, Alacritty, WezTerm, Kitty typically have Nerd Fonts
	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}

	// Default to Unicode fallback for maximum compatibility
	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Nutrition
	Calories = Icon{"󰈸", "◆"} // nf-md-fire
	Protein  = Icon{"󰳆", "●"} // nf-md-food-drumstick
	Carbs    = Icon{"󰟪", "■"} // nf-md-barley
	Fat      = Icon{"󱌥", "▣"} // nf-md-food-croissant
	Food     = Icon{"󰉛", "⬡"} // nf-md-food-apple
	Meal     = Icon{"󰦛", "□"} // nf-md-silverware-fork-knife

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Trends and charts
	TrendUp   = Icon{"󰄬", "↗"} // nf-md-trending_up
	TrendDown = Icon{"󰄰", "↘"} // nf-md-trending_down
	Chart     = Icon{"󰄭", "▁"} // nf-md-chart_line
	Target    = Icon{"󰀘", "◎"} // nf-md-target

	// Actions
	Camera  = Icon{"󰄀", "◉"} // nf-md-camera
	Upload  = Icon{"󰅃", "↥"} // nf-md-upload
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Edit    = Icon{"󰏫", "✎"} // nf-md-pencil
	Trash   = Icon{"󰩹", "⌦"} // nf-md-trash-can
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app

	// Views and identity
	History   = Icon{"󰋚", "≡"} // nf-md-history
	Dashboard = Icon{"󰕮", "▤"} // nf-md-view-dashboard
	User      = Icon{"󰀄", "@"} // nf-md-account
	Lock      = Icon{"󰌾", "∅"} // nf-md-lock

	// Application
	App      = Icon{"󰉛", "◈"} // nf-md-food-apple (nutrition theme)
	Settings = Icon{"󰒓", "⚙"} // nf-md-cog
)
