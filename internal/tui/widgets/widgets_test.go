// ABOUTME: Tests for the shared TUI widgets
// ABOUTME: Threshold behavior and sampling, not exact escape sequences

package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestConfidenceBadgeThresholds(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{0.95, "95%"},
		{0.80, "80%"},
		{0.50, "50%"},
		{0.10, "10%"},
	}
	for _, tt := range tests {
		got := ConfidenceBadge(tt.confidence)
		if !strings.Contains(got, tt.want) {
			t.Errorf("ConfidenceBadge(%f) = %q, want it to contain %q", tt.confidence, got, tt.want)
		}
	}
}

func TestConfidenceLevel(t *testing.T) {
	tests := []struct {
		confidence float64
		wantLabel  string
		wantLevel  StatusLevel
	}{
		{0.9, "High", StatusOK},
		{0.8, "High", StatusOK},
		{0.6, "Medium", StatusWarning},
		{0.5, "Medium", StatusWarning},
		{0.3, "Low", StatusCritical},
	}
	for _, tt := range tests {
		label, level := ConfidenceLevel(tt.confidence)
		if label != tt.wantLabel || level != tt.wantLevel {
			t.Errorf("ConfidenceLevel(%f) = (%s, %d), want (%s, %d)",
				tt.confidence, label, level, tt.wantLabel, tt.wantLevel)
		}
	}
}

func TestGoalBadge(t *testing.T) {
	if got := GoalBadge(500, 0); !strings.Contains(got, "no goal") {
		t.Errorf("zero goal should render a neutral badge, got %q", got)
	}
	if got := GoalBadge(2100, 2000); !strings.Contains(got, "105% of goal") {
		t.Errorf("over goal should show percentage, got %q", got)
	}
}

func TestSparklineSampling(t *testing.T) {
	if got := Sparkline(nil, 10, ""); got != "" {
		t.Errorf("empty values must render nothing, got %q", got)
	}

	// Fewer values than width pads, more values samples down
	short := Sparkline([]float64{1, 2, 3}, 10, "")
	if w := lipgloss.Width(short); w != 10 {
		t.Errorf("expected width 10, got %d", w)
	}
	long := Sparkline([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 5, "")
	if w := lipgloss.Width(long); w != 5 {
		t.Errorf("expected width 5, got %d", w)
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	got := Sparkline([]float64{5, 5, 5}, 3, "")
	mid := string(SparklineBlocks[len(SparklineBlocks)/2])
	if got != strings.Repeat(mid, 3) {
		t.Errorf("flat series should render middle blocks, got %q", got)
	}
}

func TestProgressBarClamps(t *testing.T) {
	cfg := DefaultProgressBarConfig()
	cfg.Width = 10

	over := ProgressBar(150, cfg)
	full := ProgressBar(100, cfg)
	if lipgloss.Width(over) != lipgloss.Width(full) {
		t.Error("over-100 percent must clamp to a full bar")
	}

	if got := ProgressBar(-5, cfg); strings.Contains(stripAnsi(got), "█") {
		t.Errorf("negative percent must render empty, got %q", got)
	}
}

func TestStageBar(t *testing.T) {
	labels := []string{"Uploading", "Analyzing", "Complete"}
	got := stripAnsi(StageBar(labels, 1, "#10B981", "#34D399", "#6B7280"))

	if !strings.Contains(got, "✓ Uploading") {
		t.Errorf("done stage not marked: %q", got)
	}
	if !strings.Contains(got, "▶ Analyzing") {
		t.Errorf("active stage not marked: %q", got)
	}
	if !strings.Contains(got, "· Complete") {
		t.Errorf("pending stage not marked: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("short strings pass through, got %q", got)
	}
	if got := truncate("a very long subtitle", 10); got != "a very ..." {
		t.Errorf("unexpected truncation %q", got)
	}
}

// stripAnsi removes escape sequences so tests can match visible text
func stripAnsi(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
