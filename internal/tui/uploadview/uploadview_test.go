// ABOUTME: Tests for the upload screen: validation and staged progress
// ABOUTME: The stage ticker must park before completion and drop stale runs

package uploadview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AzlNach/NutriChef/internal/tui/recentimages"
)

func newTestUpload(t *testing.T) *Upload {
	t.Helper()
	return New(recentimages.New(t.TempDir()))
}

func writeFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, make([]byte, size), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInspectImageValidation(t *testing.T) {
	u := newTestUpload(t)

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"empty path", "", "enter an image path"},
		{"bad extension", writeFile(t, "doc.pdf", 10), "unsupported format"},
		{"missing file", "/nope/missing.jpg", "cannot read"},
		{"too large", writeFile(t, "big.jpg", MaxImageBytes+1), "limit is 5 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := u.inspectImage(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestInspectImageAcceptsSupportedFormats(t *testing.T) {
	u := newTestUpload(t)

	for _, name := range []string{"a.jpg", "b.jpeg", "c.png", "d.webp", "E.JPG"} {
		path := writeFile(t, name, 128)
		if err := u.inspectImage(path); err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
		if u.prev.size != 128 {
			t.Errorf("%s: preview size not recorded", name)
		}
	}
}

func TestStageAdvanceParksBeforeCompletion(t *testing.T) {
	u := newTestUpload(t)
	u.state = stateProgress
	u.runID = 1
	u.stage = 0

	// Each matching tick advances one stage until the parking stage
	for i := 0; i < 20; i++ {
		u.Advance(StageTickMsg{RunID: 1})
	}

	if u.stage != u.waitingAt {
		t.Errorf("display must park at stage %d, got %d", u.waitingAt, u.stage)
	}
	if Stages[u.stage].Label != "Finalizing" {
		t.Errorf("parking stage should be Finalizing, got %s", Stages[u.stage].Label)
	}
}

func TestStageAdvanceDropsStaleTicks(t *testing.T) {
	u := newTestUpload(t)
	u.state = stateProgress
	u.runID = 2
	u.stage = 0

	if cmd := u.Advance(StageTickMsg{RunID: 1}); cmd != nil {
		t.Error("stale tick must not schedule another")
	}
	if u.stage != 0 {
		t.Errorf("stale tick must not advance, got stage %d", u.stage)
	}
}

func TestCompleteProgress(t *testing.T) {
	u := newTestUpload(t)
	u.state = stateProgress
	u.runID = 3
	u.stage = 2
	u.imgPath = "/photos/meal.jpg"

	if u.CompleteProgress(99) {
		t.Error("stale run must not complete")
	}
	if !u.Busy() {
		t.Error("stale completion must not change state")
	}
	if !u.CompleteProgress(3) {
		t.Error("matching run must complete")
	}

	// The finished run must not linger: re-entering the screen shows the
	// picker, not the old progress display.
	if u.Busy() {
		t.Error("completed run must release the screen")
	}
	if view := u.View(); !strings.Contains(view, "Image path:") {
		t.Errorf("expected the picker after completion, got:\n%s", view)
	}
}

func TestFailResetsToPicker(t *testing.T) {
	u := newTestUpload(t)
	u.state = stateProgress
	u.runID = 4
	u.imgPath = "/photos/meal.jpg"

	if u.Fail(99, "nope") {
		t.Error("stale failure must be dropped")
	}
	if !u.Fail(4, "cannot connect to backend") {
		t.Error("matching failure must apply")
	}

	if u.state != statePick {
		t.Error("failure must return to the picker")
	}
	if u.errMsg != "cannot connect to backend" {
		t.Errorf("error message lost: %q", u.errMsg)
	}
	if u.pathInput.Value() != "/photos/meal.jpg" {
		t.Errorf("path must be kept for retry, got %q", u.pathInput.Value())
	}
}

func TestStagePercentagesMonotonic(t *testing.T) {
	prev := 0.0
	for _, s := range Stages {
		if s.Percent <= prev {
			t.Errorf("stage %s percent %.0f not increasing", s.Label, s.Percent)
		}
		prev = s.Percent
	}
	if Stages[len(Stages)-1].Percent != 100 {
		t.Error("final stage must be 100%")
	}
}
