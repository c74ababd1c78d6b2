package recorder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/concave-dev/spp/internal/cmderr"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// TestCaptureExcludesControlFlow tests the recipe exclusion filter
func TestCaptureExcludesControlFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.txt")
	r := New()
	if err := r.Start(path); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}

	for _, line := range []string{"ls /tmp", "playback x", "bye"} {
		if _, err := r.Capture(line); err != nil {
			t.Fatalf("Capture(%q) unexpected error: %v", line, err)
		}
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() unexpected error: %v", err)
	}

	if got := readFile(t, path); got != "ls /tmp\n" {
		t.Errorf("recipe content = %q, want %q", got, "ls /tmp\n")
	}
}

// TestCaptureKeepsOrder tests that lines are written verbatim in order
func TestCaptureKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.txt")
	r := New()
	r.Start(path)

	lines := []string{"sec 1;add ring:0", "sec 1;patch phy:0 ring:0", "sec 2;exit", "sec 1;forward"}
	for _, line := range lines {
		r.Capture(line)
	}
	r.Stop()

	want := "sec 1;add ring:0\nsec 1;patch phy:0 ring:0\nsec 1;forward\n"
	if got := readFile(t, path); got != want {
		t.Errorf("recipe content = %q, want %q", got, want)
	}
}

// TestCaptureWhenIdle tests that nothing is written without a recording
func TestCaptureWhenIdle(t *testing.T) {
	r := New()
	written, err := r.Capture("status")
	if written || err != nil {
		t.Errorf("Capture() on idle recorder = %v, %v", written, err)
	}
}

// TestStateTransitions tests Idle/Recording transitions
func TestStateTransitions(t *testing.T) {
	dir := t.TempDir()
	r := New()

	if r.State() != Idle {
		t.Fatalf("new recorder state = %v, want idle", r.State())
	}
	if err := r.Start(""); !cmderr.Is(err, cmderr.KindValidation) {
		t.Errorf("Start(\"\") = %v, want validation error", err)
	}
	if r.State() != Idle {
		t.Errorf("state after failed Start = %v, want idle", r.State())
	}

	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	r.Start(first)
	r.Capture("status")
	if r.State() != Recording || r.Path() != first {
		t.Fatalf("state = %v path = %q, want recording %q", r.State(), r.Path(), first)
	}

	// new recording supersedes the old one
	r.Start(second)
	r.Capture("pri;status")
	if r.Path() != second {
		t.Errorf("path = %q, want %q", r.Path(), second)
	}

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop() unexpected error: %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Errorf("second Stop() unexpected error: %v", err)
	}
	if r.State() != Idle {
		t.Errorf("state after Stop = %v, want idle", r.State())
	}

	if got := readFile(t, first); got != "status\n" {
		t.Errorf("first recipe = %q", got)
	}
	if got := readFile(t, second); got != "pri;status\n" {
		t.Errorf("second recipe = %q", got)
	}
}

// TestPlaySingleLine tests the echo-then-command expansion
func TestPlaySingleLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.txt")
	os.WriteFile(path, []byte("status\n"), 0o644)

	var q Queue
	if err := New().Play(path, &q); err != nil {
		t.Fatalf("Play() unexpected error: %v", err)
	}

	got := q.Snapshot()
	want := []string{"# status", "status"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("queue = %q, want %q", got, want)
	}
}

// TestPlayComments tests that comment lines are queued once
func TestPlayComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.txt")
	content := "# setup vm1\nsec 1;add vhost:1\n  # indented comment\nsec 1;forward\n"
	os.WriteFile(path, []byte(content), 0o644)

	var q Queue
	q.Push("pending")
	if err := New().Play(path, &q); err != nil {
		t.Fatalf("Play() unexpected error: %v", err)
	}

	want := []string{
		"pending",
		"# setup vm1",
		"# sec 1;add vhost:1",
		"sec 1;add vhost:1",
		"  # indented comment",
		"# sec 1;forward",
		"sec 1;forward",
	}
	got := q.Snapshot()
	if len(got) != len(want) {
		t.Fatalf("queue = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("queue[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestPlayMissingFile tests that a missing recipe leaves the queue unchanged
func TestPlayMissingFile(t *testing.T) {
	var q Queue
	q.Push("status")

	err := New().Play(filepath.Join(t.TempDir(), "missing.txt"), &q)
	if !cmderr.Is(err, cmderr.KindResource) {
		t.Fatalf("Play() = %v, want resource error", err)
	}
	if cmderr.Message(err) != "Error: File does not exist." {
		t.Errorf("message = %q", cmderr.Message(err))
	}
	if q.Len() != 1 {
		t.Errorf("queue length = %d, want 1", q.Len())
	}
}

// TestPlayStopsRecording tests that playback closes an active recording
func TestPlayStopsRecording(t *testing.T) {
	dir := t.TempDir()
	recipe := filepath.Join(dir, "recipe.txt")
	os.WriteFile(recipe, []byte("status\n"), 0o644)

	r := New()
	r.Start(filepath.Join(dir, "out.txt"))

	var q Queue
	if err := r.Play(recipe, &q); err != nil {
		t.Fatalf("Play() unexpected error: %v", err)
	}
	if r.State() != Idle {
		t.Errorf("state after Play = %v, want idle", r.State())
	}
}

// TestQueue tests FIFO behavior
func TestQueue(t *testing.T) {
	var q Queue
	q.Push("a", "b")
	q.Push("c")

	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.Pop()
		if !ok || got != want {
			t.Errorf("Pop() = %q, %v; want %q", got, ok, want)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop() on empty queue returned ok")
	}
}

// TestIsCommentLine tests comment detection
func TestIsCommentLine(t *testing.T) {
	tests := map[string]bool{
		"# comment":   true,
		"   #indent":  true,
		"status":      false,
		"sec 1;# odd": false,
		"":            false,
	}
	for line, want := range tests {
		if got := IsCommentLine(line); got != want {
			t.Errorf("IsCommentLine(%q) = %v, want %v", line, got, want)
		}
	}
}
