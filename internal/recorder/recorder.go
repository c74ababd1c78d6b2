// Package recorder captures accepted operator commands into a recipe file and
// replays recipe files through the shell's pending-command queue.
//
// RECORDER STATES:
//   - Idle: no file is open, Capture is a no-op
//   - Recording: exactly one file is open and receives every captured line
//
// Lines containing "playback", "bye" or "exit" are never captured so that replaying
// a recipe cannot trigger another playback or end the session early.
package recorder

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/concave-dev/spp/internal/cmderr"
	"github.com/concave-dev/spp/internal/logging"
)

// CommentPrefix marks a comment line in recipes and at the prompt.
const CommentPrefix = "#"

// excludedWords are substrings that keep a line out of the recipe.
var excludedWords = []string{"playback", "bye", "exit"}

// State is the recorder state.
type State int

const (
	// Idle means no recipe file is open
	Idle State = iota
	// Recording means captured lines are written to the open file
	Recording
)

// String returns the string representation of State
func (s State) String() string {
	if s == Recording {
		return "recording"
	}
	return "idle"
}

// Recorder owns the recipe file of one shell session.
type Recorder struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// New returns an idle recorder.
func New() *Recorder {
	return &Recorder{}
}

// State returns the current recorder state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file != nil {
		return Recording
	}
	return Idle
}

// Path returns the file being recorded, or "" when idle.
func (r *Recorder) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// Start begins recording into path, truncating it. A recording already in
// progress is closed first.
func (r *Recorder) Start(path string) error {
	if strings.TrimSpace(path) == "" {
		return cmderr.Validation("Record file is required!")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.closeLocked(); err != nil {
		logging.Warn("Failed to close previous recipe file: %v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return cmderr.Resource("Error: cannot open record file '%s': %v", path, err)
	}
	r.file = f
	r.path = path
	logging.Info("Recording commands to %s", path)
	return nil
}

// Stop closes the recipe file. Stopping an idle recorder does nothing.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeLocked()
}

func (r *Recorder) closeLocked() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	logging.Info("Closed recipe file %s", r.path)
	r.file = nil
	r.path = ""
	return err
}

// Capture appends line to the recipe when recording, unless the line contains an
// excluded word. It reports whether the line was written.
func (r *Recorder) Capture(line string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil || IsExcluded(line) {
		return false, nil
	}
	if _, err := fmt.Fprintln(r.file, line); err != nil {
		return false, fmt.Errorf("failed to write recipe %s: %w", r.path, err)
	}
	return true, nil
}

// IsExcluded reports whether line must never be written to a recipe.
func IsExcluded(line string) bool {
	for _, w := range excludedWords {
		if strings.Contains(line, w) {
			return true
		}
	}
	return false
}

// IsCommentLine reports whether the first non-blank character of line starts a
// comment.
func IsCommentLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), CommentPrefix)
}

// Play stops any recording and appends the recipe at path to queue. Every command
// line is preceded by a comment echo of itself so the operator sees what runs;
// comment lines are queued once as they are. If the file cannot be read the queue
// is left unchanged.
func (r *Recorder) Play(path string, queue *Queue) error {
	if strings.TrimSpace(path) == "" {
		return cmderr.Validation("Record file is required!")
	}
	if err := r.Stop(); err != nil {
		logging.Warn("Failed to close recipe file before playback: %v", err)
	}

	lines, err := readRecipe(path)
	if err != nil {
		logging.Debug("Cannot read recipe %s: %v", path, err)
		return cmderr.Resource("Error: File does not exist.")
	}

	entries := make([]string, 0, 2*len(lines))
	for _, line := range lines {
		if !IsCommentLine(line) {
			entries = append(entries, CommentPrefix+" "+line)
		}
		entries = append(entries, line)
	}
	queue.Push(entries...)
	logging.Info("Queued %d lines from recipe %s", len(entries), path)
	return nil
}

// readRecipe reads every line of path before anything is queued so that a read
// error part way through never leaves a partial recipe behind.
func readRecipe(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
