package shell

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"sync"
)

// historyExcluded are command names never kept in the history.
var historyExcluded = []string{"bye", "exit", "history", "redo"}

// History is the list of lines accepted from the operator.
type History struct {
	mu      sync.Mutex
	entries []string
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Load appends the entries of a readline history file.
func (h *History) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.Add(scanner.Text())
	}
	return scanner.Err()
}

// Add appends line unless it is blank or starts with an excluded command.
func (h *History) Add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if name, _, _ := strings.Cut(line, " "); slices.Contains(historyExcluded, name) {
		return
	}

	h.mu.Lock()
	h.entries = append(h.entries, line)
	h.mu.Unlock()
}

// Entry returns the n-th entry, counting from 1.
func (h *History) Entry(n int) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n < 1 || n > len(h.entries) {
		return "", false
	}
	return h.entries[n-1], true
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.entries)
}
