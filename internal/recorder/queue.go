package recorder

import "sync"

// Queue is the FIFO of pending command lines that the shell consumes before it
// reads new input from the operator.
type Queue struct {
	mu    sync.Mutex
	lines []string
}

// Push appends lines in order.
func (q *Queue) Push(lines ...string) {
	q.mu.Lock()
	q.lines = append(q.lines, lines...)
	q.mu.Unlock()
}

// Pop removes and returns the oldest line.
func (q *Queue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.lines) == 0 {
		return "", false
	}
	line := q.lines[0]
	q.lines = q.lines[1:]
	return line, true
}

// Len returns the number of pending lines.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.lines)
}

// Snapshot returns a copy of the pending lines.
func (q *Queue) Snapshot() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.lines...)
}
