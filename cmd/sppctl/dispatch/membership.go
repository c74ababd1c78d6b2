package dispatch

import (
	"context"
	"slices"
	"sync"

	"github.com/concave-dev/spp/internal/cmderr"
	"github.com/concave-dev/spp/internal/logging"
)

// Membership is the live set of secondary ids known to the controller.
// IDs must return a copy the caller may keep.
type Membership interface {
	IDs() []int
}

// LiveMembership is a Membership refreshed from the process list.
type LiveMembership struct {
	mu  sync.Mutex
	ids map[int]struct{}
}

// NewLiveMembership creates a membership holding ids.
func NewLiveMembership(ids ...int) *LiveMembership {
	m := &LiveMembership{ids: make(map[int]struct{})}
	for _, id := range ids {
		m.ids[id] = struct{}{}
	}
	return m
}

// Set replaces the membership with ids.
func (m *LiveMembership) Set(ids []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = make(map[int]struct{}, len(ids))
	for _, id := range ids {
		m.ids[id] = struct{}{}
	}
}

// Add inserts id.
func (m *LiveMembership) Add(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[id] = struct{}{}
}

// Remove deletes id. Removing an unknown id is a no-op.
func (m *LiveMembership) Remove(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ids, id)
}

// IDs returns the members in ascending order.
func (m *LiveMembership) IDs() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int, 0, len(m.ids))
	for id := range m.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// TerminateSecondaries sends one termination per secondary in a snapshot of m
// taken before the first request. Members added or removed while the requests
// are in flight do not change the set. It returns the number of requests
// issued; failures are reported and do not stop the fan-out. Terminated ids
// are removed from m when it supports removal.
func (e *Engine) TerminateSecondaries(ctx context.Context, m Membership) int {
	snapshot := slices.Clone(m.IDs())
	logging.Debug("Terminating %d secondaries", len(snapshot))

	issued := 0
	for _, id := range snapshot {
		if ctx.Err() != nil {
			break
		}
		issued++
		if err := e.terminate(ctx, id); err != nil {
			if msg := cmderr.Message(err); msg != "" {
				e.printf("%s", msg)
			}
			continue
		}
		if r, ok := m.(interface{ Remove(int) }); ok {
			r.Remove(id)
		}
	}
	return issued
}
