// Package topo holds the topology subgraph registry: named groups of resource
// identifiers used to cluster the ports of one VM or container when the network
// topology is rendered.
//
// A subgraph maps a unique label to a canonical member string such as
// "vhost:1;vhost:2". Subgraphs live only as long as the shell session that owns the
// registry; they are never persisted.
package topo

import (
	"iter"
	"strings"
	"sync"

	"github.com/concave-dev/spp/internal/cmderr"
	"github.com/concave-dev/spp/internal/validate"
)

// MemberSep joins members in the canonical form.
const MemberSep = ";"

// Registry stores subgraphs by label. The interactive loop is the only writer;
// the mutex keeps it safe if scripted sessions ever share a registry.
type Registry struct {
	mu        sync.RWMutex
	subgraphs map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{subgraphs: make(map[string]string)}
}

// Add normalizes rawMembers and stores them under label, silently replacing an
// existing subgraph with the same label.
func (r *Registry) Add(label, rawMembers string) (string, error) {
	if err := validate.SubgraphLabel(label); err != nil {
		return "", cmderr.Validation("%v", err)
	}
	members, err := Normalize(rawMembers)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.subgraphs[label] = members
	r.mu.Unlock()
	return members, nil
}

// Remove deletes the subgraph stored under label. A missing label is reported as
// a resource error and leaves the registry untouched.
func (r *Registry) Remove(label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subgraphs[label]; !ok {
		return cmderr.Resource("subgraph '%s' does not exist", label)
	}
	delete(r.subgraphs, label)
	return nil
}

// Get returns the canonical members of label.
func (r *Registry) Get(label string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members, ok := r.subgraphs[label]
	return members, ok
}

// Len returns the number of subgraphs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subgraphs)
}

// Labels returns the current labels in no particular order.
func (r *Registry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	labels := make([]string, 0, len(r.subgraphs))
	for label := range r.subgraphs {
		labels = append(labels, label)
	}
	return labels
}

// All returns the (label, members) pairs in no guaranteed order. Each call of the
// returned sequence works on a fresh copy taken at iteration start, so the
// sequence can be restarted and the consumer may modify the registry while
// ranging over it.
func (r *Registry) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		r.mu.RLock()
		snapshot := make(map[string]string, len(r.subgraphs))
		for label, members := range r.subgraphs {
			snapshot[label] = members
		}
		r.mu.RUnlock()

		for label, members := range snapshot {
			if !yield(label, members) {
				return
			}
		}
	}
}

// Normalize converts operator input into the canonical member string. Members may
// be separated by "," or ";", and "_" is accepted in place of ":" between kind
// and index ("vhost_1,vhost_2" becomes "vhost:1;vhost:2"). Every member must be a
// valid resource identifier.
func Normalize(raw string) (string, error) {
	fields := strings.FieldsFunc(raw, func(c rune) bool {
		return c == ',' || c == ';'
	})
	if len(fields) == 0 {
		return "", cmderr.Validation("subgraph requires at least one member")
	}

	members := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if !strings.Contains(f, validate.ResourceDelim) {
			f = strings.Replace(f, "_", validate.ResourceDelim, 1)
		}
		id, err := validate.ParseResourceID(f)
		if err != nil {
			return "", cmderr.Validation("invalid subgraph member '%s'", f)
		}
		members = append(members, id.String())
	}
	return strings.Join(members, MemberSep), nil
}
