// Package validate provides input validation utilities for the spp controller,
// rejecting malformed operator commands before any control API request is sent.
//
// VALIDATION COVERAGE:
//   - Resource identifiers: "<kind>:<index>" or bare non-negative integers
//   - Secondary commands: arity and argument shape of "sec <id>;<cmd>"
//   - Subgraph labels: names used by the topology registry
//   - Network addresses: the control API endpoint given on the command line
//
// All checks are pure functions. Malformed input yields false or an error, never a
// panic, so the shell can report the problem and keep reading commands.
package validate

import (
	"fmt"
	"strings"
)

// Resource kinds known to the packet-processing framework.
const (
	KindPhy     = "phy"
	KindRing    = "ring"
	KindVhost   = "vhost"
	KindPcap    = "pcap"
	KindNullPMD = "nullpmd"
)

// ResourceKinds lists every kind accepted in a resource identifier.
var ResourceKinds = []string{KindPhy, KindRing, KindVhost, KindPcap, KindNullPMD}

// PortKinds lists the kinds a secondary can add or delete. Physical ports are
// owned by the primary and cannot be attached through "add".
var PortKinds = []string{KindRing, KindVhost, KindPcap, KindNullPMD}

// ResourceDelim separates kind and index in a typed resource identifier.
const ResourceDelim = ":"

// ResourceID identifies a port, either typed ("ring:1") or as a bare number ("1").
// Kind is empty for bare numeric ids. Index holds the digits as written, so an
// index wider than an int is still a well-formed id.
type ResourceID struct {
	Kind  string `validate:"omitempty,oneof=phy ring vhost pcap nullpmd"`
	Index string `validate:"required"`
}

// Typed reports whether the id carries a resource kind.
func (r ResourceID) Typed() bool {
	return r.Kind != ""
}

// String returns the canonical form used on the wire and in subgraphs.
func (r ResourceID) String() string {
	if r.Typed() {
		return r.Kind + ResourceDelim + r.Index
	}
	return r.Index
}

// Compatible reports whether two ids can form a patch: both typed or both numeric.
func Compatible(a, b ResourceID) bool {
	return a.Typed() == b.Typed()
}

// ParseResourceID parses "<kind>:<index>" or a bare index. The kind must be one of
// ResourceKinds and the index must be all ASCII digits.
func ParseResourceID(s string) (ResourceID, error) {
	return parseResourceID(s, ResourceDelim)
}

func parseResourceID(s, delim string) (ResourceID, error) {
	if isDigits(s) {
		return ResourceID{Index: s}, nil
	}

	kind, idxStr, ok := strings.Cut(s, delim)
	if !ok {
		return ResourceID{}, fmt.Errorf("invalid resource id '%s': expected <kind>%s<index>", s, delim)
	}
	if !isWord(kind) || !isDigits(idxStr) {
		return ResourceID{}, fmt.Errorf("invalid resource id '%s'", s)
	}
	id := ResourceID{Kind: kind, Index: idxStr}
	if err := validate.Struct(id); err != nil {
		return ResourceID{}, fmt.Errorf("unknown resource kind '%s' in '%s'", kind, s)
	}
	return id, nil
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isWord reports whether s is a non-empty run of [A-Za-z0-9_].
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
