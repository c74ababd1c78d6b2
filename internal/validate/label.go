package validate

import (
	"fmt"
	"regexp"
)

var labelRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// SubgraphLabel validates a topology subgraph label. Labels end up as node names
// in rendered diagrams, so only [A-Za-z0-9_-] is allowed.
func SubgraphLabel(label string) error {
	if label == "" {
		return fmt.Errorf("subgraph label cannot be empty")
	}
	if !labelRegex.MatchString(label) {
		return fmt.Errorf("subgraph label '%s' must contain only letters, numbers, hyphens (-) and underscores (_)", label)
	}
	return nil
}
