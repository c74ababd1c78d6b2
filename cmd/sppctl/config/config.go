// Package config provides configuration management for the sppctl CLI.
package config

import (
	defaults "github.com/concave-dev/spp/internal/config"
	"github.com/concave-dev/spp/internal/version"
)

const (
	DefaultAPIAddr = defaults.DefaultAPIAddr // Default control API address (routable)
)

// Version returns the current sppctl version from the centralized version package
var Version = version.SppctlVersion

// Global holds the global CLI configuration
var Global struct {
	APIAddr        string // Address of the spp-ctl REST server
	LogLevel       string // Log level for CLI operations
	Timeout        int    // Request timeout in seconds
	HistoryFile    string // Readline history file of the interactive shell
	ConfigFile     string // Optional YAML file with defaults for the flags above
	MaxSecondaryID int    // Largest secondary client id accepted by "sec"
}

// MockCtl holds the mock-ctl command configuration
var MockCtl struct {
	Listen      string // Address the fake spp-ctl listens on
	Secondaries []int  // Client ids of the fake secondaries
}

// Shell holds the interactive shell configuration
var Shell struct {
	TopoSize string // Initial topology display size
	NoPrompt bool   // Read commands without line editing (scripts, pipes)
}
