// Package config provides common default configuration values shared across the
// controller components (control API client, interactive shell, topology view).
// This centralizes configuration management so flag defaults, config-file
// defaults and tests agree on the same values.
package config

const (
	// DefaultAPIAddr is the address of the control API (spp-ctl) REST server.
	// It listens on localhost only unless the operator exposes it.
	DefaultAPIAddr = "127.0.0.1:7777"

	// DefaultAPIVersion is the path prefix of every control API endpoint.
	DefaultAPIVersion = "v1"

	// DefaultLogLevel keeps the interactive shell quiet; operator output is
	// printed directly and logs are only for failures.
	DefaultLogLevel = "ERROR"

	// DefaultTimeout is the control API request timeout in seconds.
	DefaultTimeout = 8

	// DefaultHistoryFile is where readline persists the command history.
	DefaultHistoryFile = ".spp_history"

	// DefaultTopoSize is the initial display size for topology rendering.
	DefaultTopoSize = "60%"

	// DefaultMaxSecondaryID is the largest client id a secondary may use.
	DefaultMaxSecondaryID = 99

	// DefaultPrompt is shown by the interactive shell.
	DefaultPrompt = "spp > "
)
