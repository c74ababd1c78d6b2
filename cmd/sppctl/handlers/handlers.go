// Package handlers provides command handler functions for sppctl.
//
// Every handler builds a shell.Session on top of the control API client and
// feeds it controller lines, so the interactive shell and the one-shot
// subcommands share validation, dispatch and output:
//
// - shell.go: interactive controller (root command)
// - process.go: one-shot status, pri, sec and playback
// - mockctl.go: fake spp-ctl server
//
// Handlers set up logging first and print operator output to stdout; logs go
// through the logging package.
package handlers

import (
	"io"

	"github.com/concave-dev/spp/cmd/sppctl/client"
	"github.com/concave-dev/spp/cmd/sppctl/config"
	"github.com/concave-dev/spp/cmd/sppctl/shell"
	"github.com/concave-dev/spp/internal/logging"
)

// newSession creates a controller session from the global CLI configuration.
func newSession(out io.Writer, historyFile string) *shell.Session {
	apiClient := client.CreateAPIClient()
	logging.Info("Using spp-ctl at %s", apiClient.BaseURL())

	return shell.NewSession(shell.Options{
		API:            apiClient,
		Out:            out,
		TopoSize:       config.Shell.TopoSize,
		MaxSecondaryID: config.Global.MaxSecondaryID,
		HistoryFile:    historyFile,
	})
}
