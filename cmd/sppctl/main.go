// Package main provides the entry point for the Soft Patch Panel controller
// (sppctl).
//
// sppctl drives a running SPP deployment through the spp-ctl REST server. The
// root command opens the interactive controller; subcommands run a single
// controller line for scripting.
//
// INITIALIZATION FLOW:
// 1. Command structure setup
// 2. Global, shell and mock-ctl flags
// 3. Handler assignment
// 4. Flag and config file validation in PersistentPreRunE
package main

import (
	"os"

	"github.com/concave-dev/spp/cmd/sppctl/commands"
	"github.com/concave-dev/spp/cmd/sppctl/config"
	"github.com/concave-dev/spp/cmd/sppctl/handlers"
)

func init() {
	// Get root command from commands package
	rootCmd := commands.RootCmd

	// Set version and validation
	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	// Setup all command structures
	commands.SetupCommands()

	// Setup flags
	commands.SetupGlobalFlags(rootCmd, &config.Global.APIAddr, &config.Global.LogLevel,
		&config.Global.Timeout, &config.Global.HistoryFile, &config.Global.ConfigFile,
		&config.Global.MaxSecondaryID)
	commands.SetupShellFlags(rootCmd, &config.Shell.TopoSize, &config.Shell.NoPrompt)
	commands.SetupMockCtlFlags(commands.GetMockCtlCommand(),
		&config.MockCtl.Listen, &config.MockCtl.Secondaries)

	// Setup command handlers
	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers() {
	statusCmd, priCmd, secCmd, playbackCmd := commands.GetProcessCommands()

	commands.RootCmd.RunE = handlers.HandleShell
	statusCmd.RunE = handlers.HandleStatus
	priCmd.RunE = handlers.HandlePri
	secCmd.RunE = handlers.HandleSec
	playbackCmd.RunE = handlers.HandlePlayback
	commands.GetMockCtlCommand().RunE = handlers.HandleMockCtl
}

// main is the main entry point
func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
