// Package commands provides the command tree of sppctl.
//
// Running sppctl without a subcommand opens the interactive controller. The
// subcommands run a single controller line and exit, which is convenient for
// scripts:
//
//   - status: processes attached to spp-ctl
//   - pri: primary commands (status, clear)
//   - sec: secondary commands (status, add, del, forward, stop, patch)
//   - playback: run a recipe file
//   - mock-ctl: serve a fake spp-ctl for trying the controller (hidden)
package commands

import (
	defaults "github.com/concave-dev/spp/internal/config"
	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "sppctl",
	Short: "Controller for Soft Patch Panel",
	Long: `sppctl is the controller of Soft Patch Panel (SPP). It talks to the
spp-ctl REST server to inspect and configure the primary process and the
secondary forwarding processes (nfv).

Without a subcommand sppctl starts an interactive shell with line editing,
history, command recording and playback.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	Example: `  # Start the interactive shell
  sppctl

  # Connect to a remote spp-ctl
  sppctl --api=192.168.1.100:7777

  # Show attached processes
  sppctl status

  # Show port statistics of the primary
  sppctl pri status

  # Patch two ports of secondary 1
  sppctl sec 1 patch phy:0 ring:0

  # Replay a recipe
  sppctl playback vm1.rcp`,
	// RunE will be set by the main package that imports this
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(priCmd)
	RootCmd.AddCommand(secCmd)
	RootCmd.AddCommand(playbackCmd)
	RootCmd.AddCommand(mockCtlCmd)
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, apiAddrPtr *string, logLevelPtr *string,
	timeoutPtr *int, historyFilePtr *string, configFilePtr *string, maxSecondaryPtr *int) {
	rootCmd.PersistentFlags().StringVar(apiAddrPtr, "api", defaults.DefaultAPIAddr,
		"spp-ctl REST server address")
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", defaults.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().IntVar(timeoutPtr, "timeout", defaults.DefaultTimeout,
		"Request timeout in seconds")
	rootCmd.PersistentFlags().StringVar(historyFilePtr, "history-file", defaults.DefaultHistoryFile,
		"Command history file of the interactive shell")
	rootCmd.PersistentFlags().StringVar(configFilePtr, "config", "",
		"YAML file with default values for these flags")
	rootCmd.PersistentFlags().IntVar(maxSecondaryPtr, "max-secondary", defaults.DefaultMaxSecondaryID,
		"Largest secondary client id accepted by 'sec'")
}

// SetupShellFlags configures flags of the interactive shell
func SetupShellFlags(rootCmd *cobra.Command, topoSizePtr *string, noPromptPtr *bool) {
	rootCmd.Flags().StringVar(topoSizePtr, "topo-size", defaults.DefaultTopoSize,
		"Initial topology display size, percentage or ratio")
	rootCmd.Flags().BoolVar(noPromptPtr, "no-prompt", false,
		"Read commands from stdin without line editing")
}
