package commands

import (
	"github.com/spf13/cobra"
)

// Status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show processes attached to spp-ctl",
	Long:  "Show whether the primary is running and list the secondary processes.",
	Args:  cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// Primary command
var priCmd = &cobra.Command{
	Use:   "pri <status|clear|exit>",
	Short: "Send a command to the primary process",
	Long: `Send a command to the primary process.

  status  show statistics of physical and ring ports
  clear   reset port statistics
  exit    deprecated, does nothing`,
	Example: `  sppctl pri status
  sppctl pri clear`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"status", "clear", "exit"},
	// RunE will be set by the main package that imports this
}

// Secondary command
var secCmd = &cobra.Command{
	Use:   "sec <id> <command> [args...]",
	Short: "Send a command to a secondary process",
	Long: `Send a command to the secondary process with client id <id>.

  status                 show forwarding state and ports
  add <port>             add a port (ring, vhost, pcap, nullpmd)
  del <port>             delete a port
  forward | stop         start or stop forwarding
  patch <src> <dst>      forward packets from src to dst
  patch reset            remove all patches`,
	Example: `  sppctl sec 1 status
  sppctl sec 1 add ring:0
  sppctl sec 1 patch phy:0 ring:0
  sppctl sec "1;forward"`,
	Args: cobra.MinimumNArgs(1),
	// RunE will be set by the main package that imports this
}

// Playback command
var playbackCmd = &cobra.Command{
	Use:   "playback <recipe>",
	Short: "Run the commands of a recipe file",
	Long: `Run every command of a recipe file recorded with the interactive
"record" command, echoing each command before it runs.`,
	Args: cobra.ExactArgs(1),
	// RunE will be set by the main package that imports this
}

// Mock control API command
var mockCtlCmd = &cobra.Command{
	Use:    "mock-ctl",
	Short:  "Serve a fake spp-ctl for trying the controller",
	Hidden: true,
	Args:   cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// GetProcessCommands returns the status, pri, sec and playback commands for
// handler assignment
func GetProcessCommands() (*cobra.Command, *cobra.Command, *cobra.Command, *cobra.Command) {
	return statusCmd, priCmd, secCmd, playbackCmd
}

// GetMockCtlCommand returns the mock-ctl command for handler and flag setup
func GetMockCtlCommand() *cobra.Command {
	return mockCtlCmd
}

// SetupMockCtlFlags configures flags of the mock-ctl command
func SetupMockCtlFlags(cmd *cobra.Command, listenPtr *string, secondariesPtr *[]int) {
	cmd.Flags().StringVar(listenPtr, "listen", "127.0.0.1:7777", "Address to serve the fake spp-ctl on")
	cmd.Flags().IntSliceVar(secondariesPtr, "secondaries", []int{1, 2}, "Client ids of the fake secondaries")
}
