package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/concave-dev/spp/cmd/sppctl/config"
	"github.com/concave-dev/spp/cmd/sppctl/shell"
	"github.com/concave-dev/spp/cmd/sppctl/utils"
	defaults "github.com/concave-dev/spp/internal/config"
	"github.com/concave-dev/spp/internal/logging"
	"github.com/spf13/cobra"
)

const intro = "Welcome to the spp.   Type help or ? to list commands.\n"

// HandleShell runs the interactive controller until "bye", "exit" or end of
// input. Without a terminal on stdin, or with --no-prompt, lines
// are read plainly from stdin.
func HandleShell(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	session := newSession(os.Stdout, config.Global.HistoryFile)

	var reader shell.LineReader
	if config.Shell.NoPrompt || !readline.IsTerminal(int(os.Stdin.Fd())) {
		reader = shell.NewScannerReader(os.Stdin)
	} else {
		rl, err := session.NewTerminal(defaults.DefaultPrompt, config.Global.HistoryFile)
		if err != nil {
			logging.Error("Failed to open terminal: %v", err)
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		reader = rl
		fmt.Print(intro)
	}
	defer reader.Close()

	if err := session.Run(context.Background(), reader); err != nil {
		logging.Error("Shell stopped: %v", err)
		return err
	}
	return nil
}
