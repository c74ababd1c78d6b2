package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/concave-dev/spp/cmd/sppctl/utils"
	"github.com/concave-dev/spp/internal/logging"
	"github.com/spf13/cobra"
)

// runLine executes one controller line, then any recipe lines it queued.
func runLine(line string) error {
	utils.SetupLogging()
	logging.Debug("Running '%s'", line)

	session := newSession(os.Stdout, "")
	defer session.Close()

	ctx := context.Background()
	if !session.Execute(ctx, line) {
		session.Drain(ctx)
	}
	return nil
}

// HandleStatus handles "sppctl status".
func HandleStatus(cmd *cobra.Command, args []string) error {
	return runLine("status")
}

// HandlePri handles "sppctl pri <command>".
func HandlePri(cmd *cobra.Command, args []string) error {
	return runLine("pri;" + args[0])
}

// HandleSec handles "sppctl sec <id> <command> [args...]" and the shell form
// "sppctl sec '<id>;<command>'".
func HandleSec(cmd *cobra.Command, args []string) error {
	line, err := SecLine(args)
	if err != nil {
		return err
	}
	return runLine(line)
}

// SecLine builds the controller line of a secondary command from CLI args.
func SecLine(args []string) (string, error) {
	if len(args) == 1 {
		if !strings.Contains(args[0], ";") {
			return "", fmt.Errorf("'sec' requires an ID and a command")
		}
		return "sec " + args[0], nil
	}
	return fmt.Sprintf("sec %s;%s", args[0], strings.Join(args[1:], " ")), nil
}

// HandlePlayback handles "sppctl playback <recipe>".
func HandlePlayback(cmd *cobra.Command, args []string) error {
	return runLine("playback " + args[0])
}
