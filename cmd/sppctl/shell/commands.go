package shell

import (
	"context"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/concave-dev/spp/cmd/sppctl/display"
	"github.com/concave-dev/spp/cmd/sppctl/dispatch"
	"github.com/concave-dev/spp/cmd/sppctl/utils"
	"github.com/concave-dev/spp/internal/cmderr"
	"github.com/concave-dev/spp/internal/logging"
	"github.com/concave-dev/spp/internal/validate"
	"github.com/dustin/go-humanize"
)

const farewell = "Thank you for using Soft Patch Panel"

// commandTable maps every command name to its handler. Lookups are exact.
func (s *Session) commandTable() map[string]commandFunc {
	return map[string]commandFunc{
		"status":        s.doStatus,
		"pri":           s.doPri,
		"sec":           s.doSec,
		"record":        s.doRecord,
		"playback":      s.doPlayback,
		"bye":           s.doBye,
		"exit":          s.doExit,
		"history":       s.doHistory,
		"redo":          s.doRedo,
		"topo_subgraph": s.doTopoSubgraph,
		"topo_resize":   s.doTopoResize,
		"inspect":       s.doInspect,
		"pwd":           s.doPwd,
		"cd":            s.doCd,
		"ls":            s.doLs,
		"cat":           s.doCat,
		"mkdir":         s.doMkdir,
		"help":          s.doHelp,
		"?":             s.doHelp,
	}
}

// CommandNames returns the names of all commands in sorted order.
func (s *Session) CommandNames() []string {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (s *Session) doHelp(_ context.Context, _ string) (bool, error) {
	s.println("Documented commands:")
	var names []string
	for _, name := range s.CommandNames() {
		if name != "?" {
			names = append(names, name)
		}
	}
	s.println("%s", strings.Join(names, "  "))
	return false, nil
}

// refreshMembers replaces the known secondaries with those in procs.
func (s *Session) refreshMembers(procs []display.Process) {
	s.members.Set(dispatch.SecondaryIDs(procs))
}

func (s *Session) doStatus(ctx context.Context, _ string) (bool, error) {
	procs, err := s.engine.Processes(ctx)
	if err != nil || procs == nil {
		return false, err
	}
	display.RenderProcesses(s.out, procs)
	s.refreshMembers(procs)
	return false, nil
}

// doPri accepts "pri;status", "pri ;status" and "pri status".
func (s *Session) doPri(ctx context.Context, arg string) (bool, error) {
	cmd := strings.TrimSpace(strings.TrimPrefix(utils.CleanCommand(arg), ";"))
	if !slices.Contains(validate.PrimaryCommands, cmd) {
		return false, cmderr.Validation("Invalid pri command: '%s'", cmd)
	}
	return false, s.engine.Primary(ctx, cmd)
}

// doSec runs "sec <id>;<command>".
func (s *Session) doSec(ctx context.Context, arg string) (bool, error) {
	idStr, cmd, ok := strings.Cut(utils.CleanCommand(arg), ";")
	if !ok {
		return false, cmderr.Validation("'sec' requires an ID and ';' before command.")
	}

	idStr = strings.TrimSpace(idStr)
	id, err := strconv.Atoi(idStr)
	if err != nil || strings.HasPrefix(idStr, "+") || strings.HasPrefix(idStr, "-") {
		return false, cmderr.Validation("Invalid secondary ID '%s'.", idStr)
	}
	if err := validate.ValidateSecondaryID(id, s.maxSecondaryID); err != nil {
		return false, cmderr.Resource("%v", err)
	}
	return false, s.engine.Secondary(ctx, id, cmd)
}

func (s *Session) doRecord(_ context.Context, arg string) (bool, error) {
	return false, s.recorder.Start(strings.TrimSpace(arg))
}

func (s *Session) doPlayback(_ context.Context, arg string) (bool, error) {
	return false, s.recorder.Play(strings.TrimSpace(arg), s.queue)
}

// closeRecording stops the recorder and tells the operator when a file was open.
func (s *Session) closeRecording() {
	if s.recorder.Path() == "" {
		return
	}
	s.println("closing file")
	if err := s.recorder.Stop(); err != nil {
		logging.Error("%v", err)
	}
}

// terminateSecondaries refreshes the known secondaries, when the control API
// answers, and terminates all of them.
func (s *Session) terminateSecondaries(ctx context.Context) {
	if procs, err := s.engine.Processes(ctx); err == nil && procs != nil {
		s.refreshMembers(procs)
	}
	n := s.engine.TerminateSecondaries(ctx, s.members)
	logging.Info("Sent termination to %d secondaries", n)
}

// doBye runs "bye sec", "bye all" or a plain "bye".
func (s *Session) doBye(ctx context.Context, arg string) (bool, error) {
	switch strings.TrimSpace(arg) {
	case "sec":
		s.terminateSecondaries(ctx)
		return false, nil
	case "all":
		s.println("Closing secondary ...")
		s.terminateSecondaries(ctx)
		s.println("Closing primary ...")
		return false, s.engine.Primary(ctx, "exit")
	case "":
		s.println(farewell)
		s.closeRecording()
		return true, nil
	default:
		return false, cmderr.Validation("Invalid bye command: '%s'", arg)
	}
}

func (s *Session) doExit(_ context.Context, _ string) (bool, error) {
	s.closeRecording()
	s.println(farewell)
	return true, nil
}

func (s *Session) doHistory(_ context.Context, _ string) (bool, error) {
	entries := s.history.Entries()
	width := len(strconv.Itoa(len(entries)))
	for i, line := range entries {
		s.println("  %*d  %s", width, i+1, line)
	}
	return false, nil
}

// doRedo runs history entry n through the command table again. The rerun
// line is not recorded.
func (s *Session) doRedo(ctx context.Context, arg string) (bool, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return false, cmderr.Validation("Invalid history index '%s'.", arg)
	}
	line, ok := s.history.Entry(n)
	if !ok {
		return false, cmderr.Resource("No history entry %d.", n)
	}
	s.println("%s", line)
	return s.run(ctx, line), nil
}

func (s *Session) doTopoSubgraph(_ context.Context, arg string) (bool, error) {
	cleaned := strings.Join(strings.Fields(arg), " ")
	if cleaned == "" {
		if s.topo.Len() == 0 {
			s.println("No subgraph.")
			return false, nil
		}
		var lines []string
		for label, members := range s.topo.All() {
			lines = append(lines, fmt.Sprintf("label: %s\tsubgraph: \"%s\"", label, members))
		}
		slices.Sort(lines)
		for _, line := range lines {
			s.println("%s", line)
		}
		return false, nil
	}

	tokens := strings.Split(cleaned, " ")
	switch tokens[0] {
	case "add":
		if len(tokens) != 3 {
			return false, cmderr.Validation("Invalid syntax '%s'!", cleaned)
		}
		if _, err := s.topo.Add(tokens[1], tokens[2]); err != nil {
			return false, err
		}
		s.println("Add subgraph '%s'", tokens[1])
	case "del", "delete", "remove":
		if len(tokens) != 2 {
			return false, cmderr.Validation("Invalid syntax '%s'!", cleaned)
		}
		if err := s.topo.Remove(tokens[1]); err != nil {
			return false, err
		}
		s.println("Delete subgraph '%s'", tokens[1])
	default:
		return false, cmderr.Validation("Invalid subcommand '%s'!", tokens[0])
	}
	return false, nil
}

// doTopoResize shows or sets the topology display size. The size is given as
// a percentage ("60%") or a ratio ("0.6").
func (s *Session) doTopoResize(_ context.Context, arg string) (bool, error) {
	arg = strings.TrimSpace(arg)
	switch {
	case arg == "":
	case strings.Contains(arg, "%"):
		if !utils.IsPercent(arg) {
			return false, cmderr.Validation("Invalid size '%s'.", arg)
		}
		s.topoSize = arg
	default:
		ratio, err := strconv.ParseFloat(arg, 64)
		if err != nil || ratio <= 0 || math.IsInf(ratio, 0) {
			return false, cmderr.Validation("Invalid size '%s'.", arg)
		}
		percent := math.Round(ratio*100*100) / 100
		s.topoSize = strconv.FormatFloat(percent, 'f', -1, 64) + "%"
	}
	s.println("%s", s.topoSize)
	return false, nil
}

func (s *Session) doInspect(_ context.Context, _ string) (bool, error) {
	recording := "off"
	if path := s.recorder.Path(); path != "" {
		recording = path
		if fi, err := os.Stat(path); err == nil {
			recording = fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(fi.Size())))
		}
	}

	s.println("recording:   %s", recording)
	s.println("subgraphs:   %d", s.topo.Len())
	s.println("topo_size:   %s", s.topoSize)
	s.println("secondaries: %v", s.members.IDs())
	s.println("pending:     %d", s.queue.Len())
	s.println("history:     %d", len(s.history.Entries()))
	return false, nil
}
