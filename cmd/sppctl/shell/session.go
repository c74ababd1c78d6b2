// Package shell implements the interactive sppctl session.
//
// A Session owns all state of one controller run: the subgraph registry, the
// recorder and its playback queue, the command history, the display size and
// the known secondaries. Lines are executed one at a time through a static
// command table; nothing typed by the operator is ever evaluated beyond a
// lookup in that table.
//
// Errors never end a session. Every command error is turned into at most one
// line of output at the command boundary, see cmderr.Message. Only "bye",
// "exit" and the end of input stop the loop.
package shell

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/concave-dev/spp/cmd/sppctl/client"
	"github.com/concave-dev/spp/cmd/sppctl/dispatch"
	"github.com/concave-dev/spp/cmd/sppctl/utils"
	"github.com/concave-dev/spp/internal/cmderr"
	defaults "github.com/concave-dev/spp/internal/config"
	"github.com/concave-dev/spp/internal/logging"
	"github.com/concave-dev/spp/internal/recorder"
	"github.com/concave-dev/spp/internal/topo"
)

// commandFunc runs one command with the argument text that followed its name.
// It returns true when the session must stop.
type commandFunc func(ctx context.Context, arg string) (bool, error)

// Options configures a Session.
type Options struct {
	API            client.ControlAPI
	Out            io.Writer
	TopoSize       string
	MaxSecondaryID int
	HistoryFile    string // previous entries are loaded for "history" and "redo"
}

// Session is one controller run.
type Session struct {
	engine   *dispatch.Engine
	members  *dispatch.LiveMembership
	topo     *topo.Registry
	recorder *recorder.Recorder
	queue    *recorder.Queue
	history  *History
	out      io.Writer

	topoSize       string
	maxSecondaryID int

	commands map[string]commandFunc
}

// NewSession creates a session from opts, filling unset options with defaults.
func NewSession(opts Options) *Session {
	if opts.TopoSize == "" {
		opts.TopoSize = defaults.DefaultTopoSize
	}
	if opts.MaxSecondaryID <= 0 {
		opts.MaxSecondaryID = defaults.DefaultMaxSecondaryID
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	s := &Session{
		engine:         dispatch.NewEngine(opts.API, opts.Out),
		members:        dispatch.NewLiveMembership(),
		topo:           topo.NewRegistry(),
		recorder:       recorder.New(),
		queue:          &recorder.Queue{},
		history:        NewHistory(),
		out:            opts.Out,
		topoSize:       opts.TopoSize,
		maxSecondaryID: opts.MaxSecondaryID,
	}
	s.commands = s.commandTable()

	if opts.HistoryFile != "" {
		if err := s.history.Load(opts.HistoryFile); err != nil {
			logging.Debug("No previous history: %v", err)
		}
	}
	return s
}

// Topology returns the subgraph registry of the session.
func (s *Session) Topology() *topo.Registry {
	return s.topo
}

// Members returns the secondaries known to the session.
func (s *Session) Members() *dispatch.LiveMembership {
	return s.members
}

// History returns the command history of the session.
func (s *Session) History() *History {
	return s.history
}

// Close stops any recording. It is safe to call more than once.
func (s *Session) Close() error {
	return s.recorder.Stop()
}

func (s *Session) println(format string, v ...any) {
	fmt.Fprintf(s.out, format+"\n", v...)
}

// Execute records line when a recording is active and runs it. It returns
// true when the session must stop.
func (s *Session) Execute(ctx context.Context, line string) bool {
	if _, err := s.recorder.Capture(line); err != nil {
		logging.Error("%v", err)
	}
	return s.run(ctx, line)
}

// Drain executes queued playback lines until the queue is empty or a line
// stops the session.
func (s *Session) Drain(ctx context.Context) bool {
	for ctx.Err() == nil {
		line, ok := s.queue.Pop()
		if !ok {
			return false
		}
		if s.Execute(ctx, line) {
			return true
		}
	}
	return false
}

// run looks line up in the command table without recording it.
func (s *Session) run(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	name, arg := utils.SplitCommand(line)
	fn, ok := s.commands[name]
	if !ok {
		if recorder.IsCommentLine(line) {
			s.println("%s", line)
		} else {
			s.println("*** Unknown syntax: %s", line)
		}
		return false
	}

	stop, err := fn(ctx, arg)
	if err != nil {
		logging.Debug("Command '%s' failed: %v", name, err)
		if msg := cmderr.Message(err); msg != "" {
			s.println("%s", msg)
		}
	}
	return stop
}
