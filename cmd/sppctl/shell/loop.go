package shell

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/concave-dev/spp/internal/logging"
	"github.com/concave-dev/spp/internal/validate"
)

// LineReader supplies operator input. Readline returns io.EOF at the end of
// input and readline.ErrInterrupt when the current line was abandoned.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// Run executes lines until a command stops the session or input ends. Queued
// playback lines always run before the next line is read. The recording is
// closed on every return path.
func (s *Session) Run(ctx context.Context, rd LineReader) error {
	defer func() {
		if err := s.Close(); err != nil {
			logging.Error("Failed to close recipe file: %v", err)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if line, ok := s.queue.Pop(); ok {
			if s.Execute(ctx, line) {
				return nil
			}
			continue
		}

		line, err := rd.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		s.history.Add(line)
		if s.Execute(ctx, line) {
			return nil
		}
	}
}

// NewTerminal opens a readline terminal with the given prompt and history
// file, completing command names, primary and secondary commands, subgraph
// labels and file names.
func (s *Session) NewTerminal(prompt, historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyFile,
		AutoComplete:      s.completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
}

func (s *Session) completer() *readline.PrefixCompleter {
	var priItems, secItems []readline.PrefixCompleterInterface
	for _, cmd := range validate.PrimaryCommands {
		priItems = append(priItems, readline.PcItem(cmd))
	}
	for _, cmd := range validate.SecondaryCommands {
		secItems = append(secItems, readline.PcItem(cmd))
	}

	secondaryIDs := func(string) []string {
		var ids []string
		for _, id := range s.members.IDs() {
			ids = append(ids, strconv.Itoa(id)+";")
		}
		return ids
	}
	labels := func(string) []string {
		return s.topo.Labels()
	}

	var items []readline.PrefixCompleterInterface
	for _, name := range s.CommandNames() {
		switch name {
		case "pri":
			items = append(items, readline.PcItem("pri", priItems...))
		case "sec":
			items = append(items, readline.PcItem("sec", readline.PcItemDynamic(secondaryIDs, secItems...)))
		case "bye":
			items = append(items, readline.PcItem("bye", readline.PcItem("sec"), readline.PcItem("all")))
		case "topo_subgraph":
			items = append(items, readline.PcItem("topo_subgraph",
				readline.PcItem("add"),
				readline.PcItem("del", readline.PcItemDynamic(labels))))
		case "record", "playback", "cat", "ls", "cd":
			items = append(items, readline.PcItem(name, readline.PcItemDynamic(listFiles)))
		default:
			items = append(items, readline.PcItem(name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}

// listFiles returns the entries of the current directory.
func listFiles(string) []string {
	entries, err := os.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// ScannerReader reads lines from a non-interactive source such as a pipe.
type ScannerReader struct {
	scanner *bufio.Scanner
}

// NewScannerReader creates a LineReader over r.
func NewScannerReader(r io.Reader) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(r)}
}

// Readline returns the next line without its terminator.
func (r *ScannerReader) Readline() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(r.scanner.Text(), "\r"), nil
}

// Close does nothing; the underlying reader is owned by the caller.
func (r *ScannerReader) Close() error {
	return nil
}
