package shell

import (
	"context"
	"os"
	"strings"
)

// Filesystem helpers for locating and checking recipe files from the prompt.

func (s *Session) doPwd(_ context.Context, _ string) (bool, error) {
	wd, err := os.Getwd()
	if err != nil {
		return false, err
	}
	s.println("%s", wd)
	return false, nil
}

func (s *Session) doCd(_ context.Context, arg string) (bool, error) {
	dir := strings.TrimSpace(arg)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return false, err
		}
		dir = home
	}
	if err := os.Chdir(dir); err != nil {
		s.println("No such a directory.")
		return false, nil
	}
	return s.doPwd(context.Background(), "")
}

func (s *Session) doLs(_ context.Context, arg string) (bool, error) {
	dir := strings.TrimSpace(arg)
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.println("No such a directory.")
		return false, nil
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		s.println("%s", name)
	}
	return false, nil
}

func (s *Session) doCat(_ context.Context, arg string) (bool, error) {
	path := strings.TrimSpace(arg)
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		s.println("No such a file.")
		return false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	s.out.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		s.println("")
	}
	return false, nil
}

func (s *Session) doMkdir(_ context.Context, arg string) (bool, error) {
	dir := strings.TrimSpace(arg)
	if dir == "" {
		s.println("Directory name is required!")
		return false, nil
	}
	return false, os.MkdirAll(dir, 0o755)
}
