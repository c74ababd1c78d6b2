package config

import (
	"fmt"
	"os"

	"github.com/concave-dev/spp/internal/logging"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// FileConfig is the layout of the optional --config YAML file. Every field is a
// default; flags given on the command line win.
type FileConfig struct {
	API            string `yaml:"api"`
	LogLevel       string `yaml:"log_level"`
	Timeout        int    `yaml:"timeout"`
	HistoryFile    string `yaml:"history_file"`
	MaxSecondaryID int    `yaml:"max_secondary_id"`
	TopoSize       string `yaml:"topo_size"`
}

// LoadFile reads and parses the YAML config file at path.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &fc, nil
}

// ApplyFile copies values from fc into the global configuration for every flag
// the operator did not set explicitly.
func ApplyFile(cmd *cobra.Command, fc *FileConfig) {
	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			return
		}
		apply()
	}

	if fc.API != "" {
		set("api", func() { Global.APIAddr = fc.API })
	}
	if fc.LogLevel != "" {
		set("log-level", func() { Global.LogLevel = fc.LogLevel })
	}
	if fc.Timeout != 0 {
		set("timeout", func() { Global.Timeout = fc.Timeout })
	}
	if fc.HistoryFile != "" {
		set("history-file", func() { Global.HistoryFile = fc.HistoryFile })
	}
	if fc.MaxSecondaryID != 0 {
		set("max-secondary", func() { Global.MaxSecondaryID = fc.MaxSecondaryID })
	}
	if fc.TopoSize != "" {
		set("topo-size", func() { Shell.TopoSize = fc.TopoSize })
	}
	logging.Debug("Applied config file defaults")
}
