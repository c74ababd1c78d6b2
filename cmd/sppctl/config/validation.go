// Package config provides configuration management for the sppctl CLI.
package config

import (
	"fmt"

	"github.com/concave-dev/spp/internal/logging"
	"github.com/concave-dev/spp/internal/validate"
	"github.com/spf13/cobra"
)

// ValidateGlobalFlags loads the config file, if any, and validates all global
// flags before running any command
func ValidateGlobalFlags(cmd *cobra.Command, args []string) error {
	if Global.ConfigFile != "" {
		fc, err := LoadFile(Global.ConfigFile)
		if err != nil {
			logging.Error("%v", err)
			return fmt.Errorf("invalid config file")
		}
		ApplyFile(cmd, fc)
	}

	if err := ValidateAPIAddress(); err != nil {
		return err
	}

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		logging.Error("Invalid log level '%s'", Global.LogLevel)
		return fmt.Errorf("invalid log level - valid: DEBUG, INFO, WARN, ERROR")
	}

	if err := validate.ValidatePositiveSeconds(Global.Timeout, "timeout"); err != nil {
		return err
	}

	if err := validate.ValidateRequiredString(Global.HistoryFile, "history file"); err != nil {
		return err
	}

	if err := validate.ValidateField(Global.MaxSecondaryID, "min=1"); err != nil {
		return fmt.Errorf("max secondary id must be at least 1")
	}

	return nil
}

// ValidateAPIAddress validates the --api flag
func ValidateAPIAddress() error {
	netAddr, err := validate.ParseAPIAddress(Global.APIAddr)
	if err != nil {
		logging.Error("Invalid API address '%s': %v", Global.APIAddr, err)
		return fmt.Errorf("invalid API address - expected format: host:port (e.g., 127.0.0.1:7777)")
	}

	// Reject unroutable 0.0.0.0 target for client connections
	if netAddr.Host == "0.0.0.0" {
		logging.Error("Unroutable API address '0.0.0.0:%d' - cannot connect to 0.0.0.0", netAddr.Port)
		return fmt.Errorf("unroutable API address - use 127.0.0.1 or a specific IP address")
	}

	return nil
}
