// Package utils provides utility functions for the sppctl CLI.
// This file contains logging setup and Resty logger integration utilities.
package utils

import (
	"os"

	"github.com/concave-dev/spp/cmd/sppctl/config"
	"github.com/concave-dev/spp/internal/logging"
)

// RestyLogger implements resty.Logger interface and routes logs through structured logging
type RestyLogger struct{}

// Errorf routes error messages through structured logging.
func (s RestyLogger) Errorf(format string, v ...any) {
	logging.Error(format, v...)
}

// Warnf routes warning messages through structured logging.
func (s RestyLogger) Warnf(format string, v ...any) {
	logging.Warn(format, v...)
}

// Debugf routes debug messages through structured logging.
func (s RestyLogger) Debugf(format string, v ...any) {
	logging.Debug(format, v...)
}

// SetupLogging configures CLI logging behavior based on environment and config.
// DEBUG=true enables everything; otherwise --log-level applies and anything
// below ERROR stays hidden unless the operator asked for it explicitly.
func SetupLogging() {
	if os.Getenv("DEBUG") == "true" {
		logging.RestoreOutput()
		logging.SetLevel("DEBUG")
	} else if config.Global.LogLevel == "ERROR" {
		logging.SuppressOutput()
	} else {
		logging.RestoreOutput()
		logging.SetLevel(config.Global.LogLevel)
	}

	// Libraries that write to the standard logger (readline) end up in debug logs
	logging.RedirectStandardLog(logging.NewLevelWriter("DEBUG", "stdlog"))
}
