// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package cmd holds the pieces shared by the arb commands.
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/juju/cmd/v3"
	"github.com/juju/loggo"

	"github.com/dconnet/AgilityBook-sub002/version"
)

const (
	// LoggingConfigEnvKey holds the default logging configuration of
	// the arb commands.
	LoggingConfigEnvKey = "ARB_LOGGING_CONFIG"

	// StartupLoggingConfigEnvKey configures logging before any command
	// line is parsed.
	StartupLoggingConfigEnvKey = "ARB_STARTUP_LOGGING_CONFIG"
)

func init() {
	// An empty configuration leaves the loggers alone.
	err := loggo.ConfigureLoggers(os.Getenv(StartupLoggingConfigEnvKey))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR parsing %s: %s\n\n", StartupLoggingConfigEnvKey, err)
	}
}

var logger = loggo.GetLogger("arb.cmd")

// NewSuperCommand is like cmd.NewSuperCommand but
// - the default logging configuration is taken from the environment;
// - the version is the program version;
// - the command logs a message when a command runs.
func NewSuperCommand(p cmd.SuperCommandParams) *cmd.SuperCommand {
	p.Log = &cmd.Log{
		DefaultConfig: os.Getenv(LoggingConfigEnvKey),
	}
	p.Version = version.Program.String()
	p.NotifyRun = runNotifier
	return cmd.NewSuperCommand(p)
}

func runNotifier(name string) {
	logger.Infof("running %s [%s book %s %s %s]",
		name, version.Program, version.Current, runtime.Compiler, runtime.Version())
}
