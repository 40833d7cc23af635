// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package commands implements the arb command line.
package commands

import (
	"os"

	"github.com/juju/clock"
	"github.com/juju/cmd/v3"
	"github.com/juju/loggo"

	arbcmd "github.com/dconnet/AgilityBook-sub002/cmd"
)

var logger = loggo.GetLogger("arb.cmd.arb")

const arbDoc = `
arb checks and maintains Agility Record Book files.

A record book holds the trials, runs and titles of your dogs together
with the configuration of the venues they compete in. New releases ship
newer configurations; "arb update" brings a book up to date with one.

The settings file named by $ARB_SETTINGS may set:

    confirm-deletes: ask | yes | no
    format: yaml | json | tabular
`

// NewArbCommand returns the arb super command. Saved books are stamped
// with the time read from clk.
func NewArbCommand(settings Settings, clk clock.Clock) cmd.Command {
	arb := arbcmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:    "arb",
		Doc:     arbDoc,
		Purpose: "Check and maintain Agility Record Book files.",
	})
	arb.Register(newValidateCommand())
	arb.Register(newShowCommand(settings))
	arb.Register(newUpdateCommand(settings, clk))
	arb.Register(newDefaultCommand(clk))
	return arb
}

// Main runs the arb command line and returns the exit code.
func Main(args []string) int {
	ctx, err := cmd.DefaultContext()
	if err != nil {
		cmd.WriteError(os.Stderr, err)
		return 2
	}
	settings, err := LoadSettings(os.Getenv(SettingsEnvKey))
	if err != nil {
		cmd.WriteError(ctx.Stderr, err)
		return 2
	}
	return cmd.Main(NewArbCommand(settings, clock.WallClock), ctx, args[1:])
}
