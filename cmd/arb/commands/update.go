// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"

	"github.com/juju/clock"
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	arbcmd "github.com/dconnet/AgilityBook-sub002/cmd"
	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/config/defaults"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
	"github.com/dconnet/AgilityBook-sub002/notify"
	"github.com/dconnet/AgilityBook-sub002/upgrades"
)

const updateDoc = `
Merge a newer configuration into a record book. The configuration
actions are applied to the book first, then the venues, faults and
other points are merged. Runs the new configuration cannot score are
removed.

Before records are deleted you are asked whether to go on; --yes and
--no answer for you. Refusing stops the update and nothing is saved.

The configuration file may hold a Configuration element or a whole
default configuration document. By default the book is rewritten in
place.
`

func newUpdateCommand(settings Settings, clk clock.Clock) cmd.Command {
	return &updateCommand{confirm: settings.ConfirmDeletes, clock: clk}
}

type updateCommand struct {
	bookCommand
	clock clock.Clock

	configPath string
	output     string
	assumeYes  bool
	assumeNo   bool
	dryRun     bool

	// confirm answers the delete questions.
	confirm string
}

// Info implements Command.
func (c *updateCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "update",
		Args:    "<book file>",
		Purpose: "Update a record book to a newer configuration.",
		Doc:     updateDoc,
	}
}

// SetFlags implements Command.
func (c *updateCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "The configuration to merge")
	f.StringVar(&c.output, "o", "", "Write the updated book to this file")
	f.StringVar(&c.output, "output", "", "")
	f.BoolVar(&c.assumeYes, "yes", false, "Delete records without asking")
	f.BoolVar(&c.assumeNo, "no", false, "Refuse every deletion")
	f.BoolVar(&c.dryRun, "dry-run", false, "Report the changes without saving them")
}

// Init implements Command.
func (c *updateCommand) Init(args []string) error {
	if c.configPath == "" {
		return errors.New("no configuration specified, use --config")
	}
	if c.assumeYes && c.assumeNo {
		return errors.New("--yes and --no cannot be used together")
	}
	switch {
	case c.assumeYes:
		c.confirm = ConfirmYes
	case c.assumeNo:
		c.confirm = ConfirmNo
	}
	return c.bookCommand.Init(args)
}

// Run implements Command.
func (c *updateCommand) Run(ctx *cmd.Context) error {
	answers := &deleteAnswers{mode: c.confirm, prompter: arbcmd.NewPrompter(ctx)}

	log := &notify.ErrorLog{Continue: c.confirm != ConfirmNo}
	b, err := c.loadBook(ctx, log)
	printMessages(ctx, log)
	if err != nil {
		return errors.Trace(err)
	}

	var newConfig config.Config
	if err := newConfig.Default(configFile(ctx.AbsPath(c.configPath)), loc); err != nil {
		return errors.Annotatef(err, "reading %s", c.configPath)
	}

	uctx := upgrades.NewContext(loc, notify.NewProtocol(answers))
	changed, err := b.Update(0, &newConfig, uctx)
	if err != nil {
		return errors.Trace(err)
	}
	fmt.Fprint(ctx.Stdout, uctx.Info.String())
	if !uctx.CanContinue() {
		return errors.New("update stopped: a deletion was refused, nothing saved")
	}
	if !changed {
		fmt.Fprintf(ctx.Stdout, "%s is up to date\n", c.path)
		return nil
	}
	if c.dryRun {
		fmt.Fprintf(ctx.Stdout, "%s not saved (dry run)\n", c.path)
		return nil
	}
	out := c.output
	if out == "" {
		out = c.path
	}
	if err := b.Save(c.clock).SaveFile(ctx.AbsPath(out)); err != nil {
		return errors.Trace(err)
	}
	fmt.Fprintf(ctx.Stdout, "%s updated to configuration version %d\n", out, b.Config.Version)
	return nil
}

// configFile is a config.ConfigHandler reading the configuration from a
// file.
type configFile string

var _ config.ConfigHandler = configFile("")

// LoadDefaultConfig is part of the config.ConfigHandler interface.
func (f configFile) LoadDefaultConfig() (*element.Node, error) {
	return element.ParseFile(string(f))
}

// LoadDTD is part of the config.ConfigHandler interface.
func (f configFile) LoadDTD() ([]byte, error) {
	return defaults.Handler{}.LoadDTD()
}

// deleteAnswers answers the questions asked before records are deleted.
type deleteAnswers struct {
	mode     string
	prompter *arbcmd.Prompter
}

var _ notify.Callback = (*deleteAnswers)(nil)

// PreDelete is part of the notify.Callback interface.
func (a *deleteAnswers) PreDelete(msg string) bool {
	switch a.mode {
	case ConfirmYes:
		return true
	case ConfirmNo:
		logger.Infof("refused: %s", msg)
		return false
	}
	ok, err := a.prompter.ConfirmYes(msg)
	if err != nil {
		logger.Errorf("%v", err)
		return false
	}
	return ok
}

// PostDelete is part of the notify.Callback interface.
func (a *deleteAnswers) PostDelete(msg string) {
	logger.Infof("deleted: %s", msg)
}
