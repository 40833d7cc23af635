// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/notify"
)

const validateDoc = `
Load a record book and list every problem found in it. Entries that
cannot be read are reported; the command fails if there are any.
`

func newValidateCommand() cmd.Command {
	return &validateCommand{}
}

type validateCommand struct {
	bookCommand
}

// Info implements Command.
func (c *validateCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "validate",
		Args:    "<book file>",
		Purpose: "Check a record book.",
		Doc:     validateDoc,
	}
}

// Run implements Command.
func (c *validateCommand) Run(ctx *cmd.Context) error {
	log := &notify.ErrorLog{Continue: true}
	b, err := c.loadBook(ctx, log)
	messages := log.Messages()
	for _, msg := range messages {
		fmt.Fprintln(ctx.Stdout, msg)
	}
	if err != nil {
		return errors.Trace(err)
	}
	fmt.Fprintf(ctx.Stdout, "%s: configuration version %d, %d dog(s), %d calendar and %d training entries\n",
		c.path, b.Config.Version, len(b.Dogs), len(b.Calendar), len(b.Training))
	if len(messages) > 0 {
		return errors.Errorf("%d problem(s) found in %s", len(messages), c.path)
	}
	return nil
}
