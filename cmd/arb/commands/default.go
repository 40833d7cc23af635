// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"

	"github.com/juju/clock"
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/dconnet/AgilityBook-sub002/book"
	"github.com/dconnet/AgilityBook-sub002/config/defaults"
)

const defaultDoc = `
Write an empty record book holding the configuration shipped with arb.
The book is written to standard output unless --output is given.
`

func newDefaultCommand(clk clock.Clock) cmd.Command {
	return &defaultCommand{clock: clk}
}

type defaultCommand struct {
	cmd.CommandBase
	clock  clock.Clock
	output string
}

// Info implements Command.
func (c *defaultCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "default",
		Purpose: "Write an empty record book.",
		Doc:     defaultDoc,
	}
}

// SetFlags implements Command.
func (c *defaultCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Write the book to this file")
	f.StringVar(&c.output, "output", "", "")
}

// Init implements Command.
func (c *defaultCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements Command.
func (c *defaultCommand) Run(ctx *cmd.Context) error {
	var b book.Book
	if err := b.Default(defaults.Handler{}, loc); err != nil {
		return errors.Trace(err)
	}
	doc := b.Save(c.clock)
	if c.output == "" {
		return errors.Trace(doc.Write(ctx.Stdout))
	}
	if err := doc.SaveFile(ctx.AbsPath(c.output)); err != nil {
		return errors.Trace(err)
	}
	fmt.Fprintf(ctx.Stderr, "wrote %s\n", c.output)
	return nil
}
