// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/book"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
	"github.com/dconnet/AgilityBook-sub002/localization"
	"github.com/dconnet/AgilityBook-sub002/notify"
)

var loc localization.Localizer = localization.English{}

// bookCommand is embedded by the commands working on one book file.
type bookCommand struct {
	cmd.CommandBase
	path string
}

// Init takes the path of the book.
func (c *bookCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("no book file specified")
	}
	c.path, args = args[0], args[1:]
	return cmd.CheckEmpty(args)
}

// loadBook reads the book, reporting problems to cb.
func (c *bookCommand) loadBook(ctx *cmd.Context, cb notify.ErrorCallback) (*book.Book, error) {
	root, err := element.ParseFile(ctx.AbsPath(c.path))
	if err != nil {
		return nil, errors.Trace(err)
	}
	b := &book.Book{}
	if err := b.Load(root, cb, loc); err != nil {
		return nil, errors.Annotatef(err, "loading %s", c.path)
	}
	return b, nil
}

// printMessages writes the problems found while loading.
func printMessages(ctx *cmd.Context, log *notify.ErrorLog) {
	for _, msg := range log.Messages() {
		fmt.Fprintf(ctx.Stderr, "WARNING %s\n", msg)
	}
}
