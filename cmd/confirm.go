// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
)

// Prompter asks yes/no questions on a command's standard streams.
type Prompter struct {
	ctx    *cmd.Context
	reader *bufio.Reader
}

// NewPrompter returns a Prompter reading answers from ctx.Stdin.
func NewPrompter(ctx *cmd.Context) *Prompter {
	return &Prompter{ctx: ctx, reader: bufio.NewReader(ctx.Stdin)}
}

// ConfirmYes writes question to stderr and reports whether the answer
// read back was yes. Running out of input counts as no.
func (p *Prompter) ConfirmYes(question string) (bool, error) {
	fmt.Fprintf(p.ctx.Stderr, "%s\nContinue? (y/N): ", question)
	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Annotate(err, "reading answer")
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	if err == io.EOF {
		fmt.Fprintln(p.ctx.Stderr)
	}
	return false, nil
}
