// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd_test

import (
	"strings"

	"github.com/juju/cmd/v3/cmdtesting"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	arbcmd "github.com/dconnet/AgilityBook-sub002/cmd"
)

type confirmSuite struct{}

var _ = gc.Suite(&confirmSuite{})

func (*confirmSuite) TestAnswers(c *gc.C) {
	for i, test := range []struct {
		input string
		yes   bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes ", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	} {
		c.Logf("test %d: %q", i, test.input)
		ctx := cmdtesting.Context(c)
		ctx.Stdin = strings.NewReader(test.input)
		yes, err := arbcmd.NewPrompter(ctx).ConfirmYes("Delete it?")
		c.Assert(err, jc.ErrorIsNil)
		c.Check(yes, gc.Equals, test.yes)
		c.Check(cmdtesting.Stderr(ctx), jc.HasPrefix, "Delete it?\nContinue? (y/N): ")
	}
}

func (*confirmSuite) TestReadsOneAnswerPerQuestion(c *gc.C) {
	ctx := cmdtesting.Context(c)
	ctx.Stdin = strings.NewReader("y\nn\n")
	p := arbcmd.NewPrompter(ctx)

	yes, err := p.ConfirmYes("first")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(yes, jc.IsTrue)
	yes, err = p.ConfirmYes("second")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(yes, jc.IsFalse)
}
