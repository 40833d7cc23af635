// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd_test

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/cmd/v3/cmdtesting"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	arbcmd "github.com/dconnet/AgilityBook-sub002/cmd"
	arbtesting "github.com/dconnet/AgilityBook-sub002/testing"
	"github.com/dconnet/AgilityBook-sub002/version"
)

type superCommandSuite struct {
	arbtesting.BaseSuite
}

var _ = gc.Suite(&superCommandSuite{})

func (s *superCommandSuite) TestVersion(c *gc.C) {
	super := arbcmd.NewSuperCommand(cmd.SuperCommandParams{Name: "arb"})
	ctx, err := cmdtesting.RunCommand(c, super, "version")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, version.Program.String()+"\n")
}
