// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"os"

	"github.com/dconnet/AgilityBook-sub002/cmd/arb/commands"
)

func main() {
	os.Exit(commands.Main(os.Args))
}
