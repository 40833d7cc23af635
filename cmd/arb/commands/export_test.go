// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

var (
	NewValidateCommand = newValidateCommand
	NewShowCommand     = newShowCommand
	NewUpdateCommand   = newUpdateCommand
	NewDefaultCommand  = newDefaultCommand
)
