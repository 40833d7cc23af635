// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

// ConfigHandler supplies the configuration shipped with the program.
type ConfigHandler interface {
	// LoadDefaultConfig returns the root of a document holding the
	// default configuration.
	LoadDefaultConfig() (*element.Node, error)

	// LoadDTD returns the document type definition of record book
	// files.
	LoadDTD() ([]byte, error)
}
