// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package defaults provides the configuration shipped with the program.
package defaults

import (
	"bytes"
	_ "embed"

	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

var (
	//go:embed DefaultConfig.xml
	defaultConfig []byte

	//go:embed AgilityRecordBook.dtd
	dtd []byte
)

// Handler is a config.ConfigHandler backed by the embedded files.
type Handler struct{}

var _ config.ConfigHandler = Handler{}

// LoadDefaultConfig is part of the config.ConfigHandler interface.
func (Handler) LoadDefaultConfig() (*element.Node, error) {
	root, err := element.Parse(bytes.NewReader(defaultConfig))
	if err != nil {
		return nil, errors.Annotate(err, "embedded default configuration")
	}
	return root, nil
}

// LoadDTD is part of the config.ConfigHandler interface.
func (Handler) LoadDTD() ([]byte, error) {
	return append([]byte(nil), dtd...), nil
}
