// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"os"

	"github.com/juju/errors"
	"github.com/juju/schema"
	"gopkg.in/yaml.v2"
)

// SettingsEnvKey names the environment variable holding the path of
// the settings file.
const SettingsEnvKey = "ARB_SETTINGS"

// Answers to the questions asked before records are deleted.
const (
	ConfirmAsk = "ask"
	ConfirmYes = "yes"
	ConfirmNo  = "no"
)

// Settings hold the user's defaults for the arb commands.
type Settings struct {
	// ConfirmDeletes answers the questions asked before records are
	// deleted: ConfirmAsk, ConfirmYes or ConfirmNo.
	ConfirmDeletes string
	// Format is the default output format of show.
	Format string
}

// DefaultSettings are used when there is no settings file.
var DefaultSettings = Settings{
	ConfirmDeletes: ConfirmAsk,
	Format:         "yaml",
}

var settingsChecker = schema.FieldMap(
	schema.Fields{
		"confirm-deletes": schema.OneOf(
			schema.Const(ConfirmAsk), schema.Const(ConfirmYes), schema.Const(ConfirmNo)),
		"format": schema.OneOf(
			schema.Const("yaml"), schema.Const("json"), schema.Const("tabular")),
	},
	schema.Defaults{
		"confirm-deletes": DefaultSettings.ConfirmDeletes,
		"format":          DefaultSettings.Format,
	},
)

// ParseSettings reads settings from YAML. Keys that are not given keep
// their defaults; unknown keys are ignored.
func ParseSettings(data []byte) (Settings, error) {
	raw := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Settings{}, errors.Annotate(err, "parsing settings")
	}
	// Unquoted yes and no read as booleans.
	if answer, ok := raw["confirm-deletes"].(bool); ok {
		raw["confirm-deletes"] = ConfirmNo
		if answer {
			raw["confirm-deletes"] = ConfirmYes
		}
	}
	coerced, err := settingsChecker.Coerce(raw, nil)
	if err != nil {
		return Settings{}, errors.NewNotValid(err, "settings")
	}
	m := coerced.(map[string]interface{})
	return Settings{
		ConfirmDeletes: m["confirm-deletes"].(string),
		Format:         m["format"].(string),
	}, nil
}

// LoadSettings reads the settings file at path. An empty path or a
// missing file gives DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		return DefaultSettings, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debugf("no settings file at %q", path)
		return DefaultSettings, nil
	}
	if err != nil {
		return Settings{}, errors.Trace(err)
	}
	s, err := ParseSettings(data)
	return s, errors.Annotatef(err, "%s", path)
}
