// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"github.com/juju/errors"
	"github.com/juju/schema"

	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

const (
	elemAction = "Action"

	attrVerb          = "Verb"
	attrConfigVersion = "Config"
	attrVenue         = "Venue"
	attrOldName       = "OldName"
	attrNewName       = "NewName"
)

// ActionRecord is the stored form of a configuration action: a rename
// or deletion that must be applied to older documents when a newer
// configuration is merged in. Records are kept in document order.
type ActionRecord struct {
	Verb string
	// ConfigVersion is the configuration version that introduced the
	// action. Zero means the action always applies.
	ConfigVersion int
	Venue         string
	Division      string
	// Level is set when the action renames or deletes a sublevel of
	// this level.
	Level   string
	OldName string
	NewName string
}

func actionFields(lc LoadContext) (schema.Fields, schema.Defaults) {
	fields := schema.Fields{
		attrVerb:          schema.String(),
		attrConfigVersion: schema.ForceInt(),
		attrVenue:         schema.String(),
		attrDiv:           schema.String(),
		attrLevel:         schema.String(),
		attrOldName:       schema.String(),
		attrNewName:       schema.String(),
	}
	defaults := schema.Defaults{
		attrVenue:   "",
		attrDiv:     "",
		attrLevel:   "",
		attrOldName: "",
		attrNewName: "",
	}
	// Actions written before 12.12 carry no config version.
	if lc.Before(12, 12) {
		defaults[attrConfigVersion] = 0
	}
	return fields, defaults
}

func loadActionRecord(n *element.Node, lc LoadContext) (ActionRecord, error) {
	source := make(map[string]interface{})
	for _, name := range n.AttribNames() {
		value, _ := n.Attrib(name)
		source[name] = value
	}
	if _, ok := source[attrVerb]; !ok {
		return ActionRecord{}, lc.Missing(n.Name(), attrVerb)
	}
	if _, ok := source[attrConfigVersion]; !ok && !lc.Before(12, 12) {
		return ActionRecord{}, lc.Missing(n.Name(), attrConfigVersion)
	}
	fields, defaults := actionFields(lc)
	coerced, err := schema.FieldMap(fields, defaults).Coerce(source, nil)
	if err != nil {
		lc.Callback.LogMessage(lc.Localizer.InvalidAttribValue(n.Name(), attrConfigVersion, err.Error()))
		return ActionRecord{}, errors.Annotatef(err, "action schema check failed")
	}
	valid := coerced.(map[string]interface{})
	return ActionRecord{
		Verb:          valid[attrVerb].(string),
		ConfigVersion: valid[attrConfigVersion].(int),
		Venue:         valid[attrVenue].(string),
		Division:      valid[attrDiv].(string),
		Level:         valid[attrLevel].(string),
		OldName:       valid[attrOldName].(string),
		NewName:       valid[attrNewName].(string),
	}, nil
}

func (r ActionRecord) save(parent *element.Node) {
	n := parent.AddChild(elemAction)
	n.SetAttrib(attrVerb, r.Verb)
	n.SetAttribInt(attrConfigVersion, r.ConfigVersion)
	optional := []struct{ name, value string }{
		{attrVenue, r.Venue},
		{attrDiv, r.Division},
		{attrLevel, r.Level},
		{attrOldName, r.OldName},
		{attrNewName, r.NewName},
	}
	for _, o := range optional {
		if o.value != "" {
			n.SetAttrib(o.name, o.value)
		}
	}
}
