// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"strings"

	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
	"github.com/dconnet/AgilityBook-sub002/localization"
	"github.com/dconnet/AgilityBook-sub002/notify"
	"github.com/dconnet/AgilityBook-sub002/version"
)

// LoadContext is passed down the tree while a document is loaded.
type LoadContext struct {
	Version   version.Number
	Callback  notify.ErrorCallback
	Localizer localization.Localizer
}

// Missing reports a required attribute that is absent.
func (lc LoadContext) Missing(elem, attrib string) error {
	lc.Callback.LogMessage(lc.Localizer.MissingAttribute(elem, attrib))
	return errors.NotFoundf("attribute %q on %q", attrib, elem)
}

// Invalid reports an attribute whose value cannot be used.
func (lc LoadContext) Invalid(elem, attrib, detail string) error {
	lc.Callback.LogMessage(lc.Localizer.InvalidAttribValue(elem, attrib, detail))
	return errors.NotValidf("attribute %q on %q", attrib, elem)
}

// Before reports whether the document being loaded predates v.
func (lc LoadContext) Before(major, minor uint16) bool {
	return lc.Version.Less(version.Number{Major: major, Minor: minor})
}

// RequiredString reads an attribute that must be present and non-empty.
func (lc LoadContext) RequiredString(n *element.Node, attrib string) (string, error) {
	v, lookup := n.Attrib(attrib)
	if lookup != element.Found || v == "" {
		return "", lc.Missing(n.Name(), attrib)
	}
	return v, nil
}

// OptionalBool reads a boolean attribute, leaving def when absent.
func (lc LoadContext) OptionalBool(n *element.Node, attrib string, def bool) (bool, error) {
	v, lookup := n.AttribBool(attrib)
	switch lookup {
	case element.NotFound:
		return def, nil
	case element.Invalid:
		return def, lc.Invalid(n.Name(), attrib, lc.Localizer.ValidValues("y", "n"))
	}
	return v, nil
}

// OptionalInt reads an integer attribute, leaving def when absent.
func (lc LoadContext) OptionalInt(n *element.Node, attrib string, def int) (int, error) {
	v, lookup := n.AttribInt(attrib)
	switch lookup {
	case element.NotFound:
		return def, nil
	case element.Invalid:
		return def, lc.Invalid(n.Name(), attrib, "")
	}
	return v, nil
}

// OptionalFloat reads a numeric attribute, leaving def when absent.
func (lc LoadContext) OptionalFloat(n *element.Node, attrib string, def float64) (float64, error) {
	v, lookup := n.AttribFloat(attrib)
	switch lookup {
	case element.NotFound:
		return def, nil
	case element.Invalid:
		return def, lc.Invalid(n.Name(), attrib, "")
	}
	return v, nil
}

// OptionalDate reads a date attribute; an absent date is the zero Date.
func (lc LoadContext) OptionalDate(n *element.Node, attrib string) (date.Date, error) {
	v, lookup := n.AttribDate(attrib)
	if lookup == element.Invalid {
		return date.Date{}, lc.Invalid(n.Name(), attrib, "yyyy-mm-dd")
	}
	return v, nil
}

// childText returns the text of the first child called name.
func childText(n *element.Node, name string) string {
	if child := n.Child(name); child != nil {
		return child.Value()
	}
	return ""
}

// setChildText writes a text child, skipping empty text.
func setChildText(n *element.Node, name, text string) {
	if text != "" {
		n.AddChild(name).SetValue(text)
	}
}

// indents returns the name and body prefixes of an update report at
// the given depth.
func indents(indent int) (name, body string) {
	if indent > 1 {
		name = strings.Repeat("   ", indent-1)
	}
	return name + "-", name + "   "
}
