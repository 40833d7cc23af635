// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package dog

import (
	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

const (
	elemTitle = "Title"

	attrName     = "Name"
	attrInstance = "instance"
	attrShow     = "show"
	attrStyle    = "style"
	attrHidden   = "isHidden"
)

// Title is a title a dog has earned. A title without a date has not
// been earned yet and is hidden.
type Title struct {
	Date     date.Date
	Venue    string
	Name     string
	Instance int
	// ShowFirst shows the instance number on the first instance too.
	ShowFirst bool
	Style     config.TitleStyle
	Received  bool
	Hidden    bool
}

// Equal reports whether both titles hold the same values.
func (t *Title) Equal(o *Title) bool {
	return *t == *o
}

// DisplayName returns the name of the title including its instance.
// ct is the configured title, or nil if the venue no longer has it.
func (t *Title) DisplayName(ct *config.Title) string {
	if ct == nil {
		return t.Name
	}
	shown := *ct
	shown.MultipleOnFirst = shown.MultipleOnFirst || t.ShowFirst
	return shown.Instance(t.Instance, t.Style)
}

func loadTitle(cfg *config.Config, n *element.Node, lc config.LoadContext) (*Title, error) {
	t := &Title{Instance: 1}
	var err error
	if t.Venue, err = lc.RequiredString(n, attrVenue); err != nil {
		return nil, errors.Trace(err)
	}
	venue := cfg.Venues.Find(t.Venue)
	if venue == nil {
		return nil, lc.Invalid(n.Name(), attrVenue, lc.Localizer.InvalidVenueName(t.Venue))
	}
	if t.Name, err = lc.RequiredString(n, attrName); err != nil {
		return nil, errors.Trace(err)
	}
	if t.Hidden, err = lc.OptionalBool(n, attrHidden, false); err != nil {
		return nil, errors.Trace(err)
	}
	if t.Date, err = lc.OptionalDate(n, attrDate); err != nil {
		return nil, errors.Trace(err)
	}
	if !t.Date.IsValid() {
		t.Hidden = true
	}
	if t.Instance, err = lc.OptionalInt(n, attrInstance, 1); err != nil {
		return nil, errors.Trace(err)
	}
	if t.ShowFirst, err = lc.OptionalBool(n, attrShow, false); err != nil {
		return nil, errors.Trace(err)
	}
	style, _ := n.Attrib(attrStyle)
	t.Style = config.TitleStyle(style)
	if err := t.Style.Validate(); err != nil {
		return nil, lc.Invalid(n.Name(), attrStyle, lc.Localizer.ValidValues(
			string(config.TitleStyleNumber), string(config.TitleStyleRoman)))
	}
	if t.Received, err = lc.OptionalBool(n, attrReceived, false); err != nil {
		return nil, errors.Trace(err)
	}
	if venue.Titles.Find(t.Name) == nil {
		return nil, lc.Invalid(n.Name(), attrName, lc.Localizer.InvalidTitle(t.Venue, t.Name))
	}
	return t, nil
}

func (t *Title) save(parent *element.Node) {
	n := parent.AddChild(elemTitle)
	if t.Date.IsValid() {
		n.SetAttribDate(attrDate, t.Date)
		if t.Hidden {
			n.SetAttribBool(attrHidden, true)
		}
	} else {
		n.SetAttribBool(attrHidden, true)
	}
	n.SetAttrib(attrVenue, t.Venue)
	n.SetAttrib(attrName, t.Name)
	if t.Instance > 1 {
		n.SetAttribInt(attrInstance, t.Instance)
	}
	if t.ShowFirst {
		n.SetAttribBool(attrShow, true)
	}
	if t.Style != config.TitleStyleNone {
		n.SetAttrib(attrStyle, string(t.Style))
	}
	if t.Received {
		n.SetAttribBool(attrReceived, true)
	}
}
