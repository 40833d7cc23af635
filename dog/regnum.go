// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package dog

import (
	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

const (
	elemRegNum = "RegNum"

	attrNumber   = "Number"
	attrHeight   = "Height"
	attrReceived = "isReceived"
)

// RegNum is a registration number with a venue.
type RegNum struct {
	Venue    string
	Number   string
	Height   string
	Received bool
	Note     string
}

// Equal reports whether both numbers hold the same values.
func (r *RegNum) Equal(o *RegNum) bool {
	return *r == *o
}

func loadRegNum(cfg *config.Config, n *element.Node, lc config.LoadContext) (*RegNum, error) {
	r := &RegNum{Note: n.Value()}
	var err error
	if r.Venue, err = lc.RequiredString(n, attrVenue); err != nil {
		return nil, errors.Trace(err)
	}
	if cfg.Venues.Find(r.Venue) == nil {
		return nil, lc.Invalid(n.Name(), attrVenue, lc.Localizer.InvalidVenueName(r.Venue))
	}
	if r.Number, err = lc.RequiredString(n, attrNumber); err != nil {
		return nil, errors.Trace(err)
	}
	r.Height, _ = n.Attrib(attrHeight)
	if r.Received, err = lc.OptionalBool(n, attrReceived, false); err != nil {
		return nil, errors.Trace(err)
	}
	return r, nil
}

func (r *RegNum) save(parent *element.Node) {
	n := parent.AddChild(elemRegNum)
	n.SetAttrib(attrVenue, r.Venue)
	n.SetAttrib(attrNumber, r.Number)
	if r.Height != "" {
		n.SetAttrib(attrHeight, r.Height)
	}
	if r.Received {
		n.SetAttribBool(attrReceived, true)
	}
	if r.Note != "" {
		n.SetValue(r.Note)
	}
}
