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
	elemExistingPoints = "ExistingPoints"

	attrDate    = "Date"
	attrType    = "Type"
	attrOther   = "Other"
	attrVenue   = "Venue"
	attrMultiQ  = "MultiQ"
	attrDiv     = "Div"
	attrLevel   = "Level"
	attrEvent   = "Event"
	attrSubName = "SubName"
	attrPts     = "Pts"
)

// PointsKind is what a batch of existing points counts towards.
type PointsKind string

const (
	PointsOther    PointsKind = "Other"
	PointsLifetime PointsKind = "Lifetime"
	PointsTitle    PointsKind = "Title"
	PointsSpeed    PointsKind = "Speed"
	PointsMQ       PointsKind = "MQ"
	PointsSQ       PointsKind = "SQ"
)

var pointsKinds = []PointsKind{PointsOther, PointsLifetime, PointsTitle, PointsSpeed, PointsMQ, PointsSQ}

func pointsKindNames() []string {
	names := make([]string, len(pointsKinds))
	for i, k := range pointsKinds {
		names[i] = string(k)
	}
	return names
}

// ExistingPoints are points earned before the dog's runs were recorded.
type ExistingPoints struct {
	Date date.Date
	Type PointsKind
	// Other names the other points for PointsOther and the lifetime
	// total for PointsLifetime; empty is the venue's unnamed total.
	Other    string
	Venue    string
	MultiQ   string
	Division string
	Level    string
	Event    string
	SubName  string
	Points   float64
	Comment  string
}

// Equal reports whether both entries hold the same values.
func (p *ExistingPoints) Equal(o *ExistingPoints) bool {
	return *p == *o
}

func parsePointsKind(raw string, lc config.LoadContext) (PointsKind, bool) {
	for _, k := range pointsKinds {
		if raw == string(k) {
			return k, true
		}
	}
	switch {
	case raw == "Run":
		return PointsTitle, true
	case raw == "Mach" && lc.Before(10, 1):
		return PointsSpeed, true
	case raw == "QQ" && lc.Before(11, 0):
		return PointsMQ, true
	}
	return "", false
}

func loadExistingPoints(cfg *config.Config, n *element.Node, lc config.LoadContext) (*ExistingPoints, error) {
	p := &ExistingPoints{Comment: n.Value()}
	var err error
	if p.Date, err = lc.OptionalDate(n, attrDate); err != nil {
		return nil, errors.Trace(err)
	}
	raw, err := lc.RequiredString(n, attrType)
	if err != nil {
		return nil, errors.Trace(err)
	}
	kind, ok := parsePointsKind(raw, lc)
	if !ok {
		return nil, lc.Invalid(n.Name(), attrType, lc.Localizer.ValidValues(pointsKindNames()...))
	}
	p.Type = kind
	if p.Points, err = lc.OptionalFloat(n, attrPts, 0); err != nil {
		return nil, errors.Trace(err)
	}

	if p.Venue, err = lc.RequiredString(n, attrVenue); err != nil {
		return nil, errors.Trace(err)
	}
	venue := cfg.Venues.Find(p.Venue)
	if venue == nil {
		return nil, lc.Invalid(n.Name(), attrVenue, lc.Localizer.InvalidVenueName(p.Venue))
	}

	p.Other, _ = n.Attrib(attrOther)
	switch p.Type {
	case PointsOther:
		if p.Other == "" {
			return nil, lc.Missing(n.Name(), attrOther)
		}
		if cfg.OtherPoints.Find(p.Other) == nil {
			return nil, lc.Invalid(n.Name(), attrOther, lc.Localizer.InvalidOtherPtsName(p.Other))
		}
	case PointsLifetime:
		if p.Other != "" && !venue.LifetimeNames.Find(p.Other) {
			return nil, lc.Invalid(n.Name(), attrOther, p.Other)
		}
	case PointsMQ:
		if raw == "QQ" {
			// Double Qs were the only multiple Q before 11.0.
			p.MultiQ = "Double Q"
			if mq := venue.MultiQs.FindShortName("QQ"); mq != nil {
				p.MultiQ = mq.Name
			}
			return p, nil
		}
		if p.MultiQ, err = lc.RequiredString(n, attrMultiQ); err != nil {
			return nil, errors.Trace(err)
		}
		if venue.MultiQs.Find(p.MultiQ) == nil {
			return nil, lc.Invalid(n.Name(), attrMultiQ, lc.Localizer.InvalidMultiqName(p.Venue, p.MultiQ))
		}
		return p, nil
	}

	if p.Division, err = lc.RequiredString(n, attrDiv); err != nil {
		return nil, errors.Trace(err)
	}
	if p.Level, err = lc.RequiredString(n, attrLevel); err != nil {
		return nil, errors.Trace(err)
	}
	if !venue.Divisions.VerifyLevel(p.Division, p.Level, false) {
		return nil, lc.Invalid(n.Name(), attrLevel, lc.Localizer.InvalidDivLevel(p.Venue, p.Division, p.Level))
	}
	p.Event, _ = n.Attrib(attrEvent)
	p.SubName, _ = n.Attrib(attrSubName)
	if p.Event == "" && p.Type == PointsOther {
		return p, nil
	}
	if p.Event == "" {
		return nil, lc.Missing(n.Name(), attrEvent)
	}
	if event, _ := venue.FindEvent(p.Event, p.Division, p.Level, p.Date); event == nil {
		return nil, lc.Invalid(n.Name(), attrEvent, lc.Localizer.InvalidEventName(p.Venue, p.Event))
	}
	return p, nil
}

func (p *ExistingPoints) save(parent *element.Node) {
	n := parent.AddChild(elemExistingPoints)
	if p.Date.IsValid() {
		n.SetAttribDate(attrDate, p.Date)
	}
	n.SetAttrib(attrType, string(p.Type))
	n.SetAttribFloat(attrPts, p.Points)
	n.SetAttrib(attrVenue, p.Venue)
	attrs := []struct{ name, value string }{
		{attrOther, p.Other},
		{attrMultiQ, p.MultiQ},
		{attrDiv, p.Division},
		{attrLevel, p.Level},
		{attrEvent, p.Event},
		{attrSubName, p.SubName},
	}
	for _, a := range attrs {
		if a.value != "" {
			n.SetAttrib(a.name, a.value)
		}
	}
	if p.Comment != "" {
		n.SetValue(p.Comment)
	}
}
