// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package config holds the rule tree of a record book: the venues with
// their divisions, levels, events, scoring rules, titles and multiple
// Qs, plus the configuration actions that carry older documents forward.
package config

import (
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/dconnet/AgilityBook-sub002/internal/element"
	"github.com/dconnet/AgilityBook-sub002/localization"
	"github.com/dconnet/AgilityBook-sub002/notify"
	"github.com/dconnet/AgilityBook-sub002/version"
)

var logger = loggo.GetLogger("arb.config")

const (
	// ElementName is the name of the configuration element.
	ElementName = "Configuration"

	attrVersion = "version"
	attrUpdate  = "update"
	attrBook    = "Book"

	// elemCalSite held calendar web sites; it is obsolete.
	elemCalSite = "CalSite"
)

// Config is the rule tree of a record book.
type Config struct {
	// Version is the revision of the configuration data, compared
	// against the ConfigVersion of actions.
	Version int
	// Updated is set once a newer configuration has been merged in.
	Updated bool

	Actions     []ActionRecord
	Venues      VenueList
	Faults      FaultList
	OtherPoints OtherPointsList
}

// Clear empties the configuration.
func (c *Config) Clear() {
	*c = Config{}
}

// Equal reports whether both configurations hold the same values.
func (c *Config) Equal(o *Config) bool {
	if c.Version != o.Version || c.Updated != o.Updated ||
		len(c.Actions) != len(o.Actions) || len(c.Faults) != len(o.Faults) {
		return false
	}
	for i := range c.Actions {
		if c.Actions[i] != o.Actions[i] {
			return false
		}
	}
	for i := range c.Faults {
		if c.Faults[i] != o.Faults[i] {
			return false
		}
	}
	return equalLists(c.Venues, o.Venues) && equalLists(c.OtherPoints, o.OtherPoints)
}

// Default replaces the configuration with the one supplied by handler.
func (c *Config) Default(handler ConfigHandler, loc localization.Localizer) error {
	c.Clear()
	root, err := handler.LoadDefaultConfig()
	if err != nil {
		return errors.Annotate(err, "loading default configuration")
	}
	ver := version.Current
	if raw, lookup := root.Attrib(attrBook); lookup == element.Found {
		if ver, err = version.Parse(raw); err != nil {
			return errors.Annotate(err, "default configuration")
		}
	}
	node := root
	if root.Name() != ElementName {
		if node = root.Child(ElementName); node == nil {
			return errors.NotFoundf("default configuration element")
		}
	}
	var log notify.ErrorLog
	lc := LoadContext{Version: ver, Callback: &log, Localizer: loc}
	if err := c.Load(node, lc); err != nil {
		return errors.Annotatef(err, "default configuration: %s", log.String())
	}
	logger.Debugf("loaded default configuration version %d with %d venues", c.Version, len(c.Venues))
	return nil
}

// Load reads a Configuration element.
func (c *Config) Load(n *element.Node, lc LoadContext) error {
	if n.Name() != ElementName {
		lc.Callback.LogMessage(lc.Localizer.InvalidDocStructure(n.Name()))
		return errors.NotValidf("element %q", n.Name())
	}
	var err error
	if c.Updated, err = lc.OptionalBool(n, attrUpdate, false); err != nil {
		return errors.Trace(err)
	}
	if c.Version, err = lc.OptionalInt(n, attrVersion, 0); err != nil {
		return errors.Trace(err)
	}
	for _, child := range n.Children() {
		switch child.Name() {
		case elemAction:
			record, err := loadActionRecord(child, lc)
			if err != nil {
				return errors.Trace(err)
			}
			c.Actions = append(c.Actions, record)
		case elemVenue:
			v := &Venue{}
			if err := v.load(child, lc); err != nil {
				return errors.Trace(err)
			}
			if err := c.Venues.Add(v); err != nil {
				lc.Callback.LogMessage(lc.Localizer.InvalidAttribValue(child.Name(), attrName, err.Error()))
			}
			// Faults and other points lived under each venue before 3.0.
			if lc.Before(3, 0) {
				if err := c.loadShared(child, lc); err != nil {
					return errors.Trace(err)
				}
			}
		case elemFaultType, elemOtherPts:
			if err := c.loadShared(child, lc); err != nil {
				return errors.Trace(err)
			}
		case elemCalSite:
			name, _ := child.Attrib("name")
			logger.Debugf("dropping obsolete calendar site %q", name)
		}
	}
	return nil
}

// loadShared reads fault and other points elements. n is either one of
// them or a legacy venue holding them.
func (c *Config) loadShared(n *element.Node, lc LoadContext) error {
	nodes := []*element.Node{n}
	if n.Name() == elemVenue {
		nodes = n.Children()
	}
	for _, child := range nodes {
		switch child.Name() {
		case elemFaultType:
			if child.Value() != "" && !c.Faults.Find(child.Value()) {
				c.Faults = append(c.Faults, child.Value())
			}
		case elemOtherPts:
			o := &OtherPoints{}
			if err := o.load(child, lc); err != nil {
				return errors.Trace(err)
			}
			if c.OtherPoints.Find(o.Name) == nil {
				_ = c.OtherPoints.Add(o)
			}
		}
	}
	return nil
}

// Save writes the configuration as a child of parent.
func (c *Config) Save(parent *element.Node) {
	n := parent.AddChild(ElementName)
	if c.Updated {
		n.SetAttribBool(attrUpdate, true)
	}
	n.SetAttribInt(attrVersion, c.Version)
	for _, a := range c.Actions {
		a.save(n)
	}
	for _, v := range c.Venues {
		v.save(n)
	}
	for _, f := range c.Faults {
		n.AddChild(elemFaultType).SetValue(f)
	}
	for _, o := range c.OtherPoints {
		o.save(n)
	}
}

// Update merges newConfig into c: missing faults and other points are
// added, venues are added or merged, and the version is raised. Every
// change is described in info. It returns whether anything changed.
func (c *Config) Update(indent int, newConfig *Config, info *strings.Builder, loc localization.Localizer) bool {
	changes := 0

	added, skipped := 0, 0
	for _, f := range newConfig.Faults {
		if c.Faults.Find(f) {
			skipped++
			continue
		}
		added++
		c.Faults = append(c.Faults, f)
	}
	if added > 0 {
		changes += added
		info.WriteString(loc.UpdateFaults(added, skipped) + "\n")
	}

	// Existing other points definitions are left as they are.
	added, skipped = 0, 0
	for _, o := range newConfig.OtherPoints {
		if c.OtherPoints.Find(o.Name) != nil {
			skipped++
			continue
		}
		added++
		copied := *o
		_ = c.OtherPoints.Add(&copied)
	}
	if added > 0 {
		changes += added
		info.WriteString(loc.UpdateOtherPts(added, 0, skipped) + "\n")
	}

	var venueInfo strings.Builder
	added, updated, skipped := 0, 0, 0
	for _, v := range newConfig.Venues {
		existing := c.Venues.Find(v.Name)
		switch {
		case existing == nil:
			added++
			_ = c.Venues.Add(v.Clone())
			venueInfo.WriteString("+" + v.Name + "\n")
		case existing.Equal(v):
			skipped++
		default:
			if existing.Update(indent+1, v, &venueInfo, loc) {
				updated++
			}
		}
	}
	if added > 0 || updated > 0 {
		changes += added + updated
		info.WriteString(loc.UpdateVenues(added, updated, skipped) + "\n")
	}
	info.WriteString(venueInfo.String())

	// The version is raised even when nothing changed.
	if c.Version < newConfig.Version {
		c.Version = newConfig.Version
	}
	if changes == 0 {
		return false
	}
	c.Updated = true
	logger.Infof("configuration updated to version %d: %d change(s)", c.Version, changes)
	return true
}
