// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"sort"
	"strings"

	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
	"github.com/dconnet/AgilityBook-sub002/localization"
)

const (
	elemVenue = "Venue"

	attrURL  = "URL"
	attrIcon = "icon"
)

// Venue is an organization that sanctions trials, with everything it
// defines.
type Venue struct {
	Name          string
	LongName      string
	URL           string
	Desc          string
	Icon          int
	LifetimeNames LifetimeNameList
	Titles        TitleList
	Divisions     DivisionList
	Events        EventList
	MultiQs       MultiQList
}

// Equal reports whether both venues hold the same values.
func (v *Venue) Equal(o *Venue) bool {
	if v.Name != o.Name || v.LongName != o.LongName || v.URL != o.URL ||
		v.Desc != o.Desc || v.Icon != o.Icon || len(v.LifetimeNames) != len(o.LifetimeNames) {
		return false
	}
	for i := range v.LifetimeNames {
		if v.LifetimeNames[i] != o.LifetimeNames[i] {
			return false
		}
	}
	return equalLists(v.Titles, o.Titles) &&
		equalLists(v.Divisions, o.Divisions) &&
		equalLists(v.Events, o.Events) &&
		equalLists(v.MultiQs, o.MultiQs)
}

// FindEvent returns the event and its rule in force for div and level
// on d. level may name a sublevel.
func (v *Venue) FindEvent(event, div, level string, d date.Date) (*Event, *Scoring) {
	division := v.Divisions.Find(div)
	if division == nil {
		return nil, nil
	}
	lv := division.Levels.FindSubLevel(level)
	if lv == nil {
		return nil, nil
	}
	return v.Events.FindScoring(event, div, lv.Name, d)
}

func (v *Venue) load(n *element.Node, lc LoadContext) error {
	var err error
	if v.Name, err = lc.RequiredString(n, attrName); err != nil {
		return errors.Trace(err)
	}
	v.LongName, _ = n.Attrib(attrLongName)
	v.URL, _ = n.Attrib(attrURL)
	if v.Icon, err = lc.OptionalInt(n, attrIcon, -1); err != nil {
		return errors.Trace(err)
	}
	v.Desc = childText(n, elemDesc)
	for _, child := range n.ChildrenNamed(elemLifetimeName) {
		name, _ := child.Attrib(attrName)
		if err := v.LifetimeNames.Add(name); err != nil {
			lc.Callback.LogMessage(lc.Localizer.InvalidAttribValue(child.Name(), attrName, err.Error()))
		}
	}
	for _, child := range n.ChildrenNamed(elemTitles) {
		t := &Title{}
		if err := t.load(child, lc); err != nil {
			return errors.Annotatef(err, "venue %q", v.Name)
		}
		if err := v.Titles.Add(t); err != nil {
			lc.Callback.LogMessage(lc.Localizer.InvalidAttribValue(child.Name(), attrName, err.Error()))
		}
	}
	for _, child := range n.ChildrenNamed(elemDivision) {
		d := &Division{}
		if err := d.load(child, lc); err != nil {
			return errors.Annotatef(err, "venue %q", v.Name)
		}
		v.Divisions = append(v.Divisions, d)
	}
	for _, child := range n.ChildrenNamed(elemEvent) {
		e := &Event{}
		if err := e.load(v.Divisions, child, lc); err != nil {
			return errors.Annotatef(err, "venue %q", v.Name)
		}
		if err := v.Events.Add(e); err != nil {
			lc.Callback.LogMessage(lc.Localizer.InvalidAttribValue(child.Name(), attrName, err.Error()))
		}
	}
	for _, child := range n.ChildrenNamed(elemMultiQ) {
		m := &MultiQ{}
		if err := m.load(v.Divisions, v.Events, child, lc); err != nil {
			return errors.Annotatef(err, "venue %q", v.Name)
		}
		if err := v.MultiQs.Add(m); err != nil {
			lc.Callback.LogMessage(lc.Localizer.InvalidAttribValue(child.Name(), attrName, err.Error()))
		}
	}
	return nil
}

func (v *Venue) save(parent *element.Node) {
	n := parent.AddChild(elemVenue)
	n.SetAttrib(attrName, v.Name)
	if v.LongName != "" {
		n.SetAttrib(attrLongName, v.LongName)
	}
	if v.URL != "" {
		n.SetAttrib(attrURL, v.URL)
	}
	if v.Icon >= 0 {
		n.SetAttribInt(attrIcon, v.Icon)
	}
	setChildText(n, elemDesc, v.Desc)
	for _, name := range v.LifetimeNames {
		n.AddChild(elemLifetimeName).SetAttrib(attrName, name)
	}
	for _, t := range v.Titles {
		t.save(n)
	}
	for _, d := range v.Divisions {
		d.save(n)
	}
	for _, e := range v.Events {
		e.save(n)
	}
	for _, m := range v.MultiQs {
		m.save(n)
	}
}

// Update merges newVenue into v, describing every change in info.
func (v *Venue) Update(indent int, newVenue *Venue, info *strings.Builder, loc localization.Localizer) bool {
	if v.Name != newVenue.Name {
		return false
	}
	indentName, indentBody := indents(indent)
	changed := false
	if v.LongName != newVenue.LongName {
		v.LongName = newVenue.LongName
		changed = true
	}
	if v.URL != newVenue.URL {
		v.URL = newVenue.URL
		changed = true
	}
	if v.Desc != newVenue.Desc {
		v.Desc = newVenue.Desc
		changed = true
	}
	if v.Icon != newVenue.Icon {
		v.Icon = newVenue.Icon
		changed = true
	}

	var body strings.Builder
	added, skipped := 0, 0
	for _, name := range newVenue.LifetimeNames {
		if v.LifetimeNames.Find(name) {
			skipped++
			continue
		}
		added++
		v.LifetimeNames = append(v.LifetimeNames, name)
	}
	if added > 0 {
		body.WriteString(indentBody + loc.UpdateLifetimeNames(added, skipped) + "\n")
	}

	if !equalLists(v.Titles, newVenue.Titles) {
		added, updated, skipped := 0, 0, 0
		for _, t := range newVenue.Titles {
			existing := v.Titles.Find(t.Name)
			switch {
			case existing == nil:
				added++
				v.Titles = append(v.Titles, t.Clone())
			case existing.Equal(t):
				skipped++
			default:
				updated++
				*existing = *t
			}
		}
		v.Titles.ReorderBy(newVenue.Titles)
		if added > 0 || updated > 0 {
			body.WriteString(indentBody + loc.UpdateTitles(added, updated, skipped) + "\n")
		} else {
			body.WriteString(indentBody + loc.UpdateTitlesReordered() + "\n")
		}
	}

	if !equalLists(v.Divisions, newVenue.Divisions) {
		var details strings.Builder
		added, updated, skipped := 0, 0, 0
		for _, d := range newVenue.Divisions {
			existing := v.Divisions.Find(d.Name)
			switch {
			case existing == nil:
				added++
				v.Divisions = append(v.Divisions, d.Clone())
				details.WriteString(indentBody + "+" + d.Name + "\n")
			case existing.Equal(d):
				skipped++
			default:
				if existing.Update(indent+1, d, &details, loc) {
					updated++
				}
			}
		}
		v.Divisions.ReorderBy(newVenue.Divisions)
		if added > 0 || updated > 0 {
			body.WriteString(indentBody + loc.UpdateDivisions(added, updated, skipped) + "\n")
			body.WriteString(details.String())
		} else {
			body.WriteString(indentBody + loc.UpdateDivisionsReordered() + "\n")
		}
	}

	if !equalLists(v.Events, newVenue.Events) {
		var details strings.Builder
		added, updated, skipped := 0, 0, 0
		for _, e := range newVenue.Events {
			existing := v.Events.Find(e.Name)
			switch {
			case existing == nil:
				added++
				v.Events = append(v.Events, e.Clone())
				details.WriteString(indentBody + "+" + e.Name + "\n")
			case existing.Equal(e):
				skipped++
			default:
				if existing.Update(indent+1, e, &details, loc) {
					updated++
				}
			}
		}
		v.Events.ReorderBy(newVenue.Events)
		if added > 0 || updated > 0 {
			body.WriteString(indentBody + loc.UpdateEvents(added, updated, skipped) + "\n")
			body.WriteString(details.String())
		} else {
			body.WriteString(indentBody + loc.UpdateEventsReordered() + "\n")
		}
	}

	if !equalLists(v.MultiQs, newVenue.MultiQs) {
		added, deleted, skipped := 0, 0, 0
		for _, have := range v.MultiQs {
			found := false
			for _, want := range newVenue.MultiQs {
				if have.Equal(want) {
					found = true
					break
				}
			}
			if found {
				skipped++
			} else {
				deleted++
			}
		}
		for _, want := range newVenue.MultiQs {
			found := false
			for _, have := range v.MultiQs {
				if have.Equal(want) {
					found = true
					break
				}
			}
			if !found {
				added++
			}
		}
		v.MultiQs = newVenue.MultiQs.Clone()
		if added > 0 || deleted > 0 {
			body.WriteString(indentBody + v.Name + " " + loc.UpdateMultiqs(added, deleted, skipped) + "\n")
		} else {
			body.WriteString(indentBody + loc.UpdateMultiqsReordered() + "\n")
		}
	}

	if body.Len() > 0 {
		changed = true
		info.WriteString(indentName + v.Name + "\n" + body.String())
	}
	return changed
}

// VenueList holds the venues of a configuration, sorted by name.
type VenueList []*Venue

// Find returns the venue with the given name, or nil.
func (l VenueList) Find(name string) *Venue {
	for _, v := range l {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// FindEvent returns the event and its rule in force for the given venue,
// division and level on d.
func (l VenueList) FindEvent(venue, event, div, level string, d date.Date) (*Event, *Scoring) {
	v := l.Find(venue)
	if v == nil {
		return nil, nil
	}
	return v.FindEvent(event, div, level, d)
}

// Sort orders the venues by name, ignoring case.
func (l VenueList) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return strings.ToLower(l[i].Name) < strings.ToLower(l[j].Name)
	})
}

// Add inserts a venue, keeping the list sorted.
func (l *VenueList) Add(v *Venue) error {
	if v == nil || v.Name == "" {
		return errors.NotValidf("empty venue name")
	}
	if l.Find(v.Name) != nil {
		return errors.AlreadyExistsf("venue %q", v.Name)
	}
	*l = append(*l, v)
	l.Sort()
	return nil
}

// Delete removes the named venue.
func (l *VenueList) Delete(name string) bool {
	for i, v := range *l {
		if v.Name == name {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Rename changes the name of a venue, failing if the new name is taken.
func (l VenueList) Rename(oldName, newName string) error {
	v := l.Find(oldName)
	if v == nil {
		return errors.NotFoundf("venue %q", oldName)
	}
	if oldName != newName && l.Find(newName) != nil {
		return errors.AlreadyExistsf("venue %q", newName)
	}
	v.Name = newName
	l.Sort()
	return nil
}
