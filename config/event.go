// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"strings"

	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
	"github.com/dconnet/AgilityBook-sub002/localization"
)

const (
	elemEvent   = "Event"
	elemDesc    = "Desc"
	elemSubName = "SubName"

	attrHasPartner  = "hasPartner"
	attrHasTable    = "hasTable"
	attrHasSubNames = "hasSubNames"
)

// Event is a class offered by a venue, with its scoring rules.
type Event struct {
	Name        string
	ShortName   string
	Desc        string
	HasPartner  bool
	HasTable    bool
	HasSubNames bool
	SubNames    []string
	Scorings    ScoringList
}

// Equal reports whether both events hold the same values.
func (e *Event) Equal(o *Event) bool {
	if e.Name != o.Name || e.ShortName != o.ShortName || e.Desc != o.Desc ||
		e.HasPartner != o.HasPartner || e.HasTable != o.HasTable ||
		e.HasSubNames != o.HasSubNames || len(e.SubNames) != len(o.SubNames) {
		return false
	}
	for i := range e.SubNames {
		if e.SubNames[i] != o.SubNames[i] {
			return false
		}
	}
	return equalLists(e.Scorings, o.Scorings)
}

// Verify reports whether a rule exists for div and level on d.
func (e *Event) Verify(div, level string, d date.Date) bool {
	return len(e.Scorings.FindAll(div, level, d, false)) > 0
}

func (e *Event) load(divisions DivisionList, n *element.Node, lc LoadContext) error {
	var err error
	if e.Name, err = lc.RequiredString(n, attrName); err != nil {
		return errors.Trace(err)
	}
	e.ShortName, _ = n.Attrib(attrShortName)
	if e.HasPartner, err = lc.OptionalBool(n, attrHasPartner, false); err != nil {
		return errors.Trace(err)
	}
	if e.HasTable, err = lc.OptionalBool(n, attrHasTable, false); err != nil {
		return errors.Trace(err)
	}
	if e.HasSubNames, err = lc.OptionalBool(n, attrHasSubNames, false); err != nil {
		return errors.Trace(err)
	}
	e.Desc = childText(n, elemDesc)
	for _, child := range n.ChildrenNamed(elemSubName) {
		if child.Value() != "" {
			e.SubNames = append(e.SubNames, child.Value())
		}
	}
	for _, child := range n.ChildrenNamed(elemScoring) {
		s := &Scoring{}
		if err := s.load(divisions, child, lc); err != nil {
			return errors.Annotatef(err, "event %q", e.Name)
		}
		e.Scorings = append(e.Scorings, s)
	}
	return nil
}

func (e *Event) save(parent *element.Node) {
	n := parent.AddChild(elemEvent)
	n.SetAttrib(attrName, e.Name)
	if e.ShortName != "" {
		n.SetAttrib(attrShortName, e.ShortName)
	}
	if e.HasPartner {
		n.SetAttribBool(attrHasPartner, true)
	}
	if e.HasTable {
		n.SetAttribBool(attrHasTable, true)
	}
	if e.HasSubNames {
		n.SetAttribBool(attrHasSubNames, true)
	}
	setChildText(n, elemDesc, e.Desc)
	for _, sub := range e.SubNames {
		n.AddChild(elemSubName).SetValue(sub)
	}
	for _, s := range e.Scorings {
		s.save(n)
	}
}

func sameRule(a, b *Scoring) bool {
	return a.Division == b.Division && a.Level == b.Level &&
		a.ValidFrom == b.ValidFrom && a.ValidTo == b.ValidTo
}

// Update merges newEvent into e. The scoring rules of newEvent replace
// those of e wholesale; the report counts them by division, level and
// validity.
func (e *Event) Update(indent int, newEvent *Event, info *strings.Builder, loc localization.Localizer) bool {
	_, indentBody := indents(indent)
	changed := false
	if e.ShortName != newEvent.ShortName {
		e.ShortName = newEvent.ShortName
		changed = true
	}
	if e.Desc != newEvent.Desc {
		e.Desc = newEvent.Desc
		changed = true
	}
	if e.HasPartner != newEvent.HasPartner {
		e.HasPartner = newEvent.HasPartner
		changed = true
	}
	if e.HasTable != newEvent.HasTable {
		e.HasTable = newEvent.HasTable
		changed = true
	}
	if e.HasSubNames != newEvent.HasSubNames {
		e.HasSubNames = newEvent.HasSubNames
		changed = true
	}
	if strings.Join(e.SubNames, "\x00") != strings.Join(newEvent.SubNames, "\x00") {
		e.SubNames = append([]string(nil), newEvent.SubNames...)
		changed = true
	}
	if !equalLists(e.Scorings, newEvent.Scorings) {
		added, deleted, updated, skipped := 0, 0, 0, 0
		for _, have := range e.Scorings {
			found := false
			for _, want := range newEvent.Scorings {
				if sameRule(have, want) {
					found = true
					if have.Equal(want) {
						skipped++
					} else {
						updated++
					}
					break
				}
			}
			if !found {
				deleted++
			}
		}
		for _, want := range newEvent.Scorings {
			found := false
			for _, have := range e.Scorings {
				if sameRule(have, want) {
					found = true
					break
				}
			}
			if !found {
				added++
			}
		}
		e.Scorings = newEvent.Scorings.Clone()
		changed = true
		if added > 0 || deleted > 0 || updated > 0 {
			info.WriteString(indentBody + e.Name + loc.UpdateRules(added, deleted, updated, skipped) + "\n")
		}
	}
	return changed
}

// EventList is an ordered list of events.
type EventList []*Event

// Find returns the event with the given name, or nil.
func (l EventList) Find(name string) *Event {
	for _, e := range l {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// FindScoring returns the event and its rule in force for div and
// level on d.
func (l EventList) FindScoring(event, div, level string, d date.Date) (*Event, *Scoring) {
	e := l.Find(event)
	if e == nil {
		return nil, nil
	}
	s := e.Scorings.Find(div, level, d)
	if s == nil {
		return nil, nil
	}
	return e, s
}

// Verify reports whether event has a rule for div and level on d.
func (l EventList) Verify(event, div, level string, d date.Date) bool {
	e := l.Find(event)
	return e != nil && e.Verify(div, level, d)
}

// Add appends an event.
func (l *EventList) Add(e *Event) error {
	if e == nil || e.Name == "" {
		return errors.NotValidf("empty event name")
	}
	if l.Find(e.Name) != nil {
		return errors.AlreadyExistsf("event %q", e.Name)
	}
	*l = append(*l, e)
	return nil
}

// Delete removes the named event.
func (l *EventList) Delete(name string) bool {
	for i, e := range *l {
		if e.Name == name {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Rename changes the name of an event, failing if the new name is taken.
func (l EventList) Rename(oldName, newName string) error {
	e := l.Find(oldName)
	if e == nil {
		return errors.NotFoundf("event %q", oldName)
	}
	if oldName != newName && l.Find(newName) != nil {
		return errors.AlreadyExistsf("event %q", newName)
	}
	e.Name = newName
	return nil
}

// ReorderBy arranges the events in the order of other.
func (l *EventList) ReorderBy(other EventList) {
	*l = reorderBy(*l, other, func(e *Event) string { return e.Name })
}

// RenameDivision renames the division of every rule and returns how
// many rules changed.
func (l EventList) RenameDivision(oldDiv, newDiv string) int {
	n := 0
	for _, e := range l {
		for _, s := range e.Scorings {
			if s.Division == oldDiv {
				s.Division = newDiv
				n++
			}
		}
	}
	return n
}

// DeleteDivision removes every rule for div.
func (l EventList) DeleteDivision(div string) int {
	n := 0
	for _, e := range l {
		n += e.Scorings.deleteMatching(func(s *Scoring) bool {
			return s.Division == div
		})
	}
	return n
}

// RenameLevel renames the level of every rule in div, including
// wildcard division rules.
func (l EventList) RenameLevel(div, oldLevel, newLevel string) int {
	n := 0
	for _, e := range l {
		for _, s := range e.Scorings {
			if s.Level == oldLevel && (s.Division == Wildcard || s.Division == div) {
				s.Level = newLevel
				n++
			}
		}
	}
	return n
}

// DeleteLevel removes every rule for level in div, including wildcard
// division rules.
func (l EventList) DeleteLevel(div, level string) int {
	n := 0
	for _, e := range l {
		n += e.Scorings.deleteMatching(func(s *Scoring) bool {
			return s.Level == level && (s.Division == Wildcard || s.Division == div)
		})
	}
	return n
}

// RenameLifetimeName renames the lifetime points entries of every rule.
func (l EventList) RenameLifetimeName(oldName, newName string) int {
	n := 0
	for _, e := range l {
		for _, s := range e.Scorings {
			n += s.LifetimePoints.RenameName(oldName, newName)
		}
	}
	return n
}

// DeleteLifetimeName removes the lifetime points entries of every rule.
func (l EventList) DeleteLifetimeName(name string) int {
	n := 0
	for _, e := range l {
		for _, s := range e.Scorings {
			n += s.LifetimePoints.DeleteName(name)
		}
	}
	return n
}
