// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"sort"

	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

const (
	elemMultiQ     = "MultiQ"
	elemMultiQItem = "MultiQItem"

	attrDiv   = "Div"
	attrEvent = "Event"
)

// MultiQItem is one qualifying run a multiple Q requires.
type MultiQItem struct {
	Division string
	Level    string
	Event    string
}

func (i MultiQItem) key() string {
	return i.Division + "\x00" + i.Level + "\x00" + i.Event
}

// MultiQRun describes a qualifying run offered to MultiQ.Match.
type MultiQRun struct {
	Date     date.Date
	Division string
	Level    string
	Event    string
}

// MultiQ is earned by qualifying in every one of its items on the same
// day of the same trial.
type MultiQ struct {
	Name      string
	ShortName string
	ValidFrom date.Date
	ValidTo   date.Date
	Items     []MultiQItem
}

func (m *MultiQ) itemKeys() set.Strings {
	keys := set.NewStrings()
	for _, item := range m.Items {
		keys.Add(item.key())
	}
	return keys
}

// Equal reports whether both hold the same values. Item order does not
// matter.
func (m *MultiQ) Equal(o *MultiQ) bool {
	return m.Name == o.Name && m.ShortName == o.ShortName &&
		m.ValidFrom == o.ValidFrom && m.ValidTo == o.ValidTo &&
		len(m.Items) == len(o.Items) && m.itemKeys().Difference(o.itemKeys()).IsEmpty()
}

// AddItem adds a required run, refusing duplicates.
func (m *MultiQ) AddItem(div, level, event string) error {
	item := MultiQItem{Division: div, Level: level, Event: event}
	if m.itemKeys().Contains(item.key()) {
		return errors.AlreadyExistsf("multiple Q item %s/%s/%s", div, level, event)
	}
	m.Items = append(m.Items, item)
	sort.SliceStable(m.Items, func(i, j int) bool {
		return m.Items[i].key() < m.Items[j].key()
	})
	return nil
}

// Match picks one distinct run for every item. It returns the indexes
// of the chosen runs in ascending order, or nil if some item is not
// satisfied.
func (m *MultiQ) Match(runs []MultiQRun) []int {
	if len(m.Items) == 0 || len(runs) < len(m.Items) {
		return nil
	}
	used := make([]bool, len(runs))
	var picked []int
	for _, item := range m.Items {
		found := -1
		for i, r := range runs {
			if used[i] || !r.Date.InRange(m.ValidFrom, m.ValidTo) {
				continue
			}
			if r.Division == item.Division && r.Level == item.Level && r.Event == item.Event {
				found = i
				break
			}
		}
		if found < 0 {
			return nil
		}
		used[found] = true
		picked = append(picked, found)
	}
	sort.Ints(picked)
	return picked
}

func (m *MultiQ) sweep(match func(*MultiQItem) bool, change func(*MultiQItem)) int {
	n := 0
	kept := m.Items[:0]
	for _, item := range m.Items {
		if !match(&item) {
			kept = append(kept, item)
			continue
		}
		n++
		if change != nil {
			change(&item)
			kept = append(kept, item)
		}
	}
	m.Items = kept
	return n
}

func (m *MultiQ) load(divisions DivisionList, events EventList, n *element.Node, lc LoadContext) error {
	var err error
	if m.Name, err = lc.RequiredString(n, attrName); err != nil {
		return errors.Trace(err)
	}
	if m.ShortName, err = lc.RequiredString(n, attrShortName); err != nil {
		return errors.Trace(err)
	}
	if m.ValidFrom, err = lc.OptionalDate(n, attrValidFrom); err != nil {
		return errors.Trace(err)
	}
	if m.ValidTo, err = lc.OptionalDate(n, attrValidTo); err != nil {
		return errors.Trace(err)
	}
	for _, child := range n.ChildrenNamed(elemMultiQItem) {
		div, err := lc.RequiredString(child, attrDiv)
		if err != nil {
			return errors.Trace(err)
		}
		level, err := lc.RequiredString(child, attrLevel)
		if err != nil {
			return errors.Trace(err)
		}
		event, err := lc.RequiredString(child, attrEvent)
		if err != nil {
			return errors.Trace(err)
		}
		if !divisions.VerifyLevel(div, level, false) {
			return lc.Invalid(child.Name(), attrLevel, div+"/"+level)
		}
		if events.Find(event) == nil {
			return lc.Invalid(child.Name(), attrEvent, event)
		}
		if err := m.AddItem(div, level, event); err != nil {
			lc.Callback.LogMessage(lc.Localizer.InvalidAttribValue(child.Name(), attrEvent, err.Error()))
		}
	}
	return nil
}

func (m *MultiQ) save(parent *element.Node) {
	n := parent.AddChild(elemMultiQ)
	n.SetAttrib(attrName, m.Name)
	n.SetAttrib(attrShortName, m.ShortName)
	n.SetAttribDate(attrValidFrom, m.ValidFrom)
	n.SetAttribDate(attrValidTo, m.ValidTo)
	for _, item := range m.Items {
		child := n.AddChild(elemMultiQItem)
		child.SetAttrib(attrDiv, item.Division)
		child.SetAttrib(attrLevel, item.Level)
		child.SetAttrib(attrEvent, item.Event)
	}
}

// MultiQList is the multiple Qs of a venue.
type MultiQList []*MultiQ

// Find returns the multiple Q with the given name, or nil.
func (l MultiQList) Find(name string) *MultiQ {
	for _, m := range l {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// FindShortName returns the multiple Q with the given short name.
func (l MultiQList) FindShortName(short string) *MultiQ {
	for _, m := range l {
		if m.ShortName == short {
			return m
		}
	}
	return nil
}

// Add appends a multiple Q.
func (l *MultiQList) Add(m *MultiQ) error {
	if m == nil || m.Name == "" {
		return errors.NotValidf("empty multiple Q name")
	}
	if l.Find(m.Name) != nil {
		return errors.AlreadyExistsf("multiple Q %q", m.Name)
	}
	*l = append(*l, m)
	return nil
}

// Delete removes the named multiple Q.
func (l *MultiQList) Delete(name string) bool {
	for i, m := range *l {
		if m.Name == name {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Rename changes the name of a multiple Q, failing if the new name is
// taken.
func (l MultiQList) Rename(oldName, newName string) error {
	m := l.Find(oldName)
	if m == nil {
		return errors.NotFoundf("multiple Q %q", oldName)
	}
	if oldName != newName && l.Find(newName) != nil {
		return errors.AlreadyExistsf("multiple Q %q", newName)
	}
	m.Name = newName
	return nil
}

func (l MultiQList) sweep(match func(*MultiQItem) bool, change func(*MultiQItem)) int {
	n := 0
	for _, m := range l {
		n += m.sweep(match, change)
	}
	return n
}

// RenameDivision renames the division of every item.
func (l MultiQList) RenameDivision(oldDiv, newDiv string) int {
	if oldDiv == newDiv {
		return 0
	}
	return l.sweep(
		func(i *MultiQItem) bool { return i.Division == oldDiv },
		func(i *MultiQItem) { i.Division = newDiv },
	)
}

// DeleteDivision removes every item in div.
func (l MultiQList) DeleteDivision(div string) int {
	return l.sweep(func(i *MultiQItem) bool { return i.Division == div }, nil)
}

// RenameLevel renames the level of every item in div. A wildcard div
// matches every division.
func (l MultiQList) RenameLevel(div, oldLevel, newLevel string) int {
	if oldLevel == newLevel {
		return 0
	}
	return l.sweep(
		func(i *MultiQItem) bool {
			return i.Level == oldLevel && (div == Wildcard || i.Division == div)
		},
		func(i *MultiQItem) { i.Level = newLevel },
	)
}

// DeleteLevel removes every item for level in div. A wildcard div
// matches every division.
func (l MultiQList) DeleteLevel(div, level string) int {
	return l.sweep(func(i *MultiQItem) bool {
		return i.Level == level && (div == Wildcard || i.Division == div)
	}, nil)
}

// RenameEvent renames the event of every item.
func (l MultiQList) RenameEvent(oldEvent, newEvent string) int {
	if oldEvent == newEvent {
		return 0
	}
	return l.sweep(
		func(i *MultiQItem) bool { return i.Event == oldEvent },
		func(i *MultiQItem) { i.Event = newEvent },
	)
}

// DeleteEvent removes every item for event.
func (l MultiQList) DeleteEvent(event string) int {
	return l.sweep(func(i *MultiQItem) bool { return i.Event == event }, nil)
}
