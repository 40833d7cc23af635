// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"sort"
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

const (
	elemFaultType    = "FaultType"
	elemOtherPts     = "OtherPts"
	elemLifetimeName = "LifetimeName"

	attrCount    = "Count"
	attrDefValue = "defValue"
)

// FaultList is the set of fault names a run may record.
type FaultList []string

// Find reports whether name is a known fault.
func (l FaultList) Find(name string) bool {
	return set.NewStrings(l...).Contains(name)
}

// Add appends a fault name.
func (l *FaultList) Add(name string) error {
	if name == "" {
		return errors.NotValidf("empty fault name")
	}
	if l.Find(name) {
		return errors.AlreadyExistsf("fault %q", name)
	}
	*l = append(*l, name)
	return nil
}

// Delete removes a fault name.
func (l *FaultList) Delete(name string) bool {
	for i, f := range *l {
		if f == name {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// OtherPointsTally is how other points are accumulated.
type OtherPointsTally string

const (
	TallyAll          OtherPointsTally = "All"
	TallyAllByEvent   OtherPointsTally = "AllByEvent"
	TallyLevel        OtherPointsTally = "Level"
	TallyLevelByEvent OtherPointsTally = "LevelByEvent"
)

// Validate returns an error if t is not a known tally.
func (t OtherPointsTally) Validate() error {
	switch t {
	case TallyAll, TallyAllByEvent, TallyLevel, TallyLevelByEvent:
		return nil
	}
	return errors.NotValidf("other points tally %q", string(t))
}

// OtherPoints defines points tracked outside the scoring rules, such as
// breed points.
type OtherPoints struct {
	Name    string
	Desc    string
	Tally   OtherPointsTally
	Default float64
}

// Equal reports whether both definitions hold the same values.
func (o *OtherPoints) Equal(other *OtherPoints) bool {
	return *o == *other
}

func (o *OtherPoints) load(n *element.Node, lc LoadContext) error {
	var err error
	if o.Name, err = lc.RequiredString(n, attrName); err != nil {
		return errors.Trace(err)
	}
	tally, lookup := n.Attrib(attrCount)
	if lookup != element.Found {
		return lc.Missing(n.Name(), attrCount)
	}
	o.Tally = OtherPointsTally(tally)
	if err := o.Tally.Validate(); err != nil {
		return lc.Invalid(n.Name(), attrCount, lc.Localizer.ValidValues(
			string(TallyAll), string(TallyAllByEvent), string(TallyLevel), string(TallyLevelByEvent)))
	}
	if o.Default, err = lc.OptionalFloat(n, attrDefValue, 0); err != nil {
		return errors.Trace(err)
	}
	o.Desc = n.Value()
	return nil
}

func (o *OtherPoints) save(parent *element.Node) {
	n := parent.AddChild(elemOtherPts)
	n.SetAttrib(attrName, o.Name)
	n.SetAttrib(attrCount, string(o.Tally))
	n.SetAttribFloat(attrDefValue, o.Default)
	n.SetValue(o.Desc)
}

// OtherPointsList holds the other points definitions, sorted by name.
type OtherPointsList []*OtherPoints

// Find returns the definition with the given name, or nil.
func (l OtherPointsList) Find(name string) *OtherPoints {
	for _, o := range l {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Add inserts a definition, keeping the list sorted.
func (l *OtherPointsList) Add(o *OtherPoints) error {
	if o == nil || o.Name == "" {
		return errors.NotValidf("empty other points name")
	}
	if l.Find(o.Name) != nil {
		return errors.AlreadyExistsf("other points %q", o.Name)
	}
	*l = append(*l, o)
	sort.SliceStable(*l, func(i, j int) bool {
		return strings.ToLower((*l)[i].Name) < strings.ToLower((*l)[j].Name)
	})
	return nil
}

// Delete removes the named definition.
func (l *OtherPointsList) Delete(name string) bool {
	for i, o := range *l {
		if o.Name == name {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Rename changes the name of a definition, failing if the new name is
// taken.
func (l OtherPointsList) Rename(oldName, newName string) error {
	o := l.Find(oldName)
	if o == nil {
		return errors.NotFoundf("other points %q", oldName)
	}
	if oldName != newName && l.Find(newName) != nil {
		return errors.AlreadyExistsf("other points %q", newName)
	}
	o.Name = newName
	return nil
}

// LifetimeNameList is the set of lifetime point totals a venue keeps.
// The unnamed total always exists implicitly.
type LifetimeNameList []string

// Find reports whether name is defined.
func (l LifetimeNameList) Find(name string) bool {
	return set.NewStrings(l...).Contains(name)
}

// Add appends a lifetime name.
func (l *LifetimeNameList) Add(name string) error {
	if l.Find(name) {
		return errors.AlreadyExistsf("lifetime name %q", name)
	}
	*l = append(*l, name)
	return nil
}

// Delete removes a lifetime name.
func (l *LifetimeNameList) Delete(name string) bool {
	for i, n := range *l {
		if n == name {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Rename changes a lifetime name, failing if the new name is taken.
func (l LifetimeNameList) Rename(oldName, newName string) error {
	for i, n := range l {
		if n == oldName {
			if oldName != newName && l.Find(newName) {
				return errors.AlreadyExistsf("lifetime name %q", newName)
			}
			l[i] = newName
			return nil
		}
	}
	return errors.NotFoundf("lifetime name %q", oldName)
}
