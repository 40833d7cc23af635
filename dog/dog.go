// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package dog holds the user records of a record book: dogs with their
// registration numbers, titles, existing points and trials. Records name
// configuration entities by string; loading checks those names against
// a config.Config.
package dog

import (
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

var logger = loggo.GetLogger("arb.dog")

const (
	// ElementName is the name of a dog element.
	ElementName = "Dog"

	elemRegName = "RegisteredName"
	elemBreed   = "Breed"
	elemNote    = "Note"

	attrCallName = "CallName"
	attrDOB      = "DOB"
	attrDeceased = "Deceased"
)

// Dog is one dog and everything recorded about it.
type Dog struct {
	CallName       string
	DOB            date.Date
	Deceased       date.Date
	RegisteredName string
	Breed          string
	Note           string

	ExistingPoints []*ExistingPoints
	RegNums        []*RegNum
	Titles         []*Title
	Trials         []*Trial
}

// Equal reports whether both dogs hold the same records.
func (d *Dog) Equal(o *Dog) bool {
	return d.CallName == o.CallName &&
		d.DOB == o.DOB &&
		d.Deceased == o.Deceased &&
		d.RegisteredName == o.RegisteredName &&
		d.Breed == o.Breed &&
		d.Note == o.Note &&
		equalLists(d.ExistingPoints, o.ExistingPoints) &&
		equalLists(d.RegNums, o.RegNums) &&
		equalLists(d.Titles, o.Titles) &&
		equalLists(d.Trials, o.Trials)
}

// Load reads a Dog element. Records that refer to entities cfg does not
// define are reported through lc and skipped; only a problem with the
// dog itself is returned.
func Load(cfg *config.Config, n *element.Node, lc config.LoadContext) (*Dog, error) {
	d := &Dog{}
	var err error
	if d.CallName, err = lc.RequiredString(n, attrCallName); err != nil {
		return nil, errors.Trace(err)
	}
	if d.DOB, err = lc.OptionalDate(n, attrDOB); err != nil {
		return nil, errors.Trace(err)
	}
	if d.Deceased, err = lc.OptionalDate(n, attrDeceased); err != nil {
		return nil, errors.Trace(err)
	}
	skipped := 0
	for _, child := range n.Children() {
		switch child.Name() {
		case elemRegName:
			d.RegisteredName = child.Value()
		case elemBreed:
			d.Breed = child.Value()
		case elemNote:
			d.Note = child.Value()
		case elemExistingPoints:
			p, err := loadExistingPoints(cfg, child, lc)
			if err != nil {
				skipped++
				continue
			}
			d.ExistingPoints = append(d.ExistingPoints, p)
		case elemRegNum:
			r, err := loadRegNum(cfg, child, lc)
			if err != nil {
				skipped++
				continue
			}
			d.RegNums = append(d.RegNums, r)
		case elemTitle:
			t, err := loadTitle(cfg, child, lc)
			if err != nil {
				skipped++
				continue
			}
			d.Titles = append(d.Titles, t)
		case elemTrial:
			t, err := loadTrial(cfg, child, lc)
			if err != nil {
				skipped++
				continue
			}
			d.Trials = append(d.Trials, t)
		}
	}
	if skipped > 0 {
		logger.Warningf("dog %q: skipped %d invalid record(s)", d.CallName, skipped)
	}
	return d, nil
}

// Save writes the dog as a child of parent.
func (d *Dog) Save(parent *element.Node) {
	n := parent.AddChild(ElementName)
	n.SetAttrib(attrCallName, d.CallName)
	if d.DOB.IsValid() {
		n.SetAttribDate(attrDOB, d.DOB)
	}
	if d.Deceased.IsValid() {
		n.SetAttribDate(attrDeceased, d.Deceased)
	}
	setChildText(n, elemRegName, d.RegisteredName)
	setChildText(n, elemBreed, d.Breed)
	setChildText(n, elemNote, d.Note)
	for _, p := range d.ExistingPoints {
		p.save(n)
	}
	for _, r := range d.RegNums {
		r.save(n)
	}
	for _, t := range d.Titles {
		t.save(n)
	}
	for _, t := range d.Trials {
		t.save(n)
	}
}

// List is the dogs of a record book in document order.
type List []*Dog

// Equal reports whether both lists hold the same dogs in the same order.
func (l List) Equal(o List) bool {
	return equalLists(l, o)
}

// Save writes every dog as a child of parent.
func (l List) Save(parent *element.Node) {
	for _, d := range l {
		d.Save(parent)
	}
}

// SetMultiQs recomputes the multiple Q marks of every run.
func (l List) SetMultiQs(cfg *config.Config) {
	for _, d := range l {
		for _, t := range d.Trials {
			t.SetMultiQs(cfg)
		}
	}
}

// FixTitleInstances copies the display style of each configured title
// into the dog titles that refer to it.
func (l List) FixTitleInstances(cfg *config.Config) int {
	n := 0
	for _, d := range l {
		for _, t := range d.Titles {
			venue := cfg.Venues.Find(t.Venue)
			if venue == nil {
				continue
			}
			ct := venue.Titles.Find(t.Name)
			if ct == nil || ct.MultipleStyle == t.Style {
				continue
			}
			t.Style = ct.MultipleStyle
			n++
		}
	}
	if n > 0 {
		logger.Debugf("fixed the instance style of %d title(s)", n)
	}
	return n
}

func equalLists[T interface{ Equal(T) bool }](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func setChildText(n *element.Node, name, text string) {
	if text != "" {
		n.AddChild(name).SetValue(text)
	}
}
