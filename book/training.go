// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package book

import (
	"sort"

	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

const (
	elemTraining = "Training"

	attrTrainingDate    = "Date"
	attrTrainingName    = "Name"
	attrTrainingSubName = "SubName"
)

// Training is one entry of the training log.
type Training struct {
	Date    date.Date
	Name    string
	SubName string
	Note    string
}

func loadTraining(n *element.Node, lc config.LoadContext) (*Training, error) {
	t := &Training{}
	var err error
	if t.Date, err = lc.OptionalDate(n, attrTrainingDate); err != nil {
		return nil, errors.Trace(err)
	}
	if !t.Date.IsValid() {
		return nil, lc.Missing(elemTraining, attrTrainingDate)
	}
	t.Name, _ = n.Attrib(attrTrainingName)
	t.SubName, _ = n.Attrib(attrTrainingSubName)
	t.Note = n.Value()
	return t, nil
}

func (t *Training) save(parent *element.Node) {
	n := parent.AddChild(elemTraining)
	n.SetAttribDate(attrTrainingDate, t.Date)
	setAttrib(n, attrTrainingName, t.Name)
	setAttrib(n, attrTrainingSubName, t.SubName)
	n.SetValue(t.Note)
}

// TrainingList is the training log, ordered by date.
type TrainingList []*Training

// Sort orders the log by date.
func (l TrainingList) Sort() {
	sort.SliceStable(l, func(i, j int) bool { return l[i].Date.Before(l[j].Date) })
}

// Names returns every name used in the log.
func (l TrainingList) Names() set.Strings {
	names := set.NewStrings()
	for _, t := range l {
		if t.Name != "" {
			names.Add(t.Name)
		}
	}
	return names
}

// SubNames returns every subname used in the log.
func (l TrainingList) SubNames() set.Strings {
	names := set.NewStrings()
	for _, t := range l {
		if t.SubName != "" {
			names.Add(t.SubName)
		}
	}
	return names
}

// Find reports whether an entry equal to t is in the log.
func (l TrainingList) Find(t *Training) bool {
	for _, existing := range l {
		if *existing == *t {
			return true
		}
	}
	return false
}

// Add appends t unless an equal entry is already logged.
func (l *TrainingList) Add(t *Training) bool {
	if l.Find(t) {
		return false
	}
	*l = append(*l, t)
	return true
}

// Delete removes the first entry equal to t.
func (l *TrainingList) Delete(t *Training) bool {
	for i, existing := range *l {
		if *existing == *t {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Equal reports whether both logs hold the same entries in order.
func (l TrainingList) Equal(o TrainingList) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if *l[i] != *o[i] {
			return false
		}
	}
	return true
}
