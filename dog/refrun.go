// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package dog

import (
	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

const (
	elemReferenceRun  = "ReferenceRun"
	elemRefName       = "Name"
	elemScoreOrFaults = "ScoreOrFaults"
	elemLink          = "Link"
)

// ReferenceRun records how another dog did in the same class, for
// comparison.
type ReferenceRun struct {
	Q             Q
	Place         int
	Time          float64
	Height        string
	Name          string
	Breed         string
	ScoreOrFaults string
	Note          string
}

func loadReferenceRun(n *element.Node, lc config.LoadContext) (ReferenceRun, error) {
	var ref ReferenceRun
	raw, _ := n.Attrib(attrQ)
	q, ok := parseQ(raw)
	if !ok {
		return ref, lc.Invalid(n.Name(), attrQ, lc.Localizer.ValidValues(qualifyingNames()...))
	}
	ref.Q = q
	var err error
	if ref.Place, err = lc.OptionalInt(n, attrPlace, 0); err != nil {
		return ref, errors.Trace(err)
	}
	if ref.Time, err = lc.OptionalFloat(n, attrTime, 0); err != nil {
		return ref, errors.Trace(err)
	}
	ref.Height, _ = n.Attrib(attrHeight)
	for _, child := range n.Children() {
		switch child.Name() {
		case elemRefName:
			ref.Name = child.Value()
		case elemBreed:
			ref.Breed = child.Value()
		case elemScoreOrFaults:
			ref.ScoreOrFaults = child.Value()
		case elemNote:
			ref.Note = child.Value()
		}
	}
	return ref, nil
}

func (ref ReferenceRun) save(parent *element.Node) {
	n := parent.AddChild(elemReferenceRun)
	if ref.Q != QUnknown {
		n.SetAttrib(attrQ, string(ref.Q))
	}
	n.SetAttribInt(attrPlace, ref.Place)
	n.SetAttribFloat(attrTime, ref.Time)
	if ref.Height != "" {
		n.SetAttrib(attrHeight, ref.Height)
	}
	setChildText(n, elemRefName, ref.Name)
	setChildText(n, elemBreed, ref.Breed)
	setChildText(n, elemScoreOrFaults, ref.ScoreOrFaults)
	setChildText(n, elemNote, ref.Note)
}
