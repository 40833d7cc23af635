// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"sort"

	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/internal/element"
	"github.com/dconnet/AgilityBook-sub002/localization"
)

const (
	elemTitlePoints    = "TitlePoints"
	elemLifetimePoints = "LifeTime"
	elemPlaceInfo      = "PlaceInfo"

	attrPoints   = "Points"
	attrFaults   = "Faults"
	attrSpeedPts = "speedPts"
	attrPlace    = "Place"
	attrValue    = "Value"
	attrMustQ    = "MustQ"
)

// PointsType selects how a title points table is read.
type PointsType string

const (
	// PointsNormal tables are keyed by faults.
	PointsNormal PointsType = "Normal"
	// PointsT2B tables are keyed by time as a percentage of SCT.
	PointsT2B PointsType = "T2B"
	// PointsUKI tables are keyed by placement.
	PointsUKI PointsType = "UKI"
	// PointsTop10USDAA tables are keyed by placement.
	PointsTop10USDAA PointsType = "Top10USDAA"
)

var pointsTypes = []PointsType{PointsNormal, PointsT2B, PointsUKI, PointsTop10USDAA}

// Validate returns an error if t is not a known points type.
func (t PointsType) Validate() error {
	for _, known := range pointsTypes {
		if t == known {
			return nil
		}
	}
	return errors.NotValidf("title points type %q", string(t))
}

// ByPlacement reports whether the table is keyed by placement.
func (t PointsType) ByPlacement() bool {
	return t == PointsUKI || t == PointsTop10USDAA
}

// TitlePoints awards Points for a run whose key (faults, percentage or
// placement, depending on the table type) reaches Faults.
type TitlePoints struct {
	Points float64
	Faults float64
}

// Equal reports whether both entries hold the same values.
func (p *TitlePoints) Equal(o *TitlePoints) bool {
	return *p == *o
}

// Name formats the entry for display.
func (p *TitlePoints) Name(t PointsType, loc localization.Localizer) string {
	if t.ByPlacement() {
		return loc.PlacementPointsNameFormat(p.Points, int(p.Faults))
	}
	return loc.TitlePointsNameFormat(p.Points, p.Faults)
}

// TitlePointsList is a points table kept sorted by key.
type TitlePointsList struct {
	Type  PointsType
	Items []*TitlePoints
}

// Equal reports whether both tables hold the same values.
func (l *TitlePointsList) Equal(o *TitlePointsList) bool {
	return l.Type == o.Type && equalLists(l.Items, o.Items)
}

// SetType changes the table type. The entries of a table of one type
// mean nothing in another, so they are discarded.
func (l *TitlePointsList) SetType(t PointsType) {
	if l.Type == t {
		return
	}
	l.Type = t
	l.Items = nil
}

// Find returns the entry with exactly the given key, or nil.
func (l *TitlePointsList) Find(faults float64) *TitlePoints {
	for _, p := range l.Items {
		if p.Faults == faults {
			return p
		}
	}
	return nil
}

// Add inserts an entry, keeping the table sorted.
func (l *TitlePointsList) Add(points, faults float64) (*TitlePoints, error) {
	if l.Find(faults) != nil {
		return nil, errors.AlreadyExistsf("title points for %v", faults)
	}
	p := &TitlePoints{Points: points, Faults: faults}
	l.Items = append(l.Items, p)
	l.sort()
	return p, nil
}

// Delete removes the entry with the given key.
func (l *TitlePointsList) Delete(faults float64) bool {
	for i, p := range l.Items {
		if p.Faults == faults {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (l *TitlePointsList) sort() {
	sort.SliceStable(l.Items, func(i, j int) bool {
		return l.Items[i].Faults < l.Items[j].Faults
	})
}

// Points returns the points of the entry with the largest key not
// exceeding key, or 0 if there is none.
func (l *TitlePointsList) Points(key float64) float64 {
	var points float64
	for _, p := range l.Items {
		if p.Faults > key {
			break
		}
		points = p.Points
	}
	return points
}

// RunPoints returns the title points earned by a run. faults is used by
// Normal tables; time and sct by T2B tables; place by placement tables.
func (l *TitlePointsList) RunPoints(faults, time, sct float64, place int) float64 {
	switch l.Type {
	case PointsT2B:
		if sct <= 0 || time <= 0 {
			return 0
		}
		return l.Points(time / sct * 100)
	case PointsUKI, PointsTop10USDAA:
		if p := l.Find(float64(place)); p != nil && place > 0 {
			return p.Points
		}
		return 0
	}
	return l.Points(faults)
}

func (l *TitlePointsList) load(n *element.Node, lc LoadContext) error {
	points, lookup := n.AttribFloat(attrPoints)
	if lookup != element.Found {
		return lc.Missing(n.Name(), attrPoints)
	}
	faults, lookup := n.AttribFloat(attrFaults)
	if lookup != element.Found {
		return lc.Missing(n.Name(), attrFaults)
	}
	if _, err := l.Add(points, faults); err != nil {
		lc.Callback.LogMessage(lc.Localizer.InvalidAttribValue(n.Name(), attrFaults, err.Error()))
		return errors.Trace(err)
	}
	return nil
}

func (l *TitlePointsList) save(parent *element.Node) {
	for _, p := range l.Items {
		n := parent.AddChild(elemTitlePoints)
		n.SetAttribFloat(attrPoints, p.Points)
		n.SetAttribFloat(attrFaults, p.Faults)
	}
}

// LifetimePoints awards Points towards the lifetime total Name. When
// SpeedPts is set the run's speed points are used instead.
type LifetimePoints struct {
	Name     string
	SpeedPts bool
	Points   float64
	Faults   float64
}

// Equal reports whether both entries hold the same values.
func (p *LifetimePoints) Equal(o *LifetimePoints) bool {
	return *p == *o
}

// DisplayName formats the entry for display.
func (p *LifetimePoints) DisplayName(loc localization.Localizer) string {
	if p.SpeedPts {
		return loc.LifetimePointsNameWithSpeedPointsFormat(p.Faults)
	}
	return loc.LifetimePointsNameFormat(p.Points, p.Faults)
}

// LifetimePointsList is a lifetime points table kept sorted by name and
// faults.
type LifetimePointsList []*LifetimePoints

// Add inserts an entry, keeping the table sorted.
func (l *LifetimePointsList) Add(name string, speedPts bool, points, faults float64) (*LifetimePoints, error) {
	for _, p := range *l {
		if p.Name == name && p.Faults == faults {
			return nil, errors.AlreadyExistsf("lifetime points %q for %v", name, faults)
		}
	}
	p := &LifetimePoints{Name: name, SpeedPts: speedPts, Points: points, Faults: faults}
	*l = append(*l, p)
	sort.SliceStable(*l, func(i, j int) bool {
		a, b := (*l)[i], (*l)[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Faults < b.Faults
	})
	return p, nil
}

// Points returns the lifetime points for name earned by a run with the
// given faults and speed points.
func (l LifetimePointsList) Points(name string, faults, speedPts float64) float64 {
	var found *LifetimePoints
	for _, p := range l {
		if p.Name != name || p.Faults > faults {
			continue
		}
		if found == nil || p.Faults > found.Faults {
			found = p
		}
	}
	switch {
	case found == nil:
		return 0
	case found.SpeedPts:
		return speedPts
	}
	return found.Points
}

// RenameName renames every entry counted towards oldName.
func (l LifetimePointsList) RenameName(oldName, newName string) int {
	n := 0
	for _, p := range l {
		if p.Name == oldName {
			p.Name = newName
			n++
		}
	}
	return n
}

// DeleteName removes every entry counted towards name.
func (l *LifetimePointsList) DeleteName(name string) int {
	kept := (*l)[:0]
	n := 0
	for _, p := range *l {
		if p.Name == name {
			n++
			continue
		}
		kept = append(kept, p)
	}
	*l = kept
	return n
}

func (l *LifetimePointsList) load(n *element.Node, lc LoadContext) error {
	name, _ := n.Attrib(attrName)
	speed, err := lc.OptionalBool(n, attrSpeedPts, false)
	if err != nil {
		return errors.Trace(err)
	}
	points, lookup := n.AttribFloat(attrPoints)
	if lookup != element.Found && !speed {
		return lc.Missing(n.Name(), attrPoints)
	}
	faults, lookup := n.AttribFloat(attrFaults)
	if lookup != element.Found {
		return lc.Missing(n.Name(), attrFaults)
	}
	if _, err := l.Add(name, speed, points, faults); err != nil {
		lc.Callback.LogMessage(lc.Localizer.InvalidAttribValue(n.Name(), attrFaults, err.Error()))
		return errors.Trace(err)
	}
	return nil
}

func (l LifetimePointsList) save(parent *element.Node) {
	for _, p := range l {
		n := parent.AddChild(elemLifetimePoints)
		if p.Name != "" {
			n.SetAttrib(attrName, p.Name)
		}
		if p.SpeedPts {
			n.SetAttribBool(attrSpeedPts, true)
		} else {
			n.SetAttribFloat(attrPoints, p.Points)
		}
		n.SetAttribFloat(attrFaults, p.Faults)
	}
}

// PlaceInfo is the speed point multiplier for a placement.
type PlaceInfo struct {
	Place int
	Value float64
	MustQ bool
}

// Equal reports whether both entries hold the same values.
func (p *PlaceInfo) Equal(o *PlaceInfo) bool {
	return *p == *o
}

// PlaceInfoList is kept sorted by place.
type PlaceInfoList []*PlaceInfo

// Value returns the multiplier for place and whether the run must have
// qualified to earn it.
func (l PlaceInfoList) Value(place int) (float64, bool, bool) {
	for _, p := range l {
		if p.Place == place {
			return p.Value, p.MustQ, true
		}
	}
	return 0, false, false
}

// Add inserts an entry, keeping the list sorted.
func (l *PlaceInfoList) Add(place int, value float64, mustQ bool) (*PlaceInfo, error) {
	if _, _, ok := l.Value(place); ok {
		return nil, errors.AlreadyExistsf("place info for place %d", place)
	}
	p := &PlaceInfo{Place: place, Value: value, MustQ: mustQ}
	*l = append(*l, p)
	sort.SliceStable(*l, func(i, j int) bool { return (*l)[i].Place < (*l)[j].Place })
	return p, nil
}

func (l *PlaceInfoList) load(n *element.Node, lc LoadContext) error {
	place, lookup := n.AttribInt(attrPlace)
	if lookup != element.Found {
		return lc.Missing(n.Name(), attrPlace)
	}
	value, lookup := n.AttribFloat(attrValue)
	if lookup != element.Found {
		return lc.Missing(n.Name(), attrValue)
	}
	mustQ, err := lc.OptionalBool(n, attrMustQ, true)
	if err != nil {
		return errors.Trace(err)
	}
	if _, err := l.Add(place, value, mustQ); err != nil {
		lc.Callback.LogMessage(lc.Localizer.InvalidAttribValue(n.Name(), attrPlace, err.Error()))
		return errors.Trace(err)
	}
	return nil
}

func (l PlaceInfoList) save(parent *element.Node) {
	for _, p := range l {
		n := parent.AddChild(elemPlaceInfo)
		n.SetAttribInt(attrPlace, p.Place)
		n.SetAttribFloat(attrValue, p.Value)
		n.SetAttribBool(attrMustQ, p.MustQ)
	}
}
