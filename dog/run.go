// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package dog

import (
	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

const (
	elemRun         = "Run"
	elemConditions  = "Conditions"
	elemJudge       = "Judge"
	elemHandler     = "Handler"
	elemPartner     = "Partner"
	elemByTime      = "ByTime"
	elemByOpenClose = "ByOpenClose"
	elemByPoints    = "ByPoints"
	elemPlacement   = "Placement"
	elemOtherPoints = "OtherPoints"
	elemNotes       = "Notes"
	elemFaults      = "Faults"
	elemOther       = "Other"

	attrDivision     = "Division"
	attrHandlerName  = "Handler"
	attrDog          = "Dog"
	attrRegNum       = "RegNum"
	attrCourseFaults = "CourseFaults"
	attrTime         = "Time"
	attrSCT          = "SCT"
	attrSCT2         = "SCT2"
	attrYards        = "Yards"
	attrNeedOpenPts  = "NeedOpenPts"
	attrNeedClosePts = "NeedClosePts"
	attrOpenPts      = "OpenPts"
	attrClosePts     = "ClosePts"
	attrNeedPts      = "NeedPts"
	attrPoints       = "Points"
	attrQ            = "Q"
	attrPlace        = "Place"
	attrInClass      = "InClass"
	attrDogsQd       = "DogsQd"
	attrHasTable     = "hasTable"
)

// Q is the qualifying status of a run.
type Q string

const (
	QUnknown Q = ""
	QNA      Q = "NA"
	QDNR     Q = "DNR"
	QE       Q = "E"
	QNQ      Q = "NQ"
	QQ       Q = "Q"
	QSQ      Q = "SQ"
	QFEO     Q = "FEO"
)

var qualifyingValues = []Q{QNA, QDNR, QE, QNQ, QQ, QSQ, QFEO}

// Qualified reports whether the run counts as a qualifying run.
func (q Q) Qualified() bool {
	return q == QQ || q == QSQ
}

func qualifyingNames() []string {
	names := make([]string, len(qualifyingValues))
	for i, v := range qualifyingValues {
		names[i] = string(v)
	}
	return names
}

func parseQ(raw string) (Q, bool) {
	if raw == "" {
		return QUnknown, true
	}
	for _, q := range qualifyingValues {
		if raw == string(q) {
			return q, true
		}
	}
	return "", false
}

// ScoringType is the way the result of a run is recorded.
type ScoringType string

const (
	ByTime      ScoringType = elemByTime
	ByOpenClose ScoringType = elemByOpenClose
	ByPoints    ScoringType = elemByPoints
)

// ScoringTypeFor returns the way runs scored in style are recorded.
func ScoringTypeFor(style config.ScoringStyle) ScoringType {
	switch style {
	case config.OCScoreThenTime:
		return ByOpenClose
	case config.ScoreThenTime:
		return ByPoints
	}
	return ByTime
}

// RunScoring is the recorded result of a run. Which fields are
// meaningful depends on Type.
type RunScoring struct {
	Type         ScoringType
	CourseFaults int
	Time         float64
	SCT          float64
	SCT2         float64
	Yards        float64
	NeedOpenPts  int
	NeedClosePts int
	OpenPts      int
	ClosePts     int
	// HasTable records that the course had a table.
	HasTable bool
}

func (s *RunScoring) load(n *element.Node, lc config.LoadContext) error {
	s.Type = ScoringType(n.Name())
	var err error
	if s.CourseFaults, err = lc.OptionalInt(n, attrCourseFaults, 0); err != nil {
		return errors.Trace(err)
	}
	if s.Time, err = lc.OptionalFloat(n, attrTime, 0); err != nil {
		return errors.Trace(err)
	}
	if s.SCT, err = lc.OptionalFloat(n, attrSCT, 0); err != nil {
		return errors.Trace(err)
	}
	if s.HasTable, err = lc.OptionalBool(n, attrHasTable, false); err != nil {
		return errors.Trace(err)
	}
	switch s.Type {
	case ByTime:
		if s.Yards, err = lc.OptionalFloat(n, attrYards, 0); err != nil {
			return errors.Trace(err)
		}
	case ByOpenClose:
		if s.SCT2, err = lc.OptionalFloat(n, attrSCT2, 0); err != nil {
			return errors.Trace(err)
		}
		if s.NeedOpenPts, err = lc.OptionalInt(n, attrNeedOpenPts, 0); err != nil {
			return errors.Trace(err)
		}
		if s.NeedClosePts, err = lc.OptionalInt(n, attrNeedClosePts, 0); err != nil {
			return errors.Trace(err)
		}
		if s.OpenPts, err = lc.OptionalInt(n, attrOpenPts, 0); err != nil {
			return errors.Trace(err)
		}
		if s.ClosePts, err = lc.OptionalInt(n, attrClosePts, 0); err != nil {
			return errors.Trace(err)
		}
	case ByPoints:
		// Points runs keep their totals in the open fields.
		if s.NeedOpenPts, err = lc.OptionalInt(n, attrNeedPts, 0); err != nil {
			return errors.Trace(err)
		}
		if s.OpenPts, err = lc.OptionalInt(n, attrPoints, 0); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func (s *RunScoring) save(parent *element.Node) {
	kind := s.Type
	if kind == "" {
		kind = ByTime
	}
	n := parent.AddChild(string(kind))
	n.SetAttribInt(attrCourseFaults, s.CourseFaults)
	n.SetAttribFloat(attrTime, s.Time)
	n.SetAttribFloat(attrSCT, s.SCT)
	if s.HasTable {
		n.SetAttribBool(attrHasTable, true)
	}
	switch kind {
	case ByTime:
		n.SetAttribFloat(attrYards, s.Yards)
	case ByOpenClose:
		n.SetAttribFloat(attrSCT2, s.SCT2)
		n.SetAttribInt(attrNeedOpenPts, s.NeedOpenPts)
		n.SetAttribInt(attrNeedClosePts, s.NeedClosePts)
		n.SetAttribInt(attrOpenPts, s.OpenPts)
		n.SetAttribInt(attrClosePts, s.ClosePts)
	case ByPoints:
		n.SetAttribInt(attrNeedPts, s.NeedOpenPts)
		n.SetAttribInt(attrPoints, s.OpenPts)
	}
}

// Partner is the other team of a pairs run.
type Partner struct {
	Handler string
	Dog     string
	RegNum  string
}

// RunOtherPoints are other points earned in a run.
type RunOtherPoints struct {
	Name   string
	Points float64
}

// Run is one run of a dog at a trial. Division, Level and Event name
// entities of the venue of one of the trial's clubs; Level may be a
// sublevel.
type Run struct {
	Date       date.Date
	Division   string
	Level      string
	Height     string
	Event      string
	SubName    string
	Conditions string
	Judge      string
	Handler    string
	Partners   []Partner
	Scoring    RunScoring

	Q           Q
	Place       int
	InClass     int
	DogsQd      int
	OtherPoints []RunOtherPoints

	Faults []string
	Note   string

	RefRuns []ReferenceRun
	// Links name files or web pages about the run, without duplicates.
	Links []string

	// MultiQs names the multiple Qs this run is part of. It is derived
	// by Trial.SetMultiQs and never saved.
	MultiQs []string
}

// Equal reports whether both runs hold the same recorded values. The
// derived multiple Q marks are ignored.
func (r *Run) Equal(o *Run) bool {
	return r.Date == o.Date &&
		r.Division == o.Division &&
		r.Level == o.Level &&
		r.Height == o.Height &&
		r.Event == o.Event &&
		r.SubName == o.SubName &&
		r.Conditions == o.Conditions &&
		r.Judge == o.Judge &&
		r.Handler == o.Handler &&
		equalValues(r.Partners, o.Partners) &&
		r.Scoring == o.Scoring &&
		r.Q == o.Q &&
		r.Place == o.Place &&
		r.InClass == o.InClass &&
		r.DogsQd == o.DogsQd &&
		equalValues(r.OtherPoints, o.OtherPoints) &&
		equalValues(r.Faults, o.Faults) &&
		r.Note == o.Note &&
		equalValues(r.RefRuns, o.RefRuns) &&
		equalValues(r.Links, o.Links)
}

// SyncScoringType changes the recorded scoring type to match style.
// It reports whether anything changed.
func (r *Run) SyncScoringType(style config.ScoringStyle) bool {
	want := ScoringTypeFor(style)
	if r.Scoring.Type == want {
		return false
	}
	r.Scoring.Type = want
	return true
}

func equalValues[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func loadRun(cfg *config.Config, t *Trial, n *element.Node, lc config.LoadContext) (*Run, error) {
	r := &Run{DogsQd: -1}
	var err error
	if r.Date, err = lc.OptionalDate(n, attrDate); err != nil {
		return nil, errors.Trace(err)
	}
	if !r.Date.IsValid() {
		return nil, lc.Missing(n.Name(), attrDate)
	}
	if r.Division, err = lc.RequiredString(n, attrDivision); err != nil {
		return nil, errors.Trace(err)
	}
	if r.Level, err = lc.RequiredString(n, attrLevel); err != nil {
		return nil, errors.Trace(err)
	}
	if r.Event, err = lc.RequiredString(n, attrEvent); err != nil {
		return nil, errors.Trace(err)
	}
	r.Height, _ = n.Attrib(attrHeight)
	r.SubName, _ = n.Attrib(attrSubName)

	_, scoring := t.FindEvent(cfg, r.Event, r.Division, r.Level, r.Date)
	if scoring == nil {
		venue := ""
		if club := t.PrimaryClub(); club != nil {
			venue = club.Venue
		}
		return nil, lc.Invalid(n.Name(), attrEvent, lc.Localizer.InvalidEventName(venue, r.Event))
	}

	for _, child := range n.Children() {
		switch child.Name() {
		case elemConditions:
			r.Conditions = child.Value()
		case elemJudge:
			r.Judge = child.Value()
		case elemHandler:
			r.Handler = child.Value()
		case elemPartner:
			p := Partner{}
			p.Handler, _ = child.Attrib(attrHandlerName)
			p.Dog, _ = child.Attrib(attrDog)
			p.RegNum, _ = child.Attrib(attrRegNum)
			r.Partners = append(r.Partners, p)
		case elemByTime, elemByOpenClose, elemByPoints:
			if err := r.Scoring.load(child, lc); err != nil {
				return nil, errors.Trace(err)
			}
		case elemPlacement:
			if err := r.loadPlacement(cfg, child, lc); err != nil {
				return nil, errors.Trace(err)
			}
		case elemNotes:
			for _, note := range child.Children() {
				switch note.Name() {
				case elemFaults:
					r.Faults = append(r.Faults, note.Value())
				case elemOther:
					r.Note = note.Value()
				}
			}
		case elemReferenceRun:
			// A bad reference run does not cost the run.
			ref, err := loadReferenceRun(child, lc)
			if err != nil {
				logger.Debugf("skipping reference run: %v", err)
				continue
			}
			r.RefRuns = append(r.RefRuns, ref)
		case elemLink:
			if link := child.Value(); link != "" && !set.NewStrings(r.Links...).Contains(link) {
				r.Links = append(r.Links, link)
			}
		}
	}
	if r.Scoring.Type == "" {
		r.Scoring.Type = ScoringTypeFor(scoring.Style)
	}
	return r, nil
}

func (r *Run) loadPlacement(cfg *config.Config, n *element.Node, lc config.LoadContext) error {
	raw, _ := n.Attrib(attrQ)
	q, ok := parseQ(raw)
	if !ok {
		return lc.Invalid(n.Name(), attrQ, lc.Localizer.ValidValues(qualifyingNames()...))
	}
	r.Q = q
	var err error
	if r.Place, err = lc.OptionalInt(n, attrPlace, 0); err != nil {
		return errors.Trace(err)
	}
	if r.InClass, err = lc.OptionalInt(n, attrInClass, 0); err != nil {
		return errors.Trace(err)
	}
	if r.DogsQd, err = lc.OptionalInt(n, attrDogsQd, -1); err != nil {
		return errors.Trace(err)
	}
	for _, child := range n.ChildrenNamed(elemOtherPoints) {
		name, err := lc.RequiredString(child, attrName)
		if err != nil {
			return errors.Trace(err)
		}
		if cfg.OtherPoints.Find(name) == nil {
			return lc.Invalid(child.Name(), attrName, lc.Localizer.InvalidOtherPtsName(name))
		}
		pts, err := lc.OptionalFloat(child, attrPoints, 0)
		if err != nil {
			return errors.Trace(err)
		}
		r.OtherPoints = append(r.OtherPoints, RunOtherPoints{Name: name, Points: pts})
	}
	return nil
}

func (r *Run) save(parent *element.Node) {
	n := parent.AddChild(elemRun)
	n.SetAttribDate(attrDate, r.Date)
	n.SetAttrib(attrDivision, r.Division)
	n.SetAttrib(attrLevel, r.Level)
	if r.Height != "" {
		n.SetAttrib(attrHeight, r.Height)
	}
	n.SetAttrib(attrEvent, r.Event)
	if r.SubName != "" {
		n.SetAttrib(attrSubName, r.SubName)
	}
	setChildText(n, elemConditions, r.Conditions)
	setChildText(n, elemJudge, r.Judge)
	setChildText(n, elemHandler, r.Handler)
	for _, p := range r.Partners {
		child := n.AddChild(elemPartner)
		child.SetAttrib(attrHandlerName, p.Handler)
		child.SetAttrib(attrDog, p.Dog)
		if p.RegNum != "" {
			child.SetAttrib(attrRegNum, p.RegNum)
		}
	}
	r.Scoring.save(n)

	placement := n.AddChild(elemPlacement)
	if r.Q != QUnknown {
		placement.SetAttrib(attrQ, string(r.Q))
	}
	placement.SetAttribInt(attrPlace, r.Place)
	placement.SetAttribInt(attrInClass, r.InClass)
	if r.DogsQd >= 0 {
		placement.SetAttribInt(attrDogsQd, r.DogsQd)
	}
	for _, op := range r.OtherPoints {
		child := placement.AddChild(elemOtherPoints)
		child.SetAttrib(attrName, op.Name)
		child.SetAttribFloat(attrPoints, op.Points)
	}

	if len(r.Faults) > 0 || r.Note != "" {
		notes := n.AddChild(elemNotes)
		for _, f := range r.Faults {
			notes.AddChild(elemFaults).SetValue(f)
		}
		setChildText(notes, elemOther, r.Note)
	}
	for _, ref := range r.RefRuns {
		ref.save(n)
	}
	for _, link := range r.Links {
		setChildText(n, elemLink, link)
	}
}
