// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

const (
	elemScoring = "Scoring"
	elemNote    = "Note"

	attrValidFrom      = "ValidFrom"
	attrValidTo        = "ValidTo"
	attrDivision       = "Division"
	attrLevel          = "Level"
	attrStyle          = "type"
	attrDropFractions  = "dropFractions"
	attrCleanQ         = "cleanQ"
	attrUnderTF        = "underTF"
	attrOverTF         = "overTF"
	attrSubtractTF     = "subtractTF"
	attrTimeFault      = "timeFault"
	attrOpeningPts     = "OpeningPts"
	attrClosingPts     = "ClosingPts"
	attrSuperQ         = "superQ"
	attrFEO            = "FEO"
	attrBonusPts       = "bonusPts"
	attrTitlePtsType   = "TitlePtsType"

	defaultTFMultiplier = 1
)

// ScoringStyle is the way a run is scored.
type ScoringStyle string

const (
	FaultsThenTime    ScoringStyle = "FaultsThenTime"
	Faults100ThenTime ScoringStyle = "Faults100ThenTime"
	Faults200ThenTime ScoringStyle = "Faults200ThenTime"
	OCScoreThenTime   ScoringStyle = "OCScoreThenTime"
	ScoreThenTime     ScoringStyle = "ScoreThenTime"
	TimePlusFaults    ScoringStyle = "TimePlusFaults"
	TimeNoPlaces      ScoringStyle = "TimeNoPlaces"
	PassFail          ScoringStyle = "PassFail"
)

var scoringStyles = []ScoringStyle{
	FaultsThenTime, Faults100ThenTime, Faults200ThenTime,
	OCScoreThenTime, ScoreThenTime, TimePlusFaults, TimeNoPlaces, PassFail,
}

// Validate returns an error if s is not a known style.
func (s ScoringStyle) Validate() error {
	for _, known := range scoringStyles {
		if s == known {
			return nil
		}
	}
	return errors.NotValidf("scoring style %q", string(s))
}

// HasOpenClosePoints reports whether runs in this style need opening
// and closing points.
func (s ScoringStyle) HasOpenClosePoints() bool {
	return s == OCScoreThenTime || s == ScoreThenTime
}

// Scoring is the rule for an event in one division and level, in force
// between ValidFrom and ValidTo. Division and Level may be Wildcard.
type Scoring struct {
	ValidFrom date.Date
	ValidTo   date.Date
	Division  string
	Level     string
	Style     ScoringStyle
	Note      string

	DropFractions       bool
	CleanQ              bool
	TimeFaultsUnder     bool
	TimeFaultsOver      bool
	SubtractTimeFaults  bool
	TimeFaultMultiplier int
	OpeningPts          int
	ClosingPts          int
	SuperQ              bool
	FEO                 bool
	SpeedPts            bool
	BonusTitlePts       bool

	PlaceInfo      PlaceInfoList
	TitlePoints    TitlePointsList
	LifetimePoints LifetimePointsList
}

// NewScoring returns a scoring rule with the usual defaults.
func NewScoring(div, level string, style ScoringStyle) *Scoring {
	return &Scoring{
		Division:            div,
		Level:               level,
		Style:               style,
		TimeFaultMultiplier: defaultTFMultiplier,
		TitlePoints:         TitlePointsList{Type: PointsNormal},
	}
}

// SetStyle changes the scoring style. Opening and closing points are
// cleared for styles that do not use them.
func (s *Scoring) SetStyle(style ScoringStyle) {
	s.Style = style
	if !style.HasOpenClosePoints() {
		s.OpeningPts = 0
		s.ClosingPts = 0
	}
}

// IsValidOn reports whether the rule is in force on d. An invalid d
// matches every rule.
func (s *Scoring) IsValidOn(d date.Date) bool {
	if !d.IsValid() {
		return true
	}
	return d.InRange(s.ValidFrom, s.ValidTo)
}

// Equal reports whether both rules hold the same values.
func (s *Scoring) Equal(o *Scoring) bool {
	return s.ValidFrom == o.ValidFrom &&
		s.ValidTo == o.ValidTo &&
		s.Division == o.Division &&
		s.Level == o.Level &&
		s.Style == o.Style &&
		s.Note == o.Note &&
		s.DropFractions == o.DropFractions &&
		s.CleanQ == o.CleanQ &&
		s.TimeFaultsUnder == o.TimeFaultsUnder &&
		s.TimeFaultsOver == o.TimeFaultsOver &&
		s.SubtractTimeFaults == o.SubtractTimeFaults &&
		s.TimeFaultMultiplier == o.TimeFaultMultiplier &&
		s.OpeningPts == o.OpeningPts &&
		s.ClosingPts == o.ClosingPts &&
		s.SuperQ == o.SuperQ &&
		s.FEO == o.FEO &&
		s.SpeedPts == o.SpeedPts &&
		s.BonusTitlePts == o.BonusTitlePts &&
		equalLists(s.PlaceInfo, o.PlaceInfo) &&
		s.TitlePoints.Equal(&o.TitlePoints) &&
		equalLists(s.LifetimePoints, o.LifetimePoints)
}

func (s *Scoring) load(divisions DivisionList, n *element.Node, lc LoadContext) error {
	var err error
	if s.Division, err = lc.RequiredString(n, attrDivision); err != nil {
		return errors.Trace(err)
	}
	if s.Level, err = lc.RequiredString(n, attrLevel); err != nil {
		return errors.Trace(err)
	}
	if !divisions.Verify(s.Division, true) {
		return lc.Invalid(n.Name(), attrDivision, s.Division)
	}
	if !divisions.VerifyScoringLevel(s.Division, s.Level) {
		return lc.Invalid(n.Name(), attrLevel, s.Level)
	}
	style, lookup := n.Attrib(attrStyle)
	if lookup != element.Found {
		return lc.Missing(n.Name(), attrStyle)
	}
	if err := ScoringStyle(style).Validate(); err != nil {
		return lc.Invalid(n.Name(), attrStyle, lc.Localizer.ValidValues(styleNames()...))
	}
	s.Style = ScoringStyle(style)
	if s.ValidFrom, err = lc.OptionalDate(n, attrValidFrom); err != nil {
		return errors.Trace(err)
	}
	if s.ValidTo, err = lc.OptionalDate(n, attrValidTo); err != nil {
		return errors.Trace(err)
	}
	bools := []struct {
		attrib string
		dest   *bool
	}{
		{attrDropFractions, &s.DropFractions},
		{attrCleanQ, &s.CleanQ},
		{attrUnderTF, &s.TimeFaultsUnder},
		{attrOverTF, &s.TimeFaultsOver},
		{attrSubtractTF, &s.SubtractTimeFaults},
		{attrSuperQ, &s.SuperQ},
		{attrFEO, &s.FEO},
		{attrSpeedPts, &s.SpeedPts},
		{attrBonusPts, &s.BonusTitlePts},
	}
	for _, b := range bools {
		if *b.dest, err = lc.OptionalBool(n, b.attrib, false); err != nil {
			return errors.Trace(err)
		}
	}
	if s.TimeFaultMultiplier, err = lc.OptionalInt(n, attrTimeFault, defaultTFMultiplier); err != nil {
		return errors.Trace(err)
	}
	if s.Style.HasOpenClosePoints() {
		if s.OpeningPts, err = lc.OptionalInt(n, attrOpeningPts, 0); err != nil {
			return errors.Trace(err)
		}
		if s.ClosingPts, err = lc.OptionalInt(n, attrClosingPts, 0); err != nil {
			return errors.Trace(err)
		}
	}
	s.TitlePoints.Type = PointsNormal
	if t, lookup := n.Attrib(attrTitlePtsType); lookup == element.Found {
		if err := PointsType(t).Validate(); err != nil {
			return lc.Invalid(n.Name(), attrTitlePtsType, lc.Localizer.ValidValues(pointsTypeNames()...))
		}
		s.TitlePoints.Type = PointsType(t)
	}
	s.Note = childText(n, elemNote)
	for _, child := range n.Children() {
		switch child.Name() {
		case elemPlaceInfo:
			err = s.PlaceInfo.load(child, lc)
		case elemTitlePoints:
			err = s.TitlePoints.load(child, lc)
		case elemLifetimePoints:
			err = s.LifetimePoints.load(child, lc)
		}
		if err != nil {
			return errors.Annotatef(err, "scoring %s/%s", s.Division, s.Level)
		}
	}
	return nil
}

func (s *Scoring) save(parent *element.Node) {
	n := parent.AddChild(elemScoring)
	n.SetAttribDate(attrValidFrom, s.ValidFrom)
	n.SetAttribDate(attrValidTo, s.ValidTo)
	n.SetAttrib(attrDivision, s.Division)
	n.SetAttrib(attrLevel, s.Level)
	n.SetAttrib(attrStyle, string(s.Style))
	bools := []struct {
		attrib string
		value  bool
	}{
		{attrDropFractions, s.DropFractions},
		{attrCleanQ, s.CleanQ},
		{attrUnderTF, s.TimeFaultsUnder},
		{attrOverTF, s.TimeFaultsOver},
		{attrSubtractTF, s.SubtractTimeFaults},
		{attrSuperQ, s.SuperQ},
		{attrFEO, s.FEO},
		{attrSpeedPts, s.SpeedPts},
		{attrBonusPts, s.BonusTitlePts},
	}
	for _, b := range bools {
		if b.value {
			n.SetAttribBool(b.attrib, true)
		}
	}
	if s.TimeFaultMultiplier != defaultTFMultiplier {
		n.SetAttribInt(attrTimeFault, s.TimeFaultMultiplier)
	}
	if s.Style.HasOpenClosePoints() {
		n.SetAttribInt(attrOpeningPts, s.OpeningPts)
		n.SetAttribInt(attrClosingPts, s.ClosingPts)
	}
	if s.TitlePoints.Type != PointsNormal && s.TitlePoints.Type != "" {
		n.SetAttrib(attrTitlePtsType, string(s.TitlePoints.Type))
	}
	setChildText(n, elemNote, s.Note)
	s.PlaceInfo.save(n)
	s.TitlePoints.save(n)
	s.LifetimePoints.save(n)
}

func styleNames() []string {
	names := make([]string, len(scoringStyles))
	for i, s := range scoringStyles {
		names[i] = string(s)
	}
	return names
}

func pointsTypeNames() []string {
	names := make([]string, len(pointsTypes))
	for i, t := range pointsTypes {
		names[i] = string(t)
	}
	return names
}

// ScoringList holds the rules of one event.
type ScoringList []*Scoring

func (l ScoringList) matchAll(div, level string, d date.Date) ScoringList {
	var out ScoringList
	add := func(s *Scoring) {
		for _, have := range out {
			if have == s {
				return
			}
		}
		out = append(out, s)
	}
	for _, s := range l {
		if (s.Division == div || s.Division == Wildcard || div == Wildcard) &&
			(s.Level == level || s.Level == Wildcard || level == Wildcard) &&
			s.IsValidOn(d) {
			add(s)
		}
	}
	// Fall back to the wildcard rules in order of specificity.
	fallbacks := []func(*Scoring) bool{
		func(s *Scoring) bool { return s.Division == div && s.Level == Wildcard },
		func(s *Scoring) bool { return s.Division == Wildcard && s.Level == level },
		func(s *Scoring) bool { return s.Division == Wildcard && s.Level == Wildcard },
	}
	for _, match := range fallbacks {
		if d.IsValid() && len(out) > 0 {
			break
		}
		for _, s := range l {
			if match(s) && s.IsValidOn(d) {
				add(s)
				break
			}
		}
	}
	return out
}

// FindAll returns every rule matching div and level that is in force
// on d. When titlePoints is set only rules awarding title or lifetime
// points are returned.
func (l ScoringList) FindAll(div, level string, d date.Date, titlePoints bool) ScoringList {
	all := l.matchAll(div, level, d)
	if !titlePoints {
		return all
	}
	var out ScoringList
	for _, s := range all {
		if len(s.TitlePoints.Items) > 0 || len(s.LifetimePoints) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the rule in force for div and level on d, or nil.
func (l ScoringList) Find(div, level string, d date.Date) *Scoring {
	all := l.matchAll(div, level, d)
	if len(all) == 0 {
		return nil
	}
	if len(all) > 1 {
		logger.Debugf("overlapping scoring rules for %s/%s on %s", div, level, d)
	}
	return all[0]
}

// Add appends a rule.
func (l *ScoringList) Add(s *Scoring) {
	*l = append(*l, s)
}

// deleteMatching removes every rule for which match returns true.
func (l *ScoringList) deleteMatching(match func(*Scoring) bool) int {
	kept := (*l)[:0]
	n := 0
	for _, s := range *l {
		if match(s) {
			n++
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(*l); i++ {
		(*l)[i] = nil
	}
	*l = kept
	return n
}
