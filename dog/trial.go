// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package dog

import (
	"sort"

	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

const (
	elemTrial    = "Trial"
	elemLocation = "Location"
	elemClub     = "Club"

	attrVerified = "Verified"
)

// Club is a club hosting a trial under a venue's rules.
type Club struct {
	Name  string
	Venue string
}

// Equal reports whether both clubs hold the same values.
func (c *Club) Equal(o *Club) bool {
	return *c == *o
}

// Trial is a set of runs held by one or more clubs. The first club is
// the primary one.
type Trial struct {
	Verified bool
	Location string
	Note     string
	Clubs    []*Club
	Runs     []*Run
}

// Equal reports whether both trials hold the same values.
func (t *Trial) Equal(o *Trial) bool {
	return t.Verified == o.Verified &&
		t.Location == o.Location &&
		t.Note == o.Note &&
		equalLists(t.Clubs, o.Clubs) &&
		equalLists(t.Runs, o.Runs)
}

// PrimaryClub returns the first club, or nil.
func (t *Trial) PrimaryClub() *Club {
	if len(t.Clubs) == 0 {
		return nil
	}
	return t.Clubs[0]
}

// HasVenue reports whether any hosting club belongs to venue.
func (t *Trial) HasVenue(venue string) bool {
	for _, c := range t.Clubs {
		if c.Venue == venue {
			return true
		}
	}
	return false
}

// FindEvent returns the rule a run of event in div and level on d is
// scored by: the first hosting club whose venue defines one.
func (t *Trial) FindEvent(cfg *config.Config, event, div, level string, d date.Date) (*config.Event, *config.Scoring) {
	for _, c := range t.Clubs {
		if e, s := cfg.Venues.FindEvent(c.Venue, event, div, level, d); s != nil {
			return e, s
		}
	}
	return nil, nil
}

// SetMultiQs recomputes the multiple Q marks of the runs. For each day
// of the trial every multiple Q of the primary venue that is satisfied
// by distinct qualifying runs of that day marks those runs.
func (t *Trial) SetMultiQs(cfg *config.Config) {
	for _, r := range t.Runs {
		r.MultiQs = nil
	}
	club := t.PrimaryClub()
	if club == nil {
		return
	}
	venue := cfg.Venues.Find(club.Venue)
	if venue == nil || len(venue.MultiQs) == 0 {
		return
	}
	byDate := make(map[date.Date][]*Run)
	var dates []date.Date
	for _, r := range t.Runs {
		if !r.Q.Qualified() {
			continue
		}
		if _, ok := byDate[r.Date]; !ok {
			dates = append(dates, r.Date)
		}
		byDate[r.Date] = append(byDate[r.Date], r)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	for _, d := range dates {
		runs := byDate[d]
		if len(runs) < 2 {
			continue
		}
		candidates := make([]config.MultiQRun, len(runs))
		for i, r := range runs {
			candidates[i] = config.MultiQRun{Date: r.Date, Division: r.Division, Level: r.Level, Event: r.Event}
		}
		for _, mq := range venue.MultiQs {
			for _, i := range mq.Match(candidates) {
				runs[i].MultiQs = append(runs[i].MultiQs, mq.Name)
			}
		}
	}
}

// StartDate returns the date of the earliest run.
func (t *Trial) StartDate() date.Date {
	var start date.Date
	for _, r := range t.Runs {
		if !start.IsValid() || r.Date.Before(start) {
			start = r.Date
		}
	}
	return start
}

func loadTrial(cfg *config.Config, n *element.Node, lc config.LoadContext) (*Trial, error) {
	t := &Trial{}
	var err error
	if t.Verified, err = lc.OptionalBool(n, attrVerified, false); err != nil {
		return nil, errors.Trace(err)
	}
	// Clubs are read first; runs are validated against them.
	for _, child := range n.ChildrenNamed(elemClub) {
		c := &Club{Name: child.Value()}
		if c.Venue, err = lc.RequiredString(child, attrVenue); err != nil {
			continue
		}
		if cfg.Venues.Find(c.Venue) == nil {
			_ = lc.Invalid(child.Name(), attrVenue, lc.Localizer.InvalidVenueName(c.Venue))
			continue
		}
		t.Clubs = append(t.Clubs, c)
	}
	for _, child := range n.Children() {
		switch child.Name() {
		case elemLocation:
			t.Location = child.Value()
		case elemNote:
			t.Note = child.Value()
		case elemRun:
			r, err := loadRun(cfg, t, child, lc)
			if err != nil {
				logger.Debugf("skipping run: %v", err)
				continue
			}
			t.Runs = append(t.Runs, r)
		}
	}
	sort.SliceStable(t.Runs, func(i, j int) bool { return t.Runs[i].Date.Before(t.Runs[j].Date) })
	t.SetMultiQs(cfg)
	return t, nil
}

func (t *Trial) save(parent *element.Node) {
	n := parent.AddChild(elemTrial)
	if t.Verified {
		n.SetAttribBool(attrVerified, true)
	}
	setChildText(n, elemLocation, t.Location)
	setChildText(n, elemNote, t.Note)
	for _, c := range t.Clubs {
		club := n.AddChild(elemClub)
		club.SetAttrib(attrVenue, c.Venue)
		club.SetValue(c.Name)
	}
	for _, r := range t.Runs {
		r.save(n)
	}
}
