// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package rewriter

import (
	"github.com/juju/collections/set"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/dog"
)

// NumDivisionInUse counts the runs held by the venue and the existing
// points of the venue in the division.
func (r *Rewriter) NumDivisionInUse(venue, div string) int {
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if p.Venue == venue && p.Division == div {
				count++
			}
		}
	}
	r.runs(hasVenue(venue), func(run *dog.Run) {
		if run.Division == div {
			count++
		}
	})
	return count
}

// NumMultiHostedTrialsInDivision counts the trials held by the venue
// with more than one hosting club whose venue defines the division.
func (r *Rewriter) NumMultiHostedTrialsInDivision(cfg *config.Config, venue, div string) int {
	count := 0
	for _, d := range r.list() {
		for _, t := range d.Trials {
			if len(t.Clubs) > 1 && t.HasVenue(venue) && clubsWithDivision(cfg, t, div) > 1 {
				count++
			}
		}
	}
	return count
}

func clubsWithDivision(cfg *config.Config, t *dog.Trial, div string) int {
	n := 0
	for _, c := range t.Clubs {
		if v := cfg.Venues.Find(c.Venue); v != nil && v.Divisions.Find(div) != nil {
			n++
		}
	}
	return n
}

// RenameDivision renames the division in the existing points of the
// venue and in the runs of trials held by the venue.
func (r *Rewriter) RenameDivision(venue, oldDiv, newDiv string) int {
	if oldDiv == newDiv {
		return 0
	}
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if p.Venue == venue && p.Division == oldDiv {
				p.Division = newDiv
				count++
			}
		}
	}
	r.runs(hasVenue(venue), func(run *dog.Run) {
		if run.Division == oldDiv {
			run.Division = newDiv
			count++
		}
	})
	return count
}

// DeleteDivision removes the existing points of the venue in the
// division and the runs in it. Runs of a trial are only removed when
// exactly one of its hosting clubs has a venue defining the division;
// otherwise another club still owns them.
func (r *Rewriter) DeleteDivision(cfg *config.Config, venue, div string) int {
	count := 0
	for _, d := range r.list() {
		var n int
		d.ExistingPoints, n = removeIf(d.ExistingPoints, func(p *dog.ExistingPoints) bool {
			return p.Venue == venue && p.Division == div
		})
		count += n
	}
	count += r.deleteRuns(func(t *dog.Trial) bool {
		return t.HasVenue(venue) && clubsWithDivision(cfg, t, div) == 1
	}, func(run *dog.Run) bool {
		return run.Division == div
	})
	return count
}

// NumLevelInUse counts the existing points and runs of the venue in div
// at any of levels. Levels may be sublevel names.
func (r *Rewriter) NumLevelInUse(venue, div string, levels ...string) int {
	names := set.NewStrings(levels...)
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if p.Venue == venue && p.Division == div && names.Contains(p.Level) {
				count++
			}
		}
	}
	r.runs(hasVenue(venue), func(run *dog.Run) {
		if run.Division == div && names.Contains(run.Level) {
			count++
		}
	})
	return count
}

// RenameLevel renames a level or sublevel in div.
func (r *Rewriter) RenameLevel(venue, div, oldLevel, newLevel string) int {
	if oldLevel == newLevel {
		return 0
	}
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if p.Venue == venue && p.Division == div && p.Level == oldLevel {
				p.Level = newLevel
				count++
			}
		}
	}
	r.runs(hasVenue(venue), func(run *dog.Run) {
		if run.Division == div && run.Level == oldLevel {
			run.Level = newLevel
			count++
		}
	})
	return count
}

// DeleteLevel removes the existing points and runs of the venue in div
// at any of levels. A level with sublevels is deleted by passing the
// names of its sublevels.
func (r *Rewriter) DeleteLevel(venue, div string, levels ...string) int {
	names := set.NewStrings(levels...)
	count := 0
	for _, d := range r.list() {
		var n int
		d.ExistingPoints, n = removeIf(d.ExistingPoints, func(p *dog.ExistingPoints) bool {
			return p.Venue == venue && p.Division == div && names.Contains(p.Level)
		})
		count += n
	}
	count += r.deleteRuns(hasVenue(venue), func(run *dog.Run) bool {
		return run.Division == div && names.Contains(run.Level)
	})
	return count
}

// NumEventInUse counts the existing points of the venue and the runs of
// trials held by the venue in the event.
func (r *Rewriter) NumEventInUse(venue, event string) int {
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if p.Venue == venue && p.Event == event {
				count++
			}
		}
	}
	r.runs(hasVenue(venue), func(run *dog.Run) {
		if run.Event == event {
			count++
		}
	})
	return count
}

// RenameEvent renames the event in existing points and runs.
func (r *Rewriter) RenameEvent(venue, oldEvent, newEvent string) int {
	if oldEvent == newEvent {
		return 0
	}
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if p.Venue == venue && p.Event == oldEvent {
				p.Event = newEvent
				count++
			}
		}
	}
	r.runs(hasVenue(venue), func(run *dog.Run) {
		if run.Event == oldEvent {
			run.Event = newEvent
			count++
		}
	})
	return count
}

// DeleteEvent removes the existing points and runs of the event.
func (r *Rewriter) DeleteEvent(venue, event string) int {
	count := 0
	for _, d := range r.list() {
		var n int
		d.ExistingPoints, n = removeIf(d.ExistingPoints, func(p *dog.ExistingPoints) bool {
			return p.Venue == venue && p.Event == event
		})
		count += n
	}
	count += r.deleteRuns(hasVenue(venue), func(run *dog.Run) bool {
		return run.Event == event
	})
	return count
}

// NumTitleInUse counts the dog titles of the venue with the name.
func (r *Rewriter) NumTitleInUse(venue, title string) int {
	count := 0
	for _, d := range r.list() {
		for _, t := range d.Titles {
			if t.Venue == venue && t.Name == title {
				count++
			}
		}
	}
	return count
}

// RenameTitle renames the dog titles of the venue.
func (r *Rewriter) RenameTitle(venue, oldTitle, newTitle string) int {
	if oldTitle == newTitle {
		return 0
	}
	count := 0
	for _, d := range r.list() {
		for _, t := range d.Titles {
			if t.Venue == venue && t.Name == oldTitle {
				t.Name = newTitle
				count++
			}
		}
	}
	return count
}

// DeleteTitle removes the dog titles of the venue with the name.
func (r *Rewriter) DeleteTitle(venue, title string) int {
	count := 0
	for _, d := range r.list() {
		var n int
		d.Titles, n = removeIf(d.Titles, func(t *dog.Title) bool {
			return t.Venue == venue && t.Name == title
		})
		count += n
	}
	return count
}
