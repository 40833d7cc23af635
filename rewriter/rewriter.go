// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package rewriter keeps the dog records consistent with configuration
// changes. Records refer to configuration entities by name, so renaming
// or deleting an entity has to visit every record that names it.
//
// Every Num method only counts. Rename methods return the number of
// references changed and are idempotent. Delete methods return the
// number of records removed.
package rewriter

import (
	"github.com/juju/loggo"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/dog"
)

var logger = loggo.GetLogger("arb.rewriter")

// Rewriter rewrites the references held by a list of dogs.
type Rewriter struct {
	dogs *dog.List
}

// New returns a Rewriter working on dogs. A nil list is allowed; every
// operation on it does nothing and returns 0.
func New(dogs *dog.List) *Rewriter {
	return &Rewriter{dogs: dogs}
}

func (r *Rewriter) list() dog.List {
	if r == nil || r.dogs == nil {
		return nil
	}
	return *r.dogs
}

// removeIf drops the elements for which match is true, keeping order.
func removeIf[T any](items []T, match func(T) bool) ([]T, int) {
	kept := items[:0]
	removed := 0
	for _, item := range items {
		if match(item) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	// Clear the tail so removed records can be collected.
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	if len(kept) == 0 {
		return nil, removed
	}
	return kept, removed
}

// runs calls fn for every run of every trial for which inTrial is true.
func (r *Rewriter) runs(inTrial func(*dog.Trial) bool, fn func(*dog.Run)) {
	for _, d := range r.list() {
		for _, t := range d.Trials {
			if !inTrial(t) {
				continue
			}
			for _, run := range t.Runs {
				fn(run)
			}
		}
	}
}

// deleteRuns removes the matching runs of the trials for which inTrial
// is true. Trials left without runs by the deletion are removed too.
func (r *Rewriter) deleteRuns(inTrial func(*dog.Trial) bool, match func(*dog.Run) bool) int {
	count := 0
	for _, d := range r.list() {
		var emptied int
		d.Trials, emptied = removeIf(d.Trials, func(t *dog.Trial) bool {
			if !inTrial(t) || len(t.Runs) == 0 {
				return false
			}
			var n int
			t.Runs, n = removeIf(t.Runs, match)
			count += n
			return n > 0 && len(t.Runs) == 0
		})
		if emptied > 0 {
			logger.Debugf("dog %q: removed %d emptied trial(s)", d.CallName, emptied)
		}
	}
	return count
}

func hasVenue(venue string) func(*dog.Trial) bool {
	return func(t *dog.Trial) bool { return t.HasVenue(venue) }
}

func anyTrial(*dog.Trial) bool { return true }

// NumVenueInUse counts the records naming venue: existing points,
// registration numbers, titles and trials.
func (r *Rewriter) NumVenueInUse(venue string) int {
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if p.Venue == venue {
				count++
			}
		}
		for _, n := range d.RegNums {
			if n.Venue == venue {
				count++
			}
		}
		for _, t := range d.Titles {
			if t.Venue == venue {
				count++
			}
		}
		for _, t := range d.Trials {
			if t.HasVenue(venue) {
				count++
			}
		}
	}
	return count
}

// RenameVenue renames every reference to a venue.
func (r *Rewriter) RenameVenue(oldName, newName string) int {
	if oldName == newName {
		return 0
	}
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if p.Venue == oldName {
				p.Venue = newName
				count++
			}
		}
		for _, n := range d.RegNums {
			if n.Venue == oldName {
				n.Venue = newName
				count++
			}
		}
		for _, t := range d.Titles {
			if t.Venue == oldName {
				t.Venue = newName
				count++
			}
		}
		for _, t := range d.Trials {
			for _, c := range t.Clubs {
				if c.Venue == oldName {
					c.Venue = newName
					count++
				}
			}
		}
	}
	return count
}

// DeleteVenue removes every record of a venue. Clubs of the venue are
// removed from their trials, and trials left without a club go too.
func (r *Rewriter) DeleteVenue(venue string) int {
	count := 0
	for _, d := range r.list() {
		var n int
		d.ExistingPoints, n = removeIf(d.ExistingPoints, func(p *dog.ExistingPoints) bool { return p.Venue == venue })
		count += n
		d.RegNums, n = removeIf(d.RegNums, func(rn *dog.RegNum) bool { return rn.Venue == venue })
		count += n
		d.Titles, n = removeIf(d.Titles, func(t *dog.Title) bool { return t.Venue == venue })
		count += n
		d.Trials, _ = removeIf(d.Trials, func(t *dog.Trial) bool {
			var clubs int
			t.Clubs, clubs = removeIf(t.Clubs, func(c *dog.Club) bool { return c.Venue == venue })
			count += clubs
			return clubs > 0 && len(t.Clubs) == 0
		})
	}
	if count > 0 {
		logger.Debugf("deleted %d record(s) of venue %q", count, venue)
	}
	return count
}

// NumOtherPointsInUse counts existing points and run placements naming
// the other points.
func (r *Rewriter) NumOtherPointsInUse(name string) int {
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if p.Type == dog.PointsOther && p.Other == name {
				count++
			}
		}
	}
	r.runs(anyTrial, func(run *dog.Run) {
		for _, op := range run.OtherPoints {
			if op.Name == name {
				count++
			}
		}
	})
	return count
}

// RenameOtherPoints renames every reference to other points.
func (r *Rewriter) RenameOtherPoints(oldName, newName string) int {
	if oldName == newName {
		return 0
	}
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if p.Type == dog.PointsOther && p.Other == oldName {
				p.Other = newName
				count++
			}
		}
	}
	r.runs(anyTrial, func(run *dog.Run) {
		for i := range run.OtherPoints {
			if run.OtherPoints[i].Name == oldName {
				run.OtherPoints[i].Name = newName
				count++
			}
		}
	})
	return count
}

// DeleteOtherPoints removes existing points and run placement entries
// naming the other points. The runs themselves are kept.
func (r *Rewriter) DeleteOtherPoints(name string) int {
	count := 0
	for _, d := range r.list() {
		var n int
		d.ExistingPoints, n = removeIf(d.ExistingPoints, func(p *dog.ExistingPoints) bool {
			return p.Type == dog.PointsOther && p.Other == name
		})
		count += n
	}
	r.runs(anyTrial, func(run *dog.Run) {
		var n int
		run.OtherPoints, n = removeIf(run.OtherPoints, func(op dog.RunOtherPoints) bool { return op.Name == name })
		count += n
	})
	return count
}

func isMultiQPoints(venue, name string) func(*dog.ExistingPoints) bool {
	return func(p *dog.ExistingPoints) bool {
		return p.Type == dog.PointsMQ && p.Venue == venue && p.MultiQ == name
	}
}

// NumMultiQInUse counts the existing multiple Q points of the venue
// naming the multiple Q.
func (r *Rewriter) NumMultiQInUse(venue, name string) int {
	match := isMultiQPoints(venue, name)
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if match(p) {
				count++
			}
		}
	}
	return count
}

// RenameMultiQ renames the multiple Q in existing points and in the
// marks of runs held by the venue.
func (r *Rewriter) RenameMultiQ(venue, oldName, newName string) int {
	if oldName == newName {
		return 0
	}
	match := isMultiQPoints(venue, oldName)
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if match(p) {
				p.MultiQ = newName
				count++
			}
		}
	}
	r.runs(hasVenue(venue), func(run *dog.Run) {
		for i, mq := range run.MultiQs {
			if mq == oldName {
				run.MultiQs[i] = newName
			}
		}
	})
	return count
}

// DeleteMultiQ removes the existing points of one multiple Q.
func (r *Rewriter) DeleteMultiQ(venue, name string) int {
	match := isMultiQPoints(venue, name)
	count := 0
	for _, d := range r.list() {
		var n int
		d.ExistingPoints, n = removeIf(d.ExistingPoints, match)
		count += n
	}
	r.runs(hasVenue(venue), func(run *dog.Run) {
		run.MultiQs, _ = removeIf(run.MultiQs, func(mq string) bool { return mq == name })
	})
	return count
}

// DeleteMultiQs removes the existing multiple Q points of venue that name
// a multiple Q cfg no longer defines, and drops such names from the run
// marks. It returns the number of existing points removed.
func (r *Rewriter) DeleteMultiQs(cfg *config.Config, venue string) int {
	v := cfg.Venues.Find(venue)
	if v == nil {
		return 0
	}
	gone := func(name string) bool { return v.MultiQs.Find(name) == nil }
	count := 0
	for _, d := range r.list() {
		var n int
		d.ExistingPoints, n = removeIf(d.ExistingPoints, func(p *dog.ExistingPoints) bool {
			return p.Type == dog.PointsMQ && p.Venue == venue && gone(p.MultiQ)
		})
		count += n
	}
	r.runs(func(t *dog.Trial) bool {
		c := t.PrimaryClub()
		return c != nil && c.Venue == venue
	}, func(run *dog.Run) {
		run.MultiQs, _ = removeIf(run.MultiQs, gone)
	})
	if count > 0 {
		logger.Debugf("deleted %d multiple Q point(s) of venue %q", count, venue)
	}
	return count
}

func isLifetimePoints(venue, name string) func(*dog.ExistingPoints) bool {
	return func(p *dog.ExistingPoints) bool {
		return p.Type == dog.PointsLifetime && p.Venue == venue && p.Other == name
	}
}

// NumLifetimeNameInUse counts the existing lifetime points of the venue
// recorded under the lifetime name.
func (r *Rewriter) NumLifetimeNameInUse(venue, name string) int {
	match := isLifetimePoints(venue, name)
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if match(p) {
				count++
			}
		}
	}
	return count
}

// RenameLifetimeName renames the lifetime name in existing points.
func (r *Rewriter) RenameLifetimeName(venue, oldName, newName string) int {
	if oldName == newName {
		return 0
	}
	match := isLifetimePoints(venue, oldName)
	count := 0
	for _, d := range r.list() {
		for _, p := range d.ExistingPoints {
			if match(p) {
				p.Other = newName
				count++
			}
		}
	}
	return count
}

// DeleteLifetimeName removes the existing lifetime points recorded under
// the lifetime name.
func (r *Rewriter) DeleteLifetimeName(venue, name string) int {
	match := isLifetimePoints(venue, name)
	count := 0
	for _, d := range r.list() {
		var n int
		d.ExistingPoints, n = removeIf(d.ExistingPoints, match)
		count += n
	}
	return count
}
