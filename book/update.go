// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package book

import (
	"fmt"
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/dog"
	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/rewriter"
	"github.com/dconnet/AgilityBook-sub002/upgrades"
)

// Update merges newConfig into the book. The actions of newConfig are
// applied to the configuration and the dogs first; unless one of their
// deletions was vetoed the configuration is then merged. Runs the
// merged configuration can no longer score are deleted. The report is
// written to ctx.Info. It returns whether the book changed.
func (b *Book) Update(indent int, newConfig *config.Config, ctx *upgrades.Context) (bool, error) {
	oldVersion := b.Config.Version
	actions, err := upgrades.FromRecords(newConfig.Actions)
	if err != nil {
		return false, errors.Annotate(err, "configuration actions")
	}
	changes := actions.Apply(ctx, &b.Config, &b.Dogs)

	configChanged := false
	if ctx.CanContinue() {
		configChanged = b.Config.Update(indent, newConfig, ctx.Info, ctx.Localizer)
	} else {
		logger.Infof("configuration not merged: a deletion was vetoed")
	}
	movePairs := b.movesPairsToTeam(oldVersion, newConfig)

	rw := rewriter.New(&b.Dogs)
	for _, v := range b.Config.Venues {
		changes += rw.DeleteMultiQs(&b.Config, v.Name)
	}
	changes += b.Dogs.FixTitleInstances(&b.Config)

	report := b.checkRuns(movePairs)
	changes += report.synced
	if report.team.n > 0 {
		changes += report.team.n
		fmt.Fprintf(ctx.Info, "\n%s\n", ctx.Localizer.UpdateTeamRuns(report.team.n, report.team.detail.String()))
	}
	if deleted := report.deleted.n; deleted > 0 {
		changes += deleted
		msg := ctx.Localizer.WarnDeletedRuns(deleted, report.deleted.detail.String())
		d := ctx.Protocol.Confirm()
		if err := d.Commit(); err != nil {
			return false, errors.Trace(err)
		}
		if err := d.NotifyPost(msg); err != nil {
			return false, errors.Trace(err)
		}
		fmt.Fprintf(ctx.Info, "\n%s\n", msg)
	}
	if report.table.n > 0 {
		changes += report.table.n
		fmt.Fprintf(ctx.Info, "\n%s\n", ctx.Localizer.UpdateTableRuns(report.table.n, report.table.detail.String()))
	}
	if report.subName.n > 0 {
		changes += report.subName.n
		fmt.Fprintf(ctx.Info, "\n%s\n", ctx.Localizer.UpdateSubNameRuns(report.subName.n, report.subName.detail.String()))
	}

	if changes > 0 || configChanged {
		b.Dogs.SetMultiQs(&b.Config)
	}
	logger.Infof("update to configuration version %d: %d change(s), configuration changed: %v",
		newConfig.Version, changes, configChanged)
	return changes > 0 || configChanged, nil
}

const (
	venueUSDAA = "USDAA"
	eventPairs = "Pairs"
	eventTeam  = "Team"
)

// pairsTeamLevels are the levels whose Pairs runs recorded team results.
var pairsTeamLevels = set.NewStrings("Tournament", "Nationals")

// movesPairsToTeam reports whether the update crosses configuration 24,
// which added the USDAA Team event. Before then team results were
// recorded as Pairs runs at the tournament levels.
func (b *Book) movesPairsToTeam(oldVersion int, newConfig *config.Config) bool {
	if oldVersion > 23 || newConfig.Version < 24 {
		return false
	}
	venue := b.Config.Venues.Find(venueUSDAA)
	newVenue := newConfig.Venues.Find(venueUSDAA)
	if venue == nil || newVenue == nil {
		return false
	}
	pairs := venue.Events.Find(eventPairs)
	team := newVenue.Events.Find(eventTeam)
	if pairs == nil || team == nil {
		return false
	}
	for _, level := range pairsTeamLevels.SortedValues() {
		if pairs.Verify(config.Wildcard, level, date.Date{}) || team.Verify(config.Wildcard, level, date.Date{}) {
			return true
		}
	}
	return false
}

// runList collects the runs one fix touched, one report line each.
type runList struct {
	n      int
	detail strings.Builder
}

func (l *runList) add(t *dog.Trial, r *dog.Run) {
	l.n++
	fmt.Fprintf(&l.detail, "   %s %s %s %s/%s\n", r.Date, venueOf(t), r.Event, r.Division, r.Level)
}

type runReport struct {
	synced  int
	team    runList
	deleted runList
	table   runList
	subName runList
}

// checkRuns brings every run in line with the configuration. Pairs
// runs move to the Team event when movePairs is set. The scoring type
// follows the rule that now scores the run; tables and subnames are
// dropped from events that no longer have them. Runs no rule scores
// are deleted.
func (b *Book) checkRuns(movePairs bool) *runReport {
	report := &runReport{}
	for _, d := range b.Dogs {
		for _, t := range d.Trials {
			kept := t.Runs[:0]
			for _, r := range t.Runs {
				if movePairs && venueOf(t) == venueUSDAA && r.Event == eventPairs && pairsTeamLevels.Contains(r.Level) {
					r.Event = eventTeam
					report.team.add(t, r)
				}
				event, scoring := t.FindEvent(&b.Config, r.Event, r.Division, r.Level, r.Date)
				if scoring == nil {
					report.deleted.add(t, r)
					continue
				}
				if r.SyncScoringType(scoring.Style) {
					report.synced++
				}
				if !event.HasTable && r.Scoring.HasTable {
					r.Scoring.HasTable = false
					report.table.add(t, r)
				}
				if !event.HasSubNames && r.SubName != "" {
					r.SubName = ""
					report.subName.add(t, r)
				}
				kept = append(kept, r)
			}
			t.Runs = kept
		}
	}
	if report.deleted.n > 0 {
		logger.Debugf("deleted %d run(s) the configuration no longer scores", report.deleted.n)
	}
	return report
}

func venueOf(t *dog.Trial) string {
	if club := t.PrimaryClub(); club != nil {
		return club.Venue
	}
	return ""
}
