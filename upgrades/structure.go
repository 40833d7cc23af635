// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package upgrades

import (
	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/dog"
	"github.com/dconnet/AgilityBook-sub002/rewriter"
)

// NewRenameDivision returns an action renaming a division of a venue.
func NewRenameDivision(version int, venue, oldName, newName string) Action {
	return &renameDivision{action{config.ActionRecord{
		Verb: VerbRenameDivision, ConfigVersion: version, Venue: venue, OldName: oldName, NewName: newName,
	}}}
}

type renameDivision struct{ action }

func (a *renameDivision) Clone() Action { c := *a; return &c }

func (a *renameDivision) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	v := a.venue(cfg)
	if v == nil || v.Divisions.Find(a.r.OldName) == nil {
		return false
	}
	n := rewriter.New(dogs).RenameDivision(a.r.Venue, a.r.OldName, a.r.NewName)
	ctx.line(ctx.Localizer.ActionRenameDivision(a.r.Venue, a.r.OldName, a.r.NewName, n))
	if v.Divisions.Find(a.r.NewName) != nil {
		v.Divisions.Delete(a.r.OldName)
		v.Events.DeleteDivision(a.r.OldName)
		v.MultiQs.DeleteDivision(a.r.OldName)
		return true
	}
	if err := v.Divisions.Rename(a.r.OldName, a.r.NewName); err != nil {
		logger.Errorf("renaming division: %v", err)
		return true
	}
	v.Events.RenameDivision(a.r.OldName, a.r.NewName)
	v.MultiQs.RenameDivision(a.r.OldName, a.r.NewName)
	return true
}

func (a *renameDivision) Update(_ *config.Config, venue, div, _ *string) bool {
	if *venue == "" || *venue != a.r.Venue || *div == "" || *div != a.r.OldName {
		return false
	}
	*div = a.r.NewName
	return true
}

// NewDeleteDivision returns an action deleting a division of a venue.
func NewDeleteDivision(version int, venue, name string) Action {
	return &deleteDivision{action{config.ActionRecord{
		Verb: VerbDeleteDivision, ConfigVersion: version, Venue: venue, OldName: name,
	}}}
}

type deleteDivision struct{ action }

func (a *deleteDivision) Clone() Action { c := *a; return &c }

func (a *deleteDivision) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	v := a.venue(cfg)
	if v == nil || v.Divisions.Find(a.r.OldName) == nil {
		return false
	}
	rw := rewriter.New(dogs)
	n := rw.NumDivisionInUse(a.r.Venue, a.r.OldName)
	msg := ctx.Localizer.ActionPreDeleteDivision(a.r.Venue, a.r.OldName, n)
	if trials := rw.NumMultiHostedTrialsInDivision(cfg, a.r.Venue, a.r.OldName); trials > 0 {
		msg += " " + ctx.Localizer.ActionMultiHostedTrials(a.r.Venue, a.r.OldName, trials)
	}
	d := ctx.propose(msg, n)
	if d == nil {
		return false
	}
	// The division must still be defined while the runs are removed, so
	// hosting clubs can be told apart.
	rw.DeleteDivision(cfg, a.r.Venue, a.r.OldName)
	commit(d)
	ctx.line(ctx.Localizer.ActionDeleteDivision(a.r.Venue, a.r.OldName))
	if v.Divisions.Delete(a.r.OldName) {
		v.Events.DeleteDivision(a.r.OldName)
		v.MultiQs.DeleteDivision(a.r.OldName)
	}
	return true
}

// NewRenameLevel returns an action renaming a level of a division.
func NewRenameLevel(version int, venue, div, oldName, newName string) Action {
	return NewRenameSubLevel(version, venue, div, "", oldName, newName)
}

// NewRenameSubLevel returns an action renaming a sublevel of level.
func NewRenameSubLevel(version int, venue, div, level, oldName, newName string) Action {
	return &renameLevel{action{config.ActionRecord{
		Verb: VerbRenameLevel, ConfigVersion: version, Venue: venue, Division: div,
		Level: level, OldName: oldName, NewName: newName,
	}}}
}

type renameLevel struct{ action }

func (a *renameLevel) Clone() Action { c := *a; return &c }

func (a *renameLevel) isSubLevel() bool { return a.r.Level != "" }

func (a *renameLevel) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	v := a.venue(cfg)
	if v == nil {
		return false
	}
	div := v.Divisions.Find(a.r.Division)
	if div == nil {
		return false
	}
	var level *config.Level
	var leaf bool
	if a.isSubLevel() {
		level = div.Levels.Find(a.r.Level)
		leaf = level != nil && level.SubLevels.Find(a.r.OldName) != nil
		if !leaf {
			return false
		}
	} else {
		if level = div.Levels.Find(a.r.OldName); level == nil {
			return false
		}
		leaf = level.IsLeaf()
	}

	// Runs and points only ever name leaves.
	n := 0
	if leaf {
		n = rewriter.New(dogs).RenameLevel(a.r.Venue, a.r.Division, a.r.OldName, a.r.NewName)
	}
	ctx.line(ctx.Localizer.ActionRenameLevel(a.r.Venue, a.r.OldName, a.r.NewName, n))
	if !a.isSubLevel() {
		v.Events.RenameLevel(a.r.Division, a.r.OldName, a.r.NewName)
	}
	if leaf {
		v.MultiQs.RenameLevel(a.r.Division, a.r.OldName, a.r.NewName)
	}

	if a.isSubLevel() {
		if level.SubLevels.Find(a.r.NewName) != nil {
			level.SubLevels.Delete(a.r.OldName)
		} else {
			level.SubLevels.Find(a.r.OldName).Name = a.r.NewName
		}
		return true
	}
	if div.Levels.Find(a.r.NewName) != nil {
		div.Levels.Delete(a.r.OldName)
		v.Events.DeleteLevel(a.r.Division, a.r.OldName)
	} else {
		level.Name = a.r.NewName
	}
	return true
}

func (a *renameLevel) Update(cfg *config.Config, venue, div, subLevel *string) bool {
	if *venue == "" || *venue != a.r.Venue || *div == "" || *div != a.r.Division || *subLevel == "" {
		return false
	}
	v := cfg.Venues.Find(a.r.Venue)
	if v == nil {
		return false
	}
	d := v.Divisions.Find(a.r.Division)
	if d == nil {
		return false
	}
	// A level with sublevels is never named directly.
	if !a.isSubLevel() {
		if level := d.Levels.Find(a.r.OldName); level != nil && !level.IsLeaf() {
			return false
		}
	}
	if *subLevel != a.r.OldName {
		return false
	}
	*subLevel = a.r.NewName
	return true
}

// NewDeleteLevel returns an action deleting a level of a division,
// together with its sublevels.
func NewDeleteLevel(version int, venue, div, name string) Action {
	return NewDeleteSubLevel(version, venue, div, "", name)
}

// NewDeleteSubLevel returns an action deleting a sublevel of level.
func NewDeleteSubLevel(version int, venue, div, level, name string) Action {
	return &deleteLevel{action{config.ActionRecord{
		Verb: VerbDeleteLevel, ConfigVersion: version, Venue: venue, Division: div,
		Level: level, OldName: name,
	}}}
}

type deleteLevel struct{ action }

func (a *deleteLevel) Clone() Action { c := *a; return &c }

func (a *deleteLevel) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	v := a.venue(cfg)
	if v == nil {
		return false
	}
	div := v.Divisions.Find(a.r.Division)
	if div == nil {
		return false
	}
	// Collect the names runs may use: the sublevels of a level, or the
	// leaf itself.
	var names []string
	var level *config.Level
	if a.r.Level == "" {
		if level = div.Levels.Find(a.r.OldName); level == nil {
			return false
		}
		if level.IsLeaf() {
			names = append(names, a.r.OldName)
		}
		for _, sub := range level.SubLevels {
			names = append(names, sub.Name)
		}
	} else {
		level = div.Levels.Find(a.r.Level)
		if level == nil || level.SubLevels.Find(a.r.OldName) == nil {
			return false
		}
		names = append(names, a.r.OldName)
	}

	rw := rewriter.New(dogs)
	n := rw.NumLevelInUse(a.r.Venue, a.r.Division, names...)
	d := ctx.propose(ctx.Localizer.ActionPreDeleteLevel(a.r.Venue, a.r.OldName, n), n)
	if d == nil {
		return false
	}
	if n > 0 {
		rw.DeleteLevel(a.r.Venue, a.r.Division, names...)
	}
	commit(d)
	ctx.line(ctx.Localizer.ActionDeleteLevel(a.r.Venue, a.r.OldName))

	if a.r.Level == "" {
		if div.Levels.Delete(a.r.OldName) {
			v.Events.DeleteLevel(a.r.Division, a.r.OldName)
			for _, name := range names {
				v.MultiQs.DeleteLevel(a.r.Division, name)
			}
		}
	} else if level.SubLevels.Delete(a.r.OldName) {
		v.MultiQs.DeleteLevel(a.r.Division, a.r.OldName)
	}
	return true
}

// NewRenameTitle returns an action renaming a title of a venue.
func NewRenameTitle(version int, venue, oldName, newName string) Action {
	return &renameTitle{action{config.ActionRecord{
		Verb: VerbRenameTitle, ConfigVersion: version, Venue: venue, OldName: oldName, NewName: newName,
	}}}
}

type renameTitle struct{ action }

func (a *renameTitle) Clone() Action { c := *a; return &c }

func (a *renameTitle) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	v := a.venue(cfg)
	if v == nil {
		return false
	}
	old := v.Titles.Find(a.r.OldName)
	if old == nil {
		return false
	}
	// Titles earned in different divisions under one name cannot be
	// told apart; all of them are renamed.
	n := rewriter.New(dogs).RenameTitle(a.r.Venue, a.r.OldName, a.r.NewName)
	ctx.line(ctx.Localizer.ActionRenameTitle(a.r.Venue, a.r.OldName, a.r.NewName, n))
	if v.Titles.Find(a.r.NewName) != nil {
		v.Titles.Delete(a.r.OldName)
	} else {
		old.Name = a.r.NewName
	}
	return true
}

// NewDeleteTitle returns an action deleting a title of a venue. When
// newName is set, titles the dogs already hold are renamed to it
// instead of being deleted.
func NewDeleteTitle(version int, venue, name, newName string) Action {
	return &deleteTitle{action{config.ActionRecord{
		Verb: VerbDeleteTitle, ConfigVersion: version, Venue: venue, OldName: name, NewName: newName,
	}}}
}

type deleteTitle struct{ action }

func (a *deleteTitle) Clone() Action { c := *a; return &c }

func (a *deleteTitle) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	v := a.venue(cfg)
	if v == nil || v.Titles.Find(a.r.OldName) == nil {
		return false
	}
	rw := rewriter.New(dogs)
	n := rw.NumTitleInUse(a.r.Venue, a.r.OldName)
	if n > 0 && a.r.NewName != "" {
		rw.RenameTitle(a.r.Venue, a.r.OldName, a.r.NewName)
		ctx.line(ctx.Localizer.ActionRenameTitle(a.r.Venue, a.r.OldName, a.r.NewName, n))
	} else {
		d := ctx.propose(ctx.Localizer.ActionPreDeleteTitle(a.r.Venue, a.r.OldName, n), n)
		if d == nil {
			return false
		}
		rw.DeleteTitle(a.r.Venue, a.r.OldName)
		commit(d)
	}
	ctx.line(ctx.Localizer.ActionDeleteTitle(a.r.Venue, a.r.OldName))
	v.Titles.Delete(a.r.OldName)
	return true
}

// NewRenameEvent returns an action renaming an event of a venue.
func NewRenameEvent(version int, venue, oldName, newName string) Action {
	return &renameEvent{action{config.ActionRecord{
		Verb: VerbRenameEvent, ConfigVersion: version, Venue: venue, OldName: oldName, NewName: newName,
	}}}
}

type renameEvent struct{ action }

func (a *renameEvent) Clone() Action { c := *a; return &c }

func (a *renameEvent) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	v := a.venue(cfg)
	if v == nil {
		return false
	}
	old := v.Events.Find(a.r.OldName)
	if old == nil {
		return false
	}
	n := rewriter.New(dogs).RenameEvent(a.r.Venue, a.r.OldName, a.r.NewName)
	ctx.line(ctx.Localizer.ActionRenameEvent(a.r.Venue, a.r.OldName, a.r.NewName, n))
	v.MultiQs.RenameEvent(a.r.OldName, a.r.NewName)
	if v.Events.Find(a.r.NewName) != nil {
		v.Events.Delete(a.r.OldName)
	} else {
		old.Name = a.r.NewName
	}
	return true
}

// NewDeleteEvent returns an action deleting an event of a venue.
func NewDeleteEvent(version int, venue, name string) Action {
	return &deleteEvent{action{config.ActionRecord{
		Verb: VerbDeleteEvent, ConfigVersion: version, Venue: venue, OldName: name,
	}}}
}

type deleteEvent struct{ action }

func (a *deleteEvent) Clone() Action { c := *a; return &c }

func (a *deleteEvent) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	v := a.venue(cfg)
	if v == nil || v.Events.Find(a.r.OldName) == nil {
		return false
	}
	rw := rewriter.New(dogs)
	n := rw.NumEventInUse(a.r.Venue, a.r.OldName)
	d := ctx.propose(ctx.Localizer.ActionPreDeleteEvent(a.r.Venue, a.r.OldName, n), n)
	if d == nil {
		return false
	}
	rw.DeleteEvent(a.r.Venue, a.r.OldName)
	commit(d)
	ctx.line(ctx.Localizer.ActionDeleteEvent(a.r.Venue, a.r.OldName))
	v.MultiQs.DeleteEvent(a.r.OldName)
	v.Events.Delete(a.r.OldName)
	return true
}
