// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package upgrades

import (
	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/dog"
	"github.com/dconnet/AgilityBook-sub002/rewriter"
)

// Verbs of the stored actions.
const (
	VerbDeleteCalPlugin    = "DeleteCalPlugin"
	VerbRenameOtherPoints  = "RenameOtherPoints"
	VerbDeleteOtherPoints  = "DeleteOtherPoints"
	VerbRenameVenue        = "RenameVenue"
	VerbDeleteVenue        = "DeleteVenue"
	VerbRenameMultiQ       = "RenameMultiQ"
	VerbDeleteMultiQ       = "DeleteMultiQ"
	VerbRenameDivision     = "RenameDivision"
	VerbDeleteDivision     = "DeleteDivision"
	VerbRenameLevel        = "RenameLevel"
	VerbDeleteLevel        = "DeleteLevel"
	VerbRenameTitle        = "RenameTitle"
	VerbDeleteTitle        = "DeleteTitle"
	VerbRenameEvent        = "RenameEvent"
	VerbDeleteEvent        = "DeleteEvent"
	VerbRenameLifetimeName = "RenameLifetimeName"
	VerbDeleteLifetimeName = "DeleteLifetimeName"
)

// action holds the stored fields shared by every verb.
type action struct {
	r config.ActionRecord
}

// Verb is part of the Action interface.
func (a action) Verb() string { return a.r.Verb }

// ConfigVersion is part of the Action interface.
func (a action) ConfigVersion() int { return a.r.ConfigVersion }

// Record is part of the Action interface.
func (a action) Record() config.ActionRecord { return a.r }

// Update is part of the Action interface. Most actions do not affect
// names outside the configuration.
func (a action) Update(*config.Config, *string, *string, *string) bool { return false }

func (a action) venue(cfg *config.Config) *config.Venue {
	return cfg.Venues.Find(a.r.Venue)
}

// NewDeleteCalPlugin returns an action removing a calendar plugin.
// Plugins are not part of the record book, so applying it only reports.
func NewDeleteCalPlugin(name string) Action {
	return &deleteCalPlugin{action{config.ActionRecord{Verb: VerbDeleteCalPlugin, OldName: name}}}
}

type deleteCalPlugin struct{ action }

func (a *deleteCalPlugin) Clone() Action { c := *a; return &c }

func (a *deleteCalPlugin) Apply(ctx *Context, _ *config.Config, _ *dog.List) bool {
	ctx.line(ctx.Localizer.ActionDeleteCalPlugin(a.r.OldName))
	return false
}

// NewRenameOtherPoints returns an action renaming other points.
func NewRenameOtherPoints(version int, oldName, newName string) Action {
	return &renameOtherPoints{action{config.ActionRecord{
		Verb: VerbRenameOtherPoints, ConfigVersion: version, OldName: oldName, NewName: newName,
	}}}
}

type renameOtherPoints struct{ action }

func (a *renameOtherPoints) Clone() Action { c := *a; return &c }

func (a *renameOtherPoints) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	old := cfg.OtherPoints.Find(a.r.OldName)
	if old == nil {
		return false
	}
	n := rewriter.New(dogs).RenameOtherPoints(a.r.OldName, a.r.NewName)
	ctx.line(ctx.Localizer.ActionRenameOtherPoints(a.r.OldName, a.r.NewName, n))
	if cfg.OtherPoints.Find(a.r.NewName) != nil {
		cfg.OtherPoints.Delete(a.r.OldName)
	} else {
		old.Name = a.r.NewName
	}
	return true
}

// NewDeleteOtherPoints returns an action deleting other points.
func NewDeleteOtherPoints(version int, name string) Action {
	return &deleteOtherPoints{action{config.ActionRecord{
		Verb: VerbDeleteOtherPoints, ConfigVersion: version, OldName: name,
	}}}
}

type deleteOtherPoints struct{ action }

func (a *deleteOtherPoints) Clone() Action { c := *a; return &c }

func (a *deleteOtherPoints) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	if cfg.OtherPoints.Find(a.r.OldName) == nil {
		return false
	}
	rw := rewriter.New(dogs)
	n := rw.NumOtherPointsInUse(a.r.OldName)
	d := ctx.propose(ctx.Localizer.ActionPreDeleteOtherPoints(a.r.OldName, n), n)
	if d == nil {
		return false
	}
	rw.DeleteOtherPoints(a.r.OldName)
	commit(d)
	ctx.line(ctx.Localizer.ActionDeleteOtherPoints(a.r.OldName))
	cfg.OtherPoints.Delete(a.r.OldName)
	return true
}

// NewRenameVenue returns an action renaming a venue.
func NewRenameVenue(version int, oldName, newName string) Action {
	return &renameVenue{action{config.ActionRecord{
		Verb: VerbRenameVenue, ConfigVersion: version, OldName: oldName, NewName: newName,
	}}}
}

type renameVenue struct{ action }

func (a *renameVenue) Clone() Action { c := *a; return &c }

func (a *renameVenue) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	old := cfg.Venues.Find(a.r.OldName)
	if old == nil {
		return false
	}
	n := rewriter.New(dogs).RenameVenue(a.r.OldName, a.r.NewName)
	ctx.line(ctx.Localizer.ActionRenameVenue(a.r.OldName, a.r.NewName, n))
	if cfg.Venues.Find(a.r.NewName) != nil {
		cfg.Venues.Delete(a.r.OldName)
	} else if err := cfg.Venues.Rename(a.r.OldName, a.r.NewName); err != nil {
		logger.Errorf("renaming venue: %v", err)
	}
	return true
}

func (a *renameVenue) Update(_ *config.Config, venue, _, _ *string) bool {
	if *venue == "" || *venue != a.r.OldName {
		return false
	}
	*venue = a.r.NewName
	return true
}

// NewDeleteVenue returns an action deleting a venue.
func NewDeleteVenue(version int, name string) Action {
	return &deleteVenue{action{config.ActionRecord{
		Verb: VerbDeleteVenue, ConfigVersion: version, OldName: name,
	}}}
}

type deleteVenue struct{ action }

func (a *deleteVenue) Clone() Action { c := *a; return &c }

func (a *deleteVenue) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	if cfg.Venues.Find(a.r.OldName) == nil {
		return false
	}
	rw := rewriter.New(dogs)
	n := rw.NumVenueInUse(a.r.OldName)
	d := ctx.propose(ctx.Localizer.ActionPreDeleteVenue(a.r.OldName, n), n)
	if d == nil {
		return false
	}
	rw.DeleteVenue(a.r.OldName)
	commit(d)
	ctx.line(ctx.Localizer.ActionDeleteVenue(a.r.OldName))
	cfg.Venues.Delete(a.r.OldName)
	return true
}

// NewRenameMultiQ returns an action renaming a multiple Q of a venue.
func NewRenameMultiQ(version int, venue, oldName, newName string) Action {
	return &renameMultiQ{action{config.ActionRecord{
		Verb: VerbRenameMultiQ, ConfigVersion: version, Venue: venue, OldName: oldName, NewName: newName,
	}}}
}

type renameMultiQ struct{ action }

func (a *renameMultiQ) Clone() Action { c := *a; return &c }

func (a *renameMultiQ) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	v := a.venue(cfg)
	if v == nil || v.MultiQs.Find(a.r.OldName) == nil {
		return false
	}
	n := rewriter.New(dogs).RenameMultiQ(a.r.Venue, a.r.OldName, a.r.NewName)
	ctx.line(ctx.Localizer.ActionRenameMultiQ(a.r.Venue, a.r.OldName, a.r.NewName, n))
	if v.MultiQs.Find(a.r.NewName) != nil {
		v.MultiQs.Delete(a.r.OldName)
	} else if err := v.MultiQs.Rename(a.r.OldName, a.r.NewName); err != nil {
		logger.Errorf("renaming multiple Q: %v", err)
	}
	return true
}

// NewDeleteMultiQ returns an action deleting a multiple Q of a venue.
// The existing points naming it are swept once all actions have run.
func NewDeleteMultiQ(version int, venue, name string) Action {
	return &deleteMultiQ{action{config.ActionRecord{
		Verb: VerbDeleteMultiQ, ConfigVersion: version, Venue: venue, OldName: name,
	}}}
}

type deleteMultiQ struct{ action }

func (a *deleteMultiQ) Clone() Action { c := *a; return &c }

func (a *deleteMultiQ) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	v := a.venue(cfg)
	if v == nil || v.MultiQs.Find(a.r.OldName) == nil {
		return false
	}
	n := rewriter.New(dogs).NumMultiQInUse(a.r.Venue, a.r.OldName)
	d := ctx.propose(ctx.Localizer.ActionPreDeleteMultiQ(a.r.Venue, a.r.OldName, n), n)
	if d == nil {
		return false
	}
	commit(d)
	ctx.line(ctx.Localizer.ActionDeleteMultiQ(a.r.Venue, a.r.OldName))
	v.MultiQs.Delete(a.r.OldName)
	return true
}

// NewRenameLifetimeName returns an action renaming a lifetime name of
// a venue.
func NewRenameLifetimeName(version int, venue, oldName, newName string) Action {
	return &renameLifetimeName{action{config.ActionRecord{
		Verb: VerbRenameLifetimeName, ConfigVersion: version, Venue: venue, OldName: oldName, NewName: newName,
	}}}
}

type renameLifetimeName struct{ action }

func (a *renameLifetimeName) Clone() Action { c := *a; return &c }

func (a *renameLifetimeName) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	v := a.venue(cfg)
	if v == nil || !v.LifetimeNames.Find(a.r.OldName) {
		return false
	}
	if v.LifetimeNames.Find(a.r.NewName) {
		v.LifetimeNames.Delete(a.r.OldName)
	} else if err := v.LifetimeNames.Rename(a.r.OldName, a.r.NewName); err != nil {
		logger.Errorf("renaming lifetime name: %v", err)
	}
	events := v.Events.RenameLifetimeName(a.r.OldName, a.r.NewName)
	rewriter.New(dogs).RenameLifetimeName(a.r.Venue, a.r.OldName, a.r.NewName)
	ctx.line(ctx.Localizer.ActionRenameLifetimeName(a.r.Venue, a.r.OldName, a.r.NewName, events))
	return true
}

// NewDeleteLifetimeName returns an action deleting a lifetime name of
// a venue.
func NewDeleteLifetimeName(version int, venue, name string) Action {
	return &deleteLifetimeName{action{config.ActionRecord{
		Verb: VerbDeleteLifetimeName, ConfigVersion: version, Venue: venue, OldName: name,
	}}}
}

type deleteLifetimeName struct{ action }

func (a *deleteLifetimeName) Clone() Action { c := *a; return &c }

func (a *deleteLifetimeName) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool {
	v := a.venue(cfg)
	if v == nil || !v.LifetimeNames.Delete(a.r.OldName) {
		return false
	}
	events := v.Events.DeleteLifetimeName(a.r.OldName)
	rewriter.New(dogs).DeleteLifetimeName(a.r.Venue, a.r.OldName)
	ctx.line(ctx.Localizer.ActionDeleteLifetimeName(a.r.Venue, a.r.OldName, events))
	return true
}
