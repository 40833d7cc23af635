// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package localization defines the user-facing messages produced while
// loading and updating a record book. Callers pass a Localizer to the
// code that needs one; there is no package-level instance.
package localization

// Localizer formats every message the record book core shows to a user.
type Localizer interface {
	// Load errors and warnings.
	UnknownVersion(version string) string
	WarningNewerDoc() string
	InvalidRoot(expected string) string
	MissingConfig() string
	InvalidConfig() string
	InvalidDocStructure(detail string) string
	MissingAttribute(element, attrib string) string
	InvalidAttribValue(element, attrib, detail string) string
	ValidValues(values ...string) string
	InvalidVenueName(venue string) string
	InvalidDivLevel(venue, div, level string) string
	InvalidEventName(venue, event string) string
	InvalidTitle(venue, title string) string
	InvalidOtherPtsName(name string) string
	InvalidMultiqName(venue, name string) string

	// Configuration update report.
	UpdateFaults(added, skipped int) string
	UpdateOtherPts(added, updated, skipped int) string
	UpdateVenues(added, updated, skipped int) string
	UpdateLifetimeNames(added, skipped int) string
	UpdateDivisions(added, updated, skipped int) string
	UpdateDivisionsReordered() string
	UpdateEvents(added, updated, skipped int) string
	UpdateEventsReordered() string
	UpdateMultiqs(added, deleted, skipped int) string
	UpdateMultiqsReordered() string
	UpdateLevels(added, updated, skipped int) string
	UpdateLevelsReordered() string
	UpdateTitles(added, updated, skipped int) string
	UpdateTitlesReordered() string
	UpdateSubLevels(added, updated, skipped int) string
	UpdateSubLevelsReordered() string
	UpdateRules(added, deleted, updated, skipped int) string
	WarnDeletedRuns(runs int, detail string) string
	UpdateTeamRuns(runs int, detail string) string
	UpdateTableRuns(runs int, detail string) string
	UpdateSubNameRuns(runs int, detail string) string

	// Configuration actions.
	ActionDeleteCalPlugin(name string) string
	ActionRenameOtherPoints(oldName, newName string, changes int) string
	ActionPreDeleteOtherPoints(name string, changes int) string
	ActionDeleteOtherPoints(name string) string
	ActionRenameVenue(oldName, newName string, changes int) string
	ActionPreDeleteVenue(name string, changes int) string
	ActionDeleteVenue(name string) string
	ActionRenameMultiQ(venue, oldName, newName string, changes int) string
	ActionPreDeleteMultiQ(venue, name string, changes int) string
	ActionDeleteMultiQ(venue, name string) string
	ActionRenameDivision(venue, oldName, newName string, changes int) string
	ActionPreDeleteDivision(venue, name string, changes int) string
	ActionDeleteDivision(venue, name string) string
	ActionMultiHostedTrials(venue, name string, trials int) string
	ActionRenameLevel(venue, oldName, newName string, changes int) string
	ActionPreDeleteLevel(venue, name string, changes int) string
	ActionDeleteLevel(venue, name string) string
	ActionRenameTitle(venue, oldName, newName string, changes int) string
	ActionPreDeleteTitle(venue, name string, changes int) string
	ActionDeleteTitle(venue, name string) string
	ActionRenameEvent(venue, oldName, newName string, changes int) string
	ActionPreDeleteEvent(venue, name string, changes int) string
	ActionDeleteEvent(venue, name string) string
	ActionRenameLifetimeName(venue, oldName, newName string, eventChanges int) string
	ActionDeleteLifetimeName(venue, name string, eventChanges int) string

	// Points descriptions.
	TitlePointsNameFormat(points, faults float64) string
	LifetimePointsNameFormat(points, faults float64) string
	LifetimePointsNameWithSpeedPointsFormat(faults float64) string
	PlacementPointsNameFormat(points float64, place int) string
}
