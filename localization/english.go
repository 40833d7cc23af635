// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package localization

import (
	"fmt"
	"strconv"
	"strings"
)

// English is the built-in Localizer.
type English struct{}

var _ Localizer = English{}

func (English) UnknownVersion(version string) string {
	return fmt.Sprintf("Unknown document version: %s", version)
}

func (English) WarningNewerDoc() string {
	return "This file was created by a newer version of the program. " +
		"Data the newer version added may be lost if you continue."
}

func (English) InvalidRoot(expected string) string {
	return fmt.Sprintf("Invalid root element, expected %q.", expected)
}

func (English) MissingConfig() string {
	return "The file has no configuration."
}

func (English) InvalidConfig() string {
	return "The file has more than one configuration."
}

func (English) InvalidDocStructure(detail string) string {
	return "Invalid document structure: " + detail
}

func (English) MissingAttribute(element, attrib string) string {
	return fmt.Sprintf("Element %q is missing required attribute %q.", element, attrib)
}

func (English) InvalidAttribValue(element, attrib, detail string) string {
	msg := fmt.Sprintf("Element %q has an invalid value for attribute %q.", element, attrib)
	if detail != "" {
		msg += " " + detail
	}
	return msg
}

func (English) ValidValues(values ...string) string {
	return "Valid values: " + strings.Join(values, ", ")
}

func (English) InvalidVenueName(venue string) string {
	return fmt.Sprintf("Venue %q is not defined in the configuration.", venue)
}

func (English) InvalidDivLevel(venue, div, level string) string {
	return fmt.Sprintf("Division/level %q/%q is not defined in venue %q.", div, level, venue)
}

func (English) InvalidEventName(venue, event string) string {
	return fmt.Sprintf("Event %q is not defined in venue %q.", event, venue)
}

func (English) InvalidTitle(venue, title string) string {
	return fmt.Sprintf("Title %q is not defined in venue %q.", title, venue)
}

func (English) InvalidOtherPtsName(name string) string {
	return fmt.Sprintf("Other points %q are not defined in the configuration.", name)
}

func (English) InvalidMultiqName(venue, name string) string {
	return fmt.Sprintf("Multiple Q %q is not defined in venue %q.", name, venue)
}

func counts(label string, parts ...string) string {
	return label + ": " + strings.Join(parts, ", ")
}

func added(n int) string     { return fmt.Sprintf("%d added", n) }
func updated(n int) string   { return fmt.Sprintf("%d updated", n) }
func deleted(n int) string   { return fmt.Sprintf("%d deleted", n) }
func identical(n int) string { return fmt.Sprintf("%d identical", n) }

func (English) UpdateFaults(a, s int) string {
	return counts("Faults", added(a), identical(s))
}

func (English) UpdateOtherPts(a, u, s int) string {
	return counts("Other Points", added(a), updated(u), identical(s))
}

func (English) UpdateVenues(a, u, s int) string {
	return counts("Venues", added(a), updated(u), identical(s))
}

func (English) UpdateLifetimeNames(a, s int) string {
	return counts("Lifetime Names", added(a), identical(s))
}

func (English) UpdateDivisions(a, u, s int) string {
	return counts("Divisions", added(a), updated(u), identical(s))
}

func (English) UpdateDivisionsReordered() string { return "Divisions: reordered" }

func (English) UpdateEvents(a, u, s int) string {
	return counts("Events", added(a), updated(u), identical(s))
}

func (English) UpdateEventsReordered() string { return "Events: reordered" }

func (English) UpdateMultiqs(a, d, s int) string {
	return counts("Multiple Qs", added(a), deleted(d), identical(s))
}

func (English) UpdateMultiqsReordered() string { return "Multiple Qs: reordered" }

func (English) UpdateLevels(a, u, s int) string {
	return counts("Levels", added(a), updated(u), identical(s))
}

func (English) UpdateLevelsReordered() string { return "Levels: reordered" }

func (English) UpdateTitles(a, u, s int) string {
	return counts("Titles", added(a), updated(u), identical(s))
}

func (English) UpdateTitlesReordered() string { return "Titles: reordered" }

func (English) UpdateSubLevels(a, u, s int) string {
	return counts("Sub-Levels", added(a), updated(u), identical(s))
}

func (English) UpdateSubLevelsReordered() string { return "Sub-Levels: reordered" }

func (English) UpdateRules(a, d, u, s int) string {
	return " " + counts("Rules", added(a), deleted(d), updated(u), identical(s))
}

func (English) WarnDeletedRuns(runs int, detail string) string {
	return fmt.Sprintf("%d run(s) were deleted because the configuration no longer defines them:\n%s", runs, detail)
}

func (English) UpdateTeamRuns(runs int, detail string) string {
	return fmt.Sprintf("%d Pairs run(s) were moved to the Team event:\n%s", runs, detail)
}

func (English) UpdateTableRuns(runs int, detail string) string {
	return fmt.Sprintf("%d run(s) no longer record a table because their event has none:\n%s", runs, detail)
}

func (English) UpdateSubNameRuns(runs int, detail string) string {
	return fmt.Sprintf("%d run(s) lost their subname because their event has none:\n%s", runs, detail)
}

func (English) ActionDeleteCalPlugin(name string) string {
	return fmt.Sprintf("Action: Deleting calendar plugin %q\n", name)
}

func withChanges(msg string, changes int) string {
	if changes > 0 {
		msg += fmt.Sprintf(", %d record(s) updated", changes)
	}
	return msg + "\n"
}

func (English) ActionRenameOtherPoints(oldName, newName string, n int) string {
	return withChanges(fmt.Sprintf("Action: Renaming Other Points [%s] to [%s]", oldName, newName), n)
}

func (English) ActionPreDeleteOtherPoints(name string, n int) string {
	return fmt.Sprintf("Other Points [%s] will be deleted. %d record(s) use them and will also be deleted.", name, n)
}

func (English) ActionDeleteOtherPoints(name string) string {
	return fmt.Sprintf("Action: Deleting Other Points [%s]\n", name)
}

func (English) ActionRenameVenue(oldName, newName string, n int) string {
	return withChanges(fmt.Sprintf("Action: Renaming Venue [%s] to [%s]", oldName, newName), n)
}

func (English) ActionPreDeleteVenue(name string, n int) string {
	return fmt.Sprintf("Venue [%s] will be deleted. %d record(s) refer to it and will also be deleted.", name, n)
}

func (English) ActionDeleteVenue(name string) string {
	return fmt.Sprintf("Action: Deleting Venue [%s]\n", name)
}

func (English) ActionRenameMultiQ(venue, oldName, newName string, n int) string {
	return withChanges(fmt.Sprintf("Action: Renaming Multiple Q [%s/%s] to [%s]", venue, oldName, newName), n)
}

func (English) ActionPreDeleteMultiQ(venue, name string, n int) string {
	return fmt.Sprintf("Multiple Q [%s/%s] will be deleted. %d record(s) refer to it and will also be deleted.", venue, name, n)
}

func (English) ActionDeleteMultiQ(venue, name string) string {
	return fmt.Sprintf("Action: Deleting Multiple Q [%s/%s]\n", venue, name)
}

func (English) ActionRenameDivision(venue, oldName, newName string, n int) string {
	return withChanges(fmt.Sprintf("Action: Renaming Division [%s/%s] to [%s]", venue, oldName, newName), n)
}

func (English) ActionPreDeleteDivision(venue, name string, n int) string {
	return fmt.Sprintf("Division [%s/%s] will be deleted. %d record(s) refer to it and will also be deleted.", venue, name, n)
}

func (English) ActionDeleteDivision(venue, name string) string {
	return fmt.Sprintf("Action: Deleting Division [%s/%s]\n", venue, name)
}

func (English) ActionMultiHostedTrials(venue, name string, trials int) string {
	return fmt.Sprintf("%d trial(s) hosted with another venue also use division [%s/%s]; their runs are kept.", trials, venue, name)
}

func (English) ActionRenameLevel(venue, oldName, newName string, n int) string {
	return withChanges(fmt.Sprintf("Action: Renaming Level [%s/%s] to [%s]", venue, oldName, newName), n)
}

func (English) ActionPreDeleteLevel(venue, name string, n int) string {
	return fmt.Sprintf("Level [%s/%s] will be deleted. %d record(s) refer to it and will also be deleted.", venue, name, n)
}

func (English) ActionDeleteLevel(venue, name string) string {
	return fmt.Sprintf("Action: Deleting Level [%s/%s]\n", venue, name)
}

func (English) ActionRenameTitle(venue, oldName, newName string, n int) string {
	return withChanges(fmt.Sprintf("Action: Renaming Title [%s/%s] to [%s]", venue, oldName, newName), n)
}

func (English) ActionPreDeleteTitle(venue, name string, n int) string {
	return fmt.Sprintf("Title [%s/%s] will be deleted. %d record(s) refer to it and will also be deleted.", venue, name, n)
}

func (English) ActionDeleteTitle(venue, name string) string {
	return fmt.Sprintf("Action: Deleting Title [%s/%s]\n", venue, name)
}

func (English) ActionRenameEvent(venue, oldName, newName string, n int) string {
	return withChanges(fmt.Sprintf("Action: Renaming Event [%s/%s] to [%s]", venue, oldName, newName), n)
}

func (English) ActionPreDeleteEvent(venue, name string, n int) string {
	return fmt.Sprintf("Event [%s/%s] will be deleted. %d record(s) refer to it and will also be deleted.", venue, name, n)
}

func (English) ActionDeleteEvent(venue, name string) string {
	return fmt.Sprintf("Action: Deleting Event [%s/%s]\n", venue, name)
}

func (English) ActionRenameLifetimeName(venue, oldName, newName string, n int) string {
	return withChanges(fmt.Sprintf("Action: Renaming Lifetime Name [%s/%s] to [%s]", venue, oldName, newName), n)
}

func (English) ActionDeleteLifetimeName(venue, name string, n int) string {
	return withChanges(fmt.Sprintf("Action: Deleting Lifetime Name [%s/%s]", venue, name), n)
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (English) TitlePointsNameFormat(points, faults float64) string {
	return fmt.Sprintf("%s points with %s faults", number(points), number(faults))
}

func (English) LifetimePointsNameFormat(points, faults float64) string {
	return fmt.Sprintf("%s lifetime points with %s faults", number(points), number(faults))
}

func (English) LifetimePointsNameWithSpeedPointsFormat(faults float64) string {
	return fmt.Sprintf("Speed points with %s faults", number(faults))
}

func (English) PlacementPointsNameFormat(points float64, place int) string {
	return fmt.Sprintf("%s points for place %d", number(points), place)
}
