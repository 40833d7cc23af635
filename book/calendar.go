// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package book

import (
	"sort"

	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

const (
	elemCalendar = "Calendar"

	attrCalStart    = "DateStart"
	attrCalEnd      = "DateEnd"
	attrCalOpening  = "DateOpening"
	attrCalDraw     = "DateDraw"
	attrCalClosing  = "DateClosing"
	attrCalMaybe    = "isTentative"
	attrCalLocation = "Location"
	attrCalClub     = "Club"
	attrCalVenue    = "Venue"
	attrCalEntered  = "Entered"
	attrCalAccom    = "Acc"
	attrCalConfirm  = "Confirm"
	attrCalSecEmail = "SecEmail"
	attrCalPremium  = "PremiumURL"
	attrCalOnline   = "OnlineURL"

	// Version 1.0 documents only recorded whether a trial was planned.
	attrCalPlanOn = "PlanOn"
)

// EntryStatus records how far entering a trial has got.
type EntryStatus string

const (
	EntryNot      EntryStatus = "N"
	EntryEntered  EntryStatus = "E"
	EntryPending  EntryStatus = "O"
	EntryPlanning EntryStatus = "P"
)

var entryStatuses = []EntryStatus{EntryEntered, EntryPending, EntryPlanning, EntryNot}

// Accommodation records the state of the lodging for a trial.
type Accommodation string

const (
	AccomNone      Accommodation = "N"
	AccomTodo      Accommodation = "T"
	AccomConfirmed Accommodation = "C"
)

var accommodations = []Accommodation{AccomNone, AccomTodo, AccomConfirmed}

// Calendar is an upcoming or past trial the user is interested in.
type Calendar struct {
	Start   date.Date
	End     date.Date
	Opening date.Date
	Draw    date.Date
	Closing date.Date

	Tentative     bool
	Location      string
	Club          string
	Venue         string
	Entered       EntryStatus
	Accommodation Accommodation
	Confirmation  string
	SecEmail      string
	PremiumURL    string
	OnlineURL     string
	Note          string
}

// IsBefore reports whether the entry ended before d.
func (c *Calendar) IsBefore(d date.Date) bool {
	return c.End.Before(d)
}

// IsMatch reports whether o describes the same trial. An inexact match
// only compares the dates, venue and club.
func (c *Calendar) IsMatch(o *Calendar, exact bool) bool {
	if exact {
		return *c == *o
	}
	return c.Start == o.Start && c.End == o.End && c.Venue == o.Venue && c.Club == o.Club
}

// Update copies every value set in o into c and reports whether
// anything changed. The entry and accommodation states are kept.
func (c *Calendar) Update(o *Calendar) bool {
	changed := false
	dates := []struct{ dst, src *date.Date }{
		{&c.Start, &o.Start},
		{&c.End, &o.End},
		{&c.Opening, &o.Opening},
		{&c.Draw, &o.Draw},
		{&c.Closing, &o.Closing},
	}
	for _, d := range dates {
		if d.src.IsValid() && *d.dst != *d.src {
			*d.dst = *d.src
			changed = true
		}
	}
	if c.Tentative != o.Tentative {
		c.Tentative = o.Tentative
		changed = true
	}
	texts := []struct{ dst, src *string }{
		{&c.Location, &o.Location},
		{&c.Club, &o.Club},
		{&c.Venue, &o.Venue},
		{&c.SecEmail, &o.SecEmail},
		{&c.PremiumURL, &o.PremiumURL},
		{&c.OnlineURL, &o.OnlineURL},
		{&c.Note, &o.Note},
	}
	for _, t := range texts {
		if *t.src != "" && *t.dst != *t.src {
			*t.dst = *t.src
			changed = true
		}
	}
	return changed
}

func loadCalendar(n *element.Node, lc config.LoadContext) (*Calendar, error) {
	c := &Calendar{Entered: EntryNot, Accommodation: AccomNone}
	var err error
	for _, d := range []struct {
		attrib   string
		dst      *date.Date
		required bool
	}{
		{attrCalStart, &c.Start, true},
		{attrCalEnd, &c.End, true},
		{attrCalOpening, &c.Opening, false},
		{attrCalDraw, &c.Draw, false},
		{attrCalClosing, &c.Closing, false},
	} {
		if *d.dst, err = lc.OptionalDate(n, d.attrib); err != nil {
			return nil, errors.Trace(err)
		}
		if d.required && !d.dst.IsValid() {
			return nil, lc.Missing(elemCalendar, d.attrib)
		}
	}
	if c.Tentative, err = lc.OptionalBool(n, attrCalMaybe, false); err != nil {
		return nil, errors.Trace(err)
	}
	c.Location, _ = n.Attrib(attrCalLocation)
	c.Club, _ = n.Attrib(attrCalClub)
	c.Venue, _ = n.Attrib(attrCalVenue)

	if lc.Before(2, 0) {
		if planned, lookup := n.AttribBool(attrCalPlanOn); lookup == element.Found && planned {
			c.Entered = EntryPlanning
		}
	} else {
		if raw, lookup := n.Attrib(attrCalEntered); lookup == element.Found {
			if c.Entered, err = parseEntryStatus(raw, lc); err != nil {
				return nil, errors.Trace(err)
			}
		}
		if raw, lookup := n.Attrib(attrCalAccom); lookup == element.Found {
			if c.Accommodation, err = parseAccommodation(raw, lc); err != nil {
				return nil, errors.Trace(err)
			}
		}
		c.Confirmation, _ = n.Attrib(attrCalConfirm)
	}
	c.SecEmail, _ = n.Attrib(attrCalSecEmail)
	c.PremiumURL, _ = n.Attrib(attrCalPremium)
	c.OnlineURL, _ = n.Attrib(attrCalOnline)
	c.Note = n.Value()
	return c, nil
}

func parseEntryStatus(raw string, lc config.LoadContext) (EntryStatus, error) {
	names := make([]string, len(entryStatuses))
	for i, s := range entryStatuses {
		if raw == string(s) {
			return s, nil
		}
		names[i] = string(s)
	}
	return EntryNot, lc.Invalid(elemCalendar, attrCalEntered, lc.Localizer.ValidValues(names...))
}

func parseAccommodation(raw string, lc config.LoadContext) (Accommodation, error) {
	names := make([]string, len(accommodations))
	for i, a := range accommodations {
		if raw == string(a) {
			return a, nil
		}
		names[i] = string(a)
	}
	return AccomNone, lc.Invalid(elemCalendar, attrCalAccom, lc.Localizer.ValidValues(names...))
}

func (c *Calendar) save(parent *element.Node) {
	n := parent.AddChild(elemCalendar)
	n.SetAttribDate(attrCalStart, c.Start)
	n.SetAttribDate(attrCalEnd, c.End)
	n.SetAttribDate(attrCalOpening, c.Opening)
	n.SetAttribDate(attrCalDraw, c.Draw)
	n.SetAttribDate(attrCalClosing, c.Closing)
	if c.Tentative {
		n.SetAttribBool(attrCalMaybe, true)
	}
	setAttrib(n, attrCalLocation, c.Location)
	setAttrib(n, attrCalClub, c.Club)
	setAttrib(n, attrCalVenue, c.Venue)
	entered := c.Entered
	if entered == "" {
		entered = EntryNot
	}
	n.SetAttrib(attrCalEntered, string(entered))
	accom := c.Accommodation
	if accom == "" {
		accom = AccomNone
	}
	n.SetAttrib(attrCalAccom, string(accom))
	setAttrib(n, attrCalConfirm, c.Confirmation)
	setAttrib(n, attrCalSecEmail, c.SecEmail)
	setAttrib(n, attrCalPremium, c.PremiumURL)
	setAttrib(n, attrCalOnline, c.OnlineURL)
	n.SetValue(c.Note)
}

// CalendarList holds the calendar entries, ordered by start date.
type CalendarList []*Calendar

// Sort orders the entries by start date, keeping the order of entries
// starting on the same day.
func (l CalendarList) Sort() {
	sort.SliceStable(l, func(i, j int) bool { return l[i].Start.Before(l[j].Start) })
}

// Entered returns the entries that have been or are being entered.
func (l CalendarList) Entered() CalendarList {
	var entered CalendarList
	for _, c := range l {
		if c.Entered == EntryEntered || c.Entered == EntryPending {
			entered = append(entered, c)
		}
	}
	return entered
}

// Find returns the first entry matching c.
func (l CalendarList) Find(c *Calendar, exact bool) *Calendar {
	for _, existing := range l {
		if existing.IsMatch(c, exact) {
			return existing
		}
	}
	return nil
}

// Add appends c. Both the start and end dates are required.
func (l *CalendarList) Add(c *Calendar) error {
	if !c.Start.IsValid() || !c.End.IsValid() {
		return errors.NotValidf("calendar entry without start and end dates")
	}
	*l = append(*l, c)
	return nil
}

// Delete removes the first entry equal to c.
func (l *CalendarList) Delete(c *Calendar) bool {
	for i, existing := range *l {
		if *existing == *c {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Trim removes the entries that ended before d and returns how many
// were removed. An invalid d removes nothing.
func (l *CalendarList) Trim(d date.Date) int {
	if !d.IsValid() {
		return 0
	}
	kept := (*l)[:0]
	for _, c := range *l {
		if !c.IsBefore(d) {
			kept = append(kept, c)
		}
	}
	trimmed := len(*l) - len(kept)
	*l = kept
	return trimmed
}

// Equal reports whether both lists hold the same entries in order.
func (l CalendarList) Equal(o CalendarList) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if *l[i] != *o[i] {
			return false
		}
	}
	return true
}

func setAttrib(n *element.Node, name, value string) {
	if value != "" {
		n.SetAttrib(name, value)
	}
}
