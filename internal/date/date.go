// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package date holds the calendar dates stored in record book documents.
package date

import (
	"fmt"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
)

const layout = "2006-01-02"

// Date is a calendar day with no time or zone. The zero value is
// not a valid date and is written as an absent attribute.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the date for the given day.
func New(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// FromTime returns the date part of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current date according to clk.
func Today(clk clock.Clock) Date {
	return FromTime(clk.Now())
}

// Parse parses a date of the form yyyy-mm-dd.
func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, errors.NotValidf("date %q", s)
	}
	return FromTime(t), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsValid reports whether d names a real day.
func (d Date) IsValid() bool {
	if d.Year <= 0 || d.Month < time.January || d.Month > time.December || d.Day <= 0 {
		return false
	}
	return FromTime(d.Time()) == d
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String returns the yyyy-mm-dd form, or "" for an invalid date.
func (d Date) String() string {
	if !d.IsValid() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compare returns -1, 0 or 1. Invalid dates sort first.
func (d Date) Compare(o Date) int {
	switch {
	case !d.IsValid() && !o.IsValid():
		return 0
	case !d.IsValid():
		return -1
	case !o.IsValid():
		return 1
	}
	return d.Time().Compare(o.Time())
}

// Before reports whether d is before o.
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// After reports whether d is after o.
func (d Date) After(o Date) bool {
	return d.Compare(o) > 0
}

// InRange reports whether d lies within [from, to]. An invalid bound
// leaves that side of the range open.
func (d Date) InRange(from, to Date) bool {
	if from.IsValid() && d.Before(from) {
		return false
	}
	if to.IsValid() && d.After(to) {
		return false
	}
	return true
}
