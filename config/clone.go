// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"github.com/mohae/deepcopy"
)

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	return deepcopy.Copy(c).(*Config)
}

// Clone returns an independent copy of the venue.
func (v *Venue) Clone() *Venue {
	return deepcopy.Copy(v).(*Venue)
}

// Clone returns an independent copy of the division.
func (d *Division) Clone() *Division {
	return deepcopy.Copy(d).(*Division)
}

// Clone returns an independent copy of the level.
func (lv *Level) Clone() *Level {
	return deepcopy.Copy(lv).(*Level)
}

// Clone returns an independent copy of the event.
func (e *Event) Clone() *Event {
	return deepcopy.Copy(e).(*Event)
}

// Clone returns an independent copy of the rule.
func (s *Scoring) Clone() *Scoring {
	return deepcopy.Copy(s).(*Scoring)
}

// Clone returns an independent copy of the title.
func (t *Title) Clone() *Title {
	copied := *t
	return &copied
}

// Clone returns an independent copy of the multiple Q.
func (m *MultiQ) Clone() *MultiQ {
	return deepcopy.Copy(m).(*MultiQ)
}

// Clone returns an independent copy of the rules.
func (l ScoringList) Clone() ScoringList {
	if l == nil {
		return nil
	}
	return deepcopy.Copy(l).(ScoringList)
}

// Clone returns an independent copy of the multiple Qs.
func (l MultiQList) Clone() MultiQList {
	if l == nil {
		return nil
	}
	return deepcopy.Copy(l).(MultiQList)
}
