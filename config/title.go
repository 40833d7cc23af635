// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"strconv"
	"strings"

	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

const (
	elemTitles = "Titles"

	attrLongName        = "LongName"
	attrPrefix          = "Prefix"
	attrMultiple        = "Multiple"
	attrMultipleInc     = "MultipleInc"
	attrMultipleOnFirst = "MultipleOnFirst"
	attrMultipleStyle   = "Style"
)

// TitleStyle is how the instance number of a recurring title is shown.
type TitleStyle string

const (
	TitleStyleNone   TitleStyle = ""
	TitleStyleNumber TitleStyle = "Number"
	TitleStyleRoman  TitleStyle = "Roman"
)

// Validate returns an error if s is not a known style.
func (s TitleStyle) Validate() error {
	switch s {
	case TitleStyleNone, TitleStyleNumber, TitleStyleRoman:
		return nil
	}
	return errors.NotValidf("title style %q", string(s))
}

// Title is a title a venue awards.
type Title struct {
	Name      string
	LongName  string
	Desc      string
	Prefix    bool
	ValidFrom date.Date
	ValidTo   date.Date

	// MultipleStartAt is the first instance number of a recurring
	// title; zero means the title is earned once.
	MultipleStartAt   int
	MultipleIncrement int
	MultipleOnFirst   bool
	MultipleStyle     TitleStyle
}

// Equal reports whether both titles hold the same values.
func (t *Title) Equal(o *Title) bool {
	return *t == *o
}

// IsRecurring reports whether the title may be earned repeatedly.
func (t *Title) IsRecurring() bool {
	return t.MultipleStartAt > 0
}

// IsValidOn reports whether the title can be earned on d.
func (t *Title) IsValidOn(d date.Date) bool {
	if !d.IsValid() {
		return true
	}
	return d.InRange(t.ValidFrom, t.ValidTo)
}

// Instance formats the name of the given instance of the title.
func (t *Title) Instance(instance int, style TitleStyle) string {
	if !t.IsRecurring() || instance <= 0 {
		return t.Name
	}
	if instance == t.MultipleStartAt && !t.MultipleOnFirst {
		return t.Name
	}
	switch style {
	case TitleStyleNumber:
		return t.Name + strconv.Itoa(instance)
	case TitleStyleRoman:
		return t.Name + "-" + roman(instance)
	}
	return t.Name
}

var romanDigits = []struct {
	value  int
	digits string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	var b strings.Builder
	for _, r := range romanDigits {
		for n >= r.value {
			b.WriteString(r.digits)
			n -= r.value
		}
	}
	return b.String()
}

func (t *Title) load(n *element.Node, lc LoadContext) error {
	var err error
	if t.Name, err = lc.RequiredString(n, attrName); err != nil {
		return errors.Trace(err)
	}
	t.LongName, _ = n.Attrib(attrLongName)
	t.Desc = n.Value()
	if t.Prefix, err = lc.OptionalBool(n, attrPrefix, false); err != nil {
		return errors.Trace(err)
	}
	if t.ValidFrom, err = lc.OptionalDate(n, attrValidFrom); err != nil {
		return errors.Trace(err)
	}
	if t.ValidTo, err = lc.OptionalDate(n, attrValidTo); err != nil {
		return errors.Trace(err)
	}
	if t.MultipleStartAt, err = lc.OptionalInt(n, attrMultiple, 0); err != nil {
		return errors.Trace(err)
	}
	if t.MultipleIncrement, err = lc.OptionalInt(n, attrMultipleInc, 1); err != nil {
		return errors.Trace(err)
	}
	if t.MultipleOnFirst, err = lc.OptionalBool(n, attrMultipleOnFirst, false); err != nil {
		return errors.Trace(err)
	}
	style, _ := n.Attrib(attrMultipleStyle)
	if err := TitleStyle(style).Validate(); err != nil {
		return lc.Invalid(n.Name(), attrMultipleStyle,
			lc.Localizer.ValidValues(string(TitleStyleNumber), string(TitleStyleRoman)))
	}
	t.MultipleStyle = TitleStyle(style)
	if t.IsRecurring() && t.MultipleStyle == TitleStyleNone {
		t.MultipleStyle = TitleStyleNumber
	}
	return nil
}

func (t *Title) save(parent *element.Node) {
	n := parent.AddChild(elemTitles)
	n.SetAttrib(attrName, t.Name)
	if t.LongName != "" {
		n.SetAttrib(attrLongName, t.LongName)
	}
	if t.Prefix {
		n.SetAttribBool(attrPrefix, true)
	}
	n.SetAttribDate(attrValidFrom, t.ValidFrom)
	n.SetAttribDate(attrValidTo, t.ValidTo)
	if t.IsRecurring() {
		n.SetAttribInt(attrMultiple, t.MultipleStartAt)
		n.SetAttribInt(attrMultipleInc, t.MultipleIncrement)
		if t.MultipleOnFirst {
			n.SetAttribBool(attrMultipleOnFirst, true)
		}
		n.SetAttrib(attrMultipleStyle, string(t.MultipleStyle))
	}
	n.SetValue(t.Desc)
}

// TitleList is an ordered list of titles.
type TitleList []*Title

// Find returns the title with the given name, or nil.
func (l TitleList) Find(name string) *Title {
	for _, t := range l {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Add appends a title.
func (l *TitleList) Add(t *Title) error {
	if t == nil || t.Name == "" {
		return errors.NotValidf("empty title name")
	}
	if l.Find(t.Name) != nil {
		return errors.AlreadyExistsf("title %q", t.Name)
	}
	*l = append(*l, t)
	return nil
}

// Delete removes the named title.
func (l *TitleList) Delete(name string) bool {
	for i, t := range *l {
		if t.Name == name {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Rename changes the name of a title, failing if the new name is taken.
func (l TitleList) Rename(oldName, newName string) error {
	t := l.Find(oldName)
	if t == nil {
		return errors.NotFoundf("title %q", oldName)
	}
	if oldName != newName && l.Find(newName) != nil {
		return errors.AlreadyExistsf("title %q", newName)
	}
	t.Name = newName
	return nil
}

// ReorderBy arranges the titles in the order of other.
func (l *TitleList) ReorderBy(other TitleList) {
	*l = reorderBy(*l, other, func(t *Title) string { return t.Name })
}
