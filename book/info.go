// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package book

import (
	"sort"
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
)

const (
	elemInfo = "Info"

	attrInfoName    = "Name"
	attrInfoVisible = "Visible"
)

// InfoKind selects one of the lists of notes kept about people and
// places.
type InfoKind string

const (
	ClubInfo     InfoKind = "ClubInfo"
	JudgeInfo    InfoKind = "JudgeInfo"
	LocationInfo InfoKind = "LocationInfo"
)

var infoKinds = []InfoKind{ClubInfo, JudgeInfo, LocationInfo}

// InfoItem is a note about one club, judge or location.
type InfoItem struct {
	Name    string
	Comment string
	// Visible is cleared to hide the name from selection lists.
	Visible bool
}

// HasData reports whether the item holds more than its name.
func (i *InfoItem) HasData() bool {
	return i.Comment != "" || !i.Visible
}

func loadInfoItem(n *element.Node, lc config.LoadContext) (*InfoItem, error) {
	item := &InfoItem{}
	var err error
	if item.Name, err = lc.RequiredString(n, attrInfoName); err != nil {
		return nil, errors.Trace(err)
	}
	if item.Visible, err = lc.OptionalBool(n, attrInfoVisible, true); err != nil {
		return nil, errors.Trace(err)
	}
	item.Comment = n.Value()
	return item, nil
}

func (i *InfoItem) save(parent *element.Node, kind InfoKind) {
	n := parent.AddChild(string(kind))
	n.SetAttrib(attrInfoName, i.Name)
	if !i.Visible {
		n.SetAttribBool(attrInfoVisible, false)
	}
	n.SetValue(i.Comment)
}

// InfoItemList holds the items of one kind.
type InfoItemList []*InfoItem

// Sort orders the items by name, ignoring case.
func (l InfoItemList) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return strings.ToLower(l[i].Name) < strings.ToLower(l[j].Name)
	})
}

// Find returns the item called name, or nil.
func (l InfoItemList) Find(name string) *InfoItem {
	for _, item := range l {
		if item.Name == name {
			return item
		}
	}
	return nil
}

// Add appends a visible item called name.
func (l *InfoItemList) Add(name string) (*InfoItem, error) {
	if name == "" {
		return nil, errors.NotValidf("empty info name")
	}
	if l.Find(name) != nil {
		return nil, errors.AlreadyExistsf("info item %q", name)
	}
	item := &InfoItem{Name: name, Visible: true}
	*l = append(*l, item)
	return item, nil
}

// Delete removes the item called name.
func (l *InfoItemList) Delete(name string) bool {
	for i, item := range *l {
		if item.Name == name {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the item names. With visibleOnly, hidden items are
// left out.
func (l InfoItemList) Names(visibleOnly bool) set.Strings {
	names := set.NewStrings()
	for _, item := range l {
		if !visibleOnly || item.Visible {
			names.Add(item.Name)
		}
	}
	return names
}

// Condense drops the items holding nothing but a name that is still
// used elsewhere in the book, since such items are recreated from the
// records. It returns how many were dropped.
func (l *InfoItemList) Condense(inUse set.Strings) int {
	kept := (*l)[:0]
	for _, item := range *l {
		if !item.HasData() && inUse.Contains(item.Name) {
			continue
		}
		kept = append(kept, item)
	}
	dropped := len(*l) - len(kept)
	*l = kept
	return dropped
}

// Equal reports whether both lists hold the same items in order.
func (l InfoItemList) Equal(o InfoItemList) bool {
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

// Info holds the notes about clubs, judges and locations.
type Info struct {
	Clubs     InfoItemList
	Judges    InfoItemList
	Locations InfoItemList
}

// Items returns the list holding kind.
func (info *Info) Items(kind InfoKind) *InfoItemList {
	switch kind {
	case ClubInfo:
		return &info.Clubs
	case JudgeInfo:
		return &info.Judges
	case LocationInfo:
		return &info.Locations
	}
	return nil
}

// Equal reports whether both hold the same notes.
func (info *Info) Equal(o *Info) bool {
	return info.Clubs.Equal(o.Clubs) && info.Judges.Equal(o.Judges) && info.Locations.Equal(o.Locations)
}

// load reads an Info element. Items that cannot be read are reported
// and skipped.
func (info *Info) load(n *element.Node, lc config.LoadContext) {
	for _, child := range n.Children() {
		items := info.Items(InfoKind(child.Name()))
		if items == nil {
			lc.Callback.LogMessage(lc.Localizer.InvalidDocStructure(child.Name()))
			continue
		}
		item, err := loadInfoItem(child, lc)
		if err != nil {
			logger.Warningf("skipping %s: %v", child.Name(), err)
			continue
		}
		*items = append(*items, item)
	}
	for _, kind := range infoKinds {
		info.Items(kind).Sort()
	}
}

func (info *Info) save(parent *element.Node) {
	n := parent.AddChild(elemInfo)
	for _, kind := range infoKinds {
		for _, item := range *info.Items(kind) {
			item.save(n, kind)
		}
	}
}
