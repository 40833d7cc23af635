// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"strings"

	"github.com/juju/errors"

	"github.com/dconnet/AgilityBook-sub002/internal/element"
	"github.com/dconnet/AgilityBook-sub002/localization"
)

const (
	elemDivision = "Division"
	elemLevel    = "Level"
	elemSubLevel = "SubLevel"

	attrName      = "Name"
	attrShortName = "SName"
)

// Wildcard matches any division or level in scoring rules.
const Wildcard = "*"

// SubLevel is a named subdivision of a level. Runs entered in a
// sublevel are scored as runs of the owning level.
type SubLevel struct {
	Name      string
	ShortName string
}

// Equal reports whether both sublevels hold the same values.
func (s *SubLevel) Equal(o *SubLevel) bool {
	return *s == *o
}

// SubLevelList is an ordered list of sublevels.
type SubLevelList []*SubLevel

// Find returns the sublevel with the given name, or nil.
func (l SubLevelList) Find(name string) *SubLevel {
	for _, s := range l {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Add appends a new sublevel.
func (l *SubLevelList) Add(name string) (*SubLevel, error) {
	if name == "" {
		return nil, errors.NotValidf("empty sublevel name")
	}
	if l.Find(name) != nil {
		return nil, errors.AlreadyExistsf("sublevel %q", name)
	}
	s := &SubLevel{Name: name}
	*l = append(*l, s)
	return s, nil
}

// Delete removes the named sublevel.
func (l *SubLevelList) Delete(name string) bool {
	for i, s := range *l {
		if s.Name == name {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Level is a level within a division.
type Level struct {
	Name      string
	ShortName string
	SubLevels SubLevelList
}

// IsLeaf reports whether runs are entered directly in this level.
func (lv *Level) IsLeaf() bool {
	return len(lv.SubLevels) == 0
}

// Equal reports whether both levels hold the same values.
func (lv *Level) Equal(o *Level) bool {
	return lv.Name == o.Name && lv.ShortName == o.ShortName &&
		equalLists(lv.SubLevels, o.SubLevels)
}

func (lv *Level) load(n *element.Node, lc LoadContext) error {
	var err error
	if lv.Name, err = lc.RequiredString(n, attrName); err != nil {
		return errors.Trace(err)
	}
	lv.ShortName, _ = n.Attrib(attrShortName)
	for _, child := range n.ChildrenNamed(elemSubLevel) {
		name, err := lc.RequiredString(child, attrName)
		if err != nil {
			return errors.Trace(err)
		}
		short, _ := child.Attrib(attrShortName)
		lv.SubLevels = append(lv.SubLevels, &SubLevel{Name: name, ShortName: short})
	}
	return nil
}

func (lv *Level) save(parent *element.Node) {
	n := parent.AddChild(elemLevel)
	n.SetAttrib(attrName, lv.Name)
	if lv.ShortName != "" {
		n.SetAttrib(attrShortName, lv.ShortName)
	}
	for _, s := range lv.SubLevels {
		sub := n.AddChild(elemSubLevel)
		sub.SetAttrib(attrName, s.Name)
		if s.ShortName != "" {
			sub.SetAttrib(attrShortName, s.ShortName)
		}
	}
}

// Update merges the sublevels of newLevel into lv.
func (lv *Level) Update(indent int, newLevel *Level, info *strings.Builder, loc localization.Localizer) bool {
	if lv.Name != newLevel.Name {
		return false
	}
	indentName, indentBody := indents(indent)
	var body strings.Builder
	if !equalLists(lv.SubLevels, newLevel.SubLevels) {
		added, changed, skipped := 0, 0, 0
		for _, s := range newLevel.SubLevels {
			existing := lv.SubLevels.Find(s.Name)
			switch {
			case existing == nil:
				added++
				copied := *s
				lv.SubLevels = append(lv.SubLevels, &copied)
			case !existing.Equal(s):
				changed++
				existing.ShortName = s.ShortName
			default:
				skipped++
			}
		}
		lv.SubLevels = reorderBy(lv.SubLevels, newLevel.SubLevels, func(s *SubLevel) string { return s.Name })
		body.WriteString(indentBody)
		if added > 0 || changed > 0 {
			body.WriteString(loc.UpdateSubLevels(added, changed, skipped))
		} else {
			body.WriteString(loc.UpdateSubLevelsReordered())
		}
		body.WriteString("\n")
	}
	renamed := lv.ShortName != newLevel.ShortName
	lv.ShortName = newLevel.ShortName
	if body.Len() == 0 && !renamed {
		return false
	}
	info.WriteString(indentName + lv.Name + "\n" + body.String())
	return true
}

// LevelList is an ordered list of levels.
type LevelList []*Level

// Find returns the level with the given name, or nil.
func (l LevelList) Find(name string) *Level {
	for _, lv := range l {
		if lv.Name == name {
			return lv
		}
	}
	return nil
}

// FindSubLevel returns the level a run's level name refers to: a leaf
// level of that name, or the level owning a sublevel of that name.
func (l LevelList) FindSubLevel(name string) *Level {
	for _, lv := range l {
		if lv.IsLeaf() && lv.Name == name {
			return lv
		}
	}
	for _, lv := range l {
		if lv.SubLevels.Find(name) != nil {
			return lv
		}
	}
	return nil
}

// Verify reports whether name is a level that runs may be entered in.
// The wildcard is accepted when allowWildcard is set.
func (l LevelList) Verify(name string, allowWildcard bool) bool {
	if allowWildcard && name == Wildcard {
		return true
	}
	return l.FindSubLevel(name) != nil
}

// VerifyName reports whether name is one of the levels themselves.
// Scoring rules name levels, never sublevels. The wildcard is accepted
// when allowWildcard is set.
func (l LevelList) VerifyName(name string, allowWildcard bool) bool {
	if allowWildcard && name == Wildcard {
		return true
	}
	return l.Find(name) != nil
}

// Add appends a new level.
func (l *LevelList) Add(name string) (*Level, error) {
	if name == "" {
		return nil, errors.NotValidf("empty level name")
	}
	if l.Find(name) != nil {
		return nil, errors.AlreadyExistsf("level %q", name)
	}
	lv := &Level{Name: name}
	*l = append(*l, lv)
	return lv, nil
}

// Delete removes the named level.
func (l *LevelList) Delete(name string) bool {
	for i, lv := range *l {
		if lv.Name == name {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Rename changes the name of a level, failing if the new name is taken.
func (l LevelList) Rename(oldName, newName string) error {
	lv := l.Find(oldName)
	if lv == nil {
		return errors.NotFoundf("level %q", oldName)
	}
	if oldName != newName && l.Find(newName) != nil {
		return errors.AlreadyExistsf("level %q", newName)
	}
	lv.Name = newName
	return nil
}

// ReorderBy arranges the levels in the order of other.
func (l *LevelList) ReorderBy(other LevelList) {
	*l = reorderBy(*l, other, func(lv *Level) string { return lv.Name })
}

// Division is a division within a venue.
type Division struct {
	Name   string
	Levels LevelList
}

// Equal reports whether both divisions hold the same values.
func (d *Division) Equal(o *Division) bool {
	return d.Name == o.Name && equalLists(d.Levels, o.Levels)
}

func (d *Division) load(n *element.Node, lc LoadContext) error {
	var err error
	if d.Name, err = lc.RequiredString(n, attrName); err != nil {
		return errors.Trace(err)
	}
	for _, child := range n.ChildrenNamed(elemLevel) {
		lv := &Level{}
		if err := lv.load(child, lc); err != nil {
			return errors.Annotatef(err, "division %q", d.Name)
		}
		d.Levels = append(d.Levels, lv)
	}
	return nil
}

func (d *Division) save(parent *element.Node) {
	n := parent.AddChild(elemDivision)
	n.SetAttrib(attrName, d.Name)
	for _, lv := range d.Levels {
		lv.save(n)
	}
}

// Update merges the levels of newDiv into d.
func (d *Division) Update(indent int, newDiv *Division, info *strings.Builder, loc localization.Localizer) bool {
	if d.Name != newDiv.Name {
		return false
	}
	indentName, indentBody := indents(indent)
	var body strings.Builder
	if !equalLists(d.Levels, newDiv.Levels) {
		var details strings.Builder
		added, changed, skipped := 0, 0, 0
		for _, lv := range newDiv.Levels {
			existing := d.Levels.Find(lv.Name)
			switch {
			case existing == nil:
				added++
				d.Levels = append(d.Levels, lv.Clone())
				details.WriteString(indentBody + "+" + lv.Name + "\n")
			case existing.Equal(lv):
				skipped++
			default:
				if existing.Update(indent+1, lv, &details, loc) {
					changed++
				}
			}
		}
		d.Levels.ReorderBy(newDiv.Levels)
		body.WriteString(indentBody)
		if added > 0 || changed > 0 {
			body.WriteString(loc.UpdateLevels(added, changed, skipped))
			body.WriteString("\n")
			body.WriteString(details.String())
		} else {
			body.WriteString(loc.UpdateLevelsReordered())
			body.WriteString("\n")
		}
	}
	if body.Len() == 0 {
		return false
	}
	info.WriteString(indentName + d.Name + "\n" + body.String())
	return true
}

// DivisionList is an ordered list of divisions.
type DivisionList []*Division

// Find returns the division with the given name, or nil.
func (l DivisionList) Find(name string) *Division {
	for _, d := range l {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Verify reports whether name is a division, optionally accepting the
// wildcard.
func (l DivisionList) Verify(name string, allowWildcard bool) bool {
	if allowWildcard && name == Wildcard {
		return true
	}
	return l.Find(name) != nil
}

// VerifyLevel reports whether level exists in div. Either may be the
// wildcard when allowWildcard is set.
func (l DivisionList) VerifyLevel(div, level string, allowWildcard bool) bool {
	if allowWildcard && div == Wildcard {
		if level == Wildcard {
			return true
		}
		for _, d := range l {
			if d.Levels.Verify(level, false) {
				return true
			}
		}
		return false
	}
	d := l.Find(div)
	return d != nil && d.Levels.Verify(level, allowWildcard)
}

// VerifyScoringLevel is like VerifyLevel with wildcards allowed, but
// level must name a level rather than a sublevel.
func (l DivisionList) VerifyScoringLevel(div, level string) bool {
	if div == Wildcard {
		if level == Wildcard {
			return true
		}
		for _, d := range l {
			if d.Levels.VerifyName(level, false) {
				return true
			}
		}
		return false
	}
	d := l.Find(div)
	return d != nil && d.Levels.VerifyName(level, true)
}

// Add appends a new division.
func (l *DivisionList) Add(name string) (*Division, error) {
	if name == "" {
		return nil, errors.NotValidf("empty division name")
	}
	if l.Find(name) != nil {
		return nil, errors.AlreadyExistsf("division %q", name)
	}
	d := &Division{Name: name}
	*l = append(*l, d)
	return d, nil
}

// Delete removes the named division.
func (l *DivisionList) Delete(name string) bool {
	for i, d := range *l {
		if d.Name == name {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Rename changes the name of a division, failing if the new name is
// taken.
func (l DivisionList) Rename(oldName, newName string) error {
	d := l.Find(oldName)
	if d == nil {
		return errors.NotFoundf("division %q", oldName)
	}
	if oldName != newName && l.Find(newName) != nil {
		return errors.AlreadyExistsf("division %q", newName)
	}
	d.Name = newName
	return nil
}

// ReorderBy arranges the divisions in the order of other.
func (l *DivisionList) ReorderBy(other DivisionList) {
	*l = reorderBy(*l, other, func(d *Division) string { return d.Name })
}
