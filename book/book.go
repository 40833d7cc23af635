// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package book ties a record book together: the calendar, the training
// log, the configuration, the notes about clubs, judges and locations,
// and the dogs. It loads and saves whole documents and merges newer
// configurations into them.
package book

import (
	"github.com/juju/clock"
	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/dog"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
	"github.com/dconnet/AgilityBook-sub002/localization"
	"github.com/dconnet/AgilityBook-sub002/notify"
	"github.com/dconnet/AgilityBook-sub002/rewriter"
	"github.com/dconnet/AgilityBook-sub002/version"
)

var logger = loggo.GetLogger("arb.book")

const (
	// ElementName is the name of the document root.
	ElementName = "AgilityBook"

	attrBook      = "Book"
	attrProgram   = "ver"
	attrTimestamp = "timestamp"

	timestampLayout = "2006-01-02 15:04:05"
)

// oldestVersion is the first document version that can be read.
var oldestVersion = version.Number{Major: 1, Minor: 0}

// Book is a whole record book.
type Book struct {
	Calendar CalendarList
	Training TrainingList
	Config   config.Config
	Info     Info
	Dogs     dog.List
}

// Clear empties the book.
func (b *Book) Clear() {
	*b = Book{}
}

// Default replaces the book with an empty one using the configuration
// supplied by handler.
func (b *Book) Default(handler config.ConfigHandler, loc localization.Localizer) error {
	b.Clear()
	return errors.Trace(b.Config.Default(handler, loc))
}

// Load replaces the book with the document rooted at root. Problems are
// reported to cb; an error is returned when the document cannot be
// used at all. Calendar entries, training entries, info items and dogs
// that cannot be read are skipped.
func (b *Book) Load(root *element.Node, cb notify.ErrorCallback, loc localization.Localizer) error {
	b.Clear()
	if root.Name() != ElementName {
		cb.LogMessage(loc.InvalidRoot(ElementName))
		return errors.NotValidf("root element %q", root.Name())
	}
	ver, err := documentVersion(root, cb, loc)
	if err != nil {
		return errors.Trace(err)
	}
	lc := config.LoadContext{Version: ver, Callback: cb, Localizer: loc}

	// Dogs are checked against the configuration, so it goes first.
	configs := root.ChildrenNamed(config.ElementName)
	switch len(configs) {
	case 0:
		cb.LogMessage(loc.MissingConfig())
		return errors.NotFoundf("configuration")
	case 1:
	default:
		cb.LogMessage(loc.InvalidConfig())
		return errors.NotValidf("%d configurations", len(configs))
	}
	if err := b.Config.Load(configs[0], lc); err != nil {
		return errors.Annotate(err, "loading configuration")
	}

	for _, child := range root.Children() {
		switch child.Name() {
		case elemCalendar:
			c, err := loadCalendar(child, lc)
			if err != nil {
				logger.Warningf("skipping calendar entry: %v", err)
				continue
			}
			b.Calendar = append(b.Calendar, c)
		case elemTraining:
			t, err := loadTraining(child, lc)
			if err != nil {
				logger.Warningf("skipping training entry: %v", err)
				continue
			}
			b.Training = append(b.Training, t)
		case elemInfo:
			b.Info.load(child, lc)
		case dog.ElementName:
			d, err := dog.Load(&b.Config, child, lc)
			if err != nil {
				logger.Warningf("skipping dog: %v", err)
				continue
			}
			b.Dogs = append(b.Dogs, d)
		}
	}
	b.Calendar.Sort()
	b.Training.Sort()

	rw := rewriter.New(&b.Dogs)
	for _, v := range b.Config.Venues {
		rw.DeleteMultiQs(&b.Config, v.Name)
	}
	b.Dogs.SetMultiQs(&b.Config)
	logger.Debugf("loaded version %s document: %d dog(s), %d calendar and %d training entries",
		ver, len(b.Dogs), len(b.Calendar), len(b.Training))
	return nil
}

// documentVersion reads the version of the document. A version the
// program does not know is only accepted when it shares the current
// major version and the callback agrees to go on.
func documentVersion(root *element.Node, cb notify.ErrorCallback, loc localization.Localizer) (version.Number, error) {
	raw, lookup := root.Attrib(attrBook)
	if lookup != element.Found {
		cb.LogMessage(loc.MissingAttribute(ElementName, attrBook))
		return version.Zero, errors.NotFoundf("attribute %q on %q", attrBook, ElementName)
	}
	ver, err := version.Parse(raw)
	if err != nil {
		cb.LogMessage(loc.UnknownVersion(raw))
		return version.Zero, errors.Trace(err)
	}
	if !ver.Less(oldestVersion) && !version.Current.Less(ver) {
		return ver, nil
	}
	if ver.Major != version.Current.Major {
		cb.LogMessage(loc.UnknownVersion(ver.String()))
		return version.Zero, errors.NotSupportedf("document version %s", ver)
	}
	if !cb.OnError(loc.WarningNewerDoc()) {
		return version.Zero, errors.Errorf("document version %s is newer than %s", ver, version.Current)
	}
	return ver, nil
}

// Save returns the document holding the book, stamped with the time
// read from clk.
func (b *Book) Save(clk clock.Clock) *element.Node {
	root := element.New(ElementName)
	root.SetAttrib(attrBook, version.Current.String())
	root.SetAttrib(attrProgram, version.Program.String())
	root.SetAttrib(attrTimestamp, clk.Now().Format(timestampLayout))
	for _, c := range b.Calendar {
		c.save(root)
	}
	for _, t := range b.Training {
		t.save(root)
	}
	b.Config.Save(root)
	b.Info.save(root)
	b.Dogs.Save(root)
	return root
}

// ClubNames returns the clubs named by trials and calendar entries.
func (b *Book) ClubNames() set.Strings {
	names := set.NewStrings()
	for _, d := range b.Dogs {
		for _, t := range d.Trials {
			for _, c := range t.Clubs {
				names.Add(c.Name)
			}
		}
	}
	for _, c := range b.Calendar {
		if c.Club != "" {
			names.Add(c.Club)
		}
	}
	return names
}

// LocationNames returns the locations of trials and calendar entries.
func (b *Book) LocationNames() set.Strings {
	names := set.NewStrings()
	for _, d := range b.Dogs {
		for _, t := range d.Trials {
			if t.Location != "" {
				names.Add(t.Location)
			}
		}
	}
	for _, c := range b.Calendar {
		if c.Location != "" {
			names.Add(c.Location)
		}
	}
	return names
}

// JudgeNames returns the judges of every run.
func (b *Book) JudgeNames() set.Strings {
	names := set.NewStrings()
	for _, d := range b.Dogs {
		for _, t := range d.Trials {
			for _, r := range t.Runs {
				if r.Judge != "" {
					names.Add(r.Judge)
				}
			}
		}
	}
	return names
}

// CondenseInfo drops the info items that hold nothing beyond a name the
// records already use. It returns how many were dropped.
func (b *Book) CondenseInfo() int {
	return b.Info.Clubs.Condense(b.ClubNames()) +
		b.Info.Judges.Condense(b.JudgeNames()) +
		b.Info.Locations.Condense(b.LocationNames())
}
