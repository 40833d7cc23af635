// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package book_test

import (
	"bytes"

	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	"go.uber.org/mock/gomock"
	gc "gopkg.in/check.v1"

	"github.com/dconnet/AgilityBook-sub002/book"
	"github.com/dconnet/AgilityBook-sub002/config/defaults"
	"github.com/dconnet/AgilityBook-sub002/config/mocks"
	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
	"github.com/dconnet/AgilityBook-sub002/notify"
	arbtesting "github.com/dconnet/AgilityBook-sub002/testing"
)

type bookSuite struct {
	arbtesting.BaseSuite
}

var _ = gc.Suite(&bookSuite{})

func (s *bookSuite) TestLoadSample(c *gc.C) {
	b, log := loadBook(c, arbtesting.SampleBook)
	c.Check(log.Messages(), gc.HasLen, 0)

	c.Assert(b.Calendar, gc.HasLen, 2)
	early, late := b.Calendar[0], b.Calendar[1]
	c.Check(early.Start, gc.Equals, date.MustParse("2023-09-09"))
	c.Check(early.Tentative, jc.IsTrue)
	c.Check(early.Entered, gc.Equals, book.EntryPlanning)
	c.Check(early.Accommodation, gc.Equals, book.AccomNone)
	c.Check(late.Location, gc.Equals, "Fairgrounds")
	c.Check(late.Club, gc.Equals, "Dog Sports Club")
	c.Check(late.Entered, gc.Equals, book.EntryEntered)
	c.Check(late.Accommodation, gc.Equals, book.AccomConfirmed)
	c.Check(late.Note, gc.Equals, "Bring the crate")

	c.Assert(b.Training, gc.HasLen, 1)
	c.Check(*b.Training[0], gc.Equals, book.Training{
		Date:    date.MustParse("2024-01-10"),
		Name:    "Weaves",
		SubName: "Entries",
		Note:    "12 poles",
	})

	c.Assert(b.Info.Clubs, gc.HasLen, 2)
	c.Check(b.Info.Clubs[0].Name, gc.Equals, "Agility Nuts")
	c.Check(b.Info.Clubs[0].Visible, jc.IsFalse)
	c.Check(b.Info.Clubs[1].Visible, jc.IsTrue)
	c.Check(b.Info.Judges.Find("Smith").Comment, gc.Equals, "Walks the course twice")

	c.Check(b.Config.Version, gc.Equals, 5)
	c.Assert(b.Dogs, gc.HasLen, 2)
	// Multiple Qs are derived once everything is loaded.
	runs := b.Dogs[0].Trials[0].Runs
	c.Check(runs[0].MultiQs, jc.DeepEquals, []string{"Double Q"})
	c.Check(runs[1].MultiQs, jc.DeepEquals, []string{"Double Q"})
	c.Check(runs[2].MultiQs, gc.HasLen, 0)
}

func (s *bookSuite) TestSave(c *gc.C) {
	b, _ := loadBook(c, arbtesting.SampleBook)
	root := b.Save(s.Clock)

	c.Check(root.Name(), gc.Equals, book.ElementName)
	ver, _ := root.Attrib("Book")
	c.Check(ver, gc.Equals, "15.3")
	prog, _ := root.Attrib("ver")
	c.Check(prog, gc.Equals, "3.2.0")
	stamp, _ := root.Attrib("timestamp")
	c.Check(stamp, gc.Equals, "2024-03-09 10:30:00")

	var names []string
	for _, child := range root.Children() {
		names = append(names, child.Name())
	}
	c.Check(names, jc.DeepEquals, []string{
		"Calendar", "Calendar", "Training", "Configuration", "Info", "Dog", "Dog",
	})
	hidden := root.Child("Info").ChildrenNamed("ClubInfo")[0]
	visible, lookup := hidden.AttribBool("Visible")
	c.Check(lookup, gc.Equals, element.Found)
	c.Check(visible, jc.IsFalse)
}

func (s *bookSuite) TestSaveLoadRoundTrip(c *gc.C) {
	b, _ := loadBook(c, arbtesting.SampleBook)
	var buf bytes.Buffer
	c.Assert(b.Save(s.Clock).Write(&buf), jc.ErrorIsNil)

	reloaded, log := loadBook(c, buf.String())
	c.Check(log.Messages(), gc.HasLen, 0)
	c.Check(reloaded.Calendar.Equal(b.Calendar), jc.IsTrue)
	c.Check(reloaded.Training.Equal(b.Training), jc.IsTrue)
	c.Check(reloaded.Info.Equal(&b.Info), jc.IsTrue)
	c.Check(reloaded.Config.Equal(&b.Config), jc.IsTrue)
	c.Check(reloaded.Dogs.Equal(b.Dogs), jc.IsTrue)
}

func (s *bookSuite) TestLoadInvalidRoot(c *gc.C) {
	log := &notify.ErrorLog{}
	err := (&book.Book{}).Load(arbtesting.Parse(c, `<Book Book="15.3"/>`), log, loc)
	c.Check(err, jc.Satisfies, errors.IsNotValid)
	c.Check(log.Messages(), jc.DeepEquals, []string{loc.InvalidRoot("AgilityBook")})
}

func (s *bookSuite) TestLoadMissingVersion(c *gc.C) {
	log := &notify.ErrorLog{}
	err := (&book.Book{}).Load(arbtesting.Parse(c, `<AgilityBook><Configuration/></AgilityBook>`), log, loc)
	c.Check(err, jc.Satisfies, errors.IsNotFound)
	c.Check(log.Messages(), jc.DeepEquals, []string{loc.MissingAttribute("AgilityBook", "Book")})
}

func (s *bookSuite) TestLoadUnknownMajorVersion(c *gc.C) {
	for _, ver := range []string{"16.0", "0.5"} {
		log := &notify.ErrorLog{Continue: true}
		doc := `<AgilityBook Book="` + ver + `"><Configuration/></AgilityBook>`
		err := (&book.Book{}).Load(arbtesting.Parse(c, doc), log, loc)
		c.Check(err, jc.Satisfies, errors.IsNotSupported, gc.Commentf("version %s", ver))
		c.Check(log.Messages(), jc.DeepEquals, []string{loc.UnknownVersion(ver)})
	}
}

func (s *bookSuite) TestLoadNewerMinorVersionAsks(c *gc.C) {
	const doc = `<AgilityBook Book="15.9"><Configuration version="1"/></AgilityBook>`

	log := &notify.ErrorLog{}
	err := (&book.Book{}).Load(arbtesting.Parse(c, doc), log, loc)
	c.Check(err, gc.ErrorMatches, `document version 15.9 is newer than 15.3`)
	c.Check(log.Messages(), jc.DeepEquals, []string{loc.WarningNewerDoc()})

	log = &notify.ErrorLog{Continue: true}
	b := &book.Book{}
	err = b.Load(arbtesting.Parse(c, doc), log, loc)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(b.Config.Version, gc.Equals, 1)
}

func (s *bookSuite) TestLoadNeedsOneConfiguration(c *gc.C) {
	log := &notify.ErrorLog{}
	err := (&book.Book{}).Load(arbtesting.Parse(c, `<AgilityBook Book="15.3"/>`), log, loc)
	c.Check(err, jc.Satisfies, errors.IsNotFound)
	c.Check(log.Messages(), jc.DeepEquals, []string{loc.MissingConfig()})

	log = &notify.ErrorLog{}
	doc := `<AgilityBook Book="15.3"><Configuration/><Configuration/></AgilityBook>`
	err = (&book.Book{}).Load(arbtesting.Parse(c, doc), log, loc)
	c.Check(err, jc.Satisfies, errors.IsNotValid)
	c.Check(log.Messages(), jc.DeepEquals, []string{loc.InvalidConfig()})
}

func (s *bookSuite) TestLoadSkipsBadEntries(c *gc.C) {
	b, log := loadBook(c, `<AgilityBook Book="15.3">
	<Configuration/>
	<Calendar DateStart="2024-05-04"/>
	<Calendar DateStart="2024-05-04" DateEnd="2024-05-05" Entered="X"/>
	<Calendar DateStart="2024-06-01" DateEnd="2024-06-01"/>
	<Training Name="Contacts"/>
	<Info><ClubInfo/><Judge Name="Jones"/></Info>
</AgilityBook>`)
	c.Assert(b.Calendar, gc.HasLen, 1)
	c.Check(b.Calendar[0].Entered, gc.Equals, book.EntryNot)
	c.Check(b.Training, gc.HasLen, 0)
	c.Check(b.Info.Clubs, gc.HasLen, 0)
	c.Check(log.Messages(), jc.DeepEquals, []string{
		loc.MissingAttribute("Calendar", "DateEnd"),
		loc.InvalidAttribValue("Calendar", "Entered", loc.ValidValues("E", "O", "P", "N")),
		loc.MissingAttribute("Training", "Date"),
		loc.MissingAttribute("ClubInfo", "Name"),
		loc.InvalidDocStructure("Judge"),
	})
}

func (s *bookSuite) TestLoadVersion1PlanOn(c *gc.C) {
	b, _ := loadBook(c, `<AgilityBook Book="1.0">
	<Configuration/>
	<Calendar DateStart="2003-01-04" DateEnd="2003-01-05" PlanOn="y" Entered="E"/>
	<Calendar DateStart="2003-02-01" DateEnd="2003-02-02" PlanOn="n"/>
</AgilityBook>`)
	c.Assert(b.Calendar, gc.HasLen, 2)
	c.Check(b.Calendar[0].Entered, gc.Equals, book.EntryPlanning)
	c.Check(b.Calendar[1].Entered, gc.Equals, book.EntryNot)
}

func (s *bookSuite) TestDefault(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()
	handler := mocks.NewMockConfigHandler(ctrl)
	handler.EXPECT().LoadDefaultConfig().Return(arbtesting.Parse(c, arbtesting.SampleBook), nil)

	b, _ := loadBook(c, arbtesting.SampleBook)
	c.Assert(b.Default(handler, loc), jc.ErrorIsNil)
	c.Check(b.Calendar, gc.HasLen, 0)
	c.Check(b.Dogs, gc.HasLen, 0)
	c.Check(b.Config.Version, gc.Equals, 5)
	c.Check(b.Config.Venues, gc.HasLen, 2)
}

func (s *bookSuite) TestDefaultHandlerError(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()
	handler := mocks.NewMockConfigHandler(ctrl)
	handler.EXPECT().LoadDefaultConfig().Return(nil, errors.New("no file"))

	err := (&book.Book{}).Default(handler, loc)
	c.Check(err, gc.ErrorMatches, "loading default configuration: no file")
}

func (s *bookSuite) TestDefaultShipped(c *gc.C) {
	b := &book.Book{}
	c.Assert(b.Default(defaults.Handler{}, loc), jc.ErrorIsNil)
	c.Check(b.Config.Version, gc.Equals, 3)
	c.Check(b.Config.Venues.Find("AKC"), gc.NotNil)
}

func (s *bookSuite) TestNamesInUse(c *gc.C) {
	b, _ := loadBook(c, arbtesting.SampleBook)
	c.Check(b.ClubNames().SortedValues(), jc.DeepEquals, []string{"Dog Sports Club", "Herders"})
	c.Check(b.LocationNames().SortedValues(), jc.DeepEquals, []string{"Fairgrounds"})
	c.Check(b.JudgeNames().SortedValues(), jc.DeepEquals, []string{"Smith"})
}

func (s *bookSuite) TestCondenseInfo(c *gc.C) {
	b, _ := loadBook(c, arbtesting.SampleBook)
	// The bare club and location entries are dropped; the hidden club
	// and the judge with a comment stay.
	c.Check(b.CondenseInfo(), gc.Equals, 2)
	c.Assert(b.Info.Clubs, gc.HasLen, 1)
	c.Check(b.Info.Clubs[0].Name, gc.Equals, "Agility Nuts")
	c.Check(b.Info.Judges, gc.HasLen, 1)
	c.Check(b.Info.Locations, gc.HasLen, 0)
	c.Check(b.CondenseInfo(), gc.Equals, 0)
}

func (s *bookSuite) TestInfoItems(c *gc.C) {
	var info book.Info
	items := info.Items(book.JudgeInfo)
	item, err := items.Add("Jones")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(item.Visible, jc.IsTrue)
	c.Check(item.HasData(), jc.IsFalse)
	_, err = items.Add("Jones")
	c.Check(err, jc.Satisfies, errors.IsAlreadyExists)
	_, err = items.Add("")
	c.Check(err, jc.Satisfies, errors.IsNotValid)

	item.Visible = false
	c.Check(info.Judges.Names(false).Values(), jc.DeepEquals, []string{"Jones"})
	c.Check(info.Judges.Names(true).IsEmpty(), jc.IsTrue)
	c.Check(items.Delete("Jones"), jc.IsTrue)
	c.Check(items.Delete("Jones"), jc.IsFalse)
	c.Check(info.Items("Nope"), gc.IsNil)
}

func (s *bookSuite) TestCalendarList(c *gc.C) {
	b, _ := loadBook(c, arbtesting.SampleBook)
	cal := b.Calendar

	c.Check(cal.Entered(), gc.HasLen, 1)
	c.Check(cal.Find(&book.Calendar{
		Start: date.MustParse("2024-05-04"),
		End:   date.MustParse("2024-05-05"),
		Venue: "USDAA",
		Club:  "Dog Sports Club",
	}, false), gc.Equals, cal[1])
	c.Check(cal.Find(&book.Calendar{Start: date.MustParse("2024-05-04")}, true), gc.IsNil)

	err := cal.Add(&book.Calendar{Start: date.MustParse("2025-01-01")})
	c.Check(err, jc.Satisfies, errors.IsNotValid)

	c.Check(cal.Trim(date.Date{}), gc.Equals, 0)
	c.Check(cal.Trim(date.MustParse("2024-01-01")), gc.Equals, 1)
	c.Assert(cal, gc.HasLen, 1)
	c.Check(cal[0].Venue, gc.Equals, "USDAA")
	c.Check(cal.Delete(cal[0]), jc.IsTrue)
	c.Check(cal, gc.HasLen, 0)
}

func (s *bookSuite) TestCalendarUpdate(c *gc.C) {
	cal := &book.Calendar{
		Start:    date.MustParse("2024-05-04"),
		End:      date.MustParse("2024-05-05"),
		Club:     "Dog Sports Club",
		Entered:  book.EntryEntered,
		Location: "Fairgrounds",
	}
	c.Check(cal.Update(&book.Calendar{Club: "Dog Sports Club"}), jc.IsFalse)
	c.Check(cal.Update(&book.Calendar{
		Closing: date.MustParse("2024-04-20"),
		Note:    "Moved indoors",
		Entered: book.EntryNot,
	}), jc.IsTrue)
	c.Check(cal.Closing, gc.Equals, date.MustParse("2024-04-20"))
	c.Check(cal.Location, gc.Equals, "Fairgrounds")
	c.Check(cal.Note, gc.Equals, "Moved indoors")
	c.Check(cal.Entered, gc.Equals, book.EntryEntered)
}

func (s *bookSuite) TestTrainingList(c *gc.C) {
	b, _ := loadBook(c, arbtesting.SampleBook)
	log := b.Training

	t := &book.Training{Date: date.MustParse("2023-12-01"), Name: "Contacts"}
	c.Check(log.Add(t), jc.IsTrue)
	c.Check(log.Add(&book.Training{Date: date.MustParse("2023-12-01"), Name: "Contacts"}), jc.IsFalse)
	log.Sort()
	c.Check(log[0], gc.Equals, t)
	c.Check(log.Names().SortedValues(), jc.DeepEquals, []string{"Contacts", "Weaves"})
	c.Check(log.SubNames().SortedValues(), jc.DeepEquals, []string{"Entries"})
	c.Check(log.Delete(t), jc.IsTrue)
	c.Check(log.Find(t), jc.IsFalse)
}
