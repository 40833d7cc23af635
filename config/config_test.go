// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config_test

import (
	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	"github.com/kr/pretty"
	"go.uber.org/mock/gomock"
	gc "gopkg.in/check.v1"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/config/mocks"
	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
	"github.com/dconnet/AgilityBook-sub002/localization"
	"github.com/dconnet/AgilityBook-sub002/notify"
)

type configSuite struct{}

var _ = gc.Suite(&configSuite{})

func (*configSuite) TestLoad(c *gc.C) {
	cfg := sample(c)
	c.Check(cfg.Version, gc.Equals, 5)
	c.Check(cfg.Updated, jc.IsFalse)
	c.Check(cfg.Actions, jc.DeepEquals, []config.ActionRecord{{
		Verb:          "RenameVenue",
		ConfigVersion: 4,
		OldName:       "Sweepstakes",
		NewName:       "SSA",
	}})
	c.Check(cfg.Faults, jc.DeepEquals, config.FaultList{"Knocked bar"})

	// Venues are sorted by name.
	c.Assert(cfg.Venues, gc.HasLen, 2)
	c.Check(cfg.Venues[0].Name, gc.Equals, "Sweepstakes")
	c.Check(cfg.Venues[1].Name, gc.Equals, "USDAA")

	usdaa := cfg.Venues.Find("USDAA")
	c.Check(usdaa.Icon, gc.Equals, -1)
	c.Check(usdaa.Titles.Find("ADCH").MultipleStyle, gc.Equals, config.TitleStyleRoman)
	c.Check(usdaa.Divisions.Find("Championship").Levels.Find("Masters").SubLevels, gc.HasLen, 2)
	gamblers := usdaa.Events.Find("Gamblers")
	c.Check(gamblers.Scorings[0].OpeningPts, gc.Equals, 20)
	c.Check(usdaa.MultiQs.Find("Double").Items, gc.HasLen, 2)
}

func (*configSuite) TestSaveLoadRoundTrip(c *gc.C) {
	cfg := sample(c)
	root := element.New("AgilityBook")
	cfg.Save(root)

	var log notify.ErrorLog
	reloaded := &config.Config{}
	err := reloaded.Load(root.Child(config.ElementName), loadContext("15.3", &log))
	c.Assert(err, jc.ErrorIsNil, gc.Commentf("%s", log.String()))
	if !reloaded.Equal(cfg) {
		c.Fatalf("round trip differs:\n%s", pretty.Diff(cfg, reloaded))
	}
}

func (*configSuite) TestCloneIsIndependent(c *gc.C) {
	cfg := sample(c)
	clone := cfg.Clone()
	c.Assert(clone.Equal(cfg), jc.IsTrue)

	clone.Venues.Find("USDAA").Titles.Find("AD").LongName = "changed"
	clone.Venues.Find("USDAA").Events.Find("Standard").Scorings[1].TitlePoints.Items[0].Points = 99
	clone.Faults[0] = "changed"
	c.Check(clone.Equal(cfg), jc.IsFalse)
	c.Check(cfg.Venues.Find("USDAA").Titles.Find("AD").LongName, gc.Equals, "")
	c.Check(cfg.Venues.Find("USDAA").Events.Find("Standard").Scorings[1].TitlePoints.Items[0].Points, gc.Equals, 10.0)
	c.Check(cfg.Faults[0], gc.Equals, "Knocked bar")
}

func (*configSuite) TestDefaultThenClear(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()
	handler := mocks.NewMockConfigHandler(ctrl)
	handler.EXPECT().LoadDefaultConfig().Return(parse(c, sampleConfig), nil)

	var cfg config.Config
	err := cfg.Default(handler, localization.English{})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(cfg.Venues, gc.HasLen, 2)

	cfg.Clear()
	c.Assert(cfg.Equal(&config.Config{}), jc.IsTrue)
	c.Assert(cfg, jc.DeepEquals, config.Config{})
}

func (*configSuite) TestDefaultHandlerError(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()
	handler := mocks.NewMockConfigHandler(ctrl)
	handler.EXPECT().LoadDefaultConfig().Return(nil, errors.New("boom"))

	var cfg config.Config
	err := cfg.Default(handler, localization.English{})
	c.Assert(err, gc.ErrorMatches, "loading default configuration: boom")
}

func (*configSuite) TestDefaultMissingConfiguration(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()
	handler := mocks.NewMockConfigHandler(ctrl)
	handler.EXPECT().LoadDefaultConfig().Return(element.New("AgilityBook"), nil)

	var cfg config.Config
	err := cfg.Default(handler, localization.English{})
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
}

func (*configSuite) TestLegacySharedDataUnderVenue(c *gc.C) {
	root := parse(c, `<Configuration>
	<Venue Name="Old">
		<FaultType>Refusal</FaultType>
		<OtherPts Name="Herding" Count="Level"/>
	</Venue>
	<FaultType>Refusal</FaultType>
</Configuration>`)
	var log notify.ErrorLog
	cfg := &config.Config{}
	err := cfg.Load(root, loadContext("2.0", &log))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cfg.Faults, jc.DeepEquals, config.FaultList{"Refusal"})
	c.Check(cfg.OtherPoints.Find("Herding"), gc.NotNil)
}

func (*configSuite) TestCalSitesAreDropped(c *gc.C) {
	root := parse(c, `<Configuration>
	<CalSite name="Dog Show Calendar" search="https://example.com/search?q=!L!"/>
	<FaultType>Refusal</FaultType>
</Configuration>`)
	var log notify.ErrorLog
	cfg := &config.Config{}
	c.Assert(cfg.Load(root, loadContext("15.3", &log)), jc.ErrorIsNil)
	c.Check(log.Messages(), gc.HasLen, 0)
	c.Check(cfg.Faults, jc.DeepEquals, config.FaultList{"Refusal"})

	saved := element.New("AgilityBook")
	cfg.Save(saved)
	c.Check(saved.Child(config.ElementName).ChildrenNamed("CalSite"), gc.HasLen, 0)
}

func (*configSuite) TestMissingAttributeIsReported(c *gc.C) {
	root := parse(c, `<Configuration><Venue LongName="nameless"/></Configuration>`)
	var log notify.ErrorLog
	cfg := &config.Config{}
	err := cfg.Load(root, loadContext("15.3", &log))
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
	c.Assert(log.Messages(), jc.DeepEquals, []string{
		`Element "Venue" is missing required attribute "Name".`,
	})
}

func (*configSuite) TestInvalidScoringStyle(c *gc.C) {
	root := parse(c, `<Configuration><Venue Name="V">
	<Division Name="D"><Level Name="L"/></Division>
	<Event Name="E"><Scoring Division="D" Level="L" type="Bogus"/></Event>
</Venue></Configuration>`)
	var log notify.ErrorLog
	cfg := &config.Config{}
	err := cfg.Load(root, loadContext("15.3", &log))
	c.Assert(err, jc.Satisfies, errors.IsNotValid)
	c.Assert(log.Messages(), gc.HasLen, 1)
	c.Assert(log.Messages()[0], gc.Matches, `Element "Scoring" has an invalid value for attribute "type"\. Valid values: FaultsThenTime, .*`)
}

func (*configSuite) TestScoringNamesParentLevel(c *gc.C) {
	cfg := sample(c)
	usdaa := cfg.Venues.Find("USDAA")
	standard := usdaa.Events.Find("Standard")
	c.Assert(standard.Scorings, gc.HasLen, 2)
	c.Check(standard.Scorings[1].Level, gc.Equals, "Masters")

	// Runs are entered at a sublevel and find the rules of its level.
	d := date.New(2011, 6, 1)
	event, scoring := usdaa.FindEvent("Standard", "Championship", "Masters B", d)
	c.Assert(event, gc.Equals, standard)
	c.Assert(scoring, gc.NotNil)
	level := usdaa.Divisions.Find("Championship").Levels.FindSubLevel("Masters B")
	c.Assert(level, gc.NotNil)
	rules := standard.Scorings.FindAll("Championship", level.Name, d, true)
	c.Assert(rules, gc.HasLen, 1)
	c.Check(rules[0], gc.Equals, standard.Scorings[1])
}

func (*configSuite) TestScoringRejectsSubLevel(c *gc.C) {
	root := parse(c, `<Configuration><Venue Name="V">
	<Division Name="D"><Level Name="L"><SubLevel Name="L1"/></Level></Division>
	<Event Name="E"><Scoring Division="D" Level="L1" type="FaultsThenTime"/></Event>
</Venue></Configuration>`)
	var log notify.ErrorLog
	cfg := &config.Config{}
	err := cfg.Load(root, loadContext("15.3", &log))
	c.Assert(err, jc.Satisfies, errors.IsNotValid)
	c.Assert(log.Messages(), gc.HasLen, 1)
	c.Check(log.Messages()[0], gc.Equals, `Element "Scoring" has an invalid value for attribute "Level". L1`)
}

var actionVersionTests = []struct {
	about   string
	doc     string
	ver     string
	expect  config.ActionRecord
	errWith string
}{{
	about:  "old documents default the config version",
	doc:    `<Action Verb="DeleteTitle" Venue="USDAA" OldName="V-ATCH"/>`,
	ver:    "12.11",
	expect: config.ActionRecord{Verb: "DeleteTitle", Venue: "USDAA", OldName: "V-ATCH"},
}, {
	about:  "config version is read",
	doc:    `<Action Verb="RenameLevel" Config="7" Venue="AKC" Div="Regular" OldName="Novice" NewName="Novice A"/>`,
	ver:    "15.3",
	expect: config.ActionRecord{Verb: "RenameLevel", ConfigVersion: 7, Venue: "AKC", Division: "Regular", OldName: "Novice", NewName: "Novice A"},
}, {
	about:   "newer documents must carry the config version",
	doc:     `<Action Verb="DeleteTitle" Venue="USDAA" OldName="V-ATCH"/>`,
	ver:     "12.12",
	errWith: `attribute "Config" on "Action" not found`,
}, {
	about:   "verb is required",
	doc:     `<Action Config="1"/>`,
	ver:     "15.3",
	errWith: `attribute "Verb" on "Action" not found`,
}, {
	about:   "config version must be a number",
	doc:     `<Action Verb="DeleteTitle" Config="soon"/>`,
	ver:     "15.3",
	errWith: `action schema check failed: .*`,
}}

func (*configSuite) TestActionRecords(c *gc.C) {
	for i, test := range actionVersionTests {
		c.Logf("test %d: %s", i, test.about)
		root := parse(c, "<Configuration>"+test.doc+"</Configuration>")
		var log notify.ErrorLog
		cfg := &config.Config{}
		err := cfg.Load(root, loadContext(test.ver, &log))
		if test.errWith != "" {
			c.Check(err, gc.ErrorMatches, test.errWith)
			continue
		}
		c.Assert(err, jc.ErrorIsNil)
		c.Check(cfg.Actions, jc.DeepEquals, []config.ActionRecord{test.expect})
	}
}
