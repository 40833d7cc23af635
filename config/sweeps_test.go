// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config_test

import (
	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/internal/date"
)

type sweepsSuite struct {
	cfg   *config.Config
	usdaa *config.Venue
}

var _ = gc.Suite(&sweepsSuite{})

func (s *sweepsSuite) SetUpTest(c *gc.C) {
	s.cfg = sample(c)
	s.usdaa = s.cfg.Venues.Find("USDAA")
	c.Assert(s.usdaa, gc.NotNil)
}

func (s *sweepsSuite) TestFindEventThroughSubLevel(c *gc.C) {
	d := date.New(2011, 3, 1)
	event, scoring := s.usdaa.FindEvent("Jumpers", "Championship", "Masters A", d)
	c.Assert(event, gc.NotNil)
	c.Check(event.Name, gc.Equals, "Jumpers")
	c.Check(scoring.Level, gc.Equals, config.Wildcard)

	// A level with sublevels cannot be entered itself.
	event, _ = s.usdaa.FindEvent("Jumpers", "Championship", "Masters", d)
	c.Check(event, gc.IsNil)

	event, _ = s.cfg.Venues.FindEvent("USDAA", "Jumpers", "Veterans", "Starters", d)
	c.Check(event, gc.IsNil)
	event, _ = s.cfg.Venues.FindEvent("AKC", "Jumpers", "Championship", "Starters", d)
	c.Check(event, gc.IsNil)
}

func (s *sweepsSuite) TestScoringLookup(c *gc.C) {
	standard := s.usdaa.Events.Find("Standard")

	// Before the dated rule only the catch-all applies.
	rules := standard.Scorings.FindAll("Championship", "Masters", date.New(2009, 6, 1), false)
	c.Assert(rules, gc.HasLen, 1)
	c.Check(rules[0].Division, gc.Equals, config.Wildcard)

	rules = standard.Scorings.FindAll("Championship", "Masters", date.New(2011, 6, 1), false)
	c.Check(rules, gc.HasLen, 2)

	rules = standard.Scorings.FindAll("Championship", "Masters", date.New(2011, 6, 1), true)
	c.Assert(rules, gc.HasLen, 1)
	c.Check(rules[0].TitlePoints.Points(0), gc.Equals, 10.0)
	c.Check(rules[0].LifetimePoints.Points("Lifetime", 0, 0), gc.Equals, 1.0)

	c.Check(s.usdaa.Events.Verify("Gamblers", "Veterans", "Starters", date.Date{}), jc.IsTrue)
	c.Check(s.usdaa.Events.Verify("Gamblers", "Championship", "Masters", date.Date{}), jc.IsFalse)
	c.Check(s.usdaa.Events.Verify("Agility", "Championship", "Masters", date.Date{}), jc.IsFalse)
}

func (s *sweepsSuite) TestWildcardDivisionLevelDelete(c *gc.C) {
	// The Gamblers rule applies to Starters in every division.
	c.Check(s.usdaa.Events.DeleteLevel("Championship", "Starters"), gc.Equals, 1)
	c.Check(s.usdaa.Events.Find("Gamblers").Scorings, gc.HasLen, 0)
	c.Check(s.usdaa.Events.DeleteLevel("Veterans", "Masters"), gc.Equals, 0)
	c.Check(s.usdaa.Events.Find("Standard").Scorings, gc.HasLen, 2)
}

func (s *sweepsSuite) TestEventDivisionSweeps(c *gc.C) {
	c.Check(s.usdaa.Events.RenameDivision("Championship", "Champ"), gc.Equals, 2)
	c.Check(s.usdaa.Events.Find("Jumpers").Scorings[0].Division, gc.Equals, "Champ")
	c.Check(s.usdaa.Events.DeleteDivision("Champ"), gc.Equals, 2)
	c.Check(s.usdaa.Events.Find("Jumpers").Scorings, gc.HasLen, 0)
	c.Check(s.usdaa.Events.Find("Standard").Scorings, gc.HasLen, 1)
}

func (s *sweepsSuite) TestLifetimeNameSweeps(c *gc.C) {
	c.Check(s.usdaa.Events.RenameLifetimeName("Lifetime", "Career"), gc.Equals, 1)
	rule := s.usdaa.Events.Find("Standard").Scorings[1]
	c.Check(rule.LifetimePoints[0].Name, gc.Equals, "Career")
	c.Check(s.usdaa.Events.DeleteLifetimeName("Career"), gc.Equals, 1)
	c.Check(rule.LifetimePoints, gc.HasLen, 0)
}

func (s *sweepsSuite) TestMultiQSweeps(c *gc.C) {
	mq := s.usdaa.MultiQs.Find("Double")
	c.Assert(s.usdaa.MultiQs.FindShortName("DQ"), gc.Equals, mq)

	c.Check(s.usdaa.MultiQs.RenameEvent("Jumpers", "Jumpers Plus"), gc.Equals, 1)
	c.Check(s.usdaa.MultiQs.RenameLevel("Veterans", "Masters A", "M"), gc.Equals, 0)
	c.Check(s.usdaa.MultiQs.RenameDivision("Championship", "Champ"), gc.Equals, 2)
	c.Check(s.usdaa.MultiQs.DeleteLevel(config.Wildcard, "Masters"), gc.Equals, 0)
	c.Check(s.usdaa.MultiQs.DeleteLevel(config.Wildcard, "Masters A"), gc.Equals, 2)
	c.Check(mq.Items, gc.HasLen, 0)
}

func (s *sweepsSuite) TestMultiQItems(c *gc.C) {
	mq := s.usdaa.MultiQs.Find("Double")
	err := mq.AddItem("Championship", "Masters A", "Standard")
	c.Assert(err, jc.Satisfies, errors.IsAlreadyExists)
	c.Check(s.usdaa.MultiQs.DeleteEvent("Standard"), gc.Equals, 1)
	c.Check(s.usdaa.MultiQs.DeleteDivision("Championship"), gc.Equals, 1)
}

func (s *sweepsSuite) TestMultiQMatch(c *gc.C) {
	mq := s.usdaa.MultiQs.Find("Double")
	d := date.New(2011, 5, 7)
	runs := []config.MultiQRun{
		{Date: d, Division: "Championship", Level: "Masters A", Event: "Jumpers"},
		{Date: d, Division: "Championship", Level: "Masters B", Event: "Standard"},
		{Date: d, Division: "Championship", Level: "Masters A", Event: "Standard"},
	}
	c.Check(mq.Match(runs), jc.DeepEquals, []int{0, 2})
	c.Check(mq.Match(runs[:2]), gc.IsNil)

	mq.ValidTo = date.New(2010, 12, 31)
	c.Check(mq.Match(runs), gc.IsNil)
}

func (s *sweepsSuite) TestRenames(c *gc.C) {
	c.Check(s.cfg.Venues.Rename("USDAA", "Sweepstakes"), jc.Satisfies, errors.IsAlreadyExists)
	c.Check(s.cfg.Venues.Rename("AKC", "UKC"), jc.Satisfies, errors.IsNotFound)
	c.Assert(s.usdaa.Divisions.Rename("Veterans", "Seniors"), jc.ErrorIsNil)
	c.Check(s.usdaa.Divisions.Verify("Seniors", false), jc.IsTrue)
	c.Check(s.usdaa.Divisions.Verify(config.Wildcard, false), jc.IsFalse)
	c.Check(s.usdaa.Divisions.VerifyLevel("Championship", "Masters B", false), jc.IsTrue)
	c.Check(s.usdaa.Titles.Rename("AD", "ADCH"), jc.Satisfies, errors.IsAlreadyExists)
	c.Check(s.cfg.OtherPoints.Rename("Breed", "Breed Points"), jc.ErrorIsNil)
	c.Check(s.cfg.OtherPoints.Find("Breed Points"), gc.NotNil)
}
