// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config_test

import (
	"strings"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/localization"
)

type updateSuite struct {
	cfg   *config.Config
	newer *config.Config
}

var _ = gc.Suite(&updateSuite{})

func (s *updateSuite) SetUpTest(c *gc.C) {
	s.cfg = sample(c)
	s.newer = s.cfg.Clone()
}

func (s *updateSuite) update() (bool, string) {
	var info strings.Builder
	changed := s.cfg.Update(0, s.newer, &info, localization.English{})
	return changed, info.String()
}

func (s *updateSuite) TestNoChangesStillRaisesVersion(c *gc.C) {
	s.newer.Version = 7
	changed, info := s.update()
	c.Check(changed, jc.IsFalse)
	c.Check(info, gc.Equals, "")
	c.Check(s.cfg.Version, gc.Equals, 7)
	c.Check(s.cfg.Updated, jc.IsFalse)
}

func (s *updateSuite) TestOlderVersionIsKept(c *gc.C) {
	s.newer.Version = 2
	s.update()
	c.Check(s.cfg.Version, gc.Equals, 5)
}

func (s *updateSuite) TestAddVenue(c *gc.C) {
	akc := &config.Venue{Name: "AKC", Icon: -1}
	_, err := akc.Divisions.Add("Regular")
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(s.newer.Venues.Add(akc), jc.ErrorIsNil)

	changed, info := s.update()
	c.Check(changed, jc.IsTrue)
	c.Check(s.cfg.Updated, jc.IsTrue)
	c.Check(info, gc.Equals, "Venues: 1 added, 0 updated, 2 identical\n+AKC\n")
	c.Assert(s.cfg.Venues, gc.HasLen, 3)
	c.Check(s.cfg.Venues[0].Name, gc.Equals, "AKC")

	// The added venue is a copy.
	akc.Divisions[0].Name = "Changed"
	c.Check(s.cfg.Venues.Find("AKC").Divisions[0].Name, gc.Equals, "Regular")
}

func (s *updateSuite) TestTitleReorder(c *gc.C) {
	titles := s.newer.Venues.Find("USDAA").Titles
	titles[0], titles[2] = titles[2], titles[0]

	changed, info := s.update()
	c.Check(changed, jc.IsTrue)
	c.Check(info, gc.Equals, "Venues: 0 added, 1 updated, 1 identical\n-USDAA\n   Titles: reordered\n")
	var names []string
	for _, t := range s.cfg.Venues.Find("USDAA").Titles {
		names = append(names, t.Name)
	}
	c.Check(names, jc.DeepEquals, []string{"ADCH", "V-ATCH", "AD"})
}

func (s *updateSuite) TestTitleChange(c *gc.C) {
	s.newer.Venues.Find("USDAA").Titles.Find("AD").LongName = "Agility Dog"
	t := &config.Title{Name: "MAD", MultipleIncrement: 1}
	c.Assert(s.newer.Venues.Find("USDAA").Titles.Add(t), jc.ErrorIsNil)

	_, info := s.update()
	c.Check(info, gc.Equals, "Venues: 0 added, 1 updated, 1 identical\n-USDAA\n   Titles: 1 added, 1 updated, 2 identical\n")
	c.Check(s.cfg.Venues.Find("USDAA").Titles.Find("AD").LongName, gc.Equals, "Agility Dog")
}

func (s *updateSuite) TestScoringRulesReplaced(c *gc.C) {
	standard := s.newer.Venues.Find("USDAA").Events.Find("Standard")
	standard.Scorings[1].TitlePoints.Items[0].Points = 15

	changed, info := s.update()
	c.Check(changed, jc.IsTrue)
	c.Check(info, gc.Equals, "Venues: 0 added, 1 updated, 1 identical\n"+
		"-USDAA\n"+
		"   Events: 0 added, 1 updated, 2 identical\n"+
		"      Standard Rules: 0 added, 0 deleted, 1 updated, 1 identical\n")
	rule := s.cfg.Venues.Find("USDAA").Events.Find("Standard").Scorings[1]
	c.Check(rule.TitlePoints.Points(0), gc.Equals, 15.0)

	// The merged rules do not share storage with the source.
	standard.Scorings[1].TitlePoints.Items[0].Points = 20
	c.Check(rule.TitlePoints.Points(0), gc.Equals, 15.0)
}

func (s *updateSuite) TestMultiQsReplaced(c *gc.C) {
	usdaa := s.newer.Venues.Find("USDAA")
	c.Assert(usdaa.MultiQs.Delete("Double"), jc.IsTrue)
	triple := &config.MultiQ{Name: "Triple", ShortName: "TQ"}
	c.Assert(triple.AddItem("Championship", "Masters B", "Gamblers"), jc.ErrorIsNil)
	c.Assert(usdaa.MultiQs.Add(triple), jc.ErrorIsNil)

	_, info := s.update()
	c.Check(info, gc.Equals, "Venues: 0 added, 1 updated, 1 identical\n"+
		"-USDAA\n"+
		"   USDAA Multiple Qs: 1 added, 1 deleted, 0 identical\n")
	mqs := s.cfg.Venues.Find("USDAA").MultiQs
	c.Check(mqs.Find("Double"), gc.IsNil)
	c.Check(mqs.Find("Triple"), gc.NotNil)
}

func (s *updateSuite) TestOtherPointsAreNotChanged(c *gc.C) {
	s.newer.OtherPoints.Find("Breed").Default = 5
	c.Assert(s.newer.OtherPoints.Add(&config.OtherPoints{Name: "Herding", Tally: config.TallyLevel}), jc.ErrorIsNil)
	c.Assert(s.newer.Faults.Add("Refusal"), jc.ErrorIsNil)

	changed, info := s.update()
	c.Check(changed, jc.IsTrue)
	c.Check(info, gc.Equals, "Faults: 1 added, 1 identical\nOther Points: 1 added, 0 updated, 1 identical\n")
	c.Check(s.cfg.OtherPoints.Find("Breed").Default, gc.Equals, 1.0)
	c.Check(s.cfg.OtherPoints.Find("Herding"), gc.NotNil)
	c.Check(s.cfg.Faults, jc.DeepEquals, config.FaultList{"Knocked bar", "Refusal"})
}

func (s *updateSuite) TestLevelUpdate(c *gc.C) {
	masters := s.newer.Venues.Find("USDAA").Divisions.Find("Championship").Levels.Find("Masters")
	_, err := masters.SubLevels.Add("Masters C")
	c.Assert(err, jc.ErrorIsNil)

	changed, info := s.update()
	c.Check(changed, jc.IsTrue)
	c.Check(strings.HasPrefix(info, "Venues: 0 added, 1 updated, 1 identical\n-USDAA\n   Divisions: 0 added, 1 updated, 1 identical\n"), jc.IsTrue, gc.Commentf("%s", info))
	c.Check(info, jc.Contains, "Sub-Levels: 1 added, 0 updated, 2 identical")
	levels := s.cfg.Venues.Find("USDAA").Divisions.Find("Championship").Levels
	c.Check(levels.Find("Masters").SubLevels, gc.HasLen, 3)
}
