// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config_test

import (
	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/internal/date"
	"github.com/dconnet/AgilityBook-sub002/localization"
)

type pointsSuite struct{}

var _ = gc.Suite(&pointsSuite{})

func breakpoints(c *gc.C) *config.TitlePointsList {
	l := &config.TitlePointsList{Type: config.PointsNormal}
	for _, p := range []struct{ points, faults float64 }{{10, 0}, {1, 10}, {5, 5}} {
		_, err := l.Add(p.points, p.faults)
		c.Assert(err, jc.ErrorIsNil)
	}
	return l
}

func (*pointsSuite) TestTableIsSorted(c *gc.C) {
	l := breakpoints(c)
	var keys []float64
	for _, p := range l.Items {
		keys = append(keys, p.Faults)
	}
	c.Assert(keys, jc.DeepEquals, []float64{0, 5, 10})

	_, err := l.Add(3, 5)
	c.Assert(err, jc.Satisfies, errors.IsAlreadyExists)
}

func (*pointsSuite) TestPointsLookup(c *gc.C) {
	l := breakpoints(c)
	for i, test := range []struct {
		key    float64
		points float64
	}{
		{0, 10}, {4.5, 10}, {5, 5}, {7, 5}, {10, 1}, {15, 1},
	} {
		c.Logf("test %d: key %v", i, test.key)
		c.Check(l.Points(test.key), gc.Equals, test.points)
	}
	c.Check(l.Points(-1), gc.Equals, 0.0)
	c.Check((&config.TitlePointsList{}).Points(3), gc.Equals, 0.0)
}

func (*pointsSuite) TestSetTypeDiscardsEntries(c *gc.C) {
	l := breakpoints(c)
	l.SetType(config.PointsNormal)
	c.Check(l.Items, gc.HasLen, 3)
	l.SetType(config.PointsT2B)
	c.Check(l.Type, gc.Equals, config.PointsT2B)
	c.Check(l.Items, gc.HasLen, 0)
}

func (*pointsSuite) TestRunPointsT2B(c *gc.C) {
	l := &config.TitlePointsList{Type: config.PointsT2B}
	_, err := l.Add(1, 0)
	c.Assert(err, jc.ErrorIsNil)
	_, err = l.Add(0, 100)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(l.RunPoints(0, 45, 50, 0), gc.Equals, 1.0)
	c.Check(l.RunPoints(0, 55, 50, 0), gc.Equals, 0.0)
	c.Check(l.RunPoints(0, 45, 0, 0), gc.Equals, 0.0)
}

func (*pointsSuite) TestRunPointsByPlacement(c *gc.C) {
	l := &config.TitlePointsList{Type: config.PointsTop10USDAA}
	c.Assert(l.Type.ByPlacement(), jc.IsTrue)
	_, err := l.Add(10, 1)
	c.Assert(err, jc.ErrorIsNil)
	_, err = l.Add(5, 3)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(l.RunPoints(20, 0, 0, 1), gc.Equals, 10.0)
	c.Check(l.RunPoints(0, 0, 0, 2), gc.Equals, 0.0)
	c.Check(l.RunPoints(0, 0, 0, 3), gc.Equals, 5.0)
	c.Check(l.RunPoints(0, 0, 0, 0), gc.Equals, 0.0)
}

func (*pointsSuite) TestPointsTypeValidate(c *gc.C) {
	c.Check(config.PointsUKI.Validate(), jc.ErrorIsNil)
	c.Check(config.PointsType("Bogus").Validate(), jc.Satisfies, errors.IsNotValid)
}

func (*pointsSuite) TestTitlePointsName(c *gc.C) {
	p := &config.TitlePoints{Points: 5, Faults: 2.5}
	c.Check(p.Name(config.PointsNormal, localization.English{}), gc.Equals, "5 points with 2.5 faults")
	c.Check(p.Name(config.PointsUKI, localization.English{}), gc.Equals, "5 points for place 2")
}

func (*pointsSuite) TestLifetimePoints(c *gc.C) {
	var l config.LifetimePointsList
	_, err := l.Add("Lifetime", false, 2, 0)
	c.Assert(err, jc.ErrorIsNil)
	_, err = l.Add("Lifetime", false, 1, 5)
	c.Assert(err, jc.ErrorIsNil)
	_, err = l.Add("Speed", true, 0, 0)
	c.Assert(err, jc.ErrorIsNil)
	_, err = l.Add("Lifetime", false, 3, 0)
	c.Assert(err, jc.Satisfies, errors.IsAlreadyExists)

	c.Check(l.Points("Lifetime", 0, 0), gc.Equals, 2.0)
	c.Check(l.Points("Lifetime", 7, 0), gc.Equals, 1.0)
	c.Check(l.Points("Speed", 0, 12), gc.Equals, 12.0)
	c.Check(l.Points("Other", 0, 12), gc.Equals, 0.0)

	c.Check(l.RenameName("Lifetime", "Career"), gc.Equals, 2)
	c.Check(l.Points("Career", 0, 0), gc.Equals, 2.0)
	c.Check(l.DeleteName("Career"), gc.Equals, 2)
	c.Check(l, gc.HasLen, 1)
}

func (*pointsSuite) TestPlaceInfo(c *gc.C) {
	var l config.PlaceInfoList
	_, err := l.Add(2, 1.5, false)
	c.Assert(err, jc.ErrorIsNil)
	_, err = l.Add(1, 2, true)
	c.Assert(err, jc.ErrorIsNil)
	_, err = l.Add(1, 3, true)
	c.Assert(err, jc.Satisfies, errors.IsAlreadyExists)

	c.Check(l[0].Place, gc.Equals, 1)
	value, mustQ, ok := l.Value(1)
	c.Check(value, gc.Equals, 2.0)
	c.Check(mustQ, jc.IsTrue)
	c.Check(ok, jc.IsTrue)
	_, _, ok = l.Value(4)
	c.Check(ok, jc.IsFalse)
}

func (*pointsSuite) TestScoringStyle(c *gc.C) {
	s := config.NewScoring("*", "*", config.OCScoreThenTime)
	s.OpeningPts, s.ClosingPts = 20, 10
	s.SetStyle(config.OCScoreThenTime)
	c.Check(s.OpeningPts, gc.Equals, 20)
	s.SetStyle(config.FaultsThenTime)
	c.Check(s.OpeningPts, gc.Equals, 0)
	c.Check(s.ClosingPts, gc.Equals, 0)
	c.Check(s.TimeFaultMultiplier, gc.Equals, 1)
	c.Check(config.ScoringStyle("Bogus").Validate(), jc.Satisfies, errors.IsNotValid)
}

func (*pointsSuite) TestScoringValidity(c *gc.C) {
	s := config.NewScoring("*", "*", config.FaultsThenTime)
	s.ValidFrom = date.New(2010, 1, 1)
	s.ValidTo = date.New(2010, 12, 31)
	c.Check(s.IsValidOn(date.New(2010, 6, 1)), jc.IsTrue)
	c.Check(s.IsValidOn(date.New(2011, 1, 1)), jc.IsFalse)
	c.Check(s.IsValidOn(date.Date{}), jc.IsTrue)
}

func (*pointsSuite) TestTitleInstance(c *gc.C) {
	t := &config.Title{Name: "ADCH", MultipleStartAt: 1, MultipleIncrement: 1, MultipleStyle: config.TitleStyleRoman}
	c.Assert(t.IsRecurring(), jc.IsTrue)
	c.Check(t.Instance(1, t.MultipleStyle), gc.Equals, "ADCH")
	c.Check(t.Instance(4, t.MultipleStyle), gc.Equals, "ADCH-IV")
	c.Check(t.Instance(4, config.TitleStyleNumber), gc.Equals, "ADCH4")

	t.MultipleOnFirst = true
	c.Check(t.Instance(1, t.MultipleStyle), gc.Equals, "ADCH-I")
}
