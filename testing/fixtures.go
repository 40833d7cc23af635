// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"strings"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/dog"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
	"github.com/dconnet/AgilityBook-sub002/localization"
	"github.com/dconnet/AgilityBook-sub002/notify"
	"github.com/dconnet/AgilityBook-sub002/version"
)

// SampleBook is a small but complete record book. Bolt has records in
// both venues and earned a Double Q on 2011-03-05; Dash has only a
// title that is not earned yet. The calendar entries are out of order.
const SampleBook = `<?xml version="1.0"?>
<AgilityBook Book="15.3">
	<Calendar DateStart="2024-05-04" DateEnd="2024-05-05" Location="Fairgrounds" Club="Dog Sports Club" Venue="USDAA" Entered="E" Acc="C">Bring the crate</Calendar>
	<Calendar DateStart="2023-09-09" DateEnd="2023-09-10" isTentative="y" Club="Herders" Venue="ASCA" Entered="P"/>
	<Training Date="2024-01-10" Name="Weaves" SubName="Entries">12 poles</Training>
	<Configuration version="5">
		<Venue Name="USDAA" LongName="United States Dog Agility Association">
			<LifetimeName Name="Lifetime"/>
			<Titles Name="AD"/>
			<Titles Name="ADCH" Multiple="1" MultipleInc="1" Style="Roman"/>
			<Division Name="Championship">
				<Level Name="Starters"/>
				<Level Name="Masters">
					<SubLevel Name="Masters A"/>
					<SubLevel Name="Masters B"/>
				</Level>
			</Division>
			<Division Name="Veterans">
				<Level Name="Starters"/>
			</Division>
			<Event Name="Standard">
				<Scoring Division="*" Level="*" type="FaultsThenTime">
					<LifeTime Name="Lifetime" Points="1" Faults="0"/>
				</Scoring>
			</Event>
			<Event Name="Jumpers">
				<Scoring Division="Championship" Level="*" type="FaultsThenTime"/>
			</Event>
			<Event Name="Gamblers">
				<Scoring Division="*" Level="Starters" type="OCScoreThenTime" OpeningPts="20" ClosingPts="10"/>
			</Event>
			<MultiQ Name="Double Q" SName="QQ">
				<MultiQItem Div="Championship" Level="Starters" Event="Standard"/>
				<MultiQItem Div="Championship" Level="Starters" Event="Jumpers"/>
			</MultiQ>
		</Venue>
		<Venue Name="ASCA">
			<Titles Name="ATCH"/>
			<Division Name="Regular">
				<Level Name="Novice"/>
			</Division>
			<Event Name="Regular">
				<Scoring Division="*" Level="*" type="FaultsThenTime"/>
			</Event>
		</Venue>
		<FaultType>Knocked bar</FaultType>
		<OtherPts Name="Breed" Count="All" defValue="1"/>
	</Configuration>
	<Info>
		<ClubInfo Name="Dog Sports Club"/>
		<ClubInfo Name="Agility Nuts" Visible="n"/>
		<JudgeInfo Name="Smith">Walks the course twice</JudgeInfo>
		<LocationInfo Name="Fairgrounds"/>
	</Info>
	<Dog CallName="Bolt" DOB="2008-04-01">
		<RegisteredName>Lightning Bolt</RegisteredName>
		<ExistingPoints Type="Title" Venue="USDAA" Div="Championship" Level="Starters" Event="Standard" Pts="5"/>
		<ExistingPoints Type="MQ" Venue="USDAA" MultiQ="Double Q" Pts="2"/>
		<ExistingPoints Type="Other" Other="Breed" Venue="USDAA" Div="Championship" Level="Starters" Pts="3"/>
		<ExistingPoints Type="Lifetime" Other="Lifetime" Venue="USDAA" Div="Championship" Level="Masters A" Event="Standard" Pts="10"/>
		<RegNum Venue="USDAA" Number="12345"/>
		<RegNum Venue="ASCA" Number="A-1"/>
		<Title Date="2010-06-01" Venue="USDAA" Name="AD"/>
		<Title Date="2012-01-01" Venue="USDAA" Name="ADCH" instance="2"/>
		<Trial>
			<Location>Fairgrounds</Location>
			<Club Venue="USDAA">Dog Sports Club</Club>
			<Run Date="2011-03-05" Division="Championship" Level="Starters" Height="22" Event="Standard">
				<Judge>Smith</Judge>
				<ByTime CourseFaults="0" Time="35.5" SCT="40" Yards="150"/>
				<Placement Q="Q" Place="1" InClass="10" DogsQd="4"/>
			</Run>
			<Run Date="2011-03-05" Division="Championship" Level="Starters" Height="22" Event="Jumpers">
				<ByTime CourseFaults="0" Time="28.1" SCT="32" Yards="120"/>
				<Placement Q="Q" Place="2" InClass="10"/>
			</Run>
			<Run Date="2011-03-05" Division="Championship" Level="Starters" Height="22" Event="Gamblers">
				<ByOpenClose CourseFaults="0" Time="40" SCT="40" SCT2="15" NeedOpenPts="20" NeedClosePts="10" OpenPts="18" ClosePts="0"/>
				<Placement Q="NQ" Place="0" InClass="10">
					<OtherPoints Name="Breed" Points="1"/>
				</Placement>
				<Notes>
					<Faults>Knocked bar</Faults>
					<Other>Missed the gamble</Other>
				</Notes>
			</Run>
			<Run Date="2011-03-06" Division="Championship" Level="Masters A" Height="22" Event="Standard">
				<ByTime CourseFaults="5" Time="50.2" SCT="48" Yards="170"/>
				<Placement Q="Q" Place="3" InClass="20"/>
			</Run>
		</Trial>
		<Trial Verified="y">
			<Club Venue="ASCA">Herders</Club>
			<Run Date="2012-05-01" Division="Regular" Level="Novice" Event="Regular">
				<ByTime CourseFaults="0" Time="41" SCT="50"/>
				<Placement Q="Q" Place="1" InClass="5"/>
			</Run>
		</Trial>
	</Dog>
	<Dog CallName="Dash">
		<Title Venue="USDAA" Name="AD"/>
	</Dog>
</AgilityBook>
`

// Parse parses an XML document into an element tree.
func Parse(c *gc.C, doc string) *element.Node {
	root, err := element.Parse(strings.NewReader(doc))
	c.Assert(err, jc.ErrorIsNil)
	return root
}

// LoadContext returns a load context for a document of version ver
// reporting to log.
func LoadContext(ver string, log *notify.ErrorLog) config.LoadContext {
	return config.LoadContext{
		Version:   version.MustParse(ver),
		Callback:  log,
		Localizer: localization.English{},
	}
}

// SampleConfig loads the configuration of SampleBook.
func SampleConfig(c *gc.C) *config.Config {
	root := Parse(c, SampleBook)
	var log notify.ErrorLog
	cfg := &config.Config{}
	err := cfg.Load(root.Child(config.ElementName), LoadContext("15.3", &log))
	c.Assert(err, jc.ErrorIsNil, gc.Commentf("%s", log.String()))
	return cfg
}

// SampleDogs loads the dogs of SampleBook, checking them against cfg.
// Every record of the sample is valid against SampleConfig.
func SampleDogs(c *gc.C, cfg *config.Config) dog.List {
	root := Parse(c, SampleBook)
	var log notify.ErrorLog
	lc := LoadContext("15.3", &log)
	var dogs dog.List
	for _, n := range root.ChildrenNamed(dog.ElementName) {
		d, err := dog.Load(cfg, n, lc)
		c.Assert(err, jc.ErrorIsNil)
		dogs = append(dogs, d)
	}
	c.Assert(log.Messages(), gc.HasLen, 0, gc.Commentf("%s", log.String()))
	return dogs
}
