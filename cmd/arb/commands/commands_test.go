// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands_test

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/cmd/v3"
	"github.com/juju/cmd/v3/cmdtesting"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/dconnet/AgilityBook-sub002/cmd/arb/commands"
	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/internal/element"
	arbtesting "github.com/dconnet/AgilityBook-sub002/testing"
	"github.com/dconnet/AgilityBook-sub002/upgrades"
)

type commandsSuite struct {
	arbtesting.BaseSuite
	dir      string
	bookPath string
}

var _ = gc.Suite(&commandsSuite{})

func (s *commandsSuite) SetUpTest(c *gc.C) {
	s.BaseSuite.SetUpTest(c)
	s.dir = c.MkDir()
	s.bookPath = writeFile(c, s.dir, "book.arb", arbtesting.SampleBook)
}

// writeConfig saves the sample configuration, changed by edit, as a
// default configuration document.
func (s *commandsSuite) writeConfig(c *gc.C, edit func(cfg *config.Config)) string {
	cfg := arbtesting.SampleConfig(c)
	if edit != nil {
		edit(cfg)
	}
	root := element.New("DefaultConfig")
	cfg.Save(root)
	path := filepath.Join(c.MkDir(), "config.xml")
	c.Assert(root.SaveFile(path), jc.ErrorIsNil)
	return path
}

func dropASCA(cfg *config.Config) {
	cfg.Version = 6
	cfg.Venues.Delete("ASCA")
	cfg.Actions = []config.ActionRecord{upgrades.NewDeleteVenue(6, "ASCA").Record()}
}

func (s *commandsSuite) runUpdate(c *gc.C, stdin string, args ...string) (*cmd.Context, error) {
	com := commands.NewUpdateCommand(commands.DefaultSettings, s.Clock)
	c.Assert(cmdtesting.InitCommand(com, args), jc.ErrorIsNil)
	ctx := cmdtesting.Context(c)
	ctx.Stdin = strings.NewReader(stdin)
	return ctx, com.Run(ctx)
}

func (s *commandsSuite) TestValidate(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewValidateCommand(), s.bookPath)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals,
		s.bookPath+": configuration version 5, 2 dog(s), 2 calendar and 1 training entries\n")
}

func (s *commandsSuite) TestValidateReportsProblems(c *gc.C) {
	doc := strings.Replace(arbtesting.SampleBook, `<Calendar DateStart="2024-05-04" `, `<Calendar `, 1)
	path := writeFile(c, s.dir, "broken.arb", doc)

	ctx, err := cmdtesting.RunCommand(c, commands.NewValidateCommand(), path)
	c.Check(err, gc.ErrorMatches, `1 problem\(s\) found in .*broken.arb`)
	lines := strings.Split(strings.TrimSpace(cmdtesting.Stdout(ctx)), "\n")
	c.Assert(lines, gc.HasLen, 2)
	c.Check(lines[1], gc.Matches, `.*configuration version 5, 2 dog\(s\), 1 calendar and 1 training entries`)
}

func (s *commandsSuite) TestValidateRejectsOtherDocuments(c *gc.C) {
	path := writeFile(c, s.dir, "other.xml", "<Book/>")
	ctx, err := cmdtesting.RunCommand(c, commands.NewValidateCommand(), path)
	c.Check(err, gc.ErrorMatches, `loading .*other.xml: root element "Book" not valid`)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, loc.InvalidRoot("AgilityBook")+"\n")
}

func (s *commandsSuite) TestValidateArgs(c *gc.C) {
	err := cmdtesting.InitCommand(commands.NewValidateCommand(), nil)
	c.Check(err, gc.ErrorMatches, "no book file specified")
	err = cmdtesting.InitCommand(commands.NewValidateCommand(), []string{"a", "b"})
	c.Check(err, gc.ErrorMatches, `unrecognized args: \["b"\]`)
}

var sampleSummary = map[string]interface{}{
	"config-version":   5,
	"venues":           []interface{}{"ASCA", "USDAA"},
	"calendar-entries": 2,
	"training-entries": 1,
	"dogs": []interface{}{
		map[string]interface{}{
			"call-name": "Bolt",
			"trials":    2,
			"runs":      5,
			"titles":    []interface{}{"USDAA AD", "USDAA ADCH-II"},
		},
		map[string]interface{}{
			"call-name": "Dash",
			"trials":    0,
			"runs":      0,
		},
	},
}

func (s *commandsSuite) TestShowYAML(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewShowCommand(commands.DefaultSettings), s.bookPath)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), jc.YAMLEquals, sampleSummary)
	c.Check(cmdtesting.Stderr(ctx), gc.Equals, "")
}

func (s *commandsSuite) TestShowJSON(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewShowCommand(commands.DefaultSettings),
		s.bookPath, "--format", "json")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), jc.JSONEquals, sampleSummary)
}

func (s *commandsSuite) TestShowFormatFromSettings(c *gc.C) {
	settings := commands.Settings{ConfirmDeletes: commands.ConfirmAsk, Format: "json"}
	ctx, err := cmdtesting.RunCommand(c, commands.NewShowCommand(settings), s.bookPath)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), jc.JSONEquals, sampleSummary)
}

func (s *commandsSuite) TestShowTabular(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewShowCommand(commands.DefaultSettings),
		s.bookPath, "--format", "tabular")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(strings.TrimSpace(cmdtesting.Stdout(ctx)), gc.Equals, strings.TrimSpace(`
Configuration version 5, 2 calendar and 1 training entries
Venues: ASCA, USDAA

Dog  Trials Runs Titles
Bolt 2      5    USDAA AD, USDAA ADCH-II
Dash 0      0
`))
}

func (s *commandsSuite) TestUpdateArgs(c *gc.C) {
	for i, test := range []struct {
		args []string
		err  string
	}{{
		args: []string{s.bookPath},
		err:  "no configuration specified, use --config",
	}, {
		args: []string{"--config", "c.xml", "--yes", "--no", s.bookPath},
		err:  "--yes and --no cannot be used together",
	}, {
		args: []string{"--config", "c.xml"},
		err:  "no book file specified",
	}} {
		c.Logf("test %d: %v", i, test.args)
		com := commands.NewUpdateCommand(commands.DefaultSettings, s.Clock)
		c.Check(cmdtesting.InitCommand(com, test.args), gc.ErrorMatches, test.err)
	}
}

func (s *commandsSuite) TestUpdateDeletesWhenTold(c *gc.C) {
	configPath := s.writeConfig(c, dropASCA)
	out := filepath.Join(s.dir, "updated.arb")

	ctx, err := s.runUpdate(c, "", "--config", configPath, "--yes", "-o", out, s.bookPath)
	c.Assert(err, jc.ErrorIsNil)
	stdout := cmdtesting.Stdout(ctx)
	c.Check(stdout, jc.Contains, loc.ActionDeleteVenue("ASCA"))
	c.Check(stdout, jc.HasSuffix, out+" updated to configuration version 6\n")
	c.Check(cmdtesting.Stderr(ctx), gc.Equals, "")

	b := readBook(c, out)
	c.Check(b.Config.Version, gc.Equals, 6)
	c.Check(b.Config.Venues.Find("ASCA"), gc.IsNil)
	c.Check(b.Dogs[0].Trials, gc.HasLen, 1)

	root, err := element.ParseFile(out)
	c.Assert(err, jc.ErrorIsNil)
	stamp, _ := root.Attrib("timestamp")
	c.Check(stamp, gc.Equals, "2024-03-09 10:30:00")
}

func (s *commandsSuite) TestUpdateRefusedSavesNothing(c *gc.C) {
	configPath := s.writeConfig(c, dropASCA)
	out := filepath.Join(s.dir, "updated.arb")

	_, err := s.runUpdate(c, "", "--config", configPath, "--no", "-o", out, s.bookPath)
	c.Check(err, gc.ErrorMatches, "update stopped: a deletion was refused, nothing saved")
	_, err = os.Stat(out)
	c.Check(os.IsNotExist(err), jc.IsTrue)
}

func (s *commandsSuite) TestUpdateAsks(c *gc.C) {
	configPath := s.writeConfig(c, dropASCA)

	ctx, err := s.runUpdate(c, "y\n", "--config", configPath, s.bookPath)
	c.Assert(err, jc.ErrorIsNil)
	question := loc.ActionPreDeleteVenue("ASCA", 2)
	c.Check(cmdtesting.Stderr(ctx), gc.Equals, question+"\nContinue? (y/N): ")
	c.Check(readBook(c, s.bookPath).Config.Venues.Find("ASCA"), gc.IsNil)
}

func (s *commandsSuite) TestUpdateAskedWithoutAnswer(c *gc.C) {
	configPath := s.writeConfig(c, dropASCA)

	_, err := s.runUpdate(c, "", "--config", configPath, s.bookPath)
	c.Check(err, gc.ErrorMatches, "update stopped: .*")
	c.Check(readBook(c, s.bookPath).Config.Venues.Find("ASCA"), gc.NotNil)
}

func (s *commandsSuite) TestUpdateDryRun(c *gc.C) {
	configPath := s.writeConfig(c, dropASCA)

	ctx, err := s.runUpdate(c, "", "--config", configPath, "--yes", "--dry-run", s.bookPath)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), jc.HasSuffix, s.bookPath+" not saved (dry run)\n")
	data, err := os.ReadFile(s.bookPath)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(data), gc.Equals, arbtesting.SampleBook)
}

func (s *commandsSuite) TestUpdateTwice(c *gc.C) {
	configPath := s.writeConfig(c, nil)

	_, err := s.runUpdate(c, "", "--config", configPath, s.bookPath)
	c.Assert(err, jc.ErrorIsNil)
	ctx, err := s.runUpdate(c, "", "--config", configPath, s.bookPath)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, s.bookPath+" is up to date\n")
}

func (s *commandsSuite) TestUpdateMissingConfig(c *gc.C) {
	_, err := s.runUpdate(c, "", "--config", filepath.Join(s.dir, "none.xml"), s.bookPath)
	c.Check(err, gc.ErrorMatches, `reading .*none.xml: loading default configuration: .*`)
}

func (s *commandsSuite) TestDefault(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewDefaultCommand(s.Clock))
	c.Assert(err, jc.ErrorIsNil)

	root, err := element.Parse(strings.NewReader(cmdtesting.Stdout(ctx)))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(root.Name(), gc.Equals, "AgilityBook")
	stamp, _ := root.Attrib("timestamp")
	c.Check(stamp, gc.Equals, "2024-03-09 10:30:00")

	path := writeFile(c, s.dir, "empty.arb", cmdtesting.Stdout(ctx))
	b := readBook(c, path)
	c.Check(b.Dogs, gc.HasLen, 0)
	c.Check(b.Config.Venues.Find("AKC"), gc.NotNil)
}

func (s *commandsSuite) TestDefaultToFile(c *gc.C) {
	out := filepath.Join(s.dir, "empty.arb")
	ctx, err := cmdtesting.RunCommand(c, commands.NewDefaultCommand(s.Clock), "-o", out)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, "")
	c.Check(cmdtesting.Stderr(ctx), gc.Equals, "wrote "+out+"\n")
	c.Check(readBook(c, out).Dogs, gc.HasLen, 0)
}

func (s *commandsSuite) TestSuperCommandVersion(c *gc.C) {
	arb := commands.NewArbCommand(commands.DefaultSettings, s.Clock)
	ctx, err := cmdtesting.RunCommand(c, arb, "version")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, "3.2.0\n")
}

func (s *commandsSuite) TestSuperCommandValidate(c *gc.C) {
	arb := commands.NewArbCommand(commands.DefaultSettings, s.Clock)
	ctx, err := cmdtesting.RunCommand(c, arb, "validate", s.bookPath)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), jc.HasPrefix, s.bookPath+": configuration version 5")
}
