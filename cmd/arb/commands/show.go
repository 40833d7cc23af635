// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/juju/ansiterm"
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/naturalsort"

	"github.com/dconnet/AgilityBook-sub002/book"
	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/dog"
	"github.com/dconnet/AgilityBook-sub002/notify"
)

const showDoc = `
Summarise a record book: the configuration version, the venues it
knows and, for every dog, its trials, runs and titles.
`

func newShowCommand(settings Settings) cmd.Command {
	return &showCommand{defaultFormat: settings.Format}
}

type showCommand struct {
	bookCommand
	out           cmd.Output
	defaultFormat string
}

// BookSummary is what show prints.
type BookSummary struct {
	ConfigVersion int          `yaml:"config-version" json:"config-version"`
	Venues        []string     `yaml:"venues" json:"venues"`
	Calendar      int          `yaml:"calendar-entries" json:"calendar-entries"`
	Training      int          `yaml:"training-entries" json:"training-entries"`
	Dogs          []DogSummary `yaml:"dogs,omitempty" json:"dogs,omitempty"`
}

// DogSummary describes one dog of a BookSummary.
type DogSummary struct {
	CallName string   `yaml:"call-name" json:"call-name"`
	Breed    string   `yaml:"breed,omitempty" json:"breed,omitempty"`
	Trials   int      `yaml:"trials" json:"trials"`
	Runs     int      `yaml:"runs" json:"runs"`
	Titles   []string `yaml:"titles,omitempty" json:"titles,omitempty"`
}

// Info implements Command.
func (c *showCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "show",
		Args:    "<book file>",
		Purpose: "Summarise a record book.",
		Doc:     showDoc,
	}
}

// SetFlags implements Command.
func (c *showCommand) SetFlags(f *gnuflag.FlagSet) {
	c.out.AddFlags(f, c.defaultFormat, map[string]cmd.Formatter{
		"yaml":    cmd.FormatYaml,
		"json":    cmd.FormatJson,
		"tabular": formatTabular,
	})
}

// Run implements Command.
func (c *showCommand) Run(ctx *cmd.Context) error {
	log := &notify.ErrorLog{Continue: true}
	b, err := c.loadBook(ctx, log)
	printMessages(ctx, log)
	if err != nil {
		return errors.Trace(err)
	}
	return c.out.Write(ctx, summarise(b))
}

func summarise(b *book.Book) BookSummary {
	s := BookSummary{
		ConfigVersion: b.Config.Version,
		Venues:        make([]string, 0, len(b.Config.Venues)),
		Calendar:      len(b.Calendar),
		Training:      len(b.Training),
	}
	for _, v := range b.Config.Venues {
		s.Venues = append(s.Venues, v.Name)
	}
	naturalsort.Sort(s.Venues)
	for _, d := range b.Dogs {
		s.Dogs = append(s.Dogs, summariseDog(&b.Config, d))
	}
	return s
}

func summariseDog(cfg *config.Config, d *dog.Dog) DogSummary {
	s := DogSummary{
		CallName: d.CallName,
		Breed:    d.Breed,
		Trials:   len(d.Trials),
	}
	for _, t := range d.Trials {
		s.Runs += len(t.Runs)
	}
	for _, t := range d.Titles {
		if t.Hidden {
			continue
		}
		shown := *t
		var ct *config.Title
		if v := cfg.Venues.Find(t.Venue); v != nil {
			ct = v.Titles.Find(t.Name)
		}
		if ct != nil && shown.Style == config.TitleStyleNone {
			shown.Style = ct.MultipleStyle
		}
		s.Titles = append(s.Titles, t.Venue+" "+shown.DisplayName(ct))
	}
	naturalsort.Sort(s.Titles)
	return s
}

// formatTabular writes a BookSummary as a table of dogs.
func formatTabular(writer io.Writer, value interface{}) error {
	s, ok := value.(BookSummary)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", s, value)
	}
	fmt.Fprintf(writer, "Configuration version %d, %d calendar and %d training entries\n",
		s.ConfigVersion, s.Calendar, s.Training)
	fmt.Fprintf(writer, "Venues: %s\n", strings.Join(s.Venues, ", "))
	if len(s.Dogs) == 0 {
		return nil
	}
	fmt.Fprintln(writer)

	tw := ansiterm.NewTabWriter(writer, 0, 1, 1, ' ', 0)
	print := func(values ...string) {
		fmt.Fprintln(tw, strings.Join(values, "\t"))
	}
	print("Dog", "Trials", "Runs", "Titles")
	for _, d := range s.Dogs {
		row := []string{d.CallName, strconv.Itoa(d.Trials), strconv.Itoa(d.Runs)}
		if len(d.Titles) > 0 {
			row = append(row, strings.Join(d.Titles, ", "))
		}
		print(row...)
	}
	return errors.Trace(tw.Flush())
}
