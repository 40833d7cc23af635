// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package upgrades carries older record books forward when a newer
// configuration is merged in. A configuration lists the renames and
// deletions made since earlier versions as actions; each action is
// applied to the current configuration and to the dogs' records that
// refer to what it changes.
package upgrades

import (
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/dconnet/AgilityBook-sub002/config"
	"github.com/dconnet/AgilityBook-sub002/dog"
	"github.com/dconnet/AgilityBook-sub002/localization"
	"github.com/dconnet/AgilityBook-sub002/notify"
)

var logger = loggo.GetLogger("arb.upgrades")

// Action is one configuration change that older documents must follow.
type Action interface {
	// Verb names the kind of change, as stored in the document.
	Verb() string

	// ConfigVersion is the configuration version that introduced the
	// action. Zero means the action always applies.
	ConfigVersion() int

	// Apply makes the change to cfg and to the records of dogs, which
	// may be nil. It returns whether cfg was changed.
	Apply(ctx *Context, cfg *config.Config, dogs *dog.List) bool

	// Update rewrites a venue, division and sublevel triple naming
	// entities of an older configuration. It returns whether any of
	// them changed.
	Update(cfg *config.Config, venue, div, subLevel *string) bool

	// Clone returns an independent copy.
	Clone() Action

	// Record returns the stored form of the action.
	Record() config.ActionRecord
}

// Context is shared by the actions of one update run.
type Context struct {
	Localizer localization.Localizer
	Protocol  *notify.Protocol
	// Info collects the report shown to the user.
	Info *strings.Builder
}

// NewContext returns a context reporting through loc into a new info
// buffer. Deletions are sequenced by protocol.
func NewContext(loc localization.Localizer, protocol *notify.Protocol) *Context {
	if protocol == nil {
		protocol = notify.NewProtocol(nil)
	}
	return &Context{
		Localizer: loc,
		Protocol:  protocol,
		Info:      &strings.Builder{},
	}
}

// CanContinue reports whether no deletion of the run has been vetoed.
func (ctx *Context) CanContinue() bool {
	return ctx.Protocol.CanContinue()
}

// line adds msg to the report as one line.
func (ctx *Context) line(msg string) {
	ctx.Info.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		ctx.Info.WriteString("\n")
	}
}

// propose asks about removing inUse records described by msg. It returns
// nil when the deletion was vetoed. Nothing is asked when no record is
// in use.
func (ctx *Context) propose(msg string, inUse int) *notify.Deletion {
	if inUse == 0 {
		return ctx.Protocol.Confirm()
	}
	d := ctx.Protocol.Propose(msg)
	if !d.Confirmed() {
		return nil
	}
	ctx.line(msg)
	return d
}

func commit(d *notify.Deletion) {
	if err := d.Commit(); err != nil {
		logger.Errorf("%v", err)
	}
}

// List is an ordered list of actions.
type List []Action

// applies reports whether an action introduced in actionVersion still has
// to be applied to a configuration at cfgVersion.
func applies(actionVersion, cfgVersion int) bool {
	return actionVersion == 0 || cfgVersion < actionVersion
}

type actionIterator struct {
	actions List
	version int
	current int
}

func newActionIterator(actions List, version int) *actionIterator {
	return &actionIterator{
		actions: actions,
		version: version,
		current: -1,
	}
}

func (it *actionIterator) Next() bool {
	for {
		it.current++
		if it.current >= len(it.actions) {
			return false
		}
		// Actions already reflected in the configuration are skipped.
		if applies(it.actions[it.current].ConfigVersion(), it.version) {
			return true
		}
	}
}

func (it *actionIterator) Get() Action {
	return it.actions[it.current]
}

// Apply runs every action that cfg has not seen yet, in order, and
// returns how many of them changed cfg. A vetoed deletion stops the run.
func (l List) Apply(ctx *Context, cfg *config.Config, dogs *dog.List) int {
	changes := 0
	for it := newActionIterator(l, cfg.Version); it.Next(); {
		a := it.Get()
		if a.Apply(ctx, cfg, dogs) {
			logger.Debugf("applied %s action (config version %d)", a.Verb(), a.ConfigVersion())
			changes++
		}
		if !ctx.CanContinue() {
			logger.Infof("stopped applying actions at %s: deletion vetoed", a.Verb())
			break
		}
	}
	if changes > 0 {
		ctx.Info.WriteString("\n")
	}
	return changes
}

// Update rewrites the venue, division and sublevel names through every
// action newer than preUpdateVersion. It returns whether any of them
// changed.
func (l List) Update(preUpdateVersion int, cfg *config.Config, venue, div, subLevel *string) bool {
	inVenue, inDiv, inSubLevel := *venue, *div, *subLevel
	for it := newActionIterator(l, preUpdateVersion); it.Next(); {
		it.Get().Update(cfg, venue, div, subLevel)
	}
	return inVenue != *venue || inDiv != *div || inSubLevel != *subLevel
}

// Records returns the stored form of every action.
func (l List) Records() []config.ActionRecord {
	if len(l) == 0 {
		return nil
	}
	records := make([]config.ActionRecord, len(l))
	for i, a := range l {
		records[i] = a.Record()
	}
	return records
}

// Clone returns an independent copy of the list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	clone := make(List, len(l))
	for i, a := range l {
		clone[i] = a.Clone()
	}
	return clone
}

type newActionFunc func(config.ActionRecord) Action

var actionFuncs = map[string]newActionFunc{
	VerbDeleteCalPlugin:    func(r config.ActionRecord) Action { return &deleteCalPlugin{action{r}} },
	VerbRenameOtherPoints:  func(r config.ActionRecord) Action { return &renameOtherPoints{action{r}} },
	VerbDeleteOtherPoints:  func(r config.ActionRecord) Action { return &deleteOtherPoints{action{r}} },
	VerbRenameVenue:        func(r config.ActionRecord) Action { return &renameVenue{action{r}} },
	VerbDeleteVenue:        func(r config.ActionRecord) Action { return &deleteVenue{action{r}} },
	VerbRenameMultiQ:       func(r config.ActionRecord) Action { return &renameMultiQ{action{r}} },
	VerbDeleteMultiQ:       func(r config.ActionRecord) Action { return &deleteMultiQ{action{r}} },
	VerbRenameDivision:     func(r config.ActionRecord) Action { return &renameDivision{action{r}} },
	VerbDeleteDivision:     func(r config.ActionRecord) Action { return &deleteDivision{action{r}} },
	VerbRenameLevel:        func(r config.ActionRecord) Action { return &renameLevel{action{r}} },
	VerbDeleteLevel:        func(r config.ActionRecord) Action { return &deleteLevel{action{r}} },
	VerbRenameTitle:        func(r config.ActionRecord) Action { return &renameTitle{action{r}} },
	VerbDeleteTitle:        func(r config.ActionRecord) Action { return &deleteTitle{action{r}} },
	VerbRenameEvent:        func(r config.ActionRecord) Action { return &renameEvent{action{r}} },
	VerbDeleteEvent:        func(r config.ActionRecord) Action { return &deleteEvent{action{r}} },
	VerbRenameLifetimeName: func(r config.ActionRecord) Action { return &renameLifetimeName{action{r}} },
	VerbDeleteLifetimeName: func(r config.ActionRecord) Action { return &deleteLifetimeName{action{r}} },
}

// Verbs returns every known verb.
func Verbs() set.Strings {
	verbs := set.NewStrings()
	for verb := range actionFuncs {
		verbs.Add(verb)
	}
	return verbs
}

// FromRecord returns the action stored in r.
func FromRecord(r config.ActionRecord) (Action, error) {
	newAction, ok := actionFuncs[r.Verb]
	if !ok {
		return nil, errors.NotValidf("action verb %q (expected one of %s)",
			r.Verb, strings.Join(Verbs().SortedValues(), ", "))
	}
	return newAction(r), nil
}

// FromRecords returns the actions stored in records, in order.
func FromRecords(records []config.ActionRecord) (List, error) {
	var l List
	for i, r := range records {
		a, err := FromRecord(r)
		if err != nil {
			return nil, errors.Annotatef(err, "action %d", i)
		}
		l = append(l, a)
	}
	return l, nil
}
