// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package notify

import (
	"fmt"

	"github.com/juju/errors"
)

// Callback is consulted around destructive changes to user data.
type Callback interface {
	// PreDelete is called before data is removed. It returns whether
	// the removal may go ahead.
	PreDelete(msg string) bool

	// PostDelete tells the user about data that has already been
	// removed.
	PostDelete(msg string)
}

// Stage is the state of one deletion.
type Stage int

const (
	// Proposed means the user is being asked.
	Proposed Stage = iota + 1
	// Confirmed means the deletion may go ahead.
	Confirmed
	// Vetoed means the user refused; nothing was removed.
	Vetoed
	// Committed means the data has been removed.
	Committed
	// PostNotified means the user was told about a committed removal.
	PostNotified
)

var stageNames = map[Stage]string{
	Proposed:     "proposed",
	Confirmed:    "confirmed",
	Vetoed:       "vetoed",
	Committed:    "committed",
	PostNotified: "post-notified",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Event records one transition, in the order it happened.
type Event struct {
	Deletion int
	Stage    Stage
	Message  string
}

// Protocol sequences the deletions of one update run. Once any
// deletion is vetoed the run may not continue.
type Protocol struct {
	callback Callback
	vetoed   bool
	next     int
	events   []Event
}

// NewProtocol returns a protocol that consults cb. A nil callback
// confirms everything and discards post-delete messages.
func NewProtocol(cb Callback) *Protocol {
	return &Protocol{callback: cb}
}

// CanContinue reports whether no deletion has been vetoed.
func (p *Protocol) CanContinue() bool {
	return !p.vetoed
}

// Events returns the transitions recorded so far.
func (p *Protocol) Events() []Event {
	return append([]Event(nil), p.events...)
}

func (p *Protocol) record(d *Deletion, stage Stage, msg string) {
	d.stage = stage
	p.events = append(p.events, Event{Deletion: d.id, Stage: stage, Message: msg})
}

func (p *Protocol) newDeletion() *Deletion {
	p.next++
	return &Deletion{protocol: p, id: p.next}
}

// Propose asks the callback about a deletion described by msg. The
// returned deletion is either Confirmed or Vetoed. After a veto every
// later proposal is vetoed without asking.
func (p *Protocol) Propose(msg string) *Deletion {
	d := p.newDeletion()
	p.record(d, Proposed, msg)
	ok := !p.vetoed
	if ok && p.callback != nil {
		ok = p.callback.PreDelete(msg)
	}
	if !ok {
		p.vetoed = true
		p.record(d, Vetoed, msg)
		logger.Debugf("deletion %d vetoed: %s", d.id, msg)
		return d
	}
	p.record(d, Confirmed, msg)
	return d
}

// Confirm returns a deletion that needs no question, because nothing
// the user owns depends on it.
func (p *Protocol) Confirm() *Deletion {
	d := p.newDeletion()
	p.record(d, Confirmed, "")
	return d
}

// Deletion is one destructive change moving through the protocol.
type Deletion struct {
	protocol *Protocol
	id       int
	stage    Stage
}

// Stage returns the current state.
func (d *Deletion) Stage() Stage {
	return d.stage
}

// Confirmed reports whether the deletion may be carried out.
func (d *Deletion) Confirmed() bool {
	return d.stage == Confirmed
}

// Commit records that the data has been removed.
func (d *Deletion) Commit() error {
	if d.stage != Confirmed {
		return errors.NotValidf("commit of %s deletion", d.stage)
	}
	d.protocol.record(d, Committed, "")
	return nil
}

// NotifyPost tells the callback about the committed removal.
func (d *Deletion) NotifyPost(msg string) error {
	if d.stage != Committed {
		return errors.NotValidf("post-delete notification of %s deletion", d.stage)
	}
	if d.protocol.callback != nil {
		d.protocol.callback.PostDelete(msg)
	}
	d.protocol.record(d, PostNotified, msg)
	return nil
}
