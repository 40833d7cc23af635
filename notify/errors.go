// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package notify carries problems and confirmations between the record
// book core and whoever drives it.
package notify

import (
	"strings"

	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("arb.notify")

// ErrorCallback receives the problems found while loading a document.
type ErrorCallback interface {
	// LogMessage records a non-fatal problem.
	LogMessage(msg string)

	// OnError reports a problem that may abort the load. It returns
	// whether loading should continue.
	OnError(msg string) bool
}

// ErrorLog is an ErrorCallback that accumulates every message.
type ErrorLog struct {
	// Continue is the answer given by OnError.
	Continue bool

	messages []string
}

var _ ErrorCallback = (*ErrorLog)(nil)

// LogMessage is part of the ErrorCallback interface.
func (l *ErrorLog) LogMessage(msg string) {
	logger.Debugf("load: %s", msg)
	l.messages = append(l.messages, msg)
}

// OnError is part of the ErrorCallback interface.
func (l *ErrorLog) OnError(msg string) bool {
	l.LogMessage(msg)
	return l.Continue
}

// Messages returns the accumulated messages in order.
func (l *ErrorLog) Messages() []string {
	return append([]string(nil), l.messages...)
}

// String joins the accumulated messages, one per line.
func (l *ErrorLog) String() string {
	return strings.Join(l.messages, "\n")
}
