// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"fmt"
	"strings"

	"github.com/juju/loggo"
	gc "gopkg.in/check.v1"
)

// LogRecorder collects the messages logged during a test.
type LogRecorder struct {
	writer loggo.TestWriter
}

// Messages returns every recorded message at or above level, formatted
// as "LEVEL module message".
func (r *LogRecorder) Messages(level loggo.Level) []string {
	var out []string
	for _, entry := range r.writer.Log() {
		if entry.Level < level {
			continue
		}
		out = append(out, fmt.Sprintf("%s %s %s", entry.Level, entry.Module, entry.Message))
	}
	return out
}

// Contains reports whether any recorded message contains text.
func (r *LogRecorder) Contains(text string) bool {
	for _, entry := range r.writer.Log() {
		if strings.Contains(entry.Message, text) {
			return true
		}
	}
	return false
}

// Clear forgets every recorded message.
func (r *LogRecorder) Clear() {
	r.writer.Clear()
}

const recorderName = "arb-test-recorder"

// RecordLogs starts recording log messages of the arb modules until the
// returned cleanup function is called.
func RecordLogs(c *gc.C) (*LogRecorder, func()) {
	r := &LogRecorder{}
	err := loggo.RegisterWriter(recorderName, &r.writer)
	c.Assert(err, gc.IsNil)
	previous := loggo.GetLogger("arb").LogLevel()
	loggo.GetLogger("arb").SetLogLevel(loggo.TRACE)
	return r, func() {
		loggo.GetLogger("arb").SetLogLevel(previous)
		_, _ = loggo.RemoveWriter(recorderName)
	}
}
