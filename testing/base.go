// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package testing holds the suites and fixtures shared by the tests of
// the record book packages.
package testing

import (
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/loggo"
	"github.com/juju/testing"
	gc "gopkg.in/check.v1"
)

// BaseSuite records log messages for every test and gives each test a
// fixed clock.
type BaseSuite struct {
	testing.CleanupSuite

	Logs  *LogRecorder
	Clock *testclock.Clock
}

// FixedNow is the time Clock starts at.
var FixedNow = time.Date(2024, time.March, 9, 10, 30, 0, 0, time.UTC)

func (s *BaseSuite) SetUpTest(c *gc.C) {
	s.CleanupSuite.SetUpTest(c)
	// Commands run through a super command register writers of their
	// own in the default logging context.
	loggo.ResetLogging()
	s.AddCleanup(func(*gc.C) { loggo.ResetLogging() })
	logs, cleanup := RecordLogs(c)
	s.Logs = logs
	s.AddCleanup(func(*gc.C) { cleanup() })
	s.Clock = testclock.NewClock(FixedNow)
}

func (s *BaseSuite) TearDownTest(c *gc.C) {
	if c.Failed() {
		for _, msg := range s.Logs.Messages(loggo.DEBUG) {
			c.Log(msg)
		}
	}
	s.CleanupSuite.TearDownTest(c)
}
