// Copyright 2012, 2013 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package version implements the two-part version numbers used by
// record book documents and by configuration actions.
package version

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/juju/errors"
	jujuversion "github.com/juju/version/v2"
)

// Number represents a document format version (major.minor).
type Number struct {
	Major uint16
	Minor uint16
}

// Zero is the zero version; documents without a version parse to it.
var Zero = Number{}

// Current is the version of the document format written by this package.
var Current = Number{Major: 15, Minor: 3}

// Program is the version of this program. It is written into saved
// documents for information only.
var Program = jujuversion.MustParse("3.2.0")

var numberPat = regexp.MustCompile(`^\s*(\d{1,5})(?:\.(\d{1,5}))?\s*$`)

// Parse parses the version, which is of the form "major" or
// "major.minor".
func Parse(s string) (Number, error) {
	m := numberPat.FindStringSubmatch(s)
	if m == nil {
		return Zero, errors.NotValidf("version %q", s)
	}
	major, err := parseUint16(m[1])
	if err != nil {
		return Zero, errors.Annotatef(err, "version %q", s)
	}
	var minor uint16
	if m[2] != "" {
		if minor, err = parseUint16(m[2]); err != nil {
			return Zero, errors.Annotatef(err, "version %q", s)
		}
	}
	return Number{Major: major, Minor: minor}, nil
}

func parseUint16(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errors.NotValidf("component %q", s)
	}
	return uint16(n), nil
}

// MustParse parses a version and panics if it does
// not parse correctly.
func MustParse(s string) Number {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as "major.minor".
func (v Number) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns -1, 0 or 1 depending on whether
// v is less than, equal to or greater than w.
func (v Number) Compare(w Number) int {
	return v.number().Compare(w.number())
}

// Less reports whether v sorts before w.
func (v Number) Less(w Number) bool {
	return v.Compare(w) < 0
}

// number converts v to the three-part juju form so ordering rules
// are shared with the rest of the stack.
func (v Number) number() jujuversion.Number {
	return jujuversion.Number{Major: int(v.Major), Minor: int(v.Minor)}
}
