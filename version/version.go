// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package version parses, compares and formats the "major.minor.micro[.qualifier]"
// version values used by Interface and Message descriptor headers.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/celix-sub005/errs"
)

// Version is an immutable major.minor.micro[.qualifier] value.
type Version struct {
	Major, Minor, Micro int
	Qualifier           string
}

// New builds a Version directly from its components.
func New(major, minor, micro int, qualifier string) Version {
	return Version{Major: major, Minor: minor, Micro: micro, Qualifier: qualifier}
}

// Parse parses a string of the form "N(.N(.N(.Q)?)?)?" where
// Q = [A-Za-z0-9_-]+. Missing trailing components default to zero (or
// the empty qualifier).
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, errs.New(errs.ParseError, "invalid version: empty string")
	}
	parts := strings.SplitN(s, ".", 4)
	v := Version{}
	var err error
	if v.Major, err = parseComponent(parts[0], s); err != nil {
		return Version{}, err
	}
	if len(parts) > 1 {
		if v.Minor, err = parseComponent(parts[1], s); err != nil {
			return Version{}, err
		}
	}
	if len(parts) > 2 {
		if v.Micro, err = parseComponent(parts[2], s); err != nil {
			return Version{}, err
		}
	}
	if len(parts) > 3 {
		if !isQualifier(parts[3]) {
			return Version{}, errs.New(errs.ParseError, "invalid version %q: bad qualifier %q", s, parts[3])
		}
		v.Qualifier = parts[3]
	}
	return v, nil
}

func parseComponent(s, full string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errs.New(errs.ParseError, "invalid version %q: bad component %q", full, s)
	}
	return n, nil
}

func isQualifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// String formats the version as "major.minor.micro[.qualifier]",
// always emitting all three numeric components.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
	if v.Qualifier != "" {
		s += "." + v.Qualifier
	}
	return s
}

// Compare returns -1, 0 or 1 comparing a to b lexicographically on
// (major, minor, micro, qualifier). An empty qualifier sorts before
// any non-empty qualifier.
func Compare(a, b Version) int {
	if a.Major != b.Major {
		return cmpInt(a.Major, b.Major)
	}
	if a.Minor != b.Minor {
		return cmpInt(a.Minor, b.Minor)
	}
	if a.Micro != b.Micro {
		return cmpInt(a.Micro, b.Micro)
	}
	return cmpQualifier(a.Qualifier, b.Qualifier)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpQualifier(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return -1
	case b == "":
		return 1
	case a < b:
		return -1
	default:
		return 1
	}
}

// Less reports whether a sorts strictly before b.
func Less(a, b Version) bool { return Compare(a, b) < 0 }

// Equal reports whether a and b compare equal on all four components,
// qualifier included.
func Equal(a, b Version) bool { return Compare(a, b) == 0 }
