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

// Package iface parses the section-based Interface and Message
// descriptor file format (§4.6/§6.2): a header, an annotations table,
// a shared pool of named types, and either a method table (Interface)
// or a single payload type (Message).
package iface

import (
	"bufio"
	"io"
	"strings"

	"github.com/apache/celix-sub005/dfi/function"
	"github.com/apache/celix-sub005/dfi/lexer"
	"github.com/apache/celix-sub005/dfi/types"
	"github.com/apache/celix-sub005/errs"
	"github.com/apache/celix-sub005/hashmap"
	"github.com/apache/celix-sub005/version"
)

// Method is one entry of an Interface's method table: its source-order
// Index, its raw service-ID string (stored and looked up verbatim),
// and its parsed Function, whose return descriptor is guaranteed 'N'.
type Method struct {
	Index    int
	ID       string
	Function *function.Function
}

// Interface is a parsed Interface descriptor.
type Interface struct {
	Name          string
	Version       version.Version
	VersionString string
	Annotations   *hashmap.StringMap
	Types         []*types.Type
	Methods       []Method

	methodByID map[string]*Method
}

// FindMethod looks up a method by its verbatim id string.
func (i *Interface) FindMethod(id string) (*Method, bool) {
	m, ok := i.methodByID[id]
	return m, ok
}

// Message is a parsed Message descriptor.
type Message struct {
	Name          string
	Version       version.Version
	VersionString string
	Annotations   *hashmap.StringMap
	Types         []*types.Type
	Payload       *types.Type
}

// sections holds the line-oriented content of a descriptor file,
// keyed by section name, in section-declaration order.
type sections struct {
	order   []string
	byName  map[string][]string
}

func (s *sections) lines(name string) []string { return s.byName[name] }

// readSections splits a descriptor file into its ":name\n"-delimited
// sections, lexing each header line through ParseSectionHeader. A bare
// ":\n" line (empty name) ends the file. Section bodies (type,
// function, and message descriptors, whose charset ParseNameValue
// doesn't cover — field name lists contain spaces) are kept as raw
// lines for the types/function parsers to lex independently; only the
// restricted-charset header/annotations lines go through
// ParseNameValue, in parseNameValueLines below.
func readSections(r io.Reader) (*sections, error) {
	s := &sections{byName: map[string][]string{}}
	sc := bufio.NewScanner(r)
	current := ""
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if line == ":" {
				break
			}
			name, err := lexer.NewFromString(line + "\n").ParseSectionHeader()
			if err != nil {
				return nil, errs.Wrap(errs.ParseError, err, "malformed section header %q", line)
			}
			if _, ok := s.byName[name]; !ok {
				s.order = append(s.order, name)
				s.byName[name] = []string{}
			}
			current = name
			continue
		}
		if current == "" {
			return nil, errs.New(errs.ParseError, "content before first section header: %q", line)
		}
		s.byName[current] = append(s.byName[current], line)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.Wrap(errs.IoError, err, "reading descriptor")
	}
	return s, nil
}

// parseNameValueLines builds a StringMap from "key=value" lines,
// reusing the hash map this module already built (§3.4) rather than a
// bare Go map, so header and annotation storage stays uniform with the
// meta-property maps dfi/types attaches to Simple and Complex types.
// Each line is lexed through ParseNameValue rather than a manual
// split, since header/annotation values are exactly the
// restricted-charset values that helper is for.
func parseNameValueLines(lines []string) (*hashmap.StringMap, error) {
	m := hashmap.NewStringMap(hashmap.StringMapOptions{})
	for _, l := range lines {
		name, value, err := lexer.NewFromString(l).ParseNameValue()
		if err != nil {
			return nil, errs.Wrap(errs.ParseError, err, "malformed name=value line %q", l)
		}
		m.Put(name, value)
	}
	return m, nil
}

func stringMapGet(m *hashmap.StringMap, key string) (string, bool) {
	v := m.Get(key)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func requireHeader(header *hashmap.StringMap) (name, typ, ver string, err error) {
	name, ok := stringMapGet(header, "name")
	if !ok {
		return "", "", "", errs.New(errs.ParseError, "descriptor header missing required key \"name\"")
	}
	typ, ok = stringMapGet(header, "type")
	if !ok {
		return "", "", "", errs.New(errs.ParseError, "descriptor header missing required key \"type\"")
	}
	ver, ok = stringMapGet(header, "version")
	if !ok {
		return "", "", "", errs.New(errs.ParseError, "descriptor header missing required key \"version\"")
	}
	return name, typ, ver, nil
}

// parseTypesSection parses "Name=<Type>;" lines, accumulating each
// parsed Type into the pool visible to subsequent lines so later
// entries can reference earlier ones.
func parseTypesSection(lines []string) ([]*types.Type, error) {
	var pool []*types.Type
	for _, l := range lines {
		i := strings.IndexByte(l, '=')
		if i < 0 {
			return nil, errs.New(errs.ParseError, "malformed types line %q", l)
		}
		name := l[:i]
		body := strings.TrimSuffix(l[i+1:], ";")
		t, err := types.ParseString(body, name, pool)
		if err != nil {
			return nil, errs.Wrap(errs.ParseError, err, "parsing type %q", name)
		}
		pool = append(pool, t)
	}
	return pool, nil
}

// ParseInterface parses an Interface descriptor file from r.
func ParseInterface(r io.Reader) (*Interface, error) {
	sec, err := readSections(r)
	if err != nil {
		return nil, err
	}
	for _, required := range []string{"header", "types", "methods"} {
		if _, ok := sec.byName[required]; !ok {
			return nil, errs.New(errs.ParseError, "interface descriptor missing required section %q", required)
		}
	}

	header, err := parseNameValueLines(sec.lines("header"))
	if err != nil {
		return nil, err
	}
	name, _, verStr, err := requireHeader(header)
	if err != nil {
		return nil, err
	}
	ver, err := version.Parse(verStr)
	if err != nil {
		return nil, errs.Wrap(errs.ParseError, err, "interface %q header version", name)
	}
	annotations, err := parseNameValueLines(sec.lines("annotations"))
	if err != nil {
		return nil, err
	}

	pool, err := parseTypesSection(sec.lines("types"))
	if err != nil {
		return nil, err
	}

	var methods []Method
	methodByID := map[string]*Method{}
	for idx, l := range sec.lines("methods") {
		i := strings.IndexByte(l, '=')
		if i < 0 {
			return nil, errs.New(errs.ParseError, "malformed method line %q", l)
		}
		id := l[:i]
		fn, err := function.ParseString(l[i+1:], pool)
		if err != nil {
			return nil, errs.Wrap(errs.ParseError, err, "parsing method %q", id)
		}
		if fn.ReturnType.Descriptor() != 'N' {
			return nil, errs.New(errs.ParseError, "method %q must return native int (N), got %q", id, fn.ReturnType.Descriptor())
		}
		methods = append(methods, Method{Index: idx, ID: id, Function: fn})
	}
	for i := range methods {
		methodByID[methods[i].ID] = &methods[i]
	}

	return &Interface{
		Name:          name,
		Version:       ver,
		VersionString: verStr,
		Annotations:   annotations,
		Types:         pool,
		Methods:       methods,
		methodByID:    methodByID,
	}, nil
}

// ParseMessage parses a Message descriptor file from r.
func ParseMessage(r io.Reader) (*Message, error) {
	sec, err := readSections(r)
	if err != nil {
		return nil, err
	}
	for _, required := range []string{"header", "message"} {
		if _, ok := sec.byName[required]; !ok {
			return nil, errs.New(errs.ParseError, "message descriptor missing required section %q", required)
		}
	}

	header, err := parseNameValueLines(sec.lines("header"))
	if err != nil {
		return nil, err
	}
	name, _, verStr, err := requireHeader(header)
	if err != nil {
		return nil, err
	}
	ver, err := version.Parse(verStr)
	if err != nil {
		return nil, errs.Wrap(errs.ParseError, err, "message %q header version", name)
	}
	annotations, err := parseNameValueLines(sec.lines("annotations"))
	if err != nil {
		return nil, err
	}

	pool, err := parseTypesSection(sec.lines("types"))
	if err != nil {
		return nil, err
	}

	msgLines := sec.lines("message")
	if len(msgLines) != 1 {
		return nil, errs.New(errs.ParseError, "message section must contain exactly one type, got %d lines", len(msgLines))
	}
	payload, err := types.ParseString(strings.TrimSuffix(msgLines[0], ";"), name, pool)
	if err != nil {
		return nil, errs.Wrap(errs.ParseError, err, "parsing message payload")
	}

	return &Message{
		Name:          name,
		Version:       ver,
		VersionString: verStr,
		Annotations:   annotations,
		Types:         pool,
		Payload:       payload,
	}, nil
}
