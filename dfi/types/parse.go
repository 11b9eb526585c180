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

package types

import (
	"io"

	"github.com/apache/celix-sub005/dfi/lexer"
	"github.com/apache/celix-sub005/errs"
)

// scope is a stack of lexically-nested TypeDef name tables, used to
// resolve 'l'/'L' references. Each parseType call pushes one level
// before reading its own leading TypeDef* and pops it on return; a
// TypeDef is declared into its level before its own body is parsed,
// so a TypeDef may reference itself or an already-declared sibling.
// A fixed external pool (e.g. an Interface's shared :types section)
// is consulted last.
type scope struct {
	levels [][]*Type
	pool   []*Type
}

func newScope(pool []*Type) *scope {
	return &scope{pool: pool}
}

func (s *scope) push()       { s.levels = append(s.levels, nil) }
func (s *scope) pop()        { s.levels = s.levels[:len(s.levels)-1] }
func (s *scope) declare(t *Type) {
	i := len(s.levels) - 1
	s.levels[i] = append(s.levels[i], t)
}

func (s *scope) resolve(name string) *Type {
	for i := len(s.levels) - 1; i >= 0; i-- {
		for _, t := range s.levels[i] {
			if t.Name == name {
				return t
			}
		}
	}
	for _, t := range s.pool {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Parse parses a type descriptor from r. name, if non-empty, is set on
// the resulting Type so it can itself be used as a reference target.
// refPool supplies additional named types resolvable from this
// parse (e.g. an Interface's shared :types section).
func Parse(r io.Reader, name string, refPool []*Type) (*Type, error) {
	return parseTop(lexer.New(r), name, refPool)
}

// ParseString is Parse over a string source.
func ParseString(src string, name string, refPool []*Type) (*Type, error) {
	return parseTop(lexer.NewFromString(src), name, refPool)
}

func parseTop(l *lexer.Lexer, name string, refPool []*Type) (*Type, error) {
	sc := newScope(refPool)
	t, err := parseType(l, nil, sc)
	if err != nil {
		return nil, err
	}
	if name != "" {
		t.Name = name
	}
	return t, nil
}

// ParseFromLexer parses one Type production starting at l's current
// position, without assuming l is positioned at the start of its own
// stream. This lets callers that share a single descriptor-wide lexer
// across several productions — the function and interface/message
// parsers, which read a name, an argument list and a return type off
// one underlying stream — parse each Type in turn without having to
// re-lex from a fresh string per production.
func ParseFromLexer(l *lexer.Lexer, refPool []*Type) (*Type, error) {
	sc := newScope(refPool)
	return parseType(l, nil, sc)
}

// parseType parses one Type production: TypeDef* Meta* Body TypeDef*,
// per §6.1. parent is the enclosing Type (nil at the root).
func parseType(l *lexer.Lexer, parent *Type, sc *scope) (*Type, error) {
	sc.push()
	defer sc.pop()

	var nested []*Type
	var metas [][2]string

	for {
		r, err := l.Peek()
		if err != nil {
			break
		}
		if r != 'T' && r != '#' {
			break
		}
		if r == 'T' {
			def, err := parseTypeDef(l, parent, sc)
			if err != nil {
				return nil, err
			}
			nested = append(nested, def)
		} else {
			name, value, err := parseMeta(l)
			if err != nil {
				return nil, err
			}
			metas = append(metas, [2]string{name, value})
		}
	}

	r, err := l.Next()
	if err != nil {
		return nil, errs.New(errs.ParseError, "unexpected EOF parsing type body")
	}

	var t *Type
	switch r {
	case 'Z', 'B', 'b', 'S', 's', 'I', 'i', 'J', 'j', 'N', 'F', 'D', 'P', 'V':
		t = newType(KindSimple)
		t.Prim = primForDescriptor[byte(r)]
	case 'E':
		t = newType(KindSimple)
		t.Prim = PrimEnum
	case 't':
		t = newType(KindText)
	case '{':
		t, err = parseComplex(l, sc)
	case '[':
		t, err = parseSequence(l, sc)
	case '*':
		t, err = parseTypedPointer(l, sc)
	case 'L':
		t, err = parseNamedPointer(l, sc)
	case 'l':
		t, err = parseReference(l, sc)
	default:
		return nil, errs.New(errs.ParseError, "unexpected descriptor character %q", r)
	}
	if err != nil {
		return nil, err
	}

	t.Parent = parent
	for _, n := range nested {
		n.Parent = t
	}

	// Trailing TypeDef* (no trailing Meta* per the grammar).
	for {
		r, err := l.Peek()
		if err != nil {
			break
		}
		if r != 'T' {
			break
		}
		def, err := parseTypeDef(l, t, sc)
		if err != nil {
			return nil, err
		}
		nested = append(nested, def)
	}

	t.Nested = nested
	for _, m := range metas {
		t.SetMeta(m[0], m[1])
	}

	t.prepare()
	return t, nil
}

// parseTypeDef parses 'T' NAME '=' Type ';'. The definition's name is
// declared into sc before its body is parsed, and a stub Type of
// stable identity is returned so any self- or sibling-reference
// resolved during the body's parse keeps pointing at the same object
// once the body is folded into it.
func parseTypeDef(l *lexer.Lexer, parent *Type, sc *scope) (*Type, error) {
	if err := l.Eat('T'); err != nil {
		return nil, err
	}
	name, err := l.ParseName("")
	if err != nil {
		return nil, err
	}
	if err := l.Eat('='); err != nil {
		return nil, err
	}

	stub := newType(KindSimple)
	stub.Name = name
	stub.Parent = parent
	sc.declare(stub)

	body, err := parseType(l, parent, sc)
	if err != nil {
		return nil, err
	}
	if err := l.Eat(';'); err != nil {
		return nil, err
	}

	*stub = *body
	stub.Name = name
	for i := range stub.Fields {
		if stub.Fields[i].Type.Parent == body {
			stub.Fields[i].Type.Parent = stub
		}
	}
	if stub.Elem != nil && stub.Elem.Parent == body {
		stub.Elem.Parent = stub
	}
	for _, n := range stub.Nested {
		if n.Parent == body {
			n.Parent = stub
		}
	}
	return stub, nil
}

// parseMeta parses '#' NAME '=' NAME ';'.
func parseMeta(l *lexer.Lexer) (name, value string, err error) {
	if err := l.Eat('#'); err != nil {
		return "", "", err
	}
	name, err = l.ParseName("")
	if err != nil {
		return "", "", err
	}
	if err := l.Eat('='); err != nil {
		return "", "", err
	}
	value, err = l.ParseName("")
	if err != nil {
		return "", "", err
	}
	if err := l.Eat(';'); err != nil {
		return "", "", err
	}
	return name, value, nil
}

// parseComplex parses the remainder of '{' Type+ ( ' ' NAME )* '}'.
func parseComplex(l *lexer.Lexer, sc *scope) (*Type, error) {
	t := newType(KindComplex)
	var fieldTypes []*Type
	for {
		r, err := l.Peek()
		if err != nil {
			return nil, errs.New(errs.ParseError, "unexpected EOF parsing complex type")
		}
		if r == ' ' || r == '}' {
			break
		}
		ft, err := parseType(l, t, sc)
		if err != nil {
			return nil, err
		}
		fieldTypes = append(fieldTypes, ft)
	}
	if len(fieldTypes) == 0 {
		return nil, errs.New(errs.ParseError, "complex type requires at least one field")
	}

	var names []string
	for {
		r, err := l.Peek()
		if err != nil {
			return nil, errs.New(errs.ParseError, "unexpected EOF parsing complex field names")
		}
		if r == '}' {
			break
		}
		if err := l.Eat(' '); err != nil {
			return nil, err
		}
		name, err := l.ParseName("")
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := l.Eat('}'); err != nil {
		return nil, err
	}
	if len(names) > len(fieldTypes) {
		return nil, errs.New(errs.ParseError, "more field names (%d) than fields (%d)", len(names), len(fieldTypes))
	}

	t.Fields = make([]Field, len(fieldTypes))
	for i, ft := range fieldTypes {
		f := Field{Type: ft}
		if i < len(names) {
			f.Name = names[i]
		}
		t.Fields[i] = f
	}
	return t, nil
}

func parseSequence(l *lexer.Lexer, sc *scope) (*Type, error) {
	t := newType(KindSequence)
	elem, err := parseType(l, t, sc)
	if err != nil {
		return nil, err
	}
	t.Elem = elem
	return t, nil
}

func parseTypedPointer(l *lexer.Lexer, sc *scope) (*Type, error) {
	t := newType(KindTypedPointer)
	elem, err := parseType(l, t, sc)
	if err != nil {
		return nil, err
	}
	t.Elem = elem
	return t, nil
}

// parseReference parses 'l' NAME ';', the by-value reference form.
func parseReference(l *lexer.Lexer, sc *scope) (*Type, error) {
	name, err := l.ParseName("")
	if err != nil {
		return nil, err
	}
	if err := l.Eat(';'); err != nil {
		return nil, err
	}
	t := newType(KindReference)
	t.TargetName = name
	t.Target = sc.resolve(name)
	if t.Target == nil {
		return nil, errs.New(errs.ParseError, "unresolved reference %q", name)
	}
	return t, nil
}

// parseNamedPointer parses 'L' NAME ';', sugar for '*' 'l' NAME ';'.
func parseNamedPointer(l *lexer.Lexer, sc *scope) (*Type, error) {
	name, err := l.ParseName("")
	if err != nil {
		return nil, err
	}
	if err := l.Eat(';'); err != nil {
		return nil, err
	}
	ref := newType(KindReference)
	ref.TargetName = name
	ref.Target = sc.resolve(name)
	if ref.Target == nil {
		return nil, errs.New(errs.ParseError, "unresolved reference %q", name)
	}
	ptr := newType(KindTypedPointer)
	ptr.Elem = ref
	ref.Parent = ptr
	ref.prepare()
	return ptr, nil
}
