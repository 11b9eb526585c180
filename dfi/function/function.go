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

// Package function parses the "Name '(' <Type>* ')' <Type>" function
// descriptor grammar (§4.5) into a Function, classifies each argument
// by its am= meta tag, and drives reflective invocation through a
// caller-supplied Go function value standing in for the libffi call
// this port has no cgo binding for.
package function

import (
	"fmt"
	"io"
	"strings"

	"github.com/apache/celix-sub005/dfi/lexer"
	"github.com/apache/celix-sub005/dfi/types"
	"github.com/apache/celix-sub005/errs"
)

// Meta classifies a Function argument by its "am" meta-property.
type Meta int

const (
	// MetaStandard arguments are passed by value (or, for a Text/
	// Complex/Sequence argument, by the pointer the C ABI already
	// requires) and are not written back to by the call.
	MetaStandard Meta = iota
	// MetaHandle arguments carry an opaque service/component handle
	// rather than a value the marshaller should introspect.
	MetaHandle
	// MetaPreAllocatedOutput arguments are a pointer whose pointee the
	// callee fills in; the caller owns and pre-allocates the pointee.
	MetaPreAllocatedOutput
	// MetaOutput arguments are a pointer-to-pointer the callee
	// allocates the pointee of; ownership transfers to the caller.
	MetaOutput
)

func (m Meta) String() string {
	switch m {
	case MetaHandle:
		return "handle"
	case MetaPreAllocatedOutput:
		return "pre-allocated-output"
	case MetaOutput:
		return "output"
	default:
		return "standard"
	}
}

// Argument is one parameter of a Function: its zero-based position,
// an optional name (defaulting to arg0000… when the descriptor
// doesn't supply one via meta), its Type, and its am= classification.
type Argument struct {
	Index int
	Name  string
	Type  *types.Type
	Meta  Meta
}

// Function is a parsed function descriptor: a name, its arguments in
// declaration order, and its return type (void-returning when
// ReturnType.Descriptor() == 'V').
type Function struct {
	Name       string
	Arguments  []Argument
	ReturnType *types.Type
}

// HasReturn reports whether the function returns a value other than
// void.
func (f *Function) HasReturn() bool {
	return f.ReturnType != nil && f.ReturnType.Descriptor() != 'V'
}

// argumentMeta classifies a parsed argument Type from its "am"
// meta-property, defaulting to MetaStandard when unset.
func argumentMeta(t *types.Type) Meta {
	v, ok := t.MetaValue("am")
	if !ok {
		return MetaStandard
	}
	switch v {
	case "handle":
		return MetaHandle
	case "pre":
		return MetaPreAllocatedOutput
	case "out":
		return MetaOutput
	default:
		return MetaStandard
	}
}

// argumentName returns the argument's "name" meta-property if the
// descriptor set one, else the default arg0000… form derived from
// its zero-based index.
func argumentName(t *types.Type, index int) string {
	if v, ok := t.MetaValue("name"); ok {
		return v
	}
	return fmt.Sprintf("arg%04d", index)
}

// Parse parses a function descriptor, e.g. "add(II)I" or
// "lookup(t*lentry;)E".
func Parse(r io.Reader, refPool []*types.Type) (*Function, error) {
	l := lexer.New(r)
	return parse(l, refPool)
}

// ParseString is Parse over a string source.
func ParseString(src string, refPool []*types.Type) (*Function, error) {
	return parse(lexer.NewFromString(src), refPool)
}

func parse(l *lexer.Lexer, refPool []*types.Type) (*Function, error) {
	name, err := l.ParseName("")
	if err != nil {
		return nil, errs.Wrap(errs.ParseError, err, "parsing function name")
	}
	if err := l.Eat('('); err != nil {
		return nil, err
	}

	var args []Argument
	for {
		r, err := l.Peek()
		if err != nil {
			return nil, errs.New(errs.ParseError, "unexpected EOF in argument list")
		}
		if r == ')' {
			break
		}
		at, err := types.ParseFromLexer(l, refPool)
		if err != nil {
			return nil, errs.Wrap(errs.ParseError, err, "parsing argument %d of %q", len(args), name)
		}
		args = append(args, Argument{
			Index: len(args),
			Name:  argumentName(at, len(args)),
			Type:  at,
			Meta:  argumentMeta(at),
		})
	}
	if err := l.Eat(')'); err != nil {
		return nil, err
	}

	ret, err := types.ParseFromLexer(l, refPool)
	if err != nil {
		return nil, errs.Wrap(errs.ParseError, err, "parsing return type of %q", name)
	}

	return &Function{Name: name, Arguments: args, ReturnType: ret}, nil
}

// FunctionName extracts just the name portion of a function
// descriptor, for call-site lookups that don't need the full
// signature parsed (e.g. matching against an Interface's method
// table).
func FunctionName(descriptor string) (string, error) {
	if i := strings.IndexByte(descriptor, '('); i >= 0 {
		return descriptor[:i], nil
	}
	return "", errs.New(errs.ParseError, "malformed function descriptor %q", descriptor)
}
