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

package errs

import "github.com/pkg/errors"

// Kind classifies a failure the way §7 of the DFI design splits error
// handling: parse errors, allocation failures, bad arguments, lifecycle
// violations, I/O failures and wire-format violations all behave the
// same way at the API boundary (a wrapped error plus a pushed trail
// entry) but are distinguishable by callers that care.
type Kind int

const (
	// ParseError denotes a malformed descriptor or unexpected token.
	ParseError Kind = iota
	// Oom denotes a memory allocation failure.
	Oom
	// IllegalArgument denotes invalid caller input.
	IllegalArgument
	// IllegalState denotes an operation invoked in the wrong lifecycle phase.
	IllegalState
	// IoError denotes a container-file I/O failure.
	IoError
	// DecodeError denotes a wire-format violation.
	DecodeError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case Oom:
		return "Oom"
	case IllegalArgument:
		return "IllegalArgument"
	case IllegalState:
		return "IllegalState"
	case IoError:
		return "IoError"
	case DecodeError:
		return "DecodeError"
	default:
		return "Unknown"
	}
}

// Error is a Kind-tagged error that also pushed itself to the calling
// goroutine's trail at the point it was created.
type Error struct {
	Kind Kind
	err  error
}

// Error implements error.
func (e *Error) Error() string { return e.err.Error() }

// Unwrap allows errors.Is/errors.As to see through to the cause.
func (e *Error) Unwrap() error { return e.err }

// New builds a Kind-tagged Error from a message, pushing the message
// to the calling goroutine's trail as a side effect.
func New(kind Kind, format string, args ...interface{}) *Error {
	Push(format, args...)
	return &Error{Kind: kind, err: errors.Errorf(format, args...)}
}

// Wrap annotates err with a Kind and a message, pushing the message to
// the calling goroutine's trail.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	Push(format, args...)
	return &Error{Kind: kind, err: errors.Wrapf(err, format, args...)}
}
