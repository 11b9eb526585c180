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

// Package lexer implements the character-oriented reader shared by the
// type, function and interface descriptor parsers: a stream with
// one-rune pushback, name parsing, name/value pair parsing, and
// section-header parsing.
package lexer

import (
	"bufio"
	"io"
	"strings"

	"github.com/apache/celix-sub005/errs"
)

// valueAcceptedChars are the extra characters a name/value pair's
// value may contain beyond [A-Za-z0-9_], per spec §4.3.
const valueAcceptedChars = `.<>{}[]?;:~!@#$%^&*()_+-=,./\'"`

// Lexer wraps a byte stream with the pushback and name-parsing helpers
// the descriptor grammar needs.
type Lexer struct {
	r *bufio.Reader
}

// New wraps r in a Lexer.
func New(r io.Reader) *Lexer {
	return &Lexer{r: bufio.NewReader(r)}
}

// NewFromString wraps a string source in a Lexer.
func NewFromString(s string) *Lexer {
	return New(strings.NewReader(s))
}

// Next reads and returns the next rune, or io.EOF.
func (l *Lexer) Next() (rune, error) {
	r, _, err := l.r.ReadRune()
	return r, err
}

// Peek returns the next rune without consuming it.
func (l *Lexer) Peek() (rune, error) {
	r, err := l.Next()
	if err == nil {
		l.pushback()
	}
	return r, err
}

// pushback ungets the last rune read via Next/Peek.
func (l *Lexer) pushback() {
	_ = l.r.UnreadRune()
}

// Eat consumes the next rune and fails if it does not equal expected.
func (l *Lexer) Eat(expected rune) error {
	r, err := l.Next()
	if err != nil {
		return errs.New(errs.ParseError, "expected %q, got EOF", expected)
	}
	if r != expected {
		return errs.New(errs.ParseError, "expected %q, got %q", expected, r)
	}
	return nil
}

// ParseName greedily reads [A-Za-z0-9_] (plus any runes in extra) and
// fails if nothing was read.
func (l *Lexer) ParseName(extra string) (string, error) {
	var sb strings.Builder
	for {
		r, err := l.Next()
		if err != nil {
			break
		}
		if !isNameRune(r, extra) {
			l.pushback()
			break
		}
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return "", errs.New(errs.ParseError, "parsed empty name")
	}
	return sb.String(), nil
}

func isNameRune(r rune, extra string) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	case extra != "" && strings.ContainsRune(extra, r):
		return true
	default:
		return false
	}
}

// ParseNameValue reads "NAME '=' VALUE" where VALUE accepts
// valueAcceptedChars in addition to identifier characters.
func (l *Lexer) ParseNameValue() (name, value string, err error) {
	name, err = l.ParseName("")
	if err != nil {
		return "", "", err
	}
	if err := l.Eat('='); err != nil {
		return "", "", err
	}
	value, err = l.ParseName(valueAcceptedChars)
	if err != nil {
		return "", "", err
	}
	return name, value, nil
}

// ParseSectionHeader reads ":NAME\n" and returns NAME.
func (l *Lexer) ParseSectionHeader() (string, error) {
	if err := l.Eat(':'); err != nil {
		return "", err
	}
	name, err := l.ParseName("")
	if err != nil {
		return "", err
	}
	if err := l.Eat('\n'); err != nil {
		return "", err
	}
	return name, nil
}

// AtEOF reports whether the stream is exhausted.
func (l *Lexer) AtEOF() bool {
	_, err := l.Peek()
	return err != nil
}
