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

// Package celixlog is a small structured logger for boundary
// diagnostics: severity levels, a Logger bound into a context.Context,
// and a default writer to os.Stderr. No DFI package in this module
// imports it; parse and codec operations report failure only through
// errs and a returned error.
package celixlog

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Severity is the level of a log entry, ordered from most to least
// verbose.
type Severity int

const (
	Verbose Severity = iota
	Debug
	Info
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Verbose:
		return "Verbose"
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// Logger emits log entries at or above a configured minimum severity.
type Logger interface {
	Log(severity Severity, format string, args ...interface{})
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(severity Severity, format string, args ...interface{})

func (f LoggerFunc) Log(severity Severity, format string, args ...interface{}) { f(severity, format, args...) }

// writerLogger writes entries at or above Min to W.
type writerLogger struct {
	W   io.Writer
	Min Severity
}

func (l *writerLogger) Log(severity Severity, format string, args ...interface{}) {
	if severity < l.Min {
		return
	}
	fmt.Fprintf(l.W, "[%s] %s\n", severity, fmt.Sprintf(format, args...))
}

// New returns a Logger writing entries at or above min to w.
func New(w io.Writer, min Severity) Logger {
	return &writerLogger{W: w, Min: min}
}

// Default is the package-wide fallback logger: os.Stderr at Warning
// and above.
var Default Logger = New(os.Stderr, Warning)

type contextKey struct{}

// Bind returns a context carrying l, retrievable via From.
func Bind(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// From returns the Logger bound to ctx, or Default if none was bound.
func From(ctx context.Context) Logger {
	if l, ok := ctx.Value(contextKey{}).(Logger); ok {
		return l
	}
	return Default
}

// Debugf logs at Debug severity using the Logger bound to ctx.
func Debugf(ctx context.Context, format string, args ...interface{}) {
	From(ctx).Log(Debug, format, args...)
}

// Warningf logs at Warning severity using the Logger bound to ctx.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	From(ctx).Log(Warning, format, args...)
}
