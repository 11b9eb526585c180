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

// Package errs implements the per-goroutine error trail that backs every
// fallible DFI operation. It mirrors celix_err: a bounded LIFO of
// messages, one per goroutine, that failing calls push to and that
// callers may drain for diagnostics without threading an error value
// through every return path.
package errs

import (
	"fmt"

	"github.com/timandy/routine"
)

// maxEntries bounds the per-goroutine buffer; the oldest message is
// dropped once the bound is exceeded, matching the fixed-size buffer
// the C implementation uses per thread.
const maxEntries = 64

var local = routine.NewThreadLocalWithInitial(func() interface{} {
	return &buffer{}
})

// buffer is the LIFO storage for a single goroutine. It is only ever
// accessed by the goroutine it belongs to, so it needs no locking.
type buffer struct {
	entries []string
}

func bufferFor() *buffer {
	return local.Get().(*buffer)
}

// Push formats a message and appends it to the calling goroutine's
// error trail. The oldest entry is dropped once the trail grows past
// maxEntries.
func Push(format string, args ...interface{}) {
	b := bufferFor()
	b.entries = append(b.entries, fmt.Sprintf(format, args...))
	if len(b.entries) > maxEntries {
		b.entries = b.entries[len(b.entries)-maxEntries:]
	}
}

// PopLast removes and returns the most recently pushed message for the
// calling goroutine. ok is false if the trail is empty.
func PopLast() (msg string, ok bool) {
	b := bufferFor()
	n := len(b.entries)
	if n == 0 {
		return "", false
	}
	msg = b.entries[n-1]
	b.entries = b.entries[:n-1]
	return msg, true
}

// Iterate calls fn for every message currently in the calling
// goroutine's trail, oldest first, without consuming them.
func Iterate(fn func(msg string)) {
	b := bufferFor()
	for _, msg := range b.entries {
		fn(msg)
	}
}

// Reset discards all messages in the calling goroutine's trail.
func Reset() {
	bufferFor().entries = nil
}

// Count returns the number of messages currently in the calling
// goroutine's trail.
func Count() int {
	return len(bufferFor().entries)
}
