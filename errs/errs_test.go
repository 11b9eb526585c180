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

package errs_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/celix-sub005/errs"
)

func TestPushPopLast(t *testing.T) {
	errs.Reset()
	errs.Push("first %d", 1)
	errs.Push("second %d", 2)
	require.Equal(t, 2, errs.Count())

	msg, ok := errs.PopLast()
	require.True(t, ok)
	assert.Equal(t, "second 2", msg)
	assert.Equal(t, 1, errs.Count())
}

func TestIterateDoesNotConsume(t *testing.T) {
	errs.Reset()
	errs.Push("a")
	errs.Push("b")

	var seen []string
	errs.Iterate(func(msg string) { seen = append(seen, msg) })
	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Equal(t, 2, errs.Count())
}

func TestResetEmpty(t *testing.T) {
	errs.Reset()
	errs.Push("x")
	errs.Reset()
	assert.Equal(t, 0, errs.Count())
	_, ok := errs.PopLast()
	assert.False(t, ok)
}

func TestPerGoroutineIsolation(t *testing.T) {
	errs.Reset()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs.Reset()
			errs.Push("goroutine %d", n)
			require.Equal(t, 1, errs.Count())
		}(i)
	}
	wg.Wait()
	// The trail on this (the test) goroutine is unaffected by the others.
	assert.Equal(t, 0, errs.Count())
}

func TestOverflowTruncatesOldest(t *testing.T) {
	errs.Reset()
	for i := 0; i < 100; i++ {
		errs.Push("msg %d", i)
	}
	assert.Equal(t, 64, errs.Count())
	msg, ok := errs.PopLast()
	require.True(t, ok)
	assert.Equal(t, "msg 99", msg)
}
