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

package hashmap

// iterator walks a core's entries in bucket-major, chain order. It is
// safe to Remove the current entry and continue traversal because the
// iterator snapshots the next pointer before exposing the current one.
type iterator[K comparable] struct {
	c      *core[K]
	bucket int
	cur    *entry[K]
	next   *entry[K]
	index  int
}

func newIterator[K comparable](c *core[K]) *iterator[K] {
	it := &iterator[K]{c: c, bucket: -1}
	it.advance()
	return it
}

// advance finds the next non-empty bucket position, starting from
// it.next if already primed, otherwise scanning forward from the
// current bucket.
func (it *iterator[K]) advance() {
	if it.next != nil {
		it.cur = it.next
		it.next = it.cur.next
		it.index++
		return
	}
	it.bucket++
	for it.bucket < len(it.c.buckets) {
		if head := it.c.buckets[it.bucket]; head != nil {
			it.cur = head
			it.next = head.next
			it.index++
			return
		}
		it.bucket++
	}
	it.cur = nil
}

// IsEnd reports whether the iterator has exhausted all entries.
func (it *iterator[K]) IsEnd() bool { return it.cur == nil }

// Key returns the current entry's key. Only valid when !IsEnd().
func (it *iterator[K]) Key() K { return it.cur.key }

// Value returns the current entry's value. Only valid when !IsEnd().
func (it *iterator[K]) Value() Value { return it.cur.value }

// Index returns the 0-based ordinal of the current entry in traversal order.
func (it *iterator[K]) Index() int { return it.index - 1 }

// Next advances the iterator to the following entry.
func (it *iterator[K]) Next() {
	if it.cur == nil {
		return
	}
	it.advance()
}

// Remove removes the current entry from the map and advances the
// iterator to the following entry.
func (it *iterator[K]) Remove() {
	if it.cur == nil {
		return
	}
	key := it.cur.key
	it.advance()
	it.c.remove(key)
}
