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

// Package hashmap implements the separately chained, bucket-and-chain
// StringMap and LongMap the DFI engine uses to hold type
// meta-properties and descriptor header/annotation tables. Both share one
// generic core parameterized over the key type; they differ only in
// their hash and equality functions, mirroring the single
// celix_hash_map_t core that celix_string_hash_map and
// celix_long_hash_map both wrap.
package hashmap

const (
	defaultInitialCapacity = 16
	defaultLoadFactor      = 0.75
	maxCapacity            = 1 << 30
)

// Value is the union of value kinds a map entry can hold. Only one
// field is meaningful at a time, selected by how the entry was put.
type Value struct {
	Ptr    interface{}
	Long   int64
	Double float64
	Bool   bool
}

// entry is one bucket-chain node.
type entry[K comparable] struct {
	key   K
	value Value
	hash  uint32
	next  *entry[K]
}

// core is the shared bucket-and-chain implementation. hashFn and
// equalFn let StringMap and LongMap plug in their own key hashing
// while sharing resize, put, get and iteration logic.
type core[K comparable] struct {
	buckets        []*entry[K]
	size           int
	loadFactor     float64
	hashFn         func(K) uint32
	removedSimple  func(Value)
	removedKeyed   func(key K, value Value)
	removedData    interface{}
	onKeyRemovedUD func(ud interface{}, key K, value Value)
}

func newCore[K comparable](initialCapacity int, loadFactor float64, hashFn func(K) uint32) *core[K] {
	if initialCapacity <= 0 {
		initialCapacity = defaultInitialCapacity
	}
	if loadFactor <= 0 {
		loadFactor = defaultLoadFactor
	}
	cap := nextPowerOfTwo(initialCapacity)
	return &core[K]{
		buckets:    make([]*entry[K], cap),
		loadFactor: loadFactor,
		hashFn:     hashFn,
	}
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func indexFor(hash uint32, length int) int {
	return int(hash) & (length - 1)
}

func (c *core[K]) threshold() int {
	return int(float64(len(c.buckets)) * c.loadFactor)
}

func (c *core[K]) getEntry(key K) *entry[K] {
	hash := c.hashFn(key)
	idx := indexFor(hash, len(c.buckets))
	for e := c.buckets[idx]; e != nil; e = e.next {
		if e.hash == hash && e.key == key {
			return e
		}
	}
	return nil
}

// Size returns the number of entries currently stored.
func (c *core[K]) Size() int { return c.size }

func (c *core[K]) resizeIfNeeded() {
	if c.size <= c.threshold() || len(c.buckets) >= maxCapacity {
		return
	}
	newCap := len(c.buckets) * 2
	if newCap > maxCapacity {
		newCap = maxCapacity
	}
	newBuckets := make([]*entry[K], newCap)
	for _, head := range c.buckets {
		for e := head; e != nil; {
			next := e.next
			idx := indexFor(e.hash, newCap)
			e.next = newBuckets[idx]
			newBuckets[idx] = e
			e = next
		}
	}
	c.buckets = newBuckets
}

// put inserts or overwrites key with value, returning the previous
// value and whether the key already existed.
func (c *core[K]) put(key K, value Value) (prev Value, existed bool) {
	hash := c.hashFn(key)
	idx := indexFor(hash, len(c.buckets))
	for e := c.buckets[idx]; e != nil; e = e.next {
		if e.hash == hash && e.key == key {
			prev = e.value
			e.value = value
			return prev, true
		}
	}
	newEntry := &entry[K]{key: key, value: value, hash: hash, next: c.buckets[idx]}
	c.buckets[idx] = newEntry
	c.size++
	c.resizeIfNeeded()
	return Value{}, false
}

func (c *core[K]) get(key K) (Value, bool) {
	if e := c.getEntry(key); e != nil {
		return e.value, true
	}
	return Value{}, false
}

func (c *core[K]) hasKey(key K) bool { return c.getEntry(key) != nil }

func (c *core[K]) fireRemoved(key K, value Value) {
	if c.removedSimple != nil {
		c.removedSimple(value)
	}
	if c.removedKeyed != nil {
		c.removedKeyed(key, value)
	}
}

func (c *core[K]) remove(key K) bool {
	hash := c.hashFn(key)
	idx := indexFor(hash, len(c.buckets))
	var prev *entry[K]
	for e := c.buckets[idx]; e != nil; e = e.next {
		if e.hash == hash && e.key == key {
			if prev == nil {
				c.buckets[idx] = e.next
			} else {
				prev.next = e.next
			}
			c.size--
			c.fireRemoved(key, e.value)
			return true
		}
		prev = e
	}
	return false
}

func (c *core[K]) clear() {
	for idx, head := range c.buckets {
		for e := head; e != nil; e = e.next {
			c.fireRemoved(e.key, e.value)
		}
		c.buckets[idx] = nil
	}
	c.size = 0
}
