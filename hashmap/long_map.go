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

// longHash implements the spec's k ^ (k >> 32) long-key hash.
func longHash(k int64) uint32 {
	u := uint64(k)
	return uint32(u ^ (u >> 32))
}

// LongMapOptions configures a LongMap at construction time. The zero
// value is a valid, usable configuration.
type LongMapOptions struct {
	InitialCapacity      int
	LoadFactor           float64
	RemovedCallback      func(value Value)
	RemovedKeyedCallback func(key int64, value Value)
}

// LongMap is a 64-bit-integer-keyed hash map. See package doc for the
// shared bucket-and-chain contract.
type LongMap struct {
	core *core[int64]
}

// NewLongMap creates a LongMap with the given options.
func NewLongMap(opts LongMapOptions) *LongMap {
	c := newCore[int64](opts.InitialCapacity, opts.LoadFactor, longHash)
	c.removedSimple = opts.RemovedCallback
	c.removedKeyed = func(key int64, value Value) {
		if opts.RemovedKeyedCallback != nil {
			opts.RemovedKeyedCallback(key, value)
		}
	}
	return &LongMap{core: c}
}

// Size returns the number of entries in the map.
func (m *LongMap) Size() int { return m.core.Size() }

// Put inserts or overwrites key with a pointer value, returning the
// previously stored value if key already existed.
func (m *LongMap) Put(key int64, value interface{}) (previous interface{}, replaced bool) {
	prev, existed := m.core.put(key, Value{Ptr: value})
	return prev.Ptr, existed
}

// PutLong inserts or overwrites key with a long value.
func (m *LongMap) PutLong(key, value int64) (replaced bool) {
	_, existed := m.core.put(key, Value{Long: value})
	return existed
}

// PutDouble inserts or overwrites key with a double value.
func (m *LongMap) PutDouble(key int64, value float64) (replaced bool) {
	_, existed := m.core.put(key, Value{Double: value})
	return existed
}

// PutBool inserts or overwrites key with a bool value.
func (m *LongMap) PutBool(key int64, value bool) (replaced bool) {
	_, existed := m.core.put(key, Value{Bool: value})
	return existed
}

// Get returns the pointer value for key, or nil if absent.
func (m *LongMap) Get(key int64) interface{} {
	v, _ := m.core.get(key)
	return v.Ptr
}

// GetLong returns the long value for key, or fallback if absent.
func (m *LongMap) GetLong(key, fallback int64) int64 {
	if v, ok := m.core.get(key); ok {
		return v.Long
	}
	return fallback
}

// GetDouble returns the double value for key, or fallback if absent.
func (m *LongMap) GetDouble(key int64, fallback float64) float64 {
	if v, ok := m.core.get(key); ok {
		return v.Double
	}
	return fallback
}

// GetBool returns the bool value for key, or fallback if absent.
func (m *LongMap) GetBool(key int64, fallback bool) bool {
	if v, ok := m.core.get(key); ok {
		return v.Bool
	}
	return fallback
}

// HasKey reports whether key is present in the map.
func (m *LongMap) HasKey(key int64) bool { return m.core.hasKey(key) }

// Remove removes key, invoking the removed callback if one is
// configured, and reports whether an entry existed.
func (m *LongMap) Remove(key int64) bool { return m.core.remove(key) }

// Clear removes every entry, invoking the removed callback for each.
func (m *LongMap) Clear() { m.core.clear() }

// LongMapIterator yields (index, key, value) triples in bucket-major,
// chain order.
type LongMapIterator struct{ it *iterator[int64] }

// Iterator returns a fresh iterator positioned at the first entry.
func (m *LongMap) Iterator() *LongMapIterator {
	return &LongMapIterator{it: newIterator(m.core)}
}

// IsEnd reports whether the iterator has been exhausted.
func (it *LongMapIterator) IsEnd() bool { return it.it.IsEnd() }

// Key returns the current entry's key.
func (it *LongMapIterator) Key() int64 { return it.it.Key() }

// Value returns the current entry's raw Value union.
func (it *LongMapIterator) Value() Value { return it.it.Value() }

// Index returns the current entry's ordinal in traversal order.
func (it *LongMapIterator) Index() int { return it.it.Index() }

// Next advances to the following entry.
func (it *LongMapIterator) Next() { it.it.Next() }

// Remove removes the current entry and advances to the following one.
func (it *LongMapIterator) Remove() { it.it.Remove() }
