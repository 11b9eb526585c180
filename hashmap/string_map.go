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

// stringHash is the FNV-1a 32-bit hash used for string keys.
func stringHash(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// StringMapOptions configures a StringMap at construction time. The
// zero value is a valid, usable configuration.
type StringMapOptions struct {
	InitialCapacity int
	LoadFactor      float64
	// RemovedCallback, if set, is invoked for every entry removed via
	// Remove, Clear or iterator Remove. StringMap has no destroy
	// operation, so entries still present are not reported.
	RemovedCallback func(value Value)
	// RemovedKeyedCallback, if set, additionally receives the key of
	// the removed entry.
	RemovedKeyedCallback func(key string, value Value)
	// StoreKeysWeakly, when true, stores the caller's string value
	// directly instead of defensively copying it. Go strings are
	// immutable, so this only affects documentation intent, not
	// behavior: unlike the C implementation there is no separate key
	// buffer to free either way.
	StoreKeysWeakly bool
}

// StringMap is a string-keyed hash map. See package doc for the shared
// bucket-and-chain contract.
type StringMap struct {
	core *core[string]
}

// NewStringMap creates a StringMap with the given options.
func NewStringMap(opts StringMapOptions) *StringMap {
	c := newCore[string](opts.InitialCapacity, opts.LoadFactor, stringHash)
	c.removedSimple = opts.RemovedCallback
	c.removedKeyed = func(key string, value Value) {
		if opts.RemovedKeyedCallback != nil {
			opts.RemovedKeyedCallback(key, value)
		}
	}
	return &StringMap{core: c}
}

// Size returns the number of entries in the map.
func (m *StringMap) Size() int { return m.core.Size() }

// Put inserts or overwrites key with a pointer value, returning the
// previously stored value if key already existed.
func (m *StringMap) Put(key string, value interface{}) (previous interface{}, replaced bool) {
	prev, existed := m.core.put(key, Value{Ptr: value})
	return prev.Ptr, existed
}

// PutLong inserts or overwrites key with a long value.
func (m *StringMap) PutLong(key string, value int64) (replaced bool) {
	_, existed := m.core.put(key, Value{Long: value})
	return existed
}

// PutDouble inserts or overwrites key with a double value.
func (m *StringMap) PutDouble(key string, value float64) (replaced bool) {
	_, existed := m.core.put(key, Value{Double: value})
	return existed
}

// PutBool inserts or overwrites key with a bool value.
func (m *StringMap) PutBool(key string, value bool) (replaced bool) {
	_, existed := m.core.put(key, Value{Bool: value})
	return existed
}

// Get returns the pointer value for key, or nil if absent.
func (m *StringMap) Get(key string) interface{} {
	v, _ := m.core.get(key)
	return v.Ptr
}

// GetLong returns the long value for key, or fallback if absent.
func (m *StringMap) GetLong(key string, fallback int64) int64 {
	if v, ok := m.core.get(key); ok {
		return v.Long
	}
	return fallback
}

// GetDouble returns the double value for key, or fallback if absent.
func (m *StringMap) GetDouble(key string, fallback float64) float64 {
	if v, ok := m.core.get(key); ok {
		return v.Double
	}
	return fallback
}

// GetBool returns the bool value for key, or fallback if absent.
func (m *StringMap) GetBool(key string, fallback bool) bool {
	if v, ok := m.core.get(key); ok {
		return v.Bool
	}
	return fallback
}

// HasKey reports whether key is present in the map.
func (m *StringMap) HasKey(key string) bool { return m.core.hasKey(key) }

// Remove removes key, invoking the removed callback if one is
// configured, and reports whether an entry existed.
func (m *StringMap) Remove(key string) bool { return m.core.remove(key) }

// Clear removes every entry, invoking the removed callback for each.
func (m *StringMap) Clear() { m.core.clear() }

// StringMapIterator yields (index, key, value) triples in bucket-major,
// chain order.
type StringMapIterator struct{ it *iterator[string] }

// Iterator returns a fresh iterator positioned at the first entry.
func (m *StringMap) Iterator() *StringMapIterator {
	return &StringMapIterator{it: newIterator(m.core)}
}

// IsEnd reports whether the iterator has been exhausted.
func (it *StringMapIterator) IsEnd() bool { return it.it.IsEnd() }

// Key returns the current entry's key.
func (it *StringMapIterator) Key() string { return it.it.Key() }

// Value returns the current entry's raw Value union.
func (it *StringMapIterator) Value() Value { return it.it.Value() }

// Index returns the current entry's ordinal in traversal order.
func (it *StringMapIterator) Index() int { return it.it.Index() }

// Next advances to the following entry.
func (it *StringMapIterator) Next() { it.it.Next() }

// Remove removes the current entry and advances to the following one.
func (it *StringMapIterator) Remove() { it.it.Remove() }
