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

package types

// Alloc builds a zero-valued Instance of t: zero scalars, an empty
// string, a zero-length sequence, a NULL pointer, and a fully
// recursively allocated Fields tree for a Complex type (matching the
// source's eager-member-allocation behaviour, §4.4.2).
func Alloc(t *Type) *Instance {
	inst := &Instance{Type: t}
	et := effective(t)
	switch et.Kind {
	case KindComplex:
		inst.Fields = make([]*Instance, len(et.Fields))
		for i, f := range et.Fields {
			inst.Fields[i] = Alloc(f.Type)
		}
	}
	return inst
}

// Free releases an instance's owned children. For a Trivial type
// (no reachable pointer, text, or sequence) this is a no-op: the Go
// garbage collector already reclaims plain scalar storage.
//
// A KindTypedPointer owns its pointee: Free deref's and deep-frees it
// before dropping the pointer, so a tree linked entirely by typed
// pointers is fully released by freeing its root.
func Free(inst *Instance) {
	if inst == nil || inst.Type.Trivial {
		return
	}
	et := effective(inst.Type)
	switch et.Kind {
	case KindText:
		inst.Text = ""
		inst.TextNull = true
	case KindComplex:
		for _, f := range inst.Fields {
			Free(f)
		}
		inst.Fields = nil
	case KindSequence:
		for _, e := range inst.Seq {
			Free(e)
		}
		inst.Seq = nil
	case KindTypedPointer:
		Free(inst.Pointee)
		inst.Pointee = nil
	}
}
