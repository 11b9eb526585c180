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

// Instance is an in-memory value shaped by a Type. Rather than a raw
// []byte manipulated through unsafe.Pointer and Type.Size()/Field.Offset
// arithmetic (the direct C-ABI equivalent), an Instance is a parallel
// tagged tree: one Go value per Type node. This gives Alloc/Free/
// introspection memory safety for free, at the cost of Offset being
// informational only (used by Print and by codecs that want to report
// ABI-faithful layout) rather than load-bearing for field access.
type Instance struct {
	Type *Type

	// Scalar storage for KindSimple. Only the field matching Type.Prim
	// is meaningful.
	Bool    bool
	Int     int64
	Uint    uint64
	Float32 float32
	Float64 float64

	// Text storage for KindText. TextNull distinguishes a null text
	// pointer (JSON null) from an allocated empty string.
	Text     string
	TextNull bool

	// Fields holds one Instance per Type.Fields entry, for KindComplex.
	Fields []*Instance

	// Seq holds the live elements of a KindSequence instance. The JSON
	// decoder allocates it at its exact known capacity (see
	// SequenceReserve); the AVRO decoder appends to it block by block
	// and leaves growth to append.
	Seq []*Instance

	// Pointee is the pointed-to Instance for KindTypedPointer, or nil
	// for a not-yet-allocated (NULL) pointer.
	Pointee *Instance
}

// effective follows Kind == KindReference links to the Type that
// actually determines storage shape.
func effective(t *Type) *Type {
	for t.Kind == KindReference && t.Target != nil {
		t = t.Target
	}
	return t
}

// Resolve follows Kind == KindReference links and returns the Type
// that actually determines storage shape, for callers outside this
// package (codecs, printers) that need to dispatch on structural
// Kind rather than the nominal reference.
func Resolve(t *Type) *Type { return effective(t) }

// Descriptor returns the descriptor character of the effective
// (reference-resolved) Type backing this instance.
func (inst *Instance) Descriptor() byte {
	return effective(inst.Type).Descriptor()
}
