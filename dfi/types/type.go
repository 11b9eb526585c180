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

// Package types implements the DFI type graph: parsing the compact
// textual descriptor grammar into a Type, computing ABI-compatible
// field layout, and allocating/freeing/introspecting instances of a
// Type.
//
// A Type is represented as a single tagged struct rather than an
// interface hierarchy, mirroring the source's dyn_type tagged union
// directly: a Kind field selects which of the variant-specific fields
// (Prim, Fields, Elem, Target) are meaningful.
package types

import "github.com/apache/celix-sub005/hashmap"

// Kind is the variant tag of a Type, corresponding to §3.1's six
// variants.
type Kind uint8

const (
	KindSimple Kind = iota
	KindText
	KindComplex
	KindSequence
	KindTypedPointer
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "Simple"
	case KindText:
		return "Text"
	case KindComplex:
		return "Complex"
	case KindSequence:
		return "Sequence"
	case KindTypedPointer:
		return "TypedPointer"
	case KindReference:
		return "Reference"
	default:
		return "Unknown"
	}
}

// PrimKind enumerates the primitive scalars a Simple Type can hold.
type PrimKind uint8

const (
	PrimBool PrimKind = iota
	PrimInt8
	PrimUint8
	PrimInt16
	PrimUint16
	PrimInt32
	PrimUint32
	PrimInt64
	PrimUint64
	PrimNativeInt
	PrimFloat32
	PrimFloat64
	PrimPointer
	PrimVoid
	PrimEnum
)

// descriptorForPrim maps a PrimKind back to its §6.1 descriptor char.
var descriptorForPrim = map[PrimKind]byte{
	PrimBool:      'Z',
	PrimInt8:      'B',
	PrimUint8:     'b',
	PrimInt16:     'S',
	PrimUint16:    's',
	PrimInt32:     'I',
	PrimUint32:    'i',
	PrimInt64:     'J',
	PrimUint64:    'j',
	PrimNativeInt: 'N',
	PrimFloat32:   'F',
	PrimFloat64:   'D',
	PrimPointer:   'P',
	PrimVoid:      'V',
	PrimEnum:      'E',
}

// primForDescriptor is the inverse of descriptorForPrim.
var primForDescriptor = func() map[byte]PrimKind {
	m := make(map[byte]PrimKind, len(descriptorForPrim))
	for p, d := range descriptorForPrim {
		m[d] = p
	}
	return m
}()

// Field is one named (or, for trailing fields, unnamed) member of a
// Complex type.
type Field struct {
	Name   string // empty for an unnamed trailing field
	Type   *Type
	Offset uintptr
}

// Type is the tagged value described by §3.1.
type Type struct {
	Kind Kind

	// Name is the optional reference-target name. Set for TypeDef
	// products and for the type handed to Parse's name argument.
	Name string

	// Prim is meaningful when Kind == KindSimple.
	Prim PrimKind

	// Fields is meaningful when Kind == KindComplex.
	Fields []Field

	// Elem is the element/pointee type: sequence item type when
	// Kind == KindSequence, pointee when Kind == KindTypedPointer.
	Elem *Type

	// TargetName is the unresolved symbol name for a KindReference
	// Type; Target is the resolved Type it was found to name.
	TargetName string
	Target     *Type

	// Parent is this Type's lexically enclosing Type, used to walk
	// upward during reference resolution. Nil at the root.
	Parent *Type

	// Nested holds the TypeDef entries declared directly within this
	// Type's own production (leading and trailing). Leading entries are
	// reference targets while this Type's body is parsed; trailing ones
	// are visible only to the trailing TypeDefs after them.
	Nested []*Type

	// Meta holds this Type's #name=value; meta-properties (enum
	// symbol tables, argument-meta tags, etc).
	Meta *hashmap.StringMap

	// Trivial is true when no owning pointer, text or sequence is
	// reachable from this Type, meaning an instance can be bit-copied
	// without a recursive free.
	Trivial bool

	size, align uintptr
}

func newType(kind Kind) *Type {
	return &Type{Kind: kind, Meta: hashmap.NewStringMap(hashmap.StringMapOptions{})}
}

// Descriptor returns the single descriptor character for this Type,
// per §6.1's table.
func (t *Type) Descriptor() byte {
	switch t.Kind {
	case KindSimple:
		return descriptorForPrim[t.Prim]
	case KindText:
		return 't'
	case KindComplex:
		return '{'
	case KindSequence:
		return '['
	case KindTypedPointer:
		return '*'
	case KindReference:
		return 'l'
	default:
		return 0
	}
}

// Size returns the in-memory image size of this Type, matching the
// platform struct layout an equivalent C declaration would have.
func (t *Type) Size() uintptr {
	if t.Kind == KindReference && t.Target != nil {
		return t.Target.Size()
	}
	return t.size
}

// Align returns this Type's required alignment.
func (t *Type) Align() uintptr {
	if t.Kind == KindReference && t.Target != nil {
		return t.Target.Align()
	}
	return t.align
}

// MetaValue returns the value of a meta-property, or "" if unset.
func (t *Type) MetaValue(name string) (string, bool) {
	v := t.Meta.Get(name)
	if v == nil {
		return "", false
	}
	return v.(string), true
}

// SetMeta sets a meta-property.
func (t *Type) SetMeta(name, value string) {
	t.Meta.Put(name, value)
}
