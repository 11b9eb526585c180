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

// nativeIntSize is the size of the platform "native int" (N) and of
// every pointer-shaped field (P, t, *T, L T;). This port targets the
// common 64-bit System-V layout.
const nativeIntSize = 8

// primitiveSizeAlign returns the (size, align) of a Simple Type, per
// §6.1's size-class column. Size and alignment are equal for every
// primitive in this grammar except V (size 0, alignment 1).
func primitiveSizeAlign(p PrimKind) (size, align uintptr) {
	switch p {
	case PrimBool, PrimInt8, PrimUint8:
		return 1, 1
	case PrimInt16, PrimUint16:
		return 2, 2
	case PrimInt32, PrimUint32, PrimEnum:
		return 4, 4
	case PrimInt64, PrimUint64, PrimFloat64:
		return 8, 8
	case PrimFloat32:
		return 4, 4
	case PrimNativeInt, PrimPointer:
		return nativeIntSize, nativeIntSize
	case PrimVoid:
		return 0, 1
	default:
		return 0, 1
	}
}

// alignUp rounds offset up to the next multiple of align.
func alignUp(offset, align uintptr) uintptr {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) / align * align
}

// prepare computes this Type's (size, align, Trivial) and, for Complex
// types, each field's Offset. It must be called after a Type's
// variant-specific fields (Fields, Elem, Target) are fully populated,
// since composite sizes depend on their children's sizes.
//
// The algorithm is the natural (System-V-style) struct layout libffi
// computes: each field is placed at the next offset satisfying its own
// alignment, and the aggregate's size is rounded up to its own
// alignment (the largest member alignment).
func (t *Type) prepare() {
	switch t.Kind {
	case KindSimple:
		t.size, t.align = primitiveSizeAlign(t.Prim)
		t.Trivial = true
	case KindText:
		t.size, t.align = nativeIntSize, nativeIntSize
		t.Trivial = false
	case KindTypedPointer:
		t.size, t.align = nativeIntSize, nativeIntSize
		t.Trivial = false
	case KindSequence:
		// {capacity: u32, length: u32, buf: pointer}
		t.align = nativeIntSize
		t.size = alignUp(8, nativeIntSize) + nativeIntSize
		t.Trivial = false
	case KindComplex:
		var offset, maxAlign uintptr = 0, 1
		trivial := true
		for i := range t.Fields {
			f := &t.Fields[i]
			fa := f.Type.Align()
			offset = alignUp(offset, fa)
			f.Offset = offset
			offset += f.Type.Size()
			if fa > maxAlign {
				maxAlign = fa
			}
			if !f.Type.Trivial {
				trivial = false
			}
		}
		t.align = maxAlign
		t.size = alignUp(offset, maxAlign)
		t.Trivial = trivial
	case KindReference:
		// Size/Align/Trivial delegate to Target via the accessor
		// methods; nothing to precompute here.
		if t.Target != nil {
			t.Trivial = t.Target.Trivial
		}
	}
}
