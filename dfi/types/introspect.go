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

import "github.com/apache/celix-sub005/errs"

// FieldCount returns the number of fields of a Complex type.
func (t *Type) FieldCount() int {
	return len(effective(t).Fields)
}

// FieldIndex looks up a Complex field by name, per §4.4.3.
func (t *Type) FieldIndex(name string) (int, error) {
	for i, f := range effective(t).Fields {
		if f.Name == name {
			return i, nil
		}
	}
	return -1, errs.New(errs.IllegalArgument, "no such field %q", name)
}

// FieldTypeAt returns the Type of the i'th field of a Complex type.
func (t *Type) FieldTypeAt(i int) (*Type, error) {
	fs := effective(t).Fields
	if i < 0 || i >= len(fs) {
		return nil, errs.New(errs.IllegalArgument, "field index %d out of range", i)
	}
	return fs[i].Type, nil
}

// FieldValueLocAt returns the sub-instance holding the i'th field's
// value.
func (inst *Instance) FieldValueLocAt(i int) (*Instance, error) {
	if et := effective(inst.Type); et.Kind != KindComplex {
		return nil, errs.New(errs.IllegalArgument, "not a complex instance")
	}
	if i < 0 || i >= len(inst.Fields) {
		return nil, errs.New(errs.IllegalArgument, "field index %d out of range", i)
	}
	return inst.Fields[i], nil
}

// SequenceReserve allocates a sequence's backing storage at its exact
// known element count, for callers that know the count before the
// elements (the JSON decoder, which sees the whole array). After it,
// SequenceIncreaseLength refuses to grow past that count.
func (inst *Instance) SequenceReserve(n int) error {
	et := effective(inst.Type)
	if et.Kind != KindSequence {
		return errs.New(errs.IllegalArgument, "not a sequence instance")
	}
	inst.Seq = make([]*Instance, 0, n)
	return nil
}

// SequenceLength returns the number of live elements.
func (inst *Instance) SequenceLength() int {
	return len(inst.Seq)
}

// SequenceLocForIndex returns the element at index i.
func (inst *Instance) SequenceLocForIndex(i int) (*Instance, error) {
	if i < 0 || i >= len(inst.Seq) {
		return nil, errs.New(errs.IllegalArgument, "sequence index %d out of range", i)
	}
	return inst.Seq[i], nil
}

// SequenceIncreaseLength appends one freshly allocated element of the
// sequence's element type and returns it, for a decoder to fill in.
func (inst *Instance) SequenceIncreaseLength() (*Instance, error) {
	et := effective(inst.Type)
	if et.Kind != KindSequence {
		return nil, errs.New(errs.IllegalArgument, "not a sequence instance")
	}
	if len(inst.Seq) == cap(inst.Seq) {
		return nil, errs.New(errs.IllegalState, "sequence at reserved capacity %d", cap(inst.Seq))
	}
	e := Alloc(et.Elem)
	inst.Seq = append(inst.Seq, e)
	return e, nil
}

// TypedPointee returns the pointee instance, allocating it on first
// use if the pointer is currently NULL.
func (inst *Instance) TypedPointee() (*Instance, error) {
	et := effective(inst.Type)
	if et.Kind != KindTypedPointer {
		return nil, errs.New(errs.IllegalArgument, "not a typed-pointer instance")
	}
	if inst.Pointee == nil {
		inst.Pointee = Alloc(et.Elem)
	}
	return inst.Pointee, nil
}

// TextInit sets a KindText instance's string value.
func (inst *Instance) TextInit(s string) error {
	if et := effective(inst.Type); et.Kind != KindText {
		return errs.New(errs.IllegalArgument, "not a text instance")
	}
	inst.Text = s
	inst.TextNull = false
	return nil
}
