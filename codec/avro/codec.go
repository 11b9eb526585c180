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

package avro

import (
	"bytes"
	"io"
	"math"

	"github.com/apache/celix-sub005/dfi/types"
	"github.com/apache/celix-sub005/errs"
)

// Serialize encodes inst (an instance of t) to AVRO-subset binary.
func Serialize(t *types.Type, inst *types.Instance) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, t, inst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Deserialize decodes an instance of t from AVRO-subset binary.
func Deserialize(t *types.Type, data []byte) (*types.Instance, error) {
	return Decode(bytes.NewReader(data), t)
}

// Encode writes inst's wire encoding to w, per §4.8.1/§4.8.2.
func Encode(w io.Writer, t *types.Type, inst *types.Instance) error {
	et := types.Resolve(t)
	switch et.Kind {
	case types.KindSimple:
		return encodeSimple(w, et, inst)
	case types.KindText:
		return writeString(w, inst.Text)
	case types.KindComplex:
		return encodeComplex(w, et, inst)
	case types.KindSequence:
		return encodeSequence(w, et, inst)
	case types.KindTypedPointer:
		return encodeTypedPointer(w, et, inst)
	default:
		return errs.New(errs.IllegalArgument, "unsupported type kind %s for binary encoding", et.Kind)
	}
}

func encodeSimple(w io.Writer, et *types.Type, inst *types.Instance) error {
	switch et.Prim {
	case types.PrimBool:
		return writeBool(w, inst.Bool)
	case types.PrimInt8, types.PrimInt16, types.PrimInt32, types.PrimInt64, types.PrimNativeInt, types.PrimEnum:
		return writeLong(w, inst.Int)
	case types.PrimUint8, types.PrimUint16, types.PrimUint32, types.PrimUint64:
		return writeLong(w, int64(inst.Uint))
	case types.PrimFloat32:
		return writeFloat(w, inst.Float32)
	case types.PrimFloat64:
		return writeDouble(w, inst.Float64)
	case types.PrimPointer:
		return writeLong(w, int64(inst.Uint))
	case types.PrimVoid:
		return nil
	default:
		return errs.New(errs.IllegalArgument, "unsupported primitive kind for binary encoding")
	}
}

func encodeComplex(w io.Writer, et *types.Type, inst *types.Instance) error {
	for i, f := range et.Fields {
		if err := Encode(w, f.Type, inst.Fields[i]); err != nil {
			return errs.Wrap(errs.IllegalArgument, err, "encoding field %q", f.Name)
		}
	}
	return nil
}

func encodeSequence(w io.Writer, et *types.Type, inst *types.Instance) error {
	if len(inst.Seq) > 0 {
		if err := writeLong(w, int64(len(inst.Seq))); err != nil {
			return err
		}
		for i, e := range inst.Seq {
			if err := Encode(w, et.Elem, e); err != nil {
				return errs.Wrap(errs.IllegalArgument, err, "encoding sequence item %d", i)
			}
		}
	}
	return writeLong(w, 0)
}

// encodeTypedPointer writes the pointee's encoding directly: the wire
// format carries no null-pointer marker, so a NULL pointer is written
// as its pointee type's zero value.
func encodeTypedPointer(w io.Writer, et *types.Type, inst *types.Instance) error {
	pointee := inst.Pointee
	if pointee == nil {
		pointee = types.Alloc(et.Elem)
	}
	return Encode(w, et.Elem, pointee)
}

// Decode reads one wire-encoded instance of t from r.
func Decode(r io.Reader, t *types.Type) (*types.Instance, error) {
	et := types.Resolve(t)
	inst := types.Alloc(t)
	switch et.Kind {
	case types.KindSimple:
		if err := decodeSimple(r, et, inst); err != nil {
			return nil, err
		}
	case types.KindText:
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		_ = inst.TextInit(s)
	case types.KindComplex:
		if err := decodeComplex(r, et, inst); err != nil {
			return nil, err
		}
	case types.KindSequence:
		if err := decodeSequence(r, et, inst); err != nil {
			return nil, err
		}
	case types.KindTypedPointer:
		pointee, err := Decode(r, et.Elem)
		if err != nil {
			return nil, err
		}
		inst.Pointee = pointee
	default:
		return nil, errs.New(errs.DecodeError, "unsupported type kind %s for binary decoding", et.Kind)
	}
	return inst, nil
}

func decodeSimple(r io.Reader, et *types.Type, inst *types.Instance) error {
	switch et.Prim {
	case types.PrimBool:
		b, err := readBool(r)
		if err != nil {
			return err
		}
		inst.Bool = b
	case types.PrimInt8, types.PrimInt16, types.PrimInt32, types.PrimInt64, types.PrimNativeInt:
		v, err := readLong(r)
		if err != nil {
			return err
		}
		inst.Int = v
	case types.PrimEnum:
		v, err := readLong(r)
		if err != nil {
			return err
		}
		if v < math.MinInt32 || v > math.MaxInt32 {
			return errs.New(errs.DecodeError, "enum value %d out of 32-bit range", v)
		}
		inst.Int = v
	case types.PrimUint8, types.PrimUint16, types.PrimUint32, types.PrimUint64:
		v, err := readLong(r)
		if err != nil {
			return err
		}
		inst.Uint = uint64(v)
	case types.PrimFloat32:
		v, err := readFloat(r)
		if err != nil {
			return err
		}
		inst.Float32 = v
	case types.PrimFloat64:
		v, err := readDouble(r)
		if err != nil {
			return err
		}
		inst.Float64 = v
	case types.PrimPointer:
		v, err := readLong(r)
		if err != nil {
			return err
		}
		inst.Uint = uint64(v)
	case types.PrimVoid:
	default:
		return errs.New(errs.DecodeError, "unsupported primitive kind for binary decoding")
	}
	return nil
}

func decodeComplex(r io.Reader, et *types.Type, inst *types.Instance) error {
	for i, f := range et.Fields {
		fi, err := Decode(r, f.Type)
		if err != nil {
			return errs.Wrap(errs.DecodeError, err, "decoding field %q", f.Name)
		}
		inst.Fields[i] = fi
	}
	return nil
}

// decodeSequence reads a series of blocks, growing inst.Seq
// incrementally as each block arrives, per §4.8.2.
func decodeSequence(r io.Reader, et *types.Type, inst *types.Instance) error {
	inst.Seq = nil
	for {
		count, err := readLong(r)
		if err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		n := count
		if count < 0 {
			n = -count
			blockSize, err := readLong(r)
			if err != nil {
				return err
			}
			if et.Elem.Trivial && et.Elem.Size() > 0 {
				if blockSize != n*int64(et.Elem.Size()) {
					return errs.New(errs.DecodeError, "sequence block size %d does not equal %d items of size %d", blockSize, n, et.Elem.Size())
				}
			}
		}
		for i := int64(0); i < n; i++ {
			e, err := Decode(r, et.Elem)
			if err != nil {
				return errs.Wrap(errs.DecodeError, err, "decoding sequence item %d", i)
			}
			inst.Seq = append(inst.Seq, e)
		}
	}
}
