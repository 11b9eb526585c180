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

// Package json implements the JSON codec (§4.7): a Type-graph-driven
// walk between Instance trees and a JSON document, built on
// encoding/json's generic interface{} DOM rather than a struct-tag
// mapping, since the document shape is only known at runtime from the
// parsed Type.
package json

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/apache/celix-sub005/dfi/types"
	"github.com/apache/celix-sub005/errs"
)

// Serialize renders inst (an instance of t) as JSON bytes.
func Serialize(t *types.Type, inst *types.Instance) ([]byte, error) {
	node, err := SerializeNode(t, inst)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(node)
	if err != nil {
		return nil, errs.Wrap(errs.IllegalState, err, "marshaling JSON")
	}
	return b, nil
}

// Deserialize parses data as JSON and builds an Instance of t from it.
func Deserialize(t *types.Type, data []byte) (*types.Instance, error) {
	var node interface{}
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, errs.Wrap(errs.ParseError, err, "parsing JSON: %s", excerpt(data))
	}
	inst, err := DeserializeNode(t, node)
	if err != nil {
		return nil, errs.Wrap(errs.ParseError, err, "deserializing JSON: %s", excerpt(data))
	}
	return inst, nil
}

func excerpt(data []byte) string {
	const max = 64
	if len(data) <= max {
		return string(data)
	}
	return string(data[:max]) + "..."
}

// SerializeNode is the DOM-valued variant of Serialize: it returns a
// tree of Go values (map[string]interface{}, []interface{}, string,
// int64 or uint64 for integer descriptors, float64 for F/D, bool, nil)
// ready for encoding/json to marshal, or for a caller to inspect
// directly.
func SerializeNode(t *types.Type, inst *types.Instance) (interface{}, error) {
	et := types.Resolve(t)
	switch et.Kind {
	case types.KindSimple:
		return serializeSimple(et, inst)
	case types.KindText:
		if inst.TextNull {
			return nil, nil
		}
		return inst.Text, nil
	case types.KindComplex:
		return serializeComplex(et, inst)
	case types.KindSequence:
		return serializeSequence(et, inst)
	case types.KindTypedPointer:
		if types.Resolve(et.Elem).Kind == types.KindTypedPointer {
			return nil, errs.New(errs.IllegalArgument, "pointer-to-pointer is not JSON-serializable")
		}
		if inst.Pointee == nil {
			return nil, nil
		}
		return SerializeNode(et.Elem, inst.Pointee)
	default:
		return nil, errs.New(errs.IllegalArgument, "unsupported type kind %s for JSON serialization", et.Kind)
	}
}

func serializeSimple(et *types.Type, inst *types.Instance) (interface{}, error) {
	switch et.Prim {
	case types.PrimBool:
		return inst.Bool, nil
	case types.PrimInt8, types.PrimInt16, types.PrimInt32, types.PrimInt64, types.PrimNativeInt:
		return inst.Int, nil
	case types.PrimUint8, types.PrimUint16, types.PrimUint32, types.PrimUint64:
		return inst.Uint, nil
	case types.PrimFloat32:
		return float64(inst.Float32), nil
	case types.PrimFloat64:
		return inst.Float64, nil
	case types.PrimEnum:
		return enumSymbolForValue(et, inst.Int)
	case types.PrimPointer:
		return nil, errs.New(errs.IllegalArgument, "untyped pointer is not JSON-serializable")
	case types.PrimVoid:
		return nil, nil
	default:
		return nil, errs.New(errs.IllegalArgument, "unsupported primitive kind")
	}
}

func serializeComplex(et *types.Type, inst *types.Instance) (interface{}, error) {
	obj := make(map[string]interface{}, len(et.Fields))
	for i, f := range et.Fields {
		if f.Name == "" {
			return nil, errs.New(errs.IllegalArgument, "unnamed complex field cannot be JSON-serialized")
		}
		v, err := SerializeNode(f.Type, inst.Fields[i])
		if err != nil {
			return nil, errs.Wrap(errs.IllegalArgument, err, "serializing field %q", f.Name)
		}
		obj[f.Name] = v
	}
	return obj, nil
}

func serializeSequence(et *types.Type, inst *types.Instance) (interface{}, error) {
	arr := make([]interface{}, len(inst.Seq))
	for i, e := range inst.Seq {
		v, err := SerializeNode(et.Elem, e)
		if err != nil {
			return nil, errs.Wrap(errs.IllegalArgument, err, "serializing sequence item %d", i)
		}
		arr[i] = v
	}
	return arr, nil
}

// enumSymbolForValue reverse-looks-up the symbol whose mapped integer
// (an enum Type's meta-properties) equals value.
func enumSymbolForValue(et *types.Type, value int64) (string, error) {
	it := et.Meta.Iterator()
	for !it.IsEnd() {
		if raw, ok := it.Value().Ptr.(string); ok {
			if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n == value {
				return it.Key(), nil
			}
		}
		it.Next()
	}
	return "", errs.New(errs.IllegalArgument, "value %d not in enum", value)
}

// DeserializeNode is the DOM-valued variant of Deserialize.
func DeserializeNode(t *types.Type, node interface{}) (*types.Instance, error) {
	et := types.Resolve(t)
	inst := types.Alloc(t)
	switch et.Kind {
	case types.KindSimple:
		if err := deserializeSimple(et, inst, node); err != nil {
			return nil, err
		}
	case types.KindText:
		if node == nil {
			inst.TextNull = true
			return inst, nil
		}
		s, ok := node.(string)
		if !ok {
			return nil, errs.New(errs.ParseError, "expected string, got %T", node)
		}
		if err := inst.TextInit(s); err != nil {
			return nil, err
		}
	case types.KindComplex:
		if err := deserializeComplex(et, inst, node); err != nil {
			return nil, err
		}
	case types.KindSequence:
		if err := deserializeSequence(et, inst, node); err != nil {
			return nil, err
		}
	case types.KindTypedPointer:
		if err := deserializeTypedPointer(et, inst, node); err != nil {
			return nil, err
		}
	default:
		return nil, errs.New(errs.ParseError, "unsupported type kind %s for JSON deserialization", et.Kind)
	}
	return inst, nil
}

func deserializeSimple(et *types.Type, inst *types.Instance, node interface{}) error {
	switch et.Prim {
	case types.PrimBool:
		b, ok := node.(bool)
		if !ok {
			return errs.New(errs.ParseError, "expected bool, got %T", node)
		}
		inst.Bool = b
	case types.PrimInt8, types.PrimInt16, types.PrimInt32, types.PrimInt64, types.PrimNativeInt:
		f, ok := node.(float64)
		if !ok {
			return errs.New(errs.ParseError, "expected integer, got %T", node)
		}
		inst.Int = int64(f)
	case types.PrimUint8, types.PrimUint16, types.PrimUint32, types.PrimUint64:
		f, ok := node.(float64)
		if !ok {
			return errs.New(errs.ParseError, "expected integer, got %T", node)
		}
		inst.Uint = uint64(f)
	case types.PrimFloat32:
		f, ok := node.(float64)
		if !ok {
			return errs.New(errs.ParseError, "expected number, got %T", node)
		}
		inst.Float32 = float32(f)
	case types.PrimFloat64:
		f, ok := node.(float64)
		if !ok {
			return errs.New(errs.ParseError, "expected number, got %T", node)
		}
		inst.Float64 = f
	case types.PrimEnum:
		s, ok := node.(string)
		if !ok {
			return errs.New(errs.ParseError, "expected enum symbol string, got %T", node)
		}
		v, ok := et.MetaValue(s)
		if !ok {
			return errs.New(errs.ParseError, "unknown enum symbol %q", s)
		}
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return errs.Wrap(errs.ParseError, err, "malformed enum value for symbol %q", s)
		}
		inst.Int = n
	case types.PrimPointer:
		return errs.New(errs.ParseError, "untyped pointer is not JSON-deserializable")
	case types.PrimVoid:
	default:
		return errs.New(errs.ParseError, "unsupported primitive kind")
	}
	return nil
}

func deserializeComplex(et *types.Type, inst *types.Instance, node interface{}) error {
	obj, ok := node.(map[string]interface{})
	if !ok {
		return errs.New(errs.ParseError, "expected object, got %T", node)
	}
	for i, f := range et.Fields {
		if f.Name == "" {
			return errs.New(errs.ParseError, "unnamed complex field cannot be JSON-deserialized")
		}
		v, present := obj[f.Name]
		if !present {
			return errs.New(errs.ParseError, "missing required field %q", f.Name)
		}
		fi, err := DeserializeNode(f.Type, v)
		if err != nil {
			return errs.Wrap(errs.ParseError, err, "deserializing field %q", f.Name)
		}
		inst.Fields[i] = fi
	}
	return nil
}

func deserializeSequence(et *types.Type, inst *types.Instance, node interface{}) error {
	arr, ok := node.([]interface{})
	if !ok {
		return errs.New(errs.ParseError, "expected array, got %T", node)
	}
	if len(arr) > math.MaxUint32 {
		return errs.New(errs.ParseError, "sequence of %d elements exceeds maximum of 2^32-1", len(arr))
	}
	if err := inst.SequenceReserve(len(arr)); err != nil {
		return err
	}
	for i, item := range arr {
		e, err := DeserializeNode(et.Elem, item)
		if err != nil {
			return errs.Wrap(errs.ParseError, err, "deserializing sequence item %d", i)
		}
		inst.Seq = append(inst.Seq, e)
	}
	return nil
}

func deserializeTypedPointer(et *types.Type, inst *types.Instance, node interface{}) error {
	if types.Resolve(et.Elem).Kind == types.KindTypedPointer {
		return errs.New(errs.ParseError, "pointer-to-pointer is not JSON-serializable")
	}
	if node == nil {
		return nil
	}
	pe, err := DeserializeNode(et.Elem, node)
	if err != nil {
		return err
	}
	inst.Pointee = pe
	return nil
}
