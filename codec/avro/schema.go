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
	"encoding/json"
	"fmt"
	"sort"

	"github.com/apache/celix-sub005/dfi/types"
	"github.com/apache/celix-sub005/errs"
)

// nameCounter synthesizes the unique "R1", "R2", ... record names
// GenerateSchema assigns to each complex type it encounters, reset
// per call.
type nameCounter struct{ n int }

func (c *nameCounter) next() string {
	c.n++
	return fmt.Sprintf("R%d", c.n)
}

// GenerateSchema emits an AVRO-compatible JSON schema for t, per
// §4.8.3.
func GenerateSchema(t *types.Type) (string, error) {
	node, err := schemaNode(t, &nameCounter{})
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(node)
	if err != nil {
		return "", errs.Wrap(errs.IllegalState, err, "marshaling schema")
	}
	return string(b), nil
}

func schemaNode(t *types.Type, c *nameCounter) (interface{}, error) {
	et := types.Resolve(t)
	switch et.Kind {
	case types.KindSimple:
		return simpleSchema(et, c)
	case types.KindText:
		return map[string]interface{}{"type": "string"}, nil
	case types.KindComplex:
		return complexSchema(et, c)
	case types.KindSequence:
		items, err := schemaNode(et.Elem, c)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": "array", "items": items}, nil
	case types.KindTypedPointer:
		return schemaNode(et.Elem, c)
	default:
		return nil, errs.New(errs.IllegalArgument, "unsupported type kind %s for schema generation", et.Kind)
	}
}

func simpleSchema(et *types.Type, c *nameCounter) (interface{}, error) {
	switch et.Prim {
	case types.PrimBool:
		return map[string]interface{}{"type": "boolean"}, nil
	case types.PrimFloat32:
		return map[string]interface{}{"type": "float"}, nil
	case types.PrimFloat64:
		return map[string]interface{}{"type": "double"}, nil
	case types.PrimVoid:
		return map[string]interface{}{"type": "null"}, nil
	case types.PrimPointer:
		return nil, errs.New(errs.IllegalArgument, "untyped pointer has no AVRO schema")
	case types.PrimEnum:
		return enumSchema(et, c)
	default:
		if et.Size() > 4 {
			return map[string]interface{}{"type": "long"}, nil
		}
		return map[string]interface{}{"type": "int"}, nil
	}
}

func enumSchema(et *types.Type, c *nameCounter) (interface{}, error) {
	var symbols []string
	it := et.Meta.Iterator()
	for !it.IsEnd() {
		symbols = append(symbols, it.Key())
		it.Next()
	}
	sort.Strings(symbols)
	return map[string]interface{}{
		"type":    "enum",
		"name":    c.next(),
		"symbols": symbols,
	}, nil
}

func complexSchema(et *types.Type, c *nameCounter) (interface{}, error) {
	name := c.next()
	fields := make([]interface{}, 0, len(et.Fields))
	for _, f := range et.Fields {
		sub, err := schemaNode(f.Type, c)
		if err != nil {
			return nil, errs.Wrap(errs.IllegalArgument, err, "generating schema for field %q", f.Name)
		}
		fields = append(fields, map[string]interface{}{"name": f.Name, "type": sub})
	}
	return map[string]interface{}{
		"type":   "record",
		"name":   name,
		"fields": fields,
	}, nil
}
