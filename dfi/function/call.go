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

package function

import (
	"reflect"
	"unsafe"

	"github.com/apache/celix-sub005/dfi/types"
	"github.com/apache/celix-sub005/errs"
)

// Caller binds a Function descriptor to a concrete Go function value
// implementing that signature, and drives reflective invocation
// through it. This stands in for the source's libffi ffi_call: since
// this port carries no cgo binding, there is no way to synthesize a
// call to an arbitrary native code address from a descriptor alone.
// A Caller's target must be supplied by the embedder (typically a
// service-registry entry already holding a real Go function), and it
// is that target, not raw memory, that gets called.
type Caller struct {
	fn     *Function
	target reflect.Value
}

// NewCaller binds fn to target, which must be a Go func value whose
// parameter and result shapes are reflect-assignable from fn's
// argument and return types.
func NewCaller(fn *Function, target interface{}) (*Caller, error) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Func {
		return nil, errs.New(errs.IllegalArgument, "call target for %q is not a function", fn.Name)
	}
	if v.Type().NumIn() != len(fn.Arguments) {
		return nil, errs.New(errs.IllegalArgument, "call target for %q takes %d arguments, descriptor has %d", fn.Name, v.Type().NumIn(), len(fn.Arguments))
	}
	return &Caller{fn: fn, target: v}, nil
}

// Call converts args to reflect.Values, invokes the bound target, and
// converts its result (if fn.HasReturn()) back to an Instance of
// fn.ReturnType.
func (c *Caller) Call(args []*types.Instance) (*types.Instance, error) {
	if len(args) != len(c.fn.Arguments) {
		return nil, errs.New(errs.IllegalArgument, "%q expects %d arguments, got %d", c.fn.Name, len(c.fn.Arguments), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		rv, err := toReflect(a)
		if err != nil {
			return nil, errs.Wrap(errs.IllegalArgument, err, "converting argument %d of %q", i, c.fn.Name)
		}
		in[i] = rv
	}

	out := c.target.Call(in)
	if !c.fn.HasReturn() {
		return nil, nil
	}
	if len(out) == 0 {
		return nil, errs.New(errs.IllegalState, "%q declares a return value but target returned nothing", c.fn.Name)
	}
	return fromReflect(out[0], c.fn.ReturnType)
}

// toReflect converts a scalar or text Instance to the reflect.Value a
// Go function parameter of the matching descriptor expects.
func toReflect(inst *types.Instance) (reflect.Value, error) {
	switch inst.Descriptor() {
	case 'Z':
		return reflect.ValueOf(inst.Bool), nil
	case 'B':
		return reflect.ValueOf(int8(inst.Int)), nil
	case 'b':
		return reflect.ValueOf(uint8(inst.Uint)), nil
	case 'S':
		return reflect.ValueOf(int16(inst.Int)), nil
	case 's':
		return reflect.ValueOf(uint16(inst.Uint)), nil
	case 'I':
		return reflect.ValueOf(int32(inst.Int)), nil
	case 'i':
		return reflect.ValueOf(uint32(inst.Uint)), nil
	case 'J':
		return reflect.ValueOf(inst.Int), nil
	case 'j':
		return reflect.ValueOf(inst.Uint), nil
	case 'N':
		return reflect.ValueOf(int(inst.Int)), nil
	case 'F':
		return reflect.ValueOf(inst.Float32), nil
	case 'D':
		return reflect.ValueOf(inst.Float64), nil
	case 't':
		return reflect.ValueOf(inst.Text), nil
	case 'P':
		return reflect.ValueOf(unsafe.Pointer(uintptr(inst.Uint))), nil
	default:
		return reflect.Value{}, errs.New(errs.IllegalArgument, "unsupported argument descriptor %q for reflective call", inst.Descriptor())
	}
}

// BindCallback is the user side of a closure trampoline: it receives
// the marshalled argument Instances and must fill in ret (nil when
// fn.HasReturn() is false).
type BindCallback func(args []*types.Instance, ret *types.Instance) error

// CreateClosure builds a Go function value implementing fn's signature
// that, when called, marshals its reflect arguments into Instances,
// invokes callback, and marshals any result back out. This stands in
// for the source's ffi_closure trampoline: instead of a native code
// pointer libffi hands to C callers, the returned value is a Go
// closure any Go caller holding fn's signature can invoke directly.
func CreateClosure(fn *Function, callback BindCallback) (interface{}, error) {
	in := make([]reflect.Type, len(fn.Arguments))
	for i, a := range fn.Arguments {
		rt, err := goTypeFor(a.Type)
		if err != nil {
			return nil, errs.Wrap(errs.IllegalArgument, err, "argument %d of %q", i, fn.Name)
		}
		in[i] = rt
	}

	var out []reflect.Type
	if fn.HasReturn() {
		rt, err := goTypeFor(fn.ReturnType)
		if err != nil {
			return nil, errs.Wrap(errs.IllegalArgument, err, "return type of %q", fn.Name)
		}
		out = []reflect.Type{rt}
	}

	fnType := reflect.FuncOf(in, out, false)
	trampoline := reflect.MakeFunc(fnType, func(callArgs []reflect.Value) []reflect.Value {
		args := make([]*types.Instance, len(callArgs))
		for i, cv := range callArgs {
			args[i] = types.Alloc(fn.Arguments[i].Type)
			if err := fillInstance(args[i], cv); err != nil {
				panic(errs.Wrap(errs.IllegalArgument, err, "argument %d of %q", i, fn.Name))
			}
		}

		var ret *types.Instance
		if fn.HasReturn() {
			ret = types.Alloc(fn.ReturnType)
		}
		if err := callback(args, ret); err != nil {
			panic(errs.Wrap(errs.IllegalState, err, "closure callback for %q", fn.Name))
		}
		if !fn.HasReturn() {
			return nil
		}
		rv, err := toReflect(ret)
		if err != nil {
			panic(errs.Wrap(errs.IllegalState, err, "converting return value of %q", fn.Name))
		}
		return []reflect.Value{rv}
	})
	return trampoline.Interface(), nil
}

// goTypeFor returns the concrete Go type a closure parameter or result
// of descriptor kind t must use, matching the cases toReflect and
// fromReflect handle.
func goTypeFor(t *types.Type) (reflect.Type, error) {
	switch types.Resolve(t).Descriptor() {
	case 'Z':
		return reflect.TypeOf(bool(false)), nil
	case 'B':
		return reflect.TypeOf(int8(0)), nil
	case 'b':
		return reflect.TypeOf(uint8(0)), nil
	case 'S':
		return reflect.TypeOf(int16(0)), nil
	case 's':
		return reflect.TypeOf(uint16(0)), nil
	case 'I':
		return reflect.TypeOf(int32(0)), nil
	case 'i':
		return reflect.TypeOf(uint32(0)), nil
	case 'J':
		return reflect.TypeOf(int64(0)), nil
	case 'j':
		return reflect.TypeOf(uint64(0)), nil
	case 'N':
		return reflect.TypeOf(int(0)), nil
	case 'F':
		return reflect.TypeOf(float32(0)), nil
	case 'D':
		return reflect.TypeOf(float64(0)), nil
	case 't':
		return reflect.TypeOf(""), nil
	case 'P':
		return reflect.TypeOf(unsafe.Pointer(nil)), nil
	default:
		return nil, errs.New(errs.IllegalArgument, "unsupported descriptor %q for closure signature", types.Resolve(t).Descriptor())
	}
}

// fillInstance copies a reflect.Value closure argument into inst,
// the mirror image of toReflect.
func fillInstance(inst *types.Instance, rv reflect.Value) error {
	switch inst.Descriptor() {
	case 'Z':
		inst.Bool = rv.Bool()
	case 'B', 'S', 'I', 'J', 'N':
		inst.Int = rv.Int()
	case 'b', 's', 'i', 'j':
		inst.Uint = rv.Uint()
	case 'F':
		inst.Float32 = float32(rv.Float())
	case 'D':
		inst.Float64 = rv.Float()
	case 't':
		return inst.TextInit(rv.String())
	case 'P':
		inst.Uint = uint64(rv.Pointer())
	default:
		return errs.New(errs.IllegalArgument, "unsupported argument descriptor %q for closure call", inst.Descriptor())
	}
	return nil
}

// fromReflect converts a call result back into an Instance of t.
func fromReflect(rv reflect.Value, t *types.Type) (*types.Instance, error) {
	inst := types.Alloc(t)
	switch inst.Descriptor() {
	case 'Z':
		inst.Bool = rv.Bool()
	case 'B', 'S', 'I', 'J', 'N':
		inst.Int = rv.Int()
	case 'b', 's', 'i', 'j':
		inst.Uint = rv.Uint()
	case 'F':
		inst.Float32 = float32(rv.Float())
	case 'D':
		inst.Float64 = rv.Float()
	case 't':
		inst.Text = rv.String()
	case 'P':
		inst.Uint = uint64(rv.Pointer())
	default:
		return nil, errs.New(errs.IllegalArgument, "unsupported return descriptor %q for reflective call", inst.Descriptor())
	}
	return inst, nil
}
