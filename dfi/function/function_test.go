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

package function_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/celix-sub005/dfi/function"
	"github.com/apache/celix-sub005/dfi/types"
)

func TestParseSimpleSignature(t *testing.T) {
	fn, err := function.ParseString("add(II)I", nil)
	require.NoError(t, err)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Arguments, 2)
	assert.True(t, fn.HasReturn())
}

func TestParseVoidReturn(t *testing.T) {
	fn, err := function.ParseString("log(t)V", nil)
	require.NoError(t, err)
	assert.False(t, fn.HasReturn())
}

func TestArgumentMetaClassification(t *testing.T) {
	fn, err := function.ParseString("lookup(#am=handle;I#am=out;*I)V", nil)
	require.NoError(t, err)
	require.Len(t, fn.Arguments, 2)
	assert.Equal(t, function.MetaHandle, fn.Arguments[0].Meta)
	assert.Equal(t, function.MetaOutput, fn.Arguments[1].Meta)
}

func TestArgumentIndexAndDefaultName(t *testing.T) {
	fn, err := function.ParseString("add(II)I", nil)
	require.NoError(t, err)
	require.Len(t, fn.Arguments, 2)
	assert.Equal(t, 0, fn.Arguments[0].Index)
	assert.Equal(t, "arg0000", fn.Arguments[0].Name)
	assert.Equal(t, 1, fn.Arguments[1].Index)
	assert.Equal(t, "arg0001", fn.Arguments[1].Name)
}

func TestCallRoundTrip(t *testing.T) {
	fn, err := function.ParseString("add(II)I", nil)
	require.NoError(t, err)

	caller, err := function.NewCaller(fn, func(a, b int32) int32 { return a + b })
	require.NoError(t, err)

	argType, err := types.ParseString("I", "", nil)
	require.NoError(t, err)

	a := types.Alloc(argType)
	a.Int = 2
	b := types.Alloc(argType)
	b.Int = 3

	ret, err := caller.Call([]*types.Instance{a, b})
	require.NoError(t, err)
	assert.Equal(t, int64(5), ret.Int)
}

func TestCreateClosureRoundTrip(t *testing.T) {
	fn, err := function.ParseString("add(II)I", nil)
	require.NoError(t, err)

	trampoline, err := function.CreateClosure(fn, func(args []*types.Instance, ret *types.Instance) error {
		ret.Int = args[0].Int + args[1].Int
		return nil
	})
	require.NoError(t, err)

	add, ok := trampoline.(func(int32, int32) int32)
	require.True(t, ok)
	assert.Equal(t, int32(7), add(3, 4))
}

func TestFunctionName(t *testing.T) {
	name, err := function.FunctionName("add(II)I")
	require.NoError(t, err)
	assert.Equal(t, "add", name)
}
