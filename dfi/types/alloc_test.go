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

package types_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/celix-sub005/dfi/types"
)

func TestAllocComplexEagerlyAllocatesFields(t *testing.T) {
	ty, err := types.ParseString("{II a b}", "point", nil)
	require.NoError(t, err)

	inst := types.Alloc(ty)
	require.Len(t, inst.Fields, 2)
	a, err := inst.FieldValueLocAt(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), a.Int)
}

func TestFieldIndexAndType(t *testing.T) {
	ty, err := types.ParseString("{II a b}", "point", nil)
	require.NoError(t, err)

	idx, err := ty.FieldIndex("b")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = ty.FieldIndex("missing")
	assert.Error(t, err)
}

func TestSequenceReserveAndGrow(t *testing.T) {
	ty, err := types.ParseString("[I", "", nil)
	require.NoError(t, err)

	inst := types.Alloc(ty)
	require.NoError(t, inst.SequenceReserve(3))
	assert.Equal(t, 0, inst.SequenceLength())

	for i := 0; i < 3; i++ {
		elem, err := inst.SequenceIncreaseLength()
		require.NoError(t, err)
		elem.Int = int64(i)
	}
	assert.Equal(t, 3, inst.SequenceLength())

	_, err = inst.SequenceIncreaseLength()
	assert.Error(t, err, "sequence must not grow past its reserved capacity")

	loc, err := inst.SequenceLocForIndex(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), loc.Int)
}

func TestTypedPointeeAllocatesOnFirstUse(t *testing.T) {
	ty, err := types.ParseString("*I", "", nil)
	require.NoError(t, err)

	inst := types.Alloc(ty)
	assert.Nil(t, inst.Pointee)

	p, err := inst.TypedPointee()
	require.NoError(t, err)
	require.NotNil(t, p)
	p.Int = 42
	assert.Same(t, p, inst.Pointee)
}

func TestFreeRecursesIntoNonTrivialFields(t *testing.T) {
	ty, err := types.ParseString("{It a b}", "withText", nil)
	require.NoError(t, err)

	inst := types.Alloc(ty)
	textField, err := inst.FieldValueLocAt(1)
	require.NoError(t, err)
	require.NoError(t, textField.TextInit("hello"))

	types.Free(inst)
	assert.Nil(t, inst.Fields)
}

func TestFreeDeepFreesOwnedPointee(t *testing.T) {
	ty, err := types.ParseString("*{It a b}", "", nil)
	require.NoError(t, err)

	inst := types.Alloc(ty)
	pointee, err := inst.TypedPointee()
	require.NoError(t, err)
	textField, err := pointee.FieldValueLocAt(1)
	require.NoError(t, err)
	require.NoError(t, textField.TextInit("owned"))

	types.Free(inst)
	assert.Nil(t, inst.Pointee)
	assert.Nil(t, pointee.Fields, "Free must recurse into the pointee before dropping it")
}

func TestPrintDoesNotPanic(t *testing.T) {
	ty, err := types.ParseString("Tnode={I*lnode; value next};lnode;", "", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	types.Print(&buf, ty)
	assert.NotEmpty(t, buf.String())
}
