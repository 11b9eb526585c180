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

package json_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codec "github.com/apache/celix-sub005/codec/json"
	"github.com/apache/celix-sub005/dfi/types"
)

func TestComplexRoundTrip(t *testing.T) {
	ty, err := types.ParseString("{II a b}", "point", nil)
	require.NoError(t, err)

	inst := types.Alloc(ty)
	inst.Fields[0].Int = 1
	inst.Fields[1].Int = 2

	data, err := codec.Serialize(ty, inst)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":2}`, string(data))

	back, err := codec.Deserialize(ty, data)
	require.NoError(t, err)
	assert.Equal(t, int64(1), back.Fields[0].Int)
	assert.Equal(t, int64(2), back.Fields[1].Int)
}

func TestComplexMissingFieldFails(t *testing.T) {
	ty, err := types.ParseString("{II a b}", "point", nil)
	require.NoError(t, err)

	_, err = codec.Deserialize(ty, []byte(`{"a":1}`))
	assert.Error(t, err)
}

func TestTextNullRoundTrip(t *testing.T) {
	ty, err := types.ParseString("t", "", nil)
	require.NoError(t, err)

	inst, err := codec.Deserialize(ty, []byte(`null`))
	require.NoError(t, err)
	assert.True(t, inst.TextNull)

	data, err := codec.Serialize(ty, inst)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

// TestEnumDeserializeAndSerialize covers §6.3's worked example.
func TestEnumDeserializeAndSerialize(t *testing.T) {
	ty, err := types.ParseString("#OK=0;#NOK=1;#MAYBE=2;E", "status", nil)
	require.NoError(t, err)

	inst, err := codec.Deserialize(ty, []byte(`"NOK"`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), inst.Int)

	inst.Int = 2
	data, err := codec.Serialize(ty, inst)
	require.NoError(t, err)
	assert.Equal(t, `"MAYBE"`, string(data))

	inst.Int = 3
	_, err = codec.Serialize(ty, inst)
	assert.Error(t, err)
}

func TestSequenceRoundTrip(t *testing.T) {
	ty, err := types.ParseString("[D", "", nil)
	require.NoError(t, err)

	inst, err := codec.Deserialize(ty, []byte(`[1.0,2.0,3.0]`))
	require.NoError(t, err)
	assert.Equal(t, 3, inst.SequenceLength())

	data, err := codec.Serialize(ty, inst)
	require.NoError(t, err)
	assert.JSONEq(t, `[1.0,2.0,3.0]`, string(data))
}

func TestTypedPointerNull(t *testing.T) {
	ty, err := types.ParseString("*I", "", nil)
	require.NoError(t, err)

	inst, err := codec.Deserialize(ty, []byte(`null`))
	require.NoError(t, err)
	assert.Nil(t, inst.Pointee)

	data, err := codec.Serialize(ty, inst)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestPointerToPointerUnsupported(t *testing.T) {
	ty, err := types.ParseString("**I", "", nil)
	require.NoError(t, err)

	inst := types.Alloc(ty)
	_, err = codec.Serialize(ty, inst)
	assert.Error(t, err)

	_, err = codec.Deserialize(ty, []byte(`null`))
	assert.Error(t, err)
}

func TestUntypedPointerUnsupported(t *testing.T) {
	ty, err := types.ParseString("P", "", nil)
	require.NoError(t, err)

	inst := types.Alloc(ty)
	_, err = codec.Serialize(ty, inst)
	assert.Error(t, err)

	_, err = codec.Deserialize(ty, []byte(`0`))
	assert.Error(t, err)
}
