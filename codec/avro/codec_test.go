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

package avro_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/celix-sub005/codec/avro"
	"github.com/apache/celix-sub005/dfi/types"
)

// TestSequenceOfDoublesBinaryRoundTrip covers scenario S4.
func TestSequenceOfDoublesBinaryRoundTrip(t *testing.T) {
	ty, err := types.ParseString("[D", "", nil)
	require.NoError(t, err)

	inst := types.Alloc(ty)
	require.NoError(t, inst.SequenceReserve(3))
	for _, v := range []float64{1.0, 2.0, 3.0} {
		e, err := inst.SequenceIncreaseLength()
		require.NoError(t, err)
		e.Float64 = v
	}

	data, err := avro.Serialize(ty, inst)
	require.NoError(t, err)

	expected := []byte{0x06} // zig-zag varint for block count 3
	for _, v := range []float64{1.0, 2.0, 3.0} {
		var buf bytes.Buffer
		inner := types.Alloc(ty.Elem)
		inner.Float64 = v
		require.NoError(t, avro.Encode(&buf, ty.Elem, inner))
		expected = append(expected, buf.Bytes()...)
	}
	expected = append(expected, 0x00) // terminator block count 0
	assert.Equal(t, expected, data)

	back, err := avro.Deserialize(ty, data)
	require.NoError(t, err)
	require.Equal(t, 3, back.SequenceLength())
	for i, want := range []float64{1.0, 2.0, 3.0} {
		loc, err := back.SequenceLocForIndex(i)
		require.NoError(t, err)
		assert.Equal(t, want, loc.Float64)
	}
}

func TestComplexRoundTrip(t *testing.T) {
	ty, err := types.ParseString("{ItI a b c}", "rec", nil)
	require.NoError(t, err)

	inst := types.Alloc(ty)
	inst.Fields[0].Int = 7
	require.NoError(t, inst.Fields[1].TextInit("hi"))
	inst.Fields[2].Int = -3

	data, err := avro.Serialize(ty, inst)
	require.NoError(t, err)

	back, err := avro.Deserialize(ty, data)
	require.NoError(t, err)
	assert.Equal(t, int64(7), back.Fields[0].Int)
	assert.Equal(t, "hi", back.Fields[1].Text)
	assert.Equal(t, int64(-3), back.Fields[2].Int)
}

func TestGenerateSchemaForRecord(t *testing.T) {
	ty, err := types.ParseString("{DD x y}", "point", nil)
	require.NoError(t, err)

	schema, err := avro.GenerateSchema(ty)
	require.NoError(t, err)
	assert.Contains(t, schema, `"type":"record"`)
	assert.Contains(t, schema, `"name":"R1"`)
	assert.Contains(t, schema, `"type":"double"`)
}

func TestWriteContainerStructure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, avro.WriteContainer(&buf, `{"type":"null"}`, []byte("payload")))

	data := buf.Bytes()
	require.True(t, len(data) > 4)
	assert.Equal(t, []byte("Obj\x01"), data[:4])
}

func TestBoolInvalidByteFails(t *testing.T) {
	ty, err := types.ParseString("Z", "", nil)
	require.NoError(t, err)
	_, err = avro.Deserialize(ty, []byte{0x02})
	assert.Error(t, err)
}
