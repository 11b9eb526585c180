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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/celix-sub005/dfi/types"
)

// TestSimpleRecordLayout covers scenario S1: a flat two-field record,
// checking field offsets and overall size/align match the natural
// (System-V) struct layout of "struct { int32_t a; int32_t b; }".
func TestSimpleRecordLayout(t *testing.T) {
	ty, err := types.ParseString("{II a b}", "point", nil)
	require.NoError(t, err)

	assert.Equal(t, types.KindComplex, ty.Kind)
	assert.Equal(t, uintptr(8), ty.Size())
	assert.Equal(t, uintptr(4), ty.Align())
	assert.True(t, ty.Trivial)

	require.Len(t, ty.Fields, 2)
	assert.Equal(t, "a", ty.Fields[0].Name)
	assert.Equal(t, uintptr(0), ty.Fields[0].Offset)
	assert.Equal(t, "b", ty.Fields[1].Name)
	assert.Equal(t, uintptr(4), ty.Fields[1].Offset)
}

// TestMixedAlignmentRecordLayout covers property 3: a record whose
// second field requires greater alignment than the first, forcing
// internal padding, matching "struct { int32_t a; double b; }".
func TestMixedAlignmentRecordLayout(t *testing.T) {
	ty, err := types.ParseString("{ID a b}", "mixed", nil)
	require.NoError(t, err)

	assert.Equal(t, uintptr(0), ty.Fields[0].Offset)
	assert.Equal(t, uintptr(8), ty.Fields[1].Offset, "second field must be padded up to its own alignment")
	assert.Equal(t, uintptr(16), ty.Size())
	assert.Equal(t, uintptr(8), ty.Align())
}

// TestRecursiveTreeType covers scenario S2: a self-referential record
// ("struct node { int32_t value; struct node *next; }"), resolved via
// a leading TypeDef and a reference body.
func TestRecursiveTreeType(t *testing.T) {
	ty, err := types.ParseString("Tnode={I*lnode; value next};lnode;", "", nil)
	require.NoError(t, err)

	require.Equal(t, types.KindReference, ty.Kind)
	require.NotNil(t, ty.Target)
	node := ty.Target
	assert.Equal(t, "node", node.Name)
	assert.Equal(t, types.KindComplex, node.Kind)
	require.Len(t, node.Fields, 2)

	assert.Equal(t, "value", node.Fields[0].Name)
	assert.Equal(t, types.KindSimple, node.Fields[0].Type.Kind)

	next := node.Fields[1]
	assert.Equal(t, "next", next.Name)
	require.Equal(t, types.KindTypedPointer, next.Type.Kind)

	// The self-reference inside node's own field resolves back to the
	// very same node Type object, not a structural copy.
	selfRef := next.Type.Elem
	require.Equal(t, types.KindReference, selfRef.Kind)
	assert.Same(t, node, selfRef.Target)

	assert.Equal(t, uintptr(16), node.Size())
	assert.Equal(t, uintptr(8), node.Align())
}

func TestSequenceAndTextLayout(t *testing.T) {
	seq, err := types.ParseString("[D", "", nil)
	require.NoError(t, err)
	assert.Equal(t, types.KindSequence, seq.Kind)
	assert.Equal(t, uintptr(16), seq.Size())
	assert.Equal(t, uintptr(8), seq.Align())
	assert.False(t, seq.Trivial)

	txt, err := types.ParseString("t", "", nil)
	require.NoError(t, err)
	assert.Equal(t, types.KindText, txt.Kind)
	assert.Equal(t, uintptr(8), txt.Size())
	assert.False(t, txt.Trivial)
}

func TestUnresolvedReferenceFails(t *testing.T) {
	_, err := types.ParseString("lmissing;", "", nil)
	assert.Error(t, err)
}

func TestExternalRefPool(t *testing.T) {
	shared, err := types.ParseString("{II x y}", "point", nil)
	require.NoError(t, err)

	ptr, err := types.ParseString("*lpoint;", "", []*types.Type{shared})
	require.NoError(t, err)
	require.Equal(t, types.KindTypedPointer, ptr.Kind)
	assert.Same(t, shared, ptr.Elem.Target)
}

func TestNamedPointerSugar(t *testing.T) {
	a, err := types.ParseString("Tpoint={II x y};Lpoint;", "", nil)
	require.NoError(t, err)
	b, err := types.ParseString("Tpoint={II x y};*lpoint;", "", nil)
	require.NoError(t, err)

	assert.Equal(t, a.Kind, b.Kind)
	assert.Equal(t, a.Size(), b.Size())
}
