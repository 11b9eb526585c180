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

package iface_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/celix-sub005/dfi/iface"
	"github.com/apache/celix-sub005/version"
)

// TestInterfaceParsingAndMethodLookup covers scenario S6.
func TestInterfaceParsingAndMethodLookup(t *testing.T) {
	const descriptor = `:header
type=interface
name=Svc
version=1.2.3
:types
Point={DD x y};
:methods
m(lPoint;)N=m(lPoint;)N
:
`
	i, err := iface.ParseInterface(strings.NewReader(descriptor))
	require.NoError(t, err)

	assert.Equal(t, "Svc", i.Name)
	assert.Equal(t, version.New(1, 2, 3, ""), i.Version)
	assert.Equal(t, 0, i.Annotations.Size())

	m, ok := i.FindMethod("m(lPoint;)N")
	require.True(t, ok)
	require.Len(t, m.Function.Arguments, 1)
	assert.Equal(t, byte('N'), m.Function.ReturnType.Descriptor())

	pointRef := m.Function.Arguments[0].Type
	require.NotNil(t, pointRef.Target)
	assert.Equal(t, "Point", pointRef.Target.Name)
}

func TestInterfaceRejectsNonNativeIntReturn(t *testing.T) {
	const descriptor = `:header
type=interface
name=Svc
version=1.0.0
:types
:methods
bad(I)I=bad(I)I
:
`
	_, err := iface.ParseInterface(strings.NewReader(descriptor))
	assert.Error(t, err)
}

func TestMessageParsing(t *testing.T) {
	const descriptor = `:header
type=message
name=Envelope
version=2.0.0
:annotations
classVersion=1.0.0
:types
:message
{It id payload};
:
`
	msg, err := iface.ParseMessage(strings.NewReader(descriptor))
	require.NoError(t, err)
	assert.Equal(t, "Envelope", msg.Name)
	require.NotNil(t, msg.Payload)
	assert.Equal(t, 2, msg.Payload.FieldCount())
	assert.Equal(t, "1.0.0", msg.Annotations.Get("classVersion"))
}

func TestMissingRequiredSectionFails(t *testing.T) {
	const descriptor = `:header
type=interface
name=Svc
version=1.0.0
:types
`
	_, err := iface.ParseInterface(strings.NewReader(descriptor))
	assert.Error(t, err)
}
