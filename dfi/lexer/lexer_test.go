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

package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/celix-sub005/dfi/lexer"
)

func TestParseName(t *testing.T) {
	l := lexer.NewFromString("hello_123;rest")
	name, err := l.ParseName("")
	require.NoError(t, err)
	assert.Equal(t, "hello_123", name)
	require.NoError(t, l.Eat(';'))
}

func TestParseNameEmptyFails(t *testing.T) {
	l := lexer.NewFromString(";rest")
	_, err := l.ParseName("")
	assert.Error(t, err)
}

func TestParseNameValue(t *testing.T) {
	l := lexer.NewFromString("version=1.2.3\n")
	name, value, err := l.ParseNameValue()
	require.NoError(t, err)
	assert.Equal(t, "version", name)
	assert.Equal(t, "1.2.3", value)
}

func TestParseSectionHeader(t *testing.T) {
	l := lexer.NewFromString(":next\na=1\n")
	header, err := l.ParseSectionHeader()
	require.NoError(t, err)
	assert.Equal(t, "next", header)

	name, value, err := l.ParseNameValue()
	require.NoError(t, err)
	assert.Equal(t, "a", name)
	assert.Equal(t, "1", value)
	require.NoError(t, l.Eat('\n'))
	assert.True(t, l.AtEOF())
}

func TestEatMismatch(t *testing.T) {
	l := lexer.NewFromString("x")
	err := l.Eat('y')
	assert.Error(t, err)
}
