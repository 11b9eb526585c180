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

package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apache/celix-sub005/version"
)

func TestParseFormatRoundTrip(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1", "1.0.0"},
		{"1.2", "1.2.0"},
		{"1.2.3", "1.2.3"},
		{"1.2.3.rc1", "1.2.3.rc1"},
		{"0.0.0", "0.0.0"},
	}
	for _, c := range cases {
		v, err := version.Parse(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, v.String())
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "a.b.c", "1.2.3.bad!qualifier", "-1.0.0"} {
		_, err := version.Parse(in)
		assert.Error(t, err, in)
	}
}

func TestCompareOrdering(t *testing.T) {
	a := version.New(1, 2, 3, "")
	b := version.New(1, 2, 3, "rc1")
	c := version.New(1, 2, 4, "")

	assert.True(t, version.Less(a, b), "empty qualifier sorts before non-empty")
	assert.True(t, version.Less(b, c))
	assert.True(t, version.Equal(a, a))
	assert.Equal(t, 0, version.Compare(a, a))
}

func TestCompareMonotonic(t *testing.T) {
	versions := []string{"1.0.0", "1.0.1", "1.1.0", "2.0.0", "2.0.0.alpha", "2.0.0.beta"}
	var parsed []version.Version
	for _, s := range versions {
		v, err := version.Parse(s)
		require.NoError(t, err)
		parsed = append(parsed, v)
	}
	for i := 1; i < len(parsed); i++ {
		assert.Less(t, version.Compare(parsed[i-1], parsed[i]), 0, "%s < %s", versions[i-1], versions[i])
	}
}
