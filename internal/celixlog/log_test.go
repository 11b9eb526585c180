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

package celixlog_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apache/celix-sub005/internal/celixlog"
)

func TestSeverityFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := celixlog.New(&buf, celixlog.Warning)

	l.Log(celixlog.Debug, "should not appear")
	assert.Empty(t, buf.String())

	l.Log(celixlog.Warning, "value=%d", 42)
	assert.Contains(t, buf.String(), "value=42")
}

func TestBindAndFrom(t *testing.T) {
	var buf bytes.Buffer
	l := celixlog.New(&buf, celixlog.Verbose)
	ctx := celixlog.Bind(context.Background(), l)

	celixlog.Debugf(ctx, "parsing %q", "foo")
	assert.Contains(t, buf.String(), "parsing \"foo\"")
}

func TestFromWithoutBindUsesDefault(t *testing.T) {
	assert.Equal(t, celixlog.Default, celixlog.From(context.Background()))
}
