// Copyright 2026 The Routeway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routefile

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeway/routeway"
)

func testRequest(t *testing.T, raw string) *routeway.Request {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return routeway.NewRequest(u)
}

const sampleFile = `
routes:
  - mask: article/<id \d+>
    name: article.detail
    constants:
      presenter: article
  - mask: legacy/<id>
    one_way: true
    constants:
      presenter: legacy
  - path: /admin
    routes:
      - mask: <presenter>
  - mask: <presenter>/<action>
    defaults:
      action: default
    patterns:
      action: "[a-z]+"
`

func TestParse(t *testing.T) {
	t.Parallel()

	list, err := Parse([]byte(sampleFile))
	require.NoError(t, err)

	params := list.Match(testRequest(t, "http://example.com/article/42"))
	require.NotNil(t, params)
	assert.Equal(t, "article", params["presenter"])
	assert.Equal(t, "42", params["id"])

	params = list.Match(testRequest(t, "http://example.com/admin/users"))
	require.NotNil(t, params)
	assert.Equal(t, "users", params["presenter"])

	ref := routeway.NewURL("http", "example.com", "/")
	out, ok := list.ConstructURL(routeway.Params{"presenter": "article", "id": 7}, ref)
	require.True(t, ok)
	assert.Equal(t, "http://example.com/article/7", out)

	// One-way entries construct but never match.
	assert.Nil(t, list.Match(testRequest(t, "http://example.com/legacy/1")))
	out, ok = list.ConstructURL(routeway.Params{"presenter": "legacy", "id": 1}, ref)
	require.True(t, ok)
	assert.Equal(t, "http://example.com/legacy/1", out)

	// Named routes are reachable for reverse routing.
	out, err = list.URLByName("article.detail", routeway.Params{"id": 9}, ref)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/article/9", out)
}

func TestParse_DomainSection(t *testing.T) {
	t.Parallel()

	list, err := Parse([]byte(`
routes:
  - domain: "%sld%.example.com"
    routes:
      - mask: <presenter>
`))
	require.NoError(t, err)

	require.NotNil(t, list.Match(testRequest(t, "http://api.example.com/x")))
	assert.Nil(t, list.Match(testRequest(t, "http://other.org/x")))
}

func TestParse_Filters(t *testing.T) {
	t.Parallel()

	in := func(raw string) (any, bool) { return strings.ToUpper(raw), true }
	out := func(v any) (string, bool) {
		s, ok := v.(string)
		return strings.ToLower(s), ok
	}

	list, err := Parse([]byte(`
routes:
  - mask: <presenter>
    filters:
      presenter: upper
`), WithFilter("upper", in, out))
	require.NoError(t, err)

	params := list.Match(testRequest(t, "http://example.com/homepage"))
	require.NotNil(t, params)
	assert.Equal(t, "HOMEPAGE", params["presenter"])
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "routes: ["},
		{name: "empty entry", yaml: "routes:\n  - name: x"},
		{name: "mask and section", yaml: "routes:\n  - mask: <p>\n    path: /x"},
		{name: "domain and path", yaml: "routes:\n  - domain: a.example.com\n    path: /x\n    routes:\n      - mask: <p>"},
		{name: "bad mask", yaml: "routes:\n  - mask: \"<p>[\""},
		{name: "unknown filter", yaml: "routes:\n  - mask: <p>\n    filters:\n      p: nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	list, err := Load(strings.NewReader(sampleFile))
	require.NoError(t, err)
	assert.NotNil(t, list.Match(testRequest(t, "http://example.com/article/42")))
}
