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

package routeway

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Views(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://example.com:8443/admin/users?id=7")
	require.NoError(t, err)
	req := NewRequest(u)

	assert.Equal(t, "https", req.Scheme())
	assert.Equal(t, "example.com", req.Host(), "port is stripped")
	assert.Equal(t, "/admin/users", req.Path())
	assert.Equal(t, "/", req.BasePath())
	assert.Equal(t, "admin/users", req.RelativePath())
	assert.Equal(t, "7", req.Query().Get("id"))
}

func TestRequest_WithBasePath(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("http://example.com/admin/users")
	require.NoError(t, err)
	req := NewRequest(u)

	scoped := req.WithBasePath("/admin")
	assert.Equal(t, "/admin/", scoped.BasePath())
	assert.Equal(t, "users", scoped.RelativePath())

	// The original view is untouched.
	assert.Equal(t, "/", req.BasePath())
	assert.Equal(t, "admin/users", req.RelativePath())
}

func TestRequest_RelativePathOutsideBase(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("http://example.com/public/index")
	require.NoError(t, err)
	req := NewRequest(u).WithBasePath("/admin")

	assert.Equal(t, "", req.RelativePath())
}

func TestRequestFromHTTP(t *testing.T) {
	t.Parallel()

	hr := httptest.NewRequest("GET", "http://example.com/article/7?draft=1", nil)
	req := RequestFromHTTP(hr)

	assert.Equal(t, "http", req.Scheme())
	assert.Equal(t, "example.com", req.Host())
	assert.Equal(t, "/article/7", req.Path())
	assert.Equal(t, "1", req.Query().Get("draft"))
}

func TestURL_Modifiers(t *testing.T) {
	t.Parallel()

	ref := NewURL("https", "example.com", "/base")
	assert.Equal(t, "/base/", ref.Path(), "path is normalised to end in a slash")

	other := ref.WithHost("api.example.com").WithPath("/v2")
	assert.Equal(t, "api.example.com", other.Host())
	assert.Equal(t, "/v2/", other.Path())

	// Modifiers never mutate the receiver.
	assert.Equal(t, "example.com", ref.Host())
	assert.Equal(t, "/base/", ref.Path())

	assert.Equal(t, "https://example.com/base/", ref.String())
}

func TestParseURL(t *testing.T) {
	t.Parallel()

	ref, err := ParseURL("https://example.com:443/app")
	require.NoError(t, err)
	assert.Equal(t, "https", ref.Scheme())
	assert.Equal(t, "example.com", ref.Host())
	assert.Equal(t, "/app/", ref.Path())
}
