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

package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		host    string
		want    string
	}{
		{name: "tld", pattern: "www.example.%tld%", host: "example.com", want: "www.example.com"},
		{name: "domain", pattern: "www.%domain%", host: "example.com", want: "www.example.com"},
		{name: "domain from subdomain host", pattern: "www.%domain%", host: "api.example.com", want: "www.example.com"},
		{name: "sld two labels", pattern: "%sld%.example.com", host: "example.com", want: "example.example.com"},
		{name: "sld three labels", pattern: "%sld%.example.com", host: "api.example.com", want: "api.example.com"},
		{name: "sld deep subdomain", pattern: "%sld%.example.com", host: "a.b.example.com", want: "a.b.example.com"},
		{name: "single label", pattern: "%domain%", host: "localhost", want: "localhost"},
		{name: "single label sld empty", pattern: "x%sld%x", host: "localhost", want: "xx"},
		{name: "ipv4 is one label", pattern: "%domain%", host: "192.168.0.1", want: "192.168.0.1"},
		{name: "ipv4 tld", pattern: "%tld%", host: "10.0.0.7", want: "10.0.0.7"},
		{name: "no markers", pattern: "static.example.com", host: "whatever.org", want: "static.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ExpandHost(tt.pattern, tt.host))
		})
	}
}

func TestMatchHost(t *testing.T) {
	t.Parallel()

	t.Run("relative mask matches any host", func(t *testing.T) {
		t.Parallel()

		m := MustCompile("<presenter>")
		_, ok := m.MatchHost("anything.example.com")
		assert.True(t, ok)
	})

	t.Run("literal host", func(t *testing.T) {
		t.Parallel()

		m := MustCompile("//example.com/<presenter>")
		_, ok := m.MatchHost("example.com")
		assert.True(t, ok)
		_, ok = m.MatchHost("other.org")
		assert.False(t, ok)
	})

	t.Run("host placeholder", func(t *testing.T) {
		t.Parallel()

		m := MustCompile("//<subdomain>.example.com/<presenter>")
		vals, ok := m.MatchHost("api.example.com")
		require.True(t, ok)
		assert.Equal(t, "api", vals["subdomain"])

		_, ok = m.MatchHost("api.other.org")
		assert.False(t, ok)
	})

	t.Run("domain substitution", func(t *testing.T) {
		t.Parallel()

		m := MustCompile("//www.%domain%/<presenter>")
		_, ok := m.MatchHost("www.example.com")
		assert.True(t, ok)
		_, ok = m.MatchHost("api.example.com")
		assert.False(t, ok)
	})
}

func TestRenderHost(t *testing.T) {
	t.Parallel()

	t.Run("relative mask renders reference host", func(t *testing.T) {
		t.Parallel()

		m := MustCompile("<presenter>")
		host, ok := m.RenderHost("example.com", nil)
		require.True(t, ok)
		assert.Equal(t, "example.com", host)
	})

	t.Run("placeholder and substitution", func(t *testing.T) {
		t.Parallel()

		m := MustCompile("//<subdomain>.%domain%/<presenter>")
		host, ok := m.RenderHost("example.com", func(name string) (string, bool, bool) {
			if name == "subdomain" {
				return "api", true, true
			}
			return "", false, false
		})
		require.True(t, ok)
		assert.Equal(t, "api.example.com", host)
	})

	t.Run("missing host placeholder fails", func(t *testing.T) {
		t.Parallel()

		m := MustCompile("//<subdomain>.example.com/<presenter>")
		_, ok := m.RenderHost("example.com", func(string) (string, bool, bool) {
			return "", false, false
		})
		assert.False(t, ok)
	})
}
