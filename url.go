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
	"net/http"
	"net/url"
	"strings"
)

// Request is the router's read-only view of an inbound request URL.
// The base path separates the application mount point from the routed
// part; RelativePath is what masks are matched against. Modifiers return
// new views, the original is never mutated.
type Request struct {
	scheme   string
	host     string
	path     string
	basePath string
	query    url.Values
}

// NewRequest builds a request view from a parsed URL with base path "/".
func NewRequest(u *url.URL) *Request {
	host := u.Host
	if i := strings.IndexByte(host, ':'); i >= 0 && !strings.Contains(host, "]") {
		host = host[:i]
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return &Request{
		scheme:   u.Scheme,
		host:     host,
		path:     path,
		basePath: "/",
		query:    u.Query(),
	}
}

// RequestFromHTTP builds a request view from an *http.Request, deriving
// the scheme from the TLS state when the URL carries none.
func RequestFromHTTP(r *http.Request) *Request {
	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		if r.TLS != nil {
			u.Scheme = "https"
		} else {
			u.Scheme = "http"
		}
	}
	return NewRequest(&u)
}

// Scheme returns the request scheme.
func (r *Request) Scheme() string { return r.scheme }

// Host returns the request host without a port.
func (r *Request) Host() string { return r.host }

// Path returns the full decoded request path.
func (r *Request) Path() string { return r.path }

// BasePath returns the application base path. It always ends with "/".
func (r *Request) BasePath() string { return r.basePath }

// RelativePath returns the part of the path after the base path, or ""
// when the path does not live under the base path.
func (r *Request) RelativePath() string {
	if !strings.HasPrefix(r.path, r.basePath) {
		return ""
	}
	return r.path[len(r.basePath):]
}

// Query returns the query values. Callers must not mutate the result.
func (r *Request) Query() url.Values { return r.query }

// WithBasePath returns a new view with the given base path. The base path
// is normalised to end with "/".
func (r *Request) WithBasePath(basePath string) *Request {
	out := *r
	out.basePath = ensureTrailingSlash(basePath)
	return &out
}

// URL is the immutable reference URL used as the anchor for outbound
// construction. Its path acts as the base path of constructed URLs and
// always ends with "/".
type URL struct {
	scheme string
	host   string
	path   string
}

// NewURL builds a reference URL. The path is normalised to end with "/".
func NewURL(scheme, host, path string) *URL {
	return &URL{scheme: scheme, host: host, path: ensureTrailingSlash(path)}
}

// ParseURL builds a reference URL from a raw URL string.
func ParseURL(raw string) (*URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	host := u.Host
	if i := strings.IndexByte(host, ':'); i >= 0 && !strings.Contains(host, "]") {
		host = host[:i]
	}
	return NewURL(u.Scheme, host, u.Path), nil
}

// Scheme returns the reference scheme.
func (u *URL) Scheme() string { return u.scheme }

// Host returns the reference host.
func (u *URL) Host() string { return u.host }

// Path returns the reference base path. It always ends with "/".
func (u *URL) Path() string { return u.path }

// WithHost returns a new reference URL with the host replaced.
func (u *URL) WithHost(host string) *URL {
	out := *u
	out.host = host
	return &out
}

// WithPath returns a new reference URL with the path replaced.
func (u *URL) WithPath(path string) *URL {
	out := *u
	out.path = ensureTrailingSlash(path)
	return &out
}

// String renders the reference URL.
func (u *URL) String() string {
	return u.scheme + "://" + u.host + u.path
}

func ensureTrailingSlash(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
