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
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
)

func benchRequest(b *testing.B, raw string) *Request {
	b.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		b.Fatal(err)
	}
	return NewRequest(u)
}

func BenchmarkRoute_Match(b *testing.B) {
	r := MustNewRoute(`<presenter>/<action>[/<id \d+>]`, nil)
	req := benchRequest(b, "http://example.com/product/detail/42")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if r.Match(req) == nil {
			b.Fatal("expected match")
		}
	}
}

func BenchmarkRoute_ConstructURL(b *testing.B) {
	r := MustNewRoute(`<presenter>/<action>[/<id \d+>]`, nil)
	ref := NewURL("http", "example.com", "/")
	params := Params{"presenter": "product", "action": "detail", "id": "42"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := r.ConstructURL(params, ref); !ok {
			b.Fatal("expected construction")
		}
	}
}

func BenchmarkRouteList_ConstructURL_Cached(b *testing.B) {
	list := NewRouteList()
	for i := 0; i < 50; i++ {
		list.MustAddRoute(fmt.Sprintf("p%d/<id \\d+>", i), Metadata{
			"presenter": {Value: fmt.Sprintf("p%d", i)},
		})
	}
	list.WarmupCache()
	ref := NewURL("http", "example.com", "/")
	params := Params{"presenter": "p42", "id": "7"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := list.ConstructURL(params, ref); !ok {
			b.Fatal("expected construction")
		}
	}
}

// Comparison benchmarks against gorilla/mux, the other bidirectional
// router in common use: mux matches with regex-based routes and builds
// URLs through Route.URL.
func BenchmarkComparison_Match(b *testing.B) {
	b.Run("routeway", func(b *testing.B) {
		r := MustNewRoute(`product/detail/<id \d+>`, nil)
		req := benchRequest(b, "http://example.com/product/detail/42")
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if r.Match(req) == nil {
				b.Fatal("expected match")
			}
		}
	})

	b.Run("gorilla-mux", func(b *testing.B) {
		router := mux.NewRouter()
		router.Path("/product/detail/{id:[0-9]+}").Handler(http.NotFoundHandler()).Name("detail")
		hr, err := http.NewRequest("GET", "http://example.com/product/detail/42", nil)
		if err != nil {
			b.Fatal(err)
		}
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			var m mux.RouteMatch
			if !router.Match(hr, &m) {
				b.Fatal("expected match")
			}
		}
	})
}

func BenchmarkComparison_BuildURL(b *testing.B) {
	b.Run("routeway", func(b *testing.B) {
		r := MustNewRoute(`product/detail/<id \d+>`, nil)
		ref := NewURL("http", "example.com", "/")
		params := Params{"id": "42"}
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, ok := r.ConstructURL(params, ref); !ok {
				b.Fatal("expected construction")
			}
		}
	})

	b.Run("gorilla-mux", func(b *testing.B) {
		router := mux.NewRouter()
		router.Path("/product/detail/{id:[0-9]+}").Handler(http.NotFoundHandler()).Name("detail")
		route := router.Get("detail")
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := route.URL("id", "42"); err != nil {
				b.Fatal(err)
			}
		}
	})
}
