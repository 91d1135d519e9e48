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

// Package routeway is a bidirectional URL router. It parses an incoming
// request URL into a parameter mapping and reconstructs a canonical URL
// from a parameter mapping, using the same compiled mask for both
// directions.
//
// # Key Features
//
//   - Mask-based routes: literals, placeholders with per-parameter regex
//     and defaults, nestable optional sections, host patterns
//   - Bidirectional: Match extracts parameters, ConstructURL rebuilds the
//     canonical URL from parameters
//   - Per-parameter and whole-mapping filters on both directions
//   - Hierarchical broker (RouteList) with domain and path scoping
//   - Construction-time dispatch cache bucketing child routers by the
//     value of a discriminating parameter
//   - Optional OpenTelemetry metrics and structured diagnostics
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "net/url"
//
//	    "github.com/routeway/routeway"
//	)
//
//	func main() {
//	    list := routeway.NewRouteList()
//	    list.MustAddRoute(`<presenter>/<action>[/<id \d+>]`, routeway.Metadata{
//	        "action": {Default: "default"},
//	    })
//	    list.WarmupCache()
//
//	    u, _ := url.Parse("https://example.com/product/detail/42")
//	    params := list.Match(routeway.NewRequest(u))
//	    fmt.Println(params["presenter"], params["action"], params["id"])
//
//	    ref := routeway.NewURL("https", "example.com", "/")
//	    out, _ := list.ConstructURL(params, ref)
//	    fmt.Println(out) // https://example.com/product/detail/42
//	}
//
// # Matching and Construction
//
// Matching walks the broker tree in insertion order and returns the first
// route's parameters; construction consults the dispatch cache to visit
// only the child routers whose constant parameters are compatible with the
// outbound mapping. Routing-time failures are reported as nil results,
// never as errors; only mask compilation and index errors surface as Go
// errors at registration time. The one exception is URLByName, which
// returns ErrRouteNotFound when the named route cannot build a URL.
//
// # Concurrency
//
// A Route is immutable after construction. A RouteList is mutable during
// setup; after WarmupCache it is safe for concurrent Match and
// ConstructURL calls provided no further mutation occurs. The recommended
// discipline is eager warmup at boot.
package routeway
