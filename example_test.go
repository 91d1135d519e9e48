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

package routeway_test

import (
	"fmt"
	"net/url"

	"github.com/routeway/routeway"
)

func ExampleRoute_Match() {
	route := routeway.MustNewRoute(`<presenter>/<action>[/<id \d+>]`, routeway.Metadata{
		"action": {Default: "default"},
	})

	u, _ := url.Parse("http://example.com/product/detail/42")
	params := route.Match(routeway.NewRequest(u))

	fmt.Println(params["presenter"], params["action"], params["id"])
	// Output: product detail 42
}

func ExampleRoute_ConstructURL() {
	route := routeway.MustNewRoute(`<presenter>[/<id \d+>]`, nil)
	ref := routeway.NewURL("https", "example.com", "/")

	with, _ := route.ConstructURL(routeway.Params{"presenter": "article", "id": 7}, ref)
	without, _ := route.ConstructURL(routeway.Params{"presenter": "article"}, ref)

	fmt.Println(with)
	fmt.Println(without)
	// Output:
	// https://example.com/article/7
	// https://example.com/article
}

func ExampleRouteList() {
	list := routeway.NewRouteList()
	list.MustAddRoute("article/<id \\d+>", routeway.Metadata{
		"presenter": {Value: "article"},
	})
	list.MustAddRoute("<presenter>/<action>", routeway.Metadata{
		"action": {Default: "default"},
	})
	list.WarmupCache()

	u, _ := url.Parse("http://example.com/article/42")
	params := list.Match(routeway.NewRequest(u))
	fmt.Println(params["presenter"], params["id"])

	out, _ := list.ConstructURL(routeway.Params{"presenter": "article", "id": 7}, routeway.NewURL("http", "example.com", "/"))
	fmt.Println(out)
	// Output:
	// article 42
	// http://example.com/article/7
}

func ExampleRouteList_WithPath() {
	list := routeway.NewRouteList()
	list.WithPath("/admin").MustAddRoute("<presenter>", nil)
	list.WarmupCache()

	u, _ := url.Parse("http://example.com/admin/users")
	params := list.Match(routeway.NewRequest(u))
	fmt.Println(params["presenter"])
	// Output: users
}
