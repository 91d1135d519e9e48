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

import "errors"

var (
	// ErrIndexOutOfRange indicates that Modify was called with an index
	// outside the list.
	ErrIndexOutOfRange = errors.New("route list index out of range")

	// ErrRouteNotFound indicates that no route with the requested name is
	// registered in the list or any nested list, or that no route with that
	// name could construct a URL from the given parameters.
	ErrRouteNotFound = errors.New("route not found")

	// ErrConstantMismatch indicates that a metadata constant conflicts
	// with a default declared for the same parameter in the mask.
	ErrConstantMismatch = errors.New("constant parameter conflicts with mask default")
)
