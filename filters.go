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

import "strings"

// FilterIn transforms a raw inbound value into the parameter value stored
// in the mapping. Returning ok=false rejects the whole match for the
// route. The returned value must be a scalar; a non-scalar result also
// rejects the match.
type FilterIn func(raw string) (value any, ok bool)

// FilterOut transforms an outbound parameter value into the string
// emitted into the URL. Returning ok=false fails the construction.
type FilterOut func(value any) (raw string, ok bool)

// GlobalFilterIn transforms the whole parameter mapping after the
// per-parameter inbound pass. Returning nil rejects the match. The filter
// receives a private copy and may add, remove or transform parameters.
type GlobalFilterIn func(params Params) Params

// GlobalFilterOut transforms the whole parameter mapping before the
// per-parameter outbound pass. Returning nil fails the construction.
type GlobalFilterOut func(params Params) Params

// FilterLower lower-cases values in both directions. Useful for masks
// whose parameters are case-insensitive on the wire.
func FilterLower() (FilterIn, FilterOut) {
	in := func(raw string) (any, bool) {
		return strings.ToLower(raw), true
	}
	out := func(v any) (string, bool) {
		s, ok := scalarString(v)
		if !ok {
			return "", false
		}
		return strings.ToLower(s), true
	}
	return in, out
}

// applyFilterIn runs a per-parameter inbound filter, enforcing the scalar
// result contract.
func applyFilterIn(f FilterIn, raw string) (any, bool) {
	v, ok := f(raw)
	if !ok || !isScalar(v) {
		return nil, false
	}
	return v, true
}
