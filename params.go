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
	"maps"
	"strconv"
)

// Params is a parameter mapping produced by Match and consumed by
// ConstructURL. A nil value denotes a parameter that is present but
// carries no value (an untaken optional placeholder without a default).
type Params map[string]any

// Clone returns a shallow copy of the mapping. Clone of nil is nil.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// Has reports whether the named parameter is present with a non-nil value.
func (p Params) Has(name string) bool {
	v, ok := p[name]
	return ok && v != nil
}

// isScalar reports whether v is one of the scalar kinds the router can
// carry through a URL.
func isScalar(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// scalarString converts a scalar to its canonical string form. The second
// result is false for nil and non-scalar values.
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	}
	return "", false
}

// sameScalar reports whether two scalars are equal under their canonical
// string forms, so 42 and "42" compare equal across the URL boundary.
func sameScalar(a, b any) bool {
	as, aok := scalarString(a)
	bs, bok := scalarString(b)
	return aok && bok && as == bs
}
