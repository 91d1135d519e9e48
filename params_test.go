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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Clone(t *testing.T) {
	t.Parallel()

	p := Params{"a": 1, "b": nil}
	c := p.Clone()
	c["a"] = 2

	assert.Equal(t, 1, p["a"])
	assert.Nil(t, Params(nil).Clone())
}

func TestParams_Has(t *testing.T) {
	t.Parallel()

	p := Params{"a": 1, "b": nil}
	assert.True(t, p.Has("a"))
	assert.False(t, p.Has("b"), "nil value counts as absent")
	assert.False(t, p.Has("c"))
}

func TestScalarString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{name: "string", in: "x", want: "x", ok: true},
		{name: "int", in: 42, want: "42", ok: true},
		{name: "int64", in: int64(-7), want: "-7", ok: true},
		{name: "uint", in: uint(9), want: "9", ok: true},
		{name: "bool", in: true, want: "true", ok: true},
		{name: "float", in: 1.5, want: "1.5", ok: true},
		{name: "nil", in: nil},
		{name: "slice", in: []string{"a"}},
		{name: "map", in: map[string]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := scalarString(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSameScalar(t *testing.T) {
	t.Parallel()

	assert.True(t, sameScalar(42, "42"))
	assert.True(t, sameScalar("a", "a"))
	assert.False(t, sameScalar("a", "b"))
	assert.False(t, sameScalar(nil, "a"))
	assert.False(t, sameScalar([]int{1}, "1"))
}
