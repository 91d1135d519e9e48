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

import "fmt"

// SyntaxError reports a malformed mask string. It carries the offending
// pattern and the byte offset at which parsing failed.
type SyntaxError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("mask: invalid pattern %q at offset %d: %s", e.Pattern, e.Pos, e.Msg)
}

// DuplicateParameterError reports a parameter name that appears more than
// once in a mask.
type DuplicateParameterError struct {
	Pattern string
	Name    string
}

func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("mask: duplicate parameter %q in pattern %q", e.Name, e.Pattern)
}
