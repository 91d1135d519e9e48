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

// Package mask compiles URL mask strings into immutable patterns that can
// both match an incoming path and render an outgoing one.
//
// A mask describes one URL shape. Path segments are separated by "/" and
// may mix literal text, placeholders, and optional groups:
//
//	<presenter>/<action>[/<id \d{1,3}>]
//
// A placeholder has the form <name [regex] [default]>. The regex constrains
// the matched value (default "[^/]+"); the default makes the placeholder
// satisfiable without a caller-supplied value. Optional groups "[...]" nest
// and are taken on rendering only when at least one placeholder inside
// carries a non-default value.
//
// A mask prefixed with "//host/" is absolute: the host part is matched
// against the request host and may itself contain placeholders plus the
// textual substitutions %tld%, %domain% and %sld% derived from the
// reference host (see ExpandHost).
//
// Compilation is a pure function: Compile returns an immutable *Mask that
// is safe for concurrent use and can be shared between routes and tests.
package mask
