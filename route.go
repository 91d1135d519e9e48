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
	"net/url"
	"strings"

	"github.com/routeway/routeway/mask"
)

// Router is anything that can resolve a request into parameters and
// rebuild a URL from parameters. Both Route and RouteList implement it,
// so brokers nest arbitrarily.
type Router interface {
	// Match resolves the request into a parameter mapping, or nil when
	// this router does not apply.
	Match(req *Request) Params

	// ConstructURL builds an absolute URL from the mapping anchored at
	// ref, or reports false when the mapping cannot satisfy this router.
	ConstructURL(params Params, ref *URL) (string, bool)
}

// Compile-time check that Route satisfies the Router contract.
var _ Router = (*Route)(nil)

// Param carries per-parameter metadata attached to a route.
//
// Value fixes the parameter to a constant: the route only constructs when
// the caller's value agrees, and Match always reports it. A constant for a
// name that also appears in the mask path is only valid when it agrees
// with the mask's default. Default supplies a value for absent
// placeholders and drives default elision on construction. Pattern
// overrides the placeholder's regex fragment.
type Param struct {
	Value     any
	Default   any
	Pattern   string
	FilterIn  FilterIn
	FilterOut FilterOut
}

// Metadata maps parameter names to their route-level metadata.
type Metadata map[string]Param

// Route is a single compiled mask with metadata and filters. It is
// immutable after construction (except for SetName during setup) and safe
// for concurrent use.
type Route struct {
	mask       *mask.Mask
	defaults   map[string]any
	constants  Params
	filtersIn  map[string]FilterIn
	filtersOut map[string]FilterOut
	globalIn   GlobalFilterIn
	globalOut  GlobalFilterOut
	name       string
}

// RouteOption adjusts route construction.
type RouteOption func(*routeConfig)

type routeConfig struct {
	metadata  Metadata
	globalIn  GlobalFilterIn
	globalOut GlobalFilterOut
	name      string
}

func (c *routeConfig) param(name string) Param {
	if c.metadata == nil {
		c.metadata = make(Metadata)
	}
	return c.metadata[name]
}

// WithDefault sets the default value for a parameter.
func WithDefault(name string, value any) RouteOption {
	return func(c *routeConfig) {
		p := c.param(name)
		p.Default = value
		c.metadata[name] = p
	}
}

// WithConstant fixes a parameter to a constant value.
func WithConstant(name string, value any) RouteOption {
	return func(c *routeConfig) {
		p := c.param(name)
		p.Value = value
		c.metadata[name] = p
	}
}

// WithParamPattern overrides the regex fragment for a placeholder.
func WithParamPattern(name, pattern string) RouteOption {
	return func(c *routeConfig) {
		p := c.param(name)
		p.Pattern = pattern
		c.metadata[name] = p
	}
}

// WithFilter attaches per-parameter inbound and outbound filters. Either
// may be nil.
func WithFilter(name string, in FilterIn, out FilterOut) RouteOption {
	return func(c *routeConfig) {
		p := c.param(name)
		p.FilterIn = in
		p.FilterOut = out
		c.metadata[name] = p
	}
}

// WithGlobalFilterIn attaches a whole-mapping filter that runs after the
// per-parameter inbound pass.
func WithGlobalFilterIn(f GlobalFilterIn) RouteOption {
	return func(c *routeConfig) { c.globalIn = f }
}

// WithGlobalFilterOut attaches a whole-mapping filter that runs before
// the per-parameter outbound pass.
func WithGlobalFilterOut(f GlobalFilterOut) RouteOption {
	return func(c *routeConfig) { c.globalOut = f }
}

// WithName assigns a name for reverse routing via RouteList.URLByName.
func WithName(name string) RouteOption {
	return func(c *routeConfig) { c.name = name }
}

// NewRoute compiles a mask string into a Route. Metadata may be nil.
// Compilation errors (*mask.SyntaxError, *mask.DuplicateParameterError,
// ErrConstantMismatch) surface here; matching and construction never
// return errors.
func NewRoute(pattern string, metadata Metadata, opts ...RouteOption) (*Route, error) {
	cfg := routeConfig{metadata: make(Metadata, len(metadata))}
	for name, p := range metadata {
		cfg.metadata[name] = p
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var maskOpts []mask.Option
	for name, p := range cfg.metadata {
		if p.Pattern != "" {
			maskOpts = append(maskOpts, mask.WithPattern(name, p.Pattern))
		}
	}

	m, err := mask.Compile(pattern, maskOpts...)
	if err != nil {
		return nil, err
	}

	r := &Route{
		mask:       m,
		defaults:   make(map[string]any),
		constants:  make(Params),
		filtersIn:  make(map[string]FilterIn),
		filtersOut: make(map[string]FilterOut),
		globalIn:   cfg.globalIn,
		globalOut:  cfg.globalOut,
		name:       cfg.name,
	}

	for name, p := range cfg.metadata {
		if p.FilterIn != nil {
			r.filtersIn[name] = p.FilterIn
		}
		if p.FilterOut != nil {
			r.filtersOut[name] = p.FilterOut
		}
		if p.Default != nil {
			r.defaults[name] = p.Default
		}
		if p.Value == nil {
			continue
		}
		if ph, inPath := m.Placeholder(name); inPath {
			// A path parameter can only be pinned through its default.
			if !ph.HasDefault || !sameScalar(ph.Default, p.Value) {
				return nil, fmt.Errorf("%w: parameter %q in mask %q", ErrConstantMismatch, name, pattern)
			}
			continue
		}
		r.constants[name] = p.Value
		r.defaults[name] = p.Value
	}

	// Mask-level defaults, unless metadata overrode them.
	for _, ph := range m.Placeholders() {
		if !ph.HasDefault {
			continue
		}
		if _, ok := r.defaults[ph.Name]; !ok {
			r.defaults[ph.Name] = ph.Default
		}
	}

	return r, nil
}

// MustNewRoute is like NewRoute but panics on error. Intended for route
// tables assembled at program start.
func MustNewRoute(pattern string, metadata Metadata, opts ...RouteOption) *Route {
	r, err := NewRoute(pattern, metadata, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Pattern returns the original mask string.
func (r *Route) Pattern() string { return r.mask.Pattern() }

// Name returns the route name, empty if unnamed.
func (r *Route) Name() string { return r.name }

// SetName assigns a name for reverse routing and returns the route for
// chaining. Call during setup only.
func (r *Route) SetName(name string) *Route {
	r.name = name
	return r
}

// ConstantParameters returns the parameters whose value is fixed by the
// route's metadata. The broker uses them for cache-key selection.
func (r *Route) ConstantParameters() Params {
	return r.constants.Clone()
}

// Match resolves the request against the route's mask. It returns nil
// when the host or path does not fit, when a parameter fails its filter,
// or when the global inbound filter rejects the mapping. On success the
// mapping holds every placeholder (defaulted or nil when absent), every
// constant, and the residual query parameters.
func (r *Route) Match(req *Request) Params {
	hostVals, ok := r.mask.MatchHost(req.Host())
	if !ok {
		return nil
	}

	rel := req.RelativePath()
	if r.mask.TrailingSlash() {
		if !strings.HasSuffix(rel, "/") {
			return nil
		}
		rel = rel[:len(rel)-1]
	} else if rel != "" && strings.HasSuffix(rel, "/") {
		return nil
	}

	pathVals, ok := r.mask.MatchPath(rel)
	if !ok {
		return nil
	}

	params := make(Params, len(pathVals)+len(hostVals)+len(r.defaults))
	for name, raw := range hostVals {
		v, ok := r.inbound(name, raw)
		if !ok {
			return nil
		}
		params[name] = v
	}
	for name, raw := range pathVals {
		v, ok := r.inbound(name, raw)
		if !ok {
			return nil
		}
		params[name] = v
	}

	// Residual query parameters pass through, filling optional
	// placeholders but never overriding matched ones.
	for name, vs := range req.Query() {
		if _, present := params[name]; present || len(vs) == 0 {
			continue
		}
		v, ok := r.inbound(name, vs[0])
		if !ok {
			return nil
		}
		params[name] = v
	}

	for name, d := range r.defaults {
		if _, present := params[name]; !present {
			params[name] = d
		}
	}
	for _, ph := range r.mask.Placeholders() {
		if _, present := params[ph.Name]; !present {
			params[ph.Name] = nil
		}
	}

	if r.globalIn != nil {
		params = r.globalIn(params)
		if params == nil {
			return nil
		}
	}
	return params
}

func (r *Route) inbound(name, raw string) (any, bool) {
	if f := r.filtersIn[name]; f != nil {
		return applyFilterIn(f, raw)
	}
	return raw, true
}

// ConstructURL builds an absolute URL anchored at ref. It reports false
// when a required placeholder cannot be satisfied, a supplied value fails
// its regex or filter, or a constant disagrees. Parameters not consumed
// by the path become query entries unless they equal their default.
func (r *Route) ConstructURL(params Params, ref *URL) (string, bool) {
	working := params.Clone()
	if working == nil {
		working = make(Params)
	}
	if r.globalOut != nil {
		working = r.globalOut(working)
		if working == nil {
			return "", false
		}
	}

	for name, cv := range r.constants {
		if v, present := working[name]; present && v != nil && !sameScalar(v, cv) {
			return "", false
		}
		delete(working, name)
	}

	consumed := make(map[string]struct{})
	lookup := func(name string) (string, bool, bool) {
		defStr, hasDef := r.defaultString(name)
		if v, present := working[name]; present && v != nil {
			s, ok := r.outbound(name, v)
			if !ok || !r.mask.ValidValue(name, s) {
				return "", false, false
			}
			consumed[name] = struct{}{}
			return s, true, !hasDef || s != defStr
		}
		if hasDef {
			consumed[name] = struct{}{}
			return defStr, true, false
		}
		return "", false, false
	}

	path, ok := r.mask.RenderPath(lookup)
	if !ok {
		return "", false
	}
	host, ok := r.mask.RenderHost(ref.Host(), lookup)
	if !ok {
		return "", false
	}

	query := url.Values{}
	for name, v := range working {
		if _, done := consumed[name]; done || v == nil {
			continue
		}
		if d, hasDef := r.defaults[name]; hasDef && sameScalar(v, d) {
			continue
		}
		s, ok := r.outbound(name, v)
		if !ok {
			return "", false
		}
		query.Set(name, s)
	}

	var sb strings.Builder
	sb.WriteString(ref.Scheme())
	sb.WriteString("://")
	sb.WriteString(host)
	sb.WriteString(ref.Path())
	sb.WriteString(path)
	if r.mask.TrailingSlash() && path != "" {
		sb.WriteString("/")
	}
	if enc := query.Encode(); enc != "" {
		sb.WriteString("?")
		sb.WriteString(enc)
	}
	return sb.String(), true
}

func (r *Route) outbound(name string, v any) (string, bool) {
	if f := r.filtersOut[name]; f != nil {
		return f(v)
	}
	return scalarString(v)
}

func (r *Route) defaultString(name string) (string, bool) {
	d, ok := r.defaults[name]
	if !ok || d == nil {
		return "", false
	}
	return scalarString(d)
}
