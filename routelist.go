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
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/routeway/routeway/mask"
)

// Entry flags.
const (
	// OneWay marks a router as construction-only: it never contributes to
	// Match and does not influence cache-key selection.
	OneWay = 1 << 0
)

// constantProvider is implemented by routers that pin parameters to
// constants; the broker uses it for cache-key selection.
type constantProvider interface {
	ConstantParameters() Params
}

// warmable is implemented by nested brokers so warmup recurses.
type warmable interface {
	WarmupCache()
}

type listEntry struct {
	router Router
	flags  int
}

// RouteList is an ordered composition of routers with optional domain and
// path scoping and a construction-time dispatch cache. It implements
// Router itself, so lists nest arbitrarily.
//
// A RouteList is mutable during setup. After WarmupCache it is safe for
// concurrent Match and ConstructURL across goroutines provided no further
// mutation occurs; mutation requires external exclusion.
type RouteList struct {
	entries    []listEntry
	domain     string
	pathPrefix string // normalised, "admin/" form; empty when unscoped
	parent     *RouteList

	cacheMu  sync.Mutex
	warm     bool
	cacheKey string
	ranks    map[string][]Router
	refMemo  map[*URL]*URL

	logger      *slog.Logger
	diagnostics DiagnosticHandler
	recorder    *Recorder
}

// Compile-time check that the broker is itself a Router.
var _ Router = (*RouteList)(nil)

// ListOption configures a RouteList.
type ListOption func(*RouteList)

// WithLogger sets the logger used for registration and cache debug logs.
func WithLogger(logger *slog.Logger) ListOption {
	return func(l *RouteList) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDiagnostics sets a diagnostic handler for the list. Nested lists
// created with WithDomain and WithPath inherit it.
func WithDiagnostics(handler DiagnosticHandler) ListOption {
	return func(l *RouteList) { l.diagnostics = handler }
}

// WithMetrics attaches a metrics recorder. Match, ConstructURL and cache
// warmup are instrumented when set.
func WithMetrics(rec *Recorder) ListOption {
	return func(l *RouteList) { l.recorder = rec }
}

// NewRouteList creates an empty broker.
func NewRouteList(opts ...ListOption) *RouteList {
	l := &RouteList{
		logger:  NoopLogger(),
		refMemo: make(map[*URL]*URL),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add appends a router. Optional flags are OR-ed together. Returns the
// list for chaining. Any mutation invalidates the dispatch cache.
func (l *RouteList) Add(r Router, flags ...int) *RouteList {
	l.entries = append(l.entries, listEntry{router: r, flags: orFlags(flags)})
	l.invalidate()
	return l
}

// Prepend inserts a router at the front of the list.
func (l *RouteList) Prepend(r Router, flags ...int) *RouteList {
	l.entries = append([]listEntry{{router: r, flags: orFlags(flags)}}, l.entries...)
	l.invalidate()
	return l
}

// Modify replaces the router at index; a nil router deletes the entry.
// Returns ErrIndexOutOfRange when index does not address an entry.
func (l *RouteList) Modify(index int, r Router) error {
	if index < 0 || index >= len(l.entries) {
		return ErrIndexOutOfRange
	}
	if r == nil {
		l.entries = append(l.entries[:index], l.entries[index+1:]...)
	} else {
		l.entries[index].router = r
	}
	l.invalidate()
	return nil
}

// AddRoute compiles a mask into a Route and appends it. Mask syntax
// errors surface here and the route is not added.
func (l *RouteList) AddRoute(pattern string, metadata Metadata, opts ...RouteOption) (*Route, error) {
	r, err := NewRoute(pattern, metadata, opts...)
	if err != nil {
		return nil, err
	}
	l.Add(r)
	l.logger.Debug("route registered", "mask", pattern)
	l.emit(DiagnosticEvent{
		Kind:    DiagRouteRegistered,
		Message: "route registered",
		Fields:  map[string]any{"mask": pattern},
	})
	return r, nil
}

// MustAddRoute is like AddRoute but panics on error.
func (l *RouteList) MustAddRoute(pattern string, metadata Metadata, opts ...RouteOption) *Route {
	r, err := l.AddRoute(pattern, metadata, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// WithDomain creates a nested list scoped to the given host pattern
// (%tld%, %domain% and %sld% substitutions apply), attaches it as a child
// and returns it. Use End to come back to the parent.
func (l *RouteList) WithDomain(domain string) *RouteList {
	child := l.child()
	child.domain = domain
	l.Add(child)
	return child
}

// WithPath creates a nested list scoped to the given path prefix,
// attaches it as a child and returns it. The prefix is normalised to the
// "admin/" form at registration. Use End to come back to the parent.
func (l *RouteList) WithPath(prefix string) *RouteList {
	child := l.child()
	child.pathPrefix = normalizePrefix(prefix)
	l.Add(child)
	return child
}

// End returns the parent list of a nested list, or nil at the root.
func (l *RouteList) End() *RouteList { return l.parent }

func (l *RouteList) child() *RouteList {
	child := NewRouteList()
	child.parent = l
	child.logger = l.logger
	child.diagnostics = l.diagnostics
	child.recorder = l.recorder
	return child
}

// Match gates the request through the domain and path scopes, then walks
// the children in insertion order and returns the first non-nil result.
// One-way children are skipped.
func (l *RouteList) Match(req *Request) Params {
	start := time.Now()
	params := l.match(req)
	if l.recorder != nil {
		l.recorder.RecordMatch(params != nil, time.Since(start))
	}
	return params
}

func (l *RouteList) match(req *Request) Params {
	if l.domain != "" && req.Host() != mask.ExpandHost(l.domain, req.Host()) {
		return nil
	}
	if l.pathPrefix != "" {
		rel := req.RelativePath()
		if !strings.HasPrefix(rel, l.pathPrefix) {
			return nil
		}
		req = req.WithBasePath(req.BasePath() + l.pathPrefix)
	}
	for _, e := range l.entries {
		if e.flags&OneWay != 0 {
			continue
		}
		if params := e.router.Match(req); params != nil {
			return params
		}
	}
	return nil
}

// ConstructURL applies the reverse domain and path adjustments to ref,
// warms the dispatch cache if needed, and asks the candidate bucket for
// the cache-key value of params, falling back to the "*" bucket when the
// value is absent, non-scalar or unknown. The first successful
// construction wins.
func (l *RouteList) ConstructURL(params Params, ref *URL) (string, bool) {
	start := time.Now()
	url, ok := l.construct(params, ref)
	if l.recorder != nil {
		l.recorder.RecordConstruct(ok, time.Since(start))
	}
	return url, ok
}

func (l *RouteList) construct(params Params, ref *URL) (string, bool) {
	l.cacheMu.Lock()
	adjusted, memoised := l.refMemo[ref]
	if !memoised {
		adjusted = l.adjustRef(ref)
		l.refMemo[ref] = adjusted
	}
	l.ensureWarmLocked()
	key := l.cacheKey
	ranks := l.ranks
	l.cacheMu.Unlock()

	bucket := ranks["*"]
	if key != "" {
		if v, present := params[key]; present {
			if s, scalar := scalarString(v); scalar {
				if b, known := ranks[s]; known {
					bucket = b
				}
			}
		}
	}

	for _, r := range bucket {
		if url, ok := r.ConstructURL(params, adjusted); ok {
			return url, true
		}
	}
	return "", false
}

func (l *RouteList) adjustRef(ref *URL) *URL {
	adjusted := ref
	if l.domain != "" {
		adjusted = adjusted.WithHost(mask.ExpandHost(l.domain, ref.Host()))
	}
	if l.pathPrefix != "" {
		adjusted = adjusted.WithPath(adjusted.Path() + l.pathPrefix)
	}
	return adjusted
}

// WarmupCache eagerly builds the dispatch cache of this list and every
// nested list. Calling it at boot makes the list effectively read-only
// and safe to share.
func (l *RouteList) WarmupCache() {
	l.cacheMu.Lock()
	l.ensureWarmLocked()
	l.cacheMu.Unlock()
	for _, e := range l.entries {
		if w, ok := e.router.(warmable); ok {
			w.WarmupCache()
		}
	}
}

// ensureWarmLocked chooses the cache key and builds the ranks. The cache
// key is the parameter name with the most distinct constant values across
// non-one-way children, ties broken by first occurrence. Each child lands
// in the bucket of the value it pins the key to; children that do not pin
// it land in the "*" bucket and retroactively in every named bucket,
// preserving global insertion order.
func (l *RouteList) ensureWarmLocked() {
	if l.warm {
		return
	}

	// Pass 1: candidate key and the full value set.
	var nameOrder []string
	values := make(map[string]map[string]struct{})
	for _, e := range l.entries {
		if e.flags&OneWay != 0 {
			continue
		}
		cp, ok := e.router.(constantProvider)
		if !ok {
			continue
		}
		for name, v := range cp.ConstantParameters() {
			s, scalar := scalarString(v)
			if !scalar {
				continue
			}
			if _, seen := values[name]; !seen {
				values[name] = make(map[string]struct{})
				nameOrder = append(nameOrder, name)
			}
			values[name][s] = struct{}{}
		}
	}

	cacheKey := ""
	best := 0
	for _, name := range nameOrder {
		if n := len(values[name]); n > best {
			best = n
			cacheKey = name
		}
	}

	// Pass 2: fill buckets in insertion order.
	ranks := map[string][]Router{"*": nil}
	if cacheKey != "" {
		for v := range values[cacheKey] {
			ranks[v] = nil
		}
	}
	for _, e := range l.entries {
		pinned := ""
		hasPin := false
		if cacheKey != "" && e.flags&OneWay == 0 {
			if cp, ok := e.router.(constantProvider); ok {
				if v, present := cp.ConstantParameters()[cacheKey]; present {
					if s, scalar := scalarString(v); scalar {
						pinned, hasPin = s, true
					}
				}
			}
		}
		if hasPin {
			ranks[pinned] = append(ranks[pinned], e.router)
		} else {
			for v := range ranks {
				ranks[v] = append(ranks[v], e.router)
			}
		}
	}

	l.cacheKey = cacheKey
	l.ranks = ranks
	l.warm = true

	l.logger.Debug("dispatch cache built", "cache_key", cacheKey, "buckets", len(ranks))
	l.emit(DiagnosticEvent{
		Kind:    DiagCacheRebuilt,
		Message: "dispatch cache built",
		Fields:  map[string]any{"cache_key": cacheKey, "buckets": len(ranks)},
	})
	if l.recorder != nil {
		l.recorder.RecordCacheWarmup()
	}
}

// invalidate drops the dispatch cache and the reference URL memo.
func (l *RouteList) invalidate() {
	l.cacheMu.Lock()
	l.warm = false
	l.cacheKey = ""
	l.ranks = nil
	l.refMemo = make(map[*URL]*URL)
	l.cacheMu.Unlock()
}

// URLByName constructs a URL through the named route, searching this list
// and every nested list with the scope adjustments applied along the way.
// Returns ErrRouteNotFound when no route carries the name or when no route
// carrying it can construct a URL from params.
func (l *RouteList) URLByName(name string, params Params, ref *URL) (string, error) {
	adjusted := l.adjustRef(ref)
	for _, e := range l.entries {
		switch r := e.router.(type) {
		case *Route:
			if r.Name() == name {
				if url, ok := r.ConstructURL(params, adjusted); ok {
					return url, nil
				}
				return "", ErrRouteNotFound
			}
		case *RouteList:
			if url, err := r.URLByName(name, params, adjusted); err == nil {
				return url, nil
			}
		}
	}
	return "", ErrRouteNotFound
}

// RouteInfo is an introspection snapshot of one list entry.
type RouteInfo struct {
	Mask   string     // mask pattern, empty for nested lists
	Name   string     // route name, empty if unnamed
	Flags  int        // entry flags
	Nested *RouteList // non-nil when the entry is a nested list
}

// Routes returns a snapshot of the list's entries in insertion order.
func (l *RouteList) Routes() []RouteInfo {
	out := make([]RouteInfo, 0, len(l.entries))
	for _, e := range l.entries {
		info := RouteInfo{Flags: e.flags}
		switch r := e.router.(type) {
		case *Route:
			info.Mask = r.Pattern()
			info.Name = r.Name()
		case *RouteList:
			info.Nested = r
		}
		out = append(out, info)
	}
	return out
}

// Len returns the number of entries in the list.
func (l *RouteList) Len() int { return len(l.entries) }

func (l *RouteList) emit(e DiagnosticEvent) {
	if l.diagnostics != nil {
		l.diagnostics.OnDiagnostic(e)
	}
}

func orFlags(flags []int) int {
	out := 0
	for _, f := range flags {
		out |= f
	}
	return out
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}
