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
	"io"
	"log/slog"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger.
func NoopLogger() *slog.Logger {
	return noopLogger
}

// DiagnosticEvent represents a router diagnostic. These are informational
// events that may indicate configuration issues; the router functions
// correctly whether they are collected or not.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagRouteRegistered is emitted when a route is added to a list.
	DiagRouteRegistered DiagnosticKind = "route_registered"

	// DiagCacheRebuilt is emitted when a list's dispatch cache is built.
	DiagCacheRebuilt DiagnosticKind = "cache_rebuilt"
)

// DiagnosticHandler receives diagnostic events. Implementations may log,
// emit metrics, or ignore them.
//
// Example with logging:
//
//	handler := routeway.DiagnosticHandlerFunc(func(e routeway.DiagnosticEvent) {
//	    slog.Info(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	list := routeway.NewRouteList(routeway.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
