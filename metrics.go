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
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName identifies this package's OpenTelemetry meter.
const meterName = "github.com/routeway/routeway"

// EventType represents the severity of an internal operational event.
type EventType int

const (
	// EventError indicates an error event.
	EventError EventType = iota
	// EventWarning indicates a warning event.
	EventWarning
	// EventInfo indicates an informational event.
	EventInfo
	// EventDebug indicates a debug event.
	EventDebug
)

// Event represents an internal operational event from the metrics layer.
type Event struct {
	Type    EventType
	Message string
	Args    []any // slog-style key-value pairs
}

// EventHandler processes internal operational events. Implementations can
// log events or forward them to monitoring systems.
type EventHandler func(Event)

// DefaultEventHandler returns an EventHandler that logs events to the
// provided slog.Logger. A nil logger yields a no-op handler.
func DefaultEventHandler(logger *slog.Logger) EventHandler {
	if logger == nil {
		return func(Event) {}
	}
	return func(e Event) {
		switch e.Type {
		case EventError:
			logger.Error(e.Message, e.Args...)
		case EventWarning:
			logger.Warn(e.Message, e.Args...)
		case EventInfo:
			logger.Info(e.Message, e.Args...)
		case EventDebug:
			logger.Debug(e.Message, e.Args...)
		}
	}
}

// MetricsProvider selects the exporter backing a Recorder.
type MetricsProvider string

const (
	// PrometheusProvider exports through a Prometheus registry (default).
	PrometheusProvider MetricsProvider = "prometheus"
	// OTLPProvider pushes metrics to an OTLP HTTP collector.
	OTLPProvider MetricsProvider = "otlp"
	// StdoutProvider prints metrics to stdout (development/testing).
	StdoutProvider MetricsProvider = "stdout"
)

// Recorder holds OpenTelemetry instruments for router activity. All
// methods are safe for concurrent use.
//
// The Recorder does not set the global OpenTelemetry meter provider, so
// multiple instances can coexist in one process.
type Recorder struct {
	meter         metric.Meter
	meterProvider metric.MeterProvider

	matchCount        metric.Int64Counter
	matchDuration     metric.Float64Histogram
	constructCount    metric.Int64Counter
	constructDuration metric.Float64Histogram
	cacheWarmups      metric.Int64Counter

	prometheusHandler http.Handler
	eventHandler      EventHandler
	shutdown          func(context.Context) error

	serviceName  string
	otlpEndpoint string
	provider     MetricsProvider
	customMeter  bool
}

// MetricsOption configures a Recorder.
type MetricsOption func(*Recorder)

// WithMetricsProvider selects the exporter backend.
func WithMetricsProvider(p MetricsProvider) MetricsOption {
	return func(r *Recorder) { r.provider = p }
}

// WithOTLPEndpoint sets the collector endpoint for the OTLP provider.
func WithOTLPEndpoint(endpoint string) MetricsOption {
	return func(r *Recorder) {
		r.provider = OTLPProvider
		r.otlpEndpoint = endpoint
	}
}

// WithMeterProvider supplies an external meter provider, skipping the
// built-in exporters entirely.
func WithMeterProvider(mp metric.MeterProvider) MetricsOption {
	return func(r *Recorder) {
		r.meterProvider = mp
		r.customMeter = true
	}
}

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) MetricsOption {
	return func(r *Recorder) { r.serviceName = name }
}

// WithEventHandler sets the handler for internal operational events.
func WithEventHandler(h EventHandler) MetricsOption {
	return func(r *Recorder) { r.eventHandler = h }
}

// NewRecorder creates a metrics Recorder. Returns an error when the
// selected provider fails to initialize. For a version that panics, use
// MustNewRecorder.
func NewRecorder(opts ...MetricsOption) (*Recorder, error) {
	r := &Recorder{
		provider:     PrometheusProvider,
		serviceName:  "routeway",
		eventHandler: func(Event) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.initializeProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	if err := r.initializeInstruments(); err != nil {
		return nil, fmt.Errorf("failed to create instruments: %w", err)
	}
	return r, nil
}

// MustNewRecorder is like NewRecorder but panics on error.
func MustNewRecorder(opts ...MetricsOption) *Recorder {
	r, err := NewRecorder(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Recorder) initializeInstruments() error {
	var err error
	if r.matchCount, err = r.meter.Int64Counter(
		"routeway.match.count",
		metric.WithDescription("Inbound match attempts by outcome"),
	); err != nil {
		return err
	}
	if r.matchDuration, err = r.meter.Float64Histogram(
		"routeway.match.duration",
		metric.WithDescription("Inbound match duration"),
		metric.WithUnit("s"),
	); err != nil {
		return err
	}
	if r.constructCount, err = r.meter.Int64Counter(
		"routeway.construct.count",
		metric.WithDescription("Outbound constructions by outcome"),
	); err != nil {
		return err
	}
	if r.constructDuration, err = r.meter.Float64Histogram(
		"routeway.construct.duration",
		metric.WithDescription("Outbound construction duration"),
		metric.WithUnit("s"),
	); err != nil {
		return err
	}
	if r.cacheWarmups, err = r.meter.Int64Counter(
		"routeway.cache.warmups",
		metric.WithDescription("Dispatch cache builds"),
	); err != nil {
		return err
	}
	return nil
}

// RecordMatch records one inbound match attempt.
func (r *Recorder) RecordMatch(matched bool, d time.Duration) {
	outcome := "unmatched"
	if matched {
		outcome = "matched"
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	ctx := context.Background()
	r.matchCount.Add(ctx, 1, attrs)
	r.matchDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordConstruct records one outbound construction.
func (r *Recorder) RecordConstruct(built bool, d time.Duration) {
	outcome := "failed"
	if built {
		outcome = "built"
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	ctx := context.Background()
	r.constructCount.Add(ctx, 1, attrs)
	r.constructDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordCacheWarmup records one dispatch cache build.
func (r *Recorder) RecordCacheWarmup() {
	r.cacheWarmups.Add(context.Background(), 1)
}

// Handler returns the HTTP handler serving the Prometheus registry, or
// nil for non-Prometheus providers.
func (r *Recorder) Handler() http.Handler {
	return r.prometheusHandler
}

// Shutdown flushes and stops the underlying provider. It is a no-op for
// user-supplied meter providers.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.shutdown == nil {
		return nil
	}
	return r.shutdown(ctx)
}

func (r *Recorder) emit(t EventType, msg string, args ...any) {
	r.eventHandler(Event{Type: t, Message: msg, Args: args})
}
