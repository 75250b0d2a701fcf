// SPDX-License-Identifier: EPL-2.0

// Package observe provides the observability primitives for saundifix:
// OpenTelemetry metrics, tracing and slog helpers.
//
// Library code receives a *Metrics explicitly; a nil *Metrics records
// nothing, so callers that do not care about telemetry pass nil. Tests should
// use [NewMetrics] with a [sdkmetric.ManualReader] backed provider.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all saundifix metrics.
const meterName = "github.com/ik5/saundifix"

// Instrument names.
const (
	RenderDurationName = "saundifix.render.duration"
	RenderFramesName   = "saundifix.render.frames"
	RenderErrorsName   = "saundifix.render.errors"
	DecodeDurationName = "saundifix.decode.duration"
)

// Metrics holds the OpenTelemetry instruments of the pipeline. All fields are
// safe for concurrent use.
type Metrics struct {
	// RenderDuration tracks the wall time of one render.
	RenderDuration metric.Float64Histogram

	// RenderFrames counts output frames produced by successful renders.
	RenderFrames metric.Int64Counter

	// RenderErrors counts failed renders. Use with attribute:
	//   attribute.String("reason", ...)
	RenderErrors metric.Int64Counter

	// DecodeDuration tracks decoding time. Use with attribute:
	//   attribute.String("format", ...)
	DecodeDuration metric.Float64Histogram
}

// durationBuckets are histogram bounds in seconds, sized for offline renders
// of a few seconds up to several minutes of audio.
var durationBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates the instruments using mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.RenderDuration, err = m.Float64Histogram(RenderDurationName,
		metric.WithDescription("Wall time of one offline render."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}
	if met.RenderFrames, err = m.Int64Counter(RenderFramesName,
		metric.WithDescription("Output frames produced by successful renders."),
	); err != nil {
		return nil, err
	}
	if met.RenderErrors, err = m.Int64Counter(RenderErrorsName,
		metric.WithDescription("Failed renders by reason."),
	); err != nil {
		return nil, err
	}
	if met.DecodeDuration, err = m.Float64Histogram(DecodeDurationName,
		metric.WithDescription("Time spent decoding input files by format."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// RecordRender records one successful render of frames output frames.
func (m *Metrics) RecordRender(ctx context.Context, elapsed time.Duration, frames int) {
	if m == nil {
		return
	}
	m.RenderDuration.Record(ctx, elapsed.Seconds())
	m.RenderFrames.Add(ctx, int64(frames))
}

// RecordRenderError records one failed render.
func (m *Metrics) RecordRenderError(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.RenderErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordDecode records the time taken to decode one file of format.
func (m *Metrics) RecordDecode(ctx context.Context, format string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.DecodeDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("format", format)))
}
