// SPDX-License-Identifier: EPL-2.0

package render

import (
	"log/slog"

	"github.com/ik5/saundifix/internal/observe"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for render diagnostics. Defaults to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records render duration, frames and failures into m.
func WithMetrics(m *observe.Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithChunkSize sets how many frames are processed between cancellation
// checks. Values below 1 keep the default.
func WithChunkSize(frames int) Option {
	return func(r *Renderer) {
		if frames > 0 {
			r.chunkSize = frames
		}
	}
}
