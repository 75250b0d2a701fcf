// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ik5/saundifix/audio"
	"github.com/ik5/saundifix/effects"
	"github.com/ik5/saundifix/internal/observe"
)

// Fixed output format.
const (
	OutputSampleRate = 44100
	OutputChannels   = 2
)

// DefaultChunkSize is the number of frames processed between cancellation
// checks.
const DefaultChunkSize = 4096

// antiAliasCutoff is the fraction of the output rate the downsampling
// low-pass is tuned to, leaving the band below 0.45*fs untouched.
const antiAliasCutoff = 0.45

// Butterworth pole quality factors of a 4th order low-pass split into two
// sections.
var antiAliasQ = [2]float64{0.54119610, 1.30656296}

// Renderer turns decoded buffers into processed 44100 Hz stereo buffers.
// It holds only immutable configuration and is safe for concurrent use.
type Renderer struct {
	logger    *slog.Logger
	metrics   *observe.Metrics
	chunkSize int
}

// New returns a Renderer configured by opts.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		logger:    slog.Default(),
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render runs in through the effect chain described by params and returns a
// new buffer of ceil(duration*44100) stereo frames at 44100 Hz.
//
// params is clamped into range, never rejected. Any failure returns a nil
// buffer and an error wrapping audio.ErrRenderFailure; a cancelled ctx is
// reported as ctx.Err() wrapped the same way.
func (r *Renderer) Render(ctx context.Context, in *audio.Buffer, params effects.Parameters) (*audio.Buffer, error) {
	ctx, span := observe.StartSpan(ctx, "render")
	defer span.End()

	start := time.Now()
	out, err := r.render(ctx, in, params, span)
	if err != nil {
		r.metrics.RecordRenderError(ctx, failureReason(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	elapsed := time.Since(start)
	r.metrics.RecordRender(ctx, elapsed, out.Frames())
	observe.Logger(ctx, r.logger).Debug("render finished",
		"frames", out.Frames(),
		"elapsed", elapsed,
	)

	return out, nil
}

func (r *Renderer) render(ctx context.Context, in *audio.Buffer, params effects.Parameters, span trace.Span) (*audio.Buffer, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrRenderFailure, err)
	}

	clamped := params.Clamp()
	if clamped != params {
		observe.Logger(ctx, r.logger).Warn("effect parameters clamped into range",
			"requested", params,
			"used", clamped,
		)
	}

	span.SetAttributes(
		attribute.Int("input.frames", in.Frames()),
		attribute.Int("input.channels", in.NumChannels()),
		attribute.Int("input.sample_rate", in.SampleRate),
	)
	observe.Logger(ctx, r.logger).Debug("render started",
		"frames", in.Frames(),
		"channels", in.NumChannels(),
		"sample_rate", in.SampleRate,
	)

	out := Prepare(in)
	chain := effects.NewStandardChain(OutputSampleRate, clamped)

	frames := out.Frames()
	for pos := 0; pos < frames; pos += r.chunkSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", audio.ErrRenderFailure, err)
		}

		end := min(pos+r.chunkSize, frames)
		chunk := [][]float32{
			out.Channels[0][pos:end],
			out.Channels[1][pos:end],
		}
		chain.Process(chunk)
	}

	return out, nil
}

// Prepare maps in to the fixed output format without applying any effect:
// mono is duplicated to both channels and the rate is converted to 44100 Hz,
// low-passing first when downsampling. in must be valid.
func Prepare(in *audio.Buffer) *audio.Buffer {
	stereo := in.ToStereo()
	if stereo.SampleRate == OutputSampleRate {
		return stereo
	}

	if stereo.SampleRate > OutputSampleRate {
		antiAlias(stereo)
	}

	return audio.Resample(stereo, OutputSampleRate)
}

// antiAlias low-passes b in place at 0.45 of the output rate with a 4th
// order Butterworth response built from two cookbook sections.
func antiAlias(b *audio.Buffer) {
	cutoff := antiAliasCutoff * OutputSampleRate
	rate := float64(b.SampleRate)

	for _, q := range antiAliasQ {
		lp := effects.NewLowpass(rate, cutoff, q)
		for c, ch := range b.Channels {
			lp.ProcessChannel(c, ch)
		}
	}
}

// OutputFrames returns the frame count Render produces for an input of
// frames frames at sampleRate.
func OutputFrames(frames, sampleRate int) int {
	return audio.ResampledFrames(frames, sampleRate, OutputSampleRate)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline_exceeded"
	case errors.Is(err, audio.ErrEmptyBuffer):
		return "empty_input"
	default:
		return "invalid_input"
	}
}
