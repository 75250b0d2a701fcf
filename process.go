// SPDX-License-Identifier: EPL-2.0

package saundifix

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ik5/saundifix/audio"
	"github.com/ik5/saundifix/effects"
	"github.com/ik5/saundifix/formats/wav"
	"github.com/ik5/saundifix/internal/observe"
)

// Decode reads a whole stream of the given format ("mp3", ".wav", ...) into
// a buffer.
func Decode(ctx context.Context, r io.Reader, format string, opts Options) (*audio.Buffer, error) {
	dec, ok := opts.registry().Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q", audio.ErrDecodeFailure, audio.ErrUnsupportedFormat, format)
	}

	start := time.Now()
	src, err := dec.Decode(r)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, err
	}

	opts.Metrics.RecordDecode(ctx, strings.ToLower(strings.TrimPrefix(format, ".")), time.Since(start))
	return buf, nil
}

// DecodeFile decodes the file at path, choosing the decoder by extension.
func DecodeFile(ctx context.Context, path string, opts Options) (*audio.Buffer, error) {
	if _, err := opts.registry().DecoderFor(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecodeFailure, err)
	}
	defer f.Close()

	buf, err := Decode(ctx, f, filepath.Ext(path), opts)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return buf, nil
}

// Process renders in through the effects chain and returns the result as a
// complete WAV file.
func Process(ctx context.Context, in *audio.Buffer, params effects.Parameters, opts Options) ([]byte, error) {
	out, err := opts.renderer().Render(ctx, in, params)
	if err != nil {
		return nil, err
	}
	return wav.EncodeBytes(out)
}

// ProcessFile decodes input, renders it and writes the WAV to output. The
// rendered buffer is returned for inspection. On failure no output file is
// left behind.
func ProcessFile(ctx context.Context, input, output string, params effects.Parameters, opts Options) (*audio.Buffer, error) {
	ctx, span := observe.StartSpan(ctx, "process_file", trace.WithAttributes(
		attribute.String("input", filepath.Base(input)),
	))
	defer span.End()

	log := observe.Logger(ctx, opts.logger()).With("input", input)

	out, err := processFile(ctx, input, output, params, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("processing failed", "err", err)
		return nil, err
	}

	log.Info("processed", "output", output, "frames", out.Frames(), "duration", out.Duration())
	return out, nil
}

func processFile(ctx context.Context, input, output string, params effects.Parameters, opts Options) (*audio.Buffer, error) {
	in, err := DecodeFile(ctx, input, opts)
	if err != nil {
		return nil, err
	}

	out, err := opts.renderer().Render(ctx, in, params)
	if err != nil {
		return nil, err
	}

	if err := wav.WriteFile(output, out); err != nil {
		return nil, err
	}
	return out, nil
}

// OutputPath names the rendered file for input: the input's base name with
// its extension replaced by suffix and ".wav", placed in dir. An empty dir
// keeps the input's directory; an empty suffix uses DefaultSuffix.
func OutputPath(input, dir, suffix string) string {
	if dir == "" {
		dir = filepath.Dir(input)
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}

	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(dir, base+suffix+".wav")
}
