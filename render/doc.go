// SPDX-License-Identifier: EPL-2.0

// Package render drives the effect chain over a whole decoded buffer.
//
// The output format is fixed: stereo at 44100 Hz. A mono input is
// duplicated to both channels and other rates are converted with cubic
// interpolation, so a render of a 1 s clip always yields 44100 frames:
//
//	r := render.New(render.WithLogger(logger))
//	out, err := r.Render(ctx, buf, effects.DefaultParameters())
//
// Cancellation is checked between chunks of frames. A cancelled render
// returns no buffer at all.
package render
