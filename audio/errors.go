// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

// Failure kinds of the pipeline. Concrete causes are wrapped together with
// one of these so callers can branch with errors.Is.
var (
	ErrDecodeFailure    = errors.New("decode failure")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrRenderFailure    = errors.New("render failure")
	ErrEncodeFailure    = errors.New("encode failure")
)

var (
	ErrEmptyBuffer         = errors.New("buffer has no frames")
	ErrMalformedBuffer     = errors.New("malformed buffer")
	ErrUnsupportedChannels = errors.New("only mono and stereo buffers are supported")
	ErrUnsupportedFormat   = errors.New("unsupported audio format")
	ErrStalledSource       = errors.New("source keeps returning no samples")
)
