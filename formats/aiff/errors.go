// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input has no FORM/AIFF header.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedAiffLayout indicates a header the decoder cannot use,
	// such as zero channels or a compressed AIFF-C stream.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
