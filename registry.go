// SPDX-License-Identifier: EPL-2.0

package saundifix

import (
	"github.com/ik5/saundifix/audio"
	"github.com/ik5/saundifix/formats/aiff"
	"github.com/ik5/saundifix/formats/flac"
	"github.com/ik5/saundifix/formats/mp3"
	"github.com/ik5/saundifix/formats/vorbis"
	"github.com/ik5/saundifix/formats/wav"
)

// DefaultRegistry maps the supported file extensions to their decoders.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a registry with every built-in decoder registered.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("flac", flac.Decoder{})

	return reg
}
