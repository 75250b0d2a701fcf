// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ik5/saundifix/effects"
)

// Load reads the YAML preset at path. Out-of-range values are kept as
// written; [Preset.Parameters] clamps them and [Validate] rejects them.
func Load(path string) (*Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	p, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return p, nil
}

// LoadFromReader decodes a YAML preset from r. Unknown keys are an error.
// An empty document yields an empty preset.
func LoadFromReader(r io.Reader) (*Preset, error) {
	p := &Preset{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return p, nil
}

// Validate reports every field of p outside its range. Each failure wraps
// audio.ErrInvalidParameter; the result is a joined error.
func Validate(p *Preset) error {
	return p.Apply(effects.DefaultParameters()).Validate()
}

// Save writes p as YAML to path.
func Save(path string, p *Preset) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("config: encode yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %q: %w", path, err)
	}
	return nil
}
