// Package profile loads and saves carrier profiles: the out-of-band
// parameters a transmitter and receiver must agree on.
//
// A profile is a small YAML document:
//
//	sample_rate: 48000
//	baud: 1200
//	carrier_freq: 2400
//	precision: double
//	strict: false
//
// Every field is optional. A zero or empty value means "not set" and leaves
// the caller's default in place.
package profile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Precision names accepted in a profile.
const (
	PrecisionDouble = "double"
	PrecisionSingle = "single"
)

// Profile holds the carrier parameters shared by both ends of a link.
type Profile struct {
	SampleRate  int     `yaml:"sample_rate,omitempty"`
	Baud        int     `yaml:"baud,omitempty"`
	CarrierFreq float64 `yaml:"carrier_freq,omitempty"`
	Precision   string  `yaml:"precision,omitempty"`
	Strict      bool    `yaml:"strict,omitempty"`
}

// Load reads the YAML profile at path and returns a validated [Profile].
func Load(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("profile: open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	p, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("profile: parse %q: %w", path, err)
	}
	return p, nil
}

// LoadFromReader decodes a YAML profile from r and validates the result.
// Unknown keys are rejected. An empty document yields an empty profile.
func LoadFromReader(r io.Reader) (*Profile, error) {
	p := &Profile{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("profile: decode yaml: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the set fields for consistency and returns every
// problem found, joined.
func (p *Profile) Validate() error {
	var errs []error

	if p.SampleRate < 0 {
		errs = append(errs, fmt.Errorf("sample_rate %d must be positive", p.SampleRate))
	}
	if p.Baud < 0 {
		errs = append(errs, fmt.Errorf("baud %d must be positive", p.Baud))
	}
	if p.SampleRate > 0 && p.Baud > p.SampleRate {
		errs = append(errs, fmt.Errorf("baud %d exceeds sample_rate %d", p.Baud, p.SampleRate))
	}
	if p.CarrierFreq < 0 {
		errs = append(errs, fmt.Errorf("carrier_freq %g must not be negative", p.CarrierFreq))
	}
	switch p.Precision {
	case "", PrecisionDouble, PrecisionSingle:
	default:
		errs = append(errs, fmt.Errorf("precision %q is invalid; valid values: %s, %s",
			p.Precision, PrecisionDouble, PrecisionSingle))
	}

	return errors.Join(errs...)
}

// Save validates p and writes it to path as YAML.
func Save(path string, p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("profile: encode yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("profile: write %q: %w", path, err)
	}
	return nil
}
