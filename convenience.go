package bpsk

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tphakala/go-bpsk/internal/bits"
	"github.com/tphakala/go-bpsk/internal/failure"
	"github.com/tphakala/go-bpsk/internal/modem"
	"github.com/tphakala/go-bpsk/internal/wavio"
)

// Container is a decoded mono 16-bit PCM sound file.
type Container = wavio.Container

// ReadOptions controls container parsing. The zero value is the permissive
// reader that trusts only the sample rate and data size header fields.
type ReadOptions = wavio.ReadOptions

// ExtractBits expands data into 8*len(data) bits, most significant bit first.
func ExtractBits(data []byte) []bool {
	return bits.Extract(data)
}

// PackBits packs bits into ceil(len(bits)/8) bytes, most significant bit
// first. A trailing partial byte is zero-padded in its low bits.
func PackBits(b []bool) []byte {
	return bits.Pack(b)
}

// Modulate maps bits onto a BPSK waveform of len(bits)*SymbolPeriod samples.
func Modulate(b []bool, cfg *Config) ([]int16, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	m, err := modem.NewModulator(cfg.params(), cfg.options())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return m.Modulate(b)
}

// Encode modulates data, most significant bit of each byte first.
func Encode(data []byte, cfg *Config) ([]int16, error) {
	return Modulate(bits.Extract(data), cfg)
}

// Demodulate recovers floor(len(samples)/SymbolPeriod) bits. A window whose
// correlation sum is exactly zero decodes as 0.
func Demodulate(samples []int16, cfg *Config) ([]bool, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	switch cfg.Precision {
	case PrecisionSingle:
		d, err := modem.NewDemodulator[float32](cfg.params(), cfg.options())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return d.Demodulate(samples)
	default:
		d, err := modem.NewDemodulator[float64](cfg.params(), cfg.options())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return d.Demodulate(samples)
	}
}

// Correlate returns the float64 correlation sum of each complete symbol
// window. The sign of each sum is the bit decision Demodulate makes; its
// magnitude is the decision margin.
func Correlate(samples []int16, cfg *Config) ([]float64, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	d, err := modem.NewDemodulator[float64](cfg.params(), cfg.options())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return d.Correlate(samples)
}

// Decode demodulates samples and packs the bits into bytes.
func Decode(samples []int16, cfg *Config) ([]byte, error) {
	b, err := Demodulate(samples, cfg)
	if err != nil {
		return nil, err
	}
	return bits.Pack(b), nil
}

// WriteContainer creates or truncates path and writes samples as a mono
// 16-bit PCM WAV file.
func WriteContainer(path string, samples []int16, sampleRate int) error {
	return wavio.WriteFile(path, samples, sampleRate)
}

// ReadContainer reads the WAV file at path.
func ReadContainer(path string, opts ReadOptions) (*Container, error) {
	return wavio.ReadFile(path, opts)
}

// Stats summarizes one file-level encode or decode run.
type Stats struct {
	InputBytes   int
	OutputBytes  int
	Bits         int
	Samples      int
	SampleRate   int
	SymbolPeriod int
	Duration     time.Duration // playing time of the signal
	Elapsed      time.Duration // processing time
}

// RealtimeFactor returns Duration / Elapsed, or 0 when no time elapsed.
func (s *Stats) RealtimeFactor() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return s.Duration.Seconds() / s.Elapsed.Seconds()
}

// EncodeFile reads the file at in, modulates it and writes the signal to
// out as a WAV container.
func EncodeFile(in, out string, cfg *Config) (*Stats, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	start := time.Now()

	data, err := os.ReadFile(in)
	if err != nil {
		return nil, failure.IO("read input", in, err)
	}

	samples, err := Encode(data, cfg)
	if err != nil {
		return nil, err
	}

	if err := WriteContainer(out, samples, cfg.SampleRate); err != nil {
		return nil, err
	}

	c := Container{SampleRate: cfg.SampleRate, Samples: samples}
	return &Stats{
		InputBytes:   len(data),
		OutputBytes:  c.DataSize() + wavio.HeaderSize,
		Bits:         len(data) * bits.BitsPerByte,
		Samples:      len(samples),
		SampleRate:   cfg.SampleRate,
		SymbolPeriod: cfg.SymbolPeriod(),
		Duration:     c.Duration(),
		Elapsed:      time.Since(start),
	}, nil
}

// DecodeFile reads the WAV container at in, demodulates it and writes the
// recovered bytes to out. The container's sample rate replaces
// cfg.SampleRate, so cfg.SampleRate is not validated; Baud must not exceed
// the container's rate. A nil opts.Logger falls back to cfg.Logger.
func DecodeFile(in, out string, cfg *Config, opts ReadOptions) (*Stats, error) {
	if err := checkCarrierConfig(cfg); err != nil {
		return nil, err
	}
	start := time.Now()

	if opts.Logger == nil {
		opts.Logger = cfg.Logger
	}
	c, err := ReadContainer(in, opts)
	if err != nil {
		return nil, err
	}
	return decodeContainer(c, in, out, cfg, start)
}

// DecodeContainer demodulates a container that has already been read and
// writes the recovered bytes to out, with the same sample rate rules as
// DecodeFile.
func DecodeContainer(c *Container, out string, cfg *Config) (*Stats, error) {
	if err := checkCarrierConfig(cfg); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, failure.Malformed("decode container", "", errors.New("container is nil"))
	}
	return decodeContainer(c, "", out, cfg, time.Now())
}

func decodeContainer(c *Container, in, out string, cfg *Config, start time.Time) (*Stats, error) {
	if c.SampleRate <= 0 {
		return nil, failure.Malformed("read container", in,
			fmt.Errorf("invalid sample rate %d", c.SampleRate))
	}

	run := *cfg
	if run.SampleRate != c.SampleRate {
		run.logger().Info("using container sample rate",
			"configured", cfg.SampleRate,
			"container", c.SampleRate)
		run.SampleRate = c.SampleRate
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}

	data, err := Decode(c.Samples, &run)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(out, data, outputFileMode); err != nil {
		return nil, failure.IO("write output", out, err)
	}

	return &Stats{
		InputBytes:   c.DataSize() + wavio.HeaderSize,
		OutputBytes:  len(data),
		Bits:         len(c.Samples) / run.SymbolPeriod(),
		Samples:      len(c.Samples),
		SampleRate:   c.SampleRate,
		SymbolPeriod: run.SymbolPeriod(),
		Duration:     c.Duration(),
		Elapsed:      time.Since(start),
	}, nil
}
