package bpsk

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tphakala/go-bpsk/internal/modem"
)

// Config holds the carrier contract and processing options.
type Config struct {
	// SampleRate is the number of samples per second. On decode the
	// container's own sample rate takes precedence.
	SampleRate int

	// Baud is the number of bits per second. Must not exceed SampleRate.
	Baud int

	// CarrierFreq is the carrier frequency in Hz.
	CarrierFreq float64

	// Precision selects the demodulator's floating-point width.
	Precision Precision

	// EnableSIMD allows the use of SIMD kernels for waveform scaling. Set
	// to false to force plain Go loops. Window sums always add left to
	// right regardless of this setting.
	EnableSIMD bool

	// FusedCorrelation correlates each symbol window directly instead of
	// materializing the full carrier and product arrays. In double
	// precision the sums are identical to the two-pass path.
	FusedCorrelation bool

	// MaxBufferBytes caps the demodulator's working storage. Zero uses
	// 4 GiB. Larger inputs fail with ErrAllocation.
	MaxBufferBytes int64

	// Logger receives progress and diagnostics. Nil discards.
	Logger *slog.Logger
}

// Precision enumerates the demodulator's arithmetic width.
type Precision int

const (
	// PrecisionDouble correlates in float64.
	PrecisionDouble Precision = iota

	// PrecisionSingle correlates in float32. Faster, with a smaller margin
	// around zero-sum windows.
	PrecisionSingle
)

// String returns the precision name used in profiles.
func (p Precision) String() string {
	switch p {
	case PrecisionDouble:
		return "double"
	case PrecisionSingle:
		return "single"
	default:
		return fmt.Sprintf("precision(%d)", int(p))
	}
}

// ParsePrecision parses "double" or "single". An empty string is double.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "", "double":
		return PrecisionDouble, nil
	case "single":
		return PrecisionSingle, nil
	default:
		return 0, fmt.Errorf("%w: unknown precision %q", ErrInvalidConfig, s)
	}
}

// ErrInvalidConfig indicates invalid carrier parameters or options.
var ErrInvalidConfig = errors.New("invalid bpsk configuration")

// DefaultConfig returns the stock carrier: 44.1 kHz, 1000 baud, 2 kHz
// carrier, double precision, SIMD enabled.
func DefaultConfig() *Config {
	return &Config{
		SampleRate:  DefaultSampleRate,
		Baud:        DefaultBaud,
		CarrierFreq: DefaultCarrierFreq,
		Precision:   PrecisionDouble,
		EnableSIMD:  true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}

	if err := c.ValidateCarrier(); err != nil {
		return err
	}

	if c.Baud > c.SampleRate {
		return fmt.Errorf("%w: baud %d exceeds sample rate %d", ErrInvalidConfig, c.Baud, c.SampleRate)
	}

	return nil
}

// ValidateCarrier checks every field except SampleRate. Decoding uses it
// before the container's sample rate is known; Baud is checked against that
// rate once the container is read.
func (c *Config) ValidateCarrier() error {
	if c.Baud <= 0 {
		return fmt.Errorf("%w: baud must be positive", ErrInvalidConfig)
	}

	if c.CarrierFreq < 0 {
		return fmt.Errorf("%w: carrier frequency must not be negative", ErrInvalidConfig)
	}

	if c.Precision != PrecisionDouble && c.Precision != PrecisionSingle {
		return fmt.Errorf("%w: unknown precision %d", ErrInvalidConfig, int(c.Precision))
	}

	if c.MaxBufferBytes < 0 {
		return fmt.Errorf("%w: buffer limit must not be negative", ErrInvalidConfig)
	}

	return nil
}

// SymbolPeriod returns the samples per bit, SampleRate / Baud truncated.
func (c *Config) SymbolPeriod() int {
	return c.params().SymbolPeriod()
}

func (c *Config) params() modem.Params {
	return modem.Params{
		SampleRate:  c.SampleRate,
		Baud:        c.Baud,
		CarrierFreq: c.CarrierFreq,
	}
}

func (c *Config) options() modem.Options {
	return modem.Options{
		UseSIMD:        c.EnableSIMD,
		Fused:          c.FusedCorrelation,
		MaxBufferBytes: c.MaxBufferBytes,
		Logger:         c.logger(),
	}
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

// checkConfig rejects a nil or invalid config.
func checkConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	return c.Validate()
}

// checkCarrierConfig is checkConfig without the sample rate checks.
func checkCarrierConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	return c.ValidateCarrier()
}
