// Package modem implements the BPSK signal path: phase-continuous carrier
// synthesis, symbol-to-waveform mapping, and coherent integrate-and-dump
// demodulation.
package modem

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tphakala/go-bpsk/internal/simdops"
)

// ErrInvalidParams indicates carrier parameters that cannot form a symbol.
var ErrInvalidParams = errors.New("invalid modem parameters")

// Params is the carrier contract shared by transmitter and receiver.
// Only SampleRate travels inside the container; Baud and CarrierFreq must be
// agreed out of band.
type Params struct {
	SampleRate  int     // samples per second
	Baud        int     // symbols (bits) per second
	CarrierFreq float64 // carrier frequency in Hz
}

// SymbolPeriod returns the number of samples per bit. The division truncates;
// a sample rate that is not a multiple of the baud rate is not rounded.
func (p Params) SymbolPeriod() int {
	if p.Baud <= 0 {
		return 0
	}
	return p.SampleRate / p.Baud
}

// Validate checks that the parameters produce at least one sample per symbol.
func (p Params) Validate() error {
	if p.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidParams, p.SampleRate)
	}
	if p.Baud <= 0 {
		return fmt.Errorf("%w: baud must be positive, got %d", ErrInvalidParams, p.Baud)
	}
	if p.SymbolPeriod() < 1 {
		return fmt.Errorf("%w: baud %d exceeds sample rate %d", ErrInvalidParams, p.Baud, p.SampleRate)
	}
	if p.CarrierFreq < 0 {
		return fmt.Errorf("%w: carrier frequency must not be negative, got %g", ErrInvalidParams, p.CarrierFreq)
	}
	return nil
}

// Options tunes how the signal path runs. The zero value uses plain Go loops
// and discards log output.
type Options struct {
	// UseSIMD selects the github.com/tphakala/simd kernels for waveform
	// scaling. Demodulator window sums always add left to right, so a window
	// that sums to exactly zero decodes as 0 in every mode.
	UseSIMD bool

	// Fused makes the demodulator correlate each window directly instead of
	// materializing the full carrier and product arrays first.
	Fused bool

	// MaxBufferBytes caps the demodulator's intermediate buffers. Zero uses
	// DefaultMaxBufferBytes.
	MaxBufferBytes int64

	// Logger receives progress and diagnostics. Nil discards.
	Logger *slog.Logger
}

func (o Options) maxBufferBytes() int64 {
	if o.MaxBufferBytes <= 0 {
		return DefaultMaxBufferBytes
	}
	return o.MaxBufferBytes
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// warnFractionalSymbol logs the framing drift caused by a truncated symbol period.
func warnFractionalSymbol(logger *slog.Logger, p Params) {
	if p.SampleRate%p.Baud != 0 {
		logger.Warn("sample rate is not a multiple of baud; symbol period truncated",
			"sample_rate", p.SampleRate,
			"baud", p.Baud,
			"samples_per_symbol", p.SymbolPeriod(),
			"exact", float64(p.SampleRate)/float64(p.Baud))
	}
}

// opsFor returns the vector operations selected by o.
func opsFor[F simdops.Float](o Options) *simdops.Ops[F] {
	return simdops.For[F](o.UseSIMD)
}
