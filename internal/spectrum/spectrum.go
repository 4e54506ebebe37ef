// Package spectrum estimates the dominant frequency of a 16-bit PCM signal.
//
// It is used to sanity-check a received file: a BPSK signal concentrates its
// energy around the carrier, so a spectral peak far from the configured
// carrier frequency usually means the wrong parameters were chosen.
package spectrum

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// MaxFrameSize bounds the number of samples transformed by Peak.
// Longer signals are analyzed over their first MaxFrameSize samples.
const MaxFrameSize = 1 << 16

// DefaultToleranceBins is how far, in bins, a peak may sit from the
// expected carrier and still match it.
const DefaultToleranceBins = 4

// minFrameSize is the shortest frame that yields a non-DC bin.
const minFrameSize = 2

// ErrTooShort is returned when there are too few samples to analyze.
var ErrTooShort = errors.New("spectrum: signal too short")

// Result describes the strongest non-DC bin of a spectrum.
type Result struct {
	Frequency  float64 // Bin center in Hz
	Magnitude  float64 // Magnitude of the windowed bin
	Resolution float64 // Bin spacing in Hz
	Bin        int
	FrameSize  int
}

// Peak returns the strongest non-DC frequency component of samples.
// A Hann window is applied before the transform.
func Peak(samples []int16, sampleRate int) (Result, error) {
	if sampleRate <= 0 {
		return Result{}, fmt.Errorf("spectrum: invalid sample rate %d", sampleRate)
	}
	n := min(len(samples), MaxFrameSize)
	if n < minFrameSize {
		return Result{}, ErrTooShort
	}

	frame := make([]float64, n)
	for i := range frame {
		frame[i] = float64(samples[i])
	}
	window.Hann(frame)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, frame)

	best := Result{
		Resolution: float64(sampleRate) / float64(n),
		FrameSize:  n,
	}
	for i := 1; i < len(coeffs); i++ {
		if mag := cmplx.Abs(coeffs[i]); mag > best.Magnitude {
			best.Magnitude = mag
			best.Bin = i
		}
	}
	best.Frequency = fft.Freq(best.Bin) * float64(sampleRate)
	return best, nil
}

// Near reports whether freq lies within tolerance bins of the peak.
func (r Result) Near(freq float64, tolerance int) bool {
	diff := freq - r.Frequency
	if diff < 0 {
		diff = -diff
	}
	return diff <= float64(tolerance)*r.Resolution
}
