package modem

import (
	"fmt"
	"log/slog"

	"github.com/tphakala/go-bpsk/internal/failure"
	"github.com/tphakala/go-bpsk/internal/simdops"
)

// Modulator maps bits onto a phase-continuous BPSK waveform.
type Modulator struct {
	params Params
	ns     int
	ops    *simdops.Ops[float64]
	logger *slog.Logger
}

// NewModulator creates a modulator for the given carrier parameters.
func NewModulator(p Params, opts Options) (*Modulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	m := &Modulator{
		params: p,
		ns:     p.SymbolPeriod(),
		ops:    opsFor[float64](opts),
		logger: opts.logger(),
	}
	warnFractionalSymbol(m.logger, p)
	return m, nil
}

// SymbolPeriod returns the samples per bit.
func (m *Modulator) SymbolPeriod() int {
	return m.ns
}

// SignalLength returns numBits * Ns, or an allocation error when the product
// overflows or exceeds MaxSignalLength.
func (m *Modulator) SignalLength(numBits int) (int, error) {
	if numBits < 0 {
		return 0, failure.Allocation("modulate", fmt.Errorf("negative bit count %d", numBits))
	}
	if numBits > 0 && m.ns > MaxSignalLength/numBits {
		return 0, failure.Allocation("modulate",
			fmt.Errorf("%d bits at %d samples per symbol exceeds %d samples", numBits, m.ns, MaxSignalLength))
	}
	return numBits * m.ns, nil
}

// Modulate produces len(bits) * Ns samples. Bit 1 sends +cos, bit 0 sends
// -cos; each value is scaled by 32767 and truncated toward zero.
func (m *Modulator) Modulate(bits []bool) ([]int16, error) {
	n, err := m.SignalLength(len(bits))
	if err != nil {
		return nil, err
	}

	signal := make([]int16, n)
	window := make([]float64, m.ns)

	for i, bit := range bits {
		symbol := symbolZero
		if bit {
			symbol = symbolOne
		}

		base := i * m.ns
		Carrier(window, m.params, base)

		// Sign and quantize: (±cos) * 32767, truncated below
		m.ops.Scale(window, window, symbol*fullScale)
		for j, v := range window {
			signal[base+j] = int16(v)
		}
	}

	m.logger.Debug("modulation complete",
		"bits", len(bits),
		"samples_per_symbol", m.ns,
		"samples", n)

	return signal, nil
}
