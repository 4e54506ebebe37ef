package modem

import (
	"fmt"
	"log/slog"

	"github.com/tphakala/go-bpsk/internal/failure"
	"github.com/tphakala/go-bpsk/internal/simdops"
)

// Demodulator recovers bits from a BPSK waveform by coherent detection and
// integrate-and-dump. It assumes the transmitter's carrier phase and symbol
// framing exactly; no synchronization is attempted.
//
// F selects the working precision. float32 is sufficient for 16-bit input
// but changes rounding of the window sums.
type Demodulator[F simdops.Float] struct {
	params    Params
	ns        int
	fused     bool
	integrate *simdops.Ops[F]
	maxBytes  int64
	logger    *slog.Logger
}

// NewDemodulator creates a demodulator for the given carrier parameters.
func NewDemodulator[F simdops.Float](p Params, opts Options) (*Demodulator[F], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	d := &Demodulator[F]{
		params: p,
		ns:     p.SymbolPeriod(),
		fused:  opts.Fused,
		// Lane-ordered SIMD sums can turn an exact zero into a tiny positive
		// value, so integration is always sequential.
		integrate: simdops.For[F](false),
		maxBytes:  opts.maxBufferBytes(),
		logger:    opts.logger(),
	}
	warnFractionalSymbol(d.logger, p)
	return d, nil
}

// SymbolPeriod returns the samples per bit.
func (d *Demodulator[F]) SymbolPeriod() int {
	return d.ns
}

// BitLength returns floor(n / Ns). A trailing partial window is dropped.
func (d *Demodulator[F]) BitLength(n int) int {
	return n / d.ns
}

// BufferSize returns the bytes of working storage Correlate needs for n
// samples, or an allocation error when n is negative, longer than
// MaxSignalLength, or the storage exceeds the configured limit.
func (d *Demodulator[F]) BufferSize(n int) (int64, error) {
	if n < 0 {
		return 0, failure.Allocation("demodulate", fmt.Errorf("negative sample count %d", n))
	}
	if n > MaxSignalLength {
		return 0, failure.Allocation("demodulate",
			fmt.Errorf("%d samples exceeds %d", n, MaxSignalLength))
	}

	// Carrier and product arrays, or one window of each when fused
	perArray := int64(n)
	if d.fused {
		perArray = int64(d.ns)
	}
	size := (2*perArray + int64(d.BitLength(n))) * sizeOf[F]()
	if size > d.maxBytes {
		return 0, failure.Allocation("demodulate",
			fmt.Errorf("%d samples need %d bytes of working storage, limit %d", n, size, d.maxBytes))
	}
	return size, nil
}

func sizeOf[F simdops.Float]() int64 {
	var zero F
	if _, ok := any(zero).(float32); ok {
		return 4
	}
	return 8
}

// Mix returns the reference carrier and the pointwise product
// samples[i] * carrier[i] for every input sample.
func (d *Demodulator[F]) Mix(samples []int16) (carrier, product []F) {
	n := len(samples)
	carrier = make([]F, n)
	product = make([]F, n)

	for i, s := range samples {
		if i%mixProgressInterval == 0 {
			d.logger.Debug("mixing", "index", i, "length", n)
		}
		c := CarrierSample(d.params, i)
		carrier[i] = F(c)
		product[i] = F(float64(s) * c)
	}
	return carrier, product
}

// Correlate returns the integrated correlation of each complete symbol
// window: sum(product[k*Ns : k*Ns+Ns]), added left to right.
func (d *Demodulator[F]) Correlate(samples []int16) ([]F, error) {
	if _, err := d.BufferSize(len(samples)); err != nil {
		return nil, err
	}
	bitLength := d.BitLength(len(samples))
	d.logger.Info("demodulating", "samples_per_symbol", d.ns, "bit_length", bitLength)

	if d.fused {
		return d.correlateFused(samples, bitLength), nil
	}

	_, product := d.Mix(samples)
	sums := make([]F, bitLength)
	for k := range sums {
		start := k * d.ns
		sums[k] = d.integrate.Sum(product[start : start+d.ns])
	}
	return sums, nil
}

// correlateFused computes the same window sums as Correlate without
// materializing whole-signal arrays.
func (d *Demodulator[F]) correlateFused(samples []int16, bitLength int) []F {
	sums := make([]F, bitLength)
	sig := make([]F, d.ns)
	ref := make([]F, d.ns)

	for k := range sums {
		start := k * d.ns
		for j := range d.ns {
			sig[j] = F(samples[start+j])
			ref[j] = F(CarrierSample(d.params, start+j))
		}
		sums[k] = d.integrate.DotProductUnsafe(sig, ref)
	}
	return sums
}

// Demodulate decides one bit per complete symbol window: 1 when the window's
// correlation sum is strictly positive, otherwise 0. A zero sum decodes as 0.
func (d *Demodulator[F]) Demodulate(samples []int16) ([]bool, error) {
	sums, err := d.Correlate(samples)
	if err != nil {
		return nil, err
	}
	bits := make([]bool, len(sums))

	for k, sum := range sums {
		bits[k] = sum > 0
		if k%decisionProgressInterval == 0 {
			d.logger.Debug("decided bit", "index", k, "bit_length", len(sums), "bit", bits[k])
		}
	}
	return bits, nil
}
