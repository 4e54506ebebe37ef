package main

import (
	"math"
	"time"

	bpsk "github.com/tphakala/go-bpsk"
	"github.com/tphakala/go-bpsk/internal/spectrum"
)

// report is the result of analyzing one container.
type report struct {
	SampleRate   int
	Samples      int
	Duration     time.Duration
	Baud         int
	CarrierFreq  float64
	SymbolPeriod int

	Peak    spectrum.Result
	PeakErr error

	Symbols    int
	Trailing   int
	Ones       int
	ZeroSums   int
	MinMargin  float64
	MeanMargin float64
}

// analyze measures c against the carrier in cfg. The container's sample
// rate replaces cfg.SampleRate, as it does when decoding.
func analyze(c *bpsk.Container, cfg *bpsk.Config) (*report, error) {
	run := *cfg
	run.SampleRate = c.SampleRate
	if err := run.Validate(); err != nil {
		return nil, err
	}

	sums, err := bpsk.Correlate(c.Samples, &run)
	if err != nil {
		return nil, err
	}

	r := &report{
		SampleRate:   c.SampleRate,
		Samples:      len(c.Samples),
		Duration:     c.Duration(),
		Baud:         run.Baud,
		CarrierFreq:  run.CarrierFreq,
		SymbolPeriod: run.SymbolPeriod(),
		Symbols:      len(sums),
	}
	r.Trailing = r.Samples - r.Symbols*r.SymbolPeriod
	r.Peak, r.PeakErr = spectrum.Peak(c.Samples, c.SampleRate)

	if len(sums) == 0 {
		return r, nil
	}

	r.MinMargin = math.Inf(1)
	var total float64
	for _, s := range sums {
		margin := math.Abs(s)
		total += margin
		r.MinMargin = min(r.MinMargin, margin)
		switch {
		case s > 0:
			r.Ones++
		case s == 0:
			r.ZeroSums++
		}
	}
	r.MeanMargin = total / float64(len(sums))
	return r, nil
}

func (r *report) carrierVerdict() string {
	if r.Peak.Near(r.CarrierFreq, spectrum.DefaultToleranceBins) {
		return "matches spectral peak"
	}
	return "far from spectral peak; check -f0"
}
