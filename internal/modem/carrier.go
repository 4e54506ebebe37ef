package modem

import "math"

// CarrierSample returns the unit-amplitude reference carrier at absolute
// sample index idx: cos(2π·f0·idx/fs). Phase is derived from the absolute
// index, so consecutive symbols join without a phase reset.
func CarrierSample(p Params, idx int) float64 {
	t := float64(idx) / float64(p.SampleRate)
	return math.Cos(twoPi * p.CarrierFreq * t)
}

// Carrier fills dst with reference carrier samples starting at absolute
// index start.
func Carrier(dst []float64, p Params, start int) {
	for i := range dst {
		dst[i] = CarrierSample(p, start+i)
	}
}
