package bpsk

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSinglePrecisionMatchesDouble verifies that float32 correlation makes the
// same decisions as float64 on clean signals.
func TestSinglePrecisionMatchesDouble(t *testing.T) {
	tests := []struct {
		name        string
		sampleRate  int
		baud        int
		carrierFreq float64
	}{
		{"CD_1000baud_2k", RateCD, 1000, 2000},
		{"DAT_1200baud_2k4", RateDAT, 1200, 2400},
		{"Telephony_1000baud_1k", RateTelephony, 1000, 1000},
		{"Telephony_300baud_1k7", RateTelephony, 300, 1700},
	}

	rng := rand.New(rand.NewSource(1))
	data := make([]byte, 512)
	rng.Read(data)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			double := &Config{
				SampleRate:  tt.sampleRate,
				Baud:        tt.baud,
				CarrierFreq: tt.carrierFreq,
				Precision:   PrecisionDouble,
				EnableSIMD:  true,
			}
			single := *double
			single.Precision = PrecisionSingle

			samples, err := Encode(data, double)
			require.NoError(t, err, "Encode failed")

			want, err := Demodulate(samples, double)
			require.NoError(t, err, "Demodulate (double) failed")
			got, err := Demodulate(samples, &single)
			require.NoError(t, err, "Demodulate (single) failed")

			require.Len(t, got, len(want), "bit count mismatch")
			assert.Equal(t, want, got, "single and double precision decisions differ")
		})
	}
}

// TestSinglePrecisionScalar verifies float32 correlation without SIMD kernels.
func TestSinglePrecisionScalar(t *testing.T) {
	cfg := &Config{
		SampleRate:  RateTelephony,
		Baud:        1000,
		CarrierFreq: 1000,
		Precision:   PrecisionSingle,
		EnableSIMD:  false,
	}

	msg := []byte("single precision")
	samples, err := Encode(msg, cfg)
	require.NoError(t, err, "Encode failed")

	got, err := Decode(samples, cfg)
	require.NoError(t, err, "Decode failed")
	assert.Equal(t, msg, got)
}
