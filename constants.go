package bpsk

// Default carrier contract.
const (
	DefaultSampleRate  = 44100  // Hz
	DefaultBaud        = 1000   // bits per second
	DefaultCarrierFreq = 2000.0 // Hz
)

// Common sample rates.
const (
	// RateTelephony is the narrowband telephony sample rate.
	RateTelephony = 8000

	// RateCD is the CD quality sample rate.
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000
)

// File permissions for recovered payloads.
const outputFileMode = 0o644
