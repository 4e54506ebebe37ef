// Package bpsk converts byte streams to binary phase-shift keyed audio and
// back, in pure Go.
//
// Each bit becomes one symbol of SampleRate/Baud samples of a cosine carrier:
// a 1 is sent as +cos, a 0 as -cos. The carrier phase is continuous across
// symbols. The signal is stored as a mono 16-bit PCM WAV file. Decoding
// mixes the samples with the same carrier, integrates each symbol window and
// decides by the sign of the sum.
//
// # Features
//
//   - Byte-exact 44-byte WAV container writer
//   - Permissive container reader (sample rate and data size only) with an
//     optional strict mode backed by github.com/go-audio/wav
//   - Optional SIMD acceleration via github.com/tphakala/simd
//   - float64 or float32 correlation ([PrecisionDouble], [PrecisionSingle])
//   - Structured progress logging through log/slog
//
// # Quick Start
//
// One-shot encode and decode:
//
//	cfg := bpsk.DefaultConfig()
//	samples, err := bpsk.Encode([]byte("hello"), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, err := bpsk.Decode(samples, cfg)
//
// File to file:
//
//	stats, err := bpsk.EncodeFile("message.bin", "signal.wav", cfg)
//	...
//	stats, err = bpsk.DecodeFile("signal.wav", "recovered.bin", cfg, bpsk.ReadOptions{})
//
// # Carrier Contract
//
// Only the sample rate is stored in the container. Baud and carrier
// frequency must be agreed out of band; both ends must use the same values.
// When SampleRate is not a multiple of Baud the symbol period is truncated
// and a warning is logged. There is no carrier or symbol timing recovery:
// the receiver assumes the file starts on a symbol boundary with zero phase.
//
// # Errors
//
// Runtime failures are *[Error] values of one of three kinds, matched with
// errors.Is against [ErrIO], [ErrAllocation] and [ErrMalformedContainer].
// Invalid parameters are reported separately, wrapping [ErrInvalidConfig].
//
// # Thread Safety
//
// All functions are synchronous and share no state; they may be called
// concurrently. Every returned slice is freshly allocated and owned by the
// caller.
package bpsk
