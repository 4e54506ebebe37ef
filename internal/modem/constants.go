package modem

import "math"

// Quantization constants
const (
	fullScale   = 32767.0 // Peak amplitude of a 16-bit sample
	symbolOne   = 1.0     // Amplitude for bit 1 (0° phase)
	symbolZero  = -1.0    // Amplitude for bit 0 (180° phase)
	twoPi       = 2 * math.Pi
	bytesPerPCM = 2 // 16-bit mono PCM
)

// MaxSignalLength is the largest sample count whose payload size a 16-bit
// container can declare in its signed 32-bit data size field.
const MaxSignalLength = math.MaxInt32 / bytesPerPCM

// Progress reporting intervals (debug log records)
const (
	mixProgressInterval      = 100000 // samples between mixing progress records
	decisionProgressInterval = 10000  // bits between decision progress records
)

// DefaultMaxBufferBytes bounds the demodulator's working storage when
// Options.MaxBufferBytes is zero.
const DefaultMaxBufferBytes int64 = 4 << 30
