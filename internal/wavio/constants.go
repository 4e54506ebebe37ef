package wavio

import "math"

// HeaderSize is the size of the canonical header written before the payload.
const HeaderSize = 44

// WAV format constants
const (
	wavRiffHeaderSize  = 36 // RIFF size field = riffHeaderSize + dataSize
	wavPCMSubchunkSize = 16 // fmt subchunk size for PCM format
	wavFormatPCM       = 1  // AudioFormat tag for linear PCM
	wavSampleRateOffs  = 24 // Byte offset for sample rate field in header
	wavDataSizeOffset  = 40 // Byte offset for data size field in header
	uint32Size         = 4  // Size of uint32 in bytes
)

// Sample format constants. Only mono 16-bit PCM is produced.
const (
	monoChannels     = 1
	bitsPerSample16  = 16
	bytesPerSample16 = 2
)

// MaxSamples is the largest sample count whose payload size fits the
// container's data size field as read back by Decode (signed 32-bit).
const MaxSamples = math.MaxInt32 / bytesPerSample16

// DefaultMaxSamples is the reader's sample limit when ReadOptions.MaxSamples
// is zero: about 46 minutes at 48 kHz.
const DefaultMaxSamples = 1 << 27

// I/O buffer sizes
const (
	wavWriterBufferSize = 256 * 1024 // 256KB write buffer
	wavReaderChunkSize  = 64 * 1024  // bytes decoded per read
)
