// Package wavio reads and writes the mono 16-bit PCM RIFF/WAVE container that
// carries a modulated signal.
//
// The writer emits the canonical 44-byte header. The default reader trusts
// only two header fields, the sample rate at offset 24 and the data size at
// offset 40, and reads the payload that follows the header. Magic
// identifiers, chunk sizes, format tag, channel count and bit depth are not
// checked, so files with non-conforming headers but correct values at those
// two offsets are accepted. Strict reading (ReadOptions.Strict) parses the
// file with github.com/go-audio/wav and rejects anything but mono 16-bit PCM.
package wavio

import (
	"time"

	"github.com/go-audio/audio"
)

// Container is a decoded mono 16-bit PCM sound file.
type Container struct {
	SampleRate int
	Samples    []int16
}

// Duration returns the playing time of the payload.
func (c *Container) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}

// DataSize returns the payload size in bytes as written to the header.
func (c *Container) DataSize() int {
	return len(c.Samples) * bytesPerSample16
}

// IntBuffer returns the samples as a go-audio buffer for interop with the
// go-audio ecosystem (encoders, transforms).
func (c *Container) IntBuffer() *audio.IntBuffer {
	data := make([]int, len(c.Samples))
	for i, s := range c.Samples {
		data[i] = int(s)
	}
	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: monoChannels,
			SampleRate:  c.SampleRate,
		},
		Data:           data,
		SourceBitDepth: bitsPerSample16,
	}
}
