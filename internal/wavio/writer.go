package wavio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tphakala/go-bpsk/internal/failure"
)

// Header returns the 44-byte header for a mono 16-bit payload of
// sampleCount samples at sampleRate.
func Header(sampleRate, sampleCount int) []byte {
	dataSize := uint32(sampleCount * bytesPerSample16)
	byteRate := sampleRate * monoChannels * bytesPerSample16
	blockAlign := monoChannels * bytesPerSample16

	header := make([]byte, HeaderSize)

	// RIFF header
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], wavRiffHeaderSize+dataSize)
	copy(header[8:12], "WAVE")

	// fmt subchunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavPCMSubchunkSize)  // Subchunk1Size (16 for PCM)
	binary.LittleEndian.PutUint16(header[20:22], wavFormatPCM)        // AudioFormat (1 = PCM)
	binary.LittleEndian.PutUint16(header[22:24], monoChannels)        // NumChannels
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))  // SampleRate
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))    // ByteRate
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))  // BlockAlign
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample16)     // BitsPerSample

	// data subchunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	return header
}

// Encode writes the header followed by the little-endian payload to w.
func Encode(w io.Writer, samples []int16, sampleRate int) error {
	if len(samples) > MaxSamples {
		return failure.Allocation("write container",
			fmt.Errorf("%d samples exceeds container limit of %d", len(samples), MaxSamples))
	}

	bw := bufio.NewWriterSize(w, wavWriterBufferSize)
	if _, err := bw.Write(Header(sampleRate, len(samples))); err != nil {
		return failure.IO("write container header", "", err)
	}

	// Encode in chunks through a preallocated byte buffer
	chunk := wavWriterBufferSize / bytesPerSample16
	byteBuf := make([]byte, min(len(samples), chunk)*bytesPerSample16)
	for start := 0; start < len(samples); start += chunk {
		part := samples[start:min(start+chunk, len(samples))]
		buf := byteBuf[:len(part)*bytesPerSample16]
		for i, s := range part {
			binary.LittleEndian.PutUint16(buf[i*bytesPerSample16:], uint16(s))
		}
		if _, err := bw.Write(buf); err != nil {
			return failure.IO("write container payload", "", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return failure.IO("write container payload", "", err)
	}
	return nil
}

// WriteFile creates or truncates path and writes the container to it.
// A failed write leaves whatever was written in place.
func WriteFile(path string, samples []int16, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return failure.IO("create container", path, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = failure.IO("close container", path, closeErr)
		}
	}()

	if err := Encode(f, samples, sampleRate); err != nil {
		var fe *failure.Error
		if errors.As(err, &fe) && fe.Path == "" {
			fe.Path = path
		}
		return err
	}
	return nil
}
