package wavio

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-bpsk/internal/failure"
)

// decodeStrict parses the container with go-audio/wav and accepts only
// mono 16-bit linear PCM with a non-empty payload.
func decodeStrict(r io.ReadSeeker, path string, opts ReadOptions) (*Container, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		cause := decoder.Err()
		if cause == nil {
			cause = errors.New("invalid WAV file")
		}
		return nil, failure.Malformed("read container", path, cause)
	}

	switch {
	case decoder.WavAudioFormat != wavFormatPCM:
		return nil, failure.Malformed("read container", path,
			fmt.Errorf("audio format %d is not PCM", decoder.WavAudioFormat))
	case decoder.NumChans != monoChannels:
		return nil, failure.Malformed("read container", path,
			fmt.Errorf("%d channels, want mono", decoder.NumChans))
	case decoder.BitDepth != bitsPerSample16:
		return nil, failure.Malformed("read container", path,
			fmt.Errorf("%d-bit samples, want 16-bit", decoder.BitDepth))
	}

	if err := decoder.FwdToPCM(); err != nil {
		return nil, failure.Malformed("read container", path, err)
	}
	if err := checkSampleCount(int(decoder.PCMSize)/bytesPerSample16, opts); err != nil {
		return nil, err
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, failure.IO("read container payload", path, err)
	}

	c, err := FromIntBuffer(buf)
	if err != nil {
		return nil, failure.Malformed("read container", path, err)
	}
	return c, nil
}

// FromIntBuffer converts a mono go-audio buffer holding 16-bit samples.
func FromIntBuffer(buf *audio.IntBuffer) (*Container, error) {
	if buf == nil || buf.Format == nil {
		return nil, errors.New("buffer has no format")
	}
	if buf.Format.NumChannels != monoChannels {
		return nil, fmt.Errorf("%d channels, want mono", buf.Format.NumChannels)
	}
	if len(buf.Data) == 0 {
		return nil, errors.New("empty payload")
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}
	return &Container{
		SampleRate: buf.Format.SampleRate,
		Samples:    samples,
	}, nil
}
