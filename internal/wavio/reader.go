package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tphakala/go-bpsk/internal/failure"
)

// ReadOptions controls container parsing.
type ReadOptions struct {
	// Strict validates the whole header with github.com/go-audio/wav and
	// rejects anything but mono 16-bit PCM. The default trusts only the
	// sample rate and data size fields.
	Strict bool

	// MaxSamples caps the declared sample count. Zero uses
	// DefaultMaxSamples. A larger declaration fails with an allocation
	// error before the sample buffer is made.
	MaxSamples int

	// Logger receives warnings such as a truncated payload. Nil discards.
	Logger *slog.Logger
}

func (o ReadOptions) maxSamples() int {
	if o.MaxSamples <= 0 {
		return DefaultMaxSamples
	}
	return o.MaxSamples
}

// checkSampleCount rejects a declared payload larger than the caller allows.
func checkSampleCount(count int, opts ReadOptions) error {
	if limit := opts.maxSamples(); count > limit {
		return failure.Allocation("read container",
			fmt.Errorf("declared %d samples exceeds limit %d", count, limit))
	}
	return nil
}

// ReadFile opens path and decodes its container.
func ReadFile(path string, opts ReadOptions) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, failure.IO("open container", path, err)
	}
	defer func() { _ = f.Close() }()

	return decode(f, path, opts)
}

// Decode parses a container from r.
func Decode(r io.ReadSeeker, opts ReadOptions) (*Container, error) {
	return decode(r, "", opts)
}

func decode(r io.ReadSeeker, path string, opts ReadOptions) (*Container, error) {
	if opts.Strict {
		return decodeStrict(r, path, opts)
	}

	sampleRate, err := readInt32At(r, wavSampleRateOffs)
	if err != nil {
		return nil, headerError(path, "sample rate", err)
	}
	dataSize, err := readInt32At(r, wavDataSizeOffset)
	if err != nil {
		return nil, headerError(path, "data size", err)
	}

	// Convert byte length to sample count
	count := int(dataSize) / bytesPerSample16
	if count <= 0 {
		return nil, failure.Malformed("read container", path,
			fmt.Errorf("invalid declared data size %d", dataSize))
	}

	if err := checkSampleCount(count, opts); err != nil {
		return nil, err
	}

	// The reader is positioned right after the data size field
	samples := make([]int16, count)
	n, err := readSamples(r, samples)
	if err != nil {
		return nil, failure.IO("read container payload", path, err)
	}
	if n < count && opts.Logger != nil {
		opts.Logger.Warn("container payload shorter than declared; missing samples are zero",
			"path", path,
			"declared_samples", count,
			"read_samples", n)
	}

	return &Container{
		SampleRate: int(sampleRate),
		Samples:    samples,
	}, nil
}

// readInt32At reads a little-endian signed 32-bit field at offset.
func readInt32At(r io.ReadSeeker, offset int64) (int32, error) {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return 0, err
	}
	var field [uint32Size]byte
	if _, err := io.ReadFull(r, field[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(field[:])), nil
}

func headerError(path, field string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return failure.Malformed("read container", path, fmt.Errorf("header truncated before %s field", field))
	}
	return failure.IO("read container header", path, err)
}

// readSamples fills dst from r until dst is full or r is exhausted and
// returns the number of whole samples read. Running out of data is not an
// error; the unread tail of dst stays zero.
func readSamples(r io.Reader, dst []int16) (int, error) {
	buf := make([]byte, min(len(dst)*bytesPerSample16, wavReaderChunkSize))
	n := 0
	for n < len(dst) {
		want := min((len(dst)-n)*bytesPerSample16, len(buf))
		got, err := io.ReadFull(r, buf[:want])
		whole := got / bytesPerSample16
		for i := range whole {
			dst[n+i] = int16(binary.LittleEndian.Uint16(buf[i*bytesPerSample16:]))
		}
		n += whole

		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
