package cli

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bpsk "github.com/tphakala/go-bpsk"
	"github.com/tphakala/go-bpsk/internal/profile"
)

func parse(t *testing.T, args ...string) (*flag.FlagSet, *CarrierFlags) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flags := RegisterCarrierFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs, flags
}

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "link.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolve_Defaults(t *testing.T) {
	fs, flags := parse(t)

	cfg, p, err := flags.Resolve(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, bpsk.DefaultSampleRate, cfg.SampleRate)
	assert.Equal(t, bpsk.DefaultBaud, cfg.Baud)
	assert.InDelta(t, bpsk.DefaultCarrierFreq, cfg.CarrierFreq, 0)
	assert.Equal(t, bpsk.PrecisionDouble, cfg.Precision)
	assert.True(t, cfg.EnableSIMD)
	assert.False(t, p.Strict)
	assert.False(t, flags.IsSet("fs"))
}

func TestResolve_Flags(t *testing.T) {
	fs, flags := parse(t, "-fs", "8000", "-baud", "500", "-f0", "1500", "-fast", "-simd=false", "-strict")

	cfg, p, err := flags.Resolve(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.SampleRate)
	assert.Equal(t, 500, cfg.Baud)
	assert.InDelta(t, 1500.0, cfg.CarrierFreq, 0)
	assert.Equal(t, bpsk.PrecisionSingle, cfg.Precision)
	assert.False(t, cfg.EnableSIMD)
	assert.True(t, p.Strict)
	assert.True(t, flags.IsSet("fs"))
	assert.Equal(t, &profile.Profile{
		SampleRate:  8000,
		Baud:        500,
		CarrierFreq: 1500,
		Precision:   profile.PrecisionSingle,
		Strict:      true,
	}, p)
}

func TestResolve_ProfileThenFlags(t *testing.T) {
	path := writeProfile(t, "sample_rate: 48000\nbaud: 1200\ncarrier_freq: 2400\nprecision: single\nstrict: true\n")

	fs, flags := parse(t, "-profile", path, "-f0", "3000")
	cfg, p, err := flags.Resolve(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, 48000, cfg.SampleRate)
	assert.Equal(t, 1200, cfg.Baud)
	assert.InDelta(t, 3000.0, cfg.CarrierFreq, 0, "explicit flag wins over profile")
	assert.Equal(t, bpsk.PrecisionSingle, cfg.Precision)
	assert.True(t, p.Strict)
}

func TestResolve_PartialProfile(t *testing.T) {
	path := writeProfile(t, "baud: 500\n")

	fs, flags := parse(t, "-profile", path)
	cfg, _, err := flags.Resolve(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, bpsk.DefaultSampleRate, cfg.SampleRate)
	assert.Equal(t, 500, cfg.Baud)
	assert.InDelta(t, bpsk.DefaultCarrierFreq, cfg.CarrierFreq, 0)
}

func TestResolve_Errors(t *testing.T) {
	fs, flags := parse(t, "-profile", filepath.Join(t.TempDir(), "missing.yaml"))
	_, _, err := flags.Resolve(fs, nil)
	require.Error(t, err)

	fs, flags = parse(t, "-profile", writeProfile(t, "bogus: 1\n"))
	_, _, err = flags.Resolve(fs, nil)
	require.Error(t, err)

	fs, flags = parse(t, "-fs", "1000", "-baud", "2000")
	_, _, err = flags.Resolve(fs, nil)
	assert.ErrorIs(t, err, bpsk.ErrInvalidConfig)
}

func TestResolve_RateFromContainer(t *testing.T) {
	fs, flags := parse(t, "-baud", "48000")
	flags.RateFromContainer = true

	cfg, _, err := flags.Resolve(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, 48000, cfg.Baud)
	assert.Equal(t, bpsk.DefaultSampleRate, cfg.SampleRate)

	fs, flags = parse(t, "-baud", "0")
	flags.RateFromContainer = true
	_, _, err = flags.Resolve(fs, nil)
	assert.ErrorIs(t, err, bpsk.ErrInvalidConfig)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(&buf, false).Info("hidden")
	NewLogger(&buf, false).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	NewLogger(&buf, true).Debug("progress")
	assert.Contains(t, buf.String(), "progress")
}

func TestStartCPUProfile(t *testing.T) {
	stop, err := StartCPUProfile("")
	require.NoError(t, err)
	stop()

	path := filepath.Join(t.TempDir(), "cpu.prof")
	stop, err = StartCPUProfile(path)
	require.NoError(t, err)
	stop()
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = StartCPUProfile(filepath.Join(t.TempDir(), "no", "cpu.prof"))
	require.Error(t, err)
}

func TestUsage(t *testing.T) {
	fs := flag.NewFlagSet("bpsk-test", flag.ContinueOnError)
	fs.String("i", "", "Input file")
	var buf bytes.Buffer

	Usage(&buf, fs, "-i <input>", "-i data.bin")
	out := buf.String()
	assert.Contains(t, out, "Usage: bpsk-test -i <input>")
	assert.Contains(t, out, "Input file")
	assert.Contains(t, out, "bpsk-test -i data.bin")
}
