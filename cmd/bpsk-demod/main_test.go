package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bpsk "github.com/tphakala/go-bpsk"
	"github.com/tphakala/go-bpsk/internal/cli"
	"github.com/tphakala/go-bpsk/internal/profile"
)

func writeSignal(t *testing.T, dir string, data []byte, cfg *bpsk.Config) string {
	t.Helper()
	samples, err := bpsk.Encode(data, cfg)
	require.NoError(t, err)
	path := filepath.Join(dir, "signal.wav")
	require.NoError(t, bpsk.WriteContainer(path, samples, cfg.SampleRate))
	return path
}

func TestRun_MissingFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-i", "signal.wav"}, &stdout, &stderr)
	require.ErrorIs(t, err, cli.ErrUsage)
	assert.Contains(t, stderr.String(), "Usage: bpsk-demod")
}

func TestRun_Demodulates(t *testing.T) {
	dir := t.TempDir()
	msg := []byte("hello, carrier")
	wav := writeSignal(t, dir, msg, bpsk.DefaultConfig())

	for _, extra := range [][]string{
		nil,
		{"-fast"},
		{"-fused"},
		{"-simd=false"},
		{"-strict"},
		{"-v"},
	} {
		out := filepath.Join(dir, "out.bin")
		args := append([]string{"-i", wav, "-o", out}, extra...)

		var stdout, stderr bytes.Buffer
		require.NoError(t, run(args, &stdout, &stderr), "args %v", extra)
		assert.Contains(t, stdout.String(), "Demodulation complete. Recovered data saved to "+out)

		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, msg, got, "args %v", extra)
	}
}

func TestRun_ContainerRateOverridesFs(t *testing.T) {
	dir := t.TempDir()
	cfg := bpsk.DefaultConfig()
	cfg.SampleRate = 48000
	cfg.Baud = 1200
	cfg.CarrierFreq = 2400
	wav := writeSignal(t, dir, []byte("rate"), cfg)
	out := filepath.Join(dir, "out.bin")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-i", wav, "-o", out, "-fs", "44100", "-baud", "1200", "-f0", "2400"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "container sample rate overrides -fs")

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("rate"), got)
}

func TestRun_Profile(t *testing.T) {
	dir := t.TempDir()
	cfg := bpsk.DefaultConfig()
	cfg.SampleRate = 8000
	cfg.Baud = 500
	cfg.CarrierFreq = 1500
	wav := writeSignal(t, dir, []byte{0x00, 0xFF, 0x5A}, cfg)

	prof := filepath.Join(dir, "link.yaml")
	require.NoError(t, profile.Save(prof, &profile.Profile{SampleRate: 8000, Baud: 500, CarrierFreq: 1500}))

	out := filepath.Join(dir, "out.bin")
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-i", wav, "-o", out, "-profile", prof}, &stdout, &stderr))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xFF, 0x5A}, got)
}

func TestRun_MalformedContainer(t *testing.T) {
	dir := t.TempDir()
	wav := filepath.Join(dir, "empty.wav")
	require.NoError(t, bpsk.WriteContainer(wav, nil, 8000))

	var stdout, stderr bytes.Buffer
	err := run([]string{"-i", wav, "-o", filepath.Join(dir, "out.bin")}, &stdout, &stderr)
	assert.ErrorIs(t, err, bpsk.ErrMalformedContainer)
}

func TestRun_WrongCarrierWarns(t *testing.T) {
	dir := t.TempDir()
	cfg := bpsk.DefaultConfig()
	cfg.SampleRate = 48000
	cfg.Baud = 1200
	cfg.CarrierFreq = 2400
	data := bytes.Repeat([]byte{0xFF}, 64)
	wav := writeSignal(t, dir, data, cfg)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-i", wav, "-o", filepath.Join(dir, "out.bin"), "-baud", "1200", "-f0", "9000", "-v"},
		&stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "spectral peak far from carrier frequency")
}

func TestRun_BaudCheckedAgainstContainerRate(t *testing.T) {
	dir := t.TempDir()
	cfg := bpsk.DefaultConfig()
	cfg.SampleRate = 96000
	cfg.Baud = 48000
	cfg.CarrierFreq = 24000
	wav := writeSignal(t, dir, []byte{0x3C}, cfg)
	out := filepath.Join(dir, "out.bin")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-i", wav, "-o", out, "-baud", "48000", "-f0", "24000", "-v"}, &stdout, &stderr))
	assert.NotContains(t, stdout.String(), "Inf")

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x3C}, got)

	err = run([]string{"-i", wav, "-o", out, "-baud", "96001"}, &stdout, &stderr)
	assert.ErrorIs(t, err, bpsk.ErrInvalidConfig)
}
