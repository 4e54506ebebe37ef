// Package cli holds the flag handling shared by the bpsk commands: carrier
// flags, profile merging, logging setup and CPU profiling.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/pprof"

	bpsk "github.com/tphakala/go-bpsk"
	"github.com/tphakala/go-bpsk/internal/profile"
)

// ErrUsage is returned when required flags are missing.
var ErrUsage = errors.New("missing required flags")

// CarrierFlags are the carrier and processing flags common to all commands.
type CarrierFlags struct {
	SampleRate  *int
	Baud        *int
	CarrierFreq *float64
	Profile     *string
	SIMD        *bool
	Fast        *bool
	Strict      *bool
	Verbose     *bool
	CPUProfile  *string

	// RateFromContainer leaves -baud unchecked against -fs because the
	// command takes its sample rate from the input file.
	RateFromContainer bool

	set map[string]bool
}

// RegisterCarrierFlags defines the shared flags on fs.
func RegisterCarrierFlags(fs *flag.FlagSet) *CarrierFlags {
	return &CarrierFlags{
		SampleRate:  fs.Int("fs", bpsk.DefaultSampleRate, "Sample rate in Hz"),
		Baud:        fs.Int("baud", bpsk.DefaultBaud, "Baud rate in bits per second"),
		CarrierFreq: fs.Float64("f0", bpsk.DefaultCarrierFreq, "Carrier frequency in Hz"),
		Profile:     fs.String("profile", "", "YAML carrier profile (explicit flags take precedence)"),
		SIMD:        fs.Bool("simd", true, "Use SIMD kernels"),
		Fast:        fs.Bool("fast", false, "Use float32 precision for correlation"),
		Strict:      fs.Bool("strict", false, "Validate the full WAV header when reading"),
		Verbose:     fs.Bool("v", false, "Verbose output"),
		CPUProfile:  fs.String("cpuprofile", "", "Write CPU profile to file (for PGO)"),
	}
}

// IsSet reports whether the named flag was given explicitly.
// Valid only after Resolve.
func (f *CarrierFlags) IsSet(name string) bool {
	return f.set[name]
}

// Resolve builds the run configuration: defaults, then the profile named by
// -profile (if any), then explicitly set flags. It returns the merged profile
// so callers can persist it.
func (f *CarrierFlags) Resolve(fs *flag.FlagSet, logger *slog.Logger) (*bpsk.Config, *profile.Profile, error) {
	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	p := &profile.Profile{}
	if *f.Profile != "" {
		loaded, err := profile.Load(*f.Profile)
		if err != nil {
			return nil, nil, err
		}
		p = loaded
	}

	if f.IsSet("fs") || p.SampleRate == 0 {
		p.SampleRate = *f.SampleRate
	}
	if f.IsSet("baud") || p.Baud == 0 {
		p.Baud = *f.Baud
	}
	if f.IsSet("f0") || p.CarrierFreq == 0 {
		p.CarrierFreq = *f.CarrierFreq
	}
	if f.IsSet("fast") || p.Precision == "" {
		p.Precision = profile.PrecisionDouble
		if *f.Fast {
			p.Precision = profile.PrecisionSingle
		}
	}
	if f.IsSet("strict") {
		p.Strict = *f.Strict
	}

	precision, err := bpsk.ParsePrecision(p.Precision)
	if err != nil {
		return nil, nil, err
	}

	cfg := &bpsk.Config{
		SampleRate:  p.SampleRate,
		Baud:        p.Baud,
		CarrierFreq: p.CarrierFreq,
		Precision:   precision,
		EnableSIMD:  *f.SIMD,
		Logger:      logger,
	}
	validate := cfg.Validate
	if f.RateFromContainer {
		validate = cfg.ValidateCarrier
	}
	if err := validate(); err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}

// NewLogger returns a text logger on w at Debug level when verbose, Warn
// otherwise.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// StartCPUProfile starts CPU profiling to path. The returned function stops
// profiling and closes the file. An empty path is a no-op.
func StartCPUProfile(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		_ = f.Close()
	}, nil
}

// Usage prints the command's usage, options and examples to w.
func Usage(w io.Writer, fs *flag.FlagSet, synopsis string, examples ...string) {
	fmt.Fprintf(w, "Usage: %s %s\n\n", fs.Name(), synopsis)
	fmt.Fprintf(w, "Options:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
	if len(examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, ex := range examples {
			fmt.Fprintf(w, "  %s %s\n", fs.Name(), ex)
		}
	}
}
