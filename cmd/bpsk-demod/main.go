// Command bpsk-demod recovers the data carried by a BPSK WAV file.
//
// Usage:
//
//	bpsk-demod -i signal.wav -o recovered.bin
//	bpsk-demod -i signal.wav -o recovered.bin -baud 1200 -f0 2400
//	bpsk-demod -i signal.wav -o recovered.bin -profile link.yaml -v
//	bpsk-demod -i signal.wav -o recovered.bin -fast            # float32 correlation
//
// The sample rate is taken from the WAV file; -fs is only compared against
// it, and -baud is checked against the file's rate. -baud and -f0 must match
// the transmitter.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	bpsk "github.com/tphakala/go-bpsk"
	"github.com/tphakala/go-bpsk/internal/cli"
	"github.com/tphakala/go-bpsk/internal/spectrum"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, cli.ErrUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("bpsk-demod", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("i", "", "Input WAV file (required)")
	output := fs.String("o", "", "Output file for recovered data (required)")
	fused := fs.Bool("fused", false, "Correlate each symbol window directly without full intermediate arrays")
	flags := cli.RegisterCarrierFlags(fs)
	flags.RateFromContainer = true
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *input == "" || *output == "" {
		cli.Usage(stderr, fs, "-i <input.wav> -o <output> [options]",
			"-i signal.wav -o recovered.bin",
			"-i signal.wav -o recovered.bin -baud 1200 -f0 2400")
		return cli.ErrUsage
	}

	stop, err := cli.StartCPUProfile(*flags.CPUProfile)
	if err != nil {
		return err
	}
	defer stop()

	logger := cli.NewLogger(stderr, *flags.Verbose)
	cfg, prof, err := flags.Resolve(fs, logger)
	if err != nil {
		return err
	}
	cfg.FusedCorrelation = *fused
	opts := bpsk.ReadOptions{Strict: prof.Strict, Logger: logger}

	if *flags.Verbose {
		log.Printf("Input: %s", *input)
		log.Printf("Output: %s", *output)
		log.Printf("Carrier: %d baud, %g Hz", cfg.Baud, cfg.CarrierFreq)
		if cfg.Precision == bpsk.PrecisionSingle {
			log.Printf("Precision: float32 (fast mode)")
		} else {
			log.Printf("Precision: float64 (high precision)")
		}
		if opts.Strict {
			log.Printf("Container: strict validation")
		}
	}

	c, err := bpsk.ReadContainer(*input, opts)
	if err != nil {
		return err
	}
	if *flags.Verbose {
		checkCarrier(c, cfg, logger)
	}

	stats, err := bpsk.DecodeContainer(c, *output, cfg)
	if err != nil {
		return err
	}

	if flags.IsSet("fs") && *flags.SampleRate != stats.SampleRate {
		logger.Warn("container sample rate overrides -fs",
			"fs", *flags.SampleRate,
			"container", stats.SampleRate)
	}

	fmt.Fprintf(stdout, "Demodulation complete. Recovered data saved to %s\n", *output)
	fmt.Fprintf(stdout, "  %d samples at %d Hz -> %d bits -> %d bytes\n",
		stats.Samples, stats.SampleRate, stats.Bits, stats.OutputBytes)
	if speed := stats.RealtimeFactor(); speed > 0 {
		fmt.Fprintf(stdout, "  Duration: %.2fs, Speed: %.1fx realtime\n", stats.Elapsed.Seconds(), speed)
	}
	return nil
}

// checkCarrier warns when the dominant frequency of the signal is far from
// the configured carrier. Failures are logged, not returned.
func checkCarrier(c *bpsk.Container, cfg *bpsk.Config, logger *slog.Logger) {
	peak, err := spectrum.Peak(c.Samples, c.SampleRate)
	if err != nil {
		logger.Debug("spectral check skipped", "error", err)
		return
	}
	log.Printf("Spectral peak: %.1f Hz (resolution %.1f Hz)", peak.Frequency, peak.Resolution)
	if !peak.Near(cfg.CarrierFreq, spectrum.DefaultToleranceBins) {
		logger.Warn("spectral peak far from carrier frequency; check -f0",
			"f0", cfg.CarrierFreq,
			"peak", peak.Frequency)
	}
}
