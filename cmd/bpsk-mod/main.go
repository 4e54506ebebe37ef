// Command bpsk-mod modulates a file into a BPSK signal stored as a mono
// 16-bit PCM WAV file.
//
// Usage:
//
//	bpsk-mod -i message.bin -o signal.wav
//	bpsk-mod -i message.bin -o signal.wav -fs 48000 -baud 1200 -f0 2400
//	bpsk-mod -i message.bin -o signal.wav -save-profile link.yaml
//
// Only the sample rate is stored in the WAV file. The receiver must use the
// same -baud and -f0; -save-profile writes them to a YAML profile that
// bpsk-demod can load with -profile.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	bpsk "github.com/tphakala/go-bpsk"
	"github.com/tphakala/go-bpsk/internal/cli"
	"github.com/tphakala/go-bpsk/internal/profile"
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
	fs := flag.NewFlagSet("bpsk-mod", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("i", "", "Input file to modulate (required)")
	output := fs.String("o", "", "Output WAV file (required)")
	saveProfile := fs.String("save-profile", "", "Write the carrier profile to this YAML file")
	flags := cli.RegisterCarrierFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *input == "" || *output == "" {
		cli.Usage(stderr, fs, "-i <input> -o <output.wav> [options]",
			"-i message.bin -o signal.wav",
			"-i message.bin -o signal.wav -fs 48000 -baud 1200 -f0 2400")
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

	if *flags.Verbose {
		log.Printf("Input: %s", *input)
		log.Printf("Output: %s", *output)
		log.Printf("Carrier: %d Hz sample rate, %d baud, %g Hz", cfg.SampleRate, cfg.Baud, cfg.CarrierFreq)
		log.Printf("Samples per symbol: %d", cfg.SymbolPeriod())
	}

	stats, err := bpsk.EncodeFile(*input, *output, cfg)
	if err != nil {
		return err
	}

	if *saveProfile != "" {
		if err := profile.Save(*saveProfile, prof); err != nil {
			return err
		}
		if *flags.Verbose {
			log.Printf("Profile saved to %s", *saveProfile)
		}
	}

	fmt.Fprintf(stdout, "BPSK signal generated and saved to %s\n", *output)
	fmt.Fprintf(stdout, "  %d bytes -> %d bits -> %d samples (%.2fs at %d Hz)\n",
		stats.InputBytes, stats.Bits, stats.Samples, stats.Duration.Seconds(), stats.SampleRate)
	return nil
}
