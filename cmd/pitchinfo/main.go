// Command pitchinfo runs the streaming pitch detector over generated test
// tones and prints the detection results.
//
// Usage:
//
//	pitchinfo [flags] [frequency-hz ...]
//
// Without arguments it analyzes a set of common instrument frequencies.
//
// Examples:
//
//	pitchinfo 440
//	pitchinfo -rate 48000 -frame 4096 82.41 110 146.83
//	pitchinfo -ref 432 432
//	pitchinfo -backend radix2 -block 256 440
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/dsp/signal"
)

var defaultFrequencies = []float64{82.407, 110, 146.83, 196, 246.94, 261.63, 329.63, 440, 523.25, 880}

func main() {
	rate := flag.Int("rate", 44100, "sample rate in Hz")
	frame := flag.Int("frame", 2048, "analysis frame size in samples")
	threshold := flag.Float64("threshold", pitch.DefaultThreshold, "YIN acceptance threshold")
	ref := flag.Float64("ref", pitch.DefaultReferencePitch, "reference pitch (A4) in Hz")
	backend := flag.String("backend", "", "FFT backend (radix2, algofft, gonum; empty = auto)")
	block := flag.Int("block", 256, "block size fed per Process call")
	flag.Parse()

	frequencies := defaultFrequencies

	if flag.NArg() > 0 {
		frequencies = make([]float64, 0, flag.NArg())

		for _, arg := range flag.Args() {
			f, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "pitchinfo: invalid frequency %q\n", arg)
				os.Exit(2)
			}

			frequencies = append(frequencies, f)
		}
	}

	opts := []pitch.Option{
		pitch.WithThreshold(*threshold),
		pitch.WithReferencePitch(*ref),
	}

	if *backend != "" {
		opts = append(opts, pitch.WithFFTBackend(parseBackend(*backend)))
	}

	generator := signal.NewGenerator(float64(*rate))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "input Hz\tdetected Hz\tnote\tmidi\tcents\tprobability")

	for _, freq := range frequencies {
		detector, err := pitch.New(*rate, *frame, opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pitchinfo: %v\n", err)
			os.Exit(1)
		}

		tone, err := generator.Sine(freq, 0.8, 2*(*frame))
		if err != nil {
			fmt.Fprintf(os.Stderr, "pitchinfo: %v\n", err)
			os.Exit(1)
		}

		var result pitch.Result

		for pos := 0; pos < len(tone); pos += *block {
			end := min(pos+*block, len(tone))
			result = detector.Process(tone[pos:end])
		}

		if result.Pitched {
			fmt.Fprintf(w, "%.2f\t%.2f\t%s\t%d\t%+.1f\t%.3f\n",
				freq, result.Frequency, result.NoteName, result.MidiNote, result.CentsOffset, result.Probability)
		} else {
			fmt.Fprintf(w, "%.2f\t-\t-\t-\t-\t-\n", freq)
		}
	}

	w.Flush()
}

func parseBackend(name string) fft.Backend {
	switch name {
	case "radix2", "manual":
		return fft.BackendRadix2
	case "algofft":
		return fft.BackendAlgoFFT
	case "gonum":
		return fft.BackendGonum
	default:
		return fft.BackendAuto
	}
}
