// Command eqcurve prints the magnitude response of the three-band
// equalizer for the given settings.
//
// Usage:
//
//	eqcurve [flags] [frequency ...]
//
// Without frequency arguments it prints log-spaced points from 20 Hz to
// 20 kHz. Frequencies accept the parameter syntax ("250", "2.5k").
//
// Examples:
//
//	eqcurve -peak-gain 6 -peak-freq 1k
//	eqcurve -lowcut 80 -lowcut-slope 48 -points 16
//	eqcurve -measure 65536 100 1k 10k
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/dsp/spectrum"
	"github.com/cwbudde/algo-eq/measure/response"
	"github.com/cwbudde/algo-eq/param"
)

var errUnknownSlope = errors.New("slope must be 12, 24, 36 or 48")

func main() {
	def := eq.DefaultSettings()

	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	points := flag.Int("points", 31, "number of log-spaced points when no frequencies are given")
	measure := flag.Int("measure", 0, "also measure the impulse response with this FFT length (power of two, 0 disables)")
	peakFreq := flag.String("peak-freq", "750", "peak frequency in Hz")
	peakGain := flag.Float64("peak-gain", def.PeakGainDB, "peak gain in dB")
	peakQ := flag.Float64("peak-q", def.PeakQ, "peak quality")
	lowCut := flag.String("lowcut", "20", "low-cut frequency in Hz")
	highCut := flag.String("highcut", "20k", "high-cut frequency in Hz")
	lowSlope := flag.Int("lowcut-slope", 12, "low-cut slope in dB/oct (12, 24, 36, 48)")
	highSlope := flag.Int("highcut-slope", 12, "high-cut slope in dB/oct (12, 24, 36, 48)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eqcurve [flags] [frequency ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the magnitude response of the three-band equalizer.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  eqcurve -peak-gain 6 -peak-freq 1k\n")
		fmt.Fprintf(os.Stderr, "  eqcurve -lowcut 80 -lowcut-slope 48 -points 16\n")
		fmt.Fprintf(os.Stderr, "  eqcurve -measure 65536 100 1k 10k\n")
	}
	flag.Parse()

	s := eq.ChainSettings{PeakGainDB: *peakGain, PeakQ: *peakQ}

	var err error
	if s.PeakFreq, err = parseFrequency(*peakFreq); err != nil {
		fail(err)
	}
	if s.LowCutFreq, err = parseFrequency(*lowCut); err != nil {
		fail(err)
	}
	if s.HighCutFreq, err = parseFrequency(*highCut); err != nil {
		fail(err)
	}
	if s.LowCutSlope, err = slopeFromDB(*lowSlope); err != nil {
		fail(fmt.Errorf("lowcut-slope: %w", err))
	}
	if s.HighCutSlope, err = slopeFromDB(*highSlope); err != nil {
		fail(fmt.Errorf("highcut-slope: %w", err))
	}

	freqs := spectrum.LogFrequencies(max(*points, 2), spectrum.MinDisplayHz, spectrum.MaxDisplayHz)
	if flag.NArg() > 0 {
		freqs = freqs[:0]
		for _, arg := range flag.Args() {
			f, err := parseFrequency(arg)
			if err != nil {
				fail(err)
			}
			freqs = append(freqs, f)
		}
	}

	if err := printCurve(os.Stdout, s, *rate, freqs, *measure); err != nil {
		fail(err)
	}
}

func fail(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

var freqParam = param.NewFloat("frequency", "Hz", 0, 1e6, 0, 1, 1000)

// parseFrequency reads a frequency with an optional k multiplier and Hz
// unit.
func parseFrequency(s string) (float64, error) {
	return freqParam.Parse(s)
}

func slopeFromDB(db int) (eq.Slope, error) {
	for s := eq.Slope12; s <= eq.Slope48; s++ {
		if s.DBPerOctave() == db {
			return s, nil
		}
	}

	return 0, fmt.Errorf("%w: %d", errUnknownSlope, db)
}

func printCurve(w io.Writer, s eq.ChainSettings, sampleRate float64, freqs []float64, measureLen int) error {
	chain := eq.NewChain()
	if err := chain.UpdateFromSettings(s, sampleRate); err != nil {
		return err
	}

	db := eq.NewSampler(chain).MagnitudeDB(freqs, sampleRate)

	var measured []float64
	if measureLen > 0 {
		m, err := response.Measure(s, sampleRate, measureLen)
		if err != nil {
			return err
		}

		if measured, err = m.At(freqs); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "Freq [Hz]\tResponse [dB]\n"
	rule := "---------\t-------------\n"
	if measured != nil {
		header = "Freq [Hz]\tResponse [dB]\tMeasured [dB]\tDiff [dB]\n"
		rule = "---------\t-------------\t-------------\t---------\n"
	}

	if _, err := fmt.Fprint(tw, header+rule); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for i, f := range freqs {
		var err error
		if measured != nil {
			_, err = fmt.Fprintf(tw, "%.1f\t%.2f\t%.2f\t%.3f\n", f, db[i], measured[i], measured[i]-db[i])
		} else {
			_, err = fmt.Fprintf(tw, "%.1f\t%.2f\n", f, db[i])
		}

		if err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}
