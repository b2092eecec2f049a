package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"sync/atomic"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/window"
)

var (
	// ErrInvalidFFTSize is returned for FFT sizes that are not a power of
	// two in [256, 16384].
	ErrInvalidFFTSize = errors.New("spectrum: fft size must be a power of two in [256, 16384]")
	// ErrInvalidSampleRate is returned for non-positive sample rates.
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be > 0")
)

// AnalyzerOption configures an [Analyzer].
type AnalyzerOption func(*analyzerConfig)

type analyzerConfig struct {
	fftSize   int
	overlap   float64
	smoothing float64
	window    window.Type
}

func defaultAnalyzerConfig() analyzerConfig {
	return analyzerConfig{
		fftSize:   2048,
		overlap:   0.5,
		smoothing: 0.7,
		window:    window.TypeBlackmanHarris4Term,
	}
}

// WithFFTSize sets the analysis frame length.
func WithFFTSize(n int) AnalyzerOption {
	return func(c *analyzerConfig) { c.fftSize = n }
}

// WithOverlap sets the fraction of a frame shared with the next one,
// clamped to [0.25, 0.95].
func WithOverlap(o float64) AnalyzerOption {
	return func(c *analyzerConfig) { c.overlap = core.Clamp(o, 0.25, 0.95) }
}

// WithSmoothing sets the weight of the previous frame in the running dB
// average, clamped to [0, 0.95].
func WithSmoothing(s float64) AnalyzerOption {
	return func(c *analyzerConfig) { c.smoothing = core.Clamp(s, 0, 0.95) }
}

// WithWindow selects the analysis window.
func WithWindow(t window.Type) AnalyzerOption {
	return func(c *analyzerConfig) { c.window = t }
}

// Analyzer computes a smoothed magnitude spectrum in dBFS of a live signal.
//
// Push is called by the audio goroutine and only writes a lock-free ring
// buffer. Update and CurveDB run on one control goroutine, which performs
// the windowing and FFT.
type Analyzer struct {
	sampleRate float64
	fftSize    int
	hop        uint64
	smoothing  float64

	ring    []atomic.Uint64
	mask    uint64
	written atomic.Uint64

	win   []float64
	norm  float64
	plan  *algofft.Plan[complex128]
	frame []float64
	in    []complex128
	out   []complex128
	re    []float64
	im    []float64
	mag   []float64
	db    []float64
	ready bool
	seen  uint64
}

// NewAnalyzer returns an analyzer for a signal at sampleRate.
func NewAnalyzer(sampleRate float64, opts ...AnalyzerOption) (*Analyzer, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	cfg := defaultAnalyzerConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := cfg.fftSize
	if n < 256 || n > 16384 || bits.OnesCount(uint(n)) != 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, n)
	}

	win := window.Generate(cfg.window, n, window.WithPeriodic())

	gain, err := window.CoherentGain(win)
	if err != nil {
		return nil, fmt.Errorf("spectrum: analyzer window: %w", err)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: analyzer fft plan: %w", err)
	}

	hop := int(math.Round(float64(n) * (1 - cfg.overlap)))
	bins := n/2 + 1

	a := &Analyzer{
		sampleRate: sampleRate,
		fftSize:    n,
		hop:        uint64(max(hop, 1)),
		smoothing:  cfg.smoothing,
		ring:       make([]atomic.Uint64, 2*n),
		mask:       uint64(2*n - 1),
		win:        win,
		norm:       float64(n) * gain,
		plan:       plan,
		frame:      make([]float64, n),
		in:         make([]complex128, n),
		out:        make([]complex128, n),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mag:        make([]float64, bins),
		db:         make([]float64, bins),
	}
	core.Fill(a.db, core.MinDB)

	return a, nil
}

// SampleRate returns the sample rate the analyzer was built for.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// FFTSize returns the analysis frame length.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// Push appends samples to the analysis ring. It never blocks or allocates.
// There must be a single pushing goroutine.
func (a *Analyzer) Push(samples []float64) {
	w := a.written.Load()
	for _, x := range samples {
		a.ring[w&a.mask].Store(math.Float64bits(x))
		w++
	}
	a.written.Store(w)
}

// Update computes a new frame when at least one hop of fresh samples is
// available and reports whether the spectrum changed.
func (a *Analyzer) Update() bool {
	w := a.written.Load()
	n := uint64(a.fftSize)
	if w < n || w-a.seen < a.hop {
		return false
	}

	start := w - n
	for i := range a.frame {
		a.frame[i] = math.Float64frombits(a.ring[(start+uint64(i))&a.mask].Load())
	}

	a.seen = w
	if a.written.Load()-start > uint64(len(a.ring)) {
		// The writer lapped the frame while it was copied.
		return false
	}

	if err := window.ApplyCoefficients(a.frame, a.frame, a.win); err != nil {
		return false
	}

	for i, s := range a.frame {
		a.in[i] = complex(s, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return false
	}

	for k := range a.re {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}
	MagnitudeFromParts(a.mag, a.re, a.im)

	last := len(a.db) - 1
	for k, m := range a.mag {
		m /= a.norm
		if k > 0 && k < last {
			m *= 2
		}

		d := core.AmplitudeToDB(m)
		if a.ready {
			d = a.smoothing*a.db[k] + (1-a.smoothing)*d
		}
		a.db[k] = d
	}

	a.ready = true

	return true
}

// Ready reports whether at least one frame has been analyzed.
func (a *Analyzer) Ready() bool { return a.ready }

// Reset discards the analyzed spectrum. Samples already pushed are kept.
func (a *Analyzer) Reset() {
	core.Fill(a.db, core.MinDB)
	a.ready = false
}

// CurveDB writes the spectrum level at each of freqs into dst, linearly
// interpolating between bins, and returns it. Before the first frame every
// value is [core.MinDB].
func (a *Analyzer) CurveDB(dst, freqs []float64) []float64 {
	if cap(dst) < len(freqs) {
		dst = make([]float64, len(freqs))
	}
	dst = dst[:len(freqs)]

	if !a.ready {
		core.Fill(dst, core.MinDB)
		return dst
	}

	binHz := a.sampleRate / float64(a.fftSize)
	last := len(a.db) - 1

	for i, f := range freqs {
		bin := core.Clamp(f, 0, a.sampleRate/2) / binHz
		switch {
		case bin <= 0:
			dst[i] = a.db[0]
		case bin >= float64(last):
			dst[i] = a.db[last]
		default:
			base := int(bin)
			frac := bin - float64(base)
			dst[i] = a.db[base] + frac*(a.db[base+1]-a.db[base])
		}
	}

	return dst
}
