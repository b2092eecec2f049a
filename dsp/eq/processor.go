package eq

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Tap receives a mono mix of the processed signal, for example a
// [spectrum.Analyzer]. Push is called on the audio goroutine and must not
// block or retain samples.
type Tap interface {
	Push(samples []float64)
}

// Processor is a stereo equalizer: two independent [Chain] instances fed
// from one set of [ChainSettings].
//
// Prepare, Update and Release are control-side calls and are serialized
// internally. ProcessBlock and ProcessInterleaved are audio-side calls and
// never lock or allocate. Until Prepare succeeds, and after Release, audio
// passes through unchanged.
type Processor struct {
	mu       sync.Mutex
	cfg      core.ProcessorConfig
	settings ChainSettings

	active atomic.Bool

	left  Chain
	right Chain
	tap   Tap

	// Audio-side scratch, sized by Prepare.
	bufL []float64
	bufR []float64
	mix  []float64
}

// NewProcessor returns an unprepared processor. The options set the
// session used by [Processor.PrepareDefault].
func NewProcessor(opts ...core.ProcessorOption) *Processor {
	return &Processor{
		cfg:      core.ApplyProcessorOptions(opts...),
		settings: DefaultSettings(),
	}
}

// SetTap installs t as the analysis tap. Call it before Prepare or while
// processing is stopped.
func (p *Processor) SetTap(t Tap) {
	p.tap = t
}

// Left returns the left channel chain.
func (p *Processor) Left() *Chain { return &p.left }

// Right returns the right channel chain.
func (p *Processor) Right() *Chain { return &p.right }

// Config returns the current session settings.
func (p *Processor) Config() core.ProcessorConfig {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.cfg
}

// Settings returns the last settings passed to Update.
func (p *Processor) Settings() ChainSettings {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.settings
}

// Prepare starts a session at sampleRate with blocks of at most blockSize
// frames. It clears all filter state and recomputes coefficients from the
// current settings, so it must not run concurrently with processing.
//
// On error the processor is left in passthrough.
func (p *Processor) Prepare(sampleRate float64, blockSize int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.active.Store(false)

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if blockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	p.cfg = core.ProcessorConfig{SampleRate: sampleRate, BlockSize: blockSize}
	p.bufL = core.EnsureLen(p.bufL, blockSize)
	p.bufR = core.EnsureLen(p.bufR, blockSize)
	p.mix = core.EnsureLen(p.mix, blockSize)

	p.left.Reset()
	p.right.Reset()

	if err := p.apply(); err != nil {
		return err
	}

	p.active.Store(true)

	return nil
}

// PrepareDefault prepares a session with the options given to
// [NewProcessor].
func (p *Processor) PrepareDefault() error {
	cfg := p.Config()
	return p.Prepare(cfg.SampleRate, cfg.BlockSize)
}

// Update publishes coefficients for s to both channels. Before Prepare the
// settings are only stored.
func (p *Processor) Update(s ChainSettings) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.settings = s
	if !p.active.Load() {
		return nil
	}

	return p.apply()
}

func (p *Processor) apply() error {
	if err := p.left.UpdateFromSettings(p.settings, p.cfg.SampleRate); err != nil {
		return fmt.Errorf("eq: left channel: %w", err)
	}

	if err := p.right.UpdateFromSettings(p.settings, p.cfg.SampleRate); err != nil {
		return fmt.Errorf("eq: right channel: %w", err)
	}

	return nil
}

// Release ends the session. Later blocks pass through.
func (p *Processor) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.active.Store(false)
}

// Active reports whether a session is prepared.
func (p *Processor) Active() bool {
	return p.active.Load()
}

// ProcessBlock filters planar left and right buffers in-place. The two
// channels are independent and may differ in length.
func (p *Processor) ProcessBlock(left, right []float64) {
	if !p.active.Load() {
		return
	}

	p.left.ProcessBlock(left)
	p.right.ProcessBlock(right)

	if p.tap != nil {
		p.pushMix(left, right)
	}
}

func (p *Processor) pushMix(left, right []float64) {
	n := min(len(left), len(right))
	for off := 0; off < n; off += len(p.mix) {
		m := min(len(p.mix), n-off)
		mix := p.mix[:m]
		for i := range mix {
			mix[i] = 0.5 * (left[off+i] + right[off+i])
		}

		p.tap.Push(mix)
	}
}

// ProcessInterleaved filters an interleaved stereo float32 buffer in-place.
// A trailing odd sample is left untouched.
func (p *Processor) ProcessInterleaved(buf []float32) {
	if !p.active.Load() {
		return
	}

	frames := len(buf) / 2
	block := len(p.bufL)

	for off := 0; off < frames; off += block {
		n := min(block, frames-off)
		l, r := p.bufL[:n], p.bufR[:n]
		frame := buf[2*off : 2*(off+n)]

		for i := range n {
			l[i] = float64(frame[2*i])
			r[i] = float64(frame[2*i+1])
		}

		p.ProcessBlock(l, r)

		for i := range n {
			frame[2*i] = float32(l[i])
			frame[2*i+1] = float32(r[i])
		}
	}
}
