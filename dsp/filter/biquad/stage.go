package biquad

import "sync/atomic"

// Patch is an immutable coefficient set published to a [Stage]. Once handed
// to Publish it must not be modified.
type Patch struct {
	Coefficients

	Bypassed bool
}

// bypassedPatch is what a stage reports before anything is published.
var bypassedPatch = Patch{Coefficients: Identity, Bypassed: true}

// Stage is a biquad section whose coefficients are owned by a control
// goroutine and consumed by an audio goroutine.
//
// Publish, SetCoefficients and SetBypassed may be called concurrently with
// ProcessSample and ProcessBlock. There must be a single writer: the
// read-modify-write in SetBypassed is not synchronized against other
// writers. The delay line belongs to the audio goroutine; Reset must only be
// called from it or while it is stopped.
//
// The zero value is a bypassed stage.
type Stage struct {
	live atomic.Pointer[Patch]

	sec  Section
	idle bool // bypass state last seen by the audio goroutine
}

// NewStage returns an active stage using c.
func NewStage(c Coefficients) *Stage {
	s := &Stage{}
	s.SetCoefficients(c)
	return s
}

// Publish installs p with a single atomic store.
func (s *Stage) Publish(p *Patch) {
	s.live.Store(p)
}

// SetCoefficients publishes c and activates the stage.
func (s *Stage) SetCoefficients(c Coefficients) {
	s.Publish(&Patch{Coefficients: c})
}

// SetBypassed publishes the current coefficients with the given bypass flag.
func (s *Stage) SetBypassed(bypassed bool) {
	next := s.Snapshot()
	next.Bypassed = bypassed
	s.Publish(&next)
}

// Snapshot returns a copy of the live patch.
func (s *Stage) Snapshot() Patch {
	if p := s.live.Load(); p != nil {
		return *p
	}

	return bypassedPatch
}

// Bypassed reports whether the live patch is bypassed.
func (s *Stage) Bypassed() bool {
	p := s.live.Load()
	return p == nil || p.Bypassed
}

// ProcessSample filters one sample with the live coefficients. A bypassed
// stage returns x and leaves its delay line untouched; the delay line is
// cleared when the stage becomes active again so stale history is never
// replayed.
func (s *Stage) ProcessSample(x float64) float64 {
	p := s.live.Load()
	if p == nil || p.Bypassed {
		s.idle = true
		return x
	}

	s.wake()
	s.sec.Coefficients = p.Coefficients

	return s.sec.ProcessSample(x)
}

// ProcessBlock filters buf in-place. The live patch is read once per block.
func (s *Stage) ProcessBlock(buf []float64) {
	p := s.live.Load()
	if p == nil || p.Bypassed {
		s.idle = true
		return
	}

	s.wake()
	s.sec.Coefficients = p.Coefficients
	s.sec.ProcessBlock(buf)
}

func (s *Stage) wake() {
	if s.idle {
		s.sec.Reset()
		s.idle = false
	}
}

// Reset clears the delay line.
func (s *Stage) Reset() {
	s.sec.Reset()
}

// State returns the delay-line state [d0, d1].
func (s *Stage) State() [2]float64 {
	return s.sec.State()
}
