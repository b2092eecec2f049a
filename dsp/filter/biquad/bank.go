package biquad

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/internal/assert"
)

// MaxStages is the number of sections in a [Bank].
const MaxStages = 4

// BankPatch is the immutable configuration of a [Bank]: the first Active
// sections filter, the rest are bypassed. Unused entries hold [Identity].
type BankPatch struct {
	Active   int
	Sections [MaxStages]Coefficients
}

// Bypassed reports whether section i is bypassed under this patch.
func (p *BankPatch) Bypassed(i int) bool {
	return i >= p.Active
}

// Bank is a fixed cascade of up to [MaxStages] biquad sections with a
// selectable number of active sections, as used for 12/24/36/48 dB per
// octave cut filters.
//
// The bypass mask and the coefficients live in one [BankPatch] behind a
// single atomic pointer, so the audio goroutine never sees a new order with
// old coefficients or the reverse. Concurrency rules match [Stage].
//
// The zero value has every section bypassed.
type Bank struct {
	live atomic.Pointer[BankPatch]

	sections [MaxStages]Section
	seen     int // active count last seen by the audio goroutine
}

// NewBank returns a bank with every section bypassed.
func NewBank() *Bank {
	b := &Bank{}
	b.Publish(&BankPatch{Sections: identitySections()})
	return b
}

func identitySections() [MaxStages]Coefficients {
	var s [MaxStages]Coefficients
	for i := range s {
		s[i] = Identity
	}

	return s
}

// Publish installs p with a single atomic store.
func (b *Bank) Publish(p *BankPatch) {
	b.live.Store(p)
}

// Configure activates the first active sections with coeffs[:active] and
// bypasses the rest, publishing mask and coefficients together.
//
// Supplying fewer coefficient sets than active, or an active count outside
// [0, MaxStages], is a contract violation: with the eqdebug build tag it
// panics. Otherwise Configure installs the lowest order it can honour (one
// section when any coefficients were supplied, none otherwise) and returns
// an error wrapping [ErrOrderMismatch] or [ErrInvalidOrder].
func (b *Bank) Configure(active int, coeffs []Coefficients) error {
	var err error

	switch {
	case active < 0 || active > MaxStages:
		err = fmt.Errorf("%w: %d", ErrInvalidOrder, active)
	case len(coeffs) < active:
		err = fmt.Errorf("%w: %d sets for %d stages", ErrOrderMismatch, len(coeffs), active)
	}

	if err != nil {
		assert.Failf("biquad: Bank.Configure: %v", err)
		active = min(1, len(coeffs))
	}

	p := &BankPatch{Active: active, Sections: identitySections()}
	copy(p.Sections[:active], coeffs[:active])
	b.Publish(p)

	return err
}

// Snapshot returns a copy of the live configuration.
func (b *Bank) Snapshot() BankPatch {
	if p := b.live.Load(); p != nil {
		return *p
	}

	return BankPatch{Sections: identitySections()}
}

// Active returns the live number of active sections.
func (b *Bank) Active() int {
	if p := b.live.Load(); p != nil {
		return p.Active
	}

	return 0
}

// Bypassed reports whether section i is bypassed in the live configuration.
func (b *Bank) Bypassed(i int) bool {
	return i >= b.Active()
}

// load returns the live patch and clears the delay lines of sections that
// were bypassed on the previous call and are active now.
func (b *Bank) load() *BankPatch {
	p := b.live.Load()
	if p == nil {
		b.seen = 0
		return nil
	}

	for i := b.seen; i < p.Active; i++ {
		b.sections[i].Reset()
	}

	b.seen = p.Active

	return p
}

// ProcessSample threads x through the active sections, section 0 first.
func (b *Bank) ProcessSample(x float64) float64 {
	p := b.load()
	if p == nil {
		return x
	}

	for i := 0; i < p.Active; i++ {
		sec := &b.sections[i]
		sec.Coefficients = p.Sections[i]
		x = sec.ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in-place through the active sections. The live
// configuration is read once per block.
func (b *Bank) ProcessBlock(buf []float64) {
	p := b.load()
	if p == nil {
		return
	}

	for i := 0; i < p.Active; i++ {
		sec := &b.sections[i]
		sec.Coefficients = p.Sections[i]
		sec.ProcessBlock(buf)
	}
}

// Reset clears every section's delay line.
func (b *Bank) Reset() {
	for i := range b.sections {
		b.sections[i].Reset()
	}
}

// State returns the delay-line state of every section.
func (b *Bank) State() [MaxStages][2]float64 {
	var st [MaxStages][2]float64
	for i := range b.sections {
		st[i] = b.sections[i].State()
	}

	return st
}
