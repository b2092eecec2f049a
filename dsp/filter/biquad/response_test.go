package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMagnitudeSquared_MatchesResponse(t *testing.T) {
	// Verify closed-form MagnitudeSquared matches |Response|^2 across frequencies.
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		h := c.Response(freq, sr)
		fromResponse := real(h)*real(h) + imag(h)*imag(h)
		fromClosed := c.MagnitudeSquared(freq, sr)
		if !almostEqual(fromClosed, fromResponse, 1e-10) {
			t.Errorf("freq=%v: MagnitudeSquared=%.15f, |Response|²=%.15f", freq, fromClosed, fromResponse)
		}
	}
}

func TestMagnitudeDB_MatchesMagnitudeSquared(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 10000} {
		db := c.MagnitudeDB(freq, sr)
		fromSq := 10 * math.Log10(c.MagnitudeSquared(freq, sr))
		if !almostEqual(db, fromSq, 1e-12) {
			t.Errorf("freq=%v: MagnitudeDB=%.15f, 10*log10(MagSq)=%.15f", freq, db, fromSq)
		}
	}
}

func TestPhase_MatchesResponse(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000} {
		h := c.Response(freq, sr)
		fromResponse := cmplx.Phase(h)
		fromClosed := c.Phase(freq, sr)
		if !almostEqual(fromClosed, fromResponse, 1e-10) {
			t.Errorf("freq=%v: Phase=%.15f, arg(Response)=%.15f", freq, fromClosed, fromResponse)
		}
	}
}

func TestResponse_Passthrough(t *testing.T) {
	// Passthrough (B0=1) should have magnitude 1 and phase 0 at all frequencies.
	c := Identity
	sr := 48000.0
	for _, freq := range []float64{0, 100, 1000, 10000, 24000} {
		h := c.Response(freq, sr)
		mag := cmplx.Abs(h)
		if !almostEqual(mag, 1, 1e-12) {
			t.Errorf("freq=%v: |H|=%v, want 1", freq, mag)
		}
	}
}

func TestResponse_Allpass(t *testing.T) {
	// First-order allpass: B0=A2, B1=A1, B2=1, A1=A1, A2=A2
	// |H(f)| = 1 for all f.
	a1, a2 := -0.5, 0.3
	c := Coefficients{B0: a2, B1: a1, B2: 1, A1: a1, A2: a2}
	sr := 48000.0
	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		h := c.Response(freq, sr)
		mag := cmplx.Abs(h)
		if !almostEqual(mag, 1, 1e-10) {
			t.Errorf("freq=%v: |H|=%.15f, want 1", freq, mag)
		}
	}
}

func twoSectionPatch() *BankPatch {
	return &BankPatch{
		Active: 2,
		Sections: [MaxStages]Coefficients{
			{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
			{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
			Identity,
			Identity,
		},
	}
}

func TestBankPatch_Magnitude_ProductOfSections(t *testing.T) {
	p := twoSectionPatch()
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 5000, 15000} {
		got := p.Magnitude(freq, sr)
		want := p.Sections[0].Magnitude(freq, sr) * p.Sections[1].Magnitude(freq, sr)
		if !almostEqual(got, want, 1e-12) {
			t.Errorf("freq=%v: Magnitude=%.15f, product=%.15f", freq, got, want)
		}
	}
}

func TestBankPatch_Magnitude_IgnoresBypassedSections(t *testing.T) {
	p := twoSectionPatch()
	p.Active = 1
	p.Sections[1] = Coefficients{B0: 100}
	sr := 48000.0

	got := p.Magnitude(1000, sr)
	want := p.Sections[0].Magnitude(1000, sr)
	if !almostEqual(got, want, 1e-12) {
		t.Fatalf("Magnitude=%.15f, want %.15f", got, want)
	}

	p.Active = 0
	if db := p.MagnitudeDB(1000, sr); db != 0 {
		t.Fatalf("all-bypassed MagnitudeDB=%v, want 0", db)
	}
}

func TestPatch_Magnitude_Bypassed(t *testing.T) {
	p := Patch{Coefficients: Coefficients{B0: 4}, Bypassed: true}
	if m := p.Magnitude(1000, 48000); m != 1 {
		t.Fatalf("bypassed Magnitude=%v, want 1", m)
	}

	p.Bypassed = false
	if m := p.Magnitude(1000, 48000); !almostEqual(m, 4, eps) {
		t.Fatalf("active Magnitude=%v, want 4", m)
	}
}

// Snapshot returns a value, so its response must be callable without
// binding it to a variable first.
func TestPatch_MagnitudeDB_FromSnapshot(t *testing.T) {
	s := NewStage(Coefficients{B0: 2})
	if db := s.Snapshot().MagnitudeDB(1000, 48000); !almostEqual(db, 20*math.Log10(2), 1e-12) {
		t.Fatalf("active MagnitudeDB=%v, want %v", db, 20*math.Log10(2))
	}

	s.SetBypassed(true)
	if db := s.Snapshot().MagnitudeDB(1000, 48000); db != 0 {
		t.Fatalf("bypassed MagnitudeDB=%v, want 0", db)
	}
}

func TestBankPatch_MagnitudeDB_MatchesImpulseResponse(t *testing.T) {
	// The cascaded impulse response evaluated with a DFT bin should agree
	// with the closed form.
	p := twoSectionPatch()
	sr := 48000.0
	freq := 3000.0
	n := 4096

	b := NewBank()
	if err := b.Configure(p.Active, p.Sections[:p.Active]); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	var acc complex128
	for i := range n {
		var x float64
		if i == 0 {
			x = 1
		}
		y := b.ProcessSample(x)
		acc += complex(y, 0) * cmplx.Exp(complex(0, -2*math.Pi*freq*float64(i)/sr))
	}

	got := 20 * math.Log10(cmplx.Abs(acc))
	want := p.MagnitudeDB(freq, sr)
	if !almostEqual(got, want, 1e-6) {
		t.Fatalf("DFT=%.9f dB, closed form=%.9f dB", got, want)
	}
}

func TestSection_ImpulseResponse(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	s := NewSection(c)

	// Process some samples to build state.
	s.ProcessSample(0.5)
	s.ProcessSample(0.3)
	savedState := s.State()

	ir := s.ImpulseResponse(8)

	// State must be unchanged after ImpulseResponse.
	if s.State() != savedState {
		t.Fatal("ImpulseResponse modified section state")
	}

	// Verify IR by computing manually.
	ref := NewSection(c)
	for i, want := range ir {
		var x float64
		if i == 0 {
			x = 1
		}
		got := ref.ProcessSample(x)
		if !almostEqual(got, want, eps) {
			t.Errorf("ir[%d]: got %.15f, want %.15f", i, got, want)
		}
	}
}

func TestSection_ImpulseResponse_Zero(t *testing.T) {
	s := NewSection(Identity)
	ir := s.ImpulseResponse(0)
	if ir != nil {
		t.Errorf("ImpulseResponse(0) should return nil, got %v", ir)
	}
	ir = s.ImpulseResponse(-1)
	if ir != nil {
		t.Errorf("ImpulseResponse(-1) should return nil, got %v", ir)
	}
}

func TestSection_ImpulseResponse_Passthrough(t *testing.T) {
	s := NewSection(Identity)
	ir := s.ImpulseResponse(5)
	want := []float64{1, 0, 0, 0, 0}
	for i := range ir {
		if !almostEqual(ir[i], want[i], eps) {
			t.Errorf("ir[%d]: got %v, want %v", i, ir[i], want[i])
		}
	}
}
