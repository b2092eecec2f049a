package param

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestEQLayoutDefaults(t *testing.T) {
	s := NewEQStore()

	want := map[string]float64{
		LowCutFreq:   20,
		HighCutFreq:  20000,
		PeakFreq:     750,
		PeakGain:     0,
		PeakQuality:  1,
		LowCutSlope:  0,
		HighCutSlope: 0,
	}

	got := s.Snapshot()
	if len(got) != len(want) {
		t.Fatalf("layout has %d parameters, want %d", len(got), len(want))
	}

	for id, v := range want {
		if got[id] != v {
			t.Errorf("%s default=%v, want %v", id, got[id], v)
		}
	}
}

func TestStoreSetClampsAndQuantizes(t *testing.T) {
	s := NewEQStore()

	tests := []struct {
		id   string
		in   float64
		want float64
	}{
		{PeakGain, 30, 24},
		{PeakGain, -3.3, -3.5},
		{PeakQuality, 0, 0.1},
		{PeakQuality, 2.02, 2},
		{PeakFreq, 1000.4, 1000},
		{LowCutFreq, 5, 20},
		{LowCutSlope, 7, 3},
		{HighCutSlope, 1.4, 1},
	}

	for _, tt := range tests {
		if err := s.Set(tt.id, tt.in); err != nil {
			t.Fatalf("Set(%s, %v): %v", tt.id, tt.in, err)
		}

		if got := s.Value(tt.id); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Set(%s, %v) stored %v, want %v", tt.id, tt.in, got, tt.want)
		}
	}
}

func TestStoreErrors(t *testing.T) {
	s := NewEQStore()

	if err := s.Set("Tilt", 1); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("unknown id error=%v", err)
	}
	if err := s.Set(PeakGain, math.NaN()); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("NaN error=%v", err)
	}
	if err := s.SetString(PeakGain, "loud"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("parse error=%v", err)
	}
	if !math.IsNaN(s.Value("Tilt")) {
		t.Fatal("unknown Value should be NaN")
	}

	if _, err := NewStore(NewFloat("a", "", 0, 1, 0, 1, 0), NewFloat("a", "", 0, 1, 0, 1, 0)); !errors.Is(err, ErrDuplicateParameter) {
		t.Fatalf("duplicate error=%v", err)
	}
}

func TestStoreListen(t *testing.T) {
	s := NewEQStore()

	var got []string
	cancel := s.Listen(func(id string, v float64) {
		got = append(got, id)
	})

	_ = s.Set(PeakGain, 6)
	_ = s.Set(PeakGain, 6) // unchanged, no notification
	_ = s.Set(PeakFreq, 1000)

	cancel()
	_ = s.Set(PeakGain, -6)

	if len(got) != 2 || got[0] != PeakGain || got[1] != PeakFreq {
		t.Fatalf("notifications=%v, want [%s %s]", got, PeakGain, PeakFreq)
	}
}

func TestStoreResetAndRestore(t *testing.T) {
	s := NewEQStore()
	_ = s.Set(PeakGain, 12)
	_ = s.Set(HighCutSlope, 2)

	saved := s.Snapshot()
	s.Reset()

	if s.Value(PeakGain) != 0 || s.Value(HighCutSlope) != 0 {
		t.Fatalf("Reset left %v", s.Snapshot())
	}

	saved["Tilt"] = 1
	if err := s.Restore(saved); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("Restore error=%v", err)
	}

	if s.Value(PeakGain) != 12 || s.Value(HighCutSlope) != 2 {
		t.Fatalf("Restore applied %v", s.Snapshot())
	}
}

func TestParameterNormalizeRoundTrip(t *testing.T) {
	p, _ := NewEQStore().Lookup(PeakFreq)

	for _, f := range []float64{20, 100, 750, 5000, 20000} {
		n := p.Normalize(f)
		if n < 0 || n > 1 {
			t.Fatalf("Normalize(%v)=%v out of range", f, n)
		}

		if got := p.Denormalize(n); math.Abs(got-f) > 1 {
			t.Errorf("Denormalize(Normalize(%v))=%v", f, got)
		}
	}

	// The skew puts 1 kHz well past the linear position.
	if n := p.Normalize(1000); n < 0.4 {
		t.Fatalf("Normalize(1000)=%v, want skewed above 0.4", n)
	}
}

func TestParameterFormatParse(t *testing.T) {
	s := NewEQStore()

	tests := []struct {
		id   string
		v    float64
		text string
	}{
		{PeakFreq, 750, "750 Hz"},
		{HighCutFreq, 2500, "2.50 kHz"},
		{PeakGain, -6, "-6.00 dB"},
		{LowCutSlope, 2, "36 dB/Oct"},
	}

	for _, tt := range tests {
		p, ok := s.Lookup(tt.id)
		if !ok {
			t.Fatalf("missing %s", tt.id)
		}

		if got := p.Format(tt.v); got != tt.text {
			t.Errorf("Format(%s, %v)=%q, want %q", tt.id, tt.v, got, tt.text)
		}

		v, err := p.Parse(tt.text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.text, err)
		}
		if math.Abs(v-tt.v) > 1e-9 {
			t.Errorf("Parse(%q)=%v, want %v", tt.text, v, tt.v)
		}
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	// Run with -race.
	s := NewEQStore()
	cancel := s.Listen(func(string, float64) {})
	defer cancel()

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range 500 {
				_ = s.Set(PeakGain, float64((i+w)%48-24))
				_ = s.Value(PeakFreq)
			}
		}()
	}

	wg.Wait()
}

func TestStoreSetNormalized(t *testing.T) {
	s := NewEQStore()

	tests := []struct {
		id   string
		n    float64
		want float64
	}{
		{PeakGain, 1, 24},
		{PeakGain, 0.25, -12},
		{PeakFreq, 0, 20},
		{PeakFreq, 2, 20000},
		{HighCutSlope, 1, 3},
	}

	for _, tt := range tests {
		if err := s.SetNormalized(tt.id, tt.n); err != nil {
			t.Fatalf("SetNormalized(%s, %v): %v", tt.id, tt.n, err)
		}
		if got := s.Value(tt.id); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SetNormalized(%s, %v) stored %v, want %v", tt.id, tt.n, got, tt.want)
		}
	}

	if err := s.SetNormalized(PeakGain, math.NaN()); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("NaN error=%v", err)
	}
	if err := s.SetNormalized("Tilt", 0.5); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("unknown id error=%v", err)
	}
}

func TestParameterNaNUsesDefault(t *testing.T) {
	s := NewEQStore()

	slope, _ := s.Lookup(LowCutSlope)
	if got := slope.Format(math.NaN()); got != SlopeChoices[0] {
		t.Fatalf("Format(NaN)=%q, want %q", got, SlopeChoices[0])
	}

	freq, _ := s.Lookup(PeakFreq)
	if got := freq.Constrain(math.NaN()); got != 750 {
		t.Fatalf("Constrain(NaN)=%v, want default 750", got)
	}
}
