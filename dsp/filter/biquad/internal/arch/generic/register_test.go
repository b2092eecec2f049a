package generic

import (
	"testing"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/registry"
)

func TestProcessBlock_Impulse(t *testing.T) {
	c := registry.Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	buf := []float64{1, 0, 0, 0}

	ProcessBlock(c, 0, 0, buf)

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i := range want {
		if d := buf[i] - want[i]; d > 1e-12 || d < -1e-12 {
			t.Fatalf("sample %d: got %.15f, want %.15f", i, buf[i], want[i])
		}
	}
}

func TestProcessBlock_FlushesTinyState(t *testing.T) {
	c := registry.Coefficients{B0: 1, B1: 1e-40, B2: 1e-40}

	d0, d1 := ProcessBlock(c, 0, 0, []float64{1})
	if d0 != 0 || d1 != 0 {
		t.Fatalf("state=(%v, %v), want flushed to zero", d0, d1)
	}

	c = registry.Coefficients{B0: 0.25, B1: 0.5, B2: 0.25}
	if d0, d1 = ProcessBlock(c, 0, 0, []float64{1}); d0 != 0.5 || d1 != 0.25 {
		t.Fatalf("state=(%v, %v), want (0.5, 0.25)", d0, d1)
	}
}
