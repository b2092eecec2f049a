package signal

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ErrUnknownColor is returned by ParseColor for unrecognized names.
var ErrUnknownColor = errors.New("signal: unknown noise color")

// Color selects the spectral tilt of a noise generator.
type Color int

const (
	White Color = iota // flat
	Pink               // -3 dB/oct
	Brown              // -6 dB/oct
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Pink:
		return "pink"
	case Brown:
		return "brown"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// ParseColor returns the color named s, ignoring case.
func ParseColor(s string) (Color, error) {
	for c := White; c <= Brown; c++ {
		if strings.EqualFold(strings.TrimSpace(s), c.String()) {
			return c, nil
		}
	}

	return White, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// Pink noise is white noise through seven one-pole lowpasses whose outputs
// are summed; the poles are spread so the sum approximates -3 dB/oct.
var pinkPoles = [7]float64{0.1294, 0.1875, 0.2414, 0.3026, 0.3830, 0.4962, 0.7195}

const (
	pinkGain  = 1 / 3.5
	brownLeak = 1.02
	brownStep = 0.02
	brownGain = 3.5
)

// Noise is a seeded noise generator. It is not safe for concurrent use.
type Noise struct {
	color     Color
	amplitude float64
	rng       *rand.Rand

	pink  [7]float64
	brown float64
}

// NewNoise returns a generator of the given color. Output is roughly
// bounded by amplitude; the same seed gives the same sequence.
func NewNoise(color Color, amplitude float64, seed uint64) *Noise {
	return &Noise{
		color:     color,
		amplitude: amplitude,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Color returns the generator's color.
func (n *Noise) Color() Color { return n.color }

// SetAmplitude changes the output level for subsequent samples.
func (n *Noise) SetAmplitude(a float64) { n.amplitude = a }

// Sample returns the next noise sample.
func (n *Noise) Sample() float64 {
	white := 2*n.rng.Float64() - 1

	switch n.color {
	case Pink:
		sum := 0.0
		for i, p := range pinkPoles {
			n.pink[i] += p * (white - n.pink[i])
			sum += n.pink[i]
		}

		return sum * pinkGain * n.amplitude
	case Brown:
		n.brown = (n.brown + brownStep*white) / brownLeak
		return n.brown * brownGain * n.amplitude
	default:
		return white * n.amplitude
	}
}

// Fill writes len(dst) samples.
func (n *Noise) Fill(dst []float64) {
	for i := range dst {
		dst[i] = n.Sample()
	}
}

// FillStereo writes the same sample to both channels of an interleaved
// float32 buffer.
func (n *Noise) FillStereo(dst []float32) {
	for i := 0; i+1 < len(dst); i += 2 {
		v := float32(n.Sample())
		dst[i], dst[i+1] = v, v
	}
}
