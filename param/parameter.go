package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

// Parameter describes one automatable value and holds its current state.
//
// Min, Max, Step and Skew define the range: Step > 0 quantizes plain values
// to multiples of Step, and Skew shapes the normalized mapping as
//
//	normalized = ((plain-Min)/(Max-Min))^Skew
//
// so Skew < 1 spends more of the normalized range on low values, as suited
// to frequencies. A Parameter with Choices is an index into that list.
type Parameter struct {
	ID      string
	Unit    string
	Min     float64
	Max     float64
	Default float64
	Step    float64
	Skew    float64
	Choices []string

	bits atomic.Uint64
}

// NewChoice returns a choice parameter over names, defaulting to index def.
func NewChoice(id string, names []string, def int) *Parameter {
	p := &Parameter{
		ID:      id,
		Min:     0,
		Max:     float64(len(names) - 1),
		Default: float64(def),
		Step:    1,
		Skew:    1,
		Choices: names,
	}
	p.bits.Store(math.Float64bits(p.Constrain(p.Default)))

	return p
}

// NewFloat returns a continuous parameter.
func NewFloat(id, unit string, lo, hi, step, skew, def float64) *Parameter {
	p := &Parameter{
		ID:      id,
		Unit:    unit,
		Min:     lo,
		Max:     hi,
		Default: def,
		Step:    step,
		Skew:    skew,
	}
	p.bits.Store(math.Float64bits(p.Constrain(p.Default)))

	return p
}

// Value returns the current plain value.
func (p *Parameter) Value() float64 {
	return math.Float64frombits(p.bits.Load())
}

// Index returns the current value rounded to an int, for choice parameters.
func (p *Parameter) Index() int {
	return int(math.Round(p.Value()))
}

// store sets v after constraining it and reports whether the stored value
// changed.
func (p *Parameter) store(v float64) (float64, bool) {
	v = p.Constrain(v)
	old := p.bits.Swap(math.Float64bits(v))
	return v, math.Float64frombits(old) != v
}

// Constrain clamps v to [Min, Max] and applies Step. NaN maps to Default.
func (p *Parameter) Constrain(v float64) float64 {
	if math.IsNaN(v) {
		v = p.Default
	}

	if p.Step > 0 {
		v = math.Round(v/p.Step) * p.Step
	}

	return math.Min(math.Max(v, p.Min), p.Max)
}

// Normalize maps a plain value to [0, 1].
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}

	n := (p.Constrain(plain) - p.Min) / (p.Max - p.Min)
	if p.Skew > 0 && p.Skew != 1 {
		n = math.Pow(n, p.Skew)
	}

	return n
}

// Denormalize maps n in [0, 1] to a plain value.
func (p *Parameter) Denormalize(n float64) float64 {
	n = math.Min(math.Max(n, 0), 1)
	if p.Skew > 0 && p.Skew != 1 {
		n = math.Pow(n, 1/p.Skew)
	}

	return p.Constrain(p.Min + n*(p.Max-p.Min))
}

// Format renders v for display: choice names, or the value with its unit,
// switching to a k prefix above 999.
func (p *Parameter) Format(v float64) string {
	if len(p.Choices) > 0 {
		i := int(math.Round(p.Constrain(v)))
		return p.Choices[i]
	}

	prec := 2
	if p.Step >= 1 {
		prec = 0
	}

	prefix := ""
	if math.Abs(v) > 999 {
		v /= 1000
		prefix = "k"
		prec = 2
	}

	s := strconv.FormatFloat(v, 'f', prec, 64)
	if p.Unit == "" {
		return s + prefix
	}

	return s + " " + prefix + p.Unit
}

// Parse reads a plain value from s. Choice parameters accept either a
// choice name or an index; other parameters accept a number with an
// optional unit suffix and k multiplier ("2.5 kHz").
func (p *Parameter) Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)

	for i, name := range p.Choices {
		if strings.EqualFold(name, s) {
			return float64(i), nil
		}
	}

	num := strings.TrimSpace(strings.TrimSuffix(s, p.Unit))
	if p.Unit == "" {
		num = s
	}

	mult := 1.0
	if rest, ok := strings.CutSuffix(num, "k"); ok {
		num = strings.TrimSpace(rest)
		mult = 1000
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q for %s", ErrInvalidValue, s, p.ID)
	}

	return v * mult, nil
}
