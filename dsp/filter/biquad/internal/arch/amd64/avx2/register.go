//go:build amd64 && !purego

// Package avx2 registers the unrolled biquad block kernel used on
// AVX2-capable machines.
package avx2

import (
	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "avx2",
		SIMDLevel:    cpu.SIMDAVX2,
		Priority:     20,
		ProcessBlock: processBlock,
	})
}

// processBlock is a 4x-unrolled scalar kernel. The recursion is serial, so
// unrolling only buys loop overhead and lets the wider core overlap the
// feedforward multiplies.
func processBlock(c registry.Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	n := len(buf)
	i := 0

	for ; i+3 < n; i += 4 {
		blk := buf[i : i+4 : i+4]

		y := b0*blk[0] + d0
		d0 = b1*blk[0] - a1*y + d1
		d1 = b2*blk[0] - a2*y
		blk[0] = y

		y = b0*blk[1] + d0
		d0 = b1*blk[1] - a1*y + d1
		d1 = b2*blk[1] - a2*y
		blk[1] = y

		y = b0*blk[2] + d0
		d0 = b1*blk[2] - a1*y + d1
		d1 = b2*blk[2] - a2*y
		blk[2] = y

		y = b0*blk[3] + d0
		d0 = b1*blk[3] - a1*y + d1
		d1 = b2*blk[3] - a2*y
		blk[3] = y
	}

	for ; i < n; i++ {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	return core.FlushDenormals(d0), core.FlushDenormals(d1)
}
