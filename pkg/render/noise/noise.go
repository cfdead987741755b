// Package noise draws the per-pixel perturbations for the two noise
// kinds. All randomness flows through a single seeded PCG source so
// renders are byte-identical across runs with the same seed.
package noise

import (
	"math"
	"math/rand/v2"

	"github.com/noisylang/noisy/pkg/core/value"
)

// Fixed second PCG word; the user-supplied seed selects the stream.
const pcgStream = 0xda3e39cb94b95bdb

// NewSource creates the deterministic random source for one render.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, pcgStream))
}

// Gaussian perturbs each color channel by an independent draw from
// N(0, sigma), clamped to [0, 255].
func Gaussian(rng *rand.Rand, c value.Color, sigma float64) value.Color {
	return value.Color{
		R: clampChannel(float64(c.R) + rng.NormFloat64()*sigma),
		G: clampChannel(float64(c.G) + rng.NormFloat64()*sigma),
		B: clampChannel(float64(c.B) + rng.NormFloat64()*sigma),
	}
}

// Offset draws a uniform spatial offset within a w x h sampling window
// centered on the origin: dx in [-w/2, w-w/2], dy likewise for h.
func Offset(rng *rand.Rand, w, h int) (dx, dy int) {
	dx = rng.IntN(w+1) - w/2
	dy = rng.IntN(h+1) - h/2
	return dx, dy
}

func clampChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
