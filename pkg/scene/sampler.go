package scene

import (
	"fmt"
	"math"
	"math/rand/v2"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Sampler draws body counts and positions for orbiting bodies.
// Positions are in the unrotated frame: the plane is XZ, Y is up.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a Sampler drawing from rng.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Count returns a body count uniform in [MinBodyCount, MaxBodyCount].
func (s *Sampler) Count(cfg PlacementConfig) int {
	return cfg.MinBodyCount + s.rng.IntN(cfg.MaxBodyCount-cfg.MinBodyCount+1)
}

// Sample draws one orbiting body: its size and its position.
//
// The planar distance from the origin is rejection sampled until it is at
// least cfg.MinCenterDistance(). cfg must be valid; a constraint that can
// never be satisfied panics rather than spinning.
func (s *Sampler) Sample(cfg PlacementConfig) (v3.Vec, float64) {
	minDist := cfg.MinCenterDistance()
	if minDist >= cfg.PlaneRadius {
		panic(fmt.Sprintf("scene: min center distance %g leaves no room within plane radius %g",
			minDist, cfg.PlaneRadius))
	}

	size := s.uniform(cfg.MinSize, cfg.MaxSize)

	angle := s.rng.Float64() * 2 * math.Pi
	dist := s.rng.Float64() * cfg.PlaneRadius
	for dist < minDist {
		dist = s.rng.Float64() * cfg.PlaneRadius
	}

	pos := v3.Vec{
		X: dist * math.Cos(angle),
		Y: s.uniform(-cfg.DriftRange/2, cfg.DriftRange/2),
		Z: dist * math.Sin(angle),
	}
	return pos, size
}

func (s *Sampler) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
