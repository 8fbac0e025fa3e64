package scene

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestSampler(seed uint64) *Sampler {
	return NewSampler(rand.New(rand.NewPCG(seed, seed+1)))
}

func TestCountWithinBounds(t *testing.T) {
	s := newTestSampler(1)
	cfg := exampleConfig()
	cfg.MinBodyCount = 3
	cfg.MaxBodyCount = 5

	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		n := s.Count(cfg)
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 5)
		seen[n] = true
	}
	assert.Len(t, seen, 3, "every count in [3, 5] should be drawn, got %v", seen)
}

func TestCountFixed(t *testing.T) {
	s := newTestSampler(2)
	for i := 0; i < 50; i++ {
		assert.Equal(t, 10, s.Count(exampleConfig()))
	}
}

func TestSampleRespectsConstraints(t *testing.T) {
	s := newTestSampler(3)
	cfg := exampleConfig()

	for i := 0; i < 5000; i++ {
		pos, size := s.Sample(cfg)

		planar := math.Hypot(pos.X, pos.Z)
		assert.GreaterOrEqual(t, planar, cfg.MinCenterDistance()-tol)
		assert.LessOrEqual(t, planar, cfg.PlaneRadius+tol)

		assert.GreaterOrEqual(t, pos.Y, -cfg.DriftRange/2)
		assert.LessOrEqual(t, pos.Y, cfg.DriftRange/2)

		assert.GreaterOrEqual(t, size, cfg.MinSize)
		assert.LessOrEqual(t, size, cfg.MaxSize)
	}
}

func TestSampleTightAnnulus(t *testing.T) {
	// Most draws fall inside the rejected disk; sampling still terminates.
	s := newTestSampler(4)
	cfg := exampleConfig()
	cfg.MinCenterDistanceMultiplier = 16 // min distance 4.8 of 5

	for i := 0; i < 200; i++ {
		pos, _ := s.Sample(cfg)
		assert.GreaterOrEqual(t, math.Hypot(pos.X, pos.Z), 4.8-tol)
	}
}

func TestSampleZeroDrift(t *testing.T) {
	s := newTestSampler(5)
	cfg := exampleConfig()
	cfg.DriftRange = 0

	for i := 0; i < 100; i++ {
		pos, _ := s.Sample(cfg)
		assert.Zero(t, pos.Y)
	}
}

func TestSampleUnsatisfiablePanics(t *testing.T) {
	s := newTestSampler(6)
	cfg := exampleConfig()
	cfg.CenterRadius = 0.5
	cfg.MinCenterDistanceMultiplier = 10

	assert.Panics(t, func() { s.Sample(cfg) })
}
