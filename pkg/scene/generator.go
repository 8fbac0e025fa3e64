package scene

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Generator builds scenes from a PlacementConfig. Each scene gets its own
// seed drawn from the generator's random source, and everything in the
// scene is drawn from that seed. It is safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	seed   uint64
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the generator's sequence of scenes reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
		g.rng = newRand(seed)
	}
}

// WithRand makes the generator draw from rng. Seed reports 0.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.seed = 0
		g.rng = rng
	}
}

// WithLogger sets the logger used for generation events.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator returns a Generator. Without WithSeed or WithRand a random
// seed is picked.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.seed = rand.Uint64()
		g.rng = newRand(g.seed)
	}
	g.logger = g.logger.With("component", "scene")
	return g
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Seed returns the seed the generator was started from. Scene seeds are
// drawn from it in order.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Generate validates cfg and builds a complete scene from a fresh scene
// seed. On error no randomness is consumed and no scene is returned.
func (g *Generator) Generate(cfg PlacementConfig) (*Scene, error) {
	if err := g.validate(cfg); err != nil {
		return nil, err
	}

	g.mu.Lock()
	seed := g.rng.Uint64()
	g.mu.Unlock()

	return g.build(cfg, seed), nil
}

// GenerateFromSeed rebuilds the scene that cfg and a Scene.Seed value
// describe. The generator's own random source is not used.
func (g *Generator) GenerateFromSeed(cfg PlacementConfig, seed uint64) (*Scene, error) {
	if err := g.validate(cfg); err != nil {
		return nil, err
	}
	return g.build(cfg, seed), nil
}

func (g *Generator) validate(cfg PlacementConfig) error {
	if err := cfg.Validate(); err != nil {
		g.logger.Warn("Rejected placement config", "error", err)
		return fmt.Errorf("generate scene: %w", err)
	}
	return nil
}

// build draws the scene for seed. cfg must be valid.
func (g *Generator) build(cfg PlacementConfig, seed uint64) *Scene {
	rng := newRand(seed)
	sampler := NewSampler(rng)
	composer := NewComposer(rng)

	palette := cfg.palette()

	plane := newBody(cfg.PlaneRadius, palette.Plane, v3.Vec{})
	plane.Scale.Y = PlaneFlattening
	center := newBody(cfg.CenterRadius, palette.Center, v3.Vec{})

	n := sampler.Count(cfg)
	bodies := make([]Body, n)
	for i := range bodies {
		pos, size := sampler.Sample(cfg)
		bodies[i] = newBody(size, palette.Body, pos)
	}

	rotation := composer.Compose(cfg.MaxTiltDegrees)

	// Plane and center sit at the origin, so only their orientation changes.
	plane.Orientation = rotation.ComposeOrientation(plane.Orientation)
	center.Orientation = rotation.ComposeOrientation(center.Orientation)

	for i := range bodies {
		bodies[i].Position = rotation.RotatePoint(bodies[i].Position)
		bodies[i].Orientation = rotation.ComposeOrientation(bodies[i].Orientation)
	}

	angles := rotation.Angles()
	g.logger.Debug("Scene generated",
		"seed", seed,
		"bodies", n,
		"tilt_x", angles.X,
		"tilt_y", angles.Y,
		"tilt_z", angles.Z,
	)

	return &Scene{
		plane:    plane,
		center:   center,
		bodies:   bodies,
		rotation: rotation,
		seed:     seed,
	}
}
