package scene

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
)

// Body is a placed object: a sphere, or for the plane a flattened disk.
type Body struct {
	Radius      float64
	Scale       v3.Vec // per-axis scale on top of Radius; (1,1,1) for spheres
	Color       Color
	Position    v3.Vec
	Orientation mgl64.Quat
}

func newBody(radius float64, color Color, pos v3.Vec) Body {
	return Body{
		Radius:      radius,
		Scale:       v3.Vec{X: 1, Y: 1, Z: 1},
		Color:       color,
		Position:    pos,
		Orientation: mgl64.QuatIdent(),
	}
}

// Transform returns the model matrix translation · orientation · scale.
// Radius is not folded in; meshes are expected to be built at Radius.
func (b Body) Transform() mgl64.Mat4 {
	t := mgl64.Translate3D(b.Position.X, b.Position.Y, b.Position.Z)
	s := mgl64.Scale3D(b.Scale.X, b.Scale.Y, b.Scale.Z)
	return t.Mul4(b.Orientation.Mat4()).Mul4(s)
}

// Scene is one generated arrangement. It is never mutated after
// construction; regenerating produces a new Scene.
type Scene struct {
	plane    Body
	center   Body
	bodies   []Body
	rotation Rotation
	seed     uint64
}

// Plane returns the ground disk.
func (s *Scene) Plane() Body { return s.plane }

// Center returns the center body.
func (s *Scene) Center() Body { return s.center }

// Len returns the number of orbiting bodies.
func (s *Scene) Len() int { return len(s.bodies) }

// Body returns the i-th orbiting body.
func (s *Scene) Body(i int) Body { return s.bodies[i] }

// Bodies returns a copy of the orbiting bodies in generation order.
func (s *Scene) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Rotation returns the rotation shared by every body of the scene.
func (s *Scene) Rotation() Rotation { return s.rotation }

// Seed returns the seed the scene was drawn from. Passing it with the same
// config to Generator.GenerateFromSeed rebuilds the scene.
func (s *Scene) Seed() uint64 { return s.seed }
