package scene

import (
	"math"
	"math/rand/v2"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func assertVecInDelta(t *testing.T, want, got v3.Vec, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x: want %v, got %v", want, got)
	assert.InDelta(t, want.Y, got.Y, delta, "y: want %v, got %v", want, got)
	assert.InDelta(t, want.Z, got.Z, delta, "z: want %v, got %v", want, got)
}

func TestIdentityRotation(t *testing.T) {
	r := IdentityRotation()
	p := v3.Vec{X: 1.5, Y: -2, Z: 3.25}
	assertVecInDelta(t, p, r.RotatePoint(p), tol)
	assert.True(t, r.Quat().ApproxEqualThreshold(mgl64.QuatIdent(), tol))
}

func TestComposeZeroRangeIsIdentity(t *testing.T) {
	c := NewComposer(rand.New(rand.NewPCG(1, 2)))
	for i := 0; i < 20; i++ {
		r := c.Compose(0)
		assert.Equal(t, v3.Vec{}, r.Angles())
		p := v3.Vec{X: 4, Y: 0.1, Z: -2}
		assert.Equal(t, p, r.RotatePoint(p))
	}
}

func TestComposeAnglesWithinRange(t *testing.T) {
	c := NewComposer(rand.New(rand.NewPCG(3, 4)))
	for i := 0; i < 500; i++ {
		a := c.Compose(45).Angles()
		for _, v := range []float64{a.X, a.Y, a.Z} {
			assert.GreaterOrEqual(t, v, -22.5)
			assert.LessOrEqual(t, v, 22.5)
		}
	}
}

func TestRotationAppliesXFirst(t *testing.T) {
	// Rx(90) takes +Y to +Z, then Ry(90) takes +Z to +X.
	r := NewRotation(90, 90, 0)
	assertVecInDelta(t, v3.Vec{X: 1}, r.RotatePoint(v3.Vec{Y: 1}), tol)

	// Rz(90) after Rx(90): +Y -> +Z, which Rz leaves alone.
	r = NewRotation(90, 0, 90)
	assertVecInDelta(t, v3.Vec{Z: 1}, r.RotatePoint(v3.Vec{Y: 1}), tol)
}

func TestRotationPreservesLength(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	c := NewComposer(rng)
	for i := 0; i < 200; i++ {
		r := c.Compose(45)
		p := v3.Vec{X: rng.Float64()*10 - 5, Y: rng.Float64() - 0.5, Z: rng.Float64()*10 - 5}
		assert.InDelta(t, p.Length(), r.RotatePoint(p).Length(), tol)
	}
}

func TestMatrixAndQuaternionAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	c := NewComposer(rng)
	for i := 0; i < 100; i++ {
		r := c.Compose(90)
		p := v3.Vec{X: rng.Float64()*4 - 2, Y: rng.Float64()*4 - 2, Z: rng.Float64()*4 - 2}

		byQuat := r.Quat().Rotate(mgl64.Vec3{p.X, p.Y, p.Z})
		assertVecInDelta(t, v3.Vec{X: byQuat[0], Y: byQuat[1], Z: byQuat[2]}, r.RotatePoint(p), 1e-9)
	}
}

func TestComposeOrientation(t *testing.T) {
	r := NewRotation(10, 20, 30)

	got := r.ComposeOrientation(mgl64.QuatIdent())
	require.True(t, got.ApproxEqualThreshold(r.Quat(), tol))
	assert.InDelta(t, 1, got.Len(), tol)

	twice := r.ComposeOrientation(got)
	p := mgl64.Vec3{1, 2, 3}
	want := r.Quat().Rotate(r.Quat().Rotate(p))
	assert.True(t, twice.Rotate(p).ApproxEqualThreshold(want, tol))
}

func TestSingleAxisRotation(t *testing.T) {
	r := NewRotation(0, 0, 90)
	assertVecInDelta(t, v3.Vec{Y: 1}, r.RotatePoint(v3.Vec{X: 1}), tol)

	r = NewRotation(0, 0, 180)
	got := r.RotatePoint(v3.Vec{X: 2})
	assert.InDelta(t, -2, got.X, tol)
	assert.InDelta(t, 0, math.Abs(got.Y), tol)
}
