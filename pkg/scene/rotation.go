package scene

import (
	"math/rand/v2"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// Rotation is a rigid rotation about the origin composed from Euler angles
// as R = Rz · Ry · Rx, i.e. points are rotated about X first.
//
// The matrix form rotates points and the quaternion form composes
// orientations. Both are built from the same angles.
type Rotation struct {
	angles v3.Vec // degrees about X, Y, Z
	matrix sdf.M44
	quat   mgl64.Quat
}

// NewRotation builds the rotation for the given per-axis angles in degrees.
func NewRotation(xDeg, yDeg, zDeg float64) Rotation {
	x := mgl64.DegToRad(xDeg)
	y := mgl64.DegToRad(yDeg)
	z := mgl64.DegToRad(zDeg)

	m := sdf.RotateZ(z).Mul(sdf.RotateY(y)).Mul(sdf.RotateX(x))
	q := mgl64.QuatRotate(z, axisZ).
		Mul(mgl64.QuatRotate(y, axisY)).
		Mul(mgl64.QuatRotate(x, axisX)).
		Normalize()

	return Rotation{
		angles: v3.Vec{X: xDeg, Y: yDeg, Z: zDeg},
		matrix: m,
		quat:   q,
	}
}

// IdentityRotation returns the rotation that leaves everything unchanged.
func IdentityRotation() Rotation {
	return NewRotation(0, 0, 0)
}

// Angles returns the per-axis angles in degrees.
func (r Rotation) Angles() v3.Vec { return r.angles }

// Matrix returns the 4x4 rotation matrix.
func (r Rotation) Matrix() sdf.M44 { return r.matrix }

// Quat returns the rotation as a unit quaternion.
func (r Rotation) Quat() mgl64.Quat { return r.quat }

// RotatePoint rotates p about the origin. No translation is involved.
func (r Rotation) RotatePoint(p v3.Vec) v3.Vec {
	return r.matrix.MulPosition(p)
}

// ComposeOrientation returns the orientation o followed by r.
func (r Rotation) ComposeOrientation(o mgl64.Quat) mgl64.Quat {
	return r.quat.Mul(o).Normalize()
}

// Composer draws random scene rotations.
type Composer struct {
	rng *rand.Rand
}

// NewComposer returns a Composer drawing from rng.
func NewComposer(rng *rand.Rand) *Composer {
	return &Composer{rng: rng}
}

// Compose draws one angle per axis, each uniform in
// [-maxAngleDegrees/2, maxAngleDegrees/2], in X, Y, Z order.
// Exactly three values are drawn regardless of the range.
func (c *Composer) Compose(maxAngleDegrees float64) Rotation {
	x := c.angle(maxAngleDegrees)
	y := c.angle(maxAngleDegrees)
	z := c.angle(maxAngleDegrees)
	return NewRotation(x, y, z)
}

func (c *Composer) angle(rangeDeg float64) float64 {
	return c.rng.Float64()*rangeDeg - rangeDeg/2
}
