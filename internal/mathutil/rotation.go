package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// AxisAngle returns the rotation of a radians around an arbitrary axis
// (Rodrigues' formula). The axis does not need to be normalized.
// A zero axis yields the identity.
func AxisAngle(axis Vec3, a float64) Mat3 {
	n := axis.Normalize()
	if n == (Vec3{}) {
		return Mat3Identity()
	}
	c, s := math.Cos(a), math.Sin(a)
	t := 1 - c
	x, y, z := n[0], n[1], n[2]
	return Mat3{
		c + t*x*x, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, c + t*y*y, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, c + t*z*z,
	}
}

// ViewRotation orients a camera looking along +Z: pitch (around X) first,
// then heading (around Y, positive turns towards +X), then roll around the
// resulting view axis. Angles in radians. Directions are rotated as row
// vectors, see VecMul.
func ViewRotation(heading, pitch, roll float64) Mat3 {
	view := Mat3Mul(RotX(pitch), RotY(-heading))
	axis := view.VecMul(Vec3{0, 0, 1})
	return Mat3Mul(view, AxisAngle(axis, roll))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
