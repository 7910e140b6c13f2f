package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// WrapAngle360 wraps an angle in degrees into the [0, 360) range.
//
// Parameters:
//   - degrees: the angle to wrap, any sign or magnitude
//
// Returns:
//   - float32: the equivalent angle in [0, 360)
func WrapAngle360(degrees float32) float32 {
	wrapped := math32.Mod(degrees, 360.0)
	if wrapped < 0 {
		wrapped += 360.0
	}
	return wrapped
}

// AngleDelta returns the shortest signed angular difference to - from, in
// degrees, in the (-180, 180] range. Interpolating by this delta always takes
// the short way around the circle.
//
// Parameters:
//   - from: start angle in degrees
//   - to: end angle in degrees
//
// Returns:
//   - float32: shortest signed delta in degrees
func AngleDelta(from, to float32) float32 {
	delta := math32.Mod(to-from, 360.0)
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	return delta
}

// SnapAngle snaps an angle to the nearest multiple of increment and wraps the
// result into [0, 360). An increment <= 0 disables snapping and the input is
// returned unchanged, without wrapping.
//
// Parameters:
//   - degrees: the angle to snap
//   - increment: the snapping increment in degrees
//
// Returns:
//   - float32: the snapped, wrapped angle, or the input when increment <= 0
func SnapAngle(degrees, increment float32) float32 {
	if increment <= 0 {
		return degrees
	}
	return WrapAngle360(math32.Round(degrees/increment) * increment)
}

// YawRight returns the world-space ground-plane direction of "screen right"
// for a rig at the given yaw, as an XZ pair.
//
// Parameters:
//   - yawDegrees: rig yaw in degrees
//
// Returns:
//   - mgl32.Vec2: unit right direction (X, Z components)
func YawRight(yawDegrees float32) mgl32.Vec2 {
	rad := mgl32.DegToRad(yawDegrees)
	return mgl32.Vec2{math32.Cos(rad), -math32.Sin(rad)}
}

// YawForward returns the world-space ground-plane direction pointing away from
// the camera (toward where the rig is facing) for a rig at the given yaw, as
// an XZ pair.
//
// Parameters:
//   - yawDegrees: rig yaw in degrees
//
// Returns:
//   - mgl32.Vec2: unit forward direction (X, Z components)
func YawForward(yawDegrees float32) mgl32.Vec2 {
	rad := mgl32.DegToRad(yawDegrees)
	return mgl32.Vec2{-math32.Sin(rad), -math32.Cos(rad)}
}

// ApproxEq determines whether two floating point numbers are close enough to
// each other by a threshold of 1e-5.
//
// Parameters:
//   - a, b: the values to compare
//
// Returns:
//   - bool: true if the values differ by at most 1e-5
func ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// RotateYawVec3 rotates a vector around the world Y axis by the given yaw.
// The Y component passes through unchanged. A yaw of 0 is the identity, and
// the rotation matches the ground-plane axes returned by YawRight and
// YawForward.
//
// Parameters:
//   - v: the vector to rotate
//   - yawDegrees: rotation angle in degrees
//
// Returns:
//   - mgl32.Vec3: the rotated vector
func RotateYawVec3(v mgl32.Vec3, yawDegrees float32) mgl32.Vec3 {
	rad := mgl32.DegToRad(yawDegrees)
	cy := math32.Cos(rad)
	sy := math32.Sin(rad)
	return mgl32.Vec3{
		cy*v[0] + sy*v[2],
		v[1],
		-sy*v[0] + cy*v[2],
	}
}
