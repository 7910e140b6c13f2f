package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SmoothDamp moves current toward target using a critically damped spring
// model with velocity memory. The motion never oscillates and converges within
// a few multiples of smoothTime. The velocity pointer carries state between
// calls and must reference the same variable for the lifetime of the smoothed
// quantity.
//
// Degenerate inputs fall back to documented behavior rather than dividing by
// zero: dt <= 0 leaves all state untouched and returns current; smoothTime <= 0
// converges immediately (returns target, zeroes the velocity).
//
// Reference: Game Programming Gems 4, "Critically Damped Ease-In/Ease-Out Smoothing"
//
// Parameters:
//   - current: the present smoothed value
//   - target: the value to approach
//   - velocity: pointer to the velocity memory, updated in place
//   - smoothTime: time constant in seconds; smaller converges faster
//   - dt: elapsed time in seconds since the previous call
//
// Returns:
//   - float32: the new smoothed value
func SmoothDamp(current, target float32, velocity *float32, smoothTime, dt float32) float32 {
	if dt <= 0 {
		return current
	}
	if smoothTime <= 0 {
		*velocity = 0
		return target
	}

	omega := 2.0 / smoothTime
	x := omega * dt
	// Padé-style approximation of e^-x, stable for the step sizes a frame loop produces.
	exp := 1.0 / (1.0 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	output := target + (change+temp)*exp

	// The damping law never crosses the target; clamp the residual numeric overshoot.
	if (target-current > 0) == (output > target) {
		output = target
		*velocity = (output - target) / dt
	}
	return output
}

// SmoothDampAngle is the angular variant of SmoothDamp for values in degrees.
// The target is re-expressed relative to current along the shortest arc before
// damping, so interpolation crosses the 0/360 seam correctly instead of
// sweeping the long way around. The returned angle is wrapped into [0, 360).
//
// Parameters:
//   - current: the present smoothed angle in degrees
//   - target: the angle to approach, any sign or magnitude
//   - velocity: pointer to the angular velocity memory, updated in place
//   - smoothTime: time constant in seconds
//   - dt: elapsed time in seconds since the previous call
//
// Returns:
//   - float32: the new smoothed angle in [0, 360)
func SmoothDampAngle(current, target float32, velocity *float32, smoothTime, dt float32) float32 {
	if dt <= 0 {
		return current
	}
	shortestTarget := current + AngleDelta(current, target)
	return WrapAngle360(SmoothDamp(current, shortestTarget, velocity, smoothTime, dt))
}

// SmoothDampVec2 applies SmoothDamp component-wise to a 2D vector. All
// components share the same time constant, so the damped path is a straight
// line toward the target.
//
// Parameters:
//   - current: the present smoothed vector
//   - target: the vector to approach
//   - velocity: pointer to the velocity memory, updated in place
//   - smoothTime: time constant in seconds
//   - dt: elapsed time in seconds since the previous call
//
// Returns:
//   - mgl32.Vec2: the new smoothed vector
func SmoothDampVec2(current, target mgl32.Vec2, velocity *mgl32.Vec2, smoothTime, dt float32) mgl32.Vec2 {
	return mgl32.Vec2{
		SmoothDamp(current[0], target[0], &velocity[0], smoothTime, dt),
		SmoothDamp(current[1], target[1], &velocity[1], smoothTime, dt),
	}
}

// SmoothDampVec3 applies SmoothDamp component-wise to a 3D vector.
//
// Parameters:
//   - current: the present smoothed vector
//   - target: the vector to approach
//   - velocity: pointer to the velocity memory, updated in place
//   - smoothTime: time constant in seconds
//   - dt: elapsed time in seconds since the previous call
//
// Returns:
//   - mgl32.Vec3: the new smoothed vector
func SmoothDampVec3(current, target mgl32.Vec3, velocity *mgl32.Vec3, smoothTime, dt float32) mgl32.Vec3 {
	return mgl32.Vec3{
		SmoothDamp(current[0], target[0], &velocity[0], smoothTime, dt),
		SmoothDamp(current[1], target[1], &velocity[1], smoothTime, dt),
		SmoothDamp(current[2], target[2], &velocity[2], smoothTime, dt),
	}
}

// ClampMagnitude limits a 2D vector to a maximum length, preserving direction.
// Vectors already within the limit are returned unchanged.
//
// Parameters:
//   - v: the vector to clamp
//   - maxLength: the maximum allowed magnitude (values <= 0 clamp to zero)
//
// Returns:
//   - mgl32.Vec2: the clamped vector
func ClampMagnitude(v mgl32.Vec2, maxLength float32) mgl32.Vec2 {
	if maxLength <= 0 {
		return mgl32.Vec2{}
	}
	lenSqr := v.LenSqr()
	if lenSqr <= maxLength*maxLength {
		return v
	}
	scale := maxLength / math32.Sqrt(lenSqr)
	return mgl32.Vec2{v[0] * scale, v[1] * scale}
}

// Clamp limits a scalar to the [min, max] range.
//
// Parameters:
//   - v: the value to clamp
//   - min: lower bound
//   - max: upper bound
//
// Returns:
//   - float32: the clamped value
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
