package rig

// RotationControllerOption is a functional option for configuring a
// RotationController.
type RotationControllerOption func(*rotationControllerImpl)

// WithLookSensitivity sets the look sensitivity multiplier.
//
// Parameters:
//   - sensitivity: degrees per pointer unit per second
//
// Returns:
//   - RotationControllerOption: functional option to set the sensitivity
func WithLookSensitivity(sensitivity float32) RotationControllerOption {
	return func(rc *rotationControllerImpl) {
		rc.sensitivity = sensitivity
	}
}

// WithRotationSmoothTime sets the yaw smoothing time constant.
//
// Parameters:
//   - smoothTime: time constant in seconds; values <= 0 converge instantly
//
// Returns:
//   - RotationControllerOption: functional option to set the smoothing time
func WithRotationSmoothTime(smoothTime float32) RotationControllerOption {
	return func(rc *rotationControllerImpl) {
		rc.smoothTime = smoothTime
	}
}

// WithSnapIncrement sets the snap increment in degrees. Values <= 0 disable
// snapping entirely.
//
// Parameters:
//   - increment: the snap increment in degrees
//
// Returns:
//   - RotationControllerOption: functional option to set the increment
func WithSnapIncrement(increment float32) RotationControllerOption {
	return func(rc *rotationControllerImpl) {
		rc.snapIncrement = increment
	}
}

// WithInitialYaw sets the starting yaw angle. The value is wrapped into
// [0, 360) and seeds both the current and target angles so construction never
// produces a visible jump.
//
// Parameters:
//   - yawDegrees: the starting yaw in degrees
//
// Returns:
//   - RotationControllerOption: functional option to set the initial yaw
func WithInitialYaw(yawDegrees float32) RotationControllerOption {
	return func(rc *rotationControllerImpl) {
		rc.currentAngle = yawDegrees
	}
}
