package rig

import "github.com/go-gl/mathgl/mgl32"

// PanControllerOption is a functional option for configuring a PanController.
type PanControllerOption func(*panControllerImpl)

// WithFreeLookSource sets the rotation mode source the controller yields to.
// This collaborator is required; without it the controller is created
// disabled.
//
// Parameters:
//   - source: read-only accessor for the rotation controller's mode
//
// Returns:
//   - PanControllerOption: functional option to set the source
func WithFreeLookSource(source FreeLookSource) PanControllerOption {
	return func(pc *panControllerImpl) {
		pc.freeLook = source
	}
}

// WithPanSensitivity sets the pan sensitivity multiplier.
//
// Parameters:
//   - sensitivity: world units per screen unit per second
//
// Returns:
//   - PanControllerOption: functional option to set the sensitivity
func WithPanSensitivity(sensitivity float32) PanControllerOption {
	return func(pc *panControllerImpl) {
		pc.sensitivity = sensitivity
	}
}

// WithReturnSmoothTime sets the offset smoothing time constant, used both
// while panning and for the glide back to rest.
//
// Parameters:
//   - smoothTime: time constant in seconds; values <= 0 converge instantly
//
// Returns:
//   - PanControllerOption: functional option to set the smoothing time
func WithReturnSmoothTime(smoothTime float32) PanControllerOption {
	return func(pc *panControllerImpl) {
		pc.returnSmoothTime = smoothTime
	}
}

// WithMaxPanOffset sets the maximum offset magnitude. The bound applies to
// the target offset immediately on every update, before smoothing.
//
// Parameters:
//   - maxOffset: the magnitude bound in world units
//
// Returns:
//   - PanControllerOption: functional option to set the bound
func WithMaxPanOffset(maxOffset float32) PanControllerOption {
	return func(pc *panControllerImpl) {
		pc.maxOffset = maxOffset
	}
}

// WithPanActivityThreshold sets the squared pointer delta magnitude below
// which input is treated as jitter.
//
// Parameters:
//   - threshold: the squared magnitude threshold
//
// Returns:
//   - PanControllerOption: functional option to set the threshold
func WithPanActivityThreshold(threshold float32) PanControllerOption {
	return func(pc *panControllerImpl) {
		pc.activityThreshold = threshold
	}
}

// WithInitialPanOffset sets the starting offset, typically derived from the
// rig's initial position relative to the tracked target. The value is clamped
// to the offset bound and seeds both the current and target offsets.
//
// Parameters:
//   - offset: starting world-space (X, Z) offset
//
// Returns:
//   - PanControllerOption: functional option to set the initial offset
func WithInitialPanOffset(offset mgl32.Vec2) PanControllerOption {
	return func(pc *panControllerImpl) {
		pc.targetOffset = offset
	}
}
