package rig

import "github.com/go-gl/mathgl/mgl32"

// RigOption is a functional option for configuring a Rig.
type RigOption func(*rigImpl)

// WithInput sets the input source the rig drains each tick. This
// collaborator is required; without it the rig is created disabled.
//
// Parameters:
//   - source: the buffered input layer
//
// Returns:
//   - RigOption: functional option to set the input source
func WithInput(source InputSource) RigOption {
	return func(r *rigImpl) {
		r.input = source
	}
}

// WithTarget sets the tracked target the rig follows. This collaborator is
// required; without it the rig is created disabled.
//
// Parameters:
//   - target: the entity whose position anchors the rig
//
// Returns:
//   - RigOption: functional option to set the target
func WithTarget(target TrackedTarget) RigOption {
	return func(r *rigImpl) {
		r.target = target
	}
}

// WithRotationController replaces the default rotation controller.
//
// Parameters:
//   - controller: the rotation controller to use
//
// Returns:
//   - RigOption: functional option to set the controller
func WithRotationController(controller RotationController) RigOption {
	return func(r *rigImpl) {
		r.rotation = controller
	}
}

// WithPanController replaces the default pan controller. The caller is
// responsible for wiring its free-look source.
//
// Parameters:
//   - controller: the pan controller to use
//
// Returns:
//   - RigOption: functional option to set the controller
func WithPanController(controller PanController) RigOption {
	return func(r *rigImpl) {
		r.pan = controller
	}
}

// WithZoomController replaces the default zoom controller.
//
// Parameters:
//   - controller: the zoom controller to use
//
// Returns:
//   - RigOption: functional option to set the controller
func WithZoomController(controller ZoomController) RigOption {
	return func(r *rigImpl) {
		r.zoom = controller
	}
}

// WithCameraLocalOffset sets the starting camera offset in the rig's local
// space. The zoom controller seeds its distances from this offset's
// magnitude.
//
// Parameters:
//   - offset: local-space offset from the pivot to the camera
//
// Returns:
//   - RigOption: functional option to set the starting offset
func WithCameraLocalOffset(offset mgl32.Vec3) RigOption {
	return func(r *rigImpl) {
		r.cameraLocal = offset
	}
}

// WithPivotHeight sets how far above the tracked position the rig's look
// point sits.
//
// Parameters:
//   - height: pivot height in world units
//
// Returns:
//   - RigOption: functional option to set the pivot height
func WithPivotHeight(height float32) RigOption {
	return func(r *rigImpl) {
		r.pivotHeight = height
	}
}

// WithObserver sets a callback receiving a Sample after every fixed update.
// The observer runs outside the rig's lock, so it may read the rig back.
//
// Parameters:
//   - observer: the sample consumer
//
// Returns:
//   - RigOption: functional option to set the observer
func WithObserver(observer func(Sample)) RigOption {
	return func(r *rigImpl) {
		r.observer = observer
	}
}
