package rig

import "github.com/go-gl/mathgl/mgl32"

// ZoomControllerOption is a functional option for configuring a
// ZoomController.
type ZoomControllerOption func(*zoomControllerImpl)

// WithZoomBounds sets the minimum and maximum zoom distance.
//
// Parameters:
//   - min: minimum distance in world units
//   - max: maximum distance in world units
//
// Returns:
//   - ZoomControllerOption: functional option to set the bounds
func WithZoomBounds(min, max float32) ZoomControllerOption {
	return func(zc *zoomControllerImpl) {
		zc.minDistance = min
		zc.maxDistance = max
	}
}

// WithZoomStep sets the distance change applied per scroll event.
//
// Parameters:
//   - step: world units per scroll step
//
// Returns:
//   - ZoomControllerOption: functional option to set the step size
func WithZoomStep(step float32) ZoomControllerOption {
	return func(zc *zoomControllerImpl) {
		zc.stepSensitivity = step
	}
}

// WithZoomSmoothTime sets the distance smoothing time constant.
//
// Parameters:
//   - smoothTime: time constant in seconds; values <= 0 converge instantly
//
// Returns:
//   - ZoomControllerOption: functional option to set the smoothing time
func WithZoomSmoothTime(smoothTime float32) ZoomControllerOption {
	return func(zc *zoomControllerImpl) {
		zc.smoothTime = smoothTime
	}
}

// WithInitialLocalOffset seeds the controller from the rig's actual starting
// offset at construction time. Both distances take the offset's magnitude
// clamped into range, so the first published frame matches the real starting
// placement instead of a default.
//
// Parameters:
//   - offset: the rig's starting camera offset in local space
//
// Returns:
//   - ZoomControllerOption: functional option to seed the controller
func WithInitialLocalOffset(offset mgl32.Vec3) ZoomControllerOption {
	return func(zc *zoomControllerImpl) {
		zc.seed(offset)
	}
}
