package rig

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// defaultZoomAxis is the fallback direction used when the rig's local offset
// is degenerate (zero length): straight behind the pivot in local space.
var defaultZoomAxis = mgl32.Vec3{0, 0, 1}

// ZoomController owns the rig's radial distance along its local offset axis.
// Scroll events step the target distance by a fixed amount per event, using
// only the sign of the reported wheel delta so every device produces the same
// increment. The axis direction is recomputed from the rig's live local
// offset on every tick rather than persisted, which keeps zoom pointing the
// right way even when something external re-orients the rig.
type ZoomController interface {
	// OnScroll applies one scroll event. Only the sign of the delta is used:
	// positive deltas step the target distance closer, negative step it away,
	// and the result is clamped to the configured range.
	//
	// Parameters:
	//   - scrollDelta: the raw wheel delta, any sign or magnitude
	OnScroll(scrollDelta float32)

	// Update advances the zoom state by one tick: the axis is recomputed
	// from the supplied live local offset, the current distance smooths
	// toward the target, and the resulting local offset is republished. The
	// first call seeds both distances from the offset's actual magnitude so
	// startup never snaps.
	//
	// Parameters:
	//   - dt: elapsed time in seconds; values <= 0 leave all state unchanged
	//   - localOffset: the rig's current camera offset in local space
	Update(dt float32, localOffset mgl32.Vec3)

	// CurrentDistance returns the smoothed distance in world units.
	//
	// Returns:
	//   - float32: the published distance
	CurrentDistance() float32

	// TargetDistance returns the distance the controller is smoothing
	// toward, always within [MinDistance, MaxDistance].
	//
	// Returns:
	//   - float32: the target distance
	TargetDistance() float32

	// LocalOffset returns the published local-space camera offset: the
	// current axis scaled by the current distance.
	//
	// Returns:
	//   - mgl32.Vec3: the local offset to place the camera at
	LocalOffset() mgl32.Vec3

	// Axis returns the unit direction the distance is applied along.
	//
	// Returns:
	//   - mgl32.Vec3: the current zoom axis
	Axis() mgl32.Vec3

	// MinDistance returns the minimum allowed distance.
	//
	// Returns:
	//   - float32: the lower distance bound
	MinDistance() float32

	// MaxDistance returns the maximum allowed distance.
	//
	// Returns:
	//   - float32: the upper distance bound
	MaxDistance() float32

	// StepSensitivity returns the distance change per scroll event.
	//
	// Returns:
	//   - float32: world units per scroll step
	StepSensitivity() float32

	// SmoothTime returns the distance smoothing time constant.
	//
	// Returns:
	//   - float32: time constant in seconds
	SmoothTime() float32
}

// zoomControllerImpl is the implementation of the ZoomController interface.
type zoomControllerImpl struct {
	mu  *sync.Mutex
	log *logrus.Logger

	// initialized is set once both distances have been seeded from a real
	// offset, either at construction or on the first Update.
	initialized bool

	// targetDistance is clamped to [minDistance, maxDistance] on every
	// mutation.
	targetDistance float32

	// currentDistance is the smoothed, published distance.
	currentDistance float32

	// distanceVelocity is the smoothing velocity memory.
	distanceVelocity float32

	// axis is the unit direction recomputed each tick from the live offset.
	axis mgl32.Vec3

	// localOffset is the published axis * currentDistance.
	localOffset mgl32.Vec3

	// axisFallbackActive tracks a degenerate-offset episode so the fallback
	// is logged once when it begins rather than every tick it persists.
	axisFallbackActive bool

	// Configuration, fixed at construction.
	minDistance     float32
	maxDistance     float32
	stepSensitivity float32
	smoothTime      float32
}

var _ ZoomController = &zoomControllerImpl{}

// NewZoomController creates a new zoom controller with sensible defaults.
// When an initial local offset is supplied, both distances are seeded from
// its actual magnitude (clamped into range) immediately; otherwise seeding
// happens on the first Update from the live offset.
//
// Parameters:
//   - log: logger for diagnostics; nil falls back to the standard logger
//   - options: functional options to configure the controller
//
// Returns:
//   - ZoomController: the newly created controller
func NewZoomController(log *logrus.Logger, options ...ZoomControllerOption) ZoomController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	zc := &zoomControllerImpl{
		mu:  &sync.Mutex{},
		log: log,

		axis: defaultZoomAxis,

		minDistance:     2.0,
		maxDistance:     15.0,
		stepSensitivity: 1.0,
		smoothTime:      0.18,
	}

	for _, option := range options {
		option(zc)
	}

	if zc.minDistance > zc.maxDistance {
		zc.log.Warnf("[Rig] zoom bounds inverted (min %.2f > max %.2f), swapping", zc.minDistance, zc.maxDistance)
		zc.minDistance, zc.maxDistance = zc.maxDistance, zc.minDistance
	}
	return zc
}

func (zc *zoomControllerImpl) OnScroll(scrollDelta float32) {
	zc.mu.Lock()
	defer zc.mu.Unlock()

	zc.targetDistance -= signum(scrollDelta) * zc.stepSensitivity
	zc.targetDistance = common.Clamp(zc.targetDistance, zc.minDistance, zc.maxDistance)
}

func (zc *zoomControllerImpl) Update(dt float32, localOffset mgl32.Vec3) {
	zc.mu.Lock()
	defer zc.mu.Unlock()

	if !zc.initialized {
		zc.seed(localOffset)
	}
	if dt <= 0 {
		return
	}

	zc.recomputeAxis(localOffset)
	zc.currentDistance = common.SmoothDamp(zc.currentDistance, zc.targetDistance, &zc.distanceVelocity, zc.smoothTime, dt)
	zc.localOffset = zc.axis.Mul(zc.currentDistance)
}

func (zc *zoomControllerImpl) CurrentDistance() float32 {
	zc.mu.Lock()
	defer zc.mu.Unlock()
	return zc.currentDistance
}

func (zc *zoomControllerImpl) TargetDistance() float32 {
	zc.mu.Lock()
	defer zc.mu.Unlock()
	return zc.targetDistance
}

func (zc *zoomControllerImpl) LocalOffset() mgl32.Vec3 {
	zc.mu.Lock()
	defer zc.mu.Unlock()
	return zc.localOffset
}

func (zc *zoomControllerImpl) Axis() mgl32.Vec3 {
	zc.mu.Lock()
	defer zc.mu.Unlock()
	return zc.axis
}

func (zc *zoomControllerImpl) MinDistance() float32 {
	zc.mu.Lock()
	defer zc.mu.Unlock()
	return zc.minDistance
}

func (zc *zoomControllerImpl) MaxDistance() float32 {
	zc.mu.Lock()
	defer zc.mu.Unlock()
	return zc.maxDistance
}

func (zc *zoomControllerImpl) StepSensitivity() float32 {
	zc.mu.Lock()
	defer zc.mu.Unlock()
	return zc.stepSensitivity
}

func (zc *zoomControllerImpl) SmoothTime() float32 {
	zc.mu.Lock()
	defer zc.mu.Unlock()
	return zc.smoothTime
}

// seed initializes both distances from the offset's actual magnitude so the
// first published frame matches the rig's real starting placement. A zero
// offset falls back to the midpoint of the distance range. Caller must hold
// the mutex.
func (zc *zoomControllerImpl) seed(localOffset mgl32.Vec3) {
	dist := localOffset.Len()
	if dist < 1e-8 {
		dist = (zc.minDistance + zc.maxDistance) / 2
		zc.log.Warnf("[Rig] zoom seeded from zero-length offset, using midpoint distance %.2f", dist)
	}
	dist = common.Clamp(dist, zc.minDistance, zc.maxDistance)
	zc.currentDistance = dist
	zc.targetDistance = dist
	zc.distanceVelocity = 0
	zc.recomputeAxis(localOffset)
	zc.localOffset = zc.axis.Mul(zc.currentDistance)
	zc.initialized = true
}

// recomputeAxis derives the zoom direction from the live local offset,
// falling back to the default axis while the offset is degenerate. Caller
// must hold the mutex.
func (zc *zoomControllerImpl) recomputeAxis(localOffset mgl32.Vec3) {
	length := localOffset.Len()
	if length < 1e-8 {
		if !zc.axisFallbackActive {
			zc.axisFallbackActive = true
			zc.log.Warnf("[Rig] zoom axis degenerate (zero-length offset), falling back to %v", defaultZoomAxis)
		}
		zc.axis = defaultZoomAxis
		return
	}
	zc.axisFallbackActive = false
	zc.axis = localOffset.Mul(1 / length)
}

// signum normalizes a scroll delta to -1, 0, or +1.
func signum(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
