package rig

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/sirupsen/logrus"
)

// RotationState identifies the rotation controller's mode.
type RotationState uint8

const (
	// Snapped is the default mode: yaw rests on a multiple of the snap
	// increment and ignores pointer input.
	Snapped RotationState = iota

	// FreeLooking is the modifier-held mode: pointer input accumulates into
	// the target yaw without snapping.
	FreeLooking
)

// String returns the mode name for diagnostics.
func (s RotationState) String() string {
	switch s {
	case Snapped:
		return "Snapped"
	case FreeLooking:
		return "FreeLooking"
	default:
		return "Unknown"
	}
}

// RotationController owns the rig's yaw angle and its free-look state machine.
// While the free-look modifier is held, pointer deltas accumulate into the
// target yaw without bound; on release the target snaps once to the nearest
// multiple of the configured increment and wraps into [0, 360). The published
// yaw always follows the target through critically damped smoothing, so mode
// transitions never teleport the camera.
type RotationController interface {
	// OnModifierPressStart enters free-look mode and cancels any snap still
	// pending from a previous release.
	OnModifierPressStart()

	// OnModifierRelease leaves free-look mode and schedules exactly one
	// snap-to-nearest-increment, applied on the next Update rather than
	// immediately so it cannot combine with the same frame's pointer delta.
	// Calls while not free-looking are ignored.
	OnModifierRelease()

	// Update advances the yaw state by one tick. While free-looking the
	// pointer delta accumulates into the target; a pending snap is applied;
	// the current yaw then smooths toward the target along the shortest arc.
	//
	// Parameters:
	//   - dt: elapsed time in seconds; values <= 0 leave all state unchanged
	//   - lookDeltaX: horizontal pointer delta, any sign or magnitude
	Update(dt, lookDeltaX float32)

	// CurrentAngle returns the smoothed yaw in degrees, wrapped to [0, 360).
	//
	// Returns:
	//   - float32: the published yaw angle
	CurrentAngle() float32

	// TargetAngle returns the yaw the controller is smoothing toward. During
	// free-look this accumulates without wrapping; it wraps only at snap time.
	//
	// Returns:
	//   - float32: the target yaw in degrees
	TargetAngle() float32

	// IsFreeLooking reports whether the controller is in free-look mode.
	// PanController reads this to suspend panning.
	//
	// Returns:
	//   - bool: true while the free-look modifier is held
	IsFreeLooking() bool

	// Mode returns the current rotation state.
	//
	// Returns:
	//   - RotationState: Snapped or FreeLooking
	Mode() RotationState

	// Sensitivity returns the look sensitivity multiplier.
	//
	// Returns:
	//   - float32: degrees per pointer unit per second
	Sensitivity() float32

	// SmoothTime returns the yaw smoothing time constant.
	//
	// Returns:
	//   - float32: time constant in seconds
	SmoothTime() float32

	// SnapIncrement returns the snap increment in degrees. Values <= 0
	// disable snapping.
	//
	// Returns:
	//   - float32: the snap increment
	SnapIncrement() float32
}

// rotationControllerImpl is the implementation of the RotationController
// interface.
type rotationControllerImpl struct {
	mu  *sync.Mutex
	log *logrus.Logger

	// mode is owned exclusively by this controller; other components read it
	// through IsFreeLooking only.
	mode RotationState

	// targetAngle accumulates unbounded during free-look and wraps into
	// [0, 360) only when a snap is applied.
	targetAngle float32

	// currentAngle is the smoothed, published yaw in [0, 360).
	currentAngle float32

	// angularVelocity is the smoothing velocity memory in degrees per second.
	angularVelocity float32

	// snapPending is set by a modifier release and consumed by the next
	// Update, so the snap applies exactly once.
	snapPending bool

	// Configuration, fixed at construction.
	sensitivity   float32
	smoothTime    float32
	snapIncrement float32
}

var _ RotationController = &rotationControllerImpl{}

// NewRotationController creates a new rotation controller with sensible
// defaults: 45 degree snap increment, starting snapped at yaw 0.
//
// Parameters:
//   - log: logger for diagnostics; nil falls back to the standard logger
//   - options: functional options to configure the controller
//
// Returns:
//   - RotationController: the newly created controller
func NewRotationController(log *logrus.Logger, options ...RotationControllerOption) RotationController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	rc := &rotationControllerImpl{
		mu:  &sync.Mutex{},
		log: log,

		mode: Snapped,

		sensitivity:   2.0,
		smoothTime:    0.12,
		snapIncrement: 45.0,
	}

	for _, option := range options {
		option(rc)
	}

	rc.currentAngle = common.WrapAngle360(rc.currentAngle)
	rc.targetAngle = rc.currentAngle
	if rc.snapIncrement <= 0 {
		rc.log.Debugf("[Rig] rotation snap increment %.2f <= 0, snapping disabled", rc.snapIncrement)
	}
	return rc
}

func (rc *rotationControllerImpl) OnModifierPressStart() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.mode = FreeLooking
	rc.snapPending = false
}

func (rc *rotationControllerImpl) OnModifierRelease() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.mode != FreeLooking {
		return
	}
	rc.mode = Snapped
	rc.snapPending = true
}

func (rc *rotationControllerImpl) Update(dt, lookDeltaX float32) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if dt <= 0 {
		return
	}

	if rc.mode == FreeLooking {
		rc.targetAngle += lookDeltaX * rc.sensitivity * dt
	}

	if rc.snapPending {
		rc.targetAngle = common.SnapAngle(rc.targetAngle, rc.snapIncrement)
		rc.snapPending = false
	}

	rc.currentAngle = common.SmoothDampAngle(rc.currentAngle, rc.targetAngle, &rc.angularVelocity, rc.smoothTime, dt)
}

func (rc *rotationControllerImpl) CurrentAngle() float32 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.currentAngle
}

func (rc *rotationControllerImpl) TargetAngle() float32 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.targetAngle
}

func (rc *rotationControllerImpl) IsFreeLooking() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.mode == FreeLooking
}

func (rc *rotationControllerImpl) Mode() RotationState {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.mode
}

func (rc *rotationControllerImpl) Sensitivity() float32 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.sensitivity
}

func (rc *rotationControllerImpl) SmoothTime() float32 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.smoothTime
}

func (rc *rotationControllerImpl) SnapIncrement() float32 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.snapIncrement
}
