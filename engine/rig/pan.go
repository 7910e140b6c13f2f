package rig

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// FreeLookSource exposes the rotation controller's mode to components that
// must yield while free-look is active. It is a read-only dependency edge:
// the pan controller never mutates rotation state through it.
type FreeLookSource interface {
	// IsFreeLooking reports whether free-look rotation is active.
	//
	// Returns:
	//   - bool: true while the free-look modifier is held
	IsFreeLooking() bool
}

// PanController owns the rig's lateral offset from the tracked target, as a
// ground-plane (X, Z) vector. Pointer input accumulates into a target offset
// bounded by a maximum magnitude, and the published offset follows it through
// critically damped smoothing. Panning and free-look rotation are mutually
// exclusive: while the rotation controller reports free-look, the target
// offset is forced to zero and pan input for that tick is discarded, so the
// offset returns smoothly to rest.
type PanController interface {
	// Update advances the pan state by one tick. The free-look flag must be
	// read from the rotation state produced earlier in the same tick, so the
	// rotation controller has to update before this call.
	//
	// Parameters:
	//   - dt: elapsed time in seconds; values <= 0 leave all state unchanged
	//   - panDelta: pointer delta in screen units (x right, y down)
	//   - referenceYaw: current rig yaw in degrees, used to express the
	//     screen-space delta in world space
	Update(dt float32, panDelta mgl32.Vec2, referenceYaw float32)

	// CurrentOffset returns the smoothed lateral offset as world-space
	// (X, Z) components. Pan never changes the rig's height.
	//
	// Returns:
	//   - mgl32.Vec2: the published offset
	CurrentOffset() mgl32.Vec2

	// TargetOffset returns the offset the controller is smoothing toward.
	// Its magnitude never exceeds MaxOffset.
	//
	// Returns:
	//   - mgl32.Vec2: the target offset
	TargetOffset() mgl32.Vec2

	// Disabled reports whether the controller was disabled at construction
	// for lack of a free-look source. A disabled controller ignores Update
	// and holds a zero offset.
	//
	// Returns:
	//   - bool: true if the controller is inert
	Disabled() bool

	// Sensitivity returns the pan sensitivity multiplier.
	//
	// Returns:
	//   - float32: world units per screen unit per second
	Sensitivity() float32

	// ReturnSmoothTime returns the offset smoothing time constant.
	//
	// Returns:
	//   - float32: time constant in seconds
	ReturnSmoothTime() float32

	// MaxOffset returns the maximum offset magnitude.
	//
	// Returns:
	//   - float32: the magnitude bound in world units
	MaxOffset() float32

	// ActivityThreshold returns the squared pointer delta magnitude below
	// which input is treated as jitter rather than deliberate panning.
	//
	// Returns:
	//   - float32: the squared magnitude threshold
	ActivityThreshold() float32
}

// panControllerImpl is the implementation of the PanController interface.
type panControllerImpl struct {
	mu  *sync.Mutex
	log *logrus.Logger

	// freeLook is the required mode source; nil disables the controller.
	freeLook FreeLookSource

	// disabled is set once at construction when a required collaborator is
	// missing, never at runtime.
	disabled bool

	// targetOffset is bounded by maxOffset immediately on every mutation.
	targetOffset mgl32.Vec2

	// currentOffset is the smoothed, published offset. It may exceed the
	// bound only by the transient overshoot the damping law permits.
	currentOffset mgl32.Vec2

	// offsetVelocity is the smoothing velocity memory. It is zeroed on every
	// actively panning tick so the return glide starts clean when input stops.
	offsetVelocity mgl32.Vec2

	// Configuration, fixed at construction.
	sensitivity       float32
	returnSmoothTime  float32
	maxOffset         float32
	activityThreshold float32
}

var _ PanController = &panControllerImpl{}

// NewPanController creates a new pan controller with sensible defaults. A
// free-look source is a required collaborator: without one the controller is
// created disabled and logs a diagnostic, rather than panning through
// free-look and breaking the mutual exclusion contract.
//
// Parameters:
//   - log: logger for diagnostics; nil falls back to the standard logger
//   - options: functional options to configure the controller
//
// Returns:
//   - PanController: the newly created controller
func NewPanController(log *logrus.Logger, options ...PanControllerOption) PanController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	pc := &panControllerImpl{
		mu:  &sync.Mutex{},
		log: log,

		sensitivity:       1.5,
		returnSmoothTime:  0.25,
		maxOffset:         4.0,
		activityThreshold: 0.01,
	}

	for _, option := range options {
		option(pc)
	}

	if pc.freeLook == nil {
		pc.disabled = true
		pc.log.Warnf("[Rig] pan controller disabled: no free-look source configured")
	}
	pc.targetOffset = common.ClampMagnitude(pc.targetOffset, pc.maxOffset)
	pc.currentOffset = pc.targetOffset
	return pc
}

func (pc *panControllerImpl) Update(dt float32, panDelta mgl32.Vec2, referenceYaw float32) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.disabled || dt <= 0 {
		return
	}

	if pc.freeLook.IsFreeLooking() {
		// Hard override: free-look and panning never coexist within a tick.
		pc.targetOffset = mgl32.Vec2{}
	} else if panDelta.LenSqr() > pc.activityThreshold {
		right := common.YawRight(referenceYaw)
		forward := common.YawForward(referenceYaw)
		world := right.Mul(panDelta[0]).Add(forward.Mul(panDelta[1]))

		pc.targetOffset = pc.targetOffset.Add(world.Mul(pc.sensitivity * dt))
		pc.targetOffset = common.ClampMagnitude(pc.targetOffset, pc.maxOffset)
		pc.offsetVelocity = mgl32.Vec2{}
	}

	pc.currentOffset = common.SmoothDampVec2(pc.currentOffset, pc.targetOffset, &pc.offsetVelocity, pc.returnSmoothTime, dt)
}

func (pc *panControllerImpl) CurrentOffset() mgl32.Vec2 {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.currentOffset
}

func (pc *panControllerImpl) TargetOffset() mgl32.Vec2 {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.targetOffset
}

func (pc *panControllerImpl) Disabled() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.disabled
}

func (pc *panControllerImpl) Sensitivity() float32 {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.sensitivity
}

func (pc *panControllerImpl) ReturnSmoothTime() float32 {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.returnSmoothTime
}

func (pc *panControllerImpl) MaxOffset() float32 {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.maxOffset
}

func (pc *panControllerImpl) ActivityThreshold() float32 {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.activityThreshold
}
