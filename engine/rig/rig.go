package rig

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// InputSource is the slice of the input layer the rig consumes: buffered
// deltas and edges drained once per appropriate tick.
type InputSource interface {
	// TakeLookDelta consumes the accumulated free-look pointer delta.
	//
	// Returns:
	//   - mgl32.Vec2: pointer delta since the last call
	TakeLookDelta() mgl32.Vec2

	// TakePanDelta consumes the accumulated pan pointer delta.
	//
	// Returns:
	//   - mgl32.Vec2: pointer delta since the last call
	TakePanDelta() mgl32.Vec2

	// TakeScrollDeltas drains queued scroll events in arrival order.
	//
	// Returns:
	//   - []float32: the queued wheel deltas, nil if none occurred
	TakeScrollDeltas() []float32

	// TakeButtonEdges drains pending button transitions.
	//
	// Returns:
	//   - []input.Edge: the pending edges, nil if none occurred
	TakeButtonEdges() []input.Edge
}

// TrackedTarget is the entity the rig follows. Its position is read once per
// fixed tick, after the target's own fixed-step motion has run.
type TrackedTarget interface {
	// Position returns the target's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the tracked position
	Position() mgl32.Vec3
}

// Pose is the rig's published transform: a world-space position and a
// yaw-only rotation. The rig is the single writer of these values.
type Pose struct {
	Position mgl32.Vec3
	Yaw      float32
}

// Matrix returns the pose as a column-major world transform.
//
// Returns:
//   - [16]float32: yaw rotation and translation, column-major
func (p Pose) Matrix() [16]float32 {
	var m [16]float32
	common.BuildRigMatrix(m[:], p.Position[0], p.Position[1], p.Position[2], p.Yaw)
	return m
}

// Sample is a per-tick observation of the rig's state, emitted to the
// configured observer after each fixed update.
type Sample struct {
	Tick         uint64
	Yaw          float32
	TargetYaw    float32
	PanOffset    mgl32.Vec2
	ZoomDistance float32
	FreeLook     bool
	Position     mgl32.Vec3
}

// Rig composes yaw rotation, pan offset, and zoom distance into the final
// camera placement, following a tracked target. Composition applies yaw
// first, establishing the local axes that the pan and zoom offsets are then
// expressed in. Two cadences drive it: FixedUpdate consumes buffered edges,
// scroll events, and pan input in lock-step with the target's motion, while
// FrameUpdate consumes look deltas every frame to keep free-look latency
// minimal.
type Rig interface {
	// FixedUpdate advances pan, zoom, and buffered input consumption by one
	// fixed simulation tick. Button edges are drained first so the rotation
	// mode the pan controller reads was produced in this same tick.
	//
	// Parameters:
	//   - dt: fixed timestep in seconds
	FixedUpdate(dt float32)

	// FrameUpdate advances free-look rotation by one variable-rate frame and
	// recomposes the pose.
	//
	// Parameters:
	//   - dt: frame time in seconds
	FrameUpdate(dt float32)

	// Pose returns the last composed transform.
	//
	// Returns:
	//   - Pose: world-space position and yaw
	Pose() Pose

	// Eye returns the camera position of the last composed pose.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Eye() mgl32.Vec3

	// Center returns the point the camera looks at: the tracked position
	// plus the pan offset at pivot height.
	//
	// Returns:
	//   - mgl32.Vec3: world-space look target
	Center() mgl32.Vec3

	// Rotation returns the yaw controller.
	//
	// Returns:
	//   - RotationController: the rig's rotation controller
	Rotation() RotationController

	// Pan returns the lateral offset controller.
	//
	// Returns:
	//   - PanController: the rig's pan controller
	Pan() PanController

	// Zoom returns the distance controller.
	//
	// Returns:
	//   - ZoomController: the rig's zoom controller
	Zoom() ZoomController

	// Disabled reports whether the rig was disabled at construction for lack
	// of a required collaborator. A disabled rig ignores updates and holds a
	// zero pose.
	//
	// Returns:
	//   - bool: true if the rig is inert
	Disabled() bool
}

// rigImpl is the implementation of the Rig interface.
type rigImpl struct {
	mu  *sync.Mutex
	log *logrus.Logger

	// input and target are required collaborators; either missing disables
	// the rig at construction.
	input  InputSource
	target TrackedTarget

	disabled bool

	rotation RotationController
	pan      PanController
	zoom     ZoomController

	// cameraLocal is the live local-space camera offset the zoom controller
	// recomputes its axis from each tick.
	cameraLocal mgl32.Vec3

	// pivotHeight lifts the look point above the tracked position.
	pivotHeight float32

	// pose and center are the last composed outputs.
	pose   Pose
	center mgl32.Vec3

	// tick counts fixed updates, for observation samples.
	tick uint64

	// observer, when set, receives a Sample after every fixed update. It is
	// invoked outside the rig's lock.
	observer func(Sample)
}

var _ Rig = &rigImpl{}

// NewRig creates a new camera rig with sensible defaults. The input source
// and tracked target are required collaborators: if either is missing the
// rig is created disabled and logs a diagnostic rather than composing from
// nil data. Controllers not supplied through options are constructed with
// defaults and wired together, with the pan controller reading the rotation
// controller's mode.
//
// Parameters:
//   - log: logger for diagnostics; nil falls back to the standard logger
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
func NewRig(log *logrus.Logger, options ...RigOption) Rig {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &rigImpl{
		mu:  &sync.Mutex{},
		log: log,

		cameraLocal: mgl32.Vec3{0, 0, 8},
		pivotHeight: 1.5,
	}

	for _, option := range options {
		option(r)
	}

	if r.rotation == nil {
		r.rotation = NewRotationController(log)
	}
	if r.pan == nil {
		r.pan = NewPanController(log, WithFreeLookSource(r.rotation))
	}
	if r.zoom == nil {
		r.zoom = NewZoomController(log, WithInitialLocalOffset(r.cameraLocal))
	}

	if r.input == nil {
		r.disabled = true
		r.log.Warnf("[Rig] rig disabled: no input source configured")
	}
	if r.target == nil {
		r.disabled = true
		r.log.Warnf("[Rig] rig disabled: no tracked target configured")
	}
	if r.disabled {
		return r
	}

	// A zero dt seeds an unseeded zoom controller from the starting offset
	// without advancing any smoothing.
	r.zoom.Update(0, r.cameraLocal)
	r.cameraLocal = r.zoom.LocalOffset()
	r.compose()
	return r
}

func (r *rigImpl) FixedUpdate(dt float32) {
	sample, observer := r.fixedStep(dt)
	if observer != nil {
		observer(sample)
	}
}

func (r *rigImpl) FrameUpdate(dt float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disabled {
		return
	}

	look := r.input.TakeLookDelta()
	r.rotation.Update(dt, look[0])
	r.compose()
}

func (r *rigImpl) Pose() Pose {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pose
}

func (r *rigImpl) Eye() mgl32.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pose.Position
}

func (r *rigImpl) Center() mgl32.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.center
}

func (r *rigImpl) Rotation() RotationController {
	return r.rotation
}

func (r *rigImpl) Pan() PanController {
	return r.pan
}

func (r *rigImpl) Zoom() ZoomController {
	return r.zoom
}

func (r *rigImpl) Disabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disabled
}

// fixedStep runs one fixed tick under the lock and returns the observation
// to deliver after the lock is released, so an observer can safely read the
// rig back.
func (r *rigImpl) fixedStep(dt float32) (Sample, func(Sample)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disabled {
		return Sample{}, nil
	}

	// Edges first: the mode flag pan reads below must be the value rotation
	// produced in this same tick.
	for _, edge := range r.input.TakeButtonEdges() {
		if edge.Button != input.ButtonFreeLook {
			continue
		}
		if edge.Pressed {
			r.rotation.OnModifierPressStart()
		} else {
			r.rotation.OnModifierRelease()
		}
	}

	for _, delta := range r.input.TakeScrollDeltas() {
		r.zoom.OnScroll(delta)
	}

	r.pan.Update(dt, r.input.TakePanDelta(), r.rotation.CurrentAngle())

	r.zoom.Update(dt, r.cameraLocal)
	r.cameraLocal = r.zoom.LocalOffset()

	r.compose()
	r.tick++

	if r.observer == nil {
		return Sample{}, nil
	}
	return r.sampleLocked(), r.observer
}

// compose assembles the pose from the controllers' published values: yaw
// first, then the pan offset on the ground plane, then the zoom offset
// rotated into world space. Caller must hold the mutex.
func (r *rigImpl) compose() {
	anchor := r.target.Position()
	yaw := r.rotation.CurrentAngle()
	panOffset := r.pan.CurrentOffset()
	local := r.zoom.LocalOffset()

	pivot := anchor.
		Add(mgl32.Vec3{panOffset[0], 0, panOffset[1]}).
		Add(mgl32.Vec3{0, r.pivotHeight, 0})
	eye := pivot.Add(common.RotateYawVec3(local, yaw))

	r.center = pivot
	r.pose = Pose{Position: eye, Yaw: yaw}
}

// sampleLocked builds an observation of the current state. Caller must hold
// the mutex.
func (r *rigImpl) sampleLocked() Sample {
	return Sample{
		Tick:         r.tick,
		Yaw:          r.pose.Yaw,
		TargetYaw:    r.rotation.TargetAngle(),
		PanOffset:    r.pan.CurrentOffset(),
		ZoomDistance: r.zoom.CurrentDistance(),
		FreeLook:     r.rotation.IsFreeLooking(),
		Position:     r.pose.Position,
	}
}
