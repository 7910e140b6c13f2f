package target

import (
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// objectCount is an atomic counter used to assign unique identifiers to
// objects created without an explicit ID.
var objectCount atomic.Uint64

// Object is a kinematic tracked entity: a position integrated from a velocity
// once per fixed tick. It is the simplest moving thing a rig can follow
// without a physics space.
type Object interface {
	Target

	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object integrates motion. Disabled
	// objects hold their position.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object integrates motion.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Velocity returns the object's current velocity.
	//
	// Returns:
	//   - mgl32.Vec3: velocity in world units per second
	Velocity() mgl32.Vec3

	// SetVelocity sets the object's velocity.
	//
	// Parameters:
	//   - velocity: velocity in world units per second
	SetVelocity(velocity mgl32.Vec3)

	// SetPosition moves the object directly.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position mgl32.Vec3)

	// Advance integrates the position by one fixed timestep. Call once per
	// fixed tick, before the rig consumes the position.
	//
	// Parameters:
	//   - dt: fixed timestep in seconds
	Advance(dt float32)
}

// objectImpl is the implementation of the Object interface.
type objectImpl struct {
	mu sync.Mutex

	id      uint64
	enabled atomic.Bool

	position mgl32.Vec3
	velocity mgl32.Vec3
}

var _ Object = &objectImpl{}

// NewObject creates a kinematic object with the specified options. Objects
// start enabled at the origin with zero velocity.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - Object: the newly created object
func NewObject(options ...ObjectBuilderOption) Object {
	o := &objectImpl{
		id: objectCount.Add(1),
	}
	o.enabled.Store(true)
	for _, option := range options {
		option(o)
	}
	return o
}

func (o *objectImpl) ID() uint64 {
	return o.id
}

func (o *objectImpl) Enabled() bool {
	return o.enabled.Load()
}

func (o *objectImpl) SetEnabled(enabled bool) {
	o.enabled.Store(enabled)
}

func (o *objectImpl) Position() mgl32.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.position
}

func (o *objectImpl) SetPosition(position mgl32.Vec3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.position = position
}

func (o *objectImpl) Velocity() mgl32.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.velocity
}

func (o *objectImpl) SetVelocity(velocity mgl32.Vec3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.velocity = velocity
}

func (o *objectImpl) Advance(dt float32) {
	if !o.enabled.Load() || dt <= 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.position = o.position.Add(o.velocity.Mul(dt))
}
