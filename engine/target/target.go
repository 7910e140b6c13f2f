package target

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Target is a world-space position the camera rig can follow. Implementations
// in this package cover a fixed point, a kinematic object integrated by the
// engine's fixed tick, and a physics body stepped by an external space.
type Target interface {
	// Position returns the target's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the tracked position
	Position() mgl32.Vec3
}

// staticTarget is an immutable fixed-point target.
type staticTarget struct {
	position mgl32.Vec3
}

var _ Target = &staticTarget{}

// NewStaticTarget creates a target fixed at a world-space point. Useful for
// framing a stationary subject or for headless captures.
//
// Parameters:
//   - position: the fixed world-space position
//
// Returns:
//   - Target: the fixed target
func NewStaticTarget(position mgl32.Vec3) Target {
	return &staticTarget{position: position}
}

func (s *staticTarget) Position() mgl32.Vec3 {
	return s.position
}
