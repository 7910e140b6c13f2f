package target

import "github.com/go-gl/mathgl/mgl32"

// ObjectBuilderOption is a functional option for configuring an Object.
type ObjectBuilderOption func(*objectImpl)

// WithID sets the object's identifier instead of taking the next generated
// one.
//
// Parameters:
//   - id: the ID to assign
//
// Returns:
//   - ObjectBuilderOption: functional option to set the ID
func WithID(id uint64) ObjectBuilderOption {
	return func(o *objectImpl) {
		o.id = id
	}
}

// WithPosition sets the object's starting position.
//
// Parameters:
//   - position: the starting world-space position
//
// Returns:
//   - ObjectBuilderOption: functional option to set the position
func WithPosition(position mgl32.Vec3) ObjectBuilderOption {
	return func(o *objectImpl) {
		o.position = position
	}
}

// WithVelocity sets the object's starting velocity.
//
// Parameters:
//   - velocity: velocity in world units per second
//
// Returns:
//   - ObjectBuilderOption: functional option to set the velocity
func WithVelocity(velocity mgl32.Vec3) ObjectBuilderOption {
	return func(o *objectImpl) {
		o.velocity = velocity
	}
}
