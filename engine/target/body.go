package target

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

// Body adapts a 2D physics body into a tracked target. The physics plane
// (X, Y) maps onto the world ground plane (X, Z), with a fixed elevation
// supplying the world Y coordinate. The body itself is stepped by its owning
// space; this wrapper only reads.
type Body interface {
	Target

	// Underlying returns the wrapped physics body.
	//
	// Returns:
	//   - *cp.Body: the physics body
	Underlying() *cp.Body

	// Elevation returns the fixed world Y coordinate the body is tracked at.
	//
	// Returns:
	//   - float32: the elevation in world units
	Elevation() float32
}

// bodyImpl is the implementation of the Body interface.
type bodyImpl struct {
	body      *cp.Body
	elevation float32
}

var _ Body = &bodyImpl{}

// NewBodyTarget wraps a physics body as a tracked target. A nil body yields
// a target pinned at the origin, matching the fail-safe contract for missing
// collaborators: callers should check for nil before constructing instead.
//
// Parameters:
//   - body: the physics body to track
//   - options: functional options to configure the wrapper
//
// Returns:
//   - Body: the wrapping target
func NewBodyTarget(body *cp.Body, options ...BodyBuilderOption) Body {
	b := &bodyImpl{
		body: body,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *bodyImpl) Position() mgl32.Vec3 {
	if b.body == nil {
		return mgl32.Vec3{0, b.elevation, 0}
	}
	p := b.body.Position()
	return mgl32.Vec3{float32(p.X), b.elevation, float32(p.Y)}
}

func (b *bodyImpl) Underlying() *cp.Body {
	return b.body
}

func (b *bodyImpl) Elevation() float32 {
	return b.elevation
}
