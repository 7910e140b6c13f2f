package target

// BodyBuilderOption is a functional option for configuring a Body target.
type BodyBuilderOption func(*bodyImpl)

// WithElevation sets the fixed world Y coordinate the body is tracked at.
//
// Parameters:
//   - elevation: the elevation in world units
//
// Returns:
//   - BodyBuilderOption: functional option to set the elevation
func WithElevation(elevation float32) BodyBuilderOption {
	return func(b *bodyImpl) {
		b.elevation = elevation
	}
}
