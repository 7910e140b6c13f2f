package input

// InputBuilderOption is a functional option for configuring an inputBuffer.
// Use the With* functions to create options.
type InputBuilderOption func(i *inputBuffer)

// WithButtonAlias redirects one logical button onto another, so an alternate
// physical binding (for example a keyboard modifier) drives the same edge
// buffer as the primary binding.
//
// Parameters:
//   - from: the button to redirect
//   - to: the button that receives its events
//
// Returns:
//   - InputBuilderOption: option function to apply
func WithButtonAlias(from, to Button) InputBuilderOption {
	return func(i *inputBuffer) {
		i.aliases[from] = to
	}
}
