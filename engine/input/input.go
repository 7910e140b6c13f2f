package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rig/engine/window"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Button identifies a logical input button. Keyboard keys map directly from
// their virtual key codes via KeyButton; pointer buttons use reserved values
// above the key code range.
type Button uint32

// Reserved pointer button identifiers, placed above the GLFW key code range
// so they never collide with KeyButton values.
const (
	// ButtonFreeLook is the free-look modifier, bound to the right mouse button.
	ButtonFreeLook Button = 1<<30 + iota

	// ButtonPan is the pan modifier, bound to the middle mouse button.
	ButtonPan
)

// KeyButton converts a virtual key code into a logical Button.
//
// Parameters:
//   - code: the virtual key code (see common key code constants)
//
// Returns:
//   - Button: the logical button for the key
func KeyButton(code uint32) Button {
	return Button(code)
}

// Edge is a buffered button transition. Pressed true is a press-start edge,
// false is a release edge.
type Edge struct {
	Button  Button
	Pressed bool
}

// Input buffers asynchronous window events for per-tick consumption. Pointer
// motion accumulates into look and pan deltas while the matching button is
// held, scroll events queue in arrival order, and button transitions are kept
// as at most one pending edge per logical button so a transition occurring
// between two ticks is never lost the way level-polling would lose it.
// All methods are safe for concurrent use.
type Input interface {
	// BindWindow wires the window's input callbacks into this buffer.
	// Call once before the window's message loop starts.
	//
	// Parameters:
	//   - win: the window whose events should feed this buffer
	BindWindow(win window.Window)

	// NotifyButtonDown records a button press. Repeated presses while the
	// button is already held are ignored.
	//
	// Parameters:
	//   - button: the logical button that was pressed
	NotifyButtonDown(button Button)

	// NotifyButtonUp records a button release. Releases of a button that is
	// not held are ignored.
	//
	// Parameters:
	//   - button: the logical button that was released
	NotifyButtonUp(button Button)

	// NotifyMouseMove records pointer motion. While the free-look button is
	// held the motion accumulates into the look delta; otherwise while the
	// pan button is held it accumulates into the pan delta.
	//
	// Parameters:
	//   - x: pointer x position in window coordinates
	//   - y: pointer y position in window coordinates
	NotifyMouseMove(x, y int32)

	// NotifyScroll queues one scroll wheel event.
	//
	// Parameters:
	//   - delta: the raw wheel delta, any sign or magnitude
	NotifyScroll(delta float32)

	// TakeLookDelta returns the look delta accumulated since the last call
	// and resets the accumulator.
	//
	// Returns:
	//   - mgl32.Vec2: accumulated pointer delta while free-looking
	TakeLookDelta() mgl32.Vec2

	// TakePanDelta returns the pan delta accumulated since the last call and
	// resets the accumulator.
	//
	// Returns:
	//   - mgl32.Vec2: accumulated pointer delta while panning
	TakePanDelta() mgl32.Vec2

	// TakeScrollDeltas drains the queued scroll events in arrival order.
	//
	// Returns:
	//   - []float32: the queued wheel deltas, nil if none occurred
	TakeScrollDeltas() []float32

	// TakeButtonEdges drains the pending button edges. Each button
	// contributes at most one edge reflecting its most recent unconsumed
	// transition, in first-seen button order.
	//
	// Returns:
	//   - []Edge: the pending edges, nil if none occurred
	TakeButtonEdges() []Edge

	// Held reports the live level of a button. Movement-style polling only;
	// state machine transitions should consume edges instead.
	//
	// Parameters:
	//   - button: the logical button to check
	//
	// Returns:
	//   - bool: true if the button is currently held
	Held(button Button) bool
}

// buttonState tracks one logical button: its live level plus at most one
// pending edge. A newer transition overwrites an unconsumed older one, so the
// drained edge always reflects the button's final level.
type buttonState struct {
	held         bool
	hasPending   bool
	pendingLevel bool
}

// inputBuffer is the implementation of the Input interface.
type inputBuffer struct {
	mu sync.Mutex

	// buttons tracks per-button state in first-seen order so edge drains are
	// deterministic.
	buttons *orderedmap.OrderedMap[Button, *buttonState]

	// aliases redirects alternate physical buttons onto logical ones.
	aliases map[Button]Button

	// lookDelta accumulates pointer motion while the free-look button is held.
	lookDelta mgl32.Vec2

	// panDelta accumulates pointer motion while the pan button is held.
	panDelta mgl32.Vec2

	// scroll queues raw wheel deltas in arrival order.
	scroll []float32

	// lastX, lastY hold the previous pointer position for delta computation.
	lastX, lastY int32

	// hasLast is false until a pointer position has been observed, so the
	// first motion after a button press never produces a spurious delta.
	hasLast bool
}

var _ Input = &inputBuffer{}

// NewInput creates a new input buffer with the specified options.
//
// Parameters:
//   - options: functional options to configure the buffer
//
// Returns:
//   - Input: the configured input buffer
func NewInput(options ...InputBuilderOption) Input {
	i := &inputBuffer{
		buttons: orderedmap.NewOrderedMap[Button, *buttonState](),
		aliases: make(map[Button]Button),
	}
	for _, opt := range options {
		opt(i)
	}
	return i
}

func (i *inputBuffer) BindWindow(win window.Window) {
	win.SetRightMouseDownCallback(func(x, y int32) {
		i.seedCursor(x, y)
		i.NotifyButtonDown(ButtonFreeLook)
	})
	win.SetRightMouseUpCallback(func(x, y int32) {
		i.NotifyButtonUp(ButtonFreeLook)
	})
	win.SetMiddleMouseDownCallback(func(x, y int32) {
		i.seedCursor(x, y)
		i.NotifyButtonDown(ButtonPan)
	})
	win.SetMiddleMouseUpCallback(func(x, y int32) {
		i.NotifyButtonUp(ButtonPan)
	})
	win.SetMouseMoveCallback(i.NotifyMouseMove)
	win.SetScrollCallback(i.NotifyScroll)
	win.SetKeyDownCallback(func(keyCode uint32) {
		i.NotifyButtonDown(KeyButton(keyCode))
	})
	win.SetKeyUpCallback(func(keyCode uint32) {
		i.NotifyButtonUp(KeyButton(keyCode))
	})
}

func (i *inputBuffer) NotifyButtonDown(button Button) {
	i.mu.Lock()
	defer i.mu.Unlock()

	s := i.state(i.resolve(button))
	if s.held {
		return
	}
	s.held = true
	s.hasPending = true
	s.pendingLevel = true
}

func (i *inputBuffer) NotifyButtonUp(button Button) {
	i.mu.Lock()
	defer i.mu.Unlock()

	s := i.state(i.resolve(button))
	if !s.held {
		return
	}
	s.held = false
	s.hasPending = true
	s.pendingLevel = false
}

func (i *inputBuffer) NotifyMouseMove(x, y int32) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.hasLast {
		i.lastX, i.lastY = x, y
		i.hasLast = true
		return
	}
	dx := float32(x - i.lastX)
	dy := float32(y - i.lastY)
	i.lastX, i.lastY = x, y

	// Free-look takes priority over pan when both buttons are held, matching
	// the rig's mutual exclusion of the two modes.
	if i.heldLocked(ButtonFreeLook) {
		i.lookDelta[0] += dx
		i.lookDelta[1] += dy
		return
	}
	if i.heldLocked(ButtonPan) {
		i.panDelta[0] += dx
		i.panDelta[1] += dy
	}
}

func (i *inputBuffer) NotifyScroll(delta float32) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.scroll = append(i.scroll, delta)
}

func (i *inputBuffer) TakeLookDelta() mgl32.Vec2 {
	i.mu.Lock()
	defer i.mu.Unlock()

	d := i.lookDelta
	i.lookDelta = mgl32.Vec2{}
	return d
}

func (i *inputBuffer) TakePanDelta() mgl32.Vec2 {
	i.mu.Lock()
	defer i.mu.Unlock()

	d := i.panDelta
	i.panDelta = mgl32.Vec2{}
	return d
}

func (i *inputBuffer) TakeScrollDeltas() []float32 {
	i.mu.Lock()
	defer i.mu.Unlock()

	d := i.scroll
	i.scroll = nil
	return d
}

func (i *inputBuffer) TakeButtonEdges() []Edge {
	i.mu.Lock()
	defer i.mu.Unlock()

	var edges []Edge
	for _, button := range i.buttons.Keys() {
		s, _ := i.buttons.Get(button)
		if !s.hasPending {
			continue
		}
		s.hasPending = false
		edges = append(edges, Edge{Button: button, Pressed: s.pendingLevel})
	}
	return edges
}

func (i *inputBuffer) Held(button Button) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.heldLocked(i.resolve(button))
}

// seedCursor primes the pointer position so the first motion delta after a
// button press is measured from the press location.
func (i *inputBuffer) seedCursor(x, y int32) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.lastX, i.lastY = x, y
	i.hasLast = true
}

// resolve maps a physical button through the alias table.
func (i *inputBuffer) resolve(button Button) Button {
	if target, ok := i.aliases[button]; ok {
		return target
	}
	return button
}

// state returns the tracked state for a button, creating it on first use.
// Caller must hold the mutex.
func (i *inputBuffer) state(button Button) *buttonState {
	if s, ok := i.buttons.Get(button); ok {
		return s
	}
	s := &buttonState{}
	i.buttons.Set(button, s)
	return s
}

// heldLocked reports a button's live level. Caller must hold the mutex.
func (i *inputBuffer) heldLocked(button Button) bool {
	s, ok := i.buttons.Get(button)
	return ok && s.held
}
