package engine

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/Carmen-Shannon/oxy-rig/engine/window"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// engine implements the Engine interface.
// Coordinates the fixed-step, frame, and window threads.
type engine struct {
	mu  *sync.Mutex
	log *logrus.Logger

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	rig    rig.Rig
	camera camera.Camera

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration

	// Handlers run in registration order within their cadence.
	fixedHandlers *orderedmap.OrderedMap[string, func(deltaTime float32)]
	frameHandlers *orderedmap.OrderedMap[string, func(deltaTime float32)]

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	sentryDSN string
	statsAddr string
}

// Engine is the main entry point for the rig runtime.
// It orchestrates the fixed-step loop, the frame loop, and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil for headless engines
	Window() window.Window

	// Rig returns the camera rig wired into the engine.
	//
	// Returns:
	//   - rig.Rig: the rig instance, or nil if none was configured
	Rig() rig.Rig

	// Camera returns the camera wired into the engine.
	//
	// Returns:
	//   - camera.Camera: the camera instance, or nil if none was configured
	Camera() camera.Camera

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the fixed-step tick rate in ticks per second.
	// Fixed handlers are called at this rate for input draining and rig state updates.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetRenderFrameLimit sets an optional frame loop rate cap in frames per second.
	// Pass 0 to uncap the frame loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// RegisterFixedHandler registers a handler called each fixed-step tick.
	// Handlers run in registration order; registering an existing name replaces
	// the handler but keeps its position.
	//
	// Parameters:
	//   - name: unique name identifying the handler
	//   - handler: function to call each tick, receiving the delta time in seconds
	RegisterFixedHandler(name string, handler func(deltaTime float32))

	// RemoveFixedHandler removes the fixed-step handler with the given name.
	//
	// Parameters:
	//   - name: the name of the handler to remove
	RemoveFixedHandler(name string)

	// RegisterFrameHandler registers a handler called each frame.
	// Handlers run in registration order; registering an existing name replaces
	// the handler but keeps its position.
	//
	// Parameters:
	//   - name: unique name identifying the handler
	//   - handler: function to call each frame, receiving the delta time in seconds
	RegisterFrameHandler(name string, handler func(deltaTime float32))

	// RemoveFrameHandler removes the frame handler with the given name.
	//
	// Parameters:
	//   - name: the name of the handler to remove
	RemoveFrameHandler(name string)

	// FixedHandlerNames returns the names of the fixed-step handlers in the
	// order they run.
	//
	// Returns:
	//   - []string: handler names in invocation order
	FixedHandlerNames() []string

	// FrameHandlerNames returns the names of the frame handlers in the order
	// they run.
	//
	// Returns:
	//   - []string: handler names in invocation order
	FrameHandlerNames() []string

	// Run starts the engine loops and blocks until the window closes or Quit
	// is called. Engines without a window block until Quit.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// A configured rig is registered under the "rig" handler name at both
// cadences, and a configured camera under "camera" on the frame loop after
// the rig, so each frame renders the pose produced that frame.
//
// Parameters:
//   - options: functional options for engine configuration (rig, camera, window, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.Mutex{},
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		fixedHandlers:    orderedmap.NewOrderedMap[string, func(deltaTime float32)](),
		frameHandlers:    orderedmap.NewOrderedMap[string, func(deltaTime float32)](),
		running:          false,
		wg:               sync.WaitGroup{},
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.log == nil {
		e.log = logrus.StandardLogger()
	}
	e.profiler = profiler.NewProfiler(e.log)

	if e.sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: e.sentryDSN}); err != nil {
			e.log.Warnf("[Engine] sentry init failed: %v", err)
		}
	}

	if e.rig != nil {
		e.fixedHandlers.Set("rig", e.rig.FixedUpdate)
		e.frameHandlers.Set("rig", e.rig.FrameUpdate)
	}
	if e.camera != nil {
		if e.rig != nil && e.camera.Source() == nil {
			e.camera.SetSource(e.rig)
		}
		e.frameHandlers.Set("camera", func(float32) { e.camera.Update() })
	}

	if e.window != nil && e.camera != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if height > 0 {
				e.camera.SetAspect(float32(width) / float32(height))
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Rig() rig.Rig {
	return e.rig
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Run() {
	if e.statsAddr != "" {
		profiler.StartViewer(e.statsAddr)
	}

	e.running = true
	e.handle()

	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}

	<-e.quitChannel
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handle launches the fixed-step, frame, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleFixed()
	go e.handleFrame()
	go e.handleQuit()
}

// handleFixed runs the fixed-rate tick loop in its own goroutine.
// Fires the fixed handlers at the configured tick rate and listens for dynamic
// rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleFixed() {
	defer e.wg.Done()
	defer func() {
		if err := recover(); err != nil {
			e.log.Errorf("[Engine] fixed loop panic: %v", err)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("loop", "fixed")
			})
			hub.Recover(err)
			hub.Flush(time.Second * 5)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			for _, handler := range e.snapshotHandlers(e.fixedHandlers) {
				handler(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleFrame runs the uncapped (or frame-limited) frame loop in its own goroutine.
// Fires the frame handlers in registration order, then the profiler.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleFrame() {
	defer e.wg.Done()
	defer func() {
		if err := recover(); err != nil {
			e.log.Errorf("[Engine] frame loop panic: %v", err)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("loop", "frame")
			})
			hub.Recover(err)
			hub.Flush(time.Second * 5)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			for _, handler := range e.snapshotHandlers(e.frameHandlers) {
				handler(dt)
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// snapshotHandlers copies a handler registry into an invocation-order slice.
// Handlers run outside the lock so they may register or remove handlers.
func (e *engine) snapshotHandlers(registry *orderedmap.OrderedMap[string, func(deltaTime float32)]) []func(float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	handlers := make([]func(float32), 0, registry.Len())
	for _, name := range registry.Keys() {
		if handler, ok := registry.Get(name); ok {
			handlers = append(handlers, handler)
		}
	}
	return handlers
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the fixed-step tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Second / time.Duration(fps)

	if e.running {
		// Send to channel for immediate update in running fixed loop
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			// Channel has a pending update, drain and send new value
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		// Engine not running, just update the field
		e.engineTickRate = newRate
	}
}

// SetRenderFrameLimit sets an optional frame loop rate cap.
// Pass 0 to uncap the frame loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}

func (e *engine) RegisterFixedHandler(name string, handler func(deltaTime float32)) {
	if handler == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fixedHandlers.Set(name, handler)
}

func (e *engine) RemoveFixedHandler(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fixedHandlers.Delete(name)
}

func (e *engine) RegisterFrameHandler(name string, handler func(deltaTime float32)) {
	if handler == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameHandlers.Set(name, handler)
}

func (e *engine) RemoveFrameHandler(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameHandlers.Delete(name)
}

func (e *engine) FixedHandlerNames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.fixedHandlers.Keys()...)
}

func (e *engine) FrameHandlerNames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.frameHandlers.Keys()...)
}
