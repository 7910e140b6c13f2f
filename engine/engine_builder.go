package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/Carmen-Shannon/oxy-rig/engine/window"
	"github.com/sirupsen/logrus"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithLogger sets the logger used by the engine and its profiler.
//
// Parameters:
//   - log: the logger instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(log *logrus.Logger) EngineBuilderOption {
	return func(e *engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the fixed-step tick rate in ticks per second.
// Fixed handlers will be called at this rate for input draining and rig updates.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to run headless. The window's resize callback is wired to the camera's aspect ratio when both
// are configured.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRig wires a camera rig into the engine. The rig's fixed and frame
// updates are registered under the "rig" handler name at construction.
//
// Parameters:
//   - r: a pre-configured Rig instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRig(r rig.Rig) EngineBuilderOption {
	return func(e *engine) {
		e.rig = r
	}
}

// WithCamera wires a camera into the engine. The camera's update is
// registered under the "camera" handler name on the frame loop, after the
// rig when both are configured.
//
// Parameters:
//   - c: a pre-configured Camera instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithRenderFrameLimit sets an optional frame loop rate cap in frames per second.
// Pass 0 to uncap the frame loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}

// WithSentryDSN enables crash reporting for the engine loops. Panics in the
// fixed and frame goroutines are captured and flushed before shutdown.
//
// Parameters:
//   - dsn: the project DSN; an empty string leaves reporting disabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSentryDSN(dsn string) EngineBuilderOption {
	return func(e *engine) {
		e.sentryDSN = dsn
	}
}

// WithStatsViewer serves live runtime charts over HTTP while the engine runs.
//
// Parameters:
//   - addr: the listen address, e.g. "localhost:18066"
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithStatsViewer(addr string) EngineBuilderOption {
	return func(e *engine) {
		e.statsAddr = addr
	}
}
