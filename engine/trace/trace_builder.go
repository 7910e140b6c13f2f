package trace

import "github.com/sirupsen/logrus"

// RecorderBuilderOption is a functional option for configuring a Recorder.
type RecorderBuilderOption func(*recorderImpl)

// WithRecorderLogger sets the logger failure diagnostics are written to.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - RecorderBuilderOption: functional option to set the logger
func WithRecorderLogger(log *logrus.Logger) RecorderBuilderOption {
	return func(r *recorderImpl) {
		if log != nil {
			r.log = log
		}
	}
}

// WithQueueSize sets the background task queue capacity.
//
// Parameters:
//   - size: number of observations that may be pending at once
//
// Returns:
//   - RecorderBuilderOption: functional option to set the queue size
func WithQueueSize(size int) RecorderBuilderOption {
	return func(r *recorderImpl) {
		if size > 0 {
			r.queueSize = size
		}
	}
}
