package profiler

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// StartViewer serves live runtime charts (goroutines, heap, GC) over HTTP at
// the given address. The viewer runs on its own goroutine until the process
// exits; the returned manager can stop it early.
//
// Parameters:
//   - addr: listen address, for example "localhost:8080"
//
// Returns:
//   - *statsview.ViewManager: the running view manager
func StartViewer(addr string) *statsview.ViewManager {
	// set configurations before calling `statsview.New()` method
	viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(addr))

	mgr := statsview.New()
	go mgr.Start()
	return mgr
}
