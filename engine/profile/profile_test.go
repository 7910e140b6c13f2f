package profile

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
)

func f32(v float32) *float32 {
	return &v
}

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("expected profile written, got %v", err)
	}
	return path
}

func requireFloat(t *testing.T, got *float32, want float32, field string) {
	t.Helper()
	if got == nil {
		t.Fatalf("expected %s present", field)
	}
	if *got != want {
		t.Fatalf("expected %s %v, got %v", field, want, *got)
	}
}

func TestLoadProfileAllFields(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "full.yaml", `
look:
  sensitivity: 3.0
  smooth_time: 0.25
  snap_increment: 90
  initial_yaw: 45
pan:
  sensitivity: 2.5
  return_smooth_time: 0.5
  max_offset: 6
  activity_threshold: 0.5
zoom:
  min_distance: 1
  max_distance: 30
  step: 2
  smooth_time: 0.25
rig:
  pivot_height: 2
  camera_offset: [0, 4, 10]
camera:
  fov_degrees: 60
  near: 0.5
  far: 200
`)

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("expected profile loaded, got %v", err)
	}

	requireFloat(t, p.Look.Sensitivity, 3, "look sensitivity")
	requireFloat(t, p.Look.SmoothTime, 0.25, "look smooth time")
	requireFloat(t, p.Look.SnapIncrement, 90, "look snap increment")
	requireFloat(t, p.Look.InitialYaw, 45, "look initial yaw")

	requireFloat(t, p.Pan.Sensitivity, 2.5, "pan sensitivity")
	requireFloat(t, p.Pan.ReturnSmoothTime, 0.5, "pan return smooth time")
	requireFloat(t, p.Pan.MaxOffset, 6, "pan max offset")
	requireFloat(t, p.Pan.ActivityThreshold, 0.5, "pan activity threshold")

	requireFloat(t, p.Zoom.MinDistance, 1, "zoom min distance")
	requireFloat(t, p.Zoom.MaxDistance, 30, "zoom max distance")
	requireFloat(t, p.Zoom.Step, 2, "zoom step")
	requireFloat(t, p.Zoom.SmoothTime, 0.25, "zoom smooth time")

	requireFloat(t, p.Rig.PivotHeight, 2, "rig pivot height")
	if p.Rig.CameraOffset == nil || *p.Rig.CameraOffset != [3]float32{0, 4, 10} {
		t.Fatalf("expected camera offset [0 4 10], got %v", p.Rig.CameraOffset)
	}

	requireFloat(t, p.Camera.FovDegrees, 60, "camera fov")
	requireFloat(t, p.Camera.Near, 0.5, "camera near")
	requireFloat(t, p.Camera.Far, 200, "camera far")
}

func TestLoadProfilePartial(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "partial.yaml", "look:\n  sensitivity: 4\n")

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("expected profile loaded, got %v", err)
	}

	requireFloat(t, p.Look.Sensitivity, 4, "look sensitivity")
	if p.Look.SmoothTime != nil || p.Pan.Sensitivity != nil || p.Zoom.Step != nil {
		t.Fatalf("expected absent fields to stay nil")
	}
	if p.Rig.CameraOffset != nil || p.Camera.FovDegrees != nil {
		t.Fatalf("expected absent sections to stay nil")
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
	if !strings.Contains(err.Error(), "profile: load") {
		t.Fatalf("expected load context in error, got %v", err)
	}
}

func TestLoadProfileBadYAML(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "broken.yaml", "look: [unclosed\n")

	_, err := LoadProfile(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "profile: unmarshal") {
		t.Fatalf("expected unmarshal context in error, got %v", err)
	}
}

func TestProfileOptionsConfigureControllers(t *testing.T) {
	p := RigProfile{
		Look: LookProfile{
			Sensitivity:   f32(3),
			SmoothTime:    f32(0.3),
			SnapIncrement: f32(90),
			InitialYaw:    f32(45),
		},
		Pan: PanProfile{
			Sensitivity:       f32(2.5),
			ReturnSmoothTime:  f32(0.5),
			MaxOffset:         f32(6),
			ActivityThreshold: f32(0.5),
		},
		Zoom: ZoomProfile{
			MinDistance: f32(1),
			MaxDistance: f32(30),
			Step:        f32(2),
			SmoothTime:  f32(0.25),
		},
	}

	rc := rig.NewRotationController(nil, p.RotationOptions()...)
	if rc.Sensitivity() != 3 || rc.SmoothTime() != 0.3 || rc.SnapIncrement() != 90 {
		t.Fatalf("expected rotation tuning applied, got %v/%v/%v",
			rc.Sensitivity(), rc.SmoothTime(), rc.SnapIncrement())
	}
	if rc.CurrentAngle() != 45 {
		t.Fatalf("expected initial yaw 45, got %v", rc.CurrentAngle())
	}

	panOpts := append([]rig.PanControllerOption{rig.WithFreeLookSource(rc)}, p.PanOptions()...)
	pc := rig.NewPanController(nil, panOpts...)
	if pc.Sensitivity() != 2.5 || pc.ReturnSmoothTime() != 0.5 {
		t.Fatalf("expected pan tuning applied, got %v/%v", pc.Sensitivity(), pc.ReturnSmoothTime())
	}
	if pc.MaxOffset() != 6 || pc.ActivityThreshold() != 0.5 {
		t.Fatalf("expected pan limits applied, got %v/%v", pc.MaxOffset(), pc.ActivityThreshold())
	}

	zc := rig.NewZoomController(nil, p.ZoomOptions()...)
	if zc.MinDistance() != 1 || zc.MaxDistance() != 30 {
		t.Fatalf("expected zoom bounds [1, 30], got [%v, %v]", zc.MinDistance(), zc.MaxDistance())
	}
	if zc.StepSensitivity() != 2 || zc.SmoothTime() != 0.25 {
		t.Fatalf("expected zoom tuning applied, got %v/%v", zc.StepSensitivity(), zc.SmoothTime())
	}
}

func TestZoomBoundsEmittedTogether(t *testing.T) {
	cases := []struct {
		name    string
		min     *float32
		max     *float32
		wantMin float32
		wantMax float32
	}{
		{"min_only_keeps_default_max", f32(5), nil, 5, 15},
		{"max_only_keeps_default_min", nil, f32(10), 2, 10},
		{"both_applied", f32(1), f32(30), 1, 30},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := RigProfile{Zoom: ZoomProfile{MinDistance: c.min, MaxDistance: c.max}}
			zc := rig.NewZoomController(nil, p.ZoomOptions()...)
			if zc.MinDistance() != c.wantMin || zc.MaxDistance() != c.wantMax {
				t.Fatalf("expected bounds [%v, %v], got [%v, %v]",
					c.wantMin, c.wantMax, zc.MinDistance(), zc.MaxDistance())
			}
		})
	}
}

func TestCameraOptionsConvertDegrees(t *testing.T) {
	p := RigProfile{Camera: CameraProfile{FovDegrees: f32(90)}}
	cam := camera.NewCamera(p.CameraOptions()...)

	if math.Abs(float64(cam.Fov())-math.Pi/2) > 1e-5 {
		t.Fatalf("expected 90 degrees in radians, got %v", cam.Fov())
	}
}

func TestEmptyProfileEmitsNoOptions(t *testing.T) {
	var p RigProfile
	if opts := p.RotationOptions(); opts != nil {
		t.Fatalf("expected no rotation options, got %d", len(opts))
	}
	if opts := p.PanOptions(); opts != nil {
		t.Fatalf("expected no pan options, got %d", len(opts))
	}
	if opts := p.ZoomOptions(); opts != nil {
		t.Fatalf("expected no zoom options, got %d", len(opts))
	}
	if opts := p.RigOptions(); opts != nil {
		t.Fatalf("expected no rig options, got %d", len(opts))
	}
	if opts := p.CameraOptions(); opts != nil {
		t.Fatalf("expected no camera options, got %d", len(opts))
	}
}

func TestWatcherReportsProfileChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("expected watcher started, got %v", err)
	}
	defer func() {
		_ = w.Close()
	}()

	// The text file lands first; if it were reported it would arrive ahead of
	// the profile event.
	writeProfile(t, dir, "noise.txt", "not a profile")
	writeProfile(t, dir, "tune.yaml", "look:\n  sensitivity: 3\n")

	select {
	case path, ok := <-w.Events:
		if !ok {
			t.Fatalf("expected an open events channel")
		}
		if filepath.Base(path) != "tune.yaml" {
			t.Fatalf("expected tune.yaml reported first, got %s", path)
		}
	case werr := <-w.Errors:
		t.Fatalf("unexpected watch error: %v", werr)
	case <-time.After(5 * time.Second):
		t.Fatalf("expected a profile change event")
	}
}

func TestWatcherCloseShutsChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("expected watcher started, got %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("expected clean close, got %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("expected idempotent close, got %v", err)
	}

	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatalf("expected events channel closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected events channel to close")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatalf("expected error for a missing directory")
	}
}
