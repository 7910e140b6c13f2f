package profile

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/rig"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// RigProfile is a named tuning preset for the camera rig, loaded from YAML.
// Every field is optional: absent values leave the construction defaults in
// place. Profiles configure construction only; a changed file takes effect by
// rebuilding the rig, not by mutating a live one.
type RigProfile struct {
	Look   LookProfile   `yaml:"look"`
	Pan    PanProfile    `yaml:"pan"`
	Zoom   ZoomProfile   `yaml:"zoom"`
	Rig    PlacementSpec `yaml:"rig"`
	Camera CameraProfile `yaml:"camera"`
}

// LookProfile tunes the rotation controller.
type LookProfile struct {
	Sensitivity   *float32 `yaml:"sensitivity"`
	SmoothTime    *float32 `yaml:"smooth_time"`
	SnapIncrement *float32 `yaml:"snap_increment"`
	InitialYaw    *float32 `yaml:"initial_yaw"`
}

// PanProfile tunes the pan controller.
type PanProfile struct {
	Sensitivity       *float32 `yaml:"sensitivity"`
	ReturnSmoothTime  *float32 `yaml:"return_smooth_time"`
	MaxOffset         *float32 `yaml:"max_offset"`
	ActivityThreshold *float32 `yaml:"activity_threshold"`
}

// ZoomProfile tunes the zoom controller.
type ZoomProfile struct {
	MinDistance *float32 `yaml:"min_distance"`
	MaxDistance *float32 `yaml:"max_distance"`
	Step        *float32 `yaml:"step"`
	SmoothTime  *float32 `yaml:"smooth_time"`
}

// PlacementSpec tunes the rig's composition geometry.
type PlacementSpec struct {
	PivotHeight  *float32    `yaml:"pivot_height"`
	CameraOffset *[3]float32 `yaml:"camera_offset"`
}

// CameraProfile tunes the camera's perspective settings.
type CameraProfile struct {
	FovDegrees *float32 `yaml:"fov_degrees"`
	Near       *float32 `yaml:"near"`
	Far        *float32 `yaml:"far"`
}

// LoadProfile reads and parses a rig profile from a YAML file.
//
// Parameters:
//   - filename: path to the profile file
//
// Returns:
//   - RigProfile: the parsed profile
//   - error: error if the file cannot be read or parsed
func LoadProfile(filename string) (RigProfile, error) {
	var zero RigProfile
	data, err := os.ReadFile(filename)
	if err != nil {
		return zero, fmt.Errorf("profile: load %s: %w", filename, err)
	}

	var p RigProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return zero, fmt.Errorf("profile: unmarshal %s: %w", filename, err)
	}

	return p, nil
}

// RotationOptions converts the look section into rotation controller options,
// emitting one option per present field.
//
// Returns:
//   - []rig.RotationControllerOption: options for the set fields
func (p RigProfile) RotationOptions() []rig.RotationControllerOption {
	var opts []rig.RotationControllerOption
	if p.Look.Sensitivity != nil {
		opts = append(opts, rig.WithLookSensitivity(*p.Look.Sensitivity))
	}
	if p.Look.SmoothTime != nil {
		opts = append(opts, rig.WithRotationSmoothTime(*p.Look.SmoothTime))
	}
	if p.Look.SnapIncrement != nil {
		opts = append(opts, rig.WithSnapIncrement(*p.Look.SnapIncrement))
	}
	if p.Look.InitialYaw != nil {
		opts = append(opts, rig.WithInitialYaw(*p.Look.InitialYaw))
	}
	return opts
}

// PanOptions converts the pan section into pan controller options. The
// free-look source is wiring, not tuning, so callers still supply it.
//
// Returns:
//   - []rig.PanControllerOption: options for the set fields
func (p RigProfile) PanOptions() []rig.PanControllerOption {
	var opts []rig.PanControllerOption
	if p.Pan.Sensitivity != nil {
		opts = append(opts, rig.WithPanSensitivity(*p.Pan.Sensitivity))
	}
	if p.Pan.ReturnSmoothTime != nil {
		opts = append(opts, rig.WithReturnSmoothTime(*p.Pan.ReturnSmoothTime))
	}
	if p.Pan.MaxOffset != nil {
		opts = append(opts, rig.WithMaxPanOffset(*p.Pan.MaxOffset))
	}
	if p.Pan.ActivityThreshold != nil {
		opts = append(opts, rig.WithPanActivityThreshold(*p.Pan.ActivityThreshold))
	}
	return opts
}

// ZoomOptions converts the zoom section into zoom controller options. Bounds
// are emitted together so a profile setting only one keeps the default for
// the other.
//
// Returns:
//   - []rig.ZoomControllerOption: options for the set fields
func (p RigProfile) ZoomOptions() []rig.ZoomControllerOption {
	var opts []rig.ZoomControllerOption
	if p.Zoom.MinDistance != nil || p.Zoom.MaxDistance != nil {
		min := float32(2.0)
		max := float32(15.0)
		if p.Zoom.MinDistance != nil {
			min = *p.Zoom.MinDistance
		}
		if p.Zoom.MaxDistance != nil {
			max = *p.Zoom.MaxDistance
		}
		opts = append(opts, rig.WithZoomBounds(min, max))
	}
	if p.Zoom.Step != nil {
		opts = append(opts, rig.WithZoomStep(*p.Zoom.Step))
	}
	if p.Zoom.SmoothTime != nil {
		opts = append(opts, rig.WithZoomSmoothTime(*p.Zoom.SmoothTime))
	}
	return opts
}

// RigOptions converts the rig placement section into rig options.
//
// Returns:
//   - []rig.RigOption: options for the set fields
func (p RigProfile) RigOptions() []rig.RigOption {
	var opts []rig.RigOption
	if p.Rig.PivotHeight != nil {
		opts = append(opts, rig.WithPivotHeight(*p.Rig.PivotHeight))
	}
	if p.Rig.CameraOffset != nil {
		o := *p.Rig.CameraOffset
		opts = append(opts, rig.WithCameraLocalOffset(mgl32.Vec3{o[0], o[1], o[2]}))
	}
	return opts
}

// CameraOptions converts the camera section into camera options. The profile
// carries the field of view in degrees; the camera takes radians.
//
// Returns:
//   - []camera.CameraBuilderOption: options for the set fields
func (p RigProfile) CameraOptions() []camera.CameraBuilderOption {
	var opts []camera.CameraBuilderOption
	if p.Camera.FovDegrees != nil {
		opts = append(opts, camera.WithFov(mgl32.DegToRad(*p.Camera.FovDegrees)))
	}
	if p.Camera.Near != nil {
		opts = append(opts, camera.WithNear(*p.Camera.Near))
	}
	if p.Camera.Far != nil {
		opts = append(opts, camera.WithFar(*p.Camera.Far))
	}
	return opts
}
