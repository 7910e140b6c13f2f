package rig

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// scriptedInput hands back whatever the test staged, once.
type scriptedInput struct {
	look    mgl32.Vec2
	pan     mgl32.Vec2
	scrolls []float32
	edges   []input.Edge
}

func (s *scriptedInput) TakeLookDelta() mgl32.Vec2 {
	v := s.look
	s.look = mgl32.Vec2{}
	return v
}

func (s *scriptedInput) TakePanDelta() mgl32.Vec2 {
	v := s.pan
	s.pan = mgl32.Vec2{}
	return v
}

func (s *scriptedInput) TakeScrollDeltas() []float32 {
	v := s.scrolls
	s.scrolls = nil
	return v
}

func (s *scriptedInput) TakeButtonEdges() []input.Edge {
	v := s.edges
	s.edges = nil
	return v
}

type fixedTarget struct {
	pos mgl32.Vec3
}

func (f *fixedTarget) Position() mgl32.Vec3 {
	return f.pos
}

func approxVec3(t *testing.T, got, want mgl32.Vec3, context string) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if !common.ApproxEq(got[i], want[i]) {
			t.Fatalf("%s: expected %v, got %v", context, want, got)
		}
	}
}

func TestRigDisabledWithoutCollaborators(t *testing.T) {
	cases := []struct {
		name    string
		options []RigOption
	}{
		{"no_collaborators", nil},
		{"input_only", []RigOption{WithInput(&scriptedInput{})}},
		{"target_only", []RigOption{WithTarget(&fixedTarget{})}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRig(nil, c.options...)
			if !r.Disabled() {
				t.Fatalf("expected rig disabled")
			}

			r.FixedUpdate(0.016)
			r.FrameUpdate(0.016)
			if r.Pose() != (Pose{}) {
				t.Fatalf("expected zero pose from disabled rig, got %+v", r.Pose())
			}
		})
	}
}

func TestRigComposesDefaultPose(t *testing.T) {
	src := &scriptedInput{}
	tgt := &fixedTarget{pos: mgl32.Vec3{10, 2, -3}}

	r := NewRig(nil, WithInput(src), WithTarget(tgt))
	if r.Disabled() {
		t.Fatalf("expected enabled rig")
	}

	// Pivot is the anchor raised by the pivot height; the camera hangs off
	// the local +Z boom at yaw zero.
	wantCenter := mgl32.Vec3{10, 3.5, -3}
	wantEye := mgl32.Vec3{10, 3.5, 5}

	approxVec3(t, r.Center(), wantCenter, "center after construction")
	approxVec3(t, r.Eye(), wantEye, "eye after construction")
	if r.Pose().Yaw != 0 {
		t.Fatalf("expected zero yaw, got %v", r.Pose().Yaw)
	}

	// The pose tracks the anchor.
	tgt.pos = mgl32.Vec3{11, 2, -3}
	r.FixedUpdate(0.016)
	approxVec3(t, r.Eye(), mgl32.Vec3{11, 3.5, 5}, "eye after target moved")
}

func TestRigComposesWithYaw(t *testing.T) {
	src := &scriptedInput{}
	tgt := &fixedTarget{}

	r := NewRig(nil,
		WithInput(src),
		WithTarget(tgt),
		WithRotationController(NewRotationController(nil, WithInitialYaw(90))),
	)

	// At yaw 90 the +Z boom rotates onto +X.
	approxVec3(t, r.Eye(), mgl32.Vec3{8, 1.5, 0}, "eye at yaw 90")
	approxVec3(t, r.Center(), mgl32.Vec3{0, 1.5, 0}, "center at yaw 90")

	m := r.Pose().Matrix()
	if !common.ApproxEq(m[12], 8) || !common.ApproxEq(m[13], 1.5) || !common.ApproxEq(m[14], 0) {
		t.Fatalf("expected matrix translation to match the eye, got (%v,%v,%v)", m[12], m[13], m[14])
	}
}

func TestRigPanOffsetsPivot(t *testing.T) {
	src := &scriptedInput{}
	tgt := &fixedTarget{}

	pan := NewPanController(nil,
		WithFreeLookSource(&stubFreeLook{}),
		WithInitialPanOffset(mgl32.Vec2{2, 3}),
	)
	r := NewRig(nil, WithInput(src), WithTarget(tgt), WithPanController(pan))

	// The XZ pan offset shifts pivot and eye together.
	approxVec3(t, r.Center(), mgl32.Vec3{2, 1.5, 3}, "panned center")
	approxVec3(t, r.Eye(), mgl32.Vec3{2, 1.5, 11}, "panned eye")
}

func TestRigEdgesApplyBeforePan(t *testing.T) {
	src := &scriptedInput{}
	tgt := &fixedTarget{}
	r := NewRig(nil, WithInput(src), WithTarget(tgt))

	// Establish a pan offset first.
	src.pan = mgl32.Vec2{100, 0}
	r.FixedUpdate(0.016)
	if r.Pan().TargetOffset() == (mgl32.Vec2{}) {
		t.Fatalf("expected pan offset before free-look")
	}

	// A press edge and pan input arriving in the same tick: the edge is
	// consumed first, so the pan controller sees free-look and discards the
	// input instead of racing it.
	src.edges = []input.Edge{{Button: input.ButtonFreeLook, Pressed: true}}
	src.pan = mgl32.Vec2{100, 0}
	r.FixedUpdate(0.016)

	if !r.Rotation().IsFreeLooking() {
		t.Fatalf("expected free-look after press edge")
	}
	if r.Pan().TargetOffset() != (mgl32.Vec2{}) {
		t.Fatalf("expected pan target forced to zero, got %v", r.Pan().TargetOffset())
	}
}

func TestRigIgnoresOtherButtonEdges(t *testing.T) {
	src := &scriptedInput{}
	tgt := &fixedTarget{}
	r := NewRig(nil, WithInput(src), WithTarget(tgt))

	src.edges = []input.Edge{
		{Button: input.ButtonPan, Pressed: true},
		{Button: input.KeyButton(87), Pressed: true},
	}
	r.FixedUpdate(0.016)

	if r.Rotation().IsFreeLooking() {
		t.Fatalf("expected only the free-look button to drive rotation mode")
	}
}

func TestRigLookConsumedAtFrameCadence(t *testing.T) {
	src := &scriptedInput{}
	tgt := &fixedTarget{}
	r := NewRig(nil, WithInput(src), WithTarget(tgt))

	src.edges = []input.Edge{{Button: input.ButtonFreeLook, Pressed: true}}
	r.FixedUpdate(0.016)

	// Look input waits for the frame loop; the fixed tick must not consume it.
	src.look = mgl32.Vec2{10, 0}
	r.FixedUpdate(0.016)
	if src.look == (mgl32.Vec2{}) {
		t.Fatalf("expected look delta untouched by the fixed tick")
	}
	if r.Rotation().TargetAngle() != 0 {
		t.Fatalf("expected no rotation from the fixed tick, got %v", r.Rotation().TargetAngle())
	}

	r.FrameUpdate(0.016)
	if src.look != (mgl32.Vec2{}) {
		t.Fatalf("expected look delta consumed by the frame update")
	}
	want := float32(10) * r.Rotation().Sensitivity() * 0.016
	if !common.ApproxEq(r.Rotation().TargetAngle(), want) {
		t.Fatalf("expected target angle %v, got %v", want, r.Rotation().TargetAngle())
	}
}

func TestRigRoutesScrollsToZoom(t *testing.T) {
	src := &scriptedInput{}
	tgt := &fixedTarget{}
	r := NewRig(nil, WithInput(src), WithTarget(tgt))

	if !common.ApproxEq(r.Zoom().TargetDistance(), 8) {
		t.Fatalf("expected zoom seeded from the default boom length, got %v", r.Zoom().TargetDistance())
	}

	src.scrolls = []float32{1, 1}
	r.FixedUpdate(0.016)

	if !common.ApproxEq(r.Zoom().TargetDistance(), 6) {
		t.Fatalf("expected two steps in to 6, got %v", r.Zoom().TargetDistance())
	}
}

func TestRigRestingPoseIsStable(t *testing.T) {
	src := &scriptedInput{}
	tgt := &fixedTarget{pos: mgl32.Vec3{1, 0, 2}}
	r := NewRig(nil, WithInput(src), WithTarget(tgt))

	before := r.Pose()
	for i := 0; i < 10; i++ {
		r.FixedUpdate(0.016)
		r.FrameUpdate(0.016)
	}
	if r.Pose() != before {
		t.Fatalf("expected resting pose unchanged, got %+v then %+v", before, r.Pose())
	}
}

func TestRigObserverReceivesSamples(t *testing.T) {
	src := &scriptedInput{}
	tgt := &fixedTarget{pos: mgl32.Vec3{5, 0, 0}}

	var samples []Sample
	var r Rig
	r = NewRig(nil,
		WithInput(src),
		WithTarget(tgt),
		WithObserver(func(s Sample) {
			// Reading the rig back from the observer must not deadlock.
			_ = r.Pose()
			samples = append(samples, s)
		}),
	)

	r.FixedUpdate(0.016)
	r.FixedUpdate(0.016)

	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].Tick != 1 || samples[1].Tick != 2 {
		t.Fatalf("expected ticks 1 and 2, got %d and %d", samples[0].Tick, samples[1].Tick)
	}
	if samples[0].FreeLook {
		t.Fatalf("expected snapped mode in sample")
	}
	if !common.ApproxEq(samples[0].ZoomDistance, 8) {
		t.Fatalf("expected zoom distance 8 in sample, got %v", samples[0].ZoomDistance)
	}
	approxVec3(t, samples[0].Position, mgl32.Vec3{5, 1.5, 8}, "sample position")
}
