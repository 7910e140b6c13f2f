package target

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

func TestStaticTargetHoldsPosition(t *testing.T) {
	s := NewStaticTarget(mgl32.Vec3{1, 2, 3})
	if s.Position() != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("expected {1 2 3}, got %v", s.Position())
	}
}

func TestObjectDefaults(t *testing.T) {
	o := NewObject()
	if !o.Enabled() {
		t.Fatalf("expected object enabled by default")
	}
	if o.Position() != (mgl32.Vec3{}) || o.Velocity() != (mgl32.Vec3{}) {
		t.Fatalf("expected zero position and velocity, got %v %v", o.Position(), o.Velocity())
	}

	other := NewObject()
	if o.ID() == other.ID() {
		t.Fatalf("expected distinct generated IDs, got %d twice", o.ID())
	}

	custom := NewObject(WithID(42))
	if custom.ID() != 42 {
		t.Fatalf("expected ID 42, got %d", custom.ID())
	}
}

func TestObjectAdvance(t *testing.T) {
	cases := []struct {
		name    string
		enabled bool
		dt      float32
		want    mgl32.Vec3
	}{
		{"integrates_velocity", true, 0.25, mgl32.Vec3{1.5, 1, 4.5}},
		{"disabled_holds_position", false, 0.25, mgl32.Vec3{1, 2, 3}},
		{"zero_dt_holds_position", true, 0, mgl32.Vec3{1, 2, 3}},
		{"negative_dt_holds_position", true, -0.25, mgl32.Vec3{1, 2, 3}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := NewObject(
				WithPosition(mgl32.Vec3{1, 2, 3}),
				WithVelocity(mgl32.Vec3{2, -4, 6}),
			)
			o.SetEnabled(c.enabled)

			o.Advance(c.dt)
			if o.Position() != c.want {
				t.Fatalf("expected %v, got %v", c.want, o.Position())
			}
		})
	}
}

func TestObjectSetters(t *testing.T) {
	o := NewObject()

	o.SetPosition(mgl32.Vec3{5, 0, -5})
	o.SetVelocity(mgl32.Vec3{0, 0, 4})
	o.Advance(0.5)

	if o.Position() != (mgl32.Vec3{5, 0, -3}) {
		t.Fatalf("expected {5 0 -3}, got %v", o.Position())
	}

	o.SetEnabled(false)
	o.Advance(0.5)
	if o.Position() != (mgl32.Vec3{5, 0, -3}) {
		t.Fatalf("expected position held while disabled, got %v", o.Position())
	}
}

func TestBodyTargetMapsPhysicsPlane(t *testing.T) {
	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(cp.Vector{X: 3, Y: -2})

	b := NewBodyTarget(body, WithElevation(0.5))

	// Physics (X, Y) lands on world (X, Z) at the configured elevation.
	if b.Position() != (mgl32.Vec3{3, 0.5, -2}) {
		t.Fatalf("expected {3 0.5 -2}, got %v", b.Position())
	}
	if b.Underlying() != body {
		t.Fatalf("expected wrapped body returned")
	}
	if b.Elevation() != 0.5 {
		t.Fatalf("expected elevation 0.5, got %v", b.Elevation())
	}
}

func TestBodyTargetFollowsSteppedBody(t *testing.T) {
	space := cp.NewSpace()
	body := cp.NewBody(1, cp.INFINITY)
	space.AddBody(body)
	body.SetVelocity(2, 0)

	b := NewBodyTarget(body, WithElevation(1))

	space.Step(0.5)
	if b.Position() != (mgl32.Vec3{1, 1, 0}) {
		t.Fatalf("expected {1 1 0} after step, got %v", b.Position())
	}
}

func TestBodyTargetNilBody(t *testing.T) {
	b := NewBodyTarget(nil, WithElevation(2))

	if b.Position() != (mgl32.Vec3{0, 2, 0}) {
		t.Fatalf("expected origin at elevation, got %v", b.Position())
	}
	if b.Underlying() != nil {
		t.Fatalf("expected nil underlying body")
	}
}
