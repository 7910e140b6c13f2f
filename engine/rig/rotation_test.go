package rig

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rig/common"
	"github.com/chewxy/math32"
)

func TestRotationFreeLookAccumulation(t *testing.T) {
	rc := NewRotationController(nil, WithLookSensitivity(2.0))

	rc.OnModifierPressStart()
	if !rc.IsFreeLooking() {
		t.Fatalf("expected free-look after modifier press")
	}

	const dt = float32(0.016)
	var want float32
	for tick := 0; tick < 3; tick++ {
		rc.Update(dt, 10)
		want += 10 * 2.0 * dt
		if !common.ApproxEq(rc.TargetAngle(), want) {
			t.Fatalf("tick %d: expected target %v, got %v", tick, want, rc.TargetAngle())
		}
	}

	if rc.Mode() != FreeLooking {
		t.Fatalf("expected FreeLooking mode, got %v", rc.Mode())
	}
}

func TestRotationCurrentChasesTarget(t *testing.T) {
	rc := NewRotationController(nil, WithLookSensitivity(2.0))

	const dt = float32(1.0 / 60.0)

	rc.OnModifierPressStart()
	prev := rc.CurrentAngle()
	for i := 0; i < 10; i++ {
		rc.Update(dt, 100)
		cur := rc.CurrentAngle()
		if common.AngleDelta(prev, cur) < 0 {
			t.Fatalf("current angle moved away from target at tick %d: %v -> %v", i, prev, cur)
		}
		prev = cur
	}

	target := rc.TargetAngle()
	if target <= rc.CurrentAngle() {
		t.Fatalf("expected current to lag target during input, current %v target %v", rc.CurrentAngle(), target)
	}

	// Well over five time constants of settling at the default smooth time.
	for i := 0; i < 90; i++ {
		rc.Update(dt, 0)
	}
	if math32.Abs(common.AngleDelta(rc.CurrentAngle(), target)) > 0.01*target {
		t.Fatalf("expected current within 1%% of %v, got %v", target, rc.CurrentAngle())
	}
}

func TestRotationSnapOnRelease(t *testing.T) {
	cases := []struct {
		name    string
		raw     float32
		snapped float32
	}{
		{"rounds_down_to_90", 100, 90},
		{"rounds_up_to_180", 170, 180},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rc := NewRotationController(nil, WithLookSensitivity(1.0))

			rc.OnModifierPressStart()
			rc.Update(1, c.raw) // accumulate exactly raw degrees
			rc.OnModifierRelease()

			if rc.IsFreeLooking() {
				t.Fatalf("expected snapped mode after release")
			}

			// Look input after release must not accumulate; the pending snap
			// applies on the next update.
			rc.Update(0.016, 999)
			if !common.ApproxEq(rc.TargetAngle(), c.snapped) {
				t.Fatalf("expected snap to %v, got %v", c.snapped, rc.TargetAngle())
			}

			// The snap is one-shot: further updates leave the target alone.
			rc.Update(0.016, 999)
			if !common.ApproxEq(rc.TargetAngle(), c.snapped) {
				t.Fatalf("expected target to stay %v, got %v", c.snapped, rc.TargetAngle())
			}
		})
	}
}

func TestRotationPressCancelsPendingSnap(t *testing.T) {
	rc := NewRotationController(nil, WithLookSensitivity(1.0))

	rc.OnModifierPressStart()
	rc.Update(1, 100)
	rc.OnModifierRelease()
	rc.OnModifierPressStart() // re-press before the snap applies

	rc.Update(0.016, 0)
	if !common.ApproxEq(rc.TargetAngle(), 100) {
		t.Fatalf("expected pending snap cancelled, target 100, got %v", rc.TargetAngle())
	}
	if !rc.IsFreeLooking() {
		t.Fatalf("expected free-look after re-press")
	}
}

func TestRotationReleaseWithoutPressIgnored(t *testing.T) {
	rc := NewRotationController(nil)

	rc.OnModifierRelease()
	rc.Update(0.016, 0)

	if rc.Mode() != Snapped {
		t.Fatalf("expected Snapped mode, got %v", rc.Mode())
	}
	if rc.TargetAngle() != 0 || rc.CurrentAngle() != 0 {
		t.Fatalf("expected angles untouched, got target %v current %v", rc.TargetAngle(), rc.CurrentAngle())
	}
}

func TestRotationZeroDtNoChange(t *testing.T) {
	rc := NewRotationController(nil, WithInitialYaw(30))

	rc.OnModifierPressStart()
	rc.Update(0, 500)
	rc.Update(-0.016, 500)

	if rc.TargetAngle() != 30 || rc.CurrentAngle() != 30 {
		t.Fatalf("expected no change for non-positive dt, got target %v current %v", rc.TargetAngle(), rc.CurrentAngle())
	}
}

func TestRotationUnboundedUntilSnap(t *testing.T) {
	rc := NewRotationController(nil, WithLookSensitivity(1.0))

	rc.OnModifierPressStart()
	rc.Update(1, 400)
	rc.Update(1, 400)

	// The raw target accumulates past a full turn while free-looking.
	if !common.ApproxEq(rc.TargetAngle(), 800) {
		t.Fatalf("expected unwrapped target 800, got %v", rc.TargetAngle())
	}

	rc.OnModifierRelease()
	rc.Update(0.016, 0)

	// 800 rounds to 810, which wraps to 90.
	if !common.ApproxEq(rc.TargetAngle(), 90) {
		t.Fatalf("expected wrapped snap to 90, got %v", rc.TargetAngle())
	}
}

func TestRotationOptions(t *testing.T) {
	rc := NewRotationController(nil,
		WithLookSensitivity(3.5),
		WithRotationSmoothTime(0.3),
		WithSnapIncrement(90),
		WithInitialYaw(370),
	)

	if rc.Sensitivity() != 3.5 {
		t.Fatalf("expected sensitivity 3.5, got %v", rc.Sensitivity())
	}
	if rc.SmoothTime() != 0.3 {
		t.Fatalf("expected smooth time 0.3, got %v", rc.SmoothTime())
	}
	if rc.SnapIncrement() != 90 {
		t.Fatalf("expected snap increment 90, got %v", rc.SnapIncrement())
	}
	if !common.ApproxEq(rc.CurrentAngle(), 10) || !common.ApproxEq(rc.TargetAngle(), 10) {
		t.Fatalf("expected initial yaw wrapped to 10, got current %v target %v", rc.CurrentAngle(), rc.TargetAngle())
	}
}
