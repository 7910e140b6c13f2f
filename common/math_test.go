package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// transformPoint applies a column-major 4x4 matrix to a point (w = 1).
func transformPoint(m []float32, x, y, z float32) (float32, float32, float32) {
	px := m[0]*x + m[4]*y + m[8]*z + m[12]
	py := m[1]*x + m[5]*y + m[9]*z + m[13]
	pz := m[2]*x + m[6]*y + m[10]*z + m[14]
	return px, py, pz
}

// transformDir applies a column-major 4x4 matrix to a direction (w = 0).
func transformDir(m []float32, x, y, z float32) (float32, float32, float32) {
	dx := m[0]*x + m[4]*y + m[8]*z
	dy := m[1]*x + m[5]*y + m[9]*z
	dz := m[2]*x + m[6]*y + m[10]*z
	return dx, dy, dz
}

func TestBuildRigMatrix(t *testing.T) {
	t.Run("translation_at_zero_yaw", func(t *testing.T) {
		var m [16]float32
		BuildRigMatrix(m[:], 3, 4, 5, 0)

		var ident [16]float32
		Identity(ident[:])
		for i := 0; i < 12; i++ {
			if !ApproxEq(m[i], ident[i]) {
				t.Fatalf("expected identity rotation at index %d, got %v", i, m[i])
			}
		}
		if m[12] != 3 || m[13] != 4 || m[14] != 5 || m[15] != 1 {
			t.Fatalf("expected translation (3,4,5), got (%v,%v,%v,%v)", m[12], m[13], m[14], m[15])
		}
	})

	t.Run("matches_yaw_rotation", func(t *testing.T) {
		for _, yaw := range []float32{0, 45, 90, 135, 270, 315} {
			var m [16]float32
			BuildRigMatrix(m[:], 0, 0, 0, yaw)

			local := mgl32.Vec3{0.3, 1.2, 1}
			want := RotateYawVec3(local, yaw)
			gx, gy, gz := transformDir(m[:], local[0], local[1], local[2])

			if !ApproxEq(gx, want[0]) || !ApproxEq(gy, want[1]) || !ApproxEq(gz, want[2]) {
				t.Fatalf("yaw %v: expected %v, got (%v,%v,%v)", yaw, want, gx, gy, gz)
			}
		}
	})

	t.Run("rotation_is_orthonormal", func(t *testing.T) {
		var m [16]float32
		BuildRigMatrix(m[:], 0, 0, 0, 73)

		xLen := math32.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2])
		zLen := math32.Sqrt(m[8]*m[8] + m[9]*m[9] + m[10]*m[10])
		dot := m[0]*m[8] + m[1]*m[9] + m[2]*m[10]

		if !ApproxEq(xLen, 1) || !ApproxEq(zLen, 1) {
			t.Fatalf("expected unit basis vectors, got lengths %v and %v", xLen, zLen)
		}
		if !ApproxEq(dot, 0) {
			t.Fatalf("expected orthogonal basis, dot=%v", dot)
		}
	})
}

func TestMul4Identity(t *testing.T) {
	var m, ident, out [16]float32
	BuildRigMatrix(m[:], 1, 2, 3, 30)
	Identity(ident[:])

	Mul4(out[:], ident[:], m[:])
	for i := range m {
		if !ApproxEq(out[i], m[i]) {
			t.Fatalf("identity multiply changed index %d: %v != %v", i, out[i], m[i])
		}
	}
}

func TestInvert4(t *testing.T) {
	t.Run("rig_matrix_roundtrip", func(t *testing.T) {
		var m, inv, prod, ident [16]float32
		BuildRigMatrix(m[:], 7, -2, 4, 52)
		Identity(ident[:])

		if !Invert4(inv[:], m[:]) {
			t.Fatalf("expected invertible matrix")
		}
		Mul4(prod[:], m[:], inv[:])
		for i := range prod {
			if math32.Abs(prod[i]-ident[i]) > 1e-4 {
				t.Fatalf("expected identity at index %d, got %v", i, prod[i])
			}
		}
	})

	t.Run("singular_returns_false", func(t *testing.T) {
		var zero, out [16]float32
		out[3] = 99
		if Invert4(out[:], zero[:]) {
			t.Fatalf("expected false for singular matrix")
		}
		if out[3] != 99 {
			t.Fatalf("expected output untouched on failure")
		}
	})
}

func TestLookAt(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 0, 0, 10, 0, 0, 0, 0, 1, 0)

	t.Run("eye_maps_to_origin", func(t *testing.T) {
		x, y, z := transformPoint(view[:], 0, 0, 10)
		if !ApproxEq(x, 0) || !ApproxEq(y, 0) || !ApproxEq(z, 0) {
			t.Fatalf("expected eye at view origin, got (%v,%v,%v)", x, y, z)
		}
	})

	t.Run("center_is_ahead", func(t *testing.T) {
		// The camera looks down -Z in view space.
		x, y, z := transformPoint(view[:], 0, 0, 0)
		if !ApproxEq(x, 0) || !ApproxEq(y, 0) || !ApproxEq(z, -10) {
			t.Fatalf("expected center at (0,0,-10), got (%v,%v,%v)", x, y, z)
		}
	})
}

func TestPerspectiveDepthRange(t *testing.T) {
	// WebGPU clip space: depth 0 at the near plane, 1 at the far plane.
	var proj [16]float32
	near, far := float32(0.1), float32(100.0)
	Perspective(proj[:], math32.Pi/4, 16.0/9.0, near, far)

	depthAt := func(z float32) float32 {
		clipZ := proj[10]*z + proj[14]
		clipW := proj[11] * z
		return clipZ / clipW
	}

	if d := depthAt(-near); math32.Abs(d) > 1e-5 {
		t.Fatalf("expected depth 0 at near plane, got %v", d)
	}
	if d := depthAt(-far); math32.Abs(d-1) > 1e-4 {
		t.Fatalf("expected depth 1 at far plane, got %v", d)
	}
}
