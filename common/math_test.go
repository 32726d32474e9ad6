package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapUnit(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"in range", 0.5, 0.5},
		{"zero", 0, 0},
		{"just past one", 1.0005, 0.0005},
		{"just below zero", -0.25, 0.75},
		{"tiny negative rounds back to zero", -1e-9, 0},
		{"exactly one", 1, 0},
		{"far positive", 3.5, 0.5},
		{"far negative", -2.75, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapUnit(tt.in)
			assert.InDelta(t, tt.want, got, 1e-5)
			assert.GreaterOrEqual(t, got, float32(0))
			assert.Less(t, got, float32(1))
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3Normalize([3]float32{3, 0, 4})
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[2], 1e-6)
	assert.InDelta(t, 1.0, Vec3Length(v), 1e-6)

	// Near-zero vectors pass through untouched instead of producing NaNs.
	z := Vec3Normalize([3]float32{0, 0, 0})
	assert.Equal(t, [3]float32{0, 0, 0}, z)
}

func TestVec3Lerp(t *testing.T) {
	a := [3]float32{0, 0, 0}
	b := [3]float32{10, -10, 2}
	assert.Equal(t, a, Vec3Lerp(a, b, 0))
	assert.Equal(t, b, Vec3Lerp(a, b, 1))
	mid := Vec3Lerp(a, b, 0.5)
	assert.InDelta(t, 5, mid[0], 1e-6)
	assert.InDelta(t, -5, mid[1], 1e-6)
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	BuildModelMatrix(m[:], 1, 2, 3, 0.1, 0.2, 0.3, 1, 1, 1)
	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)
}

func TestLookAtPlacesEyeAtOrigin(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 0, 0, 10, 0, 0, 0, 0, 1, 0)

	// Transforming the eye point must land on the view-space origin.
	ex := view[0]*0 + view[4]*0 + view[8]*10 + view[12]
	ey := view[1]*0 + view[5]*0 + view[9]*10 + view[13]
	ez := view[2]*0 + view[6]*0 + view[10]*10 + view[14]
	assert.InDelta(t, 0, ex, 1e-5)
	assert.InDelta(t, 0, ey, 1e-5)
	assert.InDelta(t, 0, ez, 1e-5)
}
