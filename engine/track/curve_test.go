package track

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxhxm/rc-car-3d-experience/common"
)

func TestRingCurveFiniteEverywhere(t *testing.T) {
	c, err := NewRingCurve(WithRadius(40), WithControlPoints(24))
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		tt := float32(i) / 1000
		p, err := c.PointAt(tt)
		require.NoError(t, err, "t=%f", tt)
		tan, err := c.TangentAt(tt)
		require.NoError(t, err, "t=%f", tt)
		for axis := 0; axis < 3; axis++ {
			assert.False(t, math32.IsNaN(p[axis]), "point NaN at t=%f", tt)
			assert.False(t, math32.IsNaN(tan[axis]), "tangent NaN at t=%f", tt)
		}
		assert.InDelta(t, 1.0, common.Vec3Length(tan), 1e-4, "tangent not unit at t=%f", tt)
	}
}

func TestRingCurveClosure(t *testing.T) {
	c, err := NewRingCurve(WithRadius(40))
	require.NoError(t, err)

	p0, err := c.PointAt(0)
	require.NoError(t, err)
	p1, err := c.PointAt(1 - 1e-4)
	require.NoError(t, err)

	assert.InDelta(t, p0[0], p1[0], 0.1)
	assert.InDelta(t, p0[1], p1[1], 0.1)
	assert.InDelta(t, p0[2], p1[2], 0.1)
}

func TestRingCurveDeterministic(t *testing.T) {
	c, err := NewRingCurve(WithRadius(25), WithControlPoints(16))
	require.NoError(t, err)

	a, err := c.PointAt(0.37)
	require.NoError(t, err)
	b, err := c.PointAt(0.37)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRingCurveArcLengthUniform(t *testing.T) {
	c, err := NewRingCurve(WithRadius(40), WithArcSamples(2048))
	require.NoError(t, err)

	// Equal steps in t must travel near-equal distances along the loop.
	const steps = 50
	var prev [3]float32
	var dists []float32
	for i := 0; i <= steps; i++ {
		p, err := c.PointAt(float32(i) / steps)
		require.NoError(t, err)
		if i > 0 {
			dists = append(dists, common.Vec3Length(common.Vec3Sub(p, prev)))
		}
		prev = p
	}
	mean := c.Length() / steps
	for i, d := range dists {
		assert.InDelta(t, mean, d, float64(mean)*0.05, "step %d", i)
	}
}

func TestRingCurveLengthApproximatesCircumference(t *testing.T) {
	c, err := NewRingCurve(WithRadius(40), WithControlPoints(48))
	require.NoError(t, err)
	assert.InDelta(t, 2*math32.Pi*40, c.Length(), 2.0)
}

func TestRingCurveRejectsMalformedPoints(t *testing.T) {
	_, err := NewRingCurve(WithPoints([][3]float32{{0, 0, 0}, {1, 0, 0}}))
	assert.Error(t, err, "too few control points")

	bad := make([][3]float32, 12)
	for i := range bad {
		bad[i] = [3]float32{float32(i), 0, 0}
	}
	bad[5][0] = math32.NaN()
	_, err = NewRingCurve(WithPoints(bad))
	assert.Error(t, err, "NaN control point")
}

func TestFallbackCircleOnFailure(t *testing.T) {
	c := NewRingCurveOrFallback(WithRadius(40), WithPoints([][3]float32{{0, 0, 0}}))
	require.NotNil(t, c)

	// Fallback circle uses a reduced radius.
	p, err := c.PointAt(0.25)
	require.NoError(t, err)
	assert.InDelta(t, 32.0, common.Vec3Length(p), 1e-3)

	p0, err := c.PointAt(0)
	require.NoError(t, err)
	p1, err := c.PointAt(1 - 1e-5)
	require.NoError(t, err)
	assert.InDelta(t, p0[0], p1[0], 0.05)
	assert.InDelta(t, p0[2], p1[2], 0.05)
}

func TestAwaitDeliversCurve(t *testing.T) {
	ready := make(chan Curve, 1)
	want := NewCircleCurve(5)
	ready <- want

	got := Await(ready, time.Second, func() Curve { return NewCircleCurve(99) })
	assert.Same(t, want, got)
}

func TestAwaitFallsBackAfterTimeout(t *testing.T) {
	ready := make(chan Curve)
	got := Await(ready, 10*time.Millisecond, func() Curve { return NewCircleCurve(7) })
	require.NotNil(t, got)
	assert.InDelta(t, 2*math32.Pi*7, got.Length(), 1e-3)
}

func TestAwaitFallsBackOnClosedChannel(t *testing.T) {
	ready := make(chan Curve)
	close(ready)
	got := Await(ready, time.Second, func() Curve { return NewCircleCurve(3) })
	require.NotNil(t, got)
	assert.InDelta(t, 2*math32.Pi*3, got.Length(), 1e-3)
}
