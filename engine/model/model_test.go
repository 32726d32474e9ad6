package model

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxhxm/rc-car-3d-experience/engine/track"
)

func TestCarGroundOffsetComesFromLowestWheelPoint(t *testing.T) {
	car := NewModel(WithName("car"), WithMesh(BuildCarMesh()))

	bb := car.BoundingBox()
	// Wheels are centered at y=-0.15 with height 0.5, so the lowest point
	// sits at -0.4.
	assert.InDelta(t, -0.4, bb.Min[1], 1e-5)
	assert.InDelta(t, 0.4, car.GroundOffset(), 1e-5)
}

func TestEmptyModelHasZeroBounds(t *testing.T) {
	m := NewModel(WithName("empty"))
	assert.Equal(t, BoundingBox{}, m.BoundingBox())
	assert.Zero(t, m.GroundOffset())
}

func TestQuadBottomEdgeSitsAtOrigin(t *testing.T) {
	quad := BuildQuad(2, 3, [4]float32{1, 1, 1, 1})
	require.Len(t, quad.Vertices, 4)
	require.Len(t, quad.Indices, 6)

	minY, maxY := quad.Vertices[0].Position[1], quad.Vertices[0].Position[1]
	for _, v := range quad.Vertices[1:] {
		minY = math32.Min(minY, v.Position[1])
		maxY = math32.Max(maxY, v.Position[1])
	}
	assert.Zero(t, minY)
	assert.InDelta(t, 3, maxY, 1e-6)
}

func TestGroundPlaneAlternatesCellColors(t *testing.T) {
	a := [4]float32{0.3, 0.3, 0.3, 1}
	b := [4]float32{0.4, 0.4, 0.4, 1}
	plane := BuildGroundPlane(10, 2, a, b)

	require.Len(t, plane.Vertices, 16)
	assert.Equal(t, a, plane.Vertices[0].Color)
	assert.Equal(t, b, plane.Vertices[4].Color)
}

func TestTrackMeshStraddlesCurveAtEachSample(t *testing.T) {
	curve := track.NewCircleCurve(20)
	const width, segments = 6, 64
	mesh := BuildTrackMesh(curve, width, segments, [4]float32{0.2, 0.2, 0.2, 1})

	require.Len(t, mesh.Vertices, (segments+1)*2)
	require.Len(t, mesh.Indices, segments*6)

	for i := 0; i < segments; i++ {
		left := mesh.Vertices[i*2].Position
		right := mesh.Vertices[i*2+1].Position

		// Rail pair is width apart.
		dx := right[0] - left[0]
		dz := right[2] - left[2]
		assert.InDelta(t, width, math32.Sqrt(dx*dx+dz*dz), 1e-3)

		// The midpoint lands back on the centerline.
		p, err := curve.PointAt(float32(i) / float32(segments))
		require.NoError(t, err)
		assert.InDelta(t, p[0], (left[0]+right[0])/2, 1e-3)
		assert.InDelta(t, p[2], (left[2]+right[2])/2, 1e-3)
	}

	// Closed ribbon: final sample repeats the first rail pair.
	assert.Equal(t, mesh.Vertices[0].Position, mesh.Vertices[segments*2].Position)
	assert.Equal(t, mesh.Vertices[1].Position, mesh.Vertices[segments*2+1].Position)
}
