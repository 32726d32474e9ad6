package model

import (
	"github.com/rxhxm/rc-car-3d-experience/common"
	"github.com/rxhxm/rc-car-3d-experience/engine/track"
)

const trackSurfaceLift = 0.02

// BuildTrackMesh constructs a flat ribbon following the curve: at each sample
// the surface extends half the width to either side of the centerline,
// perpendicular to the tangent. The ribbon closes on itself by sharing the
// first sample pair as the last. Samples where the curve cannot be evaluated
// reuse the previous rail pair so a partial failure never tears the surface.
//
// Parameters:
//   - curve: the closed centerline to follow
//   - width: total ribbon width
//   - segments: number of samples around the loop
//   - color: surface vertex color
//
// Returns:
//   - *Mesh: the ribbon geometry
func BuildTrackMesh(curve track.Curve, width float32, segments int, color [4]float32) *Mesh {
	if segments < 3 {
		segments = 3
	}
	half := width / 2
	mesh := &Mesh{}

	up := [3]float32{0, 1, 0}
	prevLeft := [3]float32{-half, trackSurfaceLift, 0}
	prevRight := [3]float32{half, trackSurfaceLift, 0}

	for i := 0; i <= segments; i++ {
		t := float32(i%segments) / float32(segments)
		left, right := prevLeft, prevRight

		p, perr := curve.PointAt(t)
		tan, terr := curve.TangentAt(t)
		if perr == nil && terr == nil {
			side := common.Vec3Normalize(common.Vec3Cross(up, tan))
			left = [3]float32{
				p[0] - side[0]*half,
				p[1] + trackSurfaceLift,
				p[2] - side[2]*half,
			}
			right = [3]float32{
				p[0] + side[0]*half,
				p[1] + trackSurfaceLift,
				p[2] + side[2]*half,
			}
		}

		v := float32(i) / 4
		mesh.Vertices = append(mesh.Vertices,
			GPUVertex{Position: left, Normal: up, UV: [2]float32{0, v}, Color: color},
			GPUVertex{Position: right, Normal: up, UV: [2]float32{1, v}, Color: color},
		)
		prevLeft, prevRight = left, right
	}

	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		mesh.Indices = append(mesh.Indices,
			base, base+2, base+1,
			base+1, base+2, base+3,
		)
	}
	return mesh
}
