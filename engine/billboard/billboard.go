// package billboard builds the trackside signage: textured quads spaced
// evenly around the loop, each turned to face the track.
package billboard

import (
	"log"

	"github.com/chewxy/math32"

	"github.com/rxhxm/rc-car-3d-experience/common"
	"github.com/rxhxm/rc-car-3d-experience/engine/game_object"
	"github.com/rxhxm/rc-car-3d-experience/engine/model"
	"github.com/rxhxm/rc-car-3d-experience/engine/track"
)

const (
	signWidth  = 4.0
	signHeight = 2.0

	signTexWidth  = 256
	signTexHeight = 128
)

// PlaceSigns creates textured sign objects spaced evenly along the curve,
// each pushed laterally off the centerline by offset and rotated so its face
// points back toward the track. Samples where the curve cannot be evaluated
// are skipped with a log line rather than aborting the batch.
//
// Parameters:
//   - curve: the closed centerline to place signs along
//   - texts: one label per sign; its length sets the sign count
//   - offset: lateral distance from the centerline (positive is outside)
//   - baseID: first object ID; signs use consecutive IDs from here
//
// Returns:
//   - []game_object.GameObject: the created signs, at most len(texts)
func PlaceSigns(curve track.Curve, texts []string, offset float32, baseID uint64) []game_object.GameObject {
	if curve == nil || len(texts) == 0 {
		return nil
	}

	signs := make([]game_object.GameObject, 0, len(texts))
	up := [3]float32{0, 1, 0}

	for i, text := range texts {
		t := float32(i) / float32(len(texts))

		p, perr := curve.PointAt(t)
		tan, terr := curve.TangentAt(t)
		if perr != nil || terr != nil {
			log.Printf("[Billboard] skipping sign %q: curve not evaluable at t=%.3f", text, t)
			continue
		}

		// cross(tangent, up) points to the outside of the loop, so a
		// positive offset pushes signs off the outer edge.
		side := common.Vec3Normalize(common.Vec3Cross(tan, up))
		pos := common.Vec3Add(p, common.Vec3Scale(side, offset))

		// The quad faces +Z; yaw it so the face points back at the
		// centerline.
		facing := common.Vec3Scale(side, -1)
		yaw := math32.Atan2(facing[0], facing[2])

		mdl := model.NewModel(
			model.WithName("sign-"+text),
			model.WithMesh(model.BuildQuad(signWidth, signHeight, [4]float32{1, 1, 1, 1})),
			model.WithTexture(SignTexture(text, signTexWidth, signTexHeight)),
		)
		signs = append(signs, game_object.NewGameObject(
			game_object.WithID(baseID+uint64(i)),
			game_object.WithEnabled(true),
			game_object.WithModel(mdl),
			game_object.WithPosition(pos[0], pos[1], pos[2]),
			game_object.WithRotation(0, yaw, 0),
		))
	}
	return signs
}
