package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxhxm/rc-car-3d-experience/common"
	"github.com/rxhxm/rc-car-3d-experience/engine/track"
)

// recordingBody captures the pose writes the controller makes.
type recordingBody struct {
	pos  [3]float32
	rot  [3]float32
	sets int
}

func (r *recordingBody) SetPosition(x, y, z float32) {
	r.pos = [3]float32{x, y, z}
	r.sets++
}

func (r *recordingBody) SetRotation(rx, ry, rz float32) {
	r.rot = [3]float32{rx, ry, rz}
}

func TestAutoProgressWrapsForward(t *testing.T) {
	c := NewController(
		WithCurve(track.NewCircleCurve(40)),
		WithProgress(0.999),
		WithAutoSpeed(0.05),
	)

	c.Update(0.1) // delta = 0.005, crosses 1.0

	assert.InDelta(t, 0.004, c.Progress(), 1e-5)
	assert.GreaterOrEqual(t, c.Progress(), float32(0))
	assert.Less(t, c.Progress(), float32(1))
}

func TestManualProgressWrapsBackward(t *testing.T) {
	c := NewController(
		WithCurve(track.NewCircleCurve(40)),
		WithMode(ModeManual),
		WithProgress(0.0005),
		WithManualSpeed(0.08),
	)

	c.Keys().Press(common.KeyS)
	c.Update(0.1) // delta = -0.008, crosses 0

	assert.InDelta(t, 0.9925, c.Progress(), 1e-5)
	assert.Less(t, c.Progress(), float32(1))
}

func TestPositionMatchesCurveExactly(t *testing.T) {
	curve := track.NewCircleCurve(40)
	body := &recordingBody{}
	c := NewController(WithCurve(curve), WithBody(body), WithAutoSpeed(0.05))

	c.Update(1.0 / 60.0)

	want, err := curve.PointAt(c.Progress())
	require.NoError(t, err)

	// Position is taken from the curve directly with no smoothing. X and Z must
	// match exactly; Y is overridden by the ground seating rule.
	pose := c.Pose()
	assert.Equal(t, want[0], pose.Position[0])
	assert.Equal(t, want[2], pose.Position[2])
	assert.Equal(t, pose.Position, body.pos)
}

func TestSeatHeightOverridesY(t *testing.T) {
	c := NewController(
		WithCurve(track.NewCircleCurve(40)),
		WithGroundOffset(1.2),
		WithGroundBuffer(0.05),
	)

	c.Update(0.016)

	// |groundOffset|*0.5 + groundBuffer + heightAdjustment
	assert.InDelta(t, 0.65, c.Pose().Position[1], 1e-6)

	c.AdjustHeight(0.3)
	assert.InDelta(t, 0.95, c.Pose().Position[1], 1e-6)
}

func TestHeightStepsAccumulateViaReadback(t *testing.T) {
	c := NewController(WithCurve(track.NewCircleCurve(40)))
	c.Update(0.016)
	base := c.Pose().Position[1]

	// AdjustHeight stores an absolute offset; key bindings step by reading
	// the current adjustment back and adding to it.
	step := float32(0.1)
	c.AdjustHeight(c.HeightAdjustment() + step)
	c.AdjustHeight(c.HeightAdjustment() + step)
	c.AdjustHeight(c.HeightAdjustment() + step)

	assert.InDelta(t, 0.3, c.HeightAdjustment(), 1e-6)
	assert.InDelta(t, base+0.3, c.Pose().Position[1], 1e-6)

	c.AdjustHeight(c.HeightAdjustment() - step)
	assert.InDelta(t, 0.2, c.HeightAdjustment(), 1e-6)
}

func TestHeightResetIdempotence(t *testing.T) {
	c := NewController(WithCurve(track.NewCircleCurve(40)))
	c.Update(0.016)

	c.AdjustHeight(2.5)
	c.ResetHeight()
	afterReset := c.Pose().Position[1]

	c.AdjustHeight(0)
	assert.Equal(t, afterReset, c.Pose().Position[1])
	assert.Equal(t, float32(0), c.HeightAdjustment())
}

func TestModeToggleEdgeTriggered(t *testing.T) {
	c := NewController(WithCurve(track.NewCircleCurve(40)))
	require.Equal(t, ModeAuto, c.Mode())

	c.Keys().Press(common.KeySpace)
	c.Update(0.016)
	assert.Equal(t, ModeManual, c.Mode())

	// A distinct second press returns the mode to its original value.
	c.Keys().Release(common.KeySpace)
	c.Keys().Press(common.KeySpace)
	c.Update(0.016)
	assert.Equal(t, ModeAuto, c.Mode())

	// Two full press/release cycles within one tick cancel out.
	c.Keys().Release(common.KeySpace)
	c.Keys().Press(common.KeySpace)
	c.Keys().Release(common.KeySpace)
	c.Keys().Press(common.KeySpace)
	c.Update(0.016)
	assert.Equal(t, ModeAuto, c.Mode())
}

func TestToggleKeyRepeatDoesNotRetrigger(t *testing.T) {
	c := NewController(WithCurve(track.NewCircleCurve(40)))
	require.Equal(t, ModeAuto, c.Mode())

	c.Keys().Press(common.KeySpace)
	c.Update(0.016)
	require.Equal(t, ModeManual, c.Mode())

	// GLFW forwards repeat events as additional Press calls while the key is
	// held. Without an intervening Release they must not flip the mode again.
	c.Keys().Press(common.KeySpace)
	c.Update(0.016)
	assert.Equal(t, ModeManual, c.Mode(), "held toggle key must not re-trigger the mode toggle")

	c.Keys().Press(common.KeySpace)
	c.Keys().Press(common.KeySpace)
	c.Update(0.016)
	assert.Equal(t, ModeManual, c.Mode())

	// Releasing re-arms the edge.
	c.Keys().Release(common.KeySpace)
	c.Keys().Press(common.KeySpace)
	c.Update(0.016)
	assert.Equal(t, ModeAuto, c.Mode())
}

func TestDirectionalKeyForcesManualOncePerKeyDown(t *testing.T) {
	c := NewController(WithCurve(track.NewCircleCurve(40)))

	c.Keys().Press(common.KeyW)
	c.Update(0.016)
	assert.Equal(t, ModeManual, c.Mode())

	// Holding the key across ticks must not re-force manual: switching back
	// to auto sticks until the next distinct key-down.
	c.SetMode(ModeAuto)
	c.Update(0.016)
	c.Update(0.016)
	assert.Equal(t, ModeAuto, c.Mode())

	c.Keys().Release(common.KeyW)
	c.Keys().Press(common.KeyW)
	c.Update(0.016)
	assert.Equal(t, ModeManual, c.Mode())
}

func TestKeyRepeatDoesNotAddEdges(t *testing.T) {
	k := NewKeyState()
	k.Press(common.KeyW)
	k.Press(common.KeyW) // OS key repeat
	k.Press(common.KeyW)

	in := k.Snapshot()
	assert.Equal(t, 1, in.DirectionalEdges)
	assert.True(t, in.Forward)

	// Edges are consumed by the snapshot.
	in = k.Snapshot()
	assert.Equal(t, 0, in.DirectionalEdges)
	assert.True(t, in.Forward)
}

func TestMissingCurveHoldsLastPose(t *testing.T) {
	body := &recordingBody{}
	c := NewController(WithBody(body))

	// No curve yet: updates are safe no-ops.
	c.Update(0.016)
	c.Update(0.016)
	assert.Equal(t, float32(0), c.Progress())
	assert.Equal(t, 0, body.sets)

	// Curve arrives mid-run; motion resumes.
	c.SetCurve(track.NewCircleCurve(40))
	c.Update(0.016)
	assert.Greater(t, c.Progress(), float32(0))
	assert.Equal(t, 1, body.sets)

	// Curve detaches again; pose holds at its last value.
	held := c.Pose()
	c.SetCurve(nil)
	c.Update(0.016)
	assert.Equal(t, held, c.Pose())
}

func TestManualSteeringDriftsProgressAndHeading(t *testing.T) {
	c := NewController(
		WithCurve(track.NewCircleCurve(40)),
		WithMode(ModeManual),
		WithSteering(0.03, 0.0005),
	)

	before := c.Progress()
	fwdBefore, err := track.NewCircleCurve(40).TangentAt(before)
	require.NoError(t, err)

	// Hold left without a drive key: progress nudges forward and heading
	// rotates away from the tangent; the two effects stay independent.
	c.Keys().Press(common.KeyA)
	for i := 0; i < 10; i++ {
		c.Update(0.016)
	}

	assert.InDelta(t, float64(before)+10*0.0005, float64(c.Progress()), 1e-5)

	pose := c.Pose()
	dot := pose.Forward[0]*fwdBefore[0] + pose.Forward[2]*fwdBefore[2]
	assert.Less(t, dot, float32(0.999), "heading should rotate off the tangent")
}
