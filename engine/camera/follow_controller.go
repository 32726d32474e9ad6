package camera

import (
	"sync"

	"github.com/rxhxm/rc-car-3d-experience/common"
)

// degenerateForwardThreshold is the squared-length floor below which a
// tracked forward vector is considered unusable and the last known good
// forward is substituted, avoiding a discontinuous camera jump.
const degenerateForwardThreshold = 1e-4

// FollowController is a third-person chase camera: each tick it reads the
// tracked object's pose, computes a candidate position (lateral offset
// perpendicular to the forward direction plus a fixed height) and a candidate
// look-at, then low-pass filters its own state toward those candidates. The
// camera never snaps except on the very first tracked pose. There is no
// collision avoidance or occlusion handling, purely kinematic follow.
type FollowController interface {
	Controller

	// Track feeds the controller the tracked object's current pose and
	// advances the smoothed camera state one tick.
	//
	// Parameters:
	//   - pose: the tracked object's position and forward direction
	//   - dt: seconds elapsed since the previous tick
	Track(pose common.Pose, dt float32)

	// Forward returns the last non-degenerate forward vector observed on the
	// tracked object (unit length).
	//
	// Returns:
	//   - [3]float32: the retained forward direction
	Forward() [3]float32
}

type followControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	lookAt   [3]float32

	// lastForward is retained across frames so a momentarily degenerate
	// tracked forward does not snap the camera.
	lastForward [3]float32

	followDistance float32 // lateral offset, perpendicular to forward
	followHeight   float32 // vertical offset above the tracked position
	lookHeight     float32 // vertical offset of the look-at point

	smoothing     float32 // lerp factor per tick while the target moves
	idleSmoothing float32 // slower lerp factor while the target is still

	lastTracked [3]float32
	initialized bool
}

var _ FollowController = &followControllerImpl{}

// FollowOption is a functional option for configuring a FollowController.
type FollowOption func(*followControllerImpl)

// NewFollowController creates a follow controller with chase-camera defaults.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - FollowController: the newly created controller
func NewFollowController(options ...FollowOption) FollowController {
	f := &followControllerImpl{
		mu:          &sync.Mutex{},
		lastForward: [3]float32{0, 0, 1},

		followDistance: 8,
		followHeight:   4,
		lookHeight:     1,

		smoothing:     0.08,
		idleSmoothing: 0.03,
	}
	for _, option := range options {
		option(f)
	}
	return f
}

func (f *followControllerImpl) Track(pose common.Pose, dt float32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fwd := pose.Forward
	if fwd[0]*fwd[0]+fwd[1]*fwd[1]+fwd[2]*fwd[2] < degenerateForwardThreshold {
		// Object effectively stationary or mid-transition: reuse the last
		// known good heading instead of letting the camera whip around.
		fwd = f.lastForward
	} else {
		fwd = common.Vec3Normalize(fwd)
		f.lastForward = fwd
	}

	// Lateral offset perpendicular to forward (in the ground plane), plus a
	// fixed height above the tracked object.
	side := common.Vec3Normalize([3]float32{fwd[2], 0, -fwd[0]})
	candidate := common.Vec3Add(pose.Position, common.Vec3Scale(side, f.followDistance))
	candidate[1] += f.followHeight

	lookCandidate := pose.Position
	lookCandidate[1] += f.lookHeight

	if !f.initialized {
		// First tracked pose: snap, so the camera doesn't sweep in from the origin.
		f.position = candidate
		f.lookAt = lookCandidate
		f.lastTracked = pose.Position
		f.initialized = true
		return
	}

	factor := f.smoothing
	if common.Vec3Length(common.Vec3Sub(pose.Position, f.lastTracked)) < 1e-5 {
		// Target is holding still, so settle more slowly for visual stability.
		factor = f.idleSmoothing
	}
	f.lastTracked = pose.Position

	f.position = common.Vec3Lerp(f.position, candidate, factor)
	f.lookAt = common.Vec3Lerp(f.lookAt, lookCandidate, factor)
}

func (f *followControllerImpl) Position() (x, y, z float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position[0], f.position[1], f.position[2]
}

func (f *followControllerImpl) Target() (x, y, z float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookAt[0], f.lookAt[1], f.lookAt[2]
}

func (f *followControllerImpl) Forward() [3]float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastForward
}

// WithFollowDistance sets the lateral offset from the tracked object.
//
// Parameters:
//   - distance: offset in world units, perpendicular to the object's forward
//
// Returns:
//   - FollowOption: functional option to set the follow distance
func WithFollowDistance(distance float32) FollowOption {
	return func(f *followControllerImpl) {
		f.followDistance = distance
	}
}

// WithFollowHeight sets the vertical offset above the tracked object.
//
// Parameters:
//   - height: offset in world units
//
// Returns:
//   - FollowOption: functional option to set the follow height
func WithFollowHeight(height float32) FollowOption {
	return func(f *followControllerImpl) {
		f.followHeight = height
	}
}

// WithLookHeight sets the vertical offset of the look-at point above the
// tracked object's position.
//
// Parameters:
//   - height: offset in world units
//
// Returns:
//   - FollowOption: functional option to set the look-at height
func WithLookHeight(height float32) FollowOption {
	return func(f *followControllerImpl) {
		f.lookHeight = height
	}
}

// WithSmoothing sets the per-tick lerp factors applied toward the candidate
// camera state: one for a moving target, a slower one for a stationary target.
//
// Parameters:
//   - moving: lerp factor in (0, 1] while the target moves
//   - idle: lerp factor in (0, 1] while the target holds still
//
// Returns:
//   - FollowOption: functional option to set the smoothing factors
func WithSmoothing(moving, idle float32) FollowOption {
	return func(f *followControllerImpl) {
		f.smoothing = moving
		f.idleSmoothing = idle
	}
}
