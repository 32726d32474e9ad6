package motion

import (
	"log"
	"sync"

	"github.com/chewxy/math32"

	"github.com/rxhxm/rc-car-3d-experience/common"
	"github.com/rxhxm/rc-car-3d-experience/engine/track"
)

// Mode selects the active progress update strategy.
type Mode int

const (
	// ModeAuto advances progress at a constant speed every tick.
	ModeAuto Mode = iota
	// ModeManual drives progress and heading from the directional keys.
	ModeManual
)

// String returns a readable mode name for log output.
func (m Mode) String() string {
	if m == ModeManual {
		return "manual"
	}
	return "auto"
}

// Body is the moving scene entity the controller poses each tick.
// game_object.GameObject satisfies this.
type Body interface {
	// SetPosition moves the body to a world-space position.
	SetPosition(x, y, z float32)

	// SetRotation sets the body's Euler rotation in radians.
	SetRotation(rx, ry, rz float32)
}

// Controller owns the car's progress along the track and derives its pose
// from the path curve each tick. It blends an automatic progress-driven mode
// with a manual keyboard-driven mode, and exposes the runtime height tuning
// hooks. All methods are safe to call from outside the tick loop.
type Controller interface {
	// Update advances progress for one tick and re-poses the body.
	// A missing or failing curve holds the last pose; Update never panics and
	// never aborts the frame.
	//
	// Parameters:
	//   - dt: seconds elapsed since the previous tick
	Update(dt float32)

	// SetMode switches the active update strategy.
	//
	// Parameters:
	//   - mode: ModeAuto or ModeManual
	SetMode(mode Mode)

	// Mode returns the active update strategy.
	//
	// Returns:
	//   - Mode: the current mode
	Mode() Mode

	// Progress returns the normalized position along the loop in [0, 1).
	//
	// Returns:
	//   - float32: the current progress
	Progress() float32

	// Pose returns the most recently derived pose. Before the first
	// successful update this is the zero pose.
	//
	// Returns:
	//   - common.Pose: position and forward direction
	Pose() common.Pose

	// AdjustHeight stores a vertical tuning offset and immediately recomputes
	// the body's vertical position from the stored ground offset. Intended as
	// a live tuning hook callable from outside the frame loop.
	//
	// Parameters:
	//   - offset: vertical offset in world units, added to the seated height
	AdjustHeight(offset float32)

	// ResetHeight zeroes the vertical tuning offset and reseats the body.
	ResetHeight()

	// HeightAdjustment returns the current vertical tuning offset.
	//
	// Returns:
	//   - float32: the stored offset
	HeightAdjustment() float32

	// SetCurve swaps in the path curve. Safe to call while ticking; until a
	// curve arrives, Update is a no-op that holds the last pose.
	//
	// Parameters:
	//   - c: the curve to follow (nil detaches the path)
	SetCurve(c track.Curve)

	// Keys returns the shared key-state record for wiring window callbacks.
	//
	// Returns:
	//   - *KeyState: the input record consumed by Update
	Keys() *KeyState
}

type controllerImpl struct {
	mu *sync.Mutex

	curve track.Curve
	body  Body
	keys  *KeyState

	progress float32
	mode     Mode

	autoSpeed   float32 // progress units per second in auto mode
	manualSpeed float32 // progress units per second while a drive key is held
	steerAngle  float32 // heading rotation in radians per steering tick
	steerDrift  float32 // progress nudge per steering tick

	// steerOffset accumulates manual steering rotation on top of the path
	// tangent heading. Auto mode derives heading purely from the tangent, so
	// the offset is cleared whenever auto mode takes over.
	steerOffset float32

	groundOffset     float32 // vertical distance from model origin to its lowest point
	groundBuffer     float32 // clearance keeping the base just above the track surface
	heightAdjustment float32

	lastPose common.Pose
	hasPose  bool
}

var _ Controller = &controllerImpl{}

// ControllerOption is a functional option for configuring a Controller.
type ControllerOption func(*controllerImpl)

// NewController creates a motion controller with sensible demo defaults:
// automatic mode, one lap roughly every twenty seconds.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerOption) Controller {
	c := &controllerImpl{
		mu:   &sync.Mutex{},
		keys: NewKeyState(),

		mode:        ModeAuto,
		autoSpeed:   0.05,
		manualSpeed: 0.08,
		steerAngle:  0.03,
		steerDrift:  0.0005,

		groundOffset: defaultGroundOffset,
		groundBuffer: defaultGroundBuffer,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

const (
	defaultGroundOffset = 0.5
	defaultGroundBuffer = 0.05
)

func (c *controllerImpl) Update(dt float32) {
	in := c.keys.Snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Edge-triggered toggle: one flip per key-down, independent of the
	// directional inputs.
	if in.ToggleEdges%2 == 1 {
		c.setModeLocked(c.mode.flip())
	}

	// Any directional key-down implies manual mode, once per key-down.
	if in.DirectionalEdges > 0 && c.mode == ModeAuto {
		c.setModeLocked(ModeManual)
	}

	if c.curve == nil {
		// Path not ready yet, hold the last pose rather than aborting.
		return
	}

	switch c.mode {
	case ModeManual:
		var delta float32
		if in.Forward {
			delta += c.manualSpeed * dt
		}
		if in.Backward {
			delta -= c.manualSpeed * dt
		}
		// Steering applies two independent effects: a heading rotation and a
		// small progress nudge in the same direction. They are not coupled,
		// so heading can drift from the path position over time; that drift
		// is the intended observable behavior.
		if in.Left {
			c.steerOffset += c.steerAngle
			delta += c.steerDrift
		}
		if in.Right {
			c.steerOffset -= c.steerAngle
			delta -= c.steerDrift
		}
		c.progress = common.WrapUnit(c.progress + delta)
	default:
		c.progress = common.WrapUnit(c.progress + c.autoSpeed*dt)
	}

	c.deriveAndApplyPose()
}

// flip returns the opposite mode.
func (m Mode) flip() Mode {
	if m == ModeAuto {
		return ModeManual
	}
	return ModeAuto
}

// setModeLocked switches mode and clears manual steering state when auto
// takes over, since auto heading comes purely from the tangent.
// Caller must hold the mutex.
func (c *controllerImpl) setModeLocked(mode Mode) {
	if c.mode == mode {
		return
	}
	c.mode = mode
	if mode == ModeAuto {
		c.steerOffset = 0
	}
	log.Printf("[Motion] mode: %s", mode)
}

// seatHeight is the vertical position that keeps the car's collision base
// just above the visual track surface.
// Caller must hold the mutex.
func (c *controllerImpl) seatHeight() float32 {
	return math32.Abs(c.groundOffset)*0.5 + c.groundBuffer + c.heightAdjustment
}

// deriveAndApplyPose queries the curve at the current progress and writes the
// resulting pose to the body. Curve faults hold the last pose and log.
// Caller must hold the mutex.
func (c *controllerImpl) deriveAndApplyPose() {
	pos, err := c.curve.PointAt(c.progress)
	if err != nil {
		log.Printf("[Motion] point query failed at progress %f: %v", c.progress, err)
		return
	}
	tan, err := c.curve.TangentAt(c.progress)
	if err != nil {
		log.Printf("[Motion] tangent query failed at progress %f: %v", c.progress, err)
		return
	}

	pos[1] = c.seatHeight()

	// Aim the forward axis along the tangent; manual steering rotates the
	// heading on top of that.
	yaw := math32.Atan2(tan[0], tan[2])
	if c.mode == ModeManual {
		yaw += c.steerOffset
	}
	forward := [3]float32{math32.Sin(yaw), 0, math32.Cos(yaw)}

	c.lastPose = common.Pose{Position: pos, Forward: forward}
	c.hasPose = true

	if c.body != nil {
		c.body.SetPosition(pos[0], pos[1], pos[2])
		c.body.SetRotation(0, yaw, 0)
	}
}

func (c *controllerImpl) SetMode(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setModeLocked(mode)
}

func (c *controllerImpl) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *controllerImpl) Progress() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

func (c *controllerImpl) Pose() common.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPose
}

func (c *controllerImpl) AdjustHeight(offset float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.heightAdjustment = offset
	c.reseatLocked()
}

func (c *controllerImpl) ResetHeight() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.heightAdjustment = 0
	c.reseatLocked()
}

// reseatLocked recomputes the vertical position from the stored ground offset
// without advancing progress.
// Caller must hold the mutex.
func (c *controllerImpl) reseatLocked() {
	if !c.hasPose {
		return
	}
	c.lastPose.Position[1] = c.seatHeight()
	if c.body != nil {
		p := c.lastPose.Position
		c.body.SetPosition(p[0], p[1], p[2])
	}
}

func (c *controllerImpl) HeightAdjustment() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.heightAdjustment
}

func (c *controllerImpl) SetCurve(curve track.Curve) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.curve = curve
}

func (c *controllerImpl) Keys() *KeyState {
	return c.keys
}
