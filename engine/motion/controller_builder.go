package motion

import (
	"github.com/rxhxm/rc-car-3d-experience/common"
	"github.com/rxhxm/rc-car-3d-experience/engine/track"
)

// WithCurve sets the path curve to follow from the start. Omit it when the
// track builder delivers the curve later via SetCurve.
//
// Parameters:
//   - c: the curve to follow
//
// Returns:
//   - ControllerOption: functional option to set the curve
func WithCurve(c track.Curve) ControllerOption {
	return func(ctrl *controllerImpl) {
		ctrl.curve = c
	}
}

// WithBody attaches the scene entity the controller poses each tick.
//
// Parameters:
//   - b: the body to move
//
// Returns:
//   - ControllerOption: functional option to set the body
func WithBody(b Body) ControllerOption {
	return func(ctrl *controllerImpl) {
		ctrl.body = b
	}
}

// WithMode sets the starting update strategy.
//
// Parameters:
//   - mode: ModeAuto or ModeManual
//
// Returns:
//   - ControllerOption: functional option to set the mode
func WithMode(mode Mode) ControllerOption {
	return func(ctrl *controllerImpl) {
		ctrl.mode = mode
	}
}

// WithAutoSpeed sets the automatic progress speed in loop fractions per second.
//
// Parameters:
//   - speed: progress units per second
//
// Returns:
//   - ControllerOption: functional option to set the auto speed
func WithAutoSpeed(speed float32) ControllerOption {
	return func(ctrl *controllerImpl) {
		ctrl.autoSpeed = speed
	}
}

// WithManualSpeed sets the keyboard-driven progress speed in loop fractions per second.
//
// Parameters:
//   - speed: progress units per second while a drive key is held
//
// Returns:
//   - ControllerOption: functional option to set the manual speed
func WithManualSpeed(speed float32) ControllerOption {
	return func(ctrl *controllerImpl) {
		ctrl.manualSpeed = speed
	}
}

// WithSteering sets the two independent manual steering effects: the heading
// rotation per tick and the progress nudge per tick.
//
// Parameters:
//   - angle: heading rotation in radians applied each tick a steer key is held
//   - drift: progress increment applied each tick a steer key is held
//
// Returns:
//   - ControllerOption: functional option to set steering behavior
func WithSteering(angle, drift float32) ControllerOption {
	return func(ctrl *controllerImpl) {
		ctrl.steerAngle = angle
		ctrl.steerDrift = drift
	}
}

// WithProgress sets the starting progress along the loop, wrapped into [0, 1).
//
// Parameters:
//   - progress: normalized position along the loop
//
// Returns:
//   - ControllerOption: functional option to set the starting progress
func WithProgress(progress float32) ControllerOption {
	return func(ctrl *controllerImpl) {
		ctrl.progress = common.WrapUnit(progress)
	}
}

// WithGroundOffset sets the vertical distance from the car model's local
// origin to its lowest point, normally derived from the model's bounding box.
//
// Parameters:
//   - offset: ground offset in world units
//
// Returns:
//   - ControllerOption: functional option to set the ground offset
func WithGroundOffset(offset float32) ControllerOption {
	return func(ctrl *controllerImpl) {
		ctrl.groundOffset = offset
	}
}

// WithGroundBuffer sets the clearance that keeps the car's base just above
// the track surface, avoiding z-fighting with the road mesh.
//
// Parameters:
//   - buffer: clearance in world units
//
// Returns:
//   - ControllerOption: functional option to set the ground buffer
func WithGroundBuffer(buffer float32) ControllerOption {
	return func(ctrl *controllerImpl) {
		ctrl.groundBuffer = buffer
	}
}
