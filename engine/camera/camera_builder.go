package camera

// WithFov sets the vertical field of view.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraOption: functional option to set the fov
func WithFov(fov float32) CameraOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio
//
// Returns:
//   - CameraOption: functional option to set the aspect ratio
func WithAspect(aspect float32) CameraOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance (must be > 0)
//
// Returns:
//   - CameraOption: functional option to set the near plane
func WithNear(near float32) CameraOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance (must be > near)
//
// Returns:
//   - CameraOption: functional option to set the far plane
func WithFar(far float32) CameraOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithController attaches the initial controller.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraOption: functional option to set the controller
func WithController(ctrl Controller) CameraOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
