package camera

import (
	"sync"

	"github.com/chewxy/math32"
)

// OrbitController is the debug free-look camera: spherical coordinates
// (radius, azimuth, elevation) around a pivot point. The demo swaps it in
// place of the follow controller for inspecting the track.
type OrbitController interface {
	Controller

	// Orbit rotates the camera around the pivot.
	//
	// Parameters:
	//   - dAzimuth: horizontal angle delta in radians
	//   - dElevation: vertical angle delta in radians, clamped to the elevation bounds
	Orbit(dAzimuth, dElevation float32)

	// Zoom adjusts the orbit radius. Positive delta zooms in.
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float32)

	// SetTarget moves the pivot point and recomputes the camera position.
	//
	// Parameters:
	//   - x, y, z: world-space pivot coordinates
	SetTarget(x, y, z float32)
}

type orbitControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	zoomSpeed float32
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates a debug orbit controller centered on the origin
// with defaults sized for the ring track.
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController() OrbitController {
	oc := &orbitControllerImpl{
		mu: &sync.Mutex{},

		radius:    70,
		azimuth:   0,
		elevation: math32.Pi / 5,

		minRadius:    5,
		maxRadius:    400,
		minElevation: 0.05,
		maxElevation: math32.Pi/2 - 0.1,

		zoomSpeed: 4,
	}
	oc.updatePosition()
	return oc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex (or be the constructor).
func (oc *orbitControllerImpl) updatePosition() {
	cosElev := math32.Cos(oc.elevation)
	oc.position[0] = oc.target[0] + oc.radius*cosElev*math32.Sin(oc.azimuth)
	oc.position[1] = oc.target[1] + oc.radius*math32.Sin(oc.elevation)
	oc.position[2] = oc.target[2] + oc.radius*cosElev*math32.Cos(oc.azimuth)
}

func (oc *orbitControllerImpl) Orbit(dAzimuth, dElevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	oc.azimuth += dAzimuth
	oc.elevation += dElevation
	if oc.elevation < oc.minElevation {
		oc.elevation = oc.minElevation
	}
	if oc.elevation > oc.maxElevation {
		oc.elevation = oc.maxElevation
	}
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	oc.radius -= delta * oc.zoomSpeed
	if oc.radius < oc.minRadius {
		oc.radius = oc.minRadius
	}
	if oc.radius > oc.maxRadius {
		oc.radius = oc.maxRadius
	}
	oc.updatePosition()
}

func (oc *orbitControllerImpl) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	oc.target = [3]float32{x, y, z}
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Position() (x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position[0], oc.position[1], oc.position[2]
}

func (oc *orbitControllerImpl) Target() (x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target[0], oc.target[1], oc.target[2]
}
