package track

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/rxhxm/rc-car-3d-experience/common"
)

// circleCurve is the guaranteed-valid fallback path: an exact circle on the
// ground plane. It needs no fitting step and cannot degenerate, so it is safe
// to substitute whenever ring construction fails or the track provider never
// delivers.
type circleCurve struct {
	radius float32
}

var _ Curve = &circleCurve{}

// NewCircleCurve creates an exact circular curve of the given radius on the
// ground plane. A non-positive radius is replaced with a small default so the
// fallback itself can never be invalid.
//
// Parameters:
//   - radius: circle radius in world units
//
// Returns:
//   - Curve: the circular curve
func NewCircleCurve(radius float32) Curve {
	if radius <= 0 || !isFinite(radius) {
		radius = 10
	}
	return &circleCurve{radius: radius}
}

func (c *circleCurve) PointAt(t float32) ([3]float32, error) {
	if !isFinite(t) {
		return [3]float32{}, fmt.Errorf("point query with non-finite t=%f", t)
	}
	angle := 2 * math32.Pi * common.WrapUnit(t)
	return [3]float32{c.radius * math32.Sin(angle), 0, c.radius * math32.Cos(angle)}, nil
}

func (c *circleCurve) TangentAt(t float32) ([3]float32, error) {
	if !isFinite(t) {
		return [3]float32{}, fmt.Errorf("tangent query with non-finite t=%f", t)
	}
	angle := 2 * math32.Pi * common.WrapUnit(t)
	// d/dt of (r sin, 0, r cos), normalized
	return [3]float32{math32.Cos(angle), 0, -math32.Sin(angle)}, nil
}

func (c *circleCurve) Length() float32 {
	return 2 * math32.Pi * c.radius
}
