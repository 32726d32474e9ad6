package track

import (
	"errors"
	"fmt"
	"log"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/interp"

	"github.com/rxhxm/rc-car-3d-experience/common"
)

// Curve is a closed, arc-length-parameterized spatial curve. PointAt and
// TangentAt are defined for any t; inputs are wrapped into [0, 1) so the
// curve closes smoothly at the seam. Implementations are immutable after
// construction and queries are pure functions of t.
type Curve interface {
	// PointAt returns the world-space position at normalized arc length t.
	//
	// Parameters:
	//   - t: normalized position along the loop, wrapped into [0, 1)
	//
	// Returns:
	//   - [3]float32: the position on the curve
	//   - error: an error if t is not a finite number or the query degenerates
	PointAt(t float32) ([3]float32, error)

	// TangentAt returns the unit tangent at normalized arc length t.
	//
	// Parameters:
	//   - t: normalized position along the loop, wrapped into [0, 1)
	//
	// Returns:
	//   - [3]float32: the unit tangent direction of travel
	//   - error: an error if t is not a finite number or the query degenerates
	TangentAt(t float32) ([3]float32, error)

	// Length returns the total arc length of the closed loop in world units.
	//
	// Returns:
	//   - float32: the loop length
	Length() float32
}

const (
	// minControlPoints is the smallest ring sampling that gives the Akima
	// fit enough neighbors on both sides of every segment.
	minControlPoints = 8

	// wrapPad is how many control points are mirrored past each end of the
	// parameter range before fitting, so the spline is smooth across the seam.
	wrapPad = 3
)

// ringCurve is a smooth closed curve fitted through ring control points.
// One spline per axis is fitted over a wrap-extended parameter range, then a
// dense arc-length table makes t uniform in distance rather than in parameter.
type ringCurve struct {
	sx, sy, sz interp.AkimaSpline

	segments int // number of control-point segments; raw parameter runs [0, segments]

	// cumulative arc length at each dense sample; arc[len-1] is the loop length
	arc    []float32
	params []float32 // raw parameter value of each dense sample
	length float32
}

var _ Curve = &ringCurve{}

// ringCurveBuilder holds construction inputs for NewRingCurve.
type ringCurveBuilder struct {
	radius        float32
	controlPoints int
	arcSamples    int
	points        [][3]float32 // explicit control points override the sampled ring
}

// RingOption is a functional option for configuring ring curve construction.
type RingOption func(*ringCurveBuilder)

// WithRadius sets the ring radius used when sampling control points.
//
// Parameters:
//   - radius: circle radius in world units
//
// Returns:
//   - RingOption: functional option to set the radius
func WithRadius(radius float32) RingOption {
	return func(b *ringCurveBuilder) {
		b.radius = radius
	}
}

// WithControlPoints sets how many equally spaced angles are sampled around the ring.
//
// Parameters:
//   - n: number of control points (minimum 8)
//
// Returns:
//   - RingOption: functional option to set the control point count
func WithControlPoints(n int) RingOption {
	return func(b *ringCurveBuilder) {
		b.controlPoints = n
	}
}

// WithArcSamples sets the density of the arc-length table. Higher values make
// PointAt more uniform in distance at the cost of construction time.
//
// Parameters:
//   - n: number of dense samples (minimum 64)
//
// Returns:
//   - RingOption: functional option to set the table density
func WithArcSamples(n int) RingOption {
	return func(b *ringCurveBuilder) {
		b.arcSamples = n
	}
}

// WithPoints supplies explicit control points instead of sampling a circle.
// The loop is implicitly closed; the first point must not be repeated at the end.
//
// Parameters:
//   - points: ordered control points of the closed loop
//
// Returns:
//   - RingOption: functional option to set explicit control points
func WithPoints(points [][3]float32) RingOption {
	return func(b *ringCurveBuilder) {
		b.points = points
	}
}

// NewRingCurve builds a smooth closed curve through ring control points.
// By default the control points are sampled at equally spaced angles around a
// circle of the configured radius on the ground plane.
//
// Parameters:
//   - options: functional options to configure the ring
//
// Returns:
//   - Curve: the fitted curve
//   - error: an error if the control points cannot produce a valid fit
func NewRingCurve(options ...RingOption) (Curve, error) {
	b := &ringCurveBuilder{
		radius:        40,
		controlPoints: 24,
		arcSamples:    1024,
	}
	for _, option := range options {
		option(b)
	}

	pts := b.points
	if pts == nil {
		pts = sampleRing(b.radius, b.controlPoints)
	}
	if len(pts) < minControlPoints {
		return nil, fmt.Errorf("ring curve needs at least %d control points, got %d", minControlPoints, len(pts))
	}
	for i, p := range pts {
		if !isFinite(p[0]) || !isFinite(p[1]) || !isFinite(p[2]) {
			return nil, fmt.Errorf("control point %d is not finite: %v", i, p)
		}
	}

	c := &ringCurve{segments: len(pts)}

	// Extend the control points past both ends of the parameter range so the
	// per-axis fits see the same neighborhood at the seam as everywhere else.
	n := len(pts)
	total := n + 1 + 2*wrapPad
	us := make([]float64, total)
	xs := make([]float64, total)
	ys := make([]float64, total)
	zs := make([]float64, total)
	for i := 0; i < total; i++ {
		idx := i - wrapPad
		us[i] = float64(idx)
		p := pts[((idx%n)+n)%n]
		xs[i] = float64(p[0])
		ys[i] = float64(p[1])
		zs[i] = float64(p[2])
	}

	if err := c.sx.Fit(us, xs); err != nil {
		return nil, fmt.Errorf("fit x axis: %w", err)
	}
	if err := c.sy.Fit(us, ys); err != nil {
		return nil, fmt.Errorf("fit y axis: %w", err)
	}
	if err := c.sz.Fit(us, zs); err != nil {
		return nil, fmt.Errorf("fit z axis: %w", err)
	}

	if err := c.buildArcTable(max(b.arcSamples, 64)); err != nil {
		return nil, err
	}
	return c, nil
}

// NewRingCurveOrFallback builds a ring curve, degrading to a guaranteed-valid
// circle of reduced radius when construction fails. The demo must never run
// without a defined path, so this never returns nil.
//
// Parameters:
//   - options: functional options forwarded to NewRingCurve
//
// Returns:
//   - Curve: the fitted ring curve, or the fallback circle
func NewRingCurveOrFallback(options ...RingOption) Curve {
	b := &ringCurveBuilder{radius: 40}
	for _, option := range options {
		option(b)
	}

	c, err := NewRingCurve(options...)
	if err != nil {
		log.Printf("[Track] ring curve construction failed, using fallback circle: %v", err)
		return NewCircleCurve(b.radius * 0.8)
	}
	return c
}

// sampleRing produces n control points at equally spaced angles around a
// circle of the given radius on the ground plane.
func sampleRing(radius float32, n int) [][3]float32 {
	if n < minControlPoints {
		n = minControlPoints
	}
	pts := make([][3]float32, n)
	for i := 0; i < n; i++ {
		angle := 2 * math32.Pi * float32(i) / float32(n)
		pts[i] = [3]float32{radius * math32.Sin(angle), 0, radius * math32.Cos(angle)}
	}
	return pts
}

// buildArcTable densely resamples the raw-parameter curve and accumulates
// segment lengths, so normalized t maps to uniform distance along the loop.
func (c *ringCurve) buildArcTable(samples int) error {
	c.arc = make([]float32, samples+1)
	c.params = make([]float32, samples+1)

	prev := c.rawPoint(0)
	for i := 0; i <= samples; i++ {
		u := float32(c.segments) * float32(i) / float32(samples)
		p := c.rawPoint(u)
		if !isFinite(p[0]) || !isFinite(p[1]) || !isFinite(p[2]) {
			return fmt.Errorf("curve sample at u=%f is not finite", u)
		}
		c.params[i] = u
		if i > 0 {
			c.arc[i] = c.arc[i-1] + common.Vec3Length(common.Vec3Sub(p, prev))
		}
		prev = p
	}

	c.length = c.arc[samples]
	if c.length <= 0 || !isFinite(c.length) {
		return errors.New("curve has zero or invalid arc length")
	}
	return nil
}

// rawPoint evaluates the fitted splines at raw parameter u (no arc-length correction).
func (c *ringCurve) rawPoint(u float32) [3]float32 {
	return [3]float32{
		float32(c.sx.Predict(float64(u))),
		float32(c.sy.Predict(float64(u))),
		float32(c.sz.Predict(float64(u))),
	}
}

// paramFor maps normalized arc length t in [0, 1) to a raw spline parameter
// via binary search over the cumulative table plus linear interpolation.
func (c *ringCurve) paramFor(t float32) float32 {
	target := t * c.length

	lo, hi := 0, len(c.arc)-1
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if c.arc[mid] <= target {
			lo = mid
		} else {
			hi = mid
		}
	}

	span := c.arc[hi] - c.arc[lo]
	if span <= 0 {
		return c.params[lo]
	}
	frac := (target - c.arc[lo]) / span
	return c.params[lo] + (c.params[hi]-c.params[lo])*frac
}

func (c *ringCurve) PointAt(t float32) ([3]float32, error) {
	if !isFinite(t) {
		return [3]float32{}, fmt.Errorf("point query with non-finite t=%f", t)
	}
	p := c.rawPoint(c.paramFor(common.WrapUnit(t)))
	if !isFinite(p[0]) || !isFinite(p[1]) || !isFinite(p[2]) {
		return [3]float32{}, fmt.Errorf("point at t=%f is not finite", t)
	}
	return p, nil
}

func (c *ringCurve) TangentAt(t float32) ([3]float32, error) {
	if !isFinite(t) {
		return [3]float32{}, fmt.Errorf("tangent query with non-finite t=%f", t)
	}
	u := float64(c.paramFor(common.WrapUnit(t)))
	d := [3]float32{
		float32(c.sx.PredictDerivative(u)),
		float32(c.sy.PredictDerivative(u)),
		float32(c.sz.PredictDerivative(u)),
	}
	if !isFinite(d[0]) || !isFinite(d[1]) || !isFinite(d[2]) {
		return [3]float32{}, fmt.Errorf("tangent at t=%f is not finite", t)
	}
	if common.Vec3Length(d) < 1e-8 {
		return [3]float32{}, fmt.Errorf("tangent at t=%f is degenerate", t)
	}
	return common.Vec3Normalize(d), nil
}

func (c *ringCurve) Length() float32 {
	return c.length
}

func isFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
