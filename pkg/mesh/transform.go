package mesh

import (
	gomath "math"

	"github.com/Areng14/BeePEE/pkg/math"
)

// Transform scales every vertex and then rotates it by rot, in place.
//
// The rotation is applied axis by axis and each step reads specific
// intermediate values, so it is not equivalent to a combined rotation matrix:
//
//	roll  (X): y' = y*cos(r) - z*sin(r),    zr = y*sin(r) + z*cos(r)
//	pitch (Y): x' = x*cos(p) + zr*sin(p),   z' = -x*sin(p) + zr*cos(p)
//	yaw   (Z): xf = x'*cos(w) - y'*sin(w),  yf = x'*sin(w) + y'*cos(w)
//
// The result is (xf, yf, z'). Existing collision models depend on this exact
// order. Arithmetic is done in float64 and rounded once per component.
// scale must be validated by the caller.
func Transform(m *Mesh, scale float64, rot Rotation) {
	if scale == 1 && rot.IsZero() {
		return
	}

	r := newAxisRotation(rot.Roll)
	p := newAxisRotation(rot.Pitch)
	w := newAxisRotation(rot.Yaw)

	for i := range m.Vertices {
		m.Vertices[i] = transformVertex(m.Vertices[i], scale, r, p, w)
	}
}

// TransformVertex applies the same transform as Transform to a single point.
func TransformVertex(v math.Vec3, scale float64, rot Rotation) math.Vec3 {
	return transformVertex(v, scale,
		newAxisRotation(rot.Roll),
		newAxisRotation(rot.Pitch),
		newAxisRotation(rot.Yaw))
}

// axisRotation caches the sine and cosine of one angle.
type axisRotation struct {
	cos, sin float64
}

func newAxisRotation(degrees float64) axisRotation {
	if degrees == 0 {
		return axisRotation{cos: 1, sin: 0}
	}
	rad := math.Radians(degrees)
	return axisRotation{cos: gomath.Cos(rad), sin: gomath.Sin(rad)}
}

func transformVertex(v math.Vec3, scale float64, r, p, w axisRotation) math.Vec3 {
	x := float64(v.X) * scale
	y := float64(v.Y) * scale
	z := float64(v.Z) * scale

	// Roll
	yr := y*r.cos - z*r.sin
	zr := y*r.sin + z*r.cos

	// Pitch uses the scaled x, not a rotated one.
	xp := x*p.cos + zr*p.sin
	zp := -x*p.sin + zr*p.cos

	// Yaw
	xf := xp*w.cos - yr*w.sin
	yf := xp*w.sin + yr*w.cos

	return math.Vec3{X: float32(xf), Y: float32(yf), Z: float32(zp)}
}
