// Package mesh provides the in-memory triangle mesh and the geometry stages
// applied to it between parsing and encoding.
package mesh

import (
	"github.com/Areng14/BeePEE/pkg/math"
)

// Triangle holds three zero-based indices into Mesh.Vertices.
type Triangle [3]int

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Vertices  []math.Vec3
	Triangles []Triangle
}

// Rotation holds Euler angles in degrees.
type Rotation struct {
	Roll  float64 // About X
	Pitch float64 // About Y
	Yaw   float64 // About Z
}

// IsZero returns true if no rotation is applied.
func (r Rotation) IsZero() bool {
	return r.Roll == 0 && r.Pitch == 0 && r.Yaw == 0
}

// Stats summarizes a mesh for logging and reporting.
type Stats struct {
	Vertices  int
	Triangles int
	Bounds    math.Box
}
