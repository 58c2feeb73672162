package mesh

import (
	"errors"
	"fmt"

	"github.com/Areng14/BeePEE/pkg/math"
)

// ErrIndexOutOfRange is returned when a triangle references a missing vertex.
var ErrIndexOutOfRange = errors.New("vertex index out of range")

// Validate checks that every triangle index references an existing vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, t := range m.Triangles {
		for _, idx := range t {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: triangle %d references vertex %d (have %d)", ErrIndexOutOfRange, i, idx, n)
			}
		}
	}
	return nil
}

// Stats returns vertex and triangle counts plus the bounding box.
func (m *Mesh) Stats() Stats {
	return Stats{
		Vertices:  len(m.Vertices),
		Triangles: len(m.Triangles),
		Bounds:    math.Bounds(m.Vertices),
	}
}
