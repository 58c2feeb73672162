package mesh

import "iter"

// Fan returns the fan triangulation of a convex polygon given by vertex
// indices. The first index is the apex of every triangle: an n-gon yields
// n-2 triangles {p[0], p[i], p[i+1]}. Fewer than 3 indices yield nothing.
//
// The sequence is lazy and may be ranged over any number of times.
// The polygon is not checked for degeneracy.
func Fan(polygon []int) iter.Seq[Triangle] {
	return func(yield func(Triangle) bool) {
		for i := 1; i+1 < len(polygon); i++ {
			if !yield(Triangle{polygon[0], polygon[i], polygon[i+1]}) {
				return
			}
		}
	}
}

// Triangulate collects Fan(polygon) into a slice.
func Triangulate(polygon []int) []Triangle {
	if len(polygon) < 3 {
		return nil
	}
	tris := make([]Triangle, 0, len(polygon)-2)
	for t := range Fan(polygon) {
		tris = append(tris, t)
	}
	return tris
}

// AddPolygon fan-triangulates polygon and appends the triangles to m.
// Returns the number of triangles added.
func (m *Mesh) AddPolygon(polygon []int) int {
	n := 0
	for t := range Fan(polygon) {
		m.Triangles = append(m.Triangles, t)
		n++
	}
	return n
}
