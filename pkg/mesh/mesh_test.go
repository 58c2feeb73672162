package mesh

import (
	"errors"
	"testing"

	"github.com/Areng14/BeePEE/pkg/math"
)

func TestMesh_Validate(t *testing.T) {
	m := &Mesh{
		Vertices:  make([]math.Vec3, 4),
		Triangles: []Triangle{{0, 1, 2}, {0, 2, 3}},
	}
	if err := m.Validate(); err != nil {
		t.Errorf("expected valid mesh, got %v", err)
	}

	tests := []struct {
		name string
		tri  Triangle
	}{
		{"past end", Triangle{0, 1, 4}},
		{"negative", Triangle{-1, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := &Mesh{
				Vertices:  m.Vertices,
				Triangles: append([]Triangle{{0, 1, 2}}, tt.tri),
			}
			err := bad.Validate()
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("expected ErrIndexOutOfRange, got %v", err)
			}
		})
	}
}

func TestMesh_Stats(t *testing.T) {
	m := &Mesh{
		Vertices: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 2, Y: 0, Z: 0},
			{X: 0, Y: 3, Z: -1},
		},
		Triangles: []Triangle{{0, 1, 2}},
	}
	s := m.Stats()
	if s.Vertices != 3 || s.Triangles != 1 {
		t.Errorf("expected 3 vertices and 1 triangle, got %d and %d", s.Vertices, s.Triangles)
	}
	if s.Bounds.Min != (math.Vec3{X: 0, Y: 0, Z: -1}) {
		t.Errorf("unexpected bounds min %v", s.Bounds.Min)
	}
	if s.Bounds.Max != (math.Vec3{X: 2, Y: 3, Z: 0}) {
		t.Errorf("unexpected bounds max %v", s.Bounds.Max)
	}
}
