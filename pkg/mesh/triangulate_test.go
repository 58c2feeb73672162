package mesh

import "testing"

func TestFan_TriangleCount(t *testing.T) {
	for n := 3; n <= 12; n++ {
		polygon := make([]int, n)
		for i := range polygon {
			polygon[i] = 100 + i
		}

		tris := Triangulate(polygon)
		if len(tris) != n-2 {
			t.Errorf("%d-gon: expected %d triangles, got %d", n, n-2, len(tris))
		}
		for i, tri := range tris {
			if tri[0] != polygon[0] {
				t.Errorf("%d-gon triangle %d: expected apex %d, got %d", n, i, polygon[0], tri[0])
			}
			want := Triangle{polygon[0], polygon[i+1], polygon[i+2]}
			if tri != want {
				t.Errorf("%d-gon triangle %d: expected %v, got %v", n, i, want, tri)
			}
		}
	}
}

func TestFan_Quad(t *testing.T) {
	got := Triangulate([]int{4, 5, 6, 7})
	want := []Triangle{{4, 5, 6}, {4, 6, 7}}
	if len(got) != len(want) {
		t.Fatalf("expected %d triangles, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("triangle %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestFan_TooFewIndices(t *testing.T) {
	for _, polygon := range [][]int{nil, {0}, {0, 1}} {
		if tris := Triangulate(polygon); len(tris) != 0 {
			t.Errorf("Triangulate(%v): expected no triangles, got %v", polygon, tris)
		}
	}
}

func TestFan_Restartable(t *testing.T) {
	seq := Fan([]int{0, 1, 2, 3, 4})

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != 3 || second != 3 {
		t.Errorf("expected 3 triangles on each pass, got %d and %d", first, second)
	}
}

func TestFan_EarlyStop(t *testing.T) {
	count := 0
	for range Fan([]int{0, 1, 2, 3, 4, 5}) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("expected to stop after 2 triangles, got %d", count)
	}
}

func TestMesh_AddPolygon(t *testing.T) {
	m := &Mesh{}
	if n := m.AddPolygon([]int{0, 1, 2}); n != 1 {
		t.Errorf("expected 1 triangle for a triangle, got %d", n)
	}
	if n := m.AddPolygon([]int{0, 2, 3, 4, 5}); n != 3 {
		t.Errorf("expected 3 triangles for a pentagon, got %d", n)
	}
	if len(m.Triangles) != 4 {
		t.Errorf("expected 4 triangles total, got %d", len(m.Triangles))
	}
}
