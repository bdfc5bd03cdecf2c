package halfedge

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func eulerCharacteristic(m *Mesh) int {
	return m.VertexCount() - m.EdgeCount()/2 + m.FaceCount()
}

func TestSmoothVertexCubeCorner(t *testing.T) {
	m := mustConvert(t, NewCube(1))
	corner := m.Vertex(6).Position

	if err := NewTopologyEditor().SmoothVertex(m, 6, 0.5); err != nil {
		t.Fatalf("SmoothVertex() error = %v", err)
	}

	if m.VertexCount() != 10 || m.FaceCount() != 7 || m.EdgeCount() != 30 {
		t.Fatalf("counts = %d/%d/%d, want 10/30/7", m.VertexCount(), m.EdgeCount(), m.FaceCount())
	}
	if err := m.IntegrityCheck(); err != nil {
		t.Fatalf("IntegrityCheck() = %v", err)
	}

	newFace := FaceID(6)
	if n, _ := m.FaceSides(newFace); n != 3 {
		t.Errorf("new face has %d sides, want 3", n)
	}

	var got []mgl64.Vec3
	if err := m.FaceVertices(newFace, func(v VertexID) { got = append(got, m.Vertex(v).Position) }); err != nil {
		t.Fatal(err)
	}
	want := []mgl64.Vec3{{0, 0.5, 0.5}, {0.5, 0.5, 0}, {0.5, 0, 0.5}}
	for _, w := range want {
		if !slices.ContainsFunc(got, func(p mgl64.Vec3) bool { return vecAlmostEqual(p, w) }) {
			t.Errorf("new face %v is missing corner %v", got, w)
		}
	}

	// counter-clockwise from outside: the normal points away from the cube
	n := got[1].Sub(got[0]).Cross(got[2].Sub(got[0]))
	if n.Dot(corner) <= 0 {
		t.Errorf("new face normal %v points inwards", n)
	}

	for v := range m.Vertices() {
		if vecAlmostEqual(m.Vertex(v).Position, corner) {
			t.Errorf("vertex %d still sits on the removed corner", v)
		}
	}

	pentagons := 0
	for f := range m.Faces() {
		if n, _ := m.FaceSides(f); n == 5 {
			pentagons++
		}
	}
	if pentagons != 3 {
		t.Errorf("%d faces have 5 sides, want 3", pentagons)
	}
}

func TestSmoothVertexEveryCorner(t *testing.T) {
	for _, amount := range []float64{0, 0.25, 0.5, 1} {
		for v := VertexID(0); v < 8; v++ {
			m := mustConvert(t, NewCube(1))
			if err := NewTopologyEditor().SmoothVertex(m, v, amount); err != nil {
				t.Fatalf("SmoothVertex(%d, %v) error = %v", v, amount, err)
			}
			if m.VertexCount() != 10 || m.FaceCount() != 7 {
				t.Errorf("SmoothVertex(%d, %v): %d vertices, %d faces", v, amount, m.VertexCount(), m.FaceCount())
			}
			for w := range m.Vertices() {
				if valence, err := m.Valence(w); err != nil || valence != 3 {
					t.Errorf("SmoothVertex(%d, %v): Valence(%d) = %d, %v", v, amount, w, valence, err)
				}
			}
			if chi := eulerCharacteristic(m); chi != 2 {
				t.Errorf("SmoothVertex(%d, %v): Euler characteristic %d, want 2", v, amount, chi)
			}
		}
	}
}

func TestSmoothVertexRejects(t *testing.T) {
	testCases := []struct {
		name     string
		vertex   VertexID
		amount   float64
		sentinel error
	}{
		{"negative amount", 0, -0.1, ErrMalformedInput},
		{"amount above one", 0, 1.5, ErrMalformedInput},
		{"NaN amount", 0, math.NaN(), ErrMalformedInput},
		{"unknown vertex", 99, 0.5, ErrInvalidHandle},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := mustConvert(t, NewCube(1))
			before := m.snapshot()

			err := NewTopologyEditor().SmoothVertex(m, tc.vertex, tc.amount)
			if !errors.Is(err, tc.sentinel) {
				t.Fatalf("SmoothVertex() error = %v, want %v", err, tc.sentinel)
			}
			assertUnchanged(t, m, before)
		})
	}
}

func TestSmoothVertexNonManifoldRing(t *testing.T) {
	m := mustConvert(t, NewCube(1))
	ring, err := m.Ring(2)
	if err != nil {
		t.Fatal(err)
	}
	m.edges[m.edges[ring[1]].Opposite].Next = ring[1]
	before := m.snapshot()

	err = NewTopologyEditor().SmoothVertex(m, 2, 0.5)
	if !errors.Is(err, ErrDegenerateTopology) {
		t.Fatalf("SmoothVertex() error = %v, want ErrDegenerateTopology", err)
	}
	assertUnchanged(t, m, before)
}

func TestSmoothVertexRollsBack(t *testing.T) {
	m := mustConvert(t, NewCube(1))
	// Corrupt a vertex away from the cut so the post-edit check fails.
	m.vertices[0].Edge = m.faces[0].Edge
	before := m.snapshot()

	err := NewTopologyEditor().SmoothVertex(m, 6, 0.5)
	var iv *IntegrityViolation
	if !errors.As(err, &iv) {
		t.Fatalf("SmoothVertex() error = %v, want IntegrityViolation", err)
	}
	assertUnchanged(t, m, before)

	// Without verification the cut itself goes through.
	if err := NewTopologyEditor(WithVerify(false)).SmoothVertex(m, 6, 0.5); err != nil {
		t.Fatalf("SmoothVertex() without verify error = %v", err)
	}
	if m.VertexCount() != 10 {
		t.Errorf("VertexCount() = %d, want 10", m.VertexCount())
	}
}

func TestSmoothWhere(t *testing.T) {
	m := mustConvert(t, NewCube(1))
	editor := NewTopologyEditor()
	top := func(_ VertexID, v Vertex) bool { return v.Position.Z() > 0 }

	n, err := editor.SmoothWhere(m, top, 0.35)
	if err != nil {
		t.Fatalf("SmoothWhere() error = %v", err)
	}
	if n != 4 {
		t.Errorf("first pass smoothed %d vertices, want 4", n)
	}
	if m.VertexCount() != 16 || m.FaceCount() != 10 {
		t.Errorf("after first pass: %d vertices, %d faces, want 16 and 10", m.VertexCount(), m.FaceCount())
	}

	for pass := 2; pass <= 3; pass++ {
		faces := m.FaceCount()
		n, err := editor.SmoothWhere(m, top, 0.35)
		if err != nil {
			t.Fatalf("pass %d: SmoothWhere() error = %v", pass, err)
		}
		if m.FaceCount() != faces+n {
			t.Errorf("pass %d: %d faces, want %d", pass, m.FaceCount(), faces+n)
		}
		if err := m.IntegrityCheck(); err != nil {
			t.Fatalf("pass %d: IntegrityCheck() = %v", pass, err)
		}
		if chi := eulerCharacteristic(m); chi != 2 {
			t.Errorf("pass %d: Euler characteristic %d, want 2", pass, chi)
		}
	}
}

func assertUnchanged(t *testing.T, m *Mesh, before snapshot) {
	t.Helper()
	if !slices.Equal(m.vertices, before.vertices) ||
		!slices.Equal(m.edges, before.edges) ||
		!slices.Equal(m.faces, before.faces) {
		t.Error("mesh changed after a failed edit")
	}
}
