package halfedge

import (
	"errors"
	"testing"
)

func TestConvertCube(t *testing.T) {
	cube := NewCube(1)
	m, err := NewConverter().Convert(cube)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if m.VertexCount() != 8 || m.EdgeCount() != 24 || m.FaceCount() != 6 {
		t.Fatalf("counts = %d/%d/%d, want 8/24/6", m.VertexCount(), m.EdgeCount(), m.FaceCount())
	}
	for v := range m.Vertices() {
		if got := m.Vertex(v).Position; got != cube.Positions[v] {
			t.Errorf("vertex %d at %v, want %v", v, got, cube.Positions[v])
		}
	}

	pairs := make(map[[2]EdgeID]bool)
	for i := 0; i < m.EdgeCount(); i++ {
		e := EdgeID(i)
		opp := m.Edge(e).Opposite
		if m.Edge(opp).Opposite != e {
			t.Errorf("edge %d: opposite.opposite = %d", e, m.Edge(opp).Opposite)
		}
		key := [2]EdgeID{min(e, opp), max(e, opp)}
		pairs[key] = true
	}
	if len(pairs) != 12 {
		t.Errorf("distinct opposite pairs = %d, want 12", len(pairs))
	}

	if err := m.IntegrityCheck(); err != nil {
		t.Errorf("IntegrityCheck() = %v", err)
	}
}

func TestConvertErrors(t *testing.T) {
	openCube := NewCube(1)
	openCube.Faces = openCube.Faces[:5]

	doubled := NewCube(1)
	doubled.AddFace(1, 2, 6, 5)

	outOfRange := NewCube(1)
	outOfRange.Faces[2] = []int{2, 3, 8, 6}

	negative := NewCube(1)
	negative.Faces[0] = []int{1, -1, 6, 5}

	short := NewCube(1)
	short.AddFace(0, 1)

	repeated := NewCube(1)
	repeated.Faces[4] = []int{4, 5, 5, 7}

	testCases := []struct {
		name        string
		input       *FaceVertexMesh
		sentinel    error
		missingTwin bool
	}{
		{"open boundary", openCube, ErrNonManifold, true},
		{"edge shared by three faces", doubled, ErrNonManifold, false},
		{"index past the end", outOfRange, ErrMalformedInput, false},
		{"negative index", negative, ErrMalformedInput, false},
		{"face with two vertices", short, ErrMalformedInput, false},
		{"repeated corner", repeated, ErrMalformedInput, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewConverter().Convert(tc.input)
			if m != nil {
				t.Error("Convert() returned a mesh alongside an error")
			}
			if !errors.Is(err, tc.sentinel) {
				t.Fatalf("Convert() error = %v, want %v", err, tc.sentinel)
			}
			var nme *NonManifoldError
			if errors.As(err, &nme) && nme.Missing != tc.missingTwin {
				t.Errorf("NonManifoldError.Missing = %v, want %v", nme.Missing, tc.missingTwin)
			}
		})
	}
}

func TestConvertReportsBadIndex(t *testing.T) {
	fm := NewCube(1)
	fm.Faces[3] = []int{0, 1, 5, 99}

	_, err := NewConverter().Convert(fm)
	var mie *MalformedInputError
	if !errors.As(err, &mie) {
		t.Fatalf("Convert() error = %v, want MalformedInputError", err)
	}
	if mie.Face != 3 || mie.Index != 99 {
		t.Errorf("MalformedInputError = face %d index %d, want face 3 index 99", mie.Face, mie.Index)
	}
}

func TestConvertTetrahedron(t *testing.T) {
	// triangles are accepted as well as quads
	fm := NewFaceVertexMesh()
	fm.AddVertex(0, 0, 0)
	fm.AddVertex(1, 0, 0)
	fm.AddVertex(0, 1, 0)
	fm.AddVertex(0, 0, 1)
	fm.AddFace(0, 2, 1)
	fm.AddFace(0, 1, 3)
	fm.AddFace(1, 2, 3)
	fm.AddFace(2, 0, 3)

	m, err := NewConverter().Convert(fm)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if m.EdgeCount() != 12 {
		t.Errorf("EdgeCount() = %d, want 12", m.EdgeCount())
	}
}
