package halfedge

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFaceVertexMeshAttributesAreLazy(t *testing.T) {
	fm := NewFaceVertexMesh()
	fm.AddVertex(0, 0, 0)
	if fm.Normals != nil || fm.Colors != nil {
		t.Fatal("attributes allocated before first use")
	}
	if i := fm.AddNormal(0, 1, 0); i != 0 {
		t.Errorf("AddNormal() = %d, want 0", i)
	}
	if i := fm.AddColor(1, 0, 0); i != 0 {
		t.Errorf("AddColor() = %d, want 0", i)
	}
}

func TestAddFaceCopiesIndices(t *testing.T) {
	fm := NewCube(1)
	loop := []int{0, 1, 2}
	fm.AddFace(loop...)
	loop[0] = 7
	if got := fm.Faces[len(fm.Faces)-1][0]; got != 0 {
		t.Errorf("face changed with caller slice: first index %d", got)
	}
}

func TestTriangulate(t *testing.T) {
	cube := NewCube(1)
	tm := cube.Triangulate()

	if tm.FaceCount() != 12 {
		t.Fatalf("FaceCount() = %d, want 12", tm.FaceCount())
	}
	for i, f := range tm.Faces {
		if len(f) != 3 {
			t.Errorf("face %d has %d corners", i, len(f))
		}
	}
	if cube.FaceCount() != 6 {
		t.Error("Triangulate() modified its receiver")
	}
	// winding is kept, so each triangle faces the way its quad did
	for i := range tm.Faces {
		if got, want := tm.FaceNormal(i), cube.FaceNormal(i/2); !vecAlmostEqual(got, want) {
			t.Errorf("triangle %d normal %v, want %v", i, got, want)
		}
	}
}

func TestFaceNormal(t *testing.T) {
	cube := NewCube(2)
	testCases := []struct {
		face int
		want mgl64.Vec3
	}{
		{0, mgl64.Vec3{1, 0, 0}},
		{1, mgl64.Vec3{-1, 0, 0}},
		{2, mgl64.Vec3{0, 1, 0}},
		{3, mgl64.Vec3{0, -1, 0}},
		{4, mgl64.Vec3{0, 0, 1}},
		{5, mgl64.Vec3{0, 0, -1}},
	}
	for _, tc := range testCases {
		if got := cube.FaceNormal(tc.face); !vecAlmostEqual(got, tc.want) {
			t.Errorf("FaceNormal(%d) = %v, want %v", tc.face, got, tc.want)
		}
	}
}

func TestComputeNormals(t *testing.T) {
	cube := NewCube(1)
	cube.ComputeNormals()

	s := 1 / math.Sqrt(3)
	for i, p := range cube.Positions {
		want := mgl64.Vec3{math.Copysign(s, p[0]), math.Copysign(s, p[1]), math.Copysign(s, p[2])}
		if !vecAlmostEqual(cube.Normals[i], want) {
			t.Errorf("normal %d = %v, want %v", i, cube.Normals[i], want)
		}
	}

	lonely := NewFaceVertexMesh()
	lonely.AddVertex(3, 3, 3)
	lonely.ComputeNormals()
	if lonely.Normals[0] != (mgl64.Vec3{1, 0, 0}) {
		t.Errorf("unused vertex normal = %v, want (1,0,0)", lonely.Normals[0])
	}
}

func TestBoundsAndCentre(t *testing.T) {
	fm := NewCube(2)
	for i := range fm.Positions {
		fm.Positions[i] = fm.Positions[i].Add(mgl64.Vec3{5, -1, 2})
	}

	min, max := fm.Bounds()
	if !vecAlmostEqual(min, mgl64.Vec3{4, -2, 1}) || !vecAlmostEqual(max, mgl64.Vec3{6, 0, 3}) {
		t.Errorf("Bounds() = %v, %v", min, max)
	}

	fm.Centre()
	min, max = fm.Bounds()
	if !vecAlmostEqual(min, mgl64.Vec3{-1, -1, -1}) || !vecAlmostEqual(max, mgl64.Vec3{1, 1, 1}) {
		t.Errorf("Bounds() after Centre() = %v, %v", min, max)
	}
}
