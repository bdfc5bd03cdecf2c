package halfedge

import (
	"github.com/go-gl/mathgl/mgl64"
)

// FaceVertexMesh is the plain indexed polygon container the converter reads
// and the exporter writes. Normals and Colors are parallel to Positions once
// the first AddNormal/AddColor call creates them.
type FaceVertexMesh struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Colors    []mgl64.Vec3
	Faces     [][]int
}

func NewFaceVertexMesh() *FaceVertexMesh {
	return &FaceVertexMesh{
		Positions: make([]mgl64.Vec3, 0, 8),
		Faces:     make([][]int, 0, 6),
	}
}

// AddVertex appends a position and returns its index.
func (fm *FaceVertexMesh) AddVertex(x, y, z float64) int {
	fm.Positions = append(fm.Positions, mgl64.Vec3{x, y, z})
	return len(fm.Positions) - 1
}

func (fm *FaceVertexMesh) AddNormal(x, y, z float64) int {
	if fm.Normals == nil {
		fm.Normals = make([]mgl64.Vec3, 0, cap(fm.Positions))
	}
	fm.Normals = append(fm.Normals, mgl64.Vec3{x, y, z})
	return len(fm.Normals) - 1
}

func (fm *FaceVertexMesh) AddColor(r, g, b float64) int {
	if fm.Colors == nil {
		fm.Colors = make([]mgl64.Vec3, 0, cap(fm.Positions))
	}
	fm.Colors = append(fm.Colors, mgl64.Vec3{r, g, b})
	return len(fm.Colors) - 1
}

// AddFace appends a face loop. Indices are not checked here; Convert
// rejects out-of-range ones.
func (fm *FaceVertexMesh) AddFace(indices ...int) {
	face := make([]int, len(indices))
	copy(face, indices)
	fm.Faces = append(fm.Faces, face)
}

func (fm *FaceVertexMesh) VertexCount() int {
	return len(fm.Positions)
}

func (fm *FaceVertexMesh) FaceCount() int {
	return len(fm.Faces)
}

func (fm *FaceVertexMesh) Copy() *FaceVertexMesh {
	c := &FaceVertexMesh{
		Positions: append([]mgl64.Vec3(nil), fm.Positions...),
		Faces:     make([][]int, len(fm.Faces)),
	}
	if fm.Normals != nil {
		c.Normals = append([]mgl64.Vec3(nil), fm.Normals...)
	}
	if fm.Colors != nil {
		c.Colors = append([]mgl64.Vec3(nil), fm.Colors...)
	}
	for i, f := range fm.Faces {
		c.Faces[i] = append([]int(nil), f...)
	}
	return c
}

// FaceNormal returns the unit normal of face i using Newell's method, so it
// stays stable for the non-planar pentagons a corner cut can leave behind.
func (fm *FaceVertexMesh) FaceNormal(i int) mgl64.Vec3 {
	face := fm.Faces[i]
	var n mgl64.Vec3
	for k := range face {
		a := fm.Positions[face[k]]
		b := fm.Positions[face[(k+1)%len(face)]]
		n[0] += (a[1] - b[1]) * (a[2] + b[2])
		n[1] += (a[2] - b[2]) * (a[0] + b[0])
		n[2] += (a[0] - b[0]) * (a[1] + b[1])
	}
	if n.Len() == 0 {
		return mgl64.Vec3{0, 0, 1}
	}
	return n.Normalize()
}

// ComputeNormals replaces Normals with per-vertex normals averaged from the
// faces that use each vertex, weighted by face area.
func (fm *FaceVertexMesh) ComputeNormals() {
	acc := make([]mgl64.Vec3, len(fm.Positions))
	for _, face := range fm.Faces {
		if len(face) < 3 {
			continue
		}
		// fan cross products sum to twice the area vector
		origin := fm.Positions[face[0]]
		var area mgl64.Vec3
		for k := 2; k < len(face); k++ {
			u := fm.Positions[face[k-1]].Sub(origin)
			v := fm.Positions[face[k]].Sub(origin)
			area = area.Add(u.Cross(v))
		}
		for _, idx := range face {
			acc[idx] = acc[idx].Add(area)
		}
	}
	fm.Normals = make([]mgl64.Vec3, len(acc))
	for i, n := range acc {
		if n.Len() == 0 {
			fm.Normals[i] = mgl64.Vec3{1, 0, 0}
			continue
		}
		fm.Normals[i] = n.Normalize()
	}
}

// Triangulate fans every polygon from its first index and returns a new
// triangle-only mesh sharing the same vertex attributes.
func (fm *FaceVertexMesh) Triangulate() *FaceVertexMesh {
	tm := fm.Copy()
	tm.Faces = make([][]int, 0, len(fm.Faces)*2)
	for _, face := range fm.Faces {
		for k := 2; k < len(face); k++ {
			tm.Faces = append(tm.Faces, []int{face[0], face[k-1], face[k]})
		}
	}
	return tm
}

// Bounds returns the axis-aligned extents of the positions.
func (fm *FaceVertexMesh) Bounds() (min, max mgl64.Vec3) {
	if len(fm.Positions) == 0 {
		return min, max
	}
	min, max = fm.Positions[0], fm.Positions[0]
	for _, p := range fm.Positions[1:] {
		for a := 0; a < 3; a++ {
			if p[a] < min[a] {
				min[a] = p[a]
			} else if p[a] > max[a] {
				max[a] = p[a]
			}
		}
	}
	return min, max
}

// Centre moves all positions so the centre of the bounding box is the origin.
func (fm *FaceVertexMesh) Centre() {
	if len(fm.Positions) == 0 {
		return
	}
	min, max := fm.Bounds()
	c := min.Add(max).Mul(0.5)
	for i := range fm.Positions {
		fm.Positions[i] = fm.Positions[i].Sub(c)
	}
}

// NewCube returns an axis-aligned cube centred on the origin: 8 vertices
// and 6 quads wound counter-clockwise when seen from outside.
func NewCube(size float64) *FaceVertexMesh {
	h := size / 2
	m := NewFaceVertexMesh()

	m.AddVertex(-h, -h, -h) // 0
	m.AddVertex(h, -h, -h)  // 1
	m.AddVertex(h, h, -h)   // 2
	m.AddVertex(-h, h, -h)  // 3
	m.AddVertex(-h, -h, h)  // 4
	m.AddVertex(h, -h, h)   // 5
	m.AddVertex(h, h, h)    // 6
	m.AddVertex(-h, h, h)   // 7

	m.AddFace(1, 2, 6, 5) // +X
	m.AddFace(0, 4, 7, 3) // -X
	m.AddFace(2, 3, 7, 6) // +Y
	m.AddFace(0, 1, 5, 4) // -Y
	m.AddFace(4, 5, 6, 7) // +Z
	m.AddFace(3, 2, 1, 0) // -Z

	return m
}
