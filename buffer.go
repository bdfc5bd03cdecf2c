package halfedge

import (
	"github.com/chewxy/math32"
)

// GeometryBuffer is a flat triangle list ready for upload to a renderer:
// three float32 per vertex for each attribute and three indices per
// triangle.
type GeometryBuffer struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
	Indices   []uint32
}

// NewGeometryBuffer triangulates fm and flattens its attributes. Missing
// normals are computed; missing colors default to white.
func NewGeometryBuffer(fm *FaceVertexMesh) *GeometryBuffer {
	tm := fm.Triangulate()
	if tm.Normals == nil {
		tm.ComputeNormals()
	}

	n := len(tm.Positions)
	b := &GeometryBuffer{
		Positions: make([]float32, 0, n*3),
		Normals:   make([]float32, 0, n*3),
		Colors:    make([]float32, 0, n*3),
		Indices:   make([]uint32, 0, len(tm.Faces)*3),
	}
	for i, p := range tm.Positions {
		b.Positions = append(b.Positions, float32(p[0]), float32(p[1]), float32(p[2]))

		nx, ny, nz := normalize32(float32(tm.Normals[i][0]), float32(tm.Normals[i][1]), float32(tm.Normals[i][2]))
		b.Normals = append(b.Normals, nx, ny, nz)

		if tm.Colors != nil {
			c := tm.Colors[i]
			b.Colors = append(b.Colors, float32(c[0]), float32(c[1]), float32(c[2]))
		} else {
			b.Colors = append(b.Colors, 1, 1, 1)
		}
	}
	for _, tri := range tm.Faces {
		b.Indices = append(b.Indices, uint32(tri[0]), uint32(tri[1]), uint32(tri[2]))
	}
	return b
}

func (b *GeometryBuffer) VertexCount() int   { return len(b.Positions) / 3 }
func (b *GeometryBuffer) TriangleCount() int { return len(b.Indices) / 3 }

// Position returns vertex i.
func (b *GeometryBuffer) Position(i uint32) [3]float32 {
	return [3]float32{b.Positions[i*3], b.Positions[i*3+1], b.Positions[i*3+2]}
}

// TriangleNormal returns the unit normal of triangle t from its winding.
func (b *GeometryBuffer) TriangleNormal(t int) [3]float32 {
	p0 := b.Position(b.Indices[t*3])
	p1 := b.Position(b.Indices[t*3+1])
	p2 := b.Position(b.Indices[t*3+2])

	u1, u2, u3 := p1[0]-p0[0], p1[1]-p0[1], p1[2]-p0[2]
	v1, v2, v3 := p2[0]-p0[0], p2[1]-p0[1], p2[2]-p0[2]

	x, y, z := normalize32(u2*v3-u3*v2, u3*v1-u1*v3, u1*v2-u2*v1)
	return [3]float32{x, y, z}
}

func normalize32(x, y, z float32) (float32, float32, float32) {
	l := math32.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return 0, 0, 1
	}
	return x / l, y / l, z / l
}
