package halfedge

import (
	"fmt"
)

// Exporter writes half-edge meshes back out as FaceVertexMesh.
type Exporter struct {
	opts options
}

func NewExporter(opts ...Option) *Exporter {
	return &Exporter{opts: applyOptions(opts)}
}

// Export emits vertices in arena order, each with the placeholder normal
// and color, and one polygon per face in arena order. Callers usually
// overwrite the placeholders, for example with ComputeNormals.
func (x *Exporter) Export(m *Mesh) (*FaceVertexMesh, error) {
	fm := NewFaceVertexMesh()
	n, c := x.opts.placeholderNorm, x.opts.placeholderColor

	// vertex handle -> export index, scoped to this call
	index := make([]int, len(m.vertices))
	for v := range m.Vertices() {
		p := m.vertices[v].Position
		index[v] = fm.AddVertex(p[0], p[1], p[2])
		fm.AddNormal(n[0], n[1], n[2])
		fm.AddColor(c[0], c[1], c[2])
	}

	for f := range m.Faces() {
		loop := make([]int, 0, 4)
		err := m.FaceVertices(f, func(v VertexID) {
			loop = append(loop, index[v])
		})
		if err != nil {
			return nil, fmt.Errorf("export face %d: %w", f, err)
		}
		fm.AddFace(loop...)
	}

	x.opts.log().Debug("exported mesh", "mesh", m.id, "vertices", fm.VertexCount(), "faces", fm.FaceCount())
	return fm, nil
}
