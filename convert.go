package halfedge

import (
	"fmt"
)

// Converter builds half-edge meshes from FaceVertexMesh input.
type Converter struct {
	opts options
}

func NewConverter(opts ...Option) *Converter {
	return &Converter{opts: applyOptions(opts)}
}

// edgeKey is a directed edge by its base and destination vertex.
type edgeKey struct {
	from, to VertexID
}

// Convert creates one vertex per input position, one half-edge per face
// side and pairs every half-edge with its twin. The input must describe a
// closed manifold; an open boundary or an edge shared by more than two
// faces fails with a NonManifoldError and no mesh is returned.
func (c *Converter) Convert(fm *FaceVertexMesh) (*Mesh, error) {
	nv := len(fm.Positions)
	ne := 0
	for fi, face := range fm.Faces {
		if len(face) < 3 {
			return nil, &MalformedInputError{Face: fi, Index: -1,
				Reason: fmt.Sprintf("face %d has %d vertices", fi, len(face))}
		}
		for k, idx := range face {
			if idx < 0 || idx >= nv {
				return nil, &MalformedInputError{Face: fi, Index: idx}
			}
			if idx == face[(k+1)%len(face)] {
				return nil, &MalformedInputError{Face: fi, Index: idx,
					Reason: fmt.Sprintf("face %d repeats vertex %d on consecutive corners", fi, idx)}
			}
		}
		ne += len(face)
	}

	m := newMesh(nv, ne, len(fm.Faces))
	for _, p := range fm.Positions {
		m.addVertex(p)
	}

	for _, face := range fm.Faces {
		f := m.addFace()
		first := EdgeID(len(m.edges))
		for k, idx := range face {
			e := m.addEdge()
			m.edges[e] = HalfEdge{
				Vertex:   VertexID(idx),
				Face:     f,
				Next:     first + EdgeID((k+1)%len(face)),
				Opposite: NoEdge,
			}
			m.vertices[idx].Edge = e
		}
		m.faces[f].Edge = first
	}

	if err := pairTwins(m); err != nil {
		return nil, err
	}

	log := c.opts.log()
	log.Debug("converted mesh", "mesh", m.id, "vertices", len(m.vertices), "edges", len(m.edges), "faces", len(m.faces))

	if c.opts.verify {
		if err := m.IntegrityCheck(); err != nil {
			log.Error("converted mesh failed integrity check", "mesh", m.id, "err", err)
			return nil, fmt.Errorf("convert: %w", err)
		}
	}
	return m, nil
}

// pairTwins links each half-edge a->b with the half-edge b->a. Every
// directed edge may occur once; its twin is found under the reversed key.
func pairTwins(m *Mesh) error {
	keys := make(map[edgeKey]EdgeID, len(m.edges))
	for i := range m.edges {
		e := EdgeID(i)
		key := edgeKey{from: m.edges[e].Vertex, to: m.edges[m.edges[e].Next].Vertex}
		if _, dup := keys[key]; dup {
			return &NonManifoldError{From: int(key.from), To: int(key.to), Face: int(m.edges[e].Face)}
		}
		keys[key] = e
	}

	for i := range m.edges {
		e := EdgeID(i)
		if m.edges[e].Opposite != NoEdge {
			continue
		}
		key := edgeKey{from: m.edges[e].Vertex, to: m.edges[m.edges[e].Next].Vertex}
		twin, ok := keys[edgeKey{from: key.to, to: key.from}]
		if !ok {
			return &NonManifoldError{From: int(key.from), To: int(key.to), Face: int(m.edges[e].Face), Missing: true}
		}
		m.edges[e].Opposite = twin
		m.edges[twin].Opposite = e
	}
	return nil
}
