package halfedge

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TopologyEditor performs local edits on a Mesh in place.
type TopologyEditor struct {
	opts options
}

func NewTopologyEditor(opts ...Option) *TopologyEditor {
	return &TopologyEditor{opts: applyOptions(opts)}
}

// SmoothVertex cuts the corner at v: a new vertex is placed on each edge
// leaving v, at amount along the edge (0 keeps it at v, 1 puts it on the
// neighbour), and the new vertices are joined by a new face. Each face
// that met at v gains one side.
//
// v's handle is reused for the first new vertex; the others are appended.
// A valence-k vertex adds k-1 vertices, 2k half-edges and one face. On
// failure the mesh is left exactly as it was.
func (t *TopologyEditor) SmoothVertex(m *Mesh, v VertexID, amount float64) error {
	if math.IsNaN(amount) || amount < 0 || amount > 1 {
		return &MalformedInputError{Face: -1, Index: int(v),
			Reason: fmt.Sprintf("smoothing amount %v is outside [0, 1]", amount)}
	}
	ring, err := m.Ring(v)
	if err != nil {
		return fmt.Errorf("smooth vertex %d: %w", v, err)
	}
	if len(ring) < 3 {
		return &MalformedInputError{Face: -1, Index: int(v),
			Reason: fmt.Sprintf("vertex %d has valence %d, a corner cut needs at least 3", v, len(ring))}
	}

	log := t.opts.log()
	snap := m.snapshot()
	f := cutCorner(m, v, ring, amount)

	if t.opts.verify {
		if err := m.IntegrityCheck(); err != nil {
			m.restore(snap)
			log.Warn("corner cut rolled back", "mesh", m.id, "vertex", v, "err", err)
			return fmt.Errorf("smooth vertex %d: %w", v, err)
		}
	}
	log.Debug("smoothed vertex", "mesh", m.id, "vertex", v, "valence", len(ring), "face", f)
	return nil
}

// cutCorner rewires the ring around v. With E_i the ring edges (each
// E_{i+1} = E_i.Opposite.Next) and O_i = E_i.Opposite:
//
//	W_i   new vertex on E_i, which is now based at W_i
//	S_i   W_i -> W_{i+1}, inserted after O_i in the face of E_{i+1}
//	T_i   W_{i+1} -> W_i, twin of S_i, on the new face
//
// The ring turns clockwise seen from outside, so the new face runs
// T_i -> T_{i-1} to stay counter-clockwise.
func cutCorner(m *Mesh, v VertexID, ring []EdgeID, amount float64) FaceID {
	k := len(ring)

	positions := make([]mgl64.Vec3, k)
	for i, e := range ring {
		positions[i] = m.InterpolatePosition(e, amount)
	}

	corners := make([]VertexID, k)
	corners[0] = v
	m.vertices[v].Position = positions[0]
	for i := 1; i < k; i++ {
		corners[i] = m.addVertex(positions[i])
	}

	f := m.addFace()
	faceEdges := make([]EdgeID, k)
	stitches := make([]EdgeID, k)
	for i := range ring {
		faceEdges[i] = m.addEdge()
	}
	for i := range ring {
		stitches[i] = m.addEdge()
	}

	for i, e := range ring {
		next := (i + 1) % k
		prev := (i + k - 1) % k
		incoming := m.edges[e].Opposite

		m.edges[faceEdges[i]] = HalfEdge{
			Vertex:   corners[next],
			Face:     f,
			Next:     faceEdges[prev],
			Opposite: stitches[i],
		}
		m.edges[stitches[i]] = HalfEdge{
			Vertex:   corners[i],
			Face:     m.edges[ring[next]].Face,
			Next:     ring[next],
			Opposite: faceEdges[i],
		}
		m.edges[incoming].Next = stitches[i]
		m.edges[e].Vertex = corners[i]
		m.vertices[corners[i]].Edge = e
	}
	m.faces[f].Edge = faceEdges[0]
	return f
}

// SmoothWhere cuts every vertex for which keep returns true. Matching
// vertices are collected before any edit, so vertices created by the cuts
// are not visited. It returns the number of vertices smoothed; the first
// failure stops the pass, with earlier cuts kept.
func (t *TopologyEditor) SmoothWhere(m *Mesh, keep func(VertexID, Vertex) bool, amount float64) (int, error) {
	var targets []VertexID
	for v := range m.Vertices() {
		if keep(v, m.vertices[v]) {
			targets = append(targets, v)
		}
	}
	for n, v := range targets {
		if err := t.SmoothVertex(m, v, amount); err != nil {
			return n, err
		}
	}
	return len(targets), nil
}
