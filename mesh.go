package halfedge

import (
	"fmt"
	"iter"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Handles into the Mesh arena. They stay valid across SmoothVertex calls:
// the arena only grows, and the slot of a removed vertex is reused.
type (
	VertexID int
	EdgeID   int
	FaceID   int
)

const (
	NoVertex VertexID = -1
	NoEdge   EdgeID   = -1
	NoFace   FaceID   = -1
)

// Vertex is a point of the mesh and one half-edge based at it.
type Vertex struct {
	Position mgl64.Vec3
	Edge     EdgeID
}

// HalfEdge is one directed side of a polygon edge. Its destination is
// Next's base vertex; Opposite runs the other way along the adjacent face.
type HalfEdge struct {
	Vertex   VertexID
	Face     FaceID
	Next     EdgeID
	Opposite EdgeID
}

// Face points at one half-edge of its boundary loop.
type Face struct {
	Edge EdgeID
}

// Mesh is an arena of vertices, half-edges and faces addressed by handles.
// It is not safe for concurrent use; callers serialize access while
// Convert or SmoothVertex runs.
type Mesh struct {
	id       uuid.UUID
	vertices []Vertex
	edges    []HalfEdge
	faces    []Face
}

func newMesh(vertexCount, edgeCount, faceCount int) *Mesh {
	return &Mesh{
		id:       uuid.New(),
		vertices: make([]Vertex, 0, vertexCount),
		edges:    make([]HalfEdge, 0, edgeCount),
		faces:    make([]Face, 0, faceCount),
	}
}

// ID identifies the mesh in log output.
func (m *Mesh) ID() uuid.UUID { return m.id }

func (m *Mesh) VertexCount() int { return len(m.vertices) }
func (m *Mesh) EdgeCount() int   { return len(m.edges) }
func (m *Mesh) FaceCount() int   { return len(m.faces) }

func (m *Mesh) Vertex(v VertexID) Vertex { return m.vertices[v] }
func (m *Mesh) Edge(e EdgeID) HalfEdge   { return m.edges[e] }
func (m *Mesh) Face(f FaceID) Face       { return m.faces[f] }

func (m *Mesh) validVertex(v VertexID) bool { return v >= 0 && int(v) < len(m.vertices) }
func (m *Mesh) validEdge(e EdgeID) bool     { return e >= 0 && int(e) < len(m.edges) }
func (m *Mesh) validFace(f FaceID) bool     { return f >= 0 && int(f) < len(m.faces) }

func (m *Mesh) addVertex(p mgl64.Vec3) VertexID {
	m.vertices = append(m.vertices, Vertex{Position: p, Edge: NoEdge})
	return VertexID(len(m.vertices) - 1)
}

func (m *Mesh) addEdge() EdgeID {
	m.edges = append(m.edges, HalfEdge{Vertex: NoVertex, Face: NoFace, Next: NoEdge, Opposite: NoEdge})
	return EdgeID(len(m.edges) - 1)
}

func (m *Mesh) addFace() FaceID {
	m.faces = append(m.faces, Face{Edge: NoEdge})
	return FaceID(len(m.faces) - 1)
}

// Vertices yields every vertex handle in arena order.
func (m *Mesh) Vertices() iter.Seq[VertexID] {
	return func(yield func(VertexID) bool) {
		for i := range m.vertices {
			if !yield(VertexID(i)) {
				return
			}
		}
	}
}

// Faces yields every face handle in arena order. The sequence can be
// ranged over any number of times; the mesh must not change meanwhile.
func (m *Mesh) Faces() iter.Seq[FaceID] {
	return func(yield func(FaceID) bool) {
		for i := range m.faces {
			if !yield(FaceID(i)) {
				return
			}
		}
	}
}

// FaceEdges calls visit for each half-edge of f, starting at f's edge and
// following Next. A loop that does not close within EdgeCount steps is
// reported as an IntegrityViolation.
func (m *Mesh) FaceEdges(f FaceID, visit func(EdgeID)) error {
	if !m.validFace(f) {
		return fmt.Errorf("face %d: %w", f, ErrInvalidHandle)
	}
	start := m.faces[f].Edge
	e := start
	for steps := 0; steps < len(m.edges); steps++ {
		if !m.validEdge(e) {
			return &IntegrityViolation{Invariant: InvariantFaceLoop, Face: f, Edge: e, Vertex: NoVertex,
				Detail: fmt.Sprintf("loop reaches invalid edge %d", e)}
		}
		visit(e)
		e = m.edges[e].Next
		if e == start {
			return nil
		}
	}
	return &IntegrityViolation{Invariant: InvariantFaceLoop, Face: f, Edge: start, Vertex: NoVertex,
		Detail: "loop does not return to its first edge"}
}

// FaceVertices calls visit with the base vertex of each half-edge of f, in
// counter-clockwise order.
func (m *Mesh) FaceVertices(f FaceID, visit func(VertexID)) error {
	return m.FaceEdges(f, func(e EdgeID) {
		visit(m.edges[e].Vertex)
	})
}

// FaceSides returns the number of half-edges in f's loop.
func (m *Mesh) FaceSides(f FaceID) (int, error) {
	n := 0
	err := m.FaceEdges(f, func(EdgeID) { n++ })
	return n, err
}

// VertexEdges calls visit for each half-edge based at v, stepping with
// Opposite.Next from v's edge until the ring closes. The walk gives up with
// a DegenerateTopologyError after EdgeCount steps.
func (m *Mesh) VertexEdges(v VertexID, visit func(EdgeID)) error {
	if !m.validVertex(v) {
		return fmt.Errorf("vertex %d: %w", v, ErrInvalidHandle)
	}
	start := m.vertices[v].Edge
	e := start
	for steps := 1; steps <= len(m.edges); steps++ {
		if !m.validEdge(e) || !m.validEdge(m.edges[e].Opposite) {
			return &DegenerateTopologyError{Vertex: v, Steps: steps}
		}
		visit(e)
		e = m.edges[m.edges[e].Opposite].Next
		if e == start {
			return nil
		}
	}
	return &DegenerateTopologyError{Vertex: v, Steps: len(m.edges)}
}

// Ring returns the half-edges based at v in ring order. Nothing is
// returned unless the ring closes and every edge in it is based at v.
func (m *Mesh) Ring(v VertexID) ([]EdgeID, error) {
	ring := make([]EdgeID, 0, 4)
	err := m.VertexEdges(v, func(e EdgeID) {
		ring = append(ring, e)
	})
	if err != nil {
		return nil, err
	}
	for _, e := range ring {
		if m.edges[e].Vertex != v {
			return nil, &DegenerateTopologyError{Vertex: v, Steps: len(ring)}
		}
	}
	return ring, nil
}

// Valence returns the number of edges meeting at v.
func (m *Mesh) Valence(v VertexID) (int, error) {
	ring, err := m.Ring(v)
	return len(ring), err
}

// InterpolatePosition blends from e's base vertex (t=0) to the base vertex
// of its opposite (t=1). e must have an opposite.
func (m *Mesh) InterpolatePosition(e EdgeID, t float64) mgl64.Vec3 {
	edge := m.edges[e]
	p := m.vertices[edge.Vertex].Position
	q := m.vertices[m.edges[edge.Opposite].Vertex].Position
	return p.Mul(1 - t).Add(q.Mul(t))
}

// Transform applies an affine matrix to every vertex position.
func (m *Mesh) Transform(mat mgl64.Mat4) {
	for i := range m.vertices {
		m.vertices[i].Position = mgl64.TransformCoordinate(m.vertices[i].Position, mat)
	}
}

// Copy returns an independent mesh with the same records and a new ID.
func (m *Mesh) Copy() *Mesh {
	return &Mesh{
		id:       uuid.New(),
		vertices: slices.Clone(m.vertices),
		edges:    slices.Clone(m.edges),
		faces:    slices.Clone(m.faces),
	}
}

// snapshot captures the arena so a failed edit can be undone. Records are
// plain values, so cloning the slices is a full copy.
type snapshot struct {
	vertices []Vertex
	edges    []HalfEdge
	faces    []Face
}

func (m *Mesh) snapshot() snapshot {
	return snapshot{
		vertices: slices.Clone(m.vertices),
		edges:    slices.Clone(m.edges),
		faces:    slices.Clone(m.faces),
	}
}

func (m *Mesh) restore(s snapshot) {
	m.vertices = s.vertices
	m.edges = s.edges
	m.faces = s.faces
}
