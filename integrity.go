package halfedge

import (
	"fmt"
)

// IntegrityCheck verifies the structural invariants of the mesh and returns
// the first *IntegrityViolation found, or nil.
//
// The invariants are:
//   - each face loop closes, every edge on it names the face, and every
//     half-edge lies on exactly one face loop;
//   - each half-edge has an opposite running the reverse direction, whose
//     opposite is the half-edge itself, on a different face;
//   - each vertex's edge is based at that vertex.
func (m *Mesh) IntegrityCheck() error {
	if v := m.check(true); len(v) > 0 {
		return v[0]
	}
	return nil
}

// IntegrityReport runs the same checks as IntegrityCheck but keeps going
// after a failure and returns every violation found.
func (m *Mesh) IntegrityReport() []*IntegrityViolation {
	return m.check(false)
}

func (m *Mesh) check(strict bool) []*IntegrityViolation {
	var out []*IntegrityViolation
	report := func(v *IntegrityViolation) bool {
		out = append(out, v)
		return strict
	}

	onLoop := make([]bool, len(m.edges))
	for i := range m.faces {
		if v := m.checkFace(FaceID(i), onLoop); v != nil && report(v) {
			return out
		}
	}
	for i, seen := range onLoop {
		if seen {
			continue
		}
		e := EdgeID(i)
		v := &IntegrityViolation{Invariant: InvariantFaceLoop, Face: m.edges[e].Face, Edge: e, Vertex: NoVertex,
			Detail: fmt.Sprintf("edge %d is not on any face loop", e)}
		if report(v) {
			return out
		}
	}

	// Endpoints are checked for all edges before symmetry so a single bad
	// opposite pointer is blamed on its owner, not on the twin pointing at it.
	for i := range m.edges {
		if v := m.checkOpposite(EdgeID(i)); v != nil && report(v) {
			return out
		}
	}
	for i := range m.edges {
		if v := m.checkSymmetry(EdgeID(i)); v != nil && report(v) {
			return out
		}
	}

	for i := range m.vertices {
		if v := m.checkVertex(VertexID(i)); v != nil && report(v) {
			return out
		}
	}
	return out
}

func (m *Mesh) checkFace(f FaceID, onLoop []bool) *IntegrityViolation {
	fail := func(e EdgeID, format string, args ...any) *IntegrityViolation {
		return &IntegrityViolation{Invariant: InvariantFaceLoop, Face: f, Edge: e, Vertex: NoVertex,
			Detail: fmt.Sprintf(format, args...)}
	}

	start := m.faces[f].Edge
	if !m.validEdge(start) {
		return fail(start, "face edge %d is not a valid edge", start)
	}
	e := start
	for n := 1; n <= len(m.edges); n++ {
		if m.edges[e].Face != f {
			return fail(e, "edge %d on the loop belongs to face %d", e, m.edges[e].Face)
		}
		if onLoop[e] {
			return fail(e, "edge %d is on more than one loop", e)
		}
		onLoop[e] = true
		next := m.edges[e].Next
		if !m.validEdge(next) {
			return fail(e, "edge %d has invalid next %d", e, next)
		}
		if next == start {
			if n < 3 {
				return fail(start, "loop has %d sides", n)
			}
			return nil
		}
		e = next
	}
	return fail(start, "loop does not return to edge %d", start)
}

func (m *Mesh) checkOpposite(e EdgeID) *IntegrityViolation {
	fail := func(format string, args ...any) *IntegrityViolation {
		return &IntegrityViolation{Invariant: InvariantTwinSymmetry, Face: m.edges[e].Face, Edge: e, Vertex: NoVertex,
			Detail: fmt.Sprintf(format, args...)}
	}

	edge := m.edges[e]
	if !m.validVertex(edge.Vertex) {
		return fail("base vertex %d is not a valid vertex", edge.Vertex)
	}
	if !m.validEdge(edge.Next) {
		return fail("next %d is not a valid edge", edge.Next)
	}
	if !m.validEdge(edge.Opposite) {
		return fail("opposite %d is not a valid edge", edge.Opposite)
	}
	opp := m.edges[edge.Opposite]
	if !m.validEdge(opp.Next) {
		return fail("opposite %d has invalid next %d", edge.Opposite, opp.Next)
	}
	from, to := edge.Vertex, m.edges[edge.Next].Vertex
	if opp.Vertex != to || m.edges[opp.Next].Vertex != from {
		return fail("opposite %d runs %d->%d, want %d->%d", edge.Opposite, opp.Vertex, m.edges[opp.Next].Vertex, to, from)
	}
	return nil
}

func (m *Mesh) checkSymmetry(e EdgeID) *IntegrityViolation {
	edge := m.edges[e]
	if !m.validEdge(edge.Opposite) {
		// reported by checkOpposite
		return nil
	}
	opp := m.edges[edge.Opposite]
	if opp.Opposite != e {
		return &IntegrityViolation{Invariant: InvariantTwinSymmetry, Face: edge.Face, Edge: e, Vertex: NoVertex,
			Detail: fmt.Sprintf("opposite %d points back to %d", edge.Opposite, opp.Opposite)}
	}
	if opp.Face == edge.Face && len(m.faces) > 1 {
		return &IntegrityViolation{Invariant: InvariantTwinSymmetry, Face: edge.Face, Edge: e, Vertex: NoVertex,
			Detail: fmt.Sprintf("opposite %d shares face %d", edge.Opposite, edge.Face)}
	}
	return nil
}

func (m *Mesh) checkVertex(v VertexID) *IntegrityViolation {
	e := m.vertices[v].Edge
	if !m.validEdge(e) {
		return &IntegrityViolation{Invariant: InvariantVertexIncidence, Face: NoFace, Edge: e, Vertex: v,
			Detail: fmt.Sprintf("edge %d is not a valid edge", e)}
	}
	if m.edges[e].Vertex != v {
		return &IntegrityViolation{Invariant: InvariantVertexIncidence, Face: NoFace, Edge: e, Vertex: v,
			Detail: fmt.Sprintf("edge %d is based at vertex %d", e, m.edges[e].Vertex)}
	}
	return nil
}
