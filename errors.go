package halfedge

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInput     = errors.New("malformed input")
	ErrNonManifold        = errors.New("non-manifold topology")
	ErrIntegrity          = errors.New("integrity violation")
	ErrDegenerateTopology = errors.New("degenerate topology")
	ErrInvalidHandle      = errors.New("invalid handle")
)

// MalformedInputError reports a face that references a vertex index the
// input mesh does not have, or an argument outside its valid range.
type MalformedInputError struct {
	Face   int
	Index  int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed input: %s", e.Reason)
	}
	return fmt.Sprintf("malformed input: face %d references vertex %d", e.Face, e.Index)
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// NonManifoldError reports a directed edge From->To whose twin To->From is
// missing (open boundary) or claimed more than once.
type NonManifoldError struct {
	From, To int
	Face     int
	Missing  bool
}

func (e *NonManifoldError) Error() string {
	if e.Missing {
		return fmt.Sprintf("non-manifold: edge %d->%d of face %d has no twin", e.From, e.To, e.Face)
	}
	return fmt.Sprintf("non-manifold: edge %d->%d of face %d is shared by more than two faces", e.From, e.To, e.Face)
}

func (e *NonManifoldError) Unwrap() error { return ErrNonManifold }

// Invariant names the structural rule an IntegrityViolation broke.
type Invariant int

const (
	InvariantFaceLoop Invariant = iota + 1
	InvariantTwinSymmetry
	InvariantVertexIncidence
)

func (i Invariant) String() string {
	switch i {
	case InvariantFaceLoop:
		return "face loop"
	case InvariantTwinSymmetry:
		return "twin symmetry"
	case InvariantVertexIncidence:
		return "vertex incidence"
	}
	return fmt.Sprintf("Invariant(%d)", int(i))
}

// IntegrityViolation identifies the first record found breaking an
// invariant. Exactly one of Face, Edge and Vertex is meaningful, as given
// by the invariant kind.
type IntegrityViolation struct {
	Invariant Invariant
	Face      FaceID
	Edge      EdgeID
	Vertex    VertexID
	Detail    string
}

func (e *IntegrityViolation) Error() string {
	switch e.Invariant {
	case InvariantFaceLoop:
		return fmt.Sprintf("integrity: %s: face %d: %s", e.Invariant, e.Face, e.Detail)
	case InvariantTwinSymmetry:
		return fmt.Sprintf("integrity: %s: edge %d: %s", e.Invariant, e.Edge, e.Detail)
	default:
		return fmt.Sprintf("integrity: %s: vertex %d: %s", e.Invariant, e.Vertex, e.Detail)
	}
}

func (e *IntegrityViolation) Unwrap() error { return ErrIntegrity }

// DegenerateTopologyError is returned when walking the edge ring around a
// vertex does not come back to its start within the bound.
type DegenerateTopologyError struct {
	Vertex VertexID
	Steps  int
}

func (e *DegenerateTopologyError) Error() string {
	return fmt.Sprintf("degenerate topology: edge ring of vertex %d did not close after %d steps", e.Vertex, e.Steps)
}

func (e *DegenerateTopologyError) Unwrap() error { return ErrDegenerateTopology }
