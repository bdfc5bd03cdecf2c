package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/smasonuk/halfedge"
)

type triangle struct {
	points [3]mgl64.Vec3
	normal mgl64.Vec3
	color  mgl64.Vec3
}

// scene is the smoothed mesh and the triangles drawn for it.
type scene struct {
	mesh      *halfedge.Mesh
	triangles []triangle
}

// buildScene converts a cube, cuts the corners above the threshold for
// each pass and flattens the result for drawing.
func buildScene(cfg MeshConfig, logger *log.Logger) (*scene, error) {
	withLog := halfedge.WithLogger(logger)

	m, err := halfedge.NewConverter(withLog).Convert(halfedge.NewCube(cfg.CubeSize))
	if err != nil {
		return nil, err
	}

	editor := halfedge.NewTopologyEditor(withLog)
	above := func(_ halfedge.VertexID, v halfedge.Vertex) bool {
		return v.Position.Z() > cfg.Threshold
	}
	for pass := 1; pass <= cfg.Passes; pass++ {
		n, err := editor.SmoothWhere(m, above, cfg.Amount)
		if err != nil {
			return nil, fmt.Errorf("smoothing pass %d: %w", pass, err)
		}
		logger.Info("smoothing pass", "pass", pass, "smoothed", n,
			"vertices", m.VertexCount(), "faces", m.FaceCount())
	}

	exporter := halfedge.NewExporter(withLog,
		halfedge.WithPlaceholderAttributes(mgl64.Vec3{1, 0, 0}, mgl64.Vec3(cfg.Color)))
	fm, err := exporter.Export(m)
	if err != nil {
		return nil, err
	}
	fm.ComputeNormals()

	buf := halfedge.NewGeometryBuffer(fm)
	s := &scene{
		mesh:      m,
		triangles: make([]triangle, buf.TriangleCount()),
	}
	for t := range s.triangles {
		tri := &s.triangles[t]
		var c mgl64.Vec3
		for k := 0; k < 3; k++ {
			idx := buf.Indices[t*3+k]
			p := buf.Position(idx)
			tri.points[k] = mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
			c = c.Add(mgl64.Vec3{
				float64(buf.Colors[idx*3]), float64(buf.Colors[idx*3+1]), float64(buf.Colors[idx*3+2]),
			})
		}
		n := buf.TriangleNormal(t)
		tri.normal = mgl64.Vec3{float64(n[0]), float64(n[1]), float64(n[2])}
		tri.color = c.Mul(1.0 / 3)
	}
	return s, nil
}
