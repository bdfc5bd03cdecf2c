package main

import (
	"image"
	"image/color"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const ambient = 0.25

var lightDir = mgl64.Vec3{0.4, 0.7, 1}.Normalize()

var whiteSub = sync.OnceValue(func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
})

type drawItem struct {
	xp, yp [3]float32
	depth  float64
	clr    color.RGBA
}

// paint draws the scene back to front, skipping triangles facing away
// from the eye.
func paint(screen *ebiten.Image, s *scene, cam *camera, wireframe bool) {
	model := cam.model()
	items := make([]drawItem, 0, len(s.triangles))

	for _, tri := range s.triangles {
		var world [3]mgl64.Vec3
		for k, p := range tri.points {
			world[k] = mgl64.TransformCoordinate(p, model)
		}
		normal := mgl64.TransformNormal(tri.normal, model)
		centre := world[0].Add(world[1]).Add(world[2]).Mul(1.0 / 3)
		if normal.Dot(cam.eye.Sub(centre)) <= 0 {
			continue
		}

		item := drawItem{depth: centre.Sub(cam.eye).Len()}
		visible := true
		for k, p := range world {
			x, y, ok := cam.project(p)
			if !ok {
				visible = false
				break
			}
			item.xp[k], item.yp[k] = x, y
		}
		if !visible {
			continue
		}
		item.clr = shade(tri.color, normal)
		items = append(items, item)
	}

	// farthest first
	sort.Slice(items, func(i, j int) bool {
		return items[i].depth > items[j].depth
	})

	for _, it := range items {
		fillConvexPolygon(screen, it.xp[:], it.yp[:], it.clr)
		if wireframe {
			strokeLoop(screen, it.xp[:], it.yp[:], 1, color.RGBA{A: 255})
		}
	}
}

// shade applies flat Lambert lighting to a base color in [0, 1].
func shade(base, normal mgl64.Vec3) color.RGBA {
	diffuse := max(0, normal.Normalize().Dot(lightDir))
	k := ambient + (1-ambient)*diffuse
	return color.RGBA{
		R: uint8(mgl64.Clamp(base[0]*k, 0, 1) * 255),
		G: uint8(mgl64.Clamp(base[1]*k, 0, 1) * 255),
		B: uint8(mgl64.Clamp(base[2]*k, 0, 1) * 255),
		A: 255,
	}
}

func fillConvexPolygon(screen *ebiten.Image, xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}

	indices := make([]uint16, 0, (len(xp)-2)*3)
	for i := 2; i < len(xp); i++ {
		indices = append(indices, 0, uint16(i-1), uint16(i))
	}

	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0

	vertices := make([]ebiten.Vertex, len(xp))
	for i := range xp {
		vertices[i] = ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vertices, indices, whiteSub(), op)
}

func strokeLoop(screen *ebiten.Image, xp, yp []float32, width float32, clr color.RGBA) {
	for i := range xp {
		j := (i + 1) % len(xp)
		vector.StrokeLine(screen, xp[i], yp[i], xp[j], yp[j], width, clr, true)
	}
}
