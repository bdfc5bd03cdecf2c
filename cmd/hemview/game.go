package main

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type Game struct {
	configPath   string
	cfg          Config
	scene        *scene
	camera       *camera
	watcher      *configWatcher
	log          *log.Logger
	lastX, lastY int
	dragged      bool
}

func NewGame(path string, cfg Config, s *scene, w *configWatcher, logger *log.Logger) *Game {
	return &Game{
		configPath: path,
		cfg:        cfg,
		scene:      s,
		camera:     newCamera(cfg.View.Distance, cfg.View.FOV, cfg.Window.Width, cfg.Window.Height),
		watcher:    w,
		log:        logger,
	}
}

// reload rebuilds the scene from the config file. The mesh is only touched
// here, on the game loop goroutine. A bad file keeps the current scene.
func (g *Game) reload() {
	cfg, err := LoadConfig(g.configPath)
	if err != nil {
		g.log.Error("reload config", "err", err)
		return
	}
	s, err := buildScene(cfg.Mesh, g.log)
	if err != nil {
		g.log.Error("rebuild mesh", "err", err)
		return
	}

	yaw, pitch := g.camera.yaw, g.camera.pitch
	g.cfg = cfg
	g.scene = s
	g.camera = newCamera(cfg.View.Distance, cfg.View.FOV, cfg.Window.Width, cfg.Window.Height)
	g.camera.yaw, g.camera.pitch = yaw, pitch
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		g.log.SetLevel(level)
	}
	g.log.Info("reloaded", "mesh", s.mesh.ID(), "faces", s.mesh.FaceCount())
}

func (g *Game) Update() error {
	if g.watcher != nil {
		select {
		case <-g.watcher.Changed():
			g.reload()
		default:
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.cfg.View.Wireframe = !g.cfg.View.Wireframe
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragged = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragged {
		x, y := ebiten.CursorPosition()
		g.camera.AddAngle(float64(y-g.lastY)/200.0, float64(x-g.lastX)/200.0)
		g.lastX, g.lastY = x, y
	} else {
		g.camera.AddAngle(0, g.cfg.View.RotationSpeed)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragged = false
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 20, G: 20, B: 28, A: 255})
	paint(screen, g.scene, g.camera, g.cfg.View.Wireframe)

	m := g.scene.mesh
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f\nV %d  E %d  F %d\nW: wireframe",
		ebiten.ActualFPS(), m.VertexCount(), m.EdgeCount(), m.FaceCount()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
