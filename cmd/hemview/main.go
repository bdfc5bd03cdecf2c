// Command hemview smooths the corners of a cube with the half-edge
// library and shows the result. The mesh is rebuilt whenever the TOML
// config file changes.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/smasonuk/halfedge"
)

func main() {
	configPath := flag.String("config", "hemview.toml", "path to the TOML config file")
	headless := flag.Bool("headless", false, "build and check the mesh, then exit")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "hemview",
	})

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("load config", "err", err)
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	halfedge.SetLogger(logger.WithPrefix("halfedge"))

	s, err := buildScene(cfg.Mesh, logger)
	if err != nil {
		logger.Fatal("build mesh", "err", err)
	}

	if *headless {
		if report := s.mesh.IntegrityReport(); len(report) > 0 {
			for _, v := range report {
				logger.Error("integrity", "violation", v)
			}
			os.Exit(1)
		}
		logger.Info("mesh ok", "mesh", s.mesh.ID(),
			"vertices", s.mesh.VertexCount(), "edges", s.mesh.EdgeCount(),
			"faces", s.mesh.FaceCount(), "triangles", len(s.triangles))
		return
	}

	watcher, err := newConfigWatcher(*configPath, logger)
	if err != nil {
		logger.Warn("config reload disabled", "err", err)
	} else {
		defer watcher.Close()
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if err := ebiten.RunGame(NewGame(*configPath, cfg, s, watcher, logger)); err != nil {
		logger.Fatal("run", "err", err)
	}
}
