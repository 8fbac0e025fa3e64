package main

import (
	"embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/chazu/orbitviz/pkg/config"
	"github.com/chazu/orbitviz/pkg/logging"
	"github.com/chazu/orbitviz/pkg/scene"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	opts := []scene.Option{scene.WithLogger(logger)}
	if cfg.Seed != nil {
		opts = append(opts, scene.WithSeed(*cfg.Seed))
	}
	app := NewApp(logger, opts...)

	source, err := os.ReadFile(cfg.SceneFile)
	if err != nil {
		logger.Error("Failed to read scene file", "path", cfg.SceneFile, "error", err)
		os.Exit(1)
	}
	if result := app.LoadScript(string(source)); len(result.Errors) > 0 {
		for _, e := range result.Errors {
			logger.Error("Scene file rejected", "path", cfg.SceneFile, "line", e.Line, "error", e.Message)
		}
		os.Exit(1)
	}
	logger.Info("Starting orbit visualizer", "generator_seed", app.generator.Seed(), "scene_file", cfg.SceneFile)

	err = wails.Run(&options.App{
		Title:            cfg.Window.Title,
		Width:            cfg.Window.Width,
		Height:           cfg.Window.Height,
		BackgroundColour: &options.RGBA{R: 0, G: 0, B: 0, A: 255},
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup: app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logger.Error("Wails exited with error", "error", err)
		os.Exit(1)
	}
}
