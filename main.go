package main

import (
	"embed"

	"go-game-hub/config"
	"go-game-hub/logging"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	logger, err := logging.New(false)
	if err != nil {
		println("Error:", err.Error())
		return
	}
	defer func() { _ = logger.Sync() }()

	cm := config.NewConfigManager()
	if err := cm.Load(); err != nil {
		logger.Sugar().Errorf("Error loading config: %v", err)
	}

	app := NewApp(cm, logger)

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "go-game-hub",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		logger.Sugar().Errorf("Error: %v", err)
	}
}
