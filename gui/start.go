package gui

import (
	"embed"

	"github.com/rlsinstaller/rls-installer/internals/cmdlog"
	"github.com/rlsinstaller/rls-installer/internals/config"
	"github.com/rlsinstaller/rls-installer/internals/facade"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
)

//go:embed all:frontend/dist
var assets embed.FS

// Start opens the window and blocks until it is closed
func Start(cfg *config.Config, logger cmdlog.Logger) error {
	app := &App{}
	app.ops = facade.New(cfg, facade.Options{
		Logger:   logger,
		Progress: progressEmitter{app},
	})

	return wails.Run(&options.App{
		Title:     "RLS Installer",
		Width:     1280,
		Height:    800,
		MinWidth:  900,
		MinHeight: 600,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 17, G: 17, B: 17, A: 1},
		OnStartup:        app.startup,
		Bind: []interface{}{
			app,
		},
		Linux: &linux.Options{
			WebviewGpuPolicy: linux.WebviewGpuPolicyOnDemand,
		},
	})
}
