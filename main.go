package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/subburn/subburn/internal/burn"
	"github.com/subburn/subburn/internal/config"
	"github.com/subburn/subburn/internal/logging"
	"github.com/subburn/subburn/internal/platform"
	"github.com/subburn/subburn/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.subburn.subburn"
	AppName = "SubBurn"
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(ui.MainWindowWidth, ui.MainWindowHeight))

	logger, err := logging.New(logging.Options{Level: "info", Format: "text"})
	if err != nil {
		logger = logging.Nop()
	}

	// Load persisted settings shared with the CLI
	cfg, err := config.Load("")
	if err != nil {
		logger.Error("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	if cfg.Output.Dir != "" {
		if err := platform.CreateDirectoryIfNotExists(cfg.Output.Dir); err != nil {
			logger.Warn("failed to ensure output dir", "dir", cfg.Output.Dir, "error", err)
		}
	}

	burnSvc := burn.NewService(logger)

	// Create and setup UI
	ui.NewRootUI(myWindow, cfg, burnSvc, logger)

	// Show and run
	myWindow.ShowAndRun()
}
