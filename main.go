package main

import (
	"flag"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"fexp/internal/archive"
	"fexp/internal/config"
	"fexp/internal/constants"
	"fexp/internal/engine"
	"fexp/internal/fileinfo"
	"fexp/internal/jobs"
	"fexp/internal/mutation"
	"fexp/internal/preview"
	"fexp/internal/secret"
	customtheme "fexp/internal/theme"
	"fexp/internal/ui"
)

// Global debug flag
var debugMode bool

// debugPrint prints debug messages only when debug mode is enabled
func debugPrint(format string, args ...interface{}) {
	if debugMode {
		log.Printf("DEBUG: "+format, args...)
	}
}

// engineSettings maps the loaded configuration onto the engine's settings
func engineSettings(cfg *config.Config) engine.Settings {
	quick := make([]engine.QuickAccess, 0, len(cfg.QuickAccess))
	for _, q := range cfg.QuickAccess {
		quick = append(quick, engine.QuickAccess{Name: q.Name, Path: q.Path})
	}
	return engine.Settings{
		ArchiveExtensions: cfg.Archive.Extensions,
		QuickAccess:       quick,
		Sort: fileinfo.SortOptions{
			DirectoriesFirst: cfg.UI.Sort.DirectoriesFirst,
			CaseInsensitive:  cfg.UI.Sort.CaseInsensitive,
		},
		ShowHidden: cfg.UI.ShowHiddenFiles,
		Filter:     cfg.UI.FileFilter.Pattern,
	}
}

func main() {
	// Parse command line flags
	var startPath string
	flag.BoolVar(&debugMode, "d", false, "Enable debug mode")
	flag.StringVar(&startPath, "path", "", "Starting directory path (local or smb://host/share)")
	flag.Parse()

	// If no path specified via flag, check remaining arguments
	if startPath == "" && flag.NArg() > 0 {
		startPath = flag.Arg(0)
	}
	jobs.SetDebug(debugPrint)

	// Load configuration
	configManager := config.NewManager()
	cfg, err := configManager.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	debugPrint("Configuration loaded from %s", configManager.Path())

	if startPath == "" {
		startPath = cfg.StartPath()
	}

	router := fileinfo.NewRouter(fileinfo.NewCredentialStore(secret.Open()))
	startPath = router.Normalize(startPath)

	a := app.NewWithID(constants.ApplicationID)
	a.Settings().SetTheme(customtheme.NewCustomTheme(cfg))

	window := a.NewWindow(constants.ApplicationTitle)
	width, height := cfg.Window.Width, cfg.Window.Height
	if width <= 0 || height <= 0 {
		width, height = constants.DefaultWindowWidth, constants.DefaultWindowHeight
	}
	window.Resize(fyne.NewSize(float32(width), float32(height)))

	pane := ui.NewMarkdownPane()
	var opts []engine.Option
	if cfg.Preview.Enabled {
		opts = append(opts, engine.WithPreview(
			preview.NewPreviewer(router, pane, cfg.Preview.Style, cfg.Preview.MaxFileSize, debugPrint)))
	}
	eng := engine.New(router, engineSettings(cfg), debugPrint, opts...)

	coordinator := mutation.NewCoordinator(eng, router,
		archive.NewExtractor(router, debugPrint),
		ui.NewDialogConfirmer(window), debugPrint)

	explorer := ui.NewExplorer(ui.ExplorerDeps{
		Window:        window,
		Config:        cfg,
		ConfigManager: configManager,
		Engine:        eng,
		Mutations:     coordinator,
		Jobs:          jobs.NewManager(),
		Pane:          pane,
		Normalize:     router.Normalize,
	}, debugPrint)

	window.SetCloseIntercept(func() {
		debugPrint("Window close intercepted - stopping background jobs")
		explorer.Close()
		window.Close()
	})

	log.Printf("Starting %s at %s", constants.ApplicationName, startPath)
	explorer.OpenRoot(startPath)
	window.ShowAndRun()
}
