package main

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
	wruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/MJE43/arcadia-desktop/bindings"
	"github.com/MJE43/arcadia-desktop/internal/config"
	"github.com/MJE43/arcadia-desktop/internal/games"
	"github.com/MJE43/arcadia-desktop/internal/logging"
)

//go:embed all:frontend/dist
var assets embed.FS

const repoURL = "https://github.com/MJE43/arcadia-desktop"

var (
	appCtx   context.Context
	appCtxMu sync.RWMutex
)

// buildWindowsOptions configures Windows-specific application settings
func buildWindowsOptions(log *slog.Logger) *windows.Options {
	return &windows.Options{
		BackdropType: windows.Mica,
		Theme:        windows.SystemDefault,
		CustomTheme: &windows.ThemeSettings{
			DarkModeTitleBar:  windows.RGB(15, 17, 26),
			DarkModeTitleText: windows.RGB(230, 232, 240),
			DarkModeBorder:    windows.RGB(45, 48, 66),

			LightModeTitleBar:  windows.RGB(248, 250, 252),
			LightModeTitleText: windows.RGB(15, 23, 42),
			LightModeBorder:    windows.RGB(226, 232, 240),
		},

		WebviewIsTransparent: false,
		WindowIsTranslucent:  false,
		DisablePinchZoom:     true,
		IsZoomControlEnabled: false,
		ZoomFactor:           1.0,

		WindowClassName: "ArcadiaWindow",

		OnSuspend: func() { logging.Info(log, "windows entering low power mode") },
		OnResume:  func() { logging.Info(log, "windows resuming from low power mode") },
	}
}

// buildMacOptions configures macOS-specific application settings
func buildMacOptions() *mac.Options {
	return &mac.Options{
		TitleBar: &mac.TitleBar{
			TitlebarAppearsTransparent: false,
			HideTitle:                  false,
			HideTitleBar:               false,
			FullSizeContent:            false,
			UseToolbar:                 false,
			HideToolbarSeparator:       true,
		},
		WebviewIsTransparent: false,
		WindowIsTranslucent:  false,
		About: &mac.AboutInfo{
			Title: "Arcadia",
			Message: "Snake, Tic-Tac-Toe and Memory Match.\n\n" +
				"Scores stay on this machine.",
		},
	}
}

// buildLinuxOptions configures Linux-specific application settings
func buildLinuxOptions() *linux.Options {
	return &linux.Options{
		WindowIsTranslucent: false,
		WebviewGpuPolicy:    linux.WebviewGpuPolicyOnDemand,
		ProgramName:         "arcadia",
	}
}

func main() {
	cfg := config.Load()
	log := logging.NewLogger(cfg.Log)
	logging.Info(log, "starting arcadia", "go", runtime.Version(), logging.FieldPath, cfg.DataDir)

	app := bindings.New(cfg, log)

	startup := func(ctx context.Context) {
		app.Startup(ctx)
		setAppContext(ctx)
	}

	beforeClose := func(ctx context.Context) (prevent bool) {
		setAppContext(nil)
		logging.Info(log, "application is closing")
		return false
	}

	if err := wails.Run(&options.App{
		Title:            "Arcadia",
		Width:            960,
		Height:           760,
		MinWidth:         560,
		MinHeight:        640,
		WindowStartState: options.Normal,
		BackgroundColour: &options.RGBA{R: 15, G: 17, B: 26, A: 255},

		AssetServer: &assetserver.Options{
			Assets: assets,
		},

		OnStartup:     startup,
		OnBeforeClose: beforeClose,
		OnShutdown:    app.Shutdown,

		Menu: buildAppMenu(app, cfg, log),
		Bind: []interface{}{app},

		Logger:             logging.NewWailsLogger(log),
		LogLevel:           logger.INFO,
		LogLevelProduction: logger.ERROR,

		EnableDefaultContextMenu: false,
		ErrorFormatter: func(err error) any {
			if err == nil {
				return nil
			}
			return err.Error()
		},

		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId: "6a1f0c52-3d8e-4b7a-9e15-arcadia-desktop",
			OnSecondInstanceLaunch: func(data options.SecondInstanceData) {
				logging.Info(log, "second instance launch prevented", "args", data.Args)
			},
		},

		DragAndDrop: &options.DragAndDrop{
			EnableFileDrop:     false,
			DisableWebViewDrop: true,
		},

		Windows: buildWindowsOptions(log),
		Mac:     buildMacOptions(),
		Linux:   buildLinuxOptions(),
	}); err != nil {
		logging.Error(log, "wails run failed", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logging.Info(log, "application exited normally")
}

func buildAppMenu(app *bindings.App, cfg config.Config, log *slog.Logger) *menu.Menu {
	rootMenu := menu.NewMenu()

	if runtime.GOOS == "darwin" {
		if appMenu := menu.AppMenu(); appMenu != nil {
			rootMenu.Append(appMenu)
		}
	}

	gameMenu := menu.NewMenu()
	for i, spec := range games.ListGames() {
		id := string(spec.ID)
		gameMenu.AddText(spec.Name, keys.CmdOrCtrl(fmt.Sprint(i+1)), func(_ *menu.CallbackData) {
			withAppContext(log, func(context.Context) {
				if _, err := app.OpenGame(id); err != nil {
					logging.Error(log, "menu open failed", err, logging.FieldGame, id)
				}
			})
		})
	}
	gameMenu.AddSeparator()
	gameMenu.AddText("Restart", keys.CmdOrCtrl("r"), func(_ *menu.CallbackData) {
		withAppContext(log, func(context.Context) { _, _ = app.Restart() })
	})
	gameMenu.AddText("Close Game", keys.CmdOrCtrl("w"), func(_ *menu.CallbackData) {
		withAppContext(log, func(context.Context) { _ = app.CloseGame() })
	})
	gameMenu.AddSeparator()
	gameMenu.AddText("Open Data Directory", keys.CmdOrCtrl("o"), func(_ *menu.CallbackData) {
		withAppContext(log, func(ctx context.Context) {
			openPathInExplorer(ctx, log, cfg.DataDir)
		})
	})
	gameMenu.AddText("Quit", keys.CmdOrCtrl("q"), func(_ *menu.CallbackData) {
		withAppContext(log, func(ctx context.Context) {
			wruntime.Quit(ctx)
		})
	})
	rootMenu.Append(menu.SubMenu("Game", gameMenu))

	viewMenu := menu.NewMenu()
	viewMenu.AddText("Reload Frontend", keys.Combo("r", keys.CmdOrCtrlKey, keys.ShiftKey), func(_ *menu.CallbackData) {
		withAppContext(log, func(ctx context.Context) {
			wruntime.WindowReloadApp(ctx)
		})
	})
	viewMenu.AddText("Toggle Fullscreen", keys.Combo("f", keys.CmdOrCtrlKey, keys.ShiftKey), func(_ *menu.CallbackData) {
		withAppContext(log, func(ctx context.Context) {
			toggleFullscreen(ctx)
		})
	})
	rootMenu.Append(menu.SubMenu("View", viewMenu))

	helpMenu := menu.NewMenu()
	helpMenu.AddText("Project Repository", nil, func(_ *menu.CallbackData) {
		withAppContext(log, func(ctx context.Context) {
			wruntime.BrowserOpenURL(ctx, repoURL)
		})
	})
	rootMenu.Append(menu.SubMenu("Help", helpMenu))

	return rootMenu
}

func openPathInExplorer(ctx context.Context, log *slog.Logger, path string) {
	if path == "" {
		return
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		logging.Warn(log, "resolve path failed", logging.FieldPath, path, logging.FieldError, err)
		abs = path
	}

	wruntime.BrowserOpenURL(ctx, fileURI(abs))
}

func fileURI(path string) string {
	clean := filepath.ToSlash(path)
	if runtime.GOOS == "windows" && len(clean) > 0 && clean[0] != '/' {
		clean = "/" + clean
	}

	u := url.URL{Scheme: "file", Path: clean}
	return u.String()
}

func toggleFullscreen(ctx context.Context) {
	if wruntime.WindowIsFullscreen(ctx) {
		wruntime.WindowUnfullscreen(ctx)
		return
	}
	wruntime.WindowFullscreen(ctx)
}

func setAppContext(ctx context.Context) {
	appCtxMu.Lock()
	defer appCtxMu.Unlock()
	appCtx = ctx
}

func withAppContext(log *slog.Logger, action func(context.Context)) {
	appCtxMu.RLock()
	ctx := appCtx
	appCtxMu.RUnlock()
	if ctx == nil {
		logging.Warn(log, "application context not initialised; ignoring menu action")
		return
	}
	action(ctx)
}
