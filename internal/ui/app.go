package ui

import (
	"context"
	"time"

	"crackleaf/internal/anim"
	"crackleaf/internal/app"
	"crackleaf/internal/config"
	"crackleaf/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"
)

// AppID identifies the application to Fyne preferences and storage.
const AppID = "io.github.crackleaf"

// WindowTitle is the main window title.
const WindowTitle = "CrackLeaf"

const minStepPeriod = 16 * time.Millisecond

// App is the CrackLeaf window.
type App struct {
	Version string
	Config  *config.Config
	FyneApp fyne.App
	Window  fyne.Window

	session  *app.Session
	runner   *app.Runner
	bound    *app.BoundSession
	reporter *app.UIReporter

	frames     *FrameStore
	mascot     *Mascot
	list       *FileList
	listScroll *container.Scroll

	lastHeight float32
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewApp creates the window on fa without showing it. The qpdf tool is
// probed here, once. fa must be the running Fyne app: bindings notify
// through it.
func NewApp(fa fyne.App, version string, cfg *config.Config, tool app.Tool) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		Version: version,
		Config:  cfg,
		FyneApp: fa,
		bound:   app.NewBoundSession(),
		ctx:     ctx,
		cancel:  cancel,
	}
	a.reporter = app.NewUIReporter(nil, a.bound.SetProgress, nil)
	a.session = app.NewSession(ctx, tool, app.Options{
		OutputDir:     cfg.OutputDir,
		FrameInterval: cfg.FrameInterval(),
		Reporter:      a.reporter,
	})
	a.build()
	return a
}

// Session returns the window's session.
func (a *App) Session() *app.Session {
	return a.session
}

func (a *App) build() {
	fa := a.FyneApp
	assets := ResolveAssetsDir(a.Config.AssetsDir)
	log.Debug("assets resolved", log.String("dir", assets))
	a.frames = LoadFrames(assets)
	if n := a.frames.Loaded(); n < len(anim.AssetNames()) {
		log.Warn("animation frames incomplete", log.Int("loaded", n), log.Int("expected", len(anim.AssetNames())))
	}
	fa.Settings().SetTheme(NewLeafTheme(LoadFont(assets)))

	a.Window = fa.NewWindow(WindowTitle)
	a.Window.SetMaster()
	a.Window.SetFixedSize(true)
	a.Window.SetContent(a.buildContent())
	a.Window.SetOnDropped(a.onDrop)
	a.Window.SetOnClosed(a.cancel)

	a.runner = app.NewRunner(a.session, a.bound, a.refresh)
	a.runner.SetHoverSource(a.mascot.Hovered)
	a.runner.Sync()
	a.refresh()
}

func (a *App) buildContent() fyne.CanvasObject {
	side := MascotSide(app.WindowWidth)
	a.mascot = NewMascot(a.frames.Get(anim.Frames(anim.SetLogo)[0]), side, a.onMascotTapped)

	hint := widget.NewLabelWithData(a.bound.Hint)
	hint.Alignment = fyne.TextAlignCenter
	hint.Truncation = fyne.TextTruncateEllipsis

	toolLabel := widget.NewLabelWithData(a.bound.ToolLabel)
	toolLabel.Alignment = fyne.TextAlignCenter
	toolLabel.Wrapping = fyne.TextWrapWord

	result := widget.NewLabelWithData(a.bound.Result)
	result.Alignment = fyne.TextAlignCenter
	result.Wrapping = fyne.TextWrapWord

	progress := widget.NewProgressBarWithData(a.bound.Progress)
	progress.Hide()
	a.bound.Busy.AddListener(binding.NewDataListener(func() {
		if busy, _ := a.bound.Busy.Get(); busy {
			progress.Show()
		} else {
			progress.Hide()
		}
	}))

	a.list = NewFileList(a.session.OpenEntry)
	a.listScroll = container.NewVScroll(a.list.Box)
	a.listScroll.Hide()

	top := container.NewVBox(
		container.NewCenter(a.mascot),
		hint,
		toolLabel,
	)
	bottom := container.NewVBox(progress, result)
	return container.NewBorder(top, bottom, nil, nil, a.listScroll)
}

// Run shows the window and blocks until it closes.
func (a *App) Run() {
	period := a.Config.FrameInterval() / 3
	if period < minStepPeriod {
		period = minStepPeriod
	}
	go a.runner.Run(a.ctx, period, fyne.Do)

	if a.session.NeedsToolPrompt() {
		a.showToolMissing()
	}
	a.Window.ShowAndRun()
	a.cancel()
}

// refresh pushes the session into the widgets that are not bound.
func (a *App) refresh() {
	if a.mascot != nil {
		a.mascot.SetResource(a.frames.Get(a.session.Anim().Frame()))
	}
	if a.list != nil {
		a.list.Update(a.session.Entries())
		if a.session.Len() > 1 {
			a.listScroll.SetMinSize(fyne.NewSize(0, app.ListHeightFor(a.session.Len())))
			a.listScroll.Show()
		} else {
			a.listScroll.Hide()
		}
	}
	a.resize()
}

func (a *App) resize() {
	if a.Window == nil {
		return
	}
	h := a.session.WindowHeight()
	if h == a.lastHeight {
		return
	}
	a.lastHeight = h
	a.Window.Resize(fyne.NewSize(app.WindowWidth, h))
}

func (a *App) onMascotTapped() {
	switch a.session.ClickMascot() {
	case app.ClickPickFiles:
		a.showFilePicker()
	case app.ClickUnlockStarted:
		log.Info("unlock started", log.Int("files", a.session.Len()))
	}
	a.runner.Sync()
	a.refresh()
}

func (a *App) onDrop(_ fyne.Position, uris []fyne.URI) {
	a.addPaths(filePaths(uris))
}

func (a *App) addPaths(paths []string) {
	if len(paths) == 0 {
		return
	}
	added := a.session.Add(paths)
	log.Debug("files imported", log.Int("added", added), log.Int("total", a.session.Len()))
	a.runner.Sync()
	a.refresh()
}
