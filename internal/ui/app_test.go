package ui

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"crackleaf/internal/app"
	"crackleaf/internal/config"
	"crackleaf/internal/qpdf"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
)

type stubTool struct {
	mu     sync.Mutex
	status qpdf.ToolStatus
	calls  int
}

func (s *stubTool) Probe(context.Context) qpdf.ToolStatus { return s.status }

func (s *stubTool) Encryption(_ context.Context, path string) qpdf.Encryption {
	if strings.Contains(filepath.Base(path), "_unlocked") {
		return qpdf.NotEncrypted
	}
	return qpdf.Encrypted
}

func (s *stubTool) Decrypt(_ context.Context, _, out string) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return os.WriteFile(out, []byte("%PDF-1.7"), 0o644)
}

func newTestApp(t *testing.T, status qpdf.ToolStatus) (*App, string) {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.AssetsDir = t.TempDir()

	a := NewApp(test.NewApp(), app.Version, cfg, &stubTool{status: status})
	t.Cleanup(a.cancel)
	return a, cfg.OutputDir
}

func okStatus() qpdf.ToolStatus {
	return qpdf.ToolStatus{Availability: qpdf.Available, Path: "qpdf", Version: "11.9.0"}
}

func touchPDF(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("%PDF-1.7"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestBuild(t *testing.T) {
	defer test.NewApp()
	a, _ := newTestApp(t, okStatus())

	if a.Window == nil {
		t.Fatal("Expected window to be created")
	}
	if a.Window.Title() != WindowTitle {
		t.Errorf("Title() = %q", a.Window.Title())
	}
	if a.frames.Loaded() != 0 {
		t.Errorf("empty assets dir should load no frames, got %d", a.frames.Loaded())
	}
	if a.mascot.Resource() == nil {
		t.Error("mascot should show the placeholder")
	}
	if a.lastHeight != app.WindowHeightBase {
		t.Errorf("lastHeight = %v; want %v", a.lastHeight, app.WindowHeightBase)
	}
	if a.listScroll.Visible() {
		t.Error("list should be hidden with no entries")
	}
	if a.Session().NeedsToolPrompt() {
		t.Error("usable tool should not prompt")
	}
}

func TestAddPathsShowsList(t *testing.T) {
	defer test.NewApp()
	a, _ := newTestApp(t, okStatus())
	src := t.TempDir()

	a.addPaths([]string{touchPDF(t, src, "a.pdf")})
	if a.listScroll.Visible() {
		t.Error("single entry should not show the list")
	}
	if hint, _ := a.bound.Hint.Get(); hint != app.IconLocked+" a.pdf" {
		t.Errorf("hint = %q", hint)
	}

	a.addPaths([]string{
		touchPDF(t, src, "b.pdf"),
		touchPDF(t, src, "c.pdf"),
		filepath.Join(src, "notes.txt"),
	})
	if a.Session().Len() != 3 {
		t.Fatalf("Len() = %d; want 3", a.Session().Len())
	}
	if !a.listScroll.Visible() {
		t.Error("list should be visible with several entries")
	}
	if h := a.listScroll.MinSize().Height; h < app.ListHeightFor(3) {
		t.Errorf("list min height = %v; want at least %v", h, app.ListHeightFor(3))
	}
	if a.list.Rows() != 3 {
		t.Errorf("Rows() = %d; want 3", a.list.Rows())
	}
	if want := app.WindowHeightFor(3); a.lastHeight != want {
		t.Errorf("lastHeight = %v; want %v", a.lastHeight, want)
	}
}

func TestUnlockFlow(t *testing.T) {
	defer test.NewApp()
	a, out := newTestApp(t, okStatus())
	a.addPaths([]string{touchPDF(t, t.TempDir(), "a.pdf")})

	a.onMascotTapped()
	if !a.Session().InProgress() {
		t.Fatal("tap with entries should start unlocking")
	}
	if result, _ := a.bound.Result.Get(); result != app.TextProcessing {
		t.Errorf("result = %q; want %q", result, app.TextProcessing)
	}

	now := time.Unix(1700000000, 0)
	deadline := time.Now().Add(5 * time.Second)
	for a.Session().InProgress() {
		now = now.Add(a.Session().Anim().Interval())
		a.runner.Step(now)
		if time.Now().After(deadline) {
			t.Fatal("unlock did not finish")
		}
		time.Sleep(time.Millisecond)
	}

	if result, _ := a.bound.Result.Get(); result != app.SummaryAllUnlocked {
		t.Errorf("result = %q; want %q", result, app.SummaryAllUnlocked)
	}
	if _, err := os.Stat(filepath.Join(out, "a_unlocked.pdf")); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestToolMissing(t *testing.T) {
	defer test.NewApp()
	status := qpdf.ToolStatus{Availability: qpdf.Missing, Message: "qpdf not found"}
	a, _ := newTestApp(t, status)

	if label, _ := a.bound.ToolLabel.Get(); label != "qpdf not found" {
		t.Errorf("tool label = %q", label)
	}
	a.addPaths([]string{touchPDF(t, t.TempDir(), "a.pdf")})
	a.onMascotTapped()
	if a.Session().InProgress() {
		t.Error("missing tool must not start unlocking")
	}
	if result, _ := a.bound.Result.Get(); result != "qpdf not found" {
		t.Errorf("result = %q", result)
	}
	if !a.Session().NeedsToolPrompt() {
		t.Error("missing tool should prompt once")
	}
	if a.Session().NeedsToolPrompt() {
		t.Error("prompt must be one-shot")
	}
}

func TestFilePaths(t *testing.T) {
	uris := []fyne.URI{
		storage.NewFileURI("/tmp/a.pdf"),
		storage.NewFileURI("/tmp/B.PDF"),
		storage.NewFileURI("/tmp/c.txt"),
		nil,
	}
	got := filePaths(uris)
	if len(got) != 2 {
		t.Fatalf("filePaths() = %v; want 2 paths", got)
	}
	if filepath.Base(got[1]) != "B.PDF" {
		t.Errorf("second path = %q", got[1])
	}
}

func TestToolMissingMessage(t *testing.T) {
	tests := []struct {
		goos     string
		is64     bool
		contains string
	}{
		{"darwin", true, "brew install qpdf"},
		{"windows", true, "qpdf-<version>-msvc64.zip"},
		{"windows", false, "下载 msvc32 版本"},
		{"linux", true, "未检测到 qpdf，请安装后重启程序。"},
	}
	for _, tt := range tests {
		msg := ToolMissingMessage(tt.goos, tt.is64)
		if !strings.Contains(msg, tt.contains) {
			t.Errorf("ToolMissingMessage(%s, %v) = %q; want to contain %q", tt.goos, tt.is64, msg, tt.contains)
		}
	}
	if !strings.Contains(ToolMissingMessage("windows", true), qpdfReleases) {
		t.Error("windows message should link the release page")
	}
}

func TestResolveAssetsIn(t *testing.T) {
	cwd := t.TempDir()
	exe := t.TempDir()

	if got := resolveAssetsIn(cwd, exe); got != "assets" {
		t.Errorf("no candidates: got %q; want assets", got)
	}

	bundle := filepath.Join(exe, "..", "Resources", "assets")
	if err := os.MkdirAll(bundle, 0o755); err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(filepath.Join(exe, "..", "Resources"))
	if got := resolveAssetsIn(cwd, exe); got != bundle {
		t.Errorf("bundle: got %q; want %q", got, bundle)
	}

	local := filepath.Join(cwd, "assets")
	if err := os.Mkdir(local, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := resolveAssetsIn(cwd, exe); got != local {
		t.Errorf("cwd: got %q; want %q", got, local)
	}

	if got := ResolveAssetsDir("/custom"); got != "/custom" {
		t.Errorf("override: got %q", got)
	}
}

func TestLoadFrames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "crackleaf.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := LoadFrames(dir)
	if fs.Loaded() != 1 {
		t.Errorf("Loaded() = %d; want 1", fs.Loaded())
	}
	if string(fs.Get("crackleaf").Content()) != "png" {
		t.Error("loaded frame content mismatch")
	}
	if fs.Get("missing") != fs.placeholder {
		t.Error("missing frame should return the placeholder")
	}
	if LoadFont(dir) != nil {
		t.Error("missing font should return nil")
	}
}

func TestPlaceholderResource(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(placeholderResource().Content()))
	if err != nil {
		t.Fatalf("placeholder is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != placeholderSize || img.Bounds().Dy() != placeholderSize {
		t.Errorf("placeholder size = %v", img.Bounds())
	}
	r, g, b, _ := img.At(placeholderSize/2, placeholderSize/2).RGBA()
	if r>>8 != 200 || g>>8 != 50 || b>>8 != 50 {
		t.Errorf("placeholder colour = (%d, %d, %d); want (200, 50, 50)", r>>8, g>>8, b>>8)
	}
}

func TestLeafTheme(t *testing.T) {
	th := NewLeafTheme(nil)
	if th.Size("text") != 22 {
		t.Errorf("text size = %v; want 22", th.Size("text"))
	}
	if th.Color("background", 0) != PanelColor {
		t.Error("background should be the panel color")
	}
	if th.Font(fyne.TextStyle{}) == nil {
		t.Error("nil font should fall back to the default")
	}
	font := fyne.NewStaticResource("f.ttf", []byte{0})
	if NewLeafTheme(font).Font(fyne.TextStyle{Bold: true}) != font {
		t.Error("bundled font should be used")
	}
}
