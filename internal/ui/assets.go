package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"crackleaf/internal/anim"
	"crackleaf/internal/log"

	"fyne.io/fyne/v2"
)

// FontFile is the UI font shipped in the assets directory.
const FontFile = "Huiwenfangsong.ttf"

const placeholderSize = 64

// ResolveAssetsDir picks the assets directory. An explicit override wins;
// otherwise <cwd>/assets, <exe dir>/assets and the macOS bundle's
// Resources/assets are tried before falling back to the relative "assets".
func ResolveAssetsDir(override string) string {
	if override != "" {
		return override
	}
	var cwd, exeDir string
	if wd, err := os.Getwd(); err == nil {
		cwd = wd
	}
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}
	return resolveAssetsIn(cwd, exeDir)
}

func resolveAssetsIn(cwd, exeDir string) string {
	var candidates []string
	if cwd != "" {
		candidates = append(candidates, filepath.Join(cwd, "assets"))
	}
	if exeDir != "" {
		candidates = append(candidates,
			filepath.Join(exeDir, "assets"),
			filepath.Join(exeDir, "..", "Resources", "assets"))
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "assets"
}

// FrameStore holds one resource per mascot frame.
type FrameStore struct {
	frames      map[string]fyne.Resource
	placeholder fyne.Resource
}

// LoadFrames reads every animation frame from dir. Missing or unreadable
// frames are replaced by a red placeholder so frame counts never change.
func LoadFrames(dir string) *FrameStore {
	fs := &FrameStore{
		frames:      make(map[string]fyne.Resource),
		placeholder: placeholderResource(),
	}
	for _, name := range anim.AssetNames() {
		path := filepath.Join(dir, name+".png")
		res, err := fyne.LoadResourceFromPath(path)
		if err != nil {
			log.Warn("frame missing, using placeholder", log.String("path", path), log.Err(err))
			continue
		}
		fs.frames[name] = res
	}
	return fs
}

// Get returns the resource for an asset name.
func (fs *FrameStore) Get(name string) fyne.Resource {
	if res, ok := fs.frames[name]; ok {
		return res
	}
	return fs.placeholder
}

// Loaded reports how many frames were read from disk.
func (fs *FrameStore) Loaded() int {
	return len(fs.frames)
}

// LoadFont reads the UI font from dir, or returns nil so the theme keeps
// Fyne's default font.
func LoadFont(dir string) fyne.Resource {
	path := filepath.Join(dir, FontFile)
	res, err := fyne.LoadResourceFromPath(path)
	if err != nil {
		log.Warn("font missing, using default", log.String("path", path), log.Err(err))
		return nil
	}
	return res
}

// placeholderColor fills frames that could not be loaded.
var placeholderColor = color.RGBA{R: 200, G: 50, B: 50, A: 0xFF}

func placeholderResource() fyne.Resource {
	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	for y := 0; y < placeholderSize; y++ {
		for x := 0; x < placeholderSize; x++ {
			img.Set(x, y, placeholderColor)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return fyne.NewStaticResource("placeholder.png", buf.Bytes())
}
