package ui

import (
	"net/url"
	"runtime"
	"strconv"
	"strings"

	"crackleaf/internal/fileops"
	"crackleaf/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// ToolMissingTitle is the title of the install prompt.
const ToolMissingTitle = "需要安装 qpdf"

// qpdfReleases is where Windows users download qpdf.
const qpdfReleases = "https://github.com/qpdf/qpdf/releases"

// ToolMissingMessage returns the install instructions for a platform.
func ToolMissingMessage(goos string, is64 bool) string {
	switch goos {
	case "darwin":
		return "未检测到 qpdf。\n\n请在终端执行：\nbrew install qpdf\n\n安装完成后重启程序。"
	case "windows":
		arch := "msvc32"
		if is64 {
			arch = "msvc64"
		}
		return "未检测到 qpdf。\n\n请前往：\n" + qpdfReleases + "\n\n下载 " + arch +
			" 版本（例如 qpdf-<version>-" + arch + ".zip），\n解压后将 qpdf.exe 放到程序同目录。"
	default:
		return "未检测到 qpdf，请安装后重启程序。"
	}
}

// showToolMissing shows the install prompt for the running platform.
func (a *App) showToolMissing() {
	msg := ToolMissingMessage(runtime.GOOS, strconv.IntSize == 64)
	d := dialog.NewInformation(ToolMissingTitle, msg, a.Window)
	if runtime.GOOS == "windows" {
		d.SetOnClosed(func() {
			if u, err := url.Parse(qpdfReleases); err == nil {
				if err := fyne.CurrentApp().OpenURL(u); err != nil {
					log.Warn("open release page failed", log.Err(err))
				}
			}
		})
	}
	d.Show()
}

// showFilePicker opens a single-file PDF picker.
func (a *App) showFilePicker() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			log.Warn("file picker failed", log.Err(err))
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		a.addPaths([]string{path})
	}, a.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf", ".PDF"}))
	d.Show()
}

// filePaths keeps local file URIs with a PDF extension.
func filePaths(uris []fyne.URI) []string {
	paths := make([]string, 0, len(uris))
	for _, u := range uris {
		if u == nil || !strings.EqualFold(u.Scheme(), "file") {
			continue
		}
		if fileops.IsPDF(u.Path()) {
			paths = append(paths, u.Path())
		}
	}
	return paths
}
