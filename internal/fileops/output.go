// Package fileops resolves where unlocked copies are written and opens files
// with the platform's default handler.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cerrors "crackleaf/internal/errors"
	"crackleaf/internal/log"

	"github.com/adrg/xdg"
)

const (
	// OutputSuffix is appended to the source stem for every unlocked copy.
	OutputSuffix = "_unlocked"

	// MaxCollisionIndex is the last numbered candidate tried before the
	// overflow name is used.
	MaxCollisionIndex = 9999

	fallbackStem = "output"
	pdfExt       = ".pdf"
)

// IsPDF reports whether path has a .pdf extension (case-insensitive).
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), pdfExt)
}

// Stem returns the file name of path without its final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return fallbackStem
	}
	ext := filepath.Ext(base)
	if ext == base {
		// ".pdf" has no stem of its own
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// UniqueOutputPath returns the first free candidate in dir for stem:
// <stem>_unlocked.pdf, then <stem>_unlocked_1.pdf through _9999.pdf.
// When every candidate exists it returns <stem>_unlocked_overflow.pdf,
// which is overwritten.
func UniqueOutputPath(dir, stem string) string {
	base := stem + OutputSuffix
	candidate := filepath.Join(dir, base+pdfExt)
	if !exists(candidate) {
		return candidate
	}
	for i := 1; i <= MaxCollisionIndex; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, pdfExt))
		if !exists(candidate) {
			return candidate
		}
	}
	overflow := filepath.Join(dir, base+"_overflow"+pdfExt)
	log.Warn("all output names taken, overwriting overflow file", log.String("path", overflow))
	return overflow
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// OutputDir chooses the directory for the unlocked copy of src.
//
// An explicit override wins. Otherwise the platform Downloads folder is used,
// then <home>/Downloads, then the parent of src, then ".". Candidates are
// created when missing; a candidate that cannot be created is skipped.
func OutputDir(src, override string) string {
	if override != "" {
		err := ensureDir(override)
		if err == nil {
			return override
		}
		log.Warn("output directory override unusable", log.String("dir", override), log.Err(err))
	}
	if dir, ok := DownloadsDir(); ok {
		return dir
	}
	if parent := filepath.Dir(src); parent != "" {
		return parent
	}
	return "."
}

// DownloadsDir returns the user's Downloads folder, creating it if needed.
func DownloadsDir() (string, bool) {
	var candidates []string
	if xdg.UserDirs.Download != "" {
		candidates = append(candidates, xdg.UserDirs.Download)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		candidates = append(candidates, filepath.Join(home, "Downloads"))
	}
	for _, dir := range candidates {
		if err := ensureDir(dir); err != nil {
			log.Debug("downloads candidate unusable", log.String("dir", dir), log.Err(err))
			continue
		}
		return dir, true
	}
	return "", false
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return cerrors.NewFileError("mkdir", dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return cerrors.NewFileError("stat", dir, err)
	}
	if !info.IsDir() {
		return cerrors.NewFileError("mkdir", dir, fmt.Errorf("not a directory"))
	}
	return nil
}
