package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	cerrors "crackleaf/internal/errors"
	"crackleaf/internal/fileops"

	"github.com/gobwas/glob"
)

// compileMatch compiles a --match pattern. An empty pattern matches everything.
func compileMatch(pattern string) (glob.Glob, error) {
	if pattern == "" {
		return nil, nil
	}
	return glob.Compile(pattern)
}

// accepts reports whether a directory entry is a PDF worth unlocking.
// Our own outputs are skipped so a directory can double as output folder.
func accepts(path string, match glob.Glob) bool {
	if !fileops.IsPDF(path) || isOutputName(path) {
		return false
	}
	return match == nil || match.Match(filepath.Base(path))
}

// isOutputName reports whether path looks like an unlocked copy.
func isOutputName(path string) bool {
	stem := fileops.Stem(path)
	if strings.HasSuffix(stem, fileops.OutputSuffix) {
		return true
	}
	// name_unlocked_3.pdf
	if i := strings.LastIndex(stem, fileops.OutputSuffix+"_"); i >= 0 {
		rest := stem[i+len(fileops.OutputSuffix)+1:]
		if rest == "overflow" {
			return true
		}
		return rest != "" && strings.Trim(rest, "0123456789") == ""
	}
	return false
}

// CollectInputs expands files and directories into absolute PDF paths.
// Explicit files must be PDFs; directories are scanned one level deep and
// filtered by pattern. Duplicates are dropped, first occurrence wins.
func CollectInputs(inputs []string, pattern string) ([]string, error) {
	match, err := compileMatch(pattern)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, cerrors.NewFileError("stat", in, err)
		}
		if !info.IsDir() {
			if !fileops.IsPDF(in) {
				return nil, cerrors.NewFileError("open", in, cerrors.ErrNotPDF)
			}
			add(in)
			continue
		}

		entries, err := os.ReadDir(in)
		if err != nil {
			return nil, cerrors.NewFileError("read", in, err)
		}
		var found []string
		for _, e := range entries {
			p := filepath.Join(in, e.Name())
			if !e.IsDir() && accepts(p, match) {
				found = append(found, p)
			}
		}
		sort.Strings(found)
		for _, p := range found {
			add(p)
		}
	}
	return paths, nil
}
