//go:build cli

package main

import (
	"fmt"
	"os"

	"crackleaf/internal/cli"
)

// run is the CLI-only entry point.
// This build excludes all GUI dependencies (Fyne, OpenGL, etc.) and can run
// on headless systems without graphics hardware.
func run() {
	if !cli.Execute(version) {
		fmt.Fprintf(os.Stderr, "crackleaf %s (CLI-only build)\n", version)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: crackleaf <command> [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  unlock     Remove restrictions from PDF files")
		fmt.Fprintln(os.Stderr, "  probe      Check qpdf and report PDF encryption")
		fmt.Fprintln(os.Stderr, "  watch      Unlock PDFs as they appear in a directory")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run 'crackleaf <command> --help' for more information.")
		os.Exit(0)
	}
}
