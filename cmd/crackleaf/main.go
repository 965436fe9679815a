// CrackLeaf removes owner-password restrictions from PDF files.
//
// The work is delegated to qpdf (`qpdf --decrypt in out`); CrackLeaf finds the
// binary, checks each file's encryption state and writes <name>_unlocked.pdf
// copies to the Downloads folder.
//
// Build modes:
//   - Default build: GUI + CLI (requires graphics libraries)
//   - CLI-only build: go build -tags cli (no graphics dependencies)

package main

import "crackleaf/internal/app"

// version is the application version shown by "crackleaf version".
const version = app.Version

func main() {
	run()
}
