package fileops

import (
	"os"
	"os/exec"
	"runtime"

	"crackleaf/internal/log"
)

// openCommand returns the default-handler invocation for path on goos.
func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/C", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

// starter launches a detached process. Replaced in tests.
var starter = func(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Open hands path to the platform's default handler without waiting.
// Failures are logged and otherwise ignored.
func Open(path string) {
	name, args := openCommand(runtime.GOOS, path)
	if err := starter(name, args...); err != nil {
		log.Warn("open failed", log.String("path", path), log.Err(err))
	}
}

// OpenPreferred opens output when it is set and still exists, else source.
func OpenPreferred(source, output string) {
	Open(PreferredPath(source, output))
}

// PreferredPath is the file OpenPreferred would open.
func PreferredPath(source, output string) string {
	if output != "" {
		if _, err := os.Stat(output); err == nil {
			return output
		}
	}
	return source
}
