// Package qpdf wraps the external qpdf binary.
//
// CrackLeaf consumes exactly three qpdf invocations:
//
//	qpdf --version                          tool probe
//	qpdf --show-encryption <path>           encryption probe
//	qpdf --password= --decrypt <in> <out>   restriction removal
//
// Every invocation goes through a Runner so tests can substitute a fake tool.
// On Windows the child is spawned without a console window.
package qpdf

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	cerrors "crackleaf/internal/errors"
	"crackleaf/internal/log"
)

// Output is the captured result of one tool invocation.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the process exited with status zero.
func (o Output) Success() bool {
	return o.ExitCode == 0
}

// Runner executes the tool. It returns an error only when the process could
// not be started; a non-zero exit is reported through Output.ExitCode.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// execRunner runs real child processes and captures full output buffers.
type execRunner struct{}

// ExecRunner returns the Runner backed by os/exec.
func ExecRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	hideWindow(cmd)

	start := time.Now()
	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		out.ExitCode = 0
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
	default:
		log.Debug("tool spawn failed", log.String("tool", name), log.Strings("args", args), log.Err(err))
		return Output{ExitCode: -1}, cerrors.NewSpawnError(err)
	}

	log.Debug("tool finished",
		log.String("tool", name),
		log.Strings("args", args),
		log.Int("exit", out.ExitCode),
		log.Duration("elapsed", time.Since(start)))
	return out, nil
}

// Tool is a resolved qpdf binary plus the runner used to invoke it.
type Tool struct {
	Path   string
	runner Runner
}

// New creates a Tool for the given path. A nil runner selects ExecRunner.
func New(path string, runner Runner) *Tool {
	if runner == nil {
		runner = ExecRunner()
	}
	return &Tool{Path: path, runner: runner}
}

// Discover resolves the binary (honouring an explicit override) and returns a Tool.
func Discover(override string) *Tool {
	if override != "" {
		return New(override, nil)
	}
	return New(Locate(), nil)
}

func (t *Tool) run(ctx context.Context, args ...string) (Output, error) {
	return t.runner.Run(ctx, t.Path, args...)
}

// BinaryName is the platform-specific executable name.
func BinaryName() string {
	return binaryNameFor(runtime.GOOS)
}

func binaryNameFor(goos string) string {
	if goos == "windows" {
		return "qpdf.exe"
	}
	return "qpdf"
}

// Locate returns the tool path using the search order: next to the running
// executable, then the current working directory, then the bare name for a
// PATH lookup at spawn time.
func Locate() string {
	var exeDir, cwd string
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		cwd = wd
	}
	return locateIn(BinaryName(), exeDir, cwd)
}

func locateIn(name string, dirs ...string) string {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return name
}
