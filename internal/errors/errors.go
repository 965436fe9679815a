// Package errors provides typed errors for CrackLeaf operations.
// This enables callers to use errors.Is() and errors.As() for specific error handling.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error conditions.
// Use errors.Is(err, errors.ErrToolSpawn) to check for specific errors.
var (
	// External tool errors
	ErrToolNotFound    = errors.New("qpdf not found")
	ErrToolSpawn       = errors.New("qpdf could not be started")
	ErrToolExit        = errors.New("qpdf exited with an error")
	ErrToolUnavailable = errors.New("qpdf is not available")

	// Unlock errors
	ErrOutputMissing = errors.New("output file missing after unlock")

	// Input errors
	ErrNotPDF    = errors.New("not a PDF file")
	ErrDuplicate = errors.New("file already in list")
	ErrListFull  = errors.New("file list is full")
	ErrNoFiles   = errors.New("no input files specified")
	ErrBusy      = errors.New("unlock already in progress")
)

// ToolError represents a failed invocation of the external tool.
type ToolError struct {
	Op       string // Operation: "version", "show-encryption", "decrypt"
	Path     string // File the operation was applied to, if any
	ExitCode int    // Exit code, -1 when the process never ran
	Stderr   string // Trimmed standard error output
	Err      error  // Underlying error (ErrToolSpawn or ErrToolExit, possibly wrapped)
}

func (e *ToolError) Error() string {
	var b strings.Builder
	b.WriteString("qpdf ")
	b.WriteString(e.Op)
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " (exit %d)", e.ExitCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Stderr != "" {
		b.WriteString(": ")
		b.WriteString(e.Stderr)
	}
	return b.String()
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// NewToolError creates a new ToolError.
func NewToolError(op, path string, exitCode int, stderr string, err error) *ToolError {
	return &ToolError{Op: op, Path: path, ExitCode: exitCode, Stderr: strings.TrimSpace(stderr), Err: err}
}

// SpawnError reports that a child process could not be started.
// Its message is the operating system's error text; it matches ErrToolSpawn.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string {
	return e.Err.Error()
}

func (e *SpawnError) Unwrap() []error {
	return []error{ErrToolSpawn, e.Err}
}

// NewSpawnError creates a new SpawnError.
func NewSpawnError(err error) *SpawnError {
	return &SpawnError{Err: err}
}

// FileError represents an error during file operations.
type FileError struct {
	Op   string // Operation: "stat", "mkdir", "open"
	Path string // File path
	Err  error  // Underlying error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(op, path string, err error) *FileError {
	return &FileError{Op: op, Path: path, Err: err}
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsSpawnFailure reports whether the tool process could not be started at all.
func IsSpawnFailure(err error) bool {
	return errors.Is(err, ErrToolSpawn)
}
