package qpdf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"unicode/utf8"

	cerrors "crackleaf/internal/errors"
	"crackleaf/internal/log"
)

// Availability classifies the startup probe.
type Availability int

const (
	Missing Availability = iota
	Available
	AvailableUnknownVersion
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "ok"
	case AvailableUnknownVersion:
		return "ok (version unrecognized)"
	default:
		return "missing"
	}
}

// Status labels shown in the window.
const (
	MsgVersionUnrecognized = "已检测到 qpdf，但版本无法识别"
	msgExitNoStderr        = "qpdf 运行失败（依赖缺失或版本不匹配）"
	msgExitPrefix          = "qpdf 运行失败："
	msgSpawnPrefix         = "qpdf 不可用（请把 qpdf 放在程序同目录）："
)

// ToolStatus is the outcome of the startup probe.
type ToolStatus struct {
	Availability Availability
	Path         string
	Version      string // Reported version token, empty when unrecognized
	Warning      string // Non-fatal notice, e.g. unrecognized version
	Message      string // Why the tool is unusable; empty when usable
	Cause        error  // ErrToolNotFound, ErrToolSpawn or ErrToolExit when unusable
}

// OK reports whether unlocking may proceed.
func (s ToolStatus) OK() bool {
	return s.Availability != Missing
}

// Label is the persistent status line for the window, empty when nothing to say.
func (s ToolStatus) Label() string {
	if !s.OK() {
		return s.Message
	}
	return s.Warning
}

// Err returns nil when the tool is usable. Otherwise the error matches
// ErrToolUnavailable and the recorded cause.
func (s ToolStatus) Err() error {
	if s.OK() {
		return nil
	}
	cause := s.Cause
	if cause == nil {
		cause = cerrors.ErrToolExit
	}
	return fmt.Errorf("%w: %w: %s", cerrors.ErrToolUnavailable, cause, s.Message)
}

// Probe runs "qpdf --version" and classifies the result.
func (t *Tool) Probe(ctx context.Context) ToolStatus {
	status := ToolStatus{Path: t.Path}

	out, err := t.run(ctx, "--version")
	if err != nil {
		status.Availability = Missing
		status.Message = msgSpawnPrefix + err.Error()
		status.Cause = cerrors.ErrToolSpawn
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			status.Cause = cerrors.ErrToolNotFound
		}
		log.Warn("qpdf probe failed", log.String("path", t.Path), log.Err(err))
		return status
	}

	if !out.Success() {
		stderr := strings.TrimSpace(string(out.Stderr))
		status.Availability = Missing
		status.Cause = cerrors.ErrToolExit
		if stderr == "" {
			status.Message = msgExitNoStderr
		} else {
			status.Message = msgExitPrefix + stderr
		}
		log.Warn("qpdf probe exited with error", log.String("path", t.Path), log.Int("exit", out.ExitCode))
		return status
	}

	if version, ok := ParseVersion(string(out.Stdout)); ok {
		status.Availability = Available
		status.Version = version
	} else {
		status.Availability = AvailableUnknownVersion
		status.Warning = MsgVersionUnrecognized
	}
	log.Info("qpdf detected", log.String("path", t.Path), log.String("version", status.Version))
	return status
}

// ParseVersion returns the first whitespace-separated token that starts with
// an ASCII digit, e.g. "11.9.1" from "qpdf version 11.9.1".
func ParseVersion(output string) (string, bool) {
	for _, token := range strings.Fields(output) {
		r, _ := utf8.DecodeRuneInString(token)
		if r >= '0' && r <= '9' {
			return token, true
		}
	}
	return "", false
}
