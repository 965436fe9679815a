//go:build !windows

package qpdf

import "os/exec"

func hideWindow(cmd *exec.Cmd) {}
