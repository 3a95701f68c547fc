//go:build windows

package main

import "os/exec"

// setSysProcAttr is a no-op on Windows; Start already detaches
func setSysProcAttr(cmd *exec.Cmd) {}
