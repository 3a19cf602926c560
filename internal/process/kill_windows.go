//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillTree kills pid and its child processes using taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
// Non-positive PIDs are ignored.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the launcher's own Kill is the first line of cleanup.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
