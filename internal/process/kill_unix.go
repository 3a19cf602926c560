//go:build !windows

package process

import "syscall"

// KillTree kills pid and every process in its group by sending SIGKILL to
// the negative PID. Chrome spawns renderer and GPU helpers in the same
// group, which survive a plain browser close. Non-positive PIDs are ignored:
// -0 would target the caller's own group.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the launcher's own Kill is the first line of cleanup.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
