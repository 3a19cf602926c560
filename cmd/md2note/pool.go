package main

import "runtime"

// maxAutoWorkers caps the worker count chosen when none is configured.
const maxAutoWorkers = 8

// resolveWorkers determines the batch worker count.
// Priority: explicit value > GOMAXPROCS-based calculation.
// The result never exceeds the number of files.
func resolveWorkers(configured, files int) int {
	n := configured
	if n <= 0 {
		// GOMAXPROCS is adjusted by automaxprocs for containers.
		n = runtime.GOMAXPROCS(0)
		if n > maxAutoWorkers {
			n = maxAutoWorkers
		}
	}
	if files > 0 && n > files {
		n = files
	}
	if n < 1 {
		return 1
	}
	return n
}
