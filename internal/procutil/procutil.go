// Package procutil provides the cross-platform process-tree control the
// executor and supervisor packages need: starting a child in its own
// process group so a single signal reaches every descendant it spawns, and
// escalating from a graceful to a forced stop.
package procutil

import "os/exec"

// Prepare configures cmd so its process (and anything it forks) can later
// be killed as a single unit via Terminate/Kill.
func Prepare(cmd *exec.Cmd) {
	prepare(cmd)
}

// Terminate asks the process tree rooted at cmd to exit gracefully
// (SIGTERM on POSIX, taskkill without /F on Windows).
func Terminate(cmd *exec.Cmd) error {
	return terminate(cmd)
}

// Kill forcibly ends the process tree rooted at cmd.
func Kill(cmd *exec.Cmd) error {
	return kill(cmd)
}
