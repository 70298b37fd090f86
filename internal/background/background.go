// Package background launches detached processes whose lifetime is
// independent of the caller.
//
// The Script Filter process must respond within a keystroke and exits
// immediately after emitting its feedback, while a cache refresh can take
// seconds. Spawning the refresh in its own session lets the foreground
// process exit without taking the refresh down with it; the refresh's only
// observable effect is a later cache write.
package background

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Spawn starts name with args as a detached process in a new session, with
// stdio disconnected. It returns once the process has started; the child
// runs to completion even if the current process exits first.
//
// Spawn deliberately takes no context: the child must outlive the caller,
// so there is nothing to cancel.
func Spawn(name string, args ...string) error {
	c := exec.Command(name, args...)
	c.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := c.Start(); err != nil {
		return fmt.Errorf("spawn %s: %w", name, err)
	}
	// Drop the handle so no one waits on the child and it can't become
	// a zombie of this process after setsid.
	return c.Process.Release()
}

// SpawnSelf re-executes the current binary with the given arguments as a
// detached process.
func SpawnSelf(args ...string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	return Spawn(exe, args...)
}
