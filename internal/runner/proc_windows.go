//go:build windows

package runner

import "os/exec"

// setProcGroup is a no-op on Windows; exec.CommandContext's default kill
// terminates the child process directly.
func setProcGroup(cmd *exec.Cmd) {}
