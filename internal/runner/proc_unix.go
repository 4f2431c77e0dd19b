//go:build unix

package runner

import (
	"os/exec"
	"syscall"
)

// setProcGroup starts the child in its own process group and replaces the
// default context cancellation with a kill of the whole group, so shell
// steps cannot leave grandchildren behind.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
