//go:build unix

package service

import (
	"os/exec"
	"syscall"
)

// detach puts the process in its own group so signals sent to the service do not reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
