//go:build !unix

package service

import "os/exec"

func detach(cmd *exec.Cmd) {}
