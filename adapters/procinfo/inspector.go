// Package procinfo inspects processes through the host process table.
package procinfo

import (
	"context"
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v3/process"
)

type inspector struct{}

// NewInspector creates a gopsutil backed process inspector.
func NewInspector() *inspector {
	return &inspector{}
}

// IsRunning reports whether pid exists and is not a zombie.
func (i *inspector) IsRunning(ctx context.Context, pid int) (bool, error) {
	if pid <= 0 {
		return false, nil
	}

	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return false, nil
		}
		return false, fmt.Errorf("can't inspect process %d, err: %w", pid, err)
	}

	running, err := p.IsRunningWithContext(ctx)
	if err != nil || !running {
		return false, err
	}

	statuses, err := p.StatusWithContext(ctx)
	if err != nil {
		// status is not available on every platform, existence is enough there
		return true, nil
	}
	for _, s := range statuses {
		if s == process.Zombie {
			return false, nil
		}
	}
	return true, nil
}

// Cmdline returns the command line of pid with arguments joined by spaces.
func (i *inspector) Cmdline(ctx context.Context, pid int) (string, error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return "", fmt.Errorf("can't inspect process %d, err: %w", pid, err)
	}
	return p.CmdlineWithContext(ctx)
}
