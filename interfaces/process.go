package interfaces

import "context"

// ProcessInspector reads the host process table.
//
//go:generate moq -stub -out mock/process.go -pkg mock . ProcessInspector
type ProcessInspector interface {
	// IsRunning reports whether pid exists and is not a zombie.
	IsRunning(ctx context.Context, pid int) (bool, error)

	// Cmdline returns the command line of pid.
	Cmdline(ctx context.Context, pid int) (string, error)
}
