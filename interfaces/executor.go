package interfaces

import (
	"context"

	"appiumhub/domain"
)

// CommandExecutor runs shell-level commands for the device bridge and the automation server.
//
//go:generate moq -stub -out mock/executor.go -pkg mock . CommandExecutor
type CommandExecutor interface {
	// Execute runs cmd in the foreground or, when cmd.Background is set, detached.
	// Returns:
	// 1) (result, nil) when a foreground command finished before its timeout, whatever its exit code;
	// 2) (result, nil) when a background process was confirmed running;
	// 3) timeout when a foreground command outlived cmd.Timeout (the process keeps running);
	// 4) launch_error when a background process could not be started or exited early;
	// 5) internal_server_error when the process could not be spawned or ctx was cancelled.
	Execute(ctx context.Context, cmd domain.Command) (domain.CommandResult, error)
}
