package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"appiumhub/domain"
	"appiumhub/helpers"
	"appiumhub/interfaces"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	shellquote "github.com/kballard/go-shellquote"
)

const (
	defaultLivenessInterval = 100 * time.Millisecond
	defaultLivenessAttempts = 10
)

// ExecutorOption configures the command executor.
type ExecutorOption func(*commandExecutor)

// WithLivenessPolling overrides the background liveness check schedule.
func WithLivenessPolling(interval time.Duration, attempts int) ExecutorOption {
	return func(e *commandExecutor) {
		e.livenessInterval = interval
		e.livenessAttempts = attempts
	}
}

// WithBackgroundLogDir writes stdout and stderr of background processes to files under dir.
func WithBackgroundLogDir(dir string) ExecutorOption {
	return func(e *commandExecutor) {
		e.logDir = dir
	}
}

type commandExecutor struct {
	inspector        interfaces.ProcessInspector
	logDir           string
	livenessInterval time.Duration
	livenessAttempts int
	logger           log.Logger
}

// NewCommandExecutor creates an executor that runs foreground commands through /bin/sh and
// starts background commands directly, confirming them alive through inspector.
func NewCommandExecutor(inspector interfaces.ProcessInspector, logger log.Logger, opts ...ExecutorOption) interfaces.CommandExecutor {
	e := &commandExecutor{
		inspector:        helpers.NilPanic(inspector, "service.executor.go: process inspector is required"),
		livenessInterval: defaultLivenessInterval,
		livenessAttempts: defaultLivenessAttempts,
		logger:           log.WithPrefix(helpers.NilPanic(logger, "service.executor.go: logger is required"), "component", "CommandExecutor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs cmd to completion, timeout or liveness verdict. Cancelling ctx does not abort a
// started command; ctx only carries values to the process inspector.
func (e *commandExecutor) Execute(ctx context.Context, cmd domain.Command) (domain.CommandResult, error) {
	ctx = context.WithoutCancel(ctx)
	level.Info(e.logger).Log("msg", "Begin execute command", "cmd", cmd.Line, "background", cmd.Background)
	if cmd.Background {
		return e.executeBackground(ctx, cmd)
	}
	return e.executeForeground(cmd)
}

// executeForeground waits for the command or its deadline, whichever comes first.
// The exit status is recorded but never turns a finished command into a failure.
func (e *commandExecutor) executeForeground(cmd domain.Command) (domain.CommandResult, error) {
	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultCommandTimeout
	}

	var stdout, stderr bytes.Buffer
	proc := exec.Command("/bin/sh", "-c", cmd.Line)
	proc.Dir = cmd.Dir
	proc.Stdout = &stdout
	proc.Stderr = &stderr
	if err := proc.Start(); err != nil {
		level.Error(e.logger).Log("msg", "Fail execute command", "cmd", cmd.Line, "err", err)
		return domain.CommandResult{}, NewInternalServerError("Fail execute command", fmt.Errorf("can't start '%s', err: %w", cmd.Line, err))
	}
	pid := proc.Process.Pid

	done := make(chan error, 1)
	go func() {
		done <- proc.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case waitErr := <-done:
		var exitErr *exec.ExitError
		if waitErr != nil && !errors.As(waitErr, &exitErr) {
			level.Warn(e.logger).Log("msg", "Command finished with wait error", "cmd", cmd.Line, "err", waitErr)
		}
		result := domain.CommandResult{
			Output:   splitLines(stdout.String()),
			PID:      pid,
			ExitCode: proc.ProcessState.ExitCode(),
		}
		level.Info(e.logger).Log(
			"msg", "Finish execute command with result",
			"cmd", cmd.Line,
			"exit_code", result.ExitCode,
			"result", strings.Join(result.Output, "\n"),
		)
		if stderr.Len() > 0 {
			level.Debug(e.logger).Log("msg", "Command stderr", "cmd", cmd.Line, "stderr", strings.TrimSpace(stderr.String()))
		}
		return result, nil
	case <-timer.C:
		level.Error(e.logger).Log("msg", "The command is timeout", "cmd", cmd.Line, "timeout", timeout, "pid", pid)
		return domain.CommandResult{PID: pid}, NewTimeoutError("The command is timeout "+cmd.Line, nil)
	}
}

// executeBackground starts the command detached and keeps its handle. The command counts as
// launched once the handle has not exited and the process table shows it running.
func (e *commandExecutor) executeBackground(ctx context.Context, cmd domain.Command) (domain.CommandResult, error) {
	argv, err := shellquote.Split(cmd.Line)
	if err != nil || len(argv) == 0 {
		level.Error(e.logger).Log("msg", "Fail execute command", "cmd", cmd.Line, "err", err)
		return domain.CommandResult{}, NewLaunchError("Invalid command line: "+cmd.Line, err)
	}

	output, err := e.openBackgroundLog(cmd.LogFile)
	if err != nil {
		level.Error(e.logger).Log("msg", "Fail execute command", "cmd", cmd.Line, "err", err)
		return domain.CommandResult{}, NewLaunchError("Can't open process log: "+cmd.LogFile, err)
	}

	proc := exec.Command(argv[0], argv[1:]...)
	proc.Dir = cmd.Dir
	detach(proc)
	if output != nil {
		proc.Stdout = output
		proc.Stderr = output
	}
	startErr := proc.Start()
	if output != nil {
		// the child holds its own descriptor
		_ = output.Close()
	}
	if startErr != nil {
		level.Error(e.logger).Log("msg", "Fail execute command", "cmd", cmd.Line, "err", startErr)
		return domain.CommandResult{}, NewLaunchError("Can't start process: "+cmd.Line, startErr)
	}
	pid := proc.Process.Pid

	exited := make(chan struct{})
	go func() {
		waitErr := proc.Wait()
		level.Warn(e.logger).Log("msg", "Background process exited", "cmd", cmd.Line, "pid", pid, "err", waitErr)
		close(exited)
	}()

	ticker := time.NewTicker(e.livenessInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= e.livenessAttempts; attempt++ {
		select {
		case <-exited:
			level.Error(e.logger).Log("msg", "Fail execute command", "cmd", cmd.Line, "pid", pid, "attempt", attempt)
			return domain.CommandResult{PID: pid}, NewLaunchError("Process exited before it was confirmed running: "+cmd.Line, nil)
		case <-ticker.C:
		}

		select {
		case <-exited:
			continue
		default:
		}

		running, err := e.inspector.IsRunning(ctx, pid)
		if err != nil {
			level.Debug(e.logger).Log("msg", "Liveness check failed", "pid", pid, "attempt", attempt, "err", err)
			continue
		}
		if !running {
			continue
		}

		cmdline, err := e.inspector.Cmdline(ctx, pid)
		if err != nil || cmdline == "" {
			cmdline = cmd.Line
		}
		level.Info(e.logger).Log("msg", "Finish execute command with result", "cmd", cmd.Line, "pid", pid, "result", cmdline)
		return domain.CommandResult{Output: []string{cmdline}, PID: pid}, nil
	}

	level.Error(e.logger).Log("msg", "Fail execute command", "cmd", cmd.Line, "pid", pid, "attempts", e.livenessAttempts)
	return domain.CommandResult{PID: pid}, NewLaunchError("Process was not confirmed running: "+cmd.Line, nil)
}

// openBackgroundLog returns nil when background output is discarded.
func (e *commandExecutor) openBackgroundLog(name string) (*os.File, error) {
	if e.logDir == "" || name == "" {
		return nil, nil
	}
	path, err := securejoin.SecureJoin(e.logDir, name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return []string{}
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
