package service

import (
	"context"
	"strings"
	"time"

	"appiumhub/domain"
	"appiumhub/helpers"
	"appiumhub/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	shellquote "github.com/kballard/go-shellquote"
)

const (
	listHeaderPrefix   = "List of devices"
	adbNoticePrefix    = "*"
	listFieldSeparator = "  "
)

var connectedPrefixes = []string{"already connected to", "connected to"}

// deviceConnectionManager implements interfaces.DeviceConnector on top of the adb client.
type deviceConnectionManager struct {
	executor interfaces.CommandExecutor
	adb      string
	timeout  time.Duration
	logger   log.Logger
}

// NewDeviceConnectionManager creates a DeviceConnector that runs adb through executor.
// timeout bounds each adb invocation; zero means the executor default.
func NewDeviceConnectionManager(executor interfaces.CommandExecutor, adb string, timeout time.Duration, logger log.Logger) interfaces.DeviceConnector {
	return &deviceConnectionManager{
		executor: helpers.NilPanic(executor, "service.connections.go: executor is required"),
		adb:      helpers.StrPanic(adb, "service.connections.go: adb binary is required"),
		timeout:  timeout,
		logger:   log.WithPrefix(helpers.NilPanic(logger, "service.connections.go: logger is required"), "component", "DeviceConnectionManager"),
	}
}

// CreateConnection runs "adb connect ip:port". The exit status of adb is not reliable, so the
// printed text decides: it must start with "connected to" or "already connected to".
func (m *deviceConnectionManager) CreateConnection(ctx context.Context, ip, port string) bool {
	level.Info(m.logger).Log("msg", "create connection is called", "ip", ip, "port", port)

	line := shellquote.Join(m.adb, "connect", ip+":"+port)
	result, err := m.executor.Execute(ctx, domain.Command{Line: line, Timeout: m.timeout})
	if err != nil {
		return false
	}

	text := strings.TrimSpace(strings.Join(result.Output, "\n"))
	for _, prefix := range connectedPrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

// ListConnections runs "adb devices -l" and parses one record per device line.
func (m *deviceConnectionManager) ListConnections(ctx context.Context, ip string) map[string]domain.DeviceRecord {
	line := shellquote.Join(m.adb, "devices", "-l")
	result, err := m.executor.Execute(ctx, domain.Command{Line: line, Timeout: m.timeout})
	if err != nil {
		return map[string]domain.DeviceRecord{}
	}

	devices := make(map[string]domain.DeviceRecord)
	for _, raw := range result.Output {
		record, ok := parseDeviceLine(raw)
		if !ok {
			continue
		}
		devices[record.IP] = record
		if ip != "" && ip == record.IP {
			return map[string]domain.DeviceRecord{record.IP: record}
		}
	}
	return devices
}

// parseDeviceLine splits "serial  state attrs..." on the double-space separator.
// Header lines, adb daemon notices and lines without a second field are skipped.
func parseDeviceLine(raw string) (domain.DeviceRecord, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, listHeaderPrefix) || strings.HasPrefix(line, adbNoticePrefix) {
		return domain.DeviceRecord{}, false
	}

	fields := make([]string, 0, 2)
	for _, f := range strings.Split(line, listFieldSeparator) {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) < 2 {
		return domain.DeviceRecord{}, false
	}

	return domain.DeviceRecord{
		IP: fields[0],
		ID: strings.Join(fields[1:], " "),
	}, true
}
