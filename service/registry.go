package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"appiumhub/domain"
	"appiumhub/helpers"
	"appiumhub/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	shellquote "github.com/kballard/go-shellquote"
)

// RegistryConfig holds the launch parameters of automation servers.
type RegistryConfig struct {
	// AppiumCommand is the command line prefix, port and device flags are appended to it.
	AppiumCommand string
	// HostIP is reported to clients as the address of launched servers.
	HostIP string
	// Ports is the primary port range.
	Ports domain.PortRange
	// WorkingDir is the working directory of launched servers, empty for the current one.
	WorkingDir string
}

// serverRegistry implements interfaces.ServerRegistry. Allocations are kept in memory for
// the lifetime of the process and optionally mirrored to a store.
type serverRegistry struct {
	executor  interfaces.CommandExecutor
	connector interfaces.DeviceConnector
	store     interfaces.Cache[domain.ServerAllocation]
	appium    []string
	config    RegistryConfig
	logger    log.Logger

	// mu guards servers and makes lookup, port allocation, launch and insert one step.
	mu      sync.Mutex
	servers map[domain.UDID]domain.ServerAllocation
}

// NewServerRegistry creates a registry. store may be nil; when set, every new allocation is
// written to it.
func NewServerRegistry(
	executor interfaces.CommandExecutor,
	connector interfaces.DeviceConnector,
	store interfaces.Cache[domain.ServerAllocation],
	config RegistryConfig,
	logger log.Logger,
) (*serverRegistry, error) {
	appium, err := shellquote.Split(helpers.StrPanic(config.AppiumCommand, "service.registry.go: appium command is required"))
	if err != nil {
		return nil, fmt.Errorf("invalid appium command %q: %w", config.AppiumCommand, err)
	}
	if err := ValidatePortRange(config.Ports); err != nil {
		return nil, err
	}

	return &serverRegistry{
		executor:  helpers.NilPanic(executor, "service.registry.go: executor is required"),
		connector: helpers.NilPanic(connector, "service.registry.go: connector is required"),
		store:     store,
		appium:    appium,
		config:    config,
		logger:    log.WithPrefix(helpers.NilPanic(logger, "service.registry.go: logger is required"), "component", "ServerRegistry"),
		servers:   make(map[domain.UDID]domain.ServerAllocation),
	}, nil
}

// Provision returns the allocation for the device, connecting it through the bridge first.
// A device that already has an allocation gets it back unchanged, without relaunching or
// checking that its server is still alive.
func (r *serverRegistry) Provision(ctx context.Context, deviceIP, devicePort string) (domain.ServerAllocation, error) {
	if deviceIP == "" {
		return domain.ServerAllocation{}, NewBadParameterError("Device ip cannot be null", nil)
	}
	if devicePort == "" {
		devicePort = domain.DefaultDevicePort
	}
	udid := domain.NewUDID(deviceIP, devicePort)

	// once started, a provisioning runs to the end even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	if !r.connector.CreateConnection(ctx, deviceIP, devicePort) {
		level.Error(r.logger).Log("msg", "Fail to create adb connection", "udid", udid)
		return domain.ServerAllocation{}, NewMyError(ErrConnectivity,
			fmt.Sprintf("Cannot connect the device %s by adb, please check the phone", udid), nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.servers[udid]; ok {
		return existing, nil
	}

	port := allocatePort(r.config.Ports, r.servers)
	if port == 0 {
		level.Error(r.logger).Log("msg", "Cannot get available appium server port", "udid", udid)
		return domain.ServerAllocation{}, NewMyError(ErrResourceExhausted, "Cannot get available appium server port", nil)
	}
	backendPort := port + 1

	cmd := domain.Command{
		Line:       r.launchLine(port, backendPort, udid),
		Dir:        r.config.WorkingDir,
		Background: true,
		LogFile:    serverLogFile(udid),
	}
	result, err := r.executor.Execute(ctx, cmd)
	if err != nil {
		level.Error(r.logger).Log("msg", "Fail to start appium server", "cmd", cmd.Line, "err", err)
		return domain.ServerAllocation{}, NewMyError(ErrLaunch, fmt.Sprintf("Cannot start appium server %s", udid), err)
	}

	allocation := domain.ServerAllocation{
		UDID:        udid,
		PrimaryPort: port,
		BackendPort: backendPort,
		HostIP:      r.config.HostIP,
		PID:         result.PID,
	}
	r.servers[udid] = allocation
	level.Info(r.logger).Log("msg", "Appium server started", "udid", udid, "port", port, "bport", backendPort, "pid", result.PID)

	if r.store != nil {
		if err := r.store.WriteValue(ctx, udid.String(), allocation, 0); err != nil {
			level.Warn(r.logger).Log("msg", "Failed to mirror allocation", "udid", udid, "err", err)
		}
	}

	return allocation, nil
}

// List returns a copy of all allocations.
func (r *serverRegistry) List() map[domain.UDID]domain.ServerAllocation {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[domain.UDID]domain.ServerAllocation, len(r.servers))
	for udid, a := range r.servers {
		out[udid] = a
	}
	return out
}

// Restore loads allocations from the store so ports held by servers launched before a
// restart are not handed out again. Entries already known or outside the port range are skipped.
func (r *serverRegistry) Restore(ctx context.Context) (int, error) {
	if r.store == nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	items, err := r.store.ListAllValues(ctx)
	if err != nil {
		if IsEntityNotFoundError(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("restore failed to list allocations, err: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	restored := 0
	used := make(map[int]bool, len(r.servers))
	for _, a := range r.servers {
		used[a.PrimaryPort] = true
	}
	for _, a := range items {
		if a.UDID == "" || !inRange(r.config.Ports, a.PrimaryPort) || used[a.PrimaryPort] {
			continue
		}
		if _, ok := r.servers[a.UDID]; ok {
			continue
		}
		a.PID = 0
		r.servers[a.UDID] = a
		used[a.PrimaryPort] = true
		restored++
	}
	level.Info(r.logger).Log("msg", "Allocations restored", "count", restored)
	return restored, nil
}

func (r *serverRegistry) launchLine(port, backendPort int, udid domain.UDID) string {
	args := make([]string, 0, len(r.appium)+6)
	args = append(args, r.appium...)
	args = append(args, "-p", strconv.Itoa(port), "-bp", strconv.Itoa(backendPort), "-U", udid.String())
	return shellquote.Join(args...)
}

func inRange(r domain.PortRange, port int) bool {
	return port >= r.From && port < r.To && (port-r.From)%r.Step == 0
}

// serverLogFile names the output file of the server for udid, e.g. appium-10.0.0.5_5555.log.
func serverLogFile(udid domain.UDID) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, udid.String())
	return "appium-" + name + ".log"
}
