package domain

import (
	"net"
	"time"
)

// DefaultDevicePort is the adb TCP port used when the caller does not provide one.
const DefaultDevicePort = "5555"

// DefaultCommandTimeout bounds foreground command execution.
const DefaultCommandTimeout = 180 * time.Second

// UDID identifies a device as "ip:port".
type UDID string

// NewUDID builds the device identifier from its address parts.
func NewUDID(ip, port string) UDID {
	return UDID(ip + ":" + port)
}

// String returns the identifier in "ip:port" form.
func (u UDID) String() string {
	return string(u)
}

// Host returns the ip part of the identifier, or the whole value when it has no port.
func (u UDID) Host() string {
	host, _, err := net.SplitHostPort(string(u))
	if err != nil {
		return string(u)
	}
	return host
}

// DeviceRecord is one line of the device bridge connection listing.
type DeviceRecord struct {
	IP string // serial as printed by the bridge, usually "ip:port"
	ID string // bridge-assigned state and attributes
}

// ServerAllocation is the result of provisioning an automation server for a device.
type ServerAllocation struct {
	UDID        UDID
	PrimaryPort int
	BackendPort int    // always PrimaryPort + 1
	HostIP      string // address of this service as seen by clients
	PID         int    // launched process id, 0 when restored from the mirror
}

// PortRange is the set of candidate primary ports: From, From+Step, ... while < To.
type PortRange struct {
	From int
	To   int
	Step int
}

// DefaultPortRange returns the even ports in [25000, 26000).
func DefaultPortRange() PortRange {
	return PortRange{From: 25000, To: 26000, Step: 2}
}

// Command describes one executor invocation.
type Command struct {
	Line       string        // command line, shell syntax
	Dir        string        // working directory, empty for the current one
	Timeout    time.Duration // foreground deadline, DefaultCommandTimeout when zero
	Background bool
	LogFile    string // background only: file name for stdout/stderr under the executor log dir
}

// CommandResult is the outcome of a successful executor invocation.
type CommandResult struct {
	Output   []string // stdout lines in foreground mode, the process command line in background mode
	PID      int
	ExitCode int // foreground only, informational
}
