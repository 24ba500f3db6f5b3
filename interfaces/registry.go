package interfaces

import (
	"context"

	"appiumhub/domain"
)

// ServerRegistry provisions and remembers one automation server per device.
//
//go:generate moq -stub -out mock/registry.go -pkg mock . ServerRegistry
type ServerRegistry interface {
	// Provision returns the allocation for deviceIP:devicePort, launching a server on first use.
	// Returns:
	// 1) (allocation, nil) on success or when the device already has a server;
	// 2) bad_parameter when deviceIP is empty;
	// 3) connectivity_error when the bridge cannot connect the device;
	// 4) resource_exhausted when no port is left;
	// 5) launch_error when the server process could not be confirmed running.
	Provision(ctx context.Context, deviceIP, devicePort string) (domain.ServerAllocation, error)

	// List returns a snapshot of all allocations keyed by udid.
	List() map[domain.UDID]domain.ServerAllocation
}
