package interfaces

import (
	"context"

	"appiumhub/domain"
)

// DeviceConnector manages device bridge connections.
//
//go:generate moq -stub -out mock/connector.go -pkg mock . DeviceConnector
type DeviceConnector interface {
	// CreateConnection connects the bridge to ip:port and reports whether the bridge confirmed it.
	CreateConnection(ctx context.Context, ip, port string) bool

	// ListConnections returns the bridge connections keyed by ip. When ip is not empty and
	// present, only that record is returned. Returns an empty map when the bridge fails.
	ListConnections(ctx context.Context, ip string) map[string]domain.DeviceRecord
}
