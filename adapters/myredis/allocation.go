package myredis

import (
	"encoding/json"
	"fmt"

	"appiumhub/domain"

	"github.com/go-redis/redis/v8"
)

// AllocationPrefix is the key prefix of mirrored server allocations.
const AllocationPrefix = "appium_server"

type allocationModel struct {
	UDID        string `json:"udid"`
	PrimaryPort int    `json:"primaryPort"`
	BackendPort int    `json:"backendPort"`
	HostIP      string `json:"hostIp"`
	PID         int    `json:"pid,omitempty"`
}

// MarshalAllocation encodes an allocation for the mirror.
func MarshalAllocation(a domain.ServerAllocation) ([]byte, error) {
	return json.Marshal(allocationModel{
		UDID:        a.UDID.String(),
		PrimaryPort: a.PrimaryPort,
		BackendPort: a.BackendPort,
		HostIP:      a.HostIP,
		PID:         a.PID,
	})
}

// UnmarshalAllocation decodes a mirrored allocation.
func UnmarshalAllocation(b []byte) (domain.ServerAllocation, error) {
	var m allocationModel
	if err := json.Unmarshal(b, &m); err != nil {
		return domain.ServerAllocation{}, err
	}
	if m.UDID == "" || m.PrimaryPort == 0 {
		return domain.ServerAllocation{}, fmt.Errorf("incomplete allocation %q", b)
	}
	return domain.ServerAllocation{
		UDID:        domain.UDID(m.UDID),
		PrimaryPort: m.PrimaryPort,
		BackendPort: m.BackendPort,
		HostIP:      m.HostIP,
		PID:         m.PID,
	}, nil
}

// NewAllocationCache returns the registry mirror backed by client.
func NewAllocationCache(client redis.UniversalClient) *redisCache[domain.ServerAllocation] {
	return NewCache[domain.ServerAllocation](client, AllocationPrefix, MarshalAllocation, UnmarshalAllocation)
}
