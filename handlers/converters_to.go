package handlers

import (
	"appiumhub/domain"
)

func toServerAllocation(a domain.ServerAllocation) ServerAllocation {
	return ServerAllocation{
		PrimaryPort: a.PrimaryPort,
		BackendPort: a.BackendPort,
		HostIp:      a.HostIP,
	}
}

// toServersResponse keys allocations by udid.
func toServersResponse(allocations map[domain.UDID]domain.ServerAllocation) ServersResponse {
	out := make(ServersResponse, len(allocations))
	for udid, a := range allocations {
		out[udid.String()] = toServerAllocation(a)
	}
	return out
}

func toConnectionsResponse(records map[string]domain.DeviceRecord) ConnectionsResponse {
	out := make(ConnectionsResponse, len(records))
	for ip, r := range records {
		out[ip] = DeviceRecord{Ip: r.IP, Id: r.ID}
	}
	return out
}
