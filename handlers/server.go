package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ServerRequest is the body of POST /servers.
type ServerRequest struct {
	DeviceIp   *string     `json:"deviceIp,omitempty"`
	DevicePort *DevicePort `json:"devicePort,omitempty"`
}

// ConnectionRequest is the body of POST /connections.
type ConnectionRequest struct {
	DeviceIp *string `json:"deviceIp,omitempty"`
}

// ServerAllocation is the public view of a provisioned server.
type ServerAllocation struct {
	PrimaryPort int    `json:"primaryPort"`
	BackendPort int    `json:"backendPort"`
	HostIp      string `json:"hostIp"`
}

// ServersResponse maps udid to allocation.
type ServersResponse map[string]ServerAllocation

// DeviceRecord is one adb device.
type DeviceRecord struct {
	Ip string `json:"ip"`
	Id string `json:"id"`
}

// ConnectionsResponse maps device serial to record.
type ConnectionsResponse map[string]DeviceRecord

// ListConnectionsParams defines parameters for ListConnections.
type ListConnectionsParams struct {
	DeviceIp *string `form:"deviceIp,omitempty" json:"deviceIp,omitempty"`
}

// DevicePort accepts both "5555" and 5555.
type DevicePort string

// UnmarshalJSON implements json.Unmarshaler.
func (p *DevicePort) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = DevicePort(s)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("devicePort must be a string or an integer, got %s", b)
	}
	*p = DevicePort(strconv.FormatInt(n, 10))
	return nil
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// ProvisionServer (POST /servers)
	ProvisionServer(ctx echo.Context) error
	// ListServers (GET /servers)
	ListServers(ctx echo.Context) error
	// CreateConnection (POST /connections)
	CreateConnection(ctx echo.Context) error
	// ListConnections (GET /connections)
	ListConnections(ctx echo.Context, params ListConnectionsParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ProvisionServer converts echo context to params.
func (w *ServerInterfaceWrapper) ProvisionServer(ctx echo.Context) error {
	return w.Handler.ProvisionServer(ctx)
}

// ListServers converts echo context to params.
func (w *ServerInterfaceWrapper) ListServers(ctx echo.Context) error {
	return w.Handler.ListServers(ctx)
}

// CreateConnection converts echo context to params.
func (w *ServerInterfaceWrapper) CreateConnection(ctx echo.Context) error {
	return w.Handler.CreateConnection(ctx)
}

// ListConnections converts echo context to params.
func (w *ServerInterfaceWrapper) ListConnections(ctx echo.Context) error {
	var params ListConnectionsParams
	if values, ok := ctx.QueryParams()["deviceIp"]; ok && len(values) > 0 {
		params.DeviceIp = &values[0]
	}
	return w.Handler.ListConnections(ctx, params)
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/servers", wrapper.ProvisionServer)
	router.GET(baseURL+"/servers", wrapper.ListServers)
	router.POST(baseURL+"/connections", wrapper.CreateConnection)
	router.GET(baseURL+"/connections", wrapper.ListConnections)
}
