// Package handlers contains http handlers for appiumhub.
package handlers

import (
	"fmt"
	"net/http"

	"appiumhub/helpers"
	"appiumhub/interfaces"
	"appiumhub/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface.
type HTTPServer struct {
	registry  interfaces.ServerRegistry
	connector interfaces.DeviceConnector
	logger    log.Logger
}

// NewHTTPServer creates a new HTTPServer.
func NewHTTPServer(registry interfaces.ServerRegistry, connector interfaces.DeviceConnector, logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(logger, "component", "HTTPServer")
	return &HTTPServer{
		registry:  helpers.NilPanic(registry, "handlers.http.go: registry is required"),
		connector: helpers.NilPanic(connector, "handlers.http.go: connector is required"),
		logger:    logger,
	}
}

// ProvisionServer (POST /servers) connects the device and returns its server. Returns 400 when
// deviceIp is missing, 500 when the device is unreachable, no port is left or the launch fails.
func (h *HTTPServer) ProvisionServer(ectx echo.Context) error {
	var req ServerRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	ip, port, err := fromServerRequest(req)
	if err != nil {
		return err
	}

	allocation, err := h.registry.Provision(ectx.Request().Context(), ip, port)
	if err != nil {
		return fmt.Errorf("provisionServer failed for %s:%s, err: %w", ip, port, err)
	}

	return ectx.JSON(http.StatusOK, toServerAllocation(allocation))
}

// ListServers (GET /servers) returns all allocations keyed by udid.
func (h *HTTPServer) ListServers(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toServersResponse(h.registry.List()))
}

// CreateConnection (POST /connections) only validates the request, connections are made
// while provisioning.
func (h *HTTPServer) CreateConnection(ectx echo.Context) error {
	var req ConnectionRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	ip, err := fromConnectionRequest(req)
	if err != nil {
		return err
	}
	level.Debug(h.logger).Log("msg", "Connection request accepted", "device_ip", ip)

	return ectx.NoContent(http.StatusOK)
}

// ListConnections (GET /connections) returns the adb device listing, or the single record
// matching deviceIp.
func (h *HTTPServer) ListConnections(ectx echo.Context, params ListConnectionsParams) error {
	ip := helpers.ValueOr(params.DeviceIp, "")
	records := h.connector.ListConnections(ectx.Request().Context(), ip)
	return ectx.JSON(http.StatusOK, toConnectionsResponse(records))
}
