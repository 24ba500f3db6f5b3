package handlers

import (
	"appiumhub/domain"
	"appiumhub/helpers"
	"appiumhub/service"
)

const errDeviceIPRequired = "Device ip cannot be null"

// fromServerRequest returns the device address of a provisioning request.
// Returns service.BadParameterError when deviceIp is absent or empty.
func fromServerRequest(req ServerRequest) (ip string, port string, err error) {
	ip = helpers.ValueOr(req.DeviceIp, "")
	if ip == "" {
		return "", "", service.NewBadParameterError(errDeviceIPRequired, nil)
	}
	port = string(helpers.ValueOr(req.DevicePort, DevicePort(domain.DefaultDevicePort)))
	return ip, port, nil
}

// fromConnectionRequest returns the device address of a connection request.
func fromConnectionRequest(req ConnectionRequest) (string, error) {
	ip := helpers.ValueOr(req.DeviceIp, "")
	if ip == "" {
		return "", service.NewBadParameterError(errDeviceIPRequired, nil)
	}
	return ip, nil
}
