package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"appiumhub/api"
	"appiumhub/domain"
	"appiumhub/interfaces/mock"
	"appiumhub/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errBody struct {
	Detail string `json:"detail"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestEcho(t *testing.T, server ServerInterface) *echo.Echo {
	t.Helper()
	doc, err := api.Load(context.Background())
	require.NoError(t, err)
	validator, err := NewRequestValidator(doc)
	require.NoError(t, err)

	e := echo.New()
	e.Use(validator)
	RegisterHandlers(e, server)
	service.RegisterErrorHandler(e, log.NewNopLogger())
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) errBody {
	t.Helper()
	var body errBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	return body
}

func provisioned(ip, port string) domain.ServerAllocation {
	return domain.ServerAllocation{
		UDID:        domain.NewUDID(ip, port),
		PrimaryPort: 25000,
		BackendPort: 25001,
		HostIP:      "192.168.1.10",
		PID:         4242,
	}
}

func TestNewHTTPServer_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "handlers.http.go: registry is required", func() {
		NewHTTPServer(nil, &mock.DeviceConnectorMock{}, log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "handlers.http.go: connector is required", func() {
		NewHTTPServer(&mock.ServerRegistryMock{}, nil, log.NewNopLogger())
	})
}

func TestHTTPServer_ProvisionServer(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		provisionErr   error
		expectedStatus int
		wantIP         string
		wantPort       string
		wantDetail     string
		wantCode       string
	}{
		{
			name:           "ok string port",
			body:           `{"deviceIp":"10.0.0.5","devicePort":"5555"}`,
			expectedStatus: http.StatusOK,
			wantIP:         "10.0.0.5",
			wantPort:       "5555",
		},
		{
			name:           "ok numeric port",
			body:           `{"deviceIp":"10.0.0.5","devicePort":5556}`,
			expectedStatus: http.StatusOK,
			wantIP:         "10.0.0.5",
			wantPort:       "5556",
		},
		{
			name:           "ok default port",
			body:           `{"deviceIp":"10.0.0.5"}`,
			expectedStatus: http.StatusOK,
			wantIP:         "10.0.0.5",
			wantPort:       "5555",
		},
		{
			name:           "ok null port",
			body:           `{"deviceIp":"10.0.0.5","devicePort":null}`,
			expectedStatus: http.StatusOK,
			wantIP:         "10.0.0.5",
			wantPort:       "5555",
		},
		{
			name:           "400 missing deviceIp",
			body:           `{"devicePort":"5555"}`,
			expectedStatus: http.StatusBadRequest,
			wantDetail:     "Device ip cannot be null",
			wantCode:       service.ErrBadParameter,
		},
		{
			name:           "400 null deviceIp",
			body:           `{"deviceIp":null}`,
			expectedStatus: http.StatusBadRequest,
			wantDetail:     "Device ip cannot be null",
			wantCode:       service.ErrBadParameter,
		},
		{
			name:           "400 empty deviceIp",
			body:           `{"deviceIp":""}`,
			expectedStatus: http.StatusBadRequest,
			wantDetail:     "Device ip cannot be null",
			wantCode:       service.ErrBadParameter,
		},
		{
			name:           "400 empty body",
			body:           "",
			expectedStatus: http.StatusBadRequest,
			wantDetail:     "Device ip cannot be null",
			wantCode:       service.ErrBadParameter,
		},
		{
			name:           "400 invalid JSON",
			body:           `{invalid`,
			expectedStatus: http.StatusBadRequest,
			wantCode:       service.ErrBadParameter,
		},
		{
			name:           "400 deviceIp of wrong type",
			body:           `{"deviceIp":5}`,
			expectedStatus: http.StatusBadRequest,
			wantCode:       service.ErrBadParameter,
		},
		{
			name:           "400 devicePort of wrong type",
			body:           `{"deviceIp":"10.0.0.5","devicePort":true}`,
			expectedStatus: http.StatusBadRequest,
			wantCode:       service.ErrBadParameter,
		},
		{
			name:           "500 device unreachable",
			body:           `{"deviceIp":"10.0.0.9"}`,
			provisionErr:   service.NewConnectivityError("Cannot connect the device 10.0.0.9:5555 by adb, please check the phone", nil),
			expectedStatus: http.StatusInternalServerError,
			wantIP:         "10.0.0.9",
			wantPort:       "5555",
			wantDetail:     "Cannot connect the device 10.0.0.9:5555 by adb, please check the phone",
			wantCode:       service.ErrConnectivity,
		},
		{
			name:           "500 ports exhausted",
			body:           `{"deviceIp":"10.0.0.5"}`,
			provisionErr:   service.NewResourceExhaustedError("Cannot get available appium server port", nil),
			expectedStatus: http.StatusInternalServerError,
			wantIP:         "10.0.0.5",
			wantPort:       "5555",
			wantDetail:     "Cannot get available appium server port",
			wantCode:       service.ErrResourceExhausted,
		},
		{
			name:           "500 launch failure",
			body:           `{"deviceIp":"10.0.0.5"}`,
			provisionErr:   service.NewLaunchError("Cannot start appium server 10.0.0.5:5555", nil),
			expectedStatus: http.StatusInternalServerError,
			wantIP:         "10.0.0.5",
			wantPort:       "5555",
			wantDetail:     "Cannot start appium server 10.0.0.5:5555",
			wantCode:       service.ErrLaunch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := &mock.ServerRegistryMock{
				ProvisionFunc: func(ctx context.Context, deviceIP, devicePort string) (domain.ServerAllocation, error) {
					if tt.provisionErr != nil {
						return domain.ServerAllocation{}, tt.provisionErr
					}
					return provisioned(deviceIP, devicePort), nil
				},
			}
			e := newTestEcho(t, NewHTTPServer(registry, &mock.DeviceConnectorMock{}, log.NewNopLogger()))

			rec := serve(e, http.MethodPost, "/servers", tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.wantIP != "" {
				require.Len(t, registry.ProvisionCalls(), 1)
				assert.Equal(t, tt.wantIP, registry.ProvisionCalls()[0].DeviceIP)
				assert.Equal(t, tt.wantPort, registry.ProvisionCalls()[0].DevicePort)
			} else {
				assert.Empty(t, registry.ProvisionCalls())
			}

			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"primaryPort":25000,"backendPort":25001,"hostIp":"192.168.1.10"}`, rec.Body.String())
				return
			}
			body := decodeErr(t, rec)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.Detail)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, body.Detail)
				assert.Equal(t, tt.wantDetail, body.Error.Message)
			}
		})
	}
}

func TestHTTPServer_ListServers(t *testing.T) {
	tests := []struct {
		name     string
		servers  map[domain.UDID]domain.ServerAllocation
		wantJSON string
	}{
		{
			name:     "empty registry",
			servers:  map[domain.UDID]domain.ServerAllocation{},
			wantJSON: `{}`,
		},
		{
			name: "two devices",
			servers: map[domain.UDID]domain.ServerAllocation{
				"10.0.0.5:5555": {UDID: "10.0.0.5:5555", PrimaryPort: 25000, BackendPort: 25001, HostIP: "192.168.1.10", PID: 1},
				"10.0.0.6:5555": {UDID: "10.0.0.6:5555", PrimaryPort: 25002, BackendPort: 25003, HostIP: "192.168.1.10", PID: 2},
			},
			wantJSON: `{
				"10.0.0.5:5555": {"primaryPort":25000,"backendPort":25001,"hostIp":"192.168.1.10"},
				"10.0.0.6:5555": {"primaryPort":25002,"backendPort":25003,"hostIp":"192.168.1.10"}
			}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := &mock.ServerRegistryMock{
				ListFunc: func() map[domain.UDID]domain.ServerAllocation {
					return tt.servers
				},
			}
			e := newTestEcho(t, NewHTTPServer(registry, &mock.DeviceConnectorMock{}, log.NewNopLogger()))

			rec := serve(e, http.MethodGet, "/servers", "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantJSON, rec.Body.String())
		})
	}
}

func TestHTTPServer_CreateConnection(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"ok", `{"deviceIp":"10.0.0.5"}`, http.StatusOK},
		{"400 missing deviceIp", `{}`, http.StatusBadRequest},
		{"400 empty body", "", http.StatusBadRequest},
		{"400 empty deviceIp", `{"deviceIp":""}`, http.StatusBadRequest},
		{"400 invalid JSON", `{invalid`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connector := &mock.DeviceConnectorMock{}
			e := newTestEcho(t, NewHTTPServer(&mock.ServerRegistryMock{}, connector, log.NewNopLogger()))

			rec := serve(e, http.MethodPost, "/connections", tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			// no bridge command is issued
			assert.Empty(t, connector.CreateConnectionCalls())
			if tt.expectedStatus == http.StatusOK {
				assert.Empty(t, rec.Body.Bytes())
			} else {
				assert.Equal(t, service.ErrBadParameter, decodeErr(t, rec).Error.Code)
			}
		})
	}
}

func TestHTTPServer_ListConnections(t *testing.T) {
	records := map[string]domain.DeviceRecord{
		"10.0.0.5:5555": {IP: "10.0.0.5:5555", ID: "device"},
		"10.0.0.6:5555": {IP: "10.0.0.6:5555", ID: "offline"},
	}
	tests := []struct {
		name     string
		target   string
		wantIP   string
		wantJSON string
	}{
		{
			name:   "all devices",
			target: "/connections",
			wantJSON: `{
				"10.0.0.5:5555": {"ip":"10.0.0.5:5555","id":"device"},
				"10.0.0.6:5555": {"ip":"10.0.0.6:5555","id":"offline"}
			}`,
		},
		{
			name:     "filtered",
			target:   "/connections?deviceIp=10.0.0.6:5555",
			wantIP:   "10.0.0.6:5555",
			wantJSON: `{"10.0.0.6:5555": {"ip":"10.0.0.6:5555","id":"offline"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			connector := &mock.DeviceConnectorMock{
				ListConnectionsFunc: func(ctx context.Context, ip string) map[string]domain.DeviceRecord {
					if r, ok := records[ip]; ok {
						return map[string]domain.DeviceRecord{ip: r}
					}
					return records
				},
			}
			e := newTestEcho(t, NewHTTPServer(&mock.ServerRegistryMock{}, connector, log.NewNopLogger()))

			rec := serve(e, http.MethodGet, tt.target, "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantJSON, rec.Body.String())
			require.Len(t, connector.ListConnectionsCalls(), 1)
			assert.Equal(t, tt.wantIP, connector.ListConnectionsCalls()[0].IP)
		})
	}
}

func TestHTTPServer_UnknownRoutes(t *testing.T) {
	e := newTestEcho(t, NewHTTPServer(&mock.ServerRegistryMock{}, &mock.DeviceConnectorMock{}, log.NewNopLogger()))

	t.Run("404", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/appium/servers", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, service.ErrEntityNotFound, decodeErr(t, rec).Error.Code)
	})

	t.Run("405", func(t *testing.T) {
		rec := serve(e, http.MethodDelete, "/servers", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, service.ErrEntityNotFound, decodeErr(t, rec).Error.Code)
	})
}
