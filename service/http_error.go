package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "an internal server error has occurred"

// ErrResponse is the body of every error reply. Detail is the human-readable message,
// Error adds the machine-readable code.
type ErrResponse struct {
	Detail string   `json:"detail"`
	Error  *MyError `json:"error,omitempty"`
}

// RegisterErrorHandler installs the JSON error handler on e.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(StatusByCode(), logger).Handler
}

// StatusByCode maps error codes to HTTP statuses. Device, port, launch and timeout
// failures are all reported as 500.
func StatusByCode() map[string]int {
	return map[string]int{
		ErrBadParameter:        http.StatusBadRequest,
		ErrEntityNotFound:      http.StatusNotFound,
		ErrInternalServerError: http.StatusInternalServerError,
		ErrConnectivity:        http.StatusInternalServerError,
		ErrResourceExhausted:   http.StatusInternalServerError,
		ErrLaunch:              http.StatusInternalServerError,
		ErrTimeout:             http.StatusInternalServerError,
	}
}

// HTTPErrorHandler turns handler errors into ErrResponse replies.
type HTTPErrorHandler struct {
	statuses map[string]int
	logger   log.Logger
}

// NewHTTPErrorHandler creates a handler; codes missing from statuses are answered with 500.
func NewHTTPErrorHandler(statuses map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		statuses: statuses,
		logger:   log.WithPrefix(logger, "component", "HTTPErrorHandler"),
	}
}

// Handler is an echo.HTTPErrorHandler.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, myErr := h.classify(err)

	logger := level.Error(h.logger)
	if status < http.StatusInternalServerError {
		logger = level.Warn(h.logger)
	}
	logger.Log(
		"msg", "HTTP request error",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"status", status,
		"code", myErr.Code,
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"err", err,
	)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, ErrResponse{Detail: myErr.Message, Error: myErr})
}

// classify returns the reply status and the error shown to the client. Errors raised by echo
// itself and by the request validator arrive as *echo.HTTPError and keep their status.
func (h *HTTPErrorHandler) classify(err error) (int, *MyError) {
	if he, ok := err.(*echo.HTTPError); ok {
		return fromHTTPError(he)
	}

	if myErr := ToMyError(err); myErr != nil {
		status, ok := h.statuses[myErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		return status, myErr
	}

	return http.StatusInternalServerError, NewMyError(ErrInternalServerError, internalErrorMessage, err)
}

func fromHTTPError(he *echo.HTTPError) (int, *MyError) {
	if inner, ok := he.Internal.(*echo.HTTPError); ok {
		he = inner
	}

	var requestError *openapi3filter.RequestError
	code := ErrInternalServerError
	switch {
	case he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed:
		code = ErrEntityNotFound
	case errors.As(he.Internal, &requestError):
		code = ErrBadParameter
	case he.Code >= http.StatusBadRequest && he.Code < http.StatusInternalServerError:
		code = ErrBadParameter
	}

	message, ok := he.Message.(string)
	if !ok || message == "" {
		message = http.StatusText(he.Code)
	}
	return he.Code, NewMyError(code, message, he)
}
