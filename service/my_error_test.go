package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMyError(t *testing.T) {
	inner := errors.New("underlying")
	e := NewMyError(ErrBadParameter, "invalid input", inner)
	require.NotNil(t, e)
	assert.Equal(t, ErrBadParameter, e.Code)
	assert.Equal(t, "invalid input", e.Message)
	assert.Same(t, inner, e.Inner)
}

func TestTypedConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *MyError
		code string
		is   func(error) bool
	}{
		{"internal", NewInternalServerError("db failed", nil), ErrInternalServerError, IsInternalServerError},
		{"not found", NewEntityNotFoundError("gone", nil), ErrEntityNotFound, IsEntityNotFoundError},
		{"bad parameter", NewBadParameterError("invalid body", nil), ErrBadParameter, IsBadParameterError},
		{"connectivity", NewConnectivityError("unreachable", nil), ErrConnectivity, IsConnectivityError},
		{"exhausted", NewResourceExhaustedError("no port", nil), ErrResourceExhausted, IsResourceExhaustedError},
		{"launch", NewLaunchError("no process", nil), ErrLaunch, IsLaunchError},
		{"timeout", NewTimeoutError("too slow", nil), ErrTimeout, IsTimeoutError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.True(t, tt.is(tt.err))
			assert.Equal(t, tt.code, ToMyErrorCode(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestTypedConstructor_KeepsInnerMyError(t *testing.T) {
	timeout := NewTimeoutError("The command is timeout sleep 5", nil)
	got := NewLaunchError("Cannot start appium server", timeout)
	assert.Same(t, timeout, got)
	assert.True(t, IsTimeoutError(got))
	assert.False(t, IsLaunchError(got))
}

func TestMyError_Error(t *testing.T) {
	assert.Equal(t, "bad_parameter bad", NewBadParameterError("bad", nil).Error())
	assert.Equal(t, "launch_error failed: boom", NewLaunchError("failed", errors.New("boom")).Error())
}

func TestToMyError_WithMyError(t *testing.T) {
	e := NewBadParameterError("bad", nil)
	got := ToMyError(e)
	require.NotNil(t, got)
	assert.Same(t, e, got)
}

func TestToMyError_WithOrdinaryError(t *testing.T) {
	e := errors.New("plain")
	assert.Nil(t, ToMyError(e))
	assert.Equal(t, "", ToMyErrorCode(e))
	assert.False(t, IsTimeoutError(e))
}
