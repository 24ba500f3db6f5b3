package myredis

import (
	"context"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListWriter(t *testing.T) {
	const key = "appium_server_test_log"
	client := setupTestRedis(t, key)
	w := NewListWriter(client, key)

	logger := log.NewJSONLogger(w)
	require.NoError(t, logger.Log("msg", "first", "component", "ServerRegistry"))
	require.NoError(t, logger.Log("msg", "second"))

	n, err := w.Write([]byte("\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entries, err := client.LRange(context.Background(), key, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.JSONEq(t, `{"msg":"first","component":"ServerRegistry"}`, entries[0])
	assert.JSONEq(t, `{"msg":"second"}`, entries[1])
}

func TestListWriter_Unreachable(t *testing.T) {
	client, err := NewRedisUniversalClient("redis://127.0.0.1:1")
	require.NoError(t, err)
	defer client.Close()

	n, err := NewListWriter(client, "k").Write([]byte("{}\n"))
	assert.Error(t, err)
	assert.Zero(t, n)
}
