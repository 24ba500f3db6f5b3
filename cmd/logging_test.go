package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"appiumhub/adapters/myredis"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Development(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "app.log")
	var stderr bytes.Buffer

	logger, closer, err := newLogger(&AppiumHubConfig{LogFile: logFile}, &stderr)
	require.NoError(t, err)

	level.Debug(log.WithPrefix(logger, "component", "ServerRegistry")).Log("msg", "Begin execute command")
	require.NoError(t, closer.Close())

	assert.Contains(t, stderr.String(), `msg="Begin execute command"`)
	assert.Contains(t, stderr.String(), "component=ServerRegistry")
	assert.Contains(t, stderr.String(), "level=debug")
	assert.Contains(t, stderr.String(), "ts=")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, stderr.String(), string(data))
}

func TestNewLogger_Production(t *testing.T) {
	const redisAddr = "redis://localhost:6379/15"
	const key = "appiumhub_test_log"

	client, err := myredis.NewRedisUniversalClient(redisAddr)
	require.NoError(t, err)
	defer client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis is not reachable at %s: %v", redisAddr, err)
	}
	client.Del(ctx, key)
	defer client.Del(context.Background(), key)

	var stderr bytes.Buffer
	logger, closer, err := newLogger(&AppiumHubConfig{Production: true, LogRedisAddr: redisAddr, LogRedisKey: key}, &stderr)
	require.NoError(t, err)
	defer closer.Close()

	level.Debug(logger).Log("msg", "dropped")
	level.Info(logger).Log("msg", "Appium server started", "udid", "10.0.0.5:5555")

	assert.NotContains(t, stderr.String(), "dropped")
	assert.Contains(t, stderr.String(), `msg="Appium server started"`)

	entries, err := client.LRange(ctx, key, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0], `"udid":"10.0.0.5:5555"`)
	assert.Contains(t, entries[0], `"level":"info"`)
}

func TestNewLogger_ProductionInvalidAddr(t *testing.T) {
	_, _, err := newLogger(&AppiumHubConfig{Production: true, LogRedisAddr: "://invalid"}, &bytes.Buffer{})
	assert.Error(t, err)
}

type failingLogger struct{ calls int }

func (f *failingLogger) Log(keyvals ...interface{}) error {
	f.calls++
	return errors.New("sink down")
}

func TestTeeLogger(t *testing.T) {
	var buf bytes.Buffer
	failing := &failingLogger{}
	tee := teeLogger{failing, log.NewLogfmtLogger(&buf)}

	err := tee.Log("msg", "hello")
	assert.Error(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, "msg=hello\n", buf.String())
}
