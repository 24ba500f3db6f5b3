package main

import (
	"io"
	"os"

	"appiumhub/adapters/myredis"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 1
)

// teeLogger sends every record to all loggers.
type teeLogger []log.Logger

func (t teeLogger) Log(keyvals ...interface{}) error {
	var firstErr error
	for _, l := range t {
		if err := l.Log(keyvals...); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// newLogger builds the service logger. Development logs go to stderr and a rotating file,
// production logs go to stderr and, as JSON, to a Redis list read by Logstash.
// The returned closer releases the file or the Redis connection.
func newLogger(cfg *AppiumHubConfig, stderr io.Writer) (log.Logger, io.Closer, error) {
	var logger log.Logger
	var closer io.Closer
	if cfg.Production {
		client, err := myredis.NewRedisUniversalClient(cfg.LogRedisAddr)
		if err != nil {
			return nil, nil, err
		}
		logger = teeLogger{
			log.NewLogfmtLogger(log.NewSyncWriter(stderr)),
			log.NewJSONLogger(log.NewSyncWriter(myredis.NewListWriter(client, cfg.LogRedisKey))),
		}
		logger = level.NewFilter(logger, level.AllowInfo())
		closer = client
	} else {
		file := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
		}
		logger = log.NewLogfmtLogger(log.NewSyncWriter(io.MultiWriter(stderr, file)))
		logger = level.NewFilter(logger, level.AllowDebug())
		closer = file
	}

	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return logger, closer, nil
}

// bootstrapLogger is used until the configuration is loaded.
func bootstrapLogger() log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}
