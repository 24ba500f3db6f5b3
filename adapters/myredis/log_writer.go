package myredis

import (
	"bytes"
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultPushTimeout = time.Second

// ListWriter appends every write as one element of a Redis list, the layout read by the
// Logstash redis input with data_type "list".
type ListWriter struct {
	client  redis.UniversalClient
	key     string
	timeout time.Duration
}

// NewListWriter creates a writer pushing to key.
func NewListWriter(client redis.UniversalClient, key string) *ListWriter {
	return &ListWriter{
		client:  client,
		key:     key,
		timeout: defaultPushTimeout,
	}
}

// Write pushes p without its trailing newline. The logger calls it once per record.
func (w *ListWriter) Write(p []byte) (int, error) {
	entry := bytes.TrimRight(p, "\r\n")
	if len(entry) == 0 {
		return len(p), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.client.RPush(ctx, w.key, string(entry)).Err(); err != nil {
		return 0, err
	}
	return len(p), nil
}
