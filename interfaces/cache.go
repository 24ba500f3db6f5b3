package interfaces

import "context"

// Cache is a keyed store of T shared with other processes. The registry mirrors its
// allocations into it and reads them back at startup.
//
//go:generate moq -stub -out mock/cache.go -pkg mock . Cache
type Cache[T any] interface {
	// WriteValue stores item under key for ttlMs milliseconds; 0 keeps it until overwritten.
	// Encoding and storage failures are internal_server_error.
	WriteValue(ctx context.Context, key string, item T, ttlMs int) error

	// ListAllValues returns every stored item. An empty store, or one whose values all fail
	// to decode, is entity_not_found; a storage failure is internal_server_error.
	ListAllValues(ctx context.Context) ([]T, error)
}
