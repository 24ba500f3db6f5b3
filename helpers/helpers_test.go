package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrPanic(t *testing.T) {
	t.Run("empty_panics", func(t *testing.T) {
		assert.PanicsWithValue(t, "adb is required", func() {
			StrPanic("", "adb is required")
		})
	})
	t.Run("non_empty_returns_value", func(t *testing.T) {
		require.Equal(t, "adb", StrPanic("adb", "adb is required"))
	})
}

func TestNilPanic(t *testing.T) {
	t.Run("nil_interface_panics", func(t *testing.T) {
		var v interface{}
		assert.PanicsWithValue(t, "interface is required", func() {
			NilPanic(v, "interface is required")
		})
	})
	t.Run("nil_map_panics", func(t *testing.T) {
		var m map[string]int
		assert.PanicsWithValue(t, "map is required", func() {
			NilPanic(m, "map is required")
		})
	})
	t.Run("nil_pointer_panics", func(t *testing.T) {
		var p *int
		assert.PanicsWithValue(t, "pointer is required", func() {
			NilPanic(p, "pointer is required")
		})
	})
	t.Run("nil_func_panics", func(t *testing.T) {
		var f func()
		assert.PanicsWithValue(t, "func is required", func() {
			NilPanic(f, "func is required")
		})
	})
	t.Run("non_nil_returns_value", func(t *testing.T) {
		require.Equal(t, []byte("ok"), NilPanic([]byte("ok"), "slice is required"))
		require.Equal(t, 0, NilPanic(0, "int is required"))
	})
}

func TestValueOr(t *testing.T) {
	port := "5556"
	empty := ""
	assert.Equal(t, "5556", ValueOr(&port, "5555"))
	assert.Equal(t, "5555", ValueOr(&empty, "5555"))
	assert.Equal(t, "5555", ValueOr[string](nil, "5555"))
}
