package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddr(t *testing.T) {
	valid := []string{
		":8080",
		":0", // auto-assign
		":65535",
		"localhost:8080",
		"127.0.0.1:8080",
		"0.0.0.0:80",
		"[::1]:8080",
		"myhost:9090",
	}
	for _, addr := range valid {
		t.Run(addr, func(t *testing.T) {
			assert.NoError(t, validateAddr(addr))
		})
	}

	invalid := map[string]string{
		"no port":        "localhost",
		"bare port":      "8080",
		"empty":          "",
		"alpha port":     ":abc",
		"negative port":  ":-1",
		"port too high":  ":65536",
		"trailing colon": "localhost:",
		"space in host":  "my host:8080",
		"tab in host":    "my\thost:8080",
	}
	for name, addr := range invalid {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, validateAddr(addr), "addr %q", addr)
		})
	}
}

// withArgs swaps os.Args for the duration of a subtest; parseServeAddr
// reads the process arguments directly.
func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"babysteps", "serve"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestParseServeAddr(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		withArgs(t)
		addr, err := parseServeAddr("127.0.0.1:8080")
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:8080", addr)
	})

	t.Run("positional", func(t *testing.T) {
		withArgs(t, ":9000")
		addr, err := parseServeAddr("127.0.0.1:8080")
		require.NoError(t, err)
		assert.Equal(t, ":9000", addr)
	})

	t.Run("flag", func(t *testing.T) {
		withArgs(t, "--addr", ":9001")
		addr, err := parseServeAddr("127.0.0.1:8080")
		require.NoError(t, err)
		assert.Equal(t, ":9001", addr)
	})

	t.Run("invalid positional", func(t *testing.T) {
		withArgs(t, "not-an-addr")
		_, err := parseServeAddr("127.0.0.1:8080")
		assert.Error(t, err)
	})
}

func FuzzValidateAddr(f *testing.F) {
	seeds := []string{":8080", "localhost:8080", "127.0.0.1:80", "", "abc", ":0", ":99999", "[::1]:8080", "host with space:80"}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, addr string) {
		_ = validateAddr(addr) // must not panic
	})
}
