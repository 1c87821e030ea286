package main

import (
	"net"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsInvalidConfig(t *testing.T) {
	t.Setenv("SOS_STORAGE", "postgres")

	assert.Equal(t, 1, run(""))
}

func TestRunFailsWhenRedisUnreachable(t *testing.T) {
	t.Setenv("SOS_STORAGE", "redis")
	t.Setenv("SOS_REDIS_URL", "not a redis url")

	assert.Equal(t, 1, run(""))
}

func TestRunReturnsWhenPortTaken(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	t.Setenv("SOS_STORAGE", "file")
	t.Setenv("SOS_SAVE_FILE", filepath.Join(t.TempDir(), "gamestate.csv"))
	t.Setenv("SOS_HTTP_HOST", "127.0.0.1")
	t.Setenv("SOS_HTTP_PORT", strconv.Itoa(taken.Addr().(*net.TCPAddr).Port))

	// The server fails to listen and run returns through its deferred cleanup
	assert.Equal(t, 1, run(""))
}
