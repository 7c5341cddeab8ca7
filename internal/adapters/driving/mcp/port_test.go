package mcp

import (
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAvailablePort_SkipsBusyPort(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	got, err := FindAvailablePort(port, port+20)
	require.NoError(t, err)
	assert.NotEqual(t, port, got)
	assert.Greater(t, got, port)
}

func TestFindAvailablePort_NoneFree(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	_, err = FindAvailablePort(port, port)
	assert.EqualError(t, err, fmt.Sprintf("no available port in range %d-%d", port, port))
}
