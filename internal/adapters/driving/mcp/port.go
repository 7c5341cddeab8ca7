package mcp

import (
	"fmt"
	"net"
)

// Port range tried when serving HTTP without an explicit port.
const (
	DefaultPortStart = 8765
	DefaultPortEnd   = 8799
)

// FindAvailablePort finds an available port in the given range.
func FindAvailablePort(startPort, endPort int) (int, error) {
	for port := startPort; port <= endPort; port++ {
		addr := fmt.Sprintf("127.0.0.1:%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", startPort, endPort)
}
