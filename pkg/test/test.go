package test

import (
	"fmt"
	"net"
	"sync"
)

var (
	handedOut = map[string]struct{}{}
	addrMu    sync.Mutex
)

// ListenAddr returns a free loopback address for a test server. The same
// address is never handed out twice within a test binary, so servers
// started by parallel scripts do not race for a port.
func ListenAddr() (string, error) {
	addrMu.Lock()
	defer addrMu.Unlock()

	for i := 0; i < 16; i++ {
		l, err := net.Listen("tcp", "localhost:0")
		if err != nil {
			return "", err
		}
		port := l.Addr().(*net.TCPAddr).Port
		if err := l.Close(); err != nil {
			return "", err
		}

		addr := fmt.Sprintf("localhost:%d", port)
		if _, ok := handedOut[addr]; ok {
			continue
		}
		handedOut[addr] = struct{}{}
		return addr, nil
	}
	return "", fmt.Errorf("no free listen address")
}
