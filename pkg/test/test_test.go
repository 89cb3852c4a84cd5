package test

import (
	"net"
	"testing"

	"github.com/matryer/is"
)

func TestListenAddr(t *testing.T) {
	is := is.New(t)

	seen := map[string]struct{}{}
	for i := 0; i < 8; i++ {
		addr, err := ListenAddr()
		is.NoErr(err)
		_, dup := seen[addr]
		is.True(!dup)
		seen[addr] = struct{}{}
	}

	addr, err := ListenAddr()
	is.NoErr(err)
	l, err := net.Listen("tcp", addr)
	is.NoErr(err) // the address is free to bind
	is.NoErr(l.Close())
}
