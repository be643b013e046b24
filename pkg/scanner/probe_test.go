package scanner

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listenerPort(t *testing.T, l net.Listener) int {
	t.Helper()
	return l.Addr().(*net.TCPAddr).Port
}

func TestProbeOpenPort(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	prober := NewProber(DefaultOptions())
	outcome := prober.Probe(NewTarget("localhost", "127.0.0.1"), listenerPort(t, l))
	assert.Equal(t, StatusOpen, outcome.Status)
	assert.Empty(t, outcome.Reason)
}

func TestProbeClosedPort(t *testing.T) {
	// Grab a free port and release it so nothing listens there.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listenerPort(t, l)
	require.NoError(t, l.Close())

	prober := NewProber(DefaultOptions())
	outcome := prober.Probe(NewTarget("localhost", "127.0.0.1"), port)
	assert.Equal(t, StatusClosed, outcome.Status)
}

func TestProbeTimeoutIsFiltered(t *testing.T) {
	opts := DefaultOptions()
	opts.Timeout = 50 * time.Millisecond
	opts.Dialer = dialerFunc(func(ctx context.Context, network, address string) (net.Conn, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	prober := NewProber(opts)
	start := time.Now()
	outcome := prober.Probe(NewTarget("h", "10.255.255.1"), 80)
	assert.Equal(t, StatusFiltered, outcome.Status)
	// Bounded by the probe timeout plus a small teardown allowance.
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

type dialerFunc func(ctx context.Context, network, address string) (net.Conn, error)

func (f dialerFunc) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	return f(ctx, network, address)
}
