package netutil

import (
	"fmt"
	"net"

	"golang.org/x/net/proxy"

	"github.com/tongchengbin/portscan/pkg/scanner"
)

// SOCKS5Dialer returns a dialer that routes every probe through the SOCKS5
// proxy at addr (host:port).
func SOCKS5Dialer(addr string) (scanner.Dialer, error) {
	d, err := proxy.SOCKS5("tcp", addr, nil, &net.Dialer{})
	if err != nil {
		return nil, fmt.Errorf("building socks5 dialer: %w", err)
	}
	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("socks5 dialer for %s does not support context", addr)
	}
	return cd, nil
}
