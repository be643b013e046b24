// Package banner grabs service banners from open ports and applies
// heuristic service detection. It runs strictly after a scan, on ports the
// scanner reported open; nothing here touches the scanning core.
package banner

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/tongchengbin/portscan/pkg/scanner"
)

// Ports that commonly speak TLS or plain HTTP. Only these get a HEAD nudge;
// everything else is a passive read.
var (
	tlsPorts  = map[int]struct{}{443: {}, 8443: {}, 9443: {}}
	httpPorts = map[int]struct{}{80: {}, 81: {}, 8000: {}, 8008: {}, 8080: {}, 8888: {}}
)

const maxBannerSize = 4096

// Grabber fetches the initial response from a service.
type Grabber struct {
	dialer  scanner.Dialer
	timeout time.Duration
}

// NewGrabber builds a grabber. A nil dialer falls back to a plain net.Dialer
// so proxy setups can reuse the dialer the scan ran through.
func NewGrabber(dialer scanner.Dialer, timeout time.Duration) *Grabber {
	if dialer == nil {
		dialer = &net.Dialer{}
	}
	return &Grabber{dialer: dialer, timeout: timeout}
}

// Grab connects to (target, port) and returns whatever the service offers
// first, optionally prompted with an HTTP HEAD. The empty string means the
// service stayed silent within the timeout.
func (g *Grabber) Grab(target *scanner.Target, port int) (string, error) {
	address := net.JoinHostPort(target.IP, strconv.Itoa(port))
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	conn, err := g.dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return "", err
	}
	defer conn.Close()
	deadline := time.Now().Add(g.timeout)
	_ = conn.SetDeadline(deadline)

	if _, ok := tlsPorts[port]; ok {
		tlsConn := tls.Client(conn, &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         target.Host,
			MinVersion:         tls.VersionTLS10,
		})
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			// TLS failed; fall back to a plain read on the raw conn.
			return readBanner(conn)
		}
		_ = tlsConn.SetDeadline(deadline)
		_, _ = tlsConn.Write(headRequest(target.Host))
		return readBanner(tlsConn)
	}

	if _, ok := httpPorts[port]; ok {
		_, _ = conn.Write(headRequest(target.Host))
	}
	return readBanner(conn)
}

func headRequest(host string) []byte {
	return []byte(fmt.Sprintf("HEAD / HTTP/1.0\r\nHost: %s\r\n\r\n", host))
}

// readBanner reads the first chunk the service sends. Read errors after
// some data arrived are ignored; the partial banner is still useful.
func readBanner(conn net.Conn) (string, error) {
	buf := make([]byte, maxBannerSize)
	n, err := conn.Read(buf)
	if n == 0 {
		if err != nil {
			return "", err
		}
		return "", nil
	}
	return strings.TrimSpace(string(buf[:n])), nil
}

// FirstLine trims a banner to its first line for compact display.
func FirstLine(banner string) string {
	if i := strings.IndexAny(banner, "\r\n"); i >= 0 {
		return banner[:i]
	}
	return banner
}
