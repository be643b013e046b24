// Package netutil resolves targets and builds dialers. The scanning core
// only ever consumes the resolved address it produces.
package netutil

import (
	"fmt"
	"net"

	"github.com/projectdiscovery/fastdialer/fastdialer"
)

// Resolve turns a hostname or IP literal into a single usable IP address.
// Literals pass through untouched; hostnames go through fastdialer's cached,
// retrying resolver. IPv4 answers are preferred, IPv6 accepted.
func Resolve(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip.String(), nil
	}

	fd, err := fastdialer.NewDialer(fastdialer.DefaultOptions)
	if err != nil {
		return "", fmt.Errorf("initializing resolver: %w", err)
	}
	defer fd.Close()

	data, err := fd.GetDNSData(host)
	if err != nil {
		return "", fmt.Errorf("could not resolve %s: %w", host, err)
	}
	if len(data.A) > 0 {
		return data.A[0], nil
	}
	if len(data.AAAA) > 0 {
		return data.AAAA[0], nil
	}
	return "", fmt.Errorf("no address found for %s", host)
}
