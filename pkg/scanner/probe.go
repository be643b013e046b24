package scanner

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/projectdiscovery/gologger"
)

// Dialer abstracts the connect primitive so probes can run through a plain
// net.Dialer, a SOCKS5 proxy, or an instrumented test double.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Prober performs single connect-with-timeout attempts and classifies the
// outcome. It never fails past its boundary: every error becomes a status.
type Prober struct {
	dialer  Dialer
	timeout time.Duration
	verbose bool
}

// NewProber builds a prober from scan options.
func NewProber(opts *Options) *Prober {
	dialer := opts.Dialer
	if dialer == nil {
		dialer = &net.Dialer{}
	}
	return &Prober{
		dialer:  dialer,
		timeout: opts.Timeout,
		verbose: opts.Verbose,
	}
}

// Probe attempts one TCP handshake to (target, port). The attempt is bounded
// by the probe timeout and deliberately detached from the caller's context:
// a cancelled scan stops dispatching new probes but lets in-flight
// handshakes finish so no connection is abandoned midway.
func (p *Prober) Probe(target *Target, port int) *Outcome {
	address := net.JoinHostPort(target.IP, strconv.Itoa(port))
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start := time.Now()
	conn, err := p.dialer.DialContext(ctx, "tcp", address)
	elapsed := time.Since(start)
	if conn != nil {
		// Nothing is exchanged; best-effort close.
		_ = conn.Close()
	}

	status, reason := ClassifyDialError(err)
	if p.verbose {
		gologger.Debug().Msgf("probe %s -> %s (%s) in %s", address, status, reason, elapsed)
	}
	return &Outcome{
		Port:     port,
		Status:   status,
		Reason:   reason,
		Duration: elapsed,
	}
}
