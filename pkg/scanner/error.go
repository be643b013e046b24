package scanner

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
)

// ErrCountMismatch reports an aggregator finalized before every planned port
// produced an outcome. It signals a dispatch bug, not a network condition.
var ErrCountMismatch = errors.New("scanner: outcome count does not match planned port count")

// ErrAlreadyFinalized reports a second finalize or a record after finalize.
var ErrAlreadyFinalized = errors.New("scanner: result already finalized")

// ClassifyDialError converts a connect error into a port status. A nil error
// is an open port. Classification depends only on the transport outcome.
func ClassifyDialError(err error) (PortStatus, string) {
	if err == nil {
		return StatusOpen, ""
	}
	if isConnectionRefused(err) {
		return StatusClosed, "connection refused"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return StatusFiltered, "connect timeout"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return StatusFiltered, "connect timeout"
	}
	return StatusError, err.Error()
}

// isConnectionRefused detects an active RST from the remote stack. The
// string checks cover Windows, where refusal does not surface as
// syscall.ECONNREFUSED.
func isConnectionRefused(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "actively refused")
}
