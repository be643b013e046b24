package scanner

import (
	"errors"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyDialError(t *testing.T) {
	refused := &net.OpError{
		Op:  "dial",
		Net: "tcp",
		Err: os.NewSyscallError("connect", syscall.ECONNREFUSED),
	}

	testCases := []struct {
		name     string
		err      error
		expected PortStatus
	}{
		{"nil means open", nil, StatusOpen},
		{"refused", refused, StatusClosed},
		{"refused by message", errors.New("connect: connection refused"), StatusClosed},
		{"windows refused", errors.New("No connection could be made because the target machine actively refused it"), StatusClosed},
		{"timeout", timeoutError{}, StatusFiltered},
		{"op error timeout", &net.OpError{Op: "dial", Net: "tcp", Err: timeoutError{}}, StatusFiltered},
		{"unreachable", &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ENETUNREACH)}, StatusError},
		{"generic", errors.New("something odd"), StatusError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, reason := ClassifyDialError(tc.err)
			assert.Equal(t, tc.expected, status)
			if tc.err != nil {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestPortStatusString(t *testing.T) {
	assert.Equal(t, "open", StatusOpen.String())
	assert.Equal(t, "closed", StatusClosed.String())
	assert.Equal(t, "filtered", StatusFiltered.String())
	assert.Equal(t, "error", StatusError.String())
}
