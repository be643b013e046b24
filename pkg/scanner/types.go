package scanner

import (
	"encoding/json"
	"fmt"
	"time"
)

// PortStatus classifies the outcome of a single probe.
type PortStatus int

const (
	// StatusOpen means the TCP handshake completed.
	StatusOpen PortStatus = iota
	// StatusClosed means the remote stack actively refused the connection.
	StatusClosed
	// StatusFiltered means no response arrived within the probe timeout.
	StatusFiltered
	// StatusError covers any other transport-level failure.
	StatusError
)

// String returns the lowercase label for the status.
func (s PortStatus) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	case StatusFiltered:
		return "filtered"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON emits the status as its string label.
func (s PortStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Target is an already-resolved scan target. The core never performs DNS;
// IP must be a literal address. Host keeps the original user input for
// display. Immutable for the duration of a scan.
type Target struct {
	Host string `json:"host"`
	IP   string `json:"ip"`
}

// NewTarget creates a target from the original input and its resolved IP.
func NewTarget(host, ip string) *Target {
	return &Target{Host: host, IP: ip}
}

// String returns the display form of the target.
func (t *Target) String() string {
	if t.Host != "" && t.Host != t.IP {
		return fmt.Sprintf("%s (%s)", t.Host, t.IP)
	}
	return t.IP
}

// Outcome is the classified result of one probe against one port. Produced
// exactly once per port, immutable once created. Banner and Service are
// filled in by the caller after the scan when detection is enabled; the
// scanning core leaves them empty.
type Outcome struct {
	Port     int           `json:"port"`
	Status   PortStatus    `json:"status"`
	Reason   string        `json:"reason,omitempty"`
	Duration time.Duration `json:"-"`
	Banner   string        `json:"banner,omitempty"`
	Service  string        `json:"service,omitempty"`
}

// Snapshot is a read-only view of scan progress.
type Snapshot struct {
	Completed int
	Open      int
	Total     int
}

// Percent returns the completion percentage, 0 when nothing is planned.
func (s Snapshot) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

// Result is the frozen outcome of a scan: all outcomes sorted ascending by
// port, counters and timing. Complete is false when the scan was cancelled
// before every planned port was dispatched.
type Result struct {
	Target    *Target    `json:"target"`
	Outcomes  []*Outcome `json:"outcomes"`
	Open      int        `json:"open"`
	Probed    int        `json:"probed"`
	Total     int        `json:"total"`
	Complete  bool       `json:"complete"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   time.Time  `json:"ended_at"`
	Duration  float64    `json:"duration"`
}

// OpenPorts returns the ports with StatusOpen, ascending.
func (r *Result) OpenPorts() []int {
	open := make([]int, 0, r.Open)
	for _, o := range r.Outcomes {
		if o.Status == StatusOpen {
			open = append(open, o.Port)
		}
	}
	return open
}

// JSON returns the result as a single JSON object.
func (r *Result) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(b)
}
