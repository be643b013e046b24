package utils

import (
	"sync"
	"time"

	"github.com/projectdiscovery/gologger"

	"github.com/tongchengbin/portscan/pkg/scanner"
)

// Progress periodically polls a scan snapshot and logs completion. It is
// purely observational: it reads counters on a ticker and never touches the
// scheduler. Stop is safe to call more than once.
type Progress struct {
	name     string
	interval time.Duration
	snapshot func() scanner.Snapshot
	stop     chan struct{}
	once     sync.Once
}

// NewProgress creates a reporter polling snapshot every interval.
func NewProgress(name string, interval time.Duration, snapshot func() scanner.Snapshot) *Progress {
	return &Progress{
		name:     name,
		interval: interval,
		snapshot: snapshot,
		stop:     make(chan struct{}),
	}
}

// Start blocks, printing progress until Stop is called. Run it in its own
// goroutine.
func (p *Progress) Start() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.print()
		case <-p.stop:
			return
		}
	}
}

// Stop halts the reporter.
func (p *Progress) Stop() {
	p.once.Do(func() {
		close(p.stop)
	})
}

func (p *Progress) print() {
	s := p.snapshot()
	if s.Total == 0 {
		return
	}
	gologger.Info().Msgf("%s: [%d/%d] %.1f%% | open: %d",
		p.name, s.Completed, s.Total, s.Percent(), s.Open)
}
