package scanner

import (
	"context"
	"errors"
	"sync"

	"github.com/projectdiscovery/gologger"
	"github.com/remeh/sizedwaitgroup"
)

// Scanner runs bounded concurrent connect scans against a single target.
// Options are frozen at construction and shared read-only by all workers.
type Scanner struct {
	opts *Options

	// current points at the in-flight scan's aggregator so callers can
	// poll progress without coupling the scheduler to reporting.
	mu      sync.Mutex
	current *Aggregator
}

// New builds a scanner, validating the configuration up front.
func New(options ...Option) (*Scanner, error) {
	opts := DefaultOptions()
	for _, option := range options {
		option(opts)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Scanner{opts: opts}, nil
}

// Scan probes every port against the target and returns the frozen result.
func (s *Scanner) Scan(target *Target, portList []int) (*Result, error) {
	return s.ScanWithContext(context.Background(), target, portList)
}

// ScanWithContext runs the scan until every port has produced exactly one
// outcome or ctx is cancelled. Cancellation is cooperative: dispatch stops,
// in-flight probes finish bounded by their own timeout, and the returned
// result is marked incomplete.
func (s *Scanner) ScanWithContext(ctx context.Context, target *Target, portList []int) (*Result, error) {
	if target == nil || target.IP == "" {
		return nil, errors.New("scanner: target must carry a resolved address")
	}
	if len(portList) == 0 {
		return nil, errors.New("scanner: no ports to scan")
	}

	agg := NewAggregator(target, len(portList))
	s.setCurrent(agg)
	defer s.setCurrent(nil)

	prober := NewProber(s.opts)
	swg := sizedwaitgroup.New(s.opts.Workers)

	complete := true
dispatch:
	// Ports are dispatched in ascending order; a freed slot immediately
	// takes the next undispatched port.
	for _, port := range portList {
		select {
		case <-ctx.Done():
			complete = false
			break dispatch
		default:
		}
		if err := swg.AddWithContext(ctx); err != nil {
			complete = false
			break dispatch
		}
		go func(port int) {
			defer swg.Done()
			outcome := prober.Probe(target, port)
			if err := agg.Record(outcome); err != nil {
				gologger.Error().Msgf("dropping outcome for port %d: %v", port, err)
			}
		}(port)
	}
	swg.Wait()

	if !complete {
		gologger.Debug().Msgf("scan of %s cancelled after %d of %d ports", target, agg.Snapshot().Completed, len(portList))
	}
	return agg.Finalize(complete)
}

// Snapshot reports progress of the in-flight scan, or a zero snapshot when
// no scan is running.
func (s *Scanner) Snapshot() Snapshot {
	s.mu.Lock()
	agg := s.current
	s.mu.Unlock()
	if agg == nil {
		return Snapshot{}
	}
	return agg.Snapshot()
}

func (s *Scanner) setCurrent(agg *Aggregator) {
	s.mu.Lock()
	s.current = agg
	s.mu.Unlock()
}
