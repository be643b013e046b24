package scanner

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Aggregator is the sole owner of the cumulative outcome collection. Record
// and Snapshot hold the lock only for the append/read, never across a
// network call. Recording order is completion order; Finalize sorts.
type Aggregator struct {
	mu        sync.Mutex
	target    *Target
	total     int
	outcomes  []*Outcome
	open      int
	startedAt time.Time
	finalized bool
}

// NewAggregator creates an empty aggregator for a scan of total ports.
func NewAggregator(target *Target, total int) *Aggregator {
	return &Aggregator{
		target:    target,
		total:     total,
		outcomes:  make([]*Outcome, 0, total),
		startedAt: time.Now(),
	}
}

// Record appends one probe outcome. It fails if the result has already been
// finalized or the planned total would be exceeded; both indicate a
// dispatch bug.
func (a *Aggregator) Record(outcome *Outcome) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized {
		return ErrAlreadyFinalized
	}
	if len(a.outcomes) >= a.total {
		return fmt.Errorf("%w: port %d recorded beyond planned total %d", ErrCountMismatch, outcome.Port, a.total)
	}
	a.outcomes = append(a.outcomes, outcome)
	if outcome.Status == StatusOpen {
		a.open++
	}
	return nil
}

// Snapshot returns the current progress counters.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{
		Completed: len(a.outcomes),
		Open:      a.open,
		Total:     a.total,
	}
}

// Finalize freezes the result. complete states that every planned port was
// dispatched; in that case a recorded count short of the total is an
// internal consistency error. The outcome sequence is sorted ascending by
// port as a pure post-processing step.
func (a *Aggregator) Finalize(complete bool) (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized {
		return nil, ErrAlreadyFinalized
	}
	if complete && len(a.outcomes) != a.total {
		return nil, fmt.Errorf("%w: recorded %d of %d", ErrCountMismatch, len(a.outcomes), a.total)
	}
	a.finalized = true

	sort.Slice(a.outcomes, func(i, j int) bool {
		return a.outcomes[i].Port < a.outcomes[j].Port
	})
	endedAt := time.Now()
	return &Result{
		Target:    a.target,
		Outcomes:  a.outcomes,
		Open:      a.open,
		Probed:    len(a.outcomes),
		Total:     a.total,
		Complete:  complete,
		StartedAt: a.startedAt,
		EndedAt:   endedAt,
		Duration:  endedAt.Sub(a.startedAt).Seconds(),
	}, nil
}
