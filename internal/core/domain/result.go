package domain

import (
	"slices"
	"sync"
)

// ProcessResult is the outcome of running one build step.
type ProcessResult struct {
	Label   string
	Success bool
	// Output holds captured diagnostics, typically the tool's combined output.
	Output string
}

// FailureLog is the append-only record of unsuccessful results for one invocation.
// It is safe for concurrent use. Each concurrent pipeline may own its own log,
// merged into a parent log once the pipeline has finished.
type FailureLog struct {
	mu      sync.Mutex
	entries []ProcessResult
}

// NewFailureLog creates an empty FailureLog.
func NewFailureLog() *FailureLog {
	return &FailureLog{}
}

// Append records a failed result.
func (l *FailureLog) Append(res ProcessResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, res)
}

// Merge appends all entries of other, preserving their order.
func (l *FailureLog) Merge(other *FailureLog) {
	if other == nil || other == l {
		return
	}
	entries := other.Entries()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entries...)
}

// Entries returns a snapshot of the recorded failures in append order.
func (l *FailureLog) Entries() []ProcessResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// Len returns the number of recorded failures.
func (l *FailureLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
