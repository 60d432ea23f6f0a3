package search

import (
	"strings"
	"time"
)

type StopReason int

const (
	StopNone     StopReason = 0
	StopMovetime StopReason = 1 // Time budget exhausted, at least one node was cut off by the clock
	StopDepth    StopReason = 2 // Depth bound reached, at least one node was cut off by depth
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopMovetime, "Movetime"},
		{StopDepth, "Depth"},
	}

	names := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			names = append(names, r.name)
		}
	}
	return strings.Join(names, "|")
}

// Depth and wall-clock bound of a single decision. The clock is captured
// once in 'Reset' and polled, there is no preemption
type Limiter struct {
	limits *Limits
	start  time.Time
	budget time.Duration // -1 if there is no time limit
	reason StopReason
}

func NewLimiter() *Limiter {
	limiter := &Limiter{limits: DefaultLimits()}
	limiter.Reset()
	return limiter
}

// Start the clock and clear the stop reason, called on search setup
func (l *Limiter) Reset() {
	l.start = time.Now()
	l.reason = StopNone
	l.budget = -1
	if l.limits.Movetime >= 0 {
		l.budget = time.Duration(l.limits.Movetime) * time.Millisecond
	}
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

// Check the clock, records the stop reason once the budget is spent
func (l *Limiter) TimeUp() bool {
	if l.budget < 0 || time.Since(l.start) < l.budget {
		return false
	}
	l.reason |= StopMovetime
	return true
}

// Check the depth bound, records the stop reason when reached
func (l *Limiter) DepthReached(depth int) bool {
	if depth < min(l.limits.Depth, MaxDepth) {
		return false
	}
	l.reason |= StopDepth
	return true
}

// Get elapsed time (from the last 'Reset' call)
func (l *Limiter) Elapsed() time.Duration {
	return time.Since(l.start)
}

// Get the reasons why nodes were cut off, valid after search ends
func (l *Limiter) StopReason() StopReason {
	return l.reason
}
