package search

import (
	"encoding/json"
	"strings"
)

type Limits struct {
	Depth    int // maximum search depth in plies, never above MaxDepth
	Movetime int // in milliseconds, -1 means no time limit
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	// Compiled-in depth bound of the search
	MaxDepth int = 4

	DefaultMovetimeLimit int = 3000
	NoMovetimeLimit      int = -1
)

func DefaultLimits() *Limits {
	return &Limits{
		Depth:    MaxDepth,
		Movetime: DefaultMovetimeLimit,
	}
}

// Set the maximum depth of the search, clamped to [1, MaxDepth]
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = min(max(depth, 1), MaxDepth)
	return l
}

// Set the maximum time for engine to think, non-positive values disable the limit
func (l *Limits) SetMovetime(movetime int) *Limits {
	if movetime <= 0 {
		movetime = NoMovetimeLimit
	}
	l.Movetime = movetime
	return l
}
