package search

import (
	"fmt"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Statistics of a single decision, valid after 'SelectMove' returns
type Stats struct {
	BestMove   uttt.Move
	Score      int
	Moves      int    // number of legal root moves
	Nodes      uint64 // visited positions below the root
	Cutoffs    uint64 // alpha-beta prunes
	MaxDepth   int    // deepest ply reached
	TimeMs     int
	StopReason StopReason
}

// Nodes per second
func (s Stats) Nps() uint64 {
	return s.Nodes * 1000 / uint64(max(s.TimeMs, 1))
}

func (s Stats) String() string {
	return fmt.Sprintf("bestmove %s score %d depth %d nodes %d nps %d cutoffs %d time %dms stop %s",
		s.BestMove, s.Score, s.MaxDepth, s.Nodes, s.Nps(), s.Cutoffs, s.TimeMs, s.StopReason)
}

// Result of searching one of the root moves
type RootMoveStats struct {
	Move      uttt.Move
	Score     int
	BestMove  uttt.Move // best move so far, including this one
	BestScore int
}

// Listener function callback
type ListenerFunc[T any] func(T)

type StatsListener struct {
	// called after each root move is searched, in generation order
	onRootMove ListenerFunc[RootMoveStats]

	// called once, when the decision is made
	onStop ListenerFunc[Stats]
}

func NewStatsListener() StatsListener {
	return StatsListener{}
}

// Attach a callback receiving the score of every root move
func (listener *StatsListener) OnRootMove(onRootMove ListenerFunc[RootMoveStats]) *StatsListener {
	listener.onRootMove = onRootMove
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *StatsListener) OnStop(onStop ListenerFunc[Stats]) *StatsListener {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener) invokeRootMove(stats RootMoveStats) {
	if listener.onRootMove != nil {
		listener.onRootMove(stats)
	}
}

func (listener *StatsListener) invokeStop(stats Stats) {
	if listener.onStop != nil {
		listener.onStop(stats)
	}
}
