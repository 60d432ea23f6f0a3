package search

/*

Alpha-beta decision engine for ultimate tic tac toe.

The engine borrows the caller's board for a single decision, explores the
game tree by playing and undoing moves on it, and hands it back unchanged.
The search is single-threaded, bounded by depth (MaxDepth) and by the
movetime, which is polled at every node.

*/

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

type Engine struct {
	Limiter  *Limiter
	listener StatsListener
	stats    Stats
}

func NewEngine() *Engine {
	return &Engine{
		Limiter: NewLimiter(),
		stats:   Stats{BestMove: uttt.MoveNone},
	}
}

// Select a move for 'player' within 'timeLimit', non-positive limit means
// the search is bounded only by depth
func SelectMove(board *uttt.Board, last uttt.Move, player uttt.Mark, timeLimit time.Duration) (uttt.Move, bool) {
	engine := NewEngine()
	engine.SetLimits(DefaultLimits().SetMovetime(int(timeLimit.Milliseconds())))
	return engine.SelectMove(board, last, player)
}

func (e *Engine) SetLimits(limits *Limits) *Engine {
	e.Limiter.SetLimits(limits)
	return e
}

func (e *Engine) Limits() *Limits {
	return e.Limiter.Limits()
}

func (e *Engine) SetListener(listener StatsListener) *Engine {
	e.listener = listener
	return e
}

// Statistics of the last decision
func (e *Engine) Stats() Stats {
	return e.stats
}

// Make a new engine with the same limits and listener, without shared state
func (e *Engine) Clone() *Engine {
	limits := *e.Limits()
	clone := NewEngine()
	clone.SetLimits(&limits)
	clone.listener = e.listener
	return clone
}

// Choose the best move for 'player', given the last move played (uttt.MoveNone
// if there wasn't any). Returns false only if there is no legal move.
// The board is restored to its original state before returning
func (e *Engine) SelectMove(board *uttt.Board, last uttt.Move, player uttt.Mark) (uttt.Move, bool) {
	e.Limiter.Reset()
	e.stats = Stats{BestMove: uttt.MoveNone}
	defer e.finish()

	moves := board.LegalMoves(last, player)
	e.stats.Moves = moves.Size()
	if moves.Size() == 0 {
		return uttt.MoveNone, false
	}

	best, bestValue := moves.At(0), math.MinInt
	alpha, beta := math.MinInt, math.MaxInt
	opponent := player.Opponent()

	for _, move := range moves.Slice() {
		value := e.explore(board, move, player, func() int {
			return e.alphaBeta(board, move, 1, alpha, beta, false, opponent, player)
		})

		// Ties keep the first move in generation order
		if value > bestValue {
			best, bestValue = move, value
		}
		e.listener.invokeRootMove(RootMoveStats{
			Move:      move,
			Score:     value,
			BestMove:  best,
			BestScore: bestValue,
		})

		alpha = max(alpha, bestValue)
		if alpha >= beta {
			e.stats.Cutoffs++
			break
		}
	}

	e.stats.BestMove = best
	e.stats.Score = bestValue
	return best, true
}

// Play the move, run fn and take the move back, on every exit path
func (e *Engine) explore(board *uttt.Board, move uttt.Move, mark uttt.Mark, fn func() int) int {
	board.MustPlay(move, mark)
	defer board.Unplay(move)
	return fn()
}

func (e *Engine) finish() {
	e.stats.TimeMs = int(e.Limiter.Elapsed().Milliseconds())
	e.stats.StopReason = e.Limiter.StopReason()

	log.Debug().
		Str("bestmove", e.stats.BestMove.String()).
		Int("score", e.stats.Score).
		Int("moves", e.stats.Moves).
		Uint64("nodes", e.stats.Nodes).
		Uint64("cutoffs", e.stats.Cutoffs).
		Int("depth", e.stats.MaxDepth).
		Int("time-ms", e.stats.TimeMs).
		Str("stop", e.stats.StopReason.String()).
		Msg("search-done")

	e.listener.invokeStop(e.stats)
}
