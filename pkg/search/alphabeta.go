package search

import (
	"math"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Minimax with alpha-beta pruning. 'mark' is the side to move in this node,
// 'root' is the side the score is computed for; both alternate explicitly,
// there is no shared turn state
func (e *Engine) alphaBeta(
	board *uttt.Board, last uttt.Move, depth, alpha, beta int,
	maximizing bool, mark, root uttt.Mark,
) int {
	e.stats.Nodes++
	e.stats.MaxDepth = max(e.stats.MaxDepth, depth)

	// A decided game gets the exact score, faster wins and slower losses are preferred
	switch board.Winner() {
	case root:
		return WinScore - depth
	case root.Opponent():
		return -(WinScore - depth)
	}
	if board.Closed() {
		return 0
	}

	if e.Limiter.TimeUp() || e.Limiter.DepthReached(depth) {
		return Evaluate(board, root)
	}

	moves := board.LegalMoves(last, mark)
	if moves.Size() == 0 {
		return Evaluate(board, root)
	}

	next := mark.Opponent()
	if maximizing {
		best := math.MinInt
		for _, move := range moves.Slice() {
			value := e.explore(board, move, mark, func() int {
				return e.alphaBeta(board, move, depth+1, alpha, beta, false, next, root)
			})
			best = max(best, value)
			alpha = max(alpha, best)
			if alpha >= beta {
				e.stats.Cutoffs++
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for _, move := range moves.Slice() {
		value := e.explore(board, move, mark, func() int {
			return e.alphaBeta(board, move, depth+1, alpha, beta, true, next, root)
		})
		best = min(best, value)
		beta = min(beta, best)
		if beta <= alpha {
			e.stats.Cutoffs++
			break
		}
	}
	return best
}
