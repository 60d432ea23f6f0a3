package search

import (
	"math/bits"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

const (
	// Score of a won game, reduced by the depth it was found at
	WinScore int = 1000
	// Bonus for a won local board
	LocalWinBonus int = 100
	// Weight of diagonal lines relative to rows and columns
	DiagonalWeight float64 = 1.5
)

// Value of an uncontested line with 1, 2 and 3 marks
var _lineValues = [4]int{0, 1, 10, 100}

// Static evaluation of the board, from perspective's point of view,
// used only when the search is cut off before a terminal position
func Evaluate(board *uttt.Board, perspective uttt.Mark) int {
	score := 0
	opponent := perspective.Opponent()

	for bigRow := range 3 {
		for bigCol := range 3 {
			lb := board.Local(bigRow, bigCol)
			switch lb.Winner() {
			case uttt.MarkEmpty:
				score += LinePotential(lb, perspective)
			case perspective:
				score += LocalWinBonus
			case opponent:
				score -= LocalWinBonus
			}
		}
	}
	return score
}

// Sum of the line values of the local board, a line counts only if exactly
// one side has marks on it: +1 / +10 for 1 / 2 of our marks, negative for theirs.
// Diagonals are weighted by DiagonalWeight, truncated toward zero after each one
func LinePotential(lb uttt.LocalBoard, perspective uttt.Mark) int {
	ours, theirs := lb.Bitboard(perspective), lb.Bitboard(perspective.Opponent())
	sum := 0

	for i, pattern := range uttt.WinningPatterns {
		value := lineValue(ours, theirs, pattern)
		if i < uttt.FirstDiagonalPattern {
			sum += value
		} else {
			sum = int(float64(sum) + DiagonalWeight*float64(value))
		}
	}
	return sum
}

func lineValue(ourbb, theirbb, pattern uint16) int {
	ours, theirs := bits.OnesCount16(ourbb&pattern), bits.OnesCount16(theirbb&pattern)
	if ours > 0 && theirs > 0 {
		return 0
	}
	if ours > 0 {
		return _lineValues[ours]
	}
	return -_lineValues[theirs]
}
