package uttt

import "math/bits"

// Generate all legal moves, the local board is chosen by 'last' move's cell position,
// if that board is closed (or there is no last move) every open local board is
// playable. The player doesn't change legality, it's accepted only for symmetry.
// Moves are ordered by local board, then row-major inside of it
func (b *Board) LegalMoves(last Move, player Mark) *MoveList {
	movelist := NewMoveList()

	if last.Valid() {
		bigRow, bigCol := last.SmallRow(), last.SmallCol()
		if !b.boards[bigRow][bigCol].closed {
			b.appendFree(movelist, bigRow*3+bigCol)
			return movelist
		}
	}

	for bigIndex := range 9 {
		if b.boards[bigIndex/3][bigIndex%3].closed {
			continue
		}
		b.appendFree(movelist, bigIndex)
	}
	return movelist
}

// Check if given move is in the legal move set
func (b *Board) IsLegal(last, move Move) bool {
	if !move.Valid() {
		return false
	}
	return b.LegalMoves(last, MarkEmpty).Contains(move)
}

// Index of the local board the next move must be played on, -1 if any open board is allowed
func (b *Board) TargetIndex(last Move) int {
	if !last.Valid() || b.boards[last.SmallRow()][last.SmallCol()].closed {
		return -1
	}
	return last.SmallIndex()
}

func (b *Board) appendFree(movelist *MoveList, bigIndex int) {
	lb := &b.boards[bigIndex/3][bigIndex%3]

	// This is valid, because these 2 bitboards are mutally exclusive
	free := uint(_fullBitboard ^ (lb.bitboards[0] | lb.bitboards[1]))
	for free != 0 {
		movelist.Append(MoveFromIndexes(bigIndex, bits.TrailingZeros(free)))
		free &= free - 1
	}
}
