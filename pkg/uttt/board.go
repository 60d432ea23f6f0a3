package uttt

import "fmt"

// Ultimate tic tac toe board, 3x3 grid of local boards, [bigRow][bigCol].
// Global cell (r, c) lives in local board (r/3, c/3) at cell (r%3, c%3)
type Board struct {
	boards [3][3]LocalBoard
}

// Create a heap-allocated, empty board
func NewBoard() *Board {
	return &Board{}
}

// Make a deep copy of the board (has no shared memory with this object)
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// Zero the board
func (b *Board) Reset() {
	b.boards = [3][3]LocalBoard{}
}

// Check if every cell and every cached state matches
func (b *Board) Equal(other *Board) bool {
	return b.boards == other.boards
}

// Get a copy of the local board at (bigRow, bigCol)
func (b *Board) Local(bigRow, bigCol int) LocalBoard {
	return b.boards[bigRow][bigCol]
}

// Get the mark at global (row, col)
func (b *Board) Cell(row, col int) Mark {
	return b.boards[row/3][col/3].cells[row%3][col%3]
}

// Put the mark on the board, propagates local board errors
func (b *Board) Play(move Move, mark Mark) error {
	if !move.Valid() {
		return fmt.Errorf("%w: %d,%d is outside of the board", ErrInvalidMove, move.Row, move.Col)
	}

	if err := b.local(move).Place(move.SmallRow(), move.SmallCol(), mark); err != nil {
		return fmt.Errorf("play %s: %w", move.String(), err)
	}
	return nil
}

// Same as Play, but panics on error, use only with moves from LegalMoves
func (b *Board) MustPlay(move Move, mark Mark) {
	if err := b.Play(move, mark); err != nil {
		panic(err)
	}
}

// Remove the mark from the board, reopening the local board if needed
func (b *Board) Unplay(move Move) {
	if !move.Valid() {
		return
	}
	b.local(move).Clear(move.SmallRow(), move.SmallCol())
}

// Overwrite given cell, without any legality checks (loading external state)
func (b *Board) SetCell(row, col int, mark Mark) {
	move := NewMove(row, col)
	if !move.Valid() {
		return
	}
	b.local(move).Set(move.SmallRow(), move.SmallCol(), mark)
}

// Get the global winner, based on the winners of the local boards
func (b *Board) Winner() Mark {
	var crossbb, circlebb uint16
	for i := range 9 {
		switch b.boards[i/3][i%3].winner {
		case MarkX:
			crossbb |= 1 << i
		case MarkO:
			circlebb |= 1 << i
		}
	}

	for _, pattern := range WinningPatterns {
		if crossbb&pattern == pattern {
			return MarkX
		}
		if circlebb&pattern == pattern {
			return MarkO
		}
	}
	return MarkEmpty
}

// Check if every local board is closed
func (b *Board) Closed() bool {
	for i := range 9 {
		if !b.boards[i/3][i%3].closed {
			return false
		}
	}
	return true
}

// Check if the game is over, either by a global winner or closed board
func (b *Board) IsTerminated() bool {
	return b.Winner() != MarkEmpty || b.Closed()
}

// Number of occupied cells on the whole board
func (b *Board) Count() int {
	count := 0
	for i := range 9 {
		count += b.boards[i/3][i%3].Count()
	}
	return count
}

func (b *Board) local(move Move) *LocalBoard {
	return &b.boards[move.BigRow()][move.BigCol()]
}
