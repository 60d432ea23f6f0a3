package uttt

import "fmt"

// Single 3x3 tic tac toe board, 'closed' and 'winner' are always derived
// from the cells, after every mutation
type LocalBoard struct {
	cells     [3][3]Mark
	bitboards [2]uint16 // [cross, circle] occupancy, bit r*3+c
	closed    bool
	winner    Mark
}

// Put the mark on the (r, c) cell, fails if the board is closed
// or the cell is taken
func (lb *LocalBoard) Place(r, c int, mark Mark) error {
	if lb.closed {
		return ErrInvalidState
	}
	if !_inSquare(r, c) || mark == MarkEmpty {
		return fmt.Errorf("%w: cell (%d, %d) with mark %q", ErrInvalidMove, r, c, mark.String())
	}
	if lb.cells[r][c] != MarkEmpty {
		return fmt.Errorf("%w: cell (%d, %d) is occupied", ErrInvalidMove, r, c)
	}

	lb.put(r, c, mark)
	lb.update()
	return nil
}

// Reset the cell to empty and recompute the closure from scratch,
// may re-open a closed board (used when backtracking)
func (lb *LocalBoard) Clear(r, c int) {
	if !_inSquare(r, c) {
		return
	}
	lb.put(r, c, MarkEmpty)
	lb.closed = false
	lb.winner = MarkEmpty
	lb.update()
}

// Overwrite the cell, no legality checks, used when loading an external state
func (lb *LocalBoard) Set(r, c int, mark Mark) {
	if !_inSquare(r, c) {
		return
	}
	lb.put(r, c, mark)
	lb.update()
}

func (lb LocalBoard) Cell(r, c int) Mark {
	return lb.cells[r][c]
}

func (lb LocalBoard) Closed() bool {
	return lb.closed
}

func (lb LocalBoard) Winner() Mark {
	return lb.winner
}

// Number of occupied cells
func (lb LocalBoard) Count() int {
	count := 0
	for r := range 3 {
		for c := range 3 {
			if lb.cells[r][c] != MarkEmpty {
				count++
			}
		}
	}
	return count
}

func (lb LocalBoard) Full() bool {
	return lb.bitboards[0]|lb.bitboards[1] == _fullBitboard
}

func (lb LocalBoard) Empty() bool {
	return lb.bitboards[0]|lb.bitboards[1] == 0
}

// Occupancy of given mark as a bitboard
func (lb LocalBoard) Bitboard(mark Mark) uint16 {
	if mark == MarkEmpty {
		return _fullBitboard ^ (lb.bitboards[0] | lb.bitboards[1])
	}
	return lb.bitboards[mark.index()]
}

func (lb *LocalBoard) put(r, c int, mark Mark) {
	bit := uint16(1) << (r*3 + c)
	if prev := lb.cells[r][c]; prev != MarkEmpty {
		lb.bitboards[prev.index()] &^= bit
	}
	lb.cells[r][c] = mark
	if mark != MarkEmpty {
		lb.bitboards[mark.index()] |= bit
	}
}

func (lb *LocalBoard) update() {
	lb.winner, lb.closed = _checkSquareTermination(lb.bitboards[0], lb.bitboards[1])
}

func _inSquare(r, c int) bool {
	return r >= 0 && r < 3 && c >= 0 && c < 3
}
