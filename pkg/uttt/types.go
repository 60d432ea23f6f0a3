package uttt

import "errors"

// Mark occupying a single cell, also used as the winner of a local board
// or of the whole game
type Mark int8

const (
	MarkEmpty Mark = iota
	MarkX
	MarkO
)

// Errors returned by the board, the closed/occupied ones should never be seen
// by a caller that only plays moves coming from LegalMoves
var (
	ErrInvalidState = errors.New("local board is already closed")
	ErrInvalidMove  = errors.New("invalid move")
	ErrNotation     = errors.New("invalid notation")
)

// Get the other player's mark, empty stays empty
func (m Mark) Opponent() Mark {
	switch m {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}

func (m Mark) String() string {
	switch m {
	case MarkX:
		return "x"
	case MarkO:
		return "o"
	default:
		return "."
	}
}

// Create mark from a rune, anything other than 'x' or 'o' is empty
func MarkFromRune(r rune) Mark {
	switch r {
	case 'x', 'X':
		return MarkX
	case 'o', 'O':
		return MarkO
	default:
		return MarkEmpty
	}
}

// Bitboard index of the mark, only valid for MarkX and MarkO
func (m Mark) index() int {
	return int(m) - 1
}

// Move in the global 9x9 coordinate space
type Move struct {
	Row int8
	Col int8
}

// Sentinel for 'no previous move', every open local board is selectable
var MoveNone = Move{Row: -1, Col: -1}

func NewMove(row, col int) Move {
	return Move{Row: int8(row), Col: int8(col)}
}

// Check if both coordinates are within the board
func (m Move) Valid() bool {
	return m.Row >= 0 && m.Row < 9 && m.Col >= 0 && m.Col < 9
}

// Row of the local board this move is played on
func (m Move) BigRow() int {
	return int(m.Row) / 3
}

// Column of the local board this move is played on
func (m Move) BigCol() int {
	return int(m.Col) / 3
}

// Row inside of the local board, also the row of the board targeted by this move
func (m Move) SmallRow() int {
	return int(m.Row) % 3
}

// Column inside of the local board
func (m Move) SmallCol() int {
	return int(m.Col) % 3
}

// Index (0-8) of the local board this move is played on
func (m Move) BigIndex() int {
	return m.BigRow()*3 + m.BigCol()
}

// Index (0-8) of the cell inside the local board
func (m Move) SmallIndex() int {
	return m.SmallRow()*3 + m.SmallCol()
}

// Create a move from the local board index and the cell index
func MoveFromIndexes(bigIndex, smallIndex int) Move {
	return NewMove((bigIndex/3)*3+smallIndex/3, (bigIndex%3)*3+smallIndex%3)
}
