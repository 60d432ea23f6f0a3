package uttt

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Board notation of the empty board
	EmptyNotation string = "9/9/9/9/9/9/9/9/9"
	// Move string sent by the server when there was no previous move
	NoMoveString string = "A0"
)

// Get string representation of the move: column letter A-I and row digit 1-9,
// for example row = 5, col = 3 -> D6
func (m Move) String() string {
	if !m.Valid() {
		return "(none)"
	}
	return string([]byte{'A' + byte(m.Col), '1' + byte(m.Row)})
}

// Convert given move string (A1-I9) to Move, "A0" is the 'no move' marker
// and results in MoveNone
func ParseMove(str string) (Move, error) {
	str = strings.TrimSpace(str)
	if strings.EqualFold(str, NoMoveString) {
		return MoveNone, nil
	}
	if len(str) != 2 {
		return MoveNone, fmt.Errorf("%w: move %q, expected a letter and a digit", ErrNotation, str)
	}

	letter := str[0]
	if letter >= 'a' && letter <= 'i' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'I' || str[1] < '1' || str[1] > '9' {
		return MoveNone, fmt.Errorf("%w: move %q is out of range", ErrNotation, str)
	}
	return NewMove(int(str[1]-'1'), int(letter-'A')), nil
}

// string notation for the board, much like the FEN representation of a chessboard:
//
//	X/X/X/X/X/X/X/X/X
//
// where `X` is one local board (in order of big index, row-major), cells are
// written row-major as 'x' or 'o', digits mean that many empty cells.
//
// For example, let X be:
//
//	o | x | x
//	x | o |
//	o |   |
//
// then X is 'oxxxo1o2'
func (b *Board) Notation() string {
	builder := strings.Builder{}

	for bigIndex := range 9 {
		lb := &b.boards[bigIndex/3][bigIndex%3]
		counter := 0
		for i := range 9 {
			mark := lb.cells[i/3][i%3]
			if mark == MarkEmpty {
				counter++
				continue
			}
			if counter > 0 {
				builder.WriteString(strconv.Itoa(counter))
				counter = 0
			}
			builder.WriteString(mark.String())
		}
		if counter > 0 {
			builder.WriteString(strconv.Itoa(counter))
		}
		if bigIndex != 8 {
			builder.WriteByte('/')
		}
	}
	return builder.String()
}

// Create the board from given notation string
func FromNotation(notation string) (*Board, error) {
	board := NewBoard()
	return board, board.FromNotation(notation)
}

// Load the board from notation, resets current state
func (b *Board) FromNotation(notation string) error {
	b.Reset()

	segments := strings.Split(strings.TrimSpace(notation), "/")
	if len(segments) != 9 {
		return fmt.Errorf("%w: expected 9 local boards, got %d", ErrNotation, len(segments))
	}

	for bigIndex, segment := range segments {
		smallIndex := 0
		for i, v := range segment {
			switch {
			case v == 'x' || v == 'o':
				if smallIndex >= 9 {
					return fmt.Errorf("%w: too many cells in local board %d", ErrNotation, bigIndex)
				}
				move := MoveFromIndexes(bigIndex, smallIndex)
				b.SetCell(int(move.Row), int(move.Col), MarkFromRune(v))
				smallIndex++
			case v >= '1' && v <= '9':
				smallIndex += int(v - '0')
			default:
				return fmt.Errorf("%w: unexpected token %q in local board %d at %d", ErrNotation, v, bigIndex, i)
			}
		}

		if smallIndex != 9 {
			return fmt.Errorf("%w: local board %d has %d cells", ErrNotation, bigIndex, smallIndex)
		}
	}
	return nil
}
