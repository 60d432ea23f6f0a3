package client

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Command byte sent by the game server
type Command byte

const (
	CommandNewGameX    Command = '1' // new game, we play x and move first; board state follows
	CommandNewGameO    Command = '2' // new game, we play o; board state follows
	CommandPlay        Command = '3' // our turn; opponent's last move follows
	CommandInvalidMove Command = '4' // our last move was rejected
	CommandGameOver    Command = '5' // game over; last move follows
)

// Number of cell values in the board state
const BoardStateSize = 81

// Cell codes of the board state
const (
	CodeX = 4
	CodeO = 2
)

func (c Command) String() string {
	switch c {
	case CommandNewGameX:
		return "new-game-x"
	case CommandNewGameO:
		return "new-game-o"
	case CommandPlay:
		return "play"
	case CommandInvalidMove:
		return "invalid-move"
	case CommandGameOver:
		return "game-over"
	}
	return "unknown(" + strconv.Quote(string(c)) + ")"
}

// Cell code to mark, anything other than CodeX and CodeO is empty
func MarkFromCode(code int) uttt.Mark {
	switch code {
	case CodeX:
		return uttt.MarkX
	case CodeO:
		return uttt.MarkO
	}
	return uttt.MarkEmpty
}

// Build the board from the 81 cell codes, row-major over the 9x9 grid
func DecodeBoardState(codes []int) (*uttt.Board, error) {
	if len(codes) != BoardStateSize {
		return nil, fmt.Errorf("%w: board state has %d values, expected %d",
			uttt.ErrNotation, len(codes), BoardStateSize)
	}

	board := uttt.NewBoard()
	for i, code := range codes {
		board.SetCell(i/9, i%9, MarkFromCode(code))
	}
	return board, nil
}

// Bytes the server pads messages with, treated as separators
func isBlank(b byte) bool {
	return b <= ' '
}

// Read the next command byte, skipping separators
func readCommand(r *bufio.Reader) (Command, error) {
	b, err := skipBlank(r)
	if err != nil {
		return 0, err
	}
	return Command(b), nil
}

// Read the 81 single digit cell codes of the board state
func readBoardState(r *bufio.Reader) (*uttt.Board, error) {
	codes := make([]int, 0, BoardStateSize)
	for len(codes) < BoardStateSize {
		b, err := skipBlank(r)
		if err != nil {
			return nil, err
		}
		if b < '0' || b > '9' {
			return nil, fmt.Errorf("%w: board state value %q", uttt.ErrNotation, b)
		}
		codes = append(codes, int(b-'0'))
	}
	return DecodeBoardState(codes)
}

// Read a two character move, "A0" gives uttt.MoveNone
func readMove(r *bufio.Reader) (uttt.Move, error) {
	first, err := skipBlank(r)
	if err != nil {
		return uttt.MoveNone, err
	}
	second, err := r.ReadByte()
	if err != nil {
		return uttt.MoveNone, err
	}
	return uttt.ParseMove(string([]byte{first, second}))
}

func skipBlank(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if !isBlank(b) {
			return b, nil
		}
	}
}
