package uttt

import (
	"strings"

	"github.com/samber/lo"
)

type MoveList struct {
	moves [9 * 9]Move
	size  uint8
}

// Make a new move list struct
func NewMoveList() *MoveList {
	return &MoveList{}
}

func ToMoveList(moves []Move) *MoveList {
	ml := &MoveList{}
	ml.size = uint8(copy(ml.moves[:], moves))
	return ml
}

// Reset the movelist, simply sets the size to 0
func (ml *MoveList) Clear() {
	ml.size = 0
}

// Get the actual slice of generated moves
func (ml *MoveList) Slice() []Move {
	return ml.moves[0:ml.size]
}

func (ml *MoveList) Size() int {
	return int(ml.size)
}

func (ml *MoveList) At(i int) Move {
	return ml.moves[i]
}

func (ml *MoveList) Contains(move Move) bool {
	return lo.Contains(ml.Slice(), move)
}

// Appends a new move to the list of moves
func (ml *MoveList) Append(move Move) {
	ml.moves[ml.size] = move
	ml.size++
}

// Convert movelist into a string, uses move notation with space seperation
func (ml *MoveList) String() string {
	if ml.size == 0 {
		return "empty"
	}
	return strings.Join(lo.Map(ml.Slice(), func(m Move, _ int) string {
		return m.String()
	}), " ")
}
