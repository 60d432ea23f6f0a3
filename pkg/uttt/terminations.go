package uttt

const _fullBitboard uint16 = 0b111111111

// horizontal, vertical and diagonal patterns as bitboards, bit i is cell (i/3, i%3),
// order: rows, columns, main diagonal, anti-diagonal
var WinningPatterns = [8]uint16{
	0b000000111, 0b000111000, 0b111000000,
	0b001001001, 0b010010010, 0b100100100,
	0b100010001, 0b001010100,
}

// Diagonals are the last 2 patterns
const FirstDiagonalPattern = 6

// Check given 3x3 square, with crosses and circles as bitboards,
// returns the winner and whether the square is closed
func _checkSquareTermination(crossbb, circlebb uint16) (Mark, bool) {
	for _, pattern := range WinningPatterns {
		if crossbb&pattern == pattern {
			return MarkX, true
		}
		if circlebb&pattern == pattern {
			return MarkO, true
		}
	}

	// Fully filled without a line is a draw
	if crossbb|circlebb == _fullBitboard {
		return MarkEmpty, true
	}
	return MarkEmpty, false
}
