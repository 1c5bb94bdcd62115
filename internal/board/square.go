// Package board implements the mailbox board, move legality and move generation.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Squares are stored rank-major from Black's side: index = rank*8 + file,
// where rank 0 is the 8th rank (Black's back rank) and file 0 is the a-file.
// So A8=0, H8=7, A1=56, H1=63.
type Square uint8

// Named squares used by castling and the starting position.
const (
	A8 Square = 0
	E8 Square = 4
	H8 Square = 7
	A1 Square = 56
	E1 Square = 60
	H1 Square = 63

	NoSquare Square = 64
)

// NewSquare creates a square from rank and file indices (both 0-7).
// Out of range coordinates yield NoSquare.
func NewSquare(rank, file int) Square {
	if rank < 0 || rank > 7 || file < 0 || file > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

// Rank returns the rank index (0 = 8th rank, 7 = 1st rank).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// File returns the file index (0 = a, 7 = h).
func (sq Square) File() int {
	return int(sq) & 7
}

// IsValid returns true if the square is on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Offset returns the square dr ranks and df files away, or NoSquare when that
// leaves the board.
func (sq Square) Offset(dr, df int) Square {
	if !sq.IsValid() {
		return NoSquare
	}
	return NewSquare(sq.Rank()+dr, sq.File()+df)
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '8'-sq.Rank())
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	file := int(s[0]) - 'a'
	rank := '8' - int(s[1])

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	return NewSquare(rank, file), nil
}

// HomeRank returns the rank index of the given color's back rank.
func HomeRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// PawnRank returns the rank index pawns of the given color start on.
func PawnRank(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// Forward returns the rank delta of a single pawn step for the color.
func Forward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}
