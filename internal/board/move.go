package board

import "fmt"

// Move is an origin and destination pair. Captures are inferred from the
// destination square when the move is applied.
type Move struct {
	From Square
	To   Square
}

// NoMove represents the absence of a move.
var NoMove = Move{From: NoSquare, To: NoSquare}

// NewMove creates a move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// String returns the move in coordinate notation (e.g., "e2e4").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// ParseMove parses coordinate notation ("e2e4") into a Move.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return NoMove, fmt.Errorf("invalid move: %q", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return NoMove, err
	}
	return NewMove(from, to), nil
}

// MoveList is an ordered list of moves.
type MoveList []Move

// Contains reports whether m is in the list.
func (ml MoveList) Contains(m Move) bool {
	for _, x := range ml {
		if x == m {
			return true
		}
	}
	return false
}

// Strings returns the moves in coordinate notation, in list order.
func (ml MoveList) Strings() []string {
	out := make([]string, len(ml))
	for i, m := range ml {
		out[i] = m.String()
	}
	return out
}
