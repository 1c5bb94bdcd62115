// Package cli runs a game between a human at a terminal and the bot.
package cli

import (
	"fmt"
	"strings"

	"github.com/hailam/greedychess/internal/board"
)

// InputFormatError reports text that is not a square, move or promotion piece.
type InputFormatError struct {
	Input  string
	Reason string
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

// ParseSquare parses a square such as "e2".
func ParseSquare(s string) (board.Square, error) {
	sq, err := board.ParseSquare(strings.ToLower(s))
	if err != nil {
		return board.NoSquare, &InputFormatError{Input: s, Reason: "want a file a-h followed by a rank 1-8"}
	}
	return sq, nil
}

// ParseMove parses two squares separated by white space ("e2 e4"). The
// compact form "e2e4" is accepted too.
func ParseMove(s string) (board.Move, error) {
	fields := strings.Fields(s)
	if len(fields) == 1 && len(fields[0]) == 4 {
		fields = []string{fields[0][:2], fields[0][2:]}
	}
	if len(fields) != 2 {
		return board.NoMove, &InputFormatError{Input: s, Reason: "want two squares such as 'e2 e4'"}
	}

	from, err := ParseSquare(fields[0])
	if err != nil {
		return board.NoMove, err
	}
	to, err := ParseSquare(fields[1])
	if err != nil {
		return board.NoMove, err
	}
	return board.NewMove(from, to), nil
}

// ParsePromotion parses a promotion piece letter (q, r, b or n).
func ParsePromotion(s string) (board.PieceType, error) {
	if len(s) == 1 {
		pt := board.PieceTypeFromChar(strings.ToLower(s)[0])
		if board.IsPromotionChoice(pt) {
			return pt, nil
		}
	}
	return board.NoPieceType, &InputFormatError{Input: s, Reason: "promotion piece must be one of q, r, b, n"}
}
