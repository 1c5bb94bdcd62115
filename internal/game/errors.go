package game

import (
	"errors"
	"fmt"

	"github.com/hailam/greedychess/internal/board"
)

// ErrIllegalMove is matched by every IllegalMoveError.
var ErrIllegalMove = errors.New("illegal move")

// ErrInvalidPromotion is returned when the requested promotion piece is not
// one of board.PromotionChoices.
var ErrInvalidPromotion = errors.New("invalid promotion piece")

// IllegalMoveError reports a move rejected by the rules. It does not say which
// rule rejected it.
type IllegalMoveError struct {
	From  board.Square
	To    board.Square
	Color board.Color
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s%s for %s", e.From, e.To, e.Color)
}

// Unwrap lets errors.Is match ErrIllegalMove.
func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}
