// Package game is the caller-facing surface of the rules engine: it applies
// validated moves, runs the bot and tracks a game between two sides.
package game

import (
	"fmt"

	"github.com/hailam/greedychess/internal/board"
	"github.com/hailam/greedychess/internal/engine"
)

// InitialBoard returns the standard starting position.
func InitialBoard() *board.Board {
	return board.New()
}

type moveOptions struct {
	promotion board.PieceType
}

// MoveOption adjusts how ValidateAndApply applies a move.
type MoveOption func(*moveOptions)

// WithPromotion turns a pawn reaching its last rank into pt. Without this
// option pawns stay pawns on the last rank.
func WithPromotion(pt board.PieceType) MoveOption {
	return func(o *moveOptions) {
		o.promotion = pt
	}
}

// ValidateAndApply plays from-to for color on b if the move is legal and
// returns b. An illegal move returns an *IllegalMoveError and leaves b as it was.
func ValidateAndApply(b *board.Board, from, to board.Square, color board.Color, opts ...MoveOption) (*board.Board, error) {
	o := moveOptions{promotion: board.NoPieceType}
	for _, opt := range opts {
		opt(&o)
	}
	if o.promotion != board.NoPieceType && !board.IsPromotionChoice(o.promotion) {
		return b, fmt.Errorf("%w: %s", ErrInvalidPromotion, o.promotion)
	}

	if !board.IsLegal(b, from, to, color) {
		return b, &IllegalMoveError{From: from, To: to, Color: color}
	}

	piece := b.PieceAt(from)
	b.Apply(from, to)

	if piece.Type() == board.Pawn && o.promotion != board.NoPieceType && to.Rank() == board.HomeRank(color.Other()) {
		b.Set(to, board.NewPiece(o.promotion, color))
	}
	return b, nil
}

// DefaultBot is the bot used by BotMove.
var DefaultBot engine.Bot = engine.NewGreedyBot(board.DefaultReach)

// BotMove lets DefaultBot play for color and returns b. It is a no-op when
// color has no move.
func BotMove(b *board.Board, color board.Color) *board.Board {
	DefaultBot.ChooseMove(b, color)
	return b
}
