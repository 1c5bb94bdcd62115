package engine

import (
	"fmt"
	"math"

	"github.com/hailam/greedychess/internal/board"
)

// Bot picks and plays a move for one side.
type Bot interface {
	// ChooseMove plays the chosen move on b and returns it. It returns
	// (board.NoMove, false) and leaves b untouched when color has no move.
	ChooseMove(b *board.Board, color board.Color) (board.Move, bool)
	Name() string
}

// GreedyBot searches one ply: it tries every generated move, scores the
// resulting board with Evaluate and keeps the best one for its side
// (highest score for Black, lowest for White). Ties go to the move generated
// first.
type GreedyBot struct {
	Generator board.Generator
}

// NewGreedyBot creates a greedy bot whose generator uses the given reach.
// A reach of zero or less selects board.DefaultReach.
func NewGreedyBot(reach int) *GreedyBot {
	if reach <= 0 {
		reach = board.DefaultReach
	}
	return &GreedyBot{Generator: board.Generator{Reach: reach}}
}

// Name returns the bot name.
func (g *GreedyBot) Name() string {
	return fmt.Sprintf("Greedy Bot (reach %d)", g.Generator.Reach)
}

// ChooseMove evaluates candidates by make-unmake on b itself, so the caller
// must hold exclusive access to b for the duration of the call.
func (g *GreedyBot) ChooseMove(b *board.Board, color board.Color) (board.Move, bool) {
	best := board.NoMove
	bestScore := math.MaxInt
	if color == board.Black {
		bestScore = math.MinInt
	}

	for _, m := range g.Generator.Generate(b, color) {
		captured := b.Apply(m.From, m.To)
		score := Evaluate(b)
		b.Restore(m.From, m.To, captured)

		if (color == board.Black && score > bestScore) || (color == board.White && score < bestScore) {
			bestScore = score
			best = m
		}
	}

	if best == board.NoMove {
		return board.NoMove, false
	}
	b.Apply(best.From, best.To)
	return best, true
}
