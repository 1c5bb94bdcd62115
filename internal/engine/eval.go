// Package engine provides the material evaluator and the one-ply greedy bot.
package engine

import "github.com/hailam/greedychess/internal/board"

// MaterialValue holds the score of each piece type, indexed by board.PieceType.
// Kings and empty squares count zero.
var MaterialValue = [7]int{1, 3, 3, 5, 9, 0, 0}

// Evaluate returns the material balance of the board.
// Black pieces count positive and white pieces negative, so higher scores
// favor Black.
func Evaluate(b *board.Board) int {
	grid := b.Snapshot()
	return EvaluateGrid(&grid)
}

// EvaluateGrid scores a board snapshot with the same convention as Evaluate.
func EvaluateGrid(g *board.Grid) int {
	score := 0
	for _, p := range g {
		if p == board.NoPiece {
			continue
		}
		v := MaterialValue[p.Type()]
		if p.Color() == board.Black {
			score += v
		} else {
			score -= v
		}
	}
	return score
}
