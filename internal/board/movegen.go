package board

// DefaultReach is the offset window used by the bot: destinations at most two
// ranks and two files from the origin. Rooks, bishops and queens
// cannot be generated beyond two squares with this reach.
const DefaultReach = 2

// FullReach covers every destination on the board.
const FullReach = 7

// Generator enumerates pseudo-legal moves inside a square offset window.
type Generator struct {
	// Reach bounds |Δrank| and |Δfile| of generated destinations.
	Reach int
}

// DefaultGenerator uses DefaultReach.
var DefaultGenerator = Generator{Reach: DefaultReach}

// Generate returns all moves for color that pass IsLegal.
// Origins are visited rank by rank from the 8th rank, files a to h; for each
// origin destinations are visited by rank offset, then file offset, both
// ascending from -Reach to +Reach. The order is deterministic.
func (g Generator) Generate(b *Board, color Color) MoveList {
	reach := g.Reach
	if reach <= 0 {
		reach = DefaultReach
	}

	var moves MoveList
	for from := Square(0); from < NoSquare; from++ {
		p := b.PieceAt(from)
		if p == NoPiece || p.Color() != color {
			continue
		}
		for dr := -reach; dr <= reach; dr++ {
			for df := -reach; df <= reach; df++ {
				to := from.Offset(dr, df)
				if !to.IsValid() {
					continue
				}
				if IsLegal(b, from, to, color) {
					moves = append(moves, NewMove(from, to))
				}
			}
		}
	}
	return moves
}

// Generate returns the moves of DefaultGenerator.
func Generate(b *Board, color Color) MoveList {
	return DefaultGenerator.Generate(b, color)
}
