package board

// Perft counts the leaf nodes of the move tree of the given depth, with c to
// move at the root. Every generated move is played with Apply and taken back
// with Restore, so b is unchanged afterwards except for EnPassant.
func (g Generator) Perft(b *Board, c Color, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := g.Generate(b, c)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		captured := b.Apply(m.From, m.To)
		nodes += g.Perft(b, c.Other(), depth-1)
		b.Restore(m.From, m.To, captured)
	}
	return nodes
}
