package board

// InCheck reports whether color's king is attacked by any move this generator
// produces for the opponent. A board without that king is never in check.
func (g Generator) InCheck(b *Board, color Color) bool {
	king := b.KingSquare(color)
	if king == NoSquare {
		return false
	}
	for _, m := range g.Generate(b, color.Other()) {
		if m.To == king {
			return true
		}
	}
	return false
}

// InCheck uses DefaultGenerator to decide whether color's king is attacked.
func InCheck(b *Board, color Color) bool {
	return DefaultGenerator.InCheck(b, color)
}
