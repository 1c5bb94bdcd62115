package board

// CastlingOK reports whether a king move from from to to is an eligible castle
// for the mover. The king must stand on its home square, the corner on the
// side of the move must hold a rook of the mover's color, and every square
// between king and rook must be empty.
//
// Attacked squares, castling rights and earlier king or rook moves are not
// considered.
func CastlingOK(b *Board, from, to Square, mover Color) bool {
	home := E1
	if mover == Black {
		home = E8
	}
	if from != home {
		return false
	}

	rookFile := 7
	if to.File() < from.File() {
		rookFile = 0
	}
	rookSq := NewSquare(from.Rank(), rookFile)
	if b.PieceAt(rookSq) != NewPiece(Rook, mover) {
		return false
	}

	return PathClear(b, from, rookSq)
}
