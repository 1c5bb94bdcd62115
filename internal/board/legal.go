package board

// IsLegal reports whether moving the piece on from to to obeys the movement
// rules of that piece for the given mover. The move is pseudo-legal: whether
// it leaves the mover's own king in check is not examined.
func IsLegal(b *Board, from, to Square, mover Color) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}

	piece := b.PieceAt(from)
	if piece == NoPiece || piece.Color() != mover {
		return false
	}
	if target := b.PieceAt(to); target != NoPiece && target.Color() == mover {
		return false
	}

	dr := to.Rank() - from.Rank()
	df := to.File() - from.File()

	switch piece.Type() {
	case Pawn:
		return pawnLegal(b, from, to, mover)
	case Knight:
		return (abs(dr) == 1 && abs(df) == 2) || (abs(dr) == 2 && abs(df) == 1)
	case Bishop:
		return abs(dr) == abs(df) && PathClear(b, from, to)
	case Rook:
		return (dr == 0 || df == 0) && PathClear(b, from, to)
	case Queen:
		return (dr == 0 || df == 0 || abs(dr) == abs(df)) && PathClear(b, from, to)
	case King:
		if max(abs(dr), abs(df)) == 1 {
			return true
		}
		if dr == 0 && abs(df) == 2 {
			return CastlingOK(b, from, to, mover)
		}
	}
	return false
}

func pawnLegal(b *Board, from, to Square, mover Color) bool {
	dir := Forward(mover)
	dr := to.Rank() - from.Rank()
	df := to.File() - from.File()

	if df == 0 && b.IsEmpty(to) {
		if dr == dir {
			return true
		}
		if from.Rank() == PawnRank(mover) && dr == 2*dir && b.IsEmpty(from.Offset(dir, 0)) {
			return true
		}
		return false
	}

	if abs(df) == 1 && dr == dir {
		if !b.IsEmpty(to) {
			// Friendly destinations were rejected by IsLegal.
			return true
		}
		if to == b.EnPassant {
			bypassed := b.PieceAt(NewSquare(from.Rank(), to.File()))
			return bypassed == NewPiece(Pawn, mover.Other())
		}
	}
	return false
}
