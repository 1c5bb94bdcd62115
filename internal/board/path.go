package board

// PathClear reports whether every square strictly between from and to is empty.
// The squares must share a rank, a file or a diagonal; adjacent squares have
// nothing in between and are always clear.
func PathClear(b *Board, from, to Square) bool {
	dr := sign(to.Rank() - from.Rank())
	df := sign(to.File() - from.File())

	sq := from.Offset(dr, df)
	for sq.IsValid() && sq != to {
		if !b.IsEmpty(sq) {
			return false
		}
		sq = sq.Offset(dr, df)
	}
	return true
}
