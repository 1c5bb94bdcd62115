package board

import "testing"

func mustDiagram(t *testing.T, rows ...string) *Board {
	t.Helper()
	b, err := FromDiagram(rows...)
	if err != nil {
		t.Fatalf("FromDiagram: %v", err)
	}
	return b
}

func sq(t *testing.T, s string) Square {
	t.Helper()
	s2, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return s2
}

func TestNewBoard(t *testing.T) {
	b := New()

	checks := []struct {
		square string
		want   Piece
	}{
		{"a1", WhiteRook},
		{"e1", WhiteKing},
		{"d1", WhiteQueen},
		{"e2", WhitePawn},
		{"a8", BlackRook},
		{"e8", BlackKing},
		{"g8", BlackKnight},
		{"h7", BlackPawn},
		{"e4", NoPiece},
	}
	for _, c := range checks {
		if got := b.PieceAt(sq(t, c.square)); got != c.want {
			t.Errorf("%s: got %v, want %v", c.square, got, c.want)
		}
	}

	if b.EnPassant != NoSquare {
		t.Errorf("EnPassant = %v, want none", b.EnPassant)
	}
	if b.Castling != AllCastling {
		t.Errorf("Castling = %v, want KQkq", b.Castling)
	}
}

func TestSquareNotation(t *testing.T) {
	if got := NewSquare(6, 4).String(); got != "e2" {
		t.Errorf("NewSquare(6, 4) = %s, want e2", got)
	}
	if got := NewSquare(0, 0).String(); got != "a8" {
		t.Errorf("NewSquare(0, 0) = %s, want a8", got)
	}

	s, err := ParseSquare("e4")
	if err != nil {
		t.Fatal(err)
	}
	if s.Rank() != 4 || s.File() != 4 {
		t.Errorf("e4 = (%d, %d), want (4, 4)", s.Rank(), s.File())
	}

	for _, bad := range []string{"", "e", "e9", "e0", "i4", "e44"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) succeeded, want error", bad)
		}
	}

	if NewSquare(8, 0) != NoSquare || NewSquare(0, -1) != NoSquare {
		t.Error("out of range coordinates should give NoSquare")
	}
}

func TestPieceEncoding(t *testing.T) {
	for _, c := range []Color{White, Black} {
		for pt := Pawn; pt <= King; pt++ {
			p := NewPiece(pt, c)
			if p.Type() != pt || p.Color() != c {
				t.Errorf("NewPiece(%v, %v) decodes as (%v, %v)", pt, c, p.Type(), p.Color())
			}
			if back := PieceFromChar(p.String()[0]); back != p {
				t.Errorf("letter round trip for %v gave %v", p, back)
			}
		}
	}
	if NoPiece.Color() != NoColor || NoPiece.Type() != NoPieceType {
		t.Error("NoPiece should have no color and no type")
	}
}

func TestDiagramRoundTrip(t *testing.T) {
	g := New().Snapshot()
	rows := g.Rows()
	if len(rows) != 8 {
		t.Fatalf("got %d rows", len(rows))
	}
	for i, row := range rows {
		if row != startRows[i] {
			t.Errorf("row %d = %q, want %q", i, row, startRows[i])
		}
	}

	if _, err := FromDiagram("rnbqkbnr"); err == nil {
		t.Error("expected error for a single rank")
	}
	bad := append([]string{}, startRows[:]...)
	bad[3] = "...x...."
	if _, err := FromDiagram(bad...); err == nil {
		t.Error("expected error for unknown piece letter")
	}
	bad[3] = "......."
	if _, err := FromDiagram(bad...); err == nil {
		t.Error("expected error for short rank")
	}
}

func TestApplyDoublePushSetsEnPassant(t *testing.T) {
	b := New()
	e2, e4, e3 := sq(t, "e2"), sq(t, "e4"), sq(t, "e3")

	captured := b.Apply(e2, e4)
	if captured != NoPiece {
		t.Errorf("captured %v, want nothing", captured)
	}
	if b.PieceAt(e2) != NoPiece {
		t.Error("e2 should be empty")
	}
	if b.PieceAt(e4) != WhitePawn {
		t.Errorf("e4 = %v, want white pawn", b.PieceAt(e4))
	}
	if b.EnPassant != e3 {
		t.Errorf("EnPassant = %v, want e3", b.EnPassant)
	}
	if e3.Rank() != 5 || e3.File() != 4 {
		t.Errorf("e3 = (%d, %d), want (5, 4)", e3.Rank(), e3.File())
	}

	b.Apply(sq(t, "g8"), sq(t, "f6"))
	if b.EnPassant != NoSquare {
		t.Errorf("EnPassant after knight move = %v, want none", b.EnPassant)
	}

	b.Apply(sq(t, "d2"), sq(t, "d3"))
	if b.EnPassant != NoSquare {
		t.Errorf("EnPassant after single push = %v, want none", b.EnPassant)
	}
}

func TestApplyLeavesCastlingRights(t *testing.T) {
	b := New()
	b.Apply(sq(t, "e2"), sq(t, "e4"))
	b.Apply(sq(t, "e1"), sq(t, "e2"))
	b.Apply(sq(t, "h8"), sq(t, "h6"))
	if b.Castling != AllCastling {
		t.Errorf("Castling = %v, want KQkq", b.Castling)
	}
}

func TestApplyRestoreRoundTrip(t *testing.T) {
	b := mustDiagram(t,
		"r...k..r",
		"ppp..ppp",
		"..n.....",
		"...pP...",
		"..B.....",
		".....N..",
		"PPPP.PPP",
		"R..QK..R",
	)

	for _, c := range []Color{White, Black} {
		for _, m := range (Generator{Reach: FullReach}).Generate(b, c) {
			before := b.Snapshot()
			captured := b.Apply(m.From, m.To)
			b.Restore(m.From, m.To, captured)
			if after := b.Snapshot(); after != before {
				t.Fatalf("%s: squares differ after restore:\n%s\nwant:\n%s", m, after.String(), before.String())
			}
		}
	}
}

func TestRestoreKeepsEnPassantOfApply(t *testing.T) {
	b := New()
	e2, e4 := sq(t, "e2"), sq(t, "e4")
	captured := b.Apply(e2, e4)
	b.Restore(e2, e4, captured)
	if b.EnPassant != sq(t, "e3") {
		t.Errorf("EnPassant = %v, want e3 left over from Apply", b.EnPassant)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	b := New()
	c := b.Copy()
	c.Apply(sq(t, "e2"), sq(t, "e4"))
	if b.PieceAt(sq(t, "e2")) != WhitePawn || b.EnPassant != NoSquare {
		t.Error("mutating the copy changed the original")
	}

	g := b.Snapshot()
	b.Set(sq(t, "a1"), NoPiece)
	if g.At(sq(t, "a1")) != WhiteRook {
		t.Error("snapshot changed after mutating the board")
	}
}

func TestKingSquare(t *testing.T) {
	b := New()
	if got := b.KingSquare(White); got != E1 {
		t.Errorf("white king = %v, want e1", got)
	}
	if got := b.KingSquare(Black); got != E8 {
		t.Errorf("black king = %v, want e8", got)
	}
	b.Set(E8, NoPiece)
	if got := b.KingSquare(Black); got != NoSquare {
		t.Errorf("missing king = %v, want none", got)
	}
}
