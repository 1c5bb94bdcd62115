package board

import (
	"reflect"
	"testing"
)

func TestPerftStartingPosition(t *testing.T) {
	tests := []struct {
		name     string
		gen      Generator
		depth    int
		expected uint64
	}{
		{"default/1", DefaultGenerator, 1, 20},
		{"default/2", DefaultGenerator, 2, 400},
		{"full/1", Generator{Reach: FullReach}, 1, 20},
		{"full/2", Generator{Reach: FullReach}, 2, 400},
		{"full/3", Generator{Reach: FullReach}, 3, 8902},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.gen.Perft(New(), White, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

func TestGenerateOrder(t *testing.T) {
	b := New()

	white := Generate(b, White).Strings()
	want := []string{
		"a2a4", "a2a3", "b2b4", "b2b3", "c2c4", "c2c3", "d2d4", "d2d3",
		"e2e4", "e2e3", "f2f4", "f2f3", "g2g4", "g2g3", "h2h4", "h2h3",
		"b1a3", "b1c3", "g1f3", "g1h3",
	}
	if !reflect.DeepEqual(white, want) {
		t.Errorf("white moves:\n got %v\nwant %v", white, want)
	}

	black := Generate(b, Black)
	if len(black) != 20 {
		t.Fatalf("black has %d moves, want 20", len(black))
	}
	if got := black[0].String(); got != "b8a6" {
		t.Errorf("first black move = %s, want b8a6", got)
	}
	if got := black[len(black)-1].String(); got != "h7h5" {
		t.Errorf("last black move = %s, want h7h5", got)
	}
}

func TestGenerateIsRestartable(t *testing.T) {
	b := New()
	first := Generate(b, White)
	second := Generate(b, White)
	if !reflect.DeepEqual(first, second) {
		t.Error("two generations of the same board differ")
	}
}

func TestGenerateReach(t *testing.T) {
	b := mustDiagram(t,
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R......K",
	)

	rookMoves := func(g Generator) []string {
		var out []string
		for _, m := range g.Generate(b, White) {
			if m.From == A1 {
				out = append(out, m.String())
			}
		}
		return out
	}

	short := rookMoves(DefaultGenerator)
	wantShort := []string{"a1a3", "a1a2", "a1b1", "a1c1"}
	if !reflect.DeepEqual(short, wantShort) {
		t.Errorf("default reach rook moves = %v, want %v", short, wantShort)
	}

	full := rookMoves(Generator{Reach: FullReach})
	if len(full) != 13 {
		t.Errorf("full reach rook moves = %d (%v), want 13", len(full), full)
	}

	if got := (Generator{}).Generate(b, White); !reflect.DeepEqual(got, DefaultGenerator.Generate(b, White)) {
		t.Error("zero Generator should behave like DefaultGenerator")
	}
}

func TestGenerateEmptySide(t *testing.T) {
	b := mustDiagram(t,
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	if moves := Generate(b, White); len(moves) != 0 {
		t.Errorf("white without pieces has moves: %v", moves)
	}
}

func TestInCheck(t *testing.T) {
	t.Run("starting position", func(t *testing.T) {
		b := New()
		if InCheck(b, White) || InCheck(b, Black) {
			t.Error("nobody is in check at the start")
		}
	})

	t.Run("missing king", func(t *testing.T) {
		b := New()
		b.Set(E1, NoPiece)
		if InCheck(b, White) {
			t.Error("absent king reported in check")
		}
	})

	t.Run("knight check", func(t *testing.T) {
		b := mustDiagram(t,
			"....k...",
			"........",
			"........",
			"........",
			"........",
			"...n....",
			"........",
			"....K...",
		)
		if !InCheck(b, White) {
			t.Error("knight on d3 should check e1")
		}
		if InCheck(b, Black) {
			t.Error("black is not in check")
		}
	})

	t.Run("pawn check", func(t *testing.T) {
		b := mustDiagram(t,
			"....k...",
			"...P....",
			"........",
			"........",
			"........",
			"........",
			"........",
			"....K...",
		)
		if !InCheck(b, Black) {
			t.Error("pawn on d7 should check e8")
		}
	})

	t.Run("long range check needs full reach", func(t *testing.T) {
		b := mustDiagram(t,
			"r...k...",
			"........",
			"........",
			"........",
			"........",
			"........",
			"........",
			"K.......",
		)
		if InCheck(b, White) {
			t.Error("default reach should not see a rook seven squares away")
		}
		if !(Generator{Reach: FullReach}).InCheck(b, White) {
			t.Error("full reach should see the rook on a8")
		}
	})
}
