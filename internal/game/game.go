package game

import (
	"sync"

	"github.com/hailam/greedychess/internal/board"
	"github.com/hailam/greedychess/internal/engine"
)

// State is a snapshot of a game suitable for rendering or JSON encoding.
type State struct {
	ID         string   `json:"id"`
	Board      []string `json:"board"`
	ToMove     string   `json:"toMove"`
	EnPassant  string   `json:"enPassant"`
	Castling   string   `json:"castling"`
	Evaluation int      `json:"evaluation"`
	InCheck    bool     `json:"inCheck"`
	History    []string `json:"moveHistory"`
	LastMove   string   `json:"lastMove,omitempty"`
	Captured   string   `json:"captured,omitempty"`
}

// Game is a board with a side to move and a move history. White moves first
// and the turn passes after every accepted move. A Game is safe for
// concurrent use; the bot's make-unmake search runs under the game lock.
type Game struct {
	ID string

	mu       sync.Mutex
	board    *board.Board
	toMove   board.Color
	history  []board.Move
	captured board.Piece
	gen      board.Generator
	bot      engine.Bot
}

// NewGame creates a game in the starting position played against bot. A nil
// bot selects DefaultBot. Check reporting and move listing use the greedy
// bot's generator, or board.DefaultGenerator for other bots.
func NewGame(id string, bot engine.Bot) *Game {
	return NewGameAt(id, bot, InitialBoard())
}

// NewGameAt is NewGame starting from b with White to move. The game owns b.
func NewGameAt(id string, bot engine.Bot, b *board.Board) *Game {
	if bot == nil {
		bot = DefaultBot
	}
	gen := board.DefaultGenerator
	if gb, ok := bot.(*engine.GreedyBot); ok {
		gen = gb.Generator
	}
	return &Game{
		ID:       id,
		board:    b,
		toMove:   board.White,
		captured: board.NoPiece,
		gen:      gen,
		bot:      bot,
	}
}

// Reset puts the game back into the starting position.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.board = InitialBoard()
	g.toMove = board.White
	g.history = nil
	g.captured = board.NoPiece
}

// ToMove returns the side to move.
func (g *Game) ToMove() board.Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.toMove
}

// Board returns a copy of the current board.
func (g *Game) Board() *board.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Copy()
}

// BotName returns the name of the bot playing in this game.
func (g *Game) BotName() string {
	return g.bot.Name()
}

// Play validates and applies a move for the side to move.
func (g *Game) Play(from, to board.Square, opts ...MoveOption) (State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	captured := g.board.PieceAt(to)
	if _, err := ValidateAndApply(g.board, from, to, g.toMove, opts...); err != nil {
		return g.state(), err
	}
	g.record(board.NewMove(from, to), captured)
	return g.state(), nil
}

// Reply lets the bot move for the side to move. It reports false, and the
// turn does not pass, when that side has no move.
func (g *Game) Reply() (State, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	before := g.board.Snapshot()
	m, ok := g.bot.ChooseMove(g.board, g.toMove)
	if !ok {
		return g.state(), false
	}
	g.record(m, before.At(m.To))
	return g.state(), true
}

// Moves returns the moves available to the side to move.
func (g *Game) Moves() board.MoveList {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen.Generate(g.board, g.toMove)
}

// State returns a snapshot of the game.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) record(m board.Move, captured board.Piece) {
	g.history = append(g.history, m)
	g.captured = captured
	g.toMove = g.toMove.Other()
}

func (g *Game) state() State {
	grid := g.board.Snapshot()
	s := State{
		ID:         g.ID,
		Board:      grid.Rows(),
		ToMove:     g.toMove.String(),
		EnPassant:  g.board.EnPassant.String(),
		Castling:   g.board.Castling.String(),
		Evaluation: engine.EvaluateGrid(&grid),
		InCheck:    g.gen.InCheck(g.board, g.toMove),
		History:    board.MoveList(g.history).Strings(),
	}
	if n := len(g.history); n > 0 {
		s.LastMove = g.history[n-1].String()
		if g.captured != board.NoPiece {
			s.Captured = g.captured.String()
		}
	}
	return s
}
