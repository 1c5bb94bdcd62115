package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/hailam/greedychess/internal/board"
	"github.com/hailam/greedychess/internal/engine"
	"github.com/hailam/greedychess/internal/game"
	"github.com/hailam/greedychess/internal/storage"
)

const prompt = "Enter your move (e.g., e2 e4) or 'exit' to quit: "

// Recorder receives a summary of every finished game.
type Recorder interface {
	RecordGame(result storage.GameResult) error
}

// Config configures a Session.
type Config struct {
	In  io.Reader
	Out io.Writer

	// Name is shown in the welcome banner.
	Name string

	// PlayerColor is the human's side. The bot plays the other side.
	PlayerColor board.Color

	// Bot defaults to game.DefaultBot.
	Bot engine.Bot

	// Recorder is optional.
	Recorder Recorder

	// Start is the position every game begins from, White to move. Nil
	// selects the standard starting position.
	Start *board.Board
}

// Session is one terminal run. It may span several games via "new".
type Session struct {
	in       *bufio.Scanner
	out      io.Writer
	name     string
	color    board.Color
	bot      engine.Bot
	recorder Recorder
	start    *board.Board

	game    *game.Game
	result  storage.GameResult
	started time.Time
	games   int
}

// NewSession creates a session from cfg.
func NewSession(cfg Config) *Session {
	bot := cfg.Bot
	if bot == nil {
		bot = game.DefaultBot
	}
	color := cfg.PlayerColor
	if color != board.Black {
		color = board.White
	}
	name := cfg.Name
	if name == "" {
		name = "Player"
	}
	return &Session{
		in:       bufio.NewScanner(cfg.In),
		out:      cfg.Out,
		name:     name,
		color:    color,
		bot:      bot,
		recorder: cfg.Recorder,
		start:    cfg.Start,
	}
}

// Run plays until "exit" or end of input.
func (s *Session) Run() error {
	fmt.Fprintln(s.out, "Welcome to Chess!")
	fmt.Fprintf(s.out, "%s plays %s against %s. Type 'help' for commands.\n", s.name, s.color, s.bot.Name())
	s.newGame()

	for {
		fmt.Fprint(s.out, prompt)
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			break
		}

		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "exit", "quit":
			fmt.Fprintln(s.out, "Game over.")
			s.finishGame()
			return nil
		case "board":
			Render(s.out, s.game.Board())
		case "moves":
			s.handleMoves()
		case "new":
			s.finishGame()
			s.newGame()
		case "help":
			s.handleHelp()
		default:
			s.handleMove(line)
		}
	}

	s.finishGame()
	return s.in.Err()
}

// Games returns the number of games started in this session.
func (s *Session) Games() int {
	return s.games
}

func (s *Session) newGame() {
	s.games++
	id := fmt.Sprintf("terminal-%d", s.games)
	if s.start != nil {
		s.game = game.NewGameAt(id, s.bot, s.start.Copy())
	} else {
		s.game = game.NewGame(id, s.bot)
	}
	s.result = storage.GameResult{}
	s.started = time.Now()

	Render(s.out, s.game.Board())
	if s.color == board.Black {
		s.botMove()
	}
}

func (s *Session) finishGame() {
	if s.game == nil {
		return
	}
	s.result.Duration = time.Since(s.started)
	if s.recorder != nil && s.result.PlayerMoves+s.result.BotMoves > 0 {
		if err := s.recorder.RecordGame(s.result); err != nil {
			log.Printf("failed to record game: %v", err)
		}
	}
	s.game = nil
}

// handleMove parses "e2 e4" or "e2e4", optionally followed by a promotion letter.
func (s *Session) handleMove(line string) {
	fields := strings.Fields(line)
	if len(fields) == 2 && len(fields[0]) == 4 {
		fields = []string{fields[0][:2], fields[0][2:], fields[1]}
	}
	var opts []game.MoveOption
	if len(fields) == 3 {
		pt, err := ParsePromotion(fields[2])
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v. Use the format 'e2 e4'.\n", err)
			return
		}
		opts = append(opts, game.WithPromotion(pt))
		fields = fields[:2]
	}

	m, err := ParseMove(strings.Join(fields, " "))
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v. Use the format 'e2 e4'.\n", err)
		return
	}

	if _, err := s.game.Play(m.From, m.To, opts...); err != nil {
		if errors.Is(err, game.ErrIllegalMove) {
			s.result.IllegalAttempts++
			fmt.Fprintln(s.out, "Invalid move, try again.")
			return
		}
		fmt.Fprintf(s.out, "Error: %v.\n", err)
		return
	}
	s.result.PlayerMoves++
	Render(s.out, s.game.Board())

	s.botMove()
}

func (s *Session) botMove() {
	fmt.Fprintln(s.out, "Bot's move:")
	state, ok := s.game.Reply()
	if !ok {
		fmt.Fprintln(s.out, "Bot has no move.")
		fmt.Fprintln(s.out, "Starting a new game.")
		s.finishGame()
		s.newGame()
		return
	}
	s.result.BotMoves++
	if state.Captured != "" {
		s.result.BotCaptures++
	}
	RenderRows(s.out, state.Board)
	if state.InCheck {
		fmt.Fprintln(s.out, "Check!")
	}
}

func (s *Session) handleMoves() {
	moves := s.game.Moves()
	if len(moves) == 0 {
		fmt.Fprintln(s.out, "No moves available.")
		return
	}
	fmt.Fprintf(s.out, "%d moves: %s\n", len(moves), strings.Join(moves.Strings(), " "))
}

func (s *Session) handleHelp() {
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  e2 e4    move a piece (add q, r, b or n to promote a pawn)")
	fmt.Fprintln(s.out, "  board    show the board")
	fmt.Fprintln(s.out, "  moves    list the moves the bot's generator sees for you")
	fmt.Fprintln(s.out, "  new      start a new game")
	fmt.Fprintln(s.out, "  exit     quit")
}
