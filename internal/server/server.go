// Package server exposes games over a JSON HTTP API and a WebSocket endpoint.
package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/hailam/greedychess/internal/board"
	"github.com/hailam/greedychess/internal/cli"
	"github.com/hailam/greedychess/internal/game"
)

// Config configures the HTTP application.
type Config struct {
	// AllowOrigins is passed to the CORS middleware. Empty allows all origins.
	AllowOrigins string

	// LogOutput receives request log lines. Nil keeps the logger's default (stdout).
	LogOutput io.Writer
}

// Server routes requests to the games of a Registry.
type Server struct {
	registry *Registry
	config   Config
}

// New creates a server over registry.
func New(registry *Registry, cfg Config) *Server {
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = "*"
	}
	return &Server{registry: registry, config: cfg}
}

// App builds the fiber application with all routes.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "greedychess",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	logCfg := logger.Config{}
	if s.config.LogOutput != nil {
		logCfg.Output = s.config.LogOutput
	}
	app.Use(logger.New(logCfg))
	app.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	app.Get("/ws/games/:id", s.wsUpgrade, websocket.New(s.handleConnection))

	api := app.Group("/api")

	games := api.Group("/games")
	games.Post("/", s.createGame)
	games.Get("/", s.listGames)
	games.Get("/:id", s.getGame)
	games.Delete("/:id", s.deleteGame)
	games.Post("/:id/moves", s.postMove)
	games.Get("/:id/moves", s.listMoves)
	games.Post("/:id/bot", s.botMove)

	return app
}

// Listen serves on addr until the listener fails.
func (s *Server) Listen(addr string) error {
	return s.App().Listen(addr)
}

var errNoBotMove = errors.New("bot has no move")

// errWrongTurn is returned in AutoReply games when the client moves for the
// bot or asks the bot to move for the client.
var errWrongTurn = errors.New("not your turn")

// errBadRequest marks client input errors that are not InputFormatErrors.
var errBadRequest = errors.New("bad request")

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	var ife *cli.InputFormatError
	var fe *fiber.Error
	switch {
	case errors.Is(err, ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, game.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, errNoBotMove), errors.Is(err, errWrongTurn):
		return fiber.StatusConflict
	case errors.As(err, &ife), errors.Is(err, game.ErrInvalidPromotion), errors.Is(err, errBadRequest):
		return fiber.StatusBadRequest
	case errors.As(err, &fe):
		return fe.Code
	default:
		return fiber.StatusInternalServerError
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

type createRequest struct {
	Bot   bool   `json:"bot"`
	Color string `json:"color"`
}

type moveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
}

// gameResponse is a game state plus how the game is served.
type gameResponse struct {
	game.State
	AutoReply bool      `json:"autoReply"`
	Human     string    `json:"human,omitempty"`
	Bot       string    `json:"bot"`
	Created   time.Time `json:"created"`
}

func newGameResponse(e *Entry, st game.State) gameResponse {
	r := gameResponse{
		State:     st,
		AutoReply: e.AutoReply,
		Bot:       e.Game.BotName(),
		Created:   e.Created,
	}
	if e.AutoReply {
		r.Human = e.Human.String()
	}
	return r
}

func (s *Server) createGame(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}

	human := board.White
	if req.Color != "" {
		var ok bool
		if human, ok = board.ParseColor(req.Color); !ok {
			return fmt.Errorf("%w: unknown color %q", errBadRequest, req.Color)
		}
	}

	e := s.registry.Create(req.Bot, human)
	return c.Status(fiber.StatusCreated).JSON(newGameResponse(e, e.Game.State()))
}

func (s *Server) listGames(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"games": s.registry.List(),
	})
}

func (s *Server) getGame(c *fiber.Ctx) error {
	e, err := s.registry.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(newGameResponse(e, e.Game.State()))
}

func (s *Server) deleteGame(c *fiber.Ctx) error {
	if err := s.registry.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) postMove(c *fiber.Ctx) error {
	e, err := s.registry.Get(c.Params("id"))
	if err != nil {
		return err
	}

	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	st, err := play(e, req)
	if err != nil {
		return err
	}
	return c.JSON(newGameResponse(e, st))
}

func (s *Server) botMove(c *fiber.Ctx) error {
	e, err := s.registry.Get(c.Params("id"))
	if err != nil {
		return err
	}

	st, err := reply(e)
	if err != nil {
		return err
	}
	return c.JSON(newGameResponse(e, st))
}

func (s *Server) listMoves(c *fiber.Ctx) error {
	e, err := s.registry.Get(c.Params("id"))
	if err != nil {
		return err
	}

	moves := e.Game.Moves()
	return c.JSON(fiber.Map{
		"toMove": e.Game.ToMove().String(),
		"moves":  moves.Strings(),
	})
}

// play parses and applies a client move, then lets the bot answer when the
// game has AutoReply. A bot without a move is not an error here: the returned
// state still has the bot to move.
func play(e *Entry, req moveRequest) (game.State, error) {
	from, err := cli.ParseSquare(req.From)
	if err != nil {
		return game.State{}, err
	}
	to, err := cli.ParseSquare(req.To)
	if err != nil {
		return game.State{}, err
	}

	var opts []game.MoveOption
	if req.Promotion != "" {
		pt, err := cli.ParsePromotion(req.Promotion)
		if err != nil {
			return game.State{}, err
		}
		opts = append(opts, game.WithPromotion(pt))
	}

	if e.AutoReply && e.Game.ToMove() != e.Human {
		return e.Game.State(), errWrongTurn
	}

	st, err := e.Game.Play(from, to, opts...)
	if err != nil {
		return st, err
	}
	if e.AutoReply {
		st, _ = e.Game.Reply()
	}
	return st, nil
}

// reply lets the bot move for the side to move. In AutoReply games the bot
// only plays the side the client does not.
func reply(e *Entry) (game.State, error) {
	if e.AutoReply && e.Game.ToMove() == e.Human {
		return e.Game.State(), errWrongTurn
	}
	st, ok := e.Game.Reply()
	if !ok {
		return st, errNoBotMove
	}
	return st, nil
}
