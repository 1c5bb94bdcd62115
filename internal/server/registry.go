package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hailam/greedychess/internal/board"
	"github.com/hailam/greedychess/internal/engine"
	"github.com/hailam/greedychess/internal/game"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrGameNotFound is returned for an unknown game id.
var ErrGameNotFound = errors.New("game not found")

// Entry is a game held by the registry.
type Entry struct {
	Game *game.Game

	// AutoReply makes the bot answer every accepted move.
	AutoReply bool

	// Human is the side the client plays when AutoReply is set.
	Human board.Color

	Created time.Time
}

// Registry holds the games served over HTTP, keyed by UUID.
type Registry struct {
	bot   engine.Bot
	games map[string]*Entry
	mu    sync.RWMutex
}

// NewRegistry creates an empty registry whose games are played by bot.
// A nil bot selects game.DefaultBot.
func NewRegistry(bot engine.Bot) *Registry {
	if bot == nil {
		bot = game.DefaultBot
	}
	return &Registry{
		bot:   bot,
		games: make(map[string]*Entry),
	}
}

// Create starts a new game. When autoReply is set and human is Black the bot
// opens as White before Create returns.
func (r *Registry) Create(autoReply bool, human board.Color) *Entry {
	id := uuid.New().String()
	e := &Entry{
		Game:      game.NewGame(id, r.bot),
		AutoReply: autoReply,
		Human:     human,
		Created:   time.Now(),
	}
	if autoReply && human == board.Black {
		e.Game.Reply()
	}

	r.mu.Lock()
	r.games[id] = e
	r.mu.Unlock()
	return e
}

// Get returns the game with the given id.
func (r *Registry) Get(id string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return e, nil
}

// List returns the ids of all games in ascending order.
func (r *Registry) List() []string {
	r.mu.RLock()
	ids := maps.Keys(r.games)
	r.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

// Delete removes a game.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(r.games, id)
	return nil
}

// Len returns the number of games.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
