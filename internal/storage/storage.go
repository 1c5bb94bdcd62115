package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hailam/greedychess/internal/board"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
)

// UserPreferences stores the terminal player's settings
type UserPreferences struct {
	Username    string    `json:"username"`
	PlayerColor string    `json:"player_color"`
	Reach       int       `json:"reach"`
	LastPlayed  time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:    "Player",
		PlayerColor: board.White.String(),
		Reach:       board.DefaultReach,
		LastPlayed:  time.Now(),
	}
}

// Color returns the preferred color, White when the stored value is unknown.
func (p *UserPreferences) Color() board.Color {
	if c, ok := board.ParseColor(p.PlayerColor); ok {
		return c
	}
	return board.White
}

// GameStats stores accumulated statistics over finished games
type GameStats struct {
	GamesPlayed     int           `json:"games_played"`
	PlayerMoves     int           `json:"player_moves"`
	BotMoves        int           `json:"bot_moves"`
	IllegalAttempts int           `json:"illegal_attempts"`
	BotCaptures     int           `json:"bot_captures"`
	TotalPlayTime   time.Duration `json:"total_play_time"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{}
}

// MovesPerGame returns the average number of player moves per game.
func (s *GameStats) MovesPerGame() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.PlayerMoves) / float64(s.GamesPlayed)
}

// GameResult summarizes one finished game
type GameResult struct {
	PlayerMoves     int
	BotMoves        int
	IllegalAttempts int
	BotCaptures     int
	Duration        time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens or creates the database in dir
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value under key into v, leaving v untouched when missing.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.get(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	err := s.get(keyStats, stats)
	return stats, err
}

// RecordGame adds a finished game to the statistics
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.PlayerMoves += result.PlayerMoves
	stats.BotMoves += result.BotMoves
	stats.IllegalAttempts += result.IllegalAttempts
	stats.BotCaptures += result.BotCaptures
	stats.TotalPlayTime += result.Duration

	return s.SaveStats(stats)
}
