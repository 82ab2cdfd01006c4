package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/mmazzocchetti/tablut/internal/engine"
)

// Storage keys
const (
	keyStats         = "stats"
	profileKeyPrefix = "profile/"
	keyActiveProfile = "profile-active"
)

// WeightProfile is a named, persisted heuristic weight vector, typically
// produced by the offline tuner.
type WeightProfile struct {
	Name      string         `json:"name"`
	Weights   engine.Weights `json:"weights"`
	Fitness   float64        `json:"fitness"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// MatchStats aggregates results over played matches.
type MatchStats struct {
	MatchesPlayed int            `json:"matches_played"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	Draws         int            `json:"draws"`
	WinsBySide    map[string]int `json:"wins_by_side"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
	CurrentStreak int            `json:"current_streak"`
	LongestStreak int            `json:"longest_streak"`
}

// NewMatchStats returns empty match statistics.
func NewMatchStats() *MatchStats {
	return &MatchStats{
		WinsBySide: make(map[string]int),
	}
}

// WinRate returns the win rate as a percentage (0-100).
func (s *MatchStats) WinRate() float64 {
	if s.MatchesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.MatchesPlayed) * 100
}

// MatchResult represents the result of one completed match.
type MatchResult struct {
	Won      bool
	Draw     bool
	Side     string // "WHITE" or "BLACK"
	Duration time.Duration
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return NewStorageAt(dbDir)
}

// NewStorageAt opens the database at an explicit directory. The tuner and
// tests use this to keep their data out of the default location.
func NewStorageAt(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveProfile stores a weight profile under its name.
func (s *Storage) SaveProfile(p *WeightProfile) error {
	p.UpdatedAt = time.Now()

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(profileKeyPrefix+p.Name), data)
	})
}

// LoadProfile loads a weight profile by name. A missing name yields a
// profile with the default weight vector.
func (s *Storage) LoadProfile(name string) (*WeightProfile, error) {
	profile := &WeightProfile{Name: name, Weights: engine.DefaultWeights()}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(profileKeyPrefix + name))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, profile)
		})
	})

	return profile, err
}

// ListProfiles returns every stored weight profile.
func (s *Storage) ListProfiles() ([]WeightProfile, error) {
	var profiles []WeightProfile

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(profileKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var p WeightProfile
				if err := json.Unmarshal(val, &p); err != nil {
					return err
				}
				profiles = append(profiles, p)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return profiles, err
}

// SetActiveProfile marks the profile to load by default at startup.
func (s *Storage) SetActiveProfile(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyActiveProfile), []byte(name))
	})
}

// ActiveProfile returns the name of the default profile, or "" if unset.
func (s *Storage) ActiveProfile() (string, error) {
	var name string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyActiveProfile))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			name = string(val)
			return nil
		})
	})
	return name, err
}

// SaveStats saves match statistics.
func (s *Storage) SaveStats(stats *MatchStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads match statistics, returning empty stats if none exist.
func (s *Storage) LoadStats() (*MatchStats, error) {
	stats := NewMatchStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordMatch records a completed match and updates statistics.
func (s *Storage) RecordMatch(result MatchResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.MatchesPlayed++
	stats.TotalPlayTime += result.Duration

	if result.Draw {
		stats.Draws++
		stats.CurrentStreak = 0
	} else if result.Won {
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestStreak {
			stats.LongestStreak = stats.CurrentStreak
		}
		stats.WinsBySide[result.Side]++
	} else {
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.SaveStats(stats)
}
