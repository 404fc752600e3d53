// Package store persists player profiles for the progress service.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/rintaro-s/kurikka/shared/protocol"
)

var (
	bucketPlayers = []byte("players") // player_id -> profile JSON
	bucketNames   = []byte("names")   // normalized name -> player_id
)

type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the player database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open player db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketPlayers); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketNames)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// NormalizeName is the lookup key for register-by-name: trimmed, lowercased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Put writes the profile and its name-index entry.
func (s *Store) Put(p *protocol.PlayerProfile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketPlayers).Put([]byte(p.PlayerID), b); err != nil {
			return err
		}
		return tx.Bucket(bucketNames).Put([]byte(NormalizeName(p.PlayerName)), []byte(p.PlayerID))
	})
}

// Get looks a profile up by id.
func (s *Store) Get(id string) (*protocol.PlayerProfile, bool, error) {
	var p *protocol.PlayerProfile
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketPlayers).Get([]byte(id))
		if raw == nil {
			return nil
		}
		var decoded protocol.PlayerProfile
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return err
		}
		p = &decoded
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return p, p != nil, nil
}

// GetByName looks a profile up through the name index.
func (s *Store) GetByName(name string) (*protocol.PlayerProfile, bool, error) {
	var id string
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketNames).Get([]byte(NormalizeName(name)))
		if raw != nil {
			id = string(raw)
		}
		return nil
	})
	if err != nil || id == "" {
		return nil, false, err
	}
	return s.Get(id)
}

// List returns every stored profile.
func (s *Store) List() ([]protocol.PlayerProfile, error) {
	var out []protocol.PlayerProfile
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPlayers).ForEach(func(_, v []byte) error {
			var p protocol.PlayerProfile
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			out = append(out, p)
			return nil
		})
	})
	return out, err
}

// Count returns the number of stored profiles.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketPlayers).Stats().KeyN
		return nil
	})
	return n, err
}
