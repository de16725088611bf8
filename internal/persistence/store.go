// Package persistence writes finished games to append-only JSONL logs so a
// replay or box-score tool can reload them later.
package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dugoutlab/dugout/internal/sim"
)

// recordType tags each JSONL line so readers can decode polymorphically.
type recordType string

const (
	typeHeader recordType = "header"
	typePlay   recordType = "play"
	typeDigest recordType = "digest"
)

// wrapper is the envelope around every stored line.
type wrapper struct {
	Type recordType      `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Header identifies the game a log belongs to.
type Header struct {
	ID   string `json:"id"`
	Seed int64  `json:"seed"`
	Away string `json:"away"`
	Home string `json:"home"`
}

// Store handles append-only storage of play logs.
type Store struct {
	file *os.File
}

// NewStore opens or creates the file at path for appending lines.
func NewStore(path string) (*Store, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	return &Store{file: file}, nil
}

func (s *Store) append(t recordType, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	line, err := json.Marshal(wrapper{Type: t, Data: data})
	if err != nil {
		return err
	}
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return err
	}
	return s.file.Sync()
}

// WriteResult stores a complete game: header, every play record in order,
// then the content digest as the trailing integrity line.
func (s *Store) WriteResult(r *sim.GameResult) error {
	if err := s.append(typeHeader, Header{ID: r.ID, Seed: r.Seed, Away: r.Away, Home: r.Home}); err != nil {
		return err
	}
	for _, play := range r.Log {
		if err := s.append(typePlay, play); err != nil {
			return err
		}
	}
	return s.append(typeDigest, r.Digest())
}

// StoredGame is one game reloaded from a log file.
type StoredGame struct {
	Header Header
	Plays  []sim.PlayRecord
	Digest string
}

// Load replays the JSONL lines back into stored games.
func (s *Store) Load() ([]StoredGame, error) {
	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, err
	}

	var games []StoredGame
	var current *StoredGame

	scanner := bufio.NewScanner(s.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var w wrapper
		if err := json.Unmarshal(scanner.Bytes(), &w); err != nil {
			return nil, fmt.Errorf("failed to decode wrapper: %w", err)
		}

		switch w.Type {
		case typeHeader:
			games = append(games, StoredGame{})
			current = &games[len(games)-1]
			if err := json.Unmarshal(w.Data, &current.Header); err != nil {
				return nil, fmt.Errorf("failed to decode header: %w", err)
			}
		case typePlay:
			if current == nil {
				return nil, fmt.Errorf("play record before any game header")
			}
			var play sim.PlayRecord
			if err := json.Unmarshal(w.Data, &play); err != nil {
				return nil, fmt.Errorf("failed to decode play: %w", err)
			}
			current.Plays = append(current.Plays, play)
		case typeDigest:
			if current == nil {
				return nil, fmt.Errorf("digest before any game header")
			}
			if err := json.Unmarshal(w.Data, &current.Digest); err != nil {
				return nil, fmt.Errorf("failed to decode digest: %w", err)
			}
		default:
			return nil, fmt.Errorf("unknown record type %q", w.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	return s.file.Close()
}
