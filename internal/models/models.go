// package models defines the data model for the song and mix catalog
package models

import (
	"fmt"
	"math"
)

// Song is a single audio track from the imported library.
type Song struct {
	ID        int64   `json:"id" yaml:"id"`
	Title     string  `json:"title" yaml:"title"`
	Artist    string  `json:"artist" yaml:"artist"`
	Album     string  `json:"album" yaml:"album"`
	TotalTime int     `json:"total_time" yaml:"total_time"` // Duration in seconds
	BPM       float64 `json:"bpm" yaml:"bpm"`
}

// Validate checks the rules the store also enforces with CHECK constraints.
func (s Song) Validate() error {
	if s.TotalTime < 0 {
		return fmt.Errorf("total time must not be negative: %d", s.TotalTime)
	}
	if s.BPM < 0 || math.IsNaN(s.BPM) || math.IsInf(s.BPM, 0) {
		return fmt.Errorf("bpm must be a non-negative number: %v", s.BPM)
	}
	return nil
}

// Mix pairs two songs in order. The two references may point at the same song.
type Mix struct {
	ID           int64  `json:"id" yaml:"id"`
	FirstSongID  int64  `json:"first_song_id" yaml:"first_song_id"`
	SecondSongID int64  `json:"second_song_id" yaml:"second_song_id"`
	Notes        string `json:"notes" yaml:"notes"`
}

// Validate checks that both song references could name a stored song.
func (m Mix) Validate() error {
	if m.FirstSongID <= 0 {
		return fmt.Errorf("first song id must be positive: %d", m.FirstSongID)
	}
	if m.SecondSongID <= 0 {
		return fmt.Errorf("second song id must be positive: %d", m.SecondSongID)
	}
	return nil
}

// MixDetail is a [Mix] enriched with the title and artist of both referenced songs.
type MixDetail struct {
	Mix              `yaml:",inline"`
	FirstSongTitle   string `json:"first_song_title" yaml:"first_song_title"`
	FirstSongArtist  string `json:"first_song_artist" yaml:"first_song_artist"`
	SecondSongTitle  string `json:"second_song_title" yaml:"second_song_title"`
	SecondSongArtist string `json:"second_song_artist" yaml:"second_song_artist"`
}
