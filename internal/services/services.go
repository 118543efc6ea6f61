// package services defines the Catalog interface front ends call to search songs and manage mixes
package services

import (
	"context"

	"github.com/desertthunder/mixdeck/internal/models"
)

// Catalog defines the query and command operations over songs and mixes.
//
// Every method is a single store round trip. Update and delete of a missing mix are no-ops.
type Catalog interface {
	// SearchSongs returns songs whose title, artist, or album contains term (case-insensitive), ordered by title.
	SearchSongs(ctx context.Context, term string) ([]models.Song, error)

	// ListSongs returns every song ordered by title.
	ListSongs(ctx context.Context) ([]models.Song, error)

	// GetSong retrieves a song by ID.
	GetSong(ctx context.Context, id int64) (*models.Song, error)

	// SearchMixesBySongTerm returns mixes where term matches either song, newest first.
	SearchMixesBySongTerm(ctx context.Context, term string) ([]models.MixDetail, error)

	// GetMix retrieves a mix by ID.
	GetMix(ctx context.Context, id int64) (*models.MixDetail, error)

	// CreateMix stores a new mix and returns its ID.
	CreateMix(ctx context.Context, firstSongID, secondSongID int64, notes string) (int64, error)

	// UpdateMixNotes replaces the notes of a mix.
	UpdateMixNotes(ctx context.Context, mixID int64, notes string) error

	// DeleteMix removes a mix.
	DeleteMix(ctx context.Context, mixID int64) error

	// CountSongs returns the number of songs in the catalog.
	CountSongs(ctx context.Context) (int, error)

	// CountMixes returns the number of mixes in the catalog.
	CountMixes(ctx context.Context) (int, error)
}
