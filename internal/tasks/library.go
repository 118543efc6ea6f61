package tasks

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/shared"
	"howett.net/plist"
)

// DefaultBatchSize is the number of songs stored per transaction during import.
const DefaultBatchSize = 500

// SongWriter stores songs in bulk. Implemented by repositories.SongRepository.
type SongWriter interface {
	CreateBatch(ctx context.Context, songs []models.Song) (int, error)
}

// libraryFile is the subset of an iTunes/Music library property list the importer reads.
type libraryFile struct {
	Tracks map[string]libraryTrack `plist:"Tracks"`
}

type libraryTrack struct {
	TrackID   int64  `plist:"Track ID"`
	Name      string `plist:"Name"`
	Artist    string `plist:"Artist"`
	Album     string `plist:"Album"`
	TotalTime int64  `plist:"Total Time"` // milliseconds
	BPM       int64  `plist:"BPM"`
}

// ImportResult summarizes a library import.
type ImportResult struct {
	Parsed   int           // Tracks found in the library file
	Imported int           // Songs stored
	Elapsed  time.Duration // Wall time for the whole import
}

// LibraryImporter loads songs from a music library export.
type LibraryImporter struct {
	songs     SongWriter
	batchSize int
}

// NewLibraryImporter creates a LibraryImporter that writes through songs.
// Non-positive batch sizes fall back to [DefaultBatchSize].
func NewLibraryImporter(songs SongWriter, batchSize int) *LibraryImporter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &LibraryImporter{songs: songs, batchSize: batchSize}
}

// Import parses the library read from r and stores its tracks as songs.
//
// On a storage error the returned result still reports how many songs were stored by earlier batches.
func (i *LibraryImporter) Import(ctx context.Context, r io.Reader, progress chan<- ProgressUpdate) (*ImportResult, error) {
	start := time.Now()
	result := &ImportResult{}

	sendProgress(progress, parsingLibraryUpdate())

	songs, err := ParseLibrary(r)
	if err != nil {
		return nil, err
	}
	result.Parsed = len(songs)

	sendProgress(progress, parsedLibraryUpdate(len(songs)))
	sendProgress(progress, insertSongsUpdate(0, len(songs)))

	for batch := range slices.Chunk(songs, i.batchSize) {
		if err := ctx.Err(); err != nil {
			result.Elapsed = time.Since(start)
			return result, err
		}

		n, err := i.songs.CreateBatch(ctx, batch)
		if err != nil {
			result.Elapsed = time.Since(start)
			return result, fmt.Errorf("failed to store songs %d-%d: %w", result.Imported+1, result.Imported+len(batch), err)
		}

		result.Imported += n
		sendProgress(progress, insertSongsUpdate(result.Imported, len(songs)))
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

// ParseLibrary decodes a library property list (XML or binary) into songs ordered by track ID.
func ParseLibrary(r io.Reader) ([]models.Song, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}

	var lib libraryFile
	if _, err := plist.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("%w: failed to parse library: %v", shared.ErrInvalidInput, err)
	}

	type keyed struct {
		id    int64
		key   string
		track libraryTrack
	}

	entries := make([]keyed, 0, len(lib.Tracks))
	for key, track := range lib.Tracks {
		id := track.TrackID
		if parsed, err := strconv.ParseInt(key, 10, 64); err == nil {
			id = parsed
		}
		entries = append(entries, keyed{id: id, key: key, track: track})
	}

	slices.SortFunc(entries, func(a, b keyed) int {
		if a.id != b.id {
			if a.id < b.id {
				return -1
			}
			return 1
		}
		if a.key < b.key {
			return -1
		}
		if a.key > b.key {
			return 1
		}
		return 0
	})

	songs := make([]models.Song, len(entries))
	for idx, e := range entries {
		songs[idx] = e.track.song()
	}
	return songs, nil
}

func (t libraryTrack) song() models.Song {
	seconds := max(t.TotalTime/1000, 0)
	bpm := max(t.BPM, 0)
	return models.Song{
		Title:     t.Name,
		Artist:    t.Artist,
		Album:     t.Album,
		TotalTime: int(seconds),
		BPM:       float64(bpm),
	}
}
