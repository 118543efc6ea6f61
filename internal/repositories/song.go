package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/shared"
)

const songColumns = "id, title, artist, album, total_time, bpm"

// SongRepository reads songs and bulk-inserts them for the library importer.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Search returns songs whose title, artist, or album contains term, ordered by title.
func (r *SongRepository) Search(ctx context.Context, term string) ([]models.Song, error) {
	where, args := matchClause(term, "title", "artist", "album")
	query := `
		SELECT ` + songColumns + `
		FROM songs
		WHERE ` + where + `
		ORDER BY title COLLATE NOCASE ASC, id ASC
	`
	return r.query(ctx, query, args...)
}

// List returns every song ordered by title.
func (r *SongRepository) List(ctx context.Context) ([]models.Song, error) {
	query := `
		SELECT ` + songColumns + `
		FROM songs
		ORDER BY title COLLATE NOCASE ASC, id ASC
	`
	return r.query(ctx, query)
}

// Get retrieves a song by ID
func (r *SongRepository) Get(ctx context.Context, id int64) (*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = ?`

	song, err := scanSong(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrSongNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}
	return &song, nil
}

// Create inserts a song and sets its store-assigned ID.
func (r *SongRepository) Create(ctx context.Context, song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id, err := insertSong(ctx, r.db, song)
	if err != nil {
		return err
	}
	song.ID = id
	return nil
}

// CreateBatch inserts songs in a single transaction, setting each ID in place.
//
// Either every song is stored or none is.
func (r *SongRepository) CreateBatch(ctx context.Context, songs []models.Song) (int, error) {
	for i := range songs {
		if err := songs[i].Validate(); err != nil {
			return 0, fmt.Errorf("validation failed for song %d: %w", i, err)
		}
	}

	err := shared.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertSongQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := range songs {
			id, err := execInsertSong(ctx, stmt, &songs[i])
			if err != nil {
				return err
			}
			songs[i].ID = id
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(songs), nil
}

// Count returns the number of stored songs.
func (r *SongRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM songs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}

func (r *SongRepository) query(ctx context.Context, query string, args ...any) ([]models.Song, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

const insertSongQuery = `
	INSERT INTO songs (title, artist, album, total_time, bpm)
	VALUES (?, ?, ?, ?, ?)
`

type execer interface {
	ExecContext(ctx context.Context, args ...any) (sql.Result, error)
}

func insertSong(ctx context.Context, db *sql.DB, song *models.Song) (int64, error) {
	result, err := db.ExecContext(ctx, insertSongQuery, song.Title, song.Artist, song.Album, song.TotalTime, song.BPM)
	if err != nil {
		return 0, fmt.Errorf("failed to insert song: %w", err)
	}
	return lastInsertID(result)
}

func execInsertSong(ctx context.Context, stmt execer, song *models.Song) (int64, error) {
	result, err := stmt.ExecContext(ctx, song.Title, song.Artist, song.Album, song.TotalTime, song.BPM)
	if err != nil {
		return 0, fmt.Errorf("failed to insert song %q: %w", song.Title, err)
	}
	return lastInsertID(result)
}

func lastInsertID(result sql.Result) (int64, error) {
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}
	return id, nil
}

// scanSong scans a single row into a [models.Song]
func scanSong(row scanner) (models.Song, error) {
	var song models.Song
	err := row.Scan(&song.ID, &song.Title, &song.Artist, &song.Album, &song.TotalTime, &song.BPM)
	return song, err
}
